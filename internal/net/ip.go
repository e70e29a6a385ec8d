package net

import (
	"fmt"
	"log"
	"net"
	"strconv"
)

// GetOutgoingIP finds the preferred local IP address to put in share links.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet; fall back to local interfaces.
		return getLocalIPFallback()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

func getLocalIPFallback() (string, error) {
	ip := firstIPv4()
	if ip.IsLoopback() {
		log.Println("[MIRROR] no suitable local IP found, share link uses loopback")
	}
	return ip.String(), nil
}

// ShareLink is the URL viewers open to watch a mirror bound to addr.
func ShareLink(addr net.Addr) string {
	ip, err := GetOutgoingIP()
	if err != nil {
		ip = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s/", net.JoinHostPort(ip, strconv.Itoa(Port(addr))))
}

// Port extracts the TCP port of a listener address.
func Port(addr net.Addr) int {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.Port
	}
	if _, p, err := net.SplitHostPort(addr.String()); err == nil {
		port, _ := strconv.Atoi(p)
		return port
	}
	return 0
}
