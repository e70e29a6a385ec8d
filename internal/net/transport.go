package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Peer is one connected viewer. Frames are delivered by its own writer
// goroutine; a slow viewer only ever misses intermediate frames.
type Peer struct {
	Conn *websocket.Conn
	send chan []byte
}

// SessionHeader carries the drawing session's ID on /frame.png responses.
const SessionHeader = "X-Sketchpad-Session"

// Mirror pushes read-only PNG snapshots of the drawing to browsers on the
// LAN. It never accepts drawing input.
type Mirror struct {
	// Session, when set, is sent in SessionHeader with every frame.
	Session string

	peers    map[string]*Peer
	latest   []byte
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

func NewMirror() *Mirror {
	return &Mirror{
		peers: make(map[string]*Peer),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Handler serves the viewer page, the websocket and the latest frame.
func (m *Mirror) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", m.serveViewer)
	mux.HandleFunc("/ws", m.serveWS)
	mux.HandleFunc("/frame.png", m.serveFrame)
	return mux
}

// Serve listens on addr until ctx is cancelled. The bound listener is
// reported through ready, which may be nil.
func (m *Mirror) Serve(ctx context.Context, addr string, ready func(net.Addr)) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mirror listen %s: %w", addr, err)
	}
	srv := &http.Server{Handler: m.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		m.closeAll()
	}()
	log.Printf("[MIRROR] listening on %s", listener.Addr())
	if ready != nil {
		ready(listener.Addr())
	}
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mirror serve: %w", err)
	}
	return nil
}

// Publish stores frame as the latest snapshot and queues it for every peer.
func (m *Mirror) Publish(frame []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest = frame
	for _, p := range m.peers {
		p.offer(frame)
	}
}

func (m *Mirror) PeerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.peers)
}

func (m *Mirror) add(p *Peer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	addr := p.Conn.RemoteAddr().String()
	m.peers[addr] = p
	if m.latest != nil {
		p.offer(m.latest)
	}
	log.Printf("[MIRROR] viewer connected from %s", addr)
}

func (m *Mirror) remove(p *Peer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	addr := p.Conn.RemoteAddr().String()
	if m.peers[addr] == p {
		delete(m.peers, addr)
		close(p.send)
	}
	log.Printf("[MIRROR] viewer %s left", addr)
}

func (m *Mirror) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for addr, p := range m.peers {
		p.Conn.Close()
		close(p.send)
		delete(m.peers, addr)
	}
}

func (m *Mirror) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[MIRROR] upgrade failed: %v", err)
		return
	}
	p := &Peer{Conn: conn, send: make(chan []byte, 1)}
	go p.writeLoop()
	m.add(p)

	// Viewers never send anything meaningful; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	m.remove(p)
	conn.Close()
}

func (m *Mirror) serveFrame(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	frame := m.latest
	m.mu.RUnlock()
	if frame == nil {
		http.Error(w, "no frame yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if m.Session != "" {
		w.Header().Set(SessionHeader, m.Session)
	}
	w.Write(frame)
}

func (m *Mirror) serveViewer(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, viewerPage)
}

// offer replaces any undelivered frame with frame. Caller holds m.mu.
func (p *Peer) offer(frame []byte) {
	select {
	case p.send <- frame:
		return
	default:
	}
	select {
	case <-p.send:
	default:
	}
	select {
	case p.send <- frame:
	default:
	}
}

func (p *Peer) writeLoop() {
	for frame := range p.send {
		p.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.Conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			log.Printf("[MIRROR] send to %s failed: %v", p.Conn.RemoteAddr(), err)
			p.Conn.Close()
			return
		}
	}
}

const viewerPage = `<!doctype html>
<html>
<head><title>Sketchpad mirror</title></head>
<body style="margin:0;background:#ddd;display:flex;justify-content:center">
<img id="frame" src="/frame.png" alt="waiting for drawing" style="max-width:100vw;max-height:100vh;background:#fff">
<script>
const img = document.getElementById("frame");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.binaryType = "blob";
ws.onmessage = (ev) => {
  const url = URL.createObjectURL(ev.data);
  const old = img.src;
  img.src = url;
  if (old.startsWith("blob:")) URL.revokeObjectURL(old);
};
</script>
</body>
</html>
`
