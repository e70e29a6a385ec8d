package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"LocalSketchpad/internal/config"
	sknet "LocalSketchpad/internal/net"
	"LocalSketchpad/internal/raster"
	"LocalSketchpad/internal/state"
	"LocalSketchpad/internal/ui"
)

func main() {
	configPath := flag.String("config", "sketchpad.toml", "path to the TOML config file")
	mirrorAddr := flag.String("mirror", "", "serve a read-only mirror on this address (overrides config)")
	browse := flag.Bool("browse", false, "list sketchpad mirrors on the local network and exit")
	flag.Parse()

	if *browse {
		runBrowse()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *mirrorAddr != "" {
		cfg.Mirror.Enabled = true
		cfg.Mirror.Addr = *mirrorAddr
	}

	fonts := raster.DefaultFonts()
	if cfg.Tools.StickerFont != "" {
		if fonts, err = raster.LoadFonts(cfg.Tools.StickerFont); err != nil {
			log.Fatalf("Failed to load sticker font: %v", err)
		}
	}

	board := ui.NewBoardWidget(cfg, fonts)
	log.Printf("Starting sketchpad session %s (%dx%d)", state.SessionID(), cfg.Canvas.Width, cfg.Canvas.Height)

	shareLink := ""
	if cfg.Mirror.Enabled {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		shareLink = startMirror(ctx, cfg, board)
	}
	ui.RunApp(board, shareLink)
}

// startMirror serves the mirror in the background and publishes a fresh
// export after every history change.
func startMirror(ctx context.Context, cfg config.Config, board *ui.BoardWidget) string {
	mirror := sknet.NewMirror()
	mirror.Session = state.SessionID()
	publish := func() {
		frame, err := board.Exporter().PNG(board.Session().Log(), cfg.Export.Width, cfg.Export.Height)
		if err != nil {
			log.Printf("[MIRROR] export failed: %v", err)
			return
		}
		mirror.Publish(frame)
	}
	board.Session().Subscribe(func(c state.Change) {
		if c.Changed {
			publish()
		}
	})
	publish()

	bound := make(chan net.Addr, 1)
	go func() {
		if err := mirror.Serve(ctx, cfg.Mirror.Addr, func(a net.Addr) { bound <- a }); err != nil {
			log.Printf("[MIRROR] %v", err)
			close(bound)
		}
	}()
	addr, ok := <-bound
	if !ok {
		return ""
	}

	if cfg.Mirror.Advertise {
		server, err := sknet.Advertise(sknet.Port(addr))
		if err != nil {
			log.Printf("[MDNS] %v", err)
		} else {
			go func() {
				<-ctx.Done()
				server.Shutdown()
			}()
		}
	}
	link := sknet.ShareLink(addr)
	log.Printf("[MIRROR] viewers can open %s", link)
	return link
}

func runBrowse() {
	fmt.Println("Looking for sketchpad mirrors...")
	found := 0
	err := sknet.Browse(3*time.Second, func(addr string) {
		found++
		fmt.Printf("  http://%s/\n", addr)
	})
	if err != nil {
		log.Printf("[MDNS] %v", err)
		os.Exit(1)
	}
	if found == 0 {
		fmt.Println("No mirrors found.")
	}
}
