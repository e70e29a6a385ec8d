package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/toml"

	"LocalSketchpad/internal/state"
)

type Canvas struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

type Tools struct {
	Thin        float64  `toml:"thin"`
	Thick       float64  `toml:"thick"`
	MaxBrush    float64  `toml:"max_brush"`
	Colors      []string `toml:"colors"`
	Stickers    []string `toml:"stickers"`
	StickerSize float64  `toml:"sticker_size"`
	StickerFont string   `toml:"sticker_font"`
}

type Export struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	File   string `toml:"file"`
}

type Mirror struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Advertise bool   `toml:"advertise"`
}

type Config struct {
	Canvas Canvas `toml:"canvas"`
	Tools  Tools  `toml:"tools"`
	Export Export `toml:"export"`
	Mirror Mirror `toml:"mirror"`
}

var ErrInvalid = errors.New("invalid config")

func Default() Config {
	return Config{
		Canvas: Canvas{Width: 256, Height: 256, Background: "white"},
		Tools: Tools{
			Thin:        1,
			Thick:       4,
			MaxBrush:    20,
			Colors:      append([]string(nil), state.Palette...),
			Stickers:    []string{"🙂", "🍄", "🐟", "🐻"},
			StickerSize: state.DefaultStickerSize,
		},
		Export: Export{Width: 1024, Height: 1024, File: "sketchpad.png"},
		Mirror: Mirror{Addr: ":8889", Advertise: true},
	}
}

// Load reads path over the defaults. An empty path or a missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Printf("[CONFIG] %s not found, using defaults", path)
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Printf("[CONFIG] ignoring unknown keys in %s: %v", path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[CONFIG] loaded %s", path)
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Export.Width <= 0 || c.Export.Height <= 0 {
		return fmt.Errorf("%w: export size %dx%d", ErrInvalid, c.Export.Width, c.Export.Height)
	}
	if _, err := state.ParseColor(c.Canvas.Background); err != nil {
		return fmt.Errorf("%w: canvas background: %v", ErrInvalid, err)
	}
	if c.Tools.Thin <= 0 || c.Tools.Thick <= 0 || c.Tools.MaxBrush < 1 {
		return fmt.Errorf("%w: brush sizes must be positive", ErrInvalid)
	}
	if c.Tools.StickerSize <= 0 {
		return fmt.Errorf("%w: sticker_size %v", ErrInvalid, c.Tools.StickerSize)
	}
	if len(c.Tools.Colors) == 0 {
		return fmt.Errorf("%w: empty color palette", ErrInvalid)
	}
	for _, name := range c.Tools.Colors {
		if _, err := state.ParseColor(name); err != nil {
			return fmt.Errorf("%w: palette: %v", ErrInvalid, err)
		}
	}
	if c.Mirror.Enabled && c.Mirror.Addr == "" {
		return fmt.Errorf("%w: mirror enabled without addr", ErrInvalid)
	}
	return nil
}
