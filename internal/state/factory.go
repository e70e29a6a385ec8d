package state

import (
	"errors"
	"fmt"
)

type Mode string

const (
	ModeStroke  Mode = "stroke"
	ModeSticker Mode = "sticker"
)

// DefaultStickerSize is the font size of placed stickers and of the sticker
// preview ghost.
const DefaultStickerSize = 20

// ToolState is the UI's current tool selection. The core only reads it when
// a command or preview is created.
type ToolState struct {
	Mode        Mode
	Thickness   float64
	Color       string
	Glyph       string
	StickerSize float64
}

var (
	ErrUnknownMode  = errors.New("unknown tool mode")
	ErrNoGlyph      = errors.New("sticker mode without a glyph")
	ErrBadThickness = errors.New("brush thickness must be positive")
)

// BeginCommand creates the command a pointer-down at (x, y) starts.
func BeginCommand(x, y float64, tool ToolState) (Command, error) {
	switch tool.Mode {
	case ModeStroke:
		if tool.Thickness <= 0 {
			return nil, fmt.Errorf("begin stroke: %w (got %v)", ErrBadThickness, tool.Thickness)
		}
		if _, err := ParseColor(tool.Color); err != nil {
			return nil, fmt.Errorf("begin stroke: %w", err)
		}
		return NewStroke(x, y, tool.Thickness, tool.Color), nil
	case ModeSticker:
		if tool.Glyph == "" {
			return nil, fmt.Errorf("begin sticker: %w", ErrNoGlyph)
		}
		size := tool.StickerSize
		if size <= 0 {
			size = DefaultStickerSize
		}
		return NewSticker(tool.Glyph, x, y, size), nil
	default:
		return nil, fmt.Errorf("begin command: %w %q", ErrUnknownMode, tool.Mode)
	}
}

// ExtendCommand forwards continued pointer movement to cmd. A nil command
// is ignored.
func ExtendCommand(cmd Command, x, y float64) {
	if cmd == nil {
		return
	}
	cmd.Extend(x, y)
}
