package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"math"

	"LocalSketchpad/internal/raster"
	"LocalSketchpad/internal/state"
)

// Exporter renders committed history at resolutions independent of the
// on-screen canvas.
type Exporter struct {
	LogicalWidth  float64
	LogicalHeight float64
	Fonts         *raster.Fonts
	Background    color.Color
}

// Scale is the uniform factor mapping the logical canvas into w x h pixels.
func (e *Exporter) Scale(w, h int) float64 {
	if e.LogicalWidth <= 0 || e.LogicalHeight <= 0 {
		return 1
	}
	return math.Min(float64(w)/e.LogicalWidth, float64(h)/e.LogicalHeight)
}

// Image replays the committed history of l onto a fresh w x h surface.
// The active command and the preview are never part of an export.
func (e *Exporter) Image(l *state.DrawingLog, w, h int) *image.RGBA {
	s := raster.New(w, h, e.surfaceOptions(e.Scale(w, h))...)
	state.RenderCommitted(s, l)
	return s.Image()
}

func (e *Exporter) PNG(l *state.DrawingLog, w, h int) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.WritePNG(&buf, l, w, h); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) WritePNG(out io.Writer, l *state.DrawingLog, w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("export png: invalid size %dx%d", w, h)
	}
	if err := png.Encode(out, e.Image(l, w, h)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	log.Printf("[EXPORT] png %dx%d, %d commands", w, h, l.Len())
	return nil
}

func (e *Exporter) surfaceOptions(scale float64) []raster.Option {
	opts := []raster.Option{raster.WithScale(scale)}
	if e.Fonts != nil {
		opts = append(opts, raster.WithFonts(e.Fonts))
	}
	if e.Background != nil {
		opts = append(opts, raster.WithBackground(e.Background))
	}
	return opts
}
