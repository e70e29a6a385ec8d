package state

import "image/color"

const previewOutlineWidth = 1

var previewOutline = color.Black

// Preview is the transient hint of what the next pointer-down would draw.
// It is either a brush ring (Radius > 0) or a sticker ghost (Glyph set).
type Preview struct {
	Center Point
	Radius float64
	Glyph  string
	Size   float64
}

// MakePreview builds the preview for tool at (x, y). Sticker mode shows a
// ghost of the glyph, stroke mode a ring the size of the brush. It returns
// nil when the tool has nothing to show.
func MakePreview(x, y float64, tool ToolState) *Preview {
	at := Point{X: x, Y: y}
	switch {
	case tool.Mode == ModeSticker && tool.Glyph != "":
		size := tool.StickerSize
		if size <= 0 {
			size = DefaultStickerSize
		}
		return &Preview{Center: at, Glyph: tool.Glyph, Size: size}
	case tool.Mode == ModeStroke && tool.Thickness > 0:
		return &Preview{Center: at, Radius: tool.Thickness / 2}
	}
	return nil
}

func (p *Preview) Render(s Surface) {
	if p == nil {
		return
	}
	if p.Glyph != "" {
		s.DrawGlyph(p.Glyph, glyphOrigin(p.Center, p.Size), p.Size)
		return
	}
	if p.Radius > 0 {
		s.StrokeCircle(p.Center, p.Radius, previewOutlineWidth, previewOutline)
	}
}
