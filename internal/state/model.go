package state

import "image/color"

type Point struct{ X, Y float64 }

// Surface is the drawing target commands and previews render onto.
// Coordinates and widths are logical; implementations map them through
// their own scale, so the same command renders correctly at any resolution.
type Surface interface {
	Clear()
	StrokePolyline(points []Point, width float64, c color.Color)
	StrokeCircle(center Point, radius, width float64, c color.Color)
	// DrawGlyph draws text with its left edge at origin.X and its baseline
	// at origin.Y, using a font of the given size.
	DrawGlyph(glyph string, origin Point, size float64)
}

// Command is one drawing action: a freehand stroke or a sticker placement.
type Command interface {
	ID() string
	Extend(x, y float64)
	Render(s Surface)
	freeze()
}

// Stroke is a freehand line. Points keep insertion order.
type Stroke struct {
	id        string
	Points    []Point
	Thickness float64
	Color     string
	frozen    bool
}

var _ Command = (*Stroke)(nil)
var _ Command = (*Sticker)(nil)

func NewStroke(x, y, thickness float64, color string) *Stroke {
	return &Stroke{
		id:        newCommandID(),
		Points:    []Point{{X: x, Y: y}},
		Thickness: thickness,
		Color:     color,
	}
}

func (s *Stroke) ID() string { return s.id }

// Extend appends a point. Committed strokes ignore it.
func (s *Stroke) Extend(x, y float64) {
	if s.frozen {
		return
	}
	s.Points = append(s.Points, Point{X: x, Y: y})
}

func (s *Stroke) Render(surface Surface) {
	if len(s.Points) < 2 {
		return
	}
	c, err := ParseColor(s.Color)
	if err != nil {
		c = color.Black
	}
	surface.StrokePolyline(s.Points, s.Thickness, c)
}

func (s *Stroke) freeze() { s.frozen = true }

// Sticker is a glyph stamped at a single position.
type Sticker struct {
	id     string
	Glyph  string
	At     Point
	Size   float64
	frozen bool
}

func NewSticker(glyph string, x, y, size float64) *Sticker {
	return &Sticker{
		id:    newCommandID(),
		Glyph: glyph,
		At:    Point{X: x, Y: y},
		Size:  size,
	}
}

func (s *Sticker) ID() string { return s.id }

// Extend moves the sticker; a sticker is dragged, not traced.
func (s *Sticker) Extend(x, y float64) {
	if s.frozen {
		return
	}
	s.At = Point{X: x, Y: y}
}

func (s *Sticker) Render(surface Surface) {
	if s.Glyph == "" || s.Size <= 0 {
		return
	}
	surface.DrawGlyph(s.Glyph, glyphOrigin(s.At, s.Size), s.Size)
}

func (s *Sticker) freeze() { s.frozen = true }

// glyphOrigin centers a glyph of the given size on p.
func glyphOrigin(p Point, size float64) Point {
	return Point{X: p.X - size/2, Y: p.Y + size/2}
}
