// Package raster renders drawing commands into an in-memory RGBA image.
//
// A Surface has a pixel size and a uniform scale. Commands draw in logical
// coordinates; the surface multiplies every coordinate, width and font size
// by the scale, which is how the 1024px export reproduces a 256px canvas.
package raster

import (
	"image"
	"image/color"
	"log"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"LocalSketchpad/internal/state"
)

const miterLimit = 4

var glyphInk = image.NewUniform(color.Black)

type Surface struct {
	img        *image.RGBA
	scale      float64
	background color.Color
	fonts      *Fonts
	scanner    *rasterx.ScannerGV
	stroker    *rasterx.Stroker
}

var _ state.Surface = (*Surface)(nil)

type Option func(*Surface)

// WithBackground sets the color Clear fills with. Default is white.
func WithBackground(c color.Color) Option {
	return func(s *Surface) { s.background = c }
}

// WithScale sets the logical to pixel factor. Default is 1.
func WithScale(scale float64) Option {
	return func(s *Surface) {
		if scale > 0 {
			s.scale = scale
		}
	}
}

func WithFonts(f *Fonts) Option {
	return func(s *Surface) { s.fonts = f }
}

// New creates a width x height pixel surface, cleared to its background.
func New(width, height int, opts ...Option) *Surface {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	s := &Surface{
		img:        img,
		scale:      1,
		background: color.White,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fonts == nil {
		s.fonts = DefaultFonts()
	}
	s.scanner = rasterx.NewScannerGV(width, height, img, img.Bounds())
	s.stroker = rasterx.NewStroker(width, height, s.scanner)
	s.Clear()
	return s
}

func (s *Surface) Image() *image.RGBA { return s.img }
func (s *Surface) Scale() float64     { return s.scale }

func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
}

func (s *Surface) StrokePolyline(points []state.Point, width float64, c color.Color) {
	if len(points) < 2 || width <= 0 {
		return
	}
	st := s.beginStroke(width, c)
	st.Start(s.fixed(points[0]))
	for _, p := range points[1:] {
		st.Line(s.fixed(p))
	}
	st.Stop(false)
	st.Draw()
}

func (s *Surface) StrokeCircle(center state.Point, radius, width float64, c color.Color) {
	if radius <= 0 || width <= 0 {
		return
	}
	st := s.beginStroke(width, c)
	rasterx.AddCircle(center.X*s.scale, center.Y*s.scale, radius*s.scale, st)
	st.Draw()
}

func (s *Surface) DrawGlyph(glyph string, origin state.Point, size float64) {
	if glyph == "" || size <= 0 {
		return
	}
	face, err := s.fonts.Face(size * s.scale)
	if err != nil {
		log.Printf("[RASTER] glyph %q skipped: %v", glyph, err)
		return
	}
	d := font.Drawer{
		Dst:  s.img,
		Src:  glyphInk,
		Face: face,
		Dot:  s.fixed(origin),
	}
	d.DrawString(glyph)
}

func (s *Surface) beginStroke(width float64, c color.Color) *rasterx.Stroker {
	st := s.stroker
	st.Clear()
	st.SetStroke(
		fixed.Int26_6(width*s.scale*64),
		fixed.Int26_6(miterLimit*64),
		rasterx.RoundCap, rasterx.RoundCap,
		rasterx.RoundGap,
		rasterx.Round,
	)
	st.SetColor(c)
	return st
}

func (s *Surface) fixed(p state.Point) fixed.Point26_6 {
	return rasterx.ToFixedP(p.X*s.scale, p.Y*s.scale)
}
