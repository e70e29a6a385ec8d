package export

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log"
	"math"

	"github.com/jung-kurt/gofpdf"

	"LocalSketchpad/internal/raster"
	"LocalSketchpad/internal/state"
)

const (
	pdfPageScale = 2 // points per logical unit
	glyphBox     = 1.25
	glyphRes     = 4 // glyph image pixels per point
)

// pdfSurface draws commands as PDF vector paths. Glyphs are rasterized and
// embedded as images because the core PDF fonts have no emoji.
type pdfSurface struct {
	pdf        *gofpdf.Fpdf
	width      float64
	height     float64
	background color.Color
	fonts      *raster.Fonts
	glyphs     map[string]string
}

var _ state.Surface = (*pdfSurface)(nil)

// WritePDF replays committed history onto a single page sized to the
// logical canvas.
func (e *Exporter) WritePDF(out io.Writer, l *state.DrawingLog) error {
	w, h := e.LogicalWidth*pdfPageScale, e.LogicalHeight*pdfPageScale
	if w <= 0 || h <= 0 {
		return fmt.Errorf("export pdf: invalid canvas %.0fx%.0f", e.LogicalWidth, e.LogicalHeight)
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	bg := e.Background
	if bg == nil {
		bg = color.White
	}
	fonts := e.Fonts
	if fonts == nil {
		fonts = raster.DefaultFonts()
	}
	s := &pdfSurface{
		pdf:        p,
		width:      w,
		height:     h,
		background: bg,
		fonts:      fonts,
		glyphs:     make(map[string]string),
	}
	state.RenderCommitted(s, l)

	if err := p.Output(out); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	log.Printf("[EXPORT] pdf %.0fx%.0fpt, %d commands", w, h, l.Len())
	return nil
}

func (s *pdfSurface) Clear() {
	r, g, b, a := rgb(s.background)
	if a == 0 {
		return
	}
	s.pdf.SetFillColor(r, g, b)
	s.pdf.Rect(0, 0, s.width, s.height, "F")
}

func (s *pdfSurface) StrokePolyline(points []state.Point, width float64, c color.Color) {
	if len(points) < 2 || width <= 0 {
		return
	}
	s.setPen(width, c)
	s.pdf.MoveTo(points[0].X*pdfPageScale, points[0].Y*pdfPageScale)
	for _, p := range points[1:] {
		s.pdf.LineTo(p.X*pdfPageScale, p.Y*pdfPageScale)
	}
	s.pdf.DrawPath("D")
}

func (s *pdfSurface) StrokeCircle(center state.Point, radius, width float64, c color.Color) {
	if radius <= 0 || width <= 0 {
		return
	}
	s.setPen(width, c)
	s.pdf.Circle(center.X*pdfPageScale, center.Y*pdfPageScale, radius*pdfPageScale, "D")
}

func (s *pdfSurface) DrawGlyph(glyph string, origin state.Point, size float64) {
	if glyph == "" || size <= 0 {
		return
	}
	name, err := s.glyphImage(glyph, size)
	if err != nil {
		log.Printf("[EXPORT] pdf glyph %q skipped: %v", glyph, err)
		return
	}
	box := size * glyphBox * pdfPageScale
	s.pdf.ImageOptions(name,
		origin.X*pdfPageScale, (origin.Y-size)*pdfPageScale, box, box,
		false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

// glyphImage registers a transparent PNG of glyph once per glyph and size.
func (s *pdfSurface) glyphImage(glyph string, size float64) (string, error) {
	key := fmt.Sprintf("%s@%g", glyph, size)
	if name, ok := s.glyphs[key]; ok {
		return name, nil
	}
	px := int(math.Ceil(size * glyphBox * pdfPageScale * glyphRes))
	r := raster.New(px, px,
		raster.WithScale(pdfPageScale*glyphRes),
		raster.WithBackground(color.Transparent),
		raster.WithFonts(s.fonts),
	)
	r.DrawGlyph(glyph, state.Point{X: 0, Y: size}, size)

	var buf bytes.Buffer
	if err := png.Encode(&buf, r.Image()); err != nil {
		return "", fmt.Errorf("encode glyph: %w", err)
	}
	name := fmt.Sprintf("glyph-%d", len(s.glyphs))
	s.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if err := s.pdf.Error(); err != nil {
		return "", err
	}
	s.glyphs[key] = name
	return name, nil
}

func (s *pdfSurface) setPen(width float64, c color.Color) {
	r, g, b, _ := rgb(c)
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetLineWidth(width * pdfPageScale)
	s.pdf.SetLineCapStyle("round")
	s.pdf.SetLineJoinStyle("round")
}

func rgb(c color.Color) (r, g, b, a int) {
	cr, cg, cb, ca := c.RGBA()
	return int(cr >> 8), int(cg >> 8), int(cb >> 8), int(ca >> 8)
}
