package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalSketchpad/internal/raster"
	"LocalSketchpad/internal/state"
)

func newExporter() *Exporter {
	return &Exporter{LogicalWidth: 256, LogicalHeight: 256, Fonts: raster.DefaultFonts()}
}

func TestPNGEmptyLogIsBlank(t *testing.T) {
	data, err := newExporter().PNG(state.NewDrawingLog(), 1024, 1024)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())
	assert.Equal(t, 1024, img.Bounds().Dy())
	r, g, b, a := img.At(512, 512).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})
}

func TestExportScaleInvariance(t *testing.T) {
	l := state.NewDrawingLog()
	s := state.NewStroke(10, 20, 2, "red")
	s.Extend(100, 20)
	l.Commit(s)

	e := newExporter()
	assert.Equal(t, 4.0, e.Scale(1024, 1024))

	screen := raster.New(256, 256)
	state.RenderCommitted(screen, l)
	big := e.Image(l, 1024, 1024)

	red := color.RGBA{255, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	assert.Equal(t, red, screen.Image().RGBAAt(50, 20))
	assert.Equal(t, red, big.RGBAAt(200, 80))
	assert.Equal(t, red, big.RGBAAt(50*4+2, 20*4+3), "width is 8px at 4x")
	assert.Equal(t, white, big.RGBAAt(200, 90))
	assert.Equal(t, white, big.RGBAAt(30, 80), "start stays at x=40")
	assert.Equal(t, white, big.RGBAAt(420, 80), "end stays at x=400")
}

// inkBox returns the bounds of every non-white pixel in img.
func inkBox(img *image.RGBA) image.Rectangle {
	white := color.RGBA{255, 255, 255, 255}
	box := image.Rectangle{}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != white {
				box = box.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return box
}

func TestExportScalesStickers(t *testing.T) {
	l := state.NewDrawingLog()
	l.Commit(state.NewSticker("M", 32, 32, 10))

	e := newExporter()
	small := inkBox(e.Image(l, 256, 256))
	big := inkBox(e.Image(l, 1024, 1024))
	require.False(t, small.Empty())
	require.False(t, big.Empty())

	center := func(r image.Rectangle) (float64, float64) {
		return float64(r.Min.X+r.Max.X) / 2, float64(r.Min.Y+r.Max.Y) / 2
	}
	sx, sy := center(small)
	bx, by := center(big)
	assert.InDelta(t, 4*sx, bx, 6, "sticker position scales 4x")
	assert.InDelta(t, 4*sy, by, 6, "sticker position scales 4x")
	assert.InDelta(t, 4*float64(small.Dx()), float64(big.Dx()), 6, "glyph width scales 4x")
	assert.InDelta(t, 4*float64(small.Dy()), float64(big.Dy()), 6, "glyph height scales 4x")
}

func TestExportNilLog(t *testing.T) {
	e := newExporter()
	data, err := e.PNG(nil, 64, 64)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	var buf bytes.Buffer
	require.NoError(t, e.WritePDF(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExportIgnoresActiveAndPreview(t *testing.T) {
	surface := raster.New(256, 256)
	sess := state.NewSession(surface)
	pen := state.ToolState{Mode: state.ModeStroke, Thickness: 4, Color: "blue"}
	require.NoError(t, sess.PointerDown(10, 10, pen))
	sess.PointerMove(200, 200, pen)

	e := newExporter()
	blank := e.Image(state.NewDrawingLog(), 256, 256)
	got := e.Image(sess.Log(), 256, 256)
	assert.Equal(t, blank.Pix, got.Pix)
}

func TestExportNonSquareKeepsUniformScale(t *testing.T) {
	e := newExporter()
	assert.Equal(t, 2.0, e.Scale(512, 1024))
}

func TestWritePDF(t *testing.T) {
	l := state.NewDrawingLog()
	s := state.NewStroke(10, 10, 3, "indigo")
	s.Extend(50, 60)
	l.Commit(s)
	l.Commit(state.NewSticker("A", 100, 100, 20))

	var buf bytes.Buffer
	require.NoError(t, newExporter().WritePDF(&buf, l))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWritePNGRejectsBadSize(t *testing.T) {
	_, err := newExporter().PNG(state.NewDrawingLog(), 0, 10)
	assert.Error(t, err)
}
