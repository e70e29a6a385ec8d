package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalSketchpad/internal/config"
	"LocalSketchpad/internal/raster"
	"LocalSketchpad/internal/state"
)

func newTestBoard(t *testing.T) *BoardWidget {
	t.Helper()
	test.NewTempApp(t)
	b := NewBoardWidget(config.Default(), raster.DefaultFonts())
	b.Resize(fyne.NewSize(512, 512))
	return b
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestBoardDrawsStroke(t *testing.T) {
	b := newTestBoard(t)
	b.SetThickness(4)
	b.SetColor("red")

	b.MouseDown(mouse(20, 20))
	b.Dragged(drag(40, 60))
	b.MouseUp(mouse(40, 60))
	b.DragEnd()

	cmds := b.Session().Log().Commands()
	require.Len(t, cmds, 1)
	sk := cmds[0].(*state.Stroke)
	assert.Equal(t, []state.Point{{X: 10, Y: 10}, {X: 20, Y: 30}}, sk.Points, "positions map to the 256px canvas")
	assert.Equal(t, 4.0, sk.Thickness)
	assert.Equal(t, "red", sk.Color)
}

func TestBoardStickerAndLeave(t *testing.T) {
	b := newTestBoard(t)
	b.SetSticker("🐟")
	assert.Equal(t, state.ModeSticker, b.Tool().Mode)

	b.MouseDown(mouse(100, 100))
	b.MouseMoved(mouse(120, 140))
	b.MouseOut()

	cmds := b.Session().Log().Commands()
	require.Len(t, cmds, 1)
	st := cmds[0].(*state.Sticker)
	assert.Equal(t, state.Point{X: 60, Y: 70}, st.At)
	assert.Equal(t, 20.0, st.Size)
}

func TestBoardHoverShowsPreviewOnly(t *testing.T) {
	b := newTestBoard(t)
	b.MouseMoved(mouse(50, 50))
	assert.NotNil(t, b.Session().Preview())
	assert.Equal(t, 0, b.Session().Log().Len())
}

func TestBoardUndoRedoClear(t *testing.T) {
	b := newTestBoard(t)
	for i := float32(0); i < 3; i++ {
		b.MouseDown(mouse(10*i, 10))
		b.Dragged(drag(10*i+5, 20))
		b.MouseUp(mouse(10*i+5, 20))
	}
	require.Equal(t, 3, b.Session().Log().Len())

	b.Undo()
	b.Undo()
	assert.Equal(t, 1, b.Session().Log().Len())
	b.Redo()
	assert.Equal(t, 2, b.Session().Log().Len())
	b.Clear()
	assert.Equal(t, 0, b.Session().Log().Len())
	assert.False(t, b.Session().Log().CanRedo())
}

func TestBoardIgnoresSecondaryButton(t *testing.T) {
	b := newTestBoard(t)
	ev := mouse(10, 10)
	ev.Button = desktop.MouseButtonSecondary
	b.MouseDown(ev)
	assert.False(t, b.Session().Drawing())
}

func TestSelectingBrushClearsSticker(t *testing.T) {
	b := newTestBoard(t)
	b.SetSticker("🙂")
	b.SetThickness(7)
	tool := b.Tool()
	assert.Equal(t, state.ModeStroke, tool.Mode)
	assert.Empty(t, tool.Glyph)
	assert.Equal(t, 7.0, tool.Thickness)
}
