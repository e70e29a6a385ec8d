package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStrokeLifecycle(t *testing.T) {
	r := &recorder{}
	s := NewSession(r)
	redraws := 0
	s.OnRedraw(func() { redraws++ })

	require.NoError(t, s.PointerDown(10, 10, pen))
	assert.True(t, s.Drawing())
	assert.Equal(t, 1, redraws)

	s.PointerMove(20, 20, pen)
	s.PointerMove(30, 30, pen)
	assert.Equal(t, 3, redraws)
	assert.Equal(t, 0, s.Log().Len(), "nothing is committed while drawing")

	s.PointerUp()
	assert.False(t, s.Drawing())
	assert.Equal(t, 4, redraws, "commit redraws exactly once")
	require.Equal(t, 1, s.Log().Len())
	sk := s.Log().Commands()[0].(*Stroke)
	assert.Equal(t, []Point{{10, 10}, {20, 20}, {30, 30}}, sk.Points)
}

func TestSessionPreviewExclusivity(t *testing.T) {
	r := &recorder{}
	s := NewSession(r)

	s.PointerMove(5, 5, pen)
	require.NotNil(t, s.Preview())
	assert.Equal(t, "ring {5 5} r=2 w=1", r.calls[len(r.calls)-1])

	r.reset()
	require.NoError(t, s.PointerDown(5, 5, pen))
	assert.Nil(t, s.Preview())
	assert.Equal(t, []string{"clear"}, r.calls, "single-point stroke and no preview")

	r.reset()
	s.PointerUp()
	assert.Nil(t, s.Preview())
	assert.Equal(t, []string{"clear"}, r.calls)

	s.PointerMove(6, 6, pen)
	assert.NotNil(t, s.Preview())
}

func TestSessionStickerDrag(t *testing.T) {
	s := NewSession(&recorder{})
	tool := ToolState{Mode: ModeSticker, Glyph: "🍄"}
	require.NoError(t, s.PointerDown(10, 10, tool))
	s.PointerMove(20, 20, tool)
	s.PointerLeave()

	require.Equal(t, 1, s.Log().Len())
	st := s.Log().Commands()[0].(*Sticker)
	assert.Equal(t, Point{20, 20}, st.At)
}

func TestSessionIdleMoveKeepsHistory(t *testing.T) {
	s := NewSession(&recorder{})
	require.NoError(t, s.PointerDown(0, 0, pen))
	s.PointerUp()
	s.Undo()
	require.Len(t, s.Log().RedoCommands(), 1)

	s.PointerMove(3, 3, pen)
	s.PointerUp()
	assert.Len(t, s.Log().RedoCommands(), 1, "idle events never touch history")
	assert.Equal(t, 0, s.Log().Len())
}

func TestSessionRedoKeptUntilCommit(t *testing.T) {
	s := NewSession(&recorder{})
	require.NoError(t, s.PointerDown(0, 0, pen))
	s.PointerUp()
	s.Undo()

	require.NoError(t, s.PointerDown(1, 1, pen))
	assert.Len(t, s.Log().RedoCommands(), 1, "starting a draw does not clear redo")
	s.PointerUp()
	assert.Empty(t, s.Log().RedoCommands())
}

func TestSessionRejectsBadTool(t *testing.T) {
	s := NewSession(&recorder{})
	err := s.PointerDown(0, 0, ToolState{Mode: ModeSticker})
	assert.ErrorIs(t, err, ErrNoGlyph)
	assert.False(t, s.Drawing())
}

func TestSessionObservers(t *testing.T) {
	s := NewSession(&recorder{})
	var ops []Op
	s.Subscribe(func(c Change) { ops = append(ops, c.Op) })

	require.NoError(t, s.PointerDown(0, 0, pen))
	s.PointerMove(1, 1, pen)
	s.PointerUp()
	s.Undo()
	s.Redo()
	s.Clear()
	assert.Equal(t, []Op{OpCommit, OpUndo, OpRedo, OpClear}, ops)
}
