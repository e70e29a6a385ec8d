package state

// Redraw repaints s from scratch: committed history in order, then the
// in-progress command, or the preview when nothing is in progress.
func Redraw(s Surface, l *DrawingLog, active Command, preview *Preview) {
	RenderCommitted(s, l)
	if active != nil {
		active.Render(s)
		return
	}
	preview.Render(s)
}

// RenderCommitted clears s and replays committed history only. Export uses
// it directly.
func RenderCommitted(s Surface, l *DrawingLog) {
	s.Clear()
	if l == nil {
		return
	}
	for _, cmd := range l.committed {
		cmd.Render(s)
	}
}
