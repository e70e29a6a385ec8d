package state

import "log"

// Session drives one canvas: the Drawing Log, the command being drawn, the
// preview and the surface they are rendered onto. It is not safe for
// concurrent use; all calls come from the UI event loop.
type Session struct {
	log       *DrawingLog
	surface   Surface
	active    Command
	preview   *Preview
	observers []func(Change)
	redrawn   func()
}

func NewSession(surface Surface) *Session {
	s := &Session{
		log:     NewDrawingLog(),
		surface: surface,
	}
	s.log.OnChange(s.logChanged)
	return s
}

func (s *Session) logChanged(c Change) {
	s.Redraw()
	for _, fn := range s.observers {
		fn(c)
	}
}

// Subscribe registers fn to run after every Drawing Log mutation, once the
// surface has been redrawn.
func (s *Session) Subscribe(fn func(Change)) {
	s.observers = append(s.observers, fn)
}

// OnRedraw sets fn to run after every repaint of the surface, so a UI can
// push the new pixels to the screen.
func (s *Session) OnRedraw(fn func()) {
	s.redrawn = fn
}

func (s *Session) Log() *DrawingLog  { return s.log }
func (s *Session) Surface() Surface  { return s.surface }
func (s *Session) Active() Command   { return s.active }
func (s *Session) Preview() *Preview { return s.preview }
func (s *Session) Drawing() bool     { return s.active != nil }

// PointerDown starts a command from the current tool. On a bad tool
// selection the session stays idle and the error is returned.
func (s *Session) PointerDown(x, y float64, tool ToolState) error {
	if s.active != nil {
		return nil
	}
	cmd, err := BeginCommand(x, y, tool)
	if err != nil {
		log.Printf("[SESSION] pointer-down rejected: %v", err)
		return err
	}
	s.active = cmd
	s.preview = nil
	s.Redraw()
	return nil
}

// PointerMove extends the active command, or moves the preview when idle.
func (s *Session) PointerMove(x, y float64, tool ToolState) {
	if s.active != nil {
		s.active.Extend(x, y)
	} else {
		s.preview = MakePreview(x, y, tool)
	}
	s.Redraw()
}

// PointerUp commits the active command. The log's change hook redraws.
func (s *Session) PointerUp() {
	if s.active == nil {
		return
	}
	cmd := s.active
	s.active = nil
	s.log.Commit(cmd)
}

// PointerLeave ends a drawing exactly like PointerUp.
func (s *Session) PointerLeave() {
	s.PointerUp()
}

func (s *Session) Undo()  { s.log.Undo() }
func (s *Session) Redo()  { s.log.Redo() }
func (s *Session) Clear() { s.log.Clear() }

func (s *Session) Redraw() {
	if s.surface == nil {
		return
	}
	Redraw(s.surface, s.log, s.active, s.preview)
	if s.redrawn != nil {
		s.redrawn()
	}
}
