package state

import "log"

type Op string

const (
	OpCommit Op = "commit"
	OpUndo   Op = "undo"
	OpRedo   Op = "redo"
	OpClear  Op = "clear"
)

// Change describes one Drawing Log mutation. Changed is false when an
// undo or redo found its buffer empty.
type Change struct {
	Op      Op
	Command Command
	Changed bool
}

// DrawingLog is the committed drawing history plus the redo buffer.
type DrawingLog struct {
	committed []Command
	redo      []Command
	onChange  func(Change)
}

func NewDrawingLog() *DrawingLog {
	return &DrawingLog{
		committed: make([]Command, 0),
		redo:      make([]Command, 0),
	}
}

// OnChange sets the hook run after every mutation, including no-op undo
// and redo.
func (l *DrawingLog) OnChange(fn func(Change)) {
	l.onChange = fn
}

func (l *DrawingLog) notify(c Change) {
	if l.onChange != nil {
		l.onChange(c)
	}
}

// Commit appends cmd and discards the redo buffer; history never forks.
func (l *DrawingLog) Commit(cmd Command) {
	if cmd == nil {
		return
	}
	cmd.freeze()
	l.committed = append(l.committed, cmd)
	clear(l.redo)
	l.redo = l.redo[:0]
	log.Printf("[LOG] #%d commit %s (%d committed)", nextSeq(), cmd.ID(), len(l.committed))
	l.notify(Change{Op: OpCommit, Command: cmd, Changed: true})
}

func (l *DrawingLog) Undo() {
	n := len(l.committed)
	if n == 0 {
		l.notify(Change{Op: OpUndo})
		return
	}
	cmd := l.committed[n-1]
	l.committed[n-1] = nil
	l.committed = l.committed[:n-1]
	l.redo = append(l.redo, cmd)
	log.Printf("[LOG] undo %s (%d committed, %d redoable)", cmd.ID(), len(l.committed), len(l.redo))
	l.notify(Change{Op: OpUndo, Command: cmd, Changed: true})
}

func (l *DrawingLog) Redo() {
	n := len(l.redo)
	if n == 0 {
		l.notify(Change{Op: OpRedo})
		return
	}
	cmd := l.redo[n-1]
	l.redo[n-1] = nil
	l.redo = l.redo[:n-1]
	l.committed = append(l.committed, cmd)
	log.Printf("[LOG] redo %s (%d committed, %d redoable)", cmd.ID(), len(l.committed), len(l.redo))
	l.notify(Change{Op: OpRedo, Command: cmd, Changed: true})
}

// Clear empties both the history and the redo buffer. It cannot be undone.
func (l *DrawingLog) Clear() {
	changed := len(l.committed) > 0 || len(l.redo) > 0
	l.committed = make([]Command, 0)
	l.redo = make([]Command, 0)
	log.Println("[LOG] cleared")
	l.notify(Change{Op: OpClear, Changed: changed})
}

// Commands returns the committed history, oldest first.
func (l *DrawingLog) Commands() []Command {
	out := make([]Command, len(l.committed))
	copy(out, l.committed)
	return out
}

// RedoCommands returns the redo buffer; the last element is redone first.
func (l *DrawingLog) RedoCommands() []Command {
	out := make([]Command, len(l.redo))
	copy(out, l.redo)
	return out
}

func (l *DrawingLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.committed)
}

func (l *DrawingLog) CanUndo() bool { return len(l.committed) > 0 }
func (l *DrawingLog) CanRedo() bool { return len(l.redo) > 0 }
