package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	sessionID = uuid.NewString()
	commits   uint64
)

func newCommandID() string {
	return uuid.NewString()
}

// nextSeq numbers commits across all logs of this process; log lines use it
// to order history events.
func nextSeq() uint64 {
	return atomic.AddUint64(&commits, 1)
}

// SessionID identifies this process in log lines and in the
// X-Sketchpad-Session header of mirror frames.
func SessionID() string {
	return sessionID
}
