package interp

import (
	"time"

	"github.com/mjuvekar7/Symphonia"
)

// Session is the state shared by all commands of one editing session.
type Session struct {
	Tune *symphonia.Tune
	// Dynamic is used for added notes that do not name one.
	Dynamic symphonia.Dynamic
	// Beat is the length of one beat during playback.
	Beat    time.Duration
	AddMode bool
}

// NewSession starts a session on an empty tune.
func NewSession(beat time.Duration, dynamic symphonia.Dynamic) *Session {
	return &Session{Tune: symphonia.NewTune(), Dynamic: dynamic, Beat: beat}
}

// BeatDuration converts a beat length in seconds.
func BeatDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
