// Package symphonia holds the melody model shared by the command interpreter,
// the staff layout and the audio and file backends: notes, the tune being
// edited, playback contracts and error kinds.
package symphonia

// BeatSeconds is the default length of a beat.
const BeatSeconds = 0.5

// DefaultDynamic is the dynamic of a new session.
const DefaultDynamic = Mf
