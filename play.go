package symphonia

import (
	"context"
	"fmt"
	"time"
)

// Hold returns how long a note lasts when a beat lasts beat.
func Hold(n Note, beat time.Duration) time.Duration {
	return time.Duration(float64(beat) * n.Duration())
}

// Play performs notes one after another on p, holding each for its duration
// measured with c. Cancelling ctx stops playback between notes or during a
// hold; the note being held is still released.
func Play(ctx context.Context, notes []Note, beat time.Duration, p NotePlayer, c Clock) error {
	for i, n := range notes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.NoteOn(n.PitchCode(), n.Intensity()); err != nil {
			return fmt.Errorf("note %d on: %w", i, err)
		}
		sleepErr := c.Sleep(ctx, Hold(n, beat))
		if err := p.NoteOff(n.PitchCode(), n.Intensity()); err != nil {
			return fmt.Errorf("note %d off: %w", i, err)
		}
		if sleepErr != nil {
			return sleepErr
		}
	}
	return nil
}
