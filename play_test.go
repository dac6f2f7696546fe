package symphonia_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mjuvekar7/Symphonia"
)

type recorder struct {
	events []string
}

func (r *recorder) NoteOn(pitch, velocity int) error {
	r.events = append(r.events, fmt.Sprintf("on %d %d", pitch, velocity))
	return nil
}

func (r *recorder) NoteOff(pitch, velocity int) error {
	r.events = append(r.events, fmt.Sprintf("off %d %d", pitch, velocity))
	return nil
}

type fakeClock struct {
	rec    *recorder
	cancel func()
	after  int
	slept  int
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.rec.events = append(c.rec.events, fmt.Sprintf("hold %v", d))
	c.slept++
	if c.cancel != nil && c.slept == c.after {
		c.cancel()
		return ctx.Err()
	}
	return nil
}

func TestPlayOrder(t *testing.T) {
	rec := &recorder{}
	notes := []symphonia.Note{
		mustNote(t, "C", 1, 0, symphonia.Mf),
		mustNote(t, "F#", 0.5, 1, symphonia.Fff),
	}
	err := symphonia.Play(context.Background(), notes, 500*time.Millisecond, rec, &fakeClock{rec: rec})
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	expected := []string{"on 60 64", "hold 500ms", "off 60 64", "on 78 112", "hold 250ms", "off 78 112"}
	if fmt.Sprint(rec.events) != fmt.Sprint(expected) {
		t.Fatalf("events = %v, expected %v", rec.events, expected)
	}
}

func TestPlayCancelReleasesNote(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notes := []symphonia.Note{
		mustNote(t, "C", 1, 0, symphonia.Mf),
		mustNote(t, "D", 1, 0, symphonia.Mf),
		mustNote(t, "E", 1, 0, symphonia.Mf),
	}
	err := symphonia.Play(ctx, notes, time.Second, rec, &fakeClock{rec: rec, cancel: cancel, after: 2})
	if err != context.Canceled {
		t.Fatalf("Play returned %v, expected context.Canceled", err)
	}
	expected := []string{"on 60 64", "hold 1s", "off 60 64", "on 62 64", "hold 1s", "off 62 64"}
	if fmt.Sprint(rec.events) != fmt.Sprint(expected) {
		t.Fatalf("events = %v, expected %v", rec.events, expected)
	}
}

func TestWallClockCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := (symphonia.WallClock{}).Sleep(ctx, time.Hour); err != context.Canceled {
		t.Fatalf("Sleep returned %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("Sleep did not return promptly on a cancelled context")
	}
}
