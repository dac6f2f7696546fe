package synth_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/mjuvekar7/Symphonia"
	"github.com/mjuvekar7/Symphonia/synth"
)

func TestFrequency(t *testing.T) {
	for pitch, expected := range map[int]float64{69: 440, 81: 880, 57: 220, 60: 261.6256} {
		if got := synth.Frequency(pitch); math.Abs(got-expected) > 1e-3 {
			t.Errorf("Frequency(%v) = %v, expected %v", pitch, got, expected)
		}
	}
}

func TestNoteOnRange(t *testing.T) {
	s := synth.New(8000)
	if err := s.NoteOn(128, 64); err == nil {
		t.Error("expected an error for pitch 128")
	}
	if err := s.NoteOn(60, -1); err == nil {
		t.Error("expected an error for velocity -1")
	}
	if err := s.NoteOn(60, 64); err != nil {
		t.Errorf("NoteOn failed: %v", err)
	}
}

func TestSilenceWithoutNotes(t *testing.T) {
	s := synth.New(8000)
	buf := make([]float32, 1000)
	s.Render(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %v is %v, expected silence", i, v)
		}
	}
}

func TestPitchOfRenderedNote(t *testing.T) {
	const rate = 44100
	s := synth.New(rate)
	o := &synth.Offline{Synth: s}
	if err := s.NoteOn(69, 100); err != nil {
		t.Fatalf("NoteOn failed: %v", err)
	}
	if err := o.Sleep(context.Background(), time.Second); err != nil {
		t.Fatalf("Sleep failed: %v", err)
	}
	if len(o.Buffer) != 2*rate {
		t.Fatalf("rendered %v samples, expected %v", len(o.Buffer), 2*rate)
	}
	crossings := 0
	for i := rate / 10; i < rate*9/10; i++ {
		if o.Buffer[2*i-2] < 0 && o.Buffer[2*i] >= 0 {
			crossings++
		}
	}
	// 0.8 seconds of 440 Hz
	if crossings < 349 || crossings > 355 {
		t.Errorf("got %v rising zero crossings, expected about 352", crossings)
	}
}

func TestRenderFadesOut(t *testing.T) {
	const rate = 8000
	n, err := symphonia.NewNote("C", 1, 0, symphonia.Forte)
	if err != nil {
		t.Fatalf("NewNote failed: %v", err)
	}
	buf, err := synth.Render(context.Background(), []symphonia.Note{n, n}, 500*time.Millisecond, rate)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(buf) < 2*rate {
		t.Fatalf("rendered %v samples, expected at least %v", len(buf), 2*rate)
	}
	var peak float32
	for _, v := range buf[:2*rate] {
		peak = max(peak, v, -v)
	}
	if peak < 0.05 || peak > 1 {
		t.Errorf("peak level %v out of the expected range", peak)
	}
	if tail := buf[len(buf)-1]; tail > 0.01 || tail < -0.01 {
		t.Errorf("last sample %v, expected the release to have faded out", tail)
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, _ := symphonia.NewNote("C", 1, 0, symphonia.Mf)
	if _, err := synth.Render(ctx, []symphonia.Note{n}, time.Second, 8000); err == nil {
		t.Fatal("expected an error from a cancelled render")
	}
}

func TestReadProducesFrames(t *testing.T) {
	s := synth.New(8000)
	s.NoteOn(60, 127)
	p := make([]byte, 4096)
	n, err := s.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read returned %v, %v; expected %v bytes", n, err, len(p))
	}
	nonzero := false
	for i := 0; i < n; i += 4 {
		l := int16(binary.LittleEndian.Uint16(p[i:]))
		r := int16(binary.LittleEndian.Uint16(p[i+2:]))
		if l != r {
			t.Fatalf("frame %v: left %v differs from right %v", i/4, l, r)
		}
		nonzero = nonzero || l != 0
	}
	if !nonzero {
		t.Error("expected a sounding note to produce non-zero samples")
	}
}

func TestWavHeader(t *testing.T) {
	samples := []float32{0, 0.5, -0.5, 2}
	for _, pcm16 := range []bool{true, false} {
		wav, err := synth.Wav(samples, 22050, pcm16)
		if err != nil {
			t.Fatalf("Wav failed: %v", err)
		}
		if !bytes.HasPrefix(wav, []byte("RIFF")) || string(wav[8:12]) != "WAVE" {
			t.Fatalf("missing RIFF/WAVE magic: %q", wav[:12])
		}
		if rate := binary.LittleEndian.Uint32(wav[24:]); rate != 22050 {
			t.Errorf("sample rate %v, expected 22050", rate)
		}
		size := 2
		header := 44
		if !pcm16 {
			size, header = 4, 58
		}
		if len(wav) != header+size*len(samples) {
			t.Errorf("pcm16 %v: file is %v bytes, expected %v", pcm16, len(wav), header+size*len(samples))
		}
		if chunk := binary.LittleEndian.Uint32(wav[4:]); int(chunk) != len(wav)-8 {
			t.Errorf("pcm16 %v: RIFF chunk size %v, expected %v", pcm16, chunk, len(wav)-8)
		}
	}
}

func TestFloatBufferClips(t *testing.T) {
	out := synth.FloatBufferTo16BitLE([]float32{2, -2, 0}, nil)
	got := []int16{
		int16(binary.LittleEndian.Uint16(out[0:])),
		int16(binary.LittleEndian.Uint16(out[2:])),
		int16(binary.LittleEndian.Uint16(out[4:])),
	}
	if got[0] != math.MaxInt16 || got[1] != -math.MaxInt16 || got[2] != 0 {
		t.Errorf("got %v", got)
	}
}
