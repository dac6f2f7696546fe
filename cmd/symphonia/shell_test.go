package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mjuvekar7/Symphonia"
	"github.com/mjuvekar7/Symphonia/interp"
)

func TestReplStopsAtExit(t *testing.T) {
	in := interp.New(interp.NewSession(time.Millisecond, symphonia.Mf))
	input := "add C 1\nfly away\nprint tune\nexit\nadd D 1\n"
	var out bytes.Buffer
	if err := repl(context.Background(), in, strings.NewReader(input), &out, false); err != nil {
		t.Fatalf("repl failed: %v", err)
	}
	if !strings.Contains(out.String(), "0 -- C 1 +0 mf") {
		t.Errorf("print output missing:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "No such command (yet).") {
		t.Errorf("unknown command not reported:\n%s", out.String())
	}
	if n := in.Session().Tune.Len(); n != 1 {
		t.Errorf("tune has %v notes, expected the line after exit to be ignored", n)
	}
}

func TestOutputPath(t *testing.T) {
	if p := outputPath("", "songs/ode.txt", ".mid"); p != "songs/ode.mid" {
		t.Errorf("got %q", p)
	}
	if p := outputPath("x.pdf", "songs/ode.txt", ".png"); p != "x.pdf" {
		t.Errorf("got %q", p)
	}
	if s := title("songs/ode.txt"); s != "ode" {
		t.Errorf("got %q", s)
	}
}
