// Package interp implements the Symphonia command language: it parses one
// line at a time, validates it and applies it to the tune of a session.
package interp

import (
	"context"
	"strings"

	"github.com/mjuvekar7/Symphonia"
	"github.com/mjuvekar7/Symphonia/layout"
	"go.uber.org/zap"
)

type (
	// Interpreter executes command lines against a Session. It is meant to be
	// driven from a single goroutine.
	Interpreter struct {
		session  *Session
		player   symphonia.NotePlayer
		clock    symphonia.Clock
		capacity Capacity
		layout   layout.Config
		logger   *zap.Logger
		commands map[string]command
		history  history
		inFile   bool
	}

	// Capacity tells whether the page has room for another note.
	Capacity interface {
		Full() bool
	}

	// Overflower is a Capacity that can also count the notes of a candidate
	// tune that would fall off the page; replace consults it.
	Overflower interface {
		Capacity
		Overflow(notes []symphonia.Note) int
	}

	// Result is the outcome of one command line.
	Result struct {
		// Feedback is the text shown to the user, also on failure.
		Feedback string
		// Err is set when the command was rejected; its kind is one of the
		// symphonia error kinds.
		Err error
		// Exit asks the shell to terminate.
		Exit bool
	}

	// Option configures an Interpreter.
	Option func(*Interpreter)

	command struct {
		usage   string
		help    string
		mutates bool
		run     func(in *Interpreter, ctx context.Context, line string) Result
	}
)

// WithPlayer sets where the play command sends notes.
func WithPlayer(p symphonia.NotePlayer) Option {
	return func(in *Interpreter) { in.player = p }
}

// WithClock sets how long notes are held during playback.
func WithClock(c symphonia.Clock) Option {
	return func(in *Interpreter) { in.clock = c }
}

// WithCapacity sets the page full predicate consulted by add.
func WithCapacity(c Capacity) Option {
	return func(in *Interpreter) { in.capacity = c }
}

// WithLayout makes add track the page laid out with cfg.
func WithLayout(cfg layout.Config) Option {
	return func(in *Interpreter) {
		in.layout = cfg
		in.capacity = layout.NewTracker(in.session.Tune, cfg)
	}
}

// WithLogger sets where commands are logged.
func WithLogger(l *zap.Logger) Option {
	return func(in *Interpreter) { in.logger = l }
}

// New returns an interpreter editing the tune of s. Without options notes are
// played nowhere and the default page layout limits the tune.
func New(s *Session, opts ...Option) *Interpreter {
	in := &Interpreter{session: s, layout: layout.DefaultConfig()}
	for _, opt := range opts {
		opt(in)
	}
	if in.player == nil {
		in.player = symphonia.NullInstrument{}
	}
	if in.clock == nil {
		in.clock = symphonia.WallClock{}
	}
	if in.capacity == nil {
		in.capacity = layout.NewTracker(s.Tune, layout.DefaultConfig())
	}
	if in.logger == nil {
		in.logger = zap.NewNop()
	}
	in.commands = commandTable()
	return in
}

// Session returns the session being edited.
func (in *Interpreter) Session() *Session { return in.session }

// Execute runs one command line. It never panics on malformed input; every
// failure is reported in the Result.
func (in *Interpreter) Execute(ctx context.Context, line string) Result {
	line = strings.TrimSpace(line)
	keyword, _, _ := strings.Cut(line, " ")
	var r Result
	switch {
	case keyword == "exit":
		r = in.exit()
	case line == "addmode on" || line == "addmode off":
		r = in.addMode(line == "addmode on")
	case in.session.AddMode:
		r = in.record(ctx, in.commands["add"], "add "+line)
		if r.Err != nil {
			r.Feedback += "\n" + addModeReminder
		}
	default:
		cmd, found := in.commands[keyword]
		if !found {
			err := symphonia.NewError(symphonia.UnknownCommand, "No such command (yet).")
			r = Result{Feedback: symphonia.Feedback(err), Err: err}
			break
		}
		r = in.record(ctx, cmd, line)
	}
	in.logger.Debug("command",
		zap.String("keyword", keyword),
		zap.Bool("addmode", in.session.AddMode),
		zap.String("kind", string(symphonia.KindOf(r.Err))))
	return r
}

// record runs cmd and saves the previous tune in the history when the
// command changed it.
func (in *Interpreter) record(ctx context.Context, cmd command, line string) Result {
	if !cmd.mutates || in.inFile {
		return cmd.run(in, ctx, line)
	}
	before := in.session.Tune.Notes()
	r := cmd.run(in, ctx, line)
	if !sameNotes(before, in.session.Tune.Notes()) {
		in.history.save(before)
	}
	return r
}

const addModeReminder = `Note that you are in add mode. Exit add mode to use commands other than "add"`

func (in *Interpreter) exit() Result {
	if in.inFile {
		return fail(symphonia.NewError(symphonia.ExitInFile, "Cannot exit from a command file."))
	}
	return Result{Exit: true}
}

func (in *Interpreter) addMode(on bool) Result {
	switch {
	case on && in.session.AddMode:
		return Result{Feedback: "Already in add mode."}
	case on:
		in.session.AddMode = true
		return Result{Feedback: "Switched to add mode."}
	case in.session.AddMode:
		in.session.AddMode = false
		return Result{Feedback: "Add mode is now off."}
	}
	return Result{Feedback: "Add mode is already off."}
}

func fail(err error) Result {
	return Result{Feedback: symphonia.Feedback(err), Err: err}
}

func ok(feedback string) Result {
	return Result{Feedback: feedback}
}
