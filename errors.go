package symphonia

import (
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// Error kinds. Every failure the interpreter can report to the user carries
// exactly one of these as its ftag.
const (
	GrammarMismatch    ftag.Kind = "GRAMMAR_MISMATCH"
	InvalidPitch       ftag.Kind = "INVALID_PITCH"
	InvalidDuration    ftag.Kind = "INVALID_DURATION"
	InvalidOctaveRange ftag.Kind = "INVALID_OCTAVE_RANGE"
	InvalidDynamic     ftag.Kind = "INVALID_DYNAMIC"
	IndexOutOfRange    ftag.Kind = "INDEX_OUT_OF_RANGE"
	EmptyTune          ftag.Kind = "EMPTY_TUNE"
	PageFull           ftag.Kind = "PAGE_FULL"
	UnknownCommand     ftag.Kind = "UNKNOWN_COMMAND"
	InvalidFile        ftag.Kind = "INVALID_FILE"
	ExitInFile         ftag.Kind = "EXIT_IN_FILE"
)

// NewError returns an error of the given kind whose user facing description
// is feedback.
func NewError(kind ftag.Kind, feedback string) error {
	internal := strings.ToLower(strings.ReplaceAll(string(kind), "_", " "))
	return fault.New(internal, ftag.With(kind), fmsg.WithDesc(internal, feedback))
}

// KindOf returns the kind of err, or the empty kind for nil.
func KindOf(err error) ftag.Kind {
	if err == nil {
		return ""
	}
	return ftag.Get(err)
}

// Feedback returns the message meant for the user.
func Feedback(err error) string {
	if err == nil {
		return ""
	}
	if issue := fmsg.GetIssue(err); issue != "" {
		return issue
	}
	return err.Error()
}
