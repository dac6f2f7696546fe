package interp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mjuvekar7/Symphonia"
	"go.uber.org/zap"
)

// FileHeader is the first line of every command file, compared without
// regard to case.
const FileHeader = "Symphonia Command File"

func (in *Interpreter) importCmd(ctx context.Context, line string) Result {
	path := strings.TrimSpace(strings.TrimPrefix(line, "import"))
	if path == "" {
		return fail(grammar("Usage: import <file>"))
	}
	if in.inFile {
		return fail(symphonia.NewError(symphonia.InvalidFile, "Cannot import from a command file."))
	}
	return in.Import(ctx, path)
}

func (in *Interpreter) exportCmd(ctx context.Context, line string) Result {
	path := strings.TrimSpace(strings.TrimPrefix(line, "export"))
	if path == "" {
		return fail(grammar("Usage: export <file>"))
	}
	if err := in.ExportFile(path); err != nil {
		return fail(err)
	}
	return ok("Exported tune successfully. You can now import the file produced to recover the tune.")
}

// Import runs the command file at path.
func (in *Interpreter) Import(ctx context.Context, path string) Result {
	f, err := os.Open(path)
	if err != nil {
		in.logger.Warn("cannot open command file", zap.String("path", path), zap.Error(err))
		return fail(symphonia.NewError(symphonia.InvalidFile, "Invalid File: "+err.Error()))
	}
	defer f.Close()
	return in.ImportReader(ctx, filepath.Base(path), f)
}

// ImportReader runs the commands read from r as if they were typed, except
// that exit and import are refused. Reading stops at the first structural
// problem; the lines run until then stay applied.
func (in *Interpreter) ImportReader(ctx context.Context, name string, r io.Reader) Result {
	res, _ := in.importReader(ctx, name, r)
	return res
}

// importReader also returns the feedback of every rejected line, prefixed
// with its line number.
func (in *Interpreter) importReader(ctx context.Context, name string, r io.Reader) (Result, []string) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fail(symphonia.NewError(symphonia.InvalidFile, "Invalid File: "+err.Error())), nil
		}
		return fail(symphonia.NewError(symphonia.InvalidFile, "File is empty.")), nil
	}
	if !strings.EqualFold(strings.TrimSpace(scanner.Text()), FileHeader) {
		return fail(symphonia.NewError(symphonia.InvalidFile, `Invalid File: All command files must start with "`+FileHeader+`".`)), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Importing Command File: %s...\n", name)
	in.inFile = true
	defer func() { in.inFile = false }()
	lines, number := 0, 1
	var failures []string
	for scanner.Scan() {
		number++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines++
		r := in.Execute(ctx, line)
		if symphonia.KindOf(r.Err) == symphonia.UnknownCommand {
			keyword, _, _ := strings.Cut(line, " ")
			r.Feedback = keyword + " - " + r.Feedback
		}
		if r.Err != nil {
			failures = append(failures, fmt.Sprintf("line %d: %s", number, r.Feedback))
		}
		if r.Feedback != "" {
			b.WriteString(r.Feedback)
			b.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		b.WriteString("Invalid File: " + err.Error())
		err := symphonia.NewError(symphonia.InvalidFile, b.String())
		return Result{Feedback: b.String(), Err: err}, failures
	}
	in.logger.Info("imported command file", zap.String("name", name), zap.Int("lines", lines), zap.Int("failed", len(failures)))
	b.WriteString("File imported successfully.")
	return ok(b.String()), failures
}

// Export writes the tune as a command file that rebuilds it.
func (in *Interpreter) Export(w io.Writer) error {
	return WriteCommandFile(w, in.session.Tune.Notes())
}

// ExportFile writes the command file to path.
func (in *Interpreter) ExportFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return symphonia.NewError(symphonia.InvalidFile, "Could not create file: "+err.Error())
	}
	if err := in.Export(f); err != nil {
		f.Close()
		return symphonia.NewError(symphonia.InvalidFile, "Could not write file: "+err.Error())
	}
	if err := f.Close(); err != nil {
		return symphonia.NewError(symphonia.InvalidFile, "Could not write file: "+err.Error())
	}
	in.logger.Info("exported tune", zap.String("path", path), zap.Int("notes", in.session.Tune.Len()))
	return nil
}

// WriteCommandFile writes the header and one add line per note.
func WriteCommandFile(w io.Writer, notes []symphonia.Note) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, FileHeader)
	for _, n := range notes {
		fmt.Fprintln(bw, "add "+n.Describe())
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not write command file: %w", err)
	}
	return nil
}

// ReadCommandFile runs a command file in s, for tools that only need the
// tune it builds. Besides the notes it returns the feedback of every line
// that was rejected, such as "line 3: Invalid note name.".
func ReadCommandFile(ctx context.Context, r io.Reader, s *Session) ([]symphonia.Note, []string, error) {
	in := New(s, WithCapacity(unlimited{}))
	res, failures := in.importReader(ctx, "", r)
	if res.Err != nil {
		return nil, failures, res.Err
	}
	return s.Tune.Notes(), failures, nil
}

type unlimited struct{}

func (unlimited) Full() bool { return false }
