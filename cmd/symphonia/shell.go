package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/mjuvekar7/Symphonia/cmd"
	"github.com/mjuvekar7/Symphonia/interp"
	"github.com/spf13/cobra"
)

var shellCommand = &cobra.Command{
	Use:   "shell",
	Short: "read commands from the terminal, one per line",
	Long: `Reads commands from standard input until exit or end of input. Type help
for the list of commands. Ctrl-C stops a tune that is playing.`,
	Args: cobra.NoArgs,
	RunE: shellCmd,
}

func shellCmd(c *cobra.Command, args []string) error {
	inst, err := cmd.NewInstrument(cfg.Audio, logger)
	if err != nil {
		fmt.Fprintln(c.ErrOrStderr(), cmd.NoticeStyle.Render("No audio output, playback will be silent: "+err.Error()))
	}
	defer inst.Close()
	in := interp.New(newSession(),
		interp.WithPlayer(inst),
		interp.WithLayout(cfg.Layout),
		interp.WithLogger(logger))
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	return repl(c.Context(), in, c.InOrStdin(), c.OutOrStdout(), interactive)
}

func repl(ctx context.Context, in *interp.Interpreter, r io.Reader, w io.Writer, interactive bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if interactive {
		fmt.Fprintln(w, cmd.NoticeStyle.Render("Symphonia. Type help for the commands, exit to leave."))
	}
	scanner := bufio.NewScanner(r)
	for {
		if interactive {
			fmt.Fprint(w, cmd.PromptStyle.Render("♪ "))
		}
		if !scanner.Scan() {
			break
		}
		res := execute(ctx, in, scanner.Text())
		if res.Feedback != "" {
			if res.Err != nil {
				fmt.Fprintln(w, cmd.ErrorStyle.Render(res.Feedback))
			} else {
				fmt.Fprintln(w, res.Feedback)
			}
		}
		if res.Exit {
			return nil
		}
	}
	return scanner.Err()
}

// execute runs one line; an interrupt while it runs cancels it instead of
// ending the program.
func execute(ctx context.Context, in *interp.Interpreter, line string) interp.Result {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return in.Execute(ctx, line)
}
