package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mjuvekar7/Symphonia"
	"github.com/mjuvekar7/Symphonia/cmd"
	"github.com/mjuvekar7/Symphonia/config"
	"github.com/mjuvekar7/Symphonia/interp"
	"github.com/mjuvekar7/Symphonia/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
	beat       float64
	dynamic    string

	cfg    config.Config
	logger = zap.NewNop()

	rootCmd = &cobra.Command{
		Use:   "symphonia",
		Short: "compose a melody on a treble staff by typing commands",
		Long: `Symphonia builds a tune from typed commands such as "add C# 1 +1 mf",
draws it on treble staves and plays it back. Without a subcommand it starts
the interactive shell.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(*cobra.Command, []string) { logger.Sync() },
		RunE:              shellCmd,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(c.OutOrStdout(), version.String())
		},
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/symphonia/config.yml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log what the program does")
	pf.Float64Var(&beat, "beat", symphonia.BeatSeconds, "length of a beat in seconds")
	pf.StringVar(&dynamic, "dynamic", symphonia.DefaultDynamic.String(), "dynamic of notes added without one")
	rootCmd.AddCommand(shellCommand, playCmd, renderCmd, midiCmd, wavCmd, engraveCmd, portsCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(c *cobra.Command, args []string) error {
	logger = cmd.NewLogger(verbose)
	var err error
	if cfg, err = config.Load(configPath); err != nil {
		return err
	}
	if c.Flags().Changed("beat") {
		cfg.Beat = beat
	}
	if c.Flags().Changed("dynamic") {
		cfg.Dynamic = dynamic
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Debug("configuration loaded", zap.Float64("beat", cfg.Beat), zap.String("dynamic", cfg.Dynamic), zap.String("backend", string(cfg.Audio.Backend)))
	return nil
}

func newSession() *interp.Session {
	d, _ := cfg.ParsedDynamic() // validated in setup
	return interp.NewSession(cfg.BeatDuration(), d)
}

// loadTune reads the notes a command file builds. Rejected lines are
// reported on the error stream of c and otherwise skipped.
func loadTune(ctx context.Context, c *cobra.Command, path string) ([]symphonia.Note, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	notes, failures, err := interp.ReadCommandFile(ctx, f, newSession())
	if err != nil {
		return nil, fmt.Errorf("%s: %s", path, symphonia.Feedback(err))
	}
	for _, msg := range failures {
		fmt.Fprintln(c.ErrOrStderr(), cmd.ErrorStyle.Render(path+", "+msg))
	}
	if len(failures) > 0 {
		logger.Warn("command file has rejected lines", zap.String("path", path), zap.Int("rejected", len(failures)))
	}
	logger.Debug("loaded tune", zap.String("path", path), zap.Int("notes", len(notes)))
	return notes, nil
}

// outputPath returns flag if given, else input with its extension replaced.
func outputPath(flag, input, ext string) string {
	if flag != "" {
		return flag
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

func title(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
