package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/mjuvekar7/Symphonia"
	"github.com/mjuvekar7/Symphonia/cmd"
	"github.com/mjuvekar7/Symphonia/engrave"
	"github.com/mjuvekar7/Symphonia/layout"
	"github.com/mjuvekar7/Symphonia/midifile"
	"github.com/mjuvekar7/Symphonia/render"
	"github.com/mjuvekar7/Symphonia/synth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	output   string
	abc      bool
	float32s bool
	scale    float64

	playCmd = &cobra.Command{
		Use:   "play [command-file]",
		Short: "play the tune a command file builds",
		Args:  cobra.ExactArgs(1),
		RunE:  playFileCmd,
	}

	renderCmd = &cobra.Command{
		Use:   "render [command-file]",
		Short: "draw the staves of a tune to .png, .pdf or a .yml glyph list",
		Args:  cobra.ExactArgs(1),
		RunE:  renderFileCmd,
	}

	midiCmd = &cobra.Command{
		Use:   "midi [command-file]",
		Short: "write the tune as a standard MIDI file",
		Args:  cobra.ExactArgs(1),
		RunE:  midiFileCmd,
	}

	wavCmd = &cobra.Command{
		Use:   "wav [command-file]",
		Short: "render the tune with the built in synth to a .wav file",
		Args:  cobra.ExactArgs(1),
		RunE:  wavFileCmd,
	}

	engraveCmd = &cobra.Command{
		Use:   "engrave [command-file]",
		Short: "print the tune as LilyPond, or ABC with --abc",
		Args:  cobra.ExactArgs(1),
		RunE:  engraveFileCmd,
	}

	portsCmd = &cobra.Command{
		Use:   "ports",
		Short: "list the MIDI output ports",
		Args:  cobra.NoArgs,
		RunE:  portsListCmd,
	}
)

func init() {
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "output file; the extension picks the format (default <command-file>.png)")
	renderCmd.Flags().Float64Var(&scale, "scale", 1, "pixels per point of png output")
	midiCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <command-file>.mid)")
	wavCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <command-file>.wav)")
	wavCmd.Flags().BoolVar(&float32s, "float", false, "write 32-bit float samples instead of 16-bit PCM")
	engraveCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default standard output)")
	engraveCmd.Flags().BoolVar(&abc, "abc", false, "write ABC notation instead of LilyPond")
}

func interruptible(c *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}

func playFileCmd(c *cobra.Command, args []string) error {
	ctx, stop := interruptible(c)
	defer stop()
	notes, err := loadTune(ctx, c, args[0])
	if err != nil {
		return err
	}
	inst, err := cmd.NewInstrument(cfg.Audio, logger)
	if err != nil {
		return fmt.Errorf("cannot play: %w", err)
	}
	defer inst.Close()
	err = symphonia.Play(ctx, notes, cfg.BeatDuration(), inst, symphonia.WallClock{})
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(c.ErrOrStderr(), cmd.NoticeStyle.Render("Stopped."))
		return nil
	}
	return err
}

func renderFileCmd(c *cobra.Command, args []string) error {
	notes, err := loadTune(c.Context(), c, args[0])
	if err != nil {
		return err
	}
	path := outputPath(output, args[0], ".png")
	r, err := render.ForPath(path)
	if err != nil {
		return err
	}
	if p, ok := r.(render.PNG); ok {
		p.Scale = scale
		r = p
	}
	page := layout.Layout(notes, cfg.Layout)
	if page.Overflow > 0 {
		fmt.Fprintln(c.ErrOrStderr(), cmd.NoticeStyle.Render(fmt.Sprintf("%d notes do not fit on the page and were left out.", page.Overflow)))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Render(f, page); err != nil {
		f.Close()
		return err
	}
	logger.Info("rendered page", zap.String("path", path), zap.Int("systems", len(page.Systems)))
	return f.Close()
}

func midiFileCmd(c *cobra.Command, args []string) error {
	notes, err := loadTune(c.Context(), c, args[0])
	if err != nil {
		return err
	}
	path := outputPath(output, args[0], ".mid")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := midifile.Write(c.Context(), f, notes, cfg.BeatDuration()); err != nil {
		f.Close()
		return err
	}
	logger.Info("wrote midi file", zap.String("path", path))
	return f.Close()
}

func wavFileCmd(c *cobra.Command, args []string) error {
	ctx, stop := interruptible(c)
	defer stop()
	notes, err := loadTune(ctx, c, args[0])
	if err != nil {
		return err
	}
	buffer, err := synth.Render(ctx, notes, cfg.BeatDuration(), cfg.Audio.SampleRate)
	if err != nil {
		return err
	}
	wav, err := synth.Wav(buffer, cfg.Audio.SampleRate, !float32s)
	if err != nil {
		return err
	}
	path := outputPath(output, args[0], ".wav")
	if err := os.WriteFile(path, wav, 0o644); err != nil {
		return err
	}
	logger.Info("wrote wav file", zap.String("path", path), zap.Int("frames", len(buffer)/2))
	return nil
}

func engraveFileCmd(c *cobra.Command, args []string) error {
	notes, err := loadTune(c.Context(), c, args[0])
	if err != nil {
		return err
	}
	e, err := engrave.New()
	if err != nil {
		return err
	}
	ext := ".ly"
	if abc {
		ext = ".abc"
	}
	text, err := e.Format(ext, title(args[0]), notes)
	if err != nil {
		return err
	}
	if output == "" {
		_, err := fmt.Fprint(c.OutOrStdout(), text)
		return err
	}
	return os.WriteFile(output, []byte(text), 0o644)
}

func portsListCmd(c *cobra.Command, args []string) error {
	ports, err := cmd.MidiPorts()
	if err != nil {
		return err
	}
	for _, p := range ports {
		fmt.Fprintln(c.OutOrStdout(), p)
	}
	return nil
}
