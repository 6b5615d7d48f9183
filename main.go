package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/njyeung/termvid/config"
	"github.com/njyeung/termvid/logs"
	"github.com/njyeung/termvid/player"
	"github.com/njyeung/termvid/subtitle"
	"github.com/njyeung/termvid/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type flags struct {
	audio        bool
	subs         bool
	quality      string
	audioBackend string
	noIntro      bool
	verbose      bool
	configPath   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "termvid <video>",
		Short:         "Play a video in the terminal as coloured text blocks",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := run(ctx, cmd, args[0], f)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&f.audio, "audio", false, "play the soundtrack")
	cmd.Flags().BoolVar(&f.subs, "subs", false, "show subtitles from a sidecar .srt/.vtt/.ass file")
	cmd.Flags().StringVar(&f.quality, "quality", "high", "render quality: high, medium or low")
	cmd.Flags().StringVar(&f.audioBackend, "audio-backend", "ffplay", "audio backend: ffplay or native")
	cmd.Flags().BoolVar(&f.noIntro, "no-intro", false, "start playback without the info screen")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "write debug logs to the log file")
	cmd.Flags().StringVar(&f.configPath, "config", "", "settings file (default: <config dir>/termvid.conf)")
	return cmd
}

// resolveSettings layers flags that were given explicitly over the settings file
func resolveSettings(cmd *cobra.Command, f flags) (config.Settings, error) {
	path := f.configPath
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return config.Defaults(), nil
		}
		path = filepath.Join(dir, config.FileName)
		if err := config.EnsureFile(path); err != nil {
			logs.LogV("could not create %s: %v", path, err)
		}
	}

	s, err := config.Load(path)
	if err != nil {
		return s, err
	}

	changed := cmd.Flags().Changed
	if changed("quality") {
		s.Quality = f.quality
	}
	if changed("audio") {
		s.Audio = f.audio
	}
	if changed("subs") {
		s.Subtitles = f.subs
	}
	if changed("audio-backend") {
		s.AudioBackend = f.audioBackend
	}
	if changed("no-intro") {
		s.ShowIntro = !f.noIntro
	}
	return s, nil
}

func audioMode(s config.Settings) (player.AudioMode, error) {
	if !s.Audio {
		return player.AudioOff, nil
	}
	switch strings.ToLower(s.AudioBackend) {
	case "", "ffplay":
		return player.AudioFFplay, nil
	case "native":
		return player.AudioNative, nil
	}
	return player.AudioOff, fmt.Errorf("unknown audio backend %q (want ffplay or native)", s.AudioBackend)
}

func loadSubtitles(videoPath string) (*subtitle.Track, string) {
	path, ok := subtitle.FindSidecar(videoPath)
	if !ok {
		fmt.Fprintln(os.Stderr, "Warning: no subtitle file found next to the video")
		return nil, ""
	}
	track, err := subtitle.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: subtitles disabled: %v\n", err)
		return nil, ""
	}
	logs.LogV("loaded %d cues from %s", track.Len(), path)
	return track, path
}

// run plays videoPath. Cancelling ctx at any point, intro included, ends
// with "Playback stopped." and no error.
func run(ctx context.Context, cmd *cobra.Command, videoPath string, f flags) error {
	out := cmd.OutOrStdout()

	logs.SetVerbose(f.verbose)
	if logs.Verbose() {
		if dir, err := config.Dir(); err == nil {
			if logPath, closeLog, err := logs.Init(dir); err == nil {
				defer closeLog()
				logs.LogV("logging to %s", logPath)
			}
		}
	}

	if _, err := os.Stat(videoPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("file not found: %s", videoPath)
		}
		return err
	}

	settings, err := resolveSettings(cmd, f)
	if err != nil {
		return err
	}
	quality, err := player.ParseQuality(settings.Quality)
	if err != nil {
		return err
	}
	mode, err := audioMode(settings)
	if err != nil {
		return err
	}

	var warning string
	if !player.SupportsTrueColor(os.Getenv) {
		warning = "Your terminal may not support 24-bit colour; the picture may look wrong."
		fmt.Fprintln(os.Stderr, "Warning: "+warning)
	}

	opts := player.Options{
		Quality:    quality,
		Audio:      mode,
		SyncOutput: true,
		Warn: func(msg string) {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
		},
	}

	var subPath string
	if settings.Subtitles {
		var track *subtitle.Track
		track, subPath = loadSubtitles(videoPath)
		if track != nil {
			opts.Subtitles = track
		}
	}

	info, err := player.Probe(videoPath)
	if err != nil {
		return fmt.Errorf("could not open video: %w", err)
	}

	if settings.ShowIntro && term.IsTerminal(int(os.Stdout.Fd())) {
		intro := tui.Intro{
			Name:     filepath.Base(videoPath),
			Info:     info,
			Quality:  quality,
			Subtitle: subPath,
			Warning:  warning,
		}
		if mode != player.AudioOff {
			intro.Audio = strings.ToLower(settings.AudioBackend)
		}
		aborted, err := tui.Run(ctx, intro)
		if err != nil {
			logs.LogV("intro: %v", err)
		}
		if aborted {
			fmt.Fprintln(out, "Playback stopped.")
			return nil
		}
	}

	if ctx.Err() != nil {
		fmt.Fprintln(out, "Playback stopped.")
		return nil
	}

	stats, err := player.New(opts).Play(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	logs.LogV("[%s] played %d frames, interrupted=%t", stats.ID, stats.Frames, stats.Interrupted)

	fmt.Fprintln(out, "\nPlayback stopped.")
	return nil
}
