package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/njyeung/termvid/config"
	"github.com/njyeung/termvid/player"
)

func TestFlagsOverrideSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(path, []byte("quality = low\naudio = true\nshow_intro = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	if err := cmd.Flags().Parse([]string{"--config", path, "--quality", "medium", "--no-intro"}); err != nil {
		t.Fatal(err)
	}
	f := flags{quality: "medium", noIntro: true, configPath: path, audioBackend: "ffplay"}

	s, err := resolveSettings(cmd, f)
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if s.Quality != "medium" {
		t.Errorf("expected flag quality medium, got %q", s.Quality)
	}
	if !s.Audio {
		t.Error("expected audio from settings file when flag not given")
	}
	if s.ShowIntro {
		t.Error("expected --no-intro to disable the intro")
	}
}

func TestAudioMode(t *testing.T) {
	tests := []struct {
		settings config.Settings
		want     player.AudioMode
		wantErr  bool
	}{
		{config.Settings{Audio: false, AudioBackend: "native"}, player.AudioOff, false},
		{config.Settings{Audio: true, AudioBackend: "ffplay"}, player.AudioFFplay, false},
		{config.Settings{Audio: true, AudioBackend: "Native"}, player.AudioNative, false},
		{config.Settings{Audio: true, AudioBackend: "vlc"}, player.AudioOff, true},
	}

	for _, tt := range tests {
		got, err := audioMode(tt.settings)
		if (err != nil) != tt.wantErr {
			t.Errorf("audioMode(%+v) error = %v, wantErr %v", tt.settings, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("audioMode(%+v) = %v, want %v", tt.settings, got, tt.want)
		}
	}
}

func TestMissingFileFails(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := newRootCmd()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.mp4"), "--no-intro"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for a missing video")
	}
}

func writeTestGif(t *testing.T) string {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.White})
	path := filepath.Join(t.TempDir(), "clip.gif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &gif.GIF{Image: []*image.Paletted{img}, Delay: []int{10}}); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInterruptBeforePlaybackStopsCleanly(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := writeTestGif(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path, "--no-intro"})

	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("expected a clean exit, got %v", err)
	}
	if !strings.Contains(out.String(), "Playback stopped.") {
		t.Errorf("expected stop message, got %q", out.String())
	}
}
