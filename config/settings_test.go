package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.conf"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if s != Defaults() {
		t.Errorf("expected defaults, got %+v", s)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	conf := `# comment
quality = LOW
audio = true
subtitles=true
audio_backend = native
show_intro = false
bogus = 1
`
	if err := os.WriteFile(path, []byte(conf), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Settings{
		Quality:      "low",
		Audio:        true,
		Subtitles:    true,
		AudioBackend: "native",
		ShowIntro:    false,
	}
	if s != want {
		t.Errorf("expected %+v, got %+v", want, s)
	}
}

func TestLoadIgnoresBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("audio = maybe\nshow_intro = nah\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Audio != Defaults().Audio || s.ShowIntro != Defaults().ShowIntro {
		t.Errorf("expected unparsable values to keep defaults, got %+v", s)
	}
}

func TestEnsureFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)
	if err := EnsureFile(path); err != nil {
		t.Fatalf("EnsureFile: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != Defaults() {
		t.Errorf("expected written defaults to load back, got %+v", s)
	}

	// an existing file is left alone
	custom := Defaults()
	custom.Quality = "medium"
	if err := Write(path, custom); err != nil {
		t.Fatal(err)
	}
	if err := EnsureFile(path); err != nil {
		t.Fatalf("EnsureFile on existing file: %v", err)
	}
	if s, _ := Load(path); s.Quality != "medium" {
		t.Errorf("expected existing file to be kept, got quality %q", s.Quality)
	}
}
