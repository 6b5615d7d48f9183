package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileName is the settings file inside the config directory
const FileName = "termvid.conf"

// Settings are the defaults used when a flag is not given
type Settings struct {
	Quality      string // high, medium or low
	Audio        bool
	Subtitles    bool
	AudioBackend string // ffplay or native
	ShowIntro    bool
}

// Defaults returns the built-in settings
func Defaults() Settings {
	return Settings{
		Quality:      "high",
		Audio:        false,
		Subtitles:    false,
		AudioBackend: "ffplay",
		ShowIntro:    true,
	}
}

// Dir returns $XDG_CONFIG_HOME/termvid or the platform equivalent
func Dir() (string, error) {
	d, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "termvid"), nil
}

// Load reads path over the defaults. A missing file is not an error.
// Unknown keys and unparsable values are ignored.
func Load(path string) (Settings, error) {
	s := Defaults()

	conf, err := parseConf(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("could not read %s: %w", path, err)
	}

	if v, ok := conf["quality"]; ok && v != "" {
		s.Quality = strings.ToLower(v)
	}
	if v, ok := conf["audio"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Audio = b
		}
	}
	if v, ok := conf["subtitles"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Subtitles = b
		}
	}
	if v, ok := conf["audio_backend"]; ok && v != "" {
		s.AudioBackend = strings.ToLower(v)
	}
	if v, ok := conf["show_intro"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.ShowIntro = b
		}
	}

	return s, nil
}

// EnsureFile writes the default settings to path if it does not exist yet
func EnsureFile(path string) error {
	if _, err := os.Stat(path); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	return Write(path, Defaults())
}

// Write stores s at path
func Write(path string, s Settings) error {
	var b strings.Builder
	b.WriteString("# termvid config\n\n")
	b.WriteString("# high, medium or low\n")
	fmt.Fprintf(&b, "quality = %s\n", s.Quality)
	fmt.Fprintf(&b, "audio = %t\n", s.Audio)
	fmt.Fprintf(&b, "subtitles = %t\n", s.Subtitles)
	b.WriteString("# ffplay runs an external player, native decodes in-process\n")
	fmt.Fprintf(&b, "audio_backend = %s\n", s.AudioBackend)
	fmt.Fprintf(&b, "show_intro = %t\n", s.ShowIntro)
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func parseConf(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	result := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k, v, ok := strings.Cut(line, "="); ok {
			result[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return result, scanner.Err()
}
