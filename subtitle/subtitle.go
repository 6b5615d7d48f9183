// Package subtitle finds and loads sidecar subtitle files and answers
// "what is on screen at t" for the render loop.
package subtitle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/asticode/go-astisub"
)

// sidecarExts are tried in order next to the video
var sidecarExts = []string{".srt", ".vtt", ".ass", ".ssa"}

// Cue is a subtitle entry shown between Start and End inclusive
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Track is an immutable list of cues
type Track struct {
	Cues []Cue
}

// FindSidecar returns the subtitle file sharing the video's base name
func FindSidecar(videoPath string) (string, bool) {
	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	for _, ext := range sidecarExts {
		p := base + ext
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Load parses a subtitle file, the format is taken from its extension
func Load(path string) (*Track, error) {
	subs, err := astisub.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subtitles %s: %w", filepath.Base(path), err)
	}
	return FromSubtitles(subs), nil
}

// ParseSRT reads SubRip text
func ParseSRT(r io.Reader) (*Track, error) {
	subs, err := astisub.ReadFromSRT(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse srt: %w", err)
	}
	return FromSubtitles(subs), nil
}

// FromSubtitles flattens parsed items into cues, one text line per subtitle line
func FromSubtitles(subs *astisub.Subtitles) *Track {
	t := &Track{Cues: make([]Cue, 0, len(subs.Items))}
	for _, item := range subs.Items {
		lines := make([]string, 0, len(item.Lines))
		for _, l := range item.Lines {
			lines = append(lines, l.String())
		}
		t.Cues = append(t.Cues, Cue{
			Start: item.StartAt,
			End:   item.EndAt,
			Text:  strings.Join(lines, "\n"),
		})
	}
	return t
}

// At returns the text of the first cue containing ts, or "".
// A nil track has no cues.
func (t *Track) At(ts time.Duration) string {
	if t == nil {
		return ""
	}
	for _, c := range t.Cues {
		if c.Start <= ts && ts <= c.End {
			return c.Text
		}
	}
	return ""
}

// Len returns the number of cues
func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Cues)
}

// MaxLines returns the line count of the tallest cue
func (t *Track) MaxLines() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, c := range t.Cues {
		n = max(n, strings.Count(c.Text, "\n")+1)
	}
	return n
}
