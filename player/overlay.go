package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// OverlayState is what the lines under the grid are built from
type OverlayState struct {
	Width       int // grid width in cells
	Frame       int // 1-based index of the frame on screen
	TotalFrames int
	Position    time.Duration
	Duration    time.Duration
	Subtitle    string
}

// Lines returns the progress bar, the time readout and any subtitle lines
func (s OverlayState) Lines() []string {
	progress := 0.0
	if s.TotalFrames > 0 {
		progress = float64(s.Frame) / float64(s.TotalFrames)
	}

	total := "?"
	if s.TotalFrames > 0 {
		total = fmt.Sprint(s.TotalFrames)
	}

	lines := []string{
		ProgressBar(s.Width, progress),
		fmt.Sprintf("  %s / %s  |   Frame %d/%s", FormatTime(s.Position), FormatTime(s.Duration), s.Frame, total),
	}
	if s.Subtitle != "" {
		lines = append(lines, CenterLines(s.Subtitle, s.Width)...)
	}
	return lines
}

// ProgressBar renders "[====    ] 50.0%" with width cells between the brackets
func ProgressBar(width int, progress float64) string {
	progress = min(max(progress, 0), 1)
	width = max(width, 0)
	filled := int(float64(width) * progress)
	return fmt.Sprintf("[%s%s] %.1f%%", strings.Repeat("=", filled), strings.Repeat(" ", width-filled), progress*100)
}

// FormatTime formats d as MM:SS, minutes are not wrapped at an hour
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// CenterLines splits text on newlines and left-pads each line to centre it in width cells
func CenterLines(text string, width int) []string {
	parts := strings.Split(text, "\n")
	lines := make([]string, 0, len(parts))
	for _, line := range parts {
		pad := max((width-runewidth.StringWidth(line))/2, 0)
		lines = append(lines, strings.Repeat(" ", pad)+line)
	}
	return lines
}
