package player

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asticode/go-astiav"
)

func init() {
	// Suppress FFmpeg log messages, they would tear the rendered frame
	astiav.SetLogLevel(astiav.LogLevelQuiet)
}

// Source yields decoded frames in presentation order
type Source interface {
	// Info returns the properties probed when the source was opened
	Info() SourceInfo

	// SetSize asks the source to scale frames to the given pixel size.
	// Sources that cannot scale ignore it and the renderer downsamples instead.
	SetSize(width, height int) error

	// Next returns the next frame, or io.EOF once the source is exhausted
	Next() (*Frame, error)

	// Close releases all resources
	Close()
}

// AudioOutput plays the soundtrack alongside the render loop
type AudioOutput interface {
	// Start begins playback
	Start() error

	// Stop asks playback to end and waits until it has
	Stop() error
}

// SourceInfo describes an opened source
type SourceInfo struct {
	Width      int           // Source width in pixels
	Height     int           // Source height in pixels
	FPS        float64       // Nominal frame rate
	FrameCount int           // Total frames, 0 when unknown
	Duration   time.Duration // Total playback time
}

// Frame represents a decoded video frame
type Frame struct {
	RGB    []byte        // RGB24 pixel data
	Width  int           // Frame width in pixels
	Height int           // Frame height in pixels
	PTS    time.Duration // Presentation timestamp
}

// At returns the pixel at (x, y)
func (f *Frame) At(x, y int) (r, g, b uint8) {
	i := (y*f.Width + x) * 3
	return f.RGB[i], f.RGB[i+1], f.RGB[i+2]
}

// Quality selects the downsample resolution and glyph mapping
type Quality int

const (
	QualityHigh Quality = iota
	QualityMedium
	QualityLow
)

// ParseQuality accepts "high", "medium" or "low" in any case
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return QualityHigh, nil
	case "medium":
		return QualityMedium, nil
	case "low":
		return QualityLow, nil
	}
	return QualityHigh, fmt.Errorf("unknown quality %q (want high, medium or low)", s)
}

func (q Quality) String() string {
	switch q {
	case QualityHigh:
		return "high"
	case QualityMedium:
		return "medium"
	case QualityLow:
		return "low"
	}
	return fmt.Sprintf("quality(%d)", int(q))
}

// HalfBlocks reports whether two pixel rows share one character row
func (q Quality) HalfBlocks() bool {
	return q == QualityHigh
}

var (
	// ErrNoVideoStream is returned when a file has no decodable video
	ErrNoVideoStream = errors.New("no video stream found")

	// ErrSourceClosed is returned by Next after Close
	ErrSourceClosed = errors.New("source closed")
)

const (
	// DefaultFPS is used when the container does not report a frame rate
	DefaultFPS = 24.0

	// AudioSampleRate for resampling
	AudioSampleRate = 44100

	// Fallback terminal size when the size cannot be queried
	DefaultTermCols = 120
	DefaultTermRows = 40

	// OverlayRows are always reserved below the grid: a blank gap, the
	// progress bar and the time readout
	OverlayRows = 3

	// DefaultSubtitleRows are reserved for cues when the track cannot say
	// how many lines its longest cue has
	DefaultSubtitleRows = 2
)
