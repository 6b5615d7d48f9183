package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/njyeung/termvid/logs"
)

// CueLookup returns the subtitle text shown at t, or "" for none
type CueLookup interface {
	At(t time.Duration) string
}

// lineCounter is implemented by cue tracks that know their tallest cue
type lineCounter interface {
	MaxLines() int
}

// subtitleRows is how many rows to keep free for cues
func subtitleRows(subs CueLookup) int {
	if subs == nil {
		return 0
	}
	if lc, ok := subs.(lineCounter); ok {
		return lc.MaxLines()
	}
	return DefaultSubtitleRows
}

// Stats describes how a playback ended
type Stats struct {
	ID          string // identifies the session in the log
	Frames      int    // frames written to the terminal
	Interrupted bool   // stopped before the source ran out
	Geometry    Geometry
	Info        SourceInfo
}

type playSession struct {
	id       string
	source   Source
	audio    AudioOutput
	renderer *BlockRenderer
	clock    *Clock
	subs     CueLookup
	info     SourceInfo

	stopCh   chan struct{}
	stopOnce sync.Once
}

type sessionConfig struct {
	output     io.Writer
	quality    Quality
	termCols   int
	termRows   int
	syncOutput bool
	subs       CueLookup

	openSource func(path string) (Source, error)
	newAudio   func(path string, src Source) (AudioOutput, error)
	warn       func(msg string)
}

func newPlaySession(path string, cfg sessionConfig) (*playSession, error) {
	source, err := cfg.openSource(path)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	info := source.Info()
	cols, rows := cfg.termCols, cfg.termRows
	if cols <= 0 || rows <= 0 {
		cols, rows = TerminalCells()
	}
	geometry := ComputeGeometryWithOverlay(cols, rows, info.Width, info.Height, cfg.quality,
		OverlayRows+subtitleRows(cfg.subs))
	if err := source.SetSize(geometry.PixelWidth, geometry.PixelHeight); err != nil {
		source.Close()
		return nil, fmt.Errorf("failed to size source: %w", err)
	}
	logs.LogV("[%s] %s: %dx%d @ %.2f fps, %d frames; grid %dx%d (%s)",
		id, path, info.Width, info.Height, info.FPS, info.FrameCount, geometry.Cols, geometry.Rows, geometry.Quality)

	var audio AudioOutput
	if cfg.newAudio != nil {
		audio, err = cfg.newAudio(path, source)
		if err != nil {
			cfg.warnf("audio disabled: %v", err)
			audio = nil
		}
	}

	renderer := NewBlockRenderer(cfg.output, geometry)
	renderer.SetSyncOutput(cfg.syncOutput)

	return &playSession{
		id:       id,
		source:   source,
		audio:    audio,
		renderer: renderer,
		clock:    NewClock(info.FPS),
		subs:     cfg.subs,
		info:     info,
		stopCh:   make(chan struct{}),
	}, nil
}

func (cfg sessionConfig) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logs.LogV("%s", msg)
	if cfg.warn != nil {
		cfg.warn(msg)
	}
}

// run renders frames until the source ends, ctx is done or stop is called.
// Terminal state and audio are restored by cleanup, which the caller defers.
func (s *playSession) run(ctx context.Context, cfg sessionConfig) (Stats, error) {
	stats := Stats{ID: s.id, Geometry: s.renderer.Geometry(), Info: s.info}

	if s.audio != nil {
		if err := s.audio.Start(); err != nil {
			cfg.warnf("audio disabled: %v", err)
			s.audio = nil
		}
	}

	if err := s.renderer.Begin(); err != nil {
		return stats, fmt.Errorf("render error: %w", err)
	}

	// merge the session stop channel into the context so pacing sleeps wake on both
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	s.clock.Start()
	for {
		if ctx.Err() != nil {
			stats.Interrupted = true
			return stats, nil
		}

		frame, err := s.source.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}

		overlay := OverlayState{
			Width:       stats.Geometry.Cols,
			Frame:       stats.Frames + 1,
			TotalFrames: s.info.FrameCount,
			Position:    frame.PTS,
			Duration:    s.info.Duration,
		}
		if s.subs != nil {
			overlay.Subtitle = s.subs.At(frame.PTS)
		}

		if err := s.renderer.RenderFrame(frame, overlay.Lines()); err != nil {
			return stats, fmt.Errorf("render error: %w", err)
		}
		stats.Frames++

		if err := s.clock.Wait(ctx); err != nil {
			stats.Interrupted = true
			return stats, nil
		}
	}
}

func (s *playSession) stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// cleanup restores the terminal, stops audio and closes the source.
// It runs on every exit path of a session.
func (s *playSession) cleanup() {
	if err := s.renderer.Restore(); err != nil {
		logs.LogV("[%s] restore terminal: %v", s.id, err)
	}
	if s.audio != nil {
		if err := s.audio.Stop(); err != nil {
			logs.LogV("[%s] stop audio: %v", s.id, err)
		}
		s.audio = nil
	}
	if s.source != nil {
		s.source.Close()
		s.source = nil
	}
}
