package player

import (
	"context"
	"io"
	"os"
	"sync"
)

// AudioMode selects how the soundtrack is played
type AudioMode int

const (
	AudioOff    AudioMode = iota
	AudioFFplay           // external ffplay process
	AudioNative           // decoded in-process, played through the speaker
)

// Options configure a Player
type Options struct {
	Quality   Quality
	Audio     AudioMode
	Subtitles CueLookup // nil disables subtitles

	// Terminal size in cells, queried from stdout when zero
	TermCols int
	TermRows int

	// SyncOutput wraps frames in synchronized update markers
	SyncOutput bool

	// Warn receives non-fatal problems such as a missing audio player
	Warn func(msg string)
}

// Player renders video files to a terminal
type Player struct {
	opts   Options
	output io.Writer

	openSource func(path string) (Source, error)
	newAudio   func(path string, src Source) (AudioOutput, error)

	playMu   sync.Mutex
	configMu sync.Mutex

	sessionMu sync.Mutex
	session   *playSession
}

// New creates a player writing to stdout
func New(opts Options) *Player {
	p := &Player{
		opts:       opts,
		output:     os.Stdout,
		openSource: OpenSource,
	}
	p.newAudio = p.defaultAudio
	return p
}

// SetOutput sets the writer frames go to
func (p *Player) SetOutput(w io.Writer) {
	p.configMu.Lock()
	defer p.configMu.Unlock()
	p.output = w
}

func (p *Player) sessionConfig() sessionConfig {
	p.configMu.Lock()
	defer p.configMu.Unlock()

	return sessionConfig{
		output:     p.output,
		quality:    p.opts.Quality,
		termCols:   p.opts.TermCols,
		termRows:   p.opts.TermRows,
		syncOutput: p.opts.SyncOutput,
		subs:       p.opts.Subtitles,
		openSource: p.openSource,
		newAudio:   p.newAudio,
		warn:       p.opts.Warn,
	}
}

func (p *Player) setSession(s *playSession) {
	p.sessionMu.Lock()
	defer p.sessionMu.Unlock()
	p.session = s
}

func (p *Player) clearSession(s *playSession) {
	p.sessionMu.Lock()
	defer p.sessionMu.Unlock()
	if p.session == s {
		p.session = nil
	}
}

func (p *Player) withSession(fn func(*playSession)) {
	p.sessionMu.Lock()
	s := p.session
	p.sessionMu.Unlock()

	if s != nil {
		fn(s)
	}
}

// Play renders path until it ends, ctx is cancelled or Stop is called.
// An error is returned only when the file cannot be played; an
// interrupted playback is reported through Stats.
func (p *Player) Play(ctx context.Context, path string) (Stats, error) {
	p.playMu.Lock()
	defer p.playMu.Unlock()

	cfg := p.sessionConfig()
	session, err := newPlaySession(path, cfg)
	if err != nil {
		return Stats{}, err
	}

	p.setSession(session)
	defer func() {
		p.clearSession(session)
		session.cleanup()
	}()

	return session.run(ctx, cfg)
}

// Stop ends the current playback, if any
func (p *Player) Stop() {
	p.withSession(func(s *playSession) {
		s.stop()
	})
}

func (p *Player) defaultAudio(path string, src Source) (AudioOutput, error) {
	switch p.opts.Audio {
	case AudioFFplay:
		return NewFFplayAudio(path), nil
	case AudioNative:
		av, ok := src.(*AVSource)
		if !ok || !av.Demuxer().HasAudio() {
			return nil, nil
		}
		a, err := NewSpeakerAudio(av.Demuxer().AudioCodecParameters())
		if err != nil {
			return nil, err
		}
		av.AttachAudio(a)
		return a, nil
	}
	return nil, nil
}
