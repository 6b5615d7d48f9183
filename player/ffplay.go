package player

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// ErrPlayerNotFound is returned by Start when the player binary is not on PATH
var ErrPlayerNotFound = errors.New("audio player not found in PATH")

// stopGrace is how long a stopped player gets before it is killed
const stopGrace = 2 * time.Second

// ProcessAudio plays audio through an external player process
type ProcessAudio struct {
	name string
	args []string

	mu      sync.Mutex
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

// NewFFplayAudio plays the soundtrack of path with ffplay: no window,
// no console output, exiting on its own at the end of the file.
func NewFFplayAudio(path string) *ProcessAudio {
	return NewProcessAudio("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", path)
}

// NewProcessAudio runs name with args as the audio player
func NewProcessAudio(name string, args ...string) *ProcessAudio {
	return &ProcessAudio{name: name, args: args}
}

// Start launches the player with stdin, stdout and stderr on the null device
func (p *ProcessAudio) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd != nil {
		return nil
	}

	bin, err := exec.LookPath(p.name)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, p.name)
	}

	cmd := exec.Command(bin, p.args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", p.name, err)
	}

	p.cmd = cmd
	p.done = make(chan struct{})
	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		p.waitErr = err
		p.mu.Unlock()
		close(p.done)
	}()
	return nil
}

// Running reports whether the process has been started and not yet exited
func (p *ProcessAudio) Running() bool {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Stop sends SIGTERM, kills the process if it lingers, and waits for it to exit
func (p *ProcessAudio) Stop() error {
	p.mu.Lock()
	cmd, done := p.cmd, p.done
	p.mu.Unlock()

	if cmd == nil {
		return nil
	}

	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		cmd.Process.Kill()
	}

	select {
	case <-done:
	case <-time.After(stopGrace):
		cmd.Process.Kill()
		<-done
	}
	return nil
}
