package player

import (
	"context"
	"time"
)

// Clock paces playback against the wall clock.
// Frames that arrive late are shown immediately and never skipped, so
// playback drifts behind real time when rendering is slow.
type Clock struct {
	fps    float64
	start  time.Time
	frames int

	now func() time.Time
}

// NewClock creates a clock for the given frame rate.
// Non-positive rates fall back to DefaultFPS.
func NewClock(fps float64) *Clock {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Clock{fps: fps, now: time.Now}
}

// Start marks the wall-clock origin
func (c *Clock) Start() {
	c.start = c.now()
	c.frames = 0
}

// Frames returns how many frames have been counted
func (c *Clock) Frames() int {
	return c.frames
}

// IdealTime is when frame n should be presented, n / fps after start
func IdealTime(n int, fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(n) / fps * float64(time.Second))
}

// Tick counts one more frame and returns how long to sleep so that frame
// n lands at IdealTime(n). It never returns a negative duration.
func (c *Clock) Tick() time.Duration {
	c.frames++
	elapsed := c.now().Sub(c.start)
	return max(IdealTime(c.frames, c.fps)-elapsed, 0)
}

// Wait counts one more frame and sleeps until it is due or ctx is done
func (c *Clock) Wait(ctx context.Context) error {
	d := c.Tick()
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
