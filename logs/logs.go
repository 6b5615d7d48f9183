package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
)

var verbose atomic.Bool

// SetVerbose turns LogV output on or off
func SetVerbose(on bool) {
	verbose.Store(on)
}

// Verbose reports whether LogV writes anything
func Verbose() bool {
	return verbose.Load()
}

// LogV prints a formatted log message only when verbose logging is enabled.
func LogV(format string, args ...interface{}) {
	if verbose.Load() {
		log.Printf(format, args...)
	}
}

// Init points the standard logger at dir/termvid.log. The terminal is busy
// drawing frames, so nothing is logged to it. The returned func closes the file.
func Init(dir string) (path string, closeFn func(), err error) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.SetOutput(io.Discard)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", func() {}, err
	}
	path = filepath.Join(dir, "termvid.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", func() {}, err
	}
	log.SetOutput(f)
	return path, func() {
		log.SetOutput(io.Discard)
		f.Close()
	}, nil
}
