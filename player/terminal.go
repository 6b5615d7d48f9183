package player

import (
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Escape sequences written around playback
const (
	escCursorHome  = "\x1b[H"
	escClearScreen = "\x1b[2J\x1b[H"
	escHideCursor  = "\x1b[?25l"
	escShowCursor  = "\x1b[?25h"
	escReset       = "\x1b[0m"
	escClearLine   = "\x1b[K"
	escSyncBegin   = "\x1b[?2026h"
	escSyncEnd     = "\x1b[?2026l"
)

// GetTerminalSize returns terminal dimensions (cols, rows, widthPx, heightPx)
func GetTerminalSize() (cols, rows, widthPx, heightPx int, err error) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return int(ws.Col), int(ws.Row), int(ws.Xpixel), int(ws.Ypixel), nil
}

// TerminalCells returns the terminal size in cells, falling back to
// DefaultTermCols x DefaultTermRows when it cannot be queried.
func TerminalCells() (cols, rows int) {
	cols, rows, _, _, err := GetTerminalSize()
	if err != nil || cols <= 0 || rows <= 0 {
		return DefaultTermCols, DefaultTermRows
	}
	return cols, rows
}

// SupportsTrueColor guesses from the environment whether 24-bit colour will render
func SupportsTrueColor(env func(string) string) bool {
	if env == nil {
		env = os.Getenv
	}
	ct := strings.ToLower(env("COLORTERM"))
	if ct == "truecolor" || ct == "24bit" {
		return true
	}
	t := strings.ToLower(env("TERM"))
	return strings.Contains(t, "truecolor") || strings.Contains(t, "256color")
}
