package player

import (
	"bytes"
	"io"
	"strconv"
	"sync"
)

const (
	// upper half block: foreground paints the top pixel, background the bottom one
	glyphHalf = "▀"
	glyphFull = "█"

	sgrForeground = 38
	sgrBackground = 48
)

// BlockRenderer draws frames as truecolor block glyphs
type BlockRenderer struct {
	mu sync.Mutex

	out        io.Writer
	geometry   Geometry
	syncOutput bool

	buf bytes.Buffer
}

// NewBlockRenderer creates a renderer writing to out
func NewBlockRenderer(out io.Writer, g Geometry) *BlockRenderer {
	return &BlockRenderer{
		out:      out,
		geometry: g,
	}
}

// SetSyncOutput wraps each frame in synchronized update markers (mode 2026)
func (r *BlockRenderer) SetSyncOutput(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.syncOutput = on
}

// Geometry returns the grid the renderer draws into
func (r *BlockRenderer) Geometry() Geometry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.geometry
}

// Begin hides the cursor and clears the screen
func (r *BlockRenderer) Begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := io.WriteString(r.out, escHideCursor+escClearScreen)
	return err
}

// Restore resets colours and shows the cursor again
func (r *BlockRenderer) Restore() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := io.WriteString(r.out, escReset+escShowCursor)
	return err
}

// RenderFrame draws the frame and the overlay lines below it.
// The whole frame goes out in a single Write.
func (r *BlockRenderer) RenderFrame(f *Frame, overlay []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.geometry
	if f.Width != g.PixelWidth || f.Height != g.PixelHeight {
		f = Downscale(f, g.PixelWidth, g.PixelHeight)
	}

	r.buf.Reset()
	if r.syncOutput {
		r.buf.WriteString(escSyncBegin)
	}
	r.buf.WriteString(escCursorHome)

	if g.Quality.HalfBlocks() {
		writeHalfBlocks(&r.buf, f)
	} else {
		writeFullBlocks(&r.buf, f)
	}

	writeOverlay(&r.buf, overlay, g.OverlayRows)

	if r.syncOutput {
		r.buf.WriteString(escSyncEnd)
	}

	_, err := r.out.Write(r.buf.Bytes())
	return err
}

// writeOverlay fills the rows reserved under the grid: a blank gap, then
// lines, then blanks. Every row is cleared so nothing from a longer previous
// frame survives. The cursor stops on the last reserved row, so the screen
// never scrolls; lines that do not fit are dropped.
func writeOverlay(buf *bytes.Buffer, lines []string, rows int) {
	for i := 0; i < rows; i++ {
		if i > 0 {
			buf.WriteByte('\n')
		}
		if i > 0 && i-1 < len(lines) {
			buf.WriteString(lines[i-1])
		}
		buf.WriteString(escClearLine)
	}
}

// writeHalfBlocks merges each pair of pixel rows into one character row.
// A trailing odd row is dropped.
func writeHalfBlocks(buf *bytes.Buffer, f *Frame) {
	height := f.Height &^ 1
	for y := 0; y < height; y += 2 {
		var lastFg, lastBg [3]uint8
		first := true
		for x := 0; x < f.Width; x++ {
			r1, g1, b1 := f.At(x, y)
			r2, g2, b2 := f.At(x, y+1)
			fg := [3]uint8{r1, g1, b1}
			bg := [3]uint8{r2, g2, b2}
			if first || fg != lastFg {
				writeColor(buf, sgrForeground, fg)
				lastFg = fg
			}
			if first || bg != lastBg {
				writeColor(buf, sgrBackground, bg)
				lastBg = bg
			}
			first = false
			buf.WriteString(glyphHalf)
		}
		buf.WriteString(escReset)
		buf.WriteByte('\n')
	}
}

// writeFullBlocks maps one pixel to one glyph coloured by the foreground only
func writeFullBlocks(buf *bytes.Buffer, f *Frame) {
	for y := 0; y < f.Height; y++ {
		var last [3]uint8
		first := true
		for x := 0; x < f.Width; x++ {
			r, g, b := f.At(x, y)
			c := [3]uint8{r, g, b}
			if first || c != last {
				writeColor(buf, sgrForeground, c)
				last = c
			}
			first = false
			buf.WriteString(glyphFull)
		}
		buf.WriteString(escReset)
		buf.WriteByte('\n')
	}
}

// writeColor emits ESC[<layer>;2;r;g;bm
func writeColor(buf *bytes.Buffer, layer int, c [3]uint8) {
	var scratch [24]byte
	b := append(scratch[:0], "\x1b["...)
	b = strconv.AppendInt(b, int64(layer), 10)
	b = append(b, ";2;"...)
	b = strconv.AppendUint(b, uint64(c[0]), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(c[1]), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(c[2]), 10)
	b = append(b, 'm')
	buf.Write(b)
}

// Downscale resizes f to dstW x dstH by averaging every source pixel that
// falls inside each destination pixel's area.
func Downscale(f *Frame, dstW, dstH int) *Frame {
	dstW, dstH = max(dstW, 1), max(dstH, 1)
	out := &Frame{
		RGB:    make([]byte, dstW*dstH*3),
		Width:  dstW,
		Height: dstH,
		PTS:    f.PTS,
	}
	if f.Width == 0 || f.Height == 0 {
		return out
	}

	for dy := 0; dy < dstH; dy++ {
		y0 := dy * f.Height / dstH
		y1 := max((dy+1)*f.Height/dstH, y0+1)
		for dx := 0; dx < dstW; dx++ {
			x0 := dx * f.Width / dstW
			x1 := max((dx+1)*f.Width/dstW, x0+1)

			var r, g, b, n uint
			for y := y0; y < y1 && y < f.Height; y++ {
				for x := x0; x < x1 && x < f.Width; x++ {
					pr, pg, pb := f.At(x, y)
					r += uint(pr)
					g += uint(pg)
					b += uint(pb)
					n++
				}
			}
			if n == 0 {
				continue
			}

			i := (dy*dstW + dx) * 3
			out.RGB[i] = uint8(r / n)
			out.RGB[i+1] = uint8(g / n)
			out.RGB[i+2] = uint8(b / n)
		}
	}
	return out
}
