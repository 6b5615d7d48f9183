package player

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"time"
)

const (
	// delays under minGifDelay are shown for fallbackGifDelay, as browsers do
	minGifDelay      = 20 * time.Millisecond
	fallbackGifDelay = 100 * time.Millisecond
)

// GifSource plays an animated GIF without FFmpeg. Frames are composited
// one at a time as Next is called.
type GifSource struct {
	g      *gif.GIF
	delays []time.Duration
	info   SourceInfo

	canvas  *image.RGBA
	restore *image.RGBA // canvas to go back to after a DisposalPrevious frame

	dstW, dstH int
	next       int
	pts        time.Duration
}

// OpenGif decodes the GIF at path
func OpenGif(path string) (*GifSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return NewGifSource(g)
}

// NewGifSource plays an already decoded GIF
func NewGifSource(g *gif.GIF) (*GifSource, error) {
	if len(g.Image) == 0 {
		return nil, errors.New("gif has no frames")
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}

	s := &GifSource{
		g:      g,
		delays: make([]time.Duration, len(g.Image)),
		canvas: image.NewRGBA(image.Rect(0, 0, w, h)),
	}

	var total time.Duration
	for i := range s.delays {
		d := fallbackGifDelay
		if i < len(g.Delay) && time.Duration(g.Delay[i])*10*time.Millisecond >= minGifDelay {
			d = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		s.delays[i] = d
		total += d
	}

	s.info = SourceInfo{
		Width:      w,
		Height:     h,
		FPS:        float64(len(g.Image)) / total.Seconds(),
		FrameCount: len(g.Image),
		Duration:   total,
	}
	return s, nil
}

// Info returns the GIF's size, average frame rate and length
func (s *GifSource) Info() SourceInfo {
	return s.info
}

// SetSize makes Next downsample frames to width x height
func (s *GifSource) SetSize(width, height int) error {
	s.dstW, s.dstH = width, height
	return nil
}

// Next composites and returns the next frame
func (s *GifSource) Next() (*Frame, error) {
	if s.g == nil {
		return nil, ErrSourceClosed
	}
	if s.next >= len(s.g.Image) {
		return nil, io.EOF
	}

	s.paint(s.next)
	frame := rgbaToFrame(s.canvas)
	frame.PTS = s.pts
	s.dispose(s.next)

	s.pts += s.delays[s.next]
	s.next++

	if s.dstW > 0 && s.dstH > 0 && (frame.Width != s.dstW || frame.Height != s.dstH) {
		frame = Downscale(frame, s.dstW, s.dstH)
	}
	return frame, nil
}

func (s *GifSource) disposal(i int) byte {
	if i < len(s.g.Disposal) {
		return s.g.Disposal[i]
	}
	return gif.DisposalNone
}

// paint draws frame i over what the previous frames left on the canvas
func (s *GifSource) paint(i int) {
	if s.disposal(i) == gif.DisposalPrevious {
		s.restore = image.NewRGBA(s.canvas.Rect)
		copy(s.restore.Pix, s.canvas.Pix)
	}
	img := s.g.Image[i]
	draw.Draw(s.canvas, img.Bounds(), img, img.Bounds().Min, draw.Over)
}

// dispose prepares the canvas for the frame after i
func (s *GifSource) dispose(i int) {
	switch s.disposal(i) {
	case gif.DisposalBackground:
		draw.Draw(s.canvas, s.g.Image[i].Bounds(), image.Transparent, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		if s.restore != nil {
			s.canvas, s.restore = s.restore, nil
		}
	}
}

// Close drops the decoded GIF
func (s *GifSource) Close() {
	s.g = nil
	s.canvas, s.restore = nil, nil
}

// rgbaToFrame drops the alpha channel. image.RGBA is alpha-premultiplied,
// so the result is the image composited onto black.
func rgbaToFrame(img *image.RGBA) *Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	f := &Frame{RGB: make([]byte, 0, w*h*3), Width: w, Height: h}
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			f.RGB = append(f.RGB, row[x], row[x+1], row[x+2])
		}
	}
	return f
}
