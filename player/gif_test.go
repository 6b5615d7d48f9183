package player

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
	"testing"
	"time"
)

func paletted(w, h int, c color.Color) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{color.Black, c})
	for i := range img.Pix {
		img.Pix[i] = 1
	}
	return img
}

func testGif() *gif.GIF {
	return &gif.GIF{
		Image: []*image.Paletted{
			paletted(4, 4, color.RGBA{R: 255, A: 255}),
			paletted(4, 4, color.RGBA{B: 255, A: 255}),
		},
		Delay:  []int{5, 1}, // 50ms, then too short and bumped to 100ms
		Config: image.Config{Width: 4, Height: 4},
	}
}

func TestGifSourceInfo(t *testing.T) {
	src, err := NewGifSource(testGif())
	if err != nil {
		t.Fatal(err)
	}

	info := src.Info()
	if info.Width != 4 || info.Height != 4 || info.FrameCount != 2 {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Duration != 150*time.Millisecond {
		t.Errorf("expected 150ms, got %v", info.Duration)
	}
}

func TestGifSourceFrames(t *testing.T) {
	src, err := NewGifSource(testGif())
	if err != nil {
		t.Fatal(err)
	}
	if err := src.SetSize(2, 2); err != nil {
		t.Fatal(err)
	}

	first, err := src.Next()
	if err != nil {
		t.Fatal(err)
	}
	if first.Width != 2 || first.Height != 2 {
		t.Errorf("expected 2x2 frame, got %dx%d", first.Width, first.Height)
	}
	if r, g, b := first.At(0, 0); r != 255 || g != 0 || b != 0 {
		t.Errorf("expected red, got (%d,%d,%d)", r, g, b)
	}

	second, err := src.Next()
	if err != nil {
		t.Fatal(err)
	}
	if second.PTS != 50*time.Millisecond {
		t.Errorf("expected second frame at 50ms, got %v", second.PTS)
	}
	if r, _, b := second.At(1, 1); r != 0 || b != 255 {
		t.Errorf("expected blue, got r=%d b=%d", r, b)
	}

	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}

	src.Close()
	if _, err := src.Next(); !errors.Is(err, ErrSourceClosed) {
		t.Errorf("expected ErrSourceClosed after Close, got %v", err)
	}
}

func TestGifSourceRejectsEmpty(t *testing.T) {
	if _, err := NewGifSource(&gif.GIF{}); err == nil {
		t.Error("expected error for a GIF without frames")
	}
}

func TestGifDisposalBackground(t *testing.T) {
	small := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.RGBA{G: 255, A: 255}})
	g := &gif.GIF{
		Image: []*image.Paletted{
			paletted(4, 4, color.RGBA{R: 255, A: 255}),
			small,
			image.NewPaletted(image.Rect(3, 3, 4, 4), color.Palette{color.RGBA{B: 255, A: 255}}),
		},
		Delay:    []int{10, 10, 10},
		Disposal: []byte{gif.DisposalNone, gif.DisposalBackground, gif.DisposalNone},
		Config:   image.Config{Width: 4, Height: 4},
	}
	src, err := NewGifSource(g)
	if err != nil {
		t.Fatal(err)
	}

	src.Next()
	second, _ := src.Next()
	if r, g, _ := second.At(0, 0); r != 0 || g != 255 {
		t.Errorf("expected green drawn over red, got r=%d g=%d", r, g)
	}
	if r, _, _ := second.At(3, 3); r != 255 {
		t.Errorf("expected red outside the second frame, got r=%d", r)
	}

	third, _ := src.Next()
	if r, g, b := third.At(0, 0); r != 0 || g != 0 || b != 0 {
		t.Errorf("expected the disposed area cleared to black, got (%d,%d,%d)", r, g, b)
	}
	if r, _, _ := third.At(1, 3); r != 255 {
		t.Errorf("expected red outside the disposed area, got r=%d", r)
	}
}
