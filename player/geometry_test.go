package player

import (
	"math"
	"testing"
)

func TestComputeGeometryPreservesAspect(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		srcW, srcH int
	}{
		{"widescreen", 120, 40, 1920, 1080},
		{"portrait", 120, 40, 1080, 1920},
		{"square", 80, 24, 500, 500},
		{"cinemascope", 200, 60, 2390, 1000},
	}

	for _, tt := range tests {
		for _, q := range []Quality{QualityHigh, QualityMedium, QualityLow} {
			g := ComputeGeometry(tt.cols, tt.rows, tt.srcW, tt.srcH, q)
			aspect := float64(tt.srcW) / float64(tt.srcH)

			// one cell off in either direction moves the visible aspect by at most this much
			visible := g.VisibleAspect()
			rows := float64(g.Rows)
			tolerance := math.Max(visible/rows, 1/(cellAspect*rows))
			if math.Abs(visible-aspect) > tolerance {
				t.Errorf("%s/%s: grid %dx%d shows aspect %.3f, more than a cell from %.3f",
					tt.name, q, g.Cols, g.Rows, visible, aspect)
			}
			if g.Rows+g.OverlayRows > tt.rows {
				t.Errorf("%s/%s: %d rows leave no room for the overlay", tt.name, q, g.Rows)
			}
			if g.Cols > tt.cols {
				t.Errorf("%s/%s: %d cols wider than terminal", tt.name, q, g.Cols)
			}
		}
	}
}

func TestComputeGeometryPixelSize(t *testing.T) {
	high := ComputeGeometry(120, 40, 1920, 1080, QualityHigh)
	if high.PixelHeight != high.Rows*2 {
		t.Errorf("high: expected two pixel rows per cell row, got %d for %d rows", high.PixelHeight, high.Rows)
	}
	if high.PixelWidth != high.Cols {
		t.Errorf("high: expected one pixel per column, got %d for %d cols", high.PixelWidth, high.Cols)
	}

	medium := ComputeGeometry(120, 40, 1920, 1080, QualityMedium)
	if medium.PixelHeight != medium.Rows {
		t.Errorf("medium: expected one pixel row per cell row, got %d for %d rows", medium.PixelHeight, medium.Rows)
	}
}

func TestComputeGeometryLowHalvesGrid(t *testing.T) {
	medium := ComputeGeometry(120, 40, 1920, 1080, QualityMedium)
	low := ComputeGeometry(120, 40, 1920, 1080, QualityLow)

	if low.Cols > medium.Cols/2 || low.Rows > medium.Rows/2+1 {
		t.Errorf("low grid %dx%d is not about half of %dx%d", low.Cols, low.Rows, medium.Cols, medium.Rows)
	}
	if low.Cols != 60 || low.Rows != 16 {
		t.Errorf("expected 60x16, got %dx%d", low.Cols, low.Rows)
	}
}

func TestComputeGeometryFallsBackToDefaultTerminal(t *testing.T) {
	got := ComputeGeometry(0, 0, 1280, 720, QualityHigh)
	want := ComputeGeometry(DefaultTermCols, DefaultTermRows, 1280, 720, QualityHigh)
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestComputeGeometryTinyTerminal(t *testing.T) {
	g := ComputeGeometry(2, 3, 1920, 1080, QualityLow)
	if g.Cols < 1 || g.Rows < 1 || g.PixelWidth < 1 || g.PixelHeight < 1 {
		t.Errorf("expected a non-empty grid, got %+v", g)
	}
}

func TestComputeGeometryReservesOverlay(t *testing.T) {
	plain := ComputeGeometry(120, 40, 1280, 720, QualityMedium)
	if plain.OverlayRows != OverlayRows {
		t.Errorf("expected %d overlay rows, got %d", OverlayRows, plain.OverlayRows)
	}

	// a short terminal with a tall cue takes rows from the grid
	g := ComputeGeometryWithOverlay(120, 20, 1280, 720, QualityMedium, OverlayRows+4)
	if g.Rows+g.OverlayRows > 20 {
		t.Errorf("grid %d rows + overlay %d rows overflow 20", g.Rows, g.OverlayRows)
	}
	if g.Rows != 13 {
		t.Errorf("expected 13 grid rows, got %d", g.Rows)
	}
}
