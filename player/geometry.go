package player

// cellAspect is the approximate height of a character cell relative to its width
const cellAspect = 2.0

// Geometry is the character grid a session renders into
type Geometry struct {
	Quality Quality

	// Character grid size
	Cols int
	Rows int

	// Pixel size frames are downsampled to before glyph mapping.
	// In high quality each character row holds two pixel rows.
	PixelWidth  int
	PixelHeight int

	// Rows under the grid cleared and redrawn every frame
	OverlayRows int
}

// ComputeGeometry fits a srcW x srcH video into a terminal of termCols x termRows cells,
// keeping OverlayRows free below the grid. The grid keeps the source aspect
// ratio, treating a cell as twice as tall as it is wide.
func ComputeGeometry(termCols, termRows, srcW, srcH int, q Quality) Geometry {
	return ComputeGeometryWithOverlay(termCols, termRows, srcW, srcH, q, OverlayRows)
}

// ComputeGeometryWithOverlay is ComputeGeometry with overlayRows kept free
// below the grid instead of OverlayRows.
func ComputeGeometryWithOverlay(termCols, termRows, srcW, srcH int, q Quality, overlayRows int) Geometry {
	if termCols <= 0 || termRows <= 0 {
		termCols, termRows = DefaultTermCols, DefaultTermRows
	}
	overlayRows = max(overlayRows, 0)

	maxCols := termCols
	maxRows := max(termRows-overlayRows, 1)
	if q == QualityLow {
		maxCols = max(maxCols/2, 1)
		maxRows = max(maxRows/2, 1)
	}

	cols, rows := maxCols, maxRows
	if srcW > 0 && srcH > 0 {
		cols, rows = fitCells(maxCols, maxRows, float64(srcW)/float64(srcH))
	}

	g := Geometry{
		Quality:     q,
		Cols:        cols,
		Rows:        rows,
		PixelWidth:  cols,
		OverlayRows: overlayRows,
	}
	if q.HalfBlocks() {
		g.PixelHeight = rows * 2
	} else {
		g.PixelHeight = rows
	}
	return g
}

// fitCells shrinks one side of the maxCols x maxRows box so the visible
// aspect ratio matches aspect.
func fitCells(maxCols, maxRows int, aspect float64) (cols, rows int) {
	boxAspect := float64(maxCols) / (float64(maxRows) * cellAspect)
	if boxAspect > aspect {
		cols = int(float64(maxRows) * cellAspect * aspect)
		return max(cols, 1), maxRows
	}
	rows = int(float64(maxCols) / (cellAspect * aspect))
	return maxCols, max(rows, 1)
}

// VisibleAspect returns the on-screen width/height ratio of the grid
func (g Geometry) VisibleAspect() float64 {
	if g.Rows == 0 {
		return 0
	}
	return float64(g.Cols) / (float64(g.Rows) * cellAspect)
}
