package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/njyeung/termvid/player"
)

// probe prints what termvid would draw for a file without playing it
func main() {
	quality := flag.String("quality", "high", "high, medium or low")
	cols := flag.Int("cols", 0, "terminal columns (default: current terminal)")
	rows := flag.Int("rows", 0, "terminal rows (default: current terminal)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: probe [-quality q] [-cols n -rows n] <video>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	q, err := player.ParseQuality(*quality)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	info, err := player.Probe(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	c, r := *cols, *rows
	if c <= 0 || r <= 0 {
		c, r = player.TerminalCells()
	}
	g := player.ComputeGeometry(c, r, info.Width, info.Height, q)

	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Resolution: %dx%d\n", info.Width, info.Height)
	fmt.Printf("Frame rate: %.3f fps\n", info.FPS)
	fmt.Printf("Frames:     %d\n", info.FrameCount)
	fmt.Printf("Duration:   %s\n", player.FormatTime(info.Duration))
	fmt.Printf("Terminal:   %dx%d cells\n", c, r)
	fmt.Printf("Grid:       %dx%d cells, %dx%d pixels (%s)\n", g.Cols, g.Rows, g.PixelWidth, g.PixelHeight, g.Quality)
}
