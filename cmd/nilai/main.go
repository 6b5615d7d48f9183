package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/njyeung/termvid/calc"
)

type field struct {
	prompt string
	dst    *float64
}

func main() {
	os.Exit(run(os.Stdin, os.Stdout))
}

// run asks for every score before computing anything, so a bad entry
// prints no partial result.
func run(in io.Reader, out io.Writer) int {
	fmt.Fprintln(out, "\n--- Program Hitung Nilai Akhir ---")

	var s calc.Scores
	fields := []field{
		{"Masukkan nilai Kuis: ", &s.Kuis},
		{"Masukkan nilai Kehadiran: ", &s.Kehadiran},
		{"Masukkan nilai Responsi 1: ", &s.Responsi1},
		{"Masukkan nilai Responsi 2: ", &s.Responsi2},
		{"Masukkan nilai UTS: ", &s.UTS},
		{"Masukkan nilai UAS: ", &s.UAS},
	}

	scanner := bufio.NewScanner(in)
	for _, f := range fields {
		fmt.Fprint(out, f.prompt)
		var line string
		if scanner.Scan() {
			line = scanner.Text()
		}
		v, err := calc.ParseNumber(line)
		if err != nil {
			fmt.Fprintln(out, "\nInput tidak valid!")
			return 1
		}
		*f.dst = v
	}

	grade := calc.FinalGrade(s)
	fmt.Fprintf(out, "\nNilai Akhir: %.2f\n", grade)
	fmt.Fprintf(out, "Status: %s\n", calc.Status(grade))
	return 0
}
