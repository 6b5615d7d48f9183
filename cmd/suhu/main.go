package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/njyeung/termvid/calc"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout))
}

func run(in io.Reader, out io.Writer) int {
	fmt.Fprintln(out, "Program Konversi Suhu")
	fmt.Fprintln(out, strings.Repeat("-", 50))
	fmt.Fprint(out, "Masukkan suhu dalam Celsius (C): ")

	var line string
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		line = scanner.Text()
	}

	c, err := calc.ParseNumber(line)
	if err != nil {
		fmt.Fprintln(out, "\nError: itu bukan angka. Tolong masukkan angka yang benar.")
		return 1
	}

	t := calc.ConvertCelsius(c)
	fmt.Fprintln(out, "\nHasil Konversi:")
	fmt.Fprintf(out, "Suhu Celsius: %g°C\n", t.Celsius)
	fmt.Fprintf(out, "Suhu Fahrenheit: %.2f°F\n", t.Fahrenheit)
	fmt.Fprintf(out, "Suhu Reaumur: %.2f°R\n", t.Reaumur)
	fmt.Fprintf(out, "Suhu Kelvin: %.2fK\n", t.Kelvin)
	return 0
}
