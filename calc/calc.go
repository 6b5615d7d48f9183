// Package calc holds the coursework arithmetic behind cmd/nilai and cmd/suhu.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned for input that is not a finite number
var ErrInvalidNumber = errors.New("input is not a number")

// ParseNumber parses s as a float, accepting a decimal comma
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}

// Round2 rounds v to two decimals, half away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
