package calc

import (
	"errors"
	"fmt"
	"testing"
)

func TestFinalGrade(t *testing.T) {
	s := Scores{Kuis: 25, Kehadiran: 90, Responsi1: 70, Responsi2: 80, UTS: 65, UAS: 72}

	got := FinalGrade(s)
	want := 0.2*25 + 0.1*90 + 0.2*75 + 0.25*65 + 0.25*72
	if fmt.Sprintf("%.2f", got) != fmt.Sprintf("%.2f", want) {
		t.Errorf("expected %.2f, got %.2f", want, got)
	}
	if fmt.Sprintf("%.2f", got) != "63.25" {
		t.Errorf("expected 63.25, got %.2f", got)
	}
	if Status(got) != "LULUS" {
		t.Errorf("expected LULUS for %.2f", got)
	}
}

func TestStatusBoundary(t *testing.T) {
	if !Passed(60) {
		t.Error("expected 60 to pass")
	}
	if Status(59.99) != "TIDAK LULUS" {
		t.Error("expected 59.99 to fail")
	}
}

func TestConvertCelsiusZero(t *testing.T) {
	got := ConvertCelsius(0)
	checks := []struct {
		name string
		val  float64
		want string
	}{
		{"fahrenheit", got.Fahrenheit, "32.00"},
		{"reaumur", got.Reaumur, "0.00"},
		{"kelvin", got.Kelvin, "273.15"},
	}
	for _, c := range checks {
		if s := fmt.Sprintf("%.2f", c.val); s != c.want {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, s)
		}
	}
}

func TestConvertCelsiusBoiling(t *testing.T) {
	got := ConvertCelsius(100)
	if got.Fahrenheit != 212 || got.Reaumur != 80 || Round2(got.Kelvin) != 373.15 {
		t.Errorf("unexpected conversion of 100C: %+v", got)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"25", 25, false},
		{" 7.5 ", 7.5, false},
		{"7,5", 7.5, false},
		{"-3", -3, false},
		{"abc", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseNumber(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidNumber) {
				t.Errorf("ParseNumber(%q): expected ErrInvalidNumber, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}
