package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunConvertsZero(t *testing.T) {
	var out bytes.Buffer
	if code := run(strings.NewReader("0\n"), &out); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, want := range []string{"32.00°F", "0.00°R", "273.15K"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output, got %q", want, out.String())
		}
	}
}

func TestRunRejectsText(t *testing.T) {
	var out bytes.Buffer
	if code := run(strings.NewReader("panas\n"), &out); code == 0 {
		t.Error("expected non-zero exit for text input")
	}
	if strings.Contains(out.String(), "°F") {
		t.Error("expected no conversion output after invalid input")
	}
}
