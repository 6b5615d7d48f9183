package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunComputesGrade(t *testing.T) {
	var out bytes.Buffer
	code := run(strings.NewReader("25\n90\n70\n80\n65\n72\n"), &out)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "Nilai Akhir: 63.25") {
		t.Errorf("expected final grade in output, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Status: LULUS") {
		t.Errorf("expected pass status, got %q", out.String())
	}
}

func TestRunRejectsMalformedInput(t *testing.T) {
	var out bytes.Buffer
	code := run(strings.NewReader("25\nsembilan puluh\n70\n80\n65\n72\n"), &out)
	if code == 0 {
		t.Error("expected non-zero exit for malformed input")
	}
	if !strings.Contains(out.String(), "Input tidak valid!") {
		t.Errorf("expected invalid input message, got %q", out.String())
	}
	if strings.Contains(out.String(), "Nilai Akhir") {
		t.Error("expected no partial result after invalid input")
	}
}
