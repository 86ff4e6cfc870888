package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSelect_SingleItemAutoSelected(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)

	idx, err := p.Select("Pick one", []string{"only"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if idx != 0 {
		t.Errorf("expected index 0, got %d", idx)
	}
	if out.Len() != 0 {
		t.Errorf("expected no prompt output for single item, got %q", out.String())
	}
}

func TestSelect_NoItems(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Select("Pick one", nil)
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestSelect_ValidChoice(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("2\n"), &out)

	idx, err := p.Select("Pick one", []string{"alpha", "beta", "gamma"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
	if !strings.Contains(out.String(), "1. alpha") {
		t.Errorf("expected numbered menu, got %q", out.String())
	}
}

func TestSelect_RepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	// Non-numeric, out of range, then valid.
	p := NewPrompter(strings.NewReader("abc\n9\n3\n"), &out)

	idx, err := p.Select("Pick one", []string{"alpha", "beta", "gamma"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if idx != 2 {
		t.Errorf("expected index 2, got %d", idx)
	}
	if got := strings.Count(out.String(), "Invalid choice"); got != 2 {
		t.Errorf("expected 2 re-prompts, got %d: %q", got, out.String())
	}
}

func TestSelect_ExhaustedReader(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Select("Pick one", []string{"alpha", "beta"})
	if err == nil {
		t.Fatal("expected error for exhausted reader")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"sure\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p := NewPrompter(strings.NewReader(tt.input), &bytes.Buffer{})
			got, err := p.Confirm("Proceed?")
			if err != nil {
				t.Fatalf("Confirm failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
