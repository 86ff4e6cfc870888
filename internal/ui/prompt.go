package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoCandidates is returned by Select when there is nothing to choose from.
var ErrNoCandidates = errors.New("no candidates to select from")

// Prompter reads interactive answers from an injected line source, so menus
// and confirmations can be driven by a scripted reader in tests instead of a
// real terminal.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a prompter reading from r and writing prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(r),
		out:    w,
	}
}

// NewStdPrompter creates a prompter bound to stdin/stdout.
func NewStdPrompter() *Prompter {
	return NewPrompter(os.Stdin, os.Stdout)
}

// Select renders a 1-based numbered menu over items and returns the chosen
// index. A single item is auto-selected without prompting. Invalid or
// out-of-range input re-prompts and never escalates to an error; only an
// exhausted reader does.
func (p *Prompter) Select(title string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, ErrNoCandidates
	}
	if len(items) == 1 {
		return 0, nil
	}

	fmt.Fprintf(p.out, "\n%s\n", Bold(title))
	for i, item := range items {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, item)
	}
	fmt.Fprintf(p.out, "\nEnter choice [1-%d]: ", len(items))

	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && line == "" {
			return 0, fmt.Errorf("failed to read input: %w", err)
		}

		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil || choice < 1 || choice > len(items) {
			fmt.Fprintf(p.out, "Invalid choice. Enter 1-%d: ", len(items))
			if err != nil {
				return 0, fmt.Errorf("failed to read input: %w", err)
			}
			continue
		}
		return choice - 1, nil
	}
}

// Confirm asks a yes/no question. Only "y" and "yes" (case-insensitive)
// count as affirmative; everything else, including an empty line, declines.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)

	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
