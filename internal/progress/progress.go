// Package progress provides progress indicators for file transfer operations.
package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/cleanarch/agentsync/internal/logging"
	"github.com/cleanarch/agentsync/internal/ui"
)

// Bar wraps progressbar with agentsync's UI and logging conventions.
type Bar struct {
	bar     *progressbar.ProgressBar
	enabled bool
	desc    string
}

// Options configures the progress bar behavior.
type Options struct {
	// Max is the total number of steps.
	Max int64
	// Description is the prefix text shown before the bar.
	Description string
	// Writer is the output destination. Defaults to os.Stderr.
	Writer io.Writer
}

// New creates a new progress bar. The bar is only rendered when colors are
// enabled, output is a terminal, and logging is not at debug level; otherwise
// operations on it are no-ops and a debug line is logged instead.
func New(opts Options) *Bar {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}

	b := &Bar{
		enabled: shouldShow(opts.Writer),
		desc:    opts.Description,
	}

	if !b.enabled {
		logging.Debug(fmt.Sprintf("%s started", opts.Description),
			logging.Count(int(opts.Max)))
		return b
	}

	b.bar = progressbar.NewOptions64(
		opts.Max,
		progressbar.OptionSetDescription(opts.Description),
		progressbar.OptionSetWriter(opts.Writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(opts.Writer, "\n")
		}),
		progressbar.OptionEnableColorCodes(ui.IsColorEnabled()),
	)

	return b
}

// Simple creates a progress bar with default settings.
func Simple(max int64, description string) *Bar {
	return New(Options{Max: max, Description: description})
}

// Add increments the progress bar by n steps.
func (b *Bar) Add(n int) error {
	if !b.enabled {
		return nil
	}
	return b.bar.Add(n)
}

// Finish completes the progress bar.
func (b *Bar) Finish() error {
	if !b.enabled {
		logging.Debug(fmt.Sprintf("%s finished", b.desc))
		return nil
	}
	return b.bar.Finish()
}

// shouldShow determines if a progress bar should be rendered for w.
func shouldShow(w io.Writer) bool {
	if !ui.IsColorEnabled() {
		return false
	}

	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			return false
		}
	}

	// A bar would interleave badly with debug logging.
	if logging.Default().Enabled(context.Background(), logging.LevelDebug) {
		return false
	}

	return true
}
