// Package watch drives the status watch loop: fetch a snapshot, render it,
// redraw the screen when the report changed, sleep, repeat.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/juju/clock"

	"github.com/musher-dev/dcpps/internal/observability"
	"github.com/musher-dev/dcpps/internal/status"
)

// ErrInvalidInterval is returned for intervals that are not strictly
// positive finite numbers.
var ErrInvalidInterval = errors.New("interval must be a positive number of seconds")

// Fetcher returns a snapshot of the declared services.
type Fetcher interface {
	Fetch(ctx context.Context, services []string) (status.Snapshot, error)
}

// Display is where reports are drawn.
type Display interface {
	// Clear erases the display.
	Clear() error
	// Show replaces the display contents with report.
	Show(report string) error
}

// Options configures a Watcher.
type Options struct {
	// Interval is the pause between the end of one cycle and the start of
	// the next.
	Interval time.Duration
	// Clock defaults to clock.WallClock.
	Clock clock.Clock
	// Header, when set, is rendered above each redrawn report.
	Header func(now time.Time) string
}

// Watcher repeatedly renders the status of a set of services.
type Watcher struct {
	fetcher  Fetcher
	display  Display
	interval time.Duration
	clock    clock.Clock
	header   func(time.Time) string
}

// New creates a Watcher.
func New(fetcher Fetcher, display Display, opts Options) (*Watcher, error) {
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, opts.Interval)
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.WallClock
	}

	return &Watcher{
		fetcher:  fetcher,
		display:  display,
		interval: opts.Interval,
		clock:    clk,
		header:   opts.Header,
	}, nil
}

// ParseInterval converts a number of seconds, possibly fractional, to a
// duration.
func ParseInterval(seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInterval, seconds)
	}

	d := time.Duration(seconds * float64(time.Second))
	if d <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInterval, seconds)
	}

	return d, nil
}

// Run clears the display, then polls until ctx is cancelled. The display is
// redrawn only when the rendered report differs from the last one drawn.
//
// Run returns nil when ctx is cancelled and the first fetch error otherwise.
// Fetch errors are not retried.
func (w *Watcher) Run(ctx context.Context, services []string) error {
	logger := observability.FromContext(ctx)

	if err := w.display.Clear(); err != nil {
		return fmt.Errorf("clear display: %w", err)
	}

	previous := ""
	cycles := 0

	for {
		snapshot, err := w.fetcher.Fetch(ctx, services)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			logger.Error("status fetch failed", slog.Int("cycle", cycles), slog.String("error", err.Error()))

			return err
		}

		report := status.Render(snapshot)
		if report != previous {
			if err := w.display.Show(w.decorate(report)); err != nil {
				return fmt.Errorf("draw report: %w", err)
			}

			logger.Debug("status changed", slog.Int("cycle", cycles), slog.Int("services", len(snapshot)))

			previous = report
		}

		cycles++

		select {
		case <-ctx.Done():
			logger.Debug("watch stopped", slog.Int("cycles", cycles))
			return nil
		case <-w.clock.After(w.interval):
		}
	}
}

func (w *Watcher) decorate(report string) string {
	if w.header == nil {
		return report
	}

	return w.header(w.clock.Now()) + "\n\n" + report
}

// RenderOnce fetches a single snapshot and renders it.
func RenderOnce(ctx context.Context, fetcher Fetcher, services []string) (string, error) {
	snapshot, err := fetcher.Fetch(ctx, services)
	if err != nil {
		return "", err
	}

	return status.Render(snapshot), nil
}
