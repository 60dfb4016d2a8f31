// Package wait implements the wait action: it sleeps for the number of milliseconds
// given by the "milliseconds" input.
package wait

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"actionstoolkit/internal/action"
	"actionstoolkit/pkg/core"
)

//go:embed action.yml
var metadataYAML []byte

// Metadata returns the parsed action.yml of the wait action.
func Metadata() (*action.Metadata, error) {
	return action.Parse(metadataYAML)
}

const maxMilliseconds uint64 = math.MaxInt64 / uint64(time.Millisecond)

// now is replaced in tests
var now = time.Now

// Run reads the milliseconds input, waits and sets the "time" output.
// It returns ctx.Err() if ctx is cancelled before the time is over.
func Run(ctx context.Context, c *core.Core) error {
	m, err := Metadata()
	if err != nil {
		return err
	}

	raw, err := m.Input(c, "milliseconds")
	if err != nil {
		return fmt.Errorf("milliseconds input required: %w", err)
	}
	ms, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		return fmt.Errorf("invalid milliseconds %q, expected a non-negative integer: %w", raw, err)
	}
	if ms > maxMilliseconds {
		return fmt.Errorf("invalid milliseconds %q, must not exceed %d", raw, maxMilliseconds)
	}
	d := time.Duration(ms) * time.Millisecond

	slog.Debug("Waiting", "duration", d)
	if err := c.Debug(fmt.Sprintf("Waiting %d milliseconds", ms)); err != nil {
		return err
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	return c.SetOutput("time", now().UTC().Format(time.RFC3339))
}
