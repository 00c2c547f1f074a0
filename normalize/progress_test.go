package normalize

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	tracker := NewProgressTracker(logger, "normalizing", 10)

	tracker.Start()
	assert.True(t, tracker.started, "should be started")

	tracker.Increment(5)
	assert.Empty(t, buf.String(), "below interval should not report")

	tracker.Increment(5)
	tracker.Increment(25)
	assert.Equal(t, 35, tracker.Count())
	assert.Equal(t, 2, strings.Count(buf.String(), "normalizing progress"))

	elapsed := tracker.Elapsed()
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	tracker := NewProgressTracker(logger, "normalizing", 100)

	tracker.Start()
	tracker.Increment(75)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "normalizing complete")
	assert.Contains(t, output, "records=75")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(slog.New(slog.NewTextHandler(&buf, nil)), "x", 1)

	tracker.Increment(5)
	tracker.Finish()
	assert.Zero(t, tracker.Count())
	assert.Zero(t, tracker.Elapsed())
	assert.Empty(t, buf.String())
}
