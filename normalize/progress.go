package normalize

import (
	"log/slog"
	"sync"
	"time"
)

// ProgressTracker logs the progress of a streaming operation whose total is
// not known in advance.
type ProgressTracker struct {
	logger         *slog.Logger
	label          string
	current        int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgressTracker creates a new progress tracker.
// label: names the operation in log records
// reportInterval: log progress every N items
func NewProgressTracker(logger *slog.Logger, label string, reportInterval int) *ProgressTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressTracker{
		logger:         logger,
		label:          label,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.current = 0
	p.lastReported = 0
}

// Increment increases the current progress by the specified amount.
func (p *ProgressTracker) Increment(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current += delta

	if p.reportInterval > 0 && p.current-p.lastReported >= p.reportInterval {
		p.report("progress")
		p.lastReported = p.current
	}
}

// Finish logs the final count.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.report("complete")
}

// Count returns the number of items processed so far.
func (p *ProgressTracker) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}
	return time.Since(p.startTime)
}

// report logs the current progress. Must be called with lock held.
func (p *ProgressTracker) report(msg string) {
	elapsed := time.Since(p.startTime)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(p.current) / elapsed.Seconds()
	}
	p.logger.Info(p.label+" "+msg,
		"records", p.current,
		"rate", slog.Float64Value(rate),
		"elapsed", elapsed.Round(time.Millisecond))
}
