package extractor

import (
	"context"
	"time"

	"github.com/SimplyPrint/messenger-tray/internal/logging"
)

// DefaultInterval is the time between two scans.
const DefaultInterval = 5 * time.Second

// Scanner periodically counts unread badges from a Source and emits the
// total to a Sink.
type Scanner struct {
	source   Source
	sink     Sink
	interval time.Duration
}

// NewScanner creates a Scanner. A non-positive interval uses DefaultInterval.
func NewScanner(source Source, sink Sink, interval time.Duration) *Scanner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scanner{source: source, sink: sink, interval: interval}
}

// Run scans once per tick until ctx is cancelled. Every successful tick
// emits its total, including zero and unchanged values. A failed tick
// emits nothing.
func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick performs a single scan and reports whether a count was emitted.
func (s *Scanner) Tick(ctx context.Context) bool {
	count, err := s.scan(ctx)
	if err != nil {
		logging.Debugf(logging.CatExtract, "Scan skipped: %v", err)
		return false
	}
	s.sink.Send(count)
	return true
}

func (s *Scanner) scan(ctx context.Context) (int, error) {
	rc, err := s.source.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	return CountHTML(rc)
}
