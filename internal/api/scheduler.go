package api

import (
	"fmt"
	"log/slog"

	"github.com/alexanderramin/prodboard/internal/aggregator"
	"github.com/alexanderramin/prodboard/internal/provider"
	"github.com/robfig/cron/v3"
)

// RefreshScheduler periodically invalidates the board resources so caches
// and connected clients pick up changes written by other applications.
type RefreshScheduler struct {
	cron   *cron.Cron
	inv    provider.Invalidator
	logger *slog.Logger
}

// NewRefreshScheduler registers the periodic job. spec accepts standard
// five-field cron expressions and descriptors such as "@every 1m".
func NewRefreshScheduler(spec string, inv provider.Invalidator, logger *slog.Logger) (*RefreshScheduler, error) {
	s := &RefreshScheduler{cron: cron.New(), inv: inv, logger: logger}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("parsing refresh spec %q: %w", spec, err)
	}
	return s, nil
}

func (s *RefreshScheduler) tick() {
	s.logger.Debug("periodic board invalidation")
	for _, res := range aggregator.FeedResources {
		s.inv.Invalidate(res)
	}
}

func (s *RefreshScheduler) Start() { s.cron.Start() }

// Stop halts the scheduler and waits for a running tick.
func (s *RefreshScheduler) Stop() {
	<-s.cron.Stop().Done()
}
