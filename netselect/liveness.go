package netselect

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Probe checks whether the local endpoint currently answers. A nil error
// means reachable. The transport behind the probe is the caller's business.
type Probe func(ctx context.Context) error

// LivenessCache keeps the latest known probe outcome and refreshes it on an
// interval. Readers only ever see the cached value; the endpoint is
// considered unreachable until the first probe completes.
type LivenessCache struct {
	probe    Probe
	interval time.Duration
	logger   zerolog.Logger

	mu   sync.RWMutex
	live bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewLivenessCache(probe Probe, interval time.Duration, logger zerolog.Logger) *LivenessCache {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &LivenessCache{
		probe:    probe,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

func (l *LivenessCache) Live() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.live
}

// RefreshNow probes once, updates the cache, and returns the new value.
func (l *LivenessCache) RefreshNow(ctx context.Context) bool {
	err := l.probe(ctx)
	live := err == nil

	l.mu.Lock()
	changed := live != l.live
	l.live = live
	l.mu.Unlock()

	if changed {
		l.logger.Info().Bool("live", live).Msg("local endpoint liveness changed")
	}
	return live
}

// Start launches the refresh loop. The first probe runs immediately.
func (l *LivenessCache) Start(ctx context.Context) {
	go func() {
		l.RefreshNow(ctx)
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.RefreshNow(ctx)
			case <-l.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (l *LivenessCache) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}
