// Package reload keeps the served supervisor tuning config in sync with
// its source documents.
package reload

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/codeready-toolchain/warehousecfg/pkg/tuning"
)

// LoadFunc produces the current tuning config. A nil config with a nil
// error means no documents are configured.
type LoadFunc func() (*tuning.SupervisorTuningConfig, error)

// Service periodically re-runs its LoadFunc and publishes the result.
// A failed load keeps the previously published config.
type Service struct {
	interval time.Duration
	load     LoadFunc
	current  atomic.Pointer[tuning.SupervisorTuningConfig]

	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a reload service publishing initial until the first
// reload. An interval of zero disables the background loop.
func NewService(interval time.Duration, load LoadFunc, initial *tuning.SupervisorTuningConfig) *Service {
	s := &Service{
		interval: interval,
		load:     load,
	}
	s.current.Store(initial)
	return s
}

// Current returns the most recently published config, or nil.
func (s *Service) Current() *tuning.SupervisorTuningConfig {
	return s.current.Load()
}

// Start launches the background reload loop.
func (s *Service) Start(ctx context.Context) {
	if s.cancel != nil || s.interval <= 0 {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx)

	slog.Info("Tuning reload service started", "interval", s.interval)
}

// Stop signals the reload loop to exit and waits for it to finish.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	slog.Info("Tuning reload service stopped")
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reload()
		}
	}
}

// reload reports whether a different config was published.
func (s *Service) reload() bool {
	next, err := s.load()
	if err != nil {
		slog.Error("Tuning reload failed, keeping previous config", "error", err)
		return false
	}

	prev := s.current.Load()
	if sameConfig(prev, next) {
		return false
	}
	s.current.Store(next)

	if next == nil {
		slog.Info("Tuning config cleared")
	} else {
		slog.Info("Tuning config reloaded", "hash", next.Hash())
	}
	return true
}

func sameConfig(a, b *tuning.SupervisorTuningConfig) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}
