package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/reckot/checkin-station/internal/adapter"
	"github.com/reckot/checkin-station/internal/logger"
)

type connectivityMonitor struct {
	adapter    adapter.ServerAdapter
	reconciler ReconcilerService
	bus        *Bus
	logger     *logger.Logger

	online atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConnectivityMonitor creates a monitor that probes the server with HEAD
// requests. The monitor is idle until Start is called; until the first probe
// completes the state reads as offline.
func NewConnectivityMonitor(serverAdapter adapter.ServerAdapter, reconciler ReconcilerService, bus *Bus, logger *logger.Logger) ConnectivityMonitor {
	return &connectivityMonitor{
		adapter:    serverAdapter,
		reconciler: reconciler,
		bus:        bus,
		logger:     logger,
	}
}

// Start implements [ConnectivityMonitor]. It stops any previously running
// loop, probes once immediately so the state settles before the first tick,
// then probes every interval. The goroutine exits when ctx is cancelled or
// Stop is called.
func (m *connectivityMonitor) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	m.Stop()

	m.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()

		m.probe(loopCtx)

		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				m.probe(loopCtx)
			}
		}
	}()
}

// Stop implements [ConnectivityMonitor].
func (m *connectivityMonitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

// IsOnline implements [ConnectivityMonitor].
func (m *connectivityMonitor) IsOnline() bool {
	return m.online.Load()
}

// ForceCheck implements [ConnectivityMonitor].
func (m *connectivityMonitor) ForceCheck(ctx context.Context) bool {
	return m.probe(ctx)
}

// probe pings the server, swaps the stored state and, on an
// offline-to-online transition, publishes EventOnline and kicks off one
// reconciliation pass in the background. SyncNow's own guard drops the pass
// if one is already running, so a transition triggers at most one replay.
func (m *connectivityMonitor) probe(ctx context.Context) bool {
	err := m.adapter.Ping(ctx)
	online := err == nil
	if err != nil && !errors.Is(err, adapter.ErrServerUnreachable) {
		m.logger.Warn().Err(err).Msg("health probe answered with an error status")
	}

	was := m.online.Swap(online)
	switch {
	case online && !was:
		m.logger.Info().Msg("server reachable again")
		m.bus.Publish(Event{Type: EventOnline})

		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			if _, err := m.reconciler.SyncNow(ctx); err != nil && !errors.Is(err, ErrSyncInProgress) {
				m.logger.Warn().Err(err).Msg("reconciliation after reconnect failed")
			}
		}()

	case !online && was:
		m.logger.Info().Msg("server unreachable")
		m.bus.Publish(Event{Type: EventOffline})
	}

	return online
}
