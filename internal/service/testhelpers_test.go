package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reckot/checkin-station/internal/adapter"
	"github.com/reckot/checkin-station/internal/config"
	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/internal/store"
	"github.com/reckot/checkin-station/models"
)

func errUnreachable() error {
	return fmt.Errorf("%w: connection refused", adapter.ErrServerUnreachable)
}

func newTestStorages(t *testing.T) *store.Storages {
	t.Helper()

	cfg := config.Storage{DB: config.DB{Path: filepath.Join(t.TempDir(), "station.db")}}
	storages, err := store.NewStorages(cfg, logger.Nop())
	require.NoError(t, err)
	return storages
}

func testEventConfig() config.Event {
	return config.Event{OrgSlug: "acme", EventSlug: "gophercon-2026"}
}

// fakeServerAdapter is a hand-written test double; the funcs default to
// "server unreachable" behaviour when unset.
type fakeServerAdapter struct {
	mu sync.Mutex

	pingErr       error
	snapshotFn    func() (models.EventSnapshot, error)
	verifyFn      func(code string) (models.VerifyResponse, error)
	syncCheckinFn func(req models.CheckinSyncRequest) (models.CheckinSyncResponse, error)
	syncSwagFn    func(req models.SwagSyncRequest) error

	verifyCalls    []string
	checkinReplays []models.CheckinSyncRequest
	swagReplays    []models.SwagSyncRequest
}

func (f *fakeServerAdapter) SetToken(string) {}
func (f *fakeServerAdapter) Token() string   { return "" }

func (f *fakeServerAdapter) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeServerAdapter) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeServerAdapter) FetchSnapshot(context.Context, string, string) (models.EventSnapshot, error) {
	if f.snapshotFn == nil {
		return models.EventSnapshot{}, errUnreachable()
	}
	return f.snapshotFn()
}

func (f *fakeServerAdapter) VerifyTicket(_ context.Context, _, _, code string) (models.VerifyResponse, error) {
	f.mu.Lock()
	f.verifyCalls = append(f.verifyCalls, code)
	f.mu.Unlock()

	if f.verifyFn == nil {
		return models.VerifyResponse{}, errUnreachable()
	}
	return f.verifyFn(code)
}

func (f *fakeServerAdapter) SyncCheckin(_ context.Context, req models.CheckinSyncRequest) (models.CheckinSyncResponse, error) {
	f.mu.Lock()
	f.checkinReplays = append(f.checkinReplays, req)
	f.mu.Unlock()

	if f.syncCheckinFn == nil {
		return models.CheckinSyncResponse{}, errUnreachable()
	}
	return f.syncCheckinFn(req)
}

func (f *fakeServerAdapter) SyncSwag(_ context.Context, req models.SwagSyncRequest) error {
	f.mu.Lock()
	f.swagReplays = append(f.swagReplays, req)
	f.mu.Unlock()

	if f.syncSwagFn == nil {
		return errUnreachable()
	}
	return f.syncSwagFn(req)
}

func (f *fakeServerAdapter) verifyCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.verifyCalls)
}

func (f *fakeServerAdapter) replayedCheckins() []models.CheckinSyncRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.CheckinSyncRequest(nil), f.checkinReplays...)
}

func (f *fakeServerAdapter) replayedSwag() []models.SwagSyncRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SwagSyncRequest(nil), f.swagReplays...)
}

// stubMonitor reports a fixed connectivity state.
type stubMonitor struct {
	online bool
}

func (m *stubMonitor) Start(context.Context, time.Duration) {}
func (m *stubMonitor) Stop()                                {}
func (m *stubMonitor) IsOnline() bool                       { return m.online }
func (m *stubMonitor) ForceCheck(context.Context) bool      { return m.online }

// spyReconciler counts SyncNow invocations.
type spyReconciler struct {
	calls  atomicCounter
	report models.SyncReport
	err    error
}

func (s *spyReconciler) SyncNow(context.Context) (models.SyncReport, error) {
	s.calls.inc()
	return s.report, s.err
}

func (s *spyReconciler) IsSyncing() bool { return false }

type atomicCounter struct {
	mu sync.Mutex
	n  int
}

func (c *atomicCounter) inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *atomicCounter) load() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
