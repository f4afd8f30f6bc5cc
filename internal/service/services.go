package service

import (
	"github.com/reckot/checkin-station/internal/adapter"
	"github.com/reckot/checkin-station/internal/config"
	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/internal/store"
)

// Services bundles the station's business logic behind one value. Exactly
// one instance exists per process; the app wires it explicitly instead of
// reaching for package-level state.
type Services struct {
	Bus        *Bus
	Loader     CacheLoaderService
	Recorder   RecorderService
	Reconciler ReconcilerService
	Monitor    ConnectivityMonitor
	SyncJob    SyncJob
}

// NewServices wires the full service graph. storages may be nil, in which
// case every service degrades to online-only operation.
func NewServices(storages *store.Storages, serverAdapter adapter.ServerAdapter, cfg *config.StationConfig, log *logger.Logger) *Services {
	bus := NewBus()
	reconciler := NewReconcilerService(storages, serverAdapter, bus, log)
	monitor := NewConnectivityMonitor(serverAdapter, reconciler, bus, log)

	return &Services{
		Bus:        bus,
		Loader:     NewCacheLoaderService(storages, serverAdapter, monitor, cfg.Event, log),
		Recorder:   NewRecorderService(storages, serverAdapter, monitor, reconciler, cfg.Event, log),
		Reconciler: reconciler,
		Monitor:    monitor,
		SyncJob:    NewSyncJob(reconciler, monitor),
	}
}
