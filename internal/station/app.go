package station

import (
	"context"
	"errors"

	"github.com/reckot/checkin-station/internal/config"
	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/internal/service"
	"github.com/reckot/checkin-station/internal/tui"
)

// App owns the station lifecycle: background workers first, then the UI,
// then an orderly stop.
type App struct {
	cfg      *config.StationConfig
	services *service.Services
	ui       *tui.TUI
	logger   *logger.Logger
}

func NewApp(services *service.Services, ui *tui.TUI, cfg *config.StationConfig, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil || cfg == nil {
		return nil, errors.New("station app requires services, ui and config")
	}

	return &App{cfg: cfg, services: services, ui: ui, logger: log}, nil
}

// Run starts the connectivity monitor and the periodic sync job, refreshes
// the event snapshot when the server answers, then hands the terminal to the
// UI and blocks until the operator quits.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.services.Monitor.Start(ctx, a.cfg.Sync.ProbeInterval)
	defer a.services.Monitor.Stop()

	a.services.SyncJob.Start(ctx, a.cfg.Sync.Interval)
	defer a.services.SyncJob.Stop()

	// best-effort refresh so the operator starts with current data; the
	// cached snapshot keeps the station usable when this fails
	if a.services.Monitor.ForceCheck(ctx) {
		if _, err := a.services.Loader.LoadEventSnapshot(ctx); err != nil {
			a.logger.Warn().Err(err).Msg("startup snapshot refresh failed")
		}
	}

	return a.ui.Run(ctx)
}
