package main

import (
	"fmt"

	"github.com/reckot/checkin-station/internal/adapter"
	"github.com/reckot/checkin-station/internal/config"
	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/internal/service"
	"github.com/reckot/checkin-station/internal/station"
	"github.com/reckot/checkin-station/internal/store"
	"github.com/reckot/checkin-station/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewStationLogger("checkin-station")
	cfg, err := config.GetStationConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	// a broken local store degrades the station to online-only operation
	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Warn().Err(err).Msg("local storage unavailable, running online-only")
		storages = nil
	}

	services := service.NewServices(storages, serverAdapter, cfg, log)

	ui, err := tui.New(services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := station.NewApp(services, ui, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init station app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("station run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
