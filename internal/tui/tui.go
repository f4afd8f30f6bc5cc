// Package tui is the terminal surface of the check-in station: a code entry
// line, a status bar with connectivity and queue depth, a swag hand-out
// picker and an attendee search. It talks to the service layer only.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/internal/service"
)

type TUI struct {
	services *service.Services
}

func New(services *service.Services, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services}, nil
}

// Run starts the station screen and blocks until the operator quits. Bus
// events are forwarded into the program so connectivity transitions and
// completed syncs show up without polling.
func (t *TUI) Run(ctx context.Context) error {
	model := newStationModel(ctx, t.services)
	p := tea.NewProgram(model, tea.WithAltScreen())

	t.services.Bus.Subscribe(func(e service.Event) {
		p.Send(busEventMsg{event: e})
	})

	_, err := p.Run()
	return err
}
