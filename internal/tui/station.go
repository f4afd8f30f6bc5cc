package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reckot/checkin-station/internal/service"
	"github.com/reckot/checkin-station/models"
)

const historySize = 8

type inputMode int

const (
	modeCode inputMode = iota
	modeSwag
	modeSearch
)

type stationModel struct {
	ctx      context.Context
	services *service.Services

	input textinput.Model
	mode  inputMode

	event       models.CachedEvent
	status      models.OfflineStatus
	offlineMode bool

	// swag hand-out state after a successful check-in
	lastCheckin *models.Outcome

	results []models.CachedTicket

	history   []string
	statusMsg string
	errMsg    string
	busy      bool

	width int
}

func newStationModel(ctx context.Context, services *service.Services) stationModel {
	input := textinput.New()
	input.Placeholder = "scan or type a ticket code"
	input.CharLimit = 64
	input.Focus()

	event, err := services.Loader.CachedEvent(ctx)
	if err != nil {
		event = models.CachedEvent{}
	}

	return stationModel{
		ctx:         ctx,
		services:    services,
		input:       input,
		event:       event,
		status:      services.Recorder.Status(ctx),
		offlineMode: services.Recorder.OfflineMode(ctx),
	}
}

func (m stationModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.cmdStatusTick())
}

func (m stationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusTickMsg:
		m.status = m.services.Recorder.Status(m.ctx)
		m.offlineMode = m.services.Recorder.OfflineMode(m.ctx)
		return m, m.cmdStatusTick()

	case busEventMsg:
		switch msg.event.Type {
		case service.EventOnline:
			m.statusMsg = "Server reachable again"
		case service.EventOffline:
			m.statusMsg = "Server unreachable, recording offline"
		case service.EventCheckinSynced:
			m.statusMsg = "Synced check-in " + msg.event.TicketCode
		case service.EventSyncCompleted:
			m.statusMsg = syncSummary(msg.event.Report)
		}
		m.status = m.services.Recorder.Status(m.ctx)
		return m, nil

	case verifyDoneMsg:
		m.busy = false
		m.pushOutcome(outcomeLine(msg.outcome))
		if msg.outcome.Success && len(msg.outcome.SwagItems) > 0 {
			m.lastCheckin = &msg.outcome
			m.mode = modeSwag
		}
		m.status = m.services.Recorder.Status(m.ctx)
		return m, nil

	case swagDoneMsg:
		m.busy = false
		m.pushOutcome(swagLine(msg.outcome))
		m.status = m.services.Recorder.Status(m.ctx)
		return m, nil

	case syncDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = "Sync failed: " + msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.statusMsg = syncSummary(msg.report)
		m.status = m.services.Recorder.Status(m.ctx)
		return m, nil

	case snapshotLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = "Snapshot load failed: " + msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.event = msg.snapshot.Event
		m.statusMsg = fmt.Sprintf("Loaded %d tickets, %d swag items", len(msg.snapshot.Tickets), len(msg.snapshot.SwagItems))
		return m, nil

	case offlineToggledMsg:
		if msg.err != nil {
			m.errMsg = "Could not toggle offline mode: " + msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.offlineMode = msg.enabled
		if msg.enabled {
			m.statusMsg = "Forced offline mode enabled"
		} else {
			m.statusMsg = "Forced offline mode disabled"
		}
		m.status = m.services.Recorder.Status(m.ctx)
		return m, nil

	case searchResultsMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = "Search failed: " + msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.results = msg.tickets
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Clipboard copy failed: " + msg.err.Error()
			return m, nil
		}
		m.statusMsg = "Reference copied to clipboard"
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m stationModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit

	case key.Matches(msg, keys.syncNow):
		m.busy = true
		m.statusMsg = "Syncing..."
		return m, m.cmdSyncNow()

	case key.Matches(msg, keys.toggleOffline):
		return m, m.cmdToggleOffline(!m.offlineMode)

	case key.Matches(msg, keys.reload):
		m.busy = true
		m.statusMsg = "Loading event snapshot..."
		return m, m.cmdReloadSnapshot()

	case key.Matches(msg, keys.search):
		m.mode = modeSearch
		m.results = nil
		m.input.Reset()
		m.input.Placeholder = "search attendees"
		return m, nil

	case key.Matches(msg, keys.copyRef):
		if m.lastCheckin != nil && m.lastCheckin.CheckinRef != "" {
			return m, m.cmdCopyRef(m.lastCheckin.CheckinRef)
		}
		return m, nil

	case key.Matches(msg, keys.back):
		m.mode = modeCode
		m.results = nil
		m.input.Reset()
		m.input.Placeholder = "scan or type a ticket code"
		return m, nil
	}

	if m.mode == modeSwag {
		return m.updateSwagKeys(msg)
	}

	if key.Matches(msg, keys.submit) {
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			return m, nil
		}
		m.input.Reset()

		if m.mode == modeSearch {
			m.busy = true
			return m, m.cmdSearch(value)
		}

		m.busy = true
		return m, m.cmdVerify(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m stationModel) updateSwagKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.lastCheckin == nil {
		m.mode = modeCode
		return m, nil
	}

	n, err := strconv.Atoi(msg.String())
	if err != nil || n < 1 || n > len(m.lastCheckin.SwagItems) {
		return m, nil
	}

	item := m.lastCheckin.SwagItems[n-1]
	ticketCode := ""
	if m.lastCheckin.Ticket != nil {
		ticketCode = m.lastCheckin.Ticket.Code
	}

	m.busy = true
	return m, m.cmdCollectSwag(m.lastCheckin.CheckinRef, item.ID, ticketCode)
}

// commands

func (m stationModel) cmdVerify(code string) tea.Cmd {
	return func() tea.Msg {
		return verifyDoneMsg{outcome: m.services.Recorder.VerifyTicket(m.ctx, code)}
	}
}

func (m stationModel) cmdCollectSwag(checkinRef string, swagItemID int64, ticketCode string) tea.Cmd {
	return func() tea.Msg {
		return swagDoneMsg{outcome: m.services.Recorder.CollectSwag(m.ctx, checkinRef, swagItemID, ticketCode)}
	}
}

func (m stationModel) cmdSyncNow() tea.Cmd {
	return func() tea.Msg {
		report, err := m.services.Reconciler.SyncNow(m.ctx)
		return syncDoneMsg{report: report, err: err}
	}
}

func (m stationModel) cmdReloadSnapshot() tea.Cmd {
	return func() tea.Msg {
		snapshot, err := m.services.Loader.LoadEventSnapshot(m.ctx)
		return snapshotLoadedMsg{snapshot: snapshot, err: err}
	}
}

func (m stationModel) cmdToggleOffline(enabled bool) tea.Cmd {
	return func() tea.Msg {
		return offlineToggledMsg{enabled: enabled, err: m.services.Recorder.SetOfflineMode(m.ctx, enabled)}
	}
}

func (m stationModel) cmdSearch(query string) tea.Cmd {
	return func() tea.Msg {
		tickets, err := m.services.Recorder.SearchTickets(m.ctx, query, 10)
		return searchResultsMsg{tickets: tickets, err: err}
	}
}

func (m stationModel) cmdCopyRef(ref string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(ref)}
	}
}

func (m stationModel) cmdStatusTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return statusTickMsg{} })
}

func (m *stationModel) pushOutcome(line string) {
	m.history = append([]string{line}, m.history...)
	if len(m.history) > historySize {
		m.history = m.history[:historySize]
	}
}
