package tui

import (
	"fmt"
	"strings"

	"github.com/reckot/checkin-station/models"
)

func (m stationModel) View() string {
	var b strings.Builder

	title := m.event.Title
	if title == "" {
		title = "Check-in station"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	b.WriteString("\n\n")

	switch m.mode {
	case modeSwag:
		b.WriteString(m.swagView())
	case modeSearch:
		b.WriteString(m.searchView())
	default:
		b.WriteString(boxStyle.Render(m.input.View()))
	}
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.statusMsg != "" {
		b.WriteString(m.statusMsg)
		b.WriteString("\n")
	}

	if len(m.history) > 0 {
		b.WriteString("\n")
		for _, line := range m.history {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))

	return appStyle.Render(b.String())
}

func (m stationModel) statusBar() string {
	var parts []string

	switch {
	case m.offlineMode:
		parts = append(parts, offStyle.Render("◌ FORCED OFFLINE"))
	case m.status.IsOnline:
		parts = append(parts, onlineStyle.Render("● ONLINE"))
	default:
		parts = append(parts, errorStyle.Render("○ OFFLINE"))
	}

	if m.status.IsSyncing || m.busy {
		parts = append(parts, "working...")
	}

	pending := m.status.PendingCheckins + m.status.PendingSwag
	if pending > 0 {
		parts = append(parts, fmt.Sprintf("%d pending (%d check-ins, %d swag)",
			pending, m.status.PendingCheckins, m.status.PendingSwag))
	}

	return strings.Join(parts, "  ")
}

func (m stationModel) swagView() string {
	if m.lastCheckin == nil {
		return ""
	}

	var b strings.Builder
	name := ""
	if m.lastCheckin.Ticket != nil {
		name = m.lastCheckin.Ticket.AttendeeName
	}
	b.WriteString(fmt.Sprintf("Hand out swag to %s:\n", name))
	for i, item := range m.lastCheckin.SwagItems {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, item.Name))
	}
	b.WriteString(helpStyle.Render("press the item number, esc when done"))
	return b.String()
}

func (m stationModel) searchView() string {
	var b strings.Builder
	b.WriteString(boxStyle.Render(m.input.View()))
	b.WriteString("\n")

	for _, ticket := range m.results {
		state := " "
		if ticket.IsCheckedIn {
			state = okStyle.Render("✓")
		}
		b.WriteString(fmt.Sprintf("  %s %-12s %-24s %s\n", state, ticket.Code, ticket.AttendeeName, helpStyle.Render(ticket.TicketType)))
	}

	return b.String()
}

func (m stationModel) helpLine() string {
	switch m.mode {
	case modeSwag:
		return "1-9 hand out • esc back • ctrl+c quit"
	case modeSearch:
		return "enter search • esc back • ctrl+c quit"
	default:
		return "enter verify • ctrl+f search • ctrl+s sync • ctrl+o offline mode • ctrl+r reload • ctrl+y copy ref • ctrl+c quit"
	}
}

func outcomeLine(outcome models.Outcome) string {
	name := ""
	if outcome.Ticket != nil {
		name = " " + outcome.Ticket.AttendeeName
	}

	if outcome.Success {
		suffix := ""
		if outcome.WillSync {
			suffix = " (offline, queued)"
		}
		return okStyle.Render("✓") + fmt.Sprintf(" Checked in%s%s", name, suffix)
	}

	return failStyle.Render("✗") + fmt.Sprintf(" %s%s", outcome.Message, name)
}

func swagLine(outcome models.Outcome) string {
	if outcome.Success {
		suffix := ""
		if outcome.WillSync {
			suffix = " (offline, queued)"
		}
		return okStyle.Render("✓") + " Swag handed out" + suffix
	}
	return failStyle.Render("✗") + " " + outcome.Message
}

func syncSummary(report models.SyncReport) string {
	if !report.Changed() && report.Failed == 0 {
		return "Nothing to sync"
	}

	parts := []string{}
	if report.CheckinsSynced > 0 {
		parts = append(parts, fmt.Sprintf("%d check-ins synced", report.CheckinsSynced))
	}
	if report.SwagSynced > 0 {
		parts = append(parts, fmt.Sprintf("%d swag synced", report.SwagSynced))
	}
	if report.Conflicts > 0 {
		parts = append(parts, fmt.Sprintf("%d duplicates settled", report.Conflicts))
	}
	if report.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d left pending", report.Failed))
	}

	return "Sync: " + strings.Join(parts, ", ")
}
