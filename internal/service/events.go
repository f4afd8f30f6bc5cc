package service

import (
	"sync"

	"github.com/reckot/checkin-station/models"
)

// EventType labels a station lifecycle notification.
type EventType string

const (
	// EventOnline fires when the connectivity monitor observes the server
	// becoming reachable after a period offline.
	EventOnline EventType = "online"

	// EventOffline fires when the server stops answering probes.
	EventOffline EventType = "offline"

	// EventCheckinSynced fires once per pending check-in the server accepts
	// during a reconciliation pass. TicketCode names the settled record.
	EventCheckinSynced EventType = "checkin-synced"

	// EventSyncCompleted fires after a reconciliation pass that settled at
	// least one pending record. Report carries the pass totals.
	EventSyncCompleted EventType = "sync-completed"
)

// Event is one notification delivered to bus subscribers.
type Event struct {
	Type       EventType
	TicketCode string
	Report     models.SyncReport
}

// Bus is a minimal in-process publish/subscribe hub. The UI subscribes to
// learn about connectivity transitions and completed syncs without polling.
// Handlers run synchronously on the publisher's goroutine and must not block.
type Bus struct {
	mu       sync.RWMutex
	handlers []func(Event)
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for all future events. There is no unsubscribe;
// subscribers live as long as the process.
func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers = append(b.handlers, fn)
}

// Publish delivers e to every subscriber in registration order.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := b.handlers
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(e)
	}
}
