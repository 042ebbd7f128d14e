// Package live carries change notifications from the write path to
// subscribers: an in-process event bus for aggregator sessions and a
// WebSocket hub pushing snapshots out to connected clients.
package live

import "sync"

// Collection names used in change events.
const (
	CollectionTeams    = "teams"
	CollectionPlayers  = "players"
	CollectionExpenses = "expenses"
	CollectionPayments = "payments"
)

// Event signals that one collection of one owner changed. It carries no
// payload: subscribers re-query the full collection, snapshot-style.
type Event struct {
	OwnerID    string
	Collection string
}

type subscriber struct {
	ownerID string
	events  chan Event
	once    sync.Once
}

// Bus is an in-process publish/subscribe fan-out keyed by owner. Each
// subscriber gets its own ordered delivery goroutine; Publish never blocks.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]*subscriber
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[string]map[int]*subscriber),
	}
}

// Subscribe registers fn for all change events of the given owner and
// returns an unsubscribe handle. Events are delivered to fn one at a time,
// in arrival order. The handle is safe to call more than once; teardown
// happens exactly once.
func (b *Bus) Subscribe(ownerID string, fn func(Event)) func() {
	sub := &subscriber{
		ownerID: ownerID,
		events:  make(chan Event, 64),
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if _, ok := b.subs[ownerID]; !ok {
		b.subs[ownerID] = make(map[int]*subscriber)
	}
	b.subs[ownerID][id] = sub
	b.mu.Unlock()

	go func() {
		for ev := range sub.events {
			fn(ev)
		}
	}()

	return func() {
		sub.once.Do(func() {
			b.mu.Lock()
			if owners, ok := b.subs[ownerID]; ok {
				delete(owners, id)
				if len(owners) == 0 {
					delete(b.subs, ownerID)
				}
			}
			b.mu.Unlock()
			close(sub.events)
		})
	}
}

// Publish notifies every subscriber of the owner. A subscriber whose queue
// is full is skipped; the next event triggers a full re-query anyway.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs[ev.OwnerID] {
		select {
		case sub.events <- ev:
		default:
		}
	}
}
