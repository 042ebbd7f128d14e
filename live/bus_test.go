package live

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBus_DeliversToOwnerOnly(t *testing.T) {
	bus := NewBus()

	got := make(chan Event, 4)
	unsubscribe := bus.Subscribe("owner-1", func(ev Event) { got <- ev })
	defer unsubscribe()

	other := make(chan Event, 4)
	unsubOther := bus.Subscribe("owner-2", func(ev Event) { other <- ev })
	defer unsubOther()

	bus.Publish(Event{OwnerID: "owner-1", Collection: CollectionTeams})

	select {
	case ev := <-got:
		require.Equal(t, "owner-1", ev.OwnerID)
		require.Equal(t, CollectionTeams, ev.Collection)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the event")
	}

	select {
	case ev := <-other:
		t.Fatalf("wrong owner received event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_OrderedDelivery(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var got []string
	done := make(chan struct{})

	unsubscribe := bus.Subscribe("owner-1", func(ev Event) {
		mu.Lock()
		got = append(got, ev.Collection)
		if len(got) == 4 {
			close(done)
		}
		mu.Unlock()
	})
	defer unsubscribe()

	for _, c := range []string{CollectionTeams, CollectionPlayers, CollectionExpenses, CollectionPayments} {
		bus.Publish(Event{OwnerID: "owner-1", Collection: c})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("not all events delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{CollectionTeams, CollectionPlayers, CollectionExpenses, CollectionPayments}, got)
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	got := make(chan Event, 4)
	unsubscribe := bus.Subscribe("owner-1", func(ev Event) { got <- ev })

	unsubscribe()
	// calling twice must not panic
	unsubscribe()

	bus.Publish(Event{OwnerID: "owner-1", Collection: CollectionTeams})

	select {
	case ev := <-got:
		t.Fatalf("received event after unsubscribe: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_MultipleSubscribersSameOwner(t *testing.T) {
	bus := NewBus()

	first := make(chan Event, 1)
	second := make(chan Event, 1)
	unsub1 := bus.Subscribe("owner-1", func(ev Event) { first <- ev })
	defer unsub1()
	unsub2 := bus.Subscribe("owner-1", func(ev Event) { second <- ev })
	defer unsub2()

	bus.Publish(Event{OwnerID: "owner-1", Collection: CollectionExpenses})

	for _, ch := range []chan Event{first, second} {
		select {
		case ev := <-ch:
			require.Equal(t, CollectionExpenses, ev.Collection)
		case <-time.After(time.Second):
			t.Fatal("subscriber missed the event")
		}
	}
}
