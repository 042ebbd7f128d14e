package aggregator

import (
	"context"
	"sync"

	"github.com/Sabbir999/Team-budget/live"
	"github.com/Sabbir999/Team-budget/metrics"
	"github.com/Sabbir999/Team-budget/services"
)

type sessionEntry struct {
	session *Session
	refs    int
}

// Manager hands out one shared Session per owner, refcounted by connection:
// the first WebSocket of an owner opens the session, the last one closing
// tears it down.
type Manager struct {
	teamSvc      services.TeamService
	playerSvc    services.PlayerService
	expenseSvc   services.ExpenseService
	paymentSvc   services.PaymentService
	dashboardSvc services.DashboardService
	prefSvc      services.PreferenceService

	bus *live.Bus
	hub *live.Hub

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewManager(
	teamSvc services.TeamService,
	playerSvc services.PlayerService,
	expenseSvc services.ExpenseService,
	paymentSvc services.PaymentService,
	dashboardSvc services.DashboardService,
	prefSvc services.PreferenceService,
	bus *live.Bus,
	hub *live.Hub,
) *Manager {
	return &Manager{
		teamSvc:      teamSvc,
		playerSvc:    playerSvc,
		expenseSvc:   expenseSvc,
		paymentSvc:   paymentSvc,
		dashboardSvc: dashboardSvc,
		prefSvc:      prefSvc,
		bus:          bus,
		hub:          hub,
		sessions:     make(map[string]*sessionEntry),
	}
}

// Acquire returns the owner's session, creating and loading it on first use.
// Every Acquire must be paired with one Release.
func (m *Manager) Acquire(ctx context.Context, ownerID string) (*Session, error) {
	m.mu.Lock()
	if entry, ok := m.sessions[ownerID]; ok {
		entry.refs++
		m.mu.Unlock()
		return entry.session, nil
	}
	m.mu.Unlock()

	session := &Session{
		ownerID:      ownerID,
		teamSvc:      m.teamSvc,
		playerSvc:    m.playerSvc,
		expenseSvc:   m.expenseSvc,
		paymentSvc:   m.paymentSvc,
		dashboardSvc: m.dashboardSvc,
		prefSvc:      m.prefSvc,
		hub:          m.hub,
		loading:      true,
	}
	if err := session.load(ctx); err != nil {
		return nil, err
	}
	session.unsubscribe = m.bus.Subscribe(ownerID, session.handleEvent)

	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.sessions[ownerID]; ok {
		// Lost the race to a concurrent Acquire; keep the winner.
		session.close()
		entry.refs++
		return entry.session, nil
	}
	m.sessions[ownerID] = &sessionEntry{session: session, refs: 1}
	metrics.AddLiveSessions(1)
	return session, nil
}

// Release drops one reference. The session closes when the count hits zero.
func (m *Manager) Release(ownerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[ownerID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.sessions, ownerID)
		entry.session.close()
		metrics.AddLiveSessions(-1)
	}
}

// Get returns the owner's session if one is live, without taking a
// reference. Used by request handlers that only want to nudge an existing
// session, e.g. a team switch.
func (m *Manager) Get(ownerID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[ownerID]
	if !ok {
		return nil, false
	}
	return entry.session, true
}
