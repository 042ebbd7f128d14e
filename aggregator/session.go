// Package aggregator maintains one live, in-memory view of an account while
// at least one WebSocket client is connected: all four collections, the
// selected team, and the derived dashboard. Every change event triggers a
// full re-query of the changed collection followed by a snapshot push.
package aggregator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Sabbir999/Team-budget/live"
	"github.com/Sabbir999/Team-budget/metrics"
	"github.com/Sabbir999/Team-budget/models"
	"github.com/Sabbir999/Team-budget/services"
)

// Snapshot message types pushed over the hub.
const (
	MessageTeams       = "teams"
	MessagePlayers     = "players"
	MessageExpenses    = "expenses"
	MessagePayments    = "payments"
	MessageStats       = "stats"
	MessageCurrentTeam = "currentTeam"
	MessageLoading     = "loading"
)

const queryTimeout = 10 * time.Second

// Session is the live view of one owner's account. It subscribes to the
// change bus, keeps collection snapshots in memory and pushes updates to
// every connection of that owner through the hub.
type Session struct {
	ownerID string

	teamSvc      services.TeamService
	playerSvc    services.PlayerService
	expenseSvc   services.ExpenseService
	paymentSvc   services.PaymentService
	dashboardSvc services.DashboardService
	prefSvc      services.PreferenceService

	hub *live.Hub

	mu            sync.RWMutex
	teams         []models.Team
	players       []models.Player
	expenses      []models.Expense
	payments      []models.Payment
	currentTeamID string
	loading       bool

	unsubscribe func()
	closeOnce   sync.Once
}

func (s *Session) load(ctx context.Context) error {
	var (
		teams    []models.Team
		players  []models.Player
		expenses []models.Expense
		payments []models.Payment
		pref     *models.Preference
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamSvc.ListTeams(gctx, s.ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = s.playerSvc.ListPlayers(gctx, s.ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenseSvc.ListExpenses(gctx, s.ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.paymentSvc.ListPayments(gctx, s.ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		pref, err = s.prefSvc.GetPreference(gctx, s.ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.teams = teams
	s.players = players
	s.expenses = expenses
	s.payments = payments
	s.currentTeamID = resolveCurrentTeam(pref.CurrentTeamID, teams)
	s.loading = false
	s.mu.Unlock()
	return nil
}

// resolveCurrentTeam picks the team the view should focus on: the saved hint
// when it still exists, otherwise the first team, otherwise nothing.
func resolveCurrentTeam(hint string, teams []models.Team) string {
	if hint != "" {
		for _, t := range teams {
			if t.ID == hint {
				return hint
			}
		}
	}
	if len(teams) > 0 {
		return teams[0].ID
	}
	return ""
}

// handleEvent re-queries the changed collection and pushes fresh snapshots.
// The bus delivers events one at a time, so re-queries never interleave.
func (s *Session) handleEvent(ev live.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	switch ev.Collection {
	case live.CollectionTeams:
		teams, err := s.teamSvc.ListTeams(ctx, s.ownerID)
		if err != nil {
			slog.Error("session re-query failed", "owner", s.ownerID, "collection", ev.Collection, "error", err)
			return
		}
		s.mu.Lock()
		s.teams = teams
		// The store snapshot wins over any pending selection: if the
		// selected team disappeared, fall back.
		s.currentTeamID = resolveCurrentTeam(s.currentTeamID, teams)
		s.mu.Unlock()
		s.pushTeams()
		s.pushCurrentTeam()

	case live.CollectionPlayers:
		players, err := s.playerSvc.ListPlayers(ctx, s.ownerID)
		if err != nil {
			slog.Error("session re-query failed", "owner", s.ownerID, "collection", ev.Collection, "error", err)
			return
		}
		s.mu.Lock()
		s.players = players
		s.mu.Unlock()
		s.pushPlayers()

	case live.CollectionExpenses:
		expenses, err := s.expenseSvc.ListExpenses(ctx, s.ownerID)
		if err != nil {
			slog.Error("session re-query failed", "owner", s.ownerID, "collection", ev.Collection, "error", err)
			return
		}
		s.mu.Lock()
		s.expenses = expenses
		s.mu.Unlock()
		s.pushExpenses()

	case live.CollectionPayments:
		payments, err := s.paymentSvc.ListPayments(ctx, s.ownerID)
		if err != nil {
			slog.Error("session re-query failed", "owner", s.ownerID, "collection", ev.Collection, "error", err)
			return
		}
		s.mu.Lock()
		s.payments = payments
		s.mu.Unlock()
		s.pushPayments()
	}

	s.pushStats(ctx)
}

// SetCurrentTeam switches the focused team and persists the choice as the
// restore hint. An empty id clears the selection and widens every view to
// the whole account.
func (s *Session) SetCurrentTeam(ctx context.Context, teamID string) error {
	if teamID != "" {
		s.mu.RLock()
		found := false
		for _, t := range s.teams {
			if t.ID == teamID {
				found = true
				break
			}
		}
		s.mu.RUnlock()
		if !found {
			return services.ErrTeamNotFound
		}
	}

	s.mu.Lock()
	s.currentTeamID = teamID
	s.mu.Unlock()

	sport := ""
	if teamID != "" {
		s.mu.RLock()
		for _, t := range s.teams {
			if t.ID == teamID {
				sport = t.SportType
				break
			}
		}
		s.mu.RUnlock()
	}
	if _, err := s.prefSvc.UpdatePreference(ctx, s.ownerID, services.UpdatePreferenceInput{
		CurrentTeamID: &teamID,
		CurrentSport:  &sport,
	}); err != nil {
		return err
	}

	s.pushCurrentTeam()
	s.pushPlayers()
	s.pushExpenses()
	s.pushPayments()
	s.pushStats(ctx)
	return nil
}

// AdoptTeam makes a freshly created team current without waiting for the
// next teams snapshot to arrive over the bus.
func (s *Session) AdoptTeam(ctx context.Context, team models.Team) error {
	s.mu.Lock()
	known := false
	for _, t := range s.teams {
		if t.ID == team.ID {
			known = true
			break
		}
	}
	if !known {
		s.teams = append(s.teams, team)
	}
	s.mu.Unlock()

	return s.SetCurrentTeam(ctx, team.ID)
}

// CurrentTeam returns the focused team id, empty when nothing is selected.
func (s *Session) CurrentTeam() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentTeamID
}

// Loading reports whether the initial load has completed.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Teams returns the full team list snapshot.
func (s *Session) Teams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teams
}

// Players returns the roster filtered to the focused team, or everyone when
// no team is selected.
func (s *Session) Players() []models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentTeamID == "" {
		return s.players
	}
	out := make([]models.Player, 0, len(s.players))
	for _, p := range s.players {
		if p.TeamID == s.currentTeamID {
			out = append(out, p)
		}
	}
	return out
}

// Expenses returns expenses filtered to the focused team, or all of them
// when no team is selected.
func (s *Session) Expenses() []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentTeamID == "" {
		return s.expenses
	}
	out := make([]models.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if e.TeamID == s.currentTeamID {
			out = append(out, e)
		}
	}
	return out
}

// Payments returns payments filtered to the focused team, or all of them
// when no team is selected.
func (s *Session) Payments() []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentTeamID == "" {
		return s.payments
	}
	out := make([]models.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		if p.TeamID == s.currentTeamID {
			out = append(out, p)
		}
	}
	return out
}

// InitialMessages builds the snapshot sequence a freshly connected client
// receives before any change events.
func (s *Session) InitialMessages(ctx context.Context) []live.SnapshotMessage {
	messages := []live.SnapshotMessage{
		{Type: MessageLoading, Payload: s.Loading()},
		{Type: MessageTeams, Payload: s.Teams()},
		{Type: MessageCurrentTeam, Payload: s.CurrentTeam()},
		{Type: MessagePlayers, Payload: s.Players()},
		{Type: MessageExpenses, Payload: s.Expenses()},
		{Type: MessagePayments, Payload: s.Payments()},
	}
	if stats, err := s.dashboardSvc.GetStats(ctx, s.ownerID, s.CurrentTeam()); err == nil {
		messages = append(messages, live.SnapshotMessage{Type: MessageStats, Payload: stats})
	} else {
		slog.Error("initial stats failed", "owner", s.ownerID, "error", err)
	}
	return messages
}

func (s *Session) pushTeams() {
	metrics.ObserveSnapshotPush(live.CollectionTeams)
	s.hub.BroadcastToUser(s.ownerID, live.SnapshotMessage{Type: MessageTeams, Payload: s.Teams()})
}

func (s *Session) pushPlayers() {
	metrics.ObserveSnapshotPush(live.CollectionPlayers)
	s.hub.BroadcastToUser(s.ownerID, live.SnapshotMessage{Type: MessagePlayers, Payload: s.Players()})
}

func (s *Session) pushExpenses() {
	metrics.ObserveSnapshotPush(live.CollectionExpenses)
	s.hub.BroadcastToUser(s.ownerID, live.SnapshotMessage{Type: MessageExpenses, Payload: s.Expenses()})
}

func (s *Session) pushPayments() {
	metrics.ObserveSnapshotPush(live.CollectionPayments)
	s.hub.BroadcastToUser(s.ownerID, live.SnapshotMessage{Type: MessagePayments, Payload: s.Payments()})
}

func (s *Session) pushCurrentTeam() {
	s.hub.BroadcastToUser(s.ownerID, live.SnapshotMessage{Type: MessageCurrentTeam, Payload: s.CurrentTeam()})
}

func (s *Session) pushStats(ctx context.Context) {
	stats, err := s.dashboardSvc.GetStats(ctx, s.ownerID, s.CurrentTeam())
	if err != nil {
		slog.Error("stats refresh failed", "owner", s.ownerID, "error", err)
		return
	}
	s.hub.BroadcastToUser(s.ownerID, live.SnapshotMessage{Type: MessageStats, Payload: stats})
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
	})
}
