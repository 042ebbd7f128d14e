package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Sabbir999/Team-budget/models"
	"github.com/Sabbir999/Team-budget/repositories"
)

// In-memory repository fakes. They mirror the postgres implementations' id
// and timestamp stamping so services behave the same under test.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = uuid.NewString()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.UpdatedAt = time.Now().UTC()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeTeamRepo struct {
	teams map[string]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]*models.Team)}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	team.ID = uuid.NewString()
	now := time.Now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, ownerID, id string) (*models.Team, error) {
	t, ok := r.teams[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repositories.ErrTeamNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTeamRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Team, error) {
	out := make([]models.Team, 0)
	for _, t := range r.teams {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	existing, ok := r.teams[team.ID]
	if !ok || existing.OwnerID != team.OwnerID {
		return repositories.ErrTeamNotFound
	}
	team.UpdatedAt = time.Now().UTC()
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, ownerID, id string, logoKey *string) error {
	t, ok := r.teams[id]
	if !ok || t.OwnerID != ownerID {
		return repositories.ErrTeamNotFound
	}
	t.LogoKey = logoKey
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, ownerID, id string) error {
	t, ok := r.teams[id]
	if !ok || t.OwnerID != ownerID {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

type fakePlayerRepo struct {
	players map[string]*models.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[string]*models.Player)}
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	player.ID = uuid.NewString()
	now := time.Now().UTC()
	player.CreatedAt = now
	player.UpdatedAt = now
	cp := *player
	r.players[player.ID] = &cp
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, ownerID, id string) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok || p.OwnerID != ownerID {
		return nil, repositories.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlayerRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Player, error) {
	out := make([]models.Player, 0)
	for _, p := range r.players {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) ListByTeam(_ context.Context, ownerID, teamID string) ([]models.Player, error) {
	out := make([]models.Player, 0)
	for _, p := range r.players {
		if p.OwnerID == ownerID && p.TeamID == teamID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	existing, ok := r.players[player.ID]
	if !ok || existing.OwnerID != player.OwnerID {
		return repositories.ErrPlayerNotFound
	}
	player.UpdatedAt = time.Now().UTC()
	cp := *player
	r.players[player.ID] = &cp
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, ownerID, id string) error {
	p, ok := r.players[id]
	if !ok || p.OwnerID != ownerID {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

type fakeExpenseRepo struct {
	expenses map[string]*models.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[string]*models.Expense)}
}

func (r *fakeExpenseRepo) Create(_ context.Context, expense *models.Expense) error {
	expense.ID = uuid.NewString()
	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now
	cp := *expense
	r.expenses[expense.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) GetByID(_ context.Context, ownerID, id string) (*models.Expense, error) {
	e, ok := r.expenses[id]
	if !ok || e.OwnerID != ownerID {
		return nil, repositories.ErrExpenseNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpenseRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Expense, error) {
	out := make([]models.Expense, 0)
	for _, e := range r.expenses {
		if e.OwnerID == ownerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) ListByTeam(_ context.Context, ownerID, teamID string) ([]models.Expense, error) {
	out := make([]models.Expense, 0)
	for _, e := range r.expenses {
		if e.OwnerID == ownerID && e.TeamID == teamID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) Update(_ context.Context, expense *models.Expense) error {
	existing, ok := r.expenses[expense.ID]
	if !ok || existing.OwnerID != expense.OwnerID {
		return repositories.ErrExpenseNotFound
	}
	expense.UpdatedAt = time.Now().UTC()
	cp := *expense
	r.expenses[expense.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) UpdateReceiptKey(_ context.Context, ownerID, id string, receiptKey *string) error {
	e, ok := r.expenses[id]
	if !ok || e.OwnerID != ownerID {
		return repositories.ErrExpenseNotFound
	}
	e.ReceiptKey = receiptKey
	return nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, ownerID, id string) error {
	e, ok := r.expenses[id]
	if !ok || e.OwnerID != ownerID {
		return repositories.ErrExpenseNotFound
	}
	delete(r.expenses, id)
	return nil
}

type fakePaymentRepo struct {
	payments map[string]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*models.Payment)}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	payment.ID = uuid.NewString()
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, ownerID, id string) (*models.Payment, error) {
	p, ok := r.payments[id]
	if !ok || p.OwnerID != ownerID {
		return nil, repositories.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Payment, error) {
	out := make([]models.Payment, 0)
	for _, p := range r.payments {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListByTeam(_ context.Context, ownerID, teamID string) ([]models.Payment, error) {
	out := make([]models.Payment, 0)
	for _, p := range r.payments {
		if p.OwnerID == ownerID && p.TeamID == teamID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListByPlayer(_ context.Context, ownerID, playerID string) ([]models.Payment, error) {
	out := make([]models.Payment, 0)
	for _, p := range r.payments {
		if p.OwnerID == ownerID && p.PlayerID == playerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ExistsForPeriod(_ context.Context, ownerID, playerID, month string, year int) (bool, error) {
	for _, p := range r.payments {
		if p.OwnerID == ownerID && p.PlayerID == playerID && p.Month == month && p.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, payment *models.Payment) error {
	existing, ok := r.payments[payment.ID]
	if !ok || existing.OwnerID != payment.OwnerID {
		return repositories.ErrPaymentNotFound
	}
	payment.UpdatedAt = time.Now().UTC()
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, ownerID, id string) error {
	p, ok := r.payments[id]
	if !ok || p.OwnerID != ownerID {
		return repositories.ErrPaymentNotFound
	}
	delete(r.payments, id)
	return nil
}

type fakePreferenceRepo struct {
	prefs map[string]*models.Preference
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{prefs: make(map[string]*models.Preference)}
}

func (r *fakePreferenceRepo) Get(_ context.Context, ownerID string) (*models.Preference, error) {
	p, ok := r.prefs[ownerID]
	if !ok {
		return nil, repositories.ErrPreferenceNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePreferenceRepo) Upsert(_ context.Context, pref *models.Preference) error {
	pref.UpdatedAt = time.Now().UTC()
	cp := *pref
	r.prefs[pref.OwnerID] = &cp
	return nil
}
