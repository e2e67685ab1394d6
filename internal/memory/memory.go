// Package memory provides an in-process ports.Store used as the default
// backend and as the test double for services and handlers.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ports"
)

type Store struct {
	mu       sync.Mutex
	nextID   int64
	expenses map[int64]core.Expense
	budgets  map[int64]core.Budget
	debts    map[int64]core.Debt
	payments map[int64]core.DebtPayment
	goals    map[int64]core.Goal
}

var _ ports.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		nextID:   1,
		expenses: make(map[int64]core.Expense),
		budgets:  make(map[int64]core.Budget),
		debts:    make(map[int64]core.Debt),
		payments: make(map[int64]core.DebtPayment),
		goals:    make(map[int64]core.Goal),
	}
}

func (s *Store) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) CreateExpense(_ context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.allocID()
	if e.Created.IsZero() {
		e.Created = time.Now().UTC()
	}
	s.expenses[e.ID] = e
	return e.ID, nil
}

func (s *Store) UpdateExpense(_ context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.expenses[e.ID]
	if !ok || existing.Owner != e.Owner {
		return core.ErrNotFound
	}
	e.Created = existing.Created
	s.expenses[e.ID] = e
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, owner string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.expenses[id]
	if !ok || existing.Owner != owner {
		return core.ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *Store) GetExpense(_ context.Context, owner string, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok || e.Owner != owner {
		return core.Expense{}, core.ErrNotFound
	}
	return e, nil
}

func (s *Store) ListExpenses(_ context.Context, owner string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.expenses {
		if e.Owner == owner {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Created.After(out[j].Created)
	})
	return out, nil
}

func (s *Store) CreateBudget(_ context.Context, b core.Budget) (int64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.allocID()
	now := time.Now().UTC()
	if b.Created.IsZero() {
		b.Created = now
	}
	b.Updated = now
	s.budgets[b.ID] = b
	return b.ID, nil
}

func (s *Store) UpdateBudget(_ context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.budgets[b.ID]
	if !ok || existing.Owner != b.Owner {
		return core.ErrNotFound
	}
	b.Created = existing.Created
	b.Updated = time.Now().UTC()
	s.budgets[b.ID] = b
	return nil
}

func (s *Store) DeleteBudget(_ context.Context, owner string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.budgets[id]
	if !ok || existing.Owner != owner {
		return core.ErrNotFound
	}
	delete(s.budgets, id)
	return nil
}

func (s *Store) ListBudgets(_ context.Context, owner string) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Budget
	for _, b := range s.budgets {
		if b.Owner == owner {
			out = append(out, b)
		}
	}
	// Creation descending; IDs break the tie for records created in the
	// same instant.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.After(out[j].Created)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) CreateDebt(_ context.Context, d core.Debt) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.allocID()
	now := time.Now().UTC()
	if d.Created.IsZero() {
		d.Created = now
	}
	d.Updated = now
	s.debts[d.ID] = d
	return d.ID, nil
}

func (s *Store) UpdateDebt(_ context.Context, d core.Debt) error {
	if err := d.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.debts[d.ID]
	if !ok || existing.Owner != d.Owner {
		return core.ErrNotFound
	}
	d.Created = existing.Created
	d.Updated = time.Now().UTC()
	s.debts[d.ID] = d
	return nil
}

func (s *Store) DeleteDebt(_ context.Context, owner string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.debts[id]
	if !ok || existing.Owner != owner {
		return core.ErrNotFound
	}
	delete(s.debts, id)
	for pid, p := range s.payments {
		if p.DebtID == id {
			delete(s.payments, pid)
		}
	}
	return nil
}

func (s *Store) ListDebts(_ context.Context, owner string) ([]core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Debt
	for _, d := range s.debts {
		if d.Owner == owner {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.After(out[j].Created)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) RecordPayment(_ context.Context, p core.DebtPayment) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	debt, ok := s.debts[p.DebtID]
	if !ok || debt.Owner != p.Owner {
		return 0, core.ErrNotFound
	}

	p.ID = s.allocID()
	if p.Created.IsZero() {
		p.Created = time.Now().UTC()
	}
	s.payments[p.ID] = p

	balance := debt.CurrentBalance.Cents - p.Amount.Cents
	if balance < 0 {
		balance = 0
	}
	debt.CurrentBalance = core.Money{Cents: balance}
	debt.Updated = time.Now().UTC()
	s.debts[debt.ID] = debt
	return p.ID, nil
}

func (s *Store) ListPayments(_ context.Context, owner string, debtID int64) ([]core.DebtPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.DebtPayment
	for _, p := range s.payments {
		if p.Owner == owner && p.DebtID == debtID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PaidOn.Equal(out[j].PaidOn) {
			return out[i].PaidOn.After(out[j].PaidOn)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) CreateGoal(_ context.Context, g core.Goal) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = s.allocID()
	now := time.Now().UTC()
	if g.Created.IsZero() {
		g.Created = now
	}
	g.Updated = now
	s.goals[g.ID] = g
	return g.ID, nil
}

func (s *Store) UpdateGoal(_ context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.goals[g.ID]
	if !ok || existing.Owner != g.Owner {
		return core.ErrNotFound
	}
	g.Created = existing.Created
	g.Updated = time.Now().UTC()
	s.goals[g.ID] = g
	return nil
}

func (s *Store) DeleteGoal(_ context.Context, owner string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.goals[id]
	if !ok || existing.Owner != owner {
		return core.ErrNotFound
	}
	delete(s.goals, id)
	return nil
}

func (s *Store) ListGoals(_ context.Context, owner string) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Goal
	for _, g := range s.goals {
		if g.Owner == owner {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.After(out[j].Created)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
