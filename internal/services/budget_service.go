package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ports"
	"fintrack/internal/progress"
)

// BudgetService orchestrates budget writes and the progress overview.
type BudgetService struct {
	store     ports.Store
	publisher ChangePublisher
}

func NewBudgetService(store ports.Store, publisher ChangePublisher) *BudgetService {
	return &BudgetService{
		store:     store,
		publisher: publisher,
	}
}

// CreateBudget validates and saves a budget, then announces the change.
func (s *BudgetService) CreateBudget(ctx context.Context, b core.Budget) (int64, error) {
	if err := b.Validate(); err != nil {
		return 0, fmt.Errorf("validate budget: %w", err)
	}

	id, err := s.store.CreateBudget(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("save budget: %w", err)
	}

	publishChange(ctx, s.publisher, amqp.EntityBudget, amqp.OpCreate, b.Owner, id)
	return id, nil
}

// UpdateBudget validates and rewrites a budget, then announces the change.
func (s *BudgetService) UpdateBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("validate budget: %w", err)
	}

	if err := s.store.UpdateBudget(ctx, b); err != nil {
		return fmt.Errorf("update budget: %w", err)
	}

	publishChange(ctx, s.publisher, amqp.EntityBudget, amqp.OpUpdate, b.Owner, b.ID)
	return nil
}

// DeleteBudget removes a budget, then announces the change.
func (s *BudgetService) DeleteBudget(ctx context.Context, owner string, id int64) error {
	if err := s.store.DeleteBudget(ctx, owner, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}

	publishChange(ctx, s.publisher, amqp.EntityBudget, amqp.OpDelete, owner, id)
	return nil
}

// ListBudgets returns the owner's budgets, newest first.
func (s *BudgetService) ListBudgets(ctx context.Context, owner string) ([]core.Budget, error) {
	return s.store.ListBudgets(ctx, owner)
}

// Overview computes every budget's progress against the owner's expense
// snapshot as of the given instant. Both collections come from the same
// store read, so the result is a consistent point-in-time view.
func (s *BudgetService) Overview(ctx context.Context, owner string, asOf time.Time) (progress.Summary, error) {
	budgets, err := s.store.ListBudgets(ctx, owner)
	if err != nil {
		return progress.Summary{}, fmt.Errorf("list budgets: %w", err)
	}

	expenses, err := s.store.ListExpenses(ctx, owner)
	if err != nil {
		return progress.Summary{}, fmt.Errorf("list expenses: %w", err)
	}

	return progress.ComputeAll(toProgressBudgets(budgets), toProgressExpenses(expenses), asOf), nil
}

// BudgetProgress computes a single budget's progress as of the given instant.
func (s *BudgetService) BudgetProgress(ctx context.Context, owner string, id int64, asOf time.Time) (progress.Progress, []progress.Anomaly, error) {
	budgets, err := s.store.ListBudgets(ctx, owner)
	if err != nil {
		return progress.Progress{}, nil, fmt.Errorf("list budgets: %w", err)
	}

	var target *core.Budget
	for i := range budgets {
		if budgets[i].ID == id {
			target = &budgets[i]
			break
		}
	}
	if target == nil {
		return progress.Progress{}, nil, core.ErrNotFound
	}

	expenses, err := s.store.ListExpenses(ctx, owner)
	if err != nil {
		return progress.Progress{}, nil, fmt.Errorf("list expenses: %w", err)
	}

	return progress.Compute(toProgressBudget(*target), toProgressExpenses(expenses), asOf)
}

func toProgressBudget(b core.Budget) progress.Budget {
	return progress.Budget{
		ID:       b.ID,
		Category: b.Category,
		Amount:   b.Amount.Float(),
		Period:   b.Period,
		Currency: b.Currency,
	}
}

func toProgressBudgets(budgets []core.Budget) []progress.Budget {
	out := make([]progress.Budget, len(budgets))
	for i, b := range budgets {
		out[i] = toProgressBudget(b)
	}
	return out
}

func toProgressExpenses(expenses []core.Expense) []progress.Expense {
	out := make([]progress.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = progress.Expense{
			Category: e.Category,
			Amount:   e.Amount.Float(),
			Currency: e.Currency,
			Date:     e.Date,
		}
	}
	return out
}
