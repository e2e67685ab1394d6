package services

import (
	"context"
	"fmt"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ports"
)

// ExpenseService orchestrates expense writes across the store and AMQP.
type ExpenseService struct {
	store     ports.ExpenseRepository
	publisher ChangePublisher
}

func NewExpenseService(store ports.ExpenseRepository, publisher ChangePublisher) *ExpenseService {
	return &ExpenseService{
		store:     store,
		publisher: publisher,
	}
}

// CreateExpense validates and saves an expense, then announces the change.
func (s *ExpenseService) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, fmt.Errorf("validate expense: %w", err)
	}

	id, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}

	publishChange(ctx, s.publisher, amqp.EntityExpense, amqp.OpCreate, e.Owner, id)
	return id, nil
}

// UpdateExpense validates and rewrites an expense, then announces the change.
func (s *ExpenseService) UpdateExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validate expense: %w", err)
	}

	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	publishChange(ctx, s.publisher, amqp.EntityExpense, amqp.OpUpdate, e.Owner, e.ID)
	return nil
}

// DeleteExpense removes an expense, then announces the change.
func (s *ExpenseService) DeleteExpense(ctx context.Context, owner string, id int64) error {
	if err := s.store.DeleteExpense(ctx, owner, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	publishChange(ctx, s.publisher, amqp.EntityExpense, amqp.OpDelete, owner, id)
	return nil
}

// GetExpense fetches a single expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, owner string, id int64) (core.Expense, error) {
	return s.store.GetExpense(ctx, owner, id)
}

// ListExpenses returns the owner's expenses, most recent first.
func (s *ExpenseService) ListExpenses(ctx context.Context, owner string) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx, owner)
}
