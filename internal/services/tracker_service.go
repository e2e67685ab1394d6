package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/ports"
)

// TrackerService orchestrates debt and goal tracking.
type TrackerService struct {
	store     ports.Store
	publisher ChangePublisher
}

func NewTrackerService(store ports.Store, publisher ChangePublisher) *TrackerService {
	return &TrackerService{
		store:     store,
		publisher: publisher,
	}
}

// CreateDebt validates and saves a debt, then announces the change.
func (s *TrackerService) CreateDebt(ctx context.Context, d core.Debt) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, fmt.Errorf("validate debt: %w", err)
	}

	id, err := s.store.CreateDebt(ctx, d)
	if err != nil {
		return 0, fmt.Errorf("save debt: %w", err)
	}

	publishChange(ctx, s.publisher, amqp.EntityDebt, amqp.OpCreate, d.Owner, id)
	return id, nil
}

// UpdateDebt validates and rewrites a debt, then announces the change.
func (s *TrackerService) UpdateDebt(ctx context.Context, d core.Debt) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("validate debt: %w", err)
	}

	if err := s.store.UpdateDebt(ctx, d); err != nil {
		return fmt.Errorf("update debt: %w", err)
	}

	publishChange(ctx, s.publisher, amqp.EntityDebt, amqp.OpUpdate, d.Owner, d.ID)
	return nil
}

// DeleteDebt removes a debt and its payment history, then announces the change.
func (s *TrackerService) DeleteDebt(ctx context.Context, owner string, id int64) error {
	if err := s.store.DeleteDebt(ctx, owner, id); err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}

	publishChange(ctx, s.publisher, amqp.EntityDebt, amqp.OpDelete, owner, id)
	return nil
}

// RecordPayment stores a payment against a debt and reduces its balance.
func (s *TrackerService) RecordPayment(ctx context.Context, p core.DebtPayment) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, fmt.Errorf("validate payment: %w", err)
	}

	id, err := s.store.RecordPayment(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("record payment: %w", err)
	}

	publishChange(ctx, s.publisher, amqp.EntityDebt, amqp.OpUpdate, p.Owner, p.DebtID)
	return id, nil
}

// ListPayments returns the payment history for one debt, most recent first.
func (s *TrackerService) ListPayments(ctx context.Context, owner string, debtID int64) ([]core.DebtPayment, error) {
	return s.store.ListPayments(ctx, owner, debtID)
}

// DebtSummary rolls the owner's debts up into payoff progress and totals.
func (s *TrackerService) DebtSummary(ctx context.Context, owner string, asOf time.Time) (analytics.DebtSummary, error) {
	debts, err := s.store.ListDebts(ctx, owner)
	if err != nil {
		return analytics.DebtSummary{}, fmt.Errorf("list debts: %w", err)
	}
	return analytics.SummarizeDebts(debts, asOf), nil
}

// CreateGoal validates and saves a goal, then announces the change.
func (s *TrackerService) CreateGoal(ctx context.Context, g core.Goal) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, fmt.Errorf("validate goal: %w", err)
	}

	id, err := s.store.CreateGoal(ctx, g)
	if err != nil {
		return 0, fmt.Errorf("save goal: %w", err)
	}

	publishChange(ctx, s.publisher, amqp.EntityGoal, amqp.OpCreate, g.Owner, id)
	return id, nil
}

// UpdateGoal validates and rewrites a goal, then announces the change.
func (s *TrackerService) UpdateGoal(ctx context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("validate goal: %w", err)
	}

	if err := s.store.UpdateGoal(ctx, g); err != nil {
		return fmt.Errorf("update goal: %w", err)
	}

	publishChange(ctx, s.publisher, amqp.EntityGoal, amqp.OpUpdate, g.Owner, g.ID)
	return nil
}

// DeleteGoal removes a goal, then announces the change.
func (s *TrackerService) DeleteGoal(ctx context.Context, owner string, id int64) error {
	if err := s.store.DeleteGoal(ctx, owner, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}

	publishChange(ctx, s.publisher, amqp.EntityGoal, amqp.OpDelete, owner, id)
	return nil
}

// GoalProgress returns each goal's completion state.
func (s *TrackerService) GoalProgress(ctx context.Context, owner string, asOf time.Time) ([]analytics.GoalProgress, error) {
	goals, err := s.store.ListGoals(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return analytics.SummarizeGoals(goals, asOf), nil
}

// ListDebts returns the owner's debts, newest first.
func (s *TrackerService) ListDebts(ctx context.Context, owner string) ([]core.Debt, error) {
	return s.store.ListDebts(ctx, owner)
}

// ListGoals returns the owner's goals, newest first.
func (s *TrackerService) ListGoals(ctx context.Context, owner string) ([]core.Goal, error) {
	return s.store.ListGoals(ctx, owner)
}
