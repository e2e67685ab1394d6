package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/export"
	"fintrack/internal/ports"
)

// ExportService assembles full-account snapshots for download.
type ExportService struct {
	store ports.Store
}

func NewExportService(store ports.Store) *ExportService {
	return &ExportService{store: store}
}

// BuildSnapshot reads every collection the owner has into one export payload.
func (s *ExportService) BuildSnapshot(ctx context.Context, owner string, asOf time.Time) (export.Snapshot, error) {
	expenses, err := s.store.ListExpenses(ctx, owner)
	if err != nil {
		return export.Snapshot{}, fmt.Errorf("list expenses: %w", err)
	}
	budgets, err := s.store.ListBudgets(ctx, owner)
	if err != nil {
		return export.Snapshot{}, fmt.Errorf("list budgets: %w", err)
	}
	debts, err := s.store.ListDebts(ctx, owner)
	if err != nil {
		return export.Snapshot{}, fmt.Errorf("list debts: %w", err)
	}
	goals, err := s.store.ListGoals(ctx, owner)
	if err != nil {
		return export.Snapshot{}, fmt.Errorf("list goals: %w", err)
	}

	return export.Snapshot{
		Owner:      owner,
		ExportedAt: asOf,
		Expenses:   expenses,
		Budgets:    budgets,
		Debts:      debts,
		Goals:      goals,
	}, nil
}
