package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/ports"
)

// AnalyticsService assembles the spending report from one store read.
type AnalyticsService struct {
	store ports.Store
}

func NewAnalyticsService(store ports.Store) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Report bundles every analytics view computed from the same snapshot.
type Report struct {
	Monthly    []analytics.MonthSpend
	Categories []analytics.CategorySpend
	Weekdays   []analytics.WeekdaySpend
	Velocity   []analytics.DaySpend
}

// BuildReport computes all analytics views for the owner as of the given
// instant.
func (s *AnalyticsService) BuildReport(ctx context.Context, owner string, asOf time.Time) (Report, error) {
	expenses, err := s.store.ListExpenses(ctx, owner)
	if err != nil {
		return Report{}, fmt.Errorf("list expenses: %w", err)
	}

	budgets, err := s.store.ListBudgets(ctx, owner)
	if err != nil {
		return Report{}, fmt.Errorf("list budgets: %w", err)
	}

	return Report{
		Monthly:    analytics.MonthlySeries(expenses),
		Categories: analytics.CategoryBreakdown(expenses, budgets),
		Weekdays:   analytics.WeekdaySpending(expenses),
		Velocity:   analytics.Velocity(expenses, asOf),
	}, nil
}
