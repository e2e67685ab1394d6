// Package ports declares the outbound repository contracts.
//
// Every fetch is owner-scoped and returns an immutable snapshot; refresh and
// invalidation are the caller's job (the HTTP layer caches snapshots and
// drops them on record-change events). Nothing here threads a refresh
// counter through the call chain.
package ports

import (
	"context"

	"fintrack/internal/core"
)

type (
	ExpenseRepository interface {
		CreateExpense(ctx context.Context, e core.Expense) (int64, error)
		UpdateExpense(ctx context.Context, e core.Expense) error
		DeleteExpense(ctx context.Context, owner string, id int64) error
		GetExpense(ctx context.Context, owner string, id int64) (core.Expense, error)
		// ListExpenses returns the owner's expenses ordered by occurrence
		// date descending, then creation descending.
		ListExpenses(ctx context.Context, owner string) ([]core.Expense, error)
	}

	BudgetRepository interface {
		CreateBudget(ctx context.Context, b core.Budget) (int64, error)
		UpdateBudget(ctx context.Context, b core.Budget) error
		DeleteBudget(ctx context.Context, owner string, id int64) error
		// ListBudgets returns the owner's budgets ordered by creation time
		// descending; the progress engine preserves this order.
		ListBudgets(ctx context.Context, owner string) ([]core.Budget, error)
	}

	DebtRepository interface {
		CreateDebt(ctx context.Context, d core.Debt) (int64, error)
		UpdateDebt(ctx context.Context, d core.Debt) error
		DeleteDebt(ctx context.Context, owner string, id int64) error
		ListDebts(ctx context.Context, owner string) ([]core.Debt, error)
		// RecordPayment stores the payment and reduces the debt's balance,
		// flooring at zero, in one transaction.
		RecordPayment(ctx context.Context, p core.DebtPayment) (int64, error)
		ListPayments(ctx context.Context, owner string, debtID int64) ([]core.DebtPayment, error)
	}

	GoalRepository interface {
		CreateGoal(ctx context.Context, g core.Goal) (int64, error)
		UpdateGoal(ctx context.Context, g core.Goal) error
		DeleteGoal(ctx context.Context, owner string, id int64) error
		ListGoals(ctx context.Context, owner string) ([]core.Goal, error)
	}

	// Store is the full persistence surface a backend provides.
	Store interface {
		ExpenseRepository
		BudgetRepository
		DebtRepository
		GoalRepository
	}
)
