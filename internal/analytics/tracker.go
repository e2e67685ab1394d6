package analytics

import (
	"math"
	"time"

	"fintrack/internal/core"
)

type (
	// DebtProgress is the derived payoff state of one debt.
	DebtProgress struct {
		Debt         core.Debt
		PaidPercent  float64
		DaysUntilDue int  // valid only when HasDueDate
		HasDueDate   bool
	}

	// DebtSummary rolls all debts up for the tracker header cards.
	DebtSummary struct {
		Items                []DebtProgress
		TotalBalance         float64
		TotalMinimumPayments float64
		HighestInterest      *core.Debt
	}

	// GoalProgress is the derived state of one savings goal.
	GoalProgress struct {
		Goal          core.Goal
		Percentage    float64 // clamped to [0, 100]
		DaysRemaining int
		Achieved      bool
	}
)

// SummarizeDebts computes payoff progress and portfolio totals.
func SummarizeDebts(debts []core.Debt, asOf time.Time) DebtSummary {
	var (
		summary      DebtSummary
		balanceCents int64
		minimumCents int64
	)
	for i, d := range debts {
		dp := DebtProgress{Debt: d}
		if d.TotalAmount.Cents > 0 {
			paid := d.TotalAmount.Cents - d.CurrentBalance.Cents
			dp.PaidPercent = math.Round(float64(paid) / float64(d.TotalAmount.Cents) * 100)
		}
		if !d.DueDate.IsZero() {
			dp.HasDueDate = true
			dp.DaysUntilDue = daysUntil(asOf, d.DueDate)
		}
		summary.Items = append(summary.Items, dp)

		balanceCents += d.CurrentBalance.Cents
		minimumCents += d.MinimumPayment.Cents
		if summary.HighestInterest == nil || d.InterestRate > summary.HighestInterest.InterestRate {
			summary.HighestInterest = &debts[i]
		}
	}
	summary.TotalBalance = float64(balanceCents) / 100
	summary.TotalMinimumPayments = float64(minimumCents) / 100
	return summary
}

// SummarizeGoals computes progress toward each savings goal.
func SummarizeGoals(goals []core.Goal, asOf time.Time) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		gp := GoalProgress{Goal: g, DaysRemaining: daysUntil(asOf, g.TargetDate)}
		if g.TargetAmount.Cents > 0 {
			pct := math.Round(float64(g.CurrentAmount.Cents) / float64(g.TargetAmount.Cents) * 100)
			if pct > 100 {
				pct = 100
			}
			gp.Percentage = pct
		}
		gp.Achieved = g.CurrentAmount.Cents >= g.TargetAmount.Cents
		out = append(out, gp)
	}
	return out
}

// daysUntil counts whole days from asOf to target, rounding partial days up
// so "due tomorrow morning" still reads as one day left.
func daysUntil(asOf, target time.Time) int {
	return int(math.Ceil(target.Sub(asOf).Hours() / 24))
}
