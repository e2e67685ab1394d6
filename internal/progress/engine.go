// Package progress computes budget-versus-spend aggregates.
//
// It is the single place where spending is measured against budget limits;
// the overview, budget management, and analytics endpoints all consume its
// output instead of re-deriving their own sums. The package is pure: no I/O,
// no shared state, deterministic for a given asOf instant. Callers pass
// snapshots of both collections taken from the same refresh.
package progress

import (
	"fmt"
	"math"
	"time"

	"fintrack/internal/core"
)

type (
	// Budget is the subset of a budget record the engine evaluates.
	// Identity and audit fields stay with the caller.
	Budget struct {
		ID       int64
		Category string
		Amount   float64
		Period   core.Period
		Currency string
	}

	// Expense is the subset of an expense record the engine filters and sums.
	Expense struct {
		Category string
		Amount   float64
		Currency string
		Date     time.Time
	}

	// Window is the trailing interval [Start, End] a budget is measured over.
	Window struct {
		Start time.Time
		End   time.Time
	}

	// Progress is the derived state of one budget. Percentage is clamped to
	// [0, 100] for progress bars; Alert is decided on the unclamped ratio so
	// a budget at 500% is not mistaken for one at 81%.
	Progress struct {
		Budget     Budget
		Spent      float64
		Percentage float64
		Remaining  float64
		OverBudget bool
		Alert      bool
	}

	// Summary rolls every budget's progress up into portfolio totals.
	// Items preserves the input order of the budgets slice.
	Summary struct {
		Items          []Progress
		TotalBudget    float64
		TotalSpent     float64
		TotalRemaining float64
		AlertCount     int
		Skipped        []Anomaly
	}

	// Anomaly reports a record that could not contribute to a result.
	Anomaly struct {
		Kind     AnomalyKind
		Category string
		Detail   string
	}

	AnomalyKind string
)

const (
	MalformedExpense AnomalyKind = "malformed_expense"
	MalformedBudget  AnomalyKind = "malformed_budget"
	InvalidPeriod    AnomalyKind = "invalid_period"
)

// alertThreshold is the unclamped percentage above which a budget is
// flagged even before it is exceeded.
const alertThreshold = 80.0

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// PeriodWindow returns the trailing window for a period ending at asOf.
// Subtraction is calendar-aware via time.Time.AddDate, so "one month before
// March 31" normalizes the way the standard library does; tests pin the
// behavior. An unrecognized period is a defect in the calling code and
// fails with core.ErrInvalidPeriod.
func PeriodWindow(p core.Period, asOf time.Time) (Window, error) {
	var start time.Time
	switch p {
	case core.Weekly:
		start = asOf.AddDate(0, 0, -7)
	case core.Monthly:
		start = asOf.AddDate(0, -1, 0)
	case core.Quarterly:
		start = asOf.AddDate(0, -3, 0)
	case core.Yearly:
		start = asOf.AddDate(-1, 0, 0)
	default:
		return Window{}, fmt.Errorf("period %q: %w", p, core.ErrInvalidPeriod)
	}
	return Window{Start: start, End: asOf}, nil
}

// result carries cent-precise intermediates between compute and the
// exported entry points so batch totals are summed without drift.
type result struct {
	progress    Progress
	amountCents int64
	spentCents  int64
	anomalies   []Anomaly
}

func compute(b Budget, expenses []Expense, asOf time.Time) (result, error) {
	window, err := PeriodWindow(b.Period, asOf)
	if err != nil {
		return result{}, err
	}

	var res result
	amountCents, ok := core.CentsFromFloat(b.Amount)
	if !ok {
		// A malformed limit degrades to the zero-amount case instead of
		// blanking the whole batch.
		res.anomalies = append(res.anomalies, Anomaly{
			Kind:     MalformedBudget,
			Category: b.Category,
			Detail:   fmt.Sprintf("budget amount %v is not a finite non-negative number", b.Amount),
		})
		amountCents = 0
	}

	var spentCents int64
	for _, e := range expenses {
		if e.Category != b.Category || e.Currency != b.Currency {
			continue
		}
		if !window.Contains(e.Date) {
			continue
		}
		cents, ok := core.CentsFromFloat(e.Amount)
		if !ok {
			res.anomalies = append(res.anomalies, Anomaly{
				Kind:     MalformedExpense,
				Category: e.Category,
				Detail:   fmt.Sprintf("expense amount %v on %s skipped", e.Amount, e.Date.Format("2006-01-02")),
			})
			continue
		}
		spentCents += cents
	}

	// Division guard: a zero-amount budget reports 0% but still flips
	// OverBudget once anything is spent.
	var rawPct float64
	if amountCents > 0 {
		rawPct = float64(spentCents) / float64(amountCents) * 100
	}
	displayPct := math.Round(rawPct)
	if displayPct > 100 {
		displayPct = 100
	}
	if displayPct < 0 {
		displayPct = 0
	}

	remainingCents := amountCents - spentCents
	if remainingCents < 0 {
		remainingCents = 0
	}

	over := spentCents > amountCents
	res.progress = Progress{
		Budget:     b,
		Spent:      float64(spentCents) / 100,
		Percentage: displayPct,
		Remaining:  float64(remainingCents) / 100,
		OverBudget: over,
		Alert:      over || rawPct > alertThreshold,
	}
	res.amountCents = amountCents
	res.spentCents = spentCents
	return res, nil
}

// Compute derives the progress of a single budget from an expense snapshot.
// Expenses count only when they match the budget's category and currency and
// fall inside the period window ending at asOf. Malformed amounts are
// skipped and reported in the returned anomalies; only an invalid period is
// an error.
func Compute(b Budget, expenses []Expense, asOf time.Time) (Progress, []Anomaly, error) {
	res, err := compute(b, expenses, asOf)
	if err != nil {
		return Progress{}, nil, err
	}
	return res.progress, res.anomalies, nil
}

// ComputeAll evaluates every budget independently against the same expense
// snapshot. Budgets are not mutually exclusive: two budgets sharing a
// category and currency each count the same expenses, and the totals add
// per-budget spent rather than deduplicating raw expenses. A budget whose
// period tag is invalid is dropped from Items and reported in Skipped; the
// rest of the batch still computes.
func ComputeAll(budgets []Budget, expenses []Expense, asOf time.Time) Summary {
	var (
		summary          Summary
		totalBudgetCents int64
		totalSpentCents  int64
	)
	for _, b := range budgets {
		res, err := compute(b, expenses, asOf)
		if err != nil {
			summary.Skipped = append(summary.Skipped, Anomaly{
				Kind:     InvalidPeriod,
				Category: b.Category,
				Detail:   fmt.Sprintf("budget skipped: %v", err),
			})
			continue
		}
		summary.Skipped = append(summary.Skipped, res.anomalies...)
		summary.Items = append(summary.Items, res.progress)
		totalBudgetCents += res.amountCents
		totalSpentCents += res.spentCents
		if res.progress.Alert {
			summary.AlertCount++
		}
	}
	summary.TotalBudget = float64(totalBudgetCents) / 100
	summary.TotalSpent = float64(totalSpentCents) / 100
	summary.TotalRemaining = float64(totalBudgetCents-totalSpentCents) / 100
	return summary
}
