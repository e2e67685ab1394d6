// Package analytics derives chart-ready series from expense snapshots.
//
// Like the progress engine these are pure reductions: the HTTP layer fetches
// the snapshot, analytics shapes it, the SPA renders it. Amounts are summed
// in cents and exposed in major units.
package analytics

import (
	"sort"
	"time"

	"fintrack/internal/core"
)

type (
	// MonthSpend is one point of the monthly spending series.
	MonthSpend struct {
		Year  int
		Month time.Month
		Total float64
	}

	// CategorySpend joins spending per category against its budget, when one
	// exists. Budget and Remaining are zero for unbudgeted categories.
	CategorySpend struct {
		Category  string
		Spent     float64
		Budget    float64
		Remaining float64
	}

	// WeekdaySpend is total spending for one day of the week.
	WeekdaySpend struct {
		Weekday time.Weekday
		Total   float64
	}

	// DaySpend is one point of the trailing spending-velocity series.
	DaySpend struct {
		Date  time.Time
		Total float64
	}
)

// MonthlySeries groups expenses by calendar month, oldest first.
func MonthlySeries(expenses []core.Expense) []MonthSpend {
	type key struct {
		year  int
		month time.Month
	}
	totals := make(map[key]int64)
	for _, e := range expenses {
		k := key{e.Date.Year(), e.Date.Month()}
		totals[k] += e.Amount.Cents
	}

	series := make([]MonthSpend, 0, len(totals))
	for k, cents := range totals {
		series = append(series, MonthSpend{Year: k.year, Month: k.month, Total: float64(cents) / 100})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Month < series[j].Month
	})
	return series
}

// CategoryBreakdown sums spending per category and attaches the first budget
// defined for that category. Budgets for the same category beyond the first
// are evaluated by the progress engine, not here; this mirrors the
// category-chart join, sorted by spend descending.
func CategoryBreakdown(expenses []core.Expense, budgets []core.Budget) []CategorySpend {
	spentByCat := make(map[string]int64)
	order := make([]string, 0)
	for _, e := range expenses {
		if _, seen := spentByCat[e.Category]; !seen {
			order = append(order, e.Category)
		}
		spentByCat[e.Category] += e.Amount.Cents
	}

	budgetByCat := make(map[string]int64)
	for _, b := range budgets {
		if _, seen := budgetByCat[b.Category]; !seen {
			budgetByCat[b.Category] = b.Amount.Cents
		}
	}

	breakdown := make([]CategorySpend, 0, len(order))
	for _, cat := range order {
		spent := spentByCat[cat]
		budget := budgetByCat[cat]
		remaining := budget - spent
		if remaining < 0 {
			remaining = 0
		}
		cs := CategorySpend{
			Category: cat,
			Spent:    float64(spent) / 100,
		}
		if budget > 0 {
			cs.Budget = float64(budget) / 100
			cs.Remaining = float64(remaining) / 100
		}
		breakdown = append(breakdown, cs)
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Spent > breakdown[j].Spent
	})
	return breakdown
}

// WeekdaySpending returns totals per day of week, Monday first.
func WeekdaySpending(expenses []core.Expense) []WeekdaySpend {
	totals := make(map[time.Weekday]int64)
	for _, e := range expenses {
		totals[e.Date.Weekday()] += e.Amount.Cents
	}

	week := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	out := make([]WeekdaySpend, 0, len(week))
	for _, d := range week {
		out = append(out, WeekdaySpend{Weekday: d, Total: float64(totals[d]) / 100})
	}
	return out
}

// Velocity returns daily totals for the trailing 30 days ending at asOf.
// Days without spending are filled with zeros so charts show gaps.
func Velocity(expenses []core.Expense, asOf time.Time) []DaySpend {
	start := asOf.AddDate(0, 0, -30)
	totals := make(map[string]int64)
	for _, e := range expenses {
		if e.Date.Before(start) || e.Date.After(asOf) {
			continue
		}
		totals[e.Date.Format("2006-01-02")] += e.Amount.Cents
	}

	var out []DaySpend
	for day := start; !day.After(asOf); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		out = append(out, DaySpend{Date: day, Total: float64(totals[key]) / 100})
	}
	return out
}
