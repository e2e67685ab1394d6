package analytics

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func exp(cat string, cents int64, y int, m time.Month, d int) core.Expense {
	return core.Expense{
		Item:     cat,
		Category: cat,
		Amount:   core.Money{Cents: cents},
		Currency: "USD",
		Date:     time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
}

func TestMonthlySeries(t *testing.T) {
	expenses := []core.Expense{
		exp("Food & Dining", 1000, 2025, time.June, 1),
		exp("Travel", 2500, 2025, time.June, 20),
		exp("Food & Dining", 500, 2025, time.May, 3),
		exp("Shopping", 100, 2024, time.December, 31),
	}
	series := MonthlySeries(expenses)
	if len(series) != 3 {
		t.Fatalf("expected 3 months, got %d", len(series))
	}
	if series[0].Year != 2024 || series[0].Month != time.December || series[0].Total != 1 {
		t.Fatalf("series not ordered oldest first: %+v", series[0])
	}
	if series[2].Total != 35 {
		t.Fatalf("June total = %v, want 35", series[2].Total)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	expenses := []core.Expense{
		exp("Food & Dining", 15000, 2025, time.June, 1),
		exp("Travel", 30000, 2025, time.June, 2),
		exp("Food & Dining", 5000, 2025, time.June, 3),
	}
	budgets := []core.Budget{
		{Category: "Food & Dining", Amount: core.Money{Cents: 25000}, Period: core.Monthly, Currency: "USD"},
	}

	breakdown := CategoryBreakdown(expenses, budgets)
	if len(breakdown) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(breakdown))
	}
	if breakdown[0].Category != "Travel" {
		t.Fatalf("expected Travel first (highest spend), got %s", breakdown[0].Category)
	}
	food := breakdown[1]
	if food.Spent != 200 || food.Budget != 250 || food.Remaining != 50 {
		t.Fatalf("unexpected food breakdown: %+v", food)
	}
	if breakdown[0].Budget != 0 || breakdown[0].Remaining != 0 {
		t.Fatalf("unbudgeted category should report zero budget: %+v", breakdown[0])
	}
}

func TestWeekdaySpending(t *testing.T) {
	// 2025-06-02 is a Monday.
	expenses := []core.Expense{
		exp("Food & Dining", 1000, 2025, time.June, 2),
		exp("Food & Dining", 500, 2025, time.June, 9), // next Monday
		exp("Travel", 2000, 2025, time.June, 7),       // Saturday
	}
	week := WeekdaySpending(expenses)
	if week[0].Weekday != time.Monday || week[0].Total != 15 {
		t.Fatalf("Monday total = %+v, want 15", week[0])
	}
	if week[5].Weekday != time.Saturday || week[5].Total != 20 {
		t.Fatalf("Saturday total = %+v, want 20", week[5])
	}
	if week[6].Total != 0 {
		t.Fatalf("Sunday should be zero-filled: %+v", week[6])
	}
}

func TestVelocityFillsGaps(t *testing.T) {
	asOf := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	expenses := []core.Expense{
		exp("Food & Dining", 1000, 2025, time.June, 14),
		exp("Food & Dining", 9999, 2025, time.April, 1), // outside trailing 30 days
	}
	days := Velocity(expenses, asOf)
	if len(days) != 31 {
		t.Fatalf("expected 31 days inclusive, got %d", len(days))
	}
	var total float64
	for _, d := range days {
		total += d.Total
	}
	if total != 10 {
		t.Fatalf("trailing total = %v, want 10", total)
	}
	if days[0].Total != 0 {
		t.Fatalf("gap days should be zero: %+v", days[0])
	}
}

func TestSummarizeDebts(t *testing.T) {
	asOf := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	debts := []core.Debt{
		{
			Name:           "Car loan",
			TotalAmount:    core.Money{Cents: 1000000},
			CurrentBalance: core.Money{Cents: 400000},
			InterestRate:   4.5,
			MinimumPayment: core.Money{Cents: 25000},
			DueDate:        time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:           "Credit card",
			TotalAmount:    core.Money{Cents: 200000},
			CurrentBalance: core.Money{Cents: 200000},
			InterestRate:   19.9,
			MinimumPayment: core.Money{Cents: 5000},
		},
	}

	s := SummarizeDebts(debts, asOf)
	if s.TotalBalance != 6000 {
		t.Fatalf("total balance = %v, want 6000", s.TotalBalance)
	}
	if s.TotalMinimumPayments != 300 {
		t.Fatalf("total minimum payments = %v, want 300", s.TotalMinimumPayments)
	}
	if s.HighestInterest == nil || s.HighestInterest.Name != "Credit card" {
		t.Fatalf("highest interest should be the credit card: %+v", s.HighestInterest)
	}
	if s.Items[0].PaidPercent != 60 {
		t.Fatalf("car loan paid percent = %v, want 60", s.Items[0].PaidPercent)
	}
	if !s.Items[0].HasDueDate || s.Items[0].DaysUntilDue != 5 {
		t.Fatalf("car loan due in %d days, want 5", s.Items[0].DaysUntilDue)
	}
	if s.Items[1].HasDueDate {
		t.Fatal("credit card has no due date")
	}
}

func TestSummarizeGoals(t *testing.T) {
	asOf := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	goals := []core.Goal{
		{
			Title:         "Emergency fund",
			TargetAmount:  core.Money{Cents: 1000000},
			CurrentAmount: core.Money{Cents: 250000},
			TargetDate:    time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:         "Done",
			TargetAmount:  core.Money{Cents: 100000},
			CurrentAmount: core.Money{Cents: 150000},
			TargetDate:    time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	gp := SummarizeGoals(goals, asOf)
	if gp[0].Percentage != 25 {
		t.Fatalf("percentage = %v, want 25", gp[0].Percentage)
	}
	if gp[0].Achieved {
		t.Fatal("goal at 25% is not achieved")
	}
	if gp[1].Percentage != 100 || !gp[1].Achieved {
		t.Fatalf("overfunded goal should clamp to 100 and be achieved: %+v", gp[1])
	}
}
