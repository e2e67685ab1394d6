package progress

import (
	"errors"
	"math"
	"math/big"
	"math/rand"
	"testing"
	"time"

	"fintrack/internal/core"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodWindow(t *testing.T) {
	asOf := date(2025, time.June, 15)
	cases := []struct {
		period core.Period
		start  time.Time
	}{
		{core.Weekly, date(2025, time.June, 8)},
		{core.Monthly, date(2025, time.May, 15)},
		{core.Quarterly, date(2025, time.March, 15)},
		{core.Yearly, date(2024, time.June, 15)},
	}
	for _, tc := range cases {
		w, err := PeriodWindow(tc.period, asOf)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.period, err)
		}
		if !w.Start.Equal(tc.start) {
			t.Fatalf("%s: start = %v, want %v", tc.period, w.Start, tc.start)
		}
		if !w.End.Equal(asOf) {
			t.Fatalf("%s: end = %v, want %v", tc.period, w.End, asOf)
		}
	}
}

func TestPeriodWindowInvalidPeriod(t *testing.T) {
	_, err := PeriodWindow(core.Period("fortnightly"), time.Now())
	if !errors.Is(err, core.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

// Pins the calendar arithmetic for the end-of-month case: one month before
// 2024-03-31 normalizes to 2024-03-02 under AddDate (February 31st does not
// exist), so an expense dated 2024-02-29 falls outside the window.
func TestPeriodWindowMonthEndNormalization(t *testing.T) {
	asOf := date(2024, time.March, 31)
	w, err := PeriodWindow(core.Monthly, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantStart := date(2024, time.March, 2)
	if !w.Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", w.Start, wantStart)
	}
	if w.Contains(date(2024, time.February, 29)) {
		t.Fatal("2024-02-29 should be outside the trailing month from 2024-03-31")
	}
	if !w.Contains(date(2024, time.March, 2)) {
		t.Fatal("window start day should be inside the window")
	}
}

func TestComputeNoMatchingExpenses(t *testing.T) {
	b := Budget{Category: "Food & Dining", Amount: 200, Period: core.Monthly, Currency: "USD"}
	p, anomalies, err := Compute(b, nil, date(2025, time.June, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %v", anomalies)
	}
	if p.Spent != 0 || p.Percentage != 0 || p.Remaining != 200 || p.OverBudget || p.Alert {
		t.Fatalf("unexpected progress: %+v", p)
	}
}

func TestComputeFilters(t *testing.T) {
	asOf := date(2025, time.June, 15)
	b := Budget{Category: "Food & Dining", Amount: 500, Period: core.Monthly, Currency: "USD"}
	expenses := []Expense{
		{Category: "Food & Dining", Amount: 100, Currency: "USD", Date: date(2025, time.June, 10)},
		{Category: "Food & Dining", Amount: 50, Currency: "EUR", Date: date(2025, time.June, 10)}, // wrong currency
		{Category: "Travel", Amount: 75, Currency: "USD", Date: date(2025, time.June, 10)},        // wrong category
		{Category: "Food & Dining", Amount: 25, Currency: "USD", Date: date(2025, time.April, 1)}, // outside window
		{Category: "Food & Dining", Amount: 60.50, Currency: "USD", Date: asOf},                   // boundary day counts
	}
	p, _, err := Compute(b, expenses, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Spent != 160.50 {
		t.Fatalf("spent = %v, want 160.50", p.Spent)
	}
	if p.OverBudget {
		t.Fatal("should not be over budget")
	}
}

func TestComputeCrossCurrencyIsolation(t *testing.T) {
	asOf := date(2025, time.June, 15)
	b := Budget{Category: "Travel", Amount: 300, Period: core.Monthly, Currency: "USD"}
	expenses := []Expense{
		{Category: "Travel", Amount: 250, Currency: "EUR", Date: date(2025, time.June, 10)},
	}
	p, _, err := Compute(b, expenses, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Spent != 0 {
		t.Fatalf("EUR expense leaked into USD budget: spent = %v", p.Spent)
	}
}

func TestComputeOverBudgetBoundary(t *testing.T) {
	asOf := date(2025, time.June, 15)
	b := Budget{Category: "Shopping", Amount: 100, Period: core.Monthly, Currency: "USD"}

	exact := []Expense{{Category: "Shopping", Amount: 100, Currency: "USD", Date: asOf}}
	p, _, err := Compute(b, exact, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.OverBudget {
		t.Fatal("spent == amount must not be over budget (strict comparison)")
	}

	over := []Expense{{Category: "Shopping", Amount: 100.01, Currency: "USD", Date: asOf}}
	p, _, err = Compute(b, over, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.OverBudget {
		t.Fatal("spent = amount + 0.01 must be over budget")
	}
	if p.Percentage != 100 {
		t.Fatalf("display percentage should clamp to 100, got %v", p.Percentage)
	}
	if p.Remaining != 0 {
		t.Fatalf("remaining should floor at 0, got %v", p.Remaining)
	}
}

func TestComputeZeroAmountBudget(t *testing.T) {
	asOf := date(2025, time.June, 15)
	b := Budget{Category: "Other", Amount: 0, Period: core.Monthly, Currency: "USD"}

	p, _, err := Compute(b, nil, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.OverBudget || p.Percentage != 0 {
		t.Fatalf("empty zero-amount budget should be inert: %+v", p)
	}

	spent := []Expense{{Category: "Other", Amount: 50, Currency: "USD", Date: asOf}}
	p, _, err = Compute(b, spent, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.OverBudget {
		t.Fatal("zero-amount budget with spending must be over budget")
	}
	if p.Percentage != 0 {
		t.Fatalf("division must be guarded, percentage = %v", p.Percentage)
	}
	if p.Remaining != 0 {
		t.Fatalf("remaining = %v, want 0", p.Remaining)
	}
}

func TestComputeMalformedExpenseSkipped(t *testing.T) {
	asOf := date(2025, time.June, 15)
	b := Budget{Category: "Food & Dining", Amount: 200, Period: core.Monthly, Currency: "USD"}
	expenses := []Expense{
		{Category: "Food & Dining", Amount: math.NaN(), Currency: "USD", Date: asOf},
		{Category: "Food & Dining", Amount: math.Inf(1), Currency: "USD", Date: asOf},
		{Category: "Food & Dining", Amount: 40, Currency: "USD", Date: asOf},
	}
	p, anomalies, err := Compute(b, expenses, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Spent != 40 {
		t.Fatalf("malformed records must contribute 0: spent = %v", p.Spent)
	}
	if len(anomalies) != 2 {
		t.Fatalf("expected 2 anomalies, got %d", len(anomalies))
	}
	for _, a := range anomalies {
		if a.Kind != MalformedExpense {
			t.Fatalf("unexpected anomaly kind %q", a.Kind)
		}
	}
}

func TestComputeMalformedBudgetAmount(t *testing.T) {
	asOf := date(2025, time.June, 15)
	b := Budget{Category: "Food & Dining", Amount: math.NaN(), Period: core.Monthly, Currency: "USD"}
	expenses := []Expense{
		{Category: "Food & Dining", Amount: 40, Currency: "USD", Date: asOf},
	}
	p, anomalies, err := Compute(b, expenses, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(anomalies) != 1 || anomalies[0].Kind != MalformedBudget {
		t.Fatalf("expected one malformed-budget anomaly, got %v", anomalies)
	}
	// Degrades to the zero-amount case rather than aborting.
	if !p.OverBudget || p.Percentage != 0 {
		t.Fatalf("unexpected progress for malformed budget: %+v", p)
	}
}

func TestComputeInvalidPeriodFailsLoudly(t *testing.T) {
	b := Budget{Category: "Food & Dining", Amount: 200, Period: "biweekly", Currency: "USD"}
	_, _, err := Compute(b, nil, time.Now())
	if !errors.Is(err, core.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestComputeIdempotent(t *testing.T) {
	asOf := date(2025, time.June, 15)
	b := Budget{Category: "Food & Dining", Amount: 333.33, Period: core.Quarterly, Currency: "USD"}
	expenses := []Expense{
		{Category: "Food & Dining", Amount: 12.34, Currency: "USD", Date: date(2025, time.May, 2)},
		{Category: "Food & Dining", Amount: 0.01, Currency: "USD", Date: date(2025, time.April, 20)},
	}
	first, _, err := Compute(b, expenses, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _, err := Compute(b, expenses, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("same inputs produced different outputs:\n%+v\n%+v", first, second)
	}
}

// Sums 10,000 random amounts between $0.01 and $9999.99 and checks the
// engine against an arbitrary-precision reference. Cent-based summation
// must not drift at all.
func TestComputeSummationDrift(t *testing.T) {
	asOf := date(2025, time.June, 15)
	rng := rand.New(rand.NewSource(42))

	expenses := make([]Expense, 0, 10000)
	reference := new(big.Rat)
	hundred := big.NewRat(100, 1)
	for i := 0; i < 10000; i++ {
		cents := rng.Int63n(999999) + 1
		expenses = append(expenses, Expense{
			Category: "Food & Dining",
			Amount:   float64(cents) / 100,
			Currency: "USD",
			Date:     asOf,
		})
		reference.Add(reference, new(big.Rat).Quo(big.NewRat(cents, 1), hundred))
	}

	b := Budget{Category: "Food & Dining", Amount: 1000, Period: core.Monthly, Currency: "USD"}
	p, _, err := Compute(b, expenses, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := new(big.Rat).SetFloat64(p.Spent)
	diff := new(big.Rat).Sub(got, reference)
	diff.Abs(diff)
	// Allow only the final float64 conversion, well below one cent.
	if diff.Cmp(big.NewRat(1, 200)) >= 0 {
		t.Fatalf("summation drift %s exceeds half a cent (spent=%v, want %s)",
			diff.FloatString(6), p.Spent, reference.FloatString(2))
	}
}

func TestComputeAllAggregate(t *testing.T) {
	asOf := date(2025, time.June, 15)
	budgets := []Budget{
		{Category: "Food & Dining", Amount: 200, Period: core.Monthly, Currency: "USD"},
		{Category: "Travel", Amount: 500, Period: core.Monthly, Currency: "USD"},
	}
	expenses := []Expense{
		{Category: "Food & Dining", Amount: 250, Currency: "USD", Date: date(2025, time.June, 10)},
	}

	s := ComputeAll(budgets, expenses, asOf)
	if len(s.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(s.Items))
	}
	if s.TotalBudget != 700 {
		t.Fatalf("total budget = %v, want 700", s.TotalBudget)
	}
	if s.TotalSpent != 250 {
		t.Fatalf("total spent = %v, want 250", s.TotalSpent)
	}
	if s.TotalRemaining != 450 {
		t.Fatalf("total remaining = %v, want 450", s.TotalRemaining)
	}
	if s.AlertCount != 1 {
		t.Fatalf("alert count = %d, want 1 (Food over budget)", s.AlertCount)
	}
	if !s.Items[0].OverBudget || s.Items[1].OverBudget {
		t.Fatalf("only the Food budget should be over: %+v", s.Items)
	}
}

func TestComputeAllPreservesOrderAndDoubleCounts(t *testing.T) {
	asOf := date(2025, time.June, 15)
	budgets := []Budget{
		{ID: 3, Category: "Food & Dining", Amount: 300, Period: core.Monthly, Currency: "USD"},
		{ID: 2, Category: "Travel", Amount: 100, Period: core.Monthly, Currency: "USD"},
		{ID: 1, Category: "Food & Dining", Amount: 50, Period: core.Monthly, Currency: "USD"},
	}
	expenses := []Expense{
		{Category: "Food & Dining", Amount: 60, Currency: "USD", Date: asOf},
	}

	s := ComputeAll(budgets, expenses, asOf)
	ids := []int64{s.Items[0].Budget.ID, s.Items[1].Budget.ID, s.Items[2].Budget.ID}
	if ids[0] != 3 || ids[1] != 2 || ids[2] != 1 {
		t.Fatalf("input order not preserved: %v", ids)
	}
	// Two overlapping Food budgets each count the same expense.
	if s.Items[0].Spent != 60 || s.Items[2].Spent != 60 {
		t.Fatalf("overlapping budgets should double-count: %+v", s.Items)
	}
	if s.TotalSpent != 120 {
		t.Fatalf("total spent = %v, want 120 (per-budget sums, not deduplicated)", s.TotalSpent)
	}
}

func TestComputeAllSkipsInvalidPeriod(t *testing.T) {
	asOf := date(2025, time.June, 15)
	budgets := []Budget{
		{Category: "Food & Dining", Amount: 200, Period: core.Monthly, Currency: "USD"},
		{Category: "Travel", Amount: 500, Period: "decade", Currency: "USD"},
		{Category: "Shopping", Amount: 100, Period: core.Weekly, Currency: "USD"},
	}

	s := ComputeAll(budgets, nil, asOf)
	if len(s.Items) != 2 {
		t.Fatalf("invalid-period budget should be dropped, got %d items", len(s.Items))
	}
	if len(s.Skipped) != 1 || s.Skipped[0].Kind != InvalidPeriod {
		t.Fatalf("expected one invalid-period anomaly, got %v", s.Skipped)
	}
	if s.TotalBudget != 300 {
		t.Fatalf("skipped budget must not contribute to totals: %v", s.TotalBudget)
	}
}

func TestComputeAllAlertOnUnclampedRatio(t *testing.T) {
	asOf := date(2025, time.June, 15)
	budgets := []Budget{
		{Category: "Food & Dining", Amount: 100, Period: core.Monthly, Currency: "USD"},
	}
	expenses := []Expense{
		{Category: "Food & Dining", Amount: 81, Currency: "USD", Date: asOf},
	}
	s := ComputeAll(budgets, expenses, asOf)
	if s.AlertCount != 1 {
		t.Fatalf("81%% of budget should alert, got %d", s.AlertCount)
	}
	if s.Items[0].OverBudget {
		t.Fatal("81% is not over budget")
	}
}
