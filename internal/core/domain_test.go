package core

import (
	"testing"
	"time"
)

func TestPeriodValidate(t *testing.T) {
	for _, p := range []Period{Weekly, Monthly, Quarterly, Yearly} {
		if err := p.Validate(); err != nil {
			t.Fatalf("%s: expected ok, got %v", p, err)
		}
	}
	for _, p := range []Period{"", "daily", "MONTHLY", "fortnightly"} {
		if err := p.Validate(); err == nil {
			t.Fatalf("%q: expected error", p)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatal("expected error for zero")
	}
	if err := (Money{Cents: 0}).ValidateNonNegative(); err != nil {
		t.Fatalf("zero is valid as a budget limit, got %v", err)
	}
	if err := (Money{Cents: -1}).ValidateNonNegative(); err == nil {
		t.Fatal("expected error for negative")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Owner:    "user-1",
		Item:     "Groceries",
		Amount:   Money{Cents: 1250},
		Category: "Food & Dining",
		Currency: "USD",
		Date:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		func(e Expense) Expense { e.Owner = ""; return e }(good),
		func(e Expense) Expense { e.Item = " "; return e }(good),
		func(e Expense) Expense { e.Amount = Money{}; return e }(good),
		func(e Expense) Expense { e.Category = ""; return e }(good),
		func(e Expense) Expense { e.Currency = "usd"; return e }(good),
		func(e Expense) Expense { e.Currency = "USDT"; return e }(good),
		func(e Expense) Expense { e.Date = time.Time{}; return e }(good),
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{
		Owner:    "user-1",
		Category: "Travel",
		Amount:   Money{Cents: 50000},
		Period:   Monthly,
		Currency: "EUR",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	zero := good
	zero.Amount = Money{}
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero-amount budget is a defined degenerate case, got %v", err)
	}

	bad := good
	bad.Period = "daily"
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for unsupported period")
	}
}

func TestDebtValidate(t *testing.T) {
	good := Debt{
		Owner:          "user-1",
		Name:           "Car loan",
		DebtType:       "loan",
		TotalAmount:    Money{Cents: 1200000},
		CurrentBalance: Money{Cents: 800000},
		InterestRate:   4.5,
		MinimumPayment: Money{Cents: 25000},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	paidOff := good
	paidOff.CurrentBalance = Money{}
	if err := paidOff.Validate(); err != nil {
		t.Fatalf("paid-off debt should validate, got %v", err)
	}

	bad := good
	bad.InterestRate = -1
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for negative interest rate")
	}
}

func TestGoalValidate(t *testing.T) {
	good := Goal{
		Owner:         "user-1",
		Title:         "Emergency fund",
		Category:      "Savings",
		TargetAmount:  Money{Cents: 1000000},
		CurrentAmount: Money{Cents: 250000},
		TargetDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := good
	bad.TargetDate = time.Time{}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for zero target date")
	}
}
