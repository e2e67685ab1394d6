package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/memory"
)

// recordingPublisher captures published messages for assertions.
type recordingPublisher struct {
	messages []*amqp.RecordChangeMessage
	err      error
}

func (p *recordingPublisher) PublishRecordChange(_ context.Context, msg *amqp.RecordChangeMessage) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validExpense(owner string) core.Expense {
	return core.Expense{
		Owner:    owner,
		Item:     "Groceries run",
		Amount:   core.Money{Cents: 4250},
		Category: "Food & Dining",
		Currency: "USD",
		Date:     date(2025, 6, 10),
	}
}

func TestExpenseService_CreateExpense(t *testing.T) {
	store := memory.New()
	pub := &recordingPublisher{}
	svc := NewExpenseService(store, pub)

	id, err := svc.CreateExpense(context.Background(), validExpense("mario"))
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}
	if id == 0 {
		t.Error("CreateExpense() returned zero ID")
	}

	if len(pub.messages) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.messages))
	}
	msg := pub.messages[0]
	if msg.Entity != amqp.EntityExpense || msg.Op != amqp.OpCreate {
		t.Errorf("published %s/%s, want expense/create", msg.Entity, msg.Op)
	}
	if msg.Owner != "mario" || msg.ID != id {
		t.Errorf("published owner=%s id=%d, want mario/%d", msg.Owner, msg.ID, id)
	}
}

func TestExpenseService_CreateExpenseInvalid(t *testing.T) {
	store := memory.New()
	pub := &recordingPublisher{}
	svc := NewExpenseService(store, pub)

	e := validExpense("mario")
	e.Amount = core.Money{Cents: 0}

	if _, err := svc.CreateExpense(context.Background(), e); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("CreateExpense() error = %v, want ErrInvalidAmount", err)
	}
	if len(pub.messages) != 0 {
		t.Error("invalid expense should not publish a change")
	}
}

func TestExpenseService_PublishFailureDoesNotFailWrite(t *testing.T) {
	store := memory.New()
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewExpenseService(store, pub)

	id, err := svc.CreateExpense(context.Background(), validExpense("mario"))
	if err != nil {
		t.Fatalf("CreateExpense() error = %v, want nil despite publish failure", err)
	}

	if _, err := svc.GetExpense(context.Background(), "mario", id); err != nil {
		t.Errorf("expense should be stored even when publish fails: %v", err)
	}
}

func TestExpenseService_NilPublisher(t *testing.T) {
	svc := NewExpenseService(memory.New(), nil)

	if _, err := svc.CreateExpense(context.Background(), validExpense("mario")); err != nil {
		t.Fatalf("CreateExpense() with nil publisher error = %v", err)
	}
}

func TestExpenseService_DeleteExpense(t *testing.T) {
	store := memory.New()
	pub := &recordingPublisher{}
	svc := NewExpenseService(store, pub)

	id, err := svc.CreateExpense(context.Background(), validExpense("mario"))
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}

	if err := svc.DeleteExpense(context.Background(), "mario", id); err != nil {
		t.Fatalf("DeleteExpense() error = %v", err)
	}
	if _, err := svc.GetExpense(context.Background(), "mario", id); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetExpense() after delete error = %v, want ErrNotFound", err)
	}

	if len(pub.messages) != 2 || pub.messages[1].Op != amqp.OpDelete {
		t.Errorf("delete should publish a delete message, got %+v", pub.messages)
	}
}

func TestBudgetService_Overview(t *testing.T) {
	store := memory.New()
	svc := NewBudgetService(store, nil)
	expenses := NewExpenseService(store, nil)
	ctx := context.Background()

	if _, err := svc.CreateBudget(ctx, core.Budget{
		Owner:    "mario",
		Category: "Food & Dining",
		Amount:   core.Money{Cents: 50000},
		Period:   core.Monthly,
		Currency: "USD",
	}); err != nil {
		t.Fatalf("CreateBudget() error = %v", err)
	}

	asOf := date(2025, 6, 15)
	for _, cents := range []int64{10000, 15000} {
		e := validExpense("mario")
		e.Amount = core.Money{Cents: cents}
		e.Date = asOf.AddDate(0, 0, -3)
		if _, err := expenses.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense() error = %v", err)
		}
	}
	// Outside the monthly window, must not count.
	old := validExpense("mario")
	old.Date = asOf.AddDate(0, -2, 0)
	if _, err := expenses.CreateExpense(ctx, old); err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}

	summary, err := svc.Overview(ctx, "mario", asOf)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	if len(summary.Items) != 1 {
		t.Fatalf("Overview() items = %d, want 1", len(summary.Items))
	}
	item := summary.Items[0]
	if item.Spent != 250 {
		t.Errorf("Spent = %v, want 250", item.Spent)
	}
	if item.Percentage != 50 {
		t.Errorf("Percentage = %v, want 50", item.Percentage)
	}
	if summary.TotalRemaining != 250 {
		t.Errorf("TotalRemaining = %v, want 250", summary.TotalRemaining)
	}
}

func TestBudgetService_BudgetProgressNotFound(t *testing.T) {
	svc := NewBudgetService(memory.New(), nil)

	_, _, err := svc.BudgetProgress(context.Background(), "mario", 99, date(2025, 6, 15))
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("BudgetProgress() error = %v, want ErrNotFound", err)
	}
}

func TestTrackerService_RecordPayment(t *testing.T) {
	store := memory.New()
	pub := &recordingPublisher{}
	svc := NewTrackerService(store, pub)
	ctx := context.Background()

	debtID, err := svc.CreateDebt(ctx, core.Debt{
		Owner:          "mario",
		Name:           "Car loan",
		DebtType:       "loan",
		TotalAmount:    core.Money{Cents: 1000000},
		CurrentBalance: core.Money{Cents: 400000},
		InterestRate:   6.5,
		MinimumPayment: core.Money{Cents: 25000},
	})
	if err != nil {
		t.Fatalf("CreateDebt() error = %v", err)
	}

	if _, err := svc.RecordPayment(ctx, core.DebtPayment{
		Owner:  "mario",
		DebtID: debtID,
		Amount: core.Money{Cents: 50000},
		PaidOn: date(2025, 6, 10),
	}); err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}

	debts, err := svc.ListDebts(ctx, "mario")
	if err != nil {
		t.Fatalf("ListDebts() error = %v", err)
	}
	if debts[0].CurrentBalance.Cents != 350000 {
		t.Errorf("balance after payment = %d, want 350000", debts[0].CurrentBalance.Cents)
	}

	summary, err := svc.DebtSummary(ctx, "mario", date(2025, 6, 15))
	if err != nil {
		t.Fatalf("DebtSummary() error = %v", err)
	}
	if summary.TotalBalance != 3500 {
		t.Errorf("TotalBalance = %v, want 3500", summary.TotalBalance)
	}
}

func TestTrackerService_GoalProgress(t *testing.T) {
	svc := NewTrackerService(memory.New(), nil)
	ctx := context.Background()

	if _, err := svc.CreateGoal(ctx, core.Goal{
		Owner:         "mario",
		Title:         "Emergency fund",
		Category:      "savings",
		TargetAmount:  core.Money{Cents: 1000000},
		CurrentAmount: core.Money{Cents: 250000},
		TargetDate:    date(2025, 12, 31),
	}); err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	goals, err := svc.GoalProgress(ctx, "mario", date(2025, 6, 15))
	if err != nil {
		t.Fatalf("GoalProgress() error = %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("GoalProgress() returned %d goals, want 1", len(goals))
	}
	if goals[0].Percentage != 25 {
		t.Errorf("Percentage = %v, want 25", goals[0].Percentage)
	}
	if goals[0].Achieved {
		t.Error("goal should not be achieved at 25%")
	}
}

func TestAnalyticsService_BuildReport(t *testing.T) {
	store := memory.New()
	expenses := NewExpenseService(store, nil)
	svc := NewAnalyticsService(store)
	ctx := context.Background()

	e := validExpense("mario")
	e.Date = date(2025, 6, 10)
	if _, err := expenses.CreateExpense(ctx, e); err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}

	report, err := svc.BuildReport(ctx, "mario", date(2025, 6, 15))
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	if len(report.Monthly) != 1 {
		t.Errorf("Monthly series length = %d, want 1", len(report.Monthly))
	}
	if len(report.Categories) != 1 {
		t.Errorf("Categories length = %d, want 1", len(report.Categories))
	}
	if len(report.Weekdays) != 7 {
		t.Errorf("Weekdays length = %d, want 7", len(report.Weekdays))
	}
	if len(report.Velocity) != 31 {
		t.Errorf("Velocity length = %d, want 31", len(report.Velocity))
	}
}
