package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/memory"
)

type fakeAppender struct {
	appended []core.Expense
	err      error
}

func (a *fakeAppender) Append(_ context.Context, e core.Expense) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.appended = append(a.appended, e)
	return "Expenses!A2:F2", nil
}

func storedExpense(t *testing.T, store *memory.Store) int64 {
	t.Helper()
	id, err := store.CreateExpense(context.Background(), core.Expense{
		Owner:    "mario",
		Item:     "Groceries",
		Amount:   core.Money{Cents: 4250},
		Category: "Food & Dining",
		Currency: "USD",
		Date:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}
	return id
}

func TestMirrorWorker_HandleChange(t *testing.T) {
	store := memory.New()
	id := storedExpense(t, store)
	appender := &fakeAppender{}
	w := NewMirrorWorker(store, appender)

	msg := amqp.NewRecordChangeMessage(amqp.EntityExpense, amqp.OpCreate, "mario", id)
	if err := w.HandleChange(context.Background(), msg); err != nil {
		t.Fatalf("HandleChange() error = %v", err)
	}

	if len(appender.appended) != 1 {
		t.Fatalf("appended %d rows, want 1", len(appender.appended))
	}
	if appender.appended[0].Item != "Groceries" {
		t.Errorf("appended item = %v, want Groceries", appender.appended[0].Item)
	}
}

func TestMirrorWorker_IgnoresOtherEntitiesAndOps(t *testing.T) {
	store := memory.New()
	id := storedExpense(t, store)
	appender := &fakeAppender{}
	w := NewMirrorWorker(store, appender)
	ctx := context.Background()

	for _, msg := range []*amqp.RecordChangeMessage{
		amqp.NewRecordChangeMessage(amqp.EntityBudget, amqp.OpCreate, "mario", id),
		amqp.NewRecordChangeMessage(amqp.EntityExpense, amqp.OpUpdate, "mario", id),
		amqp.NewRecordChangeMessage(amqp.EntityExpense, amqp.OpDelete, "mario", id),
	} {
		if err := w.HandleChange(ctx, msg); err != nil {
			t.Errorf("HandleChange(%s/%s) error = %v, want nil", msg.Entity, msg.Op, err)
		}
	}

	if len(appender.appended) != 0 {
		t.Errorf("appended %d rows, want 0", len(appender.appended))
	}
}

func TestMirrorWorker_MissingExpenseIsNotRequeued(t *testing.T) {
	store := memory.New()
	appender := &fakeAppender{}
	w := NewMirrorWorker(store, appender)

	msg := amqp.NewRecordChangeMessage(amqp.EntityExpense, amqp.OpCreate, "mario", 999)
	if err := w.HandleChange(context.Background(), msg); err != nil {
		t.Errorf("HandleChange() for missing expense error = %v, want nil", err)
	}
}

func TestMirrorWorker_AppendFailureRequeues(t *testing.T) {
	store := memory.New()
	id := storedExpense(t, store)
	appender := &fakeAppender{err: errors.New("quota exceeded")}
	w := NewMirrorWorker(store, appender)

	msg := amqp.NewRecordChangeMessage(amqp.EntityExpense, amqp.OpCreate, "mario", id)
	if err := w.HandleChange(context.Background(), msg); err == nil {
		t.Error("HandleChange() should fail so the delivery is requeued")
	}
}
