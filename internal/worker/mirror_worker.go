// Package worker consumes record change messages and mirrors new expenses to
// an external spreadsheet.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ports"
)

// ExpenseAppender writes one expense row to the external sheet.
// *google.Appender satisfies it.
type ExpenseAppender interface {
	Append(ctx context.Context, e core.Expense) (rowRef string, err error)
}

// MirrorWorker reacts to expense creation events. Updates and deletes are
// acknowledged without action: the sheet is an append-only journal, not a
// replica.
type MirrorWorker struct {
	store    ports.ExpenseRepository
	appender ExpenseAppender
}

func NewMirrorWorker(store ports.ExpenseRepository, appender ExpenseAppender) *MirrorWorker {
	return &MirrorWorker{
		store:    store,
		appender: appender,
	}
}

// HandleChange processes one record change message. Returning an error
// requeues the delivery, so unrecoverable conditions (record gone, wrong
// entity) are swallowed after logging.
func (w *MirrorWorker) HandleChange(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	if msg.Entity != amqp.EntityExpense || msg.Op != amqp.OpCreate {
		slog.DebugContext(ctx, "Ignoring change message",
			"entity", msg.Entity,
			"op", msg.Op,
			"id", msg.ID)
		return nil
	}

	expense, err := w.store.GetExpense(ctx, msg.Owner, msg.ID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Deleted before we got to it, nothing to mirror.
			slog.WarnContext(ctx, "Expense no longer exists, skipping mirror",
				"id", msg.ID, "owner", msg.Owner)
			return nil
		}
		return fmt.Errorf("get expense from storage: %w", err)
	}

	ref, err := w.appender.Append(ctx, expense)
	if err != nil {
		return fmt.Errorf("append to sheets: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored expense to spreadsheet",
		"id", msg.ID,
		"owner", msg.Owner,
		"sheets_ref", ref,
		"amount_cents", expense.Amount.Cents)

	return nil
}
