// Package services orchestrates repository writes, the progress engine, and
// change notifications. A write goes to the store first; the change message
// is best effort and never fails the request.
package services

import (
	"context"
	"log/slog"

	"fintrack/internal/amqp"
)

// ChangePublisher is the outbound notification contract. *amqp.Client
// satisfies it; tests plug in a recorder.
type ChangePublisher interface {
	PublishRecordChange(ctx context.Context, msg *amqp.RecordChangeMessage) error
}

// publishChange sends a record change message, logging instead of failing
// when the broker is unavailable or not configured.
func publishChange(ctx context.Context, publisher ChangePublisher, entity, op, owner string, id int64) {
	if publisher == nil {
		slog.DebugContext(ctx, "No change publisher configured, skipping message",
			"entity", entity, "op", op, "id", id)
		return
	}

	msg := amqp.NewRecordChangeMessage(entity, op, owner, id)
	if err := publisher.PublishRecordChange(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record change",
			"entity", entity, "op", op, "id", id, "error", err)
	}
}
