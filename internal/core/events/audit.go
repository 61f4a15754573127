package events

import (
	"context"
	"log/slog"
)

// NewAuditHandler logs every transition event as a structured audit line.
func NewAuditHandler(logger *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		te, ok := event.(*TransitionEvent)
		if !ok {
			logger.InfoContext(ctx, "audit", "event_type", event.EventType(), "event_id", event.EventID())
			return nil
		}
		logger.InfoContext(ctx, "audit",
			"event_type", te.Type,
			"event_id", te.ID,
			"entity", te.Entity,
			"entity_id", te.EntityID,
			"action", te.Action,
			"from", te.From,
			"to", te.To,
			"actor_id", te.ActorID,
			"role", te.Role)
		return nil
	}
}
