package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextSessionKey ctxKey = "session"

func SessionFromContext(ctx context.Context) (*Session, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(ContextSessionKey).(*Session)
	return s, ok && s != nil
}

func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ContextSessionKey, s)
}

// Today returns the calendar date of t at midnight UTC, used for deadline comparisons.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
