package core

import (
	"context"
	"time"
)

// TimeProvider abstracts clock access for the domain so tests can pin time
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
