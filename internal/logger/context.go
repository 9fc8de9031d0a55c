package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds request-scoped logging context for a single order or
// instant action as it flows from the transport down through validation,
// the net manager, and back out as a state update.
type LogContext struct {
	TraceID       string    // correlation id assigned at ingress
	OrderID       string    // order this log line pertains to, if any
	OrderUpdateID int64     // orderUpdateId, -1 if not applicable
	ActionID      string    // actionId for action/instant-action scoped lines
	AGVID         string    // agv_id of the handle that produced the line
	StartTime     time.Time // for duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext scoped to an AGV.
func NewLogContext(agvID string) *LogContext {
	return &LogContext{
		AGVID:         agvID,
		OrderUpdateID: -1,
		StartTime:     time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	cp := *lc
	return &cp
}

// WithOrder returns a clone scoped to the given order/update.
func (lc *LogContext) WithOrder(orderID string, orderUpdateID int64) *LogContext {
	cp := lc.Clone()
	if cp == nil {
		cp = &LogContext{OrderUpdateID: -1}
	}
	cp.OrderID = orderID
	cp.OrderUpdateID = orderUpdateID
	return cp
}

// WithAction returns a clone scoped to the given actionId.
func (lc *LogContext) WithAction(actionID string) *LogContext {
	cp := lc.Clone()
	if cp == nil {
		cp = &LogContext{OrderUpdateID: -1}
	}
	cp.ActionID = actionID
	return cp
}
