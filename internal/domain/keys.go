package domain

import "context"

type CtxKey string

const (
	KeyRequestID CtxKey = "RequestID"
)

// RequestIDFrom returns the request id stored on ctx, or "" when none was set.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)
	return id
}
