// Package reqid carries the request id from the HTTP edge to outbound calls.
package reqid

import (
	"context"

	"github.com/google/uuid"
)

const Header = "X-Request-Id"

type ctxKey struct{}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func New() string {
	return uuid.NewString()
}
