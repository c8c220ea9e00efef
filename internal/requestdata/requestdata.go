package requestdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/screenrate/screenrate-backend/internal/types"
)

type contextKey struct{}

// RequestData carries the authenticated caller's identity through the request
// context.
type RequestData struct {
	UserID   uuid.UUID
	Username string
	Role     types.UserRole
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, contextKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, ok := ctx.Value(contextKey{}).(*RequestData)
	if !ok {
		return nil
	}
	return rd
}
