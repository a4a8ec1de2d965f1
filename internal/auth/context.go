package auth

import (
	"context"

	"exam-scoring-service/internal/domain"
)

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

func WithIdentity(ctx context.Context, who domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, who)
}

// IdentityFromContext returns the zero Identity for anonymous requests.
func IdentityFromContext(ctx context.Context) domain.Identity {
	if v, ok := ctx.Value(ctxKeyIdentity).(domain.Identity); ok {
		return v
	}
	return domain.Identity{}
}
