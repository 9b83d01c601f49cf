package auth

import (
	"context"

	"storefront/internal/model"
)

type contextKey struct{}

var userKey contextKey

// WithUser stores the authenticated user on the context.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom returns the authenticated user, or nil for anonymous requests.
func UserFrom(ctx context.Context) *model.User {
	user, _ := ctx.Value(userKey).(*model.User)
	return user
}
