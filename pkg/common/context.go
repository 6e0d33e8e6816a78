package common

import (
	"context"

	"interviewprep-backend/domain/entities"
)

// ContextKey represents a context key type
type ContextKey string

const (
	ContextKeyCurrentUser ContextKey = "current_user"
)

// WithCurrentUser attaches the resolved session user to the context.
// A nil user is never stored; absence means "no current user".
func WithCurrentUser(ctx context.Context, user *entities.User) context.Context {
	if user == nil {
		return ctx
	}
	return context.WithValue(ctx, ContextKeyCurrentUser, user)
}

// CurrentUser extracts the session user from the context, nil when the
// request is unauthenticated.
func CurrentUser(ctx context.Context) *entities.User {
	user, _ := ctx.Value(ContextKeyCurrentUser).(*entities.User)
	return user
}
