package common

import "context"

// UserContext carries the identity of the API caller resolved by the
// authentication middleware. Absent from the context for anonymous requests.
type UserContext struct {
	UserID   string
	Username string
}

type userContextKey struct{}

// WithUserContext returns a context carrying the given user context.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, uc)
}

// GetUserContext returns the user context, or nil for anonymous requests.
func GetUserContext(ctx context.Context) *UserContext {
	uc, _ := ctx.Value(userContextKey{}).(*UserContext)
	return uc
}
