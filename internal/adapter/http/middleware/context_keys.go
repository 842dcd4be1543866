package middleware

import "context"

// ContextKey is a private type for request context keys, avoiding collisions
// with other packages.
type ContextKey string

const (
	UserIDCtxKey    = ContextKey("user_id")
	UserEmailCtxKey = ContextKey("user_email")
	UserNameCtxKey  = ContextKey("user_name")
)

// UserIDFromContext returns the authenticated uid, or "" when the request
// carried no valid token.
func UserIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(UserIDCtxKey).(string)
	return uid
}

func UserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailCtxKey).(string)
	return email
}

func UserNameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(UserNameCtxKey).(string)
	return name
}
