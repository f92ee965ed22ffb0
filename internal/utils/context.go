package utils

import (
	"context"
)

// contextKey is a private type for context keys. It keeps the keys from
// colliding with string keys set by other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated user id (a string) in a request
// context.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext returns the user id stored under [UserIDCtxKey].
// ok is false when the value is missing, empty or not a string.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}
