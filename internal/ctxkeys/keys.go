// Package ctxkeys defines typed context keys shared between middleware and
// handlers.
package ctxkeys

type contextKey string

const (
	// UserID is the authenticated user's id.
	UserID contextKey = "userID"
	// UserRole is either "admin" or "user".
	UserRole contextKey = "userRole"
)
