// Package middleware provides HTTP middleware for canvaspilot.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type contextKey string

const (
	// RequestIDHeader is the HTTP header for request tracing.
	RequestIDHeader = "X-Request-ID"

	ctxKeyRequestID contextKey = "request_id"
	ctxKeyAccountID contextKey = "account_id"
	ctxKeyHandle    contextKey = "handle"
	ctxKeyRoles     contextKey = "roles"
)

// RequestID injects a unique request ID into the context and response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			id, _ := uuid.NewV7()
			rid = id.String()
		}
		c.Set(string(ctxKeyRequestID), rid)
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), ctxKeyRequestID, rid),
		)
		c.Next()
	}
}

// GetRequestID extracts request ID from context.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return v
	}
	return ""
}

// SetUserContext stores authenticated caller info in context.
func SetUserContext(ctx context.Context, accountID int64, handle string, roles []string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyAccountID, accountID)
	ctx = context.WithValue(ctx, ctxKeyHandle, handle)
	ctx = context.WithValue(ctx, ctxKeyRoles, roles)
	return ctx
}

// GetAccountID extracts the numeric account id from context.
func GetAccountID(ctx context.Context) int64 {
	if v, ok := ctx.Value(ctxKeyAccountID).(int64); ok {
		return v
	}
	return 0
}

// GetHandle extracts the login handle from context.
func GetHandle(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyHandle).(string); ok {
		return v
	}
	return ""
}

// GetRoles extracts role claims from context.
func GetRoles(ctx context.Context) []string {
	if v, ok := ctx.Value(ctxKeyRoles).([]string); ok {
		return v
	}
	return nil
}
