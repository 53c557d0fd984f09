package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/devconnect/devconnect-api/internal/services"
)

const UserIDKey = "user_id"

// Auth requires a valid bearer token and attaches the caller's user id to
// the request context. Requests without one fail with 401.
func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		userID, ok := BearerUserID(c, jwtService)
		if !ok {
			c.Unauthorized("unauthenticated")
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// BearerUserID extracts and validates the Authorization header without
// failing the request; callers that allow anonymous access (the websocket
// transport resolves identity from its init frame instead) use it directly.
func BearerUserID(c *drift.Context, jwtService *services.JWTService) (uuid.UUID, bool) {
	return ParseBearer(c.GetHeader("Authorization"), jwtService)
}

// ParseBearer validates a raw "Bearer <token>" header value and returns the
// user id it encodes.
func ParseBearer(header string, jwtService *services.JWTService) (uuid.UUID, bool) {
	if header == "" {
		return uuid.Nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return uuid.Nil, false
	}

	claims, err := jwtService.Validate(parts[1])
	if err != nil {
		return uuid.Nil, false
	}

	return claims.UserID, true
}

// GetUserID returns the authenticated caller's id, or uuid.Nil for an
// anonymous caller.
func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}
