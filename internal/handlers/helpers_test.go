package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect-api/internal/services"
)

func newTestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key", time.Hour)
}

func generateTestToken(t *testing.T, jwtSvc *services.JWTService, userID uuid.UUID) string {
	t.Helper()
	token, err := jwtSvc.Generate(userID, "test@example.com")
	require.NoError(t, err)
	return token
}
