package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect-api/internal/apperrors"
	"github.com/devconnect/devconnect-api/internal/middleware"
	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/internal/services"
	"github.com/devconnect/devconnect-api/pkg/dto"
	"github.com/devconnect/devconnect-api/tests/testutil"
)

func setupUserTest(t *testing.T) (*testutil.MockUserService, http.Handler, *services.JWTService) {
	t.Helper()
	mockUserService := new(testutil.MockUserService)
	handler := NewUserHandler(mockUserService)
	jwtSvc := newTestJWTService()

	app := drift.New()
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/me", handler.GetMe)
	return mockUserService, app, jwtSvc
}

func TestUserHandler_GetMe_Success(t *testing.T) {
	mockUserService, app, jwtSvc := setupUserTest(t)

	userID := uuid.New()
	user := &models.User{
		ID:        userID,
		Email:     "alice@example.com",
		Name:      "Alice",
		CreatedAt: time.Now(),
	}

	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodGet, "/me", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.ID)
	assert.Equal(t, "alice@example.com", resp.Email)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_GetMe_DeletedUser(t *testing.T) {
	mockUserService, app, jwtSvc := setupUserTest(t)

	userID := uuid.New()
	mockUserService.On("GetByID", mock.Anything, userID).Return(nil, apperrors.ErrNotFound)

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodGet, "/me", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
