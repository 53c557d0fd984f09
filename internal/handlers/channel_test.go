package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect-api/internal/apperrors"
	"github.com/devconnect/devconnect-api/internal/middleware"
	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/internal/pubsub"
	"github.com/devconnect/devconnect-api/internal/services"
	"github.com/devconnect/devconnect-api/pkg/dto"
	"github.com/devconnect/devconnect-api/tests/testutil"
)

func setupChannelTest(t *testing.T) (*testutil.MockChannelService, *testutil.MockMessageService, *testutil.MockTenantService, *pubsub.MemoryBus, http.Handler, *services.JWTService) {
	t.Helper()
	mockChannelService := new(testutil.MockChannelService)
	mockMessageService := new(testutil.MockMessageService)
	mockTenantService := new(testutil.MockTenantService)
	bus := pubsub.NewMemoryBus()
	t.Cleanup(func() { bus.Close() })

	handler := NewChannelHandler(mockChannelService, mockMessageService, mockTenantService, NewPublisher(bus))
	jwtSvc := newTestJWTService()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/projects/:projectId/channels", handler.List)
	app.Post("/projects/:projectId/channels", handler.Create)
	app.Delete("/channels/:channelId", handler.Delete)
	app.Get("/channels/:channelId/messages", handler.ListMessages)
	app.Post("/channels/:channelId/messages", handler.SendMessage)
	return mockChannelService, mockMessageService, mockTenantService, bus, app, jwtSvc
}

func TestChannelHandler_Create_Success(t *testing.T) {
	mockChannelService, _, mockTenantService, _, app, jwtSvc := setupChannelTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	projectID := uuid.New()
	channel := &models.Channel{
		ID:        uuid.New(),
		ProjectID: projectID,
		Name:      "general",
		CreatedAt: time.Now(),
	}

	mockTenantService.On("TeamIDForProject", mock.Anything, projectID).Return(teamID, nil)
	mockTenantService.On("RequireMember", mock.Anything, userID, teamID).Return(nil)
	mockChannelService.On("Create", mock.Anything, projectID, "general").Return(channel, nil)

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodPost, "/projects/"+projectID.String()+"/channels",
		dto.CreateChannelRequest{Name: "general"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockChannelService.AssertExpectations(t)
	mockTenantService.AssertExpectations(t)
}

func TestChannelHandler_SendMessage_PublishesEvent(t *testing.T) {
	_, mockMessageService, mockTenantService, bus, app, jwtSvc := setupChannelTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	channelID := uuid.New()
	msg := &models.Message{
		ID:        uuid.New(),
		ChannelID: channelID,
		AuthorID:  userID,
		Body:      "hello",
		CreatedAt: time.Now(),
		Author:    &models.User{ID: userID, Email: "alice@example.com", Name: "Alice"},
	}

	mockTenantService.On("TeamIDForChannel", mock.Anything, channelID).Return(teamID, nil)
	mockTenantService.On("RequireMember", mock.Anything, userID, teamID).Return(nil)
	mockMessageService.On("Create", mock.Anything, channelID, userID, "hello").Return(msg, nil)

	sub, err := bus.Subscribe(context.Background(), pubsub.MessageTopic(teamID, channelID))
	require.NoError(t, err)
	defer sub.Close()

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodPost, "/channels/"+channelID.String()+"/messages",
		dto.SendMessageRequest{Body: "hello"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	select {
	case ev := <-sub.Events():
		var published dto.MessageResponse
		require.NoError(t, json.Unmarshal(ev.Payload, &published))
		assert.Equal(t, msg.ID, published.ID)
		assert.Equal(t, "hello", published.Body)
		require.NotNil(t, published.Author)
		assert.Equal(t, "Alice", published.Author.Name)
	case <-time.After(time.Second):
		t.Fatal("no event published for new message")
	}

	mockMessageService.AssertExpectations(t)
}

func TestChannelHandler_SendMessage_NonMember(t *testing.T) {
	_, mockMessageService, mockTenantService, bus, app, jwtSvc := setupChannelTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	channelID := uuid.New()

	mockTenantService.On("TeamIDForChannel", mock.Anything, channelID).Return(teamID, nil)
	mockTenantService.On("RequireMember", mock.Anything, userID, teamID).
		Return(apperrors.ErrForbidden)

	sub, err := bus.Subscribe(context.Background(), pubsub.MessageTopic(teamID, channelID))
	require.NoError(t, err)
	defer sub.Close()

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodPost, "/channels/"+channelID.String()+"/messages",
		dto.SendMessageRequest{Body: "hello"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockMessageService.AssertNotCalled(t, "Create")

	select {
	case ev := <-sub.Events():
		t.Fatalf("unexpected event on %q", ev.Topic)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestChannelHandler_ListMessages_Limit(t *testing.T) {
	_, mockMessageService, mockTenantService, _, app, jwtSvc := setupChannelTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	channelID := uuid.New()

	mockTenantService.On("TeamIDForChannel", mock.Anything, channelID).Return(teamID, nil)
	mockTenantService.On("RequireMember", mock.Anything, userID, teamID).Return(nil)
	mockMessageService.On("ListByChannel", mock.Anything, channelID, 10).Return([]models.Message{}, nil)

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodGet,
		"/channels/"+channelID.String()+"/messages?limit=10", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockMessageService.AssertExpectations(t)
}

func TestChannelHandler_Delete_RequiresAdmin(t *testing.T) {
	mockChannelService, _, mockTenantService, _, app, jwtSvc := setupChannelTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	channelID := uuid.New()

	mockTenantService.On("TeamIDForChannel", mock.Anything, channelID).Return(teamID, nil)
	mockTenantService.On("RequireRole", mock.Anything, userID, teamID, models.RoleAdmin).
		Return(apperrors.ErrInsufficientPermission)

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodDelete, "/channels/"+channelID.String(), nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockChannelService.AssertNotCalled(t, "Delete")
}
