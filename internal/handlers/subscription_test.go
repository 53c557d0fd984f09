package handlers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect-api/internal/apperrors"
	"github.com/devconnect/devconnect-api/internal/pubsub"
	"github.com/devconnect/devconnect-api/tests/testutil"
)

func setupSubscriptionTest(t *testing.T) (*SubscriptionHandler, *testutil.MockTenantService, *pubsub.MemoryBus) {
	t.Helper()
	mockTenantService := new(testutil.MockTenantService)
	bus := pubsub.NewMemoryBus()
	t.Cleanup(func() { bus.Close() })
	handler := NewSubscriptionHandler(bus, mockTenantService, newTestJWTService())
	return handler, mockTenantService, bus
}

func TestSubscriptionHandler_TopicFor_MessageAdded(t *testing.T) {
	handler, mockTenantService, _ := setupSubscriptionTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	channelID := uuid.New()

	mockTenantService.On("TeamIDForChannel", mock.Anything, channelID).Return(teamID, nil)
	mockTenantService.On("RequireMember", mock.Anything, userID, teamID).Return(nil)

	topic, err := handler.topicFor(context.Background(), userID, SubscribeMessage{
		Subscription: SubMessageAdded,
		ChannelID:    channelID.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, pubsub.MessageTopic(teamID, channelID), topic)
}

func TestSubscriptionHandler_TopicFor_TaskKinds(t *testing.T) {
	handler, mockTenantService, _ := setupSubscriptionTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	projectID := uuid.New()

	mockTenantService.On("TeamIDForProject", mock.Anything, projectID).Return(teamID, nil)
	mockTenantService.On("RequireMember", mock.Anything, userID, teamID).Return(nil)

	added, err := handler.topicFor(context.Background(), userID, SubscribeMessage{
		Subscription: SubTaskAdded,
		ProjectID:    projectID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, pubsub.TaskAddedTopic(teamID, projectID), added)

	updated, err := handler.topicFor(context.Background(), userID, SubscribeMessage{
		Subscription: SubTaskUpdated,
		ProjectID:    projectID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, pubsub.TaskUpdatedTopic(teamID, projectID), updated)
}

func TestSubscriptionHandler_TopicFor_NonMember(t *testing.T) {
	handler, mockTenantService, _ := setupSubscriptionTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	channelID := uuid.New()

	mockTenantService.On("TeamIDForChannel", mock.Anything, channelID).Return(teamID, nil)
	mockTenantService.On("RequireMember", mock.Anything, userID, teamID).
		Return(apperrors.ErrForbidden)

	_, err := handler.topicFor(context.Background(), userID, SubscribeMessage{
		Subscription: SubMessageAdded,
		ChannelID:    channelID.String(),
	})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSubscriptionHandler_TopicFor_BadTarget(t *testing.T) {
	handler, mockTenantService, _ := setupSubscriptionTest(t)

	userID := uuid.New()

	_, err := handler.topicFor(context.Background(), userID, SubscribeMessage{
		Subscription: SubMessageAdded,
		ChannelID:    "not-a-uuid",
	})
	assert.Error(t, err)

	_, err = handler.topicFor(context.Background(), userID, SubscribeMessage{
		Subscription: "unknownKind",
	})
	assert.Error(t, err)

	mockTenantService.AssertNotCalled(t, "TeamIDForChannel")
}
