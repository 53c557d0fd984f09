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

func setupTaskTest(t *testing.T) (*testutil.MockTaskService, *testutil.MockTenantService, *pubsub.MemoryBus, http.Handler, *services.JWTService) {
	t.Helper()
	mockTaskService := new(testutil.MockTaskService)
	mockTenantService := new(testutil.MockTenantService)
	bus := pubsub.NewMemoryBus()
	t.Cleanup(func() { bus.Close() })

	handler := NewTaskHandler(mockTaskService, mockTenantService, NewPublisher(bus))
	jwtSvc := newTestJWTService()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/projects/:projectId/tasks", handler.List)
	app.Post("/projects/:projectId/tasks", handler.Create)
	app.Patch("/tasks/:taskId", handler.Update)
	app.Put("/tasks/:taskId/status", handler.UpdateStatus)
	app.Put("/tasks/:taskId/assignees", handler.Assign)
	app.Delete("/tasks/:taskId", handler.Delete)
	return mockTaskService, mockTenantService, bus, app, jwtSvc
}

func newTestTask(projectID uuid.UUID, createdBy *uuid.UUID) *models.Task {
	now := time.Now()
	return &models.Task{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Title:       "Fix login",
		Description: "",
		Status:      models.StatusTodo,
		Priority:    2,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestTaskHandler_Create_PublishesEvent(t *testing.T) {
	mockTaskService, mockTenantService, bus, app, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	projectID := uuid.New()
	task := newTestTask(projectID, &userID)

	mockTenantService.On("TeamIDForProject", mock.Anything, projectID).Return(teamID, nil)
	mockTenantService.On("RequireMember", mock.Anything, userID, teamID).Return(nil)
	mockTaskService.On("Create", mock.Anything, projectID, "Fix login", "", 2, (*time.Time)(nil), userID).
		Return(task, nil)

	sub, err := bus.Subscribe(context.Background(), pubsub.TaskAddedTopic(teamID, projectID))
	require.NoError(t, err)
	defer sub.Close()

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodPost, "/projects/"+projectID.String()+"/tasks",
		dto.AddTaskRequest{Title: "Fix login", Priority: 2})

	assert.Equal(t, http.StatusCreated, rec.Code)

	select {
	case ev := <-sub.Events():
		var published dto.TaskResponse
		require.NoError(t, json.Unmarshal(ev.Payload, &published))
		assert.Equal(t, task.ID, published.ID)
		assert.Equal(t, string(models.StatusTodo), published.Status)
	case <-time.After(time.Second):
		t.Fatal("no event published for new task")
	}

	mockTaskService.AssertExpectations(t)
}

func TestTaskHandler_Create_NonMember(t *testing.T) {
	mockTaskService, mockTenantService, _, app, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	projectID := uuid.New()

	mockTenantService.On("TeamIDForProject", mock.Anything, projectID).Return(teamID, nil)
	mockTenantService.On("RequireMember", mock.Anything, userID, teamID).
		Return(apperrors.ErrForbidden)

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodPost, "/projects/"+projectID.String()+"/tasks",
		dto.AddTaskRequest{Title: "Fix login"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockTaskService.AssertNotCalled(t, "Create")
}

func TestTaskHandler_UpdateStatus_PublishesEvent(t *testing.T) {
	mockTaskService, mockTenantService, bus, app, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	projectID := uuid.New()
	task := newTestTask(projectID, &userID)
	task.Status = models.StatusDoing

	mockTenantService.On("TeamIDForTask", mock.Anything, task.ID).Return(teamID, nil)
	mockTenantService.On("RequireRole", mock.Anything, userID, teamID, models.RoleMember).Return(nil)
	mockTaskService.On("UpdateStatus", mock.Anything, task.ID, models.StatusDoing).Return(task, nil)

	sub, err := bus.Subscribe(context.Background(), pubsub.TaskUpdatedTopic(teamID, projectID))
	require.NoError(t, err)
	defer sub.Close()

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodPut, "/tasks/"+task.ID.String()+"/status",
		dto.UpdateTaskStatusRequest{Status: string(models.StatusDoing)})

	assert.Equal(t, http.StatusOK, rec.Code)

	select {
	case ev := <-sub.Events():
		var published dto.TaskResponse
		require.NoError(t, json.Unmarshal(ev.Payload, &published))
		assert.Equal(t, string(models.StatusDoing), published.Status)
	case <-time.After(time.Second):
		t.Fatal("no event published for status change")
	}

	mockTaskService.AssertExpectations(t)
}

func TestTaskHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	mockTaskService, mockTenantService, _, app, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	taskID := uuid.New()

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodPut, "/tasks/"+taskID.String()+"/status",
		dto.UpdateTaskStatusRequest{Status: "BLOCKED"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockTaskService.AssertNotCalled(t, "UpdateStatus")
	mockTenantService.AssertNotCalled(t, "TeamIDForTask")
}

func TestTaskHandler_Update_UnknownTask(t *testing.T) {
	mockTaskService, mockTenantService, _, app, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	taskID := uuid.New()
	title := "Renamed"

	mockTenantService.On("TeamIDForTask", mock.Anything, taskID).
		Return(uuid.Nil, apperrors.ErrNotFound)

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodPatch, "/tasks/"+taskID.String(),
		dto.UpdateTaskRequest{Title: &title})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockTaskService.AssertNotCalled(t, "Update")
}

func TestTaskHandler_Assign_RejectsOutsideUser(t *testing.T) {
	mockTaskService, mockTenantService, _, app, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	taskID := uuid.New()
	outsider := uuid.New()

	mockTenantService.On("TeamIDForTask", mock.Anything, taskID).Return(teamID, nil)
	mockTenantService.On("RequireRole", mock.Anything, userID, teamID, models.RoleMember).Return(nil)
	mockTenantService.On("RequireMember", mock.Anything, outsider, teamID).
		Return(apperrors.ErrForbidden)

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodPut, "/tasks/"+taskID.String()+"/assignees",
		dto.AssignTaskRequest{UserIDs: []uuid.UUID{outsider}})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockTaskService.AssertNotCalled(t, "ReplaceAssignees")
}

func TestTaskHandler_Assign_Success(t *testing.T) {
	mockTaskService, mockTenantService, _, app, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	projectID := uuid.New()
	assignee := uuid.New()
	task := newTestTask(projectID, &userID)
	task.Assignees = []models.User{{ID: assignee, Email: "bob@example.com", Name: "Bob"}}

	mockTenantService.On("TeamIDForTask", mock.Anything, task.ID).Return(teamID, nil)
	mockTenantService.On("RequireRole", mock.Anything, userID, teamID, models.RoleMember).Return(nil)
	mockTenantService.On("RequireMember", mock.Anything, assignee, teamID).Return(nil)
	mockTaskService.On("ReplaceAssignees", mock.Anything, task.ID, []uuid.UUID{assignee}).Return(task, nil)

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodPut, "/tasks/"+task.ID.String()+"/assignees",
		dto.AssignTaskRequest{UserIDs: []uuid.UUID{assignee}})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Assignees, 1)
	assert.Equal(t, assignee, resp.Assignees[0].ID)

	mockTaskService.AssertExpectations(t)
}

func TestTaskHandler_Delete_RequiresAdmin(t *testing.T) {
	mockTaskService, mockTenantService, _, app, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	taskID := uuid.New()

	mockTenantService.On("TeamIDForTask", mock.Anything, taskID).Return(teamID, nil)
	mockTenantService.On("RequireRole", mock.Anything, userID, teamID, models.RoleAdmin).
		Return(apperrors.ErrInsufficientPermission)

	rec := authedRequest(t, app, jwtSvc, userID, http.MethodDelete, "/tasks/"+taskID.String(), nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockTaskService.AssertNotCalled(t, "Delete")
}
