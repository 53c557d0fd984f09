package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/devconnect/devconnect-api/internal/apperrors"
	"github.com/devconnect/devconnect-api/internal/middleware"
	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/internal/services"
	"github.com/devconnect/devconnect-api/pkg/dto"
)

type TaskHandler struct {
	taskService   TaskServiceInterface
	tenantService TenantServiceInterface
	publisher     *Publisher
}

func NewTaskHandler(taskService TaskServiceInterface, tenantService TenantServiceInterface, publisher *Publisher) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		tenantService: tenantService,
		publisher:     publisher,
	}
}

// guardTask resolves the task's team and checks the caller holds at least
// min on it. Returns the task and team ids on success.
func (h *TaskHandler) guardTask(ctx context.Context, c *drift.Context, userID uuid.UUID, min models.Role) (taskID, teamID uuid.UUID, ok bool) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.BadRequest("invalid task id")
		return uuid.Nil, uuid.Nil, false
	}

	teamID, err = h.tenantService.TeamIDForTask(ctx, taskID)
	if err != nil {
		respondError(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	if err := h.tenantService.RequireRole(ctx, userID, teamID, min); err != nil {
		respondError(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	return taskID, teamID, true
}

func (h *TaskHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	var req dto.AddTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Title == "" {
		c.BadRequest("title is required")
		return
	}

	ctx := context.Background()

	teamID, err := h.tenantService.TeamIDForProject(ctx, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.tenantService.RequireMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	task, err := h.taskService.Create(ctx, projectID, req.Title, req.Description, req.Priority, req.DueAt, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.NewTaskResponse(task)
	h.publisher.TaskAdded(ctx, teamID, response)

	_ = c.JSON(201, response)
}

func (h *TaskHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	ctx := context.Background()

	teamID, err := h.tenantService.TeamIDForProject(ctx, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.tenantService.RequireMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	tasks, err := h.taskService.ListByProject(ctx, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = dto.NewTaskResponse(&tasks[i])
	}
	_ = c.JSON(200, response)
}

func (h *TaskHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	update := services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueAt:       req.DueAt,
		ClearDueAt:  req.ClearDueAt,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		if !status.Valid() {
			respondError(c, apperrors.ErrInvalidTaskStatus)
			return
		}
		update.Status = &status
	}

	ctx := context.Background()

	taskID, teamID, ok := h.guardTask(ctx, c, userID, models.RoleMember)
	if !ok {
		return
	}

	task, err := h.taskService.Update(ctx, taskID, update)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.NewTaskResponse(task)
	h.publisher.TaskUpdated(ctx, teamID, response)

	_ = c.JSON(200, response)
}

func (h *TaskHandler) UpdateStatus(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	status := models.TaskStatus(req.Status)
	if !status.Valid() {
		respondError(c, apperrors.ErrInvalidTaskStatus)
		return
	}

	ctx := context.Background()

	taskID, teamID, ok := h.guardTask(ctx, c, userID, models.RoleMember)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateStatus(ctx, taskID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.NewTaskResponse(task)
	h.publisher.TaskUpdated(ctx, teamID, response)

	_ = c.JSON(200, response)
}

func (h *TaskHandler) Assign(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	var req dto.AssignTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx := context.Background()

	taskID, teamID, ok := h.guardTask(ctx, c, userID, models.RoleMember)
	if !ok {
		return
	}

	// Every assignee must belong to the task's team.
	for _, assigneeID := range req.UserIDs {
		if err := h.tenantService.RequireMember(ctx, assigneeID, teamID); err != nil {
			respondError(c, err)
			return
		}
	}

	task, err := h.taskService.ReplaceAssignees(ctx, taskID, req.UserIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.NewTaskResponse(task)
	h.publisher.TaskUpdated(ctx, teamID, response)

	_ = c.JSON(200, response)
}

func (h *TaskHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	ctx := context.Background()

	taskID, _, ok := h.guardTask(ctx, c, userID, models.RoleAdmin)
	if !ok {
		return
	}

	if err := h.taskService.Delete(ctx, taskID); err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, map[string]bool{"ok": true})
}
