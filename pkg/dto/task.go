package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-api/internal/models"
)

type AddTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    int        `json:"priority"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *int       `json:"priority,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	ClearDueAt  bool       `json:"clear_due_at,omitempty"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

type AssignTaskRequest struct {
	UserIDs []uuid.UUID `json:"user_ids"`
}

type TaskResponse struct {
	ID          uuid.UUID      `json:"id"`
	ProjectID   uuid.UUID      `json:"project_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Priority    int            `json:"priority"`
	DueAt       *time.Time     `json:"due_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Assignees   []UserResponse `json:"assignees"`
}

func NewTaskResponse(t *models.Task) TaskResponse {
	assignees := make([]UserResponse, 0, len(t.Assignees))
	for i := range t.Assignees {
		assignees = append(assignees, NewUserResponse(&t.Assignees[i]))
	}
	return TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    t.Priority,
		DueAt:       t.DueAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Assignees:   assignees,
	}
}
