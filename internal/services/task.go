package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/devconnect/devconnect-api/internal/apperrors"
	"github.com/devconnect/devconnect-api/internal/database"
	"github.com/devconnect/devconnect-api/internal/models"
)

type TaskService struct {
	db *database.DB
}

func NewTaskService(db *database.DB) *TaskService {
	return &TaskService{db: db}
}

// TaskUpdate is a partial update; nil fields keep their current value.
// ClearDueAt wins over DueAt and nulls the column.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *int
	DueAt       *time.Time
	ClearDueAt  bool
}

func (s *TaskService) Create(ctx context.Context, projectID uuid.UUID, title, description string, priority int, dueAt *time.Time, createdBy uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (project_id, title, description, priority, due_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, project_id, title, description, status, priority, due_at, created_by, created_at, updated_at
	`, projectID, title, description, priority, dueAt, createdBy).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description, &task.Status,
		&task.Priority, &task.DueAt, &task.CreatedBy, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

func (s *TaskService) GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, project_id, title, description, status, priority, due_at, created_by, created_at, updated_at
		FROM tasks WHERE id = $1
	`, taskID).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description, &task.Status,
		&task.Priority, &task.DueAt, &task.CreatedBy, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	assignees, err := s.Assignees(ctx, taskID)
	if err != nil {
		return nil, err
	}
	task.Assignees = assignees

	return &task, nil
}

// ListByProject returns tasks newest-first with assignees hydrated.
func (s *TaskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, project_id, title, description, status, priority, due_at, created_by, created_at, updated_at
		FROM tasks
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status,
			&t.Priority, &t.DueAt, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	ids := make([]uuid.UUID, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
	}
	assignees, err := s.assigneesByTask(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].Assignees = assignees[tasks[i].ID]
	}
	return tasks, nil
}

// assigneesByTask fetches the assignees of several tasks in one query,
// keyed by task id.
func (s *TaskService) assigneesByTask(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID][]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT ta.task_id, u.id, u.email, u.name, u.created_at, u.updated_at
		FROM task_assignees ta
		JOIN users u ON ta.user_id = u.id
		WHERE ta.task_id = ANY($1)
		ORDER BY ta.created_at ASC
	`, taskIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byTask := make(map[uuid.UUID][]models.User)
	for rows.Next() {
		var taskID uuid.UUID
		var u models.User
		if err := rows.Scan(&taskID, &u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		byTask[taskID] = append(byTask[taskID], u)
	}
	return byTask, rows.Err()
}

func (s *TaskService) Update(ctx context.Context, taskID uuid.UUID, update TaskUpdate) (*models.Task, error) {
	if update.Status != nil && !update.Status.Valid() {
		return nil, apperrors.ErrInvalidTaskStatus
	}

	var task models.Task
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE tasks SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			status = COALESCE($4, status),
			priority = COALESCE($5, priority),
			due_at = CASE
				WHEN $7::bool THEN NULL
				WHEN $6::timestamptz IS NOT NULL THEN $6
				ELSE due_at
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, project_id, title, description, status, priority, due_at, created_by, created_at, updated_at
	`, taskID, update.Title, update.Description, update.Status, update.Priority, update.DueAt, update.ClearDueAt).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description, &task.Status,
		&task.Priority, &task.DueAt, &task.CreatedBy, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	assignees, err := s.Assignees(ctx, taskID)
	if err != nil {
		return nil, err
	}
	task.Assignees = assignees

	return &task, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, taskID uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	return s.Update(ctx, taskID, TaskUpdate{Status: &status})
}

// ReplaceAssignees swaps the task's assignee set for userIDs in one
// transaction and returns the task with assignees hydrated.
func (s *TaskService) ReplaceAssignees(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) (*models.Task, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, taskID); err != nil {
		return nil, fmt.Errorf("failed to clear assignees: %w", err)
	}

	for _, userID := range userIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO task_assignees (task_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (task_id, user_id) DO NOTHING
		`, taskID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to assign user: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.GetByID(ctx, taskID)
}

// Assignees lists the users assigned to a task.
func (s *TaskService) Assignees(ctx context.Context, taskID uuid.UUID) ([]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT u.id, u.email, u.name, u.created_at, u.updated_at
		FROM task_assignees ta
		JOIN users u ON ta.user_id = u.id
		WHERE ta.task_id = $1
		ORDER BY ta.created_at ASC
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Delete removes a task and its assignee rows in one transaction.
func (s *TaskService) Delete(ctx context.Context, taskID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("failed to delete assignees: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return tx.Commit(ctx)
}
