package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-api/internal/database"
	"github.com/devconnect/devconnect-api/internal/models"
)

type ProjectService struct {
	db *database.DB
}

func NewProjectService(db *database.DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) Create(ctx context.Context, teamID uuid.UUID, name, key string) (*models.Project, error) {
	var project models.Project
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (team_id, name, key)
		VALUES ($1, $2, $3)
		RETURNING id, team_id, name, key, created_at
	`, teamID, name, key).Scan(&project.ID, &project.TeamID, &project.Name, &project.Key, &project.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

func (s *ProjectService) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Project, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, team_id, name, key, created_at
		FROM projects
		WHERE team_id = $1
		ORDER BY created_at DESC
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.Key, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Delete removes a project and all its dependents. Children go first —
// assignees, tasks, messages, channels, documents — then the project row,
// all in one transaction.
func (s *ProjectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	steps := []string{
		`DELETE FROM task_assignees WHERE task_id IN (SELECT id FROM tasks WHERE project_id = $1)`,
		`DELETE FROM tasks WHERE project_id = $1`,
		`DELETE FROM messages WHERE channel_id IN (SELECT id FROM channels WHERE project_id = $1)`,
		`DELETE FROM channels WHERE project_id = $1`,
		`DELETE FROM documents WHERE project_id = $1`,
		`DELETE FROM projects WHERE id = $1`,
	}
	for _, step := range steps {
		if _, err := tx.Exec(ctx, step, projectID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
	}

	return tx.Commit(ctx)
}
