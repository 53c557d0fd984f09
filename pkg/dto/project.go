package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-api/internal/models"
)

type CreateProjectRequest struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

type ProjectResponse struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	Name      string    `json:"name"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}

func NewProjectResponse(p *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		TeamID:    p.TeamID,
		Name:      p.Name,
		Key:       p.Key,
		CreatedAt: p.CreatedAt,
	}
}
