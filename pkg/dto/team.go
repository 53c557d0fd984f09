package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-api/internal/models"
)

type CreateTeamRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

type TeamResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTeamResponse(t *models.Team, role models.Role) TeamResponse {
	return TeamResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Role:      string(role),
		CreatedAt: t.CreatedAt,
	}
}
