package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/devconnect/devconnect-api/internal/apperrors"
	"github.com/devconnect/devconnect-api/internal/database"
	"github.com/devconnect/devconnect-api/internal/models"
)

// TenantService resolves the owning team of any entity and enforces
// membership and role checks against it. Every lookup goes to the database;
// nothing is cached.
type TenantService struct {
	db *database.DB
}

func NewTenantService(db *database.DB) *TenantService {
	return &TenantService{db: db}
}

// TeamIDForProject resolves a project to its team in a single hop.
func (s *TenantService) TeamIDForProject(ctx context.Context, projectID uuid.UUID) (uuid.UUID, error) {
	var teamID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT team_id FROM projects WHERE id = $1
	`, projectID).Scan(&teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, apperrors.ErrNotFound
		}
		return uuid.Nil, err
	}
	return teamID, nil
}

// TeamIDForChannel resolves channel -> project -> team.
func (s *TenantService) TeamIDForChannel(ctx context.Context, channelID uuid.UUID) (uuid.UUID, error) {
	var teamID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT p.team_id
		FROM channels c
		JOIN projects p ON c.project_id = p.id
		WHERE c.id = $1
	`, channelID).Scan(&teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, apperrors.ErrNotFound
		}
		return uuid.Nil, err
	}
	return teamID, nil
}

// TeamIDForDocument resolves document -> project -> team.
func (s *TenantService) TeamIDForDocument(ctx context.Context, documentID uuid.UUID) (uuid.UUID, error) {
	var teamID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT p.team_id
		FROM documents d
		JOIN projects p ON d.project_id = p.id
		WHERE d.id = $1
	`, documentID).Scan(&teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, apperrors.ErrNotFound
		}
		return uuid.Nil, err
	}
	return teamID, nil
}

// TeamIDForTask resolves task -> project -> team.
func (s *TenantService) TeamIDForTask(ctx context.Context, taskID uuid.UUID) (uuid.UUID, error) {
	var teamID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT p.team_id
		FROM tasks t
		JOIN projects p ON t.project_id = p.id
		WHERE t.id = $1
	`, taskID).Scan(&teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, apperrors.ErrNotFound
		}
		return uuid.Nil, err
	}
	return teamID, nil
}

// MembershipRole returns the caller's role within teamId, or ErrForbidden
// when no membership exists.
func (s *TenantService) MembershipRole(ctx context.Context, userID, teamID uuid.UUID) (models.Role, error) {
	var role models.Role
	err := s.db.Pool.QueryRow(ctx, `
		SELECT role FROM memberships WHERE user_id = $1 AND team_id = $2
	`, userID, teamID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrForbidden
		}
		return "", err
	}
	return role, nil
}

// RequireMember fails with ErrUnauthenticated for anonymous callers and
// ErrForbidden for non-members.
func (s *TenantService) RequireMember(ctx context.Context, userID, teamID uuid.UUID) error {
	return s.RequireRole(ctx, userID, teamID, models.RoleMember)
}

// RequireRole enforces that the caller holds at least min within the team:
// ErrUnauthenticated when no caller identity is present, ErrForbidden when
// no membership row exists, ErrInsufficientPermission when the held role is
// below min in the GUEST < MEMBER < ADMIN < OWNER order.
func (s *TenantService) RequireRole(ctx context.Context, userID, teamID uuid.UUID, min models.Role) error {
	if userID == uuid.Nil {
		return apperrors.ErrUnauthenticated
	}

	role, err := s.MembershipRole(ctx, userID, teamID)
	if err != nil {
		return err
	}
	if !role.AtLeast(min) {
		return apperrors.ErrInsufficientPermission
	}
	return nil
}
