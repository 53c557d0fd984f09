package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/devconnect/devconnect-api/internal/apperrors"
	"github.com/devconnect/devconnect-api/internal/database"
	"github.com/devconnect/devconnect-api/internal/models"
)

type TeamService struct {
	db *database.DB
}

func NewTeamService(db *database.DB) *TeamService {
	return &TeamService{db: db}
}

// Create inserts the team and its founding OWNER membership in one
// transaction.
func (s *TeamService) Create(ctx context.Context, name, slug string, ownerID uuid.UUID) (*models.Team, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var team models.Team
	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name, slug)
		VALUES ($1, $2)
		RETURNING id, name, slug, created_at
	`, name, slug).Scan(&team.ID, &team.Name, &team.Slug, &team.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO memberships (team_id, user_id, role)
		VALUES ($1, $2, $3)
	`, team.ID, ownerID, models.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to add owner as member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &team, nil
}

// GetUserTeams lists the caller's teams newest-first, with the caller's role
// in each.
func (s *TeamService) GetUserTeams(ctx context.Context, userID uuid.UUID) ([]models.Team, []models.Role, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT t.id, t.name, t.slug, t.created_at, m.role
		FROM teams t
		JOIN memberships m ON t.id = m.team_id
		WHERE m.user_id = $1
		ORDER BY t.created_at DESC
	`, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var teams []models.Team
	var roles []models.Role
	for rows.Next() {
		var team models.Team
		var role models.Role
		if err := rows.Scan(&team.ID, &team.Name, &team.Slug, &team.CreatedAt, &role); err != nil {
			return nil, nil, err
		}
		teams = append(teams, team)
		roles = append(roles, role)
	}
	return teams, roles, rows.Err()
}

// GetForUser fetches a team only if the caller is a member. Existence and
// access are checked together so non-members cannot probe for team ids.
func (s *TeamService) GetForUser(ctx context.Context, teamID, userID uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := s.db.Pool.QueryRow(ctx, `
		SELECT t.id, t.name, t.slug, t.created_at
		FROM teams t
		JOIN memberships m ON t.id = m.team_id
		WHERE t.id = $1 AND m.user_id = $2
	`, teamID, userID).Scan(&team.ID, &team.Name, &team.Slug, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return &team, nil
}

// AddMember creates a membership. An existing membership is a conflict,
// whatever its role; role changes go through remove + add.
func (s *TeamService) AddMember(ctx context.Context, teamID, userID uuid.UUID, role models.Role) error {
	if !role.Valid() {
		return apperrors.ErrInvalidRole
	}

	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM memberships WHERE team_id = $1 AND user_id = $2)
	`, teamID, userID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrAlreadyMember
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO memberships (team_id, user_id, role)
		VALUES ($1, $2, $3)
	`, teamID, userID, role)
	return err
}

// RemoveMember deletes a membership. Removing the last OWNER is always
// rejected; the check and the delete share a transaction so a concurrent
// removal cannot slip past the owner count.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var targetRole models.Role
	err = tx.QueryRow(ctx, `
		SELECT role FROM memberships WHERE team_id = $1 AND user_id = $2
	`, teamID, userID).Scan(&targetRole)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return err
	}

	if targetRole == models.RoleOwner {
		var ownerCount int
		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM memberships WHERE team_id = $1 AND role = $2
		`, teamID, models.RoleOwner).Scan(&ownerCount)
		if err != nil {
			return err
		}
		if ownerCount <= 1 {
			return apperrors.ErrCannotRemoveLastOwner
		}
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM memberships WHERE team_id = $1 AND user_id = $2
	`, teamID, userID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
