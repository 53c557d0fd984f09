package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-api/internal/database"
	"github.com/devconnect/devconnect-api/internal/models"
)

type ChannelService struct {
	db *database.DB
}

func NewChannelService(db *database.DB) *ChannelService {
	return &ChannelService{db: db}
}

func (s *ChannelService) Create(ctx context.Context, projectID uuid.UUID, name string) (*models.Channel, error) {
	var channel models.Channel
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO channels (project_id, name)
		VALUES ($1, $2)
		RETURNING id, project_id, name, created_at
	`, projectID, name).Scan(&channel.ID, &channel.ProjectID, &channel.Name, &channel.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}
	return &channel, nil
}

// ListByProject returns channels oldest-first, matching the order they were
// created in.
func (s *ChannelService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Channel, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, project_id, name, created_at
		FROM channels
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var c models.Channel
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}
	return channels, rows.Err()
}

// Delete removes a channel and its messages in one transaction.
func (s *ChannelService) Delete(ctx context.Context, channelID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM messages WHERE channel_id = $1`, channelID); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM channels WHERE id = $1`, channelID); err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}

	return tx.Commit(ctx)
}
