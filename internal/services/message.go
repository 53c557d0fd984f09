package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-api/internal/database"
	"github.com/devconnect/devconnect-api/internal/models"
)

type MessageService struct {
	db *database.DB
}

func NewMessageService(db *database.DB) *MessageService {
	return &MessageService{db: db}
}

// Create stores the message and returns it with the author hydrated, since
// subscribers receive the full message including its author.
func (s *MessageService) Create(ctx context.Context, channelID, authorID uuid.UUID, body string) (*models.Message, error) {
	var msg models.Message
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO messages (channel_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, channel_id, author_id, body, created_at
	`, channelID, authorID, body).Scan(&msg.ID, &msg.ChannelID, &msg.AuthorID, &msg.Body, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	var author models.User
	err = s.db.Pool.QueryRow(ctx, `
		SELECT id, email, name, created_at, updated_at
		FROM users WHERE id = $1
	`, authorID).Scan(&author.ID, &author.Email, &author.Name, &author.CreatedAt, &author.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load message author: %w", err)
	}
	msg.Author = &author

	return &msg, nil
}

// ListByChannel returns up to limit messages oldest-first with authors
// hydrated.
func (s *MessageService) ListByChannel(ctx context.Context, channelID uuid.UUID, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT m.id, m.channel_id, m.author_id, m.body, m.created_at,
		       u.id, u.email, u.name, u.created_at, u.updated_at
		FROM messages m
		JOIN users u ON m.author_id = u.id
		WHERE m.channel_id = $1
		ORDER BY m.created_at ASC
		LIMIT $2
	`, channelID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		var u models.User
		if err := rows.Scan(
			&m.ID, &m.ChannelID, &m.AuthorID, &m.Body, &m.CreatedAt,
			&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		m.Author = &u
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
