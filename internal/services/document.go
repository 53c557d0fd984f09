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

type DocumentService struct {
	db *database.DB
}

func NewDocumentService(db *database.DB) *DocumentService {
	return &DocumentService{db: db}
}

func (s *DocumentService) Create(ctx context.Context, projectID uuid.UUID, title, content string) (*models.Document, error) {
	var doc models.Document
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO documents (project_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, project_id, title, content, created_at, updated_at
	`, projectID, title, content).Scan(
		&doc.ID, &doc.ProjectID, &doc.Title, &doc.Content, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return &doc, nil
}

func (s *DocumentService) GetByID(ctx context.Context, documentID uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, project_id, title, content, created_at, updated_at
		FROM documents WHERE id = $1
	`, documentID).Scan(&doc.ID, &doc.ProjectID, &doc.Title, &doc.Content, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// ListByProject returns documents most recently updated first.
func (s *DocumentService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Document, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, project_id, title, content, created_at, updated_at
		FROM documents
		WHERE project_id = $1
		ORDER BY updated_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Title, &d.Content, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Update applies a partial update; nil fields keep their current value.
func (s *DocumentService) Update(ctx context.Context, documentID uuid.UUID, title, content *string) (*models.Document, error) {
	var doc models.Document
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE documents SET
			title = COALESCE($2, title),
			content = COALESCE($3, content),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, project_id, title, content, created_at, updated_at
	`, documentID, title, content).Scan(
		&doc.ID, &doc.ProjectID, &doc.Title, &doc.Content, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s *DocumentService) UpdateContent(ctx context.Context, documentID uuid.UUID, content string) (*models.Document, error) {
	return s.Update(ctx, documentID, nil, &content)
}

func (s *DocumentService) Delete(ctx context.Context, documentID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, documentID)
	return err
}
