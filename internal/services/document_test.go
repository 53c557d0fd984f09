package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect-api/internal/apperrors"
	"github.com/devconnect/devconnect-api/internal/database"
)

func setupDocumentService(t *testing.T) (*DocumentService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewDocumentService(db), mock
}

func documentColumns() []string {
	return []string{"id", "project_id", "title", "content", "created_at", "updated_at"}
}

func TestDocumentService_Create(t *testing.T) {
	svc, mock := setupDocumentService(t)
	ctx := context.Background()
	projectID := uuid.New()
	documentID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO documents`).
		WithArgs(projectID, "Design notes", "").
		WillReturnRows(pgxmock.NewRows(documentColumns()).
			AddRow(documentID, projectID, "Design notes", "", now, now))

	doc, err := svc.Create(ctx, projectID, "Design notes", "")

	require.NoError(t, err)
	assert.Equal(t, documentID, doc.ID)
	assert.Equal(t, "Design notes", doc.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentService_Update_PartialTitle(t *testing.T) {
	svc, mock := setupDocumentService(t)
	ctx := context.Background()
	documentID := uuid.New()
	projectID := uuid.New()
	now := time.Now()

	title := "Renamed"
	mock.ExpectQuery(`UPDATE documents SET`).
		WithArgs(documentID, &title, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows(documentColumns()).
			AddRow(documentID, projectID, "Renamed", "body", now, now))

	doc, err := svc.Update(ctx, documentID, &title, nil)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", doc.Title)
	assert.Equal(t, "body", doc.Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentService_UpdateContent(t *testing.T) {
	svc, mock := setupDocumentService(t)
	ctx := context.Background()
	documentID := uuid.New()
	projectID := uuid.New()
	now := time.Now()

	content := "new body"
	mock.ExpectQuery(`UPDATE documents SET`).
		WithArgs(documentID, (*string)(nil), &content).
		WillReturnRows(pgxmock.NewRows(documentColumns()).
			AddRow(documentID, projectID, "Design notes", "new body", now, now))

	doc, err := svc.UpdateContent(ctx, documentID, "new body")

	require.NoError(t, err)
	assert.Equal(t, "new body", doc.Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentService_Update_NotFound(t *testing.T) {
	svc, mock := setupDocumentService(t)
	ctx := context.Background()
	documentID := uuid.New()

	title := "Renamed"
	mock.ExpectQuery(`UPDATE documents SET`).
		WithArgs(documentID, &title, (*string)(nil)).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Update(ctx, documentID, &title, nil)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentService_ListByProject(t *testing.T) {
	svc, mock := setupDocumentService(t)
	ctx := context.Background()
	projectID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows(documentColumns()).
		AddRow(uuid.New(), projectID, "Newest", "", now, now).
		AddRow(uuid.New(), projectID, "Older", "", now, now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT .+ FROM documents`).
		WithArgs(projectID).
		WillReturnRows(rows)

	docs, err := svc.ListByProject(ctx, projectID)

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Newest", docs[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
