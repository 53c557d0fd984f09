package testutil

import (
	"context"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/devconnect/devconnect-api/internal/database"
	"github.com/devconnect/devconnect-api/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email: fmt.Sprintf("user%d@example.com", f.counter),
		Name:  fmt.Sprintf("Test User %d", f.counter),
	}
	password := "password"

	for _, opt := range opts {
		opt(user, &password)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, password_hash, created_at, updated_at
	`, user.Email, user.Name, string(hash)).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User, *string)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User, _ *string) {
		u.Email = email
	}
}

// WithPassword sets the user's password
func WithPassword(password string) UserOption {
	return func(_ *models.User, p *string) {
		*p = password
	}
}

// CreateTeam creates a test team owned by the given user
func (f *Fixtures) CreateTeam(t *testing.T, owner *models.User) *models.Team {
	t.Helper()
	f.counter++

	team := &models.Team{
		Name: fmt.Sprintf("Test Team %d", f.counter),
		Slug: fmt.Sprintf("test-team-%d", f.counter),
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name, slug)
		VALUES ($1, $2)
		RETURNING id, name, slug, created_at
	`, team.Name, team.Slug).Scan(&team.ID, &team.Name, &team.Slug, &team.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO memberships (team_id, user_id, role)
		VALUES ($1, $2, $3)
	`, team.ID, owner.ID, models.RoleOwner)
	if err != nil {
		t.Fatalf("failed to add owner as member: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	return team
}

// AddMember adds a user to a team with the given role
func (f *Fixtures) AddMember(t *testing.T, team *models.Team, user *models.User, role models.Role) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO memberships (team_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (team_id, user_id) DO NOTHING
	`, team.ID, user.ID, role)
	if err != nil {
		t.Fatalf("failed to add team member: %v", err)
	}
}

// CreateProject creates a test project in a team
func (f *Fixtures) CreateProject(t *testing.T, team *models.Team) *models.Project {
	t.Helper()
	f.counter++

	project := &models.Project{
		TeamID: team.ID,
		Name:   fmt.Sprintf("Test Project %d", f.counter),
		Key:    fmt.Sprintf("TP%d", f.counter),
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (team_id, name, key)
		VALUES ($1, $2, $3)
		RETURNING id, team_id, name, key, created_at
	`, project.TeamID, project.Name, project.Key).Scan(
		&project.ID, &project.TeamID, &project.Name, &project.Key, &project.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	return project
}

// CreateChannel creates a test channel in a project
func (f *Fixtures) CreateChannel(t *testing.T, project *models.Project) *models.Channel {
	t.Helper()
	f.counter++

	channel := &models.Channel{
		ProjectID: project.ID,
		Name:      fmt.Sprintf("channel-%d", f.counter),
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO channels (project_id, name)
		VALUES ($1, $2)
		RETURNING id, project_id, name, created_at
	`, channel.ProjectID, channel.Name).Scan(
		&channel.ID, &channel.ProjectID, &channel.Name, &channel.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create channel: %v", err)
	}

	return channel
}

// CreateDocument creates a test document in a project
func (f *Fixtures) CreateDocument(t *testing.T, project *models.Project) *models.Document {
	t.Helper()
	f.counter++

	doc := &models.Document{
		ProjectID: project.ID,
		Title:     fmt.Sprintf("Test Document %d", f.counter),
		Content:   "",
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO documents (project_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, project_id, title, content, created_at, updated_at
	`, doc.ProjectID, doc.Title, doc.Content).Scan(
		&doc.ID, &doc.ProjectID, &doc.Title, &doc.Content, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}

	return doc
}
