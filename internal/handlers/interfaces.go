package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	SignUp(ctx context.Context, email, name, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TeamServiceInterface defines the methods used by handlers from TeamService
type TeamServiceInterface interface {
	Create(ctx context.Context, name, slug string, ownerID uuid.UUID) (*models.Team, error)
	GetUserTeams(ctx context.Context, userID uuid.UUID) ([]models.Team, []models.Role, error)
	GetForUser(ctx context.Context, teamID, userID uuid.UUID) (*models.Team, error)
	AddMember(ctx context.Context, teamID, userID uuid.UUID, role models.Role) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
}

// TenantServiceInterface defines the tenant resolution and access guard
// methods used by handlers from TenantService
type TenantServiceInterface interface {
	TeamIDForProject(ctx context.Context, projectID uuid.UUID) (uuid.UUID, error)
	TeamIDForChannel(ctx context.Context, channelID uuid.UUID) (uuid.UUID, error)
	TeamIDForDocument(ctx context.Context, documentID uuid.UUID) (uuid.UUID, error)
	TeamIDForTask(ctx context.Context, taskID uuid.UUID) (uuid.UUID, error)
	MembershipRole(ctx context.Context, userID, teamID uuid.UUID) (models.Role, error)
	RequireMember(ctx context.Context, userID, teamID uuid.UUID) error
	RequireRole(ctx context.Context, userID, teamID uuid.UUID, min models.Role) error
}

// ProjectServiceInterface defines the methods used by handlers from ProjectService
type ProjectServiceInterface interface {
	Create(ctx context.Context, teamID uuid.UUID, name, key string) (*models.Project, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
}

// DocumentServiceInterface defines the methods used by handlers from DocumentService
type DocumentServiceInterface interface {
	Create(ctx context.Context, projectID uuid.UUID, title, content string) (*models.Document, error)
	GetByID(ctx context.Context, documentID uuid.UUID) (*models.Document, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Document, error)
	Update(ctx context.Context, documentID uuid.UUID, title, content *string) (*models.Document, error)
	UpdateContent(ctx context.Context, documentID uuid.UUID, content string) (*models.Document, error)
	Delete(ctx context.Context, documentID uuid.UUID) error
}

// ChannelServiceInterface defines the methods used by handlers from ChannelService
type ChannelServiceInterface interface {
	Create(ctx context.Context, projectID uuid.UUID, name string) (*models.Channel, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Channel, error)
	Delete(ctx context.Context, channelID uuid.UUID) error
}

// MessageServiceInterface defines the methods used by handlers from MessageService
type MessageServiceInterface interface {
	Create(ctx context.Context, channelID, authorID uuid.UUID, body string) (*models.Message, error)
	ListByChannel(ctx context.Context, channelID uuid.UUID, limit int) ([]models.Message, error)
}

// TaskServiceInterface defines the methods used by handlers from TaskService
type TaskServiceInterface interface {
	Create(ctx context.Context, projectID uuid.UUID, title, description string, priority int, dueAt *time.Time, createdBy uuid.UUID) (*models.Task, error)
	GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error)
	Update(ctx context.Context, taskID uuid.UUID, update services.TaskUpdate) (*models.Task, error)
	UpdateStatus(ctx context.Context, taskID uuid.UUID, status models.TaskStatus) (*models.Task, error)
	ReplaceAssignees(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) (*models.Task, error)
	Assignees(ctx context.Context, taskID uuid.UUID) ([]models.User, error)
	Delete(ctx context.Context, taskID uuid.UUID) error
}

// LiveblocksInterface defines the methods used by handlers from the
// liveblocks client
type LiveblocksInterface interface {
	AuthorizeUser(ctx context.Context, userID uuid.UUID, room string) (string, error)
}
