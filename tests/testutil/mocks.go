package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/internal/services"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) SignUp(ctx context.Context, email, name, password string) (*models.User, error) {
	args := m.Called(ctx, email, name, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTeamService mocks the TeamService
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, name, slug string, ownerID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, name, slug, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) GetUserTeams(ctx context.Context, userID uuid.UUID) ([]models.Team, []models.Role, error) {
	args := m.Called(ctx, userID)
	var teams []models.Team
	var roles []models.Role
	if args.Get(0) != nil {
		teams = args.Get(0).([]models.Team)
	}
	if args.Get(1) != nil {
		roles = args.Get(1).([]models.Role)
	}
	return teams, roles, args.Error(2)
}

func (m *MockTeamService) GetForUser(ctx context.Context, teamID, userID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) AddMember(ctx context.Context, teamID, userID uuid.UUID, role models.Role) error {
	args := m.Called(ctx, teamID, userID, role)
	return args.Error(0)
}

func (m *MockTeamService) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

// MockTenantService mocks the TenantService
type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) TeamIDForProject(ctx context.Context, projectID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTenantService) TeamIDForChannel(ctx context.Context, channelID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTenantService) TeamIDForDocument(ctx context.Context, documentID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, documentID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTenantService) TeamIDForTask(ctx context.Context, taskID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTenantService) MembershipRole(ctx context.Context, userID, teamID uuid.UUID) (models.Role, error) {
	args := m.Called(ctx, userID, teamID)
	return args.Get(0).(models.Role), args.Error(1)
}

func (m *MockTenantService) RequireMember(ctx context.Context, userID, teamID uuid.UUID) error {
	args := m.Called(ctx, userID, teamID)
	return args.Error(0)
}

func (m *MockTenantService) RequireRole(ctx context.Context, userID, teamID uuid.UUID, min models.Role) error {
	args := m.Called(ctx, userID, teamID, min)
	return args.Error(0)
}

// MockProjectService mocks the ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, teamID uuid.UUID, name, key string) (*models.Project, error) {
	args := m.Called(ctx, teamID, name, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Project, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// MockDocumentService mocks the DocumentService
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Create(ctx context.Context, projectID uuid.UUID, title, content string) (*models.Document, error) {
	args := m.Called(ctx, projectID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) GetByID(ctx context.Context, documentID uuid.UUID) (*models.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Document, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Document), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, documentID uuid.UUID, title, content *string) (*models.Document, error) {
	args := m.Called(ctx, documentID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) UpdateContent(ctx context.Context, documentID uuid.UUID, content string) (*models.Document, error) {
	args := m.Called(ctx, documentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, documentID uuid.UUID) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// MockChannelService mocks the ChannelService
type MockChannelService struct {
	mock.Mock
}

func (m *MockChannelService) Create(ctx context.Context, projectID uuid.UUID, name string) (*models.Channel, error) {
	args := m.Called(ctx, projectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Channel), args.Error(1)
}

func (m *MockChannelService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Channel, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Channel), args.Error(1)
}

func (m *MockChannelService) Delete(ctx context.Context, channelID uuid.UUID) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}

// MockMessageService mocks the MessageService
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Create(ctx context.Context, channelID, authorID uuid.UUID, body string) (*models.Message, error) {
	args := m.Called(ctx, channelID, authorID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageService) ListByChannel(ctx context.Context, channelID uuid.UUID, limit int) ([]models.Message, error) {
	args := m.Called(ctx, channelID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// MockTaskService mocks the TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, projectID uuid.UUID, title, description string, priority int, dueAt *time.Time, createdBy uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, projectID, title, description, priority, dueAt, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, taskID uuid.UUID, update services.TaskUpdate) (*models.Task, error) {
	args := m.Called(ctx, taskID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) UpdateStatus(ctx context.Context, taskID uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	args := m.Called(ctx, taskID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) ReplaceAssignees(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, taskID, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) Assignees(ctx context.Context, taskID uuid.UUID) ([]models.User, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// MockLiveblocksClient mocks the Liveblocks API client
type MockLiveblocksClient struct {
	mock.Mock
}

func (m *MockLiveblocksClient) AuthorizeUser(ctx context.Context, userID uuid.UUID, room string) (string, error) {
	args := m.Called(ctx, userID, room)
	return args.String(0), args.Error(1)
}
