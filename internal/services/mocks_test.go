package services_test

import (
	"context"

	"github.com/roleready/roleready-api/internal/email"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock implementation of repository.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, name, email, passwordHash string, role models.UserRole) (*models.User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context, filter models.UserFilter, params models.ListParams) ([]*models.User, int, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Int(1), args.Error(2)
}

func (m *MockUserStore) Update(ctx context.Context, id string, req *models.AdminUpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateProfile(ctx context.Context, id, name string, profile models.Profile) (*models.User, error) {
	args := m.Called(ctx, id, name, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) SetAvatar(ctx context.Context, id, avatarURL string) error {
	return m.Called(ctx, id, avatarURL).Error(0)
}

func (m *MockUserStore) SetTargetRole(ctx context.Context, id string, roleID *string) error {
	return m.Called(ctx, id, roleID).Error(0)
}

func (m *MockUserStore) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockUserStore) SetRole(ctx context.Context, id string, role models.UserRole) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockUserStore) SetMentor(ctx context.Context, userID, mentorID string) error {
	return m.Called(ctx, userID, mentorID).Error(0)
}

func (m *MockUserStore) AccountStatus(ctx context.Context, id string) (models.UserRole, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.UserRole), args.Bool(1), args.Error(2)
}

func (m *MockUserStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserStore) ListStudents(ctx context.Context, mentorID string) ([]*models.User, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserStore) MentorWorkloads(ctx context.Context) ([]models.MentorWorkload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MentorWorkload), args.Error(1)
}

// MockSkillStore is a mock implementation of repository.SkillStore
type MockSkillStore struct {
	mock.Mock
}

func (m *MockSkillStore) ListSkills(ctx context.Context, filter models.SkillFilter) ([]*models.Skill, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Skill), args.Error(1)
}

func (m *MockSkillStore) GetSkill(ctx context.Context, id string) (*models.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *MockSkillStore) CreateSkill(ctx context.Context, req *models.SkillRequest) (*models.Skill, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *MockSkillStore) UpdateSkill(ctx context.Context, id string, req *models.SkillRequest) (*models.Skill, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *MockSkillStore) DeleteSkill(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSkillStore) ListUserSkills(ctx context.Context, userID string) ([]*models.UserSkill, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserSkill), args.Error(1)
}

func (m *MockSkillStore) GetUserSkill(ctx context.Context, id string) (*models.UserSkill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSkill), args.Error(1)
}

func (m *MockSkillStore) UpsertUserSkill(ctx context.Context, userID, skillID string, level models.SkillLevel, source models.SkillSource) (*models.UserSkill, error) {
	args := m.Called(ctx, userID, skillID, level, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSkill), args.Error(1)
}

func (m *MockSkillStore) DeleteUserSkill(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockSkillStore) RequestValidation(ctx context.Context, id, validatorID string) (*models.UserSkill, error) {
	args := m.Called(ctx, id, validatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSkill), args.Error(1)
}

func (m *MockSkillStore) ResolveValidation(ctx context.Context, id, resolverID string, status models.ValidationStatus, note string) (*models.UserSkill, error) {
	args := m.Called(ctx, id, resolverID, status, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSkill), args.Error(1)
}

func (m *MockSkillStore) ReleaseValidations(ctx context.Context, validatorID string) ([]*models.UserSkill, error) {
	args := m.Called(ctx, validatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserSkill), args.Error(1)
}

func (m *MockSkillStore) GetQueueItem(ctx context.Context, id string) (*models.ValidationQueueItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ValidationQueueItem), args.Error(1)
}

func (m *MockSkillStore) ListQueue(ctx context.Context, filter models.ValidationFilter, params models.ListParams) ([]*models.ValidationQueueItem, int, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.ValidationQueueItem), args.Int(1), args.Error(2)
}

func (m *MockSkillStore) ValidationStats(ctx context.Context, validatorID string) (*models.ValidationStats, error) {
	args := m.Called(ctx, validatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ValidationStats), args.Error(1)
}

// MockRoleStore is a mock implementation of repository.RoleStore
type MockRoleStore struct {
	mock.Mock
}

func (m *MockRoleStore) List(ctx context.Context, onlyActive bool) ([]*models.Role, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Role), args.Error(1)
}

func (m *MockRoleStore) GetByID(ctx context.Context, id string) (*models.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleStore) Create(ctx context.Context, req *models.RoleRequest) (*models.Role, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleStore) Update(ctx context.Context, id string, req *models.RoleRequest) (*models.Role, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleStore) ReplaceBenchmarks(ctx context.Context, id string, benchmarks []models.Benchmark) (*models.Role, error) {
	args := m.Called(ctx, id, benchmarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockRoleCache is a mock of the role cache, used as RoleProvider and
// RoleInvalidator
type MockRoleCache struct {
	mock.Mock
}

func (m *MockRoleCache) Get(ctx context.Context, id string) (*models.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleCache) ListActive(ctx context.Context) ([]*models.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Role), args.Error(1)
}

func (m *MockRoleCache) Invalidate() {
	m.Called()
}

// MockListingStore is a mock implementation of repository.ListingStore
type MockListingStore struct {
	mock.Mock
}

func (m *MockListingStore) List(ctx context.Context, filter models.ListingFilter, params models.ListParams) ([]*models.Listing, int, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Listing), args.Int(1), args.Error(2)
}

func (m *MockListingStore) GetByID(ctx context.Context, kind models.ListingKind, id string) (*models.Listing, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingStore) GetActiveBySlug(ctx context.Context, kind models.ListingKind, slug string) (*models.Listing, error) {
	args := m.Called(ctx, kind, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingStore) Create(ctx context.Context, kind models.ListingKind, slug string, req *models.ListingRequest, createdBy string) (*models.Listing, error) {
	args := m.Called(ctx, kind, slug, req, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingStore) Update(ctx context.Context, kind models.ListingKind, id string, req *models.ListingRequest) (*models.Listing, error) {
	args := m.Called(ctx, kind, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingStore) SetStatus(ctx context.Context, kind models.ListingKind, id string, status models.ListingStatus) error {
	return m.Called(ctx, kind, id, status).Error(0)
}

func (m *MockListingStore) SetFeatured(ctx context.Context, kind models.ListingKind, id string, featured bool) error {
	return m.Called(ctx, kind, id, featured).Error(0)
}

func (m *MockListingStore) Delete(ctx context.Context, kind models.ListingKind, id string) error {
	return m.Called(ctx, kind, id).Error(0)
}

// MockApplicationStore is a mock implementation of repository.ApplicationStore
type MockApplicationStore struct {
	mock.Mock
}

func (m *MockApplicationStore) GetByUser(ctx context.Context, userID string) (*models.MentorApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorApplication), args.Error(1)
}

func (m *MockApplicationStore) GetByID(ctx context.Context, id string) (*models.MentorApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorApplication), args.Error(1)
}

func (m *MockApplicationStore) List(ctx context.Context, status models.ApplicationStatus, params models.ListParams) ([]*models.MentorApplication, int, error) {
	args := m.Called(ctx, status, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.MentorApplication), args.Int(1), args.Error(2)
}

func (m *MockApplicationStore) SaveDraft(ctx context.Context, userID string, sections models.ApplicationSections) (*models.MentorApplication, error) {
	args := m.Called(ctx, userID, sections)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorApplication), args.Error(1)
}

func (m *MockApplicationStore) RecordConsent(ctx context.Context, userID, version, ip string) error {
	return m.Called(ctx, userID, version, ip).Error(0)
}

func (m *MockApplicationStore) Submit(ctx context.Context, userID string, sections models.ApplicationSections, consentVersion, ip string) (*models.MentorApplication, error) {
	args := m.Called(ctx, userID, sections, consentVersion, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorApplication), args.Error(1)
}

func (m *MockApplicationStore) Review(ctx context.Context, id, reviewerID string, status models.ApplicationStatus, reason string) (*models.MentorApplication, error) {
	args := m.Called(ctx, id, reviewerID, status, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorApplication), args.Error(1)
}

// MockTicketStore is a mock implementation of repository.TicketStore
type MockTicketStore struct {
	mock.Mock
}

func (m *MockTicketStore) Create(ctx context.Context, userID string, req *models.CreateTicketRequest) (*models.Ticket, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketStore) List(ctx context.Context, filter models.TicketFilter, params models.ListParams) ([]*models.Ticket, int, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Ticket), args.Int(1), args.Error(2)
}

func (m *MockTicketStore) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketStore) AddMessage(ctx context.Context, ticketID, authorID string, authorRole models.UserRole, body string, newStatus *models.TicketStatus) (*models.Ticket, error) {
	args := m.Called(ctx, ticketID, authorID, authorRole, body, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketStore) Update(ctx context.Context, id string, req *models.AdminUpdateTicketRequest) (*models.Ticket, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

// MockNotificationStore is a mock implementation of repository.NotificationStore
type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) Create(ctx context.Context, n models.NewNotification) (*models.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationStore) List(ctx context.Context, userID string, unreadOnly bool, params models.ListParams) ([]*models.Notification, int, int, error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	if args.Get(0) == nil {
		return nil, 0, 0, args.Error(3)
	}
	return args.Get(0).([]*models.Notification), args.Int(1), args.Int(2), args.Error(3)
}

func (m *MockNotificationStore) MarkRead(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockNotificationStore) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationStore) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

// MockMailer is a mock implementation of email.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, userName string, event email.Event, metadata map[string]string) error {
	return m.Called(to, userName, event, metadata).Error(0)
}

// MockCaptcha is a mock implementation of services.CaptchaVerifier
type MockCaptcha struct {
	mock.Mock
}

func (m *MockCaptcha) Verify(ctx context.Context, token, remoteIP string) error {
	return m.Called(ctx, token, remoteIP).Error(0)
}

// MockAvatarStore is a mock implementation of services.AvatarStore
type MockAvatarStore struct {
	mock.Mock
}

func (m *MockAvatarStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockAvatarStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockAvatarStore) KeyForURL(url string) (string, bool) {
	args := m.Called(url)
	return args.String(0), args.Bool(1)
}
