package handlers

import (
	"context"
	"io"
	"time"

	"github.com/roleready/roleready-api/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest, remoteIP string) (*models.AuthResponse, error) {
	args := m.Called(ctx, req, remoteIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) SessionTTL() time.Duration {
	return 24 * time.Hour
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) SetTargetRole(ctx context.Context, userID string, roleID *string) (*models.User, error) {
	args := m.Called(ctx, userID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) UploadAvatar(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, userID, data, contentType)
	return args.String(0), args.Error(1)
}

type MockSkillService struct {
	mock.Mock
}

func (m *MockSkillService) ListSkills(ctx context.Context, filter models.SkillFilter) ([]*models.Skill, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Skill), args.Error(1)
}

func (m *MockSkillService) CreateSkill(ctx context.Context, req *models.SkillRequest) (*models.Skill, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *MockSkillService) UpdateSkill(ctx context.Context, id string, req *models.SkillRequest) (*models.Skill, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *MockSkillService) DeleteSkill(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSkillService) ListUserSkills(ctx context.Context, userID string) ([]*models.UserSkill, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserSkill), args.Error(1)
}

func (m *MockSkillService) AddUserSkill(ctx context.Context, userID string, req *models.AddUserSkillRequest) (*models.UserSkill, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSkill), args.Error(1)
}

func (m *MockSkillService) UpdateUserSkill(ctx context.Context, userID, id string, req *models.UpdateUserSkillRequest) (*models.UserSkill, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSkill), args.Error(1)
}

func (m *MockSkillService) RemoveUserSkill(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockSkillService) RequestValidation(ctx context.Context, userID, id string) (*models.UserSkill, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSkill), args.Error(1)
}

type MockValidationService struct {
	mock.Mock
}

func (m *MockValidationService) Queue(ctx context.Context, session *models.Session, filter models.ValidationFilter, params models.ListParams) (*models.ValidationQueueResponse, error) {
	args := m.Called(ctx, session, filter, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ValidationQueueResponse), args.Error(1)
}

func (m *MockValidationService) Stats(ctx context.Context, session *models.Session) (*models.ValidationStats, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ValidationStats), args.Error(1)
}

func (m *MockValidationService) Approve(ctx context.Context, session *models.Session, id, note string) (*models.UserSkill, error) {
	args := m.Called(ctx, session, id, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSkill), args.Error(1)
}

func (m *MockValidationService) Reject(ctx context.Context, session *models.Session, id, note string) (*models.UserSkill, error) {
	args := m.Called(ctx, session, id, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSkill), args.Error(1)
}

type MockMentorService struct {
	mock.Mock
}

func (m *MockMentorService) Workloads(ctx context.Context) ([]models.MentorWorkload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MentorWorkload), args.Error(1)
}

func (m *MockMentorService) Assign(ctx context.Context, userID, mentorID string) (*models.User, error) {
	args := m.Called(ctx, userID, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockMentorService) Students(ctx context.Context, mentorID string) ([]*models.User, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) List(ctx context.Context, filter models.ListingFilter, params models.ListParams) (*models.ListingListResponse, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListingListResponse), args.Error(1)
}

func (m *MockListingService) ListPublic(ctx context.Context, filter models.ListingFilter, params models.ListParams) (*models.ListingListResponse, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListingListResponse), args.Error(1)
}

func (m *MockListingService) Get(ctx context.Context, kind models.ListingKind, id string) (*models.Listing, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) GetPublic(ctx context.Context, kind models.ListingKind, listingSlug string) (*models.Listing, error) {
	args := m.Called(ctx, kind, listingSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) Create(ctx context.Context, kind models.ListingKind, req *models.ListingRequest, createdBy string) (*models.Listing, error) {
	args := m.Called(ctx, kind, req, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, kind models.ListingKind, id string, req *models.ListingRequest) (*models.Listing, error) {
	args := m.Called(ctx, kind, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, kind models.ListingKind, id string) error {
	return m.Called(ctx, kind, id).Error(0)
}

func (m *MockListingService) Bulk(ctx context.Context, kind models.ListingKind, req *models.BulkActionRequest) (*models.BulkActionResult, error) {
	args := m.Called(ctx, kind, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BulkActionResult), args.Error(1)
}

type MockTicketService struct {
	mock.Mock
}

func (m *MockTicketService) Create(ctx context.Context, session *models.Session, req *models.CreateTicketRequest) (*models.Ticket, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketService) ListOwn(ctx context.Context, userID string, filter models.TicketFilter, params models.ListParams) (*models.TicketListResponse, error) {
	args := m.Called(ctx, userID, filter, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketListResponse), args.Error(1)
}

func (m *MockTicketService) List(ctx context.Context, filter models.TicketFilter, params models.ListParams) (*models.TicketListResponse, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketListResponse), args.Error(1)
}

func (m *MockTicketService) Get(ctx context.Context, session *models.Session, id string) (*models.Ticket, error) {
	args := m.Called(ctx, session, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketService) PostMessage(ctx context.Context, session *models.Session, id, body string) (*models.Ticket, error) {
	args := m.Called(ctx, session, id, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketService) Close(ctx context.Context, session *models.Session, id string) (*models.Ticket, error) {
	args := m.Called(ctx, session, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketService) Update(ctx context.Context, id string, req *models.AdminUpdateTicketRequest) (*models.Ticket, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketService) Reply(ctx context.Context, session *models.Session, id, body string) (*models.Ticket, error) {
	args := m.Called(ctx, session, id, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, userID string, unreadOnly bool, params models.ListParams) (*models.NotificationListResponse, error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotificationListResponse), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockBulkEmailService struct {
	mock.Mock
}

// Send reads csvFile eagerly so tests can assert on its contents
func (m *MockBulkEmailService) Send(ctx context.Context, adminID string, req *models.BulkEmailRequest, csvFile io.Reader) (*models.BulkEmailResult, error) {
	var csv string
	if csvFile != nil {
		raw, _ := io.ReadAll(csvFile)
		csv = string(raw)
	}
	args := m.Called(ctx, adminID, req, csv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BulkEmailResult), args.Error(1)
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Get(ctx context.Context, userID string) (*models.MentorApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorApplication), args.Error(1)
}

func (m *MockApplicationService) SaveDraft(ctx context.Context, userID string, req *models.SaveApplicationRequest) (*models.MentorApplication, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorApplication), args.Error(1)
}

func (m *MockApplicationService) Consent(ctx context.Context, userID string, req *models.ConsentRequest, ip string) error {
	args := m.Called(ctx, userID, req, ip)
	return args.Error(0)
}

func (m *MockApplicationService) Submit(ctx context.Context, userID string, req *models.SubmitApplicationRequest, ip string) (*models.MentorApplication, error) {
	args := m.Called(ctx, userID, req, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorApplication), args.Error(1)
}

func (m *MockApplicationService) List(ctx context.Context, status models.ApplicationStatus, params models.ListParams) (*models.MentorApplicationListResponse, error) {
	args := m.Called(ctx, status, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorApplicationListResponse), args.Error(1)
}

func (m *MockApplicationService) GetByID(ctx context.Context, id string) (*models.MentorApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorApplication), args.Error(1)
}

func (m *MockApplicationService) Approve(ctx context.Context, reviewerID, id string) (*models.MentorApplication, error) {
	args := m.Called(ctx, reviewerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorApplication), args.Error(1)
}

func (m *MockApplicationService) Reject(ctx context.Context, reviewerID, id, reason string) (*models.MentorApplication, error) {
	args := m.Called(ctx, reviewerID, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorApplication), args.Error(1)
}

type MockRoleService struct {
	mock.Mock
}

func (m *MockRoleService) ListActive(ctx context.Context) ([]*models.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Role), args.Error(1)
}

func (m *MockRoleService) ListAll(ctx context.Context) ([]*models.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Role), args.Error(1)
}

func (m *MockRoleService) Get(ctx context.Context, id string) (*models.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleService) Create(ctx context.Context, req *models.RoleRequest) (*models.Role, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleService) Update(ctx context.Context, id string, req *models.RoleRequest) (*models.Role, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleService) ReplaceBenchmarks(ctx context.Context, id string, benchmarks []models.Benchmark) (*models.Role, error) {
	args := m.Called(ctx, id, benchmarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserAdminService struct {
	mock.Mock
}

func (m *MockUserAdminService) List(ctx context.Context, filter models.UserFilter, params models.ListParams) (*models.UserListResponse, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserListResponse), args.Error(1)
}

func (m *MockUserAdminService) Get(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserAdminService) Update(ctx context.Context, adminID, id string, req *models.AdminUpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, adminID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserAdminService) Delete(ctx context.Context, adminID, id string) error {
	args := m.Called(ctx, adminID, id)
	return args.Error(0)
}

func (m *MockUserAdminService) Bulk(ctx context.Context, adminID string, req *models.BulkActionRequest) (*models.BulkActionResult, error) {
	args := m.Called(ctx, adminID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BulkActionResult), args.Error(1)
}

type MockReadinessService struct {
	mock.Mock
}

func (m *MockReadinessService) Compute(ctx context.Context, userID, roleID string) (*models.Readiness, error) {
	args := m.Called(ctx, userID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Readiness), args.Error(1)
}

func (m *MockReadinessService) EmailReport(ctx context.Context, userID string) (*models.Readiness, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Readiness), args.Error(1)
}
