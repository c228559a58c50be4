package services

import (
	"context"
	"io"
	"time"

	"github.com/roleready/roleready-api/internal/models"
)

// AuthServiceInterface defines registration, login and session lookups
type AuthServiceInterface interface {
	Register(ctx context.Context, req *models.RegisterRequest, remoteIP string) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
	SessionTTL() time.Duration
}

// ProfileServiceInterface defines operations on the caller's own profile
type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error)
	SetTargetRole(ctx context.Context, userID string, roleID *string) (*models.User, error)
	UploadAvatar(ctx context.Context, userID string, data []byte, contentType string) (string, error)
}

// SkillServiceInterface defines the skill catalog and the caller's skills
type SkillServiceInterface interface {
	ListSkills(ctx context.Context, filter models.SkillFilter) ([]*models.Skill, error)
	CreateSkill(ctx context.Context, req *models.SkillRequest) (*models.Skill, error)
	UpdateSkill(ctx context.Context, id string, req *models.SkillRequest) (*models.Skill, error)
	DeleteSkill(ctx context.Context, id string) error
	ListUserSkills(ctx context.Context, userID string) ([]*models.UserSkill, error)
	AddUserSkill(ctx context.Context, userID string, req *models.AddUserSkillRequest) (*models.UserSkill, error)
	UpdateUserSkill(ctx context.Context, userID, id string, req *models.UpdateUserSkillRequest) (*models.UserSkill, error)
	RemoveUserSkill(ctx context.Context, userID, id string) error
	RequestValidation(ctx context.Context, userID, id string) (*models.UserSkill, error)
}

// ValidationServiceInterface defines the mentor validation queue
type ValidationServiceInterface interface {
	Queue(ctx context.Context, session *models.Session, filter models.ValidationFilter, params models.ListParams) (*models.ValidationQueueResponse, error)
	Stats(ctx context.Context, session *models.Session) (*models.ValidationStats, error)
	Approve(ctx context.Context, session *models.Session, id, note string) (*models.UserSkill, error)
	Reject(ctx context.Context, session *models.Session, id, note string) (*models.UserSkill, error)
}

// MentorServiceInterface defines mentor workload and assignment
type MentorServiceInterface interface {
	Workloads(ctx context.Context) ([]models.MentorWorkload, error)
	Assign(ctx context.Context, userID, mentorID string) (*models.User, error)
	Students(ctx context.Context, mentorID string) ([]*models.User, error)
}

// ApplicationServiceInterface defines the mentor application workflow
type ApplicationServiceInterface interface {
	Get(ctx context.Context, userID string) (*models.MentorApplication, error)
	SaveDraft(ctx context.Context, userID string, req *models.SaveApplicationRequest) (*models.MentorApplication, error)
	Consent(ctx context.Context, userID string, req *models.ConsentRequest, ip string) error
	Submit(ctx context.Context, userID string, req *models.SubmitApplicationRequest, ip string) (*models.MentorApplication, error)
	List(ctx context.Context, status models.ApplicationStatus, params models.ListParams) (*models.MentorApplicationListResponse, error)
	GetByID(ctx context.Context, id string) (*models.MentorApplication, error)
	Approve(ctx context.Context, reviewerID, id string) (*models.MentorApplication, error)
	Reject(ctx context.Context, reviewerID, id, reason string) (*models.MentorApplication, error)
}

// ReadinessServiceInterface defines readiness scoring
type ReadinessServiceInterface interface {
	Compute(ctx context.Context, userID, roleID string) (*models.Readiness, error)
	EmailReport(ctx context.Context, userID string) (*models.Readiness, error)
}

// RoleServiceInterface defines target role management
type RoleServiceInterface interface {
	ListActive(ctx context.Context) ([]*models.Role, error)
	ListAll(ctx context.Context) ([]*models.Role, error)
	Get(ctx context.Context, id string) (*models.Role, error)
	Create(ctx context.Context, req *models.RoleRequest) (*models.Role, error)
	Update(ctx context.Context, id string, req *models.RoleRequest) (*models.Role, error)
	ReplaceBenchmarks(ctx context.Context, id string, benchmarks []models.Benchmark) (*models.Role, error)
	Delete(ctx context.Context, id string) error
}

// ListingServiceInterface defines job and internship management
type ListingServiceInterface interface {
	List(ctx context.Context, filter models.ListingFilter, params models.ListParams) (*models.ListingListResponse, error)
	ListPublic(ctx context.Context, filter models.ListingFilter, params models.ListParams) (*models.ListingListResponse, error)
	Get(ctx context.Context, kind models.ListingKind, id string) (*models.Listing, error)
	GetPublic(ctx context.Context, kind models.ListingKind, listingSlug string) (*models.Listing, error)
	Create(ctx context.Context, kind models.ListingKind, req *models.ListingRequest, createdBy string) (*models.Listing, error)
	Update(ctx context.Context, kind models.ListingKind, id string, req *models.ListingRequest) (*models.Listing, error)
	Delete(ctx context.Context, kind models.ListingKind, id string) error
	Bulk(ctx context.Context, kind models.ListingKind, req *models.BulkActionRequest) (*models.BulkActionResult, error)
}

// UserAdminServiceInterface defines the admin user panel
type UserAdminServiceInterface interface {
	List(ctx context.Context, filter models.UserFilter, params models.ListParams) (*models.UserListResponse, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, adminID, id string, req *models.AdminUpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, adminID, id string) error
	Bulk(ctx context.Context, adminID string, req *models.BulkActionRequest) (*models.BulkActionResult, error)
}

// TicketServiceInterface defines support tickets
type TicketServiceInterface interface {
	Create(ctx context.Context, session *models.Session, req *models.CreateTicketRequest) (*models.Ticket, error)
	ListOwn(ctx context.Context, userID string, filter models.TicketFilter, params models.ListParams) (*models.TicketListResponse, error)
	List(ctx context.Context, filter models.TicketFilter, params models.ListParams) (*models.TicketListResponse, error)
	Get(ctx context.Context, session *models.Session, id string) (*models.Ticket, error)
	PostMessage(ctx context.Context, session *models.Session, id, body string) (*models.Ticket, error)
	Close(ctx context.Context, session *models.Session, id string) (*models.Ticket, error)
	Update(ctx context.Context, id string, req *models.AdminUpdateTicketRequest) (*models.Ticket, error)
	Reply(ctx context.Context, session *models.Session, id, body string) (*models.Ticket, error)
}

// NotificationServiceInterface defines the caller's notifications
type NotificationServiceInterface interface {
	List(ctx context.Context, userID string, unreadOnly bool, params models.ListParams) (*models.NotificationListResponse, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}

// BulkEmailServiceInterface defines admin announcements
type BulkEmailServiceInterface interface {
	Send(ctx context.Context, adminID string, req *models.BulkEmailRequest, csvFile io.Reader) (*models.BulkEmailResult, error)
}

// Ensure services implement their interfaces
var _ AuthServiceInterface = (*AuthService)(nil)
var _ ProfileServiceInterface = (*ProfileService)(nil)
var _ SkillServiceInterface = (*SkillService)(nil)
var _ ValidationServiceInterface = (*ValidationService)(nil)
var _ MentorServiceInterface = (*MentorService)(nil)
var _ ApplicationServiceInterface = (*ApplicationService)(nil)
var _ ReadinessServiceInterface = (*ReadinessService)(nil)
var _ RoleServiceInterface = (*RoleService)(nil)
var _ ListingServiceInterface = (*ListingService)(nil)
var _ UserAdminServiceInterface = (*UserAdminService)(nil)
var _ TicketServiceInterface = (*TicketService)(nil)
var _ NotificationServiceInterface = (*NotificationService)(nil)
var _ BulkEmailServiceInterface = (*BulkEmailService)(nil)
