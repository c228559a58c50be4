package repository

import (
	"context"

	"github.com/roleready/roleready-api/internal/models"
)

// UserStore defines account, profile and mentor assignment persistence
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string, role models.UserRole) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail matches case-insensitively
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter, params models.ListParams) ([]*models.User, int, error)
	Update(ctx context.Context, id string, req *models.AdminUpdateUserRequest) (*models.User, error)
	UpdateProfile(ctx context.Context, id, name string, profile models.Profile) (*models.User, error)
	SetAvatar(ctx context.Context, id, avatarURL string) error
	SetTargetRole(ctx context.Context, id string, roleID *string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetRole(ctx context.Context, id string, role models.UserRole) error
	SetMentor(ctx context.Context, userID, mentorID string) error
	// AccountStatus returns the current role and activation of a user
	AccountStatus(ctx context.Context, id string) (models.UserRole, bool, error)
	Delete(ctx context.Context, id string) error
	ListStudents(ctx context.Context, mentorID string) ([]*models.User, error)
	// MentorWorkloads returns every active mentor with current load counters
	MentorWorkloads(ctx context.Context) ([]models.MentorWorkload, error)
}

// SkillStore defines the skill catalog, user skills and the validation queue
type SkillStore interface {
	ListSkills(ctx context.Context, filter models.SkillFilter) ([]*models.Skill, error)
	GetSkill(ctx context.Context, id string) (*models.Skill, error)
	CreateSkill(ctx context.Context, req *models.SkillRequest) (*models.Skill, error)
	UpdateSkill(ctx context.Context, id string, req *models.SkillRequest) (*models.Skill, error)
	DeleteSkill(ctx context.Context, id string) error

	ListUserSkills(ctx context.Context, userID string) ([]*models.UserSkill, error)
	GetUserSkill(ctx context.Context, id string) (*models.UserSkill, error)
	UpsertUserSkill(ctx context.Context, userID, skillID string, level models.SkillLevel, source models.SkillSource) (*models.UserSkill, error)
	DeleteUserSkill(ctx context.Context, userID, id string) error

	// RequestValidation moves a skill to pending; a conflict means it was not eligible
	RequestValidation(ctx context.Context, id, validatorID string) (*models.UserSkill, error)
	// ResolveValidation succeeds only while the item is pending
	ResolveValidation(ctx context.Context, id, resolverID string, status models.ValidationStatus, note string) (*models.UserSkill, error)
	// ReleaseValidations sends a validator's pending items back to none
	ReleaseValidations(ctx context.Context, validatorID string) ([]*models.UserSkill, error)
	GetQueueItem(ctx context.Context, id string) (*models.ValidationQueueItem, error)
	ListQueue(ctx context.Context, filter models.ValidationFilter, params models.ListParams) ([]*models.ValidationQueueItem, int, error)
	ValidationStats(ctx context.Context, validatorID string) (*models.ValidationStats, error)
}

// RoleStore defines target roles with benchmarks
type RoleStore interface {
	List(ctx context.Context, onlyActive bool) ([]*models.Role, error)
	GetByID(ctx context.Context, id string) (*models.Role, error)
	Create(ctx context.Context, req *models.RoleRequest) (*models.Role, error)
	Update(ctx context.Context, id string, req *models.RoleRequest) (*models.Role, error)
	ReplaceBenchmarks(ctx context.Context, id string, benchmarks []models.Benchmark) (*models.Role, error)
	Delete(ctx context.Context, id string) error
}

// ListingStore defines job and internship persistence
type ListingStore interface {
	List(ctx context.Context, filter models.ListingFilter, params models.ListParams) ([]*models.Listing, int, error)
	GetByID(ctx context.Context, kind models.ListingKind, id string) (*models.Listing, error)
	GetActiveBySlug(ctx context.Context, kind models.ListingKind, slug string) (*models.Listing, error)
	Create(ctx context.Context, kind models.ListingKind, slug string, req *models.ListingRequest, createdBy string) (*models.Listing, error)
	Update(ctx context.Context, kind models.ListingKind, id string, req *models.ListingRequest) (*models.Listing, error)
	SetStatus(ctx context.Context, kind models.ListingKind, id string, status models.ListingStatus) error
	SetFeatured(ctx context.Context, kind models.ListingKind, id string, featured bool) error
	Delete(ctx context.Context, kind models.ListingKind, id string) error
}

// ApplicationStore defines mentor applications and consent
type ApplicationStore interface {
	GetByUser(ctx context.Context, userID string) (*models.MentorApplication, error)
	GetByID(ctx context.Context, id string) (*models.MentorApplication, error)
	List(ctx context.Context, status models.ApplicationStatus, params models.ListParams) ([]*models.MentorApplication, int, error)
	SaveDraft(ctx context.Context, userID string, sections models.ApplicationSections) (*models.MentorApplication, error)
	RecordConsent(ctx context.Context, userID, version, ip string) error
	Submit(ctx context.Context, userID string, sections models.ApplicationSections, consentVersion, ip string) (*models.MentorApplication, error)
	Review(ctx context.Context, id, reviewerID string, status models.ApplicationStatus, reason string) (*models.MentorApplication, error)
}

// TicketStore defines support tickets
type TicketStore interface {
	Create(ctx context.Context, userID string, req *models.CreateTicketRequest) (*models.Ticket, error)
	List(ctx context.Context, filter models.TicketFilter, params models.ListParams) ([]*models.Ticket, int, error)
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	AddMessage(ctx context.Context, ticketID, authorID string, authorRole models.UserRole, body string, newStatus *models.TicketStatus) (*models.Ticket, error)
	Update(ctx context.Context, id string, req *models.AdminUpdateTicketRequest) (*models.Ticket, error)
}

// NotificationStore defines per-user notifications
type NotificationStore interface {
	Create(ctx context.Context, n models.NewNotification) (*models.Notification, error)
	List(ctx context.Context, userID string, unreadOnly bool, params models.ListParams) ([]*models.Notification, int, int, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}

var (
	_ UserStore         = (*UserRepository)(nil)
	_ SkillStore        = (*SkillRepository)(nil)
	_ RoleStore         = (*RoleRepository)(nil)
	_ ListingStore      = (*ListingRepository)(nil)
	_ ApplicationStore  = (*ApplicationRepository)(nil)
	_ TicketStore       = (*TicketRepository)(nil)
	_ NotificationStore = (*NotificationRepository)(nil)
)
