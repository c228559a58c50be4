package services

import (
	"context"

	"github.com/roleready/roleready-api/internal/email"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/logger"
	"go.uber.org/zap"
)

var ErrSelfAction = apperrors.AccessDeniedError("admins cannot deactivate, demote or delete themselves")

// UserAdminService is the admin user panel
type UserAdminService struct {
	users    repository.UserStore
	mentors  *MentorService
	notifier *Notifier
}

func NewUserAdminService(users repository.UserStore, mentors *MentorService, notifier *Notifier) *UserAdminService {
	return &UserAdminService{users: users, mentors: mentors, notifier: notifier}
}

func (s *UserAdminService) List(ctx context.Context, filter models.UserFilter, params models.ListParams) (*models.UserListResponse, error) {
	users, total, err := s.users.List(ctx, filter, params)
	if err != nil {
		logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}
	return &models.UserListResponse{
		Users:      users,
		Pagination: params.Page.Meta(total),
	}, nil
}

func (s *UserAdminService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update edits a user. An admin cannot lock themselves out. A new mentorId
// must name an active mentor and goes through the regular assignment, so the
// student is notified; an empty mentorId clears the assignment.
func (s *UserAdminService) Update(ctx context.Context, adminID, id string, req *models.AdminUpdateUserRequest) (*models.User, error) {
	if id == adminID {
		if req.IsActive != nil && !*req.IsActive {
			return nil, ErrSelfAction
		}
		if req.Role != nil && *req.Role != models.RoleAdmin {
			return nil, ErrSelfAction
		}
	}

	var mentor *models.User
	if req.MentorID != nil && *req.MentorID != "" {
		var err error
		if mentor, err = s.mentors.activeMentor(ctx, id, *req.MentorID); err != nil {
			return nil, err
		}
	}

	before, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	after := *before
	if req.Role != nil {
		after.Role = *req.Role
	}
	if req.IsActive != nil {
		after.IsActive = *req.IsActive
	}
	if before.CanMentor() && !after.CanMentor() {
		if err := s.mentors.ReleaseQueue(ctx, id); err != nil {
			return nil, err
		}
	}

	update := req
	if mentor != nil {
		fields := *req
		fields.MentorID = nil
		update = &fields
	}
	user, err := s.users.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	if mentor != nil && (before.MentorID == nil || *before.MentorID != mentor.ID) {
		if err := s.mentors.assign(ctx, user, mentor, "manual"); err != nil {
			return nil, err
		}
		user.MentorID = &mentor.ID
	}

	logger.Info("User updated by admin", zap.String("admin_id", adminID), zap.String("user_id", id))
	if before.IsActive && !user.IsActive {
		s.notifier.Notify(ctx, recipientOf(user), models.NewNotification{}, email.EventAccountDeactivated, nil)
	}
	return user, nil
}

func (s *UserAdminService) Delete(ctx context.Context, adminID, id string) error {
	if id == adminID {
		return ErrSelfAction
	}
	if err := s.delete(ctx, id); err != nil {
		return err
	}
	logger.Info("User deleted by admin", zap.String("admin_id", adminID), zap.String("user_id", id))
	return nil
}

// Bulk applies one action to each selected user independently. Rows that
// target the calling admin fail without touching the others.
func (s *UserAdminService) Bulk(ctx context.Context, adminID string, req *models.BulkActionRequest) (*models.BulkActionResult, error) {
	return runBulk(ctx, "users", req, models.UserBulkActions, func(ctx context.Context, id string) error {
		if id == adminID && req.Action != models.BulkActivate && req.Action != models.BulkPromote {
			return ErrSelfAction
		}

		switch req.Action {
		case models.BulkActivate:
			return s.users.SetActive(ctx, id, true)
		case models.BulkDeactivate:
			return s.deactivate(ctx, id)
		case models.BulkPromote:
			return s.changeRole(ctx, id, models.RoleMentor)
		case models.BulkDemote:
			return s.changeRole(ctx, id, models.RoleUser)
		default:
			return s.delete(ctx, id)
		}
	})
}

func (s *UserAdminService) deactivate(ctx context.Context, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.CanMentor() {
		if err := s.mentors.ReleaseQueue(ctx, id); err != nil {
			return err
		}
	}
	if err := s.users.SetActive(ctx, id, false); err != nil {
		return err
	}
	if user.IsActive {
		s.notifier.Notify(ctx, recipientOf(user), models.NewNotification{}, email.EventAccountDeactivated, nil)
	}
	return nil
}

// changeRole moves users between user and mentor. Admin accounts are only
// changed through Update.
func (s *UserAdminService) changeRole(ctx context.Context, id string, role models.UserRole) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return apperrors.ConflictError("admin accounts cannot be promoted or demoted in bulk")
	}
	if user.Role == role {
		return nil
	}
	if user.Role == models.RoleMentor {
		if err := s.mentors.ReleaseQueue(ctx, id); err != nil {
			return err
		}
	}
	return s.users.SetRole(ctx, id, role)
}

// delete removes a user. A mentor's pending validations are released first
// since the foreign key would leave them without a validator.
func (s *UserAdminService) delete(ctx context.Context, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleMentor {
		if err := s.mentors.ReleaseQueue(ctx, id); err != nil {
			return err
		}
	}
	return s.users.Delete(ctx, id)
}
