package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/roleready/roleready-api/internal/email"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"go.uber.org/zap"
)

var (
	ErrMotivationTooShort = apperrors.InvalidInputError("sections.intent.motivation",
		fmt.Sprintf("must be at least %d characters", models.MinMotivationLength))
	ErrTermsNotAccepted = apperrors.InvalidInputError("acceptTerms", "the mentor agreement must be accepted")
)

// ApplicationService handles the mentor application lifecycle
type ApplicationService struct {
	applications repository.ApplicationStore
	users        repository.UserStore
	notifier     *Notifier
}

func NewApplicationService(applications repository.ApplicationStore, users repository.UserStore, notifier *Notifier) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		users:        users,
		notifier:     notifier,
	}
}

// Get returns the caller's application, or an unsaved empty draft
func (s *ApplicationService) Get(ctx context.Context, userID string) (*models.MentorApplication, error) {
	app, err := s.applications.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &models.MentorApplication{UserID: userID, Status: models.ApplicationDraft}, nil
		}
		return nil, err
	}
	return app, nil
}

// SaveDraft stores the sections while the application is editable
func (s *ApplicationService) SaveDraft(ctx context.Context, userID string, req *models.SaveApplicationRequest) (*models.MentorApplication, error) {
	app, err := s.applications.SaveDraft(ctx, userID, req.Sections)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to save application draft", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, err
	}
	return app, nil
}

// Consent records acceptance of the mentor agreement. Repeats are no-ops.
func (s *ApplicationService) Consent(ctx context.Context, userID string, req *models.ConsentRequest, ip string) error {
	if !req.AcceptTerms {
		return ErrTermsNotAccepted
	}
	return s.applications.RecordConsent(ctx, userID, consentVersion(req.ConsentVersion), ip)
}

// Submit records consent, saves the sections and submits in one transaction
func (s *ApplicationService) Submit(ctx context.Context, userID string, req *models.SubmitApplicationRequest, ip string) (*models.MentorApplication, error) {
	if !req.AcceptTerms {
		return nil, ErrTermsNotAccepted
	}
	if err := CheckMotivation(req.Sections.Intent.Motivation); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleUser {
		return nil, apperrors.ConflictError("account already has mentor access")
	}

	app, err := s.applications.Submit(ctx, userID, req.Sections, consentVersion(req.ConsentVersion), ip)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to submit mentor application", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	metrics.MentorApplicationTransitions.WithLabelValues(string(models.ApplicationSubmitted)).Inc()
	logger.Info("Mentor application submitted", zap.String("user_id", userID), zap.String("application_id", app.ID))

	s.notifier.Notify(ctx, recipientOf(user), models.NewNotification{
		Type:      models.NotificationApplicationSubmitted,
		Title:     "Application received",
		Message:   "Your mentor application is under review.",
		ActionURL: "/mentor/apply",
	}, email.EventMentorApplicationSubmitted, nil)

	return app, nil
}

// CheckMotivation enforces the minimum motivation length on submit
func CheckMotivation(motivation string) error {
	if utf8.RuneCountInString(strings.TrimSpace(motivation)) < models.MinMotivationLength {
		return ErrMotivationTooShort
	}
	return nil
}

func (s *ApplicationService) List(ctx context.Context, status models.ApplicationStatus, params models.ListParams) (*models.MentorApplicationListResponse, error) {
	apps, total, err := s.applications.List(ctx, status, params)
	if err != nil {
		logger.Error("Failed to list mentor applications", zap.Error(err))
		return nil, err
	}
	return &models.MentorApplicationListResponse{
		Applications: apps,
		Pagination:   params.Page.Meta(total),
	}, nil
}

func (s *ApplicationService) GetByID(ctx context.Context, id string) (*models.MentorApplication, error) {
	return s.applications.GetByID(ctx, id)
}

// Approve grants the applicant the mentor role
func (s *ApplicationService) Approve(ctx context.Context, reviewerID, id string) (*models.MentorApplication, error) {
	return s.review(ctx, reviewerID, id, models.ApplicationApproved, "")
}

// Reject returns the application to the applicant with a reason
func (s *ApplicationService) Reject(ctx context.Context, reviewerID, id, reason string) (*models.MentorApplication, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.InvalidInputError("reason", "is required")
	}
	return s.review(ctx, reviewerID, id, models.ApplicationRejected, reason)
}

func (s *ApplicationService) review(ctx context.Context, reviewerID, id string, status models.ApplicationStatus, reason string) (*models.MentorApplication, error) {
	current, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, apperrors.ConflictError("application is not awaiting review")
	}

	app, err := s.applications.Review(ctx, id, reviewerID, status, reason)
	if err != nil {
		return nil, err
	}

	metrics.MentorApplicationTransitions.WithLabelValues(string(status)).Inc()
	logger.Info("Mentor application reviewed",
		zap.String("application_id", id),
		zap.String("reviewer_id", reviewerID),
		zap.String("status", string(status)))

	to := Recipient{UserID: app.UserID, Name: app.UserName, Email: app.UserEmail}
	if status == models.ApplicationApproved {
		s.notifier.Notify(ctx, to, models.NewNotification{
			Type:      models.NotificationApplicationApproved,
			Title:     "You are now a mentor",
			Message:   "Your mentor application was approved.",
			Priority:  models.NotificationHigh,
			ActionURL: "/mentor/validations",
		}, email.EventMentorApplicationApproved, nil)
	} else {
		s.notifier.Notify(ctx, to, models.NewNotification{
			Type:      models.NotificationApplicationRejected,
			Title:     "Application not approved",
			Message:   reason,
			ActionURL: "/mentor/apply",
		}, email.EventMentorApplicationRejected, map[string]string{"reason": reason})
	}

	return app, nil
}

func consentVersion(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return models.CurrentConsentVersion
	}
	return v
}
