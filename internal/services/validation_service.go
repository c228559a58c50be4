package services

import (
	"context"
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

// ErrRejectionNoteTooShort is returned for rejections without a useful note
var ErrRejectionNoteTooShort = apperrors.InvalidInputError("note",
	fmt.Sprintf("must be at least %d characters", models.MinRejectionNoteLength))

// ValidationService is the mentor side of skill validation
type ValidationService struct {
	skills   repository.SkillStore
	notifier *Notifier
}

func NewValidationService(skills repository.SkillStore, notifier *Notifier) *ValidationService {
	return &ValidationService{skills: skills, notifier: notifier}
}

// Queue lists validations. Mentors only ever see items routed to them.
func (s *ValidationService) Queue(ctx context.Context, session *models.Session, filter models.ValidationFilter, params models.ListParams) (*models.ValidationQueueResponse, error) {
	if !session.IsAdmin() {
		filter.ValidatorID = session.UserID
	}

	items, total, err := s.skills.ListQueue(ctx, filter, params)
	if err != nil {
		logger.Error("Failed to list validation queue", zap.String("user_id", session.UserID), zap.Error(err))
		return nil, err
	}

	return &models.ValidationQueueResponse{
		Items:      items,
		Pagination: params.Page.Meta(total),
	}, nil
}

// Stats counts the caller's validations by status
func (s *ValidationService) Stats(ctx context.Context, session *models.Session) (*models.ValidationStats, error) {
	return s.skills.ValidationStats(ctx, session.UserID)
}

// Approve marks a pending validation as validated
func (s *ValidationService) Approve(ctx context.Context, session *models.Session, id, note string) (*models.UserSkill, error) {
	return s.resolve(ctx, session, id, models.ValidationValidated, strings.TrimSpace(note))
}

// Reject marks a pending validation as rejected. The note is required.
func (s *ValidationService) Reject(ctx context.Context, session *models.Session, id, note string) (*models.UserSkill, error) {
	note = strings.TrimSpace(note)
	if utf8.RuneCountInString(note) < models.MinRejectionNoteLength {
		return nil, ErrRejectionNoteTooShort
	}
	return s.resolve(ctx, session, id, models.ValidationRejected, note)
}

func (s *ValidationService) resolve(ctx context.Context, session *models.Session, id string, status models.ValidationStatus, note string) (*models.UserSkill, error) {
	item, err := s.skills.GetQueueItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if !session.IsAdmin() && (item.ValidatorID == nil || *item.ValidatorID != session.UserID) {
		logger.Warn("Mentor tried to resolve a validation routed elsewhere",
			zap.String("mentor_id", session.UserID),
			zap.String("user_skill_id", id))
		return nil, apperrors.AccessDeniedError("validation is assigned to another mentor")
	}

	if !item.ValidationStatus.CanTransitionTo(status) {
		return nil, apperrors.ConflictError("validation already resolved")
	}

	// The update only matches pending rows, so a concurrent resolution that
	// slipped in after the read above still ends up as a conflict
	us, err := s.skills.ResolveValidation(ctx, id, session.UserID, status, note)
	if err != nil {
		return nil, err
	}

	metrics.SkillValidationsResolved.WithLabelValues(string(status)).Inc()
	logger.Info("Skill validation resolved",
		zap.String("user_skill_id", id),
		zap.String("mentor_id", session.UserID),
		zap.String("status", string(status)))

	s.notifyResolved(ctx, session, item, status, note)
	return us, nil
}

func (s *ValidationService) notifyResolved(ctx context.Context, session *models.Session, item *models.ValidationQueueItem, status models.ValidationStatus, note string) {
	to := Recipient{UserID: item.UserID, Name: item.UserName, Email: item.UserEmail}
	meta := map[string]string{
		"skillName":  item.SkillName,
		"mentorName": session.Name,
		"level":      string(item.Level),
		"note":       note,
	}

	if status == models.ValidationValidated {
		s.notifier.Notify(ctx, to, models.NewNotification{
			Type:      models.NotificationSkillValidated,
			Title:     "Skill validated",
			Message:   item.SkillName + " was validated by " + session.Name + ".",
			ActionURL: "/skills",
		}, email.EventSkillValidated, meta)
		return
	}

	s.notifier.Notify(ctx, to, models.NewNotification{
		Type:      models.NotificationSkillRejected,
		Title:     "Skill needs more work",
		Message:   item.SkillName + " was not validated. See your mentor's note.",
		Priority:  models.NotificationHigh,
		ActionURL: "/skills",
	}, email.EventSkillRejected, meta)
}
