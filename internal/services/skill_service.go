package services

import (
	"context"
	"errors"
	"strings"

	"github.com/roleready/roleready-api/internal/email"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"go.uber.org/zap"
)

// SkillService handles the skill catalog, the caller's own skills and
// routing of validation requests to mentors
type SkillService struct {
	skills   repository.SkillStore
	users    repository.UserStore
	mentors  *MentorService
	notifier *Notifier
}

func NewSkillService(skills repository.SkillStore, users repository.UserStore, mentors *MentorService, notifier *Notifier) *SkillService {
	return &SkillService{
		skills:   skills,
		users:    users,
		mentors:  mentors,
		notifier: notifier,
	}
}

func (s *SkillService) ListSkills(ctx context.Context, filter models.SkillFilter) ([]*models.Skill, error) {
	return s.skills.ListSkills(ctx, filter)
}

func (s *SkillService) CreateSkill(ctx context.Context, req *models.SkillRequest) (*models.Skill, error) {
	req.Name = strings.TrimSpace(req.Name)
	skill, err := s.skills.CreateSkill(ctx, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.ConflictError("a skill with this name already exists")
		}
		return nil, err
	}
	logger.Info("Skill created", zap.String("skill_id", skill.ID), zap.String("name", skill.Name))
	return skill, nil
}

func (s *SkillService) UpdateSkill(ctx context.Context, id string, req *models.SkillRequest) (*models.Skill, error) {
	req.Name = strings.TrimSpace(req.Name)
	skill, err := s.skills.UpdateSkill(ctx, id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.ConflictError("a skill with this name already exists")
		}
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) DeleteSkill(ctx context.Context, id string) error {
	if err := s.skills.DeleteSkill(ctx, id); err != nil {
		return err
	}
	logger.Info("Skill deleted", zap.String("skill_id", id))
	return nil
}

func (s *SkillService) ListUserSkills(ctx context.Context, userID string) ([]*models.UserSkill, error) {
	return s.skills.ListUserSkills(ctx, userID)
}

// AddUserSkill adds a catalog skill to the caller or updates its level
func (s *SkillService) AddUserSkill(ctx context.Context, userID string, req *models.AddUserSkillRequest) (*models.UserSkill, error) {
	skill, err := s.skills.GetSkill(ctx, req.SkillID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidInputError("skillId", "skill not found")
		}
		return nil, err
	}
	if !skill.IsActive {
		return nil, apperrors.InvalidInputError("skillId", "skill is not active")
	}

	owned, err := s.skills.ListUserSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, us := range owned {
		if us.SkillID == skill.ID && us.ValidationStatus == models.ValidationPending && us.Level != req.Level {
			return nil, apperrors.ConflictError("skill is awaiting mentor validation")
		}
	}

	return s.skills.UpsertUserSkill(ctx, userID, skill.ID, req.Level, sourceOrDefault(req.Source))
}

// UpdateUserSkill changes the level of one of the caller's skills
func (s *SkillService) UpdateUserSkill(ctx context.Context, userID, id string, req *models.UpdateUserSkillRequest) (*models.UserSkill, error) {
	us, err := s.ownedSkill(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if us.ValidationStatus == models.ValidationPending {
		return nil, apperrors.ConflictError("skill is awaiting mentor validation")
	}

	source := req.Source
	if source == "" {
		source = us.Source
	}
	return s.skills.UpsertUserSkill(ctx, userID, us.SkillID, req.Level, source)
}

func (s *SkillService) RemoveUserSkill(ctx context.Context, userID, id string) error {
	return s.skills.DeleteUserSkill(ctx, userID, id)
}

// RequestValidation sends one of the caller's skills to their mentor. A user
// without a mentor, or whose mentor can no longer mentor, is first assigned
// the least loaded one.
func (s *SkillService) RequestValidation(ctx context.Context, userID, id string) (*models.UserSkill, error) {
	us, err := s.ownedSkill(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	// a pending item without a validator lost its mentor to deletion
	stranded := us.ValidationStatus == models.ValidationPending && us.ValidatorID == nil
	if !us.ValidationStatus.CanRequestValidation() && !stranded {
		return nil, apperrors.ConflictError("validation already requested or completed")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	mentor, routing, err := s.routeTo(ctx, user)
	if err != nil {
		return nil, err
	}

	updated, err := s.skills.RequestValidation(ctx, us.ID, mentor.ID)
	if err != nil {
		return nil, err
	}

	metrics.SkillValidationRequests.WithLabelValues(routing).Inc()
	logger.Info("Skill validation requested",
		zap.String("user_skill_id", us.ID),
		zap.String("user_id", userID),
		zap.String("mentor_id", mentor.ID),
		zap.String("routing", routing))

	s.notifier.Notify(ctx, recipientOf(mentor), models.NewNotification{
		Type:      models.NotificationValidationRequested,
		Title:     "New skill to validate",
		Message:   user.Name + " asked you to validate " + us.SkillName + ".",
		ActionURL: "/mentor/validations",
	}, email.EventSkillValidationRequested, map[string]string{
		"studentName": user.Name,
		"skillName":   us.SkillName,
		"level":       string(us.Level),
	})

	return updated, nil
}

// routeTo picks the mentor for user's next validation request
func (s *SkillService) routeTo(ctx context.Context, user *models.User) (*models.User, string, error) {
	if user.MentorID == nil {
		mentor, err := s.mentors.autoAssign(ctx, user)
		return mentor, "auto", err
	}

	mentor, err := s.users.GetByID(ctx, *user.MentorID)
	switch {
	case err == nil && mentor.CanMentor():
		return mentor, "assigned", nil
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		return nil, "", err
	}

	logger.Info("Assigned mentor unavailable, reassigning",
		zap.String("user_id", user.ID),
		zap.String("mentor_id", *user.MentorID))
	mentor, err = s.mentors.autoAssign(ctx, user)
	return mentor, "reassigned", err
}

// ownedSkill loads a user skill and hides other users' skills as not found
func (s *SkillService) ownedSkill(ctx context.Context, userID, id string) (*models.UserSkill, error) {
	us, err := s.skills.GetUserSkill(ctx, id)
	if err != nil {
		return nil, err
	}
	if us.UserID != userID {
		return nil, apperrors.NotFoundError("user skill")
	}
	return us, nil
}

func sourceOrDefault(source models.SkillSource) models.SkillSource {
	if source == "" {
		return models.SourceSelf
	}
	return source
}
