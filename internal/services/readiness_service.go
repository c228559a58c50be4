package services

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/roleready/roleready-api/internal/email"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"github.com/roleready/roleready-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrNoTargetRole is returned when readiness is requested without a role
var ErrNoTargetRole = apperrors.InvalidInputError("roleId", "no target role selected")

// ReadinessService scores users against target roles
type ReadinessService struct {
	users    repository.UserStore
	skills   repository.SkillStore
	roles    RoleProvider
	notifier *Notifier
}

func NewReadinessService(users repository.UserStore, skills repository.SkillStore, roles RoleProvider, notifier *Notifier) *ReadinessService {
	return &ReadinessService{
		users:    users,
		skills:   skills,
		roles:    roles,
		notifier: notifier,
	}
}

// Compute scores userID against roleID, or the user's target role when
// roleID is empty
func (s *ReadinessService) Compute(ctx context.Context, userID, roleID string) (result *models.Readiness, err error) {
	ctx, span := tracing.StartSpan(ctx, "readiness.compute", attribute.String("user.id", userID))
	defer func() { tracing.EndSpan(span, err) }()

	if roleID == "" {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user.TargetRoleID == nil {
			return nil, ErrNoTargetRole
		}
		roleID = *user.TargetRoleID
	}

	role, err := s.roles.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("role.id", role.ID))

	userSkills, err := s.skills.ListUserSkills(ctx, userID)
	if err != nil {
		logger.Error("Failed to load user skills for readiness", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result = ComputeReadiness(userSkills, role)
	result.UserID = userID

	metrics.ReadinessComputations.Observe(float64(result.Score))
	span.SetAttributes(attribute.Int("readiness.score", result.Score))
	return result, nil
}

// EmailReport computes readiness against the target role and mails it
func (s *ReadinessService) EmailReport(ctx context.Context, userID string) (*models.Readiness, error) {
	result, err := s.Compute(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.notifier.Email(recipientOf(user), email.EventReadinessUpdate, map[string]string{
		"score":         strconv.Itoa(result.Score),
		"roleName":      result.RoleName,
		"missingSkills": strings.Join(result.MissingSkills, ", "),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Readiness report queued", zap.String("user_id", userID), zap.Int("score", result.Score))
	return result, nil
}

// ComputeReadiness is the pure scoring function. Each benchmark earns
// weight * min(userRank/requiredRank, 1); rejected or missing skills earn 0.
// The score is the rounded percentage of total weight, 0 for a weightless role.
func ComputeReadiness(userSkills []*models.UserSkill, role *models.Role) *models.Readiness {
	bySkill := make(map[string]*models.UserSkill, len(userSkills))
	for _, us := range userSkills {
		bySkill[us.SkillID] = us
	}

	result := &models.Readiness{
		RoleID:         role.ID,
		RoleName:       role.Name,
		AllRequiredMet: true,
		MissingSkills:  []string{},
		Breakdown:      make([]models.BenchmarkReadiness, 0, len(role.Benchmarks)),
	}

	var earned float64
	total := 0
	for _, b := range role.Benchmarks {
		item := models.BenchmarkReadiness{
			SkillID:       b.SkillID,
			SkillName:     b.SkillName,
			Importance:    b.Importance,
			Weight:        b.Weight,
			RequiredLevel: b.RequiredLevel,
		}

		if us, ok := bySkill[b.SkillID]; ok {
			item.UserLevel = us.Level
			item.Status = us.ValidationStatus
			if us.ValidationStatus != models.ValidationRejected {
				item.Credit = float64(b.Weight) * levelRatio(us.Level, b.RequiredLevel)
				item.Met = us.Level.Rank() >= b.RequiredLevel.Rank()
			}
		}

		if !item.Met && b.Importance == models.ImportanceRequired {
			result.AllRequiredMet = false
			result.MissingSkills = append(result.MissingSkills, b.SkillName)
		}

		earned += item.Credit
		total += b.Weight
		result.Breakdown = append(result.Breakdown, item)
	}

	if total > 0 {
		result.Score = int(math.Round(100 * earned / float64(total)))
	}
	return result
}

func levelRatio(have, need models.SkillLevel) float64 {
	if need.Rank() == 0 {
		return 1
	}
	return math.Min(float64(have.Rank())/float64(need.Rank()), 1)
}
