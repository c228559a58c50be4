package services

import (
	"context"
	"errors"
	"sort"

	"github.com/roleready/roleready-api/internal/email"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"go.uber.org/zap"
)

// ErrNoMentorAvailable is returned when auto-assignment finds no active mentor
var ErrNoMentorAvailable = apperrors.ConflictError("no active mentor is available")

// MentorService handles mentor workloads, student assignment and the
// validation queue of mentors who step down
type MentorService struct {
	users    repository.UserStore
	skills   repository.SkillStore
	notifier *Notifier
}

func NewMentorService(users repository.UserStore, skills repository.SkillStore, notifier *Notifier) *MentorService {
	return &MentorService{users: users, skills: skills, notifier: notifier}
}

// Workloads lists active mentors, least loaded first
func (s *MentorService) Workloads(ctx context.Context) ([]models.MentorWorkload, error) {
	workloads, err := s.users.MentorWorkloads(ctx)
	if err != nil {
		logger.Error("Failed to load mentor workloads", zap.Error(err))
		return nil, err
	}
	sortWorkloads(workloads)
	return workloads, nil
}

// PickMentor returns the mentor with the lowest students+pending total.
// Ties go to fewer students, then to the lower id.
func PickMentor(workloads []models.MentorWorkload) (models.MentorWorkload, bool) {
	if len(workloads) == 0 {
		return models.MentorWorkload{}, false
	}
	sorted := append([]models.MentorWorkload(nil), workloads...)
	sortWorkloads(sorted)
	return sorted[0], true
}

func sortWorkloads(w []models.MentorWorkload) {
	sort.SliceStable(w, func(i, j int) bool {
		if w[i].Total() != w[j].Total() {
			return w[i].Total() < w[j].Total()
		}
		if w[i].Students != w[j].Students {
			return w[i].Students < w[j].Students
		}
		return w[i].MentorID < w[j].MentorID
	})
}

// Assign sets the mentor of userID. mentorID may be models.AutoAssign.
// It returns the assigned mentor.
func (s *MentorService) Assign(ctx context.Context, userID, mentorID string) (*models.User, error) {
	student, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if mentorID == models.AutoAssign {
		return s.autoAssign(ctx, student)
	}

	mentor, err := s.activeMentor(ctx, student.ID, mentorID)
	if err != nil {
		return nil, err
	}

	if err := s.assign(ctx, student, mentor, "manual"); err != nil {
		return nil, err
	}
	return mentor, nil
}

// activeMentor loads mentorID and checks it can take studentID
func (s *MentorService) activeMentor(ctx context.Context, studentID, mentorID string) (*models.User, error) {
	if mentorID == studentID {
		return nil, apperrors.InvalidInputError("mentorId", "a user cannot mentor themselves")
	}
	mentor, err := s.users.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidInputError("mentorId", "mentor not found")
		}
		return nil, err
	}
	if !mentor.CanMentor() {
		return nil, apperrors.InvalidInputError("mentorId", "user is not an active mentor")
	}
	return mentor, nil
}

// autoAssign assigns the least loaded mentor to student
func (s *MentorService) autoAssign(ctx context.Context, student *models.User) (*models.User, error) {
	workloads, err := s.users.MentorWorkloads(ctx)
	if err != nil {
		return nil, err
	}

	candidates := workloads[:0:0]
	for _, w := range workloads {
		if w.MentorID != student.ID {
			candidates = append(candidates, w)
		}
	}

	picked, ok := PickMentor(candidates)
	if !ok {
		logger.Warn("No mentor available for auto-assignment", zap.String("user_id", student.ID))
		return nil, ErrNoMentorAvailable
	}

	mentor, err := s.users.GetByID(ctx, picked.MentorID)
	if err != nil {
		return nil, err
	}
	if err := s.assign(ctx, student, mentor, "auto"); err != nil {
		return nil, err
	}
	return mentor, nil
}

func (s *MentorService) assign(ctx context.Context, student, mentor *models.User, mode string) error {
	if err := s.users.SetMentor(ctx, student.ID, mentor.ID); err != nil {
		logger.Error("Failed to assign mentor",
			zap.String("user_id", student.ID),
			zap.String("mentor_id", mentor.ID),
			zap.Error(err))
		return err
	}

	metrics.MentorAssignments.WithLabelValues(mode).Inc()
	logger.Info("Mentor assigned",
		zap.String("user_id", student.ID),
		zap.String("mentor_id", mentor.ID),
		zap.String("mode", mode))

	s.notifier.Notify(ctx, recipientOf(student), models.NewNotification{
		Type:      models.NotificationMentorAssigned,
		Title:     "You have a mentor",
		Message:   mentor.Name + " is now your mentor.",
		ActionURL: "/dashboard",
	}, email.EventMentorAssigned, map[string]string{
		"mentorName":  mentor.Name,
		"mentorEmail": mentor.Email,
	})

	s.notifier.Notify(ctx, recipientOf(mentor), models.NewNotification{
		Type:      models.NotificationStudentAssigned,
		Title:     "New student assigned",
		Message:   student.Name + " has been assigned to you.",
		ActionURL: "/mentor/students",
	}, "", nil)

	return nil
}

// Students lists the users assigned to mentorID
func (s *MentorService) Students(ctx context.Context, mentorID string) ([]*models.User, error) {
	return s.users.ListStudents(ctx, mentorID)
}

// ReleaseQueue hands the pending validations of a mentor who was demoted,
// deactivated or is about to be deleted back to their owners. Each owner is
// told to request validation again; the next request is routed to an active
// mentor.
func (s *MentorService) ReleaseQueue(ctx context.Context, mentorID string) error {
	released, err := s.skills.ReleaseValidations(ctx, mentorID)
	if err != nil {
		logger.Error("Failed to release validation queue", zap.String("mentor_id", mentorID), zap.Error(err))
		return err
	}
	if len(released) == 0 {
		return nil
	}

	logger.Info("Validation queue released",
		zap.String("mentor_id", mentorID),
		zap.Int("count", len(released)))

	for _, us := range released {
		s.notifier.Notify(ctx, Recipient{UserID: us.UserID}, models.NewNotification{
			Type:      models.NotificationValidationReleased,
			Title:     "Validation request returned",
			Message:   "Your mentor is no longer available. Request validation of " + us.SkillName + " again to reach a new mentor.",
			ActionURL: "/skills",
		}, "", nil)
	}
	return nil
}
