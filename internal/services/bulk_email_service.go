package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/roleready/roleready-api/internal/email"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"go.uber.org/zap"
)

// BulkEmailService sends admin announcements to a pasted or uploaded list
type BulkEmailService struct {
	users    repository.UserStore
	notifier *Notifier
}

func NewBulkEmailService(users repository.UserStore, notifier *Notifier) *BulkEmailService {
	return &BulkEmailService{users: users, notifier: notifier}
}

// Send parses the recipients from req and the optional CSV, checks the
// limits and queues one announcement per accepted address. Nothing is sent
// when the list is empty or too long.
func (s *BulkEmailService) Send(ctx context.Context, adminID string, req *models.BulkEmailRequest, csvFile io.Reader) (*models.BulkEmailResult, error) {
	report := email.ParseRecipients(req.Recipients)
	if csvFile != nil {
		fromFile, err := email.ParseRecipientsCSV(csvFile)
		if err != nil {
			return nil, apperrors.InvalidInputError("file", err.Error())
		}
		report = email.MergeRecipients(report, fromFile)
	}

	if err := email.CheckRecipients(report); err != nil {
		logger.Warn("Bulk email rejected",
			zap.String("admin_id", adminID),
			zap.Int("accepted", len(report.Accepted)),
			zap.Int("dropped", len(report.Dropped)),
			zap.Error(err))
		return nil, apperrors.InvalidInputError("recipients", err.Error())
	}

	meta := map[string]string{
		"subject": strings.TrimSpace(req.Subject),
		"message": req.Message,
	}

	queued := 0
	for _, addr := range report.Accepted {
		to, note := s.recipient(ctx, addr, meta["subject"])
		s.notifier.Notify(ctx, to, note, "", nil)
		if err := s.notifier.Email(to, email.EventAnnouncement, meta); err != nil {
			logger.Error("Failed to queue announcement", zap.String("to", addr), zap.Error(err))
			continue
		}
		queued++
	}

	metrics.BulkEmailRecipients.Observe(float64(queued))
	logger.Info("Bulk email queued",
		zap.String("admin_id", adminID),
		zap.Int("queued", queued),
		zap.Int("dropped", len(report.Dropped)),
		zap.Int("duplicates_removed", report.DuplicatesRemoved))

	return &models.BulkEmailResult{
		Queued:            queued,
		Dropped:           report.Dropped,
		DuplicatesRemoved: report.DuplicatesRemoved,
	}, nil
}

// recipient resolves addr to a registered user when there is one, so the
// email is personalised and an in-app notification is stored too
func (s *BulkEmailService) recipient(ctx context.Context, addr, subject string) (Recipient, models.NewNotification) {
	user, err := s.users.GetByEmail(ctx, addr)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Failed to look up announcement recipient", zap.Error(err))
		}
		return Recipient{Email: addr}, models.NewNotification{}
	}

	return recipientOf(user), models.NewNotification{
		Type:    models.NotificationAnnouncement,
		Title:   subject,
		Message: "A new announcement was sent to your email.",
	}
}
