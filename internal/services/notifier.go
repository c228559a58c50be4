package services

import (
	"context"

	"github.com/roleready/roleready-api/internal/email"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	"github.com/roleready/roleready-api/pkg/logger"
	"go.uber.org/zap"
)

// Recipient identifies who a lifecycle event is about
type Recipient struct {
	UserID string
	Name   string
	Email  string
}

func recipientOf(u *models.User) Recipient {
	return Recipient{UserID: u.ID, Name: u.Name, Email: u.Email}
}

// Notifier fans a lifecycle event out to an in-app notification and an
// email. Failures are logged and never fail the calling operation.
type Notifier struct {
	notifications repository.NotificationStore
	mailer        email.Mailer
}

func NewNotifier(notifications repository.NotificationStore, mailer email.Mailer) *Notifier {
	return &Notifier{notifications: notifications, mailer: mailer}
}

// Notify stores note (when it has a type) and sends event (when set)
func (n *Notifier) Notify(ctx context.Context, to Recipient, note models.NewNotification, event email.Event, meta map[string]string) {
	if note.Type != "" && to.UserID != "" {
		note.UserID = to.UserID
		if _, err := n.notifications.Create(ctx, note); err != nil {
			logger.Error("Failed to create notification",
				zap.String("user_id", to.UserID),
				zap.String("type", note.Type),
				zap.Error(err))
		}
	}

	if event == "" || to.Email == "" {
		return
	}
	if err := n.mailer.Send(to.Email, to.Name, event, meta); err != nil {
		logger.Error("Failed to queue email",
			zap.String("user_id", to.UserID),
			zap.String("event", string(event)),
			zap.Error(err))
	}
}

// Email sends only the email part of an event
func (n *Notifier) Email(to Recipient, event email.Event, meta map[string]string) error {
	return n.mailer.Send(to.Email, to.Name, event, meta)
}
