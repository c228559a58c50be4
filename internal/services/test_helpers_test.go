package services_test

import (
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/services"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/stretchr/testify/mock"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

// newTestNotifier returns a notifier whose stores record calls. Tests add
// their own expectations on notes and mailer.
func newTestNotifier() (*services.Notifier, *MockNotificationStore, *MockMailer) {
	notes := new(MockNotificationStore)
	mailer := new(MockMailer)
	return services.NewNotifier(notes, mailer), notes, mailer
}

// quietNotifier accepts any notification or email
func quietNotifier() *services.Notifier {
	n, notes, mailer := newTestNotifier()
	notes.On("Create", mock.Anything, mock.Anything).Return(&models.Notification{}, nil).Maybe()
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return n
}

func strPtr(s string) *string {
	return &s
}
