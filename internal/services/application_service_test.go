package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/roleready/roleready-api/internal/email"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/services"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validSubmission() *models.SubmitApplicationRequest {
	var sections models.ApplicationSections
	sections.Intent.Motivation = strings.Repeat("I want to help juniors grow. ", 3)
	return &models.SubmitApplicationRequest{Sections: sections, AcceptTerms: true}
}

func TestApplicationService_Get_EmptyDraft(t *testing.T) {
	apps := new(MockApplicationStore)
	service := services.NewApplicationService(apps, new(MockUserStore), quietNotifier())
	ctx := context.Background()

	apps.On("GetByUser", ctx, "u1").Return(nil, apperrors.NotFoundError("mentor application")).Once()

	app, err := service.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationDraft, app.Status)
	assert.Equal(t, "u1", app.UserID)
	assert.Empty(t, app.ID)
}

func TestApplicationService_Submit(t *testing.T) {
	apps := new(MockApplicationStore)
	users := new(MockUserStore)
	notifier, notes, mailer := newTestNotifier()
	service := services.NewApplicationService(apps, users, notifier)
	ctx := context.Background()
	req := validSubmission()

	users.On("GetByID", ctx, "u1").Return(&models.User{ID: "u1", Name: "Una", Email: "una@example.com", Role: models.RoleUser}, nil).Once()
	apps.On("Submit", ctx, "u1", req.Sections, models.CurrentConsentVersion, "10.0.0.1").
		Return(&models.MentorApplication{ID: "a1", UserID: "u1", Status: models.ApplicationSubmitted}, nil).Once()
	notes.On("Create", ctx, mock.MatchedBy(func(n models.NewNotification) bool {
		return n.Type == models.NotificationApplicationSubmitted
	})).Return(&models.Notification{}, nil).Once()
	mailer.On("Send", "una@example.com", "Una", email.EventMentorApplicationSubmitted, map[string]string(nil)).Return(nil).Once()

	app, err := service.Submit(ctx, "u1", req, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationSubmitted, app.Status)

	apps.AssertExpectations(t)
	notes.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestApplicationService_Submit_ShortMotivation(t *testing.T) {
	apps := new(MockApplicationStore)
	service := services.NewApplicationService(apps, new(MockUserStore), quietNotifier())
	req := validSubmission()
	req.Sections.Intent.Motivation = "  " + strings.Repeat("a", models.MinMotivationLength-1) + "        "

	_, err := service.Submit(context.Background(), "u1", req, "")
	assert.ErrorIs(t, err, services.ErrMotivationTooShort)
	apps.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckMotivation(t *testing.T) {
	assert.Error(t, services.CheckMotivation(strings.Repeat("x", 49)))
	assert.NoError(t, services.CheckMotivation(strings.Repeat("x", 50)))
	// Characters, not bytes
	assert.NoError(t, services.CheckMotivation(strings.Repeat("é", 50)))
	assert.Error(t, services.CheckMotivation(strings.Repeat("é", 25)))
}

func TestApplicationService_Submit_RequiresTerms(t *testing.T) {
	service := services.NewApplicationService(new(MockApplicationStore), new(MockUserStore), quietNotifier())
	req := validSubmission()
	req.AcceptTerms = false

	_, err := service.Submit(context.Background(), "u1", req, "")
	assert.ErrorIs(t, err, services.ErrTermsNotAccepted)
}

func TestApplicationService_Submit_NotEditable(t *testing.T) {
	apps := new(MockApplicationStore)
	users := new(MockUserStore)
	notifier, notes, mailer := newTestNotifier()
	service := services.NewApplicationService(apps, users, notifier)
	ctx := context.Background()
	req := validSubmission()

	users.On("GetByID", ctx, "u1").Return(&models.User{ID: "u1", Role: models.RoleUser}, nil).Once()
	apps.On("Submit", ctx, "u1", req.Sections, models.CurrentConsentVersion, "").
		Return(nil, apperrors.ConflictError("application is not editable")).Once()

	_, err := service.Submit(ctx, "u1", req, "")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplicationService_Consent(t *testing.T) {
	apps := new(MockApplicationStore)
	service := services.NewApplicationService(apps, new(MockUserStore), quietNotifier())
	ctx := context.Background()

	apps.On("RecordConsent", ctx, "u1", "2025-02", "1.2.3.4").Return(nil).Once()

	err := service.Consent(ctx, "u1", &models.ConsentRequest{ConsentVersion: " 2025-02 ", AcceptTerms: true}, "1.2.3.4")
	require.NoError(t, err)
	apps.AssertExpectations(t)
}

func TestApplicationService_Approve(t *testing.T) {
	apps := new(MockApplicationStore)
	notifier, notes, mailer := newTestNotifier()
	service := services.NewApplicationService(apps, new(MockUserStore), notifier)
	ctx := context.Background()

	apps.On("GetByID", ctx, "a1").Return(&models.MentorApplication{ID: "a1", Status: models.ApplicationSubmitted}, nil).Once()
	apps.On("Review", ctx, "a1", "admin", models.ApplicationApproved, "").Return(&models.MentorApplication{
		ID: "a1", UserID: "u1", Status: models.ApplicationApproved, UserName: "Una", UserEmail: "una@example.com",
	}, nil).Once()
	notes.On("Create", ctx, mock.MatchedBy(func(n models.NewNotification) bool {
		return n.UserID == "u1" && n.Type == models.NotificationApplicationApproved
	})).Return(&models.Notification{}, nil).Once()
	mailer.On("Send", "una@example.com", "Una", email.EventMentorApplicationApproved, map[string]string(nil)).Return(nil).Once()

	app, err := service.Approve(ctx, "admin", "a1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, app.Status)
	mailer.AssertExpectations(t)
}

func TestApplicationService_Review_OnlySubmitted(t *testing.T) {
	apps := new(MockApplicationStore)
	service := services.NewApplicationService(apps, new(MockUserStore), quietNotifier())
	ctx := context.Background()

	for _, status := range []models.ApplicationStatus{models.ApplicationDraft, models.ApplicationApproved, models.ApplicationRejected} {
		apps.On("GetByID", ctx, "a1").Return(&models.MentorApplication{ID: "a1", Status: status}, nil).Once()

		_, err := service.Reject(ctx, "admin", "a1", "Not enough experience yet")
		assert.ErrorIs(t, err, apperrors.ErrConflict, string(status))
	}
	apps.AssertNotCalled(t, "Review", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplicationService_Reject_SendsReason(t *testing.T) {
	apps := new(MockApplicationStore)
	notifier, notes, mailer := newTestNotifier()
	service := services.NewApplicationService(apps, new(MockUserStore), notifier)
	ctx := context.Background()
	reason := "Please add more detail about your experience."

	apps.On("GetByID", ctx, "a1").Return(&models.MentorApplication{ID: "a1", Status: models.ApplicationSubmitted}, nil).Once()
	apps.On("Review", ctx, "a1", "admin", models.ApplicationRejected, reason).Return(&models.MentorApplication{
		ID: "a1", UserID: "u1", UserName: "Una", UserEmail: "una@example.com",
	}, nil).Once()
	notes.On("Create", ctx, mock.MatchedBy(func(n models.NewNotification) bool {
		return n.Type == models.NotificationApplicationRejected && n.Message == reason
	})).Return(&models.Notification{}, nil).Once()
	mailer.On("Send", "una@example.com", "Una", email.EventMentorApplicationRejected, map[string]string{"reason": reason}).
		Return(nil).Once()

	_, err := service.Reject(ctx, "admin", "a1", "  "+reason)
	require.NoError(t, err)
	notes.AssertExpectations(t)
	mailer.AssertExpectations(t)
}
