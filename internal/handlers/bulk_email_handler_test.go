package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roleready/roleready-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBulkEmailHandler_JSON(t *testing.T) {
	mockService := new(MockBulkEmailService)
	handler := NewBulkEmailHandler(mockService)
	router := newRouter(adminSession)
	router.POST("/api/admin/emails/bulk", handler.Send)

	req := &models.BulkEmailRequest{
		Recipients: "a@x.com, a@x.com, not-an-email",
		Subject:    "Spring cohort",
		Message:    "Applications are open.",
	}
	mockService.On("Send", mock.Anything, adminID, req, "").Return(&models.BulkEmailResult{
		Queued:            1,
		Dropped:           []string{"not-an-email"},
		DuplicatesRemoved: 1,
	}, nil).Once()

	w := perform(router, http.MethodPost, "/api/admin/emails/bulk", req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"queued":1,"dropped":["not-an-email"],"duplicatesRemoved":1}`, string(decode(t, w).Data))
	mockService.AssertExpectations(t)
}

func TestBulkEmailHandler_MultipartWithCSV(t *testing.T) {
	mockService := new(MockBulkEmailService)
	handler := NewBulkEmailHandler(mockService)
	router := newRouter(adminSession)
	router.POST("/api/admin/emails/bulk", handler.Send)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("subject", "Spring cohort"))
	require.NoError(t, form.WriteField("message", "Applications are open."))
	require.NoError(t, form.WriteField("recipients", "b@x.com"))
	part, err := form.CreateFormFile("file", "list.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("email\nc@x.com\n"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	mockService.On("Send", mock.Anything, adminID, &models.BulkEmailRequest{
		Recipients: "b@x.com",
		Subject:    "Spring cohort",
		Message:    "Applications are open.",
	}, "email\nc@x.com\n").Return(&models.BulkEmailResult{Queued: 2, Dropped: []string{}}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/emails/bulk", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	mockService.AssertExpectations(t)
}

func TestBulkEmailHandler_MissingSubject(t *testing.T) {
	mockService := new(MockBulkEmailService)
	handler := NewBulkEmailHandler(mockService)
	router := newRouter(adminSession)
	router.POST("/api/admin/emails/bulk", handler.Send)

	w := perform(router, http.MethodPost, "/api/admin/emails/bulk", map[string]string{
		"recipients": "a@x.com",
		"message":    "hi",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "subject", decode(t, w).Details[0].Field)
	mockService.AssertNotCalled(t, "Send")
}
