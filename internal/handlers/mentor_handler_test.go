package handlers

import (
	"net/http"
	"testing"

	"github.com/roleready/roleready-api/internal/models"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMentorHandler_Assign(t *testing.T) {
	tests := []struct {
		name       string
		mentorID   string
		serviceErr error
		wantStatus int
	}{
		{name: "explicit mentor", mentorID: otherID, wantStatus: http.StatusOK},
		{name: "auto", mentorID: models.AutoAssign, wantStatus: http.StatusOK},
		{name: "garbage id", mentorID: "bob", wantStatus: http.StatusBadRequest},
		{
			name:       "no mentors available",
			mentorID:   models.AutoAssign,
			serviceErr: apperrors.ConflictError("no active mentors available"),
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMentorService)
			handler := NewMentorHandler(mockService)
			router := newRouter(adminSession)
			router.POST("/api/admin/users/:id/mentor", handler.Assign)

			if tt.serviceErr != nil {
				mockService.On("Assign", mock.Anything, userID, tt.mentorID).Return(nil, tt.serviceErr).Once()
			} else {
				mockService.On("Assign", mock.Anything, userID, tt.mentorID).
					Return(&models.User{ID: otherID, Role: models.RoleMentor}, nil).Maybe()
			}

			w := perform(router, http.MethodPost, "/api/admin/users/"+userID+"/mentor", map[string]string{"mentorId": tt.mentorID})

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusBadRequest {
				mockService.AssertNotCalled(t, "Assign")
			}
		})
	}
}

func TestMentorHandler_Students(t *testing.T) {
	mockService := new(MockMentorService)
	handler := NewMentorHandler(mockService)
	router := newRouter(mentorSession)
	router.GET("/api/mentor/students", handler.Students)

	mockService.On("Students", mock.Anything, otherID).
		Return([]*models.User{{ID: userID, Name: "Una"}}, nil).Once()

	w := perform(router, http.MethodGet, "/api/mentor/students", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Una"`)
}
