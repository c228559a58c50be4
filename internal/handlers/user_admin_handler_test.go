package handlers

import (
	"net/http"
	"testing"

	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/services"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserAdminHandler_Update(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		serviceErr error
		wantStatus int
		wantField  string
		wantCalled bool
	}{
		{
			name:       "assign mentor",
			body:       map[string]any{"mentorId": otherID},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "mentor id must be a uuid",
			body:       map[string]any{"mentorId": "bob"},
			wantStatus: http.StatusBadRequest,
			wantField:  "mentorId",
		},
		{
			name:       "mentor is not an active mentor",
			body:       map[string]any{"mentorId": otherID},
			serviceErr: apperrors.InvalidInputError("mentorId", "user is not an active mentor"),
			wantStatus: http.StatusBadRequest,
			wantField:  "mentorId",
			wantCalled: true,
		},
		{
			name:       "unknown role",
			body:       map[string]any{"role": "owner"},
			wantStatus: http.StatusBadRequest,
			wantField:  "role",
		},
		{
			name:       "self deactivation",
			body:       map[string]any{"isActive": false},
			serviceErr: services.ErrSelfAction,
			wantStatus: http.StatusForbidden,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockUserAdminService)
			handler := NewUserAdminHandler(mockService)
			router := newRouter(adminSession)
			router.PUT("/api/admin/users/:id", handler.Update)

			if tt.serviceErr != nil {
				mockService.On("Update", mock.Anything, adminID, userID, mock.Anything).Return(nil, tt.serviceErr).Once()
			} else {
				mentor := otherID
				mockService.On("Update", mock.Anything, adminID, userID, mock.Anything).
					Return(&models.User{ID: userID, Role: models.RoleUser, IsActive: true, MentorID: &mentor}, nil).Maybe()
			}

			w := perform(router, http.MethodPut, "/api/admin/users/"+userID, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantField != "" {
				env := decode(t, w)
				require.NotEmpty(t, env.Details)
				assert.Equal(t, tt.wantField, env.Details[0].Field)
			}
			if tt.wantCalled {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "Update")
			}
		})
	}
}

func TestUserAdminHandler_Update_PassesRequest(t *testing.T) {
	mockService := new(MockUserAdminService)
	handler := NewUserAdminHandler(mockService)
	router := newRouter(adminSession)
	router.PUT("/api/admin/users/:id", handler.Update)

	mockService.On("Update", mock.Anything, adminID, userID, mock.MatchedBy(func(req *models.AdminUpdateUserRequest) bool {
		return req.Role != nil && *req.Role == models.RoleMentor &&
			req.IsActive == nil && req.Name == nil && req.MentorID == nil
	})).Return(&models.User{ID: userID, Role: models.RoleMentor, IsActive: true}, nil).Once()

	w := perform(router, http.MethodPut, "/api/admin/users/"+userID, map[string]any{"role": "mentor"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"mentor"`)
	mockService.AssertExpectations(t)
}

func TestUserAdminHandler_List(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantFilter models.UserFilter
		wantStatus int
		wantField  string
	}{
		{
			name:       "search and role",
			query:      "?search=una&role=mentor",
			wantFilter: models.UserFilter{Search: "una", Role: models.RoleMentor},
			wantStatus: http.StatusOK,
		},
		{name: "unknown role", query: "?role=owner", wantStatus: http.StatusBadRequest, wantField: "role"},
		{name: "bad active flag", query: "?active=maybe", wantStatus: http.StatusBadRequest, wantField: "active"},
		{name: "unknown sort column", query: "?sortBy=passwordHash", wantStatus: http.StatusBadRequest, wantField: "sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockUserAdminService)
			handler := NewUserAdminHandler(mockService)
			router := newRouter(adminSession)
			router.GET("/api/admin/users", handler.List)

			mockService.On("List", mock.Anything, tt.wantFilter, mock.Anything).
				Return(&models.UserListResponse{Users: []*models.User{}}, nil).Maybe()

			w := perform(router, http.MethodGet, "/api/admin/users"+tt.query, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, decode(t, w).Details[0].Field)
				mockService.AssertNotCalled(t, "List")
			} else {
				mockService.AssertCalled(t, "List", mock.Anything, tt.wantFilter, mock.Anything)
			}
		})
	}
}

func TestUserAdminHandler_Delete(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		mockService := new(MockUserAdminService)
		handler := NewUserAdminHandler(mockService)
		router := newRouter(adminSession)
		router.DELETE("/api/admin/users/:id", handler.Delete)

		mockService.On("Delete", mock.Anything, adminID, userID).Return(nil).Once()

		w := perform(router, http.MethodDelete, "/api/admin/users/"+userID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("self", func(t *testing.T) {
		mockService := new(MockUserAdminService)
		handler := NewUserAdminHandler(mockService)
		router := newRouter(adminSession)
		router.DELETE("/api/admin/users/:id", handler.Delete)

		mockService.On("Delete", mock.Anything, adminID, adminID).Return(services.ErrSelfAction).Once()

		w := perform(router, http.MethodDelete, "/api/admin/users/"+adminID, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUserAdminHandler_Bulk(t *testing.T) {
	t.Run("reports per id", func(t *testing.T) {
		mockService := new(MockUserAdminService)
		handler := NewUserAdminHandler(mockService)
		router := newRouter(adminSession)
		router.POST("/api/admin/users/bulk", handler.Bulk)

		result := &models.BulkActionResult{Action: models.BulkDeactivate}
		result.Add(userID, nil)
		result.Add(adminID, services.ErrSelfAction)
		mockService.On("Bulk", mock.Anything, adminID, mock.MatchedBy(func(req *models.BulkActionRequest) bool {
			return req.Action == models.BulkDeactivate && len(req.IDs) == 2
		})).Return(result, nil).Once()

		w := perform(router, http.MethodPost, "/api/admin/users/bulk",
			map[string]any{"action": "deactivate", "ids": []string{userID, adminID}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"succeeded":1`)
		assert.Contains(t, w.Body.String(), `"failed":1`)
	})

	t.Run("ids required", func(t *testing.T) {
		mockService := new(MockUserAdminService)
		handler := NewUserAdminHandler(mockService)
		router := newRouter(adminSession)
		router.POST("/api/admin/users/bulk", handler.Bulk)

		w := perform(router, http.MethodPost, "/api/admin/users/bulk", map[string]any{"action": "deactivate", "ids": []string{}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Bulk")
	})
}
