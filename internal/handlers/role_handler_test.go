package handlers

import (
	"net/http"
	"testing"

	"github.com/roleready/roleready-api/internal/models"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const roleID = "ad5e6f7a-8b9c-4d4e-8f5a-334455667788"

func TestRoleHandler_ReplaceBenchmarks(t *testing.T) {
	overweight := []models.Benchmark{
		{SkillID: userID, Importance: models.ImportanceRequired, Weight: 60, RequiredLevel: models.LevelAdvanced},
		{SkillID: otherID, Importance: models.ImportanceOptional, Weight: 50, RequiredLevel: models.LevelBeginner},
	}

	tests := []struct {
		name       string
		body       any
		serviceErr error
		wantStatus int
		wantField  string
		wantCalled bool
	}{
		{
			name:       "valid set",
			body:       map[string]any{"benchmarks": overweight[:1]},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "total weight over 100",
			body:       map[string]any{"benchmarks": overweight},
			serviceErr: models.ValidateBenchmarks(overweight),
			wantStatus: http.StatusBadRequest,
			wantField:  "benchmarks",
			wantCalled: true,
		},
		{
			name: "single weight over 100 fails binding",
			body: map[string]any{"benchmarks": []map[string]any{
				{"skillId": userID, "importance": "required", "weight": 150, "requiredLevel": "expert"},
			}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown importance fails binding",
			body: map[string]any{"benchmarks": []map[string]any{
				{"skillId": userID, "importance": "nice", "weight": 10, "requiredLevel": "expert"},
			}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "skill id must be a uuid",
			body: map[string]any{"benchmarks": []map[string]any{
				{"skillId": "go", "importance": "required", "weight": 10, "requiredLevel": "expert"},
			}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown skill",
			body:       map[string]any{"benchmarks": overweight[:1]},
			serviceErr: apperrors.InvalidInputError("benchmarks", "unknown skill"),
			wantStatus: http.StatusBadRequest,
			wantField:  "benchmarks",
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockRoleService)
			handler := NewRoleHandler(mockService)
			router := newRouter(adminSession)
			router.PUT("/api/admin/roles/:id/benchmarks", handler.ReplaceBenchmarks)

			if tt.serviceErr != nil {
				mockService.On("ReplaceBenchmarks", mock.Anything, roleID, mock.Anything).Return(nil, tt.serviceErr).Once()
			} else {
				mockService.On("ReplaceBenchmarks", mock.Anything, roleID, mock.Anything).
					Return(&models.Role{ID: roleID, Name: "Backend Engineer", Benchmarks: overweight[:1]}, nil).Maybe()
			}

			w := perform(router, http.MethodPut, "/api/admin/roles/"+roleID+"/benchmarks", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantField != "" {
				env := decode(t, w)
				require.Len(t, env.Details, 1)
				assert.Equal(t, tt.wantField, env.Details[0].Field)
			}
			if tt.wantCalled {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "ReplaceBenchmarks")
			}
		})
	}
}

func TestRoleHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockService := new(MockRoleService)
		handler := NewRoleHandler(mockService)
		router := newRouter(adminSession)
		router.POST("/api/admin/roles", handler.Create)

		mockService.On("Create", mock.Anything, mock.MatchedBy(func(req *models.RoleRequest) bool {
			return req.Name == "Data Analyst"
		})).Return(&models.Role{ID: roleID, Name: "Data Analyst", IsActive: true}, nil).Once()

		w := perform(router, http.MethodPost, "/api/admin/roles", map[string]any{"name": "Data Analyst", "category": "Data"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Data Analyst"`)
	})

	t.Run("name required", func(t *testing.T) {
		mockService := new(MockRoleService)
		handler := NewRoleHandler(mockService)
		router := newRouter(adminSession)
		router.POST("/api/admin/roles", handler.Create)

		w := perform(router, http.MethodPost, "/api/admin/roles", map[string]any{"category": "Data"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "name", decode(t, w).Details[0].Field)
		mockService.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate name", func(t *testing.T) {
		mockService := new(MockRoleService)
		handler := NewRoleHandler(mockService)
		router := newRouter(adminSession)
		router.POST("/api/admin/roles", handler.Create)

		mockService.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.ConflictError("role name already exists")).Once()

		w := perform(router, http.MethodPost, "/api/admin/roles", map[string]any{"name": "Data Analyst"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRoleHandler_PublicReads(t *testing.T) {
	mockService := new(MockRoleService)
	handler := NewRoleHandler(mockService)
	router := newRouter(nil)
	router.GET("/api/roles", handler.ListActive)
	router.GET("/api/roles/:id", handler.Get)

	mockService.On("ListActive", mock.Anything).
		Return([]*models.Role{{ID: roleID, Name: "Backend Engineer", IsActive: true}}, nil).Once()
	mockService.On("Get", mock.Anything, roleID).Return(nil, apperrors.NotFoundError("role")).Once()

	w := perform(router, http.MethodGet, "/api/roles", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Backend Engineer")

	w = perform(router, http.MethodGet, "/api/roles/"+roleID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "role not found", decode(t, w).Error)
}

func TestRoleHandler_Delete(t *testing.T) {
	mockService := new(MockRoleService)
	handler := NewRoleHandler(mockService)
	router := newRouter(adminSession)
	router.DELETE("/api/admin/roles/:id", handler.Delete)

	mockService.On("Delete", mock.Anything, roleID).Return(nil).Once()

	w := perform(router, http.MethodDelete, "/api/admin/roles/"+roleID, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), roleID)
	mockService.AssertExpectations(t)
}
