package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	"github.com/roleready/roleready-api/internal/services"
)

// UserAdminHandler serves the admin user panel
type UserAdminHandler struct {
	service services.UserAdminServiceInterface
}

func NewUserAdminHandler(service services.UserAdminServiceInterface) *UserAdminHandler {
	return &UserAdminHandler{service: service}
}

// List handles GET /api/admin/users
func (h *UserAdminHandler) List(c *gin.Context) {
	params, ok := listParams(c, repository.UserSortColumns)
	if !ok {
		return
	}
	active, ok := boolQuery(c, "active")
	if !ok {
		return
	}

	filter := models.UserFilter{
		Search:   c.Query("search"),
		Role:     models.UserRole(c.Query("role")),
		IsActive: active,
	}
	switch filter.Role {
	case "", models.RoleUser, models.RoleMentor, models.RoleAdmin:
	default:
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid query parameter",
			[]ValidationError{{Field: "role", Message: "role must be one of: user mentor admin"}}, nil)
		return
	}

	resp, err := h.service.List(c.Request.Context(), filter, params)
	if err != nil {
		handleServiceError(c, err, "Failed to list users")
		return
	}
	respondOK(c, http.StatusOK, resp)
}

// Get handles GET /api/admin/users/:id
func (h *UserAdminHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Failed to load user")
		return
	}
	respondOK(c, http.StatusOK, user)
}

// Update handles PUT /api/admin/users/:id
func (h *UserAdminHandler) Update(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.AdminUpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.Update(c.Request.Context(), session.UserID, id, &req)
	if err != nil {
		handleServiceError(c, err, "Failed to update user")
		return
	}
	respondOK(c, http.StatusOK, user)
}

// Delete handles DELETE /api/admin/users/:id
func (h *UserAdminHandler) Delete(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), session.UserID, id); err != nil {
		handleServiceError(c, err, "Failed to delete user")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id})
}

// Bulk handles POST /api/admin/users/bulk
func (h *UserAdminHandler) Bulk(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.BulkActionRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Bulk(c.Request.Context(), session.UserID, &req)
	if err != nil {
		handleServiceError(c, err, "Failed to apply bulk action")
		return
	}
	respondOK(c, http.StatusOK, result)
}
