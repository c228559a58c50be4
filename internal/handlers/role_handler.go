package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/services"
)

// RoleHandler serves target roles and their benchmarks
type RoleHandler struct {
	service services.RoleServiceInterface
}

func NewRoleHandler(service services.RoleServiceInterface) *RoleHandler {
	return &RoleHandler{service: service}
}

// ListActive handles GET /api/roles
func (h *RoleHandler) ListActive(c *gin.Context) {
	roles, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to list roles")
		return
	}
	respondOK(c, http.StatusOK, roles)
}

// Get handles GET /api/roles/:id
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	role, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Failed to load role")
		return
	}
	respondOK(c, http.StatusOK, role)
}

// ListAll handles GET /api/admin/roles
func (h *RoleHandler) ListAll(c *gin.Context) {
	roles, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to list roles")
		return
	}
	respondOK(c, http.StatusOK, roles)
}

// Create handles POST /api/admin/roles
func (h *RoleHandler) Create(c *gin.Context) {
	var req models.RoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to create role")
		return
	}
	respondOK(c, http.StatusCreated, role)
}

// Update handles PUT /api/admin/roles/:id
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.RoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err, "Failed to update role")
		return
	}
	respondOK(c, http.StatusOK, role)
}

// ReplaceBenchmarks handles PUT /api/admin/roles/:id/benchmarks
func (h *RoleHandler) ReplaceBenchmarks(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.ReplaceBenchmarksRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.service.ReplaceBenchmarks(c.Request.Context(), id, req.Benchmarks)
	if err != nil {
		handleServiceError(c, err, "Failed to replace benchmarks")
		return
	}
	respondOK(c, http.StatusOK, role)
}

// Delete handles DELETE /api/admin/roles/:id
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Failed to delete role")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id})
}
