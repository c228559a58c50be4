package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/roleready/roleready-api/internal/services"
)

// ReadinessHandler serves readiness scores
type ReadinessHandler struct {
	service services.ReadinessServiceInterface
}

func NewReadinessHandler(service services.ReadinessServiceInterface) *ReadinessHandler {
	return &ReadinessHandler{service: service}
}

// Get handles GET /api/readiness?roleId=. Without roleId the caller's
// target role is used.
func (h *ReadinessHandler) Get(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	roleID := c.Query("roleId")
	if roleID != "" {
		if _, err := uuid.Parse(roleID); err != nil {
			respondErrorWithDetails(c, http.StatusBadRequest, "Invalid query parameter",
				[]ValidationError{{Field: "roleId", Message: "roleId must be a valid id"}}, err)
			return
		}
	}

	readiness, err := h.service.Compute(c.Request.Context(), session.UserID, roleID)
	if err != nil {
		handleServiceError(c, err, "Failed to compute readiness")
		return
	}
	respondOK(c, http.StatusOK, readiness)
}

// EmailReport handles POST /api/readiness/email
func (h *ReadinessHandler) EmailReport(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	readiness, err := h.service.EmailReport(c.Request.Context(), session.UserID)
	if err != nil {
		handleServiceError(c, err, "Failed to send readiness report")
		return
	}
	respondOK(c, http.StatusAccepted, readiness)
}
