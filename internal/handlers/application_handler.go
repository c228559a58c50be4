package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/services"
	"github.com/roleready/roleready-api/pkg/listquery"
)

// ApplicationHandler serves the mentor application form and its admin review
type ApplicationHandler struct {
	service services.ApplicationServiceInterface
}

func NewApplicationHandler(service services.ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// GetMine handles GET /api/mentor-application
func (h *ApplicationHandler) GetMine(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	app, err := h.service.Get(c.Request.Context(), session.UserID)
	if err != nil {
		handleServiceError(c, err, "Failed to load application")
		return
	}
	respondOK(c, http.StatusOK, app)
}

// SaveDraft handles PUT /api/mentor-application
func (h *ApplicationHandler) SaveDraft(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.SaveApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.service.SaveDraft(c.Request.Context(), session.UserID, &req)
	if err != nil {
		handleServiceError(c, err, "Failed to save application")
		return
	}
	respondOK(c, http.StatusOK, app)
}

// Consent handles POST /api/mentor-application/consent
func (h *ApplicationHandler) Consent(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.ConsentRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.Consent(c.Request.Context(), session.UserID, &req, c.ClientIP()); err != nil {
		handleServiceError(c, err, "Failed to record consent")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"consented": true})
}

// Submit handles POST /api/mentor-application/submit
func (h *ApplicationHandler) Submit(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.SubmitApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.service.Submit(c.Request.Context(), session.UserID, &req, c.ClientIP())
	if err != nil {
		handleServiceError(c, err, "Failed to submit application")
		return
	}
	respondOK(c, http.StatusOK, app)
}

// List handles GET /api/admin/mentor-applications
func (h *ApplicationHandler) List(c *gin.Context) {
	params, ok := listParams(c, listquery.Columns{})
	if !ok {
		return
	}

	status := models.ApplicationStatus(c.Query("status"))
	switch status {
	case "", models.ApplicationSubmitted, models.ApplicationApproved, models.ApplicationRejected, models.ApplicationDraft:
	default:
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid query parameter",
			[]ValidationError{{Field: "status", Message: "status must be one of: draft submitted approved rejected"}}, nil)
		return
	}

	resp, err := h.service.List(c.Request.Context(), status, params)
	if err != nil {
		handleServiceError(c, err, "Failed to list applications")
		return
	}
	respondOK(c, http.StatusOK, resp)
}

// Get handles GET /api/admin/mentor-applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	app, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Failed to load application")
		return
	}
	respondOK(c, http.StatusOK, app)
}

// Approve handles POST /api/admin/mentor-applications/:id/approve
func (h *ApplicationHandler) Approve(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	app, err := h.service.Approve(c.Request.Context(), session.UserID, id)
	if err != nil {
		handleServiceError(c, err, "Failed to approve application")
		return
	}
	respondOK(c, http.StatusOK, app)
}

// Reject handles POST /api/admin/mentor-applications/:id/reject
func (h *ApplicationHandler) Reject(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.RejectApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.service.Reject(c.Request.Context(), session.UserID, id, req.Reason)
	if err != nil {
		handleServiceError(c, err, "Failed to reject application")
		return
	}
	respondOK(c, http.StatusOK, app)
}
