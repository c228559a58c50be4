package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/services"
	"github.com/roleready/roleready-api/pkg/listquery"
)

// ValidationHandler serves the mentor skill-validation queue
type ValidationHandler struct {
	service services.ValidationServiceInterface
}

func NewValidationHandler(service services.ValidationServiceInterface) *ValidationHandler {
	return &ValidationHandler{service: service}
}

// Queue handles GET /api/mentor/validations
func (h *ValidationHandler) Queue(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	params, ok := listParams(c, listquery.Columns{})
	if !ok {
		return
	}

	filter := models.ValidationFilter{
		ValidatorID: c.Query("validatorId"),
		Status:      models.ValidationStatus(c.DefaultQuery("status", string(models.ValidationPending))),
		Domain:      c.Query("domain"),
		Level:       models.SkillLevel(c.Query("level")),
		Source:      models.SkillSource(c.Query("source")),
		Search:      c.Query("search"),
	}
	if filter.Level != "" && !filter.Level.IsValid() {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid query parameter",
			[]ValidationError{{Field: "level", Message: "level must be one of: beginner intermediate advanced expert"}}, nil)
		return
	}

	resp, err := h.service.Queue(c.Request.Context(), session, filter, params)
	if err != nil {
		handleServiceError(c, err, "Failed to load validation queue")
		return
	}
	respondOK(c, http.StatusOK, resp)
}

// Stats handles GET /api/mentor/validations/stats
func (h *ValidationHandler) Stats(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), session)
	if err != nil {
		handleServiceError(c, err, "Failed to load validation stats")
		return
	}
	respondOK(c, http.StatusOK, stats)
}

// Approve handles POST /api/mentor/validations/:id/approve
func (h *ValidationHandler) Approve(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.ApproveValidationRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	skill, err := h.service.Approve(c.Request.Context(), session, id, req.Note)
	if err != nil {
		handleServiceError(c, err, "Failed to approve skill")
		return
	}
	respondOK(c, http.StatusOK, skill)
}

// Reject handles POST /api/mentor/validations/:id/reject
func (h *ValidationHandler) Reject(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.RejectValidationRequest
	if !bindJSON(c, &req) {
		return
	}

	skill, err := h.service.Reject(c.Request.Context(), session, id, req.Note)
	if err != nil {
		handleServiceError(c, err, "Failed to reject skill")
		return
	}
	respondOK(c, http.StatusOK, skill)
}
