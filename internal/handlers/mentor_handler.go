package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/services"
)

// MentorHandler serves mentor workload and assignment
type MentorHandler struct {
	service services.MentorServiceInterface
}

func NewMentorHandler(service services.MentorServiceInterface) *MentorHandler {
	return &MentorHandler{service: service}
}

// Workloads handles GET /api/admin/mentors/workload
func (h *MentorHandler) Workloads(c *gin.Context) {
	workloads, err := h.service.Workloads(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to load mentor workloads")
		return
	}
	respondOK(c, http.StatusOK, workloads)
}

// Assign handles POST /api/admin/users/:id/mentor. mentorId "auto" picks
// the least loaded mentor.
func (h *MentorHandler) Assign(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.AssignMentorRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.MentorID != models.AutoAssign {
		if _, err := uuid.Parse(req.MentorID); err != nil {
			respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed",
				[]ValidationError{{Field: "mentorId", Message: `mentorId must be a valid id or "auto"`}}, err)
			return
		}
	}

	mentor, err := h.service.Assign(c.Request.Context(), userID, req.MentorID)
	if err != nil {
		handleServiceError(c, err, "Failed to assign mentor")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"userId": userID, "mentor": mentor})
}

// Students handles GET /api/mentor/students
func (h *MentorHandler) Students(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	students, err := h.service.Students(c.Request.Context(), session.UserID)
	if err != nil {
		handleServiceError(c, err, "Failed to load students")
		return
	}
	respondOK(c, http.StatusOK, students)
}
