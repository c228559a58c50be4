package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/services"
)

// SkillHandler serves the skill catalog and the caller's skill profile
type SkillHandler struct {
	service services.SkillServiceInterface
}

func NewSkillHandler(service services.SkillServiceInterface) *SkillHandler {
	return &SkillHandler{service: service}
}

// ListCatalog handles GET /api/skills. Admins may pass all=true to include
// inactive skills.
func (h *SkillHandler) ListCatalog(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	filter := models.SkillFilter{
		Search:     c.Query("search"),
		Domain:     c.Query("domain"),
		OnlyActive: !(session.IsAdmin() && c.Query("all") == "true"),
	}

	skills, err := h.service.ListSkills(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err, "Failed to list skills")
		return
	}
	respondOK(c, http.StatusOK, skills)
}

// Create handles POST /api/admin/skills
func (h *SkillHandler) Create(c *gin.Context) {
	var req models.SkillRequest
	if !bindJSON(c, &req) {
		return
	}

	skill, err := h.service.CreateSkill(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to create skill")
		return
	}
	respondOK(c, http.StatusCreated, skill)
}

// Update handles PUT /api/admin/skills/:id
func (h *SkillHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.SkillRequest
	if !bindJSON(c, &req) {
		return
	}

	skill, err := h.service.UpdateSkill(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err, "Failed to update skill")
		return
	}
	respondOK(c, http.StatusOK, skill)
}

// Delete handles DELETE /api/admin/skills/:id
func (h *SkillHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSkill(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Failed to delete skill")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id})
}

// ListMine handles GET /api/me/skills
func (h *SkillHandler) ListMine(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	skills, err := h.service.ListUserSkills(c.Request.Context(), session.UserID)
	if err != nil {
		handleServiceError(c, err, "Failed to list skills")
		return
	}
	respondOK(c, http.StatusOK, skills)
}

// AddMine handles POST /api/me/skills
func (h *SkillHandler) AddMine(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.AddUserSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	skill, err := h.service.AddUserSkill(c.Request.Context(), session.UserID, &req)
	if err != nil {
		handleServiceError(c, err, "Failed to add skill")
		return
	}
	respondOK(c, http.StatusCreated, skill)
}

// UpdateMine handles PUT /api/me/skills/:id
func (h *SkillHandler) UpdateMine(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateUserSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	skill, err := h.service.UpdateUserSkill(c.Request.Context(), session.UserID, id, &req)
	if err != nil {
		handleServiceError(c, err, "Failed to update skill")
		return
	}
	respondOK(c, http.StatusOK, skill)
}

// RemoveMine handles DELETE /api/me/skills/:id
func (h *SkillHandler) RemoveMine(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.RemoveUserSkill(c.Request.Context(), session.UserID, id); err != nil {
		handleServiceError(c, err, "Failed to remove skill")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id})
}

// RequestValidation handles POST /api/me/skills/:id/validation
func (h *SkillHandler) RequestValidation(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	skill, err := h.service.RequestValidation(c.Request.Context(), session.UserID, id)
	if err != nil {
		handleServiceError(c, err, "Failed to request validation")
		return
	}
	respondOK(c, http.StatusOK, skill)
}
