package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	"github.com/roleready/roleready-api/internal/services"
)

// ListingHandler serves one listing kind. Jobs and internships each get
// their own handler over the same service.
type ListingHandler struct {
	service services.ListingServiceInterface
	kind    models.ListingKind
}

func NewListingHandler(service services.ListingServiceInterface, kind models.ListingKind) *ListingHandler {
	return &ListingHandler{service: service, kind: kind}
}

func (h *ListingHandler) filter(c *gin.Context) (models.ListingFilter, bool) {
	featured, ok := boolQuery(c, "featured")
	if !ok {
		return models.ListingFilter{}, false
	}

	filter := models.ListingFilter{
		Kind:       h.kind,
		Status:     models.ListingStatus(c.Query("status")),
		IsFeatured: featured,
		Category:   c.Query("category"),
		Search:     c.Query("search"),
	}
	switch filter.Status {
	case "", models.ListingActive, models.ListingDraft:
	default:
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid query parameter",
			[]ValidationError{{Field: "status", Message: "status must be one of: draft active"}}, nil)
		return filter, false
	}
	return filter, true
}

// ListPublic handles GET /api/jobs and /api/internships
func (h *ListingHandler) ListPublic(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}
	params, ok := listParams(c, repository.ListingSortColumns)
	if !ok {
		return
	}

	resp, err := h.service.ListPublic(c.Request.Context(), filter, params)
	if err != nil {
		handleServiceError(c, err, "Failed to list "+string(h.kind)+"s")
		return
	}
	respondOK(c, http.StatusOK, resp)
}

// GetPublic handles GET /api/jobs/:slug and /api/internships/:slug
func (h *ListingHandler) GetPublic(c *gin.Context) {
	listing, err := h.service.GetPublic(c.Request.Context(), h.kind, c.Param("slug"))
	if err != nil {
		handleServiceError(c, err, "Failed to load "+string(h.kind))
		return
	}
	respondOK(c, http.StatusOK, listing)
}

// List handles GET /api/admin/jobs and /api/admin/internships
func (h *ListingHandler) List(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}
	params, ok := listParams(c, repository.ListingSortColumns)
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), filter, params)
	if err != nil {
		handleServiceError(c, err, "Failed to list "+string(h.kind)+"s")
		return
	}
	respondOK(c, http.StatusOK, resp)
}

// Get handles GET /api/admin/{jobs,internships}/:id
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	listing, err := h.service.Get(c.Request.Context(), h.kind, id)
	if err != nil {
		handleServiceError(c, err, "Failed to load "+string(h.kind))
		return
	}
	respondOK(c, http.StatusOK, listing)
}

// Create handles POST /api/admin/{jobs,internships}
func (h *ListingHandler) Create(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.ListingRequest
	if !bindJSON(c, &req) {
		return
	}

	listing, err := h.service.Create(c.Request.Context(), h.kind, &req, session.UserID)
	if err != nil {
		handleServiceError(c, err, "Failed to create "+string(h.kind))
		return
	}
	respondOK(c, http.StatusCreated, listing)
}

// Update handles PUT /api/admin/{jobs,internships}/:id
func (h *ListingHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.ListingRequest
	if !bindJSON(c, &req) {
		return
	}

	listing, err := h.service.Update(c.Request.Context(), h.kind, id, &req)
	if err != nil {
		handleServiceError(c, err, "Failed to update "+string(h.kind))
		return
	}
	respondOK(c, http.StatusOK, listing)
}

// Delete handles DELETE /api/admin/{jobs,internships}/:id
func (h *ListingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), h.kind, id); err != nil {
		handleServiceError(c, err, "Failed to delete "+string(h.kind))
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id})
}

// Bulk handles POST /api/admin/{jobs,internships}/bulk
func (h *ListingHandler) Bulk(c *gin.Context) {
	var req models.BulkActionRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Bulk(c.Request.Context(), h.kind, &req)
	if err != nil {
		handleServiceError(c, err, "Failed to apply bulk action")
		return
	}
	respondOK(c, http.StatusOK, result)
}
