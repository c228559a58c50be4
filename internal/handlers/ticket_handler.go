package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	"github.com/roleready/roleready-api/internal/services"
)

type TicketHandler struct {
	service services.TicketServiceInterface
}

func NewTicketHandler(service services.TicketServiceInterface) *TicketHandler {
	return &TicketHandler{service: service}
}

func ticketFilter(c *gin.Context) (models.TicketFilter, bool) {
	filter := models.TicketFilter{
		Status:   models.TicketStatus(c.Query("status")),
		Priority: models.TicketPriority(c.Query("priority")),
		Search:   c.Query("search"),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid query parameter",
			[]ValidationError{{Field: "status", Message: "status must be one of: open in_progress waiting_user resolved closed"}}, nil)
		return filter, false
	}
	switch filter.Priority {
	case "", models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid query parameter",
			[]ValidationError{{Field: "priority", Message: "priority must be one of: low medium high"}}, nil)
		return filter, false
	}
	return filter, true
}

// Create handles POST /api/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.CreateTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.service.Create(c.Request.Context(), session, &req)
	if err != nil {
		handleServiceError(c, err, "Failed to create ticket")
		return
	}
	respondOK(c, http.StatusCreated, ticket)
}

// ListOwn handles GET /api/tickets
func (h *TicketHandler) ListOwn(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	filter, ok := ticketFilter(c)
	if !ok {
		return
	}
	params, ok := listParams(c, repository.TicketSortColumns)
	if !ok {
		return
	}

	resp, err := h.service.ListOwn(c.Request.Context(), session.UserID, filter, params)
	if err != nil {
		handleServiceError(c, err, "Failed to list tickets")
		return
	}
	respondOK(c, http.StatusOK, resp)
}

// Get handles GET /api/tickets/:id and /api/admin/tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ticket, err := h.service.Get(c.Request.Context(), session, id)
	if err != nil {
		handleServiceError(c, err, "Failed to load ticket")
		return
	}
	respondOK(c, http.StatusOK, ticket)
}

// PostMessage handles POST /api/tickets/:id/messages
func (h *TicketHandler) PostMessage(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.TicketMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.service.PostMessage(c.Request.Context(), session, id, req.Body)
	if err != nil {
		handleServiceError(c, err, "Failed to post message")
		return
	}
	respondOK(c, http.StatusCreated, ticket)
}

// Close handles POST /api/tickets/:id/close
func (h *TicketHandler) Close(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ticket, err := h.service.Close(c.Request.Context(), session, id)
	if err != nil {
		handleServiceError(c, err, "Failed to close ticket")
		return
	}
	respondOK(c, http.StatusOK, ticket)
}

// List handles GET /api/admin/tickets
func (h *TicketHandler) List(c *gin.Context) {
	filter, ok := ticketFilter(c)
	if !ok {
		return
	}
	params, ok := listParams(c, repository.TicketSortColumns)
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), filter, params)
	if err != nil {
		handleServiceError(c, err, "Failed to list tickets")
		return
	}
	respondOK(c, http.StatusOK, resp)
}

// Update handles PUT /api/admin/tickets/:id
func (h *TicketHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.AdminUpdateTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err, "Failed to update ticket")
		return
	}
	respondOK(c, http.StatusOK, ticket)
}

// Reply handles POST /api/admin/tickets/:id/messages
func (h *TicketHandler) Reply(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.TicketMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.service.Reply(c.Request.Context(), session, id, req.Body)
	if err != nil {
		handleServiceError(c, err, "Failed to post reply")
		return
	}
	respondOK(c, http.StatusCreated, ticket)
}
