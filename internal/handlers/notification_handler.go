package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/internal/services"
	"github.com/roleready/roleready-api/pkg/listquery"
)

type NotificationHandler struct {
	service services.NotificationServiceInterface
}

func NewNotificationHandler(service services.NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /api/notifications?unread=true
func (h *NotificationHandler) List(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	unread, ok := boolQuery(c, "unread")
	if !ok {
		return
	}
	params, ok := listParams(c, listquery.Columns{})
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), session.UserID, unread != nil && *unread, params)
	if err != nil {
		handleServiceError(c, err, "Failed to list notifications")
		return
	}
	respondOK(c, http.StatusOK, resp)
}

// MarkRead handles POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), session.UserID, id); err != nil {
		handleServiceError(c, err, "Failed to update notification")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id})
}

// MarkAllRead handles POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	updated, err := h.service.MarkAllRead(c.Request.Context(), session.UserID)
	if err != nil {
		handleServiceError(c, err, "Failed to update notifications")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"updated": updated})
}

// Delete handles DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), session.UserID, id); err != nil {
		handleServiceError(c, err, "Failed to delete notification")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id})
}
