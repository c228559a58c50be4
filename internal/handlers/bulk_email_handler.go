package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/services"
)

type BulkEmailHandler struct {
	service services.BulkEmailServiceInterface
}

func NewBulkEmailHandler(service services.BulkEmailServiceInterface) *BulkEmailHandler {
	return &BulkEmailHandler{service: service}
}

// Send handles POST /api/admin/emails/bulk. Accepts JSON, or a multipart
// form with the same fields and an optional "file" CSV of addresses.
func (h *BulkEmailHandler) Send(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.BulkEmailRequest
	var csvFile io.Reader

	if strings.HasPrefix(c.ContentType(), binding.MIMEMultipartPOSTForm) {
		if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(c, http.StatusRequestEntityTooLarge, "Request body too large", err)
				return
			}
			if details := ParseValidationErrors(err); len(details) > 0 {
				respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", details, err)
				return
			}
			respondError(c, http.StatusBadRequest, "Invalid form data", err)
			return
		}

		fileHeader, err := c.FormFile("file")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			respondError(c, http.StatusBadRequest, "Invalid file upload", err)
			return
		default:
			file, err := fileHeader.Open()
			if err != nil {
				respondError(c, http.StatusBadRequest, "Invalid file upload", err)
				return
			}
			defer file.Close() //nolint:errcheck
			csvFile = file
		}
	} else if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Send(c.Request.Context(), session.UserID, &req, csvFile)
	if err != nil {
		handleServiceError(c, err, "Failed to send emails")
		return
	}
	respondOK(c, http.StatusAccepted, result)
}
