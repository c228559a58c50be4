package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/storage"
	"go.uber.org/zap"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so errcheck is suppressed here.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends the error envelope and attaches err to the gin context
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondErrorWithDetails sends the error envelope with a details field
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"success": false, "error": message, "details": details})
}

var errorStatuses = []struct {
	target error
	status int
}{
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrAccessDenied, http.StatusForbidden},
	{apperrors.ErrInvalidInput, http.StatusBadRequest},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrConflict, http.StatusConflict},
	{storage.ErrStorageDisabled, http.StatusServiceUnavailable},
}

// handleServiceError maps a service error to a status and envelope. Domain
// errors carry a message safe to show; anything else becomes fallback.
func handleServiceError(c *gin.Context, err error, fallback string) {
	for _, e := range errorStatuses {
		if !errors.Is(err, e.target) {
			continue
		}
		message := publicMessage(err, e.target)
		if e.target == apperrors.ErrInvalidInput {
			if field, reason, ok := strings.Cut(message, ": "); ok {
				respondErrorWithDetails(c, e.status, "Validation failed",
					[]ValidationError{{Field: field, Message: reason}}, err)
				return
			}
		}
		respondError(c, e.status, message, err)
		return
	}

	logger.Error(fallback, zap.String("path", c.FullPath()), zap.Error(err))
	respondError(c, http.StatusInternalServerError, fallback, err)
}

// publicMessage strips the ": <sentinel>" suffix added by the pkg/errors
// constructors. "skill not found" is kept whole.
func publicMessage(err, sentinel error) string {
	msg := err.Error()
	if trimmed, ok := strings.CutSuffix(msg, ": "+sentinel.Error()); ok && trimmed != "" {
		return trimmed
	}
	return msg
}
