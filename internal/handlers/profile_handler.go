package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/services"
	"github.com/roleready/roleready-api/pkg/storage"
)

// ProfileHandler serves the caller's own profile
type ProfileHandler struct {
	service services.ProfileServiceInterface
}

func NewProfileHandler(service services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), session.UserID)
	if err != nil {
		handleServiceError(c, err, "Failed to load profile")
		return
	}
	respondOK(c, http.StatusOK, user)
}

// Update handles PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), session.UserID, &req)
	if err != nil {
		handleServiceError(c, err, "Failed to update profile")
		return
	}
	respondOK(c, http.StatusOK, user)
}

// SetTargetRole handles PUT /api/profile/target-role
func (h *ProfileHandler) SetTargetRole(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.UpdateTargetRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.SetTargetRole(c.Request.Context(), session.UserID, req.RoleID)
	if err != nil {
		handleServiceError(c, err, "Failed to set target role")
		return
	}
	respondOK(c, http.StatusOK, user)
}

// UploadAvatar handles POST /api/profile/avatar (multipart field "file")
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed",
			[]ValidationError{{Field: "file", Message: "file is required"}}, err)
		return
	}
	if fileHeader.Size > storage.MaxImageSize {
		respondError(c, http.StatusRequestEntityTooLarge, "Image too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxImageSize+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read file", err)
		return
	}

	url, err := h.service.UploadAvatar(c.Request.Context(), session.UserID, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		handleServiceError(c, err, "Failed to upload avatar")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"avatarUrl": url})
}
