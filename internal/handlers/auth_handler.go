package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/internal/middleware"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/services"
)

// CookieSettings are the session cookie attributes
type CookieSettings struct {
	Domain string
	Secure bool
}

// AuthHandler handles registration, login and the session endpoint
type AuthHandler struct {
	service services.AuthServiceInterface
	cookie  CookieSettings
}

func NewAuthHandler(service services.AuthServiceInterface, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		handleServiceError(c, err, "Failed to register")
		return
	}

	h.setCookie(c, resp.Token)
	respondOK(c, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to log in")
		return
	}

	h.setCookie(c, resp.Token)
	respondOK(c, http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.cookie.Domain, h.cookie.Secure)
	respondOK(c, http.StatusOK, gin.H{"loggedOut": true})
}

// Session handles GET /api/auth/session. The user is reloaded so a
// deactivated account loses access before its token expires.
func (h *AuthHandler) Session(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), session.UserID)
	if err != nil {
		middleware.ClearSessionCookie(c, h.cookie.Domain, h.cookie.Secure)
		handleServiceError(c, err, "Failed to load session")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"user": user, "session": session})
}

func (h *AuthHandler) setCookie(c *gin.Context, token string) {
	ttl := int(h.service.SessionTTL().Seconds())
	middleware.SetSessionCookie(c, token, ttl, h.cookie.Domain, h.cookie.Secure)
}
