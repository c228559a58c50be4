package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/internal/models"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/jwt"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "roleready_session"

	// SessionContextKey is the key used to store the session in the gin context
	SessionContextKey = "session"

	sessionErrorKey = "session_error"
)

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// SessionMiddleware decodes the session token from the cookie or an
// Authorization bearer header. Requests without a valid token continue
// anonymously; RequireAuth decides whether that is allowed.
func SessionMiddleware(tokenManager *jwt.TokenManager, cookieDomain string, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := tokenManager.ValidateToken(token)
		if err != nil {
			c.Set(sessionErrorKey, err)
			if fromCookie {
				clearSessionCookie(c, cookieDomain, cookieSecure)
			}
			c.Next()
			return
		}

		session := &models.Session{
			UserID: claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
			Role:   models.UserRole(claims.Role),
		}
		if claims.ExpiresAt != nil {
			session.ExpiresAt = claims.ExpiresAt.Unix()
		}
		if claims.IssuedAt != nil {
			session.IssuedAt = claims.IssuedAt.Unix()
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

func sessionToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token), false
		}
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// RequireAuth rejects requests without a valid session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := GetSession(c); err != nil {
			message := "Unauthorized"
			if v, ok := c.Get(sessionErrorKey); ok {
				if tokenErr, _ := v.(error); errors.Is(tokenErr, jwt.ErrExpiredToken) {
					message = "Session expired"
				}
				_ = c.Error(fmt.Errorf("invalid session token: %v", v)) //nolint:errcheck
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": message})
			return
		}
		c.Next()
	}
}

// AccountStatus reports the stored role and activation of an account
type AccountStatus interface {
	AccountStatus(ctx context.Context, id string) (models.UserRole, bool, error)
}

// RequireActiveAccount checks the session user against the database, so
// deactivation, deletion and role changes apply before the token expires.
// The stored role replaces the one in the token. Use after RequireAuth.
func RequireActiveAccount(accounts AccountStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := GetSession(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		role, active, err := accounts.AccountStatus(c.Request.Context(), session.UserID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrInvalidInput), err == nil && !active:
			_ = c.Error(fmt.Errorf("account %s is missing or deactivated", session.UserID)) //nolint:errcheck
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Account is not active"})
			return
		case err != nil:
			_ = c.Error(fmt.Errorf("failed to load account status: %w", err)) //nolint:errcheck
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to verify session"})
			return
		}

		if role != session.Role {
			refreshed := *session
			refreshed.Role = role
			c.Set(SessionContextKey, &refreshed)
		}
		c.Next()
	}
}

// RequireRole allows only sessions with one of roles. Use after RequireAuth.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := GetSession(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}
		for _, role := range roles {
			if session.Role == role {
				c.Next()
				return
			}
		}
		_ = c.Error(fmt.Errorf("role %s not allowed", session.Role)) //nolint:errcheck
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Forbidden"})
	}
}

// GetSession extracts the session from context
func GetSession(c *gin.Context) (*models.Session, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	session, ok := val.(*models.Session)
	if !ok {
		return nil, ErrInvalidSession
	}

	return session, nil
}

// SetSessionCookie sets the session cookie
func SetSessionCookie(c *gin.Context, token string, ttlSeconds int, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		token,
		ttlSeconds,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie clears the session cookie
func ClearSessionCookie(c *gin.Context, domain string, secure bool) {
	clearSessionCookie(c, domain, secure)
}

func clearSessionCookie(c *gin.Context, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}
