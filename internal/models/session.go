package models

// Session is the authenticated caller, decoded from the session JWT
type Session struct {
	UserID    string   `json:"userId"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Role      UserRole `json:"role"`
	ExpiresAt int64    `json:"exp"`
	IssuedAt  int64    `json:"iat"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

func (s *Session) IsMentor() bool {
	return s != nil && s.Role == RoleMentor
}

// RegisterRequest is the sign-up payload
type RegisterRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=100"`
	Email          string `json:"email" binding:"required,email,max=255"`
	Password       string `json:"password" binding:"required,min=8,max=72"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// LoginRequest is the sign-in payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
	Token   string   `json:"token"`
}
