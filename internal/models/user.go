package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// UserRole is the access role of an account
type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleMentor UserRole = "mentor"
	RoleAdmin  UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleMentor || r == RoleAdmin
}

// User is an account row. PasswordHash never leaves the API.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"isActive"`
	MentorID     *string   `json:"mentorId"`
	TargetRoleID *string   `json:"targetRoleId"`
	AvatarURL    string    `json:"avatarUrl"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CanMentor reports whether u can take students and resolve validations
func (u *User) CanMentor() bool {
	return u.Role == RoleMentor && u.IsActive
}

// Profile is the free-form sub-document stored as JSONB on users.profile
type Profile struct {
	Headline   string            `json:"headline,omitempty"`
	Bio        string            `json:"bio,omitempty"`
	Education  []EducationEntry  `json:"education,omitempty"`
	Experience []ExperienceEntry `json:"experience,omitempty"`
	Projects   []ProjectEntry    `json:"projects,omitempty"`
	Links      map[string]string `json:"links,omitempty"`
}

type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartYear   int    `json:"startYear,omitempty"`
	EndYear     int    `json:"endYear,omitempty"`
}

type ExperienceEntry struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

type ProjectEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

// UserColumns is the select list matching ScanUser.
const UserColumns = `id, name, email, password_hash, role, is_active, mentor_id, target_role_id,
	avatar_url, profile, created_at, updated_at`

// ScanUser scans one row selected with UserColumns
func ScanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.MentorID,
		&u.TargetRoleID,
		&u.AvatarURL,
		&u.Profile,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ScanUsers scans all rows and closes them
func ScanUsers(rows pgx.Rows) ([]*User, error) {
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u, err := ScanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// UserFilter narrows the admin user list
type UserFilter struct {
	Search   string
	Role     UserRole
	IsActive *bool
}

// AdminUpdateUserRequest is the admin edit payload. Nil fields are left as is.
type AdminUpdateUserRequest struct {
	Name     *string   `json:"name" binding:"omitempty,min=2,max=100"`
	Role     *UserRole `json:"role" binding:"omitempty,oneof=user mentor admin"`
	IsActive *bool     `json:"isActive"`
	MentorID *string   `json:"mentorId" binding:"omitempty,uuid"`
}

// UserListResponse is a page of users
type UserListResponse struct {
	Users      []*User        `json:"users"`
	Pagination PaginationMeta `json:"pagination"`
}

// UpdateProfileRequest is the profile editor payload
type UpdateProfileRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=100"`
	Profile Profile `json:"profile"`
}
