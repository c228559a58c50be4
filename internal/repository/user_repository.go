package repository

import (
	"context"
	"strings"
	"time"

	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/pkg/listquery"
	"go.uber.org/zap"
)

// UserSortColumns whitelists sorting for the admin user table
var UserSortColumns = listquery.Columns{
	Default: "createdAt",
	SQL: map[string]string{
		"createdAt": "created_at",
		"name":      "lower(name)",
		"email":     "lower(email)",
		"role":      "role",
		"isActive":  "is_active",
	},
}

// UserRepository handles user data access
type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new account. Duplicate emails surface as a conflict.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string, role models.UserRole) (*models.User, error) {
	start := time.Now()
	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + models.UserColumns

	u, err := models.ScanUser(r.db.QueryRow(ctx, query, name, strings.ToLower(email), passwordHash, role))
	observe("createUser", start, err)
	return u, mapError(err, "user")
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	start := time.Now()
	query := `SELECT ` + models.UserColumns + ` FROM users WHERE id = $1`

	u, err := models.ScanUser(r.db.QueryRow(ctx, query, id))
	observe("getUserByID", start, err, zap.String("user_id", id))
	return u, mapError(err, "user")
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	start := time.Now()
	query := `SELECT ` + models.UserColumns + ` FROM users WHERE lower(email) = lower($1)`

	u, err := models.ScanUser(r.db.QueryRow(ctx, query, strings.TrimSpace(email)))
	observe("getUserByEmail", start, err)
	return u, mapError(err, "user")
}

// List returns one page of users and the total match count
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter, params models.ListParams) ([]*models.User, int, error) {
	start := time.Now()

	var fb filterBuilder
	if filter.Search != "" {
		fb.add(`(lower(name) LIKE ? OR lower(email) LIKE ?)`, likePattern(filter.Search))
	}
	if filter.Role != "" {
		fb.add(`role = ?`, filter.Role)
	}
	if filter.IsActive != nil {
		fb.add(`is_active = ?`, *filter.IsActive)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users `+fb.where(), fb.args...).Scan(&total); err != nil {
		observe("listUsers", start, err)
		return nil, 0, err
	}

	query := `SELECT ` + models.UserColumns + ` FROM users ` + fb.where() +
		` ORDER BY ` + UserSortColumns.OrderBy(params.Sort) +
		` LIMIT ` + fb.arg(params.Page.Limit) + ` OFFSET ` + fb.arg(params.Page.Offset())

	rows, err := r.db.Query(ctx, query, fb.args...)
	if err != nil {
		observe("listUsers", start, err)
		return nil, 0, err
	}
	users, err := models.ScanUsers(rows)
	observe("listUsers", start, err)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update applies the non-nil fields of req
func (r *UserRepository) Update(ctx context.Context, id string, req *models.AdminUpdateUserRequest) (*models.User, error) {
	var sb setBuilder
	if req.Name != nil {
		sb.set("name", strings.TrimSpace(*req.Name))
	}
	if req.Role != nil {
		sb.set("role", *req.Role)
	}
	if req.IsActive != nil {
		sb.set("is_active", *req.IsActive)
	}
	if req.MentorID != nil {
		sb.set("mentor_id", nilIfEmpty(*req.MentorID))
	}
	if sb.empty() {
		return r.GetByID(ctx, id)
	}

	start := time.Now()
	query, args := sb.sql("users", id)
	u, err := models.ScanUser(r.db.QueryRow(ctx, query+` RETURNING `+models.UserColumns, args...))
	observe("updateUser", start, err, zap.String("user_id", id))
	return u, mapError(err, "user")
}

// UpdateProfile replaces the name and profile document
func (r *UserRepository) UpdateProfile(ctx context.Context, id, name string, profile models.Profile) (*models.User, error) {
	start := time.Now()
	query := `
		UPDATE users SET name = $2, profile = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + models.UserColumns

	u, err := models.ScanUser(r.db.QueryRow(ctx, query, id, name, profile))
	observe("updateUserProfile", start, err, zap.String("user_id", id))
	return u, mapError(err, "user")
}

func (r *UserRepository) SetAvatar(ctx context.Context, id, avatarURL string) error {
	return execOne(ctx, r.db, "setUserAvatar", "user", `UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1`, id, avatarURL)
}

func (r *UserRepository) SetTargetRole(ctx context.Context, id string, roleID *string) error {
	return execOne(ctx, r.db, "setUserTargetRole", "user", `UPDATE users SET target_role_id = $2, updated_at = NOW() WHERE id = $1`, id, roleID)
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return execOne(ctx, r.db, "setUserActive", "user", `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
}

func (r *UserRepository) SetRole(ctx context.Context, id string, role models.UserRole) error {
	return execOne(ctx, r.db, "setUserRole", "user", `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`, id, role)
}

// SetMentor assigns mentorID to the student userID
func (r *UserRepository) SetMentor(ctx context.Context, userID, mentorID string) error {
	return execOne(ctx, r.db, "setUserMentor", "user", `UPDATE users SET mentor_id = $2, updated_at = NOW() WHERE id = $1`, userID, mentorID)
}

// AccountStatus is the per-request lookup behind session refresh
func (r *UserRepository) AccountStatus(ctx context.Context, id string) (models.UserRole, bool, error) {
	start := time.Now()
	var (
		role   models.UserRole
		active bool
	)
	err := r.db.QueryRow(ctx, `SELECT role, is_active FROM users WHERE id = $1`, id).Scan(&role, &active)
	observe("accountStatus", start, err, zap.String("user_id", id))
	return role, active, mapError(err, "user")
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, "deleteUser", "user", `DELETE FROM users WHERE id = $1`, id)
}

// ListStudents returns the users assigned to a mentor
func (r *UserRepository) ListStudents(ctx context.Context, mentorID string) ([]*models.User, error) {
	start := time.Now()
	query := `SELECT ` + models.UserColumns + ` FROM users WHERE mentor_id = $1 ORDER BY lower(name)`

	rows, err := r.db.Query(ctx, query, mentorID)
	if err != nil {
		observe("listStudents", start, err)
		return nil, err
	}
	users, err := models.ScanUsers(rows)
	observe("listStudents", start, err)
	return users, err
}

// MentorWorkloads returns every active mentor with student and pending
// validation counts.
func (r *UserRepository) MentorWorkloads(ctx context.Context) ([]models.MentorWorkload, error) {
	start := time.Now()
	query := `
		SELECT m.id, m.name, m.email,
		       (SELECT COUNT(*) FROM users s WHERE s.mentor_id = m.id) AS students,
		       (SELECT COUNT(*) FROM user_skills us
		         WHERE us.validator_id = m.id AND us.validation_status = 'pending') AS pending
		FROM users m
		WHERE m.role = 'mentor' AND m.is_active
		ORDER BY m.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		observe("mentorWorkloads", start, err)
		return nil, err
	}
	defer rows.Close()

	workloads := []models.MentorWorkload{}
	for rows.Next() {
		var w models.MentorWorkload
		if err := rows.Scan(&w.MentorID, &w.Name, &w.Email, &w.Students, &w.PendingValidations); err != nil {
			observe("mentorWorkloads", start, err)
			return nil, err
		}
		workloads = append(workloads, w)
	}
	err = rows.Err()
	observe("mentorWorkloads", start, err)
	return workloads, err
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
