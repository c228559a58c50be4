package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/roleready/roleready-api/internal/models"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"go.uber.org/zap"
)

// SkillRepository handles the skill catalog, user skills and the mentor
// validation queue.
type SkillRepository struct {
	db Querier
}

func NewSkillRepository(db Querier) *SkillRepository {
	return &SkillRepository{db: db}
}

const skillColumns = `id, name, domain, category, description, is_active, created_at, updated_at`

func scanSkill(row interface{ Scan(...any) error }) (*models.Skill, error) {
	var s models.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Domain, &s.Category, &s.Description, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSkills returns catalog skills ordered by domain and name
func (r *SkillRepository) ListSkills(ctx context.Context, filter models.SkillFilter) ([]*models.Skill, error) {
	start := time.Now()

	var fb filterBuilder
	if filter.Search != "" {
		fb.add(`lower(name) LIKE ?`, likePattern(filter.Search))
	}
	if filter.Domain != "" {
		fb.add(`domain = ?`, filter.Domain)
	}
	if filter.OnlyActive {
		fb.addRaw(`is_active`)
	}

	rows, err := r.db.Query(ctx, `SELECT `+skillColumns+` FROM skills `+fb.where()+` ORDER BY domain, lower(name)`, fb.args...)
	if err != nil {
		observe("listSkills", start, err)
		return nil, err
	}
	defer rows.Close()

	skills := []*models.Skill{}
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			observe("listSkills", start, err)
			return nil, err
		}
		skills = append(skills, s)
	}
	err = rows.Err()
	observe("listSkills", start, err)
	return skills, err
}

func (r *SkillRepository) GetSkill(ctx context.Context, id string) (*models.Skill, error) {
	start := time.Now()
	s, err := scanSkill(r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
	observe("getSkill", start, err)
	return s, mapError(err, "skill")
}

func (r *SkillRepository) CreateSkill(ctx context.Context, req *models.SkillRequest) (*models.Skill, error) {
	start := time.Now()
	active := req.IsActive == nil || *req.IsActive
	query := `
		INSERT INTO skills (name, domain, category, description, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + skillColumns

	s, err := scanSkill(r.db.QueryRow(ctx, query,
		strings.TrimSpace(req.Name), req.Domain, req.Category, req.Description, active))
	observe("createSkill", start, err)
	return s, mapError(err, "skill")
}

func (r *SkillRepository) UpdateSkill(ctx context.Context, id string, req *models.SkillRequest) (*models.Skill, error) {
	start := time.Now()
	query := `
		UPDATE skills
		SET name = $2, domain = $3, category = $4, description = $5,
		    is_active = COALESCE($6, is_active), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + skillColumns

	s, err := scanSkill(r.db.QueryRow(ctx, query,
		id, strings.TrimSpace(req.Name), req.Domain, req.Category, req.Description, req.IsActive))
	observe("updateSkill", start, err)
	return s, mapError(err, "skill")
}

func (r *SkillRepository) DeleteSkill(ctx context.Context, id string) error {
	return execOne(ctx, r.db, "deleteSkill", "skill", `DELETE FROM skills WHERE id = $1`, id)
}

// ListUserSkills returns all skills on a user's profile
func (r *SkillRepository) ListUserSkills(ctx context.Context, userID string) ([]*models.UserSkill, error) {
	start := time.Now()
	query := `SELECT ` + models.UserSkillColumns + `
		FROM user_skills us JOIN skills s ON s.id = us.skill_id
		WHERE us.user_id = $1
		ORDER BY s.domain, lower(s.name)`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		observe("listUserSkills", start, err)
		return nil, err
	}
	skills, err := models.ScanUserSkills(rows)
	observe("listUserSkills", start, err, zap.String("user_id", userID))
	return skills, err
}

func (r *SkillRepository) GetUserSkill(ctx context.Context, id string) (*models.UserSkill, error) {
	start := time.Now()
	query := `SELECT ` + models.UserSkillColumns + `
		FROM user_skills us JOIN skills s ON s.id = us.skill_id
		WHERE us.id = $1`

	us, err := models.ScanUserSkill(r.db.QueryRow(ctx, query, id))
	observe("getUserSkill", start, err)
	return us, mapError(err, "user skill")
}

// UpsertUserSkill adds a skill to the profile or updates its level. A level
// change drops any earlier validation since it no longer matches the claim.
func (r *SkillRepository) UpsertUserSkill(ctx context.Context, userID, skillID string, level models.SkillLevel, source models.SkillSource) (*models.UserSkill, error) {
	start := time.Now()
	query := `
		WITH up AS (
			INSERT INTO user_skills (user_id, skill_id, level, source)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, skill_id) DO UPDATE
			SET source = EXCLUDED.source,
			    validation_status = CASE WHEN user_skills.level <> EXCLUDED.level
			                             THEN 'none' ELSE user_skills.validation_status END,
			    validator_id = CASE WHEN user_skills.level <> EXCLUDED.level
			                        THEN NULL ELSE user_skills.validator_id END,
			    level = EXCLUDED.level,
			    updated_at = NOW()
			RETURNING *
		)
		SELECT ` + strings.ReplaceAll(models.UserSkillColumns, "us.", "up.") + `
		FROM up JOIN skills s ON s.id = up.skill_id`

	us, err := models.ScanUserSkill(r.db.QueryRow(ctx, query, userID, skillID, level, source))
	observe("upsertUserSkill", start, err, zap.String("user_id", userID))
	return us, mapError(err, "user skill")
}

// DeleteUserSkill removes a skill owned by userID
func (r *SkillRepository) DeleteUserSkill(ctx context.Context, userID, id string) error {
	return execOne(ctx, r.db, "deleteUserSkill", "user skill",
		`DELETE FROM user_skills WHERE id = $1 AND user_id = $2`, id, userID)
}

// RequestValidation moves a user skill into the queue of validatorID. Only
// skills in none or rejected state, or pending ones whose validator was
// deleted, move; anything else is a conflict.
func (r *SkillRepository) RequestValidation(ctx context.Context, id, validatorID string) (*models.UserSkill, error) {
	start := time.Now()
	query := `
		WITH up AS (
			UPDATE user_skills
			SET validation_status = 'pending', validator_id = $2, mentor_note = '',
			    requested_at = NOW(), validated_at = NULL, updated_at = NOW()
			WHERE id = $1 AND (validation_status IN ('none', 'rejected')
			      OR (validation_status = 'pending' AND validator_id IS NULL))
			RETURNING *
		)
		SELECT ` + strings.ReplaceAll(models.UserSkillColumns, "us.", "up.") + `
		FROM up JOIN skills s ON s.id = up.skill_id`

	us, err := models.ScanUserSkill(r.db.QueryRow(ctx, query, id, validatorID))
	observe("requestValidation", start, err)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ConflictError("validation already requested or completed")
	}
	return us, mapError(err, "user skill")
}

// ReleaseValidations returns every item pending with validatorID to the
// none state so its owner can request validation again.
func (r *SkillRepository) ReleaseValidations(ctx context.Context, validatorID string) ([]*models.UserSkill, error) {
	start := time.Now()
	query := `
		WITH up AS (
			UPDATE user_skills
			SET validation_status = 'none', validator_id = NULL,
			    requested_at = NULL, updated_at = NOW()
			WHERE validator_id = $1 AND validation_status = 'pending'
			RETURNING *
		)
		SELECT ` + strings.ReplaceAll(models.UserSkillColumns, "us.", "up.") + `
		FROM up JOIN skills s ON s.id = up.skill_id`

	rows, err := r.db.Query(ctx, query, validatorID)
	if err != nil {
		observe("releaseValidations", start, err)
		return nil, err
	}
	released, err := models.ScanUserSkills(rows)
	observe("releaseValidations", start, err, zap.String("validator_id", validatorID))
	return released, err
}

// ResolveValidation sets the terminal status of a pending item. The UPDATE
// only matches pending rows, so a second resolution is a conflict.
func (r *SkillRepository) ResolveValidation(ctx context.Context, id, resolverID string, status models.ValidationStatus, note string) (*models.UserSkill, error) {
	start := time.Now()
	query := `
		WITH up AS (
			UPDATE user_skills
			SET validation_status = $2, validator_id = $3, mentor_note = $4,
			    validated_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND validation_status = 'pending'
			RETURNING *
		)
		SELECT ` + strings.ReplaceAll(models.UserSkillColumns, "us.", "up.") + `
		FROM up JOIN skills s ON s.id = up.skill_id`

	us, err := models.ScanUserSkill(r.db.QueryRow(ctx, query, id, status, resolverID, note))
	observe("resolveValidation", start, err, zap.String("status", string(status)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ConflictError("validation already resolved")
	}
	return us, mapError(err, "user skill")
}

// GetQueueItem returns one user skill with the requesting user's details
func (r *SkillRepository) GetQueueItem(ctx context.Context, id string) (*models.ValidationQueueItem, error) {
	start := time.Now()
	query := `SELECT ` + models.UserSkillColumns + `, u.name, u.email
		FROM user_skills us
		JOIN skills s ON s.id = us.skill_id
		JOIN users u ON u.id = us.user_id
		WHERE us.id = $1`

	item, err := scanQueueItem(r.db.QueryRow(ctx, query, id))
	observe("getQueueItem", start, err)
	return item, mapError(err, "validation request")
}

// ListQueue pages through validation items matching filter
func (r *SkillRepository) ListQueue(ctx context.Context, filter models.ValidationFilter, params models.ListParams) ([]*models.ValidationQueueItem, int, error) {
	start := time.Now()

	var fb filterBuilder
	status := filter.Status
	if status == "" {
		status = models.ValidationPending
	}
	fb.add(`us.validation_status = ?`, status)
	if filter.ValidatorID != "" {
		fb.add(`us.validator_id = ?`, filter.ValidatorID)
	}
	if filter.Domain != "" {
		fb.add(`s.domain = ?`, filter.Domain)
	}
	if filter.Level != "" {
		fb.add(`us.level = ?`, filter.Level)
	}
	if filter.Source != "" {
		fb.add(`us.source = ?`, filter.Source)
	}
	if filter.Search != "" {
		fb.add(`(lower(s.name) LIKE ? OR lower(u.name) LIKE ? OR lower(u.email) LIKE ?)`, likePattern(filter.Search))
	}

	from := ` FROM user_skills us
		JOIN skills s ON s.id = us.skill_id
		JOIN users u ON u.id = us.user_id `

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+from+fb.where(), fb.args...).Scan(&total); err != nil {
		observe("listValidationQueue", start, err)
		return nil, 0, err
	}

	query := `SELECT ` + models.UserSkillColumns + `, u.name, u.email` + from + fb.where() +
		` ORDER BY us.requested_at ASC NULLS LAST, us.id` +
		` LIMIT ` + fb.arg(params.Page.Limit) + ` OFFSET ` + fb.arg(params.Page.Offset())

	rows, err := r.db.Query(ctx, query, fb.args...)
	if err != nil {
		observe("listValidationQueue", start, err)
		return nil, 0, err
	}
	defer rows.Close()

	items := []*models.ValidationQueueItem{}
	for rows.Next() {
		item, err := scanQueueItem(rows)
		if err != nil {
			observe("listValidationQueue", start, err)
			return nil, 0, err
		}
		items = append(items, item)
	}
	err = rows.Err()
	observe("listValidationQueue", start, err)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ValidationStats counts a validator's items by status
func (r *SkillRepository) ValidationStats(ctx context.Context, validatorID string) (*models.ValidationStats, error) {
	start := time.Now()
	query := `
		SELECT
			COUNT(*) FILTER (WHERE validation_status = 'pending'),
			COUNT(*) FILTER (WHERE validation_status = 'validated'),
			COUNT(*) FILTER (WHERE validation_status = 'rejected')
		FROM user_skills
		WHERE validator_id = $1
	`

	var stats models.ValidationStats
	err := r.db.QueryRow(ctx, query, validatorID).Scan(&stats.Pending, &stats.Validated, &stats.Rejected)
	observe("validationStats", start, err)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanQueueItem(row interface{ Scan(...any) error }) (*models.ValidationQueueItem, error) {
	var item models.ValidationQueueItem
	us := &item.UserSkill
	err := row.Scan(
		&us.ID,
		&us.UserID,
		&us.SkillID,
		&us.SkillName,
		&us.Domain,
		&us.Category,
		&us.Level,
		&us.Source,
		&us.ValidationStatus,
		&us.ValidatorID,
		&us.MentorNote,
		&us.RequestedAt,
		&us.ValidatedAt,
		&us.CreatedAt,
		&us.UpdatedAt,
		&item.UserName,
		&item.UserEmail,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
