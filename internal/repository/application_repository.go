package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/roleready/roleready-api/internal/models"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"go.uber.org/zap"
)

// ApplicationRepository handles mentor applications and consent records
type ApplicationRepository struct {
	db TxBeginner
}

func NewApplicationRepository(db TxBeginner) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationFrom = ` FROM mentor_applications a JOIN users u ON u.id = a.user_id `

func (r *ApplicationRepository) GetByUser(ctx context.Context, userID string) (*models.MentorApplication, error) {
	start := time.Now()
	a, err := models.ScanMentorApplication(r.db.QueryRow(ctx,
		`SELECT `+models.MentorApplicationColumns+applicationFrom+`WHERE a.user_id = $1`, userID))
	observe("getApplicationByUser", start, err)
	return a, mapError(err, "mentor application")
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*models.MentorApplication, error) {
	start := time.Now()
	a, err := models.ScanMentorApplication(r.db.QueryRow(ctx,
		`SELECT `+models.MentorApplicationColumns+applicationFrom+`WHERE a.id = $1`, id))
	observe("getApplication", start, err)
	return a, mapError(err, "mentor application")
}

// List pages applications, optionally by status, oldest submission first
func (r *ApplicationRepository) List(ctx context.Context, status models.ApplicationStatus, params models.ListParams) ([]*models.MentorApplication, int, error) {
	start := time.Now()

	var fb filterBuilder
	if status != "" {
		fb.add(`a.status = ?`, status)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+applicationFrom+fb.where(), fb.args...).Scan(&total); err != nil {
		observe("listApplications", start, err)
		return nil, 0, err
	}

	query := `SELECT ` + models.MentorApplicationColumns + applicationFrom + fb.where() +
		` ORDER BY a.submitted_at ASC NULLS LAST, a.updated_at DESC` +
		` LIMIT ` + fb.arg(params.Page.Limit) + ` OFFSET ` + fb.arg(params.Page.Offset())

	rows, err := r.db.Query(ctx, query, fb.args...)
	if err != nil {
		observe("listApplications", start, err)
		return nil, 0, err
	}
	apps, err := models.ScanMentorApplications(rows)
	observe("listApplications", start, err)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// SaveDraft upserts the sections while the application is still editable
func (r *ApplicationRepository) SaveDraft(ctx context.Context, userID string, sections models.ApplicationSections) (*models.MentorApplication, error) {
	start := time.Now()
	var app *models.MentorApplication
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := saveDraft(ctx, tx, userID, sections); err != nil {
			return err
		}
		var err error
		app, err = getByUser(ctx, tx, userID)
		return err
	})
	observe("saveApplicationDraft", start, err, zap.String("user_id", userID))
	if err != nil {
		return nil, mapError(err, "mentor application")
	}
	return app, nil
}

// RecordConsent stores consent idempotently per version
func (r *ApplicationRepository) RecordConsent(ctx context.Context, userID, version, ip string) error {
	start := time.Now()
	err := recordConsent(ctx, r.db, userID, version, ip)
	observe("recordMentorConsent", start, err)
	return mapError(err, "mentor consent")
}

// Submit records consent, saves the sections and moves the application to
// submitted in one transaction. Nothing is persisted if any step fails.
func (r *ApplicationRepository) Submit(ctx context.Context, userID string, sections models.ApplicationSections, consentVersion, ip string) (*models.MentorApplication, error) {
	start := time.Now()
	var app *models.MentorApplication

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := recordConsent(ctx, tx, userID, consentVersion, ip); err != nil {
			return err
		}
		if err := saveDraft(ctx, tx, userID, sections); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE mentor_applications
			SET status = 'submitted', submitted_at = NOW(), rejection_reason = '',
			    reviewed_at = NULL, reviewed_by = NULL, updated_at = NOW()
			WHERE user_id = $1 AND status IN ('draft', 'rejected')`, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ConflictError("application is not editable")
		}

		app, err = getByUser(ctx, tx, userID)
		return err
	})
	observe("submitApplication", start, err, zap.String("user_id", userID))
	if err != nil {
		return nil, mapError(err, "mentor application")
	}
	return app, nil
}

// Review approves or rejects a submitted application. Approval promotes the
// applicant to mentor in the same transaction.
func (r *ApplicationRepository) Review(ctx context.Context, id, reviewerID string, status models.ApplicationStatus, reason string) (*models.MentorApplication, error) {
	start := time.Now()
	var app *models.MentorApplication

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var userID string
		err := tx.QueryRow(ctx, `
			UPDATE mentor_applications
			SET status = $2, rejection_reason = $3, reviewed_at = NOW(), reviewed_by = $4, updated_at = NOW()
			WHERE id = $1 AND status = 'submitted'
			RETURNING user_id`, id, status, reason, reviewerID).Scan(&userID)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ConflictError("application is not awaiting review")
		}
		if err != nil {
			return err
		}

		if status == models.ApplicationApproved {
			if _, err := tx.Exec(ctx,
				`UPDATE users SET role = 'mentor', updated_at = NOW() WHERE id = $1 AND role = 'user'`, userID); err != nil {
				return err
			}
		}

		app, err = getByUser(ctx, tx, userID)
		return err
	})
	observe("reviewApplication", start, err, zap.String("application_id", id), zap.String("status", string(status)))
	if err != nil {
		return nil, mapError(err, "mentor application")
	}
	return app, nil
}

// saveDraft fails with a conflict when the application is submitted or approved
func saveDraft(ctx context.Context, q Querier, userID string, sections models.ApplicationSections) error {
	tag, err := q.Exec(ctx, `
		INSERT INTO mentor_applications (user_id, sections)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET sections = EXCLUDED.sections, updated_at = NOW()
		WHERE mentor_applications.status IN ('draft', 'rejected')`, userID, sections)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ConflictError("application is not editable")
	}
	return nil
}

func recordConsent(ctx context.Context, q Querier, userID, version, ip string) error {
	_, err := q.Exec(ctx, `
		INSERT INTO mentor_consents (user_id, consent_version, ip_address)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, consent_version) DO NOTHING`, userID, version, ip)
	return err
}

func getByUser(ctx context.Context, q Querier, userID string) (*models.MentorApplication, error) {
	return models.ScanMentorApplication(q.QueryRow(ctx,
		`SELECT `+models.MentorApplicationColumns+applicationFrom+`WHERE a.user_id = $1`, userID))
}
