package repository

import (
	"context"
	"time"

	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/pkg/listquery"
	"go.uber.org/zap"
)

// ListingSortColumns whitelists sorting for job and internship tables
var ListingSortColumns = listquery.Columns{
	Default: "createdAt",
	SQL: map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"title":     "lower(title)",
		"company":   "lower(company)",
		"deadline":  "deadline",
		"status":    "status",
	},
}

// ListingRepository handles jobs and internships
type ListingRepository struct {
	db Querier
}

func NewListingRepository(db Querier) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) List(ctx context.Context, filter models.ListingFilter, params models.ListParams) ([]*models.Listing, int, error) {
	start := time.Now()

	var fb filterBuilder
	fb.add(`kind = ?`, filter.Kind)
	if filter.Status != "" {
		fb.add(`status = ?`, filter.Status)
	}
	if filter.IsFeatured != nil {
		fb.add(`is_featured = ?`, *filter.IsFeatured)
	}
	if filter.Category != "" {
		fb.add(`category = ?`, filter.Category)
	}
	if filter.Search != "" {
		fb.add(`(lower(title) LIKE ? OR lower(company) LIKE ? OR lower(location) LIKE ?)`, likePattern(filter.Search))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM listings `+fb.where(), fb.args...).Scan(&total); err != nil {
		observe("listListings", start, err)
		return nil, 0, err
	}

	orderBy := ListingSortColumns.OrderBy(params.Sort)
	if filter.FeaturedFirst {
		orderBy = "is_featured DESC, " + orderBy
	}

	query := `SELECT ` + models.ListingColumns + ` FROM listings ` + fb.where() +
		` ORDER BY ` + orderBy +
		` LIMIT ` + fb.arg(params.Page.Limit) + ` OFFSET ` + fb.arg(params.Page.Offset())

	rows, err := r.db.Query(ctx, query, fb.args...)
	if err != nil {
		observe("listListings", start, err)
		return nil, 0, err
	}
	listings, err := models.ScanListings(rows)
	observe("listListings", start, err, zap.String("kind", string(filter.Kind)))
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// GetByID returns a listing of the given kind
func (r *ListingRepository) GetByID(ctx context.Context, kind models.ListingKind, id string) (*models.Listing, error) {
	start := time.Now()
	query := `SELECT ` + models.ListingColumns + ` FROM listings WHERE id = $1 AND kind = $2`

	l, err := models.ScanListing(r.db.QueryRow(ctx, query, id, kind))
	observe("getListing", start, err)
	return l, mapError(err, string(kind))
}

// GetActiveBySlug is the public lookup; drafts are not visible
func (r *ListingRepository) GetActiveBySlug(ctx context.Context, kind models.ListingKind, slug string) (*models.Listing, error) {
	start := time.Now()
	query := `SELECT ` + models.ListingColumns + ` FROM listings WHERE slug = $1 AND kind = $2 AND status = 'active'`

	l, err := models.ScanListing(r.db.QueryRow(ctx, query, slug, kind))
	observe("getListingBySlug", start, err)
	return l, mapError(err, string(kind))
}

func (r *ListingRepository) Create(ctx context.Context, kind models.ListingKind, slug string, req *models.ListingRequest, createdBy string) (*models.Listing, error) {
	start := time.Now()
	query := `
		INSERT INTO listings (kind, slug, title, company, location, work_mode, employment_type, category,
		                      description, skills, compensation, duration_weeks, apply_url, deadline,
		                      status, is_featured, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + models.ListingColumns

	l, err := models.ScanListing(r.db.QueryRow(ctx, query,
		kind, slug, req.Title, req.Company, req.Location, workModeOrDefault(req.WorkMode),
		req.EmploymentType, req.Category, req.Description, skillsOrEmpty(req.Skills),
		req.Compensation, req.DurationWeeks, req.ApplyURL, req.Deadline,
		statusFor(req.IsActive), req.IsFeatured, nilIfEmpty(createdBy),
	))
	observe("createListing", start, err, zap.String("kind", string(kind)))
	return l, mapError(err, string(kind))
}

func (r *ListingRepository) Update(ctx context.Context, kind models.ListingKind, id string, req *models.ListingRequest) (*models.Listing, error) {
	start := time.Now()
	query := `
		UPDATE listings
		SET title = $3, company = $4, location = $5, work_mode = $6, employment_type = $7,
		    category = $8, description = $9, skills = $10, compensation = $11,
		    duration_weeks = $12, apply_url = $13, deadline = $14, status = $15,
		    is_featured = $16, updated_at = NOW()
		WHERE id = $1 AND kind = $2
		RETURNING ` + models.ListingColumns

	l, err := models.ScanListing(r.db.QueryRow(ctx, query,
		id, kind, req.Title, req.Company, req.Location, workModeOrDefault(req.WorkMode),
		req.EmploymentType, req.Category, req.Description, skillsOrEmpty(req.Skills),
		req.Compensation, req.DurationWeeks, req.ApplyURL, req.Deadline,
		statusFor(req.IsActive), req.IsFeatured,
	))
	observe("updateListing", start, err, zap.String("listing_id", id))
	return l, mapError(err, string(kind))
}

func (r *ListingRepository) SetStatus(ctx context.Context, kind models.ListingKind, id string, status models.ListingStatus) error {
	return execOne(ctx, r.db, "setListingStatus", string(kind),
		`UPDATE listings SET status = $3, updated_at = NOW() WHERE id = $1 AND kind = $2`, id, kind, status)
}

func (r *ListingRepository) SetFeatured(ctx context.Context, kind models.ListingKind, id string, featured bool) error {
	return execOne(ctx, r.db, "setListingFeatured", string(kind),
		`UPDATE listings SET is_featured = $3, updated_at = NOW() WHERE id = $1 AND kind = $2`, id, kind, featured)
}

func (r *ListingRepository) Delete(ctx context.Context, kind models.ListingKind, id string) error {
	return execOne(ctx, r.db, "deleteListing", string(kind),
		`DELETE FROM listings WHERE id = $1 AND kind = $2`, id, kind)
}

func statusFor(active bool) models.ListingStatus {
	if active {
		return models.ListingActive
	}
	return models.ListingDraft
}

func workModeOrDefault(mode string) string {
	if mode == "" {
		return "onsite"
	}
	return mode
}

func skillsOrEmpty(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}
