package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// ListingKind separates jobs from internships in the shared listings table
type ListingKind string

const (
	KindJob        ListingKind = "job"
	KindInternship ListingKind = "internship"
)

func (k ListingKind) IsValid() bool {
	return k == KindJob || k == KindInternship
}

type ListingStatus string

const (
	ListingDraft  ListingStatus = "draft"
	ListingActive ListingStatus = "active"
)

// Listing is a job or internship posting
type Listing struct {
	ID             string        `json:"id"`
	Kind           ListingKind   `json:"kind"`
	Slug           string        `json:"slug"`
	Title          string        `json:"title"`
	Company        string        `json:"company"`
	Location       string        `json:"location"`
	WorkMode       string        `json:"workMode"`
	EmploymentType string        `json:"employmentType"`
	Category       string        `json:"category"`
	Description    string        `json:"description"`
	Skills         []string      `json:"skills"`
	Compensation   string        `json:"compensation"`
	DurationWeeks  *int          `json:"durationWeeks"`
	ApplyURL       string        `json:"applyUrl"`
	Deadline       *time.Time    `json:"deadline"`
	Status         ListingStatus `json:"status"`
	IsActive       bool          `json:"isActive"`
	IsFeatured     bool          `json:"isFeatured"`
	CreatedBy      *string       `json:"createdBy"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// ListingColumns is the select list matching ScanListing
const ListingColumns = `id, kind, slug, title, company, location, work_mode, employment_type, category,
	description, skills, compensation, duration_weeks, apply_url, deadline, status, is_featured,
	created_by, created_at, updated_at`

// ScanListing scans one row selected with ListingColumns
func ScanListing(row pgx.Row) (*Listing, error) {
	var l Listing
	err := row.Scan(
		&l.ID,
		&l.Kind,
		&l.Slug,
		&l.Title,
		&l.Company,
		&l.Location,
		&l.WorkMode,
		&l.EmploymentType,
		&l.Category,
		&l.Description,
		&l.Skills,
		&l.Compensation,
		&l.DurationWeeks,
		&l.ApplyURL,
		&l.Deadline,
		&l.Status,
		&l.IsFeatured,
		&l.CreatedBy,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.IsActive = l.Status == ListingActive
	if l.Skills == nil {
		l.Skills = []string{}
	}
	return &l, nil
}

func ScanListings(rows pgx.Rows) ([]*Listing, error) {
	defer rows.Close()

	listings := []*Listing{}
	for rows.Next() {
		l, err := ScanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

// ListingFilter narrows listing queries
type ListingFilter struct {
	Kind       ListingKind
	Status     ListingStatus
	IsFeatured *bool
	Category   string
	Search     string
	// FeaturedFirst orders featured listings ahead of the chosen sort
	FeaturedFirst bool
}

// ListingRequest is the create/update payload
type ListingRequest struct {
	Title          string     `json:"title" binding:"required,min=2,max=200"`
	Company        string     `json:"company" binding:"required,max=200"`
	Location       string     `json:"location" binding:"max=200"`
	WorkMode       string     `json:"workMode" binding:"omitempty,oneof=onsite remote hybrid"`
	EmploymentType string     `json:"employmentType" binding:"max=50"`
	Category       string     `json:"category" binding:"max=100"`
	Description    string     `json:"description" binding:"max=20000"`
	Skills         []string   `json:"skills" binding:"max=50,dive,max=100"`
	Compensation   string     `json:"compensation" binding:"max=200"`
	DurationWeeks  *int       `json:"durationWeeks" binding:"omitempty,min=1,max=104"`
	ApplyURL       string     `json:"applyUrl" binding:"omitempty,url,max=2000"`
	Deadline       *time.Time `json:"deadline"`
	IsActive       bool       `json:"isActive"`
	IsFeatured     bool       `json:"isFeatured"`
}

// ListingListResponse is a page of listings
type ListingListResponse struct {
	Listings   []*Listing     `json:"listings"`
	Pagination PaginationMeta `json:"pagination"`
}
