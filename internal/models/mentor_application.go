package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// MinMotivationLength is the shortest motivation accepted on submit
const MinMotivationLength = 50

// CurrentConsentVersion is the mentor agreement version users accept
const CurrentConsentVersion = "2024-01"

// ApplicationStatus is the mentor application lifecycle state
type ApplicationStatus string

const (
	ApplicationDraft     ApplicationStatus = "draft"
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
)

// IsEditable reports whether the applicant may change and (re)submit
func (s ApplicationStatus) IsEditable() bool {
	return s == ApplicationDraft || s == ApplicationRejected
}

// CanTransitionTo checks an application status change
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	switch s {
	case ApplicationDraft, ApplicationRejected:
		return next == ApplicationSubmitted
	case ApplicationSubmitted:
		return next == ApplicationApproved || next == ApplicationRejected
	default:
		return false
	}
}

// ApplicationSections is the multi-section document stored as JSONB
type ApplicationSections struct {
	ProfessionalIdentity ProfessionalIdentity  `json:"professionalIdentity"`
	Experience           ApplicationExperience `json:"experience"`
	Expertise            Expertise             `json:"expertise"`
	WorkProof            WorkProof             `json:"workProof"`
	Intent               Intent                `json:"intent"`
	Availability         Availability          `json:"availability"`
}

type ProfessionalIdentity struct {
	CurrentTitle string `json:"currentTitle" binding:"max=200"`
	Company      string `json:"company" binding:"max=200"`
	LinkedInURL  string `json:"linkedinUrl" binding:"omitempty,url,max=500"`
	Industry     string `json:"industry" binding:"max=100"`
}

type ApplicationExperience struct {
	YearsOfExperience int    `json:"yearsOfExperience" binding:"min=0,max=60"`
	Summary           string `json:"summary" binding:"max=5000"`
	MentoringBefore   bool   `json:"mentoringBefore"`
}

type Expertise struct {
	Domains []string `json:"domains" binding:"max=20,dive,max=100"`
	Skills  []string `json:"skills" binding:"max=50,dive,max=100"`
}

type WorkProof struct {
	PortfolioURL string   `json:"portfolioUrl" binding:"omitempty,url,max=500"`
	Links        []string `json:"links" binding:"max=10,dive,url"`
}

type Intent struct {
	Motivation     string `json:"motivation" binding:"max=5000"`
	TargetAudience string `json:"targetAudience" binding:"max=1000"`
}

type Availability struct {
	HoursPerWeek int    `json:"hoursPerWeek" binding:"min=0,max=40"`
	Timezone     string `json:"timezone" binding:"max=64"`
	MaxStudents  int    `json:"maxStudents" binding:"min=0,max=50"`
}

// MentorApplication is one user's application to become a mentor
type MentorApplication struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	Sections        ApplicationSections `json:"sections"`
	Status          ApplicationStatus   `json:"status"`
	RejectionReason string              `json:"rejectionReason"`
	SubmittedAt     *time.Time          `json:"submittedAt"`
	ReviewedAt      *time.Time          `json:"reviewedAt"`
	ReviewedBy      *string             `json:"reviewedBy"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`

	// Applicant details, filled for admin views
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
}

// MentorApplicationColumns selects from mentor_applications a JOIN users u
const MentorApplicationColumns = `a.id, a.user_id, a.sections, a.status, a.rejection_reason, a.submitted_at,
	a.reviewed_at, a.reviewed_by, a.created_at, a.updated_at, u.name, u.email`

// ScanMentorApplication scans a row selected with MentorApplicationColumns
func ScanMentorApplication(row pgx.Row) (*MentorApplication, error) {
	var a MentorApplication
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Sections,
		&a.Status,
		&a.RejectionReason,
		&a.SubmittedAt,
		&a.ReviewedAt,
		&a.ReviewedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.UserName,
		&a.UserEmail,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func ScanMentorApplications(rows pgx.Rows) ([]*MentorApplication, error) {
	defer rows.Close()

	apps := []*MentorApplication{}
	for rows.Next() {
		a, err := ScanMentorApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

// MentorConsent records acceptance of the mentor agreement
type MentorConsent struct {
	UserID         string    `json:"userId"`
	ConsentVersion string    `json:"consentVersion"`
	IPAddress      string    `json:"ipAddress"`
	AcceptedAt     time.Time `json:"acceptedAt"`
}

// SaveApplicationRequest is the draft payload. Server-owned fields sent by
// the client (id, status, timestamps...) are not part of the struct and so
// are dropped during binding.
type SaveApplicationRequest struct {
	Sections ApplicationSections `json:"sections"`
}

// SubmitApplicationRequest saves, consents and submits in one call
type SubmitApplicationRequest struct {
	Sections       ApplicationSections `json:"sections"`
	ConsentVersion string              `json:"consentVersion" binding:"omitempty,max=32"`
	AcceptTerms    bool                `json:"acceptTerms"`
}

type ConsentRequest struct {
	ConsentVersion string `json:"consentVersion" binding:"omitempty,max=32"`
	AcceptTerms    bool   `json:"acceptTerms"`
}

// RejectApplicationRequest is the admin rejection payload
type RejectApplicationRequest struct {
	Reason string `json:"reason" binding:"required,min=10,max=2000"`
}

type MentorApplicationListResponse struct {
	Applications []*MentorApplication `json:"applications"`
	Pagination   PaginationMeta       `json:"pagination"`
}
