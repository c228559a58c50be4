package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// Skill is a catalog entry
type Skill struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Domain      string    `json:"domain"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SkillLevel is a proficiency level. Levels are ordered; see Rank.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

var levelRanks = map[SkillLevel]int{
	LevelBeginner:     1,
	LevelIntermediate: 2,
	LevelAdvanced:     3,
	LevelExpert:       4,
}

// Rank maps a level to 1..4, or 0 for unknown levels.
func (l SkillLevel) Rank() int {
	return levelRanks[l]
}

func (l SkillLevel) IsValid() bool {
	return l.Rank() > 0
}

// SkillSource is where a user's claim about a skill came from
type SkillSource string

const (
	SourceSelf    SkillSource = "self"
	SourceResume  SkillSource = "resume"
	SourceCourse  SkillSource = "course"
	SourceProject SkillSource = "project"
)

// ValidationStatus is the mentor validation state of a user skill
type ValidationStatus string

const (
	ValidationNone      ValidationStatus = "none"
	ValidationPending   ValidationStatus = "pending"
	ValidationValidated ValidationStatus = "validated"
	ValidationRejected  ValidationStatus = "rejected"
)

// CanRequestValidation reports whether the user may (re)submit the skill
// for mentor review.
func (s ValidationStatus) CanRequestValidation() bool {
	return s == ValidationNone || s == ValidationRejected
}

// CanTransitionTo checks a validation status change
func (s ValidationStatus) CanTransitionTo(next ValidationStatus) bool {
	switch s {
	case ValidationNone, ValidationRejected:
		return next == ValidationPending
	case ValidationPending:
		return next == ValidationValidated || next == ValidationRejected
	default:
		return false
	}
}

// UserSkill is a user's claim on a catalog skill
type UserSkill struct {
	ID               string           `json:"id"`
	UserID           string           `json:"userId"`
	SkillID          string           `json:"skillId"`
	SkillName        string           `json:"skillName"`
	Domain           string           `json:"domain"`
	Category         string           `json:"category"`
	Level            SkillLevel       `json:"level"`
	Source           SkillSource      `json:"source"`
	ValidationStatus ValidationStatus `json:"validationStatus"`
	ValidatorID      *string          `json:"validatorId"`
	MentorNote       string           `json:"mentorNote"`
	RequestedAt      *time.Time       `json:"requestedAt"`
	ValidatedAt      *time.Time       `json:"validatedAt"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// UserSkillColumns selects from user_skills us JOIN skills s
const UserSkillColumns = `us.id, us.user_id, us.skill_id, s.name, s.domain, s.category, us.level, us.source,
	us.validation_status, us.validator_id, us.mentor_note, us.requested_at, us.validated_at,
	us.created_at, us.updated_at`

// ScanUserSkill scans a row selected with UserSkillColumns
func ScanUserSkill(row pgx.Row) (*UserSkill, error) {
	var us UserSkill
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
	)
	if err != nil {
		return nil, err
	}
	return &us, nil
}

func ScanUserSkills(rows pgx.Rows) ([]*UserSkill, error) {
	defer rows.Close()

	skills := []*UserSkill{}
	for rows.Next() {
		us, err := ScanUserSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return skills, nil
}

// ValidationQueueItem is a pending user skill with the requesting user
type ValidationQueueItem struct {
	UserSkill
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// ValidationFilter narrows the mentor queue
type ValidationFilter struct {
	ValidatorID string
	Status      ValidationStatus
	Domain      string
	Level       SkillLevel
	Source      SkillSource
	Search      string
}

// ValidationStats counts a mentor's resolved and open items
type ValidationStats struct {
	Pending   int `json:"pending"`
	Validated int `json:"validated"`
	Rejected  int `json:"rejected"`
}

// ValidationQueueResponse is a page of the mentor queue
type ValidationQueueResponse struct {
	Items      []*ValidationQueueItem `json:"items"`
	Pagination PaginationMeta         `json:"pagination"`
}

// MinRejectionNoteLength is the shortest note accepted with a rejection
const MinRejectionNoteLength = 10

type ApproveValidationRequest struct {
	Note string `json:"note" binding:"max=2000"`
}

type RejectValidationRequest struct {
	Note string `json:"note" binding:"required,max=2000"`
}

// AddUserSkillRequest adds or updates a skill on the caller's profile
type AddUserSkillRequest struct {
	SkillID string      `json:"skillId" binding:"required,uuid"`
	Level   SkillLevel  `json:"level" binding:"required,oneof=beginner intermediate advanced expert"`
	Source  SkillSource `json:"source" binding:"omitempty,oneof=self resume course project"`
}

type UpdateUserSkillRequest struct {
	Level  SkillLevel  `json:"level" binding:"required,oneof=beginner intermediate advanced expert"`
	Source SkillSource `json:"source" binding:"omitempty,oneof=self resume course project"`
}

// SkillRequest creates or updates a catalog skill
type SkillRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Domain      string `json:"domain" binding:"required,max=100"`
	Category    string `json:"category" binding:"max=100"`
	Description string `json:"description" binding:"max=2000"`
	IsActive    *bool  `json:"isActive"`
}

// SkillFilter narrows the catalog list
type SkillFilter struct {
	Search     string
	Domain     string
	OnlyActive bool
}
