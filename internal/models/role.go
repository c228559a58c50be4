package models

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
)

// MaxTotalBenchmarkWeight caps the sum of benchmark weights on one role
const MaxTotalBenchmarkWeight = 100

// Importance of a benchmark skill for a role
type Importance string

const (
	ImportanceRequired Importance = "required"
	ImportanceOptional Importance = "optional"
)

// Role is a target job role with its benchmark skills
type Role struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	IsActive    bool        `json:"isActive"`
	Benchmarks  []Benchmark `json:"benchmarks"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TotalWeight sums the weights of all benchmarks
func (r *Role) TotalWeight() int {
	total := 0
	for _, b := range r.Benchmarks {
		total += b.Weight
	}
	return total
}

// Benchmark is one (skill, importance, weight, requiredLevel) tuple on a role
type Benchmark struct {
	SkillID       string     `json:"skillId" binding:"required,uuid"`
	SkillName     string     `json:"skillName"`
	Importance    Importance `json:"importance" binding:"required,oneof=required optional"`
	Weight        int        `json:"weight" binding:"min=0,max=100"`
	RequiredLevel SkillLevel `json:"requiredLevel" binding:"required,oneof=beginner intermediate advanced expert"`
}

// ValidateBenchmarks enforces per-item weight range, unique skills and the
// total weight cap.
func ValidateBenchmarks(benchmarks []Benchmark) error {
	seen := make(map[string]bool, len(benchmarks))
	total := 0

	for i, b := range benchmarks {
		field := fmt.Sprintf("benchmarks[%d]", i)
		if b.Weight < 0 || b.Weight > MaxTotalBenchmarkWeight {
			return apperrors.InvalidInputError(field+".weight", "must be between 0 and 100")
		}
		if !b.RequiredLevel.IsValid() {
			return apperrors.InvalidInputError(field+".requiredLevel", "unknown level")
		}
		if b.Importance != ImportanceRequired && b.Importance != ImportanceOptional {
			return apperrors.InvalidInputError(field+".importance", "must be required or optional")
		}
		if seen[b.SkillID] {
			return apperrors.InvalidInputError(field+".skillId", "duplicate skill")
		}
		seen[b.SkillID] = true
		total += b.Weight
	}

	if total > MaxTotalBenchmarkWeight {
		return apperrors.InvalidInputError("benchmarks", fmt.Sprintf("total weight %d exceeds %d", total, MaxTotalBenchmarkWeight))
	}
	return nil
}

// RoleColumns is the select list matching ScanRole
const RoleColumns = `id, name, description, category, is_active, created_at, updated_at`

// ScanRole scans a role row; benchmarks are loaded separately
func ScanRole(row pgx.Row) (*Role, error) {
	var r Role
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Category, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Benchmarks = []Benchmark{}
	return &r, nil
}

// RoleRequest creates or updates a role. Benchmarks are optional on update;
// nil leaves them untouched.
type RoleRequest struct {
	Name        string      `json:"name" binding:"required,min=2,max=120"`
	Description string      `json:"description" binding:"max=4000"`
	Category    string      `json:"category" binding:"max=100"`
	IsActive    *bool       `json:"isActive"`
	Benchmarks  []Benchmark `json:"benchmarks" binding:"omitempty,dive"`
}

// ReplaceBenchmarksRequest replaces the full benchmark set of a role
type ReplaceBenchmarksRequest struct {
	Benchmarks []Benchmark `json:"benchmarks" binding:"dive"`
}
