package models

// Readiness is a user's readiness score against a target role
type Readiness struct {
	UserID         string               `json:"userId"`
	RoleID         string               `json:"roleId"`
	RoleName       string               `json:"roleName"`
	Score          int                  `json:"score"`
	AllRequiredMet bool                 `json:"allRequiredMet"`
	MissingSkills  []string             `json:"missingSkills"`
	Breakdown      []BenchmarkReadiness `json:"breakdown"`
}

// BenchmarkReadiness is the per-benchmark part of a readiness result
type BenchmarkReadiness struct {
	SkillID       string           `json:"skillId"`
	SkillName     string           `json:"skillName"`
	Importance    Importance       `json:"importance"`
	Weight        int              `json:"weight"`
	RequiredLevel SkillLevel       `json:"requiredLevel"`
	UserLevel     SkillLevel       `json:"userLevel,omitempty"`
	Status        ValidationStatus `json:"validationStatus,omitempty"`
	Credit        float64          `json:"credit"`
	Met           bool             `json:"met"`
}

// MentorWorkload is one active mentor's current load
type MentorWorkload struct {
	MentorID           string `json:"mentorId"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Students           int    `json:"students"`
	PendingValidations int    `json:"pendingValidations"`
}

// Total is the load figure used for balancing
func (w MentorWorkload) Total() int {
	return w.Students + w.PendingValidations
}

// AssignMentorRequest assigns a mentor to a user. MentorID "auto" picks the
// least loaded active mentor.
type AssignMentorRequest struct {
	MentorID string `json:"mentorId" binding:"required"`
}

// AutoAssign is the MentorID value that requests automatic assignment
const AutoAssign = "auto"

// UpdateTargetRoleRequest sets or clears the user's target role
type UpdateTargetRoleRequest struct {
	RoleID *string `json:"roleId" binding:"omitempty,uuid"`
}
