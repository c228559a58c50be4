package models

// MaxBulkItems caps the number of IDs in one bulk action
const MaxBulkItems = 100

// BulkAction is an action applied to a set of selected rows
type BulkAction string

const (
	BulkActivate   BulkAction = "activate"
	BulkDeactivate BulkAction = "deactivate"
	BulkFeature    BulkAction = "feature"
	BulkUnfeature  BulkAction = "unfeature"
	BulkDelete     BulkAction = "delete"
	BulkPromote    BulkAction = "promote"
	BulkDemote     BulkAction = "demote"
)

// ListingBulkActions are the actions accepted for jobs and internships
var ListingBulkActions = map[BulkAction]bool{
	BulkActivate:   true,
	BulkDeactivate: true,
	BulkFeature:    true,
	BulkUnfeature:  true,
	BulkDelete:     true,
}

// UserBulkActions are the actions accepted for users
var UserBulkActions = map[BulkAction]bool{
	BulkActivate:   true,
	BulkDeactivate: true,
	BulkDelete:     true,
	BulkPromote:    true,
	BulkDemote:     true,
}

type BulkActionRequest struct {
	Action BulkAction `json:"action" binding:"required"`
	IDs    []string   `json:"ids" binding:"required,min=1"`
}

// BulkItemResult is the outcome for one ID
type BulkItemResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BulkActionResult reports every ID plus totals
type BulkActionResult struct {
	Action    BulkAction       `json:"action"`
	Results   []BulkItemResult `json:"results"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
}

// Add appends one outcome and updates the totals
func (r *BulkActionResult) Add(id string, err error) {
	item := BulkItemResult{ID: id, Success: err == nil}
	if err != nil {
		item.Error = err.Error()
		r.Failed++
	} else {
		r.Succeeded++
	}
	r.Results = append(r.Results, item)
}
