package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

type NotificationPriority string

const (
	NotificationLow    NotificationPriority = "low"
	NotificationNormal NotificationPriority = "normal"
	NotificationHigh   NotificationPriority = "high"
)

// Notification types created by services
const (
	NotificationSkillValidated       = "skill_validated"
	NotificationSkillRejected        = "skill_rejected"
	NotificationValidationRequested  = "skill_validation_requested"
	NotificationValidationReleased   = "skill_validation_released"
	NotificationMentorAssigned       = "mentor_assigned"
	NotificationStudentAssigned      = "student_assigned"
	NotificationApplicationSubmitted = "mentor_application_submitted"
	NotificationApplicationApproved  = "mentor_application_approved"
	NotificationApplicationRejected  = "mentor_application_rejected"
	NotificationTicketReply          = "ticket_reply"
	NotificationTicketStatus         = "ticket_status_changed"
	NotificationAnnouncement         = "announcement"
)

// Notification is a per-user event record
type Notification struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	Type      string               `json:"type"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Priority  NotificationPriority `json:"priority"`
	IsRead    bool                 `json:"isRead"`
	ActionURL string               `json:"actionUrl"`
	CreatedAt time.Time            `json:"createdAt"`
	ReadAt    *time.Time           `json:"readAt"`
}

// NotificationColumns is the select list matching ScanNotification
const NotificationColumns = `id, user_id, type, title, message, priority, is_read, action_url, created_at, read_at`

func ScanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.Priority,
		&n.IsRead,
		&n.ActionURL,
		&n.CreatedAt,
		&n.ReadAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func ScanNotifications(rows pgx.Rows) ([]*Notification, error) {
	defer rows.Close()

	items := []*Notification{}
	for rows.Next() {
		n, err := ScanNotification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// NewNotification is what services hand to the notification repository
type NewNotification struct {
	UserID    string
	Type      string
	Title     string
	Message   string
	Priority  NotificationPriority
	ActionURL string
}

type NotificationListResponse struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int             `json:"unreadCount"`
	Pagination    PaginationMeta  `json:"pagination"`
}
