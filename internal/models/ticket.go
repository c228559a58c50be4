package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// TicketStatus is the support ticket lifecycle state
type TicketStatus string

const (
	TicketOpen        TicketStatus = "open"
	TicketInProgress  TicketStatus = "in_progress"
	TicketWaitingUser TicketStatus = "waiting_user"
	TicketResolved    TicketStatus = "resolved"
	TicketClosed      TicketStatus = "closed"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketWaitingUser, TicketResolved, TicketClosed:
		return true
	}
	return false
}

// IsTerminalStatus returns true for closed tickets
func (s TicketStatus) IsTerminalStatus() bool {
	return s == TicketClosed
}

// CanTransitionTo allows any move between valid statuses except out of closed
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	if s.IsTerminalStatus() || !next.IsValid() {
		return false
	}
	return s != next
}

// StatusAfterReply returns the status a ticket moves to when the given side
// replies, and whether it changes at all.
func (s TicketStatus) StatusAfterReply(byStaff bool) (TicketStatus, bool) {
	switch {
	case !byStaff && s == TicketWaitingUser:
		return TicketOpen, true
	case byStaff && s == TicketOpen:
		return TicketInProgress, true
	}
	return s, false
}

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

// Ticket is a support conversation
type Ticket struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	UserName   string          `json:"userName"`
	UserEmail  string          `json:"userEmail"`
	Subject    string          `json:"subject"`
	Category   string          `json:"category"`
	Status     TicketStatus    `json:"status"`
	Priority   TicketPriority  `json:"priority"`
	AssigneeID *string         `json:"assigneeId"`
	Messages   []TicketMessage `json:"messages,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type TicketMessage struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticketId"`
	AuthorID   *string   `json:"authorId"`
	AuthorRole UserRole  `json:"authorRole"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TicketColumns selects from tickets t JOIN users u
const TicketColumns = `t.id, t.user_id, u.name, u.email, t.subject, t.category, t.status, t.priority,
	t.assignee_id, t.created_at, t.updated_at`

// ScanTicket scans a row selected with TicketColumns
func ScanTicket(row pgx.Row) (*Ticket, error) {
	var t Ticket
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.UserName,
		&t.UserEmail,
		&t.Subject,
		&t.Category,
		&t.Status,
		&t.Priority,
		&t.AssigneeID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ScanTickets(rows pgx.Rows) ([]*Ticket, error) {
	defer rows.Close()

	tickets := []*Ticket{}
	for rows.Next() {
		t, err := ScanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

// TicketFilter narrows ticket lists. UserID is set for the user view.
type TicketFilter struct {
	UserID   string
	Status   TicketStatus
	Priority TicketPriority
	Search   string
}

type CreateTicketRequest struct {
	Subject  string         `json:"subject" binding:"required,min=3,max=200"`
	Category string         `json:"category" binding:"omitempty,max=50"`
	Priority TicketPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	Message  string         `json:"message" binding:"required,min=1,max=10000"`
}

type TicketMessageRequest struct {
	Body string `json:"body" binding:"required,min=1,max=10000"`
}

// AdminUpdateTicketRequest updates ticket triage fields. Nil fields are kept.
type AdminUpdateTicketRequest struct {
	Status     *TicketStatus   `json:"status" binding:"omitempty,oneof=open in_progress waiting_user resolved closed"`
	Priority   *TicketPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeID *string         `json:"assigneeId" binding:"omitempty,uuid"`
}

type TicketListResponse struct {
	Tickets    []*Ticket      `json:"tickets"`
	Pagination PaginationMeta `json:"pagination"`
}
