package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/pkg/listquery"
	"go.uber.org/zap"
)

// TicketSortColumns whitelists sorting for ticket tables
var TicketSortColumns = listquery.Columns{
	Default:  "updatedAt",
	IDColumn: "t.id",
	SQL: map[string]string{
		"updatedAt": "t.updated_at",
		"createdAt": "t.created_at",
		"status":    "t.status",
		"priority":  "CASE t.priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END",
		"subject":   "lower(t.subject)",
	},
}

const ticketFrom = ` FROM tickets t JOIN users u ON u.id = t.user_id `

// TicketRepository handles support tickets and their messages
type TicketRepository struct {
	db TxBeginner
}

func NewTicketRepository(db TxBeginner) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create opens a ticket with its first message
func (r *TicketRepository) Create(ctx context.Context, userID string, req *models.CreateTicketRequest) (*models.Ticket, error) {
	start := time.Now()
	category := req.Category
	if category == "" {
		category = "general"
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	var ticket *models.Ticket
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var id string
		err := tx.QueryRow(ctx, `
			INSERT INTO tickets (user_id, subject, category, priority)
			VALUES ($1, $2, $3, $4)
			RETURNING id`, userID, req.Subject, category, priority).Scan(&id)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO ticket_messages (ticket_id, author_id, author_role, body)
			VALUES ($1, $2, $3, $4)`, id, userID, models.RoleUser, req.Message); err != nil {
			return err
		}
		ticket, err = getTicket(ctx, tx, id)
		return err
	})
	observe("createTicket", start, err, zap.String("user_id", userID))
	if err != nil {
		return nil, mapError(err, "ticket")
	}
	return ticket, nil
}

func (r *TicketRepository) List(ctx context.Context, filter models.TicketFilter, params models.ListParams) ([]*models.Ticket, int, error) {
	start := time.Now()

	var fb filterBuilder
	if filter.UserID != "" {
		fb.add(`t.user_id = ?`, filter.UserID)
	}
	if filter.Status != "" {
		fb.add(`t.status = ?`, filter.Status)
	}
	if filter.Priority != "" {
		fb.add(`t.priority = ?`, filter.Priority)
	}
	if filter.Search != "" {
		fb.add(`(lower(t.subject) LIKE ? OR lower(u.email) LIKE ?)`, likePattern(filter.Search))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+ticketFrom+fb.where(), fb.args...).Scan(&total); err != nil {
		observe("listTickets", start, err)
		return nil, 0, err
	}

	query := `SELECT ` + models.TicketColumns + ticketFrom + fb.where() +
		` ORDER BY ` + TicketSortColumns.OrderBy(params.Sort) +
		` LIMIT ` + fb.arg(params.Page.Limit) + ` OFFSET ` + fb.arg(params.Page.Offset())

	rows, err := r.db.Query(ctx, query, fb.args...)
	if err != nil {
		observe("listTickets", start, err)
		return nil, 0, err
	}
	tickets, err := models.ScanTickets(rows)
	observe("listTickets", start, err)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// GetByID returns a ticket with its messages in order
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	start := time.Now()
	t, err := getTicket(ctx, r.db, id)
	observe("getTicket", start, err, zap.String("ticket_id", id))
	return t, mapError(err, "ticket")
}

// AddMessage appends a message and optionally moves the ticket to newStatus
func (r *TicketRepository) AddMessage(ctx context.Context, ticketID, authorID string, authorRole models.UserRole, body string, newStatus *models.TicketStatus) (*models.Ticket, error) {
	start := time.Now()
	var ticket *models.Ticket

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO ticket_messages (ticket_id, author_id, author_role, body)
			VALUES ($1, $2, $3, $4)`, ticketID, authorID, authorRole, body); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE tickets SET status = COALESCE($2, status), updated_at = NOW()
			WHERE id = $1 AND status <> 'closed'`, ticketID, newStatus); err != nil {
			return err
		}
		var err error
		ticket, err = getTicket(ctx, tx, ticketID)
		return err
	})
	observe("addTicketMessage", start, err, zap.String("ticket_id", ticketID))
	if err != nil {
		return nil, mapError(err, "ticket")
	}
	return ticket, nil
}

// Update applies admin triage changes. Closed tickets are never reopened.
func (r *TicketRepository) Update(ctx context.Context, id string, req *models.AdminUpdateTicketRequest) (*models.Ticket, error) {
	start := time.Now()

	var sb setBuilder
	if req.Status != nil {
		sb.set("status", *req.Status)
	}
	if req.Priority != nil {
		sb.set("priority", *req.Priority)
	}
	if req.AssigneeID != nil {
		sb.set("assignee_id", nilIfEmpty(*req.AssigneeID))
	}
	if sb.empty() {
		return r.GetByID(ctx, id)
	}

	query, args := sb.sql("tickets", id)
	tag, err := r.db.Exec(ctx, query+` AND status <> 'closed'`, args...)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	observe("updateTicket", start, err, zap.String("ticket_id", id))
	if err != nil {
		return nil, mapError(err, "ticket")
	}
	return r.GetByID(ctx, id)
}

func getTicket(ctx context.Context, q Querier, id string) (*models.Ticket, error) {
	t, err := models.ScanTicket(q.QueryRow(ctx, `SELECT `+models.TicketColumns+ticketFrom+`WHERE t.id = $1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `
		SELECT id, ticket_id, author_id, author_role, body, created_at
		FROM ticket_messages
		WHERE ticket_id = $1
		ORDER BY created_at, id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t.Messages = []models.TicketMessage{}
	for rows.Next() {
		var m models.TicketMessage
		if err := rows.Scan(&m.ID, &m.TicketID, &m.AuthorID, &m.AuthorRole, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		t.Messages = append(t.Messages, m)
	}
	return t, rows.Err()
}
