package services

import (
	"context"
	"strings"

	"github.com/roleready/roleready-api/internal/email"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"go.uber.org/zap"
)

var ErrTicketClosed = apperrors.ConflictError("ticket is closed")

// TicketService handles support tickets for users and admins
type TicketService struct {
	tickets  repository.TicketStore
	notifier *Notifier
}

func NewTicketService(tickets repository.TicketStore, notifier *Notifier) *TicketService {
	return &TicketService{tickets: tickets, notifier: notifier}
}

// Create opens a ticket with its first message
func (s *TicketService) Create(ctx context.Context, session *models.Session, req *models.CreateTicketRequest) (*models.Ticket, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	ticket, err := s.tickets.Create(ctx, session.UserID, req)
	if err != nil {
		logger.Error("Failed to create ticket", zap.String("user_id", session.UserID), zap.Error(err))
		return nil, err
	}

	metrics.TicketEvents.WithLabelValues("created").Inc()
	logger.Info("Ticket created", zap.String("ticket_id", ticket.ID), zap.String("user_id", session.UserID))

	s.notifier.Notify(ctx, ticketOwner(ticket), models.NewNotification{}, email.EventTicketCreated, map[string]string{
		"subject":  ticket.Subject,
		"ticketId": ticket.ID,
	})
	return ticket, nil
}

// ListOwn lists the caller's tickets
func (s *TicketService) ListOwn(ctx context.Context, userID string, filter models.TicketFilter, params models.ListParams) (*models.TicketListResponse, error) {
	filter.UserID = userID
	return s.List(ctx, filter, params)
}

// List is the admin view across all users
func (s *TicketService) List(ctx context.Context, filter models.TicketFilter, params models.ListParams) (*models.TicketListResponse, error) {
	tickets, total, err := s.tickets.List(ctx, filter, params)
	if err != nil {
		logger.Error("Failed to list tickets", zap.Error(err))
		return nil, err
	}
	return &models.TicketListResponse{
		Tickets:    tickets,
		Pagination: params.Page.Meta(total),
	}, nil
}

// Get returns a ticket with messages. Users only see their own.
func (s *TicketService) Get(ctx context.Context, session *models.Session, id string) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() && ticket.UserID != session.UserID {
		return nil, apperrors.NotFoundError("ticket")
	}
	return ticket, nil
}

// PostMessage adds a user reply. A reply to a ticket waiting on the user
// reopens it.
func (s *TicketService) PostMessage(ctx context.Context, session *models.Session, id, body string) (*models.Ticket, error) {
	ticket, err := s.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status.IsTerminalStatus() {
		return nil, ErrTicketClosed
	}

	var next *models.TicketStatus
	if status, changed := ticket.Status.StatusAfterReply(false); changed {
		next = &status
	}

	updated, err := s.tickets.AddMessage(ctx, id, session.UserID, models.RoleUser, strings.TrimSpace(body), next)
	if err != nil {
		return nil, closedOrErr(err)
	}

	metrics.TicketEvents.WithLabelValues("user_reply").Inc()
	logger.Info("Ticket reply from user", zap.String("ticket_id", id), zap.String("user_id", session.UserID))
	return updated, nil
}

// Close lets the owner close their own ticket
func (s *TicketService) Close(ctx context.Context, session *models.Session, id string) (*models.Ticket, error) {
	ticket, err := s.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status.IsTerminalStatus() {
		return nil, ErrTicketClosed
	}

	closed := models.TicketClosed
	updated, err := s.tickets.Update(ctx, id, &models.AdminUpdateTicketRequest{Status: &closed})
	if err != nil {
		return nil, closedOrErr(err)
	}

	metrics.TicketEvents.WithLabelValues("closed").Inc()
	logger.Info("Ticket closed by user", zap.String("ticket_id", id))
	return updated, nil
}

// Update changes status, priority or assignee. Closed tickets are final.
func (s *TicketService) Update(ctx context.Context, id string, req *models.AdminUpdateTicketRequest) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status.IsTerminalStatus() {
		return nil, ErrTicketClosed
	}

	statusChanged := req.Status != nil && *req.Status != ticket.Status
	if statusChanged && !ticket.Status.CanTransitionTo(*req.Status) {
		return nil, apperrors.InvalidInputError("status", "invalid status transition")
	}

	updated, err := s.tickets.Update(ctx, id, req)
	if err != nil {
		return nil, closedOrErr(err)
	}

	metrics.TicketEvents.WithLabelValues("updated").Inc()
	logger.Info("Ticket updated", zap.String("ticket_id", id))

	if statusChanged {
		s.notifier.Notify(ctx, ticketOwner(updated), models.NewNotification{
			Type:      models.NotificationTicketStatus,
			Title:     "Ticket status changed",
			Message:   updated.Subject + " is now " + statusLabel(updated.Status) + ".",
			ActionURL: "/support/tickets/" + updated.ID,
		}, email.EventTicketStatusChanged, map[string]string{
			"subject":  updated.Subject,
			"status":   statusLabel(updated.Status),
			"ticketId": updated.ID,
		})
	}
	return updated, nil
}

// Reply adds a staff message. A reply to an open ticket marks it in progress.
func (s *TicketService) Reply(ctx context.Context, session *models.Session, id, body string) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status.IsTerminalStatus() {
		return nil, ErrTicketClosed
	}

	var next *models.TicketStatus
	if status, changed := ticket.Status.StatusAfterReply(true); changed {
		next = &status
	}

	body = strings.TrimSpace(body)
	updated, err := s.tickets.AddMessage(ctx, id, session.UserID, session.Role, body, next)
	if err != nil {
		return nil, closedOrErr(err)
	}

	metrics.TicketEvents.WithLabelValues("staff_reply").Inc()
	logger.Info("Ticket reply from staff", zap.String("ticket_id", id), zap.String("admin_id", session.UserID))

	s.notifier.Notify(ctx, ticketOwner(updated), models.NewNotification{
		Type:      models.NotificationTicketReply,
		Title:     "New reply on your ticket",
		Message:   updated.Subject,
		ActionURL: "/support/tickets/" + updated.ID,
	}, email.EventTicketReply, map[string]string{
		"subject":  updated.Subject,
		"message":  body,
		"ticketId": updated.ID,
	})
	return updated, nil
}

func ticketOwner(t *models.Ticket) Recipient {
	return Recipient{UserID: t.UserID, Name: t.UserName, Email: t.UserEmail}
}

func statusLabel(s models.TicketStatus) string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// closedOrErr reports a row the conditional update skipped as closed
func closedOrErr(err error) error {
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return ErrTicketClosed
	}
	return err
}
