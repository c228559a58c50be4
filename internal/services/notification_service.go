package services

import (
	"context"

	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	"github.com/roleready/roleready-api/pkg/logger"
	"go.uber.org/zap"
)

// NotificationService exposes a user's own notifications
type NotificationService struct {
	notifications repository.NotificationStore
}

func NewNotificationService(notifications repository.NotificationStore) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, params models.ListParams) (*models.NotificationListResponse, error) {
	items, total, unread, err := s.notifications.List(ctx, userID, unreadOnly, params)
	if err != nil {
		logger.Error("Failed to list notifications", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &models.NotificationListResponse{
		Notifications: items,
		UnreadCount:   unread,
		Pagination:    params.Page.Meta(total),
	}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.notifications.MarkRead(ctx, userID, id)
}

// MarkAllRead returns how many notifications changed
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	n, err := s.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	logger.Debug("Notifications marked read", zap.String("user_id", userID), zap.Int64("count", n))
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	return s.notifications.Delete(ctx, userID, id)
}
