package repository

import (
	"context"
	"time"

	"github.com/roleready/roleready-api/internal/models"
)

// NotificationRepository handles per-user notifications
type NotificationRepository struct {
	db Querier
}

func NewNotificationRepository(db Querier) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n models.NewNotification) (*models.Notification, error) {
	start := time.Now()
	priority := n.Priority
	if priority == "" {
		priority = models.NotificationNormal
	}

	out, err := models.ScanNotification(r.db.QueryRow(ctx, `
		INSERT INTO notifications (user_id, type, title, message, priority, action_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+models.NotificationColumns,
		n.UserID, n.Type, n.Title, n.Message, priority, n.ActionURL))
	observe("createNotification", start, err)
	return out, mapError(err, "notification")
}

// List pages a user's notifications newest first and returns the match
// count and the overall unread count.
func (r *NotificationRepository) List(ctx context.Context, userID string, unreadOnly bool, page models.ListParams) ([]*models.Notification, int, int, error) {
	start := time.Now()

	var total, unread int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE NOT $2 OR NOT is_read),
		       COUNT(*) FILTER (WHERE NOT is_read)
		FROM notifications WHERE user_id = $1`, userID, unreadOnly).Scan(&total, &unread)
	if err != nil {
		observe("listNotifications", start, err)
		return nil, 0, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+models.NotificationColumns+`
		FROM notifications
		WHERE user_id = $1 AND (NOT $2 OR NOT is_read)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`, userID, unreadOnly, page.Page.Limit, page.Page.Offset())
	if err != nil {
		observe("listNotifications", start, err)
		return nil, 0, 0, err
	}
	items, err := models.ScanNotifications(rows)
	observe("listNotifications", start, err)
	if err != nil {
		return nil, 0, 0, err
	}
	return items, total, unread, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	return execOne(ctx, r.db, "markNotificationRead", "notification", `
		UPDATE notifications SET is_read = TRUE, read_at = COALESCE(read_at, NOW())
		WHERE id = $1 AND user_id = $2`, id, userID)
}

// MarkAllRead returns how many notifications changed
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	start := time.Now()
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = NOW()
		WHERE user_id = $1 AND NOT is_read`, userID)
	observe("markAllNotificationsRead", start, err)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *NotificationRepository) Delete(ctx context.Context, userID, id string) error {
	return execOne(ctx, r.db, "deleteNotification", "notification",
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
}
