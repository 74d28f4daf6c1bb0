package notification

import (
	"context"
	"time"
)

// Repository defines the notification repository interface
type Repository interface {
	// Notifications CRUD
	Create(ctx context.Context, notification *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string, userID string) error
	// DeleteReadOlderThan purges read notifications created before the
	// cutoff and returns how many rows were removed.
	DeleteReadOlderThan(ctx context.Context, before time.Time) (int64, error)

	// Preferences
	GetPreferences(ctx context.Context, userID string) ([]*NotificationPreference, error)
	GetPreference(ctx context.Context, userID string, notifType NotificationType) (*NotificationPreference, error)
	UpsertPreference(ctx context.Context, pref *NotificationPreference) error
	IsNotificationEnabled(ctx context.Context, userID string, notifType NotificationType) (bool, error)
}
