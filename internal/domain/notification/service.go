package notification

import (
	"context"
)

// Service is the notification surface the rest of the app talks to. Writes
// go through the async queue; reads and preference updates hit the store
// directly.
type Service interface {
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	QueueBulkNotification(ctx context.Context, reqs []CreateNotificationRequest) error

	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string, notificationID string) error

	GetPreferences(ctx context.Context, userID string) ([]PreferenceResponse, error)
	UpdatePreference(ctx context.Context, userID string, req UpdatePreferenceRequest) error

	// Subscribe returns a live event stream for the user plus a cancel func
	// the caller must invoke when the stream closes.
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())

	Stop()
}
