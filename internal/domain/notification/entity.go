package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeApplicationReceived NotificationType = "application_received"
	TypeApplicationStatus   NotificationType = "application_status"
	TypeOnboardingAssigned  NotificationType = "onboarding_assigned"
	TypeOnboardingCompleted NotificationType = "onboarding_completed"
	TypeOnboardingOverdue   NotificationType = "onboarding_overdue"
	TypeReviewSubmitted     NotificationType = "review_submitted"
	TypeReviewAcknowledged  NotificationType = "review_acknowledged"
	TypeGoalProgress        NotificationType = "goal_progress"
	TypeDocumentPublished   NotificationType = "document_published"
	TypeMemberJoined        NotificationType = "member_joined"
	TypeCommentPosted       NotificationType = "comment_posted"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeApplicationReceived,
		TypeApplicationStatus,
		TypeOnboardingAssigned,
		TypeOnboardingCompleted,
		TypeOnboardingOverdue,
		TypeReviewSubmitted,
		TypeReviewAcknowledged,
		TypeGoalProgress,
		TypeDocumentPublished,
		TypeMemberJoined,
		TypeCommentPosted,
	}
}

// Notification represents a notification entity
type Notification struct {
	ID             string
	OrganizationID string
	RecipientID    string
	SenderID       *string
	Type           NotificationType
	Title          string
	Message        string
	Data           map[string]interface{}
	IsRead         bool
	ReadAt         *time.Time
	CreatedAt      time.Time
}

// NotificationPreference represents user preference for a notification type
type NotificationPreference struct {
	ID               string
	UserID           string
	NotificationType NotificationType
	InAppEnabled     bool
	PushEnabled      bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
