package member

import "time"

// Member is a user's membership in one organization. A user holds at most one
// membership per org; the role drives every permission check inside it.
type Member struct {
	ID             string
	OrganizationID string
	UserID         string
	Role           Role
	Title          *string
	Notes          *string
	JoinedAt       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO / Join
	Handle      *string
	DisplayName *string
}
