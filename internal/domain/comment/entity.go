package comment

import "time"

// Comment is a public note left on an organization page. A comment may
// carry a rating, in which case it contributes to the organization's
// rating aggregate; each user gets at most one rated comment per
// organization.
type Comment struct {
	ID             string
	OrganizationID string
	AuthorID       string
	Body           string
	Rating         *int
	EditedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields.
	AuthorHandle      string
	AuthorDisplayName string
	AuthorAvatarURL   string
}

// RatingAggregate is the denormalized rating summary kept on the
// organization row and recomputed whenever rated comments change.
type RatingAggregate struct {
	Count   int
	Average float64
}
