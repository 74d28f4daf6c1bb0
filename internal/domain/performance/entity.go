package performance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type ReviewStatus string

const (
	ReviewStatusDraft        ReviewStatus = "draft"
	ReviewStatusSubmitted    ReviewStatus = "submitted"
	ReviewStatusAcknowledged ReviewStatus = "acknowledged"
)

// Ratings maps a category name ("flight discipline", "comms", ...) to a 1-5
// score. Stored as JSONB on the review.
type Ratings map[string]int

// Value implements driver.Valuer for database storage
func (r Ratings) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner for database retrieval
func (r *Ratings) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Ratings: invalid type")
	}

	return json.Unmarshal(bytes, r)
}

// Review is one member's performance review over a period. A reviewee has at
// most one review per org for any overlapping period.
type Review struct {
	ID             string
	OrganizationID string
	RevieweeID     string
	ReviewerID     string

	PeriodStart time.Time
	PeriodEnd   time.Time

	Ratings       Ratings
	OverallRating *float64
	Summary       *string

	Status         ReviewStatus
	SubmittedAt    *time.Time
	AcknowledgedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	RevieweeHandle *string
	ReviewerHandle *string
}

type GoalStatus string

const (
	GoalStatusNotStarted GoalStatus = "not_started"
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusCompleted  GoalStatus = "completed"
	GoalStatusCancelled  GoalStatus = "cancelled"
)

// Goal is a target set for a member, optionally attached to the review that
// produced it. Status is derived from progress except for explicit
// cancellation.
type Goal struct {
	ID             string
	OrganizationID string
	UserID         string
	ReviewID       *string

	Title              string
	Description        *string
	TargetDate         *time.Time
	ProgressPercentage int
	Status             GoalStatus

	CompletedAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	Handle *string
}
