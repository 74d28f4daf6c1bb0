package application

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Status string

const (
	StatusPending            Status = "pending"
	StatusUnderReview        Status = "under_review"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusApproved           Status = "approved"
	StatusRejected           Status = "rejected"
)

// CustomFields holds org-defined questionnaire answers as JSONB. The payload
// is capped by serialized size, not key count.
type CustomFields map[string]interface{}

// Value implements driver.Valuer for database storage
func (cf CustomFields) Value() (driver.Value, error) {
	if cf == nil {
		return nil, nil
	}
	return json.Marshal(cf)
}

// Scan implements sql.Scanner for database retrieval
func (cf *CustomFields) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan CustomFields: invalid type")
	}

	return json.Unmarshal(bytes, cf)
}

// Application is a user's request to join an organization. One row per
// (organization, user) pair, ever: re-applying after a decision is blocked.
type Application struct {
	ID             string
	OrganizationID string
	UserID         string

	CoverLetter  string
	Experience   *string
	Availability *string
	CustomFields CustomFields

	Status          Status
	ReviewerID      *string
	ReviewNotes     *string
	RejectionReason *string
	InterviewAt     *time.Time

	SubmittedAt time.Time
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	ApplicantHandle      *string
	ApplicantDisplayName *string
	OrganizationName     *string
}
