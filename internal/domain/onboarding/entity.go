package onboarding

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Task is a single onboarding checklist item. Tasks live inside their
// template as JSONB; they have no table of their own.
type Task struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    *string  `json:"description,omitempty"`
	Required       bool     `json:"required"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
}

type Tasks []Task

// Value implements driver.Valuer for database storage
func (t Tasks) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for database retrieval
func (t *Tasks) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Tasks: invalid type")
	}

	return json.Unmarshal(bytes, t)
}

// CompletedTaskIDs is the set of finished task ids on a progress record,
// stored as JSONB.
type CompletedTaskIDs []string

// Value implements driver.Valuer for database storage
func (c CompletedTaskIDs) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for database retrieval
func (c *CompletedTaskIDs) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan CompletedTaskIDs: invalid type")
	}

	return json.Unmarshal(bytes, c)
}

// Template is an org's onboarding checklist for one role.
type Template struct {
	ID                    string
	OrganizationID        string
	RoleName              string
	Description           *string
	Tasks                 Tasks
	EstimatedDurationDays int
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TaskByID returns the template task with the given id.
func (t *Template) TaskByID(id string) (Task, bool) {
	for _, task := range t.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return Task{}, false
}

type ProgressStatus string

const (
	ProgressStatusNotStarted ProgressStatus = "not_started"
	ProgressStatusInProgress ProgressStatus = "in_progress"
	ProgressStatusCompleted  ProgressStatus = "completed"
	ProgressStatusOverdue    ProgressStatus = "overdue"
)

// Progress tracks one member working through one template.
type Progress struct {
	ID                   string
	OrganizationID       string
	TemplateID           string
	UserID               string
	CompletedTaskIDs     CompletedTaskIDs
	CompletionPercentage int
	Status               ProgressStatus
	StartedAt            time.Time
	DueAt                time.Time
	CompletedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Relationships (for responses)
	TemplateRoleName *string
	Handle           *string
	DisplayName      *string
}
