package onboarding

import (
	"strconv"
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/pkg/validator"
)

type TaskRequest struct {
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title"`
	Description    *string  `json:"description,omitempty"`
	Required       bool     `json:"required"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
}

func validateTasks(tasks []TaskRequest, errs validator.ValidationErrors) validator.ValidationErrors {
	if len(tasks) == 0 {
		return append(errs, validator.ValidationError{
			Field:   "tasks",
			Message: "at least one task is required",
		})
	}

	seen := make(map[string]bool, len(tasks))
	for i, task := range tasks {
		field := "tasks[" + strconv.Itoa(i) + "]"
		if validator.IsEmpty(task.Title) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".title",
				Message: "title is required",
			})
		} else if !validator.WithinLimit(task.Title, 255) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".title",
				Message: "title must not exceed 255 characters",
			})
		}
		if task.Description != nil && !validator.WithinLimit(*task.Description, 2000) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".description",
				Message: "description must not exceed 2000 characters",
			})
		}
		if task.EstimatedHours != nil && (*task.EstimatedHours <= 0 || *task.EstimatedHours > 1000) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".estimated_hours",
				Message: "estimated_hours must be between 0 and 1000",
			})
		}
		if task.ID != "" {
			if seen[task.ID] {
				errs = append(errs, validator.ValidationError{
					Field:   field + ".id",
					Message: "task id is duplicated",
				})
			}
			seen[task.ID] = true
		}
	}

	return errs
}

type CreateTemplateRequest struct {
	OrganizationID        string        `json:"-"`
	RoleName              string        `json:"role_name"`
	Description           *string       `json:"description,omitempty"`
	Tasks                 []TaskRequest `json:"tasks"`
	EstimatedDurationDays int           `json:"estimated_duration_days"`
}

func (r *CreateTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RoleName) {
		errs = append(errs, validator.ValidationError{
			Field:   "role_name",
			Message: "role_name is required",
		})
	} else if !validator.WithinLimit(r.RoleName, 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "role_name",
			Message: "role_name must not exceed 100 characters",
		})
	}

	if r.Description != nil && !validator.WithinLimit(*r.Description, 2000) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 2000 characters",
		})
	}

	if r.EstimatedDurationDays < 1 || r.EstimatedDurationDays > 365 {
		errs = append(errs, validator.ValidationError{
			Field:   "estimated_duration_days",
			Message: "estimated_duration_days must be between 1 and 365",
		})
	}

	errs = validateTasks(r.Tasks, errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateTemplateRequest struct {
	OrganizationID        string        `json:"-"`
	ID                    string        `json:"-"`
	RoleName              *string       `json:"role_name,omitempty"`
	Description           *string       `json:"description,omitempty"`
	Tasks                 []TaskRequest `json:"tasks,omitempty"`
	EstimatedDurationDays *int          `json:"estimated_duration_days,omitempty"`
	IsActive              *bool         `json:"is_active,omitempty"`
}

func (r *UpdateTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.RoleName != nil {
		if validator.IsEmpty(*r.RoleName) {
			errs = append(errs, validator.ValidationError{
				Field:   "role_name",
				Message: "role_name must not be empty",
			})
		} else if !validator.WithinLimit(*r.RoleName, 100) {
			errs = append(errs, validator.ValidationError{
				Field:   "role_name",
				Message: "role_name must not exceed 100 characters",
			})
		}
	}

	if r.Description != nil && !validator.WithinLimit(*r.Description, 2000) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 2000 characters",
		})
	}

	if r.EstimatedDurationDays != nil && (*r.EstimatedDurationDays < 1 || *r.EstimatedDurationDays > 365) {
		errs = append(errs, validator.ValidationError{
			Field:   "estimated_duration_days",
			Message: "estimated_duration_days must be between 1 and 365",
		})
	}

	if r.Tasks != nil {
		errs = validateTasks(r.Tasks, errs)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignTemplateRequest struct {
	OrganizationID string `json:"-"`
	TemplateID     string `json:"template_id"`
	UserID         string `json:"user_id"`
}

func (r *AssignTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TemplateID) {
		errs = append(errs, validator.ValidationError{
			Field:   "template_id",
			Message: "template_id is required",
		})
	}

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TaskCompletionRequest struct {
	ProgressID string `json:"-"`
	TaskID     string `json:"task_id"`
	// Completed false undoes an accidental tick.
	Completed bool `json:"completed"`
}

func (r *TaskCompletionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TaskID) {
		errs = append(errs, validator.ValidationError{
			Field:   "task_id",
			Message: "task_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListProgressFilter struct {
	Status   *ProgressStatus
	Page     int
	PageSize int
}

type TemplateResponse struct {
	ID                    string  `json:"id"`
	OrganizationID        string  `json:"organization_id"`
	RoleName              string  `json:"role_name"`
	Description           *string `json:"description,omitempty"`
	Tasks                 Tasks   `json:"tasks"`
	EstimatedDurationDays int     `json:"estimated_duration_days"`
	IsActive              bool    `json:"is_active"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}

type ProgressResponse struct {
	ID                      string           `json:"id"`
	OrganizationID          string           `json:"organization_id"`
	TemplateID              string           `json:"template_id"`
	TemplateRoleName        *string          `json:"template_role_name,omitempty"`
	UserID                  string           `json:"user_id"`
	Handle                  *string          `json:"handle,omitempty"`
	DisplayName             *string          `json:"display_name,omitempty"`
	CompletedTaskIDs        CompletedTaskIDs `json:"completed_task_ids"`
	CompletionPercentage    int              `json:"completion_percentage"`
	Status                  ProgressStatus   `json:"status"`
	StartedAt               time.Time        `json:"started_at"`
	DueAt                   time.Time        `json:"due_at"`
	EstimatedCompletionDate time.Time        `json:"estimated_completion_date"`
	CompletedAt             *time.Time       `json:"completed_at,omitempty"`
}

type ListProgressResponse struct {
	Progress []ProgressResponse `json:"progress"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// ToTemplateResponse converts a Template entity to its API shape.
func ToTemplateResponse(t Template) TemplateResponse {
	return TemplateResponse{
		ID:                    t.ID,
		OrganizationID:        t.OrganizationID,
		RoleName:              t.RoleName,
		Description:           t.Description,
		Tasks:                 t.Tasks,
		EstimatedDurationDays: t.EstimatedDurationDays,
		IsActive:              t.IsActive,
		CreatedAt:             t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:             t.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ToProgressResponse converts a Progress entity to its API shape.
func ToProgressResponse(p Progress) ProgressResponse {
	return ProgressResponse{
		ID:                      p.ID,
		OrganizationID:          p.OrganizationID,
		TemplateID:              p.TemplateID,
		TemplateRoleName:        p.TemplateRoleName,
		UserID:                  p.UserID,
		Handle:                  p.Handle,
		DisplayName:             p.DisplayName,
		CompletedTaskIDs:        p.CompletedTaskIDs,
		CompletionPercentage:    p.CompletionPercentage,
		Status:                  p.Status,
		StartedAt:               p.StartedAt,
		DueAt:                   p.DueAt,
		EstimatedCompletionDate: p.DueAt,
		CompletedAt:             p.CompletedAt,
	}
}
