package performance

import (
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/pkg/validator"
)

func validateRatings(ratings map[string]int, errs validator.ValidationErrors) validator.ValidationErrors {
	for category, score := range ratings {
		if validator.IsEmpty(category) {
			errs = append(errs, validator.ValidationError{
				Field:   "ratings",
				Message: "rating category must not be empty",
			})
			continue
		}
		if !validator.WithinLimit(category, 100) {
			errs = append(errs, validator.ValidationError{
				Field:   "ratings." + category,
				Message: "rating category must not exceed 100 characters",
			})
		}
		if !validator.IsValidRating(score) {
			errs = append(errs, validator.ValidationError{
				Field:   "ratings." + category,
				Message: "score must be between 1 and 5",
			})
		}
	}
	return errs
}

type CreateReviewRequest struct {
	OrganizationID string  `json:"-"`
	ReviewerID     string  `json:"-"`
	RevieweeID     string  `json:"reviewee_id"`
	PeriodStart    string  `json:"period_start"`
	PeriodEnd      string  `json:"period_end"`
	Summary        *string `json:"summary,omitempty"`
}

func (r *CreateReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RevieweeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "reviewee_id",
			Message: "reviewee_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be a date in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be a date in YYYY-MM-DD format",
		})
	}

	if startOK && endOK {
		if err := ValidatePeriod(start, end); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "period_end",
				Message: err.Error(),
			})
		}
	}

	if r.Summary != nil && !validator.WithinLimit(*r.Summary, 5000) {
		errs = append(errs, validator.ValidationError{
			Field:   "summary",
			Message: "summary must not exceed 5000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Period returns the parsed period bounds. Call Validate first.
func (r *CreateReviewRequest) Period() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.PeriodStart)
	end, _ := validator.IsValidDate(r.PeriodEnd)
	return start, end
}

type UpdateReviewRequest struct {
	OrganizationID string         `json:"-"`
	ReviewID       string         `json:"-"`
	Ratings        map[string]int `json:"ratings,omitempty"`
	Summary        *string        `json:"summary,omitempty"`
}

func (r *UpdateReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Ratings != nil {
		errs = validateRatings(r.Ratings, errs)
	}

	if r.Summary != nil && !validator.WithinLimit(*r.Summary, 5000) {
		errs = append(errs, validator.ValidationError{
			Field:   "summary",
			Message: "summary must not exceed 5000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateGoalRequest struct {
	OrganizationID string  `json:"-"`
	CreatorID      string  `json:"-"`
	UserID         string  `json:"user_id"`
	ReviewID       *string `json:"review_id,omitempty"`
	Title          string  `json:"title"`
	Description    *string `json:"description,omitempty"`
	TargetDate     *string `json:"target_date,omitempty"`
}

func (r *CreateGoalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	} else if !validator.WithinLimit(r.Title, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}

	if r.Description != nil && !validator.WithinLimit(*r.Description, 2000) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 2000 characters",
		})
	}

	if r.TargetDate != nil {
		if _, ok := validator.IsValidDate(*r.TargetDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "target_date",
				Message: "target_date must be a date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Target returns the parsed target date, if present. Call Validate first.
func (r *CreateGoalRequest) Target() *time.Time {
	if r.TargetDate == nil {
		return nil
	}
	t, _ := validator.IsValidDate(*r.TargetDate)
	return &t
}

type UpdateGoalProgressRequest struct {
	GoalID   string `json:"-"`
	Progress int    `json:"progress_percentage"`
}

func (r *UpdateGoalProgressRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidProgress(r.Progress) {
		errs = append(errs, validator.ValidationError{
			Field:   "progress_percentage",
			Message: "progress_percentage must be between 0 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListReviewsFilter struct {
	Status     *ReviewStatus
	RevieweeID *string
	Page       int
	PageSize   int
}

type ReviewResponse struct {
	ID             string       `json:"id"`
	OrganizationID string       `json:"organization_id"`
	RevieweeID     string       `json:"reviewee_id"`
	RevieweeHandle *string      `json:"reviewee_handle,omitempty"`
	ReviewerID     string       `json:"reviewer_id"`
	ReviewerHandle *string      `json:"reviewer_handle,omitempty"`
	PeriodStart    string       `json:"period_start"`
	PeriodEnd      string       `json:"period_end"`
	Ratings        Ratings      `json:"ratings,omitempty"`
	OverallRating  *float64     `json:"overall_rating,omitempty"`
	Summary        *string      `json:"summary,omitempty"`
	Status         ReviewStatus `json:"status"`
	SubmittedAt    *time.Time   `json:"submitted_at,omitempty"`
	AcknowledgedAt *time.Time   `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

type ListReviewsResponse struct {
	Reviews  []ReviewResponse `json:"reviews"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type GoalResponse struct {
	ID                 string     `json:"id"`
	OrganizationID     string     `json:"organization_id"`
	UserID             string     `json:"user_id"`
	Handle             *string    `json:"handle,omitempty"`
	ReviewID           *string    `json:"review_id,omitempty"`
	Title              string     `json:"title"`
	Description        *string    `json:"description,omitempty"`
	TargetDate         *time.Time `json:"target_date,omitempty"`
	ProgressPercentage int        `json:"progress_percentage"`
	Status             GoalStatus `json:"status"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ToReviewResponse converts a Review entity to its API shape.
func ToReviewResponse(r Review) ReviewResponse {
	return ReviewResponse{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		RevieweeID:     r.RevieweeID,
		RevieweeHandle: r.RevieweeHandle,
		ReviewerID:     r.ReviewerID,
		ReviewerHandle: r.ReviewerHandle,
		PeriodStart:    r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      r.PeriodEnd.Format("2006-01-02"),
		Ratings:        r.Ratings,
		OverallRating:  r.OverallRating,
		Summary:        r.Summary,
		Status:         r.Status,
		SubmittedAt:    r.SubmittedAt,
		AcknowledgedAt: r.AcknowledgedAt,
		CreatedAt:      r.CreatedAt,
	}
}

// ToGoalResponse converts a Goal entity to its API shape.
func ToGoalResponse(g Goal) GoalResponse {
	return GoalResponse{
		ID:                 g.ID,
		OrganizationID:     g.OrganizationID,
		UserID:             g.UserID,
		Handle:             g.Handle,
		ReviewID:           g.ReviewID,
		Title:              g.Title,
		Description:        g.Description,
		TargetDate:         g.TargetDate,
		ProgressPercentage: g.ProgressPercentage,
		Status:             g.Status,
		CompletedAt:        g.CompletedAt,
		CancelledAt:        g.CancelledAt,
		CreatedAt:          g.CreatedAt,
	}
}
