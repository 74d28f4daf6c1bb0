package application

import (
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/pkg/validator"
)

type SubmitApplicationRequest struct {
	OrganizationID string                 `json:"-"`
	UserID         string                 `json:"-"`
	CoverLetter    string                 `json:"cover_letter"`
	Experience     *string                `json:"experience,omitempty"`
	Availability   *string                `json:"availability,omitempty"`
	CustomFields   map[string]interface{} `json:"custom_fields,omitempty"`
}

func (r *SubmitApplicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CoverLetter) {
		errs = append(errs, validator.ValidationError{
			Field:   "cover_letter",
			Message: "cover_letter is required",
		})
	} else if !validator.WithinLimit(r.CoverLetter, 5000) {
		errs = append(errs, validator.ValidationError{
			Field:   "cover_letter",
			Message: "cover_letter must not exceed 5000 characters",
		})
	}

	if r.Experience != nil && !validator.WithinLimit(*r.Experience, 3000) {
		errs = append(errs, validator.ValidationError{
			Field:   "experience",
			Message: "experience must not exceed 3000 characters",
		})
	}

	if r.Availability != nil && !validator.WithinLimit(*r.Availability, 1000) {
		errs = append(errs, validator.ValidationError{
			Field:   "availability",
			Message: "availability must not exceed 1000 characters",
		})
	}

	if r.CustomFields != nil {
		size, err := validator.SerializedSize(r.CustomFields)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "custom_fields",
				Message: "custom_fields is not serializable",
			})
		} else if size > 10*1024 {
			errs = append(errs, validator.ValidationError{
				Field:   "custom_fields",
				Message: "custom_fields must not exceed 10KB when serialized",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScheduleInterviewRequest struct {
	OrganizationID string `json:"-"`
	ApplicationID  string `json:"-"`
	ReviewerID     string `json:"-"`
	InterviewAt    string `json:"interview_at"`
}

func (r *ScheduleInterviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.InterviewAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "interview_at",
			Message: "interview_at is required",
		})
	} else {
		t, ok := validator.IsValidDateTime(r.InterviewAt)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "interview_at",
				Message: "interview_at must be an ISO8601 timestamp",
			})
		} else if t.Before(time.Now()) {
			errs = append(errs, validator.ValidationError{
				Field:   "interview_at",
				Message: "interview_at must be in the future",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// InterviewTime returns the parsed interview timestamp. Call Validate first.
func (r *ScheduleInterviewRequest) InterviewTime() time.Time {
	t, _ := validator.IsValidDateTime(r.InterviewAt)
	return t
}

type RejectApplicationRequest struct {
	OrganizationID string `json:"-"`
	ApplicationID  string `json:"-"`
	ReviewerID     string `json:"-"`
	Reason         string `json:"reason"`
}

func (r *RejectApplicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if !validator.WithinLimit(r.Reason, 1000) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateReviewNotesRequest struct {
	OrganizationID string `json:"-"`
	ApplicationID  string `json:"-"`
	ReviewerID     string `json:"-"`
	Notes          string `json:"notes"`
}

func (r *UpdateReviewNotesRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.WithinLimit(r.Notes, 2000) {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListApplicationsFilter struct {
	Status   *Status
	Page     int
	PageSize int
}

type ApplicationResponse struct {
	ID                   string                 `json:"id"`
	OrganizationID       string                 `json:"organization_id"`
	OrganizationName     *string                `json:"organization_name,omitempty"`
	UserID               string                 `json:"user_id"`
	ApplicantHandle      *string                `json:"applicant_handle,omitempty"`
	ApplicantDisplayName *string                `json:"applicant_display_name,omitempty"`
	CoverLetter          string                 `json:"cover_letter"`
	Experience           *string                `json:"experience,omitempty"`
	Availability         *string                `json:"availability,omitempty"`
	CustomFields         map[string]interface{} `json:"custom_fields,omitempty"`
	Status               Status                 `json:"status"`
	ReviewerID           *string                `json:"reviewer_id,omitempty"`
	ReviewNotes          *string                `json:"review_notes,omitempty"`
	RejectionReason      *string                `json:"rejection_reason,omitempty"`
	InterviewAt          *time.Time             `json:"interview_at,omitempty"`
	SubmittedAt          time.Time              `json:"submitted_at"`
	DecidedAt            *time.Time             `json:"decided_at,omitempty"`
	AllowedNext          []Status               `json:"allowed_next_statuses"`
}

type ListApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
}

// ToResponse converts an Application entity to its API shape.
func ToResponse(a Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                   a.ID,
		OrganizationID:       a.OrganizationID,
		OrganizationName:     a.OrganizationName,
		UserID:               a.UserID,
		ApplicantHandle:      a.ApplicantHandle,
		ApplicantDisplayName: a.ApplicantDisplayName,
		CoverLetter:          a.CoverLetter,
		Experience:           a.Experience,
		Availability:         a.Availability,
		CustomFields:         a.CustomFields,
		Status:               a.Status,
		ReviewerID:           a.ReviewerID,
		ReviewNotes:          a.ReviewNotes,
		RejectionReason:      a.RejectionReason,
		InterviewAt:          a.InterviewAt,
		SubmittedAt:          a.SubmittedAt,
		DecidedAt:            a.DecidedAt,
		AllowedNext:          AllowedNext(a.Status),
	}
}
