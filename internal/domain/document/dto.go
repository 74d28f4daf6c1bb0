package document

import (
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/validator"
)

type CreateDocumentRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Body        string `json:"body"`
	MinRole     string `json:"min_role"`
	RequiresAck bool   `json:"requires_ack"`
	Publish     bool   `json:"publish"`
}

func (r *CreateDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

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

	if !validator.WithinLimit(r.Category, 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must not exceed 100 characters",
		})
	}

	if !validator.WithinLimit(r.Body, 50000) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body must not exceed 50000 characters",
		})
	}

	if validator.IsEmpty(r.MinRole) {
		errs = append(errs, validator.ValidationError{
			Field:   "min_role",
			Message: "min_role is required",
		})
	} else if !member.Role(r.MinRole).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "min_role",
			Message: "min_role must be one of: owner, officer, hr, member",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateDocumentRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Body        string `json:"body"`
	MinRole     string `json:"min_role"`
	RequiresAck *bool  `json:"requires_ack,omitempty"`
}

func (r *UpdateDocumentRequest) Validate() error {
	req := CreateDocumentRequest{Title: r.Title, Category: r.Category, Body: r.Body, MinRole: r.MinRole}
	return req.Validate()
}

type ListDocumentsFilter struct {
	// Role is the requesting member's role; documents above it are
	// filtered out.
	Role               member.Role
	IncludeUnpublished bool
	Page               int
	Limit              int
}

type DocumentResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	AuthorID       string `json:"author_id"`
	AuthorHandle   string `json:"author_handle,omitempty"`
	Title          string `json:"title"`
	Category       string `json:"category,omitempty"`
	Body           string `json:"body,omitempty"`
	FileName       string `json:"file_name,omitempty"`
	FileSize       int64  `json:"file_size,omitempty"`
	ContentType    string `json:"content_type,omitempty"`
	FileURL        string `json:"file_url,omitempty"`
	MinRole        string `json:"min_role"`
	RequiresAck    bool   `json:"requires_ack"`
	AckCount       int    `json:"ack_count"`
	Acknowledged   bool   `json:"acknowledged"`
	PublishedAt    string `json:"published_at,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int                `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

type AcknowledgmentResponse struct {
	UserID         string `json:"user_id"`
	UserHandle     string `json:"user_handle,omitempty"`
	AcknowledgedAt string `json:"acknowledged_at"`
}

func ToResponse(d *Document) DocumentResponse {
	resp := DocumentResponse{
		ID:             d.ID,
		OrganizationID: d.OrganizationID,
		AuthorID:       d.AuthorID,
		AuthorHandle:   d.AuthorHandle,
		Title:          d.Title,
		Category:       d.Category,
		Body:           d.Body,
		FileName:       d.FileName,
		FileSize:       d.FileSize,
		ContentType:    d.ContentType,
		MinRole:        string(d.MinRole),
		RequiresAck:    d.RequiresAck,
		AckCount:       d.AckCount,
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      d.UpdatedAt.Format(time.RFC3339),
	}
	if d.PublishedAt != nil {
		resp.PublishedAt = d.PublishedAt.Format(time.RFC3339)
	}
	return resp
}

func ToAckResponse(a *Acknowledgment) AcknowledgmentResponse {
	return AcknowledgmentResponse{
		UserID:         a.UserID,
		UserHandle:     a.UserHandle,
		AcknowledgedAt: a.AcknowledgedAt.Format(time.RFC3339),
	}
}
