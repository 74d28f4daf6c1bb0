package comment

import (
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/pkg/validator"
)

type PostCommentRequest struct {
	Body   string `json:"body"`
	Rating *int   `json:"rating,omitempty"`
}

func (r *PostCommentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body is required",
		})
	} else if !validator.WithinLimit(r.Body, 2000) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body must not exceed 2000 characters",
		})
	}

	if r.Rating != nil && !validator.IsValidRating(*r.Rating) {
		errs = append(errs, validator.ValidationError{
			Field:   "rating",
			Message: "rating must be between 1 and 5",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateCommentRequest struct {
	Body   string `json:"body"`
	Rating *int   `json:"rating,omitempty"`
}

func (r *UpdateCommentRequest) Validate() error {
	req := PostCommentRequest{Body: r.Body, Rating: r.Rating}
	return req.Validate()
}

type ListCommentsFilter struct {
	RatedOnly bool
	Page      int
	Limit     int
}

type CommentResponse struct {
	ID                string `json:"id"`
	OrganizationID    string `json:"organization_id"`
	AuthorID          string `json:"author_id"`
	AuthorHandle      string `json:"author_handle"`
	AuthorDisplayName string `json:"author_display_name,omitempty"`
	AuthorAvatarURL   string `json:"author_avatar_url,omitempty"`
	Body              string `json:"body"`
	Rating            *int   `json:"rating,omitempty"`
	EditedAt          string `json:"edited_at,omitempty"`
	CreatedAt         string `json:"created_at"`
}

type ListCommentsResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

func ToResponse(c *Comment) CommentResponse {
	resp := CommentResponse{
		ID:                c.ID,
		OrganizationID:    c.OrganizationID,
		AuthorID:          c.AuthorID,
		AuthorHandle:      c.AuthorHandle,
		AuthorDisplayName: c.AuthorDisplayName,
		AuthorAvatarURL:   c.AuthorAvatarURL,
		Body:              c.Body,
		Rating:            c.Rating,
		CreatedAt:         c.CreatedAt.Format(time.RFC3339),
	}
	if c.EditedAt != nil {
		resp.EditedAt = c.EditedAt.Format(time.RFC3339)
	}
	return resp
}
