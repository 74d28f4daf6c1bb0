package member

import (
	"github.com/versecrew/versecrew-backend-go/internal/pkg/validator"
)

type MemberResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Handle      *string `json:"handle,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Role        Role    `json:"role"`
	Title       *string `json:"title,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	JoinedAt    string  `json:"joined_at"`
}

type ListMembersResponse struct {
	Members  []MemberResponse `json:"members"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type ListMembersFilter struct {
	Role     *Role
	Search   string
	Page     int
	PageSize int
}

type UpdateMemberRoleRequest struct {
	MemberID string `json:"-"`
	Role     string `json:"role"`
}

func (r *UpdateMemberRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	} else {
		validRoles := []string{string(RoleOfficer), string(RoleHR), string(RoleMember)}
		if !validator.IsInSlice(r.Role, validRoles) {
			errs = append(errs, validator.ValidationError{
				Field:   "role",
				Message: "role must be one of officer, hr, member",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateMemberNotesRequest struct {
	MemberID string  `json:"-"`
	Title    *string `json:"title,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *UpdateMemberNotesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && !validator.WithinLimit(*r.Title, 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 100 characters",
		})
	}

	if r.Notes != nil && !validator.WithinLimit(*r.Notes, 2000) {
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

// ToResponse converts a Member entity to its API shape.
func ToResponse(m Member) MemberResponse {
	return MemberResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		Handle:      m.Handle,
		DisplayName: m.DisplayName,
		Role:        m.Role,
		Title:       m.Title,
		Notes:       m.Notes,
		JoinedAt:    m.JoinedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
