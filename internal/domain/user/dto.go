package user

import (
	"github.com/versecrew/versecrew-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID             string  `json:"id"`
	Handle         string  `json:"handle"`
	DisplayName    string  `json:"display_name"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	HandleVerified bool    `json:"handle_verified"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// SyncAccountRequest is sent by the SPA after login to mirror the identity
// service profile into this service.
type SyncAccountRequest struct {
	Handle      string  `json:"handle"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

func (r *SyncAccountRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Handle) {
		errs = append(errs, validator.ValidationError{
			Field:   "handle",
			Message: "handle is required",
		})
	} else if !validator.IsValidHandle(r.Handle) {
		errs = append(errs, validator.ValidationError{
			Field:   "handle",
			Message: "handle must be 3-30 characters of letters, digits, underscore or hyphen",
		})
	}

	if validator.IsEmpty(r.DisplayName) {
		errs = append(errs, validator.ValidationError{
			Field:   "display_name",
			Message: "display_name is required",
		})
	} else if !validator.WithinLimit(r.DisplayName, 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "display_name",
			Message: "display_name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateProfileRequest updates the locally owned profile fields.
type UpdateProfileRequest struct {
	ID          string  `json:"-"`
	DisplayName *string `json:"display_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DisplayName != nil {
		if validator.IsEmpty(*r.DisplayName) {
			errs = append(errs, validator.ValidationError{
				Field:   "display_name",
				Message: "display_name must not be empty",
			})
		} else if !validator.WithinLimit(*r.DisplayName, 100) {
			errs = append(errs, validator.ValidationError{
				Field:   "display_name",
				Message: "display_name must not exceed 100 characters",
			})
		}
	}

	if r.Bio != nil && !validator.WithinLimit(*r.Bio, 1000) {
		errs = append(errs, validator.ValidationError{
			Field:   "bio",
			Message: "bio must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToResponse converts a User entity to its API shape.
func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Handle:         u.Handle,
		DisplayName:    u.DisplayName,
		AvatarURL:      u.AvatarURL,
		Bio:            u.Bio,
		HandleVerified: u.HandleVerified,
		CreatedAt:      u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      u.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
