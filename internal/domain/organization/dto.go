package organization

import (
	"strings"

	"github.com/versecrew/versecrew-backend-go/internal/pkg/validator"
)

var validArchetypes = []string{"corporation", "pmc", "syndicate", "exploration", "trading", "social", "piracy"}

type CreateOrganizationRequest struct {
	SID            string  `json:"sid"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	Archetype      *string `json:"archetype,omitempty"`
	PrimaryFocus   *string `json:"primary_focus,omitempty"`
	Language       *string `json:"language,omitempty"`
	RecruitingOpen bool    `json:"recruiting_open"`
}

func (r *CreateOrganizationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SID) {
		errs = append(errs, validator.ValidationError{
			Field:   "sid",
			Message: "sid is required",
		})
	} else if !validator.IsValidOrgSID(r.SID) {
		errs = append(errs, validator.ValidationError{
			Field:   "sid",
			Message: "sid must be 3-10 alphanumeric characters",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if !validator.WithinLimit(r.Name, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if r.Description != nil && !validator.WithinLimit(*r.Description, 5000) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 5000 characters",
		})
	}

	if r.Archetype != nil && !validator.IsInSlice(strings.ToLower(*r.Archetype), validArchetypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "archetype",
			Message: "unknown archetype",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateOrganizationRequest struct {
	ID             string  `json:"-"`
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	Archetype      *string `json:"archetype,omitempty"`
	PrimaryFocus   *string `json:"primary_focus,omitempty"`
	Language       *string `json:"language,omitempty"`
	RecruitingOpen *bool   `json:"recruiting_open,omitempty"`
}

func (r *UpdateOrganizationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		} else if !validator.WithinLimit(*r.Name, 255) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 255 characters",
			})
		}
	}

	if r.Description != nil && !validator.WithinLimit(*r.Description, 5000) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 5000 characters",
		})
	}

	if r.Archetype != nil && !validator.IsInSlice(strings.ToLower(*r.Archetype), validArchetypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "archetype",
			Message: "unknown archetype",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListOrganizationsFilter struct {
	Search         string
	RecruitingOpen *bool
	Verified       *bool
	Archetype      *string
	Page           int
	PageSize       int
}

type OrganizationResponse struct {
	ID             string  `json:"id"`
	SID            string  `json:"sid"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	Archetype      *string `json:"archetype,omitempty"`
	PrimaryFocus   *string `json:"primary_focus,omitempty"`
	Language       *string `json:"language,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
	RecruitingOpen bool    `json:"recruiting_open"`
	Verified       bool    `json:"verified"`
	MemberCount    int     `json:"member_count"`
	RatingCount    int     `json:"rating_count"`
	RatingAverage  float64 `json:"rating_average"`
	CreatedAt      string  `json:"created_at"`
	Archived       bool    `json:"archived"`
}

type ListOrganizationsResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
	Total         int64                  `json:"total"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}
