package organization

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrSIDTaken             = errors.New("organization SID already registered")
	ErrOrganizationArchived = errors.New("organization is archived")
	ErrAlreadyVerified      = errors.New("organization is already verified")
)
