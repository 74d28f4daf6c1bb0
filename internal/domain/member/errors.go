package member

import "errors"

var (
	ErrMemberNotFound        = errors.New("member not found")
	ErrAlreadyMember         = errors.New("user is already a member of this organization")
	ErrCannotRemoveOwner     = errors.New("the organization owner cannot be removed")
	ErrCannotChangeOwnerRole = errors.New("the organization owner role cannot be changed")
	ErrOwnerRoleNotGrantable = errors.New("ownership is transferred, not granted")
)
