package application

import "errors"

var (
	ErrApplicationNotFound     = errors.New("application not found")
	ErrDuplicateApplication    = errors.New("an application for this organization already exists")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrRejectionReasonRequired = errors.New("a rejection reason is required")
	ErrRecruitingClosed        = errors.New("organization is not recruiting")
	ErrAlreadyMember           = errors.New("user is already a member of this organization")
)
