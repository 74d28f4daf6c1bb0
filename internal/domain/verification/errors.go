package verification

import "errors"

var (
	ErrCodeNotFound    = errors.New("verification code not found")
	ErrCodeExpired     = errors.New("verification code has expired")
	ErrCodeNotOnPage   = errors.New("verification code not found on page")
	ErrAlreadyVerified = errors.New("subject is already verified")
	ErrSubjectMismatch = errors.New("verification code belongs to a different subject")
	ErrPageUnavailable = errors.New("could not fetch the public page")
)
