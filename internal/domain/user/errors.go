package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrHandleTaken  = errors.New("handle already in use")
)
