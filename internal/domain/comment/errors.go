package comment

import "errors"

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlreadyRated    = errors.New("user has already rated this organization")
	ErrNotAuthor       = errors.New("only the author can modify this comment")
)
