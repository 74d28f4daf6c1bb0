package document

import "errors"

var (
	ErrDocumentNotFound     = errors.New("document not found")
	ErrDocumentNotPublished = errors.New("document is not published")
	ErrAlreadyAcknowledged  = errors.New("document already acknowledged")
	ErrAckNotRequired       = errors.New("document does not require acknowledgment")
	ErrNotVisible           = errors.New("document is not visible to this role")
)
