package verification

import (
	"strings"
	"time"
)

// SubjectType says what a verification code proves ownership of.
type SubjectType string

const (
	SubjectUser         SubjectType = "user"         // RSI citizen handle
	SubjectOrganization SubjectType = "organization" // RSI org SID
)

// codeTTL is how long a generated code stays usable.
const codeTTL = 24 * time.Hour

// Code is a one-time verification challenge. The owner places the code
// text on their RSI profile (or org page) and asks us to confirm; we
// fetch the public page and look for the code verbatim.
type Code struct {
	ID          string
	SubjectType SubjectType
	SubjectID   string
	UserID      string
	Code        string
	ExpiresAt   time.Time
	ConsumedAt  *time.Time
	CreatedAt   time.Time
}

// IsExpired reports whether the code can no longer be confirmed.
func (c *Code) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// IsConsumed reports whether the code was already used.
func (c *Code) IsConsumed() bool {
	return c.ConsumedAt != nil
}

// ContainsCode reports whether the fetched page body carries the code
// verbatim. Matching is a plain substring check; page markup is never
// interpreted.
func ContainsCode(pageBody, code string) bool {
	if code == "" {
		return false
	}
	return strings.Contains(pageBody, code)
}
