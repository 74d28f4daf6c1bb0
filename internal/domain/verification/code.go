package verification

import (
	"encoding/base32"
	"time"

	"github.com/google/uuid"
)

// codePrefix marks our codes so they are recognizable when pasted into
// a profile bio.
const codePrefix = "VC-"

var codeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateCode builds a fresh challenge code. The random part encodes a
// UUID so codes never collide across subjects.
func GenerateCode() string {
	id := uuid.New()
	return codePrefix + codeEncoding.EncodeToString(id[:])
}

// NewCode assembles an unsaved Code for the given subject.
func NewCode(subjectType SubjectType, subjectID, userID string, now time.Time) *Code {
	return &Code{
		SubjectType: subjectType,
		SubjectID:   subjectID,
		UserID:      userID,
		Code:        GenerateCode(),
		ExpiresAt:   now.Add(codeTTL),
	}
}
