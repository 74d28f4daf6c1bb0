package verification

import (
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/pkg/validator"
)

type StartVerificationRequest struct {
	SubjectType string `json:"subject_type"`
	SubjectID   string `json:"subject_id"`
}

func (r *StartVerificationRequest) Validate() error {
	var errs validator.ValidationErrors

	switch SubjectType(r.SubjectType) {
	case SubjectUser, SubjectOrganization:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "subject_type",
			Message: "subject_type must be one of: user, organization",
		})
	}

	if validator.IsEmpty(r.SubjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject_id",
			Message: "subject_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CodeResponse struct {
	Code        string `json:"code"`
	SubjectType string `json:"subject_type"`
	SubjectID   string `json:"subject_id"`
	ExpiresAt   string `json:"expires_at"`
	// Instructions tell the user where to paste the code.
	Instructions string `json:"instructions"`
}

type ConfirmResponse struct {
	Verified   bool   `json:"verified"`
	SubjectID  string `json:"subject_id"`
	VerifiedAt string `json:"verified_at,omitempty"`
}

func ToCodeResponse(c *Code, instructions string) CodeResponse {
	return CodeResponse{
		Code:         c.Code,
		SubjectType:  string(c.SubjectType),
		SubjectID:    c.SubjectID,
		ExpiresAt:    c.ExpiresAt.Format(time.RFC3339),
		Instructions: instructions,
	}
}
