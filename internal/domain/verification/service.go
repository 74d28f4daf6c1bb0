package verification

import "context"

type Service interface {
	// Start issues a fresh code for the subject, expiring any earlier
	// outstanding codes.
	Start(ctx context.Context, userID string, req *StartVerificationRequest) (*CodeResponse, error)
	// Confirm fetches the subject's public RSI page and, if the active
	// code appears verbatim in the body, marks the subject verified.
	Confirm(ctx context.Context, userID, subjectType, subjectID string) (*ConfirmResponse, error)
}
