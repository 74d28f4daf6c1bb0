package verification

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c *Code) (*Code, error)
	// GetActiveBySubject returns the newest unconsumed, unexpired code
	// for the subject.
	GetActiveBySubject(ctx context.Context, subjectType SubjectType, subjectID string, now time.Time) (*Code, error)
	// DeactivateBySubject expires any outstanding codes for the subject
	// so a regenerated code is the only live one.
	DeactivateBySubject(ctx context.Context, subjectType SubjectType, subjectID string) error
	Consume(ctx context.Context, id string, at time.Time) error
	// DeleteExpired removes codes past their expiry and returns how
	// many rows were purged.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
