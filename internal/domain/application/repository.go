package application

import (
	"context"
	"time"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app Application) (Application, error)
	GetByID(ctx context.Context, id string) (Application, error)
	// ExistsByOrgAndUser reports whether ANY application row exists for the
	// pair, decided or not. The duplicate guard keys on existence alone.
	ExistsByOrgAndUser(ctx context.Context, organizationID, userID string) (bool, error)
	ListByOrganization(ctx context.Context, organizationID string, filter ListApplicationsFilter) ([]Application, int64, error)
	ListByUser(ctx context.Context, userID string, filter ListApplicationsFilter) ([]Application, int64, error)
	// UpdateStatus persists a transition together with its review metadata.
	// decidedAt is set only when the new status is terminal.
	UpdateStatus(ctx context.Context, id string, status Status, reviewerID string, decidedAt *time.Time) error
	SetInterview(ctx context.Context, id string, reviewerID string, interviewAt time.Time) error
	SetRejection(ctx context.Context, id string, reviewerID string, reason string, decidedAt time.Time) error
	SetReviewNotes(ctx context.Context, id string, reviewerID string, notes string) error
}
