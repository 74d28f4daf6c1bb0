package onboarding

import (
	"context"
	"time"
)

// TemplateRepository - interface for onboarding_templates table
type TemplateRepository interface {
	Create(ctx context.Context, template Template) (Template, error)
	GetByID(ctx context.Context, id string) (Template, error)
	GetByOrgAndRole(ctx context.Context, organizationID, roleName string) (Template, error)
	ListByOrganization(ctx context.Context, organizationID string, includeInactive bool) ([]Template, error)
	Update(ctx context.Context, template Template) error
	Deactivate(ctx context.Context, id string) error
	HasProgress(ctx context.Context, templateID string) (bool, error)
}

// ProgressRepository - interface for onboarding_progress table
type ProgressRepository interface {
	Create(ctx context.Context, progress Progress) (Progress, error)
	GetByID(ctx context.Context, id string) (Progress, error)
	// ExistsActive reports whether the user already has unfinished progress
	// for the template.
	ExistsActive(ctx context.Context, templateID, userID string) (bool, error)
	ListByOrganization(ctx context.Context, organizationID string, filter ListProgressFilter) ([]Progress, int64, error)
	ListByUser(ctx context.Context, userID string) ([]Progress, error)
	Update(ctx context.Context, progress Progress) error
	// MarkOverdue flips every unfinished record whose due date has passed and
	// returns the affected rows so callers can notify.
	MarkOverdue(ctx context.Context, asOf time.Time) ([]Progress, error)
}
