package onboarding

import (
	"context"

	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
)

// By-id lookups carry the organization id from the URL scope; templates and
// progress records of other organizations are reported as not found.
type OnboardingService interface {
	// Templates
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (TemplateResponse, error)
	GetTemplate(ctx context.Context, organizationID, id string) (TemplateResponse, error)
	ListTemplates(ctx context.Context, organizationID string, includeInactive bool) ([]TemplateResponse, error)
	UpdateTemplate(ctx context.Context, req UpdateTemplateRequest) (TemplateResponse, error)
	DeactivateTemplate(ctx context.Context, organizationID, id string) error

	// Progress
	Assign(ctx context.Context, req AssignTemplateRequest) (ProgressResponse, error)
	GetProgress(ctx context.Context, organizationID, id string) (ProgressResponse, error)
	ListOrgProgress(ctx context.Context, organizationID string, filter ListProgressFilter) (ListProgressResponse, error)
	ListMyProgress(ctx context.Context, userID string) ([]ProgressResponse, error)
	// SetTaskCompletion is open to the assignee; anyone else needs the
	// onboarding.manage permission.
	SetTaskCompletion(ctx context.Context, caller member.Member, req TaskCompletionRequest) (ProgressResponse, error)
}
