package organization

import (
	"context"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org Organization) (Organization, error)
	GetByID(ctx context.Context, id string) (Organization, error)
	GetBySID(ctx context.Context, sid string) (Organization, error)
	List(ctx context.Context, filter ListOrganizationsFilter) ([]Organization, int64, error)
	Update(ctx context.Context, req UpdateOrganizationRequest) error
	Archive(ctx context.Context, id string) error
	SetVerified(ctx context.Context, id string, verified bool) error
	SetLogoPath(ctx context.Context, id string, path string) error
	// AdjustMemberCount applies a delta to the cached member count.
	AdjustMemberCount(ctx context.Context, id string, delta int) error
	// SetRatingAggregate stores the recomputed comment rating aggregate.
	SetRatingAggregate(ctx context.Context, id string, count int, average float64) error
}
