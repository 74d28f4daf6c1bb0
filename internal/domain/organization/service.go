package organization

import (
	"context"
	"io"
)

type OrganizationService interface {
	Create(ctx context.Context, ownerUserID string, req CreateOrganizationRequest) (OrganizationResponse, error)
	Get(ctx context.Context, id string) (OrganizationResponse, error)
	GetBySID(ctx context.Context, sid string) (OrganizationResponse, error)
	List(ctx context.Context, filter ListOrganizationsFilter) (ListOrganizationsResponse, error)
	Update(ctx context.Context, req UpdateOrganizationRequest) error
	Archive(ctx context.Context, id string) error
	UploadLogo(ctx context.Context, id string, file io.Reader, filename string) (string, error)
}
