package member

import (
	"context"
)

type MemberRepository interface {
	Create(ctx context.Context, m Member) (Member, error)
	GetByID(ctx context.Context, id string) (Member, error)
	GetByOrgAndUser(ctx context.Context, organizationID, userID string) (Member, error)
	ListByOrganization(ctx context.Context, organizationID string, filter ListMembersFilter) ([]Member, int64, error)
	ListByUser(ctx context.Context, userID string) ([]Member, error)
	// ListUserIDsByRoles returns the user ids of members holding any of the
	// given roles. Used to fan notifications out to the HR staff of an org.
	ListUserIDsByRoles(ctx context.Context, organizationID string, roles []Role) ([]string, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	UpdateNotes(ctx context.Context, req UpdateMemberNotesRequest) error
	Delete(ctx context.Context, id string) error
	CountByOrganization(ctx context.Context, organizationID string) (int64, error)
}
