package member

import (
	"context"
)

type MemberService interface {
	List(ctx context.Context, organizationID string, filter ListMembersFilter) (ListMembersResponse, error)
	Get(ctx context.Context, memberID string) (MemberResponse, error)
	UpdateRole(ctx context.Context, callerUserID string, req UpdateMemberRoleRequest) error
	UpdateNotes(ctx context.Context, req UpdateMemberNotesRequest) error
	Remove(ctx context.Context, memberID string) error
	Leave(ctx context.Context, organizationID, userID string) error
}
