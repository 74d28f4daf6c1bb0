package member

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/organization"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
	"github.com/versecrew/versecrew-backend-go/internal/repository/postgresql"
)

type MemberService struct {
	db *database.DB
	member.MemberRepository
	orgRepo organization.OrganizationRepository
}

func NewMemberService(
	db *database.DB,
	memberRepository member.MemberRepository,
	organizationRepository organization.OrganizationRepository,
) member.MemberService {
	return &MemberService{
		db:               db,
		MemberRepository: memberRepository,
		orgRepo:          organizationRepository,
	}
}

func (s *MemberService) List(ctx context.Context, organizationID string, filter member.ListMembersFilter) (member.ListMembersResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	members, total, err := s.MemberRepository.ListByOrganization(ctx, organizationID, filter)
	if err != nil {
		return member.ListMembersResponse{}, fmt.Errorf("failed to list members: %w", err)
	}

	responses := make([]member.MemberResponse, len(members))
	for i, m := range members {
		responses[i] = member.ToResponse(m)
	}

	return member.ListMembersResponse{
		Members:  responses,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *MemberService) Get(ctx context.Context, memberID string) (member.MemberResponse, error) {
	m, err := s.MemberRepository.GetByID(ctx, memberID)
	if err != nil {
		return member.MemberResponse{}, fmt.Errorf("failed to get member: %w", err)
	}
	return member.ToResponse(m), nil
}

// UpdateRole changes a member's role. Ownership is never granted this way
// and the owner's own role never changes; transfer would be a dedicated
// operation. Officers cannot promote past their own rank.
func (s *MemberService) UpdateRole(ctx context.Context, callerUserID string, req member.UpdateMemberRoleRequest) error {
	m, err := s.MemberRepository.GetByID(ctx, req.MemberID)
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}

	newRole := member.Role(req.Role)
	if newRole == member.RoleOwner {
		return member.ErrOwnerRoleNotGrantable
	}
	if m.Role == member.RoleOwner {
		return member.ErrCannotChangeOwnerRole
	}

	caller, err := s.MemberRepository.GetByOrgAndUser(ctx, m.OrganizationID, callerUserID)
	if err != nil {
		return fmt.Errorf("failed to get caller membership: %w", err)
	}
	if !caller.Role.AtLeast(newRole) {
		return fmt.Errorf("%w: cannot grant a role above your own", member.ErrOwnerRoleNotGrantable)
	}

	if err := s.MemberRepository.UpdateRole(ctx, req.MemberID, newRole); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	return nil
}

func (s *MemberService) UpdateNotes(ctx context.Context, req member.UpdateMemberNotesRequest) error {
	if _, err := s.MemberRepository.GetByID(ctx, req.MemberID); err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}

	if err := s.MemberRepository.UpdateNotes(ctx, req); err != nil {
		return fmt.Errorf("failed to update member notes: %w", err)
	}

	return nil
}

func (s *MemberService) Remove(ctx context.Context, memberID string) error {
	m, err := s.MemberRepository.GetByID(ctx, memberID)
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}
	if m.Role == member.RoleOwner {
		return member.ErrCannotRemoveOwner
	}

	return s.remove(ctx, m)
}

func (s *MemberService) Leave(ctx context.Context, organizationID, userID string) error {
	m, err := s.MemberRepository.GetByOrgAndUser(ctx, organizationID, userID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}
	if m.Role == member.RoleOwner {
		return member.ErrCannotRemoveOwner
	}

	return s.remove(ctx, m)
}

func (s *MemberService) remove(ctx context.Context, m member.Member) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		if err := s.MemberRepository.Delete(txCtx, m.ID); err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}
		if err := s.orgRepo.AdjustMemberCount(txCtx, m.OrganizationID, -1); err != nil {
			return fmt.Errorf("failed to adjust member count: %w", err)
		}

		return nil
	})
}
