package verification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/organization"
	"github.com/versecrew/versecrew-backend-go/internal/domain/user"
	"github.com/versecrew/versecrew-backend-go/internal/domain/verification"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/rsi"
)

type VerificationService struct {
	verification.Repository
	userRepo   user.UserRepository
	orgRepo    organization.OrganizationRepository
	memberRepo member.MemberRepository
	fetcher    rsi.PageFetcher
}

func NewVerificationService(
	verificationRepository verification.Repository,
	userRepository user.UserRepository,
	orgRepository organization.OrganizationRepository,
	memberRepository member.MemberRepository,
	fetcher rsi.PageFetcher,
) verification.Service {
	return &VerificationService{
		Repository: verificationRepository,
		userRepo:   userRepository,
		orgRepo:    orgRepository,
		memberRepo: memberRepository,
		fetcher:    fetcher,
	}
}

func (s *VerificationService) Start(ctx context.Context, userID string, req *verification.StartVerificationRequest) (*verification.CodeResponse, error) {
	subjectType := verification.SubjectType(req.SubjectType)

	instructions, err := s.authorizeSubject(ctx, userID, subjectType, req.SubjectID)
	if err != nil {
		return nil, err
	}

	// Only one code per subject stays live; regenerating kills the rest.
	if err := s.Repository.DeactivateBySubject(ctx, subjectType, req.SubjectID); err != nil {
		return nil, fmt.Errorf("failed to deactivate prior codes: %w", err)
	}

	code, err := s.Repository.Create(ctx, verification.NewCode(subjectType, req.SubjectID, userID, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to create verification code: %w", err)
	}

	resp := verification.ToCodeResponse(code, instructions)
	return &resp, nil
}

func (s *VerificationService) Confirm(ctx context.Context, userID, subjectType, subjectID string) (*verification.ConfirmResponse, error) {
	st := verification.SubjectType(subjectType)

	if _, err := s.authorizeSubject(ctx, userID, st, subjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	code, err := s.Repository.GetActiveBySubject(ctx, st, subjectID, now)
	if err != nil {
		return nil, err
	}
	if code.IsExpired(now) {
		return nil, verification.ErrCodeExpired
	}

	body, err := s.fetchPage(ctx, st, subjectID)
	if err != nil {
		slog.Warn("verification page fetch failed",
			"subject_type", subjectType,
			"subject_id", subjectID,
			"error", err,
		)
		return nil, verification.ErrPageUnavailable
	}

	if !verification.ContainsCode(body, code.Code) {
		return nil, verification.ErrCodeNotOnPage
	}

	switch st {
	case verification.SubjectUser:
		err = s.userRepo.SetHandleVerified(ctx, subjectID, true)
	case verification.SubjectOrganization:
		err = s.orgRepo.SetVerified(ctx, subjectID, true)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark subject verified: %w", err)
	}

	if err := s.Repository.Consume(ctx, code.ID, now); err != nil {
		return nil, fmt.Errorf("failed to consume verification code: %w", err)
	}

	return &verification.ConfirmResponse{
		Verified:   true,
		SubjectID:  subjectID,
		VerifiedAt: now.Format(time.RFC3339),
	}, nil
}

// authorizeSubject checks the requester may verify the subject, that the
// subject exists and is not already verified, and returns the instructions
// shown alongside a fresh code.
func (s *VerificationService) authorizeSubject(ctx context.Context, userID string, subjectType verification.SubjectType, subjectID string) (string, error) {
	switch subjectType {
	case verification.SubjectUser:
		if subjectID != userID {
			return "", verification.ErrSubjectMismatch
		}
		u, err := s.userRepo.GetByID(ctx, subjectID)
		if err != nil {
			return "", fmt.Errorf("failed to get user: %w", err)
		}
		if u.HandleVerified {
			return "", verification.ErrAlreadyVerified
		}
		return fmt.Sprintf("Paste this code into the bio of your RSI citizen profile (%s), then confirm.", u.Handle), nil

	case verification.SubjectOrganization:
		org, err := s.orgRepo.GetByID(ctx, subjectID)
		if err != nil {
			return "", fmt.Errorf("failed to get organization: %w", err)
		}
		if org.Verified {
			return "", verification.ErrAlreadyVerified
		}
		m, err := s.memberRepo.GetByOrgAndUser(ctx, subjectID, userID)
		if err != nil {
			return "", verification.ErrSubjectMismatch
		}
		if !member.HasPermission(m.Role, member.PermissionOrgManage) {
			return "", verification.ErrSubjectMismatch
		}
		return fmt.Sprintf("Paste this code into the history section of your RSI organization page (%s), then confirm.", org.SID), nil

	default:
		return "", verification.ErrSubjectMismatch
	}
}

func (s *VerificationService) fetchPage(ctx context.Context, subjectType verification.SubjectType, subjectID string) (string, error) {
	switch subjectType {
	case verification.SubjectUser:
		u, err := s.userRepo.GetByID(ctx, subjectID)
		if err != nil {
			return "", err
		}
		return s.fetcher.CitizenPage(ctx, u.Handle)
	case verification.SubjectOrganization:
		org, err := s.orgRepo.GetByID(ctx, subjectID)
		if err != nil {
			return "", err
		}
		return s.fetcher.OrganizationPage(ctx, org.SID)
	}
	return "", verification.ErrSubjectMismatch
}
