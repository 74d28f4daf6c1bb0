package organization

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/onboarding"
	"github.com/versecrew/versecrew-backend-go/internal/domain/organization"
	"github.com/versecrew/versecrew-backend-go/internal/fixtures"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/storage"
	"github.com/versecrew/versecrew-backend-go/internal/repository/postgresql"
)

type OrganizationService struct {
	db *database.DB
	organization.OrganizationRepository
	memberRepo   member.MemberRepository
	templateRepo onboarding.TemplateRepository
	fileStorage  storage.FileStorage
}

func NewOrganizationService(
	db *database.DB,
	organizationRepository organization.OrganizationRepository,
	memberRepository member.MemberRepository,
	templateRepository onboarding.TemplateRepository,
	fileStorage storage.FileStorage,
) organization.OrganizationService {
	return &OrganizationService{
		db:                     db,
		OrganizationRepository: organizationRepository,
		memberRepo:             memberRepository,
		templateRepo:           templateRepository,
		fileStorage:            fileStorage,
	}
}

// Create registers the org and makes the creator its owner in one
// transaction. The SID is normalized to upper case before the uniqueness
// check so "drake" and "DRAKE" collide.
func (s *OrganizationService) Create(ctx context.Context, ownerUserID string, req organization.CreateOrganizationRequest) (organization.OrganizationResponse, error) {
	sid := strings.ToUpper(req.SID)

	if _, err := s.OrganizationRepository.GetBySID(ctx, sid); err == nil {
		return organization.OrganizationResponse{}, organization.ErrSIDTaken
	}

	org := organization.Organization{
		SID:            sid,
		Name:           req.Name,
		Description:    req.Description,
		Archetype:      req.Archetype,
		PrimaryFocus:   req.PrimaryFocus,
		Language:       req.Language,
		RecruitingOpen: req.RecruitingOpen,
	}

	var created organization.Organization
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		var err error
		created, err = s.OrganizationRepository.Create(txCtx, org)
		if err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}

		owner := member.Member{
			OrganizationID: created.ID,
			UserID:         ownerUserID,
			Role:           member.RoleOwner,
		}
		if _, err := s.memberRepo.Create(txCtx, owner); err != nil {
			return fmt.Errorf("failed to create owner membership: %w", err)
		}

		if err := s.OrganizationRepository.AdjustMemberCount(txCtx, created.ID, 1); err != nil {
			return fmt.Errorf("failed to set member count: %w", err)
		}

		for _, tmpl := range fixtures.GetDefaultOnboardingTemplates(created.ID) {
			if _, err := s.templateRepo.Create(txCtx, tmpl); err != nil {
				return fmt.Errorf("failed to seed onboarding template %q: %w", tmpl.RoleName, err)
			}
		}

		return nil
	})
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	created.MemberCount = 1
	return s.toResponse(ctx, created), nil
}

func (s *OrganizationService) Get(ctx context.Context, id string) (organization.OrganizationResponse, error) {
	org, err := s.OrganizationRepository.GetByID(ctx, id)
	if err != nil {
		return organization.OrganizationResponse{}, fmt.Errorf("failed to get organization: %w", err)
	}
	return s.toResponse(ctx, org), nil
}

func (s *OrganizationService) GetBySID(ctx context.Context, sid string) (organization.OrganizationResponse, error) {
	org, err := s.OrganizationRepository.GetBySID(ctx, strings.ToUpper(sid))
	if err != nil {
		return organization.OrganizationResponse{}, fmt.Errorf("failed to get organization by SID: %w", err)
	}
	return s.toResponse(ctx, org), nil
}

func (s *OrganizationService) List(ctx context.Context, filter organization.ListOrganizationsFilter) (organization.ListOrganizationsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	orgs, total, err := s.OrganizationRepository.List(ctx, filter)
	if err != nil {
		return organization.ListOrganizationsResponse{}, fmt.Errorf("failed to list organizations: %w", err)
	}

	responses := make([]organization.OrganizationResponse, len(orgs))
	for i, org := range orgs {
		responses[i] = s.toResponse(ctx, org)
	}

	return organization.ListOrganizationsResponse{
		Organizations: responses,
		Total:         total,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
	}, nil
}

func (s *OrganizationService) Update(ctx context.Context, req organization.UpdateOrganizationRequest) error {
	org, err := s.OrganizationRepository.GetByID(ctx, req.ID)
	if err != nil {
		return fmt.Errorf("failed to get organization: %w", err)
	}
	if org.IsArchived() {
		return organization.ErrOrganizationArchived
	}

	if err := s.OrganizationRepository.Update(ctx, req); err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}

	return nil
}

func (s *OrganizationService) Archive(ctx context.Context, id string) error {
	org, err := s.OrganizationRepository.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get organization: %w", err)
	}
	if org.IsArchived() {
		return organization.ErrOrganizationArchived
	}

	if err := s.OrganizationRepository.Archive(ctx, id); err != nil {
		return fmt.Errorf("failed to archive organization: %w", err)
	}

	return nil
}

func (s *OrganizationService) UploadLogo(ctx context.Context, id string, file io.Reader, filename string) (string, error) {
	org, err := s.OrganizationRepository.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to get organization: %w", err)
	}
	if org.IsArchived() {
		return "", organization.ErrOrganizationArchived
	}

	ext := strings.ToLower(filepath.Ext(filename))
	path := fmt.Sprintf("organizations/%s/logo%s", org.ID, ext)

	storedPath, err := s.fileStorage.Upload(ctx, file, path, contentTypeFromExt(ext))
	if err != nil {
		return "", fmt.Errorf("failed to store logo: %w", err)
	}

	if err := s.OrganizationRepository.SetLogoPath(ctx, org.ID, storedPath); err != nil {
		return "", fmt.Errorf("failed to save logo path: %w", err)
	}

	url, err := s.fileStorage.GetURL(ctx, storedPath, time.Hour)
	if err != nil {
		return storedPath, nil
	}
	return url, nil
}

func contentTypeFromExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func (s *OrganizationService) toResponse(ctx context.Context, org organization.Organization) organization.OrganizationResponse {
	resp := organization.OrganizationResponse{
		ID:             org.ID,
		SID:            org.SID,
		Name:           org.Name,
		Description:    org.Description,
		Archetype:      org.Archetype,
		PrimaryFocus:   org.PrimaryFocus,
		Language:       org.Language,
		RecruitingOpen: org.RecruitingOpen,
		Verified:       org.Verified,
		MemberCount:    org.MemberCount,
		RatingCount:    org.RatingCount,
		RatingAverage:  org.RatingAverage,
		CreatedAt:      org.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Archived:       org.IsArchived(),
	}

	if org.LogoPath != nil {
		if url, err := s.fileStorage.GetURL(ctx, *org.LogoPath, time.Hour); err == nil {
			resp.LogoURL = &url
		}
	}

	return resp
}
