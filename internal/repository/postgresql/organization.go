package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/organization"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

type organizationRepositoryImpl struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepositoryImpl{db: db}
}

const organizationColumns = `id, sid, name, description, archetype, primary_focus, language, logo_path,
		recruiting_open, verified, member_count, rating_count, rating_average,
		created_at, updated_at, archived_at`

func scanOrganization(row pgx.Row) (organization.Organization, error) {
	var o organization.Organization
	err := row.Scan(
		&o.ID,
		&o.SID,
		&o.Name,
		&o.Description,
		&o.Archetype,
		&o.PrimaryFocus,
		&o.Language,
		&o.LogoPath,
		&o.RecruitingOpen,
		&o.Verified,
		&o.MemberCount,
		&o.RatingCount,
		&o.RatingAverage,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.ArchivedAt,
	)
	return o, err
}

// Create implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) Create(ctx context.Context, org organization.Organization) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO organizations (
			id, sid, name, description, archetype, primary_focus, language,
			recruiting_open,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6,
			$7,
			NOW(), NOW()
		) RETURNING ` + organizationColumns + `
	`

	return scanOrganization(q.QueryRow(ctx, query,
		org.SID, org.Name, org.Description, org.Archetype, org.PrimaryFocus, org.Language,
		org.RecruitingOpen,
	))
}

// GetByID implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + organizationColumns + `
		FROM organizations
		WHERE id = $1
	`

	o, err := scanOrganization(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, err
	}

	return o, nil
}

// GetBySID implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) GetBySID(ctx context.Context, sid string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + organizationColumns + `
		FROM organizations
		WHERE UPPER(sid) = UPPER($1)
	`

	o, err := scanOrganization(q.QueryRow(ctx, query, sid))
	if err != nil {
		if err == pgx.ErrNoRows {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, err
	}

	return o, nil
}

// List implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) List(ctx context.Context, filter organization.ListOrganizationsFilter) ([]organization.Organization, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"archived_at IS NULL"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR sid ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	if filter.RecruitingOpen != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("recruiting_open = $%d", argIdx))
		args = append(args, *filter.RecruitingOpen)
		argIdx++
	}

	if filter.Verified != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("verified = $%d", argIdx))
		args = append(args, *filter.Verified)
		argIdx++
	}

	if filter.Archetype != nil && *filter.Archetype != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("archetype = $%d", argIdx))
		args = append(args, *filter.Archetype)
		argIdx++
	}

	whereClause := "WHERE " + strings.Join(whereClauses, " AND ")

	countQuery := "SELECT COUNT(*) FROM organizations " + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count organizations: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := fmt.Sprintf(`
		SELECT `+organizationColumns+`
		FROM organizations
		%s
		ORDER BY member_count DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, filter.PageSize, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query organizations: %w", err)
	}
	defer rows.Close()

	var orgs []organization.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, o)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return orgs, total, nil
}

// Update implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) Update(ctx context.Context, req organization.UpdateOrganizationRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Description != nil {
		updates = append(updates, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}
	if req.Archetype != nil {
		updates = append(updates, fmt.Sprintf("archetype = $%d", argIdx))
		args = append(args, *req.Archetype)
		argIdx++
	}
	if req.PrimaryFocus != nil {
		updates = append(updates, fmt.Sprintf("primary_focus = $%d", argIdx))
		args = append(args, *req.PrimaryFocus)
		argIdx++
	}
	if req.Language != nil {
		updates = append(updates, fmt.Sprintf("language = $%d", argIdx))
		args = append(args, *req.Language)
		argIdx++
	}
	if req.RecruitingOpen != nil {
		updates = append(updates, fmt.Sprintf("recruiting_open = $%d", argIdx))
		args = append(args, *req.RecruitingOpen)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for organization update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.ID)

	sql := "UPDATE organizations SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return organization.ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to update organization with id %s: %w", req.ID, err)
	}
	return nil
}

// Archive implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) Archive(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE organizations
		SET archived_at = NOW(), recruiting_open = false, updated_at = NOW()
		WHERE id = $1 AND archived_at IS NULL
		RETURNING id
	`

	var archivedID string
	if err := q.QueryRow(ctx, query, id).Scan(&archivedID); err != nil {
		if err == pgx.ErrNoRows {
			return organization.ErrOrganizationNotFound
		}
		return err
	}
	return nil
}

// SetVerified implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) SetVerified(ctx context.Context, id string, verified bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE organizations
		SET verified = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, verified, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return organization.ErrOrganizationNotFound
		}
		return err
	}
	return nil
}

// SetLogoPath implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) SetLogoPath(ctx context.Context, id string, path string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE organizations
		SET logo_path = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, path, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return organization.ErrOrganizationNotFound
		}
		return err
	}
	return nil
}

// AdjustMemberCount implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) AdjustMemberCount(ctx context.Context, id string, delta int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE organizations
		SET member_count = GREATEST(member_count + $1, 0), updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, delta, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return organization.ErrOrganizationNotFound
		}
		return err
	}
	return nil
}

// SetRatingAggregate implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) SetRatingAggregate(ctx context.Context, id string, count int, average float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE organizations
		SET rating_count = $1, rating_average = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, count, average, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return organization.ErrOrganizationNotFound
		}
		return err
	}
	return nil
}
