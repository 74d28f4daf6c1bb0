package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/onboarding"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

type onboardingProgressRepositoryImpl struct {
	db *database.DB
}

func NewOnboardingProgressRepository(db *database.DB) onboarding.ProgressRepository {
	return &onboardingProgressRepositoryImpl{db: db}
}

// Create implements onboarding.ProgressRepository.
func (r *onboardingProgressRepositoryImpl) Create(ctx context.Context, progress onboarding.Progress) (onboarding.Progress, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO onboarding_progress (
			id, organization_id, template_id, user_id,
			completed_task_ids, completion_percentage, status,
			started_at, due_at,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6,
			$7, $8,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		progress.OrganizationID, progress.TemplateID, progress.UserID,
		progress.CompletedTaskIDs, progress.CompletionPercentage, progress.Status,
		progress.StartedAt, progress.DueAt,
	).Scan(&progress.ID, &progress.CreatedAt, &progress.UpdatedAt)

	if err != nil {
		return onboarding.Progress{}, err
	}

	return progress, nil
}

// GetByID implements onboarding.ProgressRepository.
func (r *onboardingProgressRepositoryImpl) GetByID(ctx context.Context, id string) (onboarding.Progress, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.organization_id, p.template_id, p.user_id,
			   p.completed_task_ids, p.completion_percentage, p.status,
			   p.started_at, p.due_at, p.completed_at, p.created_at, p.updated_at,
			   t.role_name as template_role_name,
			   u.handle, u.display_name
		FROM onboarding_progress p
		JOIN onboarding_templates t ON p.template_id = t.id
		JOIN users u ON p.user_id = u.id
		WHERE p.id = $1
	`

	var p onboarding.Progress
	var templateRoleName, handle, displayName string

	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.OrganizationID, &p.TemplateID, &p.UserID,
		&p.CompletedTaskIDs, &p.CompletionPercentage, &p.Status,
		&p.StartedAt, &p.DueAt, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
		&templateRoleName, &handle, &displayName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return onboarding.Progress{}, onboarding.ErrProgressNotFound
		}
		return onboarding.Progress{}, err
	}

	p.TemplateRoleName = &templateRoleName
	p.Handle = &handle
	p.DisplayName = &displayName

	return p, nil
}

// ExistsActive implements onboarding.ProgressRepository.
func (r *onboardingProgressRepositoryImpl) ExistsActive(ctx context.Context, templateID, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM onboarding_progress
			WHERE template_id = $1 AND user_id = $2
			AND status IN ('not_started', 'in_progress', 'overdue')
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, templateID, userID).Scan(&exists)

	return exists, err
}

// ListByOrganization implements onboarding.ProgressRepository.
func (r *onboardingProgressRepositoryImpl) ListByOrganization(ctx context.Context, organizationID string, filter onboarding.ListProgressFilter) ([]onboarding.Progress, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"p.organization_id = $1"}
	args := []interface{}{organizationID}
	argIdx := 2

	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM onboarding_progress p
		WHERE %s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count onboarding progress: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := fmt.Sprintf(`
		SELECT p.id, p.organization_id, p.template_id, p.user_id,
			   p.completed_task_ids, p.completion_percentage, p.status,
			   p.started_at, p.due_at, p.completed_at, p.created_at, p.updated_at,
			   t.role_name as template_role_name,
			   u.handle, u.display_name
		FROM onboarding_progress p
		JOIN onboarding_templates t ON p.template_id = t.id
		JOIN users u ON p.user_id = u.id
		WHERE %s
		ORDER BY p.started_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, filter.PageSize, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query onboarding progress: %w", err)
	}
	defer rows.Close()

	var records []onboarding.Progress
	for rows.Next() {
		var p onboarding.Progress
		var templateRoleName, handle, displayName string

		err := rows.Scan(
			&p.ID, &p.OrganizationID, &p.TemplateID, &p.UserID,
			&p.CompletedTaskIDs, &p.CompletionPercentage, &p.Status,
			&p.StartedAt, &p.DueAt, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
			&templateRoleName, &handle, &displayName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan onboarding progress: %w", err)
		}

		p.TemplateRoleName = &templateRoleName
		p.Handle = &handle
		p.DisplayName = &displayName

		records = append(records, p)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, total, nil
}

// ListByUser implements onboarding.ProgressRepository.
func (r *onboardingProgressRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]onboarding.Progress, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.organization_id, p.template_id, p.user_id,
			   p.completed_task_ids, p.completion_percentage, p.status,
			   p.started_at, p.due_at, p.completed_at, p.created_at, p.updated_at,
			   t.role_name as template_role_name
		FROM onboarding_progress p
		JOIN onboarding_templates t ON p.template_id = t.id
		WHERE p.user_id = $1
		ORDER BY p.started_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []onboarding.Progress
	for rows.Next() {
		var p onboarding.Progress
		var templateRoleName string

		err := rows.Scan(
			&p.ID, &p.OrganizationID, &p.TemplateID, &p.UserID,
			&p.CompletedTaskIDs, &p.CompletionPercentage, &p.Status,
			&p.StartedAt, &p.DueAt, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
			&templateRoleName,
		)
		if err != nil {
			return nil, err
		}

		p.TemplateRoleName = &templateRoleName
		records = append(records, p)
	}

	return records, rows.Err()
}

// Update implements onboarding.ProgressRepository.
func (r *onboardingProgressRepositoryImpl) Update(ctx context.Context, progress onboarding.Progress) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE onboarding_progress
		SET completed_task_ids = $1, completion_percentage = $2, status = $3,
			completed_at = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		progress.CompletedTaskIDs, progress.CompletionPercentage, progress.Status,
		progress.CompletedAt, progress.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return onboarding.ErrProgressNotFound
		}
		return fmt.Errorf("failed to update onboarding progress %s: %w", progress.ID, err)
	}
	return nil
}

// MarkOverdue implements onboarding.ProgressRepository.
func (r *onboardingProgressRepositoryImpl) MarkOverdue(ctx context.Context, asOf time.Time) ([]onboarding.Progress, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE onboarding_progress
		SET status = 'overdue', updated_at = NOW()
		WHERE status IN ('not_started', 'in_progress')
		AND due_at < $1
		RETURNING id, organization_id, template_id, user_id,
			completed_task_ids, completion_percentage, status,
			started_at, due_at, completed_at, created_at, updated_at
	`

	rows, err := q.Query(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []onboarding.Progress
	for rows.Next() {
		var p onboarding.Progress
		err := rows.Scan(
			&p.ID, &p.OrganizationID, &p.TemplateID, &p.UserID,
			&p.CompletedTaskIDs, &p.CompletionPercentage, &p.Status,
			&p.StartedAt, &p.DueAt, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}

	return records, rows.Err()
}
