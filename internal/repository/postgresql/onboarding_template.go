package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/onboarding"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

type onboardingTemplateRepositoryImpl struct {
	db *database.DB
}

func NewOnboardingTemplateRepository(db *database.DB) onboarding.TemplateRepository {
	return &onboardingTemplateRepositoryImpl{db: db}
}

// Create implements onboarding.TemplateRepository.
func (r *onboardingTemplateRepositoryImpl) Create(ctx context.Context, template onboarding.Template) (onboarding.Template, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO onboarding_templates (
			id, organization_id, role_name, description, tasks,
			estimated_duration_days, is_active,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, true,
			NOW(), NOW()
		) RETURNING id, is_active, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		template.OrganizationID, template.RoleName, template.Description, template.Tasks,
		template.EstimatedDurationDays,
	).Scan(&template.ID, &template.IsActive, &template.CreatedAt, &template.UpdatedAt)

	if err != nil {
		return onboarding.Template{}, err
	}

	return template, nil
}

// GetByID implements onboarding.TemplateRepository.
func (r *onboardingTemplateRepositoryImpl) GetByID(ctx context.Context, id string) (onboarding.Template, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, role_name, description, tasks,
			   estimated_duration_days, is_active, created_at, updated_at
		FROM onboarding_templates
		WHERE id = $1
	`

	var t onboarding.Template
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.OrganizationID, &t.RoleName, &t.Description, &t.Tasks,
		&t.EstimatedDurationDays, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return onboarding.Template{}, onboarding.ErrTemplateNotFound
		}
		return onboarding.Template{}, err
	}

	return t, nil
}

// GetByOrgAndRole implements onboarding.TemplateRepository.
func (r *onboardingTemplateRepositoryImpl) GetByOrgAndRole(ctx context.Context, organizationID, roleName string) (onboarding.Template, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, role_name, description, tasks,
			   estimated_duration_days, is_active, created_at, updated_at
		FROM onboarding_templates
		WHERE organization_id = $1 AND LOWER(role_name) = LOWER($2) AND is_active = true
	`

	var t onboarding.Template
	err := q.QueryRow(ctx, query, organizationID, roleName).Scan(
		&t.ID, &t.OrganizationID, &t.RoleName, &t.Description, &t.Tasks,
		&t.EstimatedDurationDays, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return onboarding.Template{}, onboarding.ErrTemplateNotFound
		}
		return onboarding.Template{}, err
	}

	return t, nil
}

// ListByOrganization implements onboarding.TemplateRepository.
func (r *onboardingTemplateRepositoryImpl) ListByOrganization(ctx context.Context, organizationID string, includeInactive bool) ([]onboarding.Template, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, role_name, description, tasks,
			   estimated_duration_days, is_active, created_at, updated_at
		FROM onboarding_templates
		WHERE organization_id = $1
	`
	if !includeInactive {
		query += " AND is_active = true"
	}
	query += " ORDER BY role_name ASC"

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []onboarding.Template
	for rows.Next() {
		var t onboarding.Template
		err := rows.Scan(
			&t.ID, &t.OrganizationID, &t.RoleName, &t.Description, &t.Tasks,
			&t.EstimatedDurationDays, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return templates, rows.Err()
}

// Update implements onboarding.TemplateRepository.
func (r *onboardingTemplateRepositoryImpl) Update(ctx context.Context, template onboarding.Template) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE onboarding_templates
		SET role_name = $1, description = $2, tasks = $3,
			estimated_duration_days = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		template.RoleName, template.Description, template.Tasks,
		template.EstimatedDurationDays, template.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return onboarding.ErrTemplateNotFound
		}
		return fmt.Errorf("failed to update onboarding template %s: %w", template.ID, err)
	}
	return nil
}

// Deactivate implements onboarding.TemplateRepository.
func (r *onboardingTemplateRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE onboarding_templates
		SET is_active = false, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return onboarding.ErrTemplateNotFound
		}
		return err
	}
	return nil
}

// HasProgress implements onboarding.TemplateRepository.
func (r *onboardingTemplateRepositoryImpl) HasProgress(ctx context.Context, templateID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM onboarding_progress
			WHERE template_id = $1 AND status IN ('not_started', 'in_progress', 'overdue')
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, templateID).Scan(&exists)

	return exists, err
}
