package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/application"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

type applicationRepositoryImpl struct {
	db *database.DB
}

func NewApplicationRepository(db *database.DB) application.ApplicationRepository {
	return &applicationRepositoryImpl{db: db}
}

// Create implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) Create(ctx context.Context, app application.Application) (application.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO applications (
			id, organization_id, user_id,
			cover_letter, experience, availability, custom_fields,
			status, submitted_at,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5, $6,
			$7, NOW(),
			NOW(), NOW()
		) RETURNING id, submitted_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		app.OrganizationID, app.UserID,
		app.CoverLetter, app.Experience, app.Availability, app.CustomFields,
		app.Status,
	).Scan(&app.ID, &app.SubmittedAt, &app.CreatedAt, &app.UpdatedAt)

	if err != nil {
		return application.Application{}, err
	}

	return app, nil
}

// GetByID implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) GetByID(ctx context.Context, id string) (application.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.organization_id, a.user_id,
			   a.cover_letter, a.experience, a.availability, a.custom_fields,
			   a.status, a.reviewer_id, a.review_notes, a.rejection_reason, a.interview_at,
			   a.submitted_at, a.decided_at, a.created_at, a.updated_at,
			   u.handle as applicant_handle,
			   u.display_name as applicant_display_name,
			   o.name as organization_name
		FROM applications a
		JOIN users u ON a.user_id = u.id
		JOIN organizations o ON a.organization_id = o.id
		WHERE a.id = $1
	`

	var app application.Application
	var applicantHandle, applicantDisplayName, organizationName string

	err := q.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.OrganizationID, &app.UserID,
		&app.CoverLetter, &app.Experience, &app.Availability, &app.CustomFields,
		&app.Status, &app.ReviewerID, &app.ReviewNotes, &app.RejectionReason, &app.InterviewAt,
		&app.SubmittedAt, &app.DecidedAt, &app.CreatedAt, &app.UpdatedAt,
		&applicantHandle, &applicantDisplayName, &organizationName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return application.Application{}, application.ErrApplicationNotFound
		}
		return application.Application{}, err
	}

	app.ApplicantHandle = &applicantHandle
	app.ApplicantDisplayName = &applicantDisplayName
	app.OrganizationName = &organizationName

	return app, nil
}

// ExistsByOrgAndUser implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) ExistsByOrgAndUser(ctx context.Context, organizationID, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM applications
			WHERE organization_id = $1 AND user_id = $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, organizationID, userID).Scan(&exists)

	return exists, err
}

// ListByOrganization implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) ListByOrganization(ctx context.Context, organizationID string, filter application.ListApplicationsFilter) ([]application.Application, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"a.organization_id = $1"}
	args := []interface{}{organizationID}
	argIdx := 2

	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM applications a
		WHERE %s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := fmt.Sprintf(`
		SELECT a.id, a.organization_id, a.user_id,
			   a.cover_letter, a.experience, a.availability, a.custom_fields,
			   a.status, a.reviewer_id, a.review_notes, a.rejection_reason, a.interview_at,
			   a.submitted_at, a.decided_at, a.created_at, a.updated_at,
			   u.handle as applicant_handle,
			   u.display_name as applicant_display_name,
			   o.name as organization_name
		FROM applications a
		JOIN users u ON a.user_id = u.id
		JOIN organizations o ON a.organization_id = o.id
		WHERE %s
		ORDER BY a.submitted_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, filter.PageSize, offset)

	return r.queryApplications(ctx, q, query, args, total)
}

// ListByUser implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) ListByUser(ctx context.Context, userID string, filter application.ListApplicationsFilter) ([]application.Application, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"a.user_id = $1"}
	args := []interface{}{userID}
	argIdx := 2

	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM applications a
		WHERE %s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := fmt.Sprintf(`
		SELECT a.id, a.organization_id, a.user_id,
			   a.cover_letter, a.experience, a.availability, a.custom_fields,
			   a.status, a.reviewer_id, a.review_notes, a.rejection_reason, a.interview_at,
			   a.submitted_at, a.decided_at, a.created_at, a.updated_at,
			   u.handle as applicant_handle,
			   u.display_name as applicant_display_name,
			   o.name as organization_name
		FROM applications a
		JOIN users u ON a.user_id = u.id
		JOIN organizations o ON a.organization_id = o.id
		WHERE %s
		ORDER BY a.submitted_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, filter.PageSize, offset)

	return r.queryApplications(ctx, q, query, args, total)
}

func (r *applicationRepositoryImpl) queryApplications(ctx context.Context, q database.Querier, query string, args []interface{}, total int64) ([]application.Application, int64, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	var apps []application.Application
	for rows.Next() {
		var app application.Application
		var applicantHandle, applicantDisplayName, organizationName string

		err := rows.Scan(
			&app.ID, &app.OrganizationID, &app.UserID,
			&app.CoverLetter, &app.Experience, &app.Availability, &app.CustomFields,
			&app.Status, &app.ReviewerID, &app.ReviewNotes, &app.RejectionReason, &app.InterviewAt,
			&app.SubmittedAt, &app.DecidedAt, &app.CreatedAt, &app.UpdatedAt,
			&applicantHandle, &applicantDisplayName, &organizationName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan application: %w", err)
		}

		app.ApplicantHandle = &applicantHandle
		app.ApplicantDisplayName = &applicantDisplayName
		app.OrganizationName = &organizationName

		apps = append(apps, app)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return apps, total, nil
}

// UpdateStatus implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) UpdateStatus(ctx context.Context, id string, status application.Status, reviewerID string, decidedAt *time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE applications
		SET status = $1, reviewer_id = $2, decided_at = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, status, reviewerID, decidedAt, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return application.ErrApplicationNotFound
		}
		return fmt.Errorf("failed to update status for application %s: %w", id, err)
	}
	return nil
}

// SetInterview implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) SetInterview(ctx context.Context, id string, reviewerID string, interviewAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE applications
		SET status = $1, reviewer_id = $2, interview_at = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, application.StatusInterviewScheduled, reviewerID, interviewAt, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return application.ErrApplicationNotFound
		}
		return fmt.Errorf("failed to schedule interview for application %s: %w", id, err)
	}
	return nil
}

// SetRejection implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) SetRejection(ctx context.Context, id string, reviewerID string, reason string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE applications
		SET status = $1, reviewer_id = $2, rejection_reason = $3, decided_at = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, application.StatusRejected, reviewerID, reason, decidedAt, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return application.ErrApplicationNotFound
		}
		return fmt.Errorf("failed to reject application %s: %w", id, err)
	}
	return nil
}

// SetReviewNotes implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) SetReviewNotes(ctx context.Context, id string, reviewerID string, notes string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE applications
		SET review_notes = $1, reviewer_id = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, notes, reviewerID, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return application.ErrApplicationNotFound
		}
		return fmt.Errorf("failed to save review notes for application %s: %w", id, err)
	}
	return nil
}
