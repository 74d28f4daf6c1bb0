package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/performance"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

type performanceReviewRepositoryImpl struct {
	db *database.DB
}

func NewPerformanceReviewRepository(db *database.DB) performance.ReviewRepository {
	return &performanceReviewRepositoryImpl{db: db}
}

// Create implements performance.ReviewRepository.
func (r *performanceReviewRepositoryImpl) Create(ctx context.Context, review performance.Review) (performance.Review, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO performance_reviews (
			id, organization_id, reviewee_id, reviewer_id,
			period_start, period_end,
			ratings, summary, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5,
			$6, $7, $8,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		review.OrganizationID, review.RevieweeID, review.ReviewerID,
		review.PeriodStart, review.PeriodEnd,
		review.Ratings, review.Summary, review.Status,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		return performance.Review{}, err
	}

	return review, nil
}

// GetByID implements performance.ReviewRepository.
func (r *performanceReviewRepositoryImpl) GetByID(ctx context.Context, id string) (performance.Review, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT rv.id, rv.organization_id, rv.reviewee_id, rv.reviewer_id,
			   rv.period_start, rv.period_end,
			   rv.ratings, rv.overall_rating, rv.summary,
			   rv.status, rv.submitted_at, rv.acknowledged_at,
			   rv.created_at, rv.updated_at,
			   ue.handle as reviewee_handle,
			   ur.handle as reviewer_handle
		FROM performance_reviews rv
		JOIN users ue ON rv.reviewee_id = ue.id
		JOIN users ur ON rv.reviewer_id = ur.id
		WHERE rv.id = $1
	`

	var review performance.Review
	var revieweeHandle, reviewerHandle string

	err := q.QueryRow(ctx, query, id).Scan(
		&review.ID, &review.OrganizationID, &review.RevieweeID, &review.ReviewerID,
		&review.PeriodStart, &review.PeriodEnd,
		&review.Ratings, &review.OverallRating, &review.Summary,
		&review.Status, &review.SubmittedAt, &review.AcknowledgedAt,
		&review.CreatedAt, &review.UpdatedAt,
		&revieweeHandle, &reviewerHandle,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return performance.Review{}, performance.ErrReviewNotFound
		}
		return performance.Review{}, err
	}

	review.RevieweeHandle = &revieweeHandle
	review.ReviewerHandle = &reviewerHandle

	return review, nil
}

// ListByOrganization implements performance.ReviewRepository.
func (r *performanceReviewRepositoryImpl) ListByOrganization(ctx context.Context, organizationID string, filter performance.ListReviewsFilter) ([]performance.Review, int64, error) {
	whereClauses := []string{"rv.organization_id = $1"}
	args := []interface{}{organizationID}
	return r.list(ctx, whereClauses, args, filter)
}

// ListByReviewee implements performance.ReviewRepository.
func (r *performanceReviewRepositoryImpl) ListByReviewee(ctx context.Context, revieweeID string, filter performance.ListReviewsFilter) ([]performance.Review, int64, error) {
	whereClauses := []string{"rv.reviewee_id = $1"}
	args := []interface{}{revieweeID}
	return r.list(ctx, whereClauses, args, filter)
}

func (r *performanceReviewRepositoryImpl) list(ctx context.Context, whereClauses []string, args []interface{}, filter performance.ListReviewsFilter) ([]performance.Review, int64, error) {
	q := GetQuerier(ctx, r.db)

	argIdx := len(args) + 1

	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("rv.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.RevieweeID != nil && *filter.RevieweeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("rv.reviewee_id = $%d", argIdx))
		args = append(args, *filter.RevieweeID)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM performance_reviews rv
		WHERE %s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count performance reviews: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := fmt.Sprintf(`
		SELECT rv.id, rv.organization_id, rv.reviewee_id, rv.reviewer_id,
			   rv.period_start, rv.period_end,
			   rv.ratings, rv.overall_rating, rv.summary,
			   rv.status, rv.submitted_at, rv.acknowledged_at,
			   rv.created_at, rv.updated_at,
			   ue.handle as reviewee_handle,
			   ur.handle as reviewer_handle
		FROM performance_reviews rv
		JOIN users ue ON rv.reviewee_id = ue.id
		JOIN users ur ON rv.reviewer_id = ur.id
		WHERE %s
		ORDER BY rv.period_start DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, filter.PageSize, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query performance reviews: %w", err)
	}
	defer rows.Close()

	var reviews []performance.Review
	for rows.Next() {
		var review performance.Review
		var revieweeHandle, reviewerHandle string

		err := rows.Scan(
			&review.ID, &review.OrganizationID, &review.RevieweeID, &review.ReviewerID,
			&review.PeriodStart, &review.PeriodEnd,
			&review.Ratings, &review.OverallRating, &review.Summary,
			&review.Status, &review.SubmittedAt, &review.AcknowledgedAt,
			&review.CreatedAt, &review.UpdatedAt,
			&revieweeHandle, &reviewerHandle,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan performance review: %w", err)
		}

		review.RevieweeHandle = &revieweeHandle
		review.ReviewerHandle = &reviewerHandle

		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return reviews, total, nil
}

// Update implements performance.ReviewRepository.
func (r *performanceReviewRepositoryImpl) Update(ctx context.Context, review performance.Review) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE performance_reviews
		SET period_start = $1, period_end = $2,
			ratings = $3, overall_rating = $4, summary = $5,
			status = $6, submitted_at = $7, acknowledged_at = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		review.PeriodStart, review.PeriodEnd,
		review.Ratings, review.OverallRating, review.Summary,
		review.Status, review.SubmittedAt, review.AcknowledgedAt,
		review.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return performance.ErrReviewNotFound
		}
		return fmt.Errorf("failed to update performance review %s: %w", review.ID, err)
	}
	return nil
}

// HasOverlapping implements performance.ReviewRepository.
func (r *performanceReviewRepositoryImpl) HasOverlapping(ctx context.Context, organizationID, revieweeID string, start, end time.Time, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM performance_reviews
			WHERE organization_id = $1 AND reviewee_id = $2
			AND period_start <= $4 AND period_end >= $3
			AND ($5::uuid IS NULL OR id != $5)
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, organizationID, revieweeID, start, end, excludeID).Scan(&exists)

	return exists, err
}
