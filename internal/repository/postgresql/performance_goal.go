package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/performance"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

type performanceGoalRepositoryImpl struct {
	db *database.DB
}

func NewPerformanceGoalRepository(db *database.DB) performance.GoalRepository {
	return &performanceGoalRepositoryImpl{db: db}
}

// Create implements performance.GoalRepository.
func (r *performanceGoalRepositoryImpl) Create(ctx context.Context, goal performance.Goal) (performance.Goal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO performance_goals (
			id, organization_id, user_id, review_id,
			title, description, target_date,
			progress_percentage, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6,
			$7, $8,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		goal.OrganizationID, goal.UserID, goal.ReviewID,
		goal.Title, goal.Description, goal.TargetDate,
		goal.ProgressPercentage, goal.Status,
	).Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)

	if err != nil {
		return performance.Goal{}, err
	}

	return goal, nil
}

// GetByID implements performance.GoalRepository.
func (r *performanceGoalRepositoryImpl) GetByID(ctx context.Context, id string) (performance.Goal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT g.id, g.organization_id, g.user_id, g.review_id,
			   g.title, g.description, g.target_date,
			   g.progress_percentage, g.status,
			   g.completed_at, g.cancelled_at, g.created_at, g.updated_at,
			   u.handle
		FROM performance_goals g
		JOIN users u ON g.user_id = u.id
		WHERE g.id = $1
	`

	var goal performance.Goal
	var handle string

	err := q.QueryRow(ctx, query, id).Scan(
		&goal.ID, &goal.OrganizationID, &goal.UserID, &goal.ReviewID,
		&goal.Title, &goal.Description, &goal.TargetDate,
		&goal.ProgressPercentage, &goal.Status,
		&goal.CompletedAt, &goal.CancelledAt, &goal.CreatedAt, &goal.UpdatedAt,
		&handle,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return performance.Goal{}, performance.ErrGoalNotFound
		}
		return performance.Goal{}, err
	}

	goal.Handle = &handle

	return goal, nil
}

// ListByUser implements performance.GoalRepository.
func (r *performanceGoalRepositoryImpl) ListByUser(ctx context.Context, organizationID, userID string) ([]performance.Goal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT g.id, g.organization_id, g.user_id, g.review_id,
			   g.title, g.description, g.target_date,
			   g.progress_percentage, g.status,
			   g.completed_at, g.cancelled_at, g.created_at, g.updated_at
		FROM performance_goals g
		WHERE g.organization_id = $1 AND g.user_id = $2
		ORDER BY g.created_at DESC
	`

	rows, err := q.Query(ctx, query, organizationID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGoals(rows)
}

// ListByReview implements performance.GoalRepository.
func (r *performanceGoalRepositoryImpl) ListByReview(ctx context.Context, reviewID string) ([]performance.Goal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT g.id, g.organization_id, g.user_id, g.review_id,
			   g.title, g.description, g.target_date,
			   g.progress_percentage, g.status,
			   g.completed_at, g.cancelled_at, g.created_at, g.updated_at
		FROM performance_goals g
		WHERE g.review_id = $1
		ORDER BY g.created_at ASC
	`

	rows, err := q.Query(ctx, query, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGoals(rows)
}

func scanGoals(rows pgx.Rows) ([]performance.Goal, error) {
	var goals []performance.Goal
	for rows.Next() {
		var goal performance.Goal
		err := rows.Scan(
			&goal.ID, &goal.OrganizationID, &goal.UserID, &goal.ReviewID,
			&goal.Title, &goal.Description, &goal.TargetDate,
			&goal.ProgressPercentage, &goal.Status,
			&goal.CompletedAt, &goal.CancelledAt, &goal.CreatedAt, &goal.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

// Update implements performance.GoalRepository.
func (r *performanceGoalRepositoryImpl) Update(ctx context.Context, goal performance.Goal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE performance_goals
		SET title = $1, description = $2, target_date = $3,
			progress_percentage = $4, status = $5,
			completed_at = $6, cancelled_at = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		goal.Title, goal.Description, goal.TargetDate,
		goal.ProgressPercentage, goal.Status,
		goal.CompletedAt, goal.CancelledAt,
		goal.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return performance.ErrGoalNotFound
		}
		return fmt.Errorf("failed to update performance goal %s: %w", goal.ID, err)
	}
	return nil
}

// CompletionRate implements performance.GoalRepository.
func (r *performanceGoalRepositoryImpl) CompletionRate(ctx context.Context, organizationID string) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(
			COUNT(*) FILTER (WHERE status = 'completed')::float
			/ NULLIF(COUNT(*), 0),
			0
		)
		FROM performance_goals
		WHERE organization_id = $1 AND status != 'cancelled'
	`

	var rate float64
	err := q.QueryRow(ctx, query, organizationID).Scan(&rate)
	return rate, err
}
