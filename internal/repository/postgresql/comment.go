package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/comment"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

type commentRepositoryImpl struct {
	db *database.DB
}

func NewCommentRepository(db *database.DB) comment.Repository {
	return &commentRepositoryImpl{db: db}
}

// Create implements comment.Repository.
func (r *commentRepositoryImpl) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO comments (
			id, organization_id, author_id, body, rating,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.OrganizationID, c.AuthorID, c.Body, c.Rating,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return c, nil
}

// GetByID implements comment.Repository.
func (r *commentRepositoryImpl) GetByID(ctx context.Context, id string) (*comment.Comment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.organization_id, c.author_id, c.body, c.rating,
			   c.edited_at, c.created_at, c.updated_at,
			   u.handle, u.display_name, COALESCE(u.avatar_url, '')
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.id = $1
	`

	var c comment.Comment
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.OrganizationID, &c.AuthorID, &c.Body, &c.Rating,
		&c.EditedAt, &c.CreatedAt, &c.UpdatedAt,
		&c.AuthorHandle, &c.AuthorDisplayName, &c.AuthorAvatarURL,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, comment.ErrCommentNotFound
		}
		return nil, err
	}

	return &c, nil
}

// HasRatedComment implements comment.Repository.
func (r *commentRepositoryImpl) HasRatedComment(ctx context.Context, orgID, authorID string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM comments
			WHERE organization_id = $1 AND author_id = $2 AND rating IS NOT NULL
			AND ($3::uuid IS NULL OR id != $3)
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, orgID, authorID, excludeID).Scan(&exists)

	return exists, err
}

// ListByOrganization implements comment.Repository.
func (r *commentRepositoryImpl) ListByOrganization(ctx context.Context, orgID string, filter comment.ListCommentsFilter) ([]*comment.Comment, int, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"c.organization_id = $1"}
	args := []interface{}{orgID}
	argIdx := 2

	if filter.RatedOnly {
		whereClauses = append(whereClauses, "c.rating IS NOT NULL")
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM comments c
		WHERE %s
	`, whereClause)

	var total int
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT c.id, c.organization_id, c.author_id, c.body, c.rating,
			   c.edited_at, c.created_at, c.updated_at,
			   u.handle, u.display_name, COALESCE(u.avatar_url, '')
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE %s
		ORDER BY c.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []*comment.Comment
	for rows.Next() {
		var c comment.Comment
		err := rows.Scan(
			&c.ID, &c.OrganizationID, &c.AuthorID, &c.Body, &c.Rating,
			&c.EditedAt, &c.CreatedAt, &c.UpdatedAt,
			&c.AuthorHandle, &c.AuthorDisplayName, &c.AuthorAvatarURL,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return comments, total, nil
}

// Update implements comment.Repository.
func (r *commentRepositoryImpl) Update(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE comments
		SET body = $1, rating = $2, edited_at = NOW(), updated_at = NOW()
		WHERE id = $3
		RETURNING edited_at, updated_at
	`

	err := q.QueryRow(ctx, query, c.Body, c.Rating, c.ID).Scan(&c.EditedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, comment.ErrCommentNotFound
		}
		return nil, err
	}

	return c, nil
}

// Delete implements comment.Repository.
func (r *commentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM comments
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return comment.ErrCommentNotFound
	}
	return nil
}

// RatingAggregate implements comment.Repository.
func (r *commentRepositoryImpl) RatingAggregate(ctx context.Context, orgID string) (*comment.RatingAggregate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(rating), COALESCE(ROUND(AVG(rating)::numeric, 2), 0)
		FROM comments
		WHERE organization_id = $1 AND rating IS NOT NULL
	`

	var agg comment.RatingAggregate
	err := q.QueryRow(ctx, query, orgID).Scan(&agg.Count, &agg.Average)
	if err != nil {
		return nil, err
	}

	return &agg, nil
}
