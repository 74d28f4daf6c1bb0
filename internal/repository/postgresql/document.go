package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/document"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

type documentRepositoryImpl struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) document.Repository {
	return &documentRepositoryImpl{db: db}
}

const documentColumns = `d.id, d.organization_id, d.author_id, d.title, COALESCE(d.category, ''), d.body,
			   COALESCE(d.file_path, ''), COALESCE(d.file_name, ''), d.file_size, COALESCE(d.content_type, ''),
			   d.min_role, d.requires_ack, d.published_at, d.created_at, d.updated_at`

// Create implements document.Repository.
func (r *documentRepositoryImpl) Create(ctx context.Context, d *document.Document) (*document.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO documents (
			id, organization_id, author_id, title, category, body,
			min_role, requires_ack, published_at,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, NULLIF($4, ''), $5,
			$6, $7, $8,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		d.OrganizationID, d.AuthorID, d.Title, d.Category, d.Body,
		d.MinRole, d.RequiresAck, d.PublishedAt,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return d, nil
}

// GetByID implements document.Repository.
func (r *documentRepositoryImpl) GetByID(ctx context.Context, id string) (*document.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + documentColumns + `,
			   u.handle,
			   (SELECT COUNT(*) FROM document_acknowledgments a WHERE a.document_id = d.id)
		FROM documents d
		JOIN users u ON d.author_id = u.id
		WHERE d.id = $1
	`

	var d document.Document
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.OrganizationID, &d.AuthorID, &d.Title, &d.Category, &d.Body,
		&d.FilePath, &d.FileName, &d.FileSize, &d.ContentType,
		&d.MinRole, &d.RequiresAck, &d.PublishedAt, &d.CreatedAt, &d.UpdatedAt,
		&d.AuthorHandle,
		&d.AckCount,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, document.ErrDocumentNotFound
		}
		return nil, err
	}

	return &d, nil
}

// ListByOrganization implements document.Repository.
func (r *documentRepositoryImpl) ListByOrganization(ctx context.Context, orgID string, filter document.ListDocumentsFilter) ([]*document.Document, int, error) {
	q := GetQuerier(ctx, r.db)

	// min_role gating happens in SQL so restricted documents never leave the
	// database: a member sees documents whose min_role ranks at or below
	// their own.
	whereClauses := []string{"d.organization_id = $1"}
	args := []interface{}{orgID}
	argIdx := 2

	if !filter.IncludeUnpublished {
		whereClauses = append(whereClauses, "d.published_at IS NOT NULL")
	}

	if filter.Role != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(`
			CASE d.min_role
				WHEN 'member' THEN 1
				WHEN 'hr' THEN 2
				WHEN 'officer' THEN 3
				WHEN 'owner' THEN 4
			END <=
			CASE $%d
				WHEN 'member' THEN 1
				WHEN 'hr' THEN 2
				WHEN 'officer' THEN 3
				WHEN 'owner' THEN 4
			END`, argIdx))
		args = append(args, string(filter.Role))
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM documents d
		WHERE %s
	`, whereClause)

	var total int
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT `+documentColumns+`,
			   u.handle,
			   (SELECT COUNT(*) FROM document_acknowledgments a WHERE a.document_id = d.id)
		FROM documents d
		JOIN users u ON d.author_id = u.id
		WHERE %s
		ORDER BY d.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var documents []*document.Document
	for rows.Next() {
		var d document.Document
		err := rows.Scan(
			&d.ID, &d.OrganizationID, &d.AuthorID, &d.Title, &d.Category, &d.Body,
			&d.FilePath, &d.FileName, &d.FileSize, &d.ContentType,
			&d.MinRole, &d.RequiresAck, &d.PublishedAt, &d.CreatedAt, &d.UpdatedAt,
			&d.AuthorHandle,
			&d.AckCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, &d)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return documents, total, nil
}

// Update implements document.Repository.
func (r *documentRepositoryImpl) Update(ctx context.Context, d *document.Document) (*document.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE documents
		SET title = $1, category = NULLIF($2, ''), body = $3, min_role = $4, requires_ack = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		d.Title, d.Category, d.Body, d.MinRole, d.RequiresAck, d.ID,
	).Scan(&d.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, document.ErrDocumentNotFound
		}
		return nil, err
	}

	return d, nil
}

// SetPublished implements document.Repository.
func (r *documentRepositoryImpl) SetPublished(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE documents
		SET published_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND published_at IS NULL
		RETURNING id
	`

	var publishedID string
	if err := q.QueryRow(ctx, query, id).Scan(&publishedID); err != nil {
		if err == pgx.ErrNoRows {
			return document.ErrDocumentNotFound
		}
		return err
	}
	return nil
}

// SetFile implements document.Repository.
func (r *documentRepositoryImpl) SetFile(ctx context.Context, id, filePath, fileName, contentType string, fileSize int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE documents
		SET file_path = $1, file_name = $2, content_type = $3, file_size = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, filePath, fileName, contentType, fileSize, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return document.ErrDocumentNotFound
		}
		return err
	}
	return nil
}

// Delete implements document.Repository.
func (r *documentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM documents
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return document.ErrDocumentNotFound
	}
	return nil
}

// CreateAck implements document.Repository.
func (r *documentRepositoryImpl) CreateAck(ctx context.Context, a *document.Acknowledgment) (*document.Acknowledgment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO document_acknowledgments (
			id, document_id, user_id, acknowledged_at
		) VALUES (
			uuidv7(), $1, $2, NOW()
		) RETURNING id, acknowledged_at
	`

	err := q.QueryRow(ctx, query, a.DocumentID, a.UserID).Scan(&a.ID, &a.AcknowledgedAt)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// HasAcked implements document.Repository.
func (r *documentRepositoryImpl) HasAcked(ctx context.Context, documentID, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM document_acknowledgments
			WHERE document_id = $1 AND user_id = $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, documentID, userID).Scan(&exists)

	return exists, err
}

// ListAcks implements document.Repository.
func (r *documentRepositoryImpl) ListAcks(ctx context.Context, documentID string) ([]*document.Acknowledgment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.document_id, a.user_id, a.acknowledged_at, u.handle
		FROM document_acknowledgments a
		JOIN users u ON a.user_id = u.id
		WHERE a.document_id = $1
		ORDER BY a.acknowledged_at ASC
	`

	rows, err := q.Query(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var acks []*document.Acknowledgment
	for rows.Next() {
		var a document.Acknowledgment
		if err := rows.Scan(&a.ID, &a.DocumentID, &a.UserID, &a.AcknowledgedAt, &a.UserHandle); err != nil {
			return nil, err
		}
		acks = append(acks, &a)
	}

	return acks, rows.Err()
}

// AckedDocumentIDs implements document.Repository.
func (r *documentRepositoryImpl) AckedDocumentIDs(ctx context.Context, userID string, documentIDs []string) (map[string]bool, error) {
	if len(documentIDs) == 0 {
		return map[string]bool{}, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT document_id
		FROM document_acknowledgments
		WHERE user_id = $1 AND document_id = ANY($2)
	`

	rows, err := q.Query(ctx, query, userID, documentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	acked := make(map[string]bool, len(documentIDs))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		acked[id] = true
	}

	return acked, rows.Err()
}
