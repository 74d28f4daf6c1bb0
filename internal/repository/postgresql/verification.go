package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/verification"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

type verificationRepositoryImpl struct {
	db *database.DB
}

// NewVerificationRepository creates a new verification repository.
func NewVerificationRepository(db *database.DB) verification.Repository {
	return &verificationRepositoryImpl{db: db}
}

const verificationColumns = `id, subject_type, subject_id, user_id, code, expires_at, consumed_at, created_at`

func scanVerificationCode(row pgx.Row) (*verification.Code, error) {
	var c verification.Code
	err := row.Scan(
		&c.ID,
		&c.SubjectType,
		&c.SubjectID,
		&c.UserID,
		&c.Code,
		&c.ExpiresAt,
		&c.ConsumedAt,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create implements verification.Repository.
func (r *verificationRepositoryImpl) Create(ctx context.Context, c *verification.Code) (*verification.Code, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO verification_codes (id, subject_type, subject_id, user_id, code, expires_at, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW())
		RETURNING ` + verificationColumns

	created, err := scanVerificationCode(q.QueryRow(ctx, query,
		c.SubjectType,
		c.SubjectID,
		c.UserID,
		c.Code,
		c.ExpiresAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create verification code: %w", err)
	}

	return created, nil
}

// GetActiveBySubject implements verification.Repository.
func (r *verificationRepositoryImpl) GetActiveBySubject(ctx context.Context, subjectType verification.SubjectType, subjectID string, now time.Time) (*verification.Code, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + verificationColumns + `
		FROM verification_codes
		WHERE subject_type = $1 AND subject_id = $2
			AND consumed_at IS NULL AND expires_at > $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	c, err := scanVerificationCode(q.QueryRow(ctx, query, subjectType, subjectID, now))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, verification.ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to get verification code: %w", err)
	}

	return c, nil
}

// DeactivateBySubject implements verification.Repository.
func (r *verificationRepositoryImpl) DeactivateBySubject(ctx context.Context, subjectType verification.SubjectType, subjectID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE verification_codes
		SET expires_at = NOW()
		WHERE subject_type = $1 AND subject_id = $2
			AND consumed_at IS NULL AND expires_at > NOW()
	`

	_, err := q.Exec(ctx, query, subjectType, subjectID)
	if err != nil {
		return fmt.Errorf("failed to deactivate verification codes: %w", err)
	}

	return nil
}

// Consume implements verification.Repository.
func (r *verificationRepositoryImpl) Consume(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE verification_codes
		SET consumed_at = $2
		WHERE id = $1 AND consumed_at IS NULL
	`

	result, err := q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to consume verification code: %w", err)
	}

	if result.RowsAffected() == 0 {
		return verification.ErrCodeNotFound
	}

	return nil
}

// DeleteExpired implements verification.Repository.
func (r *verificationRepositoryImpl) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM verification_codes WHERE expires_at < $1`
	result, err := q.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired verification codes: %w", err)
	}

	return result.RowsAffected(), nil
}
