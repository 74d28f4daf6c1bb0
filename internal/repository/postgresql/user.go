package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/user"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, handle, display_name, avatar_url, bio, handle_verified, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Handle,
		&u.DisplayName,
		&u.AvatarURL,
		&u.Bio,
		&u.HandleVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *userRepositoryImpl) GetByHandle(ctx context.Context, handle string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(handle) = LOWER($1)
	`

	u, err := scanUser(q.QueryRow(ctx, query, handle))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

// Upsert implements user.UserRepository. The identity service mints the
// account id, so the row keys on it rather than uuidv7(). A handle change
// resets handle_verified.
func (r *userRepositoryImpl) Upsert(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, handle, display_name, avatar_url, bio, handle_verified,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, false,
			NOW(), NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			handle = EXCLUDED.handle,
			display_name = EXCLUDED.display_name,
			avatar_url = COALESCE(EXCLUDED.avatar_url, users.avatar_url),
			handle_verified = users.handle_verified AND users.handle = EXCLUDED.handle,
			updated_at = NOW()
		RETURNING ` + userColumns + `
	`

	return scanUser(q.QueryRow(ctx, query,
		u.ID, u.Handle, u.DisplayName, u.AvatarURL, u.Bio,
	))
}

func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateProfileRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.DisplayName != nil {
		updates = append(updates, fmt.Sprintf("display_name = $%d", argIdx))
		args = append(args, *req.DisplayName)
		argIdx++
	}
	if req.AvatarURL != nil {
		updates = append(updates, fmt.Sprintf("avatar_url = $%d", argIdx))
		args = append(args, *req.AvatarURL)
		argIdx++
	}
	if req.Bio != nil {
		updates = append(updates, fmt.Sprintf("bio = $%d", argIdx))
		args = append(args, *req.Bio)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for profile update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.ID)

	sql := "UPDATE users SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to update profile for user %s: %w", req.ID, err)
	}
	return nil
}

func (r *userRepositoryImpl) SetHandleVerified(ctx context.Context, id string, verified bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET handle_verified = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, verified, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return user.ErrUserNotFound
		}
		return err
	}
	return nil
}
