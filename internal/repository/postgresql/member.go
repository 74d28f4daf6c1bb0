package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

type memberRepositoryImpl struct {
	db *database.DB
}

func NewMemberRepository(db *database.DB) member.MemberRepository {
	return &memberRepositoryImpl{db: db}
}

// Create implements member.MemberRepository.
func (r *memberRepositoryImpl) Create(ctx context.Context, m member.Member) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO members (
			id, organization_id, user_id, role, title, notes,
			joined_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			NOW(), NOW(), NOW()
		) RETURNING id, joined_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		m.OrganizationID, m.UserID, m.Role, m.Title, m.Notes,
	).Scan(&m.ID, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		return member.Member{}, err
	}

	return m, nil
}

// GetByID implements member.MemberRepository.
func (r *memberRepositoryImpl) GetByID(ctx context.Context, id string) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.organization_id, m.user_id, m.role, m.title, m.notes,
			   m.joined_at, m.created_at, m.updated_at,
			   u.handle, u.display_name
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.id = $1
	`

	var m member.Member
	err := q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.Title, &m.Notes,
		&m.JoinedAt, &m.CreatedAt, &m.UpdatedAt,
		&m.Handle, &m.DisplayName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return member.Member{}, member.ErrMemberNotFound
		}
		return member.Member{}, err
	}

	return m, nil
}

// GetByOrgAndUser implements member.MemberRepository.
func (r *memberRepositoryImpl) GetByOrgAndUser(ctx context.Context, organizationID, userID string) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.organization_id, m.user_id, m.role, m.title, m.notes,
			   m.joined_at, m.created_at, m.updated_at,
			   u.handle, u.display_name
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.organization_id = $1 AND m.user_id = $2
	`

	var m member.Member
	err := q.QueryRow(ctx, query, organizationID, userID).Scan(
		&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.Title, &m.Notes,
		&m.JoinedAt, &m.CreatedAt, &m.UpdatedAt,
		&m.Handle, &m.DisplayName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return member.Member{}, member.ErrMemberNotFound
		}
		return member.Member{}, err
	}

	return m, nil
}

// ListByOrganization implements member.MemberRepository.
func (r *memberRepositoryImpl) ListByOrganization(ctx context.Context, organizationID string, filter member.ListMembersFilter) ([]member.Member, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"m.organization_id = $1"}
	args := []interface{}{organizationID}
	argIdx := 2

	if filter.Role != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("m.role = $%d", argIdx))
		args = append(args, *filter.Role)
		argIdx++
	}

	if filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(u.handle ILIKE $%d OR u.display_name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE %s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := fmt.Sprintf(`
		SELECT m.id, m.organization_id, m.user_id, m.role, m.title, m.notes,
			   m.joined_at, m.created_at, m.updated_at,
			   u.handle, u.display_name
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE %s
		ORDER BY m.joined_at ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, filter.PageSize, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []member.Member
	for rows.Next() {
		var m member.Member
		err := rows.Scan(
			&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.Title, &m.Notes,
			&m.JoinedAt, &m.CreatedAt, &m.UpdatedAt,
			&m.Handle, &m.DisplayName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, total, nil
}

// ListByUser implements member.MemberRepository.
func (r *memberRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.organization_id, m.user_id, m.role, m.title, m.notes,
			   m.joined_at, m.created_at, m.updated_at
		FROM members m
		JOIN organizations o ON m.organization_id = o.id
		WHERE m.user_id = $1 AND o.archived_at IS NULL
		ORDER BY m.joined_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []member.Member
	for rows.Next() {
		var m member.Member
		err := rows.Scan(
			&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.Title, &m.Notes,
			&m.JoinedAt, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// ListUserIDsByRoles implements member.MemberRepository.
func (r *memberRepositoryImpl) ListUserIDsByRoles(ctx context.Context, organizationID string, roles []member.Role) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id
		FROM members
		WHERE organization_id = $1 AND role = ANY($2)
	`

	roleStrings := make([]string, 0, len(roles))
	for _, role := range roles {
		roleStrings = append(roleStrings, string(role))
	}

	rows, err := q.Query(ctx, query, organizationID, roleStrings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}

	return userIDs, rows.Err()
}

// UpdateRole implements member.MemberRepository.
func (r *memberRepositoryImpl) UpdateRole(ctx context.Context, id string, role member.Role) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE members
		SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, role, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return member.ErrMemberNotFound
		}
		return fmt.Errorf("failed to update role for member %s: %w", id, err)
	}
	return nil
}

// UpdateNotes implements member.MemberRepository.
func (r *memberRepositoryImpl) UpdateNotes(ctx context.Context, req member.UpdateMemberNotesRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.Title != nil {
		updates = append(updates, fmt.Sprintf("title = $%d", argIdx))
		args = append(args, *req.Title)
		argIdx++
	}
	if req.Notes != nil {
		updates = append(updates, fmt.Sprintf("notes = $%d", argIdx))
		args = append(args, *req.Notes)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for member update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.MemberID)

	sql := "UPDATE members SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return member.ErrMemberNotFound
		}
		return fmt.Errorf("failed to update member with id %s: %w", req.MemberID, err)
	}
	return nil
}

// Delete implements member.MemberRepository.
func (r *memberRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM members
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return member.ErrMemberNotFound
	}
	return nil
}

// CountByOrganization implements member.MemberRepository.
func (r *memberRepositoryImpl) CountByOrganization(ctx context.Context, organizationID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM members
		WHERE organization_id = $1
	`

	var total int64
	err := q.QueryRow(ctx, query, organizationID).Scan(&total)
	return total, err
}
