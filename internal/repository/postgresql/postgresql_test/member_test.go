package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/repository/postgresql"
)

func TestMemberCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	db := testDatabase(t)
	truncateTables(t, ctx, db)

	repo := postgresql.NewMemberRepository(db)

	userID := createTestUser(t, ctx, db, "Corsair-"+uniqueSuffix())
	orgID := createTestOrg(t, ctx, db, "CORSAIR"+uniqueSuffix())

	created, err := repo.Create(ctx, member.Member{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           member.RoleOwner,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.JoinedAt.IsZero())

	found, err := repo.GetByOrgAndUser(ctx, orgID, userID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, member.RoleOwner, found.Role)
}

func TestMemberUniquePerOrg(t *testing.T) {
	ctx := context.Background()
	db := testDatabase(t)
	truncateTables(t, ctx, db)

	repo := postgresql.NewMemberRepository(db)

	userID := createTestUser(t, ctx, db, "Dupe-"+uniqueSuffix())
	orgID := createTestOrg(t, ctx, db, "DUPE"+uniqueSuffix())

	_, err := repo.Create(ctx, member.Member{OrganizationID: orgID, UserID: userID, Role: member.RoleMember})
	require.NoError(t, err)

	_, err = repo.Create(ctx, member.Member{OrganizationID: orgID, UserID: userID, Role: member.RoleHR})
	assert.Error(t, err, "second membership for the same (org, user) must hit the unique constraint")
}

func TestListUserIDsByRoles(t *testing.T) {
	ctx := context.Background()
	db := testDatabase(t)
	truncateTables(t, ctx, db)

	repo := postgresql.NewMemberRepository(db)
	orgID := createTestOrg(t, ctx, db, "ROLES"+uniqueSuffix())

	ownerID := createTestUser(t, ctx, db, "Owner-"+uniqueSuffix())
	hrID := createTestUser(t, ctx, db, "HR-"+uniqueSuffix())
	memberID := createTestUser(t, ctx, db, "Member-"+uniqueSuffix())

	for userID, role := range map[string]member.Role{
		ownerID:  member.RoleOwner,
		hrID:     member.RoleHR,
		memberID: member.RoleMember,
	} {
		_, err := repo.Create(ctx, member.Member{OrganizationID: orgID, UserID: userID, Role: role})
		require.NoError(t, err)
	}

	staff, err := repo.ListUserIDsByRoles(ctx, orgID, []member.Role{member.RoleOwner, member.RoleOfficer, member.RoleHR})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{ownerID, hrID}, staff)
}

func TestUpdateRoleAndDelete(t *testing.T) {
	ctx := context.Background()
	db := testDatabase(t)
	truncateTables(t, ctx, db)

	repo := postgresql.NewMemberRepository(db)

	userID := createTestUser(t, ctx, db, "Promo-"+uniqueSuffix())
	orgID := createTestOrg(t, ctx, db, "PROMO"+uniqueSuffix())

	created, err := repo.Create(ctx, member.Member{OrganizationID: orgID, UserID: userID, Role: member.RoleMember})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateRole(ctx, created.ID, member.RoleOfficer))

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, member.RoleOfficer, found.Role)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.Error(t, err)
}
