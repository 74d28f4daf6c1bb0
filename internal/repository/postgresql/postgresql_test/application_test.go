package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versecrew/versecrew-backend-go/internal/domain/application"
	"github.com/versecrew/versecrew-backend-go/internal/repository/postgresql"
)

func TestApplicationLifecycle(t *testing.T) {
	ctx := context.Background()
	db := testDatabase(t)
	truncateTables(t, ctx, db)

	repo := postgresql.NewApplicationRepository(db)

	userID := createTestUser(t, ctx, db, "Applicant-"+uniqueSuffix())
	reviewerID := createTestUser(t, ctx, db, "Reviewer-"+uniqueSuffix())
	orgID := createTestOrg(t, ctx, db, "APPLY"+uniqueSuffix())

	created, err := repo.Create(ctx, application.Application{
		OrganizationID: orgID,
		UserID:         userID,
		CoverLetter:    "Looking for a mining crew.",
		Status:         application.StatusPending,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	exists, err := repo.ExistsByOrgAndUser(ctx, orgID, userID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, application.StatusUnderReview, reviewerID, nil))

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusUnderReview, found.Status)
	require.NotNil(t, found.ReviewerID)
	assert.Equal(t, reviewerID, *found.ReviewerID)
	assert.Nil(t, found.DecidedAt)

	decided := time.Now()
	require.NoError(t, repo.UpdateStatus(ctx, created.ID, application.StatusApproved, reviewerID, &decided))

	found, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusApproved, found.Status)
	assert.NotNil(t, found.DecidedAt)
}

func TestApplicationUniquePerOrgAndUser(t *testing.T) {
	ctx := context.Background()
	db := testDatabase(t)
	truncateTables(t, ctx, db)

	repo := postgresql.NewApplicationRepository(db)

	userID := createTestUser(t, ctx, db, "Repeat-"+uniqueSuffix())
	orgID := createTestOrg(t, ctx, db, "REPEAT"+uniqueSuffix())

	_, err := repo.Create(ctx, application.Application{
		OrganizationID: orgID,
		UserID:         userID,
		CoverLetter:    "first",
		Status:         application.StatusPending,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, application.Application{
		OrganizationID: orgID,
		UserID:         userID,
		CoverLetter:    "second",
		Status:         application.StatusPending,
	})
	assert.Error(t, err, "re-applying to the same org must hit the unique constraint")
}

func TestApplicationRejectionFields(t *testing.T) {
	ctx := context.Background()
	db := testDatabase(t)
	truncateTables(t, ctx, db)

	repo := postgresql.NewApplicationRepository(db)

	userID := createTestUser(t, ctx, db, "Reject-"+uniqueSuffix())
	reviewerID := createTestUser(t, ctx, db, "Officer-"+uniqueSuffix())
	orgID := createTestOrg(t, ctx, db, "REJECT"+uniqueSuffix())

	created, err := repo.Create(ctx, application.Application{
		OrganizationID: orgID,
		UserID:         userID,
		CoverLetter:    "o7",
		Status:         application.StatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, repo.SetRejection(ctx, created.ID, reviewerID, "No comms discipline.", time.Now()))

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusRejected, found.Status)
	require.NotNil(t, found.RejectionReason)
	assert.Equal(t, "No comms discipline.", *found.RejectionReason)
	assert.NotNil(t, found.DecidedAt)
}
