package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

var (
	testDB     *database.DB
	setupOnce  sync.Once
	setupError error
)

// testDatabase connects once per test binary and applies migrations. Tests
// are skipped entirely when TEST_DATABASE_URL is not set.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database tests")
	}

	setupOnce.Do(func() {
		testDB, setupError = database.NewPostgreSQLDB(dsn)
		if setupError != nil {
			return
		}
		setupError = testDB.Migrate(context.Background(), "../../../../migrations")
	})
	require.NoError(t, setupError)

	return testDB
}

func truncateTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()

	tables := []string{
		"notifications", "notification_preferences",
		"document_acknowledgments", "documents",
		"verification_codes", "comments",
		"performance_goals", "performance_reviews",
		"onboarding_progress", "onboarding_templates",
		"applications", "members", "organizations", "users",
	}
	for _, table := range tables {
		_, err := db.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createTestUser(t *testing.T, ctx context.Context, db *database.DB, handle string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO users (id, handle, display_name, handle_verified, created_at, updated_at)
		VALUES ($1, $2, $2, false, NOW(), NOW())
	`, id, handle)
	require.NoError(t, err)
	return id
}

func createTestOrg(t *testing.T, ctx context.Context, db *database.DB, sid string) string {
	t.Helper()

	var id string
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO organizations (sid, name, archetype, created_at, updated_at)
		VALUES ($1, $1, 'corporation', NOW(), NOW())
		RETURNING id
	`, sid).Scan(&id)
	require.NoError(t, err)
	return id
}

// uniqueSuffix keeps handles and SIDs distinct across tests sharing a DB.
func uniqueSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
