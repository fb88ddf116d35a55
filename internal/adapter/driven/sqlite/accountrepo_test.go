package sqlite

import (
	"context"
	"testing"

	"github.com/ericfisherdev/devicegate/internal/domain/port/driven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepo_Insert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	account, err := repo.Insert(ctx, "alice", "$2a$12$hash", "visitor-1")
	require.NoError(t, err)

	assert.Equal(t, int64(1), account.ID)
	assert.Equal(t, "alice", account.Username)
	assert.Equal(t, "$2a$12$hash", account.PasswordHash)
	assert.Equal(t, "visitor-1", account.VisitorID)
	assert.False(t, account.CreatedAt.IsZero())
}

func TestAccountRepo_Insert_AssignsIncreasingIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	first, err := repo.Insert(ctx, "alice", "h1", "visitor-1")
	require.NoError(t, err)
	second, err := repo.Insert(ctx, "bob", "h2", "visitor-2")
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
}

func TestAccountRepo_Insert_DuplicateVisitor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	_, err := repo.Insert(ctx, "alice", "h1", "visitor-1")
	require.NoError(t, err)

	_, err = repo.Insert(ctx, "bob", "h2", "visitor-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrDeviceAlreadyRegistered)

	// The failed insert must not leave a second row behind.
	count, err := repo.CountByVisitorID(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAccountRepo_CountByVisitorID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	count, err := repo.CountByVisitorID(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = repo.Insert(ctx, "alice", "h1", "visitor-1")
	require.NoError(t, err)

	count, err = repo.CountByVisitorID(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.CountByVisitorID(ctx, "visitor-2")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAccountRepo_ListAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	_, err := repo.Insert(ctx, "alice", "h1", "visitor-1")
	require.NoError(t, err)
	_, err = repo.Insert(ctx, "bob", "h2", "visitor-2")
	require.NoError(t, err)
	_, err = repo.Insert(ctx, "carol", "h3", "visitor-3")
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Insertion order.
	assert.Equal(t, "alice", all[0].Username)
	assert.Equal(t, "bob", all[1].Username)
	assert.Equal(t, "carol", all[2].Username)
	assert.Equal(t, "visitor-2", all[1].VisitorID)

	// ListAll never selects the password hash.
	for _, account := range all {
		assert.Empty(t, account.PasswordHash)
	}
}

func TestAccountRepo_ListAll_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db)
	ctx := context.Background()

	_, err := repo.Insert(ctx, "alice", "h1", "visitor-1")
	require.NoError(t, err)

	// setupTestDB already ran migrations once; a second run must be a no-op
	// and must not drop existing rows.
	require.NoError(t, RunMigrations(db.Writer))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
