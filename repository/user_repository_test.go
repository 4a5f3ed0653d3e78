package repository

import (
	"context"
	"testing"
	"time"

	"grower/models"
	"grower/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	const groupID = int64(100)
	repo := NewUserRepository(testDB.DB, groupID)

	t.Run("get missing user", func(t *testing.T) {
		testDB.Reset(t)

		user, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("create starts at zero", func(t *testing.T) {
		testDB.Reset(t)

		user, err := repo.Create(ctx, 1, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.UserID)
		assert.Equal(t, groupID, user.GroupID)
		assert.Equal(t, int64(0), user.Length)
		assert.Nil(t, user.LastGrowth)
		assert.Zero(t, user.TotalChallenges)
	})

	t.Run("create twice returns existing row", func(t *testing.T) {
		testDB.Reset(t)

		first, err := repo.Create(ctx, 1, "alice")
		require.NoError(t, err)
		_, err = repo.AddLength(ctx, 1, 7)
		require.NoError(t, err)

		second, err := repo.Create(ctx, 1, "alice2")
		require.NoError(t, err)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
		assert.Equal(t, int64(7), second.Length)
		assert.Equal(t, "alice", second.Username)
	})

	t.Run("rows are scoped by group", func(t *testing.T) {
		testDB.Reset(t)

		_, err := repo.Create(ctx, 1, "alice")
		require.NoError(t, err)

		other := NewUserRepository(testDB.DB, groupID+1)
		user, err := other.Get(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("apply growth stamps civil date", func(t *testing.T) {
		testDB.Reset(t)

		_, err := repo.Create(ctx, 1, "alice")
		require.NoError(t, err)

		day := time.Date(2024, 5, 17, 23, 30, 0, 0, time.UTC)
		user, err := repo.ApplyGrowth(ctx, 1, 9, day)
		require.NoError(t, err)
		assert.Equal(t, int64(9), user.Length)
		assert.Equal(t, "2024-05-17", user.LastGrowthDate())
	})

	t.Run("challenge outcome floors at zero", func(t *testing.T) {
		testDB.Reset(t)
		testutil.InsertUser(t, testDB.DB, testutil.CreateTestUser(1, groupID, "alice", 3))

		loser, err := repo.ApplyChallengeOutcome(ctx, 1, -10, false)
		require.NoError(t, err)
		assert.Equal(t, int64(0), loser.Length)
		assert.Equal(t, 1, loser.TotalChallenges)
		assert.Equal(t, 0, loser.ChallengesWon)

		winner, err := repo.ApplyChallengeOutcome(ctx, 1, 10, true)
		require.NoError(t, err)
		assert.Equal(t, int64(10), winner.Length)
		assert.Equal(t, 2, winner.TotalChallenges)
		assert.Equal(t, 1, winner.ChallengesWon)
	})

	t.Run("add length rejects negative amounts", func(t *testing.T) {
		testDB.Reset(t)
		testutil.InsertUser(t, testDB.DB, testutil.CreateTestUser(1, groupID, "alice", 3))

		_, err := repo.AddLength(ctx, 1, -1)
		assert.Error(t, err)
	})

	t.Run("update on missing user fails", func(t *testing.T) {
		testDB.Reset(t)

		_, err := repo.ApplyGrowth(ctx, 42, 1, time.Now())
		assert.Error(t, err)
	})

	t.Run("leaderboard orders by length then id", func(t *testing.T) {
		testDB.Reset(t)
		testutil.InsertUser(t, testDB.DB, testutil.CreateTestUser(3, groupID, "carol", 20))
		testutil.InsertUser(t, testDB.DB, testutil.CreateTestUser(1, groupID, "alice", 20))
		testutil.InsertUser(t, testDB.DB, testutil.CreateTestUser(2, groupID, "bob", 50))
		testutil.InsertUser(t, testDB.DB, testutil.CreateTestUser(4, groupID, "dave", 1))
		testutil.InsertUser(t, testDB.DB, testutil.CreateTestUser(5, groupID+1, "eve", 999))

		users, err := repo.Leaderboard(ctx, 3)
		require.NoError(t, err)
		require.Len(t, users, 3)

		ids := []int64{users[0].UserID, users[1].UserID, users[2].UserID}
		assert.Equal(t, []int64{2, 1, 3}, ids)
	})

	t.Run("username refresh", func(t *testing.T) {
		testDB.Reset(t)
		_, err := repo.Create(ctx, 1, "alice")
		require.NoError(t, err)

		require.NoError(t, repo.UpdateUsername(ctx, 1, "alicia"))

		user, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "alicia", user.Username)
	})

	t.Run("length never goes negative", func(t *testing.T) {
		testDB.Reset(t)
		testutil.InsertUser(t, testDB.DB, &models.User{UserID: 9, GroupID: groupID, Username: "x"})

		_, err := testDB.DB.Exec(ctx, `UPDATE users SET length = -1 WHERE user_id = 9`)
		assert.Error(t, err)
	})
}
