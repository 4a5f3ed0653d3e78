package testutil

import (
	"context"
	"testing"
	"time"

	"grower/database"
	"grower/models"

	"github.com/stretchr/testify/require"
)

// CreateTestUser builds an in-memory user with the given length
func CreateTestUser(userID, groupID int64, username string, length int64) *models.User {
	now := time.Now()
	return &models.User{
		UserID:    userID,
		GroupID:   groupID,
		Username:  username,
		Length:    length,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// InsertUser writes a user row directly, bypassing the services
func InsertUser(t *testing.T, db *database.DB, user *models.User) {
	t.Helper()
	_, err := db.Exec(context.Background(), `
		INSERT INTO users (user_id, group_id, username, length, last_growth, total_challenges, challenges_won)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.UserID, user.GroupID, user.Username, user.Length, user.LastGrowth, user.TotalChallenges, user.ChallengesWon)
	require.NoError(t, err)
}

// CreateTestQuest builds an active quest
func CreateTestQuest(groupID int64, title string, questType models.QuestType, target, reward int64) *models.Quest {
	return &models.Quest{
		GroupID:      groupID,
		Title:        title,
		Description:  title,
		Reward:       reward,
		Requirements: map[string]any{},
		QuestType:    questType,
		TargetValue:  target,
		IsActive:     true,
	}
}

// CountRows returns the number of rows in table matching group_id
func CountRows(t *testing.T, db *database.DB, table string, groupID int64) int {
	t.Helper()
	var n int
	err := db.QueryRow(context.Background(), `SELECT COUNT(*) FROM `+table+` WHERE group_id = $1`, groupID).Scan(&n)
	require.NoError(t, err)
	return n
}
