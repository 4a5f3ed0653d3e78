package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_WinRate(t *testing.T) {
	t.Run("no challenges", func(t *testing.T) {
		u := &User{}
		assert.Equal(t, 0.0, u.WinRate())
	})

	t.Run("some wins", func(t *testing.T) {
		u := &User{TotalChallenges: 4, ChallengesWon: 1}
		assert.InDelta(t, 25.0, u.WinRate(), 0.0001)
	})

	t.Run("all wins", func(t *testing.T) {
		u := &User{TotalChallenges: 3, ChallengesWon: 3}
		assert.InDelta(t, 100.0, u.WinRate(), 0.0001)
	})
}

func TestUser_LastGrowthDate(t *testing.T) {
	u := &User{}
	assert.Equal(t, "", u.LastGrowthDate())

	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	u.LastGrowth = &day
	assert.Equal(t, "2024-03-09", u.LastGrowthDate())
}

func TestCivilDate(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	// 01:30 local on the 10th is still the 9th in UTC; the local date must win.
	local := time.Date(2024, 3, 10, 1, 30, 0, 0, loc)

	got := CivilDate(local)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got)
}
