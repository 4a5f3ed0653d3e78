package models

import (
	"time"
)

// DateLayout is the civil-date layout used for growth days
const DateLayout = time.DateOnly

// User is a member's ledger row inside one group
type User struct {
	UserID          int64      `db:"user_id"`
	GroupID         int64      `db:"group_id"`
	Username        string     `db:"username"`
	Length          int64      `db:"length"`
	LastGrowth      *time.Time `db:"last_growth"` // civil date, nil until the first growth
	TotalChallenges int        `db:"total_challenges"`
	ChallengesWon   int        `db:"challenges_won"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// WinRate returns the challenge win percentage (0-100), or 0 without challenges
func (u *User) WinRate() float64 {
	if u.TotalChallenges == 0 {
		return 0
	}
	return float64(u.ChallengesWon) / float64(u.TotalChallenges) * 100
}

// LastGrowthDate returns the last growth day as YYYY-MM-DD, or "" if the user never grew
func (u *User) LastGrowthDate() string {
	if u.LastGrowth == nil {
		return ""
	}
	return u.LastGrowth.Format(DateLayout)
}

// CivilDate truncates t to its calendar date in t's own location and
// re-expresses it as midnight UTC, the form DATE columns round-trip as.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
