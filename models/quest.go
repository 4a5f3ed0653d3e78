package models

import (
	"time"
)

// QuestType is the trigger a quest listens to
type QuestType string

const (
	QuestTypeDailyGrowth            QuestType = "daily_growth"
	QuestTypeChallengesWon          QuestType = "challenges_won"
	QuestTypeChallengesParticipated QuestType = "challenges_participated"
	QuestTypeTotalLength            QuestType = "total_length"
	QuestTypeManual                 QuestType = "manual"
)

// IsAbsolute reports whether progress events of this type carry the current
// absolute value rather than an increment.
func (t QuestType) IsAbsolute() bool {
	return t == QuestTypeTotalLength
}

// Quest is a group-scoped achievement template
type Quest struct {
	QuestID      int64          `db:"quest_id"`
	GroupID      int64          `db:"group_id"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	Reward       int64          `db:"reward"`
	Requirements map[string]any `db:"requirements"` // opaque, stored as JSONB
	QuestType    QuestType      `db:"quest_type"`
	TargetValue  int64          `db:"target_value"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
}

// UserQuestProgress tracks one user's progress on one quest
type UserQuestProgress struct {
	UserID      int64      `db:"user_id"`
	GroupID     int64      `db:"group_id"`
	QuestID     int64      `db:"quest_id"`
	Progress    int64      `db:"progress"`
	Completed   bool       `db:"completed"`
	CompletedAt *time.Time `db:"completed_at"`
}

// Percentage returns progress towards target as 0-100
func (p *UserQuestProgress) Percentage(target int64) float64 {
	if p == nil || p.Progress <= 0 {
		return 0
	}
	if target <= 0 || p.Progress >= target {
		return 100
	}
	return float64(p.Progress) / float64(target) * 100
}

// QuestStatus pairs a quest with the caller's progress on it
type QuestStatus struct {
	Quest    *Quest
	Progress *UserQuestProgress // nil when the user has no progress yet
}

// QuestCompletion describes a quest that was completed by a progress event
type QuestCompletion struct {
	QuestID   int64
	Title     string
	Reward    int64
	NewLength int64
}

// DefaultQuests is the catalog seeded into every group
func DefaultQuests(groupID int64) []*Quest {
	return []*Quest{
		{
			GroupID:      groupID,
			Title:        "Growth Streak",
			Description:  "Grow on five different days",
			Reward:       25,
			Requirements: map[string]any{"consecutive_days": true},
			QuestType:    QuestTypeDailyGrowth,
			TargetValue:  5,
			IsActive:     true,
		},
		{
			GroupID:      groupID,
			Title:        "Challenge Champion",
			Description:  "Win 3 challenges",
			Reward:       30,
			Requirements: map[string]any{},
			QuestType:    QuestTypeChallengesWon,
			TargetValue:  3,
			IsActive:     true,
		},
		{
			GroupID:      groupID,
			Title:        "Long Haul",
			Description:  "Reach a total length of 100 cm",
			Reward:       50,
			Requirements: map[string]any{},
			QuestType:    QuestTypeTotalLength,
			TargetValue:  100,
			IsActive:     true,
		},
	}
}
