package models

import (
	"time"
)

// Feature names a switchable group feature
type Feature string

const (
	FeatureGrowth     Feature = "growth"
	FeatureChallenges Feature = "challenges"
	FeatureQuests     Feature = "quests"
)

// GroupSettings holds per-group feature switches
type GroupSettings struct {
	GroupID            int64     `db:"group_id"`
	GroupName          string    `db:"group_name"`
	DailyGrowthEnabled bool      `db:"daily_growth_enabled"`
	ChallengesEnabled  bool      `db:"challenges_enabled"`
	QuestsEnabled      bool      `db:"quests_enabled"`
	LeaderRoleID       *int64    `db:"leader_role_id"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// IsEnabled reports whether a feature is switched on
func (s *GroupSettings) IsEnabled(f Feature) bool {
	switch f {
	case FeatureGrowth:
		return s.DailyGrowthEnabled
	case FeatureChallenges:
		return s.ChallengesEnabled
	case FeatureQuests:
		return s.QuestsEnabled
	default:
		return false
	}
}

// SetEnabled switches a feature, returning false for unknown features
func (s *GroupSettings) SetEnabled(f Feature, enabled bool) bool {
	switch f {
	case FeatureGrowth:
		s.DailyGrowthEnabled = enabled
	case FeatureChallenges:
		s.ChallengesEnabled = enabled
	case FeatureQuests:
		s.QuestsEnabled = enabled
	default:
		return false
	}
	return true
}

// HasLeaderRole reports whether leader role sync is configured
func (s *GroupSettings) HasLeaderRole() bool {
	return s.LeaderRoleID != nil && *s.LeaderRoleID != 0
}
