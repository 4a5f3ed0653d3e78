package repository

import (
	"context"
	"errors"
	"fmt"

	"grower/models"

	"github.com/jackc/pgx/v5"
)

const groupSettingsColumns = `group_id, group_name, daily_growth_enabled, challenges_enabled,
	quests_enabled, leader_role_id, created_at, updated_at`

// GroupSettingsRepository implements the GroupSettingsRepository interface
type GroupSettingsRepository struct {
	q       queryable
	groupID int64
}

func newGroupSettingsRepository(tx queryable, groupID int64) *GroupSettingsRepository {
	return &GroupSettingsRepository{q: tx, groupID: groupID}
}

// GetOrCreate returns the group's settings, inserting the defaults on first
// use. A non-empty groupName refreshes the stored name. The row is only
// written when it is missing or renamed.
func (r *GroupSettingsRepository) GetOrCreate(ctx context.Context, groupName string) (*models.GroupSettings, error) {
	s, err := r.get(ctx)
	if err != nil {
		return nil, err
	}

	if s == nil {
		s, err = r.insert(ctx, groupName)
		if err != nil {
			return nil, err
		}
		// lost the race to a concurrent insert
		if s == nil {
			if s, err = r.get(ctx); err != nil {
				return nil, err
			}
			if s == nil {
				return nil, fmt.Errorf("settings for group %d vanished after insert", r.groupID)
			}
		}
	}

	if groupName != "" && groupName != s.GroupName {
		if err := r.rename(ctx, s, groupName); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *GroupSettingsRepository) get(ctx context.Context) (*models.GroupSettings, error) {
	query := `SELECT ` + groupSettingsColumns + ` FROM group_settings WHERE group_id = $1`

	s, err := scanGroupSettings(r.q.QueryRow(ctx, query, r.groupID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings for group %d: %w", r.groupID, err)
	}
	return s, nil
}

// insert returns nil when another transaction created the row first
func (r *GroupSettingsRepository) insert(ctx context.Context, groupName string) (*models.GroupSettings, error) {
	query := `
		INSERT INTO group_settings (group_id, group_name)
		VALUES ($1, $2)
		ON CONFLICT (group_id) DO NOTHING
		RETURNING ` + groupSettingsColumns

	s, err := scanGroupSettings(r.q.QueryRow(ctx, query, r.groupID, groupName))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create settings for group %d: %w", r.groupID, err)
	}
	return s, nil
}

func (r *GroupSettingsRepository) rename(ctx context.Context, s *models.GroupSettings, groupName string) error {
	query := `
		UPDATE group_settings
		SET group_name = $2, updated_at = NOW()
		WHERE group_id = $1
		RETURNING updated_at
	`

	if err := r.q.QueryRow(ctx, query, r.groupID, groupName).Scan(&s.UpdatedAt); err != nil {
		return fmt.Errorf("failed to rename group %d: %w", r.groupID, err)
	}
	s.GroupName = groupName
	return nil
}

func scanGroupSettings(row pgx.Row) (*models.GroupSettings, error) {
	var s models.GroupSettings
	err := row.Scan(
		&s.GroupID,
		&s.GroupName,
		&s.DailyGrowthEnabled,
		&s.ChallengesEnabled,
		&s.QuestsEnabled,
		&s.LeaderRoleID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update stores the feature switches and leader role
func (r *GroupSettingsRepository) Update(ctx context.Context, s *models.GroupSettings) error {
	query := `
		UPDATE group_settings
		SET daily_growth_enabled = $2,
		    challenges_enabled = $3,
		    quests_enabled = $4,
		    leader_role_id = $5,
		    updated_at = NOW()
		WHERE group_id = $1
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query,
		r.groupID,
		s.DailyGrowthEnabled,
		s.ChallengesEnabled,
		s.QuestsEnabled,
		s.LeaderRoleID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update settings for group %d: %w", r.groupID, err)
	}
	return nil
}
