package repository

import (
	"context"
	"errors"
	"fmt"

	"grower/models"

	"github.com/jackc/pgx/v5"
)

// UserQuestRepository implements the UserQuestRepository interface
type UserQuestRepository struct {
	q       queryable
	groupID int64
}

func newUserQuestRepository(tx queryable, groupID int64) *UserQuestRepository {
	return &UserQuestRepository{q: tx, groupID: groupID}
}

func scanProgress(row pgx.Row) (*models.UserQuestProgress, error) {
	var p models.UserQuestProgress
	if err := row.Scan(&p.UserID, &p.GroupID, &p.QuestID, &p.Progress, &p.Completed, &p.CompletedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByUser returns all progress rows of a user in the group
func (r *UserQuestRepository) GetByUser(ctx context.Context, userID int64) ([]*models.UserQuestProgress, error) {
	query := `
		SELECT user_id, group_id, quest_id, progress, completed, completed_at
		FROM user_quests
		WHERE user_id = $1 AND group_id = $2
		ORDER BY quest_id
	`

	rows, err := r.q.Query(ctx, query, userID, r.groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quest progress of user %d: %w", userID, err)
	}
	defer rows.Close()

	var result []*models.UserQuestProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quest progress: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quest progress: %w", err)
	}
	return result, nil
}

// GetForUpdate locks one progress row
func (r *UserQuestRepository) GetForUpdate(ctx context.Context, userID, questID int64) (*models.UserQuestProgress, error) {
	query := `
		SELECT user_id, group_id, quest_id, progress, completed, completed_at
		FROM user_quests
		WHERE user_id = $1 AND group_id = $2 AND quest_id = $3
		FOR UPDATE
	`

	p, err := scanProgress(r.q.QueryRow(ctx, query, userID, r.groupID, questID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock quest %d progress of user %d: %w", questID, userID, err)
	}
	return p, nil
}

// Create inserts a progress row in the current group
func (r *UserQuestRepository) Create(ctx context.Context, p *models.UserQuestProgress) error {
	query := `
		INSERT INTO user_quests (user_id, group_id, quest_id, progress, completed, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.Exec(ctx, query, p.UserID, r.groupID, p.QuestID, p.Progress, p.Completed, p.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to create quest %d progress of user %d: %w", p.QuestID, p.UserID, err)
	}
	p.GroupID = r.groupID
	return nil
}

// Update stores progress and completion of an existing row
func (r *UserQuestRepository) Update(ctx context.Context, p *models.UserQuestProgress) error {
	query := `
		UPDATE user_quests
		SET progress = $4, completed = $5, completed_at = $6
		WHERE user_id = $1 AND group_id = $2 AND quest_id = $3
	`

	tag, err := r.q.Exec(ctx, query, p.UserID, r.groupID, p.QuestID, p.Progress, p.Completed, p.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to update quest %d progress of user %d: %w", p.QuestID, p.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quest %d progress of user %d not found", p.QuestID, p.UserID)
	}
	return nil
}
