package repository

import (
	"context"
	"fmt"

	"grower/database"
	"grower/models"

	"github.com/jackc/pgx/v5"
)

const questColumns = `quest_id, group_id, title, description, reward, requirements,
	quest_type, target_value, is_active, created_at`

// QuestRepository implements the QuestRepository interface
type QuestRepository struct {
	q       queryable
	groupID int64
}

// NewQuestRepository creates a group-scoped quest repository on the pool
func NewQuestRepository(db *database.DB, groupID int64) *QuestRepository {
	return &QuestRepository{q: db.Pool, groupID: groupID}
}

func newQuestRepository(tx queryable, groupID int64) *QuestRepository {
	return &QuestRepository{q: tx, groupID: groupID}
}

func scanQuest(row pgx.Row) (*models.Quest, error) {
	var q models.Quest
	err := row.Scan(
		&q.QuestID,
		&q.GroupID,
		&q.Title,
		&q.Description,
		&q.Reward,
		&q.Requirements,
		&q.QuestType,
		&q.TargetValue,
		&q.IsActive,
		&q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestRepository) list(ctx context.Context, query string, args ...any) ([]*models.Quest, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quests for group %d: %w", r.groupID, err)
	}
	defer rows.Close()

	var quests []*models.Quest
	for rows.Next() {
		quest, err := scanQuest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quest: %w", err)
		}
		quests = append(quests, quest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quests: %w", err)
	}
	return quests, nil
}

// GetActive returns every active quest of the group
func (r *QuestRepository) GetActive(ctx context.Context) ([]*models.Quest, error) {
	query := `SELECT ` + questColumns + `
		FROM quests
		WHERE group_id = $1 AND is_active
		ORDER BY quest_id`
	return r.list(ctx, query, r.groupID)
}

// GetActiveByType returns the active quests of one type
func (r *QuestRepository) GetActiveByType(ctx context.Context, questType models.QuestType) ([]*models.Quest, error) {
	query := `SELECT ` + questColumns + `
		FROM quests
		WHERE group_id = $1 AND quest_type = $2 AND is_active
		ORDER BY quest_id`
	return r.list(ctx, query, r.groupID, string(questType))
}

// InsertIfAbsent inserts the quests into the current group, skipping titles
// that already exist
func (r *QuestRepository) InsertIfAbsent(ctx context.Context, quests []*models.Quest) (int, error) {
	query := `
		INSERT INTO quests (group_id, title, description, reward, requirements, quest_type, target_value, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT ON CONSTRAINT quests_group_title_key DO NOTHING
	`

	inserted := 0
	for _, quest := range quests {
		requirements := quest.Requirements
		if requirements == nil {
			requirements = map[string]any{}
		}

		tag, err := r.q.Exec(ctx, query,
			r.groupID,
			quest.Title,
			quest.Description,
			quest.Reward,
			requirements,
			string(quest.QuestType),
			quest.TargetValue,
			quest.IsActive,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert quest %q into group %d: %w", quest.Title, r.groupID, err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}
