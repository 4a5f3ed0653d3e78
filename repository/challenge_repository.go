package repository

import (
	"context"
	"errors"
	"fmt"

	"grower/models"

	"github.com/jackc/pgx/v5"
)

const challengeColumns = `challenge_id, challenger_id, opponent_id, group_id, amount, winner_id, created_at`

// ChallengeRepository implements the ChallengeRepository interface
type ChallengeRepository struct {
	q       queryable
	groupID int64
}

func newChallengeRepository(tx queryable, groupID int64) *ChallengeRepository {
	return &ChallengeRepository{q: tx, groupID: groupID}
}

func scanChallenge(row pgx.Row) (*models.ChallengeRecord, error) {
	var c models.ChallengeRecord
	err := row.Scan(&c.ChallengeID, &c.ChallengerID, &c.OpponentID, &c.GroupID, &c.Amount, &c.WinnerID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create appends a challenge record to the group's history
func (r *ChallengeRepository) Create(ctx context.Context, record *models.ChallengeRecord) error {
	query := `
		INSERT INTO challenge_history (challenger_id, opponent_id, group_id, amount, winner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING challenge_id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		record.ChallengerID,
		record.OpponentID,
		r.groupID,
		record.Amount,
		record.WinnerID,
	).Scan(&record.ChallengeID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record challenge in group %d: %w", r.groupID, err)
	}

	record.GroupID = r.groupID
	return nil
}

// GetByID returns a challenge record of the current group
func (r *ChallengeRepository) GetByID(ctx context.Context, challengeID int64) (*models.ChallengeRecord, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenge_history WHERE challenge_id = $1 AND group_id = $2`

	record, err := scanChallenge(r.q.QueryRow(ctx, query, challengeID, r.groupID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge %d: %w", challengeID, err)
	}
	return record, nil
}

// ListByUser returns the user's most recent challenges, newest first
func (r *ChallengeRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.ChallengeRecord, error) {
	query := `SELECT ` + challengeColumns + `
		FROM challenge_history
		WHERE group_id = $1 AND (challenger_id = $2 OR opponent_id = $2)
		ORDER BY created_at DESC, challenge_id DESC
		LIMIT $3`

	rows, err := r.q.Query(ctx, query, r.groupID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges of user %d: %w", userID, err)
	}
	defer rows.Close()

	var records []*models.ChallengeRecord
	for rows.Next() {
		record, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating challenges: %w", err)
	}
	return records, nil
}
