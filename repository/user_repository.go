package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grower/database"
	"grower/models"

	"github.com/jackc/pgx/v5"
)

const userColumns = `user_id, group_id, username, length, last_growth,
	total_challenges, challenges_won, created_at, updated_at`

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q       queryable
	groupID int64
}

// NewUserRepository creates a group-scoped user repository on the pool
func NewUserRepository(db *database.DB, groupID int64) *UserRepository {
	return &UserRepository{q: db.Pool, groupID: groupID}
}

func newUserRepository(tx queryable, groupID int64) *UserRepository {
	return &UserRepository{q: tx, groupID: groupID}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID,
		&u.GroupID,
		&u.Username,
		&u.Length,
		&u.LastGrowth,
		&u.TotalChallenges,
		&u.ChallengesWon,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Get retrieves a user in the current group
func (r *UserRepository) Get(ctx context.Context, userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND group_id = $2`

	user, err := scanUser(r.q.QueryRow(ctx, query, userID, r.groupID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d in group %d: %w", userID, r.groupID, err)
	}
	return user, nil
}

// GetForUpdate retrieves a user and locks the row
func (r *UserRepository) GetForUpdate(ctx context.Context, userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND group_id = $2 FOR UPDATE`

	user, err := scanUser(r.q.QueryRow(ctx, query, userID, r.groupID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock user %d in group %d: %w", userID, r.groupID, err)
	}
	return user, nil
}

// Create inserts a new user with length 0. A concurrent insert of the same
// row is absorbed and the existing row is returned.
func (r *UserRepository) Create(ctx context.Context, userID int64, username string) (*models.User, error) {
	query := `
		INSERT INTO users (user_id, group_id, username)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, group_id) DO UPDATE SET username = users.username
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, userID, r.groupID, username))
	if err != nil {
		return nil, fmt.Errorf("failed to create user %d in group %d: %w", userID, r.groupID, err)
	}
	return user, nil
}

// UpdateUsername stores the latest display name
func (r *UserRepository) UpdateUsername(ctx context.Context, userID int64, username string) error {
	query := `
		UPDATE users SET username = $3, updated_at = NOW()
		WHERE user_id = $1 AND group_id = $2 AND username <> $3
	`
	if _, err := r.q.Exec(ctx, query, userID, r.groupID, username); err != nil {
		return fmt.Errorf("failed to update username of user %d: %w", userID, err)
	}
	return nil
}

// ApplyGrowth adds growth and records the growth day
func (r *UserRepository) ApplyGrowth(ctx context.Context, userID int64, growth int64, day time.Time) (*models.User, error) {
	query := `
		UPDATE users
		SET length = length + $3, last_growth = $4, updated_at = NOW()
		WHERE user_id = $1 AND group_id = $2
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, userID, r.groupID, growth, models.CivilDate(day)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d not found in group %d", userID, r.groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply growth to user %d: %w", userID, err)
	}
	return user, nil
}

// ApplyChallengeOutcome moves length by delta without going below zero and
// updates the challenge tallies
func (r *UserRepository) ApplyChallengeOutcome(ctx context.Context, userID int64, delta int64, won bool) (*models.User, error) {
	query := `
		UPDATE users
		SET length = GREATEST(length + $3, 0),
		    total_challenges = total_challenges + 1,
		    challenges_won = challenges_won + CASE WHEN $4 THEN 1 ELSE 0 END,
		    updated_at = NOW()
		WHERE user_id = $1 AND group_id = $2
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, userID, r.groupID, delta, won))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d not found in group %d", userID, r.groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply challenge outcome to user %d: %w", userID, err)
	}
	return user, nil
}

// AddLength credits amount to the user's length
func (r *UserRepository) AddLength(ctx context.Context, userID int64, amount int64) (*models.User, error) {
	if amount < 0 {
		return nil, fmt.Errorf("amount must be non-negative, got %d", amount)
	}

	query := `
		UPDATE users SET length = length + $3, updated_at = NOW()
		WHERE user_id = $1 AND group_id = $2
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, userID, r.groupID, amount))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d not found in group %d", userID, r.groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add length to user %d: %w", userID, err)
	}
	return user, nil
}

// Leaderboard returns the longest users of the group
func (r *UserRepository) Leaderboard(ctx context.Context, limit int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE group_id = $1
		ORDER BY length DESC, user_id ASC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, r.groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard for group %d: %w", r.groupID, err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard rows: %w", err)
	}

	return users, nil
}
