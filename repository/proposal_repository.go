package repository

import (
	"context"
	"errors"
	"fmt"

	"grower/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProposalRepository implements the ProposalRepository interface
type ProposalRepository struct {
	q       queryable
	groupID int64
}

func newProposalRepository(tx queryable, groupID int64) *ProposalRepository {
	return &ProposalRepository{q: tx, groupID: groupID}
}

// Create stores a new proposal in the current group
func (r *ProposalRepository) Create(ctx context.Context, p *models.ChallengeProposal) error {
	query := `
		INSERT INTO challenge_proposals (token, challenger_id, opponent_id, group_id, amount, state, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		p.Token,
		p.ChallengerID,
		p.OpponentID,
		r.groupID,
		p.Amount,
		string(p.State),
		p.ExpiresAt,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create challenge proposal: %w", err)
	}

	p.GroupID = r.groupID
	return nil
}

// GetForUpdate locks a proposal by its token. Tokens are global, so the
// lookup is not restricted to the current group; callers compare GroupID.
func (r *ProposalRepository) GetForUpdate(ctx context.Context, token uuid.UUID) (*models.ChallengeProposal, error) {
	query := `
		SELECT token, challenger_id, opponent_id, group_id, amount, state,
		       challenge_id, created_at, expires_at, responded_at
		FROM challenge_proposals
		WHERE token = $1
		FOR UPDATE
	`

	var p models.ChallengeProposal
	err := r.q.QueryRow(ctx, query, token).Scan(
		&p.Token,
		&p.ChallengerID,
		&p.OpponentID,
		&p.GroupID,
		&p.Amount,
		&p.State,
		&p.ChallengeID,
		&p.CreatedAt,
		&p.ExpiresAt,
		&p.RespondedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge proposal %s: %w", token, err)
	}
	return &p, nil
}

// Update stores the proposal's state transition
func (r *ProposalRepository) Update(ctx context.Context, p *models.ChallengeProposal) error {
	query := `
		UPDATE challenge_proposals
		SET state = $2, challenge_id = $3, responded_at = $4
		WHERE token = $1
	`

	tag, err := r.q.Exec(ctx, query, p.Token, string(p.State), p.ChallengeID, p.RespondedAt)
	if err != nil {
		return fmt.Errorf("failed to update challenge proposal %s: %w", p.Token, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("challenge proposal %s not found", p.Token)
	}
	return nil
}
