package models

import (
	"time"

	"github.com/google/uuid"
)

// ProposalState represents the state of a challenge proposal
type ProposalState string

const (
	ProposalStateProposed ProposalState = "proposed"
	ProposalStateAccepted ProposalState = "accepted"
	ProposalStateDeclined ProposalState = "declined"
	ProposalStateExpired  ProposalState = "expired"
)

// ChallengeProposal is a pending wager waiting for the opponent's answer.
// The token is single use: any answer moves it out of the proposed state.
type ChallengeProposal struct {
	Token        uuid.UUID     `db:"token"`
	ChallengerID int64         `db:"challenger_id"`
	OpponentID   int64         `db:"opponent_id"`
	GroupID      int64         `db:"group_id"`
	Amount       int64         `db:"amount"`
	State        ProposalState `db:"state"`
	ChallengeID  *int64        `db:"challenge_id"`
	CreatedAt    time.Time     `db:"created_at"`
	ExpiresAt    time.Time     `db:"expires_at"`
	RespondedAt  *time.Time    `db:"responded_at"`
}

// IsExpired reports whether the proposal can no longer be answered at now
func (p *ChallengeProposal) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// IsOpen reports whether the proposal still waits for an answer
func (p *ChallengeProposal) IsOpen() bool {
	return p.State == ProposalStateProposed
}

// ChallengeRecord is the immutable audit row of a resolved challenge
type ChallengeRecord struct {
	ChallengeID  int64     `db:"challenge_id"`
	ChallengerID int64     `db:"challenger_id"`
	OpponentID   int64     `db:"opponent_id"`
	GroupID      int64     `db:"group_id"`
	Amount       int64     `db:"amount"`
	WinnerID     int64     `db:"winner_id"`
	CreatedAt    time.Time `db:"created_at"`
}

// LoserID returns the party that did not win
func (r *ChallengeRecord) LoserID() int64 {
	if r.WinnerID == r.ChallengerID {
		return r.OpponentID
	}
	return r.ChallengerID
}

// ChallengeResult is the outcome of a resolved challenge
type ChallengeResult struct {
	Record          *ChallengeRecord
	WinnerID        int64
	LoserID         int64
	WinnerUsername  string
	LoserUsername   string
	WinnerNewLength int64
	LoserNewLength  int64
	Amount          int64
	Completed       map[int64][]QuestCompletion // quests completed per user
}

// ChallengeResponse is returned when the opponent answers a proposal
type ChallengeResponse struct {
	Proposal *ChallengeProposal
	Accepted bool
	Result   *ChallengeResult // nil when declined
}
