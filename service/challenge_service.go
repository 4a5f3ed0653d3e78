package service

import (
	"context"
	"fmt"

	"grower/config"
	"grower/events"
	"grower/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Refusal reasons returned by CanChallenge
const (
	ReasonSelfChallenge     = "self-challenge forbidden"
	ReasonNotParticipated   = "both parties must have participated"
	ReasonInsufficientStake = "insufficient score to stake"
)

// challengeService implements the ChallengeService interface
type challengeService struct {
	uowFactory UnitOfWorkFactory
	progress   ProgressRecorder
	clock      Clock
	rng        Random
	config     *config.Config
}

// NewChallengeService creates a new challenge service
func NewChallengeService(uowFactory UnitOfWorkFactory, progress ProgressRecorder, clock Clock, rng Random, cfg *config.Config) ChallengeService {
	return &challengeService{
		uowFactory: uowFactory,
		progress:   progress,
		clock:      clock,
		rng:        rng,
		config:     cfg,
	}
}

// ValidateAmount returns the stake to use. Zero selects the default amount.
func (s *challengeService) ValidateAmount(amount int64) (int64, error) {
	if amount == 0 {
		return s.config.DefaultChallengeAmount, nil
	}
	if amount < s.config.MinChallengeAmount || amount > s.config.MaxChallengeAmount {
		return 0, newValidationError("challenge amount must be between %d and %d cm",
			s.config.MinChallengeAmount, s.config.MaxChallengeAmount)
	}
	return amount, nil
}

// checkEligibility applies the participation and stake rules to loaded rows
func checkEligibility(challenger, opponent *models.User, amount int64) (bool, string) {
	if challenger == nil || opponent == nil {
		return false, ReasonNotParticipated
	}
	for _, u := range []*models.User{challenger, opponent} {
		if u.Length < amount {
			return false, fmt.Sprintf("%s: %s has %d cm", ReasonInsufficientStake, u.Username, u.Length)
		}
	}
	return true, ""
}

// CanChallenge reports whether the two users may play for amount. The
// returned error is reserved for storage failures.
func (s *challengeService) CanChallenge(ctx context.Context, challengerID, opponentID, groupID, amount int64) (bool, string, error) {
	if challengerID == opponentID {
		return false, ReasonSelfChallenge, nil
	}

	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return false, "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	challenger, err := uow.UserRepository().Get(ctx, challengerID)
	if err != nil {
		return false, "", fmt.Errorf("failed to get challenger: %w", err)
	}
	opponent, err := uow.UserRepository().Get(ctx, opponentID)
	if err != nil {
		return false, "", fmt.Errorf("failed to get opponent: %w", err)
	}

	ok, reason := checkEligibility(challenger, opponent, amount)
	return ok, reason, nil
}

// Propose validates a challenge and stores it for the opponent to answer
func (s *challengeService) Propose(ctx context.Context, challengerID, opponentID, groupID, amount int64) (*models.ChallengeProposal, error) {
	amount, err := s.ValidateAmount(amount)
	if err != nil {
		return nil, err
	}
	if challengerID == opponentID {
		return nil, newValidationError(ReasonSelfChallenge)
	}

	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := requireFeature(ctx, uow, models.FeatureChallenges); err != nil {
		return nil, err
	}

	challenger, err := uow.UserRepository().Get(ctx, challengerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenger: %w", err)
	}
	opponent, err := uow.UserRepository().Get(ctx, opponentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get opponent: %w", err)
	}
	if ok, reason := checkEligibility(challenger, opponent, amount); !ok {
		return nil, &ValidationError{Reason: reason}
	}

	now := s.clock.Now()
	proposal := &models.ChallengeProposal{
		Token:        uuid.New(),
		ChallengerID: challengerID,
		OpponentID:   opponentID,
		GroupID:      groupID,
		Amount:       amount,
		State:        models.ProposalStateProposed,
		ExpiresAt:    now.Add(s.config.ChallengeProposalTTL),
	}
	if err := uow.ProposalRepository().Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"token":        proposal.Token,
		"challengerID": challengerID,
		"opponentID":   opponentID,
		"groupID":      groupID,
		"amount":       amount,
	}).Info("Challenge proposed")

	return proposal, nil
}

// Respond answers a proposal. Only the named opponent in the proposal's own
// group may answer, and only once.
func (s *challengeService) Respond(ctx context.Context, token uuid.UUID, responderID, responderGroupID int64, accept bool) (*models.ChallengeResponse, error) {
	uow := s.uowFactory.CreateForGroup(responderGroupID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	proposal, err := uow.ProposalRepository().GetForUpdate(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	if proposal == nil {
		return nil, &NotFoundError{Entity: "challenge", ID: token}
	}

	if proposal.GroupID != responderGroupID {
		return nil, &AuthorizationError{Reason: "this challenge belongs to another group"}
	}
	if proposal.OpponentID != responderID {
		return nil, &AuthorizationError{Reason: "only the challenged user can respond"}
	}
	if !proposal.IsOpen() {
		return nil, newValidationError("this challenge was already %s", proposal.State)
	}

	now := s.clock.Now()
	proposal.RespondedAt = &now

	if proposal.IsExpired(now) {
		proposal.State = models.ProposalStateExpired
		if err := uow.ProposalRepository().Update(ctx, proposal); err != nil {
			return nil, fmt.Errorf("failed to expire proposal: %w", err)
		}
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil, newValidationError("this challenge has expired")
	}

	response := &models.ChallengeResponse{Proposal: proposal, Accepted: accept}

	if !accept {
		proposal.State = models.ProposalStateDeclined
		if err := uow.ProposalRepository().Update(ctx, proposal); err != nil {
			return nil, fmt.Errorf("failed to decline proposal: %w", err)
		}
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}

		log.WithFields(log.Fields{
			"token":   token,
			"groupID": responderGroupID,
		}).Info("Challenge declined")
		return response, nil
	}

	if err := requireFeature(ctx, uow, models.FeatureChallenges); err != nil {
		return nil, err
	}

	result, err := s.resolve(ctx, uow, proposal.ChallengerID, proposal.OpponentID, proposal.GroupID, proposal.Amount)
	if err != nil {
		return nil, err
	}

	proposal.State = models.ProposalStateAccepted
	proposal.ChallengeID = &result.Record.ChallengeID
	if err := uow.ProposalRepository().Update(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to accept proposal: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.afterResolve(ctx, result)
	response.Result = result
	return response, nil
}

// Resolve settles a challenge immediately, outside the proposal flow
func (s *challengeService) Resolve(ctx context.Context, challengerID, opponentID, groupID, amount int64) (*models.ChallengeResult, error) {
	if challengerID == opponentID {
		return nil, newValidationError(ReasonSelfChallenge)
	}
	if amount <= 0 {
		return nil, newValidationError("challenge amount must be positive")
	}

	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	result, err := s.resolve(ctx, uow, challengerID, opponentID, groupID, amount)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.afterResolve(ctx, result)
	return result, nil
}

// resolve picks the winner and moves the stake inside uow. The stake is not
// checked again here; the loser's length is floored at zero instead.
func (s *challengeService) resolve(ctx context.Context, uow UnitOfWork, challengerID, opponentID, groupID, amount int64) (*models.ChallengeResult, error) {
	repo := uow.UserRepository()

	// lock in id order so concurrent resolutions cannot deadlock
	first, second := challengerID, opponentID
	if second < first {
		first, second = second, first
	}
	locked := make(map[int64]*models.User, 2)
	for _, id := range []int64{first, second} {
		u, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to lock user %d: %w", id, err)
		}
		if u == nil {
			return nil, newValidationError(ReasonNotParticipated)
		}
		locked[id] = u
	}

	winnerID, loserID := challengerID, opponentID
	if s.rng.IntN(2) == 1 {
		winnerID, loserID = opponentID, challengerID
	}
	winnerBefore, loserBefore := locked[winnerID], locked[loserID]

	winner, err := repo.ApplyChallengeOutcome(ctx, winnerID, amount, true)
	if err != nil {
		return nil, fmt.Errorf("failed to credit winner: %w", err)
	}
	loser, err := repo.ApplyChallengeOutcome(ctx, loserID, -amount, false)
	if err != nil {
		return nil, fmt.Errorf("failed to debit loser: %w", err)
	}

	record := &models.ChallengeRecord{
		ChallengerID: challengerID,
		OpponentID:   opponentID,
		GroupID:      groupID,
		Amount:       amount,
		WinnerID:     winnerID,
	}
	if err := uow.ChallengeRepository().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record challenge: %w", err)
	}

	bus := uow.EventBus()
	bus.Publish(events.ChallengeResolvedEvent{
		ChallengeID: record.ChallengeID,
		GroupID:     groupID,
		WinnerID:    winnerID,
		LoserID:     loserID,
		Amount:      amount,
	})
	bus.Publish(events.LengthChangedEvent{
		UserID:    winnerID,
		GroupID:   groupID,
		OldLength: winnerBefore.Length,
		NewLength: winner.Length,
		Reason:    events.ReasonChallengeWin,
	})
	bus.Publish(events.LengthChangedEvent{
		UserID:    loserID,
		GroupID:   groupID,
		OldLength: loserBefore.Length,
		NewLength: loser.Length,
		Reason:    events.ReasonChallengeLoss,
	})

	return &models.ChallengeResult{
		Record:          record,
		WinnerID:        winnerID,
		LoserID:         loserID,
		WinnerUsername:  winner.Username,
		LoserUsername:   loser.Username,
		WinnerNewLength: winner.Length,
		LoserNewLength:  loser.Length,
		Amount:          amount,
	}, nil
}

// afterResolve logs the outcome and feeds quest progress for both players
func (s *challengeService) afterResolve(ctx context.Context, result *models.ChallengeResult) {
	groupID := result.Record.GroupID

	log.WithFields(log.Fields{
		"challengeID": result.Record.ChallengeID,
		"groupID":     groupID,
		"winnerID":    result.WinnerID,
		"loserID":     result.LoserID,
		"amount":      result.Amount,
	}).Info("Challenge resolved")

	completed := make(map[int64][]models.QuestCompletion)

	winnerDone := recordProgress(ctx, s.progress, result.WinnerID, groupID,
		progressEvent{models.QuestTypeChallengesWon, 1},
		progressEvent{models.QuestTypeChallengesParticipated, 1},
	)
	if len(winnerDone) > 0 {
		completed[result.WinnerID] = winnerDone
	}

	loserDone := recordProgress(ctx, s.progress, result.LoserID, groupID,
		progressEvent{models.QuestTypeChallengesParticipated, 1},
	)
	if len(loserDone) > 0 {
		completed[result.LoserID] = loserDone
	}

	result.Completed = completed
}

// requireFeature fails with a ValidationError when the group switched feature off
func requireFeature(ctx context.Context, uow UnitOfWork, feature models.Feature) error {
	settings, err := uow.GroupSettingsRepository().GetOrCreate(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to get group settings: %w", err)
	}
	if !settings.IsEnabled(feature) {
		return newValidationError("%s are disabled in this group", feature)
	}
	return nil
}
