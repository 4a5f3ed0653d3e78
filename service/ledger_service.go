package service

import (
	"context"
	"fmt"

	"grower/config"
	"grower/events"
	"grower/models"

	log "github.com/sirupsen/logrus"
)

const (
	msgAlreadyGrown = "You already grew today. Come back tomorrow!"
	msgGrown        = "You grew %d cm! New length: %d cm"
)

// ledgerService implements the LedgerService interface
type ledgerService struct {
	uowFactory UnitOfWorkFactory
	progress   ProgressRecorder
	clock      Clock
	rng        Random
	config     *config.Config
}

// NewLedgerService creates a new ledger service. progress may be nil, in
// which case no quest progress is recorded.
func NewLedgerService(uowFactory UnitOfWorkFactory, progress ProgressRecorder, clock Clock, rng Random, cfg *config.Config) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
		progress:   progress,
		clock:      clock,
		rng:        rng,
		config:     cfg,
	}
}

// GetOrCreate returns the user's row, creating it with length 0 on first contact
func (s *ledgerService) GetOrCreate(ctx context.Context, userID, groupID int64, username string) (*models.User, error) {
	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := getOrCreateUser(ctx, uow.UserRepository(), userID, username)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// getOrCreateUser locks the user's row, creating it when missing, and keeps
// the stored username current
func getOrCreateUser(ctx context.Context, repo UserRepository, userID int64, username string) (*models.User, error) {
	user, err := repo.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		user, err = repo.Create(ctx, userID, username)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		log.WithFields(log.Fields{
			"userID":  userID,
			"groupID": user.GroupID,
		}).Info("Registered new user")
		return user, nil
	}

	if username != "" && user.Username != username {
		if err := repo.UpdateUsername(ctx, userID, username); err != nil {
			return nil, err
		}
		user.Username = username
	}

	return user, nil
}

// CanGrowToday reports whether the user's last growth was before today
func (s *ledgerService) CanGrowToday(user *models.User) bool {
	if user == nil || user.LastGrowth == nil {
		return true
	}
	return user.LastGrowthDate() != Today(s.clock).Format(models.DateLayout)
}

// Grow applies the daily growth. Growing twice on the same day is not an
// error; the result carries OK=false and the unchanged length.
func (s *ledgerService) Grow(ctx context.Context, userID, groupID int64, username string) (*models.GrowthResult, error) {
	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settings, err := uow.GroupSettingsRepository().GetOrCreate(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get group settings: %w", err)
	}
	if !settings.IsEnabled(models.FeatureGrowth) {
		return nil, newValidationError("daily growth is disabled in this group")
	}

	user, err := getOrCreateUser(ctx, uow.UserRepository(), userID, username)
	if err != nil {
		return nil, err
	}

	if !s.CanGrowToday(user) {
		// keep a username refresh made by getOrCreateUser
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return &models.GrowthResult{
			OK:        false,
			Message:   msgAlreadyGrown,
			NewLength: user.Length,
		}, nil
	}

	growth := randomBetween(s.rng, s.config.MinDailyGrowth, s.config.MaxDailyGrowth)

	updated, err := uow.UserRepository().ApplyGrowth(ctx, userID, growth, Today(s.clock))
	if err != nil {
		return nil, fmt.Errorf("failed to apply growth: %w", err)
	}

	uow.EventBus().Publish(events.LengthChangedEvent{
		UserID:    userID,
		GroupID:   groupID,
		OldLength: user.Length,
		NewLength: updated.Length,
		Reason:    events.ReasonGrowth,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":    userID,
		"groupID":   groupID,
		"growth":    growth,
		"newLength": updated.Length,
	}).Info("User grew")

	result := &models.GrowthResult{
		OK:        true,
		Message:   fmt.Sprintf(msgGrown, growth, updated.Length),
		Growth:    growth,
		NewLength: updated.Length,
	}

	// NewLength stays the post-growth value; quest rewards only show up in Completed
	result.Completed = recordProgress(ctx, s.progress, userID, groupID,
		progressEvent{models.QuestTypeDailyGrowth, 1},
		progressEvent{models.QuestTypeTotalLength, updated.Length},
	)
	return result, nil
}

// Leaderboard returns the group's users ordered by length. A non-positive
// limit falls back to the configured default.
func (s *ledgerService) Leaderboard(ctx context.Context, groupID int64, limit int) ([]*models.User, error) {
	if limit <= 0 {
		limit = s.config.LeaderboardLimit
	}

	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().Leaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return users, nil
}

// Stats returns the user's ledger row
func (s *ledgerService) Stats(ctx context.Context, userID, groupID int64) (*models.User, error) {
	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &NotFoundError{Entity: "user", ID: userID}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

type progressEvent struct {
	questType models.QuestType
	value     int64
}

// recordProgress forwards progress events after the triggering action has
// committed. Failures are logged and never undo the action.
func recordProgress(ctx context.Context, recorder ProgressRecorder, userID, groupID int64, evs ...progressEvent) []models.QuestCompletion {
	if recorder == nil {
		return nil
	}

	var completed []models.QuestCompletion
	for _, ev := range evs {
		done, err := recorder.RecordProgress(ctx, userID, groupID, ev.questType, ev.value)
		if err != nil {
			log.WithFields(log.Fields{
				"userID":    userID,
				"groupID":   groupID,
				"questType": ev.questType,
				"error":     err,
			}).Warn("Failed to record quest progress")
			continue
		}
		completed = append(completed, done...)
	}
	return completed
}
