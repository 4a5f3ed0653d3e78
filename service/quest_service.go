package service

import (
	"context"
	"fmt"

	"grower/events"
	"grower/models"

	log "github.com/sirupsen/logrus"
)

// questService implements the QuestService interface
type questService struct {
	uowFactory UnitOfWorkFactory
	clock      Clock
}

// NewQuestService creates a new quest service
func NewQuestService(uowFactory UnitOfWorkFactory, clock Clock) QuestService {
	return &questService{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// GetActiveQuests returns the group's active quests
func (s *questService) GetActiveQuests(ctx context.Context, groupID int64) ([]*models.Quest, error) {
	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	quests, err := uow.QuestRepository().GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active quests: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return quests, nil
}

// GetUserProgress returns the user's progress rows keyed by quest id
func (s *questService) GetUserProgress(ctx context.Context, userID, groupID int64) (map[int64]*models.UserQuestProgress, error) {
	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	progress, err := loadProgress(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return progress, nil
}

func loadProgress(ctx context.Context, uow UnitOfWork, userID int64) (map[int64]*models.UserQuestProgress, error) {
	rows, err := uow.UserQuestRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quest progress: %w", err)
	}

	byQuest := make(map[int64]*models.UserQuestProgress, len(rows))
	for _, row := range rows {
		byQuest[row.QuestID] = row
	}
	return byQuest, nil
}

// ListQuestStatus pairs each active quest with the user's progress on it
func (s *questService) ListQuestStatus(ctx context.Context, userID, groupID int64) ([]*models.QuestStatus, error) {
	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	quests, err := uow.QuestRepository().GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active quests: %w", err)
	}
	progress, err := loadProgress(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	statuses := make([]*models.QuestStatus, 0, len(quests))
	for _, q := range quests {
		statuses = append(statuses, &models.QuestStatus{Quest: q, Progress: progress[q.QuestID]})
	}
	return statuses, nil
}

// RecordProgress applies one progress event to every active quest of
// questType. Completed quests are never touched again; a quest completing
// for the first time credits its reward to the user's length.
func (s *questService) RecordProgress(ctx context.Context, userID, groupID int64, questType models.QuestType, value int64) ([]models.QuestCompletion, error) {
	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settings, err := uow.GroupSettingsRepository().GetOrCreate(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get group settings: %w", err)
	}
	if !settings.IsEnabled(models.FeatureQuests) {
		return nil, nil
	}

	quests, err := uow.QuestRepository().GetActiveByType(ctx, questType)
	if err != nil {
		return nil, fmt.Errorf("failed to get quests of type %s: %w", questType, err)
	}

	var completed []models.QuestCompletion
	for _, quest := range quests {
		done, err := s.advance(ctx, uow, userID, groupID, quest, value)
		if err != nil {
			return nil, err
		}
		if done != nil {
			completed = append(completed, *done)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	for _, c := range completed {
		log.WithFields(log.Fields{
			"userID":  userID,
			"groupID": groupID,
			"questID": c.QuestID,
			"reward":  c.Reward,
		}).Info("Quest completed")
	}

	return completed, nil
}

// advance moves one quest forward and returns a completion on the
// incomplete to complete transition
func (s *questService) advance(ctx context.Context, uow UnitOfWork, userID, groupID int64, quest *models.Quest, value int64) (*models.QuestCompletion, error) {
	progressRepo := uow.UserQuestRepository()

	p, err := progressRepo.GetForUpdate(ctx, userID, quest.QuestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress on quest %d: %w", quest.QuestID, err)
	}
	if p != nil && p.Completed {
		return nil, nil
	}

	isNew := p == nil
	if isNew {
		p = &models.UserQuestProgress{UserID: userID, GroupID: groupID, QuestID: quest.QuestID}
	}

	before := p.Progress
	if quest.QuestType.IsAbsolute() {
		p.Progress = max(p.Progress, value)
	} else {
		p.Progress += value
	}
	if !isNew && p.Progress == before {
		return nil, nil
	}

	if p.Progress >= quest.TargetValue {
		now := s.clock.Now()
		p.Completed = true
		p.CompletedAt = &now
	}

	if isNew {
		err = progressRepo.Create(ctx, p)
	} else {
		err = progressRepo.Update(ctx, p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save progress on quest %d: %w", quest.QuestID, err)
	}

	if !p.Completed {
		return nil, nil
	}

	user, err := uow.UserRepository().AddLength(ctx, userID, quest.Reward)
	if err != nil {
		return nil, fmt.Errorf("failed to credit quest reward: %w", err)
	}

	bus := uow.EventBus()
	bus.Publish(events.QuestCompletedEvent{
		UserID:  userID,
		GroupID: groupID,
		QuestID: quest.QuestID,
		Title:   quest.Title,
		Reward:  quest.Reward,
	})
	bus.Publish(events.LengthChangedEvent{
		UserID:    userID,
		GroupID:   groupID,
		OldLength: user.Length - quest.Reward,
		NewLength: user.Length,
		Reason:    events.ReasonQuestReward,
	})

	return &models.QuestCompletion{
		QuestID:   quest.QuestID,
		Title:     quest.Title,
		Reward:    quest.Reward,
		NewLength: user.Length,
	}, nil
}

// SeedDefaults installs the default quest catalog into the group. Running it
// again is harmless.
func (s *questService) SeedDefaults(ctx context.Context, groupID int64) (int, error) {
	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	inserted, err := uow.QuestRepository().InsertIfAbsent(ctx, models.DefaultQuests(groupID))
	if err != nil {
		return 0, fmt.Errorf("failed to seed quests: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if inserted > 0 {
		log.WithFields(log.Fields{
			"groupID":  groupID,
			"inserted": inserted,
		}).Info("Seeded default quests")
	}
	return inserted, nil
}
