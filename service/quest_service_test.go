package service

import (
	"context"
	"errors"
	"testing"

	"grower/events"
	"grower/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestQuests(tu *testUnitOfWork) QuestService {
	return NewQuestService(tu.factory, fixedClock{now: testNow})
}

func streakQuest() *models.Quest {
	return &models.Quest{QuestID: 1, GroupID: testGroupID, Title: "Growth Streak", Reward: 25,
		QuestType: models.QuestTypeDailyGrowth, TargetValue: 5, IsActive: true}
}

func longHaulQuest() *models.Quest {
	return &models.Quest{QuestID: 3, GroupID: testGroupID, Title: "Long Haul", Reward: 50,
		QuestType: models.QuestTypeTotalLength, TargetValue: 100, IsActive: true}
}

func TestQuestService_RecordProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("additive progress below target", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID).withSettings(enabledSettings(testGroupID))
		svc := newTestQuests(tu)

		tu.quests.On("GetActiveByType", mock.Anything, models.QuestTypeDailyGrowth).Return([]*models.Quest{streakQuest()}, nil)
		tu.progress.On("GetForUpdate", mock.Anything, int64(1), int64(1)).
			Return(&models.UserQuestProgress{UserID: 1, GroupID: testGroupID, QuestID: 1, Progress: 2}, nil)
		tu.progress.On("Update", mock.Anything, mock.MatchedBy(func(p *models.UserQuestProgress) bool {
			return p.Progress == 3 && !p.Completed && p.CompletedAt == nil
		})).Return(nil)

		done, err := svc.RecordProgress(ctx, 1, testGroupID, models.QuestTypeDailyGrowth, 1)
		require.NoError(t, err)
		assert.Empty(t, done)
		tu.users.AssertNotCalled(t, "AddLength", mock.Anything, mock.Anything, mock.Anything)
		tu.publisher.AssertNotCalled(t, "Publish", mock.Anything)
	})

	t.Run("reaching target completes and rewards once", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID).withSettings(enabledSettings(testGroupID))
		svc := newTestQuests(tu)

		tu.quests.On("GetActiveByType", mock.Anything, models.QuestTypeDailyGrowth).Return([]*models.Quest{streakQuest()}, nil)
		tu.progress.On("GetForUpdate", mock.Anything, int64(1), int64(1)).
			Return(&models.UserQuestProgress{UserID: 1, GroupID: testGroupID, QuestID: 1, Progress: 4}, nil)
		tu.progress.On("Update", mock.Anything, mock.MatchedBy(func(p *models.UserQuestProgress) bool {
			return p.Progress == 5 && p.Completed && p.CompletedAt != nil && p.CompletedAt.Equal(testNow)
		})).Return(nil)
		tu.users.On("AddLength", mock.Anything, int64(1), int64(25)).Return(&models.User{UserID: 1, Length: 65}, nil)
		tu.publisher.On("Publish", events.QuestCompletedEvent{
			UserID: 1, GroupID: testGroupID, QuestID: 1, Title: "Growth Streak", Reward: 25,
		}).Return()
		tu.publisher.On("Publish", events.LengthChangedEvent{
			UserID: 1, GroupID: testGroupID, OldLength: 40, NewLength: 65, Reason: events.ReasonQuestReward,
		}).Return()

		done, err := svc.RecordProgress(ctx, 1, testGroupID, models.QuestTypeDailyGrowth, 1)
		require.NoError(t, err)
		require.Len(t, done, 1)
		assert.Equal(t, models.QuestCompletion{QuestID: 1, Title: "Growth Streak", Reward: 25, NewLength: 65}, done[0])
		tu.publisher.AssertExpectations(t)
		tu.uow.AssertCalled(t, "Commit")
	})

	t.Run("completed quests are never touched again", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID).withSettings(enabledSettings(testGroupID))
		svc := newTestQuests(tu)

		completedAt := testNow.AddDate(0, 0, -3)
		tu.quests.On("GetActiveByType", mock.Anything, models.QuestTypeDailyGrowth).Return([]*models.Quest{streakQuest()}, nil)
		tu.progress.On("GetForUpdate", mock.Anything, int64(1), int64(1)).
			Return(&models.UserQuestProgress{UserID: 1, QuestID: 1, Progress: 5, Completed: true, CompletedAt: &completedAt}, nil)

		done, err := svc.RecordProgress(ctx, 1, testGroupID, models.QuestTypeDailyGrowth, 1)
		require.NoError(t, err)
		assert.Empty(t, done)
		tu.progress.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		tu.users.AssertNotCalled(t, "AddLength", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("first event creates the row", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID).withSettings(enabledSettings(testGroupID))
		svc := newTestQuests(tu)

		tu.quests.On("GetActiveByType", mock.Anything, models.QuestTypeDailyGrowth).Return([]*models.Quest{streakQuest()}, nil)
		tu.progress.On("GetForUpdate", mock.Anything, int64(1), int64(1)).Return(nil, nil)
		tu.progress.On("Create", mock.Anything, mock.MatchedBy(func(p *models.UserQuestProgress) bool {
			return p.UserID == 1 && p.QuestID == 1 && p.Progress == 1 && !p.Completed
		})).Return(nil)

		done, err := svc.RecordProgress(ctx, 1, testGroupID, models.QuestTypeDailyGrowth, 1)
		require.NoError(t, err)
		assert.Empty(t, done)
	})

	t.Run("absolute value can complete on insert", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID).withSettings(enabledSettings(testGroupID))
		svc := newTestQuests(tu)

		tu.quests.On("GetActiveByType", mock.Anything, models.QuestTypeTotalLength).Return([]*models.Quest{longHaulQuest()}, nil)
		tu.progress.On("GetForUpdate", mock.Anything, int64(1), int64(3)).Return(nil, nil)
		tu.progress.On("Create", mock.Anything, mock.MatchedBy(func(p *models.UserQuestProgress) bool {
			return p.Progress == 120 && p.Completed
		})).Return(nil)
		tu.users.On("AddLength", mock.Anything, int64(1), int64(50)).Return(&models.User{UserID: 1, Length: 170}, nil)
		tu.publisher.On("Publish", mock.Anything).Return()

		done, err := svc.RecordProgress(ctx, 1, testGroupID, models.QuestTypeTotalLength, 120)
		require.NoError(t, err)
		require.Len(t, done, 1)
		assert.Equal(t, int64(170), done[0].NewLength)
	})

	t.Run("absolute value does not accumulate", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID).withSettings(enabledSettings(testGroupID))
		svc := newTestQuests(tu)

		tu.quests.On("GetActiveByType", mock.Anything, models.QuestTypeTotalLength).Return([]*models.Quest{longHaulQuest()}, nil)
		tu.progress.On("GetForUpdate", mock.Anything, int64(1), int64(3)).
			Return(&models.UserQuestProgress{UserID: 1, QuestID: 3, Progress: 80}, nil)
		tu.progress.On("Update", mock.Anything, mock.MatchedBy(func(p *models.UserQuestProgress) bool {
			return p.Progress == 90 && !p.Completed
		})).Return(nil)

		// 80 then 90 would pass 100 if summed
		done, err := svc.RecordProgress(ctx, 1, testGroupID, models.QuestTypeTotalLength, 90)
		require.NoError(t, err)
		assert.Empty(t, done)
	})

	t.Run("absolute value never lowers progress", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID).withSettings(enabledSettings(testGroupID))
		svc := newTestQuests(tu)

		tu.quests.On("GetActiveByType", mock.Anything, models.QuestTypeTotalLength).Return([]*models.Quest{longHaulQuest()}, nil)
		tu.progress.On("GetForUpdate", mock.Anything, int64(1), int64(3)).
			Return(&models.UserQuestProgress{UserID: 1, QuestID: 3, Progress: 80}, nil)

		done, err := svc.RecordProgress(ctx, 1, testGroupID, models.QuestTypeTotalLength, 30)
		require.NoError(t, err)
		assert.Empty(t, done)
		tu.progress.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("quests disabled is a no-op", func(t *testing.T) {
		settings := enabledSettings(testGroupID)
		settings.QuestsEnabled = false
		tu := newTestUnitOfWork(testGroupID).withSettings(settings)
		svc := newTestQuests(tu)

		done, err := svc.RecordProgress(ctx, 1, testGroupID, models.QuestTypeDailyGrowth, 1)
		require.NoError(t, err)
		assert.Nil(t, done)
		tu.quests.AssertNotCalled(t, "GetActiveByType", mock.Anything, mock.Anything)
	})

	t.Run("no matching quests", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID).withSettings(enabledSettings(testGroupID))
		svc := newTestQuests(tu)
		tu.quests.On("GetActiveByType", mock.Anything, models.QuestTypeManual).Return([]*models.Quest{}, nil)

		done, err := svc.RecordProgress(ctx, 1, testGroupID, models.QuestTypeManual, 1)
		require.NoError(t, err)
		assert.Empty(t, done)
	})

	t.Run("reward failure aborts", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID).withSettings(enabledSettings(testGroupID))
		svc := newTestQuests(tu)

		tu.quests.On("GetActiveByType", mock.Anything, models.QuestTypeDailyGrowth).Return([]*models.Quest{streakQuest()}, nil)
		tu.progress.On("GetForUpdate", mock.Anything, int64(1), int64(1)).
			Return(&models.UserQuestProgress{UserID: 1, QuestID: 1, Progress: 4}, nil)
		tu.progress.On("Update", mock.Anything, mock.Anything).Return(nil)
		tu.users.On("AddLength", mock.Anything, int64(1), int64(25)).Return(nil, errors.New("user vanished"))

		_, err := svc.RecordProgress(ctx, 1, testGroupID, models.QuestTypeDailyGrowth, 1)
		require.Error(t, err)
		tu.uow.AssertNotCalled(t, "Commit")
	})
}

func TestQuestService_SeedDefaults(t *testing.T) {
	ctx := context.Background()
	tu := newTestUnitOfWork(testGroupID)
	svc := newTestQuests(tu)

	tu.quests.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(qs []*models.Quest) bool {
		return len(qs) == 3 && qs[0].GroupID == testGroupID
	})).Return(3, nil).Once()
	tu.quests.On("InsertIfAbsent", mock.Anything, mock.Anything).Return(0, nil).Once()

	n, err := svc.SeedDefaults(ctx, testGroupID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = svc.SeedDefaults(ctx, testGroupID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestQuestService_Queries(t *testing.T) {
	ctx := context.Background()

	quests := []*models.Quest{streakQuest(), longHaulQuest()}
	rows := []*models.UserQuestProgress{{UserID: 1, QuestID: 3, Progress: 40}}

	t.Run("progress keyed by quest", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID)
		svc := newTestQuests(tu)
		tu.progress.On("GetByUser", mock.Anything, int64(1)).Return(rows, nil)

		progress, err := svc.GetUserProgress(ctx, 1, testGroupID)
		require.NoError(t, err)
		require.Contains(t, progress, int64(3))
		assert.Equal(t, int64(40), progress[3].Progress)
	})

	t.Run("active quests", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID)
		svc := newTestQuests(tu)
		tu.quests.On("GetActive", mock.Anything).Return(quests, nil)

		got, err := svc.GetActiveQuests(ctx, testGroupID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("status joins quests with progress", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID)
		svc := newTestQuests(tu)
		tu.quests.On("GetActive", mock.Anything).Return(quests, nil)
		tu.progress.On("GetByUser", mock.Anything, int64(1)).Return(rows, nil)

		statuses, err := svc.ListQuestStatus(ctx, 1, testGroupID)
		require.NoError(t, err)
		require.Len(t, statuses, 2)
		assert.Nil(t, statuses[0].Progress)
		require.NotNil(t, statuses[1].Progress)
		assert.InDelta(t, 40.0, statuses[1].Progress.Percentage(statuses[1].Quest.TargetValue), 0.001)
	})
}
