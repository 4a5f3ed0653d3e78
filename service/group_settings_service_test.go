package service

import (
	"context"
	"testing"

	"grower/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGroupSettingsService(t *testing.T) {
	ctx := context.Background()

	t.Run("get or create passes the group name", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID)
		svc := NewGroupSettingsService(tu.factory)
		tu.settings.On("GetOrCreate", mock.Anything, "Lounge").Return(enabledSettings(testGroupID), nil)

		s, err := svc.GetOrCreate(ctx, testGroupID, "Lounge")
		require.NoError(t, err)
		assert.True(t, s.IsEnabled(models.FeatureQuests))
	})

	t.Run("switch a feature off", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID).withSettings(enabledSettings(testGroupID))
		svc := NewGroupSettingsService(tu.factory)
		tu.settings.On("Update", mock.Anything, mock.MatchedBy(func(s *models.GroupSettings) bool {
			return !s.ChallengesEnabled && s.DailyGrowthEnabled
		})).Return(nil)

		s, err := svc.SetFeature(ctx, testGroupID, models.FeatureChallenges, false)
		require.NoError(t, err)
		assert.False(t, s.IsEnabled(models.FeatureChallenges))
	})

	t.Run("unknown feature", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID).withSettings(enabledSettings(testGroupID))
		svc := NewGroupSettingsService(tu.factory)

		_, err := svc.SetFeature(ctx, testGroupID, models.Feature("lottery"), true)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		tu.settings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("set and clear leader role", func(t *testing.T) {
		tu := newTestUnitOfWork(testGroupID).withSettings(enabledSettings(testGroupID))
		svc := NewGroupSettingsService(tu.factory)
		tu.settings.On("Update", mock.Anything, mock.Anything).Return(nil)

		role := int64(55)
		s, err := svc.SetLeaderRole(ctx, testGroupID, &role)
		require.NoError(t, err)
		assert.True(t, s.HasLeaderRole())

		s, err = svc.SetLeaderRole(ctx, testGroupID, nil)
		require.NoError(t, err)
		assert.False(t, s.HasLeaderRole())
	})
}
