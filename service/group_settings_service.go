package service

import (
	"context"
	"fmt"

	"grower/models"

	log "github.com/sirupsen/logrus"
)

// groupSettingsService implements the GroupSettingsService interface
type groupSettingsService struct {
	uowFactory UnitOfWorkFactory
}

// NewGroupSettingsService creates a new group settings service
func NewGroupSettingsService(uowFactory UnitOfWorkFactory) GroupSettingsService {
	return &groupSettingsService{
		uowFactory: uowFactory,
	}
}

// GetOrCreate retrieves the group's settings, creating defaults if missing
func (s *groupSettingsService) GetOrCreate(ctx context.Context, groupID int64, groupName string) (*models.GroupSettings, error) {
	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	settings, err := uow.GroupSettingsRepository().GetOrCreate(ctx, groupName)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create group settings: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return settings, nil
}

// SetFeature switches a group feature on or off
func (s *groupSettingsService) SetFeature(ctx context.Context, groupID int64, feature models.Feature, enabled bool) (*models.GroupSettings, error) {
	return s.update(ctx, groupID, func(settings *models.GroupSettings) error {
		if !settings.SetEnabled(feature, enabled) {
			return newValidationError("unknown feature %q", feature)
		}
		log.WithFields(log.Fields{
			"groupID": groupID,
			"feature": feature,
			"enabled": enabled,
		}).Info("Group feature switched")
		return nil
	})
}

// SetLeaderRole sets the role synced to the group's top user. A nil roleID
// turns the sync off.
func (s *groupSettingsService) SetLeaderRole(ctx context.Context, groupID int64, roleID *int64) (*models.GroupSettings, error) {
	return s.update(ctx, groupID, func(settings *models.GroupSettings) error {
		settings.LeaderRoleID = roleID
		return nil
	})
}

func (s *groupSettingsService) update(ctx context.Context, groupID int64, mutate func(*models.GroupSettings) error) (*models.GroupSettings, error) {
	uow := s.uowFactory.CreateForGroup(groupID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	settings, err := uow.GroupSettingsRepository().GetOrCreate(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get group settings: %w", err)
	}

	if err := mutate(settings); err != nil {
		return nil, err
	}

	if err := uow.GroupSettingsRepository().Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update group settings: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return settings, nil
}
