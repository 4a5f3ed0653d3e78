package settings

import (
	"context"
	"fmt"

	"grower/bot/common"
	"grower/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleShow handles /settings show
func (f *Feature) handleShow(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_, groupID, _, err := common.CallerIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	settings, err := f.settingsService.GetOrCreate(context.Background(), groupID, "")
	if err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "failed to load group settings"), false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildSettingsEmbed(settings), nil, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

// handleFeature handles /settings feature name enabled
func (f *Feature) handleFeature(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	groupID, ok := f.requireManager(s, i)
	if !ok {
		return
	}

	var feature models.Feature
	var enabled bool
	for _, opt := range options {
		switch opt.Name {
		case "name":
			feature = models.Feature(opt.StringValue())
		case "enabled":
			enabled = opt.BoolValue()
		}
	}

	settings, err := f.settingsService.SetFeature(context.Background(), groupID, feature, enabled)
	if err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "failed to switch feature"), false)
		return
	}

	state := "disabled"
	if settings.IsEnabled(feature) {
		state = "enabled"
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("Feature **%s** is now %s", feature, state), true)
}

// handleLeaderRole handles /settings leader-role [role]
func (f *Feature) handleLeaderRole(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	groupID, ok := f.requireManager(s, i)
	if !ok {
		return
	}

	var roleID *int64
	for _, opt := range options {
		if opt.Name != "role" {
			continue
		}
		// a nil session only reads the id from the option
		role := opt.RoleValue(nil, "")
		if role == nil || role.ID == "" {
			continue
		}
		id, err := common.ParseID(role.ID)
		if err != nil {
			common.HandleError(s, i, common.NewUserError("Invalid role selected", err.Error()), false)
			return
		}
		roleID = &id
	}

	if _, err := f.settingsService.SetLeaderRole(context.Background(), groupID, roleID); err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "failed to update leader role"), false)
		return
	}

	if roleID != nil {
		common.RespondWithSuccess(s, i, "Leader role updated to "+common.RoleMention(*roleID), true)
	} else {
		common.RespondWithSuccess(s, i, "Leader role sync disabled", true)
	}
}

func (f *Feature) requireManager(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, bool) {
	_, groupID, _, err := common.CallerIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return 0, false
	}
	if !common.CanManageGuild(i) {
		common.RespondWithError(s, i, "You need the Manage Server permission to use this command")
		return 0, false
	}
	return groupID, true
}
