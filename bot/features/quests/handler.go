package quests

import (
	"context"

	"grower/bot/common"
	"grower/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleCommand handles /quests
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, groupID, username, err := common.CallerIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	settings, err := f.settingsService.GetOrCreate(ctx, groupID, "")
	if err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "failed to load group settings"), false)
		return
	}
	if !settings.IsEnabled(models.FeatureQuests) {
		common.RespondWithError(s, i, "Quests are disabled in this server.")
		return
	}

	statuses, err := f.questService.ListQuestStatus(ctx, userID, groupID)
	if err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "failed to list quests"), false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildQuestsEmbed(statuses, username), nil, true); err != nil {
		log.Errorf("Error responding to quests command: %v", err)
	}
}
