package growth

import (
	"context"

	"grower/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleCommand handles /grow
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, groupID, username, err := common.CallerIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	result, err := f.ledgerService.Grow(ctx, userID, groupID, username)
	if err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "grow failed"), false)
		return
	}

	embed := BuildGrowthEmbed(result, username)
	if err := common.RespondWithEmbed(s, i, embed, nil, !result.OK); err != nil {
		log.Errorf("Error responding to grow command: %v", err)
	}
}
