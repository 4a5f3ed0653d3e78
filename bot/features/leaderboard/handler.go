package leaderboard

import (
	"context"

	"grower/bot/common"
	"grower/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleLeaderboard handles /leaderboard
func (f *Feature) HandleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_, groupID, _, err := common.CallerIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	users, err := f.ledgerService.Leaderboard(context.Background(), groupID, f.limit)
	if err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "leaderboard failed"), false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildLeaderboardEmbed(users), nil, false); err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}

// HandleStats handles /stats [user]
func (f *Feature) HandleStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	callerID, groupID, callerName, err := common.CallerIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	targetID, targetName, found, err := common.OptionUser(i, "user")
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if !found {
		targetID, targetName = callerID, callerName
	}

	user, err := f.ledgerService.Stats(context.Background(), targetID, groupID)
	if err != nil {
		if service.IsNotFound(err) {
			common.RespondWithError(s, i, targetName+" has not started growing yet.")
			return
		}
		common.HandleError(s, i, common.FromServiceError(err, "stats failed"), false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildStatsEmbed(user, targetName), nil, false); err != nil {
		log.Errorf("Error responding to stats command: %v", err)
	}
}
