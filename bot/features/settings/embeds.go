package settings

import (
	"grower/bot/common"
	"grower/models"

	"github.com/bwmarrin/discordgo"
)

// BuildSettingsEmbed renders the group's switches
func BuildSettingsEmbed(settings *models.GroupSettings) *discordgo.MessageEmbed {
	leader := "not set"
	if settings.HasLeaderRole() {
		leader = common.RoleMention(*settings.LeaderRoleID)
	}

	return &discordgo.MessageEmbed{
		Title: "⚙️ Server settings",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Daily growth", Value: onOff(settings.IsEnabled(models.FeatureGrowth)), Inline: true},
			{Name: "Challenges", Value: onOff(settings.IsEnabled(models.FeatureChallenges)), Inline: true},
			{Name: "Quests", Value: onOff(settings.IsEnabled(models.FeatureQuests)), Inline: true},
			{Name: "Leader role", Value: leader},
		},
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "🟢 on"
	}
	return "🔴 off"
}
