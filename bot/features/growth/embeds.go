package growth

import (
	"fmt"

	"grower/bot/common"
	"grower/models"

	"github.com/bwmarrin/discordgo"
)

// BuildGrowthEmbed renders the outcome of a growth attempt
func BuildGrowthEmbed(result *models.GrowthResult, displayName string) *discordgo.MessageEmbed {
	if !result.OK {
		return &discordgo.MessageEmbed{
			Title:       "⏳ Not yet",
			Description: result.Message,
			Color:       common.ColorNeutral,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Length", Value: common.FormatLength(result.NewLength), Inline: true},
			},
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🌱 %s grew!", displayName),
		Description: result.Message,
		Color:       common.ColorGrowth,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Growth", Value: "+" + common.FormatLength(result.Growth), Inline: true},
			{Name: "Length", Value: common.FormatLength(result.NewLength), Inline: true},
		},
	}

	if len(result.Completed) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Quests",
			Value: common.FormatQuestCompletions(result.Completed),
		})
	}

	return embed
}
