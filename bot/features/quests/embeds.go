package quests

import (
	"fmt"

	"grower/bot/common"
	"grower/models"

	"github.com/bwmarrin/discordgo"
)

const progressBarWidth = 10

// BuildQuestsEmbed renders every active quest with the caller's progress
func BuildQuestsEmbed(statuses []*models.QuestStatus, displayName string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📜 Quests for %s", displayName),
		Color: common.ColorQuest,
	}

	if len(statuses) == 0 {
		embed.Description = "No quests yet. An admin can run /start to install the defaults."
		return embed
	}

	for _, status := range statuses {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  questHeading(status),
			Value: questBody(status),
		})
	}
	return embed
}

func questHeading(status *models.QuestStatus) string {
	mark := "⬜"
	if status.Progress != nil && status.Progress.Completed {
		mark = "✅"
	}
	return fmt.Sprintf("%s %s (+%s)", mark, status.Quest.Title, common.FormatLength(status.Quest.Reward))
}

func questBody(status *models.QuestStatus) string {
	q := status.Quest
	var progress int64
	if status.Progress != nil {
		progress = status.Progress.Progress
	}
	if progress > q.TargetValue {
		progress = q.TargetValue
	}

	return fmt.Sprintf("%s\n%s %d/%d (%.0f%%)",
		q.Description,
		common.ProgressBar(progress, q.TargetValue, progressBarWidth),
		progress, q.TargetValue,
		status.Progress.Percentage(q.TargetValue))
}
