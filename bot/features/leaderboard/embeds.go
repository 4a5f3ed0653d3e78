package leaderboard

import (
	"fmt"
	"strings"

	"grower/bot/common"
	"grower/models"

	"github.com/bwmarrin/discordgo"
)

// BuildLeaderboardEmbed renders users in the order the ledger returned them
func BuildLeaderboardEmbed(users []*models.User) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Leaderboard",
		Color: common.ColorInfo,
	}

	if len(users) == 0 {
		embed.Description = "Nobody has grown yet. Be the first with /grow!"
		return embed
	}

	lines := make([]string, 0, len(users))
	for rank, user := range users {
		lines = append(lines, fmt.Sprintf("%s **%s** %s",
			common.RankPrefix(rank+1), user.Username, common.FormatLength(user.Length)))
	}
	embed.Description = strings.Join(lines, "\n")
	return embed
}

// BuildStatsEmbed renders one user's ledger row
func BuildStatsEmbed(user *models.User, displayName string) *discordgo.MessageEmbed {
	lastGrowth := user.LastGrowthDate()
	if lastGrowth == "" {
		lastGrowth = "never"
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 Stats for %s", displayName),
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Length", Value: common.FormatLength(user.Length), Inline: true},
			{Name: "Last growth", Value: lastGrowth, Inline: true},
			{Name: "Challenges", Value: fmt.Sprintf("%d played, %d won", user.TotalChallenges, user.ChallengesWon), Inline: true},
			{Name: "Win rate", Value: fmt.Sprintf("%.1f%%", user.WinRate()), Inline: true},
		},
	}
}
