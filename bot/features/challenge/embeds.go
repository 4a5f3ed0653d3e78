package challenge

import (
	"fmt"
	"strings"

	"grower/bot/common"
	"grower/models"

	"github.com/bwmarrin/discordgo"
)

// BuildProposalEmbed renders an open proposal
func BuildProposalEmbed(proposal *models.ChallengeProposal, challengerName string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⚔️ Challenge!",
		Description: fmt.Sprintf("**%s** challenges %s for **%s**.",
			challengerName, common.UserMention(proposal.OpponentID), common.FormatLength(proposal.Amount)),
		Color: common.ColorChallenge,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Stake", Value: common.FormatLength(proposal.Amount), Inline: true},
			{Name: "Expires", Value: common.FormatDiscordTimestamp(proposal.ExpiresAt, "R"), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Only the challenged player can answer. Winner takes the stake."},
	}
}

// BuildDeclinedEmbed renders a declined proposal
func BuildDeclinedEmbed(proposal *models.ChallengeProposal) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🏳️ Challenge declined",
		Description: fmt.Sprintf("%s declined the challenge from %s. Nothing changed.",
			common.UserMention(proposal.OpponentID), common.UserMention(proposal.ChallengerID)),
		Color: common.ColorNeutral,
	}
}

// BuildResultEmbed renders a resolved challenge
func BuildResultEmbed(result *models.ChallengeResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "⚔️ Challenge resolved",
		Description: fmt.Sprintf("**%s** wins **%s** from **%s**!",
			result.WinnerUsername, common.FormatLength(result.Amount), result.LoserUsername),
		Color: common.ColorChallenge,
		Fields: []*discordgo.MessageEmbedField{
			{Name: result.WinnerUsername, Value: common.FormatLength(result.WinnerNewLength), Inline: true},
			{Name: result.LoserUsername, Value: common.FormatLength(result.LoserNewLength), Inline: true},
		},
	}

	var quests []string
	for _, userID := range []int64{result.WinnerID, result.LoserID} {
		if completed := result.Completed[userID]; len(completed) > 0 {
			quests = append(quests, common.UserMention(userID)+"\n"+common.FormatQuestCompletions(completed))
		}
	}
	if len(quests) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Quests",
			Value: strings.Join(quests, "\n"),
		})
	}

	return embed
}
