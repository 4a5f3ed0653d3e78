package challenge

import (
	"context"

	"grower/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleCommand handles /challenge user [amount]
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	challengerID, groupID, challengerName, err := common.CallerIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	opponentID, _, found, err := common.OptionUser(i, "user")
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if !found {
		common.RespondWithError(s, i, "Pick someone to challenge.")
		return
	}

	var amount int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "amount" {
			amount = opt.IntValue()
		}
	}

	proposal, err := f.challengeService.Propose(context.Background(), challengerID, opponentID, groupID, amount)
	if err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "challenge proposal refused"), false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    common.UserMention(opponentID),
			Embeds:     []*discordgo.MessageEmbed{BuildProposalEmbed(proposal, challengerName)},
			Components: BuildProposalComponents(proposal.Token),
			AllowedMentions: &discordgo.MessageAllowedMentions{
				Users: []string{common.FormatID(opponentID)},
			},
		},
	})
	if err != nil {
		log.Errorf("Error responding to challenge command: %v", err)
	}
}

// handleResponse answers a proposal on behalf of the member who clicked
func (f *Feature) handleResponse(s *discordgo.Session, i *discordgo.InteractionCreate) {
	accept, token, err := ParseCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		common.HandleError(s, i, common.NewUserError("This button is no longer valid.", err.Error()), false)
		return
	}

	responderID, groupID, _, err := common.CallerIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	response, err := f.challengeService.Respond(context.Background(), token, responderID, groupID, accept)
	if err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "challenge response refused"), false)
		return
	}

	embed := BuildDeclinedEmbed(response.Proposal)
	if response.Accepted && response.Result != nil {
		embed = BuildResultEmbed(response.Result)
	}

	if err := common.UpdateComponentMessage(s, i, embed, nil); err != nil {
		log.Errorf("Error updating challenge message: %v", err)
	}
}
