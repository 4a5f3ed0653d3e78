package challenge

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

const (
	customIDPrefix = "challenge_"
	actionAccept   = "accept"
	actionDecline  = "decline"
)

// BuildProposalComponents creates the accept/decline buttons for a proposal
func BuildProposalComponents(token uuid.UUID) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "✅ Accept",
					Style:    discordgo.SuccessButton,
					CustomID: fmt.Sprintf("%s%s_%s", customIDPrefix, actionAccept, token),
				},
				discordgo.Button{
					Label:    "❌ Decline",
					Style:    discordgo.DangerButton,
					CustomID: fmt.Sprintf("%s%s_%s", customIDPrefix, actionDecline, token),
				},
			},
		},
	}
}

// ParseCustomID splits a button id into the accept flag and the proposal token
func ParseCustomID(customID string) (accept bool, token uuid.UUID, err error) {
	rest, ok := strings.CutPrefix(customID, customIDPrefix)
	if !ok {
		return false, uuid.Nil, fmt.Errorf("not a challenge component: %q", customID)
	}

	action, rawToken, ok := strings.Cut(rest, "_")
	if !ok {
		return false, uuid.Nil, fmt.Errorf("malformed challenge component: %q", customID)
	}

	switch action {
	case actionAccept:
		accept = true
	case actionDecline:
		accept = false
	default:
		return false, uuid.Nil, fmt.Errorf("unknown challenge action %q", action)
	}

	token, err = uuid.Parse(rawToken)
	if err != nil {
		return false, uuid.Nil, fmt.Errorf("invalid challenge token: %w", err)
	}
	return accept, token, nil
}
