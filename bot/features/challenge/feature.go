package challenge

import (
	"strings"

	"grower/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles /challenge and the accept/decline buttons
type Feature struct {
	session          *discordgo.Session
	challengeService service.ChallengeService
}

// NewFeature creates a new challenge feature instance
func NewFeature(session *discordgo.Session, challengeService service.ChallengeService) *Feature {
	return &Feature{
		session:          session,
		challengeService: challengeService,
	}
}

// HandleInteraction routes challenge button clicks
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	if strings.HasPrefix(i.MessageComponentData().CustomID, customIDPrefix) {
		f.handleResponse(s, i)
	}
}
