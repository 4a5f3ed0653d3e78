package settings

import (
	"grower/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles group settings management
type Feature struct {
	session         *discordgo.Session
	settingsService service.GroupSettingsService
}

// NewFeature creates a new settings feature instance
func NewFeature(session *discordgo.Session, settingsService service.GroupSettingsService) *Feature {
	return &Feature{
		session:         session,
		settingsService: settingsService,
	}
}

// HandleCommand routes settings subcommands to their handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "show":
		f.handleShow(s, i)
	case "feature":
		f.handleFeature(s, i, options[0].Options)
	case "leader-role":
		f.handleLeaderRole(s, i, options[0].Options)
	}
}
