package quests

import (
	"grower/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles /quests
type Feature struct {
	session         *discordgo.Session
	questService    service.QuestService
	settingsService service.GroupSettingsService
}

// NewFeature creates a new quests feature instance
func NewFeature(session *discordgo.Session, questService service.QuestService, settingsService service.GroupSettingsService) *Feature {
	return &Feature{
		session:         session,
		questService:    questService,
		settingsService: settingsService,
	}
}
