package growth

import (
	"grower/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the daily /grow command
type Feature struct {
	session       *discordgo.Session
	ledgerService service.LedgerService
}

// NewFeature creates a new growth feature instance
func NewFeature(session *discordgo.Session, ledgerService service.LedgerService) *Feature {
	return &Feature{
		session:       session,
		ledgerService: ledgerService,
	}
}
