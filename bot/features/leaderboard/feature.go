package leaderboard

import (
	"grower/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles /leaderboard and /stats
type Feature struct {
	session       *discordgo.Session
	ledgerService service.LedgerService
	limit         int
}

// NewFeature creates a new leaderboard feature instance
func NewFeature(session *discordgo.Session, ledgerService service.LedgerService, limit int) *Feature {
	return &Feature{
		session:       session,
		ledgerService: ledgerService,
		limit:         limit,
	}
}
