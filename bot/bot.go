package bot

import (
	"context"
	"fmt"
	"sync"

	"grower/bot/features/challenge"
	"grower/bot/features/growth"
	"grower/bot/features/leaderboard"
	"grower/bot/features/quests"
	"grower/bot/features/settings"
	"grower/events"
	"grower/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token                  string
	LeaderboardLimit       int
	MinChallengeAmount     int64
	MaxChallengeAmount     int64
	DefaultChallengeAmount int64
}

// Services bundles the services the bot talks to
type Services struct {
	Ledger    service.LedgerService
	Challenge service.ChallengeService
	Quest     service.QuestService
	Settings  service.GroupSettingsService
}

type Bot struct {
	config   Config
	session  *discordgo.Session
	services Services
	eventBus *events.Bus

	growthFeature      *growth.Feature
	leaderboardFeature *leaderboard.Feature
	challengeFeature   *challenge.Feature
	questsFeature      *quests.Feature
	settingsFeature    *settings.Feature

	leaderMu sync.Mutex
}

func New(config Config, services Services, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		config:             config,
		session:            dg,
		services:           services,
		eventBus:           eventBus,
		growthFeature:      growth.NewFeature(dg, services.Ledger),
		leaderboardFeature: leaderboard.NewFeature(dg, services.Ledger, config.LeaderboardLimit),
		challengeFeature:   challenge.NewFeature(dg, services.Challenge),
		questsFeature:      quests.NewFeature(dg, services.Quest, services.Settings),
		settingsFeature:    settings.NewFeature(dg, services.Settings),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.challengeFeature.HandleInteraction)

	// Seed every guild the bot is or becomes part of
	dg.AddHandler(bot.handleGuildCreate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Keep the leader role on the leaderboard's #1
	eventBus.Subscribe(events.EventTypeLengthChanged, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.LengthChangedEvent)
		if !ok {
			return
		}
		if err := bot.syncLeaderRole(ctx, e.GroupID); err != nil {
			log.WithFields(log.Fields{
				"groupID": e.GroupID,
				"error":   err,
			}).Error("Failed to sync leader role")
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}
