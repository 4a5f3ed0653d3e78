package bot

import (
	"fmt"

	"grower/models"

	"github.com/bwmarrin/discordgo"
)

var manageGuildPermission int64 = discordgo.PermissionManageGuild

// commandDefinitions returns every slash command the bot registers
func commandDefinitions(cfg Config) []*discordgo.ApplicationCommand {
	minAmount := float64(cfg.MinChallengeAmount)

	featureChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 3)
	for _, f := range []models.Feature{models.FeatureGrowth, models.FeatureChallenges, models.FeatureQuests} {
		featureChoices = append(featureChoices, &discordgo.ApplicationCommandOptionChoice{Name: string(f), Value: string(f)})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "start",
			Description: "Join the competition in this server",
		},
		{
			Name:        "help",
			Description: "Explain how growing, challenges and quests work",
		},
		{
			Name:        "grow",
			Description: "Grow once per day by a random amount",
		},
		{
			Name:        "leaderboard",
			Description: "Show the longest members of this server",
		},
		{
			Name:        "stats",
			Description: "Show length and challenge record",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to check (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "challenge",
			Description: "Bet length against another member, winner takes the stake",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to challenge",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: fmt.Sprintf("Stake in cm (default %d)", cfg.DefaultChallengeAmount),
					Required:    false,
					MinValue:    &minAmount,
					MaxValue:    float64(cfg.MaxChallengeAmount),
				},
			},
		},
		{
			Name:        "quests",
			Description: "Show quests and your progress",
		},
		{
			Name:                     "settings",
			Description:              "Configure the bot for this server",
			DefaultMemberPermissions: &manageGuildPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show the current settings",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "feature",
					Description: "Switch a feature on or off",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Feature to switch",
							Required:    true,
							Choices:     featureChoices,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "enabled",
							Description: "Whether the feature is on",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leader-role",
					Description: "Role given to the #1 of the leaderboard (omit to disable)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "Role to sync",
							Required:    false,
						},
					},
				},
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range commandDefinitions(b.config) {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}
	return nil
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "start":
		b.handleStart(s, i)
	case "help":
		b.handleHelp(s, i)
	case "grow":
		b.growthFeature.HandleCommand(s, i)
	case "leaderboard":
		b.leaderboardFeature.HandleLeaderboard(s, i)
	case "stats":
		b.leaderboardFeature.HandleStats(s, i)
	case "challenge":
		b.challengeFeature.HandleCommand(s, i)
	case "quests":
		b.questsFeature.HandleCommand(s, i)
	case "settings":
		b.settingsFeature.HandleCommand(s, i)
	}
}
