package bot

import (
	"context"
	"fmt"

	"grower/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const helpText = "**How it works**\n" +
	"🌱 `/grow` once per day to grow by a random amount.\n" +
	"⚔️ `/challenge @user [amount]` bets length against someone. They accept or decline, a coin flip decides, the winner takes the stake.\n" +
	"📜 `/quests` shows achievements that pay bonus length.\n" +
	"🏆 `/leaderboard` and `/stats [user]` show who is ahead.\n" +
	"⚙️ `/settings` lets server managers switch features and pick a leader role."

// handleStart registers the caller and makes sure the server is set up
func (b *Bot) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, groupID, username, err := common.CallerIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	// setup runs several transactions, so acknowledge first
	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Error deferring start command: %v", err)
		return
	}

	ctx := context.Background()
	if err := b.setupGroup(ctx, groupID, guildName(s, i.GuildID)); err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "failed to set up group"), true)
		return
	}

	user, err := b.services.Ledger.GetOrCreate(ctx, userID, groupID, username)
	if err != nil {
		common.HandleError(s, i, common.FromServiceError(err, "failed to register user"), true)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("👋 Welcome, %s!", username),
		Description: fmt.Sprintf("Your length is **%s**.\n\n%s", common.FormatLength(user.Length), helpText),
		Color:       common.ColorGrowth,
	}
	if _, err := common.FollowUpWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to start command: %v", err)
	}
}

func (b *Bot) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	common.RespondWithText(s, i, helpText, true)
}

// handleGuildCreate seeds settings and default quests for every guild the bot joins
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	groupID, err := common.ParseID(g.ID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", g.ID, err)
		return
	}

	if err := b.setupGroup(context.Background(), groupID, g.Name); err != nil {
		log.WithFields(log.Fields{
			"groupID": groupID,
			"error":   err,
		}).Error("Failed to set up group")
	}
}

// setupGroup creates the group's settings and installs the default quests
func (b *Bot) setupGroup(ctx context.Context, groupID int64, name string) error {
	if _, err := b.services.Settings.GetOrCreate(ctx, groupID, name); err != nil {
		return err
	}
	if _, err := b.services.Quest.SeedDefaults(ctx, groupID); err != nil {
		return err
	}
	return nil
}

func guildName(s *discordgo.Session, guildID string) string {
	if s.State == nil {
		return ""
	}
	guild, err := s.State.Guild(guildID)
	if err != nil {
		return ""
	}
	return guild.Name
}
