package bot

import (
	"context"
	"fmt"

	"grower/bot/common"

	log "github.com/sirupsen/logrus"
)

const memberPageSize = 1000

// syncLeaderRole moves the group's leader role to the current #1 of the leaderboard
func (b *Bot) syncLeaderRole(ctx context.Context, groupID int64) error {
	b.leaderMu.Lock()
	defer b.leaderMu.Unlock()

	settings, err := b.services.Settings.GetOrCreate(ctx, groupID, "")
	if err != nil {
		return fmt.Errorf("failed to get group settings: %w", err)
	}
	if !settings.HasLeaderRole() {
		return nil
	}

	top, err := b.services.Ledger.Leaderboard(ctx, groupID, 1)
	if err != nil {
		return fmt.Errorf("failed to get leader: %w", err)
	}
	if len(top) == 0 {
		return nil
	}

	guildID := common.FormatID(groupID)
	roleID := common.FormatID(*settings.LeaderRoleID)
	leaderID := common.FormatID(top[0].UserID)

	holders, err := b.roleHolders(guildID, roleID)
	if err != nil {
		return err
	}

	hasRole := false
	for _, holderID := range holders {
		if holderID == leaderID {
			hasRole = true
			continue
		}
		if err := b.session.GuildMemberRoleRemove(guildID, holderID, roleID); err != nil {
			log.Errorf("Failed to remove leader role from user %s: %v", holderID, err)
		} else {
			log.Infof("Removed leader role from user %s", holderID)
		}
	}

	if !hasRole {
		if err := b.session.GuildMemberRoleAdd(guildID, leaderID, roleID); err != nil {
			return fmt.Errorf("failed to add leader role to user %s: %w", leaderID, err)
		}
		log.WithFields(log.Fields{
			"groupID": groupID,
			"userID":  leaderID,
			"length":  top[0].Length,
		}).Info("Leader role moved")
	}

	return nil
}

// roleHolders pages through the guild's members and returns those holding roleID
func (b *Bot) roleHolders(guildID, roleID string) ([]string, error) {
	var holders []string
	after := ""
	for {
		members, err := b.session.GuildMembers(guildID, after, memberPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to get guild members: %w", err)
		}
		for _, member := range members {
			for _, r := range member.Roles {
				if r == roleID {
					holders = append(holders, member.User.ID)
					break
				}
			}
		}
		if len(members) < memberPageSize {
			return holders, nil
		}
		after = members[len(members)-1].User.ID
	}
}
