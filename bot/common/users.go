package common

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// InteractionUser returns the member's user in guilds and the plain user in DMs
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// ParseID converts a Discord snowflake to int64
func ParseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// FormatID converts an int64 snowflake back to its string form
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// UserMention returns a Discord mention for a user
func UserMention(userID int64) string {
	return "<@" + FormatID(userID) + ">"
}

// RoleMention returns a Discord mention for a role
func RoleMention(roleID int64) string {
	return "<@&" + FormatID(roleID) + ">"
}

// CallerIDs resolves the calling user and guild as int64 ids.
// Commands used outside of a guild are rejected.
func CallerIDs(i *discordgo.InteractionCreate) (userID, groupID int64, username string, err error) {
	if i.GuildID == "" {
		return 0, 0, "", NewUserError("This command only works inside a server.", "interaction outside of a guild")
	}
	user := InteractionUser(i)
	if user == nil {
		return 0, 0, "", NewUserError("Could not identify you.", "interaction without user")
	}

	userID, err = ParseID(user.ID)
	if err != nil {
		return 0, 0, "", NewSystemError(err, "failed to parse user id")
	}
	groupID, err = ParseID(i.GuildID)
	if err != nil {
		return 0, 0, "", NewSystemError(err, "failed to parse guild id")
	}
	return userID, groupID, DisplayName(i.Member, user), nil
}

// DisplayName prefers the guild nickname, then the global name, then the username
func DisplayName(member *discordgo.Member, user *discordgo.User) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user == nil {
		return "Unknown"
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// CanManageGuild reports whether the interaction's member may change server settings
func CanManageGuild(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	perms := i.Member.Permissions
	return perms&discordgo.PermissionAdministrator != 0 || perms&discordgo.PermissionManageGuild != 0
}

// OptionUser returns the user picked in a user option along with their display name.
// Resolved interaction data is used so no extra API call is made.
func OptionUser(i *discordgo.InteractionCreate, name string) (userID int64, displayName string, found bool, err error) {
	data := i.ApplicationCommandData()
	for _, opt := range data.Options {
		if opt.Name != name || opt.Type != discordgo.ApplicationCommandOptionUser {
			continue
		}

		user := opt.UserValue(nil)
		var member *discordgo.Member
		if data.Resolved != nil {
			if resolved, ok := data.Resolved.Users[user.ID]; ok {
				user = resolved
			}
			member = data.Resolved.Members[user.ID]
		}

		userID, err = ParseID(user.ID)
		if err != nil {
			return 0, "", false, NewSystemError(err, "failed to parse option user id")
		}
		return userID, DisplayName(member, user), true, nil
	}
	return 0, "", false, nil
}
