package common

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commandInteraction(data discordgo.ApplicationCommandInteractionData) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: "42",
		Data:    data,
	}}
}

func TestOptionUser(t *testing.T) {
	t.Run("resolved member nickname", func(t *testing.T) {
		i := commandInteraction(discordgo.ApplicationCommandInteractionData{
			Name: "stats",
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "user", Type: discordgo.ApplicationCommandOptionUser, Value: "2002"},
			},
			Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
				Users:   map[string]*discordgo.User{"2002": {ID: "2002", Username: "bob"}},
				Members: map[string]*discordgo.Member{"2002": {Nick: "Bobby"}},
			},
		})

		id, name, found, err := OptionUser(i, "user")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, int64(2002), id)
		assert.Equal(t, "Bobby", name)
	})

	t.Run("option absent", func(t *testing.T) {
		i := commandInteraction(discordgo.ApplicationCommandInteractionData{Name: "stats"})

		_, _, found, err := OptionUser(i, "user")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("other option types are ignored", func(t *testing.T) {
		i := commandInteraction(discordgo.ApplicationCommandInteractionData{
			Name: "challenge",
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "user", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(3)},
			},
		})

		_, _, found, err := OptionUser(i, "user")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestMentions(t *testing.T) {
	assert.Equal(t, "<@1001>", UserMention(1001))
	assert.Equal(t, "<@&77>", RoleMention(77))
}
