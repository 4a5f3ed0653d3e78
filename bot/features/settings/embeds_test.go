package settings

import (
	"testing"

	"grower/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSettingsEmbed(t *testing.T) {
	settings := &models.GroupSettings{
		DailyGrowthEnabled: true,
		ChallengesEnabled:  false,
		QuestsEnabled:      true,
	}

	embed := BuildSettingsEmbed(settings)
	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "🟢 on", embed.Fields[0].Value)
	assert.Equal(t, "🔴 off", embed.Fields[1].Value)
	assert.Equal(t, "🟢 on", embed.Fields[2].Value)
	assert.Equal(t, "not set", embed.Fields[3].Value)

	roleID := int64(555)
	settings.LeaderRoleID = &roleID
	embed = BuildSettingsEmbed(settings)
	assert.Equal(t, "<@&555>", embed.Fields[3].Value)
}
