package common

import (
	"fmt"
	"strings"
	"time"

	"grower/models"
)

const (
	ColorGrowth    = 0x2ECC71
	ColorChallenge = 0xE67E22
	ColorQuest     = 0x9B59B6
	ColorInfo      = 0x3498DB
	ColorNeutral   = 0x95A5A6
)

// FormatLength renders a length in centimetres with thousand separators
func FormatLength(length int64) string {
	return FormatNumber(length) + " cm"
}

// FormatNumber adds thousand separators
func FormatNumber(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	return result.String()
}

// RankPrefix returns a medal for the podium and "#n" for everyone else
func RankPrefix(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("#%d", rank)
	}
}

// ProgressBar renders progress towards target as a fixed width bar
func ProgressBar(progress, target int64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := width
	if target > 0 && progress < target {
		if progress < 0 {
			progress = 0
		}
		filled = int(progress * int64(width) / target)
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}

// FormatDiscordTimestamp formats t as a Discord timestamp in the viewer's timezone.
// Format "R" renders relative time, "f" short date and time.
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// FormatQuestCompletions lists completed quests with their rewards, one per line
func FormatQuestCompletions(completed []models.QuestCompletion) string {
	lines := make([]string, 0, len(completed))
	for _, c := range completed {
		lines = append(lines, fmt.Sprintf("🏅 **%s** completed: +%s", c.Title, FormatLength(c.Reward)))
	}
	return strings.Join(lines, "\n")
}
