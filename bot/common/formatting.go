package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in the user's timezone.
// Format types: "t" short time, "T" long time, "d" short date, "D" long date,
// "f" short date/time, "F" long date/time, "R" relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// UserMention returns a mention for a user id
func UserMention(userID string) string {
	return "<@" + userID + ">"
}

// RoleMentions renders role ids as mentions, or a not-set marker when empty
func RoleMentions(roleIDs []string) string {
	if len(roleIDs) == 0 {
		return NotSet
	}
	mentions := make([]string, len(roleIDs))
	for i, id := range roleIDs {
		mentions[i] = "<@&" + id + ">"
	}
	return strings.Join(mentions, ", ")
}

// ChannelMention renders a channel id as a mention, or a not-set marker when empty
func ChannelMention(channelID string) string {
	if channelID == "" {
		return NotSet
	}
	return "<#" + channelID + ">"
}

// NotSet marks an unconfigured setting
const NotSet = "❌ Not Set"

// OrNone returns value, or "None" when it is empty
func OrNone(value string) string {
	if value == "" {
		return "None"
	}
	return value
}
