package relay

import (
	"regexp"
	"strings"
)

type EventType string

const (
	EventAppMention EventType = "app_mention"
	EventMessage    EventType = "message"
)

// Event is one inbound platform event, already lifted out of the
// Events API envelope. Constructed per delivery and never mutated.
type Event struct {
	Type        EventType
	ChannelID   string
	ChannelType string // "im" for direct messages
	UserID      string
	BotID       string // set when the author is a bot integration
	Text        string
	Timestamp   string
	EventID     string
}

var mentionToken = regexp.MustCompile(`^\s*<@[^>]+>`)

// Classifier decides whether an event should be relayed and extracts
// the clean user utterance. Pure, no side effects.
type Classifier struct {
	BotUserID string
}

// Classify returns the cleaned utterance and whether the event is
// actionable. Self-authored events are never actionable, which is what
// keeps the bot from replying to itself in a loop.
func (c Classifier) Classify(ev Event) (string, bool) {
	if ev.BotID != "" || ev.UserID == "" || ev.UserID == c.BotUserID {
		return "", false
	}
	switch {
	case ev.Type == EventAppMention:
	case ev.Type == EventMessage && ev.ChannelType == "im":
	default:
		return "", false
	}
	utterance := strings.TrimSpace(mentionToken.ReplaceAllString(ev.Text, ""))
	return utterance, true
}
