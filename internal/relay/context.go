package relay

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/history"
	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/llm"
	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/slack"
)

// ContextBuilder assembles the turn sequence sent to the completion
// service. Exactly one implementation is active per process.
type ContextBuilder interface {
	Build(ctx context.Context, channelID, utterance string) []llm.Message
	// RecordReply feeds the generated reply back into the context for
	// the next turn on the same channel, where the strategy keeps one.
	RecordReply(channelID, reply string)
}

// RollingBuilder keeps a bounded in-process window of turns per channel.
type RollingBuilder struct {
	hist         *history.Manager
	systemPrompt string
}

func NewRollingBuilder(hist *history.Manager, systemPrompt string) *RollingBuilder {
	return &RollingBuilder{hist: hist, systemPrompt: systemPrompt}
}

func (b *RollingBuilder) Build(_ context.Context, channelID, utterance string) []llm.Message {
	if utterance != "" {
		b.hist.AppendUser(channelID, utterance)
	}
	var msgs []llm.Message
	if b.systemPrompt != "" {
		msgs = append(msgs, llm.Message{Role: "system", Content: b.systemPrompt})
	}
	return append(msgs, b.hist.Get(channelID)...)
}

func (b *RollingBuilder) RecordReply(channelID, reply string) {
	if reply != "" {
		b.hist.AppendAssistant(channelID, reply)
	}
}

// HistoryFetcher is the slice of the platform client the live strategy
// needs.
type HistoryFetcher interface {
	FetchHistory(ctx context.Context, channelID string, limit int) ([]slack.HistoryMessage, error)
}

// LiveBuilder fetches the channel's recent message log on every turn
// instead of keeping state. Role tagging is best effort: anything
// authored by the bot counts as assistant, everything else as user.
type LiveBuilder struct {
	fetcher      HistoryFetcher
	limit        int
	systemPrompt string
	botUserID    string
}

func NewLiveBuilder(fetcher HistoryFetcher, limit int, systemPrompt, botUserID string) *LiveBuilder {
	return &LiveBuilder{fetcher: fetcher, limit: limit, systemPrompt: systemPrompt, botUserID: botUserID}
}

func (b *LiveBuilder) Build(ctx context.Context, channelID, utterance string) []llm.Message {
	framing := b.systemPrompt

	msgs, err := b.fetcher.FetchHistory(ctx, channelID, b.limit)
	if err != nil {
		// Degrade to the bare utterance; the turn still proceeds.
		log.Printf("history fetch failed for %s, continuing without context: %v", channelID, err)
		msgs = nil
	}
	if narrative := b.narrative(msgs); narrative != "" {
		framing += "\n\nBelow is the recent message history of this channel, oldest first. " +
			"This history is the conversation context available to you; answer as a participant in it.\n\n" +
			narrative
	}

	var out []llm.Message
	if framing != "" {
		out = append(out, llm.Message{Role: "system", Content: framing})
	}
	if utterance != "" {
		out = append(out, llm.Message{Role: "user", Content: utterance})
	}
	return out
}

func (b *LiveBuilder) RecordReply(string, string) {}

// narrative folds fetched messages into one chronological text block.
// Slack returns history newest first, so iterate backwards.
func (b *LiveBuilder) narrative(msgs []slack.HistoryMessage) string {
	var sb strings.Builder
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		speaker := "user"
		if m.BotID != "" || (b.botUserID != "" && m.AuthorID == b.botUserID) {
			speaker = "assistant"
		}
		fmt.Fprintf(&sb, "[%s] %s\n", speaker, m.Text)
	}
	return sb.String()
}
