package slack

import (
	"context"
	"fmt"

	api "github.com/slack-go/slack"
)

// HistoryMessage is one message from a channel's recent log,
// as returned by conversations.history.
type HistoryMessage struct {
	AuthorID  string
	BotID     string
	Text      string
	Timestamp string
}

// Identity is the bot's own Slack identity, used for loop suppression.
type Identity struct {
	UserID string
	BotID  string
}

type Client struct {
	api *api.Client
}

func New(botToken string) *Client {
	return &Client{api: api.New(botToken)}
}

// BotIdentity resolves the bot's own user ID via auth.test.
func (c *Client) BotIdentity(ctx context.Context) (Identity, error) {
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("slack auth.test failed: %w", err)
	}
	return Identity{UserID: resp.UserID, BotID: resp.BotID}, nil
}

// PostMessage sends text to a channel. A non-empty threadTS makes the
// message a threaded reply anchored to that timestamp.
func (c *Client) PostMessage(ctx context.Context, channelID, text, threadTS string) error {
	opts := []api.MsgOption{api.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, api.MsgOptionTS(threadTS))
	}
	if _, _, err := c.api.PostMessageContext(ctx, channelID, opts...); err != nil {
		return fmt.Errorf("slack chat.postMessage failed: %w", err)
	}
	return nil
}

// FetchHistory returns up to limit recent messages for a channel.
// Slack returns them newest first; callers reorder as needed.
func (c *Client) FetchHistory(ctx context.Context, channelID string, limit int) ([]HistoryMessage, error) {
	resp, err := c.api.GetConversationHistoryContext(ctx, &api.GetConversationHistoryParameters{
		ChannelID: channelID,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("slack conversations.history failed: %w", err)
	}
	out := make([]HistoryMessage, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		out = append(out, HistoryMessage{
			AuthorID:  m.User,
			BotID:     m.BotID,
			Text:      m.Text,
			Timestamp: m.Timestamp,
		})
	}
	return out, nil
}
