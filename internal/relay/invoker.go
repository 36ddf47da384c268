package relay

import (
	"context"
	"strings"
	"time"

	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/llm"
)

// FallbackReply is sent when the completion service answers with no
// usable content. An empty outbound message is never dispatched.
const FallbackReply = "I wasn't able to generate a response."

const placeholderUtterance = "Hello!"

// Invoker wraps a single completion call. No retries: a failed call
// aborts the turn, so a flaky network can never produce duplicate
// replies.
type Invoker struct {
	client  llm.Client
	timeout time.Duration
}

func NewInvoker(client llm.Client, timeout time.Duration) Invoker {
	return Invoker{client: client, timeout: timeout}
}

func (i Invoker) Invoke(ctx context.Context, msgs []llm.Message) (llm.Response, error) {
	if len(msgs) == 0 {
		msgs = []llm.Message{{Role: "user", Content: placeholderUtterance}}
	}
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}
	resp, err := i.client.Generate(ctx, msgs)
	if err != nil {
		return llm.Response{}, err
	}
	if strings.TrimSpace(resp.Content) == "" {
		resp.Content = FallbackReply
	}
	return resp, nil
}
