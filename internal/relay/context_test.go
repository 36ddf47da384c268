package relay

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/history"
	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/slack"
)

type fakeFetcher struct {
	msgs []slack.HistoryMessage
	err  error
}

func (f *fakeFetcher) FetchHistory(_ context.Context, _ string, _ int) ([]slack.HistoryMessage, error) {
	return f.msgs, f.err
}

func TestRollingBuilder_SystemFramingThenHistory(t *testing.T) {
	b := NewRollingBuilder(history.NewManager(10), "be helpful")

	msgs := b.Build(context.Background(), "C1", "first question")
	if len(msgs) != 2 {
		t.Fatalf("want system+user, got %d msgs: %+v", len(msgs), msgs)
	}
	if msgs[0].Role != "system" || msgs[0].Content != "be helpful" {
		t.Fatalf("missing system framing: %+v", msgs[0])
	}
	if msgs[1].Role != "user" || msgs[1].Content != "first question" {
		t.Fatalf("missing user turn: %+v", msgs[1])
	}

	b.RecordReply("C1", "an answer")
	msgs = b.Build(context.Background(), "C1", "second question")
	want := []struct{ role, content string }{
		{"system", "be helpful"},
		{"user", "first question"},
		{"assistant", "an answer"},
		{"user", "second question"},
	}
	if len(msgs) != len(want) {
		t.Fatalf("want %d msgs, got %d: %+v", len(want), len(msgs), msgs)
	}
	for i, w := range want {
		if msgs[i].Role != w.role || msgs[i].Content != w.content {
			t.Fatalf("msg %d: want %+v, got %+v", i, w, msgs[i])
		}
	}
}

func TestRollingBuilder_EmptyUtteranceNotStored(t *testing.T) {
	hist := history.NewManager(10)
	b := NewRollingBuilder(hist, "")

	msgs := b.Build(context.Background(), "C1", "")
	if len(msgs) != 0 {
		t.Fatalf("want empty context, got %+v", msgs)
	}
	if got := hist.Get("C1"); got != nil {
		t.Fatalf("empty utterance leaked into history: %+v", got)
	}
}

func TestLiveBuilder_RestoresChronologicalOrder(t *testing.T) {
	// Fetch order is newest first, as the platform returns it.
	f := &fakeFetcher{msgs: []slack.HistoryMessage{
		{AuthorID: "UBOT", Text: "third", Timestamp: "3"},
		{AuthorID: "U1", Text: "second", Timestamp: "2"},
		{AuthorID: "U1", Text: "first", Timestamp: "1"},
	}}
	b := NewLiveBuilder(f, 20, "be helpful", "UBOT")

	msgs := b.Build(context.Background(), "C1", "now")
	if len(msgs) != 2 {
		t.Fatalf("want system+user, got %d: %+v", len(msgs), msgs)
	}
	framing := msgs[0].Content
	i1 := strings.Index(framing, "[user] first")
	i2 := strings.Index(framing, "[user] second")
	i3 := strings.Index(framing, "[assistant] third")
	if i1 < 0 || i2 < 0 || i3 < 0 {
		t.Fatalf("history entries missing from framing:\n%s", framing)
	}
	if !(i1 < i2 && i2 < i3) {
		t.Fatalf("history not chronological:\n%s", framing)
	}
	if !strings.Contains(framing, "context available to you") {
		t.Fatalf("framing does not declare the history as context:\n%s", framing)
	}
	if msgs[1].Role != "user" || msgs[1].Content != "now" {
		t.Fatalf("current utterance missing: %+v", msgs[1])
	}
}

func TestLiveBuilder_FetchFailureDegradesToUtterance(t *testing.T) {
	f := &fakeFetcher{err: errors.New("boom")}
	b := NewLiveBuilder(f, 20, "be helpful", "UBOT")

	msgs := b.Build(context.Background(), "C1", "still here?")
	if len(msgs) != 2 {
		t.Fatalf("want system+user fallback, got %d: %+v", len(msgs), msgs)
	}
	if msgs[0].Role != "system" || msgs[0].Content != "be helpful" {
		t.Fatalf("system framing lost on fallback: %+v", msgs[0])
	}
	if msgs[1].Role != "user" || msgs[1].Content != "still here?" {
		t.Fatalf("utterance lost on fallback: %+v", msgs[1])
	}
}

func TestLiveBuilder_SkipsEmptyHistoryEntries(t *testing.T) {
	f := &fakeFetcher{msgs: []slack.HistoryMessage{
		{AuthorID: "U1", Text: "   ", Timestamp: "2"},
		{AuthorID: "U1", Text: "real", Timestamp: "1"},
	}}
	b := NewLiveBuilder(f, 20, "", "UBOT")

	msgs := b.Build(context.Background(), "C1", "hi")
	if len(msgs) != 2 {
		t.Fatalf("want framing+user, got %+v", msgs)
	}
	if strings.Contains(msgs[0].Content, "[user]  ") {
		t.Fatalf("blank history entry included:\n%s", msgs[0].Content)
	}
	if !strings.Contains(msgs[0].Content, "[user] real") {
		t.Fatalf("real entry missing:\n%s", msgs[0].Content)
	}
}
