package relay

import "testing"

func TestClassify_StripsLeadingMention(t *testing.T) {
	c := Classifier{BotUserID: "UBOT"}
	ev := Event{Type: EventAppMention, ChannelID: "C1", UserID: "U1", Text: "<@U123> hello there"}

	got, ok := c.Classify(ev)
	if !ok {
		t.Fatal("mention event should be actionable")
	}
	if got != "hello there" {
		t.Fatalf("want %q, got %q", "hello there", got)
	}
}

func TestClassify_NoMentionTokenJustTrims(t *testing.T) {
	c := Classifier{BotUserID: "UBOT"}
	ev := Event{Type: EventMessage, ChannelType: "im", UserID: "U1", Text: "  plain text  "}

	got, ok := c.Classify(ev)
	if !ok || got != "plain text" {
		t.Fatalf("want actionable %q, got (%q, %v)", "plain text", got, ok)
	}
}

func TestClassify_SelfAuthoredIsNeverActionable(t *testing.T) {
	c := Classifier{BotUserID: "UBOT"}

	cases := []Event{
		{Type: EventAppMention, UserID: "UBOT", Text: "echo"},
		{Type: EventMessage, ChannelType: "im", UserID: "U1", BotID: "B99", Text: "from a bot"},
		{Type: EventAppMention, Text: "no author"},
	}
	for i, ev := range cases {
		if _, ok := c.Classify(ev); ok {
			t.Fatalf("case %d: self/bot-authored event classified as actionable: %+v", i, ev)
		}
	}
}

func TestClassify_OnlyMentionsAndDMs(t *testing.T) {
	c := Classifier{BotUserID: "UBOT"}

	if _, ok := c.Classify(Event{Type: EventMessage, ChannelType: "channel", UserID: "U1", Text: "hi"}); ok {
		t.Fatal("plain channel message should be ignored")
	}
	if _, ok := c.Classify(Event{Type: "reaction_added", UserID: "U1"}); ok {
		t.Fatal("unrelated event type should be ignored")
	}
	if _, ok := c.Classify(Event{Type: EventMessage, ChannelType: "im", UserID: "U1", Text: "hi"}); !ok {
		t.Fatal("direct message should be actionable")
	}
}

func TestClassify_EmptyUtteranceStillActionable(t *testing.T) {
	c := Classifier{BotUserID: "UBOT"}
	got, ok := c.Classify(Event{Type: EventAppMention, UserID: "U1", Text: "<@UBOT>"})
	if !ok {
		t.Fatal("bare mention should still be actionable")
	}
	if got != "" {
		t.Fatalf("want empty utterance, got %q", got)
	}
}

func TestClassify_IsIdempotent(t *testing.T) {
	c := Classifier{BotUserID: "UBOT"}
	ev := Event{Type: EventAppMention, UserID: "U1", Text: "<@UBOT> status?"}

	u1, ok1 := c.Classify(ev)
	u2, ok2 := c.Classify(ev)
	if ok1 != ok2 || u1 != u2 {
		t.Fatalf("classification not stable: (%q,%v) vs (%q,%v)", u1, ok1, u2, ok2)
	}
}
