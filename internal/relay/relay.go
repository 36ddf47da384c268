package relay

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/llm"
	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/storage"
)

// Sender is the slice of the platform client the dispatcher needs.
type Sender interface {
	PostMessage(ctx context.Context, channelID, text, threadTS string) error
}

// Relay runs one orchestration pass per inbound event:
// classify, assemble context, invoke the completion service, dispatch
// the reply. Every external call is attempted at most once per turn.
type Relay struct {
	classifier    Classifier
	builder       ContextBuilder
	invoker       Invoker
	sender        Sender
	recorder      storage.Recorder // optional
	threadReplies bool
}

type Options struct {
	Classifier    Classifier
	Builder       ContextBuilder
	Invoker       Invoker
	Sender        Sender
	Recorder      storage.Recorder
	ThreadReplies bool
}

func New(opts Options) *Relay {
	return &Relay{
		classifier:    opts.Classifier,
		builder:       opts.Builder,
		invoker:       opts.Invoker,
		sender:        opts.Sender,
		recorder:      opts.Recorder,
		threadReplies: opts.ThreadReplies,
	}
}

// Handle processes one event to a terminal outcome. It never panics
// and never returns an error: every failure past classification is
// logged and ends the turn, the process keeps serving other events.
func (r *Relay) Handle(ctx context.Context, ev Event) {
	utterance, ok := r.classifier.Classify(ev)
	if !ok {
		return
	}
	trace := uuid.NewString()
	log.Printf("[%s] relaying %s from user %s in channel %s: %q", trace, ev.Type, ev.UserID, ev.ChannelID, utterance)

	msgs := r.builder.Build(ctx, ev.ChannelID, utterance)

	resp, err := r.invoker.Invoke(ctx, msgs)
	if err != nil {
		// No retry and no error reply; aborting keeps at-most-once
		// delivery under flaky completion backends.
		log.Printf("[%s] completion failed, turn aborted: %v", trace, err)
		return
	}

	// The reply enters the rolling window before dispatch so the next
	// turn keeps context even if this delivery fails.
	r.builder.RecordReply(ev.ChannelID, resp.Content)
	r.record(trace, ev, utterance, resp)

	threadTS := ""
	if r.threadReplies {
		threadTS = ev.Timestamp
	}
	if err := r.sender.PostMessage(ctx, ev.ChannelID, resp.Content, threadTS); err != nil {
		log.Printf("[%s] reply dispatch failed: %v", trace, err)
		return
	}
	log.Printf("[%s] reply sent to %s (%d tokens)", trace, ev.ChannelID, resp.TotalTokens)
}

func (r *Relay) record(trace string, ev Event, utterance string, resp llm.Response) {
	if r.recorder == nil {
		return
	}
	err := r.recorder.AppendTurn(storage.TurnRecord{
		Timestamp:         time.Now().UTC(),
		TraceID:           trace,
		ChannelID:         ev.ChannelID,
		UserID:            ev.UserID,
		UserMessage:       utterance,
		AssistantResponse: resp.Content,
		Model:             resp.Model,
		PromptTokens:      resp.PromptTokens,
		CompletionTokens:  resp.CompletionTokens,
		TotalTokens:       resp.TotalTokens,
	})
	if err != nil {
		log.Printf("[%s] failed to record turn: %v", trace, err)
	}
}
