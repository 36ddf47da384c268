package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	api "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/relay"
)

const maxBodyBytes = 1 << 20

// Handler consumes one translated inbound event.
type Handler interface {
	Handle(ctx context.Context, ev relay.Event)
}

// Server accepts Slack Events API deliveries. Every delivery is
// acknowledged immediately; the relay runs in a detached goroutine so
// Slack's retry clock never observes completion latency.
type Server struct {
	handler       Handler
	signingSecret string
	seen          *seenSet
}

func New(handler Handler, signingSecret string) *Server {
	return &Server{
		handler:       handler,
		signingSecret: signingSecret,
		seen:          newSeenSet(512),
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/slack/events", s.handleEvents)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) ListenAndServe(port string) error {
	log.Printf("🤖 Slack relay listening on port %s", port)
	return http.ListenAndServe(":"+port, s.Routes())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if s.signingSecret != "" {
		sv, err := api.NewSecretsVerifier(r.Header, s.signingSecret)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if _, err := sv.Write(body); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if err := sv.Ensure(); err != nil {
			log.Printf("rejected delivery with bad signature: %v", err)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
	}

	evt, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Verification handshake: echo the challenge back, nothing else.
	if evt.Type == slackevents.URLVerification {
		var ch slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &ch); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"challenge": ch.Challenge})
		return
	}

	// Ack first. Everything below must not delay the 200.
	w.WriteHeader(http.StatusOK)

	if evt.Type != slackevents.CallbackEvent {
		return
	}

	// Slack redelivers on its own schedule; we already handled the
	// original, so drop retries and recently seen event IDs.
	if n := r.Header.Get("X-Slack-Retry-Num"); n != "" {
		log.Printf("dropping retried delivery (retry %s, reason %s)", n, r.Header.Get("X-Slack-Retry-Reason"))
		return
	}
	eventID := ""
	if cb, ok := evt.Data.(*slackevents.EventsAPICallbackEvent); ok {
		eventID = cb.EventID
	}
	if eventID != "" && !s.seen.Add(eventID) {
		log.Printf("dropping duplicate delivery of event %s", eventID)
		return
	}

	ev, ok := translate(evt, eventID)
	if !ok {
		return
	}

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("relay task panicked for event %s: %v", eventID, rec)
			}
		}()
		s.handler.Handle(context.Background(), ev)
	}()
}

// translate lifts the inner Events API payload into a relay.Event.
func translate(evt slackevents.EventsAPIEvent, eventID string) (relay.Event, bool) {
	switch inner := evt.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		return relay.Event{
			Type:      relay.EventAppMention,
			ChannelID: inner.Channel,
			UserID:    inner.User,
			BotID:     inner.BotID,
			Text:      inner.Text,
			Timestamp: inner.TimeStamp,
			EventID:   eventID,
		}, true
	case *slackevents.MessageEvent:
		return relay.Event{
			Type:        relay.EventMessage,
			ChannelID:   inner.Channel,
			ChannelType: inner.ChannelType,
			UserID:      inner.User,
			BotID:       inner.BotID,
			Text:        inner.Text,
			Timestamp:   inner.TimeStamp,
			EventID:     eventID,
		}, true
	default:
		return relay.Event{}, false
	}
}
