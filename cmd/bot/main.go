package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/config"
	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/history"
	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/llm"
	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/relay"
	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/scheduler"
	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/server"
	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/slack"
	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/storage"
)

const defaultSystemPrompt = "You are a helpful, friendly Slack assistant. " +
	"Always respond conversationally and naturally. Keep answers clear, short, and context-aware."

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	systemPrompt := readSystemPrompt(cfg.SystemPromptPath)

	llmClient, err := llmFactoryClient(cfg)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	slackClient := slack.New(cfg.SlackBotToken)

	botUserID := cfg.SlackBotUserID
	if botUserID == "" {
		id, err := slackClient.BotIdentity(context.Background())
		if err != nil {
			log.Fatalf("failed to resolve bot identity: %v", err)
		}
		botUserID = id.UserID
		log.Printf("resolved bot identity: %s", botUserID)
	}

	var rec storage.Recorder
	if cfg.LogFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.LogFilePath)
		if err != nil {
			log.Printf("failed to init turn recorder: %v", err)
		} else {
			rec = fr
		}
	}

	var builder relay.ContextBuilder
	switch cfg.ContextStrategy {
	case config.StrategyRolling:
		hist := history.NewManager(cfg.HistoryCapacity)
		builder = relay.NewRollingBuilder(hist, systemPrompt)

		janitor := scheduler.New(cfg.JanitorCronSpec, cfg.HistoryIdleTTL, hist)
		if err := janitor.Start(); err != nil {
			log.Fatalf("failed to start history janitor: %v", err)
		}
		defer janitor.Stop()
	case config.StrategyLive:
		builder = relay.NewLiveBuilder(slackClient, cfg.HistoryFetchLim, systemPrompt, botUserID)
	default:
		log.Fatalf("unknown context strategy: %q", cfg.ContextStrategy)
	}

	rly := relay.New(relay.Options{
		Classifier:    relay.Classifier{BotUserID: botUserID},
		Builder:       builder,
		Invoker:       relay.NewInvoker(llmClient, cfg.CompletionTimeout),
		Sender:        slackClient,
		Recorder:      rec,
		ThreadReplies: cfg.ThreadReplies,
	})

	srv := server.New(rly, cfg.SlackSigningSecret)
	if err := srv.ListenAndServe(cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func llmFactoryClient(cfg *config.Config) (llm.Client, error) {
	f := llm.NewFactory(cfg)
	return f.CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
}

func readSystemPrompt(path string) string {
	if path == "" {
		return defaultSystemPrompt
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s: %v", path, err)
		return defaultSystemPrompt
	}
	if s := strings.TrimSpace(string(data)); s != "" {
		return s
	}
	return defaultSystemPrompt
}
