package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

// ContextStrategy selects how the relay assembles conversational context.
// Fixed at process start, never per-event.
type ContextStrategy string

const (
	StrategyRolling ContextStrategy = "rolling"
	StrategyLive    ContextStrategy = "live"
)

type Config struct {
	Port string `env:"PORT" envDefault:"3000"`

	// Slack
	SlackBotToken      string `env:"SLACK_BOT_TOKEN,required"`
	SlackSigningSecret string `env:"SLACK_SIGNING_SECRET"`
	// Resolved via auth.test at startup when empty.
	SlackBotUserID string `env:"SLACK_BOT_USER_ID"`

	// Context assembly
	ContextStrategy  ContextStrategy `env:"CONTEXT_STRATEGY" envDefault:"rolling"`
	HistoryCapacity  int             `env:"HISTORY_CAPACITY" envDefault:"10"`
	HistoryFetchLim  int             `env:"HISTORY_FETCH_LIMIT" envDefault:"20"`
	HistoryIdleTTL   time.Duration   `env:"HISTORY_IDLE_TTL" envDefault:"24h"`
	JanitorCronSpec  string          `env:"JANITOR_CRON" envDefault:"0 * * * *"`
	ThreadReplies    bool            `env:"THREAD_REPLIES" envDefault:"false"`
	SystemPromptPath string          `env:"SYSTEM_PROMPT_PATH"`

	// LLM settings
	LLMProvider       LLMProvider   `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey      string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string        `env:"OPENAI_BASE_URL"`
	OpenAIModel       string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken  string        `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID    string        `env:"YANDEX_FOLDER_ID"`
	CompletionTimeout time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"60s"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Storage
	LogFilePath string `env:"LOG_FILE_PATH"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
