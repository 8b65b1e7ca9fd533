package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	// HTTP
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// Logging
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`

	// Empty means the embedded corpus.
	KnowledgePath string `env:"KNOWLEDGE_PATH"`

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4.1-mini"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Relay
	SystemPromptPath string        `env:"SYSTEM_PROMPT_PATH"`
	RelayTimeout     time.Duration `env:"RELAY_TIMEOUT" envDefault:"20s"`
	RelayRetryWait   time.Duration `env:"RELAY_RETRY_WAIT" envDefault:"500ms"`
	RelayEndpoint    string        `env:"RELAY_ENDPOINT"`

	// Widget
	ReplyDelay     time.Duration `env:"REPLY_DELAY" envDefault:"400ms"`
	ReplyJitter    time.Duration `env:"REPLY_JITTER" envDefault:"300ms"`
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`

	// Storage
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"jsonl"`
	LogFilePath   string `env:"LOG_FILE_PATH" envDefault:"logs/chat.jsonl"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"data/chat.db"`

	// Telegram (optional)
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	AdminUserID      int64  `env:"ADMIN_USER"`

	// Schedules
	ReportCron       string `env:"REPORT_CRON" envDefault:"0 21 * * *"`
	SessionSweepCron string `env:"SESSION_SWEEP_CRON" envDefault:"@every 10m"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.LLMProvider {
	case ProviderOpenAI, ProviderYandex:
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER: unknown provider %q", c.LLMProvider))
	}
	switch c.StorageDriver {
	case "jsonl", "sqlite", "none":
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", c.StorageDriver))
	}
	if c.RelayTimeout <= 0 {
		errs = append(errs, errors.New("RELAY_TIMEOUT must be positive"))
	}
	if c.ReplyDelay < 0 || c.ReplyJitter < 0 {
		errs = append(errs, errors.New("REPLY_DELAY and REPLY_JITTER must not be negative"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("HTTP_ADDR is empty"))
	}
	return errors.Join(errs...)
}

// RelayEnabled reports whether a language model can be reached at all.
func (c *Config) RelayEnabled() bool {
	if c.RelayEndpoint != "" {
		return true
	}
	switch c.LLMProvider {
	case ProviderYandex:
		return c.YandexOAuthToken != "" && c.YandexFolderID != ""
	default:
		return c.OpenAIAPIKey != ""
	}
}
