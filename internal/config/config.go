package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultSystemPrompt = `You are Parley, a large language AI assistant. You are designed to chat and answer questions in many fields, especially in technology. You cannot directly access real-time data.
REMEMBER: If you don't know information about something or don't know the answer to a specific question, avoid answering with something like "Hmm, I'm not sure." or "Try searching on search engines like Google.". Don't try to make up answers.

Trained model: {{.model}}.
User language: {{.language}}.`

type Config struct {
	AppPort  int    `mapstructure:"APP_PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	DatabasePath  string `mapstructure:"DATABASE_PATH"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPrefix   string `mapstructure:"REDIS_PREFIX"`
	BadgerDir     string `mapstructure:"BADGER_DIR"`

	OpenAIAPIKey  string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"`
	// CompletionURL points the orchestrator at a remote gateway instead of the
	// in-process upstream provider.
	CompletionURL string `mapstructure:"COMPLETION_URL"`
	SystemPrompt  string `mapstructure:"SYSTEM_PROMPT"`

	SearchProvider     string `mapstructure:"SEARCH_PROVIDER"`
	BrowserlessBaseURL string `mapstructure:"BROWSERLESS_BASE_URL"`
	DuckDuckGoURL      string `mapstructure:"DUCKDUCKGO_URL"`

	MasksPath   string `mapstructure:"MASKS_PATH"`
	TiktokenDir string `mapstructure:"TIKTOKEN_DIR"`

	PersistDebounce    time.Duration `mapstructure:"PERSIST_DEBOUNCE"`
	StreamSyncInterval time.Duration `mapstructure:"STREAM_SYNC_INTERVAL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("STORAGE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_PATH", "/data/parley.db")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PREFIX", "parley:")
	viper.SetDefault("BADGER_DIR", "/data/badger")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("COMPLETION_URL", "")
	viper.SetDefault("SYSTEM_PROMPT", defaultSystemPrompt)
	viper.SetDefault("SEARCH_PROVIDER", "browserless")
	viper.SetDefault("BROWSERLESS_BASE_URL", "https://chrome.browserless.io")
	viper.SetDefault("DUCKDUCKGO_URL", "https://html.duckduckgo.com/html/")
	viper.SetDefault("MASKS_PATH", "")
	viper.SetDefault("TIKTOKEN_DIR", "")
	viper.SetDefault("PERSIST_DEBOUNCE", "50ms")
	viper.SetDefault("STREAM_SYNC_INTERVAL", "50ms")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
