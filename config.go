package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	providerAnthropic = "anthropic"
	providerOpenAI    = "openai"
)

// Config is the resolved runtime configuration.
type Config struct {
	Provider        string  `mapstructure:"provider"`
	Model           string  `mapstructure:"model"`
	MaxTokens       int     `mapstructure:"max_tokens"`
	Temperature     float64 `mapstructure:"temperature"`
	BaseURL         string  `mapstructure:"base_url"`
	Tools           string  `mapstructure:"tools"`
	MaxCycles       int     `mapstructure:"max_cycles"`
	Debug           bool    `mapstructure:"debug"`
	HistoryFile     string  `mapstructure:"history_file"`
	AnthropicAPIKey string  `mapstructure:"anthropic_api_key"`
	OpenAIAPIKey    string  `mapstructure:"openai_api_key"`
}

// APIKey returns the credential for the selected provider.
func (c Config) APIKey() string {
	if c.Provider == providerOpenAI {
		return c.OpenAIAPIKey
	}
	return c.AnthropicAPIKey
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get home directory: %v", err)
		return "."
	}
	return home
}

// loadEnvFiles loads ~/.weatherbot.env and ./.env. Variables already set win.
func loadEnvFiles() {
	for _, path := range []string{filepath.Join(homeDir(), ".weatherbot.env"), ".env"} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: could not load %s: %v", path, err)
		}
	}
}

// loadConfig resolves defaults < config file < WEATHERBOT_* env < flags bound to v.
func loadConfig(v *viper.Viper, configFile string) (Config, error) {
	loadEnvFiles()

	v.SetDefault("provider", providerAnthropic)
	v.SetDefault("model", "")
	v.SetDefault("max_tokens", 1024)
	v.SetDefault("temperature", 0.0)
	v.SetDefault("base_url", "")
	v.SetDefault("tools", "full")
	v.SetDefault("max_cycles", 0)
	v.SetDefault("debug", false)
	v.SetDefault("history_file", filepath.Join(homeDir(), ".weatherbot_history"))

	v.SetEnvPrefix("WEATHERBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("anthropic_api_key", "ANTHROPIC_API_KEY"); err != nil {
		return Config{}, err
	}
	if err := v.BindEnv("openai_api_key", "OPENAI_API_KEY"); err != nil {
		return Config{}, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName(".weatherbot")
		v.SetConfigType("yaml")
		v.AddConfigPath(homeDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))

	switch cfg.Provider {
	case providerAnthropic, providerOpenAI:
	default:
		return Config{}, fmt.Errorf("unknown provider %q (want %s or %s)", cfg.Provider, providerAnthropic, providerOpenAI)
	}
	if _, ok := toolSets[cfg.Tools]; !ok {
		return Config{}, fmt.Errorf("unknown tool set %q (want one of: %s)", cfg.Tools, toolSetNames())
	}
	if cfg.MaxCycles < 0 {
		return Config{}, fmt.Errorf("max_cycles must not be negative, got %d", cfg.MaxCycles)
	}
	if cfg.MaxTokens <= 0 {
		return Config{}, fmt.Errorf("max_tokens must be positive, got %d", cfg.MaxTokens)
	}

	// The service client reports the failure on first use.
	if cfg.APIKey() == "" {
		log.Printf("Warning: no API key set for provider %s", cfg.Provider)
	}
	return cfg, nil
}
