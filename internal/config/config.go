package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        int
	LogLevel    string
	PromptLang  string
	OpenAIKey   string
	OpenAIModel string
	Temperature float64
	SQLitePath  string
	DatabaseURL string
	NatsURL     string
	NatsToken   string
	PersonaFile string
	Browser     bool
	BrowserURL  string
}

func Load() Config {
	return Config{
		Port:        envInt("MIRA_PORT", 8760),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		PromptLang:  envStr("MIRA_LANG", "ja"),
		OpenAIKey:   envStr("OPENAI_API_KEY", ""),
		OpenAIModel: envStr("MIRA_MODEL", "gpt-4o-mini"),
		Temperature: envFloat("MIRA_TEMPERATURE", 0.7),
		SQLitePath:  envStr("MIRA_DB_PATH", "out/mira.db"),
		DatabaseURL: envStr("DATABASE_URL", ""),
		NatsURL:     envStr("NATS_URL", ""),
		NatsToken:   envStr("NATS_TOKEN", ""),
		PersonaFile: envStr("MIRA_PERSONA_FILE", ""),
		Browser:     envBool("MIRA_BROWSER", false),
		BrowserURL:  envStr("MIRA_BROWSER_URL", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
