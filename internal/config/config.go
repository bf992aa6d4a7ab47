// Package config reads the daemon's configuration from the environment
// (usually seeded by a .env file). Nothing the core components depend on
// is hardcoded: provider order, credentials, wake phrases, settle delay
// and voice all come from here.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	WakePhrases     []string
	AckText         string
	SettleDelay     time.Duration
	Providers       []string
	ProviderTimeout time.Duration

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	GeminiKey   string
	GeminiModel string

	OllamaURL   string
	OllamaModel string

	HubURL    string
	VitalsURL string
	Voice     string
}

// FromEnv loads the configuration, filling defaults for anything unset.
func FromEnv() Config {
	return Config{
		WakePhrases:     getList("ATLAS_WAKE_PHRASES", []string{"hey atlas", "atlas"}),
		AckText:         getString("ATLAS_ACK", "Yes?"),
		SettleDelay:     getMillis("ATLAS_SETTLE_MS", 3000),
		Providers:       getList("ATLAS_PROVIDERS", []string{"gemini", "openai", "ollama"}),
		ProviderTimeout: getMillis("ATLAS_PROVIDER_TIMEOUT_MS", 10000),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   getString("OPENAI_MODEL", "gpt-4o-mini"),

		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel: getString("GEMINI_MODEL", "gemini-2.0-flash"),

		OllamaURL:   getString("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel: getString("OLLAMA_MODEL", "llama3"),

		HubURL:    getString("ATLAS_HUB_URL", "ws://localhost:8091/transcripts"),
		VitalsURL: getString("ATLAS_VITALS_URL", "ws://localhost:8080"),
		Voice:     getString("ATLAS_VOICE", "en-US-AriaNeural"),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func getMillis(key string, def int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return time.Duration(def) * time.Millisecond
}
