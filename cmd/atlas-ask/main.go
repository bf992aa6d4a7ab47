// atlas-ask resolves a single command from the shell, bypassing the voice
// loop. Useful for poking at provider configuration.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"atlas/internal/config"
	"atlas/internal/intent"
	"atlas/internal/proxy"
	"atlas/internal/resolve"
)

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	proxyAddr := cli.StringP("proxy", "p", "", "Socks proxy address (empty = direct)")
	route := cli.StringP("route", "r", "/home", "Pretend current route")
	offline := cli.Bool("offline", false, "Skip remote providers, offline matcher only")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stderr, &tint.Options{Level: log.LevelWarn})))

	text := strings.TrimSpace(strings.Join(cli.Args(), " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "usage: atlas-ask [flags] <command text>")
		os.Exit(2)
	}

	godotenv.Load(*envFile)
	cfg := config.FromEnv()

	var httpClient *http.Client
	if *proxyAddr != "" {
		var err error
		httpClient, err = proxy.NewSocksClient(*proxyAddr)
		if err != nil {
			fmt.Fprintln(os.Stderr, "socks proxy:", err)
			os.Exit(1)
		}
	}

	var providers []resolve.Provider
	if !*offline {
		providers = buildProviders(cfg, httpClient)
	}
	chain := resolve.NewChain(cfg.ProviderTimeout, providers...)

	it := chain.Resolve(context.Background(), text, intent.Context{Route: *route})

	out, _ := json.MarshalIndent(it, "", "  ")
	fmt.Println(string(out))
}

func buildProviders(cfg config.Config, httpClient *http.Client) []resolve.Provider {
	var providers []resolve.Provider
	for _, name := range cfg.Providers {
		switch name {
		case "openai":
			providers = append(providers, resolve.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, httpClient))
		case "gemini":
			providers = append(providers, resolve.NewGemini(cfg.GeminiKey, cfg.GeminiModel))
		case "ollama":
			providers = append(providers, resolve.NewOllama(cfg.OllamaURL, cfg.OllamaModel, httpClient))
		}
	}
	return providers
}
