package main

import (
	"net/http"
	"os"
	"sync"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"atlas/internal/atlas"
	"atlas/internal/config"
	"atlas/internal/intent"
	"atlas/internal/ipc"
	"atlas/internal/listen"
	"atlas/internal/notify"
	"atlas/internal/proxy"
	"atlas/internal/resolve"
	"atlas/internal/speech"
	"atlas/internal/vitals"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	proxyAddr := cli.StringP("proxy", "p", "", "Socks proxy address (empty = direct)")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	godotenv.Load(*envFile)
	cfg := config.FromEnv()

	var httpClient *http.Client
	if *proxyAddr != "" {
		var err error
		httpClient, err = proxy.NewSocksClient(*proxyAddr)
		if err != nil {
			log.Error("Failed to dial socks proxy", "proxy", *proxyAddr, "err", err)
			os.Exit(1)
		}
		log.Debug("Loaded proxy")
	}

	chain := resolve.NewChain(cfg.ProviderTimeout, buildProviders(cfg, httpClient)...)

	feed := vitals.NewFeed(cfg.VitalsURL)
	go feed.Run()
	defer feed.Close()

	session := listen.NewSession(listen.NewHubSource(cfg.HubURL))
	voice := speech.NewSpeaker(speech.NewEdgeOutput(cfg.Voice))

	// The daemon is the host application: it owns the current route and
	// performs "navigation" by moving it.
	var routeMu sync.Mutex
	route := "/welcome"

	ctrl := atlas.New(session, voice, chain, atlas.Config{
		WakePhrases: cfg.WakePhrases,
		AckText:     cfg.AckText,
		SettleDelay: cfg.SettleDelay,
		Navigate: func(target string) {
			routeMu.Lock()
			route = target
			routeMu.Unlock()
			log.Info("Navigating", "target", target)
		},
		OnAction: func(action string) {
			log.Info("Action requested", "action", action)
		},
		OnWake: func() {
			go notify.Chime()
		},
		OnTranscript: func(t string) {
			log.Debug("Transcript", "text", t)
		},
		Context: func() intent.Context {
			routeMu.Lock()
			r := route
			routeMu.Unlock()

			cc := intent.Context{Route: r}
			if snap, ok := feed.Latest(); ok {
				cc.Vitals = &snap
			}
			return cc
		},
	})

	if err := ctrl.Start(); err != nil {
		log.Error("Failed to start controller", "err", err)
		os.Exit(1)
	}
	defer ctrl.Stop()

	if err := ipc.StartServer(func(msg ipc.ControlMessage) {
		switch msg.Cmd {
		case "wake":
			ctrl.Wake()
		case "standby":
			ctrl.Standby()
		default:
			log.Warn("Unknown command", "cmd", msg.Cmd)
		}
	}); err != nil {
		log.Error("Failed ipc server", "err", err)
		os.Exit(1)
	}

	log.Info("Boot up - successful", "phase", ctrl.Phase().String())

	select {}
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
		default:
			log.Warn("Unknown provider, skipping", "provider", name)
		}
	}
	return providers
}
