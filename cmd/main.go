package main

import (
	"context"

	"qakit/internal/browser"
	"qakit/internal/cli"
	"qakit/internal/config"
	"qakit/internal/llm"
	"qakit/internal/logger"
	"qakit/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var llmClient *llm.Client
	if cfg.OpenAI.KeyAI != "" {
		llmClient = llm.NewClient(cfg.OpenAI.KeyAI, cfg.OpenAI.Model, cfg.OpenAI.MaxTokens, log.Logger)
	} else {
		log.Warn("OPENAI_API_KEY не задан, команда insights будет недоступна")
	}

	fetcher := browser.New(browser.Config{
		Headless:     cfg.Browser.Headless,
		Display:      cfg.Browser.Display,
		BrowsersPath: cfg.Browser.BrowsersPath,
	})
	defer fetcher.Close()

	ctx := context.Background()

	if cfg.Server.Enabled {
		srv := server.New(cfg, log, llmClient, fetcher)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Error("Ошибка HTTP сервера", zap.Error(err))
			}
		}()
	}

	console := cli.New(log, llmClient, fetcher)
	console.Run(ctx)
}
