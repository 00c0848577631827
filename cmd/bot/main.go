package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kretovds/company-registry-bot/internal/config"
	"github.com/kretovds/company-registry-bot/internal/database"
	"github.com/kretovds/company-registry-bot/internal/handlers"
	"github.com/kretovds/company-registry-bot/internal/jobs"
	"github.com/kretovds/company-registry-bot/internal/repositories"
	"github.com/kretovds/company-registry-bot/internal/services"
	"github.com/kretovds/company-registry-bot/internal/services/gateway"
	"github.com/kretovds/company-registry-bot/internal/telegram"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.LoadConfig()
	log.Info().Str("env", cfg.Env).Msg("Starting company-registry-bot")

	if cfg.TelegramToken == "" {
		log.Fatal().Msg("TELEGRAM_TOKEN is empty")
	}

	db := database.NewDB(cfg.DBPath)
	companyRepo := repositories.NewCompanyRepo(db)

	apiClient := gateway.NewClient(cfg.APIBaseURL, cfg.APIBotID, cfg.APITimeout, cfg.APIMaxRetries)
	engine := services.NewConversationEngine(companyRepo, apiClient)

	bot, err := telegram.NewBot(cfg.TelegramToken, engine)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init Telegram bot")
	}

	app := fiber.New()
	handlers.NewCompanyHandler(companyRepo).RegisterRoutes(app)
	go func() {
		if err := app.Listen(":" + cfg.OpsPort); err != nil {
			log.Error().Err(err).Msg("ops server stopped")
		}
	}()

	statsJob := jobs.NewStatsJob(companyRepo)
	if err := statsJob.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start stats job")
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("Shutting down...")
		cancel()
	}()

	bot.Run(ctx)

	statsJob.Stop()
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("ops server shutdown failed")
	}
	log.Info().Msg("Goodbye 👋")
}
