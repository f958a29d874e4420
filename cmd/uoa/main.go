package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/api/yahoo"
	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/config"
	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/detect"
	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/notify"
	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/render"
	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/report"
)

func main() {
	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	setupSignalHandling(cancel)

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Configure logging
	setupLogging(cfg.LogLevel)
	log.Info().Str("symbol", cfg.Symbol).Msg("Starting options activity analysis")

	// 3. Setup API client
	client := yahoo.NewClient(yahoo.ClientOptions{
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: cfg.RequestsPerSec,
	})

	// 4. Run one analysis session
	session := detect.NewSession(client, cfg.Symbol, detect.Options{
		HistoryDays: cfg.HistoryDays,
		Lookback:    cfg.Lookback,
	})

	rep, err := session.Analyze(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("symbol", cfg.Symbol).Msg("Analysis failed")
	}
	interpretation := report.Interpret(rep)

	// 5. Print the report
	if cfg.ReportJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			log.Fatal().Err(err).Msg("Failed to encode report")
		}
	}
	console := render.NewConsole(os.Stdout)
	if err := console.Render(cfg.Symbol, rep, interpretation); err != nil {
		log.Fatal().Err(err).Msg("Failed to render report")
	}

	// 6. Deliver alerts if a Telegram chat is configured
	notifier, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Error().Err(err).Msg("Telegram notifier unavailable")
	} else if notifier != nil && len(interpretation.Alerts) > 0 {
		if err := notifier.Send(cfg.Symbol, interpretation); err != nil {
			log.Error().Err(err).Msg("Failed to deliver alerts")
		}
	}

	log.Info().Int("alerts", len(interpretation.Alerts)).Msg("Analysis complete")
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
		os.Exit(0)
	}()
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
