package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cli/browser"
	"github.com/presencedash/config"
	"github.com/presencedash/downloader"
	"github.com/presencedash/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, logFile, err := server.SetupLogging(cfg.App.LogDir, cfg.App.LogLevel)
	if err != nil {
		log.Fatal("Failed to set up logging:", err)
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	api := downloader.NewPresenceDownloader(cfg.API.BaseURL, cfg.API.Timeout, logger)

	dashboard, err := server.NewDashboard(api, server.Options{
		AvatarBaseURL: cfg.API.AvatarBaseURL,
		MaxPages:      cfg.App.MaxPages,
		Theme:         cfg.Charts.Theme,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("failed to create dashboard", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.App.OpenBrowser {
		url := fmt.Sprintf("http://localhost:%d/", cfg.App.Port)
		go func() {
			if err := browser.OpenURL(url); err != nil {
				logger.Warn("could not open browser", slog.String("url", url), slog.Any("error", err))
			}
		}()
	}

	logger.Info("presence dashboard",
		slog.String("env", cfg.App.Env),
		slog.String("api", cfg.API.BaseURL),
	)
	if err := dashboard.Serve(ctx, cfg.Address()); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
