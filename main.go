package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"

	"github.com/M0ricette/lego/api"
	"github.com/M0ricette/lego/favorites"
	"github.com/M0ricette/lego/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig(".env")
	if err != nil {
		return err
	}

	logFile, err := openLogFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg.LogLevel)

	kv, err := storage.Open(cfg.Store, cfg.StorePath)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Warn("close store", tint.Err(err))
		}
	}()
	favs := favorites.Load(context.Background(), kv, logger)

	client, err := api.NewClient(cfg.APIURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		api.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		api.WithSalesCacheTTL(cfg.SalesCacheTTL),
		api.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Info("starting",
		slog.String("api", cfg.APIURL),
		slog.String("store", cfg.Store),
		slog.String("store_path", cfg.StorePath),
		slog.Int("favorites", favs.Len()),
	)

	p := tea.NewProgram(
		NewModel(client, favs, cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
