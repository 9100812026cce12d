package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/navi-hq/navi/internal/common"
	"github.com/navi-hq/navi/internal/config"
	"github.com/navi-hq/navi/internal/model"
	"github.com/navi-hq/navi/internal/oracle"
	"github.com/navi-hq/navi/internal/service"
	"github.com/navi-hq/navi/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/navi/navi.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// buildOracle constructs the configured oracle wrapped with retry, or nil
// when no API key is available and the run should stay regex-only.
func buildOracle(tracker *oracle.CostTracker) (oracle.Oracle, string) {
	cfg := config.LoadOracleConfig()
	if cfg.APIKey == "" {
		slog.Info("No oracle API key configured, running regex-only analysis")
		return nil, ""
	}
	cfg.Tracker = tracker

	o, err := oracle.New(cfg)
	if err != nil {
		common.LogError(err, "failed to create oracle, running regex-only analysis", common.Fields{
			"provider": cfg.Provider,
		})
		return nil, ""
	}
	return oracle.NewResilient(o), cfg.Model
}

// loadMessages fetches all stored messages in timestamp order.
func loadMessages(ctx context.Context, store service.Storage) ([]model.Message, error) {
	messages, err := store.GetMessages(ctx, service.MessageFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	if len(messages) == 0 {
		return nil, common.NewUserError(
			"No messages stored yet. Import a chat export with 'navi analyze <export.txt>'", common.ErrNoMessages)
	}
	return messages, nil
}

// resolveAsOf parses the --as-of flag, defaulting to the latest message.
func resolveAsOf(asOfFlag string, messages []model.Message) (time.Time, error) {
	if asOfFlag == "" {
		return messages[len(messages)-1].Timestamp, nil
	}
	asOf, err := time.Parse("2006-01-02", asOfFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q (expected YYYY-MM-DD): %w", asOfFlag, err)
	}
	// Score up to the end of the given day
	return asOf.Add(24*time.Hour - time.Second), nil
}
