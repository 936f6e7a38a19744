package main

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/michaelbrown/codeproxy/internal/compile"
	"github.com/michaelbrown/codeproxy/internal/config"
	"github.com/michaelbrown/codeproxy/internal/judge0"
	"github.com/michaelbrown/codeproxy/internal/languages"
	"github.com/michaelbrown/codeproxy/internal/logging"
	"github.com/michaelbrown/codeproxy/internal/storage"
	"github.com/michaelbrown/codeproxy/internal/storage/sqlite"
)

var errHistoryDisabled = errors.New("history is disabled (storage.db_path is empty)")

// app holds what every command needs after config is loaded.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	catalog  *languages.Catalog
	client   *judge0.HTTPClient
	compiler *compile.Service
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Options{ConfigFile: configFlag, EnvFile: envFileFlag})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func setup() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	catalog, err := languages.Load(cfg.Languages.File)
	if err != nil {
		return nil, fmt.Errorf("loading languages: %w", err)
	}

	client := judge0.NewClient(cfg.Judge0Client())
	return &app{
		cfg:      cfg,
		logger:   logger,
		catalog:  catalog,
		client:   client,
		compiler: compile.NewService(client, cfg.Judge0.APIKey),
	}, nil
}

// openStore opens the history database, or fails when history is disabled.
func openStore(cfg *config.Config) (storage.Store, error) {
	if !cfg.HistoryEnabled() {
		return nil, errHistoryDisabled
	}
	store, err := sqlite.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	return store, nil
}
