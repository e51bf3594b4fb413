package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/studyloop/internal/db"
	"github.com/alexanderramin/studyloop/internal/repository"
	"github.com/alexanderramin/studyloop/internal/service"
	"github.com/alexanderramin/studyloop/internal/storage"
)

const (
	backendJSON   = "json"
	backendSQLite = "sqlite"
)

type storeConfig struct {
	Backend       string
	PortfolioPath string
	DBPath        string
}

// loadStoreConfig reads STUDYLOOP_STORE, STUDYLOOP_PORTFOLIO and
// STUDYLOOP_DB, defaulting paths to ~/.studyloop.
func loadStoreConfig() (storeConfig, error) {
	cfg := storeConfig{
		Backend:       strings.ToLower(strings.TrimSpace(os.Getenv("STUDYLOOP_STORE"))),
		PortfolioPath: os.Getenv("STUDYLOOP_PORTFOLIO"),
		DBPath:        os.Getenv("STUDYLOOP_DB"),
	}
	if cfg.Backend == "" {
		cfg.Backend = backendJSON
	}
	if cfg.Backend != backendJSON && cfg.Backend != backendSQLite {
		return cfg, fmt.Errorf("STUDYLOOP_STORE must be %q or %q, got %q", backendJSON, backendSQLite, cfg.Backend)
	}

	if cfg.PortfolioPath == "" || cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		if cfg.PortfolioPath == "" {
			cfg.PortfolioPath = filepath.Join(home, ".studyloop", "portfolio.json")
		}
		if cfg.DBPath == "" {
			cfg.DBPath = filepath.Join(home, ".studyloop", "studyloop.db")
		}
	}
	return cfg, nil
}

// openStore returns the configured backend and a func releasing it.
func openStore(cfg storeConfig, logger *slog.Logger) (service.PortfolioStore, func() error, error) {
	switch cfg.Backend {
	case backendSQLite:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		uow := db.NewSQLiteUnitOfWork(database)
		return repository.NewSQLitePortfolioStore(database, uow), database.Close, nil
	default:
		store := storage.NewJSONFileStore(cfg.PortfolioPath).WithLogger(logger)
		return store, func() error { return nil }, nil
	}
}
