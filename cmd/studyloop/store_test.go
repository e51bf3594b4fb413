package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/studyloop/internal/repository"
	"github.com/alexanderramin/studyloop/internal/storage"
	"github.com/alexanderramin/studyloop/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadStoreConfig_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("STUDYLOOP_STORE", "")
	t.Setenv("STUDYLOOP_PORTFOLIO", "")
	t.Setenv("STUDYLOOP_DB", "")

	cfg, err := loadStoreConfig()
	require.NoError(t, err)
	assert.Equal(t, backendJSON, cfg.Backend)
	assert.Equal(t, filepath.Join(home, ".studyloop", "portfolio.json"), cfg.PortfolioPath)
	assert.Equal(t, filepath.Join(home, ".studyloop", "studyloop.db"), cfg.DBPath)
}

func TestLoadStoreConfig_Overrides(t *testing.T) {
	t.Setenv("STUDYLOOP_STORE", " SQLite ")
	t.Setenv("STUDYLOOP_PORTFOLIO", "/tmp/p.json")
	t.Setenv("STUDYLOOP_DB", "/tmp/s.db")

	cfg, err := loadStoreConfig()
	require.NoError(t, err)
	assert.Equal(t, storeConfig{Backend: backendSQLite, PortfolioPath: "/tmp/p.json", DBPath: "/tmp/s.db"}, cfg)
}

func TestLoadStoreConfig_UnknownBackend(t *testing.T) {
	t.Setenv("STUDYLOOP_STORE", "redis")

	_, err := loadStoreConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestOpenStore_JSON(t *testing.T) {
	dir := t.TempDir()
	store, closeStore, err := openStore(storeConfig{
		Backend:       backendJSON,
		PortfolioPath: filepath.Join(dir, "nested", "portfolio.json"),
	}, discardLogger())
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &storage.JSONFileStore{}, store)

	ctx := context.Background()
	h := testutil.NewTestHistory(testutil.WithAnswers(0, testutil.Substantive))
	require.NoError(t, store.Save(ctx, testutil.NewTestPortfolio(h)))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
}

func TestOpenStore_SQLite(t *testing.T) {
	store, closeStore, err := openStore(storeConfig{
		Backend: backendSQLite,
		DBPath:  filepath.Join(t.TempDir(), "studyloop.db"),
	}, discardLogger())
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &repository.SQLitePortfolioStore{}, store)

	ctx := context.Background()
	h := testutil.NewTestHistory(testutil.WithAnswers(0, "first", testutil.Substantive))
	require.NoError(t, store.Save(ctx, testutil.NewTestPortfolio(h)))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	got, err := loaded.Get(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}
