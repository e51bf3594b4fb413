// Package storage persists the portfolio as a JSON snapshot file.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/studyloop/internal/domain"
	"github.com/moby/sys/atomicwriter"
)

// JSONFileStore loads and saves the whole portfolio as one JSON document.
// It is meant for a single writer; Save replaces the file atomically.
type JSONFileStore struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// NewJSONFileStore creates a store for the snapshot at path.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{
		path:   path,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
}

// WithLogger reports tolerated load problems to logger.
func (s *JSONFileStore) WithLogger(logger *slog.Logger) *JSONFileStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Load reads the snapshot. A missing file or malformed content yields an
// empty portfolio; only genuine read failures are returned as errors.
func (s *JSONFileStore) Load(ctx context.Context) (*domain.Portfolio, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewPortfolio(), nil
		}
		return nil, fmt.Errorf("reading portfolio snapshot: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.WarnContext(ctx, "portfolio_snapshot_malformed", "path", s.path, "error", err.Error())
		return domain.NewPortfolio(), nil
	}
	top, ok := raw.(map[string]any)
	if !ok {
		s.logger.WarnContext(ctx, "portfolio_snapshot_malformed", "path", s.path, "error", "top level is not an object")
		return domain.NewPortfolio(), nil
	}
	return decodePortfolio(top, s.now().UTC()), nil
}

// Save writes the full portfolio, creating parent directories as needed.
func (s *JSONFileStore) Save(_ context.Context, p *domain.Portfolio) error {
	data, err := json.MarshalIndent(encodePortfolio(p), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding portfolio snapshot: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
	}
	if err := atomicwriter.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing portfolio snapshot: %w", err)
	}
	return nil
}
