package exporters

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/catalog"
	"github.com/mrlokans/openbible/internal/database"
	"github.com/mrlokans/openbible/internal/entities"
)

// SQLiteExporter replaces the catalog tables of a database with the loaded
// catalog and records its fingerprint.
type SQLiteExporter struct {
	db         *database.Database
	apiVersion string
	logger     *zap.Logger
	now        func() time.Time
}

func NewSQLiteExporter(db *database.Database, apiVersion string, logger *zap.Logger) *SQLiteExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLiteExporter{
		db:         db,
		apiVersion: apiVersion,
		logger:     logger,
		now:        time.Now,
	}
}

func (exporter *SQLiteExporter) Export(ctx context.Context, cat *catalog.Catalog) (ExportResult, error) {
	started := exporter.now()

	if err := exporter.db.ReplaceCatalog(ctx, cat); err != nil {
		return ExportResult{}, fmt.Errorf("failed to export catalog: %w", err)
	}

	settings := map[string]string{
		entities.SettingKeyCatalogFingerprint: cat.Fingerprint(),
		entities.SettingKeyExportedAt:         started.UTC().Format(time.RFC3339),
		entities.SettingKeyAPIVersion:         exporter.apiVersion,
	}
	for key, value := range settings {
		if err := exporter.db.SetSetting(key, value); err != nil {
			return ExportResult{}, fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	stats, err := exporter.db.Stats()
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to count exported rows: %w", err)
	}

	result := ExportResult{
		Translations: stats.Translations,
		Books:        stats.Books,
		Chapters:     stats.Chapters,
		Verses:       stats.Verses,
	}

	exporter.logger.Info("SQLite export completed",
		zap.Int("translations", result.Translations),
		zap.Int("books", result.Books),
		zap.Int("verses", result.Verses),
		zap.Duration("elapsed", time.Since(started)))

	return result, nil
}

var _ CatalogExporter = (*SQLiteExporter)(nil)
