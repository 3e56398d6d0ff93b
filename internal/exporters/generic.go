package exporters

import (
	"context"

	"github.com/mrlokans/openbible/internal/catalog"
)

type CatalogExporter interface {
	Export(ctx context.Context, cat *catalog.Catalog) (ExportResult, error)
}

type ExportResult struct {
	Translations int `json:"translations"`
	Books        int `json:"books"`
	Chapters     int `json:"chapters"`
	Verses       int `json:"verses"`
	FilesWritten int `json:"files_written,omitempty"`
}
