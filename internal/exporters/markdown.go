package exporters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/catalog"
	"github.com/mrlokans/openbible/internal/utils"
	"github.com/mrlokans/openbible/internal/versification"
)

// MarkdownExporter writes one Markdown file per book to
// <OutputDir>/<language>/<translation>/NN Book name.md. NN is the canonical
// book position for USFM codes; other books follow after the canon in
// abbreviation order.
type MarkdownExporter struct {
	OutputDir string
	logger    *zap.Logger
}

func NewMarkdownExporter(outputDir string, logger *zap.Logger) *MarkdownExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkdownExporter{
		OutputDir: outputDir,
		logger:    logger,
	}
}

func quoted(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// GenerateMarkdown renders a book with YAML frontmatter, a heading per
// chapter and its verses as a numbered list.
func GenerateMarkdown(language *catalog.Language, translation *catalog.Translation, book *catalog.Book) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "language: %s\n", language.Abbreviation())
	fmt.Fprintf(&builder, "translation: %s\n", quoted(translation.DisplayName()))
	fmt.Fprintf(&builder, "translation_id: %s\n", quoted(translation.ID()))
	fmt.Fprintf(&builder, "book: %s\n", quoted(book.Name()))
	fmt.Fprintf(&builder, "abbreviation: %s\n", book.Abbreviation())
	fmt.Fprintf(&builder, "chapters: %d\n", book.ChapterCount())
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# %s\n", book.Name())

	for _, chapter := range book.Chapters() {
		heading := chapter.Name()
		if heading == "" {
			heading = fmt.Sprintf("%s %d", book.Name(), chapter.Number())
		}
		fmt.Fprintf(&builder, "\n## %s\n\n", heading)
		for _, verse := range chapter.Verses() {
			fmt.Fprintf(&builder, "%d. %s\n", verse.Number, verse.Text)
		}
	}

	return builder.String()
}

// bookOrdinals numbers the books of a translation for file name prefixes.
func bookOrdinals(books []*catalog.Book) map[string]int {
	ordinals := make(map[string]int, len(books))
	next := len(versification.KJV())
	for _, book := range books {
		if position, ok := versification.Position(book.Abbreviation()); ok {
			ordinals[book.Abbreviation()] = position
			continue
		}
		next++
		ordinals[book.Abbreviation()] = next
	}
	return ordinals
}

func (exporter *MarkdownExporter) bookPath(language *catalog.Language, translation *catalog.Translation, position int, book *catalog.Book) string {
	dir := filepath.Join(
		exporter.OutputDir,
		utils.SanitizeFilename(language.Abbreviation(), "language"),
		utils.SanitizeFilename(translation.ID(), "translation"),
	)
	name := fmt.Sprintf("%02d %s.md", position, utils.SanitizeFilename(book.Name(), book.Abbreviation()))
	return filepath.Join(dir, name)
}

func (exporter *MarkdownExporter) Export(ctx context.Context, cat *catalog.Catalog) (ExportResult, error) {
	result := ExportResult{}

	if err := os.MkdirAll(exporter.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create export directory: %w", err)
	}

	for _, language := range cat.Languages() {
		for _, translation := range language.Translations() {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			books := translation.Books()
			ordinals := bookOrdinals(books)
			for _, book := range books {
				outputPath := exporter.bookPath(language, translation, ordinals[book.Abbreviation()], book)
				if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
					return result, fmt.Errorf("failed to create translation directory: %w", err)
				}
				if err := os.WriteFile(outputPath, []byte(GenerateMarkdown(language, translation, book)), 0o644); err != nil {
					return result, fmt.Errorf("failed to write %s: %w", outputPath, err)
				}

				exporter.logger.Debug("Exported book",
					zap.String("language", language.Abbreviation()),
					zap.String("translation", translation.ID()),
					zap.String("book", book.Abbreviation()),
					zap.String("path", outputPath))

				result.Books++
				result.FilesWritten++
				for _, chapter := range book.Chapters() {
					result.Chapters++
					result.Verses += chapter.VerseCount()
				}
			}
			result.Translations++
		}
	}

	exporter.logger.Info("Markdown export completed",
		zap.String("output_dir", exporter.OutputDir),
		zap.Int("translations", result.Translations),
		zap.Int("books", result.Books),
		zap.Int("verses", result.Verses))

	return result, nil
}

var _ CatalogExporter = (*MarkdownExporter)(nil)
