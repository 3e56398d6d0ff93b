// Package maintenance holds one-off tools that rewrite a translations corpus
// on disk. The server never calls them; they run from the command line.
package maintenance

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/loader"
	"github.com/mrlokans/openbible/internal/versification"
)

type RenameBooksOptions struct {
	// Skip lists "language/translation" directory pairs to leave untouched.
	Skip   []string
	DryRun bool
}

type RenameBooksResult struct {
	Renamed       []string
	MetadataFixed []string
	Conflicts     []string
	Unmapped      []string
}

// RenameBooks renames book directories named after the English book name
// (e.g. "I Samuel") to their USFM code ("1SA") and updates the abbreviation
// in the book metadata. The metadata is written before the directory moves.
func RenameBooks(root string, opts RenameBooksOptions, logger *zap.Logger) (*RenameBooksResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	skip := make(map[string]bool, len(opts.Skip))
	for _, s := range opts.Skip {
		skip[filepath.ToSlash(strings.Trim(s, "/"))] = true
	}

	result := &RenameBooksResult{}

	languages, err := listDirs(root)
	if err != nil {
		return nil, err
	}
	for _, language := range languages {
		translations, err := listDirs(filepath.Join(root, language))
		if err != nil {
			return nil, err
		}
		for _, translation := range translations {
			if skip[language+"/"+translation] {
				logger.Info("Skipping translation", zap.String("language", language), zap.String("translation", translation))
				continue
			}
			translationPath := filepath.Join(root, language, translation)
			if err := renameBooksIn(translationPath, opts.DryRun, result, logger); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("Book rename finished",
		zap.Int("renamed", len(result.Renamed)),
		zap.Int("metadata_fixed", len(result.MetadataFixed)),
		zap.Int("conflicts", len(result.Conflicts)),
		zap.Bool("dry_run", opts.DryRun))

	return result, nil
}

func renameBooksIn(translationPath string, dryRun bool, result *RenameBooksResult, logger *zap.Logger) error {
	books, err := listDirs(translationPath)
	if err != nil {
		return err
	}

	for _, book := range books {
		bookPath := filepath.Join(translationPath, book)
		metadataPath := filepath.Join(bookPath, loader.MetadataFile)

		if versification.IsCode(book) {
			changed, err := ensureBookAbbreviation(metadataPath, book, dryRun)
			if err != nil {
				logger.Warn("Failed to check book metadata", zap.String("path", metadataPath), zap.Error(err))
				continue
			}
			if changed {
				result.MetadataFixed = append(result.MetadataFixed, bookPath)
				logger.Info("Updated metadata abbreviation", zap.String("path", bookPath), zap.String("abbreviation", book))
			}
			continue
		}

		code, ok := versification.CodeForName(book)
		if !ok {
			result.Unmapped = append(result.Unmapped, bookPath)
			logger.Debug("No USFM code for book directory", zap.String("path", bookPath))
			continue
		}

		target := filepath.Join(translationPath, code)
		if _, err := os.Stat(target); err == nil {
			result.Conflicts = append(result.Conflicts, bookPath)
			logger.Warn("Destination already exists, skipping", zap.String("path", bookPath), zap.String("destination", target))
			continue
		}

		if _, err := ensureBookAbbreviation(metadataPath, code, dryRun); err != nil {
			logger.Error("Failed to update book metadata", zap.String("path", metadataPath), zap.Error(err))
		}

		logger.Info("Renaming book directory", zap.String("from", bookPath), zap.String("to", code))
		if !dryRun {
			if err := os.Rename(bookPath, target); err != nil {
				return fmt.Errorf("rename %s: %w", bookPath, err)
			}
		}
		result.Renamed = append(result.Renamed, bookPath)
	}
	return nil
}

// ensureBookAbbreviation sets the abbreviation field of a metadata file,
// keeping every other field. It reports whether the file needed a change.
func ensureBookAbbreviation(path, abbreviation string, dryRun bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	var metadata map[string]any
	if err := json.Unmarshal(data, &metadata); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	if current, _ := metadata["abbreviation"].(string); current == abbreviation {
		return false, nil
	}
	if dryRun {
		return true, nil
	}

	metadata["abbreviation"] = abbreviation
	return true, writeJSON(path, metadata)
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// listDirs returns the visible subdirectories of dir in sorted order.
func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("directory does not exist: %s", dir)
		}
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, entry.Name())
	}
	sort.Strings(dirs)
	return dirs, nil
}
