package maintenance

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/loader"
)

const (
	KeywordSkip = "skip"
	KeywordExit = "exit"
)

var ErrLanguageNotFound = errors.New("language not found in translations directory")

// Prompter asks a question and returns the trimmed answer.
type Prompter interface {
	Prompt(question string) (string, error)
}

// LinePrompter reads one answer per line. End of input answers "exit".
type LinePrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{scanner: bufio.NewScanner(in), out: out}
}

func (p *LinePrompter) Prompt(question string) (string, error) {
	fmt.Fprintf(p.out, "%s ", question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return KeywordExit, nil
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// LegacyTranslation is a translation directory whose metadata still has the
// abbreviation/uid/info shape.
type LegacyTranslation struct {
	Language     string
	LanguageName string
	Directory    string
	Path         string
	Metadata     loader.TranslationMetadata
}

type translationMetadata struct {
	DisplayName     string `json:"displayName"`
	AlternativeName string `json:"alternativeName"`
	Abbreviation    string `json:"abbreviation"`
	Description     string `json:"description"`
}

type MigrateOptions struct {
	// Language restricts the run to one language directory.
	Language string
}

type MigrateResult struct {
	Found   int
	Updated []string
	Skipped []string
	Renamed []string
	Stopped bool
}

// FindLegacyTranslations lists the translations still using legacy metadata,
// sorted by language and directory name.
func FindLegacyTranslations(root, language string) ([]LegacyTranslation, error) {
	languages, err := listDirs(root)
	if err != nil {
		return nil, err
	}
	if language != "" {
		found := false
		for _, l := range languages {
			if l == language {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrLanguageNotFound, language)
		}
		languages = []string{language}
	}

	var tasks []LegacyTranslation
	for _, lang := range languages {
		langPath := filepath.Join(root, lang)

		var langMeta loader.LanguageMetadata
		if err := readJSON(filepath.Join(langPath, loader.MetadataFile), &langMeta); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}

		translations, err := listDirs(langPath)
		if err != nil {
			return nil, err
		}
		for _, dir := range translations {
			fullPath := filepath.Join(langPath, dir)
			data, err := os.ReadFile(filepath.Join(fullPath, loader.MetadataFile))
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				return nil, err
			}

			var fields map[string]json.RawMessage
			if err := json.Unmarshal(data, &fields); err != nil {
				return nil, fmt.Errorf("parse %s: %w", fullPath, err)
			}
			if !isLegacyShape(fields) {
				continue
			}

			var meta loader.TranslationMetadata
			if err := json.Unmarshal(data, &meta); err != nil {
				return nil, fmt.Errorf("parse %s: %w", fullPath, err)
			}
			tasks = append(tasks, LegacyTranslation{
				Language:     lang,
				LanguageName: langMeta.DisplayName,
				Directory:    dir,
				Path:         fullPath,
				Metadata:     meta,
			})
		}
	}
	return tasks, nil
}

func isLegacyShape(fields map[string]json.RawMessage) bool {
	_, hasAbbreviation := fields["abbreviation"]
	_, hasUID := fields["uid"]
	_, hasInfo := fields["info"]
	_, hasDisplayName := fields["displayName"]
	return hasAbbreviation && hasUID && hasInfo && !hasDisplayName
}

// ResearchLink returns a web search for details about a translation.
func ResearchLink(abbreviation, languageName string) string {
	q := url.Values{"q": {fmt.Sprintf("%s bible translation %s", abbreviation, languageName)}}
	return "https://www.google.com/search?" + q.Encode()
}

// MigrateTranslations walks every legacy translation, asks for the new
// metadata fields and rewrites metadata.json. When the abbreviation changes
// and no sibling directory has that name yet, the directory is renamed too.
func MigrateTranslations(root string, opts MigrateOptions, prompter Prompter, out io.Writer, logger *zap.Logger) (*MigrateResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tasks, err := FindLegacyTranslations(root, opts.Language)
	if err != nil {
		return nil, err
	}

	result := &MigrateResult{Found: len(tasks)}
	fmt.Fprintf(out, "Found %d translations to process.\n\n", len(tasks))

	for i, task := range tasks {
		current := task.Metadata.Abbreviation

		fmt.Fprintf(out, "--- [%d/%d] Processing: %s / %s ---\n", i+1, len(tasks), task.LanguageName, task.Directory)
		fmt.Fprintf(out, "Research Link: %s\n\n", ResearchLink(current, task.LanguageName))
		fmt.Fprintf(out, "Enter %q to skip this translation, or %q to stop.\n", KeywordSkip, KeywordExit)

		displayName, err := prompter.Prompt(fmt.Sprintf("Display Name (Current: %s):", current))
		if err != nil {
			return result, err
		}
		if displayName == KeywordExit {
			result.Stopped = true
			break
		}
		if displayName == KeywordSkip {
			fmt.Fprintln(out, "Skipping...")
			fmt.Fprintln(out)
			result.Skipped = append(result.Skipped, task.Path)
			continue
		}

		alternativeName, err := prompter.Prompt("Alternative Name:")
		if err != nil {
			return result, err
		}
		abbreviation, err := prompter.Prompt(fmt.Sprintf("Abbreviation (Default: %s):", current))
		if err != nil {
			return result, err
		}
		if abbreviation == "" {
			abbreviation = current
		}
		description, err := prompter.Prompt("Description:")
		if err != nil {
			return result, err
		}

		meta := translationMetadata{
			DisplayName:     displayName,
			AlternativeName: alternativeName,
			Abbreviation:    abbreviation,
			Description:     description,
		}
		if err := writeJSON(filepath.Join(task.Path, loader.MetadataFile), meta); err != nil {
			return result, fmt.Errorf("write metadata for %s: %w", task.Path, err)
		}
		result.Updated = append(result.Updated, task.Path)
		logger.Info("Migrated translation metadata",
			zap.String("language", task.Language),
			zap.String("translation", task.Directory),
			zap.String("abbreviation", abbreviation))

		if abbreviation != "" && abbreviation != task.Directory {
			target := filepath.Join(root, task.Language, abbreviation)
			if _, err := os.Stat(target); err == nil {
				fmt.Fprintf(out, "Error: Cannot rename to %s, directory already exists.\n", abbreviation)
			} else if err := os.Rename(task.Path, target); err != nil {
				return result, fmt.Errorf("rename %s: %w", task.Path, err)
			} else {
				result.Renamed = append(result.Renamed, target)
				fmt.Fprintf(out, "Renamed directory to: %s\n", abbreviation)
			}
		}

		fmt.Fprintln(out, "Updated metadata successfully.")
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Finished processing all translations.")
	return result, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
