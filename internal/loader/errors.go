package loader

import (
	"errors"
	"fmt"
)

var (
	ErrMissingMetadata   = errors.New("missing metadata")
	ErrMalformedMetadata = errors.New("malformed metadata")
	ErrMissingText       = errors.New("missing verse text")
	ErrNotDirectory      = errors.New("corpus root is not a directory")
)

// Level names the tree level a load error happened at.
type Level string

const (
	LevelCatalog     Level = "catalog"
	LevelLanguage    Level = "language"
	LevelTranslation Level = "translation"
	LevelBook        Level = "book"
	LevelChapter     Level = "chapter"
)

// LoadError reports the corpus path whose subtree could not be loaded.
// Any LoadError aborts the whole load.
type LoadError struct {
	Level Level
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s %q: %v", e.Level, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// wrap attaches level and path to err unless a deeper level already did.
func wrap(level Level, path string, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return err
	}
	return &LoadError{Level: level, Path: path, Err: err}
}
