// Package loader builds a catalog from a corpus directory tree:
//
//	<root>/<language>/metadata.json
//	<root>/<language>/<translation>/metadata.json
//	<root>/<language>/<translation>/<book>/metadata.json
//	<root>/<language>/<translation>/<book>/<chapter>/metadata.json
//	<root>/<language>/<translation>/<book>/<chapter>/text.txt
//
// Every level loads its children concurrently. Any missing or malformed
// node fails the whole load with a *LoadError naming the path.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/mrlokans/openbible/internal/catalog"
)

// DefaultMaxOpenFiles bounds concurrent reads when no option overrides it.
const DefaultMaxOpenFiles = 64

type Loader struct {
	fsys   fs.FS
	logger *zap.Logger
	reads  *semaphore.Weighted
}

type Option func(*Loader)

// WithLogger sets the logger used for progress and summary messages.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMaxOpenFiles caps the number of directory listings and file reads in flight.
func WithMaxOpenFiles(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.reads = semaphore.NewWeighted(int64(n))
		}
	}
}

func New(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{
		fsys:   fsys,
		logger: zap.NewNop(),
		reads:  semaphore.NewWeighted(DefaultMaxOpenFiles),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadDir loads the corpus rooted at the given directory on disk.
func LoadDir(ctx context.Context, root string, opts ...Option) (*catalog.Catalog, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, wrap(LevelCatalog, root, err)
	}
	if !info.IsDir() {
		return nil, wrap(LevelCatalog, root, ErrNotDirectory)
	}
	return New(os.DirFS(root), opts...).Load(ctx)
}

// Load reads the whole tree and returns the finished catalog.
func (l *Loader) Load(ctx context.Context) (*catalog.Catalog, error) {
	start := time.Now()
	l.logger.Info("Loading translations...")

	languages, err := loadChildren(ctx, l, ".", l.loadLanguage)
	if err != nil {
		return nil, wrap(LevelCatalog, ".", err)
	}

	cat, err := catalog.New(languages)
	if err != nil {
		return nil, wrap(LevelCatalog, ".", err)
	}

	stats := cat.Stats()
	l.logger.Info(fmt.Sprintf("Finished loading %d translation(s) in %d language(s)!", stats.Translations, stats.Languages),
		zap.Int("books", stats.Books),
		zap.Int("chapters", stats.Chapters),
		zap.Int("verses", stats.Verses),
		zap.Duration("elapsed", time.Since(start)),
	)
	return cat, nil
}

func (l *Loader) loadLanguage(ctx context.Context, dir string) (*catalog.Language, error) {
	meta, err := readMetadata[LanguageMetadata](ctx, l, LevelLanguage, dir)
	if err != nil {
		return nil, err
	}
	if meta.Abbreviation == "" {
		return nil, wrap(LevelLanguage, dir, fmt.Errorf("%w: abbreviation is required", ErrMalformedMetadata))
	}

	translations, err := loadChildren(ctx, l, dir, l.loadTranslation)
	if err != nil {
		return nil, wrap(LevelLanguage, dir, err)
	}

	language, err := catalog.NewLanguage(meta.DisplayName, meta.Abbreviation, translations)
	if err != nil {
		return nil, wrap(LevelLanguage, dir, err)
	}
	l.logger.Debug("Loaded language",
		zap.String("language", meta.Abbreviation),
		zap.Int("translations", len(translations)))
	return language, nil
}

func (l *Loader) loadTranslation(ctx context.Context, dir string) (*catalog.Translation, error) {
	meta, err := readMetadata[TranslationMetadata](ctx, l, LevelTranslation, dir)
	if err != nil {
		return nil, err
	}

	books, err := loadChildren(ctx, l, dir, l.loadBook)
	if err != nil {
		return nil, wrap(LevelTranslation, dir, err)
	}

	translation, err := catalog.NewTranslation(meta.info(path.Base(dir)), books)
	if err != nil {
		return nil, wrap(LevelTranslation, dir, err)
	}
	return translation, nil
}

func (l *Loader) loadBook(ctx context.Context, dir string) (*catalog.Book, error) {
	meta, err := readMetadata[BookMetadata](ctx, l, LevelBook, dir)
	if err != nil {
		return nil, err
	}
	if meta.Abbreviation == "" {
		return nil, wrap(LevelBook, dir, fmt.Errorf("%w: abbreviation is required", ErrMalformedMetadata))
	}

	chapters, err := loadChildren(ctx, l, dir, l.loadChapter)
	if err != nil {
		return nil, wrap(LevelBook, dir, err)
	}

	book, err := catalog.NewBook(meta.Name, meta.Abbreviation, chapters)
	if err != nil {
		return nil, wrap(LevelBook, dir, err)
	}
	return book, nil
}

func (l *Loader) loadChapter(ctx context.Context, dir string) (*catalog.Chapter, error) {
	meta, err := readMetadata[ChapterMetadata](ctx, l, LevelChapter, dir)
	if err != nil {
		return nil, err
	}

	text, err := l.readFile(ctx, path.Join(dir, TextFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrMissingText
		}
		return nil, wrap(LevelChapter, dir, err)
	}

	chapter, err := catalog.NewChapter(meta.Name, meta.Number, ParseVerses(string(text)))
	if err != nil {
		return nil, wrap(LevelChapter, dir, err)
	}
	return chapter, nil
}

// loadChildren runs load for every subdirectory of dir concurrently and
// returns the results in directory order. The first failure cancels the rest.
func loadChildren[T any](ctx context.Context, l *Loader, dir string, load func(context.Context, string) (T, error)) ([]T, error) {
	dirs, err := l.subdirs(ctx, dir)
	if err != nil {
		return nil, err
	}

	results := make([]T, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	for i, child := range dirs {
		i, child := i, child
		g.Go(func() error {
			result, err := load(gctx, child)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// subdirs lists the child directories of dir. Plain files and hidden entries
// are skipped; symlinks are followed.
func (l *Loader) subdirs(ctx context.Context, dir string) ([]string, error) {
	if err := l.reads.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(l.fsys, dir)
	l.reads.Release(1)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		child := path.Join(dir, entry.Name())
		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := fs.Stat(l.fsys, child)
			isDir = err == nil && info.IsDir()
		}
		if isDir {
			dirs = append(dirs, child)
		}
	}
	return dirs, nil
}

func (l *Loader) readFile(ctx context.Context, name string) ([]byte, error) {
	if err := l.reads.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer l.reads.Release(1)
	return fs.ReadFile(l.fsys, name)
}

func readMetadata[T any](ctx context.Context, l *Loader, level Level, dir string) (T, error) {
	var meta T
	data, err := l.readFile(ctx, path.Join(dir, MetadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrMissingMetadata
		}
		return meta, wrap(level, dir, err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, wrap(level, dir, fmt.Errorf("%w: %v", ErrMalformedMetadata, err))
	}
	return meta, nil
}
