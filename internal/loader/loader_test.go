package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mrlokans/openbible/internal/catalog"
	"github.com/mrlokans/openbible/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func loadFiles(t *testing.T, files testutil.Files) (*catalog.Catalog, error) {
	t.Helper()
	return New(files.MapFS()).Load(context.Background())
}

func requireLoadError(t *testing.T, err error, level Level, path string) *LoadError {
	t.Helper()
	require.Error(t, err)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr), "expected *LoadError, got %T: %v", err, err)
	assert.Equal(t, level, loadErr.Level)
	assert.Equal(t, path, loadErr.Path)
	return loadErr
}

func TestLoad_SampleCorpus(t *testing.T) {
	cat, err := loadFiles(t, testutil.SampleCorpus())
	require.NoError(t, err)

	t.Run("languages keyed by abbreviation", func(t *testing.T) {
		en, ok := cat.Language("en")
		require.True(t, ok)
		assert.Equal(t, "English", en.DisplayName())

		de, ok := cat.Language("de")
		require.True(t, ok)
		assert.Equal(t, "Deutsch", de.DisplayName())

		_, ok = cat.Language("english")
		assert.False(t, ok, "directory names are not keys")
	})

	t.Run("legacy translation keyed by uid", func(t *testing.T) {
		web, err := cat.ResolveTranslation("en", "eng-WEB")
		require.NoError(t, err)
		assert.Equal(t, "WEB", web.Abbreviation())
		assert.Equal(t, "WEB", web.DisplayName())
		assert.Equal(t, "World English Bible", web.Description())

		_, err = cat.ResolveTranslation("en", "WEB")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("current translation keyed by abbreviation", func(t *testing.T) {
		kjv, err := cat.ResolveTranslation("en", "KJV")
		require.NoError(t, err)
		assert.Equal(t, "King James Version", kjv.DisplayName())
		assert.Equal(t, "Authorized Version", kjv.AlternativeName())
		assert.Equal(t, "English translation of 1611", kjv.Description())
	})

	t.Run("chapters and verses", func(t *testing.T) {
		gen, err := cat.ResolveBook("en", "eng-WEB", "GEN")
		require.NoError(t, err)
		assert.Equal(t, "Genesis", gen.Name())
		assert.Equal(t, testutil.GenesisChapters, gen.ChapterCount())

		ch, err := cat.ResolveChapter("en", "eng-WEB", "GEN", 1)
		require.NoError(t, err)
		assert.Equal(t, testutil.Genesis1Verses, ch.VerseCount(), "blank lines are not verses")

		verse, err := cat.ResolveVerse("en", "eng-WEB", "GEN", 1, 1)
		require.NoError(t, err)
		assert.Equal(t, testutil.Genesis1v1, verse.Text)

		verse, err = cat.ResolveVerse("en", "eng-WEB", "GEN", 1, 11)
		require.NoError(t, err)
		assert.Equal(t, "Genesis 1:11", verse.Text, "numbering skips blank lines")
	})

	t.Run("stats", func(t *testing.T) {
		stats := cat.Stats()
		assert.Equal(t, 2, stats.Languages)
		assert.Equal(t, 3, stats.Translations)
		assert.Equal(t, 4, stats.Books)
		assert.Equal(t, 50+1+3+1, stats.Chapters)
		assert.Equal(t, 31+49*3+22+3*2+1, stats.Verses)
	})
}

func TestLoad_IsDeterministic(t *testing.T) {
	first, err := loadFiles(t, testutil.SampleCorpus())
	require.NoError(t, err)
	second, err := loadFiles(t, testutil.SampleCorpus())
	require.NoError(t, err)
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

func TestLoad_SkipsHiddenAndPlainEntries(t *testing.T) {
	files := testutil.SampleCorpus()
	// A hidden directory without metadata would fail the load if visited.
	files[".git/HEAD"] = "ref: refs/heads/main"
	files["english/.cache/data"] = "x"
	files["english/WEB/GEN/.tmp/scratch"] = "x"
	files["english/WEB/GEN/1/notes.md"] = "not a verse"

	cat, err := loadFiles(t, files)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Stats().Languages)
}

func TestLoad_CRLFText(t *testing.T) {
	files := testutil.Files{}
	files.JSON("la/metadata.json", map[string]any{"displayName": "Latina", "abbreviation": "la"})
	files.JSON("la/VUL/metadata.json", map[string]any{"displayName": "Vulgata", "abbreviation": "VUL"})
	files.Book("la/VUL/GEN", "Genesis", "GEN")
	files.JSON("la/VUL/GEN/1/metadata.json", map[string]any{"name": "Genesis 1", "number": 1})
	files["la/VUL/GEN/1/text.txt"] = "In principio creavit Deus caelum et terram\r\n\r\nterra autem erat inanis\r\n"

	cat, err := loadFiles(t, files)
	require.NoError(t, err)

	ch, err := cat.ResolveChapter("la", "VUL", "GEN", 1)
	require.NoError(t, err)
	require.Equal(t, 2, ch.VerseCount())
	text, _ := ch.Verse(2)
	assert.Equal(t, "terra autem erat inanis", text)
}

func TestLoad_ChaptersOrderedByMetadataNumber(t *testing.T) {
	files := testutil.Files{}
	files.JSON("en/metadata.json", map[string]any{"displayName": "English", "abbreviation": "en"})
	files.JSON("en/T/metadata.json", map[string]any{"displayName": "Test", "abbreviation": "T"})
	files.Book("en/T/PSA", "Psalms", "PSA")
	// Directory names sort lexically (10 before 2); numbering comes from metadata.
	for n := 1; n <= 10; n++ {
		dir := "en/T/PSA/c" + string(rune('a'+10-n))
		files.Chapter(dir, "Psalm", n, []string{"only verse"})
	}

	cat, err := loadFiles(t, files)
	require.NoError(t, err)
	book, err := cat.ResolveBook("en", "T", "PSA")
	require.NoError(t, err)
	require.Equal(t, 10, book.ChapterCount())
	for i, ch := range book.Chapters() {
		assert.Equal(t, i+1, ch.Number())
	}
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(testutil.Files)
		level  Level
		path   string
		target error
	}{
		{
			name:   "missing language metadata",
			mutate: func(f testutil.Files) { delete(f, "german/metadata.json") },
			level:  LevelLanguage,
			path:   "german",
			target: ErrMissingMetadata,
		},
		{
			name:   "malformed language metadata",
			mutate: func(f testutil.Files) { f["german/metadata.json"] = "{not json" },
			level:  LevelLanguage,
			path:   "german",
			target: ErrMalformedMetadata,
		},
		{
			name: "language without abbreviation",
			mutate: func(f testutil.Files) {
				f.JSON("german/metadata.json", map[string]any{"displayName": "Deutsch"})
			},
			level:  LevelLanguage,
			path:   "german",
			target: ErrMalformedMetadata,
		},
		{
			name:   "missing translation metadata",
			mutate: func(f testutil.Files) { delete(f, "english/KJV/metadata.json") },
			level:  LevelTranslation,
			path:   "english/KJV",
			target: ErrMissingMetadata,
		},
		{
			name:   "missing book metadata",
			mutate: func(f testutil.Files) { delete(f, "english/WEB/EXO/metadata.json") },
			level:  LevelBook,
			path:   "english/WEB/EXO",
			target: ErrMissingMetadata,
		},
		{
			name:   "malformed chapter metadata",
			mutate: func(f testutil.Files) { f["english/WEB/GEN/7/metadata.json"] = `{"number": "seven"}` },
			level:  LevelChapter,
			path:   "english/WEB/GEN/7",
			target: ErrMalformedMetadata,
		},
		{
			name:   "missing chapter text",
			mutate: func(f testutil.Files) { delete(f, "english/KJV/JHN/2/text.txt") },
			level:  LevelChapter,
			path:   "english/KJV/JHN/2",
			target: ErrMissingText,
		},
		{
			name: "chapter number zero",
			mutate: func(f testutil.Files) {
				f.JSON("german/LUT/GEN/1/metadata.json", map[string]any{"name": "1. Mose 1", "number": 0})
			},
			level:  LevelChapter,
			path:   "german/LUT/GEN/1",
			target: catalog.ErrInvalidNumber,
		},
		{
			name: "chapter gap",
			mutate: func(f testutil.Files) {
				delete(f, "english/KJV/JHN/2/metadata.json")
				delete(f, "english/KJV/JHN/2/text.txt")
			},
			level:  LevelBook,
			path:   "english/KJV/JHN",
			target: catalog.ErrChapterGap,
		},
		{
			name: "duplicate chapter number",
			mutate: func(f testutil.Files) {
				f.Chapter("english/KJV/JHN/3b", "John 3", 3, []string{"again"})
			},
			level:  LevelBook,
			path:   "english/KJV/JHN",
			target: catalog.ErrDuplicateKey,
		},
		{
			name: "duplicate book abbreviation",
			mutate: func(f testutil.Files) {
				f.Book("english/WEB/EXO", "Exodus", "GEN")
			},
			level:  LevelTranslation,
			path:   "english/WEB",
			target: catalog.ErrDuplicateKey,
		},
		{
			name: "duplicate translation key",
			mutate: func(f testutil.Files) {
				f.JSON("english/KJV/metadata.json", map[string]any{"displayName": "Other", "abbreviation": "eng-WEB"})
			},
			level:  LevelLanguage,
			path:   "english",
			target: catalog.ErrDuplicateKey,
		},
		{
			name: "duplicate language abbreviation",
			mutate: func(f testutil.Files) {
				f.JSON("german/metadata.json", map[string]any{"displayName": "Deutsch", "abbreviation": "en"})
			},
			level:  LevelCatalog,
			path:   ".",
			target: catalog.ErrDuplicateKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := testutil.SampleCorpus()
			tt.mutate(files)

			cat, err := loadFiles(t, files)
			assert.Nil(t, cat)
			requireLoadError(t, err, tt.level, tt.path)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cat, err := New(testutil.SampleCorpus().MapFS()).Load(ctx)
	assert.Nil(t, cat)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_SmallReadLimit(t *testing.T) {
	cat, err := New(testutil.SampleCorpus().MapFS(), WithMaxOpenFiles(1)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Stats().Translations)
}

func TestLoad_LogsSummary(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	_, err := New(testutil.SampleCorpus().MapFS(), WithLogger(zap.New(core))).Load(context.Background())
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Loading translations...", entries[0].Message)
	assert.Equal(t, "Finished loading 3 translation(s) in 2 language(s)!", entries[1].Message)
	assert.EqualValues(t, 4, entries[1].ContextMap()["books"])
}

func TestLoad_EmptyCorpus(t *testing.T) {
	cat, err := New(fstest.MapFS{}).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cat.Languages())
}

func TestLoadDir(t *testing.T) {
	t.Run("loads corpus from disk", func(t *testing.T) {
		root := testutil.WriteSampleCorpus(t)

		cat, err := LoadDir(context.Background(), root)
		require.NoError(t, err)
		verse, err := cat.ResolveVerse("en", "eng-WEB", "GEN", 1, 1)
		require.NoError(t, err)
		assert.Equal(t, testutil.Genesis1v1, verse.Text)
	})

	t.Run("follows symlinked translation", func(t *testing.T) {
		root := testutil.WriteSampleCorpus(t)
		shared := t.TempDir()
		require.NoError(t, os.Rename(filepath.Join(root, "german", "LUT"), filepath.Join(shared, "LUT")))
		if err := os.Symlink(filepath.Join(shared, "LUT"), filepath.Join(root, "german", "LUT")); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}

		cat, err := LoadDir(context.Background(), root)
		require.NoError(t, err)
		_, err = cat.ResolveBook("de", "LUT", "GEN")
		assert.NoError(t, err)
	})

	t.Run("missing root", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "nope")
		_, err := LoadDir(context.Background(), root)
		requireLoadError(t, err, LevelCatalog, root)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("root is a file", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))
		_, err := LoadDir(context.Background(), root)
		requireLoadError(t, err, LevelCatalog, root)
		assert.ErrorIs(t, err, ErrNotDirectory)
	})
}

func TestParseVerses(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "only blanks", text: "\n  \n\t\n", want: []string{}},
		{name: "trailing newline", text: "a\nb\n", want: []string{"a", "b"}},
		{name: "no trailing newline", text: "a\nb", want: []string{"a", "b"}},
		{name: "blank lines between", text: "a\n\n \nb", want: []string{"a", "b"}},
		{name: "crlf", text: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "keeps inner whitespace", text: "  indented  \n", want: []string{"  indented  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseVerses(tt.text))
		})
	}
}

func TestTranslationMetadata(t *testing.T) {
	t.Run("legacy", func(t *testing.T) {
		meta := TranslationMetadata{Abbreviation: "WEB", UID: "eng-WEB", Info: "World English Bible"}
		assert.True(t, meta.IsLegacy())
		info := meta.info("web")
		assert.Equal(t, "eng-WEB", info.ID)
		assert.Equal(t, "WEB", info.DisplayName)
		assert.Equal(t, "World English Bible", info.Description)
	})

	t.Run("current", func(t *testing.T) {
		meta := TranslationMetadata{DisplayName: "King James Version", Abbreviation: "KJV"}
		assert.False(t, meta.IsLegacy())
		assert.Equal(t, "KJV", meta.info("kjv").ID)
	})

	t.Run("falls back to directory name", func(t *testing.T) {
		assert.Equal(t, "kjv", TranslationMetadata{}.info("kjv").ID)
	})
}
