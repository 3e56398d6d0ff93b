package catalog

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedVerses(n int) []string {
	verses := make([]string, n)
	for i := range verses {
		verses[i] = fmt.Sprintf("verse %d", i+1)
	}
	return verses
}

// buildCatalog returns en/eng-WEB/GEN with 50 chapters; chapter 1 has 31 verses.
func buildCatalog(t *testing.T) *Catalog {
	t.Helper()

	chapters := make([]*Chapter, 0, 50)
	for number := 1; number <= 50; number++ {
		count := 5
		if number == 1 {
			count = 31
		}
		chapter, err := NewChapter(fmt.Sprintf("Genesis %d", number), number, numberedVerses(count))
		require.NoError(t, err)
		chapters = append(chapters, chapter)
	}
	genesis, err := NewBook("Genesis", "GEN", chapters)
	require.NoError(t, err)

	exodusChapter, err := NewChapter("Exodus 1", 1, numberedVerses(22))
	require.NoError(t, err)
	exodus, err := NewBook("Exodus", "EXO", []*Chapter{exodusChapter})
	require.NoError(t, err)

	web, err := NewTranslation(TranslationInfo{
		ID:           "eng-WEB",
		DisplayName:  "World English Bible",
		Abbreviation: "WEB",
	}, []*Book{genesis, exodus})
	require.NoError(t, err)

	english, err := NewLanguage("English", "en", []*Translation{web})
	require.NoError(t, err)

	cat, err := New([]*Language{english})
	require.NoError(t, err)
	return cat
}

func TestCatalog_Lookup(t *testing.T) {
	cat := buildCatalog(t)

	t.Run("returns verse text for every valid key tuple", func(t *testing.T) {
		language, ok := cat.Language("en")
		require.True(t, ok)
		translation, ok := language.Translation("eng-WEB")
		require.True(t, ok)
		book, ok := translation.Book("GEN")
		require.True(t, ok)
		chapter, ok := book.Chapter(1)
		require.True(t, ok)

		for number := 1; number <= chapter.VerseCount(); number++ {
			text, ok := chapter.Verse(number)
			require.True(t, ok)
			assert.Equal(t, fmt.Sprintf("verse %d", number), text)
		}
	})

	t.Run("unknown keys are not found at every level", func(t *testing.T) {
		_, ok := cat.Language("xx")
		assert.False(t, ok)

		language, _ := cat.Language("en")
		_, ok = language.Translation("eng-KJV")
		assert.False(t, ok)

		translation, _ := language.Translation("eng-WEB")
		_, ok = translation.Book("LEV")
		assert.False(t, ok)

		book, _ := translation.Book("GEN")
		_, ok = book.Chapter(51)
		assert.False(t, ok)

		chapter, _ := book.Chapter(1)
		_, ok = chapter.Verse(32)
		assert.False(t, ok)
	})

	t.Run("lookups are case sensitive", func(t *testing.T) {
		_, ok := cat.Language("EN")
		assert.False(t, ok)

		translation, err := cat.ResolveTranslation("en", "eng-WEB")
		require.NoError(t, err)
		_, ok = translation.Book("gen")
		assert.False(t, ok)
		_, ok = translation.Book("GEN")
		assert.True(t, ok)
	})

	t.Run("verse numbering starts at 1", func(t *testing.T) {
		chapter, err := cat.ResolveChapter("en", "eng-WEB", "GEN", 1)
		require.NoError(t, err)

		_, ok := chapter.Verse(0)
		assert.False(t, ok)
		_, ok = chapter.Verse(-1)
		assert.False(t, ok)
	})

	t.Run("counts match the mapping sizes", func(t *testing.T) {
		book, err := cat.ResolveBook("en", "eng-WEB", "GEN")
		require.NoError(t, err)
		assert.Equal(t, 50, book.ChapterCount())

		chapter, _ := book.Chapter(1)
		assert.Equal(t, 31, chapter.VerseCount())
	})
}

func TestChapter_VerseRange(t *testing.T) {
	chapter, err := NewChapter("Genesis 1", 1, numberedVerses(31))
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end int
		want       []int
	}{
		{name: "first two verses", start: 1, end: 2, want: []int{1, 2}},
		{name: "entirely past the end", start: 100, end: 110, want: []int{}},
		{name: "end past the last verse", start: 30, end: 35, want: []int{30, 31}},
		{name: "single verse", start: 5, end: 5, want: []int{5}},
		{name: "start after end", start: 10, end: 3, want: []int{}},
		{name: "start below one", start: 0, end: 2, want: []int{1, 2}},
		{name: "whole chapter", start: 1, end: 31, want: numbersUpTo(31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chapter.VerseRange(tt.start, tt.end)
			require.NotNil(t, got)

			numbers := make([]int, 0, len(got))
			for _, verse := range got {
				numbers = append(numbers, verse.Number)
				assert.Equal(t, fmt.Sprintf("verse %d", verse.Number), verse.Text)
			}
			if diff := cmp.Diff(tt.want, numbers); diff != "" {
				t.Errorf("VerseRange(%d, %d) mismatch (-want +got):\n%s", tt.start, tt.end, diff)
			}
		})
	}
}

func numbersUpTo(n int) []int {
	numbers := make([]int, n)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}

func TestNewChapter_CopiesVerses(t *testing.T) {
	verses := []string{"a", "b"}
	chapter, err := NewChapter("c", 1, verses)
	require.NoError(t, err)

	verses[0] = "changed"
	text, _ := chapter.Verse(1)
	assert.Equal(t, "a", text)
}

func TestConstructors_RejectInvalidInput(t *testing.T) {
	t.Run("chapter number below one", func(t *testing.T) {
		_, err := NewChapter("zero", 0, nil)
		assert.ErrorIs(t, err, ErrInvalidNumber)
	})

	t.Run("duplicate chapter", func(t *testing.T) {
		one, _ := NewChapter("one", 1, nil)
		again, _ := NewChapter("one again", 1, nil)
		_, err := NewBook("Book", "BK", []*Chapter{one, again})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("gap in chapter numbers", func(t *testing.T) {
		one, _ := NewChapter("one", 1, nil)
		three, _ := NewChapter("three", 3, nil)
		_, err := NewBook("Book", "BK", []*Chapter{one, three})
		assert.ErrorIs(t, err, ErrChapterGap)
	})

	t.Run("duplicate book", func(t *testing.T) {
		a, _ := NewBook("A", "GEN", nil)
		b, _ := NewBook("B", "GEN", nil)
		_, err := NewTranslation(TranslationInfo{ID: "t"}, []*Book{a, b})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("duplicate translation", func(t *testing.T) {
		a, _ := NewTranslation(TranslationInfo{ID: "eng-WEB"}, nil)
		b, _ := NewTranslation(TranslationInfo{ID: "eng-WEB"}, nil)
		_, err := NewLanguage("English", "en", []*Translation{a, b})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("duplicate language", func(t *testing.T) {
		a, _ := NewLanguage("English", "en", nil)
		b, _ := NewLanguage("Also English", "en", nil)
		_, err := New([]*Language{a, b})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("empty keys", func(t *testing.T) {
		_, err := NewLanguage("Nameless", "", nil)
		assert.ErrorIs(t, err, ErrEmptyKey)
		_, err = NewTranslation(TranslationInfo{}, nil)
		assert.ErrorIs(t, err, ErrEmptyKey)
		_, err = NewBook("Nameless", "", nil)
		assert.ErrorIs(t, err, ErrEmptyKey)
	})
}

func TestCatalog_Resolve(t *testing.T) {
	cat := buildCatalog(t)

	tests := []struct {
		name     string
		resolve  func() error
		wantKind Kind
		wantKey  string
	}{
		{"language", func() error { _, err := cat.ResolveLanguage("EN"); return err }, KindLanguage, "EN"},
		{"translation", func() error { _, err := cat.ResolveTranslation("en", "invalid"); return err }, KindTranslation, "invalid"},
		{"book", func() error { _, err := cat.ResolveBook("en", "eng-WEB", "gen"); return err }, KindBook, "gen"},
		{"chapter", func() error { _, err := cat.ResolveChapter("en", "eng-WEB", "GEN", 999); return err }, KindChapter, "999"},
		{"verse", func() error { _, err := cat.ResolveVerse("en", "eng-WEB", "GEN", 1, 0); return err }, KindVerse, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resolve()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotFound))

			var nf *NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, tt.wantKind, nf.Kind)
			assert.Equal(t, tt.wantKey, nf.Key)
		})
	}

	t.Run("formats the message like the API", func(t *testing.T) {
		_, err := cat.ResolveLanguage("invalid")
		assert.EqualError(t, err, "Language invalid not found.")
	})

	t.Run("resolves a verse", func(t *testing.T) {
		verse, err := cat.ResolveVerse("en", "eng-WEB", "GEN", 1, 31)
		require.NoError(t, err)
		assert.Equal(t, Verse{Number: 31, Text: "verse 31"}, verse)
	})
}

func TestCatalog_StatsAndOrdering(t *testing.T) {
	cat := buildCatalog(t)

	stats := cat.Stats()
	assert.Equal(t, 1, stats.Languages)
	assert.Equal(t, 1, stats.Translations)
	assert.Equal(t, 2, stats.Books)
	assert.Equal(t, 51, stats.Chapters)
	assert.Equal(t, 31+49*5+22, stats.Verses)

	translation, _ := cat.ResolveTranslation("en", "eng-WEB")
	books := translation.Books()
	require.Len(t, books, 2)
	assert.Equal(t, "EXO", books[0].Abbreviation())
	assert.Equal(t, "GEN", books[1].Abbreviation())

	genesis, _ := translation.Book("GEN")
	chapters := genesis.Chapters()
	require.Len(t, chapters, 50)
	for i, chapter := range chapters {
		assert.Equal(t, i+1, chapter.Number())
	}
}

func TestCatalog_Fingerprint(t *testing.T) {
	a := buildCatalog(t)
	b := buildCatalog(t)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)

	chapter, _ := NewChapter("Genesis 1", 1, []string{"different"})
	genesis, _ := NewBook("Genesis", "GEN", []*Chapter{chapter})
	web, _ := NewTranslation(TranslationInfo{ID: "eng-WEB"}, []*Book{genesis})
	english, _ := NewLanguage("English", "en", []*Translation{web})
	c, err := New([]*Language{english})
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestCatalog_ConcurrentReads(t *testing.T) {
	cat := buildCatalog(t)
	want, err := cat.ResolveVerse("en", "eng-WEB", "GEN", 1, 7)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan Verse, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			verse, err := cat.ResolveVerse("en", "eng-WEB", "GEN", 1, 7)
			if err == nil {
				results <- verse
			}
			_ = cat.Languages()
			chapter, _ := cat.ResolveChapter("en", "eng-WEB", "GEN", 1)
			_ = chapter.VerseRange(1, 31)
		}()
	}
	wg.Wait()
	close(results)

	count := 0
	for verse := range results {
		assert.Equal(t, want, verse)
		count++
	}
	assert.Equal(t, 64, count)
}
