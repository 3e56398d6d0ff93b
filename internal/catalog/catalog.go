// Package catalog holds the in-memory scripture corpus.
//
// The tree is language → translation → book → chapter → verse. Every level is
// keyed by a natural identifier and looked up by exact match. A Catalog is
// built once by the loader and never modified afterwards, so any number of
// goroutines may query it without synchronisation.
package catalog

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicateKey is returned when two children of the same parent share a key.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrEmptyKey is returned when an entity has no usable key.
	ErrEmptyKey = errors.New("empty key")
	// ErrInvalidNumber is returned for chapter numbers below 1.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrChapterGap is returned when chapter numbers are not dense from 1.
	ErrChapterGap = errors.New("chapter numbering has gaps")
)

// Stats holds entity counts for the whole catalog.
type Stats struct {
	Languages    int `json:"languages"`
	Translations int `json:"translations"`
	Books        int `json:"books"`
	Chapters     int `json:"chapters"`
	Verses       int `json:"verses"`
}

// Catalog is the root of the corpus, keyed by language abbreviation.
type Catalog struct {
	languages   map[string]*Language
	stats       Stats
	fingerprint string
}

// New builds a catalog from fully constructed languages.
func New(languages []*Language) (*Catalog, error) {
	index := make(map[string]*Language, len(languages))
	stats := Stats{}
	for _, language := range languages {
		if _, exists := index[language.abbreviation]; exists {
			return nil, fmt.Errorf("language %q: %w", language.abbreviation, ErrDuplicateKey)
		}
		index[language.abbreviation] = language

		stats.Languages++
		for _, translation := range language.translations {
			stats.Translations++
			for _, book := range translation.books {
				stats.Books++
				stats.Chapters += len(book.chapters)
				for _, chapter := range book.chapters {
					stats.Verses += len(chapter.verses)
				}
			}
		}
	}

	c := &Catalog{languages: index, stats: stats}
	c.fingerprint = computeFingerprint(c)
	return c, nil
}

// Language returns the language with the given abbreviation.
func (c *Catalog) Language(abbreviation string) (*Language, bool) {
	language, ok := c.languages[abbreviation]
	return language, ok
}

// Languages returns all languages ordered by abbreviation.
func (c *Catalog) Languages() []*Language {
	languages := make([]*Language, 0, len(c.languages))
	for _, language := range c.languages {
		languages = append(languages, language)
	}
	sort.Slice(languages, func(i, j int) bool {
		return languages[i].abbreviation < languages[j].abbreviation
	})
	return languages
}

// Stats returns the entity counts computed at construction.
func (c *Catalog) Stats() Stats {
	return c.stats
}

// Fingerprint is a hex digest of the full catalog content. Two catalogs with
// identical content have identical fingerprints.
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

// Language is one language and the translations available in it.
type Language struct {
	displayName  string
	abbreviation string
	translations map[string]*Translation
}

// NewLanguage builds a language from its translations. Translation IDs must be unique.
func NewLanguage(displayName, abbreviation string, translations []*Translation) (*Language, error) {
	if abbreviation == "" {
		return nil, fmt.Errorf("language abbreviation: %w", ErrEmptyKey)
	}
	index := make(map[string]*Translation, len(translations))
	for _, translation := range translations {
		if _, exists := index[translation.id]; exists {
			return nil, fmt.Errorf("translation %q: %w", translation.id, ErrDuplicateKey)
		}
		index[translation.id] = translation
	}
	return &Language{
		displayName:  displayName,
		abbreviation: abbreviation,
		translations: index,
	}, nil
}

func (l *Language) DisplayName() string  { return l.displayName }
func (l *Language) Abbreviation() string { return l.abbreviation }

// Translation returns the translation with the given ID.
func (l *Language) Translation(id string) (*Translation, bool) {
	translation, ok := l.translations[id]
	return translation, ok
}

// Translations returns all translations ordered by ID.
func (l *Language) Translations() []*Translation {
	translations := make([]*Translation, 0, len(l.translations))
	for _, translation := range l.translations {
		translations = append(translations, translation)
	}
	sort.Slice(translations, func(i, j int) bool {
		return translations[i].id < translations[j].id
	})
	return translations
}

// TranslationInfo is the descriptive metadata of a translation. ID is the
// lookup key and may differ from Abbreviation for legacy corpora.
type TranslationInfo struct {
	ID              string
	DisplayName     string
	AlternativeName string
	Abbreviation    string
	Description     string
}

// Translation is one rendering of the corpus in a language.
type Translation struct {
	id              string
	displayName     string
	alternativeName string
	abbreviation    string
	description     string
	books           map[string]*Book
}

// NewTranslation builds a translation from its books. Book abbreviations must be unique.
func NewTranslation(info TranslationInfo, books []*Book) (*Translation, error) {
	if info.ID == "" {
		return nil, fmt.Errorf("translation id: %w", ErrEmptyKey)
	}
	index := make(map[string]*Book, len(books))
	for _, book := range books {
		if _, exists := index[book.abbreviation]; exists {
			return nil, fmt.Errorf("book %q: %w", book.abbreviation, ErrDuplicateKey)
		}
		index[book.abbreviation] = book
	}
	return &Translation{
		id:              info.ID,
		displayName:     info.DisplayName,
		alternativeName: info.AlternativeName,
		abbreviation:    info.Abbreviation,
		description:     info.Description,
		books:           index,
	}, nil
}

func (t *Translation) ID() string              { return t.id }
func (t *Translation) DisplayName() string     { return t.displayName }
func (t *Translation) AlternativeName() string { return t.alternativeName }
func (t *Translation) Abbreviation() string    { return t.abbreviation }
func (t *Translation) Description() string     { return t.description }

// Book returns the book with the given abbreviation.
func (t *Translation) Book(abbreviation string) (*Book, bool) {
	book, ok := t.books[abbreviation]
	return book, ok
}

// Books returns all books ordered by abbreviation.
func (t *Translation) Books() []*Book {
	books := make([]*Book, 0, len(t.books))
	for _, book := range t.books {
		books = append(books, book)
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].abbreviation < books[j].abbreviation
	})
	return books
}

// Book is one book of a translation with its chapters keyed by number.
type Book struct {
	name         string
	abbreviation string
	chapters     map[int]*Chapter
}

// NewBook builds a book. Chapter numbers must be unique and cover 1..N without gaps.
func NewBook(name, abbreviation string, chapters []*Chapter) (*Book, error) {
	if abbreviation == "" {
		return nil, fmt.Errorf("book abbreviation: %w", ErrEmptyKey)
	}
	index := make(map[int]*Chapter, len(chapters))
	for _, chapter := range chapters {
		if _, exists := index[chapter.number]; exists {
			return nil, fmt.Errorf("chapter %d: %w", chapter.number, ErrDuplicateKey)
		}
		index[chapter.number] = chapter
	}
	for number := 1; number <= len(index); number++ {
		if _, ok := index[number]; !ok {
			return nil, fmt.Errorf("chapter %d missing of %d: %w", number, len(index), ErrChapterGap)
		}
	}
	return &Book{name: name, abbreviation: abbreviation, chapters: index}, nil
}

func (b *Book) Name() string         { return b.name }
func (b *Book) Abbreviation() string { return b.abbreviation }

// Chapter returns the chapter with the given number.
func (b *Book) Chapter(number int) (*Chapter, bool) {
	chapter, ok := b.chapters[number]
	return chapter, ok
}

// ChapterCount returns the number of chapters in the book.
func (b *Book) ChapterCount() int {
	return len(b.chapters)
}

// Chapters returns all chapters in numeric order.
func (b *Book) Chapters() []*Chapter {
	chapters := make([]*Chapter, 0, len(b.chapters))
	for number := 1; number <= len(b.chapters); number++ {
		chapters = append(chapters, b.chapters[number])
	}
	return chapters
}
