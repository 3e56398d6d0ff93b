package catalog

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// Kind names the level of the tree a lookup failed at.
type Kind string

const (
	KindLanguage    Kind = "Language"
	KindTranslation Kind = "Translation"
	KindBook        Kind = "Book"
	KindChapter     Kind = "Chapter"
	KindVerse       Kind = "Verse"
)

// NotFoundError reports the first key of a path that does not exist.
type NotFoundError struct {
	Kind Kind
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found.", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind Kind, key string) error {
	return &NotFoundError{Kind: kind, Key: key}
}

// ResolveLanguage looks up a language or returns a *NotFoundError.
func (c *Catalog) ResolveLanguage(language string) (*Language, error) {
	l, ok := c.Language(language)
	if !ok {
		return nil, notFound(KindLanguage, language)
	}
	return l, nil
}

// ResolveTranslation walks language → translation.
func (c *Catalog) ResolveTranslation(language, translation string) (*Translation, error) {
	l, err := c.ResolveLanguage(language)
	if err != nil {
		return nil, err
	}
	t, ok := l.Translation(translation)
	if !ok {
		return nil, notFound(KindTranslation, translation)
	}
	return t, nil
}

// ResolveBook walks language → translation → book.
func (c *Catalog) ResolveBook(language, translation, book string) (*Book, error) {
	t, err := c.ResolveTranslation(language, translation)
	if err != nil {
		return nil, err
	}
	b, ok := t.Book(book)
	if !ok {
		return nil, notFound(KindBook, book)
	}
	return b, nil
}

// ResolveChapter walks language → translation → book → chapter.
func (c *Catalog) ResolveChapter(language, translation, book string, chapter int) (*Chapter, error) {
	b, err := c.ResolveBook(language, translation, book)
	if err != nil {
		return nil, err
	}
	ch, ok := b.Chapter(chapter)
	if !ok {
		return nil, notFound(KindChapter, strconv.Itoa(chapter))
	}
	return ch, nil
}

// ResolveVerse walks the full path down to a single verse.
func (c *Catalog) ResolveVerse(language, translation, book string, chapter, verse int) (Verse, error) {
	ch, err := c.ResolveChapter(language, translation, book, chapter)
	if err != nil {
		return Verse{}, err
	}
	text, ok := ch.Verse(verse)
	if !ok {
		return Verse{}, notFound(KindVerse, strconv.Itoa(verse))
	}
	return Verse{Number: verse, Text: text}, nil
}
