// Package versification knows the canonical book codes and the KJV chapter
// and verse layout, and cross-checks a loaded catalog against it.
package versification

import (
	"fmt"
	"strings"

	"github.com/mrlokans/openbible/internal/catalog"
)

// Book is one canonical book with the verse count of each chapter.
type Book struct {
	Code   string // USFM code, e.g. GEN
	Name   string
	Verses []int
}

func (b Book) ChapterCount() int {
	return len(b.Verses)
}

var byCode = func() map[string]Book {
	m := make(map[string]Book, len(kjv))
	for _, b := range kjv {
		m[b.Code] = b
	}
	return m
}()

var positions = func() map[string]int {
	m := make(map[string]int, len(kjv))
	for i, b := range kjv {
		m[b.Code] = i + 1
	}
	return m
}()

// KJV returns the 66 books in canonical order.
func KJV() []Book {
	out := make([]Book, len(kjv))
	copy(out, kjv)
	return out
}

// Lookup finds a canonical book by USFM code. Codes are case-sensitive.
func Lookup(code string) (Book, bool) {
	b, ok := byCode[code]
	return b, ok
}

// Position returns the 1-based place of a book in the canonical order
// (GEN is 1, REV is 66).
func Position(code string) (int, bool) {
	n, ok := positions[code]
	return n, ok
}

type MismatchKind string

const (
	ChapterCountMismatch MismatchKind = "chapters"
	VerseCountMismatch   MismatchKind = "verses"
)

// Mismatch is one difference between a loaded book and the KJV layout.
// Chapter is zero for chapter count mismatches.
type Mismatch struct {
	Language    string
	Translation string
	Book        string
	Chapter     int
	Kind        MismatchKind
	Want        int
	Got         int
}

func (m Mismatch) String() string {
	ref := fmt.Sprintf("%s/%s/%s", m.Language, m.Translation, m.Book)
	if m.Chapter > 0 {
		ref = fmt.Sprintf("%s %d", ref, m.Chapter)
	}
	return fmt.Sprintf("%s: %d %s, KJV has %d", ref, m.Got, m.Kind, m.Want)
}

type Report struct {
	Checked    int      // books compared against the table
	Unknown    []string // language/translation/book paths with no canonical code
	Mismatches []Mismatch
}

func (r Report) OK() bool {
	return len(r.Mismatches) == 0
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "checked %d book(s), %d mismatch(es), %d without a canonical code\n",
		r.Checked, len(r.Mismatches), len(r.Unknown))
	for _, m := range r.Mismatches {
		b.WriteString("  ")
		b.WriteString(m.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Check compares every book whose abbreviation is a canonical code with the
// KJV layout. Versification legitimately differs between traditions, so a
// mismatch is informational unless the caller decides otherwise.
func Check(cat *catalog.Catalog) Report {
	var report Report
	for _, language := range cat.Languages() {
		for _, translation := range language.Translations() {
			for _, book := range translation.Books() {
				canon, ok := Lookup(book.Abbreviation())
				if !ok {
					report.Unknown = append(report.Unknown,
						language.Abbreviation()+"/"+translation.ID()+"/"+book.Abbreviation())
					continue
				}
				report.Checked++
				report.Mismatches = append(report.Mismatches,
					compare(language.Abbreviation(), translation.ID(), book, canon)...)
			}
		}
	}
	return report
}

func compare(language, translation string, book *catalog.Book, canon Book) []Mismatch {
	var out []Mismatch
	mismatch := func(chapter int, kind MismatchKind, want, got int) {
		out = append(out, Mismatch{
			Language:    language,
			Translation: translation,
			Book:        book.Abbreviation(),
			Chapter:     chapter,
			Kind:        kind,
			Want:        want,
			Got:         got,
		})
	}

	if book.ChapterCount() != canon.ChapterCount() {
		mismatch(0, ChapterCountMismatch, canon.ChapterCount(), book.ChapterCount())
	}
	for _, chapter := range book.Chapters() {
		n := chapter.Number()
		if n > canon.ChapterCount() {
			continue
		}
		if want := canon.Verses[n-1]; chapter.VerseCount() != want {
			mismatch(n, VerseCountMismatch, want, chapter.VerseCount())
		}
	}
	return out
}
