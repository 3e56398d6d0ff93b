package catalog

import "fmt"

// Verse is a numbered line of chapter text.
type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Chapter holds the verses of one chapter. Verse n is stored at index n-1.
type Chapter struct {
	name   string
	number int
	verses []string
}

// NewChapter builds a chapter. Verses are numbered by position starting at 1.
func NewChapter(name string, number int, verses []string) (*Chapter, error) {
	if number < 1 {
		return nil, fmt.Errorf("chapter number %d: %w", number, ErrInvalidNumber)
	}
	return &Chapter{
		name:   name,
		number: number,
		verses: append([]string(nil), verses...),
	}, nil
}

func (c *Chapter) Name() string { return c.name }
func (c *Chapter) Number() int  { return c.number }

// VerseCount returns the number of verses in the chapter.
func (c *Chapter) VerseCount() int {
	return len(c.verses)
}

// Verse returns the text of verse number. Numbers outside 1..VerseCount are not found.
func (c *Chapter) Verse(number int) (string, bool) {
	if number < 1 || number > len(c.verses) {
		return "", false
	}
	return c.verses[number-1], true
}

// VerseRange returns the verses numbered start..end inclusive that exist in
// the chapter. Out-of-bounds parts of the range are dropped rather than
// reported: a range past the last verse is empty, a range running past the
// last verse is cut short, and start > end yields nothing.
func (c *Chapter) VerseRange(start, end int) []Verse {
	if start < 1 {
		start = 1
	}
	if end > len(c.verses) {
		end = len(c.verses)
	}
	if start > end {
		return []Verse{}
	}

	verses := make([]Verse, 0, end-start+1)
	for number := start; number <= end; number++ {
		verses = append(verses, Verse{Number: number, Text: c.verses[number-1]})
	}
	return verses
}

// Verses returns every verse of the chapter in order.
func (c *Chapter) Verses() []Verse {
	return c.VerseRange(1, len(c.verses))
}
