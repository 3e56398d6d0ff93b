package entities

// Rows of an exported catalog. Every level references its parent by ID and
// keeps the position it had in the catalog so exports can be read back in
// the same order.

type Language struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Abbreviation string `gorm:"uniqueIndex;size:32" json:"abbreviation"`
	DisplayName  string `gorm:"size:128" json:"display_name"`
}

type Translation struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	LanguageID      uint   `gorm:"uniqueIndex:idx_translation_key" json:"language_id"`
	Key             string `gorm:"uniqueIndex:idx_translation_key;size:64" json:"key"`
	DisplayName     string `gorm:"size:256" json:"display_name"`
	AlternativeName string `gorm:"size:256" json:"alternative_name"`
	Abbreviation    string `gorm:"size:64" json:"abbreviation"`
	Description     string `gorm:"type:text" json:"description"`
}

type Book struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	TranslationID uint   `gorm:"uniqueIndex:idx_book_abbreviation" json:"translation_id"`
	Abbreviation  string `gorm:"uniqueIndex:idx_book_abbreviation;size:16" json:"abbreviation"`
	Name          string `gorm:"size:128" json:"name"`
	Position      int    `json:"position"`
}

type Chapter struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	BookID uint   `gorm:"uniqueIndex:idx_chapter_number" json:"book_id"`
	Number int    `gorm:"uniqueIndex:idx_chapter_number" json:"number"`
	Name   string `gorm:"size:128" json:"name"`
}

type Verse struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ChapterID uint   `gorm:"uniqueIndex:idx_verse_number" json:"chapter_id"`
	Number    int    `gorm:"uniqueIndex:idx_verse_number" json:"number"`
	Text      string `gorm:"type:text" json:"text"`
}
