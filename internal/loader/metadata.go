package loader

import (
	"strings"

	"github.com/mrlokans/openbible/internal/catalog"
)

const (
	// MetadataFile describes every language, translation, book and chapter directory.
	MetadataFile = "metadata.json"
	// TextFile holds the verse lines of a chapter.
	TextFile = "text.txt"
)

type LanguageMetadata struct {
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

// TranslationMetadata accepts both the current shape (displayName,
// alternativeName, abbreviation, description) and the legacy one
// (abbreviation, uid, info).
type TranslationMetadata struct {
	DisplayName     string `json:"displayName,omitempty"`
	AlternativeName string `json:"alternativeName,omitempty"`
	Abbreviation    string `json:"abbreviation"`
	Description     string `json:"description,omitempty"`

	UID  string `json:"uid,omitempty"`
	Info string `json:"info,omitempty"`
}

// IsLegacy reports whether the metadata predates the displayName format.
func (m TranslationMetadata) IsLegacy() bool {
	return m.UID != "" && m.DisplayName == ""
}

// info converts the metadata into catalog form. The lookup key is the legacy
// uid when present, then the abbreviation, then the directory name.
func (m TranslationMetadata) info(dirName string) catalog.TranslationInfo {
	id := m.UID
	if id == "" {
		id = m.Abbreviation
	}
	if id == "" {
		id = dirName
	}

	displayName := m.DisplayName
	if displayName == "" {
		displayName = m.Abbreviation
	}
	description := m.Description
	if description == "" {
		description = m.Info
	}

	return catalog.TranslationInfo{
		ID:              id,
		DisplayName:     displayName,
		AlternativeName: m.AlternativeName,
		Abbreviation:    m.Abbreviation,
		Description:     description,
	}
}

type BookMetadata struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type ChapterMetadata struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
}

// ParseVerses splits chapter text into verses. Lines that are blank after
// trimming are dropped; the remaining lines become verses 1..N in file order.
func ParseVerses(text string) []string {
	lines := strings.Split(text, "\n")
	verses := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		verses = append(verses, line)
	}
	return verses
}
