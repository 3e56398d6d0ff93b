package utils

import (
	"regexp"
	"strings"
)

// maxFilenameRunes leaves room for an extension within the common 255 byte
// limit for names made of multi-byte characters.
const maxFilenameRunes = 120

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	multipleSpaces       = regexp.MustCompile(`\s+`)
)

// SanitizeFilename turns a display name such as "1. Mose" or "Song of
// Solomon" into a portable file name. Leading dots are stripped so the
// result never names a hidden file. An empty result becomes fallback.
func SanitizeFilename(name, fallback string) string {
	name = multipleSpaces.ReplaceAllString(name, " ")
	name = invalidFilenameChars.ReplaceAllString(name, "")
	name = multipleSpaces.ReplaceAllString(name, " ")
	name = strings.TrimLeft(strings.TrimSpace(name), ". ")

	if runes := []rune(name); len(runes) > maxFilenameRunes {
		name = strings.TrimSpace(string(runes[:maxFilenameRunes]))
	}

	if name == "" {
		return fallback
	}
	return name
}
