// Package testutil builds small on-disk and in-memory corpora for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

const (
	// Genesis1v1 is the text of en/eng-WEB/GEN 1:1 in the sample corpus.
	Genesis1v1 = "In the beginning, God created the heavens and the earth."
	// GenesisChapters is the chapter count of GEN in the sample corpus.
	GenesisChapters = 50
	// Genesis1Verses is the verse count of GEN 1 in the sample corpus.
	Genesis1Verses = 31
)

// Files maps slash-separated relative paths to file contents.
type Files map[string]string

// SampleCorpus returns a corpus with two languages:
//
//	english/WEB   legacy metadata, uid eng-WEB: GEN (50 chapters, GEN 1 has 31 verses), EXO (1 chapter)
//	english/KJV   current metadata, abbreviation KJV: JHN (3 chapters)
//	german/LUT    current metadata, abbreviation LUT: GEN (1 chapter)
//
// plus stray files that a loader must ignore.
func SampleCorpus() Files {
	files := Files{
		"README.md":      "stray file at the root",
		"english/notes":  "stray file in a language",
		"german/.hidden": "hidden file",
	}

	files.JSON("english/metadata.json", map[string]any{"displayName": "English", "abbreviation": "en"})
	files.JSON("english/WEB/metadata.json", map[string]any{
		"abbreviation": "WEB",
		"uid":          "eng-WEB",
		"info":         "World English Bible",
	})
	files.Book("english/WEB/GEN", "Genesis", "GEN")
	for chapter := 1; chapter <= GenesisChapters; chapter++ {
		count := 3
		if chapter == 1 {
			count = Genesis1Verses
		}
		verses := make([]string, count)
		for i := range verses {
			verses[i] = fmt.Sprintf("Genesis %d:%d", chapter, i+1)
		}
		if chapter == 1 {
			verses[0] = Genesis1v1
		}
		files.Chapter(fmt.Sprintf("english/WEB/GEN/%d", chapter), fmt.Sprintf("Genesis %d", chapter), chapter, verses)
	}
	files["english/WEB/GEN/1/text.txt"] = "\n" + strings.ReplaceAll(files["english/WEB/GEN/1/text.txt"], "Genesis 1:10\n", "Genesis 1:10\n   \n\n")

	files.Book("english/WEB/EXO", "Exodus", "EXO")
	files.Chapter("english/WEB/EXO/1", "Exodus 1", 1, numbered("Exodus 1", 22))

	files.JSON("english/KJV/metadata.json", map[string]any{
		"displayName":     "King James Version",
		"alternativeName": "Authorized Version",
		"abbreviation":    "KJV",
		"description":     "English translation of 1611",
	})
	files.Book("english/KJV/JHN", "John", "JHN")
	for chapter := 1; chapter <= 3; chapter++ {
		files.Chapter(fmt.Sprintf("english/KJV/JHN/%d", chapter), fmt.Sprintf("John %d", chapter), chapter,
			numbered(fmt.Sprintf("John %d", chapter), 2))
	}

	files.JSON("german/metadata.json", map[string]any{"displayName": "Deutsch", "abbreviation": "de"})
	files.JSON("german/LUT/metadata.json", map[string]any{
		"displayName":  "Lutherbibel",
		"abbreviation": "LUT",
	})
	files.Book("german/LUT/GEN", "1. Mose", "GEN")
	files.Chapter("german/LUT/GEN/1", "1. Mose 1", 1, []string{"Am Anfang schuf Gott Himmel und Erde."})

	return files
}

func numbered(prefix string, n int) []string {
	verses := make([]string, n)
	for i := range verses {
		verses[i] = fmt.Sprintf("%s:%d", prefix, i+1)
	}
	return verses
}

// JSON stores value marshalled as indented JSON at name.
func (f Files) JSON(name string, value any) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		panic(err)
	}
	f[name] = string(data)
}

// Book adds book metadata at dir.
func (f Files) Book(dir, name, abbreviation string) {
	f.JSON(dir+"/metadata.json", map[string]any{"name": name, "abbreviation": abbreviation})
}

// Chapter adds chapter metadata and one verse per line of text at dir.
func (f Files) Chapter(dir, name string, number int, verses []string) {
	f.JSON(dir+"/metadata.json", map[string]any{"name": name, "number": number})
	f[dir+"/text.txt"] = strings.Join(verses, "\n") + "\n"
}

// MapFS returns the files as an in-memory filesystem.
func (f Files) MapFS() fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range f {
		fsys[name] = &fstest.MapFile{Data: []byte(content), Mode: 0o644}
	}
	return fsys
}

// WriteTo writes the files below root.
func (f Files) WriteTo(t testing.TB, root string) {
	t.Helper()
	for name, content := range f {
		target := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatalf("create %s: %v", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", target, err)
		}
	}
}

// WriteSampleCorpus writes SampleCorpus into a fresh temp dir and returns its path.
func WriteSampleCorpus(t testing.TB) string {
	t.Helper()
	root := t.TempDir()
	SampleCorpus().WriteTo(t, root)
	return root
}
