package catalog

import (
	"encoding/hex"
	"hash"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

// computeFingerprint hashes the catalog in key order so the digest does not
// depend on map iteration or load order.
func computeFingerprint(c *Catalog) string {
	h, err := blake2b.New256(nil)
	if err != nil {
		// only fails for oversized keys
		panic(err)
	}

	for _, language := range c.Languages() {
		writeFields(h, "L", language.abbreviation, language.displayName)
		for _, translation := range language.Translations() {
			writeFields(h, "T", translation.id, translation.displayName, translation.alternativeName,
				translation.abbreviation, translation.description)
			for _, book := range translation.Books() {
				writeFields(h, "B", book.abbreviation, book.name)
				for _, chapter := range book.Chapters() {
					writeFields(h, "C", strconv.Itoa(chapter.number), chapter.name)
					for _, text := range chapter.verses {
						writeFields(h, "V", text)
					}
				}
			}
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}

func writeFields(h hash.Hash, fields ...string) {
	for _, field := range fields {
		_, _ = h.Write([]byte(strconv.Itoa(len(field))))
		_, _ = h.Write([]byte{':'})
		_, _ = h.Write([]byte(field))
	}
	_, _ = h.Write([]byte{'\n'})
}
