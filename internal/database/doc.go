// Package database stores an exported catalog in SQLite through gorm.
//
// # Schema
//
//	languages      abbreviation, display_name
//	translations   language_id, key, display_name, alternative_name, abbreviation, description
//	books          translation_id, abbreviation, name, position
//	chapters       book_id, number, name
//	verses         chapter_id, number, text
//	settings       key/value pairs describing the export
//
// The translation key is the same identifier the HTTP API uses in its paths,
// so a verse can be found with
//
//	db, err := database.NewDatabase("./openbible.db")
//	verse, err := db.GetVerse("en", "eng-WEB", "GEN", 1, 1)
//
// The database is a read-only snapshot for other tools. The server never
// reads from it.
package database
