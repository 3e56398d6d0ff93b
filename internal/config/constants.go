package config

// Default locations used when the environment does not override them.
const (
	// DefaultTranslationsPath is the corpus root read at startup.
	DefaultTranslationsPath = "./translations/"

	// DefaultExportDatabasePath is where export-sqlite writes when no --out is given.
	DefaultExportDatabasePath = "./openbible.db"

	// DefaultOpenAPIPath is where the openapi command writes the document.
	DefaultOpenAPIPath = "./docs/openapi.json"
)
