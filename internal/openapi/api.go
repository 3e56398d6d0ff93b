package openapi

const (
	Title       = "Open Bible API"
	Description = "A simple API for accessing Bible translations."
)

func stringParam(name, description string) Parameter {
	return Parameter{Name: name, In: "path", Required: true, Description: description, Schema: &Schema{Type: "string"}}
}

func integerParam(name, description string) Parameter {
	return Parameter{Name: name, In: "path", Required: true, Description: description, Schema: &Schema{Type: "integer"}}
}

func jsonResponse(description string, schema *Schema) Response {
	return Response{
		Description: description,
		Content:     map[string]MediaType{"application/json": {Schema: schema}},
	}
}

func object(props map[string]*Schema) *Schema {
	return &Schema{Type: "object", Properties: props}
}

func arrayOf(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

var (
	str     = &Schema{Type: "string"}
	integer = &Schema{Type: "integer"}

	countSchema = object(map[string]*Schema{"count": integer})
	verseSchema = object(map[string]*Schema{"number": integer, "text": str})
	errorSchema = object(map[string]*Schema{"error": {Type: "string", Example: "Language xx not found."}})
)

func notFound(description string) Response {
	return jsonResponse(description, errorSchema)
}

// New returns the document describing every route served under /api/languages.
func New(apiVersion string) *Document {
	language := stringParam("language", "The language abbreviation (e.g., 'en')")
	translation := stringParam("translation", "The translation id (e.g., 'eng-WEB')")
	book := stringParam("book", "The book abbreviation (e.g., 'GEN')")
	chapter := integerParam("chapter", "The chapter number, starting at 1")

	const base = "/api/languages"
	books := base + "/{language}/translations/{translation}/books"
	chapters := books + "/{book}/chapters"
	verses := chapters + "/{chapter}/verses"

	return &Document{
		OpenAPI: Version,
		Info:    Info{Title: Title, Version: apiVersion, Description: Description},
		Paths: map[string]PathItem{
			base: {Get: &Operation{
				Summary:     "Retrieve a list of available languages",
				OperationID: "listLanguages",
				Tags:        []string{"languages"},
				Responses: map[string]Response{
					"200": jsonResponse("A list of languages.", arrayOf(object(map[string]*Schema{
						"displayName":  {Type: "string", Example: "English"},
						"abbreviation": {Type: "string", Example: "en"},
					}))),
				},
			}},
			base + "/{language}/translations": {Get: &Operation{
				Summary:     "Retrieve available translations for a specific language",
				OperationID: "listTranslations",
				Tags:        []string{"translations"},
				Parameters:  []Parameter{language},
				Responses: map[string]Response{
					"200": jsonResponse("A list of translations.", arrayOf(object(map[string]*Schema{
						"id":              str,
						"displayName":     str,
						"alternativeName": str,
						"abbreviation":    str,
						"description":     str,
					}))),
					"404": notFound("Language not found."),
				},
			}},
			books: {Get: &Operation{
				Summary:     "Retrieve available books for a specific translation",
				OperationID: "listBooks",
				Tags:        []string{"books"},
				Parameters:  []Parameter{language, translation},
				Responses: map[string]Response{
					"200": jsonResponse("A list of books.", arrayOf(object(map[string]*Schema{
						"name":         str,
						"abbreviation": str,
					}))),
					"404": notFound("Language or translation not found."),
				},
			}},
			chapters: {Get: &Operation{
				Summary:     "Retrieve the number of chapters in a book",
				OperationID: "countChapters",
				Tags:        []string{"books"},
				Parameters:  []Parameter{language, translation, book},
				Responses: map[string]Response{
					"200": jsonResponse("The number of chapters.", countSchema),
					"404": notFound("Language, translation, or book not found."),
				},
			}},
			verses: {Get: &Operation{
				Summary:     "Retrieve the number of verses in a chapter",
				OperationID: "countVerses",
				Tags:        []string{"verses"},
				Parameters:  []Parameter{language, translation, book, chapter},
				Responses: map[string]Response{
					"200": jsonResponse("The number of verses.", countSchema),
					"404": notFound("Language, translation, book, or chapter not found."),
				},
			}},
			verses + "/{verse}": {Get: &Operation{
				Summary:     "Retrieve a single verse from a specific chapter",
				OperationID: "getVerse",
				Tags:        []string{"verses"},
				Parameters:  []Parameter{language, translation, book, chapter, integerParam("verse", "The verse number, starting at 1")},
				Responses: map[string]Response{
					"200": jsonResponse("The requested verse.", verseSchema),
					"404": notFound("Language, translation, book, chapter, or verse not found."),
				},
			}},
			verses + "/{start}-{end}": {Get: &Operation{
				Summary:     "Retrieve a range of verses from a specific chapter",
				OperationID: "getVerseRange",
				Tags:        []string{"verses"},
				Parameters: []Parameter{
					language, translation, book, chapter,
					integerParam("start", "Start verse number"),
					integerParam("end", "End verse number"),
				},
				Responses: map[string]Response{
					"200": jsonResponse("A range of verses, clamped to the chapter. Empty when nothing overlaps.", arrayOf(verseSchema)),
					"400": jsonResponse("Malformed range.", errorSchema),
					"404": notFound("Language, translation, book, or chapter not found."),
				},
			}},
		},
	}
}
