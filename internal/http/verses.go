package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/catalog"
)

type VersesController struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

func NewVersesController(cat *catalog.Catalog, logger *zap.Logger) *VersesController {
	return &VersesController{
		catalog: cat,
		logger:  logger,
	}
}

// resolveChapter answers the request itself when the chapter cannot be found.
// Path segments are checked outermost first, so an unknown book is reported
// even when the chapter segment is not a number.
func (controller *VersesController) resolveChapter(c *gin.Context) (*catalog.Chapter, bool) {
	book, err := controller.catalog.ResolveBook(c.Param("language"), c.Param("translation"), c.Param("book"))
	if err != nil {
		respondLookupError(c, controller.logger, err)
		return nil, false
	}
	number, ok := parseNumberParam(c, "chapter", catalog.KindChapter)
	if !ok {
		return nil, false
	}
	chapter, found := book.Chapter(number)
	if !found {
		respondNotFound(c, catalog.KindChapter, c.Param("chapter"))
		return nil, false
	}
	return chapter, true
}

func (controller *VersesController) CountVerses(c *gin.Context) {
	chapter, ok := controller.resolveChapter(c)
	if !ok {
		return
	}
	respondJSON(c, CountResponse{Count: chapter.VerseCount()})
}

// GetVerses serves both a single verse ("7") and an inclusive range ("1-5").
// Ranges are clamped to the chapter and may be empty; single verses must exist.
func (controller *VersesController) GetVerses(c *gin.Context) {
	chapter, ok := controller.resolveChapter(c)
	if !ok {
		return
	}

	ref, err := parseVerseRef(c.Param("verse"))
	if err != nil {
		if errors.Is(err, errMalformedRange) {
			respondBadRequest(c, "Invalid verse range "+c.Param("verse")+".")
			return
		}
		respondLookupError(c, controller.logger, err)
		return
	}

	if ref.isRange {
		respondJSON(c, chapter.VerseRange(ref.start, ref.end))
		return
	}

	text, found := chapter.Verse(ref.start)
	if !found {
		respondNotFound(c, catalog.KindVerse, c.Param("verse"))
		return
	}
	respondJSON(c, catalog.Verse{Number: ref.start, Text: text})
}
