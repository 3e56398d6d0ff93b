package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/catalog"
)

type BookResponse struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type BooksController struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

func NewBooksController(cat *catalog.Catalog, logger *zap.Logger) *BooksController {
	return &BooksController{
		catalog: cat,
		logger:  logger,
	}
}

func (controller *BooksController) ListBooks(c *gin.Context) {
	translation, err := controller.catalog.ResolveTranslation(c.Param("language"), c.Param("translation"))
	if err != nil {
		respondLookupError(c, controller.logger, err)
		return
	}

	books := translation.Books()
	response := make([]BookResponse, 0, len(books))
	for _, book := range books {
		response = append(response, BookResponse{Name: book.Name(), Abbreviation: book.Abbreviation()})
	}
	respondJSON(c, response)
}

func (controller *BooksController) CountChapters(c *gin.Context) {
	book, err := controller.catalog.ResolveBook(c.Param("language"), c.Param("translation"), c.Param("book"))
	if err != nil {
		respondLookupError(c, controller.logger, err)
		return
	}
	respondJSON(c, CountResponse{Count: book.ChapterCount()})
}
