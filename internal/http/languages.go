package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/catalog"
)

type LanguageResponse struct {
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

type TranslationResponse struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName"`
	AlternativeName string `json:"alternativeName"`
	Abbreviation    string `json:"abbreviation"`
	Description     string `json:"description"`
}

type LanguagesController struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

func NewLanguagesController(cat *catalog.Catalog, logger *zap.Logger) *LanguagesController {
	return &LanguagesController{
		catalog: cat,
		logger:  logger,
	}
}

func (controller *LanguagesController) ListLanguages(c *gin.Context) {
	languages := controller.catalog.Languages()
	response := make([]LanguageResponse, 0, len(languages))
	for _, language := range languages {
		response = append(response, LanguageResponse{
			DisplayName:  language.DisplayName(),
			Abbreviation: language.Abbreviation(),
		})
	}
	respondJSON(c, response)
}

func (controller *LanguagesController) ListTranslations(c *gin.Context) {
	language, err := controller.catalog.ResolveLanguage(c.Param("language"))
	if err != nil {
		respondLookupError(c, controller.logger, err)
		return
	}

	translations := language.Translations()
	response := make([]TranslationResponse, 0, len(translations))
	for _, translation := range translations {
		response = append(response, TranslationResponse{
			ID:              translation.ID(),
			DisplayName:     translation.DisplayName(),
			AlternativeName: translation.AlternativeName(),
			Abbreviation:    translation.Abbreviation(),
			Description:     translation.Description(),
		})
	}
	respondJSON(c, response)
}
