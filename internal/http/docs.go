package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/openapi"
)

const swaggerUIPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Open Bible API - Swagger UI</title>
  <link rel="stylesheet" href="` + swaggerAssetsOrigin + `/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="` + swaggerAssetsOrigin + `/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function () {
      window.ui = SwaggerUIBundle({ url: "openapi.json", dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`

type DocsController struct {
	document *openapi.Document
	logger   *zap.Logger
}

func NewDocsController(document *openapi.Document, logger *zap.Logger) *DocsController {
	return &DocsController{
		document: document,
		logger:   logger,
	}
}

func (controller *DocsController) SwaggerUI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerUIPage))
}

func (controller *DocsController) JSON(c *gin.Context) {
	controller.render(c, openapi.FormatJSON, "application/json; charset=utf-8")
}

func (controller *DocsController) YAML(c *gin.Context) {
	controller.render(c, openapi.FormatYAML, "application/yaml; charset=utf-8")
}

func (controller *DocsController) render(c *gin.Context, format openapi.Format, contentType string) {
	data, err := controller.document.Render(format)
	if err != nil {
		respondInternalError(c, controller.logger, err, "render openapi "+string(format))
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
