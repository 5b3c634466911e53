package handler

import (
	"io/fs"
	"net/http"

	"github.com/deppfellow/toolbox-api/internal/server"
	"github.com/deppfellow/toolbox-api/static"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OpenAPIHandler serves the OpenAPI UI for exploring the API.
//
// The UI is a static HTML page (embedded openapi.html) that loads its JS
// from a CDN and reads the embedded openapi.json through /static.
type OpenAPIHandler struct {
	Handler
}

// NewOpenAPIHandler constructs an OpenAPIHandler with access to shared dependencies.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the embedded openapi.html.
//
// Cache-Control is set to "no-cache" so clients do not reuse old docs UI.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := fs.ReadFile(static.Files, "openapi.html")

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return errors.Wrap(err, "failed to read OpenAPI UI template")
	}

	if err := c.HTMLBlob(http.StatusOK, templateBytes); err != nil {
		return errors.Wrap(err, "failed to write HTML response")
	}

	return nil
}
