package router

import (
	"net/http"

	"github.com/deppfellow/toolbox-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerToolboxRoutes maps the utility endpoints onto the typed handler pipeline.
// Integer parameters are validated before any handler logic runs.
func registerToolboxRoutes(r *echo.Echo, h *handler.Handlers) {
	tb := h.Toolbox

	r.GET("/", handler.Handle(tb.Handler, tb.Root, http.StatusOK))
	r.GET("/echo/:text", handler.Handle(tb.Handler, tb.Echo, http.StatusOK))
	r.GET("/days-until-new-year", handler.Handle(tb.Handler, tb.DaysUntilNewYear, http.StatusOK))
	r.GET("/is-palindrome/:text", handler.Handle(tb.Handler, tb.IsPalindrome, http.StatusOK))
	r.GET("/square/:n", handler.Handle(tb.Handler, tb.Square, http.StatusOK))
	r.GET("/divide/:a/:b", handler.Handle(tb.Handler, tb.Divide, http.StatusOK))
	r.GET("/multiply/:a/:b", handler.Handle(tb.Handler, tb.Multiply, http.StatusOK))
	r.GET("/subtract/:a/:b", handler.Handle(tb.Handler, tb.Subtract, http.StatusOK))
	r.GET("/add/:a/:b", handler.Handle(tb.Handler, tb.Add, http.StatusOK))
	r.GET("/current-date", handler.Handle(tb.Handler, tb.CurrentDate, http.StatusOK))
}
