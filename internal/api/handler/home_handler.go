package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Landing shows the role choice and any notice carried by a redirect.
func (h *HomeHandler) Landing(c echo.Context) error {
	return c.Render(http.StatusOK, "home", homePage{Notice: c.QueryParam("notice")})
}
