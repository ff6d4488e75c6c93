package http

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-lwcharts/internal/preview"
)

func (h *HttpAPIHandler) SetupPreview(root *echo.Group) {
	root.GET("/charts/:id/preview", h.previewChart)
}

func (h *HttpAPIHandler) previewChart(c echo.Context) error {
	saved, err := h.service.ChartService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	var buf bytes.Buffer
	if err := preview.Render(&buf, saved.Name, saved.Config); err != nil {
		return h.respondError(c, err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
