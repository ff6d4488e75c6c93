package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-lwcharts/internal/dto"
)

func (h *HttpAPIHandler) SetupJobs(base *echo.Group) {
	v1 := base.Group("/v1/jobs")
	{
		v1.POST("/refresh", h.RunRefresh)
		v1.POST("/refresh/:id", h.RefreshChart)
	}
}

// RunRefresh refreshes every saved chart whose schedule is due.
func (h *HttpAPIHandler) RunRefresh(c echo.Context) error {
	if err := h.service.SchedulerService.Execute(c.Request().Context()); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Refresh completed", nil))
}

func (h *HttpAPIHandler) RefreshChart(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := h.service.ChartService.Get(ctx, id); err != nil {
		return h.respondError(c, err)
	}
	if err := h.service.SchedulerService.RefreshChart(ctx, id); err != nil {
		return h.respondError(c, err)
	}
	saved, err := h.service.ChartService.Get(ctx, id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Chart refreshed", saved))
}
