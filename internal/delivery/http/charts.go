package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-lwcharts/internal/dto"
)

func (h *HttpAPIHandler) SetupCharts(base *echo.Group) {
	charts := base.Group("/v1/charts")
	{
		charts.POST("/build", h.buildChart)
		charts.POST("/market", h.buildMarketChart)
		charts.POST("", h.saveChart)
		charts.GET("", h.listCharts)
		charts.GET("/:id", h.getChart)
		charts.DELETE("/:id", h.deleteChart)
	}
	base.POST("/v1/dashboards", h.buildDashboard)
}

func (h *HttpAPIHandler) buildChart(c echo.Context) error {
	req := new(dto.ChartSpec)
	if err := bind(c, req); err != nil {
		return h.respondError(c, err)
	}
	cfg, err := h.service.ChartService.Build(c.Request().Context(), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Chart built", cfg))
}

func (h *HttpAPIHandler) buildMarketChart(c echo.Context) error {
	req := new(dto.MarketChartRequest)
	if err := c.Bind(req); err != nil {
		return h.respondError(c, bindError(err))
	}
	cfg, err := h.service.ChartService.BuildMarket(c.Request().Context(), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Market chart built", cfg))
}

func (h *HttpAPIHandler) buildDashboard(c echo.Context) error {
	req := new(dto.DashboardRequest)
	if err := c.Bind(req); err != nil {
		return h.respondError(c, bindError(err))
	}
	cfg, err := h.service.ChartService.BuildDashboard(c.Request().Context(), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Dashboard built", cfg))
}

func (h *HttpAPIHandler) saveChart(c echo.Context) error {
	req := new(dto.SaveChartRequest)
	if err := bind(c, req); err != nil {
		return h.respondError(c, err)
	}
	saved, err := h.service.ChartService.Save(c.Request().Context(), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewCreatedResponse("Chart saved", saved))
}

func (h *HttpAPIHandler) listCharts(c echo.Context) error {
	param := new(dto.ListChartsParam)
	if err := bind(c, param); err != nil {
		return h.respondError(c, err)
	}
	charts, err := h.service.ChartService.List(c.Request().Context(), *param)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("OK", charts))
}

func (h *HttpAPIHandler) getChart(c echo.Context) error {
	saved, err := h.service.ChartService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("OK", saved))
}

func (h *HttpAPIHandler) deleteChart(c echo.Context) error {
	if err := h.service.ChartService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Chart deleted", nil))
}
