package http

import (
	"context"
	"errors"
	"net/http"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"golang-lwcharts/config"
	"golang-lwcharts/internal/dto"
	"golang-lwcharts/internal/service"
	"golang-lwcharts/pkg/logger"
	"golang-lwcharts/pkg/lwc/types"
	"golang-lwcharts/pkg/metrics"
	"golang-lwcharts/pkg/middleware"
)

type HttpAPIHandler struct {
	cfg     *config.Config
	log     *logger.Logger
	echo    *echo.Echo
	service *service.Service
}

func NewHttpAPIHandler(ctx context.Context, cfg *config.Config, log *logger.Logger, e *echo.Echo, service *service.Service) *HttpAPIHandler {
	e.Validator = &requestValidator{}
	return &HttpAPIHandler{
		cfg:     cfg,
		log:     log,
		echo:    e,
		service: service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	metricsPath := ""
	if h.cfg.Metrics.Enabled {
		metricsPath = h.cfg.Metrics.Path
		h.echo.GET(metricsPath, echo.WrapHandler(metrics.Handler()))
	}
	if h.cfg.API.RateLimit > 0 {
		h.echo.Use(middleware.NewRateLimiterMiddleware(h.cfg.API.RateLimit, h.cfg.API.RateBurst, metricsPath))
	}

	base := h.echo.Group("/api")
	h.SetupCharts(base)
	h.SetupJobs(base)
	h.SetupPreview(h.echo.Group(""))
}

// requestValidator runs the chart validation rules on bound requests.
type requestValidator struct{}

func (requestValidator) Validate(i interface{}) error {
	return types.Validate(i)
}

// respondError maps service errors onto status codes: validation failures are the
// caller's fault, unknown ids are 404 and everything else is ours.
func (h *HttpAPIHandler) respondError(c echo.Context, err error) error {
	var response *dto.BaseResponse
	var validationErrs goValidator.ValidationErrors
	switch {
	case errors.Is(err, types.ErrValidation), errors.As(err, &validationErrs):
		response = dto.NewBadRequestResponse(err.Error())
	case errors.Is(err, types.ErrNotFound):
		response = dto.NewNotFoundResponse(err.Error())
	default:
		h.log.ErrorContext(c.Request().Context(), "Request failed",
			logger.ErrorField(err),
			logger.StringField("method", c.Request().Method),
			logger.StringField("path", c.Path()))
		response = dto.NewInternalErrorResponse(http.StatusText(http.StatusInternalServerError))
	}
	return c.JSON(response.Code, response)
}

// bind decodes the request into req and validates it.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return bindError(err)
	}
	return c.Validate(req)
}

func bindError(err error) error {
	return types.NewValidationError("body", nil, "invalid request: "+bindMessage(err))
}

func bindMessage(err error) string {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return msg
		}
	}
	return err.Error()
}
