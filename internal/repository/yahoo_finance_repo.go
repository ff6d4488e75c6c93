package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"golang-lwcharts/config"
	"golang-lwcharts/internal/dto"
	"golang-lwcharts/pkg/common"
	"golang-lwcharts/pkg/httpclient"
	"golang-lwcharts/pkg/logger"
	"golang-lwcharts/pkg/metrics"
	"golang-lwcharts/pkg/ratelimit"
	"golang-lwcharts/pkg/utils"
)

type YahooFinanceRepository interface {
	Get(ctx context.Context, param dto.GetMarketDataParam) (*dto.MarketData, error)
}

type yahooFinanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	now            func() time.Time
}

// NewYahooFinanceRepository creates a new instance of yahooFinanceRepository.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	return &yahooFinanceRepository{
		httpClient:     httpclient.New(log, cfg.YahooFinance.BaseURL, cfg.YahooFinance.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(ratelimit.PerMinute(cfg.YahooFinance.MaxRequestPerMinute), 1),
		now:            time.Now,
	}
}

func (r *yahooFinanceRepository) Get(ctx context.Context, param dto.GetMarketDataParam) (md *dto.MarketData, err error) {
	start := time.Now()
	defer func() { metrics.ObserveMarketFetch(common.EXCHANGE_YAHOO, start, err) }()

	if !r.requestLimiter.Allow() {
		r.logger.WarnContext(ctx, "Yahoo Finance API request limit exceeded, waiting",
			logger.IntField("max_request_per_minute", r.cfg.YahooFinance.MaxRequestPerMinute))
		if err := r.requestLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	lookback, err := utils.ParseRange(param.Range)
	if err != nil {
		return nil, err
	}
	now := r.now()

	endpoint := "/" + url.PathEscape(param.Symbol)
	queryParams := map[string]string{
		"period1":        strconv.FormatInt(now.Add(-lookback).Unix(), 10),
		"period2":        strconv.FormatInt(now.Unix(), 10),
		"interval":       param.Interval,
		"includePrePost": "false",
		"events":         "div,split",
	}

	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://finance.yahoo.com/",
	}

	var yahooResp dto.YahooFinanceResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from yahoo finance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Yahoo Finance API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("yahoo finance api returned status: %d", resp.StatusCode)
	}

	if e := yahooResp.Chart.Error; e != nil {
		return nil, fmt.Errorf("yahoo finance api error: %s: %s", e.Code, e.Description)
	}
	if len(yahooResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no data returned for symbol: %s", param.Symbol)
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data available for symbol: %s", param.Symbol)
	}
	quote := result.Indicators.Quote[0]

	ohlcv := make([]dto.OHLCV, 0, len(result.Timestamp))
	for i, timestamp := range result.Timestamp {
		open, high, low, closePrice := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		// bars without a trade come back as nulls
		if open == nil || high == nil || low == nil || closePrice == nil {
			continue
		}
		volume := 0.0
		if v := at(quote.Volume, i); v != nil {
			volume = *v
		}
		ohlcv = append(ohlcv, dto.OHLCV{
			Timestamp: timestamp,
			Open:      *open,
			High:      *high,
			Low:       *low,
			Close:     *closePrice,
			Volume:    volume,
		})
	}

	if len(ohlcv) == 0 {
		return nil, fmt.Errorf("no valid OHLCV data found for symbol: %s", param.Symbol)
	}
	if param.Limit > 0 && len(ohlcv) > param.Limit {
		ohlcv = ohlcv[len(ohlcv)-param.Limit:]
	}

	return &dto.MarketData{
		Symbol:      param.Symbol,
		Exchange:    common.EXCHANGE_YAHOO,
		MarketPrice: result.Meta.RegularMarketPrice,
		OHLCV:       ohlcv,
		Range:       param.Range,
		Interval:    param.Interval,
	}, nil
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
