package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
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

const binanceMaxKlines = 1000

type BinanceRepository interface {
	GetKlines(ctx context.Context, symbol string, interval string, limit int, startTime, endTime int64) ([]dto.BinanceKlines, error)
	GetLastPrice(ctx context.Context, symbol string) (*dto.BinancePrice, error)
	Get(ctx context.Context, param dto.GetMarketDataParam) (*dto.MarketData, error)
}

type binanceRepository struct {
	httpClient     httpclient.HTTPClient
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	now            func() time.Time
}

func NewBinanceRepository(cfg *config.Config, log *logger.Logger) BinanceRepository {
	return &binanceRepository{
		httpClient:     httpclient.New(log, cfg.Binance.BaseURL, cfg.Binance.Timeout, ""),
		logger:         log,
		requestLimiter: rate.NewLimiter(ratelimit.PerMinute(cfg.Binance.MaxRequestPerMinute), 1),
		now:            time.Now,
	}
}

func (r *binanceRepository) GetKlines(ctx context.Context, symbol string, interval string, limit int, startTime, endTime int64) ([]dto.BinanceKlines, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/api/v3/klines"
	queryParams := map[string]string{
		"symbol":   symbol,
		"interval": interval,
		"limit":    strconv.Itoa(limit),
	}
	if startTime > 0 {
		queryParams["startTime"] = strconv.FormatInt(startTime, 10)
	}
	if endTime > 0 {
		queryParams["endTime"] = strconv.FormatInt(endTime, 10)
	}

	var klines [][]json.RawMessage
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &klines)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch klines from binance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Binance API returned Non-OK status for klines",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("binance api returned status: %d", resp.StatusCode)
	}

	result := make([]dto.BinanceKlines, 0, len(klines))
	for i, k := range klines {
		kline, err := parseKline(k)
		if err != nil {
			return nil, fmt.Errorf("kline %d: %w", i, err)
		}
		result = append(result, kline)
	}
	return result, nil
}

// parseKline decodes one kline row. Prices arrive as strings, times and counts as numbers.
func parseKline(k []json.RawMessage) (dto.BinanceKlines, error) {
	if len(k) < 9 {
		return dto.BinanceKlines{}, fmt.Errorf("expected at least 9 fields, got %d", len(k))
	}
	var kline dto.BinanceKlines
	if err := json.Unmarshal(k[0], &kline.OpenTime); err != nil {
		return kline, fmt.Errorf("open time: %w", err)
	}
	if err := json.Unmarshal(k[6], &kline.CloseTime); err != nil {
		return kline, fmt.Errorf("close time: %w", err)
	}
	if err := json.Unmarshal(k[8], &kline.NumberOfTrades); err != nil {
		return kline, fmt.Errorf("trades: %w", err)
	}
	priceFields := []int{1, 2, 3, 4, 5, 7}
	values := make([]float64, len(priceFields))
	for j, idx := range priceFields {
		var raw string
		if err := json.Unmarshal(k[idx], &raw); err != nil {
			return kline, fmt.Errorf("field %d: %w", idx, err)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return kline, fmt.Errorf("field %d: %w", idx, err)
		}
		values[j] = v
	}
	kline.Open, kline.High, kline.Low, kline.Close, kline.Volume, kline.QuoteAssetVolume =
		values[0], values[1], values[2], values[3], values[4], values[5]
	return kline, nil
}

func (r *binanceRepository) Get(ctx context.Context, param dto.GetMarketDataParam) (md *dto.MarketData, err error) {
	start := time.Now()
	defer func() { metrics.ObserveMarketFetch(common.EXCHANGE_BINANCE, start, err) }()

	var startTime, endTime int64
	if param.Range != "" {
		lookback, err := utils.ParseRange(param.Range)
		if err != nil {
			return nil, err
		}
		now := r.now()
		startTime, endTime = now.Add(-lookback).UnixMilli(), now.UnixMilli()
	}
	limit := param.Limit
	if limit <= 0 || limit > binanceMaxKlines {
		limit = binanceMaxKlines
	}

	klines, err := r.GetKlines(ctx, param.Symbol, param.Interval, limit, startTime, endTime)
	if err != nil {
		return nil, err
	}
	if len(klines) == 0 {
		return nil, fmt.Errorf("no klines returned for symbol: %s", param.Symbol)
	}

	ohlcv := make([]dto.OHLCV, 0, len(klines))
	for _, k := range klines {
		ohlcv = append(ohlcv, dto.OHLCV{
			Timestamp: k.OpenTime / 1000,
			Open:      k.Open,
			High:      k.High,
			Low:       k.Low,
			Close:     k.Close,
			Volume:    k.Volume,
		})
	}

	lastPrice, err := r.GetLastPrice(ctx, param.Symbol)
	if err != nil {
		return nil, err
	}

	return &dto.MarketData{
		Symbol:      param.Symbol,
		Exchange:    common.EXCHANGE_BINANCE,
		MarketPrice: lastPrice.Price,
		Range:       param.Range,
		Interval:    param.Interval,
		OHLCV:       ohlcv,
	}, nil
}

func (r *binanceRepository) GetLastPrice(ctx context.Context, symbol string) (*dto.BinancePrice, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/api/v3/ticker/price"
	queryParams := map[string]string{
		"symbol": symbol,
	}

	var respData map[string]string
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &respData)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last price from binance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Binance API returned Non-OK status for price",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("binance api returned status: %d", resp.StatusCode)
	}

	price, err := strconv.ParseFloat(respData["price"], 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price from binance: %w", err)
	}

	return &dto.BinancePrice{
		Symbol: symbol,
		Price:  price,
	}, nil
}
