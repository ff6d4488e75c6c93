package repository

import (
	"context"
	"fmt"
	"strings"

	"golang-lwcharts/internal/dto"
	"golang-lwcharts/pkg/common"
)

type CandleRepository interface {
	Get(ctx context.Context, param dto.GetMarketDataParam) (*dto.MarketData, error)
}

type candleRepository struct {
	binanceRepo BinanceRepository
	yahooRepo   YahooFinanceRepository
}

func NewCandleRepository(binanceRepo BinanceRepository, yahooRepo YahooFinanceRepository) CandleRepository {
	return &candleRepository{
		binanceRepo: binanceRepo,
		yahooRepo:   yahooRepo,
	}
}

// Get routes the request by exchange; an empty exchange means Yahoo Finance.
func (r *candleRepository) Get(ctx context.Context, param dto.GetMarketDataParam) (*dto.MarketData, error) {
	switch strings.ToUpper(param.Exchange) {
	case common.EXCHANGE_BINANCE:
		return r.binanceRepo.Get(ctx, param)
	case common.EXCHANGE_YAHOO, "":
		return r.yahooRepo.Get(ctx, param)
	}
	return nil, fmt.Errorf("unsupported exchange %q, expected one of %v", param.Exchange, common.GetExchangeList())
}
