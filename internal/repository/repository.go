package repository

import (
	"gorm.io/gorm"

	"golang-lwcharts/config"
	"golang-lwcharts/pkg/logger"
)

type Repository struct {
	ChartRepo        ChartRepository
	CandleRepo       CandleRepository
	BinanceRepo      BinanceRepository
	YahooFinanceRepo YahooFinanceRepository
	UnitOfWork       UnitOfWork
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) *Repository {
	binanceRepo := NewBinanceRepository(cfg, log)
	yahooRepo := NewYahooFinanceRepository(cfg, log)
	return &Repository{
		ChartRepo:        NewChartRepository(db),
		CandleRepo:       NewCandleRepository(binanceRepo, yahooRepo),
		BinanceRepo:      binanceRepo,
		YahooFinanceRepo: yahooRepo,
		UnitOfWork:       NewUnitOfWork(db),
	}
}
