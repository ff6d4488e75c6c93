package service

import (
	"golang-lwcharts/config"
	"golang-lwcharts/internal/builder"
	"golang-lwcharts/internal/repository"
	"golang-lwcharts/pkg/cache"
	"golang-lwcharts/pkg/logger"
)

type Service struct {
	ChartService     ChartService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	chartBuilder := builder.New(builder.Defaults{
		Height:          cfg.Chart.Height,
		BackgroundColor: cfg.Chart.BackgroundColor,
		TextColor:       cfg.Chart.TextColor,
	}, log)

	chartService := NewChartService(cfg, log, chartBuilder, inmemoryCache, repo.ChartRepo, repo.CandleRepo)
	schedulerService := NewSchedulerService(cfg, log, repo.ChartRepo, repo.UnitOfWork, chartService)
	return &Service{
		ChartService:     chartService,
		SchedulerService: schedulerService,
	}
}
