package cmd

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"golang-lwcharts/config"
	"golang-lwcharts/pkg/cache"
	"golang-lwcharts/pkg/logger"
	"golang-lwcharts/pkg/postgres"
)

type AppDependency struct {
	db    *postgres.DB
	cfg   *config.Config
	log   *logger.Logger
	echo  *echo.Echo
	cache cache.Cache
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.NewWithOptions(logger.Options{
		Level:      cfg.Log.Level,
		Encoding:   cfg.Log.Encoding,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	db, err := postgres.NewDB(cfg.DB, log)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	return &AppDependency{
		cfg:   cfg,
		log:   log,
		db:    db,
		echo:  e,
		cache: cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
	}, nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	defer func() { _ = d.log.Sync() }()
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
