package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"golang-lwcharts/config"
	"golang-lwcharts/internal/builder"
	"golang-lwcharts/internal/dto"
	"golang-lwcharts/internal/model"
	"golang-lwcharts/pkg/cache"
	"golang-lwcharts/pkg/logger"
	"golang-lwcharts/pkg/lwc/types"
	"golang-lwcharts/pkg/utils"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Scheduler: config.Scheduler{Enabled: true, Cron: "@every 1m", MaxConcurrency: 2, TimeoutDuration: time.Second},
		Chart: config.Chart{
			Height:          400,
			BackgroundColor: "#ffffff",
			TextColor:       "#000000",
			MaxBars:         500,
			DefaultRange:    "3m",
			DefaultInterval: "1d",
		},
	}
}

type fakeCandleRepo struct {
	mu     sync.Mutex
	params []dto.GetMarketDataParam
	fail   map[string]error
}

func (f *fakeCandleRepo) Get(_ context.Context, param dto.GetMarketDataParam) (*dto.MarketData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.params = append(f.params, param)
	if err := f.fail[param.Symbol]; err != nil {
		return nil, err
	}
	ohlcv := make([]dto.OHLCV, 0, 30)
	for i := 0; i < 30; i++ {
		c := 100 + float64(i%7)
		ohlcv = append(ohlcv, dto.OHLCV{
			Timestamp: 1700000000 + int64(i)*86400,
			Open:      c - 1,
			High:      c + 2,
			Low:       c - 2,
			Close:     c,
			Volume:    1000,
		})
	}
	return &dto.MarketData{
		Symbol:      param.Symbol,
		Exchange:    param.Exchange,
		MarketPrice: 103,
		Range:       param.Range,
		Interval:    param.Interval,
		OHLCV:       ohlcv,
	}, nil
}

func (f *fakeCandleRepo) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.params)
}

type fakeChartRepo struct {
	mu        sync.Mutex
	charts    map[string]*model.SavedChart
	due       []model.SavedChart
	histories []model.ChartRefreshHistory
	updates   int
	findErr   error
}

func newFakeChartRepo() *fakeChartRepo {
	return &fakeChartRepo{charts: make(map[string]*model.SavedChart)}
}

func (f *fakeChartRepo) Create(_ context.Context, chart *model.SavedChart, _ ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	chart.CreatedAt, chart.UpdatedAt = fixedNow, fixedNow
	cp := *chart
	f.charts[chart.ID] = &cp
	return nil
}

func (f *fakeChartRepo) Update(_ context.Context, chart *model.SavedChart, _ ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *chart
	f.charts[chart.ID] = &cp
	f.updates++
	return nil
}

func (f *fakeChartRepo) FindByID(_ context.Context, id string, _ ...utils.DBOption) (*model.SavedChart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.charts[id]
	if !ok {
		return nil, fmt.Errorf("chart %s: %w", id, types.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeChartRepo) Get(_ context.Context, param model.GetChartsParam, _ ...utils.DBOption) ([]model.SavedChart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.SavedChart
	for _, c := range f.charts {
		if param.Kind == "" || param.Kind == c.Kind {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeChartRepo) Delete(_ context.Context, id string, _ ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.charts[id]; !ok {
		return fmt.Errorf("chart %s: %w", id, types.ErrNotFound)
	}
	delete(f.charts, id)
	return nil
}

func (f *fakeChartRepo) FindDueForRefresh(_ context.Context, _ time.Time, _ int, _ ...utils.DBOption) ([]model.SavedChart, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.due, nil
}

func (f *fakeChartRepo) CreateRefreshHistory(_ context.Context, history *model.ChartRefreshHistory, _ ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	history.ID = uint(len(f.histories) + 1)
	f.histories = append(f.histories, *history)
	return nil
}

func (f *fakeChartRepo) UpdateRefreshHistory(_ context.Context, history *model.ChartRefreshHistory, _ ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if history.ID == 0 || int(history.ID) > len(f.histories) {
		return errors.New("unknown history")
	}
	f.histories[history.ID-1] = *history
	return nil
}

func (f *fakeChartRepo) history(chartID string) (model.ChartRefreshHistory, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.histories {
		if h.ChartID == chartID {
			return h, true
		}
	}
	return model.ChartRefreshHistory{}, false
}

type fakeUnitOfWork struct{}

func (fakeUnitOfWork) Begin() *gorm.DB { return nil }

func (fakeUnitOfWork) Commit() error { return nil }

func (fakeUnitOfWork) Rollback() error { return nil }

func (fakeUnitOfWork) Run(fn func(opts ...utils.DBOption) error) error {
	return fn()
}

type testDeps struct {
	cfg     *config.Config
	candles *fakeCandleRepo
	charts  *fakeChartRepo
	cache   cache.Cache
	service *chartService
}

func newTestChartService() *testDeps {
	cfg := testConfig()
	d := &testDeps{
		cfg:     cfg,
		candles: &fakeCandleRepo{fail: map[string]error{}},
		charts:  newFakeChartRepo(),
		cache:   cache.NewCache(time.Minute, time.Minute),
	}
	b := builder.New(builder.Defaults{
		Height:          cfg.Chart.Height,
		BackgroundColor: cfg.Chart.BackgroundColor,
		TextColor:       cfg.Chart.TextColor,
	}, logger.Nop())
	d.service = NewChartService(cfg, logger.Nop(), b, d.cache, d.charts, d.candles).(*chartService)
	d.service.now = func() time.Time { return fixedNow }
	return d
}
