package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"golang-lwcharts/internal/model"
	"golang-lwcharts/pkg/common"
	"golang-lwcharts/pkg/logger"
	"golang-lwcharts/pkg/lwc/types"
)

func newTestScheduler(d *testDeps) *schedulerService {
	s := NewSchedulerService(d.cfg, logger.Nop(), d.charts, fakeUnitOfWork{}, d.service).(*schedulerService)
	s.now = func() time.Time { return fixedNow }
	return s
}

func marketChart(id, symbol, cron string) model.SavedChart {
	return model.SavedChart{
		ID:          id,
		Name:        symbol,
		Kind:        common.CHART_KIND_MARKET,
		Request:     datatypes.JSON(`{"symbol":"` + symbol + `","interval":"1d"}`),
		RefreshCron: cron,
	}
}

func TestSchedulerService_Execute(t *testing.T) {
	d := newTestChartService()
	d.candles.fail["BROKEN"] = errors.New("upstream down")
	d.charts.due = []model.SavedChart{
		marketChart("a", "AAPL", "@hourly"),
		marketChart("b", "BROKEN", "*/15 * * * *"),
		marketChart("c", "MSFT", "not a cron"),
	}
	s := newTestScheduler(d)

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, 3, d.charts.updates)

	tests := []struct {
		id         string
		wantStatus string
		wantNext   *time.Time
		refreshed  bool
	}{
		{id: "a", wantStatus: model.RefreshStatusCompleted, wantNext: ptr(fixedNow.Add(time.Hour)), refreshed: true},
		{id: "b", wantStatus: model.RefreshStatusFailed, wantNext: ptr(fixedNow.Add(15 * time.Minute))},
		{id: "c", wantStatus: model.RefreshStatusCompleted, refreshed: true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			h, ok := d.charts.history(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, h.Status)
			require.NotNil(t, h.CompletedAt)

			saved, err := d.charts.FindByID(context.Background(), tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNext, saved.NextRefreshAt)
			if tt.refreshed {
				assert.NotEmpty(t, saved.Config)
				require.NotNil(t, saved.LastRefreshedAt)
			} else {
				assert.Empty(t, saved.Config)
				assert.Nil(t, saved.LastRefreshedAt)
				assert.Contains(t, h.Error, "upstream down")
			}
		})
	}
}

func TestSchedulerService_ExecuteFindError(t *testing.T) {
	d := newTestChartService()
	d.charts.findErr = errors.New("db down")
	assert.Error(t, newTestScheduler(d).Execute(context.Background()))
}

func TestSchedulerService_RefreshChart(t *testing.T) {
	d := newTestChartService()
	s := newTestScheduler(d)
	ctx := context.Background()

	assert.ErrorIs(t, s.RefreshChart(ctx, "missing"), types.ErrNotFound)

	spec := model.SavedChart{ID: "spec", Kind: common.CHART_KIND_SPEC, Request: datatypes.JSON(`{}`)}
	require.NoError(t, d.charts.Create(ctx, &spec))
	assert.ErrorIs(t, s.RefreshChart(ctx, "spec"), types.ErrValidation)

	market := marketChart("m", "AAPL", "")
	require.NoError(t, d.charts.Create(ctx, &market))
	require.NoError(t, s.RefreshChart(ctx, "m"))
	saved, err := d.charts.FindByID(ctx, "m")
	require.NoError(t, err)
	assert.NotEmpty(t, saved.Config)
	assert.Nil(t, saved.NextRefreshAt)
}

func TestSchedulerService_StartStop(t *testing.T) {
	d := newTestChartService()

	d.cfg.Scheduler.Cron = "whenever"
	assert.Error(t, newTestScheduler(d).Start(context.Background()))

	d.cfg.Scheduler.Cron = "@every 1h"
	s := newTestScheduler(d)
	require.NoError(t, s.Start(context.Background()))
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()

	d.cfg.Scheduler.Enabled = false
	s = newTestScheduler(d)
	require.NoError(t, s.Start(context.Background()))
	assert.Empty(t, s.cron.Entries())
}

func ptr(t time.Time) *time.Time { return &t }
