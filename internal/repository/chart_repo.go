package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"golang-lwcharts/internal/model"
	"golang-lwcharts/pkg/lwc/types"
	"golang-lwcharts/pkg/utils"
)

type ChartRepository interface {
	Create(ctx context.Context, chart *model.SavedChart, opts ...utils.DBOption) error
	Update(ctx context.Context, chart *model.SavedChart, opts ...utils.DBOption) error
	FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.SavedChart, error)
	Get(ctx context.Context, param model.GetChartsParam, opts ...utils.DBOption) ([]model.SavedChart, error)
	Delete(ctx context.Context, id string, opts ...utils.DBOption) error
	FindDueForRefresh(ctx context.Context, now time.Time, limit int, opts ...utils.DBOption) ([]model.SavedChart, error)
	CreateRefreshHistory(ctx context.Context, history *model.ChartRefreshHistory, opts ...utils.DBOption) error
	UpdateRefreshHistory(ctx context.Context, history *model.ChartRefreshHistory, opts ...utils.DBOption) error
}

type chartRepository struct {
	db *gorm.DB
}

func NewChartRepository(db *gorm.DB) ChartRepository {
	return &chartRepository{db: db}
}

func (r *chartRepository) Create(ctx context.Context, chart *model.SavedChart, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(chart).Error
}

func (r *chartRepository) Update(ctx context.Context, chart *model.SavedChart, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Save(chart).Error
}

func (r *chartRepository) FindByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.SavedChart, error) {
	var chart model.SavedChart
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Where("id = ?", id).First(&chart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("chart %s: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &chart, nil
}

func (r *chartRepository) Get(ctx context.Context, param model.GetChartsParam, opts ...utils.DBOption) ([]model.SavedChart, error) {
	var charts []model.SavedChart
	db := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	if param.Kind != "" {
		db = db.Where("kind = ?", param.Kind)
	}
	db = utils.ApplyOptions(db, utils.WithOrder("created_at DESC"), utils.WithLimit(param.Limit))
	if err := db.Find(&charts).Error; err != nil {
		return nil, err
	}
	return charts, nil
}

func (r *chartRepository) Delete(ctx context.Context, id string, opts ...utils.DBOption) error {
	res := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Where("id = ?", id).Delete(&model.SavedChart{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("chart %s: %w", id, types.ErrNotFound)
	}
	return nil
}

// FindDueForRefresh returns charts with a refresh schedule whose next refresh is at or before now.
func (r *chartRepository) FindDueForRefresh(ctx context.Context, now time.Time, limit int, opts ...utils.DBOption) ([]model.SavedChart, error) {
	var charts []model.SavedChart
	opts = append(opts,
		utils.WithWhere("refresh_cron <> '' AND (next_refresh_at IS NULL OR next_refresh_at <= ?)", now),
		utils.WithOrder("next_refresh_at ASC NULLS FIRST"),
		utils.WithLimit(limit),
	)
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Find(&charts).Error
	if err != nil {
		return nil, err
	}
	return charts, nil
}

func (r *chartRepository) CreateRefreshHistory(ctx context.Context, history *model.ChartRefreshHistory, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(history).Error
}

func (r *chartRepository) UpdateRefreshHistory(ctx context.Context, history *model.ChartRefreshHistory, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Updates(history).Error
}
