package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SavedChart is a stored chart definition together with its last rendered config.
// Request holds the dto.ChartSpec or dto.MarketChartRequest it was built from.
type SavedChart struct {
	ID              string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string         `gorm:"type:varchar(200);not null" json:"name"`
	Kind            string         `gorm:"type:varchar(20);not null;index" json:"kind"`
	Request         datatypes.JSON `gorm:"type:jsonb;not null" json:"request"`
	Config          datatypes.JSON `gorm:"type:jsonb" json:"config"`
	RefreshCron     string         `gorm:"type:varchar(100)" json:"refresh_cron"`
	NextRefreshAt   *time.Time     `gorm:"index" json:"next_refresh_at"`
	LastRefreshedAt *time.Time     `json:"last_refreshed_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SavedChart) TableName() string {
	return "charts"
}

type GetChartsParam struct {
	Kind  string `json:"kind"`
	Limit int    `json:"limit"`
}
