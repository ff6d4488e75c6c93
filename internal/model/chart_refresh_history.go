package model

import "time"

const (
	RefreshStatusRunning   = "running"
	RefreshStatusCompleted = "completed"
	RefreshStatusFailed    = "failed"
)

// ChartRefreshHistory records one scheduled rebuild of a saved market chart.
type ChartRefreshHistory struct {
	ID          uint      `gorm:"primaryKey"`
	ChartID     string    `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(20);not null"`
	Error       string    `gorm:"type:text"`
	StartedAt   time.Time `gorm:"not null"`
	CompletedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (ChartRefreshHistory) TableName() string {
	return "chart_refresh_histories"
}
