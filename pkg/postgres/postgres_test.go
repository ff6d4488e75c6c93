package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"

	"golang-lwcharts/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Database{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "lwcharts", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=lwcharts port=5432 sslmode=disable", DSN(cfg))
	assert.Equal(t, "postgres://u:p@db:5432/lwcharts?sslmode=disable", MigrationURL(cfg))

	cfg.TimeZone = "UTC"
	assert.Contains(t, DSN(cfg), " TimeZone=UTC")
}

func TestGormLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  gormlogger.LogLevel
	}{
		{name: "silent", level: "Silent", want: gormlogger.Silent},
		{name: "error", level: "error", want: gormlogger.Error},
		{name: "info", level: "Info", want: gormlogger.Info},
		{name: "unknown falls back to warn", level: "loud", want: gormlogger.Warn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gormLogLevel(tt.level))
		})
	}
}
