package builder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-lwcharts/internal/dto"
	"golang-lwcharts/pkg/lwc/data"
	"golang-lwcharts/pkg/lwc/series"
	"golang-lwcharts/pkg/lwc/types"
)

func newBuilder() *Builder {
	return New(Defaults{Height: 480, BackgroundColor: "#000000", TextColor: "#eeeeee"}, nil)
}

func lineSpec() dto.SeriesSpec {
	return dto.SeriesSpec{
		Type:  "line",
		Title: "close",
		Color: "#ff0000",
		Data: []data.Record{
			{"time": float64(1700000060), "value": 2.5},
			{"time": float64(1700000000), "value": 1.5},
		},
	}
}

func TestBuilder_Build(t *testing.T) {
	price := 101.0
	spec := dto.ChartSpec{
		ID:    "spec-chart",
		Title: "BTC",
		Options: &dto.ChartOptionsSpec{
			Height:        300,
			TextColor:     "#333333",
			CrosshairMode: "magnet",
			PaneHeights:   map[int]float64{0: 3, 1: 1},
		},
		Series: []dto.SeriesSpec{
			{
				Type:    "candlestick",
				Columns: map[string]string{"time": "ts", "open": "o", "high": "h", "low": "l", "close": "c"},
				Data: []data.Record{
					{"ts": "2024-01-02", "o": 1.0, "h": 3.0, "l": 0.5, "c": 2.0},
				},
				Markers: []dto.MarkerSpec{
					{Time: "2024-01-02", Position: "aboveBar", Shape: "arrowDown", Text: "sell"},
					{Time: "2024-01-02", Position: "atPriceTop", Shape: "circle", Price: &price},
				},
				PriceLines: []dto.PriceLineSpec{{Price: 2, Title: "target", Color: "#00ff00", LineStyle: 2}},
			},
			func() dto.SeriesSpec { s := lineSpec(); s.PaneID = 1; return s }(),
		},
		Annotations: []dto.AnnotationSpec{
			{Layer: "notes", Time: "2024-01-02", Price: 2, Text: "breakout", Type: "arrow", FontSize: 14},
		},
		HiddenLayers: []string{"notes"},
		Tooltips:     []dto.TooltipSpec{{Name: "main", Preset: "ohlc"}},
		Trades: []dto.TradeSpec{
			{EntryTime: "2024-01-02", EntryPrice: 1, ExitTime: "2024-01-03", ExitPrice: 2, Quantity: 1, Type: "long"},
		},
		TradeVisualization: "both",
	}

	c, err := newBuilder().Build(spec)
	require.NoError(t, err)

	assert.Equal(t, "spec-chart", c.ID)
	assert.Equal(t, 300, c.Options.Height)
	assert.Equal(t, "#333333", c.Options.Layout.TextColor)
	assert.Equal(t, "#000000", c.Options.Layout.Background.Color)
	assert.Equal(t, types.CrosshairModeMagnet, c.Options.Crosshair.Mode)
	require.Len(t, c.Series, 2)

	candles := c.Series[0].(*series.Candlestick)
	assert.Equal(t, "BTC", candles.Title, "chart title falls back onto the first series")
	assert.Len(t, candles.Markers, 2)
	require.Len(t, candles.PriceLines, 1)
	assert.Equal(t, types.LineStyleDashed, candles.PriceLines[0].LineStyle)

	line := c.Series[1].(*series.Line)
	assert.Equal(t, 1, line.PaneID)
	assert.Equal(t, "#ff0000", line.Options.Color)

	layer := c.Annotations.Layer("notes")
	require.NotNil(t, layer)
	assert.False(t, layer.Visible)
	assert.Equal(t, 1, c.Tooltips.Len())
	assert.Len(t, c.Trades, 1)
	assert.Equal(t, types.TradeVisualizationBoth, c.Options.TradeVisualization.Style)

	cfg, err := c.ToFrontendConfig()
	require.NoError(t, err)
	obj := cfg["charts"].([]any)[0].(map[string]any)
	heights := obj["chart"].(map[string]any)["layout"].(map[string]any)["paneHeights"]
	assert.Equal(t, map[string]any{"0": map[string]any{"factor": 3.0}, "1": map[string]any{"factor": 1.0}}, heights)
}

func TestBuilder_BuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.ChartSpec)
		wantErr error
	}{
		{
			name:    "no series",
			mutate:  func(s *dto.ChartSpec) { s.Series = nil },
			wantErr: types.ErrRequiredField,
		},
		{
			name:    "unknown series type",
			mutate:  func(s *dto.ChartSpec) { s.Series[0].Type = "pie" },
			wantErr: types.ErrValidation,
		},
		{
			name:    "bad color",
			mutate:  func(s *dto.ChartSpec) { s.Series[0].Color = "reddish" },
			wantErr: types.ErrInvalidColor,
		},
		{
			name:    "missing value column",
			mutate:  func(s *dto.ChartSpec) { s.Series[0].Columns = map[string]string{"value": "close"} },
			wantErr: types.ErrRequiredField,
		},
		{
			name: "bad marker shape",
			mutate: func(s *dto.ChartSpec) {
				s.Series[0].Markers = []dto.MarkerSpec{{Time: 1700000000, Position: "aboveBar", Shape: "star"}}
			},
			wantErr: types.ErrValidation,
		},
		{
			name:    "unknown hidden layer",
			mutate:  func(s *dto.ChartSpec) { s.HiddenLayers = []string{"missing"} },
			wantErr: types.ErrNotFound,
		},
		{
			name: "gradient without top color",
			mutate: func(s *dto.ChartSpec) {
				s.Options = &dto.ChartOptionsSpec{BackgroundGradient: "#111111"}
			},
			wantErr: types.ErrRequiredField,
		},
		{
			name:    "negative pane",
			mutate:  func(s *dto.ChartSpec) { s.Series[0].PaneID = -1 },
			wantErr: types.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := dto.ChartSpec{Series: []dto.SeriesSpec{lineSpec()}}
			tt.mutate(&spec)
			_, err := newBuilder().Build(spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestBuilder_AllSeriesTypes(t *testing.T) {
	ts := float64(1700000000)
	tests := []struct {
		name string
		spec dto.SeriesSpec
		want types.ChartType
	}{
		{name: "area", spec: dto.SeriesSpec{Type: "area", Color: "#123456", LineWidth: 3, Data: []data.Record{{"time": ts, "value": 1.0}}}, want: types.ChartTypeArea},
		{name: "histogram", spec: dto.SeriesSpec{Type: "histogram", Color: "#123456", Data: []data.Record{{"time": ts, "value": 1.0}}}, want: types.ChartTypeHistogram},
		{name: "baseline", spec: dto.SeriesSpec{Type: "baseline", BaseValue: 5, Data: []data.Record{{"time": ts, "value": 1.0}}}, want: types.ChartTypeBaseline},
		{name: "bar", spec: dto.SeriesSpec{Type: "bar", Data: []data.Record{{"time": ts, "open": 1.0, "high": 2.0, "low": 0.5, "close": 1.5}}}, want: types.ChartTypeBar},
		{name: "band", spec: dto.SeriesSpec{Type: "band", Data: []data.Record{{"time": ts, "upper": 3.0, "middle": 2.0, "lower": 1.0}}}, want: types.ChartTypeBand},
		{name: "ribbon", spec: dto.SeriesSpec{Type: "ribbon", Data: []data.Record{{"time": ts, "upper": 3.0, "lower": 1.0}}}, want: types.ChartTypeRibbon},
		{name: "signal", spec: dto.SeriesSpec{Type: "signal", Data: []data.Record{{"time": ts, "value": 1}}}, want: types.ChartTypeSignal},
		{name: "trend fill", spec: dto.SeriesSpec{Type: "trend_fill", Data: []data.Record{{"time": ts, "trend_line": 2.0, "base_line": 1.0, "trend_direction": 1}}}, want: types.ChartTypeTrendFill},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hidden := false
			tt.spec.Visible = &hidden
			tt.spec.PriceScaleID = "overlay"
			c, err := newBuilder().Build(dto.ChartSpec{Series: []dto.SeriesSpec{tt.spec}})
			require.NoError(t, err)
			require.Len(t, c.Series, 1)
			s := c.Series[0]
			assert.Equal(t, tt.want, s.ChartType())
			assert.Equal(t, 1, s.Len())
			assert.False(t, s.Core().Visible)
			assert.Contains(t, c.Options.OverlayPriceScales, "overlay")
		})
	}
}

func TestBuilder_Tooltips(t *testing.T) {
	precision := 1
	tests := []struct {
		name    string
		spec    dto.TooltipSpec
		wantErr bool
	}{
		{name: "trade preset", spec: dto.TooltipSpec{Name: "t", Preset: "trade"}},
		{name: "multi", spec: dto.TooltipSpec{Name: "m", Preset: "multi", Series: []string{"a", "b"}}},
		{name: "multi without series", spec: dto.TooltipSpec{Name: "m", Preset: "multi"}, wantErr: true},
		{
			name: "custom",
			spec: dto.TooltipSpec{Name: "c", Preset: "custom", Template: "{price}",
				Fields: []dto.TooltipFieldSpec{{Label: "Price", ValueKey: "price", Precision: &precision, Prefix: "$"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := dto.ChartSpec{Series: []dto.SeriesSpec{lineSpec()}, Tooltips: []dto.TooltipSpec{tt.spec}}
			c, err := newBuilder().Build(spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, ok := c.Tooltips.Get(tt.spec.Name)
			assert.True(t, ok)
		})
	}
}

func TestNewChart_Defaults(t *testing.T) {
	c := newBuilder().NewChart("", 2)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, 2, c.GroupID)
	assert.Equal(t, 480, c.Options.Height)
	assert.Equal(t, "#eeeeee", c.Options.Layout.TextColor)
}
