package chart

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"golang-lwcharts/pkg/logger"
	"golang-lwcharts/pkg/lwc/annotation"
	"golang-lwcharts/pkg/lwc/data"
	"golang-lwcharts/pkg/lwc/options"
	"golang-lwcharts/pkg/lwc/series"
	"golang-lwcharts/pkg/lwc/tooltip"
	"golang-lwcharts/pkg/lwc/types"
)

func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.Logger{Logger: zap.New(core)}, logs
}

func bars(t *testing.T) []data.OhlcvData {
	t.Helper()
	raw := [][6]float64{
		{1700000000, 10, 12, 9, 11, 100},
		{1700000060, 11, 13, 10, 10.5, 150},
		{1700000120, 10.5, 11, 9.5, 10.8, 90},
	}
	out := make([]data.OhlcvData, 0, len(raw))
	for _, r := range raw {
		b, err := data.NewOhlcvData(int64(r[0]), r[1], r[2], r[3], r[4], r[5])
		require.NoError(t, err)
		out = append(out, *b)
	}
	return out
}

func lineSeries(t *testing.T, values ...float64) *series.Line {
	t.Helper()
	points := make([]data.LineData, 0, len(values))
	for i, v := range values {
		p, err := data.NewLineData(1700000000+int64(i)*60, v)
		require.NoError(t, err)
		points = append(points, *p)
	}
	return series.NewLine(points)
}

func chartObject(t *testing.T, cfg map[string]any) map[string]any {
	t.Helper()
	charts := cfg["charts"].([]any)
	require.Len(t, charts, 1)
	return charts[0].(map[string]any)
}

func TestNew(t *testing.T) {
	c := New()
	assert.Regexp(t, `^chart-[0-9a-f]{8}$`, c.ID)
	assert.Equal(t, options.DefaultChartHeight, c.Options.Height)

	opts := options.NewChartOptions().SetHeight(600)
	c = New(WithID("main"), WithOptions(opts), WithGroupID(3), WithLogger(nil))
	assert.Equal(t, "main", c.ID)
	assert.Equal(t, 600, c.Options.Height)
	assert.Equal(t, 3, c.GroupID)
	assert.NotNil(t, c.log)
}

func TestAddSeries_PriceScaleResolution(t *testing.T) {
	tests := []struct {
		name        string
		scaleID     string
		own         *options.PriceScaleOptions
		wantLeft    bool
		wantOverlay bool
		wantDebug   bool
	}{
		{name: "empty defaults to right", scaleID: ""},
		{name: "right", scaleID: "right"},
		{name: "left becomes visible", scaleID: "left", wantLeft: true},
		{name: "unknown id creates overlay", scaleID: "rsi", wantOverlay: true, wantDebug: true},
		{name: "series owned overlay", scaleID: "rsi", own: options.NewPriceScaleOptions().SetMargins(0.7, 0), wantOverlay: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, logs := observedLogger()
			c := New(WithLogger(log))
			s := lineSeries(t, 1)
			s.SetPriceScaleID(tt.scaleID)
			if tt.own != nil {
				s.SetPriceScale(tt.own)
			}

			require.NoError(t, c.AddSeries(s))
			assert.Equal(t, tt.wantLeft, c.Options.LeftPriceScale.Visible)
			assert.True(t, c.Options.RightPriceScale.Visible)
			if tt.scaleID == "" {
				assert.Equal(t, "right", s.PriceScaleID)
			}

			overlay, ok := c.Options.OverlayPriceScales[tt.scaleID]
			assert.Equal(t, tt.wantOverlay, ok)
			if tt.own != nil {
				assert.Same(t, tt.own, overlay)
				assert.Equal(t, "rsi", overlay.PriceScaleID)
			}
			assert.Equal(t, tt.wantDebug, logs.FilterMessage("creating overlay price scale").Len() == 1)
		})
	}
}

func TestAddSeries_RejectsNegativePane(t *testing.T) {
	c := New()
	s := lineSeries(t, 1)
	s.SetPaneID(-1)
	err := c.AddSeries(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValidation))
	assert.Empty(t, c.Series)
}

func TestAddPriceVolumeSeries(t *testing.T) {
	c := New(WithID("btc"))
	candles, volume, err := c.AddPriceVolumeSeries(bars(t), 0)
	require.NoError(t, err)
	require.Len(t, c.Series, 2)
	assert.Equal(t, 3, candles.Len())
	assert.Equal(t, 3, volume.Len())

	overlay := c.Options.OverlayPriceScales[series.VolumePriceScaleID]
	require.NotNil(t, overlay)
	assert.Equal(t, options.ScaleMargins{Top: 0.8, Bottom: 0}, *overlay.ScaleMargins)

	cfg, err := c.ToFrontendConfig()
	require.NoError(t, err)
	obj := chartObject(t, cfg)

	chartOpts := obj["chart"].(map[string]any)
	overlays := chartOpts["overlayPriceScales"].(map[string]any)
	assert.Equal(t, map[string]any{"top": 0.8, "bottom": 0.0}, overlays["volume"].(map[string]any)["scaleMargins"])

	vol := obj["series"].([]any)[1].(map[string]any)
	assert.Equal(t, "histogram", vol["type"])
	volOpts := vol["options"].(map[string]any)
	assert.Equal(t, "volume", volOpts["priceScaleId"])
	assert.Equal(t, "volume", volOpts["priceFormat"].(map[string]any)["type"])
}

func TestToFrontendConfig_Shape(t *testing.T) {
	c := New(WithID("main"), WithGroupID(2))
	require.NoError(t, c.AddSeries(lineSeries(t, 1, 2, 3)))

	cfg, err := c.ToFrontendConfig()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"enabled": false, "crosshair": false, "timeRange": false, "groupId": int64(2)}, cfg["syncConfig"])

	obj := chartObject(t, cfg)
	assert.Equal(t, "main", obj["chartId"])
	assert.Equal(t, 2, obj["chartGroupId"])
	assert.Len(t, obj["series"], 1)
	for _, key := range []string{"trades", "tradeVisualizationOptions", "annotations", "annotationLayers", "tooltipConfigs"} {
		assert.NotContains(t, obj, key)
	}

	chartOpts := obj["chart"].(map[string]any)
	assert.Equal(t, int64(400), chartOpts["height"])
	assert.NotContains(t, chartOpts["layout"], "paneHeights")
	assert.NotContains(t, chartOpts, "overlayPriceScales")
	assert.NotContains(t, chartOpts, "tradeVisualization")

	b, err := c.ToJSON()
	require.NoError(t, err)
	assert.True(t, json.Valid(b))
}

func TestToFrontendConfig_ValidationError(t *testing.T) {
	c := New()
	require.NoError(t, c.AddSeries(series.NewCandlestick(nil).SetColors("not-a-color", "#000000")))
	_, err := c.ToFrontendConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidColor))
}

func TestToFrontendConfig_PaneHeights(t *testing.T) {
	log, logs := observedLogger()
	c := New(WithLogger(log))
	c.Options.SetPaneHeight(0, 3).SetPaneHeight(4, 2)

	main := lineSeries(t, 1, 2)
	indicator := lineSeries(t, 50, 60)
	indicator.SetPaneID(1)
	require.NoError(t, c.AddSeries(main))
	require.NoError(t, c.AddSeries(indicator))

	cfg, err := c.ToFrontendConfig()
	require.NoError(t, err)
	layout := chartObject(t, cfg)["chart"].(map[string]any)["layout"].(map[string]any)
	assert.Equal(t, map[string]any{
		"0": map[string]any{"factor": 3.0},
		"1": map[string]any{"factor": 1.0},
	}, layout["paneHeights"])

	warnings := logs.FilterMessage("dropping height of pane without series").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, int64(4), warnings[0].ContextMap()["pane"])

	assert.Equal(t, 1, chartObject(t, cfg)["series"].([]any)[1].(map[string]any)["paneId"])
}

func TestToFrontendConfig_TradeMarkers(t *testing.T) {
	win, err := data.NewTradeData(1700000000, 10, 1700000120, 12, 1, types.TradeTypeLong)
	require.NoError(t, err)
	loss, err := data.NewTradeData(1700000060, 11, 1700000120, 12, 1, types.TradeTypeShort)
	require.NoError(t, err)

	tests := []struct {
		name        string
		style       types.TradeVisualization
		withCandles bool
		wantTarget  int
		wantMarkers int
	}{
		{name: "markers go to the candlestick series", style: types.TradeVisualizationMarkers, withCandles: true, wantTarget: 1, wantMarkers: 4},
		{name: "first series without candlesticks", style: types.TradeVisualizationBoth, wantTarget: 0, wantMarkers: 4},
		{name: "rectangles add no markers", style: types.TradeVisualizationRectangles, withCandles: true, wantTarget: 1, wantMarkers: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			require.NoError(t, c.AddSeries(lineSeries(t, 1, 2, 3)))
			if tt.withCandles {
				require.NoError(t, c.AddSeries(series.NewCandlestick(data.Candles(bars(t)))))
			}
			require.NoError(t, c.AddTrades(*win, *loss))
			c.SetTradeVisualization(options.NewTradeVisualizationOptions().SetStyle(tt.style).SetShowPnl(true))

			cfg, err := c.ToFrontendConfig()
			require.NoError(t, err)
			obj := chartObject(t, cfg)
			assert.Len(t, obj["trades"], 2)
			assert.Equal(t, string(tt.style), obj["tradeVisualizationOptions"].(map[string]any)["style"])

			target := obj["series"].([]any)[tt.wantTarget].(map[string]any)
			if tt.wantMarkers == 0 {
				assert.NotContains(t, target, "markers")
				return
			}
			markers := target["markers"].([]any)
			require.Len(t, markers, tt.wantMarkers)

			first := markers[0].(map[string]any)
			assert.Equal(t, int64(1700000000), first["time"])
			assert.Equal(t, "#2196F3", first["color"])
			assert.Equal(t, "belowBar", first["position"])

			second := markers[1].(map[string]any)
			assert.Equal(t, "#FF9800", second["color"], "short entry")
			assert.Equal(t, "aboveBar", second["position"])

			texts := []string{markers[2].(map[string]any)["text"].(string), markers[3].(map[string]any)["text"].(string)}
			assert.Contains(t, texts, "Exit: $12.00 (P&L: $2.00)")
			assert.Contains(t, texts, "Exit: $12.00 (P&L: $-1.00)")
		})
	}
}

func TestAddTrades_Invalid(t *testing.T) {
	c := New()
	err := c.AddTrades(data.TradeData{EntryTime: 1, ExitTime: 2, EntryPrice: 1, ExitPrice: 1, Quantity: 1, TradeType: "sideways"})
	require.Error(t, err)
	assert.Empty(t, c.Trades)
}

func TestAnnotationsAndTooltips(t *testing.T) {
	c := New()
	require.NoError(t, c.AddSeries(lineSeries(t, 1)))

	a, err := annotation.Text(1700000000, 1, "breakout")
	require.NoError(t, err)
	c.AddAnnotation(*a, "")
	c.AddAnnotationLayer("signals")
	require.NoError(t, c.HideAnnotationLayer("signals"))
	assert.True(t, errors.Is(c.ShowAnnotationLayer("missing"), types.ErrNotFound))
	require.NoError(t, c.AddTooltipConfig("ohlc", tooltip.OHLC()))

	cfg, err := c.ToFrontendConfig()
	require.NoError(t, err)
	obj := chartObject(t, cfg)
	assert.Equal(t, []any{annotation.DefaultLayer, "signals"}, obj["annotationLayers"])
	layers := obj["annotations"].(map[string]any)["layers"].(map[string]any)
	assert.Len(t, layers[annotation.DefaultLayer].(map[string]any)["annotations"], 1)
	assert.Equal(t, false, layers["signals"].(map[string]any)["visible"])
	assert.Contains(t, obj["tooltipConfigs"], "ohlc")

	c.ClearAnnotations()
	assert.Equal(t, 0, c.Annotations.Len())
}

func TestChartSetters(t *testing.T) {
	c := New()
	c.SetHeight(0).UpdateOptions(func(o *options.ChartOptions) { o.SetAutoSize(true) }).SetWidth(800)
	c.AddOverlayPriceScale("macd", options.NewOverlayPriceScale(""))
	require.NoError(t, c.Validate())
	assert.Equal(t, 800, *c.Options.Width)
	assert.Equal(t, "macd", c.Options.OverlayPriceScales["macd"].PriceScaleID)

	require.NotPanics(t, func() { c.AddOverlayPriceScale("signal", nil) })
	assert.Equal(t, "signal", c.Options.OverlayPriceScales["signal"].PriceScaleID)

	c.SetTooltipManager(nil)
	assert.NotNil(t, c.Tooltips)
}
