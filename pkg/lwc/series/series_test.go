package series

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-lwcharts/pkg/lwc/data"
	"golang-lwcharts/pkg/lwc/options"
	"golang-lwcharts/pkg/lwc/style"
	"golang-lwcharts/pkg/lwc/types"
)

func line(t *testing.T, ts any, v float64) data.LineData {
	t.Helper()
	d, err := data.NewLineData(ts, v)
	require.NoError(t, err)
	return *d
}

func ohlcv(t *testing.T, ts any, o, h, l, c, v float64) data.OhlcvData {
	t.Helper()
	d, err := data.NewOhlcvData(ts, o, h, l, c, v)
	require.NoError(t, err)
	return *d
}

func TestLine_AsDict(t *testing.T) {
	s := NewLine([]data.LineData{line(t, 20, 2), line(t, 10, 1)}).SetColor("#ff0000").SetLineWidth(3)
	s.SetTitle("SMA 20").SetPaneID(1)
	require.NoError(t, s.Validate())

	got := s.AsDict()
	assert.Equal(t, "line", got["type"])
	assert.Equal(t, 1, got["paneId"])
	assert.NotContains(t, got, "markers")
	assert.NotContains(t, got, "priceLines")
	assert.NotContains(t, got, "legend")

	points := got["data"].([]any)
	require.Len(t, points, 2)
	assert.Equal(t, int64(10), points[0].(map[string]any)["time"], "data must be sorted by time")

	opts := got["options"].(map[string]any)
	assert.Equal(t, "#ff0000", opts["color"])
	assert.Equal(t, int64(3), opts["lineWidth"])
	assert.Equal(t, "SMA 20", opts["title"])
	assert.Equal(t, "right", opts["priceScaleId"])
	assert.Equal(t, true, opts["visible"])
	assert.NotContains(t, opts, "paneId")
	assert.NotContains(t, opts, "markers")
}

func TestSeries_Validate(t *testing.T) {
	badStyle := line(t, 30, 3)
	badStyle.WithStyles(style.NewPerPointStyles().Line("upperLine", style.LineStyle{Color: "#000"}))

	tests := []struct {
		name    string
		series  Series
		wantErr error
	}{
		{name: "valid line", series: NewLine([]data.LineData{line(t, 1, 1), line(t, 2, 2)})},
		{name: "duplicate time", series: NewLine([]data.LineData{line(t, 1, 1), line(t, 1, 2)}), wantErr: types.ErrValidation},
		{name: "foreign style key", series: NewLine([]data.LineData{badStyle}), wantErr: types.ErrValidation},
		{name: "negative pane", series: func() Series {
			s := NewLine(nil)
			s.SetPaneID(-1)
			return s
		}(), wantErr: types.ErrValidation},
		{name: "marker needs price", series: func() Series {
			s := NewLine(nil)
			s.AddMarker(data.Marker{Time: 1, Position: types.MarkerPositionAtPriceTop, Shape: types.MarkerShapeCircle})
			return s
		}(), wantErr: types.ErrRequiredField},
		{name: "bad price line", series: func() Series {
			s := NewLine(nil)
			s.AddPriceLine(options.NewPriceLine(1).SetColor("nope"))
			return s
		}(), wantErr: types.ErrInvalidColor},
		{name: "bad candle colors", series: NewCandlestick(nil).SetColors("nope", "#000"), wantErr: types.ErrInvalidColor},
		{name: "nil options", series: &Histogram{Base: newBase()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.series.Validate()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), err.Error())
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBase_MarkersAndPriceLines(t *testing.T) {
	m, err := data.NewMarker(20, types.MarkerPositionAboveBar, types.MarkerShapeArrowDown)
	require.NoError(t, err)
	early, err := data.NewMarker(10, types.MarkerPositionBelowBar, types.MarkerShapeArrowUp)
	require.NoError(t, err)

	s := NewLine([]data.LineData{line(t, 10, 1), line(t, 20, 2)})
	s.AddMarkers(*m, *early).AddPriceLine(options.NewPriceLine(1.5).SetTitle("mid")).SetLegend(options.NewLegendOptions())
	s.SetPriceScale(options.NewOverlayPriceScale("ind"))

	got := s.AsDict()
	markers := got["markers"].([]any)
	require.Len(t, markers, 2)
	assert.Equal(t, "belowBar", markers[0].(map[string]any)["position"])
	lines := got["priceLines"].([]any)
	require.Len(t, lines, 1)
	assert.Equal(t, "mid", lines[0].(map[string]any)["title"])
	assert.Contains(t, got, "legend")
	assert.Equal(t, "ind", got["priceScale"].(map[string]any)["priceScaleId"])

	s.ClearMarkers().ClearPriceLines()
	got = s.AsDict()
	assert.NotContains(t, got, "markers")
	assert.NotContains(t, got, "priceLines")
}

func TestNewVolume(t *testing.T) {
	bars := []data.OhlcvData{
		ohlcv(t, 1, 10, 12, 9, 11, 100),
		ohlcv(t, 2, 11, 12, 8, 9, 250),
	}
	h := NewVolume(bars, "", "#ff0000")
	require.NoError(t, h.Validate())
	require.Equal(t, 2, h.Len())
	assert.Equal(t, DefaultVolumeUpColor, h.Data[0].Color)
	assert.Equal(t, "#ff0000", h.Data[1].Color)
	assert.Equal(t, 250.0, h.Data[1].Value)
	assert.Equal(t, VolumePriceScaleID, h.PriceScaleID)

	opts := h.AsDict()["options"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "volume", "precision": int64(0), "minMove": 1.0}, opts["priceFormat"])
	assert.Equal(t, 0.0, opts["base"])
}

func TestBand_AsDict(t *testing.T) {
	p, err := data.NewBandData(1, 12, 10, 8)
	require.NoError(t, err)
	p.WithStyles(style.NewPerPointStyles().Fill(KeyUpperFill, style.FillStyle{Color: "#00ff00"}))

	s := NewBand([]data.BandData{*p}).SetLineColors("#111111", "#222222", "#333333")
	require.NoError(t, s.Validate())

	got := s.AsDict()
	assert.Equal(t, "band", got["type"])
	opts := got["options"].(map[string]any)
	assert.Equal(t, "#111111", opts["upperLine"].(map[string]any)["color"])
	assert.Equal(t, "#333333", opts["lowerLine"].(map[string]any)["color"])
	assert.Equal(t, true, opts["upperFill"])

	points := got["data"].([]any)
	assert.Equal(t, map[string]any{KeyUpperFill: map[string]any{"color": "#00ff00"}}, points[0].(map[string]any)["styles"])
}

func TestGradientRibbon_AsDict(t *testing.T) {
	g := 0.25
	p, err := data.NewGradientRibbonData(1, 10, 5, &g)
	require.NoError(t, err)

	s := NewGradientRibbon([]data.GradientRibbonData{*p}).SetGradient("#000000", "#ffffff", true)
	require.NoError(t, s.Validate())

	got := s.AsDict()
	assert.Equal(t, "gradient_ribbon", got["type"])
	opts := got["options"].(map[string]any)
	assert.Equal(t, "#000000", opts["gradientStartColor"])
	assert.Equal(t, true, opts["normalizeGradients"])
	assert.Contains(t, opts, "upperLine")
	assert.Equal(t, 0.25, got["data"].([]any)[0].(map[string]any)["gradient"])
}

func TestArea_FlattensLineOptions(t *testing.T) {
	a, err := data.NewAreaData(1, 5)
	require.NoError(t, err)
	s := NewArea([]data.AreaData{*a}).SetColors("#123456", "rgba(0, 0, 0, 0.5)", "transparent")
	require.NoError(t, s.Validate())

	opts := s.AsDict()["options"].(map[string]any)
	assert.Equal(t, "#123456", opts["color"])
	assert.Equal(t, "rgba(0, 0, 0, 0.5)", opts["topColor"])
	assert.Equal(t, int64(2), opts["lineWidth"])
	assert.NotContains(t, opts, "lineOptions")
}

func TestOtherSeriesTypes(t *testing.T) {
	sig, err := data.NewSignalData(1, data.SignalActive)
	require.NoError(t, err)
	tf, err := data.NewTrendFillData(1, 10, 9, data.TrendUp)
	require.NoError(t, err)
	rb, err := data.NewRibbonData(1, 10, 9)
	require.NoError(t, err)
	bl, err := data.NewBaselineData(1, 3)
	require.NoError(t, err)
	bar, err := data.NewBarData(1, 1, 2, 0.5, 1.5)
	require.NoError(t, err)

	tests := []struct {
		series Series
		want   types.ChartType
	}{
		{series: NewSignal([]data.SignalData{*sig}), want: types.ChartTypeSignal},
		{series: NewTrendFill([]data.TrendFillData{*tf}), want: types.ChartTypeTrendFill},
		{series: NewRibbon([]data.RibbonData{*rb}).SetFill("#cccccc", false), want: types.ChartTypeRibbon},
		{series: NewBaseline([]data.BaselineData{*bl}, 2), want: types.ChartTypeBaseline},
		{series: NewBar([]data.BarData{*bar}), want: types.ChartTypeBar},
		{series: NewCandlestick(data.Candles([]data.OhlcvData{ohlcv(t, 1, 1, 2, 0.5, 1.5, 10)})), want: types.ChartTypeCandlestick},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			require.NoError(t, tt.series.Validate())
			assert.Equal(t, 1, tt.series.Len())
			got := tt.series.AsDict()
			assert.Equal(t, string(tt.want), got["type"])
			assert.Same(t, tt.series.Core(), tt.series.Core())
		})
	}

	baseline := NewBaseline(nil, 2).AsDict()["options"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "price", "price": 2.0}, baseline["baseValue"])
}

func TestEffectiveLineStyle(t *testing.T) {
	width := 4
	plain := line(t, 1, 1)
	styled := line(t, 2, 2)
	styled.WithStyles(style.NewPerPointStyles().Line(KeyLine, style.LineStyle{Color: "#ff0000", Width: &width}))

	s := NewLine([]data.LineData{plain, styled}).SetColor("#0000ff")

	got, err := EffectiveLineStyle(s, 0, KeyLine)
	require.NoError(t, err)
	assert.Equal(t, "#0000ff", got.Color)
	assert.Equal(t, 2, *got.Width)

	got, err = EffectiveLineStyle(s, 1, KeyLine)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", got.Color)
	assert.Equal(t, 4, *got.Width)
	assert.Equal(t, types.LineStyleSolid, *got.Style)

	_, err = EffectiveLineStyle(s, 5, KeyLine)
	assert.True(t, errors.Is(err, types.ErrNotFound))

	_, err = EffectiveLineStyle(s, 0, KeyUpperLine)
	assert.True(t, errors.Is(err, types.ErrValidation))

	_, err = EffectiveLineStyle(NewHistogram(nil), 0, KeyLine)
	assert.Error(t, err)

	bp, err := data.NewBandData(1, 3, 2, 1)
	require.NoError(t, err)
	band := NewBand([]data.BandData{*bp})
	got, err = EffectiveLineStyle(band, 0, KeyMiddleLine)
	require.NoError(t, err)
	assert.Equal(t, "#2196F3", got.Color)
}

func TestFromRecords(t *testing.T) {
	rows := []data.Record{
		{"date": "2024-01-02", "o": 1, "h": 2, "l": 0.5, "c": 1.5},
		{"date": "2024-01-03", "o": 1.5, "h": 2.5, "l": 1, "c": 2},
	}
	mapping := data.ColumnMapping{
		types.ColumnTime: "date", types.ColumnOpen: "o", types.ColumnHigh: "h", types.ColumnLow: "l", types.ColumnClose: "c",
	}
	s, err := CandlestickFromRecords(rows, mapping)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	require.NoError(t, s.Validate())

	_, err = BandFromRecords(rows, mapping)
	assert.True(t, errors.Is(err, types.ErrRequiredField))
}
