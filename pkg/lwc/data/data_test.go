package data

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-lwcharts/pkg/lwc/serialize"
	"golang-lwcharts/pkg/lwc/style"
	"golang-lwcharts/pkg/lwc/types"
)

func TestNewLineData(t *testing.T) {
	tests := []struct {
		name      string
		time      any
		value     float64
		wantTime  types.Time
		wantValue float64
		wantErr   error
	}{
		{name: "int time", time: 1704153600, value: 10.5, wantTime: 1704153600, wantValue: 10.5},
		{name: "date string", time: "2024-01-02", value: 1, wantTime: 1704153600, wantValue: 1},
		{name: "nan becomes zero", time: 1, value: math.NaN(), wantTime: 1, wantValue: 0},
		{name: "bad time", time: "soon", value: 1, wantErr: types.ErrInvalidTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLineData(tt.time, tt.value)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTime, got.Time)
			assert.Equal(t, tt.wantValue, got.Value)
		})
	}
}

func TestLineData_AsDict(t *testing.T) {
	d, err := NewLineData(100, 2)
	require.NoError(t, err)
	d.WithColor("#ff0000")

	assert.Equal(t, map[string]any{"time": int64(100), "value": 2.0, "color": "#ff0000"}, serialize.ToMap(d))

	d.WithStyles(style.NewPerPointStyles())
	assert.NotContains(t, serialize.ToMap(d), "styles")

	d.WithColor("not-a-color")
	err = d.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidColor))
}

func TestOhlcData_Validate(t *testing.T) {
	tests := []struct {
		name    string
		args    [4]float64
		wantErr bool
	}{
		{name: "valid", args: [4]float64{10, 12, 9, 11}},
		{name: "flat bar", args: [4]float64{10, 10, 10, 10}},
		{name: "high below low", args: [4]float64{10, 8, 9, 9}, wantErr: true},
		{name: "negative price", args: [4]float64{-1, 12, 0, 11}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOhlcData(1, tt.args[0], tt.args[1], tt.args[2], tt.args[3])
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, types.ErrValidation))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOhlcvData(t *testing.T) {
	_, err := NewOhlcvData(1, 10, 12, 9, 11, -5)
	require.Error(t, err)

	bar, err := NewOhlcvData(1, 10, 12, 9, 11, 500)
	require.NoError(t, err)
	assert.True(t, bar.IsUp())

	candles := Candles([]OhlcvData{*bar})
	require.Len(t, candles, 1)
	assert.Equal(t, map[string]any{
		"time": int64(1), "open": 10.0, "high": 12.0, "low": 9.0, "close": 11.0,
	}, serialize.ToMap(candles[0]))
}

func TestSortedAndValidateAll(t *testing.T) {
	a, _ := NewLineData(30, 3)
	b, _ := NewLineData(10, 1)
	c, _ := NewLineData(20, 2)
	points := []LineData{*a, *b, *c}

	sorted := SortedByTime(points)
	assert.Equal(t, []types.Time{10, 20, 30}, []types.Time{sorted[0].Time, sorted[1].Time, sorted[2].Time})
	assert.Equal(t, types.Time(30), points[0].Time, "input must not be reordered")

	dicts := Dicts(points)
	require.Len(t, dicts, 3)
	assert.Equal(t, int64(10), dicts[0].(map[string]any)["time"])

	require.NoError(t, ValidateAll(points))

	dup, _ := NewLineData(20, 9)
	err := ValidateAll(append(points, *dup))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate timestamp")
	assert.Contains(t, err.Error(), "data[3]")
}

func TestBandData_Styles(t *testing.T) {
	d, err := NewBandData(1, 12, 10, 8)
	require.NoError(t, err)
	d.WithStyles(style.NewPerPointStyles().
		Line("upperLine", style.LineStyle{Color: "#ff0000"}).
		Fill("upperFill", style.FillStyle{Color: "rgba(255, 0, 0, 0.2)"}))
	require.NoError(t, d.Validate())

	got := serialize.ToMap(d)
	assert.Equal(t, map[string]any{
		"upperLine": map[string]any{"color": "#ff0000"},
		"upperFill": map[string]any{"color": "rgba(255, 0, 0, 0.2)"},
	}, got["styles"])

	inverted, err := NewBandData(1, 8, 10, 12)
	require.NoError(t, err)
	assert.NoError(t, inverted.Validate())
}

func TestGradientRibbonData(t *testing.T) {
	ok := 0.5
	bad := 1.5
	_, err := NewGradientRibbonData(1, 10, 5, &ok)
	require.NoError(t, err)
	_, err = NewGradientRibbonData(1, 10, 5, &bad)
	require.Error(t, err)

	d, err := NewGradientRibbonData(1, 10, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"time": int64(1), "upper": 10.0, "lower": 5.0}, serialize.ToMap(d))
}

func TestSignalAndTrendFill(t *testing.T) {
	_, err := NewSignalData(1, SignalAlert)
	require.NoError(t, err)
	_, err = NewSignalData(1, 3)
	require.Error(t, err)

	tf, err := NewTrendFillData(1, 105, 100, TrendUp)
	require.NoError(t, err)
	assert.True(t, tf.IsUptrend())
	assert.False(t, tf.IsDowntrend())

	_, err = NewTrendFillData(1, 105, 100, 2)
	require.Error(t, err)
}

func TestMarker_Validate(t *testing.T) {
	tests := []struct {
		name     string
		position types.MarkerPosition
		shape    types.MarkerShape
		price    *float64
		wantErr  error
	}{
		{name: "above bar", position: types.MarkerPositionAboveBar, shape: types.MarkerShapeCircle},
		{name: "at price with price", position: types.MarkerPositionAtPriceTop, shape: types.MarkerShapeSquare, price: ptr(101.5)},
		{name: "at price without price", position: types.MarkerPositionAtPriceMiddle, shape: types.MarkerShapeSquare, wantErr: types.ErrRequiredField},
		{name: "unknown shape", position: types.MarkerPositionInBar, shape: "star", wantErr: types.ErrValidation},
		{name: "unknown position", position: "left", shape: types.MarkerShapeCircle, wantErr: types.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Marker{Time: 1, Position: tt.position, Shape: tt.shape, Price: tt.price, Size: 1}
			err := m.Validate()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewMarker_AtPrice(t *testing.T) {
	tests := []struct {
		name     string
		position types.MarkerPosition
		opts     []MarkerOption
		wantErr  error
	}{
		{name: "top with price", position: types.MarkerPositionAtPriceTop, opts: []MarkerOption{WithPrice(101.5)}},
		{name: "bottom with price", position: types.MarkerPositionAtPriceBottom, opts: []MarkerOption{WithPrice(99)}},
		{name: "middle with price", position: types.MarkerPositionAtPriceMiddle, opts: []MarkerOption{WithPrice(100)}},
		{name: "top without price", position: types.MarkerPositionAtPriceTop, wantErr: types.ErrRequiredField},
		{name: "infinite price", position: types.MarkerPositionAtPriceTop, opts: []MarkerOption{WithPrice(math.Inf(1))}, wantErr: types.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMarker(int64(1700000000), tt.position, types.MarkerShapeCircle, tt.opts...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, m.Price)
			assert.Equal(t, *m.Price, serialize.ToMap(m)["price"])
		})
	}
}

func TestNewMarker_Defaults(t *testing.T) {
	m, err := NewMarker("2024-01-02", types.MarkerPositionBelowBar, types.MarkerShapeArrowUp)
	require.NoError(t, err)
	m.WithText("buy")

	assert.Equal(t, map[string]any{
		"time":     int64(1704153600),
		"position": "belowBar",
		"shape":    "arrowUp",
		"color":    DefaultMarkerColor,
		"text":     "buy",
		"size":     int64(1),
	}, serialize.ToMap(m))
}

func TestTradeData(t *testing.T) {
	tests := []struct {
		name       string
		tradeType  types.TradeType
		entry      float64
		exit       float64
		wantPnL    float64
		wantPct    float64
		profitable bool
	}{
		{name: "long win", tradeType: types.TradeTypeLong, entry: 100, exit: 110, wantPnL: 20, wantPct: 10, profitable: true},
		{name: "long loss", tradeType: types.TradeTypeLong, entry: 100, exit: 90, wantPnL: -20, wantPct: -10},
		{name: "short win", tradeType: types.TradeTypeShort, entry: 100, exit: 90, wantPnL: 20, wantPct: 10, profitable: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade, err := NewTradeData(100, tt.entry, 200, tt.exit, 2, tt.tradeType)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantPnL, trade.PnL(), 1e-9)
			assert.InDelta(t, tt.wantPct, trade.PnLPercentage(), 1e-9)
			assert.Equal(t, tt.profitable, trade.IsProfitable())
		})
	}
}

func TestNewTradeData_Invalid(t *testing.T) {
	_, err := NewTradeData(200, 100, 100, 110, 1, types.TradeTypeLong)
	require.Error(t, err, "exit before entry")

	_, err = NewTradeData(100, 100, 200, 110, 0, types.TradeTypeLong)
	require.Error(t, err, "zero quantity")

	_, err = NewTradeData(100, 100, 200, 110, 1, "hedge")
	require.Error(t, err, "unknown type")
}

func TestTradeData_ToMarkers(t *testing.T) {
	long, err := NewTradeData(100, 100, 200, 110, 1, types.TradeTypeLong)
	require.NoError(t, err)
	long.WithID("t1")

	markers := long.ToMarkers("#00ff00", "#ff0000", true)
	require.Len(t, markers, 2)
	assert.Equal(t, types.MarkerPositionBelowBar, markers[0].Position)
	assert.Equal(t, types.MarkerShapeArrowUp, markers[0].Shape)
	assert.Equal(t, "Entry: $100.00", markers[0].Text)
	assert.Equal(t, "t1_entry", markers[0].ID)
	assert.Equal(t, types.MarkerPositionAboveBar, markers[1].Position)
	assert.Equal(t, "Exit: $110.00 (P&L: $10.00)", markers[1].Text)
	assert.Equal(t, "t1_exit", markers[1].ID)

	short, err := NewTradeData(100, 100, 200, 90, 1, types.TradeTypeShort)
	require.NoError(t, err)
	markers = short.ToMarkers("#00ff00", "#ff0000", false)
	assert.Equal(t, types.MarkerPositionAboveBar, markers[0].Position)
	assert.Equal(t, types.MarkerShapeArrowDown, markers[0].Shape)
	assert.Equal(t, "Exit: $90.00", markers[1].Text)
	assert.Empty(t, markers[0].ID)
}

func TestTradeData_AsDict(t *testing.T) {
	trade, err := NewTradeData(100, 100, 200, 110, 1, types.TradeTypeLong)
	require.NoError(t, err)

	got := serialize.ToMap(trade)
	assert.Equal(t, int64(100), got["entryTime"])
	assert.Equal(t, "long", got["tradeType"])
	assert.Equal(t, 10.0, got["pnl"])
	assert.Equal(t, true, got["isProfitable"])
	assert.Contains(t, got["text"], "P&L: $10.00")
	assert.NotContains(t, got, "id")
}

func TestFromRecords(t *testing.T) {
	rows := []Record{
		{"Date": "2024-01-02", "Price": "101.5", "c": "#ff0000"},
		{"Date": int64(1704240000), "Price": 102.0},
	}
	mapping := ColumnMapping{types.ColumnTime: "Date", types.ColumnValue: "Price", types.ColumnColor: "c"}

	got, err := LineFromRecords(rows, mapping)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.Time(1704153600), got[0].Time)
	assert.Equal(t, 101.5, got[0].Value)
	assert.Equal(t, "#ff0000", got[0].Color)
	assert.Equal(t, types.Time(1704240000), got[1].Time)
	assert.Empty(t, got[1].Color)
}

func TestFromRecords_MissingColumn(t *testing.T) {
	rows := []Record{{"time": 1, "open": 1, "high": 2, "low": 1}}
	_, err := CandlestickFromRecords(rows, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrRequiredField))
	assert.Contains(t, err.Error(), `"close"`)
}

func TestFromRecords_BadNumber(t *testing.T) {
	rows := []Record{{"time": 1, "value": "abc"}}
	_, err := HistogramFromRecords(rows, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestOhlcvFromRecords(t *testing.T) {
	rows := []Record{{"time": "2024-01-02", "open": 1.0, "high": 2, "low": 0.5, "close": "1.5", "volume": 1000}}
	got, err := OhlcvFromRecords(rows, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1000.0, got[0].Volume)
	assert.Equal(t, 1.5, got[0].Close)
}

func ptr[T any](v T) *T { return &v }
