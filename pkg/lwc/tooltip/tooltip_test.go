package tooltip

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-lwcharts/pkg/lwc/serialize"
	"golang-lwcharts/pkg/lwc/types"
)

func TestField_Format(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value any
		want  string
	}{
		{name: "precision", field: NewField("Close", "close").WithPrecision(2), value: 101.256, want: "101.26"},
		{name: "int with precision", field: NewField("Qty", "qty").WithPrecision(1), value: 3, want: "3.0"},
		{name: "no precision", field: NewField("Close", "close"), value: 1.5, want: "1.5"},
		{name: "affixes", field: NewField("P&L", "pnl").WithPrecision(2).WithAffixes("$", " USD"), value: -4.0, want: "$-4.00 USD"},
		{name: "string value", field: NewField("Type", "type"), value: "long", want: "long"},
		{name: "nil", field: NewField("Type", "type"), value: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.Format(tt.value))
		})
	}
}

func TestConfig_FormatLines(t *testing.T) {
	c := OHLC()
	got := c.Format(map[string]any{"open": 1.0, "high": 2.0, "low": 0.5, "close": 1.5}, "2024-01-02 09:30:00")
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "2024-01-02 09:30", lines[0])
	assert.Equal(t, "Open: 1.00", lines[1])
	assert.Equal(t, "Close: 1.50", lines[4])
}

func TestConfig_FormatTemplate(t *testing.T) {
	c := Custom("{time} | {symbol} closed at {close}", []Field{NewField("Close", "close").WithPrecision(1)})
	c.ShowTime = false
	got := c.Format(map[string]any{"close": 10.04, "symbol": "BTCUSDT"}, 1704153600)
	assert.Equal(t, "2024-01-02 | BTCUSDT closed at 10.0", got)
}

func TestConfig_FormatTemplateValuesNotReexpanded(t *testing.T) {
	tests := []struct {
		name     string
		template string
		fields   []Field
		values   map[string]any
		want     string
	}{
		{
			name:     "raw value holding another placeholder",
			template: "{note} / {close}",
			values:   map[string]any{"note": "{close}", "close": 5},
			want:     "{close} / 5",
		},
		{
			name:     "field value holding a raw placeholder",
			template: "{label}: {symbol}",
			fields:   []Field{NewField("Label", "label")},
			values:   map[string]any{"label": "{symbol}", "symbol": "ETH"},
			want:     "{symbol}: ETH",
		},
		{
			name:     "time placeholder in a value",
			template: "{note}",
			values:   map[string]any{"note": "{time}"},
			want:     "{time}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Custom(tt.template, tt.fields)
			assert.Equal(t, tt.want, c.Format(tt.values, nil))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, Trade().Validate())

	c := NewConfig("popup")
	assert.True(t, errors.Is(c.Validate(), types.ErrValidation))

	c = NewConfig(types.TooltipTypeSingle).AddField(Field{Label: "x"})
	assert.True(t, errors.Is(c.Validate(), types.ErrRequiredField))

	c = NewConfig(types.TooltipTypeSingle)
	c.Style.BorderColor = "nope"
	assert.True(t, errors.Is(c.Validate(), types.ErrInvalidColor))
}

func TestManager(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Add("ohlc", OHLC()))
	require.NoError(t, m.Add("trade", Trade().AddField(NewField("Side", "tradeType").WithFormatter("upper"))))
	require.Error(t, m.Add("", OHLC()))

	m.AddFormatter("upper", func(v any) string { return strings.ToUpper(v.(string)) })

	got, err := m.Format("trade", map[string]any{"tradeType": "long"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Type: long\nSide: LONG", got)

	_, err = m.Format("missing", nil, nil)
	assert.True(t, errors.Is(err, types.ErrNotFound))

	assert.Equal(t, []string{"ohlc", "trade"}, m.Names())

	dict := m.AsDict()
	ohlc, ok := dict["ohlc"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ohlc", ohlc["type"])
	assert.Equal(t, true, ohlc["enabled"])
	assert.Equal(t, map[string]any{"x": int64(10), "y": int64(10)}, ohlc["offset"])
	fields, ok := ohlc["fields"].([]any)
	require.True(t, ok)
	assert.Len(t, fields, 5)
	assert.Equal(t, map[string]any{"label": "Open", "valueKey": "open", "precision": int64(2)}, fields[0])

	assert.True(t, m.Remove("ohlc"))
	assert.False(t, m.Remove("ohlc"))
	_, ok = m.Get("ohlc")
	assert.False(t, ok)
}

func TestMultiSeries(t *testing.T) {
	c := MultiSeries([]string{"SMA 20", "EMA 50"})
	assert.Equal(t, types.TooltipTypeMulti, c.Type)
	require.Len(t, c.Fields, 2)
	got := serialize.ToMap(c.Fields[1])
	assert.Equal(t, "EMA 50", got["label"])
}
