package annotation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-lwcharts/pkg/lwc/serialize"
	"golang-lwcharts/pkg/lwc/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		text    string
		opts    []Option
		wantErr bool
	}{
		{name: "defaults", price: 100, text: "Breakout"},
		{name: "empty text", price: 100, text: "  ", wantErr: true},
		{name: "nan price", price: math.NaN(), text: "x", wantErr: true},
		{name: "opacity above one", price: 1, text: "x", opts: []Option{WithOpacity(1.2)}, wantErr: true},
		{name: "zero font size", price: 1, text: "x", opts: []Option{WithFont(0, "bold")}, wantErr: true},
		{name: "negative border", price: 1, text: "x", opts: []Option{WithBorder("#000", -1)}, wantErr: true},
		{name: "bad color", price: 1, text: "x", opts: []Option{WithColor("blurple")}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(1704153600, tt.price, tt.text, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, types.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, types.AnnotationTypeText, got.Type)
			assert.Equal(t, types.AnnotationPositionAbove, got.Position)
			assert.Equal(t, DefaultColor, got.Color)
			assert.Equal(t, DefaultBackgroundColor, got.BackgroundColor)
			assert.Equal(t, 1.0, got.Opacity)
			assert.Equal(t, 1, got.BorderWidth)
		})
	}
}

func TestFactories(t *testing.T) {
	arrow, err := Arrow(1, 10, "Buy", types.AnnotationPositionBelow)
	require.NoError(t, err)
	assert.Equal(t, types.AnnotationTypeArrow, arrow.Type)
	assert.Equal(t, types.AnnotationPositionBelow, arrow.Position)

	shape, err := Shape(1, 10, "Zone", types.AnnotationTypeRectangle, WithOpacity(0.3))
	require.NoError(t, err)
	assert.Equal(t, types.AnnotationTypeRectangle, shape.Type)
	assert.Equal(t, 0.3, shape.Opacity)

	text, err := Text(1, 10, "Note")
	require.NoError(t, err)

	got := serialize.ToMap(text)
	assert.Equal(t, int64(1), got["time"])
	assert.Equal(t, "text", got["type"])
	assert.Equal(t, int64(12), got["fontSize"])
	assert.Equal(t, false, got["showTime"])
	assert.NotContains(t, got, "tooltip")
}

func TestLayer(t *testing.T) {
	l := NewLayer("signals")
	for i, p := range []float64{10, 20, 30} {
		a, err := New(100*(i+1), p, "a")
		require.NoError(t, err)
		l.Add(*a)
	}
	assert.Equal(t, 3, l.Len())

	inTime, err := l.FilterByTimeRange(150, 300)
	require.NoError(t, err)
	assert.Len(t, inTime, 2)

	assert.Len(t, l.FilterByPriceRange(5, 15), 1)

	assert.True(t, l.Remove(0))
	assert.False(t, l.Remove(5))
	assert.Equal(t, 2, l.Len())

	require.Error(t, l.SetOpacity(2))
	require.NoError(t, l.SetOpacity(0.5))

	l.Hide().Clear()
	got := l.AsDict()
	assert.Equal(t, "signals", got["name"])
	assert.Equal(t, []any{}, got["annotations"])
	assert.Equal(t, false, got["visible"])
	assert.Equal(t, 0.5, got["opacity"])
}

func TestManager(t *testing.T) {
	m := NewManager()
	a, err := New(100, 1, "first")
	require.NoError(t, err)
	b, err := New(200, 2, "second")
	require.NoError(t, err)

	m.Add(*a, "").Add(*b, "levels")
	assert.Same(t, m.CreateLayer("levels"), m.Layer("levels"))
	assert.Equal(t, 2, m.Len())
	assert.Len(t, m.All(), 2)
	assert.Equal(t, "first", m.All()[0].Text)

	require.NoError(t, m.HideLayer(DefaultLayer))
	visible := m.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "second", visible[0].Text)

	err = m.ShowLayer("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNotFound))

	dict := m.AsDict()
	layers, ok := dict["layers"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, layers, DefaultLayer)
	assert.Contains(t, layers, "levels")

	assert.True(t, m.RemoveLayer("levels"))
	assert.False(t, m.RemoveLayer("levels"))
	m.ClearAll()
	assert.Equal(t, 0, m.Len())
	assert.NotNil(t, m.Layer(DefaultLayer))
}
