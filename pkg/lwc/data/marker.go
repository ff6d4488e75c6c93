package data

import (
	"math"

	"golang-lwcharts/pkg/lwc/types"
)

const DefaultMarkerColor = "#2196F3"

type Marker struct {
	Time     types.Time           `json:"time"`
	Position types.MarkerPosition `json:"position" validate:"lwcenum"`
	Shape    types.MarkerShape    `json:"shape" validate:"lwcenum"`
	Color    string               `json:"color,omitempty" validate:"chartcolor"`
	Text     string               `json:"text,omitempty"`
	Size     int                  `json:"size,omitempty" validate:"gte=0"`
	ID       string               `json:"id,omitempty"`
	Price    *float64             `json:"price,omitempty"`
}

// MarkerOption sets a field of a marker before it is validated.
type MarkerOption func(*Marker)

// WithPrice anchors the marker to a price, as the atPrice* positions require.
func WithPrice(price float64) MarkerOption {
	return func(m *Marker) { m.Price = &price }
}

func NewMarker(t any, position types.MarkerPosition, shape types.MarkerShape, opts ...MarkerOption) (*Marker, error) {
	ts, err := types.NormalizeTime(t)
	if err != nil {
		return nil, err
	}
	m := &Marker{
		Time:     types.Time(ts),
		Position: position,
		Shape:    shape,
		Color:    DefaultMarkerColor,
		Size:     1,
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Marker) WithText(text string) *Marker {
	m.Text = text
	return m
}

func (m *Marker) WithColor(color string) *Marker {
	m.Color = color
	return m
}

func (m *Marker) WithSize(size int) *Marker {
	m.Size = size
	return m
}

func (m *Marker) WithID(id string) *Marker {
	m.ID = id
	return m
}

func (m Marker) GetTime() types.Time { return m.Time }

func (m Marker) Validate() error {
	if err := types.Validate(m); err != nil {
		return err
	}
	if !m.Position.IsPriceBased() {
		return nil
	}
	if m.Price == nil {
		return types.RequiredError("price")
	}
	if math.IsNaN(*m.Price) || math.IsInf(*m.Price, 0) {
		return types.NewValidationError("price", *m.Price, "must be finite")
	}
	return nil
}
