// Package series implements the chart series types. Every series pairs a time ordered
// slice of data points with series level options, markers and price lines, and
// serializes to the object the frontend passes to chart.addSeries.
package series

import (
	"fmt"
	"reflect"

	"golang-lwcharts/pkg/lwc/data"
	"golang-lwcharts/pkg/lwc/options"
	"golang-lwcharts/pkg/lwc/serialize"
	"golang-lwcharts/pkg/lwc/types"
)

const DefaultPriceScaleID = "right"

// Series is implemented by every concrete series type.
type Series interface {
	ChartType() types.ChartType
	AsDict() map[string]any
	Validate() error
	Core() *Base
	Len() int
}

// Base carries the options shared by all series. Fields tagged "-" are emitted
// outside the options object.
type Base struct {
	Visible          bool
	PriceScaleID     string
	PaneID           int `lwc:"-" validate:"gte=0"`
	PriceLineVisible bool
	PriceLineSource  types.PriceLineSource `validate:"lwcenum"`
	PriceLineWidth   int                   `validate:"gte=1"`
	PriceLineColor   string                `validate:"chartcolor"`
	PriceLineStyle   types.LineStyle       `validate:"lwcenum"`
	LastValueVisible bool
	Title            string
	PriceFormat      *options.PriceFormatOptions
	ZIndex           *int

	Markers    []data.Marker               `lwc:"-"`
	PriceLines []*options.PriceLineOptions `lwc:"-"`
	Legend     *options.LegendOptions      `lwc:"-"`
	PriceScale *options.PriceScaleOptions  `lwc:"-"`
}

func newBase() Base {
	return Base{
		Visible:          true,
		PriceScaleID:     DefaultPriceScaleID,
		PriceLineVisible: true,
		PriceLineSource:  types.PriceLineSourceLastBar,
		PriceLineWidth:   1,
		PriceLineStyle:   types.LineStyleDashed,
		LastValueVisible: true,
	}
}

func (b *Base) Core() *Base { return b }

func (b *Base) SetVisible(v bool) *Base {
	b.Visible = v
	return b
}

func (b *Base) SetPriceScaleID(id string) *Base {
	b.PriceScaleID = id
	return b
}

func (b *Base) SetPaneID(id int) *Base {
	b.PaneID = id
	return b
}

func (b *Base) SetTitle(title string) *Base {
	b.Title = title
	return b
}

func (b *Base) SetPriceLine(visible bool, width int, color string, style types.LineStyle) *Base {
	b.PriceLineVisible = visible
	b.PriceLineWidth = width
	b.PriceLineColor = color
	b.PriceLineStyle = style
	return b
}

func (b *Base) SetLastValueVisible(v bool) *Base {
	b.LastValueVisible = v
	return b
}

func (b *Base) SetPriceFormat(f *options.PriceFormatOptions) *Base {
	b.PriceFormat = f
	return b
}

func (b *Base) SetZIndex(z int) *Base {
	b.ZIndex = &z
	return b
}

func (b *Base) AddMarker(m data.Marker) *Base {
	b.Markers = append(b.Markers, m)
	return b
}

func (b *Base) AddMarkers(ms ...data.Marker) *Base {
	b.Markers = append(b.Markers, ms...)
	return b
}

func (b *Base) ClearMarkers() *Base {
	b.Markers = nil
	return b
}

func (b *Base) AddPriceLine(p *options.PriceLineOptions) *Base {
	b.PriceLines = append(b.PriceLines, p)
	return b
}

func (b *Base) ClearPriceLines() *Base {
	b.PriceLines = nil
	return b
}

func (b *Base) SetLegend(l *options.LegendOptions) *Base {
	b.Legend = l
	return b
}

// SetPriceScale gives the series its own price scale options. The chart registers them
// under the series price scale id.
func (b *Base) SetPriceScale(p *options.PriceScaleOptions) *Base {
	b.PriceScale = p
	return b
}

func (b *Base) validate() error {
	if err := types.Validate(b); err != nil {
		return err
	}
	for i, m := range b.Markers {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("markers[%d]: %w", i, err)
		}
	}
	for i, p := range b.PriceLines {
		if p == nil {
			continue
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("priceLines[%d]: %w", i, err)
		}
	}
	if b.Legend != nil {
		if err := b.Legend.Validate(); err != nil {
			return err
		}
	}
	if b.PriceScale != nil {
		if err := b.PriceScale.Validate(); err != nil {
			return fmt.Errorf("priceScale: %w", err)
		}
	}
	return nil
}

// dict assembles the frontend object of a series. Style options are merged into the
// shared options and win on conflict.
func (b *Base) dict(t types.ChartType, points []any, style any) map[string]any {
	opts := serialize.StructFields(b)
	for k, v := range serialize.ToMap(style) {
		opts[k] = v
	}
	out := map[string]any{
		"type":    string(t),
		"data":    points,
		"options": opts,
		"paneId":  b.PaneID,
	}
	if len(b.Markers) > 0 {
		out["markers"] = data.Dicts(b.Markers)
	}
	if len(b.PriceLines) > 0 {
		lines := make([]any, 0, len(b.PriceLines))
		for _, p := range b.PriceLines {
			if p != nil {
				lines = append(lines, serialize.ToMap(p))
			}
		}
		out["priceLines"] = lines
	}
	if b.Legend != nil {
		out["legend"] = serialize.ToMap(b.Legend)
	}
	if b.PriceScale != nil {
		out["priceScale"] = serialize.ToMap(b.PriceScale)
	}
	return out
}

// validatePoints checks every point, rejects duplicate times and, when keys are given,
// per-point style keys the series does not draw.
func validatePoints[T data.Point](points []T, keys ...string) error {
	if err := data.ValidateAll(points); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	for i, p := range points {
		s, ok := any(p).(data.Styled)
		if !ok {
			continue
		}
		if err := s.PointStyles().CheckKeys(keys...); err != nil {
			return fmt.Errorf("data[%d]: %w", i, err)
		}
	}
	return nil
}

type validator interface{ Validate() error }

// validateAll runs the shared checks, then the style options (a nil pointer is skipped),
// then the data checks.
func validateAll(b *Base, style validator, points func() error) error {
	if err := b.validate(); err != nil {
		return err
	}
	if style != nil && !reflect.ValueOf(style).IsNil() {
		if err := style.Validate(); err != nil {
			return err
		}
	}
	return points()
}
