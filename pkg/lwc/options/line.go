package options

import (
	"math"

	"golang-lwcharts/pkg/lwc/style"
	"golang-lwcharts/pkg/lwc/types"
)

const DefaultLineColor = "#2196F3"

// LineOptions describes how one line is drawn. Line and area series flatten it into
// their options; band, ribbon and trend fill series nest one per drawn line.
type LineOptions struct {
	Color                          string          `validate:"chartcolor"`
	LineStyle                      types.LineStyle `validate:"lwcenum"`
	LineWidth                      int             `validate:"gte=1"`
	LineType                       types.LineType  `validate:"lwcenum"`
	LineVisible                    bool
	PointMarkersVisible            bool
	PointMarkersRadius             *int `validate:"omitempty,gte=0"`
	CrosshairMarkerVisible         bool
	CrosshairMarkerRadius          int                          `validate:"gte=0"`
	CrosshairMarkerBorderColor     string                       `validate:"chartcolor"`
	CrosshairMarkerBackgroundColor string                       `validate:"chartcolor"`
	CrosshairMarkerBorderWidth     int                          `validate:"gte=0"`
	LastPriceAnimation             types.LastPriceAnimationMode `validate:"lwcenum"`
}

func NewLineOptions() *LineOptions {
	return NewLineOptionsWithColor(DefaultLineColor)
}

func NewLineOptionsWithColor(color string) *LineOptions {
	return &LineOptions{
		Color:                      color,
		LineStyle:                  types.LineStyleSolid,
		LineWidth:                  2,
		LineType:                   types.LineTypeSimple,
		LineVisible:                true,
		CrosshairMarkerVisible:     true,
		CrosshairMarkerRadius:      4,
		CrosshairMarkerBorderWidth: 2,
	}
}

func (l *LineOptions) SetColor(c string) *LineOptions {
	l.Color = c
	return l
}

func (l *LineOptions) SetWidth(w int) *LineOptions {
	l.LineWidth = w
	return l
}

func (l *LineOptions) SetStyle(s types.LineStyle) *LineOptions {
	l.LineStyle = s
	return l
}

func (l *LineOptions) SetType(t types.LineType) *LineOptions {
	l.LineType = t
	return l
}

func (l *LineOptions) SetVisible(v bool) *LineOptions {
	l.LineVisible = v
	return l
}

func (l *LineOptions) SetPointMarkers(visible bool, radius int) *LineOptions {
	l.PointMarkersVisible = visible
	l.PointMarkersRadius = &radius
	return l
}

// Style returns the line as a per-point style base for override resolution.
func (l *LineOptions) Style() style.LineStyle {
	width, ls, visible := l.LineWidth, l.LineStyle, l.LineVisible
	return style.LineStyle{Color: l.Color, Width: &width, Style: &ls, Visible: &visible}
}

func (l *LineOptions) Validate() error {
	return types.Validate(l)
}

// PriceLineOptions is a horizontal line at a fixed price.
type PriceLineOptions struct {
	ID                 string
	Price              float64
	Color              string          `validate:"chartcolor"`
	LineWidth          int             `validate:"gte=1"`
	LineStyle          types.LineStyle `validate:"lwcenum"`
	LineVisible        bool
	AxisLabelVisible   bool
	Title              string
	AxisLabelColor     string `validate:"chartcolor"`
	AxisLabelTextColor string `validate:"chartcolor"`
}

func NewPriceLine(price float64) *PriceLineOptions {
	return &PriceLineOptions{
		Price:            price,
		Color:            DefaultLineColor,
		LineWidth:        1,
		LineStyle:        types.LineStyleSolid,
		LineVisible:      true,
		AxisLabelVisible: true,
	}
}

func (p *PriceLineOptions) SetID(id string) *PriceLineOptions {
	p.ID = id
	return p
}

func (p *PriceLineOptions) SetTitle(title string) *PriceLineOptions {
	p.Title = title
	return p
}

func (p *PriceLineOptions) SetColor(c string) *PriceLineOptions {
	p.Color = c
	return p
}

func (p *PriceLineOptions) SetLine(width int, s types.LineStyle) *PriceLineOptions {
	p.LineWidth = width
	p.LineStyle = s
	return p
}

func (p *PriceLineOptions) SetAxisLabel(visible bool, color, textColor string) *PriceLineOptions {
	p.AxisLabelVisible = visible
	p.AxisLabelColor = color
	p.AxisLabelTextColor = textColor
	return p
}

func (p *PriceLineOptions) Validate() error {
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return types.NewValidationError("price", p.Price, "must be finite")
	}
	return types.Validate(p)
}

type PriceFormatOptions struct {
	Type      types.PriceFormatType `validate:"lwcenum"`
	Precision int                   `validate:"gte=0,lte=15"`
	MinMove   float64               `validate:"gt=0"`
}

func NewPriceFormat(precision int) *PriceFormatOptions {
	return &PriceFormatOptions{Type: types.PriceFormatPrice, Precision: precision, MinMove: math.Pow10(-precision)}
}

func NewVolumeFormat() *PriceFormatOptions {
	return &PriceFormatOptions{Type: types.PriceFormatVolume, Precision: 0, MinMove: 1}
}

func NewPercentFormat(precision int) *PriceFormatOptions {
	return &PriceFormatOptions{Type: types.PriceFormatPercent, Precision: precision, MinMove: math.Pow10(-precision)}
}

func (p *PriceFormatOptions) Validate() error {
	return types.ValidateAt("priceFormat", p)
}
