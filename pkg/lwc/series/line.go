package series

import (
	"golang-lwcharts/pkg/lwc/data"
	"golang-lwcharts/pkg/lwc/options"
	"golang-lwcharts/pkg/lwc/types"
)

// KeyLine is the per-point style key of line and area series.
const KeyLine = "line"

type Line struct {
	Base
	Data    []data.LineData
	Options *options.LineOptions
}

func NewLine(points []data.LineData) *Line {
	return &Line{Base: newBase(), Data: points, Options: options.NewLineOptions()}
}

func (s *Line) ChartType() types.ChartType { return types.ChartTypeLine }

func (s *Line) Len() int { return len(s.Data) }

func (s *Line) Append(points ...data.LineData) *Line {
	s.Data = append(s.Data, points...)
	return s
}

func (s *Line) SetColor(c string) *Line {
	s.lineOptions().SetColor(c)
	return s
}

func (s *Line) SetLineWidth(w int) *Line {
	s.lineOptions().SetWidth(w)
	return s
}

func (s *Line) SetLineStyle(ls types.LineStyle) *Line {
	s.lineOptions().SetStyle(ls)
	return s
}

func (s *Line) SetLineType(t types.LineType) *Line {
	s.lineOptions().SetType(t)
	return s
}

func (s *Line) lineOptions() *options.LineOptions {
	if s.Options == nil {
		s.Options = options.NewLineOptions()
	}
	return s.Options
}

func (s *Line) Validate() error {
	return validateAll(&s.Base, s.Options, func() error { return validatePoints(s.Data, KeyLine) })
}

func (s *Line) AsDict() map[string]any {
	return s.dict(s.ChartType(), data.Dicts(s.Data), s.Options)
}

type AreaOptions struct {
	options.LineOptions
	TopColor         string `validate:"chartcolor"`
	BottomColor      string `validate:"chartcolor"`
	InvertFilledArea bool
	RelativeGradient bool
}

func NewAreaOptions() *AreaOptions {
	return &AreaOptions{
		LineOptions: *options.NewLineOptionsWithColor("rgba(46, 220, 135, 1)"),
		TopColor:    "rgba(46, 220, 135, 0.4)",
		BottomColor: "rgba(40, 221, 100, 0)",
	}
}

func (o *AreaOptions) Validate() error {
	return types.Validate(o)
}

type Area struct {
	Base
	Data    []data.AreaData
	Options *AreaOptions
}

func NewArea(points []data.AreaData) *Area {
	return &Area{Base: newBase(), Data: points, Options: NewAreaOptions()}
}

func (s *Area) ChartType() types.ChartType { return types.ChartTypeArea }

func (s *Area) Len() int { return len(s.Data) }

func (s *Area) Append(points ...data.AreaData) *Area {
	s.Data = append(s.Data, points...)
	return s
}

func (s *Area) SetColors(line, top, bottom string) *Area {
	if s.Options == nil {
		s.Options = NewAreaOptions()
	}
	s.Options.Color, s.Options.TopColor, s.Options.BottomColor = line, top, bottom
	return s
}

func (s *Area) SetInvertFilledArea(invert bool) *Area {
	if s.Options == nil {
		s.Options = NewAreaOptions()
	}
	s.Options.InvertFilledArea = invert
	return s
}

func (s *Area) Validate() error {
	return validateAll(&s.Base, s.Options, func() error { return validatePoints(s.Data, KeyLine) })
}

func (s *Area) AsDict() map[string]any {
	return s.dict(s.ChartType(), data.Dicts(s.Data), s.Options)
}

type HistogramOptions struct {
	Color string `validate:"chartcolor"`
	Base  float64
}

func NewHistogramOptions() *HistogramOptions {
	return &HistogramOptions{Color: "#26a69a"}
}

func (o *HistogramOptions) Validate() error {
	return types.Validate(o)
}

type Histogram struct {
	Base
	Data    []data.HistogramData
	Options *HistogramOptions
}

func NewHistogram(points []data.HistogramData) *Histogram {
	return &Histogram{Base: newBase(), Data: points, Options: NewHistogramOptions()}
}

const (
	VolumePriceScaleID    = "volume"
	DefaultVolumeUpColor   = "rgba(38, 166, 154, 0.5)"
	DefaultVolumeDownColor = "rgba(239, 83, 80, 0.5)"
)

// NewVolume builds a volume histogram from OHLCV bars, colored up when the bar closed at
// or above its open. Empty colors fall back to the defaults.
func NewVolume(bars []data.OhlcvData, upColor, downColor string) *Histogram {
	if upColor == "" {
		upColor = DefaultVolumeUpColor
	}
	if downColor == "" {
		downColor = DefaultVolumeDownColor
	}
	points := make([]data.HistogramData, 0, len(bars))
	for _, b := range bars {
		color := downColor
		if b.IsUp() {
			color = upColor
		}
		points = append(points, data.HistogramData{
			SingleValueData: data.SingleValueData{Time: b.Time, Value: b.Volume},
			Color:           color,
		})
	}
	h := NewHistogram(points)
	h.PriceScaleID = VolumePriceScaleID
	h.PriceFormat = options.NewVolumeFormat()
	h.PriceLineVisible = false
	h.LastValueVisible = false
	return h
}

func (s *Histogram) ChartType() types.ChartType { return types.ChartTypeHistogram }

func (s *Histogram) Len() int { return len(s.Data) }

func (s *Histogram) Append(points ...data.HistogramData) *Histogram {
	s.Data = append(s.Data, points...)
	return s
}

func (s *Histogram) SetColor(c string) *Histogram {
	if s.Options == nil {
		s.Options = NewHistogramOptions()
	}
	s.Options.Color = c
	return s
}

func (s *Histogram) Validate() error {
	return validateAll(&s.Base, s.Options, func() error { return validatePoints(s.Data) })
}

func (s *Histogram) AsDict() map[string]any {
	return s.dict(s.ChartType(), data.Dicts(s.Data), s.Options)
}

type BaseValue struct {
	Type  string
	Price float64
}

type BaselineOptions struct {
	BaseValue        BaseValue
	TopLineColor     string          `validate:"chartcolor"`
	TopFillColor1    string          `validate:"chartcolor"`
	TopFillColor2    string          `validate:"chartcolor"`
	BottomLineColor  string          `validate:"chartcolor"`
	BottomFillColor1 string          `validate:"chartcolor"`
	BottomFillColor2 string          `validate:"chartcolor"`
	LineWidth        int             `validate:"gte=1"`
	LineStyle        types.LineStyle `validate:"lwcenum"`
	LineType         types.LineType  `validate:"lwcenum"`
	LineVisible      bool
}

func NewBaselineOptions() *BaselineOptions {
	return &BaselineOptions{
		BaseValue:        BaseValue{Type: "price"},
		TopLineColor:     "rgba(38, 166, 154, 1)",
		TopFillColor1:    "rgba(38, 166, 154, 0.28)",
		TopFillColor2:    "rgba(38, 166, 154, 0.05)",
		BottomLineColor:  "rgba(239, 83, 80, 1)",
		BottomFillColor1: "rgba(239, 83, 80, 0.05)",
		BottomFillColor2: "rgba(239, 83, 80, 0.28)",
		LineWidth:        3,
		LineVisible:      true,
	}
}

func (o *BaselineOptions) Validate() error {
	return types.Validate(o)
}

type Baseline struct {
	Base
	Data    []data.BaselineData
	Options *BaselineOptions
}

func NewBaseline(points []data.BaselineData, baseValue float64) *Baseline {
	o := NewBaselineOptions()
	o.BaseValue.Price = baseValue
	return &Baseline{Base: newBase(), Data: points, Options: o}
}

func (s *Baseline) ChartType() types.ChartType { return types.ChartTypeBaseline }

func (s *Baseline) Len() int { return len(s.Data) }

func (s *Baseline) Append(points ...data.BaselineData) *Baseline {
	s.Data = append(s.Data, points...)
	return s
}

func (s *Baseline) SetBaseValue(price float64) *Baseline {
	if s.Options == nil {
		s.Options = NewBaselineOptions()
	}
	s.Options.BaseValue.Price = price
	return s
}

func (s *Baseline) Validate() error {
	return validateAll(&s.Base, s.Options, func() error { return validatePoints(s.Data) })
}

func (s *Baseline) AsDict() map[string]any {
	return s.dict(s.ChartType(), data.Dicts(s.Data), s.Options)
}
