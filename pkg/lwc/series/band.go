package series

import (
	"golang-lwcharts/pkg/lwc/data"
	"golang-lwcharts/pkg/lwc/options"
	"golang-lwcharts/pkg/lwc/types"
)

// Per-point style keys of the multi-line series.
const (
	KeyUpperLine  = "upperLine"
	KeyMiddleLine = "middleLine"
	KeyLowerLine  = "lowerLine"
	KeyUpperFill  = "upperFill"
	KeyLowerFill  = "lowerFill"
	KeyFill       = "fill"
	KeyTrendLine  = "trendLine"
	KeyBaseLine   = "baseLine"
)

type BandOptions struct {
	UpperLine      *options.LineOptions
	MiddleLine     *options.LineOptions
	LowerLine      *options.LineOptions
	UpperFillColor string `validate:"chartcolor"`
	LowerFillColor string `validate:"chartcolor"`
	UpperFill      bool
	LowerFill      bool
}

func NewBandOptions() *BandOptions {
	return &BandOptions{
		UpperLine:      options.NewLineOptionsWithColor("#4CAF50"),
		MiddleLine:     options.NewLineOptionsWithColor("#2196F3"),
		LowerLine:      options.NewLineOptionsWithColor("#F44336"),
		UpperFillColor: "rgba(76, 175, 80, 0.1)",
		LowerFillColor: "rgba(244, 67, 54, 0.1)",
		UpperFill:      true,
		LowerFill:      true,
	}
}

func (o *BandOptions) Validate() error {
	return types.Validate(o)
}

// Band draws upper, middle and lower lines with fills between them, as used for
// Bollinger bands and Keltner channels.
type Band struct {
	Base
	Data    []data.BandData
	Options *BandOptions
}

func NewBand(points []data.BandData) *Band {
	return &Band{Base: newBase(), Data: points, Options: NewBandOptions()}
}

func (s *Band) ChartType() types.ChartType { return types.ChartTypeBand }

func (s *Band) Len() int { return len(s.Data) }

func (s *Band) Append(points ...data.BandData) *Band {
	s.Data = append(s.Data, points...)
	return s
}

func (s *Band) bandOptions() *BandOptions {
	if s.Options == nil {
		s.Options = NewBandOptions()
	}
	return s.Options
}

func (s *Band) SetLineColors(upper, middle, lower string) *Band {
	o := s.bandOptions()
	o.UpperLine.SetColor(upper)
	o.MiddleLine.SetColor(middle)
	o.LowerLine.SetColor(lower)
	return s
}

func (s *Band) SetFillColors(upper, lower string) *Band {
	o := s.bandOptions()
	o.UpperFillColor, o.LowerFillColor = upper, lower
	return s
}

func (s *Band) Validate() error {
	return validateAll(&s.Base, s.Options, func() error {
		return validatePoints(s.Data, KeyUpperLine, KeyMiddleLine, KeyLowerLine, KeyUpperFill, KeyLowerFill)
	})
}

func (s *Band) AsDict() map[string]any {
	return s.dict(s.ChartType(), data.Dicts(s.Data), s.Options)
}

type RibbonOptions struct {
	UpperLine   *options.LineOptions
	LowerLine   *options.LineOptions
	Fill        string `validate:"chartcolor"`
	FillVisible bool
}

func NewRibbonOptions() *RibbonOptions {
	return &RibbonOptions{
		UpperLine:   options.NewLineOptionsWithColor("#4CAF50"),
		LowerLine:   options.NewLineOptionsWithColor("#F44336"),
		Fill:        "rgba(76, 175, 80, 0.1)",
		FillVisible: true,
	}
}

func (o *RibbonOptions) Validate() error {
	return types.Validate(o)
}

// Ribbon fills the area between an upper and a lower line.
type Ribbon struct {
	Base
	Data    []data.RibbonData
	Options *RibbonOptions
}

func NewRibbon(points []data.RibbonData) *Ribbon {
	return &Ribbon{Base: newBase(), Data: points, Options: NewRibbonOptions()}
}

func (s *Ribbon) ChartType() types.ChartType { return types.ChartTypeRibbon }

func (s *Ribbon) Len() int { return len(s.Data) }

func (s *Ribbon) Append(points ...data.RibbonData) *Ribbon {
	s.Data = append(s.Data, points...)
	return s
}

func (s *Ribbon) SetFill(color string, visible bool) *Ribbon {
	if s.Options == nil {
		s.Options = NewRibbonOptions()
	}
	s.Options.Fill, s.Options.FillVisible = color, visible
	return s
}

func (s *Ribbon) Validate() error {
	return validateAll(&s.Base, s.Options, func() error {
		return validatePoints(s.Data, KeyUpperLine, KeyLowerLine, KeyFill)
	})
}

func (s *Ribbon) AsDict() map[string]any {
	return s.dict(s.ChartType(), data.Dicts(s.Data), s.Options)
}

type GradientRibbonOptions struct {
	RibbonOptions
	GradientStartColor string `validate:"chartcolor"`
	GradientEndColor   string `validate:"chartcolor"`
	NormalizeGradients bool
}

func NewGradientRibbonOptions() *GradientRibbonOptions {
	return &GradientRibbonOptions{
		RibbonOptions:      *NewRibbonOptions(),
		GradientStartColor: "#4CAF50",
		GradientEndColor:   "#F44336",
	}
}

func (o *GradientRibbonOptions) Validate() error {
	return types.Validate(o)
}

// GradientRibbon is a ribbon whose fill color is interpolated per point from the
// point's gradient value.
type GradientRibbon struct {
	Base
	Data    []data.GradientRibbonData
	Options *GradientRibbonOptions
}

func NewGradientRibbon(points []data.GradientRibbonData) *GradientRibbon {
	return &GradientRibbon{Base: newBase(), Data: points, Options: NewGradientRibbonOptions()}
}

func (s *GradientRibbon) ChartType() types.ChartType { return types.ChartTypeGradientRibbon }

func (s *GradientRibbon) Len() int { return len(s.Data) }

func (s *GradientRibbon) Append(points ...data.GradientRibbonData) *GradientRibbon {
	s.Data = append(s.Data, points...)
	return s
}

func (s *GradientRibbon) SetGradient(start, end string, normalize bool) *GradientRibbon {
	if s.Options == nil {
		s.Options = NewGradientRibbonOptions()
	}
	s.Options.GradientStartColor, s.Options.GradientEndColor = start, end
	s.Options.NormalizeGradients = normalize
	return s
}

func (s *GradientRibbon) Validate() error {
	return validateAll(&s.Base, s.Options, func() error {
		return validatePoints(s.Data, KeyUpperLine, KeyLowerLine, KeyFill)
	})
}

func (s *GradientRibbon) AsDict() map[string]any {
	return s.dict(s.ChartType(), data.Dicts(s.Data), s.Options)
}

type SignalOptions struct {
	NeutralColor string `validate:"chartcolor"`
	SignalColor  string `validate:"chartcolor"`
	AlertColor   string `validate:"chartcolor"`
}

func NewSignalOptions() *SignalOptions {
	return &SignalOptions{
		NeutralColor: "rgba(128, 128, 128, 0.1)",
		SignalColor:  "rgba(76, 175, 80, 0.2)",
		AlertColor:   "rgba(244, 67, 54, 0.2)",
	}
}

func (o *SignalOptions) Validate() error {
	return types.Validate(o)
}

// Signal paints the background of each bar by its signal level.
type Signal struct {
	Base
	Data    []data.SignalData
	Options *SignalOptions
}

func NewSignal(points []data.SignalData) *Signal {
	return &Signal{Base: newBase(), Data: points, Options: NewSignalOptions()}
}

func (s *Signal) ChartType() types.ChartType { return types.ChartTypeSignal }

func (s *Signal) Len() int { return len(s.Data) }

func (s *Signal) Append(points ...data.SignalData) *Signal {
	s.Data = append(s.Data, points...)
	return s
}

func (s *Signal) SetColors(neutral, signal, alert string) *Signal {
	if s.Options == nil {
		s.Options = NewSignalOptions()
	}
	s.Options.NeutralColor, s.Options.SignalColor, s.Options.AlertColor = neutral, signal, alert
	return s
}

func (s *Signal) Validate() error {
	return validateAll(&s.Base, s.Options, func() error { return validatePoints(s.Data) })
}

func (s *Signal) AsDict() map[string]any {
	return s.dict(s.ChartType(), data.Dicts(s.Data), s.Options)
}

type TrendFillOptions struct {
	TrendLine          *options.LineOptions
	BaseLine           *options.LineOptions
	UptrendFillColor   string `validate:"chartcolor"`
	DowntrendFillColor string `validate:"chartcolor"`
	FillVisible        bool
}

func NewTrendFillOptions() *TrendFillOptions {
	base := options.NewLineOptionsWithColor("#666666")
	base.SetStyle(types.LineStyleDotted).SetWidth(1)
	return &TrendFillOptions{
		TrendLine:          options.NewLineOptionsWithColor("#2196F3"),
		BaseLine:           base,
		UptrendFillColor:   "rgba(76, 175, 80, 0.3)",
		DowntrendFillColor: "rgba(244, 67, 54, 0.3)",
		FillVisible:        true,
	}
}

func (o *TrendFillOptions) Validate() error {
	return types.Validate(o)
}

// TrendFill fills between a trend line (for example a supertrend) and a base line,
// green in uptrends and red in downtrends.
type TrendFill struct {
	Base
	Data    []data.TrendFillData
	Options *TrendFillOptions
}

func NewTrendFill(points []data.TrendFillData) *TrendFill {
	return &TrendFill{Base: newBase(), Data: points, Options: NewTrendFillOptions()}
}

func (s *TrendFill) ChartType() types.ChartType { return types.ChartTypeTrendFill }

func (s *TrendFill) Len() int { return len(s.Data) }

func (s *TrendFill) Append(points ...data.TrendFillData) *TrendFill {
	s.Data = append(s.Data, points...)
	return s
}

func (s *TrendFill) SetFillColors(up, down string) *TrendFill {
	if s.Options == nil {
		s.Options = NewTrendFillOptions()
	}
	s.Options.UptrendFillColor, s.Options.DowntrendFillColor = up, down
	return s
}

func (s *TrendFill) Validate() error {
	return validateAll(&s.Base, s.Options, func() error {
		return validatePoints(s.Data, KeyTrendLine, KeyBaseLine, KeyFill)
	})
}

func (s *TrendFill) AsDict() map[string]any {
	return s.dict(s.ChartType(), data.Dicts(s.Data), s.Options)
}
