package series

import (
	"golang-lwcharts/pkg/lwc/data"
	"golang-lwcharts/pkg/lwc/types"
)

const (
	DefaultUpColor   = "#26a69a"
	DefaultDownColor = "#ef5350"
)

type CandlestickOptions struct {
	UpColor         string `validate:"chartcolor"`
	DownColor       string `validate:"chartcolor"`
	WickVisible     bool
	BorderVisible   bool
	BorderColor     string `validate:"chartcolor"`
	BorderUpColor   string `validate:"chartcolor"`
	BorderDownColor string `validate:"chartcolor"`
	WickColor       string `validate:"chartcolor"`
	WickUpColor     string `validate:"chartcolor"`
	WickDownColor   string `validate:"chartcolor"`
}

func NewCandlestickOptions() *CandlestickOptions {
	return &CandlestickOptions{
		UpColor:         DefaultUpColor,
		DownColor:       DefaultDownColor,
		WickVisible:     true,
		BorderVisible:   true,
		BorderColor:     "#378658",
		BorderUpColor:   DefaultUpColor,
		BorderDownColor: DefaultDownColor,
		WickColor:       "#737375",
		WickUpColor:     DefaultUpColor,
		WickDownColor:   DefaultDownColor,
	}
}

func (o *CandlestickOptions) Validate() error {
	return types.Validate(o)
}

type Candlestick struct {
	Base
	Data    []data.CandlestickData
	Options *CandlestickOptions
}

func NewCandlestick(points []data.CandlestickData) *Candlestick {
	return &Candlestick{Base: newBase(), Data: points, Options: NewCandlestickOptions()}
}

func (s *Candlestick) ChartType() types.ChartType { return types.ChartTypeCandlestick }

func (s *Candlestick) Len() int { return len(s.Data) }

func (s *Candlestick) Append(points ...data.CandlestickData) *Candlestick {
	s.Data = append(s.Data, points...)
	return s
}

func (s *Candlestick) candleOptions() *CandlestickOptions {
	if s.Options == nil {
		s.Options = NewCandlestickOptions()
	}
	return s.Options
}

// SetColors sets body, border and wick colors for up and down candles at once.
func (s *Candlestick) SetColors(up, down string) *Candlestick {
	o := s.candleOptions()
	o.UpColor, o.BorderUpColor, o.WickUpColor = up, up, up
	o.DownColor, o.BorderDownColor, o.WickDownColor = down, down, down
	return s
}

func (s *Candlestick) SetWickColors(up, down string) *Candlestick {
	o := s.candleOptions()
	o.WickUpColor, o.WickDownColor = up, down
	return s
}

func (s *Candlestick) SetBorder(visible bool, up, down string) *Candlestick {
	o := s.candleOptions()
	o.BorderVisible = visible
	o.BorderUpColor, o.BorderDownColor = up, down
	return s
}

func (s *Candlestick) Validate() error {
	return validateAll(&s.Base, s.Options, func() error { return validatePoints(s.Data) })
}

func (s *Candlestick) AsDict() map[string]any {
	return s.dict(s.ChartType(), data.Dicts(s.Data), s.Options)
}

type BarOptions struct {
	UpColor     string `validate:"chartcolor"`
	DownColor   string `validate:"chartcolor"`
	OpenVisible bool
	ThinBars    bool
}

func NewBarOptions() *BarOptions {
	return &BarOptions{UpColor: DefaultUpColor, DownColor: DefaultDownColor, OpenVisible: true, ThinBars: true}
}

func (o *BarOptions) Validate() error {
	return types.Validate(o)
}

type Bar struct {
	Base
	Data    []data.BarData
	Options *BarOptions
}

func NewBar(points []data.BarData) *Bar {
	return &Bar{Base: newBase(), Data: points, Options: NewBarOptions()}
}

func (s *Bar) ChartType() types.ChartType { return types.ChartTypeBar }

func (s *Bar) Len() int { return len(s.Data) }

func (s *Bar) Append(points ...data.BarData) *Bar {
	s.Data = append(s.Data, points...)
	return s
}

func (s *Bar) SetColors(up, down string) *Bar {
	if s.Options == nil {
		s.Options = NewBarOptions()
	}
	s.Options.UpColor, s.Options.DownColor = up, down
	return s
}

func (s *Bar) Validate() error {
	return validateAll(&s.Base, s.Options, func() error { return validatePoints(s.Data) })
}

func (s *Bar) AsDict() map[string]any {
	return s.dict(s.ChartType(), data.Dicts(s.Data), s.Options)
}
