package options

import (
	"golang-lwcharts/pkg/lwc/types"
)

// LegendOptions configures the per-series legend box. Text may contain $$value$$ and
// $$title$$ placeholders that the frontend fills on crosshair move.
type LegendOptions struct {
	Visible         bool
	Position        string `validate:"oneof=top-left top-right bottom-left bottom-right top bottom left right"`
	SymbolName      string
	BackgroundColor string `validate:"chartcolor"`
	TextColor       string `validate:"chartcolor"`
	BorderColor     string `validate:"chartcolor"`
	BorderWidth     int    `validate:"gte=0"`
	BorderRadius    int    `validate:"gte=0"`
	Padding         int    `validate:"gte=0"`
	Margin          int    `validate:"gte=0"`
	ZIndex          int
	ShowValues      bool
	ValueFormat     string
	Text            string
}

func NewLegendOptions() *LegendOptions {
	return &LegendOptions{
		Visible:         true,
		Position:        "top-left",
		BackgroundColor: "rgba(255, 255, 255, 0.9)",
		TextColor:       "#131722",
		BorderColor:     "#e1e3e6",
		BorderWidth:     1,
		BorderRadius:    4,
		Padding:         6,
		Margin:          8,
		ZIndex:          1000,
		ShowValues:      true,
		ValueFormat:     ".2f",
	}
}

func (l *LegendOptions) SetPosition(p string) *LegendOptions {
	l.Position = p
	return l
}

func (l *LegendOptions) SetSymbolName(name string) *LegendOptions {
	l.SymbolName = name
	return l
}

func (l *LegendOptions) SetText(text string) *LegendOptions {
	l.Text = text
	return l
}

func (l *LegendOptions) SetVisible(v bool) *LegendOptions {
	l.Visible = v
	return l
}

func (l *LegendOptions) Validate() error {
	return types.ValidateAt("legend", l)
}

// RangeConfig is one range switcher button. A nil Seconds shows all data.
type RangeConfig struct {
	Label   string `validate:"required"`
	Seconds *int64 `validate:"omitempty,gt=0"`
}

const (
	day  int64 = 24 * 60 * 60
	week       = 7 * day
)

func Range(label string, seconds int64) RangeConfig {
	return RangeConfig{Label: label, Seconds: &seconds}
}

func DefaultRanges() []RangeConfig {
	return []RangeConfig{
		Range("1D", day),
		Range("1W", week),
		Range("1M", 30*day),
		Range("3M", 90*day),
		Range("1Y", 365*day),
		{Label: "All"},
	}
}

type RangeSwitcherOptions struct {
	Visible  bool
	Position string
	Ranges   []RangeConfig `validate:"dive"`
}

func NewRangeSwitcherOptions() *RangeSwitcherOptions {
	return &RangeSwitcherOptions{Visible: true, Position: "top-right", Ranges: DefaultRanges()}
}

func (r *RangeSwitcherOptions) Validate() error {
	return types.Validate(r)
}
