package options

import (
	"golang-lwcharts/pkg/lwc/types"
)

type ScaleMargins struct {
	Top    float64 `validate:"gte=0,lte=1"`
	Bottom float64 `validate:"gte=0,lte=1"`
}

func (m ScaleMargins) Validate() error {
	if err := types.ValidateAt("scaleMargins", m); err != nil {
		return err
	}
	if m.Top+m.Bottom >= 1 {
		return types.NewValidationError("scaleMargins", m.Top+m.Bottom, "top + bottom must be less than 1")
	}
	return nil
}

type PriceScaleOptions struct {
	Visible        bool
	AutoScale      bool
	Mode           types.PriceScaleMode `validate:"lwcenum"`
	InvertScale    bool
	AlignLabels    bool
	BorderVisible  bool
	BorderColor    string `validate:"chartcolor"`
	TextColor      string `validate:"chartcolor"`
	EntireTextOnly bool
	TicksVisible   bool
	MinimumWidth   int `validate:"gte=0"`
	ScaleMargins   *ScaleMargins
	PriceScaleID   string
}

func NewPriceScaleOptions() *PriceScaleOptions {
	return &PriceScaleOptions{
		Visible:       true,
		AutoScale:     true,
		AlignLabels:   true,
		BorderVisible: true,
		BorderColor:   "rgba(197, 203, 206, 1)",
		ScaleMargins:  &ScaleMargins{Top: 0.1, Bottom: 0.1},
	}
}

// NewOverlayPriceScale returns a hidden scale for series drawn over the main price scale.
func NewOverlayPriceScale(id string) *PriceScaleOptions {
	return &PriceScaleOptions{
		Visible:      false,
		AutoScale:    true,
		ScaleMargins: &ScaleMargins{Top: 0.1, Bottom: 0.1},
		PriceScaleID: id,
	}
}

func (p *PriceScaleOptions) SetVisible(v bool) *PriceScaleOptions {
	p.Visible = v
	return p
}

func (p *PriceScaleOptions) SetMode(m types.PriceScaleMode) *PriceScaleOptions {
	p.Mode = m
	return p
}

func (p *PriceScaleOptions) SetMargins(top, bottom float64) *PriceScaleOptions {
	p.ScaleMargins = &ScaleMargins{Top: top, Bottom: bottom}
	return p
}

func (p *PriceScaleOptions) SetBorder(visible bool, color string) *PriceScaleOptions {
	p.BorderVisible = visible
	p.BorderColor = color
	return p
}

func (p *PriceScaleOptions) SetInvert(invert bool) *PriceScaleOptions {
	p.InvertScale = invert
	return p
}

func (p *PriceScaleOptions) Validate() error {
	if err := types.Validate(p); err != nil {
		return err
	}
	if p.ScaleMargins != nil {
		return p.ScaleMargins.Validate()
	}
	return nil
}

type TimeScaleOptions struct {
	RightOffset                  int
	BarSpacing                   float64 `validate:"gt=0"`
	MinBarSpacing                float64 `validate:"gte=0"`
	FixLeftEdge                  bool
	FixRightEdge                 bool
	LockVisibleTimeRangeOnResize bool
	RightBarStaysOnScroll        bool
	BorderVisible                bool
	BorderColor                  string `validate:"chartcolor"`
	Visible                      bool
	TimeVisible                  bool
	SecondsVisible               bool
	ShiftVisibleRangeOnNewBar    bool
	TicksVisible                 bool
}

func NewTimeScaleOptions() *TimeScaleOptions {
	return &TimeScaleOptions{
		BarSpacing:                6,
		MinBarSpacing:             0.5,
		BorderVisible:             true,
		BorderColor:               "rgba(197, 203, 206, 1)",
		Visible:                   true,
		SecondsVisible:            true,
		ShiftVisibleRangeOnNewBar: true,
	}
}

func (t *TimeScaleOptions) SetTimeVisible(v bool) *TimeScaleOptions {
	t.TimeVisible = v
	return t
}

func (t *TimeScaleOptions) SetSecondsVisible(v bool) *TimeScaleOptions {
	t.SecondsVisible = v
	return t
}

func (t *TimeScaleOptions) SetBarSpacing(spacing float64) *TimeScaleOptions {
	t.BarSpacing = spacing
	return t
}

func (t *TimeScaleOptions) SetRightOffset(offset int) *TimeScaleOptions {
	t.RightOffset = offset
	return t
}

func (t *TimeScaleOptions) Validate() error {
	return types.Validate(t)
}
