package data

import (
	"golang-lwcharts/pkg/lwc/style"
	"golang-lwcharts/pkg/lwc/types"
)

// BandData is one sample of a three-line band such as Bollinger bands.
// The lines are not required to be ordered.
type BandData struct {
	Time   types.Time            `json:"time"`
	Upper  float64               `json:"upper"`
	Middle float64               `json:"middle"`
	Lower  float64               `json:"lower"`
	Styles *style.PerPointStyles `json:"styles,omitempty"`
}

func NewBandData(t any, upper, middle, lower float64) (*BandData, error) {
	ts, err := types.NormalizeTime(t)
	if err != nil {
		return nil, err
	}
	return &BandData{
		Time:   types.Time(ts),
		Upper:  types.NormalizeFloat(upper),
		Middle: types.NormalizeFloat(middle),
		Lower:  types.NormalizeFloat(lower),
	}, nil
}

func (d *BandData) WithStyles(s *style.PerPointStyles) *BandData {
	d.Styles = s
	return d
}

func (d BandData) GetTime() types.Time { return d.Time }

func (d BandData) PointStyles() *style.PerPointStyles { return d.Styles }

func (d BandData) Validate() error { return d.Styles.Validate() }

type RibbonData struct {
	Time   types.Time            `json:"time"`
	Upper  float64               `json:"upper"`
	Lower  float64               `json:"lower"`
	Fill   string                `json:"fill,omitempty" validate:"chartcolor"`
	Styles *style.PerPointStyles `json:"styles,omitempty"`
}

func NewRibbonData(t any, upper, lower float64) (*RibbonData, error) {
	ts, err := types.NormalizeTime(t)
	if err != nil {
		return nil, err
	}
	return &RibbonData{
		Time:  types.Time(ts),
		Upper: types.NormalizeFloat(upper),
		Lower: types.NormalizeFloat(lower),
	}, nil
}

func (d *RibbonData) WithFill(color string) *RibbonData {
	d.Fill = color
	return d
}

func (d RibbonData) GetTime() types.Time { return d.Time }

func (d *RibbonData) WithStyles(s *style.PerPointStyles) *RibbonData {
	d.Styles = s
	return d
}

func (d RibbonData) PointStyles() *style.PerPointStyles { return d.Styles }

func (d RibbonData) Validate() error {
	if err := types.Validate(d); err != nil {
		return err
	}
	return d.Styles.Validate()
}

// GradientRibbonData adds a normalized gradient position that the frontend maps onto
// the series gradient colors.
type GradientRibbonData struct {
	RibbonData
	Gradient *float64 `json:"gradient,omitempty" validate:"omitempty,gte=0,lte=1"`
}

func NewGradientRibbonData(t any, upper, lower float64, gradient *float64) (*GradientRibbonData, error) {
	r, err := NewRibbonData(t, upper, lower)
	if err != nil {
		return nil, err
	}
	d := &GradientRibbonData{RibbonData: *r, Gradient: gradient}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d GradientRibbonData) Validate() error {
	if err := types.Validate(d); err != nil {
		return err
	}
	return d.Styles.Validate()
}
