package data

import (
	"golang-lwcharts/pkg/lwc/style"
	"golang-lwcharts/pkg/lwc/types"
)

const (
	SignalNeutral = 0
	SignalActive  = 1
	SignalAlert   = 2
)

// SignalData marks a bar as neutral, signalled or alerted; the signal series paints
// the background of each bar with the matching color.
type SignalData struct {
	Time  types.Time `json:"time"`
	Value int        `json:"value" validate:"gte=0,lte=2"`
	Color string     `json:"color,omitempty" validate:"chartcolor"`
}

func NewSignalData(t any, value int) (*SignalData, error) {
	ts, err := types.NormalizeTime(t)
	if err != nil {
		return nil, err
	}
	d := &SignalData{Time: types.Time(ts), Value: value}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d SignalData) GetTime() types.Time { return d.Time }

func (d SignalData) Validate() error {
	return types.Validate(d)
}

const (
	TrendDown    = -1
	TrendNeutral = 0
	TrendUp      = 1
)

// TrendFillData fills between a trend line and a base line, colored by direction.
type TrendFillData struct {
	Time               types.Time            `json:"time"`
	TrendLine          float64               `json:"trendLine"`
	BaseLine           float64               `json:"baseLine"`
	TrendDirection     int                   `json:"trendDirection" validate:"gte=-1,lte=1"`
	UptrendFillColor   string                `json:"uptrendFillColor,omitempty" validate:"chartcolor"`
	DowntrendFillColor string                `json:"downtrendFillColor,omitempty" validate:"chartcolor"`
	Styles             *style.PerPointStyles `json:"styles,omitempty"`
}

func NewTrendFillData(t any, trendLine, baseLine float64, direction int) (*TrendFillData, error) {
	ts, err := types.NormalizeTime(t)
	if err != nil {
		return nil, err
	}
	d := &TrendFillData{
		Time:           types.Time(ts),
		TrendLine:      types.NormalizeFloat(trendLine),
		BaseLine:       types.NormalizeFloat(baseLine),
		TrendDirection: direction,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d TrendFillData) GetTime() types.Time { return d.Time }

func (d *TrendFillData) WithStyles(s *style.PerPointStyles) *TrendFillData {
	d.Styles = s
	return d
}

func (d TrendFillData) PointStyles() *style.PerPointStyles { return d.Styles }

func (d TrendFillData) IsUptrend() bool { return d.TrendDirection == TrendUp }

func (d TrendFillData) IsDowntrend() bool { return d.TrendDirection == TrendDown }

func (d TrendFillData) Validate() error {
	if err := types.Validate(d); err != nil {
		return err
	}
	return d.Styles.Validate()
}
