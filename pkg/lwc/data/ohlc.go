package data

import (
	"golang-lwcharts/pkg/lwc/types"
)

type OhlcData struct {
	Time  types.Time `json:"time"`
	Open  float64    `json:"open" validate:"gte=0"`
	High  float64    `json:"high" validate:"gte=0,gtefield=Low"`
	Low   float64    `json:"low" validate:"gte=0"`
	Close float64    `json:"close" validate:"gte=0"`
}

func NewOhlcData(t any, open, high, low, close float64) (*OhlcData, error) {
	ts, err := types.NormalizeTime(t)
	if err != nil {
		return nil, err
	}
	d := &OhlcData{
		Time:  types.Time(ts),
		Open:  types.NormalizeFloat(open),
		High:  types.NormalizeFloat(high),
		Low:   types.NormalizeFloat(low),
		Close: types.NormalizeFloat(close),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d OhlcData) GetTime() types.Time { return d.Time }

// Validate requires non-negative prices and high >= low.
func (d OhlcData) Validate() error {
	return types.Validate(d)
}

// IsUp reports whether the bar closed at or above its open.
func (d OhlcData) IsUp() bool { return d.Close >= d.Open }

type OhlcvData struct {
	OhlcData
	Volume float64 `json:"volume" validate:"gte=0"`
}

func NewOhlcvData(t any, open, high, low, close, volume float64) (*OhlcvData, error) {
	ohlc, err := NewOhlcData(t, open, high, low, close)
	if err != nil {
		return nil, err
	}
	d := &OhlcvData{OhlcData: *ohlc, Volume: types.NormalizeFloat(volume)}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d OhlcvData) Validate() error {
	return types.Validate(d)
}

type CandlestickData struct {
	OhlcData
	Color       string `json:"color,omitempty" validate:"chartcolor"`
	BorderColor string `json:"borderColor,omitempty" validate:"chartcolor"`
	WickColor   string `json:"wickColor,omitempty" validate:"chartcolor"`
}

func NewCandlestickData(t any, open, high, low, close float64) (*CandlestickData, error) {
	ohlc, err := NewOhlcData(t, open, high, low, close)
	if err != nil {
		return nil, err
	}
	return &CandlestickData{OhlcData: *ohlc}, nil
}

func (d *CandlestickData) WithColors(body, border, wick string) *CandlestickData {
	d.Color, d.BorderColor, d.WickColor = body, border, wick
	return d
}

func (d CandlestickData) Validate() error {
	return types.Validate(d)
}

type BarData struct {
	OhlcData
	Color string `json:"color,omitempty" validate:"chartcolor"`
}

func NewBarData(t any, open, high, low, close float64) (*BarData, error) {
	ohlc, err := NewOhlcData(t, open, high, low, close)
	if err != nil {
		return nil, err
	}
	return &BarData{OhlcData: *ohlc}, nil
}

func (d BarData) Validate() error {
	return types.Validate(d)
}

// Candles strips volume from OHLCV bars.
func Candles(bars []OhlcvData) []CandlestickData {
	out := make([]CandlestickData, 0, len(bars))
	for _, b := range bars {
		out = append(out, CandlestickData{OhlcData: b.OhlcData})
	}
	return out
}
