// Package data models the individual samples plotted by each series type.
package data

import (
	"fmt"
	"sort"
	"strconv"

	"golang-lwcharts/pkg/lwc/serialize"
	"golang-lwcharts/pkg/lwc/style"
	"golang-lwcharts/pkg/lwc/types"
)

// Point is implemented by every data point type.
type Point interface {
	GetTime() types.Time
	Validate() error
}

// Styled is implemented by points that carry per-point style overrides.
type Styled interface {
	PointStyles() *style.PerPointStyles
}

// SingleValueData is a point carrying one value.
type SingleValueData struct {
	Time  types.Time `json:"time"`
	Value float64    `json:"value"`
}

func (d SingleValueData) GetTime() types.Time { return d.Time }

func (d SingleValueData) Validate() error { return nil }

func newSingleValue(t any, value float64) (SingleValueData, error) {
	ts, err := types.NormalizeTime(t)
	if err != nil {
		return SingleValueData{}, err
	}
	return SingleValueData{Time: types.Time(ts), Value: types.NormalizeFloat(value)}, nil
}

type LineData struct {
	SingleValueData
	Color  string                `json:"color,omitempty" validate:"chartcolor"`
	Styles *style.PerPointStyles `json:"styles,omitempty"`
}

func NewLineData(t any, value float64) (*LineData, error) {
	sv, err := newSingleValue(t, value)
	if err != nil {
		return nil, err
	}
	return &LineData{SingleValueData: sv}, nil
}

func (d *LineData) WithColor(color string) *LineData {
	d.Color = color
	return d
}

func (d *LineData) WithStyles(s *style.PerPointStyles) *LineData {
	d.Styles = s
	return d
}

func (d LineData) PointStyles() *style.PerPointStyles { return d.Styles }

func (d LineData) Validate() error {
	if err := types.Validate(d); err != nil {
		return err
	}
	return d.Styles.Validate()
}

type AreaData struct {
	SingleValueData
	LineColor   string                `json:"lineColor,omitempty" validate:"chartcolor"`
	TopColor    string                `json:"topColor,omitempty" validate:"chartcolor"`
	BottomColor string                `json:"bottomColor,omitempty" validate:"chartcolor"`
	Styles      *style.PerPointStyles `json:"styles,omitempty"`
}

func NewAreaData(t any, value float64) (*AreaData, error) {
	sv, err := newSingleValue(t, value)
	if err != nil {
		return nil, err
	}
	return &AreaData{SingleValueData: sv}, nil
}

func (d *AreaData) WithColors(line, top, bottom string) *AreaData {
	d.LineColor, d.TopColor, d.BottomColor = line, top, bottom
	return d
}

func (d *AreaData) WithStyles(s *style.PerPointStyles) *AreaData {
	d.Styles = s
	return d
}

func (d AreaData) PointStyles() *style.PerPointStyles { return d.Styles }

func (d AreaData) Validate() error {
	if err := types.Validate(d); err != nil {
		return err
	}
	return d.Styles.Validate()
}

type HistogramData struct {
	SingleValueData
	Color string `json:"color,omitempty" validate:"chartcolor"`
}

func NewHistogramData(t any, value float64) (*HistogramData, error) {
	sv, err := newSingleValue(t, value)
	if err != nil {
		return nil, err
	}
	return &HistogramData{SingleValueData: sv}, nil
}

func (d *HistogramData) WithColor(color string) *HistogramData {
	d.Color = color
	return d
}

func (d HistogramData) Validate() error {
	return types.Validate(d)
}

type BaselineData struct {
	SingleValueData
	TopFillColor1    string `json:"topFillColor1,omitempty" validate:"chartcolor"`
	TopFillColor2    string `json:"topFillColor2,omitempty" validate:"chartcolor"`
	TopLineColor     string `json:"topLineColor,omitempty" validate:"chartcolor"`
	BottomFillColor1 string `json:"bottomFillColor1,omitempty" validate:"chartcolor"`
	BottomFillColor2 string `json:"bottomFillColor2,omitempty" validate:"chartcolor"`
	BottomLineColor  string `json:"bottomLineColor,omitempty" validate:"chartcolor"`
}

func NewBaselineData(t any, value float64) (*BaselineData, error) {
	sv, err := newSingleValue(t, value)
	if err != nil {
		return nil, err
	}
	return &BaselineData{SingleValueData: sv}, nil
}

func (d BaselineData) Validate() error {
	return types.Validate(d)
}

// Dicts serializes points in time order. Points with equal times keep their input order.
func Dicts[T Point](points []T) []any {
	sorted := SortedByTime(points)
	out := make([]any, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, serialize.ToMap(p))
	}
	return out
}

// SortedByTime returns a time-ordered copy of points.
func SortedByTime[T Point](points []T) []T {
	sorted := make([]T, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GetTime() < sorted[j].GetTime()
	})
	return sorted
}

// ValidateAll validates each point and rejects duplicate timestamps.
func ValidateAll[T Point](points []T) error {
	seen := make(map[types.Time]struct{}, len(points))
	for i, p := range points {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%s: %w", indexField(i), err)
		}
		t := p.GetTime()
		if _, dup := seen[t]; dup {
			return types.NewValidationError(indexField(i)+".time", int64(t), "duplicate timestamp")
		}
		seen[t] = struct{}{}
	}
	return nil
}

func indexField(i int) string {
	return "data[" + strconv.Itoa(i) + "]"
}
