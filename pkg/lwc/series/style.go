package series

import (
	"fmt"

	"golang-lwcharts/pkg/lwc/data"
	"golang-lwcharts/pkg/lwc/options"
	"golang-lwcharts/pkg/lwc/style"
	"golang-lwcharts/pkg/lwc/types"
)

// EffectiveLineStyle resolves the line style drawn for the point at index: the series
// line options for key, overridden by the point's own style for key when present.
// The index refers to the series data as stored, not the time-sorted output.
func EffectiveLineStyle(s Series, index int, key string) (style.LineStyle, error) {
	var (
		lines map[string]*options.LineOptions
		point data.Styled
	)
	switch v := s.(type) {
	case *Line:
		if index >= 0 && index < len(v.Data) {
			point = v.Data[index]
		}
		lines = map[string]*options.LineOptions{KeyLine: v.Options}
	case *Area:
		if index >= 0 && index < len(v.Data) {
			point = v.Data[index]
		}
		if v.Options != nil {
			lines = map[string]*options.LineOptions{KeyLine: &v.Options.LineOptions}
		}
	case *Band:
		if index >= 0 && index < len(v.Data) {
			point = v.Data[index]
		}
		if v.Options != nil {
			lines = map[string]*options.LineOptions{
				KeyUpperLine: v.Options.UpperLine, KeyMiddleLine: v.Options.MiddleLine, KeyLowerLine: v.Options.LowerLine,
			}
		}
	case *Ribbon:
		if index >= 0 && index < len(v.Data) {
			point = v.Data[index]
		}
		if v.Options != nil {
			lines = map[string]*options.LineOptions{KeyUpperLine: v.Options.UpperLine, KeyLowerLine: v.Options.LowerLine}
		}
	case *GradientRibbon:
		if index >= 0 && index < len(v.Data) {
			point = v.Data[index]
		}
		if v.Options != nil {
			lines = map[string]*options.LineOptions{KeyUpperLine: v.Options.UpperLine, KeyLowerLine: v.Options.LowerLine}
		}
	case *TrendFill:
		if index >= 0 && index < len(v.Data) {
			point = v.Data[index]
		}
		if v.Options != nil {
			lines = map[string]*options.LineOptions{KeyTrendLine: v.Options.TrendLine, KeyBaseLine: v.Options.BaseLine}
		}
	default:
		return style.LineStyle{}, types.NewValidationError("series", s.ChartType(), "has no styled lines")
	}

	if point == nil {
		return style.LineStyle{}, fmt.Errorf("data[%d]: %w", index, types.ErrNotFound)
	}
	base, ok := lines[key]
	if !ok || base == nil {
		return style.LineStyle{}, types.NewValidationError("key", key, fmt.Sprintf("is not a line of %s series", s.ChartType()))
	}
	effective := base.Style()
	if ps := point.PointStyles(); ps != nil {
		if override, ok := ps.Lines[key]; ok {
			effective = style.MergeLine(effective, override)
		}
	}
	return effective, nil
}
