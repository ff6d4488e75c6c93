// Package style holds the per-point visual overrides that sit on top of series defaults.
package style

import (
	"fmt"
	"sort"

	"golang-lwcharts/pkg/lwc/serialize"
	"golang-lwcharts/pkg/lwc/types"
)

// LineStyle overrides the stroke of one line of a series at a single point.
type LineStyle struct {
	Color   string           `json:"color,omitempty" validate:"chartcolor"`
	Width   *int             `json:"width,omitempty" validate:"omitempty,gte=1"`
	Style   *types.LineStyle `json:"style,omitempty" validate:"omitempty,lwcenum"`
	Visible *bool            `json:"visible,omitempty"`
}

func (l LineStyle) Validate(field string) error {
	return types.ValidateAt(field, l)
}

// FillStyle overrides a filled area of a series at a single point.
type FillStyle struct {
	Color   string   `json:"color,omitempty" validate:"chartcolor"`
	Opacity *float64 `json:"opacity,omitempty" validate:"omitempty,gte=0,lte=1"`
	Visible *bool    `json:"visible,omitempty"`
}

func (f FillStyle) Validate(field string) error {
	return types.ValidateAt(field, f)
}

// PerPointStyles groups the overrides of one data point, keyed by the series part they style
// (for example "upperLine" or "fill").
type PerPointStyles struct {
	Lines map[string]LineStyle `json:"lines,omitempty"`
	Fills map[string]FillStyle `json:"fills,omitempty"`
}

func NewPerPointStyles() *PerPointStyles {
	return &PerPointStyles{}
}

func (p *PerPointStyles) Line(key string, s LineStyle) *PerPointStyles {
	if p.Lines == nil {
		p.Lines = make(map[string]LineStyle)
	}
	p.Lines[key] = s
	return p
}

func (p *PerPointStyles) Fill(key string, s FillStyle) *PerPointStyles {
	if p.Fills == nil {
		p.Fills = make(map[string]FillStyle)
	}
	p.Fills[key] = s
	return p
}

func (p *PerPointStyles) IsEmpty() bool {
	return p == nil || (len(p.Lines) == 0 && len(p.Fills) == 0)
}

// Keys returns every styled part, sorted.
func (p *PerPointStyles) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(p.Lines)+len(p.Fills))
	for k := range p.Lines {
		keys = append(keys, k)
	}
	for k := range p.Fills {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p *PerPointStyles) Validate() error {
	if p == nil {
		return nil
	}
	for k, l := range p.Lines {
		if err := l.Validate("styles." + k); err != nil {
			return err
		}
		if _, dup := p.Fills[k]; dup {
			return types.NewValidationError("styles."+k, nil, "is used by both a line and a fill")
		}
	}
	for k, f := range p.Fills {
		if err := f.Validate("styles." + k); err != nil {
			return err
		}
	}
	return nil
}

// CheckKeys rejects parts the owning series does not draw.
func (p *PerPointStyles) CheckKeys(allowed ...string) error {
	if p == nil {
		return nil
	}
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	for _, k := range p.Keys() {
		if _, ok := set[k]; !ok {
			return types.NewValidationError("styles", k, fmt.Sprintf("unsupported style key, expected one of %v", allowed))
		}
	}
	return nil
}

// AsDict flattens lines and fills into one object keyed by part.
func (p *PerPointStyles) AsDict() map[string]any {
	out := map[string]any{}
	if p == nil {
		return out
	}
	for k, l := range p.Lines {
		out[k] = serialize.ToMap(l)
	}
	for k, f := range p.Fills {
		out[k] = serialize.ToMap(f)
	}
	return out
}

// MergeLine applies the fields set in override on top of base.
func MergeLine(base, override LineStyle) LineStyle {
	out := base
	if override.Color != "" {
		out.Color = override.Color
	}
	if override.Width != nil {
		out.Width = override.Width
	}
	if override.Style != nil {
		out.Style = override.Style
	}
	if override.Visible != nil {
		out.Visible = override.Visible
	}
	return out
}

// MergeFill applies the fields set in override on top of base.
func MergeFill(base, override FillStyle) FillStyle {
	out := base
	if override.Color != "" {
		out.Color = override.Color
	}
	if override.Opacity != nil {
		out.Opacity = override.Opacity
	}
	if override.Visible != nil {
		out.Visible = override.Visible
	}
	return out
}
