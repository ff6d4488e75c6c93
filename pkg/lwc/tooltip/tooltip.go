// Package tooltip describes the hover tooltips rendered by the frontend and can render
// the same text server side for previews and tests.
package tooltip

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang-lwcharts/pkg/lwc/types"
)

// Field is one labelled value of a tooltip.
type Field struct {
	Label      string `json:"label" validate:"required"`
	ValueKey   string `json:"valueKey" validate:"required"`
	Formatter  string `json:"formatter,omitempty"`
	Color      string `json:"color,omitempty" validate:"chartcolor"`
	FontSize   int    `json:"fontSize,omitempty" lwc:",omitempty" validate:"gte=0"`
	FontWeight string `json:"fontWeight,omitempty"`
	Prefix     string `json:"prefix,omitempty"`
	Suffix     string `json:"suffix,omitempty"`
	Precision  *int   `json:"precision,omitempty" validate:"omitempty,gte=0"`
}

func NewField(label, valueKey string) Field {
	return Field{Label: label, ValueKey: valueKey}
}

func (f Field) WithPrecision(p int) Field {
	f.Precision = &p
	return f
}

func (f Field) WithAffixes(prefix, suffix string) Field {
	f.Prefix, f.Suffix = prefix, suffix
	return f
}

func (f Field) WithFormatter(name string) Field {
	f.Formatter = name
	return f
}

// Format renders value with the field precision and affixes. Nil renders as an empty string.
func (f Field) Format(value any) string {
	if value == nil {
		return ""
	}
	return f.Prefix + formatValue(value, f.Precision) + f.Suffix
}

func formatValue(value any, precision *int) string {
	var num float64
	switch v := value.(type) {
	case float64:
		num = v
	case float32:
		num = float64(v)
	case int:
		num = float64(v)
	case int64:
		num = float64(v)
	case int32:
		num = float64(v)
	default:
		return fmt.Sprint(value)
	}
	if precision != nil {
		return strconv.FormatFloat(num, 'f', *precision, 64)
	}
	return strconv.FormatFloat(num, 'f', -1, 64)
}

type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Style is the CSS-like look of the tooltip box.
type Style struct {
	BackgroundColor string `json:"backgroundColor,omitempty" validate:"chartcolor"`
	BorderColor     string `json:"borderColor,omitempty" validate:"chartcolor"`
	BorderWidth     int    `json:"borderWidth" validate:"gte=0"`
	BorderRadius    int    `json:"borderRadius" validate:"gte=0"`
	Padding         int    `json:"padding" validate:"gte=0"`
	FontSize        int    `json:"fontSize" validate:"gt=0"`
	FontFamily      string `json:"fontFamily,omitempty"`
	Color           string `json:"color,omitempty" validate:"chartcolor"`
	BoxShadow       string `json:"boxShadow,omitempty"`
	ZIndex          int    `json:"zIndex"`
}

func DefaultStyle() *Style {
	return &Style{
		BackgroundColor: "rgba(255, 255, 255, 0.95)",
		BorderColor:     "#E0E0E0",
		BorderWidth:     1,
		BorderRadius:    4,
		Padding:         8,
		FontSize:        12,
		FontFamily:      "-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif",
		Color:           "#131722",
		BoxShadow:       "0 2px 4px rgba(0, 0, 0, 0.1)",
		ZIndex:          1000,
	}
}

// Config is one named tooltip definition.
// DateFormat and TimeFormat use strftime directives, which the frontend understands.
type Config struct {
	Enabled    bool                  `json:"enabled"`
	Type       types.TooltipType     `json:"type" validate:"lwcenum"`
	Template   string                `json:"template,omitempty"`
	Fields     []Field               `json:"fields,omitempty" validate:"dive"`
	Position   types.TooltipPosition `json:"position" validate:"lwcenum"`
	Offset     *Offset               `json:"offset,omitempty"`
	Style      *Style                `json:"style,omitempty"`
	ShowDate   bool                  `json:"showDate"`
	DateFormat string                `json:"dateFormat,omitempty"`
	ShowTime   bool                  `json:"showTime"`
	TimeFormat string                `json:"timeFormat,omitempty"`
}

func NewConfig(t types.TooltipType) *Config {
	return &Config{
		Enabled:    true,
		Type:       t,
		Position:   types.TooltipPositionCursor,
		Offset:     &Offset{X: 10, Y: 10},
		Style:      DefaultStyle(),
		ShowDate:   true,
		DateFormat: "%Y-%m-%d",
		ShowTime:   true,
		TimeFormat: "%H:%M",
	}
}

func (c *Config) AddField(f Field) *Config {
	c.Fields = append(c.Fields, f)
	return c
}

func (c *Config) SetTemplate(template string) *Config {
	c.Template = template
	return c
}

func (c *Config) SetPosition(p types.TooltipPosition) *Config {
	c.Position = p
	return c
}

func (c *Config) SetStyle(s *Style) *Config {
	c.Style = s
	return c
}

func (c *Config) Validate() error {
	return types.ValidateAt("tooltip", c)
}

// Format renders the tooltip text for one hovered point.
func (c *Config) Format(values map[string]any, t any) string {
	return c.format(values, t, nil)
}

func (c *Config) format(values map[string]any, t any, formatters map[string]func(any) string) string {
	render := func(f Field) string {
		v, ok := values[f.ValueKey]
		if !ok {
			return ""
		}
		if fn, ok := formatters[f.Formatter]; ok && f.Formatter != "" {
			return f.Prefix + fn(v) + f.Suffix
		}
		return f.Format(v)
	}

	stamp := c.formatTime(t)
	if c.Template == "" {
		lines := make([]string, 0, len(c.Fields)+1)
		if stamp != "" {
			lines = append(lines, stamp)
		}
		for _, f := range c.Fields {
			if _, ok := values[f.ValueKey]; !ok {
				continue
			}
			lines = append(lines, f.Label+": "+render(f))
		}
		return strings.Join(lines, "\n")
	}

	// One pass, so substituted values are never expanded again. Fields win over raw values.
	seen := map[string]bool{"{time}": true}
	pairs := []string{"{time}", stamp}
	for _, f := range c.Fields {
		key := "{" + f.ValueKey + "}"
		if !seen[key] {
			seen[key] = true
			pairs = append(pairs, key, render(f))
		}
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		key := "{" + k + "}"
		if !seen[key] {
			seen[key] = true
			pairs = append(pairs, key, fmt.Sprint(values[k]))
		}
	}
	return strings.NewReplacer(pairs...).Replace(c.Template)
}

func (c *Config) formatTime(t any) string {
	if t == nil || (!c.ShowDate && !c.ShowTime) {
		return ""
	}
	ts, err := types.NormalizeTime(t)
	if err != nil {
		return ""
	}
	parts := make([]string, 0, 2)
	if c.ShowDate {
		parts = append(parts, c.DateFormat)
	}
	if c.ShowTime {
		parts = append(parts, c.TimeFormat)
	}
	layout := strftimeLayout(strings.Join(parts, " "))
	return time.Unix(ts, 0).UTC().Format(layout)
}

var strftime = strings.NewReplacer(
	"%Y", "2006", "%y", "06", "%m", "01", "%d", "02", "%b", "Jan", "%B", "January",
	"%H", "15", "%I", "03", "%M", "04", "%S", "05", "%p", "PM", "%a", "Mon", "%%", "%",
)

func strftimeLayout(format string) string {
	return strftime.Replace(format)
}
