// Package annotation holds text, arrow and shape annotations drawn over a chart,
// grouped into named layers that can be toggled independently.
package annotation

import (
	"math"
	"strings"

	"golang-lwcharts/pkg/lwc/types"
)

const (
	DefaultColor           = "#2196F3"
	DefaultBackgroundColor = "rgba(255, 255, 255, 0.9)"
	DefaultTextColor       = "#000000"
	DefaultBorderColor     = "#CCCCCC"
	DefaultFontSize        = 12
	DefaultFontWeight      = "normal"
	DefaultLayer           = "default"
)

type Annotation struct {
	Time            types.Time               `json:"time"`
	Price           float64                  `json:"price"`
	Text            string                   `json:"text"`
	Type            types.AnnotationType     `json:"type" validate:"lwcenum"`
	Position        types.AnnotationPosition `json:"position" validate:"lwcenum"`
	Color           string                   `json:"color,omitempty" validate:"chartcolor"`
	BackgroundColor string                   `json:"backgroundColor,omitempty" validate:"chartcolor"`
	FontSize        int                      `json:"fontSize" validate:"gt=0"`
	FontWeight      string                   `json:"fontWeight,omitempty"`
	TextColor       string                   `json:"textColor,omitempty" validate:"chartcolor"`
	BorderColor     string                   `json:"borderColor,omitempty" validate:"chartcolor"`
	BorderWidth     int                      `json:"borderWidth" validate:"gte=0"`
	Opacity         float64                  `json:"opacity" validate:"gte=0,lte=1"`
	ShowTime        bool                     `json:"showTime"`
	Tooltip         string                   `json:"tooltip,omitempty"`
}

type Option func(*Annotation)

func WithType(t types.AnnotationType) Option {
	return func(a *Annotation) { a.Type = t }
}

func WithPosition(p types.AnnotationPosition) Option {
	return func(a *Annotation) { a.Position = p }
}

func WithColor(color string) Option {
	return func(a *Annotation) { a.Color = color }
}

func WithBackgroundColor(color string) Option {
	return func(a *Annotation) { a.BackgroundColor = color }
}

func WithTextColor(color string) Option {
	return func(a *Annotation) { a.TextColor = color }
}

func WithFont(size int, weight string) Option {
	return func(a *Annotation) {
		a.FontSize = size
		a.FontWeight = weight
	}
}

func WithBorder(color string, width int) Option {
	return func(a *Annotation) {
		a.BorderColor = color
		a.BorderWidth = width
	}
}

func WithOpacity(opacity float64) Option {
	return func(a *Annotation) { a.Opacity = opacity }
}

func WithShowTime(show bool) Option {
	return func(a *Annotation) { a.ShowTime = show }
}

func WithTooltip(text string) Option {
	return func(a *Annotation) { a.Tooltip = text }
}

// New builds a validated annotation anchored at time and price.
func New(t any, price float64, text string, opts ...Option) (*Annotation, error) {
	ts, err := types.NormalizeTime(t)
	if err != nil {
		return nil, err
	}
	a := &Annotation{
		Time:            types.Time(ts),
		Price:           price,
		Text:            text,
		Type:            types.AnnotationTypeText,
		Position:        types.AnnotationPositionAbove,
		Color:           DefaultColor,
		BackgroundColor: DefaultBackgroundColor,
		FontSize:        DefaultFontSize,
		FontWeight:      DefaultFontWeight,
		TextColor:       DefaultTextColor,
		BorderColor:     DefaultBorderColor,
		BorderWidth:     1,
		Opacity:         1,
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Text creates a text annotation.
func Text(t any, price float64, text string, opts ...Option) (*Annotation, error) {
	return New(t, price, text, append([]Option{WithType(types.AnnotationTypeText)}, opts...)...)
}

// Arrow creates an arrow annotation pointing at price from the given side.
func Arrow(t any, price float64, text string, position types.AnnotationPosition, opts ...Option) (*Annotation, error) {
	return New(t, price, text, append([]Option{WithType(types.AnnotationTypeArrow), WithPosition(position)}, opts...)...)
}

// Shape creates a shape annotation; shape must be one of the drawable annotation types.
func Shape(t any, price float64, text string, shape types.AnnotationType, opts ...Option) (*Annotation, error) {
	return New(t, price, text, append([]Option{WithType(shape)}, opts...)...)
}

func (a Annotation) GetTime() types.Time { return a.Time }

func (a Annotation) Validate() error {
	if math.IsNaN(a.Price) || math.IsInf(a.Price, 0) {
		return types.NewValidationError("price", a.Price, "must be finite")
	}
	if strings.TrimSpace(a.Text) == "" {
		return types.RequiredError("text")
	}
	return types.Validate(a)
}
