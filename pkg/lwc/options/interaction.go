package options

import (
	"golang-lwcharts/pkg/lwc/types"
)

type CrosshairLineOptions struct {
	Color                string          `validate:"chartcolor"`
	Width                int             `validate:"gte=1"`
	Style                types.LineStyle `validate:"lwcenum"`
	Visible              bool
	LabelVisible         bool
	LabelBackgroundColor string `validate:"chartcolor"`
}

func NewCrosshairLineOptions() *CrosshairLineOptions {
	return &CrosshairLineOptions{
		Color:                "#758696",
		Width:                1,
		Style:                types.LineStyleLargeDashed,
		Visible:              true,
		LabelVisible:         true,
		LabelBackgroundColor: "#4c525e",
	}
}

func (c *CrosshairLineOptions) Validate() error {
	return types.Validate(c)
}

type CrosshairOptions struct {
	Mode     types.CrosshairMode `validate:"lwcenum"`
	VertLine *CrosshairLineOptions
	HorzLine *CrosshairLineOptions
}

func NewCrosshairOptions() *CrosshairOptions {
	return &CrosshairOptions{
		Mode:     types.CrosshairModeNormal,
		VertLine: NewCrosshairLineOptions(),
		HorzLine: NewCrosshairLineOptions(),
	}
}

func (c *CrosshairOptions) SetMode(m types.CrosshairMode) *CrosshairOptions {
	c.Mode = m
	return c
}

func (c *CrosshairOptions) Validate() error {
	return types.Validate(c)
}

type GridLineOptions struct {
	Color   string          `validate:"chartcolor"`
	Style   types.LineStyle `validate:"lwcenum"`
	Visible bool
}

func NewGridLineOptions() *GridLineOptions {
	return &GridLineOptions{Color: "rgba(197, 203, 206, 0.5)", Style: types.LineStyleSolid, Visible: true}
}

func (g *GridLineOptions) Validate() error {
	return types.Validate(g)
}

type GridOptions struct {
	VertLines *GridLineOptions
	HorzLines *GridLineOptions
}

func NewGridOptions() *GridOptions {
	return &GridOptions{VertLines: NewGridLineOptions(), HorzLines: NewGridLineOptions()}
}

// Hide turns both grid directions off.
func (g *GridOptions) Hide() *GridOptions {
	if g.VertLines == nil {
		g.VertLines = NewGridLineOptions()
	}
	if g.HorzLines == nil {
		g.HorzLines = NewGridLineOptions()
	}
	g.VertLines.Visible = false
	g.HorzLines.Visible = false
	return g
}

func (g *GridOptions) Validate() error {
	return types.Validate(g)
}

type HandleScrollOptions struct {
	MouseWheel       bool
	PressedMouseMove bool
	HorzTouchDrag    bool
	VertTouchDrag    bool
}

func NewHandleScrollOptions() *HandleScrollOptions {
	return &HandleScrollOptions{MouseWheel: true, PressedMouseMove: true, HorzTouchDrag: true, VertTouchDrag: true}
}

type HandleScaleOptions struct {
	AxisPressedMouseMove bool
	AxisDoubleClickReset bool
	MouseWheel           bool
	Pinch                bool
}

func NewHandleScaleOptions() *HandleScaleOptions {
	return &HandleScaleOptions{AxisPressedMouseMove: true, AxisDoubleClickReset: true, MouseWheel: true, Pinch: true}
}

type KineticScrollOptions struct {
	Touch bool
	Mouse bool
}

// TrackingModeExitMode decides when tracking mode ends on touch devices.
type TrackingModeExitMode int

const (
	TrackingModeExitOnTouchEnd TrackingModeExitMode = iota
	TrackingModeExitOnNextTap
)

type TrackingModeOptions struct {
	ExitMode TrackingModeExitMode
}

type LocalizationOptions struct {
	Locale     string
	DateFormat string
}

func NewLocalizationOptions() *LocalizationOptions {
	return &LocalizationOptions{Locale: "en-US", DateFormat: "dd MMM 'yy"}
}
