// Package options holds the typed configuration objects of charts and series.
// Setters return their receiver so options can be built in one expression.
package options

import (
	"fmt"

	"golang-lwcharts/pkg/lwc/types"
)

const DefaultChartHeight = 400

// ChartOptions is the top level chart configuration.
// OverlayPriceScales and TradeVisualization are emitted by the chart under their own keys.
type ChartOptions struct {
	Width              *int `validate:"omitempty,gt=0"`
	Height             int  `validate:"gte=0"`
	AutoSize           bool
	Layout             *LayoutOptions
	LeftPriceScale     *PriceScaleOptions
	RightPriceScale    *PriceScaleOptions
	OverlayPriceScales map[string]*PriceScaleOptions `lwc:"-"`
	TimeScale          *TimeScaleOptions
	Crosshair          *CrosshairOptions
	Grid               *GridOptions
	HandleScroll       *HandleScrollOptions
	HandleScale        *HandleScaleOptions
	KineticScroll      *KineticScrollOptions
	TrackingMode       *TrackingModeOptions
	Localization       *LocalizationOptions
	AddDefaultPane     bool
	TradeVisualization *TradeVisualizationOptions `lwc:"-"`
	RangeSwitcher      *RangeSwitcherOptions
}

func NewChartOptions() *ChartOptions {
	left := NewPriceScaleOptions()
	left.Visible = false
	return &ChartOptions{
		Height:          DefaultChartHeight,
		Layout:          NewLayoutOptions(),
		LeftPriceScale:  left,
		RightPriceScale: NewPriceScaleOptions(),
		TimeScale:       NewTimeScaleOptions(),
		Crosshair:       NewCrosshairOptions(),
		Grid:            NewGridOptions(),
		AddDefaultPane:  true,
	}
}

func (o *ChartOptions) SetHeight(h int) *ChartOptions {
	o.Height = h
	return o
}

func (o *ChartOptions) SetWidth(w int) *ChartOptions {
	o.Width = &w
	return o
}

func (o *ChartOptions) SetAutoSize(auto bool) *ChartOptions {
	o.AutoSize = auto
	return o
}

func (o *ChartOptions) SetLayout(l *LayoutOptions) *ChartOptions {
	o.Layout = l
	return o
}

func (o *ChartOptions) SetLeftPriceScale(p *PriceScaleOptions) *ChartOptions {
	o.LeftPriceScale = p
	return o
}

func (o *ChartOptions) SetRightPriceScale(p *PriceScaleOptions) *ChartOptions {
	o.RightPriceScale = p
	return o
}

// SetOverlayPriceScale registers or replaces the overlay scale with the given id.
// A nil p registers the default overlay scale.
func (o *ChartOptions) SetOverlayPriceScale(id string, p *PriceScaleOptions) *ChartOptions {
	if p == nil {
		p = NewOverlayPriceScale(id)
	}
	if o.OverlayPriceScales == nil {
		o.OverlayPriceScales = make(map[string]*PriceScaleOptions)
	}
	if p.PriceScaleID == "" {
		p.PriceScaleID = id
	}
	o.OverlayPriceScales[id] = p
	return o
}

func (o *ChartOptions) SetTimeScale(t *TimeScaleOptions) *ChartOptions {
	o.TimeScale = t
	return o
}

func (o *ChartOptions) SetCrosshair(c *CrosshairOptions) *ChartOptions {
	o.Crosshair = c
	return o
}

func (o *ChartOptions) SetGrid(g *GridOptions) *ChartOptions {
	o.Grid = g
	return o
}

func (o *ChartOptions) SetHandleScroll(h *HandleScrollOptions) *ChartOptions {
	o.HandleScroll = h
	return o
}

func (o *ChartOptions) SetHandleScale(h *HandleScaleOptions) *ChartOptions {
	o.HandleScale = h
	return o
}

func (o *ChartOptions) SetKineticScroll(k *KineticScrollOptions) *ChartOptions {
	o.KineticScroll = k
	return o
}

func (o *ChartOptions) SetTrackingMode(t *TrackingModeOptions) *ChartOptions {
	o.TrackingMode = t
	return o
}

func (o *ChartOptions) SetLocalization(l *LocalizationOptions) *ChartOptions {
	o.Localization = l
	return o
}

func (o *ChartOptions) SetTradeVisualization(t *TradeVisualizationOptions) *ChartOptions {
	o.TradeVisualization = t
	return o
}

func (o *ChartOptions) SetRangeSwitcher(r *RangeSwitcherOptions) *ChartOptions {
	o.RangeSwitcher = r
	return o
}

// SetPaneHeight sets the relative height factor of a pane.
func (o *ChartOptions) SetPaneHeight(pane int, factor float64) *ChartOptions {
	if o.Layout == nil {
		o.Layout = NewLayoutOptions()
	}
	o.Layout.SetPaneHeight(pane, factor)
	return o
}

func (o *ChartOptions) Validate() error {
	if err := types.Validate(o); err != nil {
		return err
	}
	if o.Height == 0 && !o.AutoSize {
		return types.NewValidationError("height", o.Height, "must be positive unless autoSize is set")
	}
	if o.Layout != nil {
		if err := o.Layout.Background.Validate(); err != nil {
			return fmt.Errorf("layout: %w", err)
		}
	}
	for name, p := range map[string]*PriceScaleOptions{"leftPriceScale": o.LeftPriceScale, "rightPriceScale": o.RightPriceScale} {
		if p == nil {
			continue
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	for id, p := range o.OverlayPriceScales {
		if p == nil {
			continue
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("overlayPriceScales.%s: %w", id, err)
		}
	}
	return nil
}

type Background struct {
	Type        types.BackgroundStyle `validate:"lwcenum"`
	Color       string                `validate:"chartcolor"`
	TopColor    string                `validate:"chartcolor"`
	BottomColor string                `validate:"chartcolor"`
}

func SolidBackground(color string) Background {
	return Background{Type: types.BackgroundStyleSolid, Color: color}
}

func GradientBackground(top, bottom string) Background {
	return Background{Type: types.BackgroundStyleGradient, TopColor: top, BottomColor: bottom}
}

// Validate checks the colors and that a gradient has both ends.
func (b Background) Validate() error {
	if err := types.ValidateAt("background", b); err != nil {
		return err
	}
	if b.Type == types.BackgroundStyleGradient && (b.TopColor == "" || b.BottomColor == "") {
		return types.RequiredError("background.topColor/bottomColor")
	}
	return nil
}

type PaneHeightOptions struct {
	Factor float64 `validate:"gt=0"`
}

type LayoutOptions struct {
	Background      Background
	TextColor       string `validate:"chartcolor"`
	FontSize        int    `validate:"gt=0"`
	FontFamily      string
	PaneHeights     map[int]*PaneHeightOptions `validate:"dive,keys,gte=0,endkeys,required"`
	AttributionLogo bool
}

func NewLayoutOptions() *LayoutOptions {
	return &LayoutOptions{
		Background: SolidBackground("#ffffff"),
		TextColor:  "#131722",
		FontSize:   11,
		FontFamily: "-apple-system, BlinkMacSystemFont, 'Trebuchet MS', Roboto, Ubuntu, sans-serif",
	}
}

func (l *LayoutOptions) SetBackground(b Background) *LayoutOptions {
	l.Background = b
	return l
}

func (l *LayoutOptions) SetTextColor(c string) *LayoutOptions {
	l.TextColor = c
	return l
}

func (l *LayoutOptions) SetFont(size int, family string) *LayoutOptions {
	l.FontSize = size
	if family != "" {
		l.FontFamily = family
	}
	return l
}

func (l *LayoutOptions) SetPaneHeight(pane int, factor float64) *LayoutOptions {
	if l.PaneHeights == nil {
		l.PaneHeights = make(map[int]*PaneHeightOptions)
	}
	l.PaneHeights[pane] = &PaneHeightOptions{Factor: factor}
	return l
}

func (l *LayoutOptions) Validate() error {
	if err := types.Validate(l); err != nil {
		return err
	}
	return l.Background.Validate()
}
