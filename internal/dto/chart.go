package dto

import (
	"time"

	"golang-lwcharts/pkg/lwc/data"
)

// ChartSpec is the declarative description of one chart, accepted over HTTP as JSON
// and by the render command as YAML or JSON.
type ChartSpec struct {
	ID                 string            `json:"id,omitempty" yaml:"id"`
	Title              string            `json:"title,omitempty" yaml:"title"`
	GroupID            int               `json:"group_id,omitempty" yaml:"group_id" validate:"gte=0"`
	Options            *ChartOptionsSpec `json:"options,omitempty" yaml:"options"`
	Series             []SeriesSpec      `json:"series" yaml:"series" validate:"required,min=1,dive"`
	Annotations        []AnnotationSpec  `json:"annotations,omitempty" yaml:"annotations" validate:"dive"`
	HiddenLayers       []string          `json:"hidden_layers,omitempty" yaml:"hidden_layers"`
	Tooltips           []TooltipSpec     `json:"tooltips,omitempty" yaml:"tooltips" validate:"dive"`
	Trades             []TradeSpec       `json:"trades,omitempty" yaml:"trades" validate:"dive"`
	TradeVisualization string            `json:"trade_visualization,omitempty" yaml:"trade_visualization" validate:"omitempty,oneof=markers rectangles both lines arrows zones"`
}

// ChartOptionsSpec overrides the chart defaults. Zero values leave a default in place.
type ChartOptionsSpec struct {
	Height              int             `json:"height,omitempty" yaml:"height" validate:"gte=0"`
	Width               int             `json:"width,omitempty" yaml:"width" validate:"gte=0"`
	AutoSize            bool            `json:"auto_size,omitempty" yaml:"auto_size"`
	BackgroundColor     string          `json:"background_color,omitempty" yaml:"background_color" validate:"chartcolor"`
	BackgroundGradient  string          `json:"background_gradient,omitempty" yaml:"background_gradient" validate:"chartcolor"`
	TextColor           string          `json:"text_color,omitempty" yaml:"text_color" validate:"chartcolor"`
	FontSize            int             `json:"font_size,omitempty" yaml:"font_size" validate:"gte=0"`
	HideGrid            bool            `json:"hide_grid,omitempty" yaml:"hide_grid"`
	CrosshairMode       string          `json:"crosshair_mode,omitempty" yaml:"crosshair_mode" validate:"omitempty,oneof=normal magnet hidden"`
	TimeVisible         *bool           `json:"time_visible,omitempty" yaml:"time_visible"`
	SecondsVisible      *bool           `json:"seconds_visible,omitempty" yaml:"seconds_visible"`
	BarSpacing          float64         `json:"bar_spacing,omitempty" yaml:"bar_spacing" validate:"gte=0"`
	RightPriceScaleMode string          `json:"right_price_scale_mode,omitempty" yaml:"right_price_scale_mode" validate:"omitempty,oneof=normal logarithmic percentage indexed_to_100"`
	PaneHeights         map[int]float64 `json:"pane_heights,omitempty" yaml:"pane_heights" validate:"dive,keys,gte=0,endkeys,gt=0"`
	RangeSwitcher       bool            `json:"range_switcher,omitempty" yaml:"range_switcher"`
}

// SeriesSpec describes one series. Data rows are decoded by Type; Columns maps logical
// column names such as "time" or "close" to the keys used in the rows.
type SeriesSpec struct {
	Type         string            `json:"type" yaml:"type" validate:"required,oneof=line area histogram baseline candlestick bar band ribbon gradient_ribbon signal trend_fill"`
	Title        string            `json:"title,omitempty" yaml:"title"`
	PaneID       int               `json:"pane_id,omitempty" yaml:"pane_id" validate:"gte=0"`
	PriceScaleID string            `json:"price_scale_id,omitempty" yaml:"price_scale_id"`
	Visible      *bool             `json:"visible,omitempty" yaml:"visible"`
	Color        string            `json:"color,omitempty" yaml:"color" validate:"chartcolor"`
	LineWidth    int               `json:"line_width,omitempty" yaml:"line_width" validate:"gte=0"`
	BaseValue    float64           `json:"base_value,omitempty" yaml:"base_value"`
	Columns      map[string]string `json:"columns,omitempty" yaml:"columns"`
	Data         []data.Record     `json:"data" yaml:"data"`
	Markers      []MarkerSpec      `json:"markers,omitempty" yaml:"markers" validate:"dive"`
	PriceLines   []PriceLineSpec   `json:"price_lines,omitempty" yaml:"price_lines" validate:"dive"`
}

type MarkerSpec struct {
	Time     any      `json:"time" yaml:"time" validate:"required"`
	Position string   `json:"position" yaml:"position" validate:"required"`
	Shape    string   `json:"shape" yaml:"shape" validate:"required"`
	Color    string   `json:"color,omitempty" yaml:"color" validate:"chartcolor"`
	Text     string   `json:"text,omitempty" yaml:"text"`
	Size     int      `json:"size,omitempty" yaml:"size" validate:"gte=0"`
	Price    *float64 `json:"price,omitempty" yaml:"price"`
	ID       string   `json:"id,omitempty" yaml:"id"`
}

type PriceLineSpec struct {
	Price     float64 `json:"price" yaml:"price"`
	Color     string  `json:"color,omitempty" yaml:"color" validate:"chartcolor"`
	Title     string  `json:"title,omitempty" yaml:"title"`
	LineWidth int     `json:"line_width,omitempty" yaml:"line_width" validate:"gte=0"`
	LineStyle int     `json:"line_style,omitempty" yaml:"line_style" validate:"gte=0,lte=4"`
	ID        string  `json:"id,omitempty" yaml:"id"`
}

type AnnotationSpec struct {
	Layer           string  `json:"layer,omitempty" yaml:"layer"`
	Time            any     `json:"time" yaml:"time" validate:"required"`
	Price           float64 `json:"price" yaml:"price"`
	Text            string  `json:"text" yaml:"text" validate:"required"`
	Type            string  `json:"type,omitempty" yaml:"type"`
	Position        string  `json:"position,omitempty" yaml:"position"`
	Color           string  `json:"color,omitempty" yaml:"color" validate:"chartcolor"`
	BackgroundColor string  `json:"background_color,omitempty" yaml:"background_color" validate:"chartcolor"`
	TextColor       string  `json:"text_color,omitempty" yaml:"text_color" validate:"chartcolor"`
	FontSize        int     `json:"font_size,omitempty" yaml:"font_size" validate:"gte=0"`
	Tooltip         string  `json:"tooltip,omitempty" yaml:"tooltip"`
}

// TooltipSpec registers a tooltip under Name. Preset selects a ready made layout;
// "custom" uses Template and Fields.
type TooltipSpec struct {
	Name     string             `json:"name" yaml:"name" validate:"required"`
	Preset   string             `json:"preset" yaml:"preset" validate:"required,oneof=ohlc trade custom multi"`
	Template string             `json:"template,omitempty" yaml:"template"`
	Fields   []TooltipFieldSpec `json:"fields,omitempty" yaml:"fields" validate:"dive"`
	Series   []string           `json:"series,omitempty" yaml:"series"`
}

type TooltipFieldSpec struct {
	Label     string `json:"label" yaml:"label" validate:"required"`
	ValueKey  string `json:"value_key" yaml:"value_key" validate:"required"`
	Precision *int   `json:"precision,omitempty" yaml:"precision" validate:"omitempty,gte=0"`
	Prefix    string `json:"prefix,omitempty" yaml:"prefix"`
	Suffix    string `json:"suffix,omitempty" yaml:"suffix"`
}

type TradeSpec struct {
	ID         string  `json:"id,omitempty" yaml:"id"`
	EntryTime  any     `json:"entry_time" yaml:"entry_time" validate:"required"`
	EntryPrice float64 `json:"entry_price" yaml:"entry_price" validate:"gt=0"`
	ExitTime   any     `json:"exit_time" yaml:"exit_time" validate:"required"`
	ExitPrice  float64 `json:"exit_price" yaml:"exit_price" validate:"gt=0"`
	Quantity   float64 `json:"quantity" yaml:"quantity" validate:"gt=0"`
	Type       string  `json:"type" yaml:"type" validate:"required"`
	Notes      string  `json:"notes,omitempty" yaml:"notes"`
}

// MarketChartRequest asks for a price/volume chart of a symbol with optional overlays.
type MarketChartRequest struct {
	Symbol    string         `json:"symbol" yaml:"symbol" validate:"required"`
	Exchange  string         `json:"exchange,omitempty" yaml:"exchange" validate:"omitempty,oneof=BINANCE YAHOO"`
	Range     string         `json:"range,omitempty" yaml:"range"`
	Interval  string         `json:"interval,omitempty" yaml:"interval"`
	Title     string         `json:"title,omitempty" yaml:"title"`
	Height    int            `json:"height,omitempty" yaml:"height" validate:"gte=0"`
	SMA       []int          `json:"sma,omitempty" yaml:"sma" validate:"dive,gt=1"`
	Bollinger *BollingerSpec `json:"bollinger,omitempty" yaml:"bollinger"`
}

type BollingerSpec struct {
	Period int     `json:"period" yaml:"period" validate:"gt=1"`
	StdDev float64 `json:"std_dev" yaml:"std_dev" validate:"gt=0"`
}

// DashboardRequest renders one market chart per symbol, optionally synchronized.
type DashboardRequest struct {
	Symbols   []string       `json:"symbols" yaml:"symbols" validate:"required,min=1,max=12,unique,dive,required"`
	Exchange  string         `json:"exchange,omitempty" yaml:"exchange" validate:"omitempty,oneof=BINANCE YAHOO"`
	Range     string         `json:"range,omitempty" yaml:"range"`
	Interval  string         `json:"interval,omitempty" yaml:"interval"`
	SMA       []int          `json:"sma,omitempty" yaml:"sma" validate:"dive,gt=1"`
	Bollinger *BollingerSpec `json:"bollinger,omitempty" yaml:"bollinger"`
	Sync      bool           `json:"sync" yaml:"sync"`
}

// SaveChartRequest stores either a declarative spec or a market request. Market charts
// with a RefreshCron are rebuilt by the scheduler.
type SaveChartRequest struct {
	Name        string              `json:"name" validate:"required,max=200"`
	Spec        *ChartSpec          `json:"spec,omitempty" validate:"required_without=Market,excluded_with=Market"`
	Market      *MarketChartRequest `json:"market,omitempty" validate:"required_without=Spec"`
	RefreshCron string              `json:"refresh_cron,omitempty" validate:"omitempty,excluded_with=Spec"`
}

type SavedChartResponse struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Kind            string         `json:"kind"`
	RefreshCron     string         `json:"refresh_cron,omitempty"`
	Config          map[string]any `json:"config"`
	LastRefreshedAt *time.Time     `json:"last_refreshed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type ListChartsParam struct {
	Kind  string `query:"kind" validate:"omitempty,oneof=spec market"`
	Limit int    `query:"limit" validate:"gte=0,lte=500"`
}
