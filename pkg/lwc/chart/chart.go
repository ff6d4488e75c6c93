// Package chart composes series, options, annotations, tooltips and trades into the
// configuration object the lightweight-charts frontend renders.
package chart

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"golang-lwcharts/pkg/logger"
	"golang-lwcharts/pkg/lwc/annotation"
	"golang-lwcharts/pkg/lwc/data"
	"golang-lwcharts/pkg/lwc/options"
	"golang-lwcharts/pkg/lwc/serialize"
	"golang-lwcharts/pkg/lwc/series"
	"golang-lwcharts/pkg/lwc/tooltip"
	"golang-lwcharts/pkg/lwc/types"
)

const (
	PriceScaleLeft  = "left"
	PriceScaleRight = "right"

	// VolumeTopMargin keeps the volume histogram in the bottom fifth of the pane.
	VolumeTopMargin = 0.8
)

// Chart is one renderable chart. It is not safe for concurrent mutation.
type Chart struct {
	ID          string
	Options     *options.ChartOptions
	Series      []series.Series
	Annotations *annotation.Manager
	Tooltips    *tooltip.Manager
	Trades      []data.TradeData
	GroupID     int

	log *logger.Logger
}

type Option func(*Chart)

func WithID(id string) Option {
	return func(c *Chart) { c.ID = id }
}

func WithOptions(o *options.ChartOptions) Option {
	return func(c *Chart) {
		if o != nil {
			c.Options = o
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Chart) {
		if l != nil {
			c.log = l
		}
	}
}

func WithGroupID(id int) Option {
	return func(c *Chart) { c.GroupID = id }
}

func New(opts ...Option) *Chart {
	c := &Chart{
		ID:          "chart-" + uuid.NewString()[:8],
		Options:     options.NewChartOptions(),
		Annotations: annotation.NewManager(),
		Tooltips:    tooltip.NewManager(),
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddSeries attaches s and resolves its price scale. An empty scale id means "right";
// "left" and "right" make the matching built-in scale visible; any other id is an
// overlay scale, created hidden when the chart does not know it yet. Options the series
// carries for its own scale replace the chart's.
func (c *Chart) AddSeries(s series.Series) error {
	b := s.Core()
	if b.PaneID < 0 {
		return types.NewValidationError("paneId", b.PaneID, "must be non-negative")
	}
	if b.PriceScaleID == "" {
		b.PriceScaleID = PriceScaleRight
	}

	switch b.PriceScaleID {
	case PriceScaleLeft:
		c.Options.LeftPriceScale = builtinScale(c.Options.LeftPriceScale, b.PriceScale)
	case PriceScaleRight:
		c.Options.RightPriceScale = builtinScale(c.Options.RightPriceScale, b.PriceScale)
	default:
		id := b.PriceScaleID
		if b.PriceScale != nil {
			b.PriceScale.PriceScaleID = id
			c.Options.SetOverlayPriceScale(id, b.PriceScale)
		} else if _, ok := c.Options.OverlayPriceScales[id]; !ok {
			c.log.Debug("creating overlay price scale",
				logger.StringField("chart_id", c.ID),
				logger.StringField("price_scale_id", id))
			c.Options.SetOverlayPriceScale(id, options.NewOverlayPriceScale(id))
		}
	}

	c.Series = append(c.Series, s)
	return nil
}

func builtinScale(current, own *options.PriceScaleOptions) *options.PriceScaleOptions {
	if own != nil {
		current = own
	}
	if current == nil {
		current = options.NewPriceScaleOptions()
	}
	current.Visible = true
	return current
}

// AddPriceVolumeSeries adds a candlestick series on the right scale and a volume
// histogram on the "volume" overlay scale, both in pane paneID.
func (c *Chart) AddPriceVolumeSeries(bars []data.OhlcvData, paneID int) (*series.Candlestick, *series.Histogram, error) {
	candles := series.NewCandlestick(data.Candles(bars))
	candles.SetPaneID(paneID).SetPriceScaleID(PriceScaleRight)

	volume := series.NewVolume(bars, "", "")
	volume.SetPaneID(paneID).
		SetPriceScale(options.NewOverlayPriceScale(series.VolumePriceScaleID).SetMargins(VolumeTopMargin, 0))

	if err := c.AddSeries(candles); err != nil {
		return nil, nil, err
	}
	if err := c.AddSeries(volume); err != nil {
		return nil, nil, err
	}
	return candles, volume, nil
}

func (c *Chart) AddTrades(trades ...data.TradeData) error {
	for i, t := range trades {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("trades[%d]: %w", i, err)
		}
	}
	c.Trades = append(c.Trades, trades...)
	return nil
}

func (c *Chart) SetTradeVisualization(opts *options.TradeVisualizationOptions) *Chart {
	c.Options.SetTradeVisualization(opts)
	return c
}

// AddAnnotation adds a to the named layer, or to the default layer when layer is empty.
func (c *Chart) AddAnnotation(a annotation.Annotation, layer string) *Chart {
	c.Annotations.Add(a, layer)
	return c
}

func (c *Chart) AddAnnotationLayer(name string) *annotation.Layer {
	return c.Annotations.CreateLayer(name)
}

func (c *Chart) HideAnnotationLayer(name string) error {
	return c.Annotations.HideLayer(name)
}

func (c *Chart) ShowAnnotationLayer(name string) error {
	return c.Annotations.ShowLayer(name)
}

func (c *Chart) ClearAnnotations() *Chart {
	c.Annotations.ClearAll()
	return c
}

func (c *Chart) SetTooltipManager(m *tooltip.Manager) *Chart {
	if m != nil {
		c.Tooltips = m
	}
	return c
}

func (c *Chart) AddTooltipConfig(name string, cfg *tooltip.Config) error {
	return c.Tooltips.Add(name, cfg)
}

func (c *Chart) AddOverlayPriceScale(id string, opts *options.PriceScaleOptions) *Chart {
	c.Options.SetOverlayPriceScale(id, opts)
	return c
}

func (c *Chart) UpdateOptions(fn func(*options.ChartOptions)) *Chart {
	fn(c.Options)
	return c
}

func (c *Chart) SetHeight(h int) *Chart {
	c.Options.SetHeight(h)
	return c
}

func (c *Chart) SetWidth(w int) *Chart {
	c.Options.SetWidth(w)
	return c
}

func (c *Chart) Validate() error {
	if err := c.Options.Validate(); err != nil {
		return fmt.Errorf("chart options: %w", err)
	}
	for i, s := range c.Series {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("series[%d] (%s): %w", i, s.ChartType(), err)
		}
	}
	if err := c.Annotations.Validate(); err != nil {
		return err
	}
	for i, t := range c.Trades {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("trades[%d]: %w", i, err)
		}
	}
	return nil
}

// ToFrontendConfig validates the chart and returns {"charts": [chart], "syncConfig": {...}}.
func (c *Chart) ToFrontendConfig() (map[string]any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	sync := options.NewSyncOptions().SetGroupID(c.GroupID)
	return map[string]any{
		"charts":     []any{c.frontendObject(c.ID)},
		"syncConfig": serialize.ToMap(sync),
	}, nil
}

// ToJSON encodes the frontend config.
func (c *Chart) ToJSON() ([]byte, error) {
	cfg, err := c.ToFrontendConfig()
	if err != nil {
		return nil, err
	}
	return serialize.ToJSON(cfg)
}

func (c *Chart) frontendObject(id string) map[string]any {
	chartOpts := serialize.ToMap(c.Options)
	if len(c.Options.OverlayPriceScales) > 0 {
		overlays := make(map[string]any, len(c.Options.OverlayPriceScales))
		for scaleID, p := range c.Options.OverlayPriceScales {
			if p != nil {
				overlays[scaleID] = serialize.ToMap(p)
			}
		}
		chartOpts["overlayPriceScales"] = overlays
	}
	c.applyPaneHeights(chartOpts)

	seriesDicts := make([]any, 0, len(c.Series))
	for _, s := range c.Series {
		seriesDicts = append(seriesDicts, s.AsDict())
	}

	out := map[string]any{
		"chartId":      id,
		"chart":        chartOpts,
		"series":       seriesDicts,
		"chartGroupId": c.GroupID,
	}

	if len(c.Trades) > 0 {
		tv := c.Options.TradeVisualization
		if tv == nil {
			tv = options.NewTradeVisualizationOptions()
		}
		if tv.Style.HasMarkers() {
			c.mergeTradeMarkers(seriesDicts, tv)
		}
		trades := make([]any, 0, len(c.Trades))
		for _, t := range c.Trades {
			trades = append(trades, t.AsDict())
		}
		out["trades"] = trades
		out["tradeVisualizationOptions"] = serialize.ToMap(tv)
	}

	if layers := c.Annotations.Layers(); len(layers) > 0 {
		names := make([]any, 0, len(layers))
		for _, l := range layers {
			names = append(names, l.Name)
		}
		out["annotations"] = c.Annotations.AsDict()
		out["annotationLayers"] = names
	}
	if c.Tooltips.Len() > 0 {
		out["tooltipConfigs"] = c.Tooltips.AsDict()
	}
	return out
}

// mergeTradeMarkers adds entry and exit markers of every trade to the first candlestick
// series, or to the first series when there is no candlestick.
func (c *Chart) mergeTradeMarkers(seriesDicts []any, tv *options.TradeVisualizationOptions) {
	if len(c.Series) == 0 {
		c.log.Warn("trades present but chart has no series to carry their markers",
			logger.StringField("chart_id", c.ID))
		return
	}
	target := 0
	for i, s := range c.Series {
		if s.ChartType() == types.ChartTypeCandlestick {
			target = i
			break
		}
	}

	markers := append([]data.Marker(nil), c.Series[target].Core().Markers...)
	for _, t := range c.Trades {
		markers = append(markers, t.ToMarkers(tv.EntryColor(t.TradeType), tv.ExitColor(t.IsProfitable()), tv.ShowPnlInMarkers)...)
	}
	seriesDicts[target].(map[string]any)["markers"] = data.Dicts(markers)
}

// applyPaneHeights rewrites layout.paneHeights: every pane used by a series gets an
// entry (factor 1 unless configured) and heights of unused panes are dropped.
func (c *Chart) applyPaneHeights(chartOpts map[string]any) {
	var configured map[int]*options.PaneHeightOptions
	if c.Options.Layout != nil {
		configured = c.Options.Layout.PaneHeights
	}

	used := make(map[int]struct{})
	for _, s := range c.Series {
		used[s.Core().PaneID] = struct{}{}
	}

	for pane := range configured {
		if _, ok := used[pane]; !ok {
			c.log.Warn("dropping height of pane without series",
				logger.StringField("chart_id", c.ID),
				logger.IntField("pane", pane))
		}
	}

	layout, _ := chartOpts["layout"].(map[string]any)
	if len(configured) == 0 && len(used) <= 1 {
		if layout != nil {
			delete(layout, "paneHeights")
		}
		return
	}

	panes := make([]int, 0, len(used))
	for pane := range used {
		panes = append(panes, pane)
	}
	sort.Ints(panes)

	heights := make(map[string]any, len(panes))
	for _, pane := range panes {
		factor := 1.0
		if h, ok := configured[pane]; ok && h != nil {
			factor = h.Factor
		}
		heights[strconv.Itoa(pane)] = map[string]any{"factor": factor}
	}

	if layout == nil {
		layout = map[string]any{}
		chartOpts["layout"] = layout
	}
	layout["paneHeights"] = heights
}
