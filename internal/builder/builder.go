// Package builder turns declarative chart specs and market data into charts.
package builder

import (
	"fmt"
	"strings"

	"golang-lwcharts/internal/dto"
	"golang-lwcharts/pkg/logger"
	"golang-lwcharts/pkg/lwc/annotation"
	"golang-lwcharts/pkg/lwc/chart"
	"golang-lwcharts/pkg/lwc/data"
	"golang-lwcharts/pkg/lwc/options"
	"golang-lwcharts/pkg/lwc/series"
	"golang-lwcharts/pkg/lwc/tooltip"
	"golang-lwcharts/pkg/lwc/types"
)

// Defaults are applied to every chart before a ChartSpec's own options.
type Defaults struct {
	Height          int
	BackgroundColor string
	TextColor       string
}

type Builder struct {
	defaults Defaults
	log      *logger.Logger
}

func New(defaults Defaults, log *logger.Logger) *Builder {
	if log == nil {
		log = logger.Nop()
	}
	return &Builder{defaults: defaults, log: log}
}

// NewChart returns an empty chart carrying the configured defaults.
func (b *Builder) NewChart(id string, groupID int) *chart.Chart {
	opts := []chart.Option{chart.WithLogger(b.log), chart.WithGroupID(groupID)}
	if id != "" {
		opts = append(opts, chart.WithID(id))
	}
	c := chart.New(opts...)
	if b.defaults.Height > 0 {
		c.SetHeight(b.defaults.Height)
	}
	if b.defaults.BackgroundColor != "" {
		c.Options.Layout.SetBackground(options.SolidBackground(b.defaults.BackgroundColor))
	}
	if b.defaults.TextColor != "" {
		c.Options.Layout.SetTextColor(b.defaults.TextColor)
	}
	return c
}

// Build validates spec and assembles the chart it describes.
func (b *Builder) Build(spec dto.ChartSpec) (*chart.Chart, error) {
	if err := types.Validate(spec); err != nil {
		return nil, err
	}

	c := b.NewChart(spec.ID, spec.GroupID)
	if spec.Options != nil {
		if err := applyOptions(c.Options, spec.Options); err != nil {
			return nil, fmt.Errorf("options: %w", err)
		}
	}

	for i, ss := range spec.Series {
		s, err := buildSeries(ss)
		if err != nil {
			return nil, fmt.Errorf("series[%d] (%s): %w", i, ss.Type, err)
		}
		if i == 0 && spec.Title != "" && s.Core().Title == "" {
			s.Core().SetTitle(spec.Title)
		}
		if err := c.AddSeries(s); err != nil {
			return nil, fmt.Errorf("series[%d] (%s): %w", i, ss.Type, err)
		}
	}

	for i, as := range spec.Annotations {
		a, err := buildAnnotation(as)
		if err != nil {
			return nil, fmt.Errorf("annotations[%d]: %w", i, err)
		}
		c.AddAnnotation(*a, as.Layer)
	}
	for _, name := range spec.HiddenLayers {
		if err := c.HideAnnotationLayer(name); err != nil {
			return nil, fmt.Errorf("hidden_layers: %w", err)
		}
	}

	for _, ts := range spec.Tooltips {
		cfg, err := buildTooltip(ts)
		if err != nil {
			return nil, fmt.Errorf("tooltips[%s]: %w", ts.Name, err)
		}
		if err := c.AddTooltipConfig(ts.Name, cfg); err != nil {
			return nil, err
		}
	}

	if len(spec.Trades) > 0 {
		trades := make([]data.TradeData, 0, len(spec.Trades))
		for i, ts := range spec.Trades {
			t, err := buildTrade(ts)
			if err != nil {
				return nil, fmt.Errorf("trades[%d]: %w", i, err)
			}
			trades = append(trades, *t)
		}
		if err := c.AddTrades(trades...); err != nil {
			return nil, err
		}
	}
	if spec.TradeVisualization != "" {
		style, err := types.ParseTradeVisualization(spec.TradeVisualization)
		if err != nil {
			return nil, err
		}
		c.SetTradeVisualization(options.NewTradeVisualizationOptions().SetStyle(style))
	}

	b.log.Debug("chart built from spec",
		logger.StringField("chart_id", c.ID),
		logger.IntField("series", len(c.Series)),
		logger.IntField("trades", len(c.Trades)))
	return c, nil
}

var crosshairModes = map[string]types.CrosshairMode{
	"normal": types.CrosshairModeNormal,
	"magnet": types.CrosshairModeMagnet,
	"hidden": types.CrosshairModeHidden,
}

var priceScaleModes = map[string]types.PriceScaleMode{
	"normal":         types.PriceScaleModeNormal,
	"logarithmic":    types.PriceScaleModeLogarithmic,
	"percentage":     types.PriceScaleModePercentage,
	"indexed_to_100": types.PriceScaleModeIndexedTo100,
}

func applyOptions(o *options.ChartOptions, s *dto.ChartOptionsSpec) error {
	if s.Height > 0 {
		o.SetHeight(s.Height)
	}
	if s.Width > 0 {
		o.SetWidth(s.Width)
	}
	if s.AutoSize {
		o.SetAutoSize(true)
	}
	if o.Layout == nil {
		o.SetLayout(options.NewLayoutOptions())
	}
	switch {
	case s.BackgroundColor != "" && s.BackgroundGradient != "":
		o.Layout.SetBackground(options.GradientBackground(s.BackgroundColor, s.BackgroundGradient))
	case s.BackgroundColor != "":
		o.Layout.SetBackground(options.SolidBackground(s.BackgroundColor))
	case s.BackgroundGradient != "":
		return types.RequiredError("background_color")
	}
	if s.TextColor != "" {
		o.Layout.SetTextColor(s.TextColor)
	}
	if s.FontSize > 0 {
		o.Layout.SetFont(s.FontSize, "")
	}
	for pane, factor := range s.PaneHeights {
		o.SetPaneHeight(pane, factor)
	}
	if s.HideGrid {
		if o.Grid == nil {
			o.SetGrid(options.NewGridOptions())
		}
		o.Grid.Hide()
	}
	if s.CrosshairMode != "" {
		if o.Crosshair == nil {
			o.SetCrosshair(options.NewCrosshairOptions())
		}
		o.Crosshair.SetMode(crosshairModes[s.CrosshairMode])
	}
	if s.TimeVisible != nil || s.SecondsVisible != nil || s.BarSpacing > 0 {
		if o.TimeScale == nil {
			o.SetTimeScale(options.NewTimeScaleOptions())
		}
		if s.TimeVisible != nil {
			o.TimeScale.SetTimeVisible(*s.TimeVisible)
		}
		if s.SecondsVisible != nil {
			o.TimeScale.SetSecondsVisible(*s.SecondsVisible)
		}
		if s.BarSpacing > 0 {
			o.TimeScale.SetBarSpacing(s.BarSpacing)
		}
	}
	if s.RightPriceScaleMode != "" {
		if o.RightPriceScale == nil {
			o.SetRightPriceScale(options.NewPriceScaleOptions())
		}
		o.RightPriceScale.SetMode(priceScaleModes[s.RightPriceScaleMode])
	}
	if s.RangeSwitcher {
		o.SetRangeSwitcher(options.NewRangeSwitcherOptions())
	}
	return nil
}

func columnMapping(cols map[string]string) data.ColumnMapping {
	if len(cols) == 0 {
		return nil
	}
	m := make(data.ColumnMapping, len(cols))
	for logical, source := range cols {
		m[types.ColumnNames(strings.ToLower(logical))] = source
	}
	return m
}

func buildSeries(ss dto.SeriesSpec) (series.Series, error) {
	t, err := types.ParseChartType(ss.Type)
	if err != nil {
		return nil, err
	}
	rows, mapping := ss.Data, columnMapping(ss.Columns)

	var s series.Series
	switch t {
	case types.ChartTypeLine:
		var l *series.Line
		if l, err = series.LineFromRecords(rows, mapping); err == nil {
			if ss.Color != "" {
				l.SetColor(ss.Color)
			}
			if ss.LineWidth > 0 {
				l.SetLineWidth(ss.LineWidth)
			}
			s = l
		}
	case types.ChartTypeArea:
		var a *series.Area
		if a, err = series.AreaFromRecords(rows, mapping); err == nil {
			if ss.Color != "" {
				a.Options.Color = ss.Color
			}
			if ss.LineWidth > 0 {
				a.Options.SetWidth(ss.LineWidth)
			}
			s = a
		}
	case types.ChartTypeHistogram:
		var h *series.Histogram
		if h, err = series.HistogramFromRecords(rows, mapping); err == nil {
			if ss.Color != "" {
				h.SetColor(ss.Color)
			}
			s = h
		}
	case types.ChartTypeBaseline:
		s, err = series.BaselineFromRecords(rows, mapping, ss.BaseValue)
	case types.ChartTypeCandlestick:
		s, err = series.CandlestickFromRecords(rows, mapping)
	case types.ChartTypeBar:
		s, err = series.BarFromRecords(rows, mapping)
	case types.ChartTypeBand:
		s, err = series.BandFromRecords(rows, mapping)
	case types.ChartTypeRibbon:
		s, err = series.RibbonFromRecords(rows, mapping)
	case types.ChartTypeGradientRibbon:
		s, err = series.GradientRibbonFromRecords(rows, mapping)
	case types.ChartTypeSignal:
		s, err = series.SignalFromRecords(rows, mapping)
	case types.ChartTypeTrendFill:
		s, err = series.TrendFillFromRecords(rows, mapping)
	}
	if err != nil {
		return nil, err
	}

	core := s.Core()
	core.SetPaneID(ss.PaneID)
	if ss.Title != "" {
		core.SetTitle(ss.Title)
	}
	if ss.PriceScaleID != "" {
		core.SetPriceScaleID(ss.PriceScaleID)
	}
	if ss.Visible != nil {
		core.SetVisible(*ss.Visible)
	}
	for i, ms := range ss.Markers {
		m, err := buildMarker(ms)
		if err != nil {
			return nil, fmt.Errorf("markers[%d]: %w", i, err)
		}
		core.AddMarker(*m)
	}
	for _, ps := range ss.PriceLines {
		core.AddPriceLine(buildPriceLine(ps))
	}
	return s, nil
}

func buildMarker(ms dto.MarkerSpec) (*data.Marker, error) {
	pos, err := types.ParseMarkerPosition(ms.Position)
	if err != nil {
		return nil, err
	}
	shape, err := types.ParseMarkerShape(ms.Shape)
	if err != nil {
		return nil, err
	}
	var opts []data.MarkerOption
	if ms.Price != nil {
		opts = append(opts, data.WithPrice(*ms.Price))
	}
	m, err := data.NewMarker(ms.Time, pos, shape, opts...)
	if err != nil {
		return nil, err
	}
	if ms.Text != "" {
		m.WithText(ms.Text)
	}
	if ms.Color != "" {
		m.WithColor(ms.Color)
	}
	if ms.Size > 0 {
		m.WithSize(ms.Size)
	}
	if ms.ID != "" {
		m.WithID(ms.ID)
	}
	return m, nil
}

func buildPriceLine(ps dto.PriceLineSpec) *options.PriceLineOptions {
	p := options.NewPriceLine(ps.Price)
	if ps.ID != "" {
		p.SetID(ps.ID)
	}
	if ps.Title != "" {
		p.SetTitle(ps.Title)
	}
	if ps.Color != "" {
		p.SetColor(ps.Color)
	}
	if ps.LineWidth > 0 || ps.LineStyle > 0 {
		width := ps.LineWidth
		if width == 0 {
			width = p.LineWidth
		}
		p.SetLine(width, types.LineStyle(ps.LineStyle))
	}
	return p
}

func buildAnnotation(as dto.AnnotationSpec) (*annotation.Annotation, error) {
	var opts []annotation.Option
	if as.Type != "" {
		t, err := types.ParseAnnotationType(as.Type)
		if err != nil {
			return nil, err
		}
		opts = append(opts, annotation.WithType(t))
	}
	if as.Position != "" {
		p, err := types.ParseAnnotationPosition(as.Position)
		if err != nil {
			return nil, err
		}
		opts = append(opts, annotation.WithPosition(p))
	}
	if as.Color != "" {
		opts = append(opts, annotation.WithColor(as.Color))
	}
	if as.BackgroundColor != "" {
		opts = append(opts, annotation.WithBackgroundColor(as.BackgroundColor))
	}
	if as.TextColor != "" {
		opts = append(opts, annotation.WithTextColor(as.TextColor))
	}
	if as.FontSize > 0 {
		opts = append(opts, annotation.WithFont(as.FontSize, annotation.DefaultFontWeight))
	}
	if as.Tooltip != "" {
		opts = append(opts, annotation.WithTooltip(as.Tooltip))
	}
	return annotation.New(as.Time, as.Price, as.Text, opts...)
}

func buildTooltip(ts dto.TooltipSpec) (*tooltip.Config, error) {
	switch ts.Preset {
	case "ohlc":
		return tooltip.OHLC(), nil
	case "trade":
		return tooltip.Trade(), nil
	case "multi":
		if len(ts.Series) == 0 {
			return nil, types.RequiredError("series")
		}
		return tooltip.MultiSeries(ts.Series), nil
	}
	fields := make([]tooltip.Field, 0, len(ts.Fields))
	for _, fs := range ts.Fields {
		f := tooltip.NewField(fs.Label, fs.ValueKey)
		if fs.Precision != nil {
			f = f.WithPrecision(*fs.Precision)
		}
		if fs.Prefix != "" || fs.Suffix != "" {
			f = f.WithAffixes(fs.Prefix, fs.Suffix)
		}
		fields = append(fields, f)
	}
	return tooltip.Custom(ts.Template, fields), nil
}

func buildTrade(ts dto.TradeSpec) (*data.TradeData, error) {
	tradeType, err := types.ParseTradeType(ts.Type)
	if err != nil {
		return nil, err
	}
	t, err := data.NewTradeData(ts.EntryTime, ts.EntryPrice, ts.ExitTime, ts.ExitPrice, ts.Quantity, tradeType)
	if err != nil {
		return nil, err
	}
	if ts.ID != "" {
		t.WithID(ts.ID)
	}
	if ts.Notes != "" {
		t.WithNotes(ts.Notes)
	}
	return t, nil
}
