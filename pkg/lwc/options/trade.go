package options

import (
	"golang-lwcharts/pkg/lwc/types"
)

// TradeVisualizationOptions controls how closed trades are drawn.
type TradeVisualizationOptions struct {
	Style types.TradeVisualization `validate:"lwcenum"`

	EntryMarkerColorLong  string `validate:"chartcolor"`
	EntryMarkerColorShort string `validate:"chartcolor"`
	ExitMarkerColorProfit string `validate:"chartcolor"`
	ExitMarkerColorLoss   string `validate:"chartcolor"`
	MarkerSize            int    `validate:"gte=0"`
	ShowPnlInMarkers      bool

	RectangleFillOpacity float64 `validate:"gte=0,lte=1"`
	RectangleBorderWidth int     `validate:"gte=0"`
	RectangleColorProfit string  `validate:"chartcolor"`
	RectangleColorLoss   string  `validate:"chartcolor"`

	LineWidth       int             `validate:"gte=0"`
	LineStyle       types.LineStyle `validate:"lwcenum"`
	LineColorProfit string          `validate:"chartcolor"`
	LineColorLoss   string          `validate:"chartcolor"`

	ArrowSize        int    `validate:"gte=0"`
	ArrowColorProfit string `validate:"chartcolor"`
	ArrowColorLoss   string `validate:"chartcolor"`

	ZoneOpacity    float64 `validate:"gte=0,lte=1"`
	ZoneColorLong  string  `validate:"chartcolor"`
	ZoneColorShort string  `validate:"chartcolor"`
	ZoneExtendBars int     `validate:"gte=0"`

	ShowTradeID          bool
	ShowQuantity         bool
	ShowTradeType        bool
	AnnotationFontSize   int    `validate:"gte=0"`
	AnnotationBackground string `validate:"chartcolor"`
}

func NewTradeVisualizationOptions() *TradeVisualizationOptions {
	return &TradeVisualizationOptions{
		Style: types.TradeVisualizationMarkers,

		EntryMarkerColorLong:  "#2196F3",
		EntryMarkerColorShort: "#FF9800",
		ExitMarkerColorProfit: "#4CAF50",
		ExitMarkerColorLoss:   "#F44336",
		MarkerSize:            5,

		RectangleFillOpacity: 0.2,
		RectangleBorderWidth: 1,
		RectangleColorProfit: "#4CAF50",
		RectangleColorLoss:   "#F44336",

		LineWidth:       2,
		LineStyle:       types.LineStyleDashed,
		LineColorProfit: "#4CAF50",
		LineColorLoss:   "#F44336",

		ArrowSize:        10,
		ArrowColorProfit: "#4CAF50",
		ArrowColorLoss:   "#F44336",

		ZoneOpacity:    0.1,
		ZoneColorLong:  "#2196F3",
		ZoneColorShort: "#FF9800",
		ZoneExtendBars: 2,

		ShowTradeID:          true,
		ShowQuantity:         true,
		ShowTradeType:        true,
		AnnotationFontSize:   12,
		AnnotationBackground: "rgba(255, 255, 255, 0.8)",
	}
}

func (t *TradeVisualizationOptions) SetStyle(s types.TradeVisualization) *TradeVisualizationOptions {
	t.Style = s
	return t
}

func (t *TradeVisualizationOptions) SetShowPnl(show bool) *TradeVisualizationOptions {
	t.ShowPnlInMarkers = show
	return t
}

func (t *TradeVisualizationOptions) SetMarkerColors(longEntry, shortEntry, profitExit, lossExit string) *TradeVisualizationOptions {
	t.EntryMarkerColorLong = longEntry
	t.EntryMarkerColorShort = shortEntry
	t.ExitMarkerColorProfit = profitExit
	t.ExitMarkerColorLoss = lossExit
	return t
}

func (t *TradeVisualizationOptions) EntryColor(tradeType types.TradeType) string {
	if tradeType == types.TradeTypeShort {
		return t.EntryMarkerColorShort
	}
	return t.EntryMarkerColorLong
}

func (t *TradeVisualizationOptions) ExitColor(profitable bool) string {
	if profitable {
		return t.ExitMarkerColorProfit
	}
	return t.ExitMarkerColorLoss
}

func (t *TradeVisualizationOptions) Validate() error {
	return types.Validate(t)
}

// SyncOptions links the crosshair and visible range of charts sharing a group.
type SyncOptions struct {
	Enabled   bool
	Crosshair bool
	TimeRange bool
	GroupID   int
}

func NewSyncOptions() *SyncOptions {
	return &SyncOptions{}
}

func (s *SyncOptions) EnableAll() *SyncOptions {
	s.Enabled, s.Crosshair, s.TimeRange = true, true, true
	return s
}

func (s *SyncOptions) DisableAll() *SyncOptions {
	s.Enabled, s.Crosshair, s.TimeRange = false, false, false
	return s
}

func (s *SyncOptions) EnableCrosshair() *SyncOptions {
	s.Enabled, s.Crosshair = true, true
	return s
}

func (s *SyncOptions) EnableTimeRange() *SyncOptions {
	s.Enabled, s.TimeRange = true, true
	return s
}

func (s *SyncOptions) SetGroupID(id int) *SyncOptions {
	s.GroupID = id
	return s
}
