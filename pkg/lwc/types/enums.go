package types

import (
	"fmt"
	"strings"
)

type ChartType string

const (
	ChartTypeArea           ChartType = "area"
	ChartTypeBand           ChartType = "band"
	ChartTypeBaseline       ChartType = "baseline"
	ChartTypeHistogram      ChartType = "histogram"
	ChartTypeLine           ChartType = "line"
	ChartTypeBar            ChartType = "bar"
	ChartTypeCandlestick    ChartType = "candlestick"
	ChartTypeRibbon         ChartType = "ribbon"
	ChartTypeGradientRibbon ChartType = "gradient_ribbon"
	ChartTypeSignal         ChartType = "signal"
	ChartTypeTrendFill      ChartType = "trend_fill"
)

var chartTypes = []ChartType{
	ChartTypeArea, ChartTypeBand, ChartTypeBaseline, ChartTypeHistogram, ChartTypeLine, ChartTypeBar,
	ChartTypeCandlestick, ChartTypeRibbon, ChartTypeGradientRibbon, ChartTypeSignal, ChartTypeTrendFill,
}

func (c ChartType) IsValid() bool { return contains(chartTypes, c) }

func ParseChartType(s string) (ChartType, error) { return parse(chartTypes, s, "chart type") }

// LineStyle mirrors the lightweight-charts LineStyle enum.
type LineStyle int

const (
	LineStyleSolid LineStyle = iota
	LineStyleDotted
	LineStyleDashed
	LineStyleLargeDashed
	LineStyleSparseDotted
)

func (l LineStyle) IsValid() bool { return l >= LineStyleSolid && l <= LineStyleSparseDotted }

type LineType int

const (
	LineTypeSimple LineType = iota
	LineTypeWithSteps
	LineTypeCurved
)

func (l LineType) IsValid() bool { return l >= LineTypeSimple && l <= LineTypeCurved }

type CrosshairMode int

const (
	CrosshairModeNormal CrosshairMode = iota
	CrosshairModeMagnet
	CrosshairModeHidden
)

func (c CrosshairMode) IsValid() bool { return c >= CrosshairModeNormal && c <= CrosshairModeHidden }

type PriceScaleMode int

const (
	PriceScaleModeNormal PriceScaleMode = iota
	PriceScaleModeLogarithmic
	PriceScaleModePercentage
	PriceScaleModeIndexedTo100
)

func (p PriceScaleMode) IsValid() bool {
	return p >= PriceScaleModeNormal && p <= PriceScaleModeIndexedTo100
}

type LastPriceAnimationMode int

const (
	LastPriceAnimationDisabled LastPriceAnimationMode = iota
	LastPriceAnimationContinuous
	LastPriceAnimationOnDataUpdate
)

func (l LastPriceAnimationMode) IsValid() bool {
	return l >= LastPriceAnimationDisabled && l <= LastPriceAnimationOnDataUpdate
}

type PriceLineSource int

const (
	PriceLineSourceLastBar PriceLineSource = iota
	PriceLineSourceLastVisible
)

func (p PriceLineSource) IsValid() bool {
	return p == PriceLineSourceLastBar || p == PriceLineSourceLastVisible
}

type MarkerPosition string

const (
	MarkerPositionAboveBar      MarkerPosition = "aboveBar"
	MarkerPositionBelowBar      MarkerPosition = "belowBar"
	MarkerPositionInBar         MarkerPosition = "inBar"
	MarkerPositionAtPriceTop    MarkerPosition = "atPriceTop"
	MarkerPositionAtPriceBottom MarkerPosition = "atPriceBottom"
	MarkerPositionAtPriceMiddle MarkerPosition = "atPriceMiddle"
)

var markerPositions = []MarkerPosition{
	MarkerPositionAboveBar, MarkerPositionBelowBar, MarkerPositionInBar,
	MarkerPositionAtPriceTop, MarkerPositionAtPriceBottom, MarkerPositionAtPriceMiddle,
}

func (m MarkerPosition) IsValid() bool { return contains(markerPositions, m) }

// IsPriceBased reports whether the marker is anchored to a price instead of a bar.
func (m MarkerPosition) IsPriceBased() bool {
	return m == MarkerPositionAtPriceTop || m == MarkerPositionAtPriceBottom || m == MarkerPositionAtPriceMiddle
}

func ParseMarkerPosition(s string) (MarkerPosition, error) {
	return parse(markerPositions, s, "marker position")
}

type MarkerShape string

const (
	MarkerShapeCircle    MarkerShape = "circle"
	MarkerShapeSquare    MarkerShape = "square"
	MarkerShapeArrowUp   MarkerShape = "arrowUp"
	MarkerShapeArrowDown MarkerShape = "arrowDown"
)

var markerShapes = []MarkerShape{MarkerShapeCircle, MarkerShapeSquare, MarkerShapeArrowUp, MarkerShapeArrowDown}

func (m MarkerShape) IsValid() bool { return contains(markerShapes, m) }

func ParseMarkerShape(s string) (MarkerShape, error) { return parse(markerShapes, s, "marker shape") }

type TradeType string

const (
	TradeTypeLong  TradeType = "long"
	TradeTypeShort TradeType = "short"
)

var tradeTypes = []TradeType{TradeTypeLong, TradeTypeShort}

func (t TradeType) IsValid() bool { return contains(tradeTypes, t) }

func ParseTradeType(s string) (TradeType, error) { return parse(tradeTypes, s, "trade type") }

type TradeVisualization string

const (
	TradeVisualizationMarkers    TradeVisualization = "markers"
	TradeVisualizationRectangles TradeVisualization = "rectangles"
	TradeVisualizationBoth       TradeVisualization = "both"
	TradeVisualizationLines      TradeVisualization = "lines"
	TradeVisualizationArrows     TradeVisualization = "arrows"
	TradeVisualizationZones      TradeVisualization = "zones"
)

var tradeVisualizations = []TradeVisualization{
	TradeVisualizationMarkers, TradeVisualizationRectangles, TradeVisualizationBoth,
	TradeVisualizationLines, TradeVisualizationArrows, TradeVisualizationZones,
}

func (t TradeVisualization) IsValid() bool { return contains(tradeVisualizations, t) }

// HasMarkers reports whether trades rendered with this style produce series markers.
func (t TradeVisualization) HasMarkers() bool {
	return t == TradeVisualizationMarkers || t == TradeVisualizationBoth
}

func ParseTradeVisualization(s string) (TradeVisualization, error) {
	return parse(tradeVisualizations, s, "trade visualization")
}

type AnnotationType string

const (
	AnnotationTypeText      AnnotationType = "text"
	AnnotationTypeArrow     AnnotationType = "arrow"
	AnnotationTypeShape     AnnotationType = "shape"
	AnnotationTypeLine      AnnotationType = "line"
	AnnotationTypeRectangle AnnotationType = "rectangle"
	AnnotationTypeCircle    AnnotationType = "circle"
)

var annotationTypes = []AnnotationType{
	AnnotationTypeText, AnnotationTypeArrow, AnnotationTypeShape,
	AnnotationTypeLine, AnnotationTypeRectangle, AnnotationTypeCircle,
}

func (a AnnotationType) IsValid() bool { return contains(annotationTypes, a) }

func ParseAnnotationType(s string) (AnnotationType, error) {
	return parse(annotationTypes, s, "annotation type")
}

type AnnotationPosition string

const (
	AnnotationPositionAbove  AnnotationPosition = "above"
	AnnotationPositionBelow  AnnotationPosition = "below"
	AnnotationPositionInline AnnotationPosition = "inline"
)

var annotationPositions = []AnnotationPosition{
	AnnotationPositionAbove, AnnotationPositionBelow, AnnotationPositionInline,
}

func (a AnnotationPosition) IsValid() bool { return contains(annotationPositions, a) }

func ParseAnnotationPosition(s string) (AnnotationPosition, error) {
	return parse(annotationPositions, s, "annotation position")
}

type TooltipType string

const (
	TooltipTypeOHLC   TooltipType = "ohlc"
	TooltipTypeSingle TooltipType = "single"
	TooltipTypeMulti  TooltipType = "multi"
	TooltipTypeCustom TooltipType = "custom"
	TooltipTypeTrade  TooltipType = "trade"
	TooltipTypeMarker TooltipType = "marker"
)

var tooltipTypes = []TooltipType{
	TooltipTypeOHLC, TooltipTypeSingle, TooltipTypeMulti, TooltipTypeCustom, TooltipTypeTrade, TooltipTypeMarker,
}

func (t TooltipType) IsValid() bool { return contains(tooltipTypes, t) }

type TooltipPosition string

const (
	TooltipPositionCursor TooltipPosition = "cursor"
	TooltipPositionFixed  TooltipPosition = "fixed"
	TooltipPositionAuto   TooltipPosition = "auto"
)

var tooltipPositions = []TooltipPosition{TooltipPositionCursor, TooltipPositionFixed, TooltipPositionAuto}

func (t TooltipPosition) IsValid() bool { return contains(tooltipPositions, t) }

type BackgroundStyle string

const (
	BackgroundStyleSolid    BackgroundStyle = "solid"
	BackgroundStyleGradient BackgroundStyle = "gradient"
)

func (b BackgroundStyle) IsValid() bool {
	return b == BackgroundStyleSolid || b == BackgroundStyleGradient
}

type PriceFormatType string

const (
	PriceFormatPrice   PriceFormatType = "price"
	PriceFormatVolume  PriceFormatType = "volume"
	PriceFormatPercent PriceFormatType = "percent"
	PriceFormatCustom  PriceFormatType = "custom"
)

var priceFormatTypes = []PriceFormatType{PriceFormatPrice, PriceFormatVolume, PriceFormatPercent, PriceFormatCustom}

func (p PriceFormatType) IsValid() bool { return contains(priceFormatTypes, p) }

type HorzAlign string

const (
	HorzAlignLeft   HorzAlign = "left"
	HorzAlignCenter HorzAlign = "center"
	HorzAlignRight  HorzAlign = "right"
)

type VertAlign string

const (
	VertAlignTop    VertAlign = "top"
	VertAlignCenter VertAlign = "center"
	VertAlignBottom VertAlign = "bottom"
)

// ColumnNames are the logical column names used when converting tabular records into data points.
type ColumnNames string

const (
	ColumnTime           ColumnNames = "time"
	ColumnOpen           ColumnNames = "open"
	ColumnHigh           ColumnNames = "high"
	ColumnLow            ColumnNames = "low"
	ColumnClose          ColumnNames = "close"
	ColumnVolume         ColumnNames = "volume"
	ColumnValue          ColumnNames = "value"
	ColumnColor          ColumnNames = "color"
	ColumnUpper          ColumnNames = "upper"
	ColumnMiddle         ColumnNames = "middle"
	ColumnLower          ColumnNames = "lower"
	ColumnTrendLine      ColumnNames = "trend_line"
	ColumnBaseLine       ColumnNames = "base_line"
	ColumnTrendDirection ColumnNames = "trend_direction"
)

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func parse[T ~string](values []T, s, kind string) (T, error) {
	for _, candidate := range values {
		if strings.EqualFold(string(candidate), strings.TrimSpace(s)) {
			return candidate, nil
		}
	}
	var zero T
	return zero, NewValidationError(kind, s, fmt.Sprintf("must be one of %v", values))
}
