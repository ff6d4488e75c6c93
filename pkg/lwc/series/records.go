package series

import (
	"golang-lwcharts/pkg/lwc/data"
)

func LineFromRecords(rows []data.Record, mapping data.ColumnMapping) (*Line, error) {
	points, err := data.LineFromRecords(rows, mapping)
	if err != nil {
		return nil, err
	}
	return NewLine(points), nil
}

func AreaFromRecords(rows []data.Record, mapping data.ColumnMapping) (*Area, error) {
	points, err := data.AreaFromRecords(rows, mapping)
	if err != nil {
		return nil, err
	}
	return NewArea(points), nil
}

func HistogramFromRecords(rows []data.Record, mapping data.ColumnMapping) (*Histogram, error) {
	points, err := data.HistogramFromRecords(rows, mapping)
	if err != nil {
		return nil, err
	}
	return NewHistogram(points), nil
}

func BaselineFromRecords(rows []data.Record, mapping data.ColumnMapping, baseValue float64) (*Baseline, error) {
	points, err := data.BaselineFromRecords(rows, mapping)
	if err != nil {
		return nil, err
	}
	return NewBaseline(points, baseValue), nil
}

func CandlestickFromRecords(rows []data.Record, mapping data.ColumnMapping) (*Candlestick, error) {
	points, err := data.CandlestickFromRecords(rows, mapping)
	if err != nil {
		return nil, err
	}
	return NewCandlestick(points), nil
}

func BarFromRecords(rows []data.Record, mapping data.ColumnMapping) (*Bar, error) {
	points, err := data.BarFromRecords(rows, mapping)
	if err != nil {
		return nil, err
	}
	return NewBar(points), nil
}

func BandFromRecords(rows []data.Record, mapping data.ColumnMapping) (*Band, error) {
	points, err := data.BandFromRecords(rows, mapping)
	if err != nil {
		return nil, err
	}
	return NewBand(points), nil
}

func RibbonFromRecords(rows []data.Record, mapping data.ColumnMapping) (*Ribbon, error) {
	points, err := data.RibbonFromRecords(rows, mapping)
	if err != nil {
		return nil, err
	}
	return NewRibbon(points), nil
}

// GradientRibbonFromRecords reads ribbons without gradient values; the frontend then
// derives the gradient from the ribbon width.
func GradientRibbonFromRecords(rows []data.Record, mapping data.ColumnMapping) (*GradientRibbon, error) {
	ribbons, err := data.RibbonFromRecords(rows, mapping)
	if err != nil {
		return nil, err
	}
	points := make([]data.GradientRibbonData, 0, len(ribbons))
	for _, r := range ribbons {
		points = append(points, data.GradientRibbonData{RibbonData: r})
	}
	return NewGradientRibbon(points), nil
}

func SignalFromRecords(rows []data.Record, mapping data.ColumnMapping) (*Signal, error) {
	points, err := data.SignalFromRecords(rows, mapping)
	if err != nil {
		return nil, err
	}
	return NewSignal(points), nil
}

func TrendFillFromRecords(rows []data.Record, mapping data.ColumnMapping) (*TrendFill, error) {
	points, err := data.TrendFillFromRecords(rows, mapping)
	if err != nil {
		return nil, err
	}
	return NewTrendFill(points), nil
}
