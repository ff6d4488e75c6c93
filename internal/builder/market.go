package builder

import (
	"fmt"
	"math"
	"strings"

	"golang-lwcharts/internal/dto"
	"golang-lwcharts/pkg/logger"
	"golang-lwcharts/pkg/lwc/chart"
	"golang-lwcharts/pkg/lwc/data"
	"golang-lwcharts/pkg/lwc/options"
	"golang-lwcharts/pkg/lwc/series"
	"golang-lwcharts/pkg/lwc/tooltip"
	"golang-lwcharts/pkg/lwc/types"
)

const priceTooltipName = "ohlc"

var smaColors = []string{"#2962FF", "#FF6D00", "#AB47BC", "#26A69A"}

// BarsFromOHLCV converts fetched candles into chart bars, rejecting invalid ones.
func BarsFromOHLCV(candles []dto.OHLCV) ([]data.OhlcvData, error) {
	bars := make([]data.OhlcvData, 0, len(candles))
	for i, c := range candles {
		b, err := data.NewOhlcvData(c.Timestamp, c.Open, c.High, c.Low, c.Close, c.Volume)
		if err != nil {
			return nil, fmt.Errorf("candle %d: %w", i, err)
		}
		bars = append(bars, *b)
	}
	return bars, nil
}

// SMA returns the simple moving average of closes over period bars, starting at the
// first bar with a full window.
func SMA(bars []data.OhlcvData, period int) []data.LineData {
	if period <= 0 || len(bars) < period {
		return nil
	}
	out := make([]data.LineData, 0, len(bars)-period+1)
	sum := 0.0
	for i, b := range bars {
		sum += b.Close
		if i >= period {
			sum -= bars[i-period].Close
		}
		if i < period-1 {
			continue
		}
		var p data.LineData
		p.Time = b.Time
		p.Value = sum / float64(period)
		out = append(out, p)
	}
	return out
}

// Bollinger returns the middle SMA with bands stdDev population deviations away.
func Bollinger(bars []data.OhlcvData, period int, stdDev float64) []data.BandData {
	if period <= 0 || len(bars) < period {
		return nil
	}
	out := make([]data.BandData, 0, len(bars)-period+1)
	for i := period - 1; i < len(bars); i++ {
		window := bars[i-period+1 : i+1]
		mean := 0.0
		for _, b := range window {
			mean += b.Close
		}
		mean /= float64(period)
		variance := 0.0
		for _, b := range window {
			d := b.Close - mean
			variance += d * d
		}
		dev := math.Sqrt(variance/float64(period)) * stdDev
		out = append(out, data.BandData{Time: bars[i].Time, Upper: mean + dev, Middle: mean, Lower: mean - dev})
	}
	return out
}

// BuildMarket assembles the price/volume chart of md with the overlays req asks for.
func (b *Builder) BuildMarket(req dto.MarketChartRequest, md *dto.MarketData, id string, groupID int) (*chart.Chart, error) {
	if err := types.Validate(req); err != nil {
		return nil, err
	}
	bars, err := BarsFromOHLCV(md.OHLCV)
	if err != nil {
		return nil, err
	}

	c := b.NewChart(id, groupID)
	if req.Height > 0 {
		c.SetHeight(req.Height)
	}
	c.Options.TimeScale.SetTimeVisible(intraday(md.Interval))

	candles, _, err := c.AddPriceVolumeSeries(bars, 0)
	if err != nil {
		return nil, err
	}
	title := req.Title
	if title == "" {
		title = strings.ToUpper(md.Symbol)
	}
	candles.SetTitle(title)
	candles.SetLegend(options.NewLegendOptions().SetSymbolName(title))
	if md.MarketPrice > 0 {
		candles.AddPriceLine(options.NewPriceLine(md.MarketPrice).SetID("market-price").SetTitle("Last"))
	}

	for i, period := range req.SMA {
		points := SMA(bars, period)
		if len(points) == 0 {
			b.log.Warn("not enough bars for moving average",
				logger.StringField("symbol", md.Symbol),
				logger.IntField("period", period),
				logger.IntField("bars", len(bars)))
			continue
		}
		line := series.NewLine(points).SetColor(smaColors[i%len(smaColors)]).SetLineWidth(2)
		line.SetTitle(fmt.Sprintf("SMA %d", period)).SetLastValueVisible(false)
		if err := c.AddSeries(line); err != nil {
			return nil, err
		}
	}

	if bb := req.Bollinger; bb != nil {
		points := Bollinger(bars, bb.Period, bb.StdDev)
		if len(points) > 0 {
			band := series.NewBand(points)
			band.SetTitle(fmt.Sprintf("BB %d %.1f", bb.Period, bb.StdDev)).SetLastValueVisible(false)
			if err := c.AddSeries(band); err != nil {
				return nil, err
			}
		}
	}

	if err := c.AddTooltipConfig(priceTooltipName, tooltip.OHLC()); err != nil {
		return nil, err
	}
	return c, nil
}

// intraday reports minute and hour intervals. "1M" is a month on Binance.
func intraday(interval string) bool {
	return strings.HasSuffix(interval, "m") || strings.HasSuffix(interval, "h")
}
