package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"golang-lwcharts/config"
	"golang-lwcharts/internal/builder"
	"golang-lwcharts/internal/dto"
	"golang-lwcharts/internal/preview"
	"golang-lwcharts/pkg/logger"
	"golang-lwcharts/pkg/lwc/chart"
	"golang-lwcharts/pkg/lwc/serialize"
	"golang-lwcharts/pkg/lwc/types"
)

type renderOptions struct {
	input    string
	output   string
	format   string
	symbol   string
	sma      []int
	bbPeriod int
	bbStdDev float64
}

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a chart spec (YAML/JSON) or OHLCV CSV into a frontend config or HTML preview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		renderOpts.input = args[0]
		return runRender(cmd.OutOrStdout(), renderOpts)
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOpts.output, "output", "o", "", "output file (default stdout)")
	f.StringVarP(&renderOpts.format, "format", "f", "json", "output format: json or html")
	f.StringVar(&renderOpts.symbol, "symbol", "", "symbol title for CSV input (default file name)")
	f.IntSliceVar(&renderOpts.sma, "sma", nil, "moving average periods for CSV input")
	f.IntVar(&renderOpts.bbPeriod, "bb-period", 0, "Bollinger band period for CSV input")
	f.Float64Var(&renderOpts.bbStdDev, "bb-stddev", 2, "Bollinger band width in standard deviations")
}

func runRender(stdout io.Writer, opts renderOptions) error {
	if opts.format != "json" && opts.format != "html" {
		return fmt.Errorf("unknown format %q, expected json or html", opts.format)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	b := builder.New(builder.Defaults{
		Height:          cfg.Chart.Height,
		BackgroundColor: cfg.Chart.BackgroundColor,
		TextColor:       cfg.Chart.TextColor,
	}, log)

	raw, err := os.ReadFile(opts.input)
	if err != nil {
		return err
	}

	var (
		c     *chart.Chart
		title string
	)
	switch ext := strings.ToLower(filepath.Ext(opts.input)); ext {
	case ".yaml", ".yml", ".json":
		spec, err := decodeSpec(raw, ext)
		if err != nil {
			return err
		}
		title = spec.Title
		c, err = b.Build(spec)
		if err != nil {
			return err
		}
	case ".csv":
		symbol := opts.symbol
		if symbol == "" {
			symbol = strings.TrimSuffix(filepath.Base(opts.input), filepath.Ext(opts.input))
		}
		candles, err := readOHLCVCSV(bytes.NewReader(raw))
		if err != nil {
			return fmt.Errorf("%s: %w", opts.input, err)
		}
		req := dto.MarketChartRequest{Symbol: symbol, SMA: opts.sma}
		if opts.bbPeriod > 0 {
			req.Bollinger = &dto.BollingerSpec{Period: opts.bbPeriod, StdDev: opts.bbStdDev}
		}
		md := &dto.MarketData{Symbol: symbol, Interval: guessInterval(candles), OHLCV: candles}
		title = strings.ToUpper(symbol)
		c, err = b.BuildMarket(req, md, "", 0)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported input %q, expected .yaml, .yml, .json or .csv", opts.input)
	}

	frontend, err := c.ToFrontendConfig()
	if err != nil {
		return err
	}

	out := stdout
	if opts.output != "" {
		file, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	if opts.format == "html" {
		return preview.Render(out, title, frontend)
	}
	encoded, err := serialize.ToJSON(frontend)
	if err != nil {
		return err
	}
	_, err = out.Write(append(encoded, '\n'))
	if err == nil {
		log.Debug("Chart rendered",
			logger.StringField("input", opts.input),
			logger.IntField("series", len(c.Series)))
	}
	return err
}

func decodeSpec(raw []byte, ext string) (dto.ChartSpec, error) {
	var spec dto.ChartSpec
	if ext == ".json" {
		if err := json.Unmarshal(raw, &spec); err != nil {
			return spec, fmt.Errorf("failed to decode chart spec: %w", err)
		}
		return spec, nil
	}
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return spec, fmt.Errorf("failed to decode chart spec: %w", err)
	}
	return spec, nil
}

// readOHLCVCSV reads rows of time,open,high,low,close[,volume] with a header row.
// Times are unix seconds or dates understood by the chart time parser.
func readOHLCVCSV(r io.Reader) ([]dto.OHLCV, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	timeCol, ok := firstColumn(cols, "time", "timestamp", "date", "datetime")
	if !ok {
		return nil, types.RequiredError("time column")
	}
	for _, name := range []string{"open", "high", "low", "close"} {
		if _, ok := cols[name]; !ok {
			return nil, types.RequiredError(name + " column")
		}
	}
	volumeCol, hasVolume := cols["volume"]

	var candles []dto.OHLCV
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ts, err := types.NormalizeTime(strings.TrimSpace(field(row, timeCol)))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		values := make([]float64, 0, 5)
		for _, name := range []string{"open", "high", "low", "close"} {
			v, err := strconv.ParseFloat(strings.TrimSpace(field(row, cols[name])), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, name, err)
			}
			values = append(values, v)
		}
		volume := 0.0
		if hasVolume && strings.TrimSpace(field(row, volumeCol)) != "" {
			volume, err = strconv.ParseFloat(strings.TrimSpace(field(row, volumeCol)), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: volume: %w", line, err)
			}
		}
		candles = append(candles, dto.OHLCV{
			Timestamp: ts,
			Open:      values[0],
			High:      values[1],
			Low:       values[2],
			Close:     values[3],
			Volume:    volume,
		})
	}
	if len(candles) == 0 {
		return nil, types.RequiredError("csv rows")
	}
	return candles, nil
}

func firstColumn(cols map[string]int, names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := cols[n]; ok {
			return i, true
		}
	}
	return 0, false
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// guessInterval labels the bar spacing so intraday data shows clock times.
func guessInterval(candles []dto.OHLCV) string {
	if len(candles) < 2 {
		return "1d"
	}
	step := time.Duration(candles[1].Timestamp-candles[0].Timestamp) * time.Second
	switch {
	case step < time.Hour:
		return "1m"
	case step < 24*time.Hour:
		return "1h"
	default:
		return "1d"
	}
}
