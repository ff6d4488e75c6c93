package data

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang-lwcharts/pkg/lwc/types"
)

// Record is one row of tabular input such as a decoded CSV line or a JSON object.
type Record map[string]any

// ColumnMapping maps logical columns to the keys used by the source records.
// Columns without an entry are looked up under their logical name.
type ColumnMapping map[types.ColumnNames]string

// Row gives typed access to a Record through a ColumnMapping.
type Row struct {
	Index   int
	record  Record
	mapping ColumnMapping
}

func (r Row) key(col types.ColumnNames) string {
	if k, ok := r.mapping[col]; ok && k != "" {
		return k
	}
	return string(col)
}

func (r Row) Has(col types.ColumnNames) bool {
	v, ok := r.record[r.key(col)]
	return ok && v != nil
}

func (r Row) Raw(col types.ColumnNames) any {
	return r.record[r.key(col)]
}

func (r Row) Float(col types.ColumnNames) (float64, error) {
	v, ok := r.record[r.key(col)]
	if !ok || v == nil {
		return 0, types.RequiredError(r.key(col))
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, types.NewValidationError(r.key(col), v, "is not a number")
	}
	return types.NormalizeFloat(f), nil
}

func (r Row) Int(col types.ColumnNames) (int, error) {
	f, err := r.Float(col)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func (r Row) String(col types.ColumnNames) string {
	v, ok := r.record[r.key(col)]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

func (r Row) Time() (any, error) {
	v, ok := r.record[r.key(types.ColumnTime)]
	if !ok || v == nil {
		return nil, types.RequiredError(r.key(types.ColumnTime))
	}
	if n, ok := v.(json.Number); ok {
		return n.String(), nil
	}
	return v, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		s := strings.TrimSpace(n)
		if s == "" || strings.EqualFold(s, "nan") {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("unsupported numeric type %T", v)
}

// FromRecords converts rows with build after checking that every required column is present.
func FromRecords[T any](rows []Record, mapping ColumnMapping, required []types.ColumnNames, build func(Row) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, rec := range rows {
		row := Row{Index: i, record: rec, mapping: mapping}
		for _, col := range required {
			if !row.Has(col) {
				return nil, fmt.Errorf("row %d: column %q (mapped from %q): %w", i, row.key(col), col, types.ErrRequiredField)
			}
		}
		item, err := build(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func LineFromRecords(rows []Record, mapping ColumnMapping) ([]LineData, error) {
	return FromRecords(rows, mapping, []types.ColumnNames{types.ColumnTime, types.ColumnValue}, func(r Row) (LineData, error) {
		t, value, err := timeAndValue(r)
		if err != nil {
			return LineData{}, err
		}
		d, err := NewLineData(t, value)
		if err != nil {
			return LineData{}, err
		}
		d.Color = r.String(types.ColumnColor)
		return *d, d.Validate()
	})
}

func AreaFromRecords(rows []Record, mapping ColumnMapping) ([]AreaData, error) {
	return FromRecords(rows, mapping, []types.ColumnNames{types.ColumnTime, types.ColumnValue}, func(r Row) (AreaData, error) {
		t, value, err := timeAndValue(r)
		if err != nil {
			return AreaData{}, err
		}
		d, err := NewAreaData(t, value)
		if err != nil {
			return AreaData{}, err
		}
		return *d, nil
	})
}

func HistogramFromRecords(rows []Record, mapping ColumnMapping) ([]HistogramData, error) {
	return FromRecords(rows, mapping, []types.ColumnNames{types.ColumnTime, types.ColumnValue}, func(r Row) (HistogramData, error) {
		t, value, err := timeAndValue(r)
		if err != nil {
			return HistogramData{}, err
		}
		d, err := NewHistogramData(t, value)
		if err != nil {
			return HistogramData{}, err
		}
		d.Color = r.String(types.ColumnColor)
		return *d, d.Validate()
	})
}

func BaselineFromRecords(rows []Record, mapping ColumnMapping) ([]BaselineData, error) {
	return FromRecords(rows, mapping, []types.ColumnNames{types.ColumnTime, types.ColumnValue}, func(r Row) (BaselineData, error) {
		t, value, err := timeAndValue(r)
		if err != nil {
			return BaselineData{}, err
		}
		d, err := NewBaselineData(t, value)
		if err != nil {
			return BaselineData{}, err
		}
		return *d, nil
	})
}

var ohlcColumns = []types.ColumnNames{types.ColumnTime, types.ColumnOpen, types.ColumnHigh, types.ColumnLow, types.ColumnClose}

func OhlcvFromRecords(rows []Record, mapping ColumnMapping) ([]OhlcvData, error) {
	required := append(append([]types.ColumnNames{}, ohlcColumns...), types.ColumnVolume)
	return FromRecords(rows, mapping, required, func(r Row) (OhlcvData, error) {
		t, o, h, l, c, err := ohlc(r)
		if err != nil {
			return OhlcvData{}, err
		}
		v, err := r.Float(types.ColumnVolume)
		if err != nil {
			return OhlcvData{}, err
		}
		d, err := NewOhlcvData(t, o, h, l, c, v)
		if err != nil {
			return OhlcvData{}, err
		}
		return *d, nil
	})
}

func CandlestickFromRecords(rows []Record, mapping ColumnMapping) ([]CandlestickData, error) {
	return FromRecords(rows, mapping, ohlcColumns, func(r Row) (CandlestickData, error) {
		t, o, h, l, c, err := ohlc(r)
		if err != nil {
			return CandlestickData{}, err
		}
		d, err := NewCandlestickData(t, o, h, l, c)
		if err != nil {
			return CandlestickData{}, err
		}
		d.Color = r.String(types.ColumnColor)
		return *d, d.Validate()
	})
}

func BarFromRecords(rows []Record, mapping ColumnMapping) ([]BarData, error) {
	return FromRecords(rows, mapping, ohlcColumns, func(r Row) (BarData, error) {
		t, o, h, l, c, err := ohlc(r)
		if err != nil {
			return BarData{}, err
		}
		d, err := NewBarData(t, o, h, l, c)
		if err != nil {
			return BarData{}, err
		}
		d.Color = r.String(types.ColumnColor)
		return *d, d.Validate()
	})
}

func BandFromRecords(rows []Record, mapping ColumnMapping) ([]BandData, error) {
	required := []types.ColumnNames{types.ColumnTime, types.ColumnUpper, types.ColumnMiddle, types.ColumnLower}
	return FromRecords(rows, mapping, required, func(r Row) (BandData, error) {
		t, err := r.Time()
		if err != nil {
			return BandData{}, err
		}
		vals, err := floats(r, types.ColumnUpper, types.ColumnMiddle, types.ColumnLower)
		if err != nil {
			return BandData{}, err
		}
		d, err := NewBandData(t, vals[0], vals[1], vals[2])
		if err != nil {
			return BandData{}, err
		}
		return *d, nil
	})
}

func RibbonFromRecords(rows []Record, mapping ColumnMapping) ([]RibbonData, error) {
	required := []types.ColumnNames{types.ColumnTime, types.ColumnUpper, types.ColumnLower}
	return FromRecords(rows, mapping, required, func(r Row) (RibbonData, error) {
		t, err := r.Time()
		if err != nil {
			return RibbonData{}, err
		}
		vals, err := floats(r, types.ColumnUpper, types.ColumnLower)
		if err != nil {
			return RibbonData{}, err
		}
		d, err := NewRibbonData(t, vals[0], vals[1])
		if err != nil {
			return RibbonData{}, err
		}
		return *d, nil
	})
}

func SignalFromRecords(rows []Record, mapping ColumnMapping) ([]SignalData, error) {
	return FromRecords(rows, mapping, []types.ColumnNames{types.ColumnTime, types.ColumnValue}, func(r Row) (SignalData, error) {
		t, err := r.Time()
		if err != nil {
			return SignalData{}, err
		}
		v, err := r.Int(types.ColumnValue)
		if err != nil {
			return SignalData{}, err
		}
		d, err := NewSignalData(t, v)
		if err != nil {
			return SignalData{}, err
		}
		d.Color = r.String(types.ColumnColor)
		return *d, d.Validate()
	})
}

func TrendFillFromRecords(rows []Record, mapping ColumnMapping) ([]TrendFillData, error) {
	required := []types.ColumnNames{types.ColumnTime, types.ColumnTrendLine, types.ColumnBaseLine, types.ColumnTrendDirection}
	return FromRecords(rows, mapping, required, func(r Row) (TrendFillData, error) {
		t, err := r.Time()
		if err != nil {
			return TrendFillData{}, err
		}
		vals, err := floats(r, types.ColumnTrendLine, types.ColumnBaseLine)
		if err != nil {
			return TrendFillData{}, err
		}
		dir, err := r.Int(types.ColumnTrendDirection)
		if err != nil {
			return TrendFillData{}, err
		}
		d, err := NewTrendFillData(t, vals[0], vals[1], dir)
		if err != nil {
			return TrendFillData{}, err
		}
		return *d, nil
	})
}

func timeAndValue(r Row) (any, float64, error) {
	t, err := r.Time()
	if err != nil {
		return nil, 0, err
	}
	v, err := r.Float(types.ColumnValue)
	if err != nil {
		return nil, 0, err
	}
	return t, v, nil
}

func ohlc(r Row) (t any, o, h, l, c float64, err error) {
	t, err = r.Time()
	if err != nil {
		return
	}
	vals, err := floats(r, types.ColumnOpen, types.ColumnHigh, types.ColumnLow, types.ColumnClose)
	if err != nil {
		return
	}
	return t, vals[0], vals[1], vals[2], vals[3], nil
}

func floats(r Row, cols ...types.ColumnNames) ([]float64, error) {
	out := make([]float64, len(cols))
	for i, col := range cols {
		f, err := r.Float(col)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
