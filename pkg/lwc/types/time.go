package types

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Time is a UNIX timestamp in seconds, the unit lightweight-charts expects.
type Time int64

func (t Time) FrontendValue() any { return int64(t) }

func (t Time) Time() time.Time { return time.Unix(int64(t), 0).UTC() }

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
}

// NormalizeTime converts a supported time value into UNIX seconds.
// Numbers are taken as seconds; date strings without a zone are read as UTC.
func NormalizeTime(v any) (int64, error) {
	switch t := v.(type) {
	case nil:
		return 0, TimeError("time", v)
	case Time:
		return int64(t), nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return 0, TimeError("time", v)
		}
		return int64(t), nil
	case float32:
		return normalizeFloatTime(float64(t))
	case float64:
		return normalizeFloatTime(t)
	case time.Time:
		if t.IsZero() {
			return 0, TimeError("time", v)
		}
		return t.Unix(), nil
	case *time.Time:
		if t == nil {
			return 0, TimeError("time", v)
		}
		return NormalizeTime(*t)
	case string:
		return parseTimeString(t)
	}
	return 0, TimeError("time", v)
}

// MustTime is NormalizeTime for literals in tests and examples.
func MustTime(v any) Time {
	t, err := NormalizeTime(v)
	if err != nil {
		panic(err)
	}
	return Time(t)
}

// TimeFromUnixMilli converts exchange timestamps in milliseconds into seconds.
func TimeFromUnixMilli(ms int64) int64 {
	return ms / 1000
}

// maxFloatTime is 2^63, the first float64 that no longer fits an int64.
const maxFloatTime = float64(1 << 63)

func normalizeFloatTime(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= maxFloatTime {
		return 0, TimeError("time", f)
	}
	return int64(f), nil
}

func parseTimeString(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, TimeError("time", s)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return normalizeFloatTime(f)
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, TimeError("time", s)
}

// NormalizeFloat replaces NaN and infinities with 0 so the value survives JSON encoding.
func NormalizeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// UnmarshalJSON accepts a number of seconds or any string NormalizeTime understands.
func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return TimeError("time", nil)
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return TimeError("time", s)
		}
		n, err := NormalizeTime(unquoted)
		if err != nil {
			return err
		}
		*t = Time(n)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return TimeError("time", s)
	}
	n, err := normalizeFloatTime(f)
	if err != nil {
		return err
	}
	*t = Time(n)
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(t), 10)), nil
}
