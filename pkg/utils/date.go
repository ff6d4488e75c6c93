package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var rangeUnits = map[byte]time.Duration{
	'm': 30 * 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
	'd': 24 * time.Hour,
	'y': 365 * 24 * time.Hour,
}

// ParseRange converts a lookback such as "5d", "2w", "3m" or "1y" into a duration.
// "m" means months here, as in market data ranges.
func ParseRange(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid range %q", s)
	}
	unit, ok := rangeUnits[s[len(s)-1]]
	if !ok {
		return 0, fmt.Errorf("invalid range unit in %q", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid range count in %q", s)
	}
	return time.Duration(n) * unit, nil
}

var intervalUnits = []struct {
	suffix string
	unit   time.Duration
}{
	{"mo", 30 * 24 * time.Hour},
	{"wk", 7 * 24 * time.Hour},
	{"m", time.Minute},
	{"h", time.Hour},
	{"d", 24 * time.Hour},
	{"w", 7 * 24 * time.Hour},
}

// ParseInterval converts a bar interval such as "15m", "1h", "1d", "1wk" or "1mo" into a duration.
func ParseInterval(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, u := range intervalUnits {
		count, ok := strings.CutSuffix(s, u.suffix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(count)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid interval count in %q", s)
		}
		return time.Duration(n) * u.unit, nil
	}
	return 0, fmt.Errorf("invalid interval unit in %q", s)
}
