package types

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	hexColorRe  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbColorRe  = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
	rgbaColorRe = regexp.MustCompile(`^rgba\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*([0-9]*\.?[0-9]+)\s*\)$`)
)

var namedColors = map[string]struct{}{
	"transparent": {}, "black": {}, "white": {}, "red": {}, "green": {}, "blue": {}, "yellow": {},
	"cyan": {}, "magenta": {}, "gray": {}, "grey": {}, "orange": {}, "purple": {}, "brown": {},
	"pink": {}, "lime": {}, "navy": {}, "teal": {}, "silver": {}, "gold": {}, "maroon": {},
	"olive": {}, "aqua": {}, "fuchsia": {}, "indigo": {}, "violet": {}, "coral": {}, "salmon": {},
	"khaki": {}, "crimson": {}, "tomato": {}, "turquoise": {}, "tan": {}, "beige": {}, "ivory": {},
	"lavender": {}, "orchid": {}, "plum": {}, "chocolate": {}, "darkgreen": {}, "darkred": {},
	"darkblue": {}, "darkgray": {}, "darkgrey": {}, "lightgray": {}, "lightgrey": {}, "lightblue": {},
	"lightgreen": {}, "steelblue": {}, "skyblue": {}, "slategray": {}, "dodgerblue": {},
	"forestgreen": {}, "firebrick": {}, "seagreen": {}, "royalblue": {}, "goldenrod": {},
}

// IsValidColor accepts hex, rgb(), rgba() and CSS named colors. The empty string is rejected.
func IsValidColor(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if hexColorRe.MatchString(s) {
		return true
	}
	if m := rgbColorRe.FindStringSubmatch(s); m != nil {
		return channelsInRange(m[1:4])
	}
	if m := rgbaColorRe.FindStringSubmatch(s); m != nil {
		if !channelsInRange(m[1:4]) {
			return false
		}
		alpha, err := strconv.ParseFloat(m[4], 64)
		return err == nil && alpha >= 0 && alpha <= 1
	}
	_, ok := namedColors[strings.ToLower(s)]
	return ok
}

func channelsInRange(channels []string) bool {
	for _, c := range channels {
		n, err := strconv.Atoi(c)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}
