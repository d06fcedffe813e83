package scoring

import (
	"fmt"
	"math"
	"strconv"

	"github.com/teranos/auragraph/internal/util"
)

// Normalize maps v from [lo, hi] to [0, 1]. A zero-width or non-finite range
// maps to 0.5.
func Normalize(v, lo, hi float64) float64 {
	width := hi - lo
	if width == 0 || math.IsNaN(width) || math.IsInf(width, 0) || math.IsNaN(v) {
		return 0.5
	}
	return util.ClampFloat((v-lo)/width, 0, 1)
}

// HueColor ramps from red (0) to green (range) over 120 degrees of hue.
func HueColor(value, rangeAttributes float64) string {
	hue := util.ClampFloat(ratio(value, rangeAttributes), 0, 1) * 120
	return fmt.Sprintf("hsl(%s, 100%%, 50%%)", formatFloat(hue))
}

// PersonColor ramps from yellow at lo to red at hi.
func PersonColor(value, lo, hi, opacity float64) string {
	g := 200 - 200*Normalize(value, lo, hi)
	return fmt.Sprintf("rgba(255, %d, 0, %s)", channel(g), formatFloat(opacity))
}

// AttributeColor ramps a channel from 0 at lo to 255 at hi. Focal attributes
// go from blue to magenta, others from black to white.
func AttributeColor(value, lo, hi float64, focal bool, opacity float64) string {
	c := channel(255 * Normalize(value, lo, hi))
	if focal {
		return fmt.Sprintf("rgba(%d, 0, 255, %s)", c, formatFloat(opacity))
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c, c, c, formatFloat(opacity))
}

// RGBA formats an "r, g, b" triple with an opacity.
func RGBA(rgb string, opacity float64) string {
	return fmt.Sprintf("rgba(%s, %s)", rgb, formatFloat(opacity))
}

func channel(v float64) int {
	return int(math.Round(util.ClampFloat(v, 0, 255)))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(util.ClampFloat(v, 0, math.MaxFloat64), 'f', -1, 64)
}
