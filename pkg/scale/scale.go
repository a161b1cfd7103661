// Package scale picks the value range of a choropleth colour scale.
package scale

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/dtnitsch/cohortviz/models"
)

const (
	StrategyFixed    = "fixed"
	StrategyQuantile = "quantile"
)

// Bounds returns the colour scale range for values.
// With no values the range is [0, 1]. vmax never drops below vmin.
func Bounds(values []float64, cfg models.ScaleConfig) (vmin, vmax float64, err error) {
	if len(values) == 0 {
		return 0, 1, nil
	}
	vmin = floats.Min(values)

	switch cfg.Strategy {
	case StrategyFixed:
		vmax = cfg.Max
	case StrategyQuantile, "":
		q := cfg.Quantile
		if q <= 0 || q > 1 {
			q = 0.95
		}
		shrink := cfg.Shrink
		if shrink <= 0 {
			shrink = 1
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		vmax = math.Max(cfg.Floor, Quantile(sorted, q)*shrink)
	default:
		return 0, 0, fmt.Errorf("unknown scale strategy %q", cfg.Strategy)
	}

	// A colour map needs a non-empty span.
	if vmax <= vmin {
		vmax = vmin + 1
	}
	return vmin, vmax, nil
}

// Quantile interpolates linearly between the two closest ranks of sorted,
// placing q=0 on the first value and q=1 on the last.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}
