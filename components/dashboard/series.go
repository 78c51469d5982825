package dashboard

import (
	"math"
	"math/rand"
)

// SeriesShape parameterizes a synthetic chart series: a base level, a noise
// amplitude and the unit that drives rounding.
type SeriesShape struct {
	Base       float64
	Volatility float64
	Unit       MetricUnit
}

// GenerateSeries produces n points around the base level with a slow
// sinusoidal trend, uniform noise and a weekly rhythm (indices falling on
// Saturday/Sunday positions dip, weekdays get a small lift). Values never go
// negative. Percent series keep one decimal, everything else rounds to whole
// numbers.
func GenerateSeries(n int, shape SeriesShape, rng *rand.Rand) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		trend := math.Sin(float64(i)/float64(n)*2*math.Pi) * 0.1
		noise := (rng.Float64() - 0.5) * shape.Volatility
		weekly := 0.05
		if i%7 == 0 || i%7 == 6 {
			weekly = -0.1
		}
		v := shape.Base * (1 + trend + noise + weekly)
		if v < 0 {
			v = 0
		}
		if shape.Unit == UnitPercent {
			out[i] = math.Round(v*10) / 10
		} else {
			out[i] = math.Round(v)
		}
	}
	return out
}
