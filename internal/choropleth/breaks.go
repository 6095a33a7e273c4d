package choropleth

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// EqualInterval returns up to n ascending breaks starting just below the
// minimum value and spaced (max-min)/n apart. Constant data yields a single
// break.
func EqualInterval(values []float64, n int) ([]float64, error) {
	vs, err := finite(values, n)
	if err != nil {
		return nil, err
	}
	lo, hi := floats.Min(vs), floats.Max(vs)
	step := (hi - lo) / float64(n)
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return compact(out, lo, hi), nil
}

// Quantile returns up to n ascending breaks at the k/n quantiles,
// k = 0..n-1, interpolated linearly. Tied quantiles collapse into one break.
func Quantile(values []float64, n int) ([]float64, error) {
	vs, err := finite(values, n)
	if err != nil {
		return nil, err
	}
	sort.Float64s(vs)
	out := make([]float64, n)
	for k := range out {
		out[k] = stat.Quantile(float64(k)/float64(n), stat.LinInterp, vs, nil)
	}
	return compact(out, vs[0], vs[len(vs)-1]), nil
}

// compact drops breaks that no value can exceed alone: repeats and breaks at
// or above hi. The first break is moved just below lo so the minimum is
// classified.
func compact(breaks []float64, lo, hi float64) []float64 {
	out := []float64{math.Nextafter(lo, math.Inf(-1))}
	for _, b := range breaks[1:] {
		if b > out[len(out)-1] && b < hi {
			out = append(out, b)
		}
	}
	return out
}

func finite(values []float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("break count must be positive, got %d", n)
	}
	vs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			vs = append(vs, v)
		}
	}
	if len(vs) == 0 {
		return nil, ErrNoValues
	}
	return vs, nil
}
