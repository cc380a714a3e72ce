package analyzer

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// round2 rounds half away from zero to two decimal places.
// All percentages in the report use this rounding.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// percent returns part/total*100 rounded to two decimals.
// A zero total yields zero by convention rather than dividing by zero.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

// ptr returns a pointer to v. Report blocks use nil to mean
// "not computed", so computed values are always passed through here.
func ptr(v float64) *float64 { return &v }

// intPtr returns a pointer to v.
func intPtr(v int) *int { return &v }

// strPtr returns a pointer to s.
func strPtr(s string) *string { return &s }

// sortedCopy returns an ascending copy of xs.
func sortedCopy(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	sort.Float64s(out)
	return out
}

// quantile estimates the p-quantile of sorted (ascending) data using
// linear interpolation between order statistics: rank = p*(n-1),
// interpolated between the adjacent samples. This matches the default
// percentile method of mainstream dataframe libraries, so small-sample
// outlier fences line up with what data scientists expect.
func quantile(sorted []float64, p float64) float64 {
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// sampleStd returns the sample standard deviation (denominator n-1).
// The second return value is false for fewer than two observations.
func sampleStd(xs []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	sd, err := stats.StandardDeviationSample(xs)
	if err != nil {
		return 0, false
	}
	return sd, true
}

// sampleVariance returns the sample variance (denominator n-1).
// The second return value is false for fewer than two observations.
func sampleVariance(xs []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	v, err := stats.SampleVariance(xs)
	if err != nil {
		return 0, false
	}
	return v, true
}

// skewness returns the bias-corrected sample skewness
// G1 = n/((n-1)(n-2)) * sum(((x-mean)/s)^3) with s the sample standard
// deviation. Nil when fewer than three observations exist or the data
// has zero variance, where the standardized third moment is undefined.
//
// The montanaflynn library exposes only population moments, so the
// correction is applied here explicitly.
func skewness(xs []float64, mean, std float64) *float64 {
	n := float64(len(xs))
	if len(xs) < 3 || std == 0 {
		return nil
	}
	var sum float64
	for _, x := range xs {
		d := (x - mean) / std
		sum += d * d * d
	}
	return ptr(n / ((n - 1) * (n - 2)) * sum)
}

// kurtosis returns the bias-corrected sample excess kurtosis
// G2 = n(n+1)/((n-1)(n-2)(n-3)) * sum(((x-mean)/s)^4)
//   - 3(n-1)^2/((n-2)(n-3)).
//
// Nil when fewer than four observations exist or the data has zero
// variance.
func kurtosis(xs []float64, mean, std float64) *float64 {
	n := float64(len(xs))
	if len(xs) < 4 || std == 0 {
		return nil
	}
	var sum float64
	for _, x := range xs {
		d := (x - mean) / std
		sum += d * d * d * d
	}
	g2 := n*(n+1)/((n-1)*(n-2)*(n-3))*sum - 3*(n-1)*(n-1)/((n-2)*(n-3))
	return ptr(g2)
}
