// Package uniformity provides goodness-of-fit tests for checking that a
// random stream looks uniform and independent.
//
// All tests run at significance level Alpha.
package uniformity

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Alpha is the significance level used by every test.
const Alpha = 0.05

// Result is the outcome of a single test.
type Result struct {
	// Name identifies the test.
	Name string

	// Statistic is the test statistic computed from the samples.
	Statistic float64

	// Critical is the rejection threshold for Statistic at level Alpha.
	Critical float64

	// PValue is the probability of a statistic at least this extreme under
	// the uniform hypothesis.
	PValue float64
}

// Pass reports whether the uniform hypothesis is not rejected.
func (r Result) Pass() bool {
	return r.Statistic < r.Critical
}

// ChiSquare tests observed bin counts against equal expected counts.
// It needs at least two bins.
func ChiSquare(counts []float64) Result {
	res := Result{Name: "chi-square"}
	k := len(counts)
	if k < 2 {
		return res
	}

	var total float64
	for _, c := range counts {
		total += c
	}
	expected := make([]float64, k)
	for i := range expected {
		expected[i] = total / float64(k)
	}

	dist := distuv.ChiSquared{K: float64(k - 1)}
	res.Statistic = stat.ChiSquare(counts, expected)
	res.Critical = dist.Quantile(1 - Alpha)
	res.PValue = dist.Survival(res.Statistic)
	return res
}

// KolmogorovSmirnov tests samples against the uniform distribution on
// [0, 1) using the one-sample D statistic and its asymptotic distribution.
func KolmogorovSmirnov(samples []float64) Result {
	res := Result{Name: "kolmogorov-smirnov"}
	n := len(samples)
	if n == 0 {
		return res
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	fn := float64(n)
	var d float64
	for i, x := range sorted {
		cdf := distuv.UnitUniform.CDF(x)
		d = math.Max(d, math.Max(float64(i+1)/fn-cdf, cdf-float64(i)/fn))
	}

	sqrtN := math.Sqrt(fn)
	res.Statistic = d
	res.Critical = math.Sqrt(-0.5*math.Log(Alpha/2)) / sqrtN
	res.PValue = kolmogorovSurvival(d * sqrtN)
	return res
}

// kolmogorovSurvival is P(K > lambda) for the Kolmogorov distribution.
func kolmogorovSurvival(lambda float64) float64 {
	if lambda < 0.2 {
		return 1
	}
	var sum float64
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := sign * math.Exp(-2*float64(k*k)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}
	return math.Min(1, math.Max(0, 2*sum))
}

// Binomial is an exact two-sided test that successes out of trials is
// consistent with p = 0.5. Statistic is the distance of successes from
// trials/2, Critical is the smallest distance rejected at level Alpha.
func Binomial(successes, trials int) Result {
	res := Result{Name: "binomial"}
	if trials <= 0 {
		return res
	}

	dist := distuv.Binomial{N: float64(trials), P: 0.5}
	half := float64(trials) / 2
	res.Statistic = math.Abs(float64(successes) - half)
	res.PValue = binomialTwoSided(dist, res.Statistic, half)

	res.Critical = math.Inf(1)
	for d := math.Ceil(half) - half; d <= half; d++ {
		if binomialTwoSided(dist, d, half) <= Alpha {
			res.Critical = d
			break
		}
	}
	return res
}

// binomialTwoSided is P(|K - half| >= d) for the symmetric binomial.
func binomialTwoSided(dist distuv.Binomial, d, half float64) float64 {
	if d == 0 {
		return 1
	}
	// P(K <= half-d) + P(K >= half+d), equal tails when p = 0.5.
	tail := dist.CDF(half - d)
	return math.Min(1, 2*tail)
}

// SerialCorrelation tests that consecutive samples are uncorrelated, using
// the lag-1 Pearson coefficient and its normal approximation.
func SerialCorrelation(samples []float64) Result {
	res := Result{Name: "serial-correlation"}
	n := len(samples)
	if n < 3 {
		return res
	}

	r := stat.Correlation(samples[:n-1], samples[1:], nil)
	sqrtN := math.Sqrt(float64(n - 1))
	res.Statistic = math.Abs(r)
	res.Critical = distuv.UnitNormal.Quantile(1-Alpha/2) / sqrtN
	res.PValue = 2 * distuv.UnitNormal.Survival(res.Statistic*sqrtN)
	return res
}
