// Package stats provides an online mean/variance accumulator for burn-time
// samples. Welford's update keeps the running mean numerically stable over
// large sample counts, and accumulators merge exactly (Chan et al. pairwise
// combination), so parallel workers can each keep a private accumulator and
// reduce after the pool drains.
package stats

import "math"

// Accumulator tracks count, mean, and sum of squared deviations.
// The zero value is ready to use.
type Accumulator struct {
	n    int
	mean float64
	m2   float64
}

// Add folds one sample into the accumulator.
func (a *Accumulator) Add(x float64) {
	a.n++
	delta := x - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (x - a.mean)
}

// Merge folds another accumulator into this one. The result is identical
// (up to floating-point rounding) to having Added both sample sets into a
// single accumulator.
func (a *Accumulator) Merge(b Accumulator) {
	if b.n == 0 {
		return
	}
	if a.n == 0 {
		*a = b
		return
	}
	n := float64(a.n + b.n)
	delta := b.mean - a.mean
	a.mean += delta * float64(b.n) / n
	a.m2 += b.m2 + delta*delta*float64(a.n)*float64(b.n)/n
	a.n += b.n
}

// N returns the number of samples accumulated.
func (a *Accumulator) N() int { return a.n }

// Mean returns the sample mean, or 0 if no samples were added.
func (a *Accumulator) Mean() float64 { return a.mean }

// Variance returns the unbiased sample variance, or 0 for fewer than two
// samples.
func (a *Accumulator) Variance() float64 {
	if a.n < 2 {
		return 0
	}
	return a.m2 / float64(a.n-1)
}

// StdDev returns the sample standard deviation.
func (a *Accumulator) StdDev() float64 { return math.Sqrt(a.Variance()) }

// StdErr returns the standard error of the mean, or 0 if no samples were
// added.
func (a *Accumulator) StdErr() float64 {
	if a.n == 0 {
		return 0
	}
	return a.StdDev() / math.Sqrt(float64(a.n))
}
