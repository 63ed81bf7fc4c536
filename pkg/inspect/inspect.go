// Package inspect measures how objects are spread across a layout and how
// uniform a sequence source is.
//
// [Analyze] summarizes a layout: per-axis position statistics, how often
// each catalog kind and palette color was drawn, nearest-neighbor distances
// and the number of overlapping footprints. [CheckUniformity] bins draws
// from a [sequence.Source] and runs a chi-square goodness-of-fit test
// against the uniform distribution.
package inspect

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/matzehuels/roomscene/pkg/room"
	"github.com/matzehuels/roomscene/pkg/sequence"
)

// Summary holds descriptive statistics of one sample.
type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
	P95    float64
}

// Summarize computes a Summary. It returns an error for an empty sample.
func Summarize(data []float64) (Summary, error) {
	var s Summary
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return Summary{}, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Summary{}, err
	}
	if s.P95, err = stats.Percentile(data, 95); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// Report describes a layout's spread.
type Report struct {
	Variant room.Variant
	Objects int

	X, Z Summary
	// Nearest is the distribution of center distances to the nearest other
	// object. It is zero when the layout has fewer than two objects.
	Nearest Summary

	// KindCounts and ColorCounts are indexed like the catalog and palette.
	// Both are nil for static layouts.
	KindCounts  []int
	ColorCounts []int

	// Overlaps counts object pairs whose footprint circles intersect.
	Overlaps int
}

// Analyze builds a Report for l. Empty layouts yield a report with only
// Variant and Objects set.
func Analyze(l room.Layout) (*Report, error) {
	instances, err := l.Instances()
	if err != nil {
		return nil, err
	}
	r := &Report{Variant: l.Variant, Objects: len(instances)}
	if len(instances) == 0 {
		return r, nil
	}

	xs := make([]float64, len(instances))
	zs := make([]float64, len(instances))
	for i, inst := range instances {
		xs[i], zs[i] = inst.Position.X(), inst.Position.Z()
	}
	if r.X, err = Summarize(xs); err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	if r.Z, err = Summarize(zs); err != nil {
		return nil, fmt.Errorf("z: %w", err)
	}

	if len(instances) > 1 {
		nearest, overlaps := neighbors(instances)
		r.Overlaps = overlaps
		if r.Nearest, err = Summarize(nearest); err != nil {
			return nil, fmt.Errorf("nearest: %w", err)
		}
	}

	if l.IsRandom() {
		r.KindCounts = make([]int, len(l.Catalog))
		r.ColorCounts = make([]int, len(l.Palette))
		for _, o := range l.Objects {
			r.KindCounts[o.Kind]++
			r.ColorCounts[o.Color]++
		}
	}
	return r, nil
}

// neighbors returns each instance's nearest-neighbor distance and the
// number of pairs whose bounding circles intersect. O(n²), which is fine
// for room-sized layouts.
func neighbors(instances []room.Instance) ([]float64, int) {
	nearest := make([]float64, len(instances))
	for i := range nearest {
		nearest[i] = math.Inf(1)
	}
	overlaps := 0
	for i := range instances {
		a := instances[i]
		for j := i + 1; j < len(instances); j++ {
			b := instances[j]
			d := math.Hypot(a.Position.X()-b.Position.X(), a.Position.Z()-b.Position.Z())
			nearest[i] = min(nearest[i], d)
			nearest[j] = min(nearest[j], d)
			if d < radius(a)+radius(b) {
				overlaps++
			}
		}
	}
	return nearest, overlaps
}

func radius(inst room.Instance) float64 {
	return max(inst.Size.X(), inst.Size.Z()) / 2
}

// Uniformity is the result of a chi-square uniformity test.
type Uniformity struct {
	Draws     int
	Bins      int
	Counts    []int
	ChiSquare float64
	// PValue is the probability of a statistic at least this large under
	// the uniform hypothesis.
	PValue float64
}

// Uniform reports whether the uniform hypothesis survives at level alpha.
func (u *Uniformity) Uniform(alpha float64) bool {
	return u.PValue >= alpha
}

// CheckUniformity draws n values from src into bins equal-width bins and
// tests them against the uniform distribution.
func CheckUniformity(src sequence.Source, n, bins int) (*Uniformity, error) {
	if bins < 2 {
		return nil, fmt.Errorf("need at least 2 bins, got %d", bins)
	}
	if n < 5*bins {
		return nil, fmt.Errorf("need at least %d draws for %d bins, got %d", 5*bins, bins, n)
	}

	counts := make([]int, bins)
	for range n {
		v := src.Next()
		if v < 0 || v >= 1 || math.IsNaN(v) {
			return nil, fmt.Errorf("source produced %v outside [0,1)", v)
		}
		counts[min(int(v*float64(bins)), bins-1)]++
	}

	expected := float64(n) / float64(bins)
	chi2 := 0.0
	for _, c := range counts {
		diff := float64(c) - expected
		chi2 += diff * diff / expected
	}
	dist := distuv.ChiSquared{K: float64(bins - 1)}

	return &Uniformity{
		Draws:     n,
		Bins:      bins,
		Counts:    counts,
		ChiSquare: chi2,
		PValue:    dist.Survival(chi2),
	}, nil
}
