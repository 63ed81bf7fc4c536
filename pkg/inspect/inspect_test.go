package inspect

import (
	"math"
	"testing"

	"github.com/matzehuels/roomscene/pkg/layout"
	"github.com/matzehuels/roomscene/pkg/room"
	"github.com/matzehuels/roomscene/pkg/sequence"
)

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if s.Mean != 2.5 || s.Min != 1 || s.Max != 4 || s.Median != 2.5 {
		t.Errorf("Summarize = %+v", s)
	}
	if math.Abs(s.StdDev-math.Sqrt(1.25)) > 1e-12 {
		t.Errorf("StdDev = %v, want population stddev %v", s.StdDev, math.Sqrt(1.25))
	}
	if _, err := Summarize(nil); err == nil {
		t.Error("Summarize(nil) = nil error")
	}
}

func TestAnalyzeRandom(t *testing.T) {
	l, err := layout.Random(layout.RandomConfig{
		Seed:       1,
		Count:      300,
		Catalog:    room.DefaultCatalog(),
		Palette:    room.DefaultPalette(),
		HalfExtent: 15,
	})
	if err != nil {
		t.Fatal(err)
	}
	r, err := Analyze(l)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.Objects != 300 || r.Variant != room.VariantRandom {
		t.Errorf("report header = %+v", r)
	}
	for name, s := range map[string]Summary{"x": r.X, "z": r.Z} {
		if s.Min < -15 || s.Max >= 15 {
			t.Errorf("%s range [%v, %v] outside extent", name, s.Min, s.Max)
		}
		if math.Abs(s.Mean) > 3 {
			t.Errorf("%s mean = %v, want near 0", name, s.Mean)
		}
	}
	sum := 0
	for _, c := range r.KindCounts {
		sum += c
	}
	if len(r.KindCounts) != 3 || sum != 300 {
		t.Errorf("KindCounts = %v", r.KindCounts)
	}
	sum = 0
	for _, c := range r.ColorCounts {
		sum += c
	}
	if len(r.ColorCounts) != 3 || sum != 300 {
		t.Errorf("ColorCounts = %v", r.ColorCounts)
	}
	if r.Nearest.Min < 0 || r.Nearest.Max <= 0 {
		t.Errorf("Nearest = %+v", r.Nearest)
	}
}

func TestAnalyzeStatic(t *testing.T) {
	l, err := layout.Static(room.DefaultFurniture(), room.Environment{})
	if err != nil {
		t.Fatal(err)
	}
	r, err := Analyze(l)
	if err != nil {
		t.Fatal(err)
	}
	if r.KindCounts != nil || r.ColorCounts != nil {
		t.Error("static report has draw counts")
	}
	// The coffee table sits on the area rug, the bed on the bedroom rug,
	// and the TV unit is close enough to the rug to touch it.
	if r.Overlaps < 2 {
		t.Errorf("Overlaps = %d, want at least 2", r.Overlaps)
	}
	if r.Nearest.Min != 0 {
		t.Errorf("Nearest.Min = %v, want 0 for stacked pieces", r.Nearest.Min)
	}
}

func TestAnalyzeSmall(t *testing.T) {
	r, err := Analyze(room.Layout{Variant: room.VariantStatic})
	if err != nil || r.Objects != 0 {
		t.Errorf("Analyze(empty) = %+v, %v", r, err)
	}

	one := room.Layout{Variant: room.VariantStatic, Furniture: room.DefaultFurniture()[:1]}
	r, err = Analyze(one)
	if err != nil {
		t.Fatal(err)
	}
	if r.Nearest != (Summary{}) || r.Overlaps != 0 {
		t.Errorf("single object report = %+v", r)
	}
}

func TestCheckUniformity(t *testing.T) {
	u, err := CheckUniformity(sequence.New(1), 10000, 10)
	if err != nil {
		t.Fatalf("CheckUniformity: %v", err)
	}
	total := 0
	for _, c := range u.Counts {
		total += c
	}
	if total != 10000 || u.Bins != 10 {
		t.Errorf("counts sum to %d over %d bins", total, u.Bins)
	}
	if u.PValue < 0 || u.PValue > 1 {
		t.Errorf("PValue = %v", u.PValue)
	}
	if !u.Uniform(0.0001) {
		t.Errorf("sine sequence rejected as uniform: chi2=%v p=%v", u.ChiSquare, u.PValue)
	}
}

type constSource float64

func (c constSource) Next() float64 { return float64(c) }

func TestCheckUniformityRejectsConstant(t *testing.T) {
	u, err := CheckUniformity(constSource(0.3), 1000, 10)
	if err != nil {
		t.Fatal(err)
	}
	if u.Uniform(0.05) {
		t.Errorf("constant source accepted: p=%v", u.PValue)
	}
}

func TestCheckUniformityErrors(t *testing.T) {
	if _, err := CheckUniformity(sequence.New(1), 100, 1); err == nil {
		t.Error("1 bin accepted")
	}
	if _, err := CheckUniformity(sequence.New(1), 10, 10); err == nil {
		t.Error("too few draws accepted")
	}
	if _, err := CheckUniformity(constSource(1.5), 100, 10); err == nil {
		t.Error("out-of-range draw accepted")
	}
}
