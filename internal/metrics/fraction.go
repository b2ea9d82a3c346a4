package metrics

import (
	"github.com/san-kum/splicesim/internal/dynamo"
	"github.com/san-kum/splicesim/internal/kinetics"
)

// FinalFraction is the fraction unspliced at the last observed point.
type FinalFraction struct {
	name  string
	value float64
}

func NewFinalFraction() *FinalFraction {
	return &FinalFraction{name: "final_fraction"}
}

func (f *FinalFraction) Name() string { return f.name }

func (f *FinalFraction) Observe(x dynamo.State, t float64) {
	if len(x) < 2 {
		return
	}
	f.value = kinetics.FractionUnspliced(x[0], x[1])
}

func (f *FinalFraction) Value() float64 { return f.value }

func (f *FinalFraction) Reset() { f.value = 0 }

// PeakFraction is the largest fraction unspliced seen. With P0 = M0 = 0 the
// fraction starts near 1 right after labeling and relaxes downwards.
type PeakFraction struct {
	name    string
	peak    float64
	samples int
}

func NewPeakFraction() *PeakFraction {
	return &PeakFraction{name: "peak_fraction"}
}

func (p *PeakFraction) Name() string { return p.name }

func (p *PeakFraction) Observe(x dynamo.State, t float64) {
	if len(x) < 2 {
		return
	}
	f := kinetics.FractionUnspliced(x[0], x[1])
	if p.samples == 0 || f > p.peak {
		p.peak = f
	}
	p.samples++
}

func (p *PeakFraction) Value() float64 { return p.peak }

func (p *PeakFraction) Reset() {
	p.peak = 0
	p.samples = 0
}
