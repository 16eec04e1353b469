// Package timers implements the Timer capability (spec.md §4.6's "sum timer
// delays and sleep once" step), grounded on JMeter's ConstantTimer and
// GaussianRandomTimer (original_source/_INDEX.md lists no single Go
// equivalent in the teacher pack, so these are built directly from
// SPEC_FULL.md §4's supplemented-features list).
package timers

import (
	"math/rand"

	"github.com/blackcoderx/surge/internal/element"
)

// ConstantTimer always yields the same delay.
type ConstantTimer struct {
	*element.TestElement

	DelayMS int64
}

func NewConstantTimer(name string, delayMS int64) *ConstantTimer {
	return &ConstantTimer{TestElement: element.NewTestElement(name), DelayMS: delayMS}
}

func (t *ConstantTimer) ComponentType() string      { return "constantTimer" }
func (t *ConstantTimer) Elem() *element.TestElement { return t.TestElement }
func (t *ConstantTimer) Delay() int64               { return t.DelayMS }

// GaussianRandomTimer yields constantDelayMS plus a normally-distributed
// offset with the given standard deviation, floored at zero, mirroring
// JMeter's GaussianRandomTimer. It draws from the package-level math/rand
// source (safe for concurrent use by many execution units) rather than a
// private *rand.Rand, since timers are not cloned per-thread.
type GaussianRandomTimer struct {
	*element.TestElement

	DeviationMS     float64
	ConstantDelayMS int64
}

func NewGaussianRandomTimer(name string, deviationMS float64, constantDelayMS int64) *GaussianRandomTimer {
	return &GaussianRandomTimer{
		TestElement:     element.NewTestElement(name),
		DeviationMS:     deviationMS,
		ConstantDelayMS: constantDelayMS,
	}
}

func (t *GaussianRandomTimer) ComponentType() string      { return "gaussianRandomTimer" }
func (t *GaussianRandomTimer) Elem() *element.TestElement { return t.TestElement }

func (t *GaussianRandomTimer) Delay() int64 {
	offset := rand.NormFloat64() * t.DeviationMS
	d := float64(t.ConstantDelayMS) + offset
	if d < 0 {
		return 0
	}
	return int64(d)
}
