// Package compiler implements SamplePackage assembly and the TestCompiler
// traverser (spec.md §4.4), grounded on
// original_source/pymeter/engine/traverser.py's TestCompiler and
// original_source/pymeter/groups/package.py's SamplePackage.
package compiler

import "github.com/blackcoderx/surge/internal/core"

// SamplePackage is the precomputed per-sampler (or per-transaction) context:
// configs merged into the sampler, listeners to notify, controllers on the
// ancestor path, pre/post-processors, assertions, and timers, plus the
// sampler itself (spec.md §3).
type SamplePackage struct {
	Sampler core.Sampler

	Configs              []core.Config
	SampleListeners      []core.SampleListener
	TransactionListeners []core.TransactionListener
	Controllers          []core.Controller
	PreProcessors        []core.PreProcessor
	PostProcessors       []core.PostProcessor
	Assertions           []core.Assertion
	Timers               []core.Timer

	running bool
}

// SetRunningVersion broadcasts running into the package's configs and its
// sampler, where they track running-version state. Listeners, controllers,
// processors, assertions and timers are not touched.
func (p *SamplePackage) SetRunningVersion(running bool) {
	p.running = running
	for _, c := range p.Configs {
		if rv, ok := c.(runningVersioned); ok {
			rv.SetRunningVersion(running)
		}
	}
	if rv, ok := p.Sampler.(runningVersioned); ok {
		rv.SetRunningVersion(running)
	}
}

// RecoverRunningVersion broadcasts recovery into the package's configs and
// its sampler; the other members are not touched.
func (p *SamplePackage) RecoverRunningVersion() {
	for _, c := range p.Configs {
		if rv, ok := c.(runningVersioned); ok {
			rv.RecoverRunningVersion()
		}
	}
	if rv, ok := p.Sampler.(runningVersioned); ok {
		rv.RecoverRunningVersion()
	}
}

type runningVersioned interface {
	SetRunningVersion(bool)
	RecoverRunningVersion()
}
