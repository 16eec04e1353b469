package element

import "github.com/blackcoderx/surge/internal/funcs"

// Evaluator is the subset of funcs.CompoundVariable that FunctionProperty
// needs. internal/funcs has no dependency on internal/element, so this
// package can safely import it instead of structurally duplicating its
// EvalContext (a duplicate named interface type would not actually satisfy
// funcs.CompoundVariable.Execute's parameter type).
type Evaluator interface {
	RawText() string
	Execute(ctx EvalContext) (string, error)
}

// EvalContext is an alias for funcs.EvalContext: a *runtime.ThreadContext
// (or any adapter) satisfies both under one identical type.
type EvalContext = funcs.EvalContext

// IterationSource reports the current outer-loop iteration number, used to
// decide whether a FunctionProperty's cached evaluation is stale.
type IterationSource interface {
	CurrentIteration() int
}

// FunctionProperty holds a compiled compound variable; see spec.md §3 and
// §4.1-6. Evaluation is lazy and cached per the worker's iteration counter,
// mirroring pymeter.elements.property.FunctionProperty.
type FunctionProperty struct {
	name         string
	fn           Evaluator
	running      bool
	cacheValue   string
	hasCache     bool
	testIteration int
}

func NewFunctionProperty(name string, fn Evaluator) *FunctionProperty {
	return &FunctionProperty{name: name, fn: fn, testIteration: -1}
}

func (p *FunctionProperty) Name() string { return p.name }

// GetString returns the raw source text when not in running_version,
// matching the Property interface's no-argument contract. Callers that
// need iteration-aware re-evaluation must use GetStringForIteration via the
// DynamicProperty interface below.
func (p *FunctionProperty) GetString() string {
	if p.fn == nil {
		return ""
	}
	return p.fn.RawText()
}

func (p *FunctionProperty) GetInt() int       { return 0 }
func (p *FunctionProperty) GetFloat() float64 { return 0 }
func (p *FunctionProperty) GetBool() bool     { return p.fn != nil }
func (p *FunctionProperty) GetObject() any    { return nil }

func (p *FunctionProperty) RunningVersion() bool       { return p.running }
func (p *FunctionProperty) SetRunningVersion(r bool)   { p.running = r }
func (p *FunctionProperty) RecoverRunningVersion(*TestElement) {
	p.hasCache = false
	p.cacheValue = ""
	p.testIteration = -1
}

func (p *FunctionProperty) Clone() Property {
	return &FunctionProperty{name: p.name, fn: p.fn, testIteration: -1}
}

// DynamicProperty is implemented by properties whose string value depends
// on the current iteration (today, only FunctionProperty).
type DynamicProperty interface {
	Property
	GetStringForIteration(ctx EvalContext, iteration int) (string, error)
}

// GetStringForIteration implements the spec.md §4.2 re-evaluation rule:
// outside running_version, return the raw source; inside, re-evaluate when
// the iteration has advanced past the cached one or nothing is cached yet.
func (p *FunctionProperty) GetStringForIteration(ctx EvalContext, iteration int) (string, error) {
	if !p.running {
		return p.GetString(), nil
	}
	if iteration < p.testIteration {
		p.testIteration = -1
	}
	if iteration > p.testIteration || !p.hasCache {
		p.testIteration = iteration
		v, err := p.fn.Execute(ctx)
		if err != nil {
			return "", err
		}
		p.cacheValue = v
		p.hasCache = true
	}
	return p.cacheValue, nil
}
