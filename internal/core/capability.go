// Package core declares the capability interfaces that the compiler,
// controllers and worker runtime dispatch on, per spec.md §9's guidance to
// replace the source's multiple-inheritance composition ("is-a TestElement
// and a SampleListener and a NoThreadClone") with Go capability interfaces.
// Elements implement whichever of these apply; type assertions at runtime
// stand in for the original's isinstance checks.
package core

import (
	"context"

	"github.com/blackcoderx/surge/internal/element"
	"github.com/blackcoderx/surge/internal/result"
)

// Node is anything that can sit in the compiled tree: a *element.TestElement
// embedded in a concrete controller, sampler, config, processor, assertion,
// timer or listener.
type Node any

// Sampler performs an atomic action and produces a SampleResult, spec.md
// §1's "out of scope, specified only by the interface the core consumes".
type Sampler interface {
	Sample(ctx context.Context) *result.SampleResult
}

// Controller orchestrates the order its descendant samplers run in, per
// spec.md §4.5.
type Controller interface {
	Next() (Sampler, error)
	Initialize()
	IsDone() bool
	SetDone(bool)
	TriggerEndOfLoop()
	AddIterationListener(l LoopIterationListener)
	RemoveIterationListener(l LoopIterationListener)
}

// IteratingController is a Controller that additionally supports the
// break/restart directives used by error-policy dispatch (spec.md §4.6).
type IteratingController interface {
	Controller
	BreakLoop()
	StartNextLoop()
}

// Config is a test element merged into a sampler's (or transaction's)
// property set at compile time (spec.md §4.4).
type Config interface {
	Merge(into *element.TestElement)
}

// NoConfigMerge marks a config excluded from the default per-sampler merge
// step (spec.md §4.4, §6 listener capabilities).
type NoConfigMerge interface {
	NoConfigMerge()
}

// TransactionConfig marks a config that is excluded from ordinary
// per-sampler packages and merged only into transaction-sampler packages.
type TransactionConfig interface {
	TransactionConfig()
}

// PreProcessor runs before a sampler invocation.
type PreProcessor interface {
	Process(ctx context.Context) error
}

// PostProcessor runs after a sampler invocation, typically extracting
// values from the response into variables.
type PostProcessor interface {
	ProcessResult(ctx context.Context, res *result.SampleResult) error
}

// Assertion evaluates a SampleResult and reports a pass/fail/error verdict.
type Assertion interface {
	Assert(ctx context.Context, res *result.SampleResult) result.AssertionResult
}

// Timer yields the delay a worker should sleep before sampling.
type Timer interface {
	Delay() int64 // milliseconds
}

// SampleListener is notified around every sampler invocation, per spec.md §6.
type SampleListener interface {
	SampleStarted(sampler Sampler)
	SampleEnded(res *result.SampleResult)
	SampleOccurred(res *result.SampleResult)
}

// TransactionListener is notified when a transaction controller opens and
// closes.
type TransactionListener interface {
	TransactionStarted(name string)
	TransactionEnded(res *result.SampleResult)
}

// TestCollectionListener is notified around the whole test collection's run.
type TestCollectionListener interface {
	CollectionStarted()
	CollectionEnded()
}

// TestWorkerListener is notified when a worker's execution units start and
// finish.
type TestWorkerListener interface {
	WorkerStarted()
	WorkerFinished()
}

// TestIterationListener is notified at the start of each outer iteration of
// a worker's main controller.
type TestIterationListener interface {
	TestIterationStart(controller Controller, iteration int)
}

// LoopIterationListener is notified at the start of each iteration of any
// iterating controller (not just the worker's main loop).
type LoopIterationListener interface {
	IterationStart(source Controller, iteration int)
}

// TestCompilerHelper marks an element that participates in compilation but
// carries no sampler/controller/config role of its own (a marker capability
// named in spec.md §6).
type TestCompilerHelper interface {
	TestCompilerHelper()
}

// FilterRule selects candidate components by TYPE and LEVEL, per spec.md
// §4.4's filter strategy.
type FilterRule struct {
	Types  []string
	Levels []element.Level
}

// ReverseKind names the component classes whose default inner-to-outer
// ordering a FilterStrategy can reverse.
type ReverseKind string

const (
	ReversePre    ReverseKind = "PRE"
	ReversePost   ReverseKind = "POST"
	ReverseAssert ReverseKind = "ASSERT"
)

// FilterStrategy is the per-sampler (or per-worker default) compilation
// rule set from spec.md §4.4: "{filter: {include, exclude}, reverse: [...]}".
type FilterStrategy struct {
	Include FilterRule
	Exclude FilterRule
	Reverse []ReverseKind
}

// IsEmpty reports whether the strategy carries no rules, so a sampler
// without its own running_strategy falls back to the worker's.
func (s FilterStrategy) IsEmpty() bool {
	return len(s.Include.Types) == 0 && len(s.Include.Levels) == 0 &&
		len(s.Exclude.Types) == 0 && len(s.Exclude.Levels) == 0 && len(s.Reverse) == 0
}

// Reverses reports whether kind appears in the strategy's Reverse list.
func (s FilterStrategy) Reverses(kind ReverseKind) bool {
	for _, k := range s.Reverse {
		if k == kind {
			return true
		}
	}
	return false
}

// Classified is implemented by any component the compiler classifies by
// TYPE (a short string tag distinct from its Go type, matching spec.md
// §4.4's filter-by-TYPE semantics, e.g. "httpSampler", "constantTimer").
type Classified interface {
	ComponentType() string
}

// RunningStrategy is implemented by samplers (and the worker) that carry
// their own FilterStrategy, per spec.md §4.4.
type RunningStrategy interface {
	Strategy() FilterStrategy
}

// Elemental is implemented by every concrete node type (controllers,
// samplers, configs, processors, ...), which embed *element.TestElement and
// expose it so generic code (the compiler, the tree cloner) can reach the
// embedded property bag without a type switch over every concrete type.
type Elemental interface {
	Elem() *element.TestElement
}

// Cloneable is implemented by every concrete node type that must be
// deep-copied (not merely referenced) by the per-worker tree cloner. A
// naive Clone() promoted from the embedded *element.TestElement would
// return a bare *element.TestElement and silently drop the concrete type's
// own fields, so each concrete type implements CloneNode explicitly:
// shallow-copy itself, then replace its embedded element with
// element.TestElement.Clone().
type Cloneable interface {
	CloneNode() Node
}

// TransactionController marks the controller variant the compiler gives
// transaction-scoped treatment to (spec.md §4.4 step 3, §4.5).
type TransactionController interface {
	Controller
	Elemental
	IsTransaction()
}
