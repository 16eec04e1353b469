package compiler

import (
	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/element"
	"github.com/blackcoderx/surge/internal/tree"
)

// TestCompiler is a tree.Visitor that computes a SamplePackage for every
// sampler and transaction controller in a worker's cloned subtree, per
// spec.md §4.4. Grounded on
// original_source/pymeter/engine/traverser.py's TestCompiler, adapted from
// its recursive-reinstantiation design to a single ancestor-stack walk.
type TestCompiler struct {
	defaultStrategy core.FilterStrategy

	stack []frame

	SamplerPackages     map[core.Sampler]*SamplePackage
	TransactionPackages map[core.TransactionController]*SamplePackage
}

type frame struct {
	node     tree.Node
	siblings []tree.Node
	level    element.Level
}

// NewTestCompiler returns a compiler using defaultStrategy for any sampler
// that doesn't declare its own (via core.RunningStrategy).
func NewTestCompiler(defaultStrategy core.FilterStrategy) *TestCompiler {
	return &TestCompiler{
		defaultStrategy:     defaultStrategy,
		SamplerPackages:     map[core.Sampler]*SamplePackage{},
		TransactionPackages: map[core.TransactionController]*SamplePackage{},
	}
}

// AddNode implements tree.Visitor. Level is assigned here (on push), per
// spec.md §9's resolution of the push-vs-pop open question, so that a
// node's own filter predicates see its own level during this same pass.
func (c *TestCompiler) AddNode(node tree.Node, subtree *tree.HashTree) {
	lvl := classifyLevel(node, c.currentLevel())
	if el, ok := node.(core.Elemental); ok {
		el.Elem().Level = lvl
	}

	var siblings []tree.Node
	if subtree != nil {
		siblings = subtree.List()
	}
	c.stack = append(c.stack, frame{node: node, siblings: siblings, level: lvl})
}

func (c *TestCompiler) currentLevel() element.Level {
	if len(c.stack) == 0 {
		return element.LevelCollection
	}
	return c.stack[len(c.stack)-1].level
}

// classifyLevel assigns the four named levels to the structural node kinds
// spec.md §3 calls out; other component kinds (configs, processors,
// listeners, timers, assertions) inherit their parent node's level (a
// sampler's, when they sit under a sampler) since filter predicates only
// ever select among the four named levels.
func classifyLevel(node tree.Node, parentLevel element.Level) element.Level {
	switch node.(type) {
	case interface{ IsTestWorker() }:
		return element.LevelWorker
	case core.TransactionController:
		return element.LevelController
	case core.Controller:
		return element.LevelController
	case core.Sampler:
		return element.LevelSampler
	default:
		return parentLevel
	}
}

// SubtractNode implements tree.Visitor: pop the stack, register a popped
// LoopIterationListener with every ancestor controller, and compile a
// SamplePackage when the popped node is a sampler or transaction
// controller. The popped node is not attached to its parent controller
// (see the note below).
func (c *TestCompiler) SubtractNode() {
	if len(c.stack) == 0 {
		return
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]

	if l, ok := top.node.(core.LoopIterationListener); ok {
		for _, f := range c.stack {
			if ctrl, ok := f.node.(core.Controller); ok {
				ctrl.AddIterationListener(l)
			}
		}
	}

	if tc, ok := top.node.(core.TransactionController); ok {
		c.TransactionPackages[tc] = c.buildTransactionPackage(tc, top.siblings)
	} else if s, ok := top.node.(core.Sampler); ok {
		c.SamplerPackages[s] = c.buildSamplerPackage(s)
	}
}

// Note: unlike original_source/pymeter's TestCompiler, this compiler never
// mutates a controller's own child list (its step 4's add_test_element).
// Controllers here receive their ordered children directly from the loader
// that built the HashTree, so there is nothing left to attach.

// ProcessPath implements tree.Visitor; leaves carry no extra work here.
func (c *TestCompiler) ProcessPath() {}

// buildSamplerPackage walks the ancestor stack from the sampler's own
// level outward to the root, classifying each level's siblings per
// spec.md §4.4 step 2.
func (c *TestCompiler) buildSamplerPackage(s core.Sampler) *SamplePackage {
	pkg := &SamplePackage{Sampler: s}
	strategy := c.strategyFor(s)

	for i := len(c.stack) - 1; i >= 0; i-- {
		f := c.stack[i]
		if ctrl, ok := f.node.(core.Controller); ok {
			pkg.Controllers = append(pkg.Controllers, ctrl)
		}
		for _, sib := range f.siblings {
			if sib == f.node {
				continue
			}
			classifyInto(pkg, sib, strategy, false)
		}
	}

	applyReverse(pkg, strategy)
	return pkg
}

// buildTransactionPackage builds the transaction-scoped package per
// spec.md §4.4 step 3: direct-child transaction listeners and transaction
// configs, plus sample-listeners and assertions inherited from ancestors.
// children is t's own child list (the frame.siblings recorded for t's own
// stack entry before it was popped), not t's siblings in its parent.
func (c *TestCompiler) buildTransactionPackage(t core.TransactionController, children []tree.Node) *SamplePackage {
	pkg := &SamplePackage{}
	strategy := c.defaultStrategy

	for _, child := range children {
		if child == t {
			continue
		}
		classifyInto(pkg, child, strategy, true)
	}
	for i := len(c.stack) - 1; i >= 0; i-- {
		f := c.stack[i]
		for _, sib := range f.siblings {
			if sib == f.node {
				continue
			}
			if l, ok := sib.(core.SampleListener); ok {
				pkg.SampleListeners = append(pkg.SampleListeners, l)
			}
			if a, ok := sib.(core.Assertion); ok {
				pkg.Assertions = append(pkg.Assertions, a)
			}
		}
	}
	return pkg
}

func (c *TestCompiler) strategyFor(s core.Sampler) core.FilterStrategy {
	if rs, ok := s.(core.RunningStrategy); ok {
		if st := rs.Strategy(); !st.IsEmpty() {
			return st
		}
	}
	return c.defaultStrategy
}

func classifyInto(pkg *SamplePackage, node tree.Node, strategy core.FilterStrategy, transactionScoped bool) {
	if !passesFilter(node, strategy) {
		return
	}
	if _, isSampler := node.(core.Sampler); isSampler {
		return
	}
	if _, isController := node.(core.Controller); isController {
		return
	}

	if cfg, ok := node.(core.Config); ok {
		if _, noMerge := cfg.(core.NoConfigMerge); noMerge {
			return
		}
		_, isTxConfig := cfg.(core.TransactionConfig)
		if isTxConfig != transactionScoped {
			return
		}
		pkg.Configs = append(pkg.Configs, cfg)
		return
	}
	if l, ok := node.(core.SampleListener); ok {
		pkg.SampleListeners = append(pkg.SampleListeners, l)
	}
	if transactionScoped {
		if l, ok := node.(core.TransactionListener); ok {
			pkg.TransactionListeners = append(pkg.TransactionListeners, l)
		}
	}
	if p, ok := node.(core.PreProcessor); ok {
		pkg.PreProcessors = append(pkg.PreProcessors, p)
	}
	if p, ok := node.(core.PostProcessor); ok {
		pkg.PostProcessors = append(pkg.PostProcessors, p)
	}
	if a, ok := node.(core.Assertion); ok {
		pkg.Assertions = append(pkg.Assertions, a)
	}
	if t, ok := node.(core.Timer); ok {
		pkg.Timers = append(pkg.Timers, t)
	}
}

func passesFilter(node tree.Node, strategy core.FilterStrategy) bool {
	cl, ok := node.(core.Classified)
	if !ok {
		return true
	}
	t := cl.ComponentType()
	var lvl element.Level
	if el, ok := node.(core.Elemental); ok {
		lvl = el.Elem().Level
	}

	if len(strategy.Exclude.Types) > 0 && containsStr(strategy.Exclude.Types, t) {
		return false
	}
	if len(strategy.Exclude.Levels) > 0 && containsLevel(strategy.Exclude.Levels, lvl) {
		return false
	}
	if len(strategy.Include.Types) > 0 && !containsStr(strategy.Include.Types, t) {
		return false
	}
	if len(strategy.Include.Levels) > 0 && !containsLevel(strategy.Include.Levels, lvl) {
		return false
	}
	return true
}

func applyReverse(pkg *SamplePackage, strategy core.FilterStrategy) {
	if strategy.Reverses(core.ReversePre) {
		reversePre(pkg.PreProcessors)
	}
	if strategy.Reverses(core.ReversePost) {
		reversePost(pkg.PostProcessors)
	}
	if strategy.Reverses(core.ReverseAssert) {
		reverseAssert(pkg.Assertions)
	}
}

func reversePre(s []core.PreProcessor) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reversePost(s []core.PostProcessor) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseAssert(s []core.Assertion) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func containsStr(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func containsLevel(list []element.Level, v element.Level) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
