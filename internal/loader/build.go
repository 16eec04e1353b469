package loader

import (
	"fmt"
	"strings"

	"github.com/blackcoderx/surge/internal/controllers"
	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/element"
	"github.com/blackcoderx/surge/internal/errs"
	"github.com/blackcoderx/surge/internal/funcs"
	"github.com/blackcoderx/surge/internal/tree"
)

// Builder converts a parsed Node list into a *tree.HashTree of core.Node
// elements, dispatching each node's class through Classes and compiling any
// "${...}" property value through Funcs. Grounded on
// original_source/sendanywhere/engine/script.py's ScriptServer.build_tree.
type Builder struct {
	Classes *ClassRegistry
	Funcs   *funcs.Registry
}

// NewBuilder returns a Builder with the default class table. funcsReg
// should already have whatever built-in functions the caller wants
// available to compiled expressions installed (internal/loader has no
// opinion on which functions exist, per SPEC_FULL.md §1's core/ambient
// split).
func NewBuilder(funcsReg *funcs.Registry) *Builder {
	return &Builder{Classes: NewClassRegistry(), Funcs: funcsReg}
}

// nodePair keeps a built node paired with its own HashTree subtree, so a
// parent can re-embed it at the right depth once the parent itself is
// known (needed for testWorker's synthetic LoopController wrapping).
type nodePair struct {
	node    core.Node
	subtree *tree.HashTree
}

// Build converts a root-level node list into a HashTree ready for
// internal/runtime.NewEngine, pruning disabled nodes per spec.md §6.
func (b *Builder) Build(nodes []Node) (*tree.HashTree, error) {
	root := tree.New()
	for _, n := range nodes {
		if !n.Enabled {
			continue
		}
		built, sub, err := b.buildNode(n)
		if err != nil {
			return nil, err
		}
		root.Put(built, sub)
	}
	return root, nil
}

func (b *Builder) buildNode(n Node) (core.Node, *tree.HashTree, error) {
	var childPairs []nodePair
	for _, c := range n.Child {
		if !c.Enabled {
			continue
		}
		cn, cs, err := b.buildNode(c)
		if err != nil {
			return nil, nil, err
		}
		childPairs = append(childPairs, nodePair{node: cn, subtree: cs})
	}

	if n.Class == "testWorker" {
		return b.buildTestWorker(n, childPairs)
	}

	factory, ok := b.Classes.lookup(n.Class)
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown class %q (node %q)", errs.ErrScriptParse, n.Class, n.Name)
	}
	children := make([]core.Node, len(childPairs))
	for i, p := range childPairs {
		children[i] = p.node
	}
	built, err := factory(b, n, children)
	if err != nil {
		return nil, nil, fmt.Errorf("node %q: %w", n.Name, err)
	}

	sub := tree.New()
	for _, p := range childPairs {
		sub.Put(p.node, p.subtree)
	}
	return built, sub, nil
}

// buildTestWorker synthesizes the hidden main-loop controller JMeter-alike
// ThreadGroups carry implicitly. script.py's worker node lists its real
// children directly under the worker (no "main_controller" node ever
// appears in the input tree); TestWorker.MainController still requires
// exactly one *LoopController child, so the loader builds it here rather
// than expecting the script to name it.
func (b *Builder) buildTestWorker(n Node, childPairs []nodePair) (core.Node, *tree.HashTree, error) {
	loops := b.intProp(n, "loops", 1)
	forever := b.boolProp(n, "continueForever", loops < 0)
	threads := b.intProp(n, "numberOfThreads", 1)
	startups := b.floatProp(n, "startupsPerSecond", float64(threads))
	onError := controllers.OnSampleError(b.stringProp(n, "onSampleError", string(controllers.OnErrorContinue)))

	children := make([]core.Node, len(childPairs))
	for i, p := range childPairs {
		children[i] = p.node
	}

	main := controllers.NewLoopController(n.Name+".mainLoop", loops, forever, children)
	worker := controllers.NewTestWorker(n.Name, threads, startups, onError, main)

	mainSub := tree.New()
	for _, p := range childPairs {
		mainSub.Put(p.node, p.subtree)
	}
	workerSub := tree.New()
	workerSub.Put(main, mainSub)
	return worker, workerSub, nil
}

// applyDynamic installs value under key on te: a ScalarProperty for plain
// text, or a FunctionProperty compiled through b.Funcs when value contains
// a "${" placeholder, per spec.md §6's property-value rule. A
// *funcs.CompoundVariable already satisfies element.Evaluator (RawText +
// Execute(EvalContext)) directly, since funcs.EvalContext and
// element.EvalContext are the same alias — no adapter needed.
func (b *Builder) applyDynamic(te *element.TestElement, key, value string) error {
	if !strings.Contains(value, "${") {
		return te.SetProperty(key, value)
	}
	cv, err := funcs.Compile(value, b.Funcs)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	te.AddProperty(key, element.NewFunctionProperty(key, cv))
	return nil
}

func (b *Builder) stringProp(n Node, key, def string) string {
	v, ok := n.Property[key]
	if !ok {
		return def
	}
	var s string
	if err := v.Decode(&s); err != nil {
		return def
	}
	return s
}

func (b *Builder) intProp(n Node, key string, def int) int {
	v, ok := n.Property[key]
	if !ok {
		return def
	}
	var i int
	if err := v.Decode(&i); err != nil {
		return def
	}
	return i
}

func (b *Builder) floatProp(n Node, key string, def float64) float64 {
	v, ok := n.Property[key]
	if !ok {
		return def
	}
	var f float64
	if err := v.Decode(&f); err != nil {
		return def
	}
	return f
}

func (b *Builder) boolProp(n Node, key string, def bool) bool {
	v, ok := n.Property[key]
	if !ok {
		return def
	}
	var bv bool
	if err := v.Decode(&bv); err != nil {
		return def
	}
	return bv
}

func (b *Builder) mapProp(n Node, key string) map[string]string {
	v, ok := n.Property[key]
	if !ok {
		return nil
	}
	var m map[string]string
	if err := v.Decode(&m); err != nil {
		return nil
	}
	return m
}
