// Package controllers implements the hierarchical controller state machine
// of spec.md §4.5: GenericController plus the Loop/If/Foreach/Retry/
// Transaction/TestWorker specializations, grounded on
// original_source/pymeter/controls/{controller,foreach_controller,
// if_controller,transaction}.py and workers/test_worker.py (GenericController
// and LoopController themselves were not present among the retrieved
// original_source files; their behavior is reimplemented directly from
// spec.md §4.5's state-machine description).
package controllers

import (
	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/element"
)

// hooks is the "virtual method" table a concrete controller installs on its
// embedded GenericController so base-class logic can call back into
// subclass overrides — Go's embedding has no dynamic dispatch, so this
// self-reference stands in for the source's inheritance-based overriding of
// next_is_null/current_returned_none/trigger_end_of_loop.
type hooks interface {
	nextIsNull() (core.Sampler, error)
	currentReturnedNone(child core.Controller)
	triggerEndOfLoop()
}

// GenericController is the base iteration engine every controller embeds:
// an ordered list of children (samplers and/or controllers), an index into
// it, and the first/done bookkeeping from spec.md §4.5's compact state
// machine.
type GenericController struct {
	*element.TestElement

	Children []core.Node

	current int
	first   bool
	done    bool

	iterationListeners []core.LoopIterationListener

	self hooks
}

// NewGenericController returns a base controller over children, named for
// the spec.md §6 input-tree node's own name/desc.
func NewGenericController(name string, children []core.Node) GenericController {
	return GenericController{TestElement: element.NewTestElement(name), Children: children}
}

// setSelf installs the concrete controller as the hook target; every
// constructor in this package calls it after building its embedded
// GenericController.
func (g *GenericController) setSelf(h hooks) { g.self = h }

// Elem satisfies core.Elemental.
func (g *GenericController) Elem() *element.TestElement { return g.TestElement }

// SetChildren satisfies tree.ChildrenSetter: after the tree cloner finishes
// cloning a controller's subtree, it rebuilds Children to reference the
// cloned nodes instead of the originals copied in by CloneNode's shallow
// struct copy.
func (g *GenericController) SetChildren(children []core.Node) { g.Children = children }

// cloneBase returns a shallow copy of the embedded state every concrete
// controller's CloneNode uses as a starting point, with its own TestElement
// clone and a reset run-state (a freshly cloned controller has never run).
func (g *GenericController) cloneBase() GenericController {
	return GenericController{
		TestElement: g.TestElement.Clone(),
		Children:    append([]core.Node(nil), g.Children...),
	}
}

func (g *GenericController) Initialize() {
	g.current = 0
	g.first = true
}

func (g *GenericController) IsDone() bool     { return g.done }
func (g *GenericController) SetDone(d bool)   { g.done = d }
func (g *GenericController) First() bool      { return g.first }

// Next implements the base GenericController.next() algorithm of
// spec.md §4.5: return the current child if it's a sampler (advancing the
// index), recurse if it's a controller, or defer to next_is_null() when
// the index has run past the end.
func (g *GenericController) Next() (core.Sampler, error) {
	if g.current >= len(g.Children) {
		return g.self.nextIsNull()
	}
	child := g.Children[g.current]
	switch c := child.(type) {
	case core.Sampler:
		g.current++
		g.first = false
		return c, nil
	case core.Controller:
		return g.nextIsController(c)
	default:
		g.current++
		return g.Next()
	}
}

func (g *GenericController) nextIsController(child core.Controller) (core.Sampler, error) {
	s, err := child.Next()
	if err != nil {
		return nil, err
	}
	if s == nil {
		g.self.currentReturnedNone(child)
		return g.Next()
	}
	g.first = false
	return s, nil
}

// currentReturnedNone is the default hook: advance past the child only once
// it reports itself done, so a not-yet-finished child (a loop with
// iterations left) is revisited on the next call.
func (g *GenericController) currentReturnedNone(child core.Controller) {
	if child.IsDone() {
		g.current++
	}
}

// nextIsNull is the default hook: GenericController has no iteration
// bound of its own, so it simply restarts at the first child.
func (g *GenericController) nextIsNull() (core.Sampler, error) {
	g.reInitialize()
	return nil, nil
}

func (g *GenericController) reInitialize() {
	g.current = 0
	g.first = true
}

// TriggerEndOfLoop is the default hook: a plain GenericController has no
// loop state to reset.
func (g *GenericController) triggerEndOfLoop() {}

func (g *GenericController) TriggerEndOfLoop() { g.self.triggerEndOfLoop() }

func (g *GenericController) AddIterationListener(l core.LoopIterationListener) {
	g.iterationListeners = append(g.iterationListeners, l)
}

func (g *GenericController) RemoveIterationListener(l core.LoopIterationListener) {
	for i, x := range g.iterationListeners {
		if x == l {
			g.iterationListeners = append(g.iterationListeners[:i], g.iterationListeners[i+1:]...)
			return
		}
	}
}

// NotifyIterationStart fires IterationStart on every registered listener,
// used by LoopController/ForeachController at the start of each pass.
func (g *GenericController) NotifyIterationStart(source core.Controller, iteration int) {
	for _, l := range g.iterationListeners {
		l.IterationStart(source, iteration)
	}
}
