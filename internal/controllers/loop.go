package controllers

import "github.com/blackcoderx/surge/internal/core"

// LoopController bounds a GenericController's children to a fixed number
// of passes, per spec.md §4.5. Loops=-1 with ContinueForever=true never
// finishes from exhaustion (spec.md §8 boundary behavior).
type LoopController struct {
	GenericController

	Loops           int
	ContinueForever bool

	loopCount int
	breakLoop bool
}

func NewLoopController(name string, loops int, continueForever bool, children []core.Node) *LoopController {
	l := &LoopController{GenericController: NewGenericController(name, children), Loops: loops, ContinueForever: continueForever}
	l.setSelf(l)
	return l
}

func (l *LoopController) ComponentType() string { return "loopController" }

func (l *LoopController) CloneNode() core.Node {
	cloned := &LoopController{
		GenericController: l.cloneBase(),
		Loops:             l.Loops,
		ContinueForever:   l.ContinueForever,
	}
	cloned.setSelf(cloned)
	return cloned
}

func (l *LoopController) endOfLoop() bool {
	return l.breakLoop || (l.Loops >= 0 && l.loopCount >= l.Loops)
}

// Next overrides GenericController.Next: a LoopController with loops=0
// must return null on its very first call without ever touching its
// children (spec.md §8).
func (l *LoopController) Next() (core.Sampler, error) {
	if l.First() && l.endOfLoop() {
		return l.nextIsNull()
	}
	return l.GenericController.Next()
}

// nextIsNull overrides the base hook: when the child list is exhausted,
// decide whether the loop itself is finished.
func (l *LoopController) nextIsNull() (core.Sampler, error) {
	l.reInitialize()
	if l.endOfLoop() {
		if !l.ContinueForever {
			l.SetDone(true)
		}
		l.loopCount = 0
		l.breakLoop = false
		return nil, nil
	}
	l.loopCount++
	l.NotifyIterationStart(l, l.loopCount)
	return nil, nil
}

func (l *LoopController) triggerEndOfLoop() {
	l.loopCount = 0
}

// StartNextLoop implements core.IteratingController: abandon the current
// pass and begin a fresh one immediately.
func (l *LoopController) StartNextLoop() {
	l.reInitialize()
	l.loopCount++
}

// BreakLoop implements core.IteratingController: end the loop on the next
// next_is_null() check.
func (l *LoopController) BreakLoop() {
	l.breakLoop = true
	l.reInitialize()
	l.loopCount = 0
}
