package controllers

import (
	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/funcs"
)

// IfController evaluates a condition before entering its children; if
// false, it behaves as already exhausted for this pass (spec.md §4.5).
// Re-evaluated every first-of-pass Next() call, since the condition may
// read variables that change between iterations. Expr is shared across
// every thread's clone (compiled once by the loader); Ctx is set to that
// thread's own evaluation context by the execution unit right after
// cloning, so two threads never race on a single shared context.
type IfController struct {
	GenericController

	Expr *funcs.CompoundVariable
	Ctx  funcs.EvalContext
}

func NewIfController(name string, expr *funcs.CompoundVariable, children []core.Node) *IfController {
	c := &IfController{GenericController: NewGenericController(name, children), Expr: expr}
	c.setSelf(c)
	return c
}

func (c *IfController) ComponentType() string { return "ifController" }

func (c *IfController) CloneNode() core.Node {
	cloned := &IfController{GenericController: c.cloneBase(), Expr: c.Expr}
	cloned.setSelf(cloned)
	return cloned
}

// SetEvalContext installs the thread-local context condition expressions
// are evaluated against. Called by the execution unit once per clone.
func (c *IfController) SetEvalContext(ctx funcs.EvalContext) { c.Ctx = ctx }

func (c *IfController) evalCondition() (bool, error) {
	if c.Expr == nil {
		return true, nil
	}
	s, err := c.Expr.Execute(c.Ctx)
	if err != nil {
		return false, err
	}
	return s == "true" || s == "1", nil
}

func (c *IfController) Next() (core.Sampler, error) {
	if c.First() {
		ok, err := c.evalCondition()
		if err != nil {
			return nil, err
		}
		if !ok {
			return c.nextIsNull()
		}
	}
	return c.GenericController.Next()
}
