package controllers

import (
	"strconv"

	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/funcs"
)

// SwitchController runs exactly one child per pass, chosen by evaluating
// Expr (typically an "${__property(...)}"-style expression) at the start
// of every pass where nothing is currently selected. Grounded on JMeter's
// SwitchController (original_source/_INDEX.md lists no Go equivalent in the
// teacher pack; built from SPEC_FULL.md §4's supplemented-features list).
// Expr is shared across every thread's clone (compiled once by the
// loader); Ctx is bound to that thread's own evaluation context right
// after cloning, mirroring IfController's split.
type SwitchController struct {
	GenericController

	Expr *funcs.CompoundVariable
	Ctx  funcs.EvalContext

	selected int
}

func NewSwitchController(name string, expr *funcs.CompoundVariable, children []core.Node) *SwitchController {
	s := &SwitchController{GenericController: NewGenericController(name, children), Expr: expr, selected: -1}
	s.setSelf(s)
	return s
}

func (s *SwitchController) ComponentType() string { return "switchController" }

func (s *SwitchController) CloneNode() core.Node {
	cloned := &SwitchController{GenericController: s.cloneBase(), Expr: s.Expr, selected: -1}
	cloned.setSelf(cloned)
	return cloned
}

// SetEvalContext installs the thread-local context Expr is evaluated
// against. Called by the execution unit once per clone.
func (s *SwitchController) SetEvalContext(ctx funcs.EvalContext) { s.Ctx = ctx }

// Select resolves value to a child index: a bare integer selects by
// position, anything else is matched against a child's own Name. An
// unresolved value falls back to index 0, matching JMeter's
// SwitchController treating an out-of-range selection as the default.
func (s *SwitchController) Select(value string) {
	if n, err := strconv.Atoi(value); err == nil && n >= 0 && n < len(s.Children) {
		s.selected = n
		return
	}
	for i, child := range s.Children {
		if el, ok := child.(core.Elemental); ok && el.Elem().Name == value {
			s.selected = i
			return
		}
	}
	s.selected = 0
}

// resolveSelection evaluates Expr once per pass when nothing is currently
// selected, defaulting to index 0 when no Expr was compiled (an unguarded
// switch always takes its first branch).
func (s *SwitchController) resolveSelection() error {
	if s.Expr == nil {
		s.selected = 0
		return nil
	}
	v, err := s.Expr.Execute(s.Ctx)
	if err != nil {
		return err
	}
	s.Select(v)
	return nil
}

func (s *SwitchController) Next() (core.Sampler, error) {
	if s.selected < 0 {
		if err := s.resolveSelection(); err != nil {
			return nil, err
		}
	}
	if s.selected < 0 || s.selected >= len(s.Children) {
		return s.nextIsNull()
	}
	child := s.Children[s.selected]
	switch c := child.(type) {
	case core.Sampler:
		s.first = false
		s.selected = -1
		return c, nil
	case core.Controller:
		sample, err := c.Next()
		if err != nil {
			return nil, err
		}
		if sample == nil {
			if c.IsDone() {
				s.selected = -1
			}
			return nil, nil
		}
		s.first = false
		return sample, nil
	default:
		return s.nextIsNull()
	}
}

// nextIsNull overrides the base hook: a switch with nothing selected has
// nothing left to do this pass.
func (s *SwitchController) nextIsNull() (core.Sampler, error) {
	s.first = true
	return nil, nil
}
