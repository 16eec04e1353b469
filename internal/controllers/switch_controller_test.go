package controllers

import (
	"context"
	"testing"

	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/element"
	"github.com/blackcoderx/surge/internal/funcs"
	"github.com/blackcoderx/surge/internal/result"
)

// fakeSampler is a minimal core.Sampler/core.Elemental for controller
// tests; it never performs real work.
type fakeSampler struct {
	*element.TestElement
}

func newFakeSampler(name string) *fakeSampler {
	return &fakeSampler{TestElement: element.NewTestElement(name)}
}

func (f *fakeSampler) Elem() *element.TestElement { return f.TestElement }

func (f *fakeSampler) Sample(ctx context.Context) *result.SampleResult {
	return result.NewSampleResult(f.Name)
}

// constCtx is an funcs.EvalContext whose variables never change, enough to
// drive CompoundVariable.Execute in tests.
type constCtx struct {
	vars map[string]string
}

func (c constCtx) GetVariable(name string) (string, bool) {
	v, ok := c.vars[name]
	return v, ok
}

func (c constCtx) GetProperty(name string) (string, bool) { return "", false }

func TestSwitchControllerSelectsByIndex(t *testing.T) {
	a := newFakeSampler("a")
	b := newFakeSampler("b")
	sw := NewSwitchController("sw", nil, []core.Node{a, b})

	sw.Select("1")

	s, err := sw.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if s != core.Sampler(b) {
		t.Fatalf("expected branch b selected, got %v", s)
	}
}

func TestSwitchControllerSelectsByName(t *testing.T) {
	a := newFakeSampler("first")
	b := newFakeSampler("second")
	sw := NewSwitchController("sw", nil, []core.Node{a, b})

	sw.Select("second")

	s, err := sw.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if s != core.Sampler(b) {
		t.Fatalf("expected branch %q selected, got %v", "second", s)
	}
}

func TestSwitchControllerUnresolvedDefaultsToFirstBranch(t *testing.T) {
	a := newFakeSampler("a")
	b := newFakeSampler("b")
	sw := NewSwitchController("sw", nil, []core.Node{a, b})

	sw.Select("does-not-exist")

	s, err := sw.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if s != core.Sampler(a) {
		t.Fatalf("expected default branch a selected, got %v", s)
	}
}

func TestSwitchControllerAutoResolvesExprPerPass(t *testing.T) {
	reg := funcs.NewRegistry()
	expr, err := funcs.Compile("${branch}", reg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	a := newFakeSampler("a")
	b := newFakeSampler("b")
	sw := NewSwitchController("sw", expr, []core.Node{a, b})
	sw.SetEvalContext(constCtx{vars: map[string]string{"branch": "1"}})

	s, err := sw.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if s != core.Sampler(b) {
		t.Fatalf("expected expression-selected branch b, got %v", s)
	}

	// A completed pass resets selection to -1, so the next pass
	// re-evaluates Expr against the (possibly changed) context.
	sw.SetEvalContext(constCtx{vars: map[string]string{"branch": "0"}})
	s, err = sw.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if s != core.Sampler(a) {
		t.Fatalf("expected re-evaluated branch a on next pass, got %v", s)
	}
}

func TestSwitchControllerCloneIsIndependent(t *testing.T) {
	a := newFakeSampler("a")
	b := newFakeSampler("b")
	sw := NewSwitchController("sw", nil, []core.Node{a, b})
	sw.Select("1")

	cloned := sw.CloneNode().(*SwitchController)
	if cloned.selected != -1 {
		t.Fatalf("expected clone to start with nothing selected, got %d", cloned.selected)
	}
	if cloned == sw {
		t.Fatal("CloneNode returned the same instance")
	}
}
