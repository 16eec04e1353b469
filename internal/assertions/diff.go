package assertions

import (
	"context"

	"github.com/aymanbagabas/go-udiff"

	"github.com/blackcoderx/surge/internal/element"
	"github.com/blackcoderx/surge/internal/result"
)

// ExactBodyAssertion compares a sampler's response body against an expected
// string exactly, rendering a unified diff into the failure message via
// aymanbagabas/go-udiff so a reviewer can see precisely where a response
// drifted, per SPEC_FULL.md §3's domain stack table.
type ExactBodyAssertion struct {
	*element.TestElement

	Expected string
}

func NewExactBodyAssertion(name, expected string) *ExactBodyAssertion {
	return &ExactBodyAssertion{TestElement: element.NewTestElement(name), Expected: expected}
}

func (a *ExactBodyAssertion) ComponentType() string { return "exactBodyAssertion" }

func (a *ExactBodyAssertion) Elem() *element.TestElement { return a.TestElement }

func (a *ExactBodyAssertion) Assert(_ context.Context, res *result.SampleResult) result.AssertionResult {
	if res.ResponseData == a.Expected {
		return result.AssertionResult{Name: a.Name}
	}
	diff := udiff.Unified("expected", "actual", a.Expected, res.ResponseData)
	return result.AssertionResult{
		Name:    a.Name,
		Failure: true,
		Message: diff,
	}
}
