package controllers

import "github.com/blackcoderx/surge/internal/core"

// InterleaveController runs exactly one child to completion per visit from
// its parent, then advances to the next child on the following visit —
// unlike GenericController, which drains every child during a single pass.
// Grounded on JMeter's InterleaveControl (original_source/_INDEX.md lists
// no Go equivalent in the teacher pack; built from SPEC_FULL.md §4's
// supplemented-features list).
type InterleaveController struct {
	GenericController
}

func NewInterleaveController(name string, children []core.Node) *InterleaveController {
	ic := &InterleaveController{GenericController: NewGenericController(name, children)}
	ic.setSelf(ic)
	return ic
}

func (ic *InterleaveController) ComponentType() string { return "interleaveController" }

func (ic *InterleaveController) CloneNode() core.Node {
	cloned := &InterleaveController{GenericController: ic.cloneBase()}
	cloned.setSelf(cloned)
	return cloned
}

// Next selects only the child at the current index, running it to
// completion across however many calls that takes, then ends this visit
// (returning nil) instead of moving on to the next child.
func (ic *InterleaveController) Next() (core.Sampler, error) {
	if ic.current >= len(ic.Children) {
		return ic.nextIsNull()
	}
	child := ic.Children[ic.current]
	switch c := child.(type) {
	case core.Sampler:
		if !ic.first {
			// this visit already produced its child's sampler: end it
			ic.first = true
			return nil, nil
		}
		ic.current++
		ic.first = false
		return c, nil
	case core.Controller:
		s, err := c.Next()
		if err != nil {
			return nil, err
		}
		if s == nil {
			if c.IsDone() {
				ic.current++
			}
			ic.first = true
			return nil, nil
		}
		ic.first = false
		return s, nil
	default:
		ic.current++
		return ic.Next()
	}
}

// nextIsNull overrides the base hook: wrap back to the first child once
// every child has had its turn.
func (ic *InterleaveController) nextIsNull() (core.Sampler, error) {
	ic.current = 0
	ic.first = true
	return nil, nil
}
