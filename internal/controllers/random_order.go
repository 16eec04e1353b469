package controllers

import (
	"math/rand"

	"github.com/blackcoderx/surge/internal/core"
)

// RandomOrderController runs every child exactly once per pass, like
// GenericController, but in a freshly shuffled order each time the pass
// restarts. Grounded on JMeter's RandomOrderController (original_source/
// _INDEX.md lists no Go equivalent in the teacher pack; built from
// SPEC_FULL.md §4's supplemented-features list).
type RandomOrderController struct {
	GenericController
}

func NewRandomOrderController(name string, children []core.Node) *RandomOrderController {
	r := &RandomOrderController{GenericController: NewGenericController(name, children)}
	r.shuffle()
	r.setSelf(r)
	return r
}

func (r *RandomOrderController) ComponentType() string { return "randomOrderController" }

func (r *RandomOrderController) CloneNode() core.Node {
	cloned := &RandomOrderController{GenericController: r.cloneBase()}
	cloned.setSelf(cloned)
	return cloned
}

func (r *RandomOrderController) shuffle() {
	rand.Shuffle(len(r.Children), func(i, j int) {
		r.Children[i], r.Children[j] = r.Children[j], r.Children[i]
	})
}

// nextIsNull overrides the base hook: reshuffle before the next pass
// starts, so repeated visits (nested in an outer loop) don't always run
// children in the same order.
func (r *RandomOrderController) nextIsNull() (core.Sampler, error) {
	r.reInitialize()
	r.shuffle()
	return nil, nil
}
