package controllers

import (
	"errors"

	"github.com/blackcoderx/surge/internal/core"
)

// ForeachSource supplies the items a ForeachController iterates and writes
// the current item into the worker's variables, kept separate from the
// controller so internal/controllers has no dependency on internal/runtime's
// Variables type. Grounded on
// original_source/pymeter/controls/foreach_controller.py's init_foreach/
// iterate_data.
type ForeachSource interface {
	// Items returns the iterable once, at the start of a pass; an empty
	// result is a ForeachController error per spec.md §8.
	Items() ([]any, error)
	// Assign writes item (destructured across target variable names when
	// item is itself a slice and more than one target name was given).
	Assign(item any)
}

// ForeachController iterates a named target list, assigning each item to
// variables before each inner iteration (spec.md §4.5).
type ForeachController struct {
	GenericController

	Source ForeachSource
	Delay  func() // optional inter-iteration delay, e.g. time.Sleep wrapper

	items     []any
	index     int
	loopCount int
	breakLoop bool
}

func NewForeachController(name string, src ForeachSource, children []core.Node) *ForeachController {
	c := &ForeachController{GenericController: NewGenericController(name, children), Source: src}
	c.setSelf(c)
	return c
}

func (c *ForeachController) ComponentType() string { return "foreachController" }

func (c *ForeachController) CloneNode() core.Node {
	src := c.Source
	if cloner, ok := c.Source.(interface{ Clone() ForeachSource }); ok {
		src = cloner.Clone()
	}
	cloned := &ForeachController{GenericController: c.cloneBase(), Source: src, Delay: c.Delay}
	cloned.setSelf(cloned)
	return cloned
}

// ErrEmptyIterable is returned when the foreach source yields no items.
var ErrEmptyIterable = errors.New("foreach controller: iterable is empty")

func (c *ForeachController) initForeach() error {
	items, err := c.Source.Items()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrEmptyIterable
	}
	c.items = items
	return nil
}

func (c *ForeachController) endOfLoop() bool {
	return c.breakLoop || c.loopCount >= len(c.items)
}

func (c *ForeachController) Next() (core.Sampler, error) {
	if c.First() {
		if err := c.initForeach(); err != nil {
			c.reInitialize()
			c.breakLoop = false
			return nil, err
		}
	}
	if c.endOfLoop() {
		return c.nextIsNull()
	}
	if c.loopCount+1 > c.index {
		c.Source.Assign(c.items[c.index])
		c.index++
	}
	s, err := c.GenericController.Next()
	if err != nil {
		return nil, err
	}
	if s != nil && c.Delay != nil {
		c.Delay()
	}
	return s, nil
}

func (c *ForeachController) nextIsNull() (core.Sampler, error) {
	c.reInitialize()
	if c.endOfLoop() {
		c.breakLoop = false
		c.loopCount = 0
		c.index = 0
		return nil, nil
	}
	c.loopCount++
	c.NotifyIterationStart(c, c.loopCount)
	return nil, nil
}

func (c *ForeachController) triggerEndOfLoop() {
	c.loopCount = 0
	c.index = 0
}

func (c *ForeachController) StartNextLoop() {
	c.reInitialize()
	c.loopCount++
}

func (c *ForeachController) BreakLoop() {
	c.breakLoop = true
	c.reInitialize()
	c.loopCount = 0
	c.index = 0
}
