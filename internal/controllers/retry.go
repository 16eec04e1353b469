package controllers

import "github.com/blackcoderx/surge/internal/core"

// RetryController repeats its child subtree until the last sampler in it
// succeeds or RetryLimit attempts have been made, marking every retried
// sampler's result with retrying=true (spec.md §4.5, §8). There is no
// corresponding original_source file; implemented directly from spec.md's
// state-machine description.
type RetryController struct {
	GenericController

	RetryLimit int

	attempt  int
	lastOK   bool
	hasTried bool
}

func NewRetryController(name string, retryLimit int, children []core.Node) *RetryController {
	c := &RetryController{GenericController: NewGenericController(name, children), RetryLimit: retryLimit}
	c.setSelf(c)
	return c
}

func (c *RetryController) ComponentType() string { return "retryController" }

func (c *RetryController) CloneNode() core.Node {
	cloned := &RetryController{GenericController: c.cloneBase(), RetryLimit: c.RetryLimit}
	cloned.setSelf(cloned)
	return cloned
}

// Retrying reports whether the sampler currently being produced is part of
// a retry attempt (attempt > 0); the worker runtime reads this to set
// SampleResult.Retrying.
func (c *RetryController) Retrying() bool { return c.attempt > 0 }

// NoteResult records whether the last sampler this controller produced
// succeeded; the worker runtime calls this after sampling.
func (c *RetryController) NoteResult(success bool) { c.lastOK = success; c.hasTried = true }

// nextIsNull overrides the base hook: the child subtree ran to completion;
// decide whether to retry.
func (c *RetryController) nextIsNull() (core.Sampler, error) {
	c.reInitialize()
	if !c.hasTried || c.lastOK || c.attempt >= c.RetryLimit {
		c.attempt = 0
		c.hasTried = false
		return nil, nil
	}
	c.attempt++
	c.NotifyIterationStart(c, c.attempt)
	return nil, nil
}

// StartNextLoop implements core.IteratingController, used by the
// START_NEXT_ITERATION_OF_THREAD/_OF_CURRENT_LOOP error policies' retry
// path (spec.md §4.6): restart this subtree as a fresh retry attempt.
func (c *RetryController) StartNextLoop() {
	c.reInitialize()
	c.attempt++
}

func (c *RetryController) BreakLoop() {
	c.reInitialize()
	c.attempt = 0
	c.hasTried = false
}
