package controllers

import (
	"context"

	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/result"
)

// TransactionController wraps its children in a virtual TransactionSampler,
// per spec.md §4.5. Grounded on
// original_source/pymeter/controls/transaction.py.
type TransactionController struct {
	GenericController

	txSampler *TransactionSampler
}

func NewTransactionController(name string, children []core.Node) *TransactionController {
	c := &TransactionController{GenericController: NewGenericController(name, children)}
	c.setSelf(c)
	return c
}

func (c *TransactionController) ComponentType() string { return "transactionController" }

func (c *TransactionController) IsTransaction() {}

func (c *TransactionController) CloneNode() core.Node {
	cloned := &TransactionController{GenericController: c.cloneBase()}
	cloned.setSelf(cloned)
	return cloned
}

func (c *TransactionController) Next() (core.Sampler, error) {
	if c.txSampler != nil && c.txSampler.Done {
		c.txSampler = nil
		return nil, nil
	}

	if c.First() {
		c.txSampler = NewTransactionSampler(c, c.Name)
	}

	sub, err := c.nextIsControllerAware()
	if err != nil {
		return nil, err
	}
	c.txSampler.SubSampler = sub
	if sub == nil {
		c.txSampler.SetTransactionDone()
	}
	return c.txSampler, nil
}

// nextIsControllerAware mirrors GenericController.Next but must not report
// the TransactionSampler itself back out when a nested transaction child
// returns none (per transaction.py's next_is_controller override: it calls
// super().next(), not self.next()).
func (c *TransactionController) nextIsControllerAware() (core.Sampler, error) {
	if c.current >= len(c.Children) {
		return c.nextIsNull()
	}
	child := c.Children[c.current]
	switch ch := child.(type) {
	case core.Sampler:
		c.current++
		c.first = false
		return ch, nil
	case core.Controller:
		s, err := ch.Next()
		if err != nil {
			return nil, err
		}
		if s == nil {
			c.currentReturnedNone(ch)
			return c.nextIsControllerAware()
		}
		c.first = false
		return s, nil
	default:
		c.current++
		return c.nextIsControllerAware()
	}
}

func (c *TransactionController) nextIsNull() (core.Sampler, error) {
	c.reInitialize()
	return nil, nil
}

// TriggerEndOfLoop overrides the base hook: per transaction.py, finalize
// any open transaction sampler before resetting, so a mid-transaction
// error still produces a transaction result.
func (c *TransactionController) triggerEndOfLoop() {
	if c.txSampler != nil {
		if sub, ok := c.txSampler.SubSampler.(*TransactionSampler); ok {
			c.txSampler.AddSubSamplerResult(sub.Result)
		}
		c.txSampler.SetTransactionDone()
		c.txSampler = nil
	}
}

// TransactionSampler is the pseudo-sampler a TransactionController yields
// in place of its real children, aggregating their results (spec.md §4.5,
// §4.6).
type TransactionSampler struct {
	Controller *TransactionController
	Name       string

	Done       bool
	SubSampler core.Sampler

	Calls            int
	NoFailingSamples int
	TotalTime        int64

	Result *result.SampleResult
}

func NewTransactionSampler(controller *TransactionController, name string) *TransactionSampler {
	res := result.NewSampleResult(name)
	return &TransactionSampler{Controller: controller, Name: name, Result: res}
}

func (t *TransactionSampler) ComponentType() string { return "transactionSampler" }

// Sample is never invoked directly by the worker runtime (it recognizes
// TransactionSampler specially per spec.md §4.6), but it satisfies
// core.Sampler so a TransactionSampler can sit wherever a Sampler is
// expected.
func (t *TransactionSampler) Sample(ctx context.Context) *result.SampleResult { return t.Result }

// AddSubSamplerResult aggregates a child sampler's result into the
// transaction, per spec.md §4.6: increments Calls, copies each sub-result's
// response code until one fails (so a failed transaction keeps the first
// failing code), clears success on any failure, accumulates elapsed time
// excluding idle time.
func (t *TransactionSampler) AddSubSamplerResult(r *result.SampleResult) {
	t.Calls++
	if t.NoFailingSamples == 0 {
		t.Result.ResponseCode = r.ResponseCode
	}
	if !r.Success {
		t.Result.Success = false
		t.NoFailingSamples++
	}
	t.Result.AddSubresult(r)
	t.TotalTime += r.Elapsed().Milliseconds()
}

// SetTransactionDone finalizes the aggregated result, per
// original_source/pymeter/controls/transaction.py's set_transaction_done.
func (t *TransactionSampler) SetTransactionDone() {
	t.Done = true
	if t.Result.Success {
		t.Result.ResponseCode = "200"
	}
}
