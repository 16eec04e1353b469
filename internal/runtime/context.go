package runtime

import (
	"sync"

	"github.com/blackcoderx/surge/internal/controllers"
	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/result"
)

// ThreadContext is the per-execution-unit context of spec.md §3, threaded
// explicitly through the sampler loop rather than kept goroutine-local
// (spec.md §9). Grounded on
// original_source/pymeter/workers/context.py's ThreadContext.
type ThreadContext struct {
	Engine *Engine
	Worker *controllers.TestWorker

	ThreadNumber int
	ThreadName   string

	Variables *Variables

	CurrentSampler  core.Sampler
	PreviousSampler core.Sampler
	PreviousResult  *result.SampleResult
}

// GetVariable satisfies funcs.EvalContext / element.EvalContext.
func (c *ThreadContext) GetVariable(name string) (string, bool) { return c.Variables.Get(name) }

// GetProperty satisfies funcs.EvalContext / element.EvalContext, falling
// back to the engine-wide shared properties map.
func (c *ThreadContext) GetProperty(name string) (string, bool) { return c.Engine.GetProperty(name) }

// SetCurrentSampler records sampler as current, shifting the old current
// into PreviousSampler.
func (c *ThreadContext) SetCurrentSampler(sampler core.Sampler) {
	c.PreviousSampler = c.CurrentSampler
	c.CurrentSampler = sampler
}

func (c *ThreadContext) SetPreviousResult(r *result.SampleResult) { c.PreviousResult = r }

// engineProperties is the engine-wide shared map from spec.md §6:
// "configuration... no environment variables or files are read by the core
// itself" — reads are lock-free-ish (RWMutex), writes happen only before a
// run starts.
type engineProperties struct {
	mu     sync.RWMutex
	values map[string]string
}

func newEngineProperties() *engineProperties { return &engineProperties{values: map[string]string{}} }

func (p *engineProperties) Get(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	return v, ok
}

func (p *engineProperties) Set(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
}
