package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/blackcoderx/surge/internal/controllers"
	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/tree"
)

// Config is the engine's construction-time configuration, per spec.md §6:
// "the core takes configuration as a structured object at engine
// construction — no environment variables or files are read by the core
// itself."
type Config struct {
	DefaultStrategy core.FilterStrategy

	CollectionListeners    []core.TestCollectionListener
	WorkerListeners        []core.TestWorkerListener
	TestIterationListeners []core.TestIterationListener

	// WaitToDie bounds how long StopTest waits for in-flight units to finish
	// cooperatively before returning; zero means defaultWaitToDie.
	WaitToDie time.Duration

	InitialProperties map[string]string
	InitialVariables  map[string]string
}

// Engine drives a compiled test collection's top-level TestWorkers, per
// spec.md §4.6/§5. Grounded on
// original_source/pymeter/workers/test_worker.py's run orchestration (the
// source has no single "Engine" class of its own — TestWorker.start_test and
// the surrounding collection tree walk are folded together here, matching
// how spec.md §5 describes a single construction-time engine object).
type Engine struct {
	root *tree.HashTree
	cfg  Config

	properties       *engineProperties
	initialVariables *Variables

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	stopped bool
	units   []*executionUnit
}

// NewEngine builds an Engine over a compiled test collection tree. root's
// top-level nodes are expected to be *controllers.TestWorker instances (or
// contain them at any depth), discovered via tree.SearchByClass on Start.
func NewEngine(root *tree.HashTree, cfg Config) *Engine {
	props := newEngineProperties()
	for k, v := range cfg.InitialProperties {
		props.Set(k, v)
	}
	vars := NewVariables()
	for k, v := range cfg.InitialVariables {
		vars.Put(k, v)
	}
	return &Engine{root: root, cfg: cfg, properties: props, initialVariables: vars}
}

func (e *Engine) GetProperty(name string) (string, bool) { return e.properties.Get(name) }
func (e *Engine) SetProperty(name, value string)         { e.properties.Set(name, value) }

// Start runs every TestWorker found in the collection tree to completion,
// spawning NumberOfThreads execution units per worker, paced by
// StartupsPerSecond (spec.md §4.6, §5). It blocks until every unit finishes
// or ctx is canceled.
func (e *Engine) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.cancel = cancel
	e.stopped = false
	e.mu.Unlock()

	for _, l := range e.cfg.CollectionListeners {
		l.CollectionStarted()
	}
	defer func() {
		for _, l := range e.cfg.CollectionListeners {
			l.CollectionEnded()
		}
	}()

	search := tree.NewSearchByClass(func(n tree.Node) bool {
		_, ok := n.(*controllers.TestWorker)
		return ok
	})
	e.root.Traverse(search)

	for _, n := range search.Result() {
		worker := n.(*controllers.TestWorker)
		subtree := search.Subtree(worker).Get(worker)
		e.runWorker(runCtx, worker, subtree)
	}

	e.wg.Wait()
	return runCtx.Err()
}

// runWorker spawns NumberOfThreads execution units for worker, each built
// from a fresh clone of its subtree, staggered by StartupsPerSecond.
func (e *Engine) runWorker(ctx context.Context, worker *controllers.TestWorker, subtree *tree.HashTree) {
	limiter := newStartupLimiter(worker.StartupsPerSecond)
	for i := 0; i < worker.NumberOfThreads; i++ {
		if err := limiter.wait(ctx); err != nil {
			return
		}
		unit := newExecutionUnit(e, worker, subtree, i+1)
		e.mu.Lock()
		e.units = append(e.units, unit)
		e.mu.Unlock()
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			unit.run(ctx)
		}()
	}
}

// StopTest requests every running unit stop cooperatively at its next
// sampler boundary, and waits up to cfg.WaitToDie (default 5s) for them to
// finish before returning.
func (e *Engine) StopTest() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	for _, u := range e.units {
		u.running.Store(false)
	}
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	wait := e.cfg.WaitToDie
	if wait <= 0 {
		wait = defaultWaitToDie
	}
	select {
	case <-done:
	case <-time.After(wait):
		e.StopTestNow()
	}
}

// StopTestNow hard-cancels every unit's context immediately, per spec.md
// §5's STOP_NOW policy.
func (e *Engine) StopTestNow() {
	e.mu.Lock()
	cancel := e.cancel
	e.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
