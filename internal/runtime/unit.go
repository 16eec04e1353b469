package runtime

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/blackcoderx/surge/internal/compiler"
	"github.com/blackcoderx/surge/internal/config"
	"github.com/blackcoderx/surge/internal/controllers"
	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/result"
	"github.com/blackcoderx/surge/internal/threadctx"
	"github.com/blackcoderx/surge/internal/tree"
)

const lastSampleOK = "LAST_SAMPLE_OK"

// executionUnit is one concurrent driver of a TestWorker's cloned subtree
// (spec.md §4.6's "execution unit"). Grounded on
// original_source/pymeter/workers/test_worker.py's Coroutine.
type executionUnit struct {
	engine *Engine
	worker *controllers.TestWorker
	tree   *tree.HashTree // the single-entry cloned subtree rooted at worker
	ctx    *ThreadContext

	compiler   *compiler.TestCompiler
	csvSources []*config.CSVDataSet

	running      atomic.Bool
	nextContinue bool
}

func newExecutionUnit(engine *Engine, workerTemplate *controllers.TestWorker, workerSubtree *tree.HashTree, threadNumber int) *executionUnit {
	src := tree.New()
	src.Put(workerTemplate, workerSubtree)

	cloner := tree.NewTreeCloner(true)
	src.Traverse(cloner)
	clonedTree := cloner.ClonedTree()

	var clonedWorker *controllers.TestWorker
	for _, n := range clonedTree.List() {
		if w, ok := n.(*controllers.TestWorker); ok {
			clonedWorker = w
		}
	}

	ctx := &ThreadContext{
		Engine:       engine,
		Worker:       clonedWorker,
		ThreadNumber: threadNumber,
		ThreadName:   fmt.Sprintf("%s-%d", workerTemplate.Name, threadNumber),
		Variables:    engine.initialVariables.Clone(),
	}
	ctx.Variables.Put(lastSampleOK, "true")

	u := &executionUnit{
		engine:   engine,
		worker:   clonedWorker,
		tree:     clonedTree,
		ctx:      ctx,
		compiler: compiler.NewTestCompiler(engine.cfg.DefaultStrategy),
	}
	u.running.Store(true)
	return u
}

// iterationBridge adapts the worker's own outer-iteration notifications
// (spec.md §4.6 step 4) into Variables.IncIteration and the engine's
// TestIterationListeners.
type iterationBridge struct {
	unit *executionUnit
}

func (b *iterationBridge) IterationStart(source core.Controller, iteration int) {
	b.unit.ctx.Variables.IncIteration()
	for _, csv := range b.unit.csvSources {
		if err := csv.Next(b.unit.ctx.Variables); err != nil {
			b.unit.stopThread()
		}
	}
	for _, l := range b.unit.engine.cfg.TestIterationListeners {
		l.TestIterationStart(source, b.unit.ctx.Variables.Iteration())
	}
}

func (u *executionUnit) init() {
	u.tree.Traverse(u.compiler)
	u.bindThreadScoped(u.tree)
	u.worker.Initialize()
	u.worker.AddIterationListener(&iterationBridge{unit: u})
	for _, l := range u.engine.cfg.WorkerListeners {
		l.WorkerStarted()
	}
}

// bindThreadScoped installs this unit's ThreadContext (and Variables) into
// every thread-scoped node in its freshly cloned subtree, so their compiled
// expressions and iteration state read this thread's own variables instead
// of a template shared across every other thread's clone, and collects
// every CSVDataSet found (not cloned per thread — it is intentionally
// shared, matching JMeter's "all threads" share mode) so iterationBridge
// can drive it once per outer iteration.
func (u *executionUnit) bindThreadScoped(t *tree.HashTree) {
	for _, n := range t.List() {
		switch c := n.(type) {
		case *controllers.IfController:
			c.SetEvalContext(u.ctx)
		case *controllers.SwitchController:
			c.SetEvalContext(u.ctx)
		case *controllers.ForeachController:
			if src, ok := c.Source.(*VariableForeachSource); ok {
				src.BindVariables(u.ctx.Variables)
			}
		case *config.CSVDataSet:
			u.csvSources = append(u.csvSources, c)
		}
		if sub := t.Get(n); sub != nil {
			u.bindThreadScoped(sub)
		}
	}
}

func (u *executionUnit) run(ctx context.Context) {
	u.init()
	defer func() {
		for _, l := range u.engine.cfg.WorkerListeners {
			l.WorkerFinished()
		}
	}()

	for u.running.Load() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		sampler, err := u.worker.Next()
		if err != nil {
			return
		}
		for u.running.Load() && sampler != nil {
			u.processSampler(ctx, sampler, nil)

			ok, _ := u.ctx.Variables.Get(lastSampleOK)
			if !u.nextContinue || (ok == "false" && u.worker.OnSampleError == controllers.OnErrorContinue) {
				u.controlLoopByLogicalAction(ctx, sampler)
				u.nextContinue = true
				sampler = nil
			} else {
				sampler, err = u.worker.Next()
				if err != nil {
					return
				}
			}
		}
		if u.worker.IsDone() {
			u.running.Store(false)
		}
	}
}

// processSampler mirrors __process_sampler: recognize TransactionSampler
// and recurse into its child, or run a concrete sampler's SamplePackage.
func (u *executionUnit) processSampler(ctx context.Context, current core.Sampler, parent core.Sampler) *result.SampleResult {
	txSampler, isTx := current.(*controllers.TransactionSampler)
	if !isTx {
		u.executeSamplePackage(ctx, current, nil, nil)
		return nil
	}

	txPkg := u.compiler.TransactionPackages[txSampler.Controller]

	if txSampler.Done {
		return u.endTransactionSampler(ctx, txSampler, txPkg, parent)
	}

	if txSampler.Calls == 0 && txPkg != nil {
		for _, l := range txPkg.TransactionListeners {
			l.TransactionStarted(txSampler.Name)
		}
	}

	child := txSampler.SubSampler
	if childTx, ok := child.(*controllers.TransactionSampler); ok {
		res := u.processSampler(ctx, childTx, txSampler)
		if res != nil {
			txSampler.AddSubSamplerResult(res)
		}
		return nil
	}
	if child != nil {
		u.executeSamplePackage(ctx, child, txSampler, txPkg)
	}

	if !u.running.Load() && txSampler.Result != nil && !txSampler.Done {
		return u.endTransactionSampler(ctx, txSampler, txPkg, parent)
	}
	return nil
}

func (u *executionUnit) endTransactionSampler(ctx context.Context, txSampler *controllers.TransactionSampler, txPkg *compiler.SamplePackage, parent core.Sampler) *result.SampleResult {
	res := txSampler.Result
	if txPkg != nil {
		u.checkAssertions(ctx, txPkg.Assertions, res)
		if _, parentIsTx := parent.(*controllers.TransactionSampler); !parentIsTx {
			for _, l := range txPkg.SampleListeners {
				l.SampleOccurred(res)
			}
		}
		for _, l := range txPkg.TransactionListeners {
			l.TransactionEnded(res)
		}
	}
	return res
}

func (u *executionUnit) executeSamplePackage(ctx context.Context, sampler core.Sampler, txSampler *controllers.TransactionSampler, txPkg *compiler.SamplePackage) {
	u.ctx.SetCurrentSampler(sampler)
	pkg := u.compiler.SamplerPackages[sampler]
	if pkg == nil {
		pkg = &compiler.SamplePackage{Sampler: sampler}
	}

	configs := pkg.Configs
	if txPkg != nil && len(txPkg.Configs) > 0 {
		configs = append(append([]core.Config(nil), txPkg.Configs...), pkg.Configs...)
	}
	u.mergeConfigs(sampler, configs)

	ctx = threadctx.With(ctx, threadctx.Binding{
		Eval:      u.ctx,
		Vars:      u.ctx.Variables,
		Iteration: u.ctx.Variables.Iteration(),
	})
	u.runPreProcessors(ctx, pkg.PreProcessors)
	u.runTimers(pkg.Timers)

	var res *result.SampleResult
	if u.running.Load() {
		res = u.doSampling(ctx, sampler, pkg.SampleListeners)
	}
	if res == nil {
		return
	}

	u.ctx.SetPreviousResult(res)
	u.runPostProcessors(ctx, pkg.PostProcessors, res)
	u.checkAssertions(ctx, pkg.Assertions, res)

	if rc := u.retryControllerFor(sampler); rc != nil && rc.Retrying() {
		res.Retrying = true
	}

	for _, l := range u.sampleListenersFor(pkg, txPkg) {
		l.SampleOccurred(res)
	}

	if txSampler != nil {
		txSampler.AddSubSamplerResult(res)
	}

	if res.StopWorker || (!res.Success && u.worker.OnSampleError == controllers.OnErrorStopWorker) {
		u.stopThread()
	}
	if res.StopTest || (!res.Success && u.worker.OnSampleError == controllers.OnErrorStopTest) {
		u.engine.StopTest()
	}
	if res.StopNow || (!res.Success && u.worker.OnSampleError == controllers.OnErrorStopNow) {
		u.engine.StopTestNow()
	}
	if !res.Success {
		u.nextContinue = false
		u.ctx.Variables.Put(lastSampleOK, "false")
	} else {
		u.ctx.Variables.Put(lastSampleOK, "true")
	}
}

func (u *executionUnit) doSampling(ctx context.Context, sampler core.Sampler, listeners []core.SampleListener) (res *result.SampleResult) {
	for _, l := range listeners {
		l.SampleStarted(sampler)
	}
	defer func() {
		if rec := recover(); rec != nil {
			res = result.NewSampleResult("unknown")
			res.Success = false
			res.ResponseData = fmt.Sprintf("panic: %v", rec)
		}
		for _, l := range listeners {
			l.SampleEnded(res)
		}
	}()
	res = sampler.Sample(ctx)
	res.Mark()
	return res
}

func (u *executionUnit) sampleListenersFor(pkg, txPkg *compiler.SamplePackage) []core.SampleListener {
	if txPkg == nil {
		return pkg.SampleListeners
	}
	var out []core.SampleListener
	for _, l := range pkg.SampleListeners {
		shared := false
		for _, tl := range txPkg.SampleListeners {
			if tl == l {
				shared = true
				break
			}
		}
		if !shared {
			out = append(out, l)
		}
	}
	return out
}

// mergeConfigs applies every in-scope config onto the sampler's own
// element, per spec.md §4.4 step 2 (e.g. an HTTPHeaderManager installing
// "header.*" properties a sampler didn't set itself).
func (u *executionUnit) mergeConfigs(sampler core.Sampler, configs []core.Config) {
	el, ok := sampler.(core.Elemental)
	if !ok {
		return
	}
	for _, c := range configs {
		c.Merge(el.Elem())
	}
}

func (u *executionUnit) runPreProcessors(ctx context.Context, procs []core.PreProcessor) {
	for _, p := range procs {
		if err := p.Process(ctx); err != nil {
			_ = err // spec.md §7: pre-processor errors are caught and logged, never abort the unit
		}
	}
}

func (u *executionUnit) runPostProcessors(ctx context.Context, procs []core.PostProcessor, res *result.SampleResult) {
	for _, p := range procs {
		if err := p.ProcessResult(ctx, res); err != nil {
			_ = err
		}
	}
}

func (u *executionUnit) runTimers(timers []core.Timer) {
	var total int64
	for _, t := range timers {
		total += t.Delay()
	}
	if total > 0 {
		sleepMillis(total)
	}
}

func (u *executionUnit) checkAssertions(ctx context.Context, assertions []core.Assertion, res *result.SampleResult) {
	for _, a := range assertions {
		ar := a.Assert(ctx, res)
		res.Assertions = append(res.Assertions, ar)
		if ar.Failure || ar.Error {
			res.Success = false
		}
	}
}

func (u *executionUnit) retryControllerFor(sampler core.Sampler) *controllers.RetryController {
	real := findRealSampler(sampler)
	finder := tree.NewFindTestElementsUpToRoot(real, func(n tree.Node) bool {
		_, ok := n.(core.Controller)
		return ok
	})
	u.tree.Traverse(finder)
	for _, n := range finder.ControllersToRoot() {
		if rc, ok := n.(*controllers.RetryController); ok {
			return rc
		}
	}
	return nil
}

func findRealSampler(sampler core.Sampler) core.Sampler {
	for {
		ts, ok := sampler.(*controllers.TransactionSampler)
		if !ok {
			return sampler
		}
		sampler = ts.SubSampler
	}
}

func isRetryingSampler(u *executionUnit, sampler core.Sampler) bool {
	if rc := u.retryControllerFor(sampler); rc != nil && rc.Retrying() {
		return true
	}
	if ts, ok := sampler.(*controllers.TransactionSampler); ok {
		return isRetryingSampler(u, findRealSampler(ts))
	}
	return false
}

// controlLoopByLogicalAction dispatches the on_sample_error policy
// (spec.md §4.6), mirroring __control_loop_by_logical_action.
func (u *executionUnit) controlLoopByLogicalAction(ctx context.Context, sampler core.Sampler) {
	switch {
	case isRetryingSampler(u, sampler):
		u.triggerLoopLogicalAction(ctx, sampler, continueOnRetry)
	case u.worker.OnSampleError == controllers.OnErrorStartNextIterationOfThread:
		u.triggerLoopLogicalAction(ctx, sampler, continueOnMainLoop)
	case u.worker.OnSampleError == controllers.OnErrorStartNextIterationOfCurrentLoop:
		u.triggerLoopLogicalAction(ctx, sampler, continueOnCurrentLoop)
	case u.worker.OnSampleError == controllers.OnErrorBreakCurrentLoop:
		u.triggerLoopLogicalAction(ctx, sampler, breakOnCurrentLoop)
	case u.worker.OnSampleError == controllers.OnErrorStopWorker:
		u.stopThread()
	case u.worker.OnSampleError == controllers.OnErrorStopTest:
		u.engine.StopTest()
	case u.worker.OnSampleError == controllers.OnErrorStopNow:
		u.engine.StopTestNow()
	}
}

func (u *executionUnit) triggerLoopLogicalAction(ctx context.Context, sampler core.Sampler, action func(*executionUnit, []core.Controller)) {
	real := findRealSampler(sampler)
	finder := tree.NewFindTestElementsUpToRoot(real, func(n tree.Node) bool {
		_, ok := n.(core.Controller)
		return ok
	})
	u.tree.Traverse(finder)

	var ctrls []core.Controller
	for _, n := range finder.ControllersToRoot() {
		if c, ok := n.(core.Controller); ok {
			ctrls = append(ctrls, c)
		}
	}
	action(u, ctrls)

	if ts, ok := sampler.(*controllers.TransactionSampler); ok && ts.Done {
		txPkg := u.compiler.TransactionPackages[ts.Controller]
		u.endTransactionSampler(ctx, ts, txPkg, nil)
	}
}

func continueOnRetry(u *executionUnit, ctrls []core.Controller) {
	for _, c := range ctrls {
		switch t := c.(type) {
		case *controllers.TestWorker:
			t.StartNextLoop()
		case *controllers.RetryController:
			t.StartNextLoop()
			return
		default:
			c.TriggerEndOfLoop()
		}
	}
}

func continueOnMainLoop(u *executionUnit, ctrls []core.Controller) {
	for _, c := range ctrls {
		if w, ok := c.(*controllers.TestWorker); ok {
			w.StartNextLoop()
		} else {
			c.TriggerEndOfLoop()
		}
	}
}

func continueOnCurrentLoop(u *executionUnit, ctrls []core.Controller) {
	for _, c := range ctrls {
		if w, ok := c.(*controllers.TestWorker); ok {
			w.StartNextLoop()
			continue
		}
		if ic, ok := c.(core.IteratingController); ok {
			ic.StartNextLoop()
			return
		}
		c.TriggerEndOfLoop()
	}
}

func breakOnCurrentLoop(u *executionUnit, ctrls []core.Controller) {
	for _, c := range ctrls {
		if w, ok := c.(*controllers.TestWorker); ok {
			w.BreakLoop()
			continue
		}
		if ic, ok := c.(core.IteratingController); ok {
			ic.BreakLoop()
			return
		}
		c.TriggerEndOfLoop()
	}
}

func (u *executionUnit) stopThread() { u.running.Store(false) }
