package controllers

import (
	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/element"
)

// OnSampleError enumerates spec.md §4.6's error policies.
type OnSampleError string

const (
	OnErrorContinue                        OnSampleError = "CONTINUE"
	OnErrorStartNextIterationOfThread      OnSampleError = "START_NEXT_ITERATION_OF_THREAD"
	OnErrorStartNextIterationOfCurrentLoop OnSampleError = "START_NEXT_ITERATION_OF_CURRENT_LOOP"
	OnErrorBreakCurrentLoop                OnSampleError = "BREAK_CURRENT_LOOP"
	OnErrorStopWorker                      OnSampleError = "STOP_WORKER"
	OnErrorStopTest                        OnSampleError = "STOP_TEST"
	OnErrorStopNow                         OnSampleError = "STOP_NOW"
)

// TestWorker is the top-level controller representing a cohort of
// concurrent execution units (spec.md §4.5). It delegates the entire
// Controller API to an embedded LoopController (main_controller in
// original_source/pymeter/workers/test_worker.py) and adds per-worker
// parameters.
type TestWorker struct {
	*element.TestElement

	MainController *LoopController

	NumberOfThreads   int
	StartupsPerSecond float64
	OnSampleError     OnSampleError
}

func NewTestWorker(name string, numberOfThreads int, startupsPerSecond float64, onError OnSampleError, main *LoopController) *TestWorker {
	return &TestWorker{
		TestElement:       element.NewTestElement(name),
		MainController:    main,
		NumberOfThreads:   numberOfThreads,
		StartupsPerSecond: startupsPerSecond,
		OnSampleError:     onError,
	}
}

// IsTestWorker marks this node for the compiler's LevelWorker classification.
func (w *TestWorker) IsTestWorker() {}

func (w *TestWorker) ComponentType() string { return "testWorker" }

func (w *TestWorker) Elem() *element.TestElement { return w.TestElement }

// SetChildren satisfies tree.ChildrenSetter: a TestWorker's sole HashTree
// child is its main_controller; after cloning, repoint MainController at
// the cloned copy.
func (w *TestWorker) SetChildren(children []core.Node) {
	for _, c := range children {
		if lc, ok := c.(*LoopController); ok {
			w.MainController = lc
			return
		}
	}
}

func (w *TestWorker) CloneNode() core.Node {
	cloned := &TestWorker{
		TestElement:       w.TestElement.Clone(),
		MainController:    w.MainController,
		NumberOfThreads:   w.NumberOfThreads,
		StartupsPerSecond: w.StartupsPerSecond,
		OnSampleError:     w.OnSampleError,
	}
	return cloned
}

func (w *TestWorker) Next() (core.Sampler, error) { return w.MainController.Next() }
func (w *TestWorker) Initialize()                 { w.MainController.Initialize() }
func (w *TestWorker) IsDone() bool                { return w.MainController.IsDone() }
func (w *TestWorker) SetDone(d bool)               { w.MainController.SetDone(d) }
func (w *TestWorker) TriggerEndOfLoop()            { w.MainController.TriggerEndOfLoop() }
func (w *TestWorker) AddIterationListener(l core.LoopIterationListener) {
	w.MainController.AddIterationListener(l)
}
func (w *TestWorker) RemoveIterationListener(l core.LoopIterationListener) {
	w.MainController.RemoveIterationListener(l)
}
func (w *TestWorker) StartNextLoop() { w.MainController.StartNextLoop() }
func (w *TestWorker) BreakLoop()     { w.MainController.BreakLoop() }
