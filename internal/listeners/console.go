package listeners

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/result"
)

// ConsoleListener prints a one-line summary per sample to w, in the
// teacher's plain fmt.Fprintf style (no structured logging library in the
// pack — see SPEC_FULL.md §2.2).
type ConsoleListener struct {
	w     io.Writer
	count atomic.Int64
}

func NewConsoleListener(w io.Writer) *ConsoleListener { return &ConsoleListener{w: w} }

func (l *ConsoleListener) SampleStarted(core.Sampler) {}
func (l *ConsoleListener) SampleEnded(*result.SampleResult) {}

func (l *ConsoleListener) SampleOccurred(res *result.SampleResult) {
	n := l.count.Add(1)
	status := "OK"
	if !res.Success {
		status = "FAIL"
	}
	fmt.Fprintf(l.w, "[%d] %s %s (%s) %v\n", n, status, res.Name, res.ResponseCode, res.Elapsed())
}

func (l *ConsoleListener) TransactionStarted(name string) {
	fmt.Fprintf(l.w, "--- transaction %s started\n", name)
}

func (l *ConsoleListener) TransactionEnded(res *result.SampleResult) {
	fmt.Fprintf(l.w, "--- transaction %s ended (%s) %v\n", res.Name, res.ResponseCode, res.Elapsed())
}

func (l *ConsoleListener) CollectionStarted() { fmt.Fprintln(l.w, "test collection started") }
func (l *ConsoleListener) CollectionEnded()   { fmt.Fprintln(l.w, "test collection ended") }

func (l *ConsoleListener) WorkerStarted()  {}
func (l *ConsoleListener) WorkerFinished() {}
