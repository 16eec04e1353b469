// Package result defines SampleResult and AssertionResult, the data
// produced by sampler execution and assertion evaluation (spec.md §3, §7).
// Grounded on the teacher's pkg/core/tools/assert.go AssertionResult shape
// and performance_engine/metrics.go's use of elapsed/byte counters.
package result

import "time"

// AssertionResult records the outcome of a single assertion evaluation.
// Failure is "the predicate evaluated to false"; Error is "the assertion
// itself could not be evaluated" — spec.md §7 keeps these distinct.
type AssertionResult struct {
	Name    string
	Failure bool
	Error   bool
	Message string
}

// SampleResult is the record emitted for every sampler invocation, per
// spec.md §3 and §6. Field names here are Go-idiomatic; listeners that
// serialize to JSON translate to the camelCase wire names (samplerName,
// requestUrl, ...) at the edge, not in this struct's tags.
type SampleResult struct {
	Name string
	Desc string

	RequestURL     string
	RequestData    string
	RequestHeaders map[string]string

	ResponseCode    string
	ResponseMessage string
	ResponseData    string
	ResponseHeaders map[string]string

	StartTime time.Time
	EndTime   time.Time

	Success  bool
	Retrying bool

	Assertions []AssertionResult
	Subresults []*SampleResult
	Parent     *SampleResult

	StopWorker bool
	StopTest   bool
	StopNow    bool

	IdleTime time.Duration

	SentBytes     int64
	ReceivedBytes int64
}

// NewSampleResult returns a result with StartTime set to now, ready to be
// populated by a sampler.
func NewSampleResult(name string) *SampleResult {
	return &SampleResult{
		Name:            name,
		StartTime:       time.Now(),
		Success:         true,
		RequestHeaders:  map[string]string{},
		ResponseHeaders: map[string]string{},
	}
}

// Mark finalizes the result's EndTime; callers invoke this once sampling
// completes.
func (r *SampleResult) Mark() { r.EndTime = time.Now() }

// Elapsed returns EndTime-StartTime minus IdleTime, matching spec.md §4.6's
// "accumulates elapsed-time excluding idle time" transaction aggregation
// rule.
func (r *SampleResult) Elapsed() time.Duration {
	return r.EndTime.Sub(r.StartTime) - r.IdleTime
}

// AddSubresult appends sub as a child of r, extends r.EndTime to
// max(r.EndTime, sub.EndTime), accumulates byte counters, and sets
// sub.Parent=r, per spec.md §3.
func (r *SampleResult) AddSubresult(sub *SampleResult) {
	sub.Parent = r
	r.Subresults = append(r.Subresults, sub)
	if sub.EndTime.After(r.EndTime) {
		r.EndTime = sub.EndTime
	}
	r.SentBytes += sub.SentBytes
	r.ReceivedBytes += sub.ReceivedBytes
}
