// Package samplers implements the concrete Sampler capability shipped with
// the engine (spec.md §1: samplers themselves are out of scope beyond the
// interface, but SPEC_FULL.md's domain stack names one concrete
// implementation). Grounded on the teacher's HTTP request-handling idiom in
// pkg/core/tools/shared/extraction.go (header/cookie handling) and
// pkg/core/tools/persistence/request_tool.go, rebuilt on
// valyala/fasthttp instead of net/http per SPEC_FULL.md §3's domain stack.
package samplers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/element"
	"github.com/blackcoderx/surge/internal/result"
	"github.com/blackcoderx/surge/internal/threadctx"
)

// HTTPSampler issues a single HTTP request and records a SampleResult
// (spec.md §3, §6). Its property bag carries method/url/headers/body so
// that ${...} function/variable expressions (internal/element,
// internal/funcs) can be resolved per-iteration before the request fires.
type HTTPSampler struct {
	*element.TestElement

	client *fasthttp.Client
}

// NewHTTPSampler builds a sampler with the given static defaults; callers
// typically override url/method/headers/body via SetProperty for
// compound-variable interpolation.
func NewHTTPSampler(name, method, url string) *HTTPSampler {
	s := &HTTPSampler{
		TestElement: element.NewTestElement(name),
		client:      &fasthttp.Client{},
	}
	s.SetProperty("method", method)
	s.SetProperty("url", url)
	return s
}

func (s *HTTPSampler) ComponentType() string { return "httpSampler" }

func (s *HTTPSampler) Elem() *element.TestElement { return s.TestElement }

func (s *HTTPSampler) CloneNode() core.Node {
	return &HTTPSampler{TestElement: s.TestElement.Clone(), client: s.client}
}

// SetHeader stores a single request header under the "header." property
// namespace; HTTPHeaderManager configs (internal/config), merged in before
// each sample, only fill header keys the sampler has not set itself.
func (s *HTTPSampler) SetHeader(name, value string) {
	s.SetProperty("header."+name, value)
}

// bindingFrom recovers the calling thread's evaluation context and current
// iteration from ctx, attached by internal/runtime's executeSamplePackage.
// Returns a nil EvalContext and iteration 0 when none is bound; every
// compound-variable property short-circuits to its raw text in that case
// since FunctionProperty.GetStringForIteration only calls through to
// Execute(ctx) inside a running_version element.
func bindingFrom(ctx context.Context) (element.EvalContext, int) {
	b, ok := threadctx.From(ctx)
	if !ok {
		return nil, 0
	}
	evalCtx, _ := b.Eval.(element.EvalContext)
	return evalCtx, b.Iteration
}

// Sample performs the configured HTTP request, resolving every property
// through its compound-variable expression (compiled by the loader,
// evaluated against the ThreadContext internal/runtime attaches to ctx)
// before dispatch.
func (s *HTTPSampler) Sample(ctx context.Context) *result.SampleResult {
	evalCtx, iteration := bindingFrom(ctx)

	method, err := s.GetPropertyAsStringForIteration("method", evalCtx, iteration)
	if err != nil {
		return failedResult(s.Name, err)
	}
	if method == "" {
		method = "GET"
	}
	url, err := s.GetPropertyAsStringForIteration("url", evalCtx, iteration)
	if err != nil {
		return failedResult(s.Name, err)
	}
	body, err := s.GetPropertyAsStringForIteration("body", evalCtx, iteration)
	if err != nil {
		return failedResult(s.Name, err)
	}

	res := result.NewSampleResult(s.Name)
	res.RequestURL = url
	res.RequestData = body

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(strings.ToUpper(method))
	req.SetRequestURI(url)
	if body != "" {
		req.SetBodyString(body)
	}
	for _, name := range s.PropertyNames() {
		header, ok := strings.CutPrefix(name, "header.")
		if !ok {
			continue
		}
		v, err := s.GetPropertyAsStringForIteration(name, evalCtx, iteration)
		if err != nil {
			return failedResult(s.Name, err)
		}
		req.Header.Set(header, v)
		res.RequestHeaders[header] = v
	}

	timeout := 30 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
	}

	err = s.client.DoTimeout(req, resp, timeout)
	res.Mark()
	if err != nil {
		res.Success = false
		res.ResponseMessage = err.Error()
		return res
	}

	res.ResponseCode = strconv.Itoa(resp.StatusCode())
	res.ResponseMessage = fasthttp.StatusMessage(resp.StatusCode())
	res.ResponseData = string(resp.Body())
	res.ReceivedBytes = int64(len(resp.Body()))
	res.SentBytes = int64(len(body))
	res.ResponseHeaders = map[string]string{}
	resp.Header.VisitAll(func(k, v []byte) {
		res.ResponseHeaders[string(k)] = string(v)
	})
	res.Success = resp.StatusCode() < 400
	return res
}

// failedResult reports a property-evaluation error (e.g. an unknown
// function name in a "${...}" expression) as a failed sample rather than
// panicking the worker loop.
func failedResult(name string, err error) *result.SampleResult {
	res := result.NewSampleResult(name)
	res.Mark()
	res.Success = false
	res.ResponseMessage = err.Error()
	return res
}
