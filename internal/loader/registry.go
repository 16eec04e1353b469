package loader

import (
	"fmt"
	"os"

	"github.com/blackcoderx/surge/internal/assertions"
	"github.com/blackcoderx/surge/internal/config"
	"github.com/blackcoderx/surge/internal/controllers"
	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/errs"
	"github.com/blackcoderx/surge/internal/funcs"
	"github.com/blackcoderx/surge/internal/listeners"
	"github.com/blackcoderx/surge/internal/processors"
	"github.com/blackcoderx/surge/internal/runtime"
	"github.com/blackcoderx/surge/internal/samplers"
	"github.com/blackcoderx/surge/internal/timers"
)

// Factory builds one concrete node from its raw Node (name/desc/property
// map) and its already-built children, mirroring a single branch of
// original_source/sendanywhere/engine/script.py's __get_node class-name
// dispatch. Children is nil for leaf classes (samplers, assertions,
// processors, timers, configs, listeners).
type Factory func(b *Builder, n Node, children []core.Node) (core.Node, error)

// ClassRegistry maps an input tree node's class name to the factory that
// builds it, the Go equivalent of script.py's CLASS_MAP constant.
type ClassRegistry struct {
	factories map[string]Factory
}

// NewClassRegistry returns a registry with every class SPEC_FULL.md names
// already wired in. Register can still add or override entries (e.g. a
// caller-supplied sampler class for a test double).
func NewClassRegistry() *ClassRegistry {
	r := &ClassRegistry{factories: map[string]Factory{}}
	registerDefaultClasses(r)
	return r
}

func (r *ClassRegistry) Register(class string, f Factory) { r.factories[class] = f }

func (r *ClassRegistry) lookup(class string) (Factory, bool) {
	f, ok := r.factories[class]
	return f, ok
}

func registerDefaultClasses(r *ClassRegistry) {
	r.Register("loopController", buildLoopController)
	r.Register("ifController", buildIfController)
	r.Register("foreachController", buildForeachController)
	r.Register("retryController", buildRetryController)
	r.Register("transactionController", buildTransactionController)
	r.Register("randomOrderController", buildRandomOrderController)
	r.Register("interleaveController", buildInterleaveController)
	r.Register("switchController", buildSwitchController)

	r.Register("httpSampler", buildHTTPSampler)

	r.Register("responseAssertion", buildResponseAssertion)
	r.Register("jsonSchemaAssertion", buildJSONSchemaAssertion)
	r.Register("exactBodyAssertion", buildExactBodyAssertion)

	r.Register("regexExtractor", buildRegexExtractor)
	r.Register("jsonPathExtractor", buildJSONPathExtractor)

	r.Register("constantTimer", buildConstantTimer)
	r.Register("gaussianRandomTimer", buildGaussianRandomTimer)

	r.Register("csvDataSet", buildCSVDataSet)
	r.Register("httpHeaderManager", buildHTTPHeaderManager)

	r.Register("aggregateListener", buildAggregateListener)
	r.Register("consoleListener", buildConsoleListener)

	// testWorker is handled specially by Builder.buildNode (its children
	// are wrapped in a synthetic LoopController, per script.py's worker
	// format having no explicit main-controller node) and is never looked
	// up through this table, but registering it keeps class-existence
	// checks (e.g. a future "list known classes" CLI command) honest.
	r.Register("testWorker", func(*Builder, Node, []core.Node) (core.Node, error) {
		return nil, fmt.Errorf("%w: testWorker is built by the recursive descent, not dispatched through the class table", errs.ErrScriptParse)
	})
}

func buildLoopController(b *Builder, n Node, children []core.Node) (core.Node, error) {
	loops := b.intProp(n, "loops", 1)
	forever := b.boolProp(n, "continueForever", loops < 0)
	return controllers.NewLoopController(n.Name, loops, forever, children), nil
}

func buildIfController(b *Builder, n Node, children []core.Node) (core.Node, error) {
	cond := b.stringProp(n, "condition", "true")
	expr, err := funcs.Compile(cond, b.Funcs)
	if err != nil {
		return nil, fmt.Errorf("ifController %q: %w", n.Name, err)
	}
	return controllers.NewIfController(n.Name, expr, children), nil
}

func buildForeachController(b *Builder, n Node, children []core.Node) (core.Node, error) {
	input := b.stringProp(n, "inputVariable", "")
	ret := b.stringProp(n, "returnVariable", "")
	sep := b.stringProp(n, "separator", ",")
	src := runtime.NewVariableForeachSource(input, ret, sep)
	return controllers.NewForeachController(n.Name, src, children), nil
}

func buildRetryController(b *Builder, n Node, children []core.Node) (core.Node, error) {
	limit := b.intProp(n, "retryLimit", 3)
	return controllers.NewRetryController(n.Name, limit, children), nil
}

func buildTransactionController(_ *Builder, n Node, children []core.Node) (core.Node, error) {
	return controllers.NewTransactionController(n.Name, children), nil
}

func buildRandomOrderController(_ *Builder, n Node, children []core.Node) (core.Node, error) {
	return controllers.NewRandomOrderController(n.Name, children), nil
}

func buildInterleaveController(_ *Builder, n Node, children []core.Node) (core.Node, error) {
	return controllers.NewInterleaveController(n.Name, children), nil
}

func buildSwitchController(b *Builder, n Node, children []core.Node) (core.Node, error) {
	value := b.stringProp(n, "value", "0")
	expr, err := funcs.Compile(value, b.Funcs)
	if err != nil {
		return nil, fmt.Errorf("switchController %q: %w", n.Name, err)
	}
	return controllers.NewSwitchController(n.Name, expr, children), nil
}

func buildHTTPSampler(b *Builder, n Node, _ []core.Node) (core.Node, error) {
	s := samplers.NewHTTPSampler(n.Name, "GET", "")
	if err := b.applyDynamic(s.TestElement, "method", b.stringProp(n, "method", "GET")); err != nil {
		return nil, err
	}
	if err := b.applyDynamic(s.TestElement, "url", b.stringProp(n, "url", "")); err != nil {
		return nil, err
	}
	if body := b.stringProp(n, "body", ""); body != "" {
		if err := b.applyDynamic(s.TestElement, "body", body); err != nil {
			return nil, err
		}
	}
	for name, value := range b.mapProp(n, "headers") {
		if err := b.applyDynamic(s.TestElement, "header."+name, value); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func buildResponseAssertion(b *Builder, n Node, _ []core.Node) (core.Node, error) {
	field := assertions.Field(b.stringProp(n, "field", string(assertions.FieldResponseBody)))
	test := assertions.TestKind(b.stringProp(n, "test", string(assertions.TestContains)))
	pattern := b.stringProp(n, "pattern", "")
	a := assertions.NewResponseAssertion(n.Name, field, test, pattern)
	a.Negate = b.boolProp(n, "negate", false)
	a.HeaderName = b.stringProp(n, "headerName", "")
	return a, nil
}

func buildJSONSchemaAssertion(b *Builder, n Node, _ []core.Node) (core.Node, error) {
	return assertions.NewJSONSchemaAssertion(n.Name, b.stringProp(n, "schema", "")), nil
}

func buildExactBodyAssertion(b *Builder, n Node, _ []core.Node) (core.Node, error) {
	return assertions.NewExactBodyAssertion(n.Name, b.stringProp(n, "expected", "")), nil
}

func buildRegexExtractor(b *Builder, n Node, _ []core.Node) (core.Node, error) {
	pattern := b.stringProp(n, "pattern", "")
	group := b.intProp(n, "group", 1)
	refName := b.stringProp(n, "refName", "")
	e := processors.NewRegexExtractor(n.Name, pattern, group, refName)
	e.DefaultTo = b.stringProp(n, "default", "")
	return e, nil
}

func buildJSONPathExtractor(b *Builder, n Node, _ []core.Node) (core.Node, error) {
	path := b.stringProp(n, "path", "")
	refName := b.stringProp(n, "refName", "")
	e := processors.NewJSONPathExtractor(n.Name, path, refName)
	e.DefaultTo = b.stringProp(n, "default", "")
	return e, nil
}

func buildConstantTimer(b *Builder, n Node, _ []core.Node) (core.Node, error) {
	return timers.NewConstantTimer(n.Name, int64(b.intProp(n, "delayMs", 0))), nil
}

func buildGaussianRandomTimer(b *Builder, n Node, _ []core.Node) (core.Node, error) {
	dev := b.floatProp(n, "deviationMs", 0)
	constDelay := int64(b.intProp(n, "constantDelayMs", 0))
	return timers.NewGaussianRandomTimer(n.Name, dev, constDelay), nil
}

func buildCSVDataSet(b *Builder, n Node, _ []core.Node) (core.Node, error) {
	path := b.stringProp(n, "path", "")
	recycle := b.boolProp(n, "recycle", true)
	ds := config.NewCSVDataSet(n.Name, path, recycle)
	if err := ds.Load(); err != nil {
		return nil, err
	}
	return ds, nil
}

func buildHTTPHeaderManager(b *Builder, n Node, _ []core.Node) (core.Node, error) {
	hm := config.NewHTTPHeaderManager(n.Name)
	for name, value := range b.mapProp(n, "headers") {
		hm.SetHeader(name, value)
	}
	if b.boolProp(n, "transactionScoped", false) {
		return config.NewTransactionScopedConfig(hm), nil
	}
	return hm, nil
}

func buildAggregateListener(_ *Builder, _ Node, _ []core.Node) (core.Node, error) {
	return listeners.NewAggregateListener(), nil
}

func buildConsoleListener(_ *Builder, _ Node, _ []core.Node) (core.Node, error) {
	return listeners.NewConsoleListener(os.Stdout), nil
}
