// Package processors implements the PreProcessor/PostProcessor capabilities
// (spec.md §4.5's sample packages), grounded on the teacher's
// pkg/core/tools/shared/extraction.go ExtractTool — the same
// regex/JSON-path extraction logic (no header extractor), rebuilt against
// internal/runtime.ThreadContext.Variables instead of a shared
// *VariableStore.
package processors

import (
	"context"
	"fmt"
	"regexp"

	"github.com/blackcoderx/surge/internal/element"
	"github.com/blackcoderx/surge/internal/result"
)

// RegexExtractor is a PostProcessor that extracts a capture group from the
// response body and stores it as a thread variable, mirroring
// ExtractTool.extractFromRegex.
type RegexExtractor struct {
	*element.TestElement

	Pattern   string
	Group     int
	RefName   string
	DefaultTo string
}

func NewRegexExtractor(name, pattern string, group int, refName string) *RegexExtractor {
	if group == 0 {
		group = 1
	}
	return &RegexExtractor{
		TestElement: element.NewTestElement(name),
		Pattern:     pattern,
		Group:       group,
		RefName:     refName,
	}
}

func (p *RegexExtractor) ComponentType() string { return "regexExtractor" }

func (p *RegexExtractor) Elem() *element.TestElement { return p.TestElement }

func (p *RegexExtractor) ProcessResult(ctx context.Context, res *result.SampleResult) error {
	vars, ok := variablesFrom(ctx)
	if !ok {
		return fmt.Errorf("regex extractor %q: no thread variables in context", p.Name)
	}
	re, err := regexp.Compile(p.Pattern)
	if err != nil {
		return fmt.Errorf("regex extractor %q: invalid pattern: %w", p.Name, err)
	}
	matches := re.FindStringSubmatch(res.ResponseData)
	if matches == nil || p.Group >= len(matches) {
		vars.Put(p.RefName, p.DefaultTo)
		return nil
	}
	vars.Put(p.RefName, matches[p.Group])
	return nil
}
