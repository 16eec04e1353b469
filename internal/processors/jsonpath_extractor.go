package processors

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/blackcoderx/surge/internal/element"
	"github.com/blackcoderx/surge/internal/result"
)

// JSONPathExtractor is a PostProcessor that pulls a value out of a JSON
// response body using a dotted "$.a.b.c" path and stores it as a thread
// variable, mirroring ExtractTool.extractFromJSONPath.
type JSONPathExtractor struct {
	*element.TestElement

	Path      string
	RefName   string
	DefaultTo string
}

func NewJSONPathExtractor(name, path, refName string) *JSONPathExtractor {
	return &JSONPathExtractor{
		TestElement: element.NewTestElement(name),
		Path:        path,
		RefName:     refName,
	}
}

func (p *JSONPathExtractor) ComponentType() string { return "jsonPathExtractor" }

func (p *JSONPathExtractor) Elem() *element.TestElement { return p.TestElement }

func (p *JSONPathExtractor) ProcessResult(ctx context.Context, res *result.SampleResult) error {
	vars, ok := variablesFrom(ctx)
	if !ok {
		return fmt.Errorf("json path extractor %q: no thread variables in context", p.Name)
	}
	var doc any
	if err := json.Unmarshal([]byte(res.ResponseData), &doc); err != nil {
		return fmt.Errorf("json path extractor %q: response is not valid JSON: %w", p.Name, err)
	}
	value, err := lookupPath(doc, p.Path)
	if err != nil {
		vars.Put(p.RefName, p.DefaultTo)
		return nil
	}
	vars.Put(p.RefName, stringify(value))
	return nil
}

// lookupPath walks a "$.a.b[2].c" style path over a decoded JSON document.
func lookupPath(doc any, path string) (any, error) {
	path = strings.TrimPrefix(path, "$.")
	path = strings.TrimPrefix(path, "$")
	if path == "" {
		return doc, nil
	}
	cur := doc
	for _, seg := range strings.Split(path, ".") {
		name, idx, hasIdx := splitIndex(seg)
		if name != "" {
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("path segment %q: not an object", name)
			}
			v, ok := m[name]
			if !ok {
				return nil, fmt.Errorf("path segment %q: key not found", name)
			}
			cur = v
		}
		if hasIdx {
			arr, ok := cur.([]any)
			if !ok || idx < 0 || idx >= len(arr) {
				return nil, fmt.Errorf("path segment %q: index out of range", seg)
			}
			cur = arr[idx]
		}
	}
	return cur, nil
}

func splitIndex(seg string) (name string, idx int, hasIdx bool) {
	open := strings.Index(seg, "[")
	if open < 0 {
		return seg, 0, false
	}
	close := strings.Index(seg, "]")
	if close < open {
		return seg, 0, false
	}
	name = seg[:open]
	n, err := strconv.Atoi(seg[open+1 : close])
	if err != nil {
		return seg, 0, false
	}
	return name, n, true
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
