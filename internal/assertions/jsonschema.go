package assertions

import (
	"context"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/blackcoderx/surge/internal/element"
	"github.com/blackcoderx/surge/internal/result"
)

// JSONSchemaAssertion validates a sampler's response body against a JSON
// Schema document using xeipuuv/gojsonschema, per SPEC_FULL.md §3's domain
// stack table.
type JSONSchemaAssertion struct {
	*element.TestElement

	Schema string // raw JSON Schema document
}

func NewJSONSchemaAssertion(name, schema string) *JSONSchemaAssertion {
	return &JSONSchemaAssertion{TestElement: element.NewTestElement(name), Schema: schema}
}

func (a *JSONSchemaAssertion) ComponentType() string { return "jsonSchemaAssertion" }

func (a *JSONSchemaAssertion) Elem() *element.TestElement { return a.TestElement }

func (a *JSONSchemaAssertion) Assert(_ context.Context, res *result.SampleResult) result.AssertionResult {
	schemaLoader := gojsonschema.NewStringLoader(a.Schema)
	docLoader := gojsonschema.NewStringLoader(res.ResponseData)

	verdict, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return result.AssertionResult{Name: a.Name, Error: true, Message: fmt.Sprintf("schema validation failed: %v", err)}
	}
	if verdict.Valid() {
		return result.AssertionResult{Name: a.Name}
	}

	var msgs []string
	for _, e := range verdict.Errors() {
		msgs = append(msgs, e.String())
	}
	return result.AssertionResult{
		Name:    a.Name,
		Failure: true,
		Message: strings.Join(msgs, "; "),
	}
}
