package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pb33f/libopenapi"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"

	"gopkg.in/yaml.v3"
)

// FromOpenAPI converts an OpenAPI 3.x document into the root-level node
// list Builder.Build expects: one httpSampler per path+method, carrying a
// responseAssertion per declared 2xx response code so a plain "convert and
// run" pass already checks something. Grounded on the teacher's
// pkg/core/tools/spec_ingester/openapi_parser.go (same library, same
// ordered-map Paths/PathItems walk over the five common verbs), repurposed
// from a read-only spec summarizer into samplers this engine can execute.
func FromOpenAPI(data []byte) ([]Node, error) {
	document, err := libopenapi.NewDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parsing openapi document: %w", err)
	}
	model, err := document.BuildV3Model()
	if err != nil {
		return nil, fmt.Errorf("building openapi v3 model: %w", err)
	}

	baseURL := ""
	if servers := model.Model.Servers; len(servers) > 0 {
		baseURL = servers[0].URL
	}

	var nodes []Node
	for pair := model.Model.Paths.PathItems.First(); pair != nil; pair = pair.Next() {
		path := pair.Key()
		item := pair.Value()

		ops := map[string]*v3.Operation{
			"GET":    item.Get,
			"POST":   item.Post,
			"PUT":    item.Put,
			"DELETE": item.Delete,
			"PATCH":  item.Patch,
		}
		for method, op := range ops {
			if op == nil {
				continue
			}
			nodes = append(nodes, openapiOperationNode(baseURL, path, method, op))
		}
	}
	return nodes, nil
}

func openapiOperationNode(baseURL, path, method string, op *v3.Operation) Node {
	name := op.Summary
	if name == "" {
		name = method + " " + path
	}

	props := map[string]*yaml.Node{
		"method": propNode(method),
		"url":    propNode(baseURL + path),
	}

	var children []Node
	if op.Responses != nil {
		for pair := op.Responses.Codes.First(); pair != nil; pair = pair.Next() {
			status := pair.Key()
			if !strings.HasPrefix(status, "2") {
				continue
			}
			code, err := strconv.Atoi(status)
			if err != nil {
				continue
			}
			children = append(children, Node{
				Name:    name + " returns " + status,
				Class:   "responseAssertion",
				Enabled: true,
				Property: map[string]*yaml.Node{
					"field":   propNode("code"),
					"test":    propNode("equals"),
					"pattern": propNode(strconv.Itoa(code)),
				},
			})
		}
	}

	return Node{
		Name:     name,
		Class:    "httpSampler",
		Enabled:  true,
		Property: props,
		Child:    children,
	}
}
