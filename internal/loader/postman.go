package loader

import (
	"fmt"
	"strings"

	"github.com/rbretecher/go-postman-collection"

	"gopkg.in/yaml.v3"
)

// FromPostmanCollection converts a Postman Collection v2.1 document into the
// root-level node list Builder.Build expects: every request becomes an
// httpSampler, every folder becomes a transactionController so the
// collection's grouping survives as a timing boundary in the run. Grounded
// on the teacher's pkg/core/tools/spec_ingester/postman_parser.go (same
// library, same recursive Items/IsGroup walk), repurposed from a read-only
// spec summarizer into samplers this engine can actually execute.
func FromPostmanCollection(data []byte) ([]Node, error) {
	collection, err := postman.ParseCollection(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing postman collection: %w", err)
	}
	return postmanItemsToNodes(collection.Items), nil
}

func postmanItemsToNodes(items []*postman.Items) []Node {
	var nodes []Node
	for _, item := range items {
		if item.IsGroup() {
			nodes = append(nodes, Node{
				Name:    item.Name,
				Class:   "transactionController",
				Enabled: true,
				Child:   postmanItemsToNodes(item.Items),
			})
			continue
		}
		if item.Request == nil {
			continue
		}
		nodes = append(nodes, postmanRequestNode(item.Name, item.Request))
	}
	return nodes
}

func postmanRequestNode(name string, req *postman.Request) Node {
	props := map[string]*yaml.Node{
		"method": propNode(string(req.Method)),
	}
	if req.URL != nil {
		props["url"] = propNode(req.URL.Raw)
	}
	if req.Body != nil && req.Body.Raw != "" {
		props["body"] = propNode(req.Body.Raw)
	}
	if len(req.Header) > 0 {
		headers := make(map[string]string, len(req.Header))
		for _, h := range req.Header {
			headers[h.Key] = h.Value
		}
		props["headers"] = propNode(headers)
	}
	return Node{
		Name:     name,
		Class:    "httpSampler",
		Enabled:  true,
		Property: props,
	}
}
