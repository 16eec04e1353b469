package loader

import "strings"

// DetectAndConvert inspects a raw test-plan document's content and
// dispatches to the matching converter, so `surge run`/`validate` accept a
// native YAML plan, a Postman collection, or an OpenAPI spec without a
// separate flag. The same heuristic the teacher's
// pkg/core/tools/spec_ingester package uses to pick a SpecParser.
func DetectAndConvert(data []byte) ([]Node, error) {
	s := string(data)
	switch {
	case strings.Contains(s, "_postman_id"):
		return FromPostmanCollection(data)
	case strings.Contains(s, "\"openapi\"") || strings.Contains(s, "openapi:") ||
		strings.Contains(s, "\"swagger\"") || strings.Contains(s, "swagger:"):
		return FromOpenAPI(data)
	case strings.Contains(s, "planVersion"):
		_, nodes, err := LoadPlanFile(data)
		return nodes, err
	default:
		return ParsePlan(data)
	}
}
