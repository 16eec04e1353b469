package loader

import "gopkg.in/yaml.v3"

// propNode encodes an arbitrary Go value (string, map[string]string, bool,
// int...) into the *yaml.Node representation Node.Property expects, the
// inverse of the stringProp/intProp/mapProp decode helpers in build.go.
// Used by the Postman and OpenAPI converters, which build Node values
// directly rather than decoding them from a YAML document.
func propNode(v any) *yaml.Node {
	n := &yaml.Node{}
	_ = n.Encode(v)
	return n
}
