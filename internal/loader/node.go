// Package loader deserializes the spec.md §6 input tree format into a
// compiled *tree.HashTree of core.Node elements. Grounded on
// original_source/sendanywhere/engine/script.py's ScriptServer (the
// JMeter-alike this engine descends from): same required fields
// (name/desc/class/enabled/property/child), same enabled-pruning, same
// class-name-to-factory resolution, same nested-node/list property
// handling — reimplemented in Go with gopkg.in/yaml.v3 in place of Python's
// json, per SPEC_FULL.md §3's domain stack table.
package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/blackcoderx/surge/internal/errs"
)

// Node is one entry of the input tree format: name/desc/class/enabled plus
// a property map (whose values may be scalars, nested node objects, or
// lists of nested node objects) and an ordered list of children.
type Node struct {
	Name     string
	Desc     string
	Class    string
	Enabled  bool
	Property map[string]*yaml.Node
	Child    []Node
}

// rawNode mirrors the YAML document shape so yaml.v3 can decode directly
// into Node's richer Property map (keyed by raw *yaml.Node values, not a
// pre-decided Go type) without a custom UnmarshalYAML.
type rawNode struct {
	Name     string               `yaml:"name"`
	Desc     string               `yaml:"desc"`
	Class    string               `yaml:"class"`
	Enabled  *bool                `yaml:"enabled"`
	Property map[string]*yaml.Node `yaml:"property"`
	Child    []rawNode            `yaml:"child"`
}

// ParsePlan decodes a YAML test-plan document into its root-level node
// list, validating the required fields script.py's __check enforces.
func ParsePlan(data []byte) ([]Node, error) {
	var raws []rawNode
	if err := yaml.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrScriptParse, err)
	}
	return convertAndCheck(raws)
}

func convertAndCheck(raws []rawNode) ([]Node, error) {
	if len(raws) == 0 {
		return nil, fmt.Errorf("%w: empty or fully-disabled node list", errs.ErrScriptParse)
	}
	return convertChildren(raws)
}

func convertChildren(raws []rawNode) ([]Node, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	out := make([]Node, 0, len(raws))
	for _, r := range raws {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: node missing name", errs.ErrScriptParse)
		}
		if r.Class == "" {
			return nil, fmt.Errorf("%w: node %q missing class", errs.ErrScriptParse, r.Name)
		}
		children, err := convertChildren(r.Child)
		if err != nil {
			return nil, err
		}
		enabled := true
		if r.Enabled != nil {
			enabled = *r.Enabled
		}
		out = append(out, Node{
			Name:     r.Name,
			Desc:     r.Desc,
			Class:    r.Class,
			Enabled:  enabled,
			Property: r.Property,
			Child:    children,
		})
	}
	return out, nil
}
