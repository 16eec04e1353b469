package loader

import (
	"fmt"

	"github.com/blang/semver"
	"gopkg.in/yaml.v3"

	"github.com/blackcoderx/surge/internal/errs"
)

// SupportedRange is the span of planVersion values this loader accepts,
// per SPEC_FULL.md §3's domain stack table. Widened deliberately (not
// pinned to one minor) so older plans keep loading as the node vocabulary
// grows.
var SupportedRange = semver.MustParseRange(">=1.0.0 <2.0.0")

// planFile is the root document shape: a planVersion guard plus the
// ordered node list ParsePlan already knows how to convert.
type planFile struct {
	PlanVersion string    `yaml:"planVersion"`
	Plan        []rawNode `yaml:"plan"`
}

// LoadPlanFile decodes a full test-plan document — planVersion plus the
// §6 input tree — validating planVersion against SupportedRange before
// converting the node list. ParsePlan remains available for callers (tests,
// DetectAndConvert's bare-node-list fallback) that carry no planVersion.
func LoadPlanFile(data []byte) (string, []Node, error) {
	var raw planFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", nil, fmt.Errorf("%w: %v", errs.ErrScriptParse, err)
	}
	if raw.PlanVersion == "" {
		return "", nil, fmt.Errorf("%w: missing planVersion", errs.ErrScriptParse)
	}
	v, err := semver.Parse(raw.PlanVersion)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid planVersion %q: %v", errs.ErrScriptParse, raw.PlanVersion, err)
	}
	if !SupportedRange(v) {
		return "", nil, fmt.Errorf("%w: planVersion %s is outside the supported range", errs.ErrScriptParse, raw.PlanVersion)
	}
	nodes, err := convertAndCheck(raw.Plan)
	if err != nil {
		return "", nil, err
	}
	return raw.PlanVersion, nodes, nil
}
