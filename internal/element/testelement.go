package element

// Level classifies a node during compilation so filter predicates (spec.md
// §4.4) can select components by TYPE and LEVEL.
type Level int

const (
	LevelUnknown Level = iota
	LevelCollection
	LevelWorker
	LevelController
	LevelSampler
)

// TestElement is the named bag of properties every tree node embeds, per
// spec.md §3. Concrete nodes (controllers, samplers, configs, ...) embed
// *TestElement and add their own typed accessors on top of GetProperty*.
type TestElement struct {
	Name string
	Desc string
	Level Level

	properties map[string]Property
	order      []string // insertion order, for deterministic iteration/clone
	running    bool
	temporary  map[Property]bool
}

// NewTestElement constructs an empty element.
func NewTestElement(name string) *TestElement {
	return &TestElement{
		Name:       name,
		properties: map[string]Property{},
		temporary:  map[Property]bool{},
	}
}

// SetProperty installs or mutates a string-valued scalar property. If the
// element is running and a property with this key already exists, it is
// mutated in place (so existing references to it keep seeing fresh data);
// otherwise a new ScalarProperty is installed. Empty keys fail per §4.1.
func (e *TestElement) SetProperty(key, value string) error {
	if key == "" {
		return NewInvalidPropertyError(key)
	}
	if e.running {
		if existing, ok := e.properties[key]; ok {
			if !IsNone(existing) {
				if sp, ok := existing.(*ScalarProperty); ok {
					sp.Set(value)
					return nil
				}
			}
		}
	}
	e.AddProperty(key, NewScalarProperty(key, value))
	return nil
}

// AddProperty installs prop under key. If the element is running, the
// property is recorded as temporary so RecoverRunningVersion removes it;
// otherwise any stale temporary marking on prop (e.g. from a previous run)
// is cleared, per spec.md §4.1 step 2.
func (e *TestElement) AddProperty(key string, prop Property) {
	if _, exists := e.properties[key]; !exists {
		e.order = append(e.order, key)
	}
	e.properties[key] = prop
	if e.running {
		e.setTemporary(prop)
	} else {
		delete(e.temporary, prop)
	}
}

func (e *TestElement) setTemporary(prop Property) { e.temporary[prop] = true }

func (e *TestElement) isTemporary(prop Property) bool { return e.temporary[prop] }

func (e *TestElement) removeProperty(key string) {
	if prop, ok := e.properties[key]; ok {
		delete(e.temporary, prop)
	}
	delete(e.properties, key)
	for i, k := range e.order {
		if k == key {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// GetProperty returns the property under key, or the absent NoneProperty
// sentinel if it is not set.
func (e *TestElement) GetProperty(key string) Property {
	if p, ok := e.properties[key]; ok {
		return p
	}
	return NewNoneProperty(key)
}

// PropertyNames lists all property keys in insertion order.
func (e *TestElement) PropertyNames() []string {
	return append([]string(nil), e.order...)
}

func (e *TestElement) GetPropertyAsString(key string) string { return e.GetProperty(key).GetString() }
func (e *TestElement) GetPropertyAsInt(key string) int       { return e.GetProperty(key).GetInt() }
func (e *TestElement) GetPropertyAsFloat(key string) float64 { return e.GetProperty(key).GetFloat() }
func (e *TestElement) GetPropertyAsBool(key string) bool     { return e.GetProperty(key).GetBool() }

// GetPropertyAsStringForIteration resolves a property's string value,
// re-evaluating FunctionProperty values against the given iteration/context
// per spec.md §4.2; all other variants ignore ctx/iteration.
func (e *TestElement) GetPropertyAsStringForIteration(key string, ctx EvalContext, iteration int) (string, error) {
	p := e.GetProperty(key)
	if dyn, ok := p.(DynamicProperty); ok {
		return dyn.GetStringForIteration(ctx, iteration)
	}
	return p.GetString(), nil
}

// AddTestElement merges another element's properties into this one (used
// when a config/element's properties should be inherited into a sampler).
func (e *TestElement) AddTestElement(other *TestElement) {
	for _, k := range other.order {
		e.AddProperty(k, other.properties[k])
	}
}

// RunningVersion reports whether the element is in running (test-execution)
// mode.
func (e *TestElement) RunningVersion() bool { return e.running }

// SetRunningVersion flips running-version mode and propagates it to every
// held property, per spec.md §4.1 invariant 6.
func (e *TestElement) SetRunningVersion(running bool) {
	e.running = running
	for _, k := range e.order {
		e.properties[k].SetRunningVersion(running)
	}
}

// RecoverRunningVersion removes every property added while running and
// asks the rest to recover their pre-run value, per spec.md §4.1 step 3.
func (e *TestElement) RecoverRunningVersion() {
	for _, k := range append([]string(nil), e.order...) {
		prop := e.properties[k]
		if e.isTemporary(prop) {
			e.removeProperty(k)
			continue
		}
		prop.RecoverRunningVersion(e)
	}
	e.temporary = map[Property]bool{}
}

// Clone deep-copies the properties map; the clone shares no mutable state
// with the original except referenced external (Object-property) values,
// per spec.md §3's TestElement.clone() contract.
func (e *TestElement) Clone() *TestElement {
	cloned := &TestElement{
		Name:       e.Name,
		Desc:       e.Desc,
		Level:      e.Level,
		properties: make(map[string]Property, len(e.properties)),
		order:      append([]string(nil), e.order...),
		temporary:  map[Property]bool{},
	}
	for k, v := range e.properties {
		cloned.properties[k] = v.Clone()
	}
	return cloned
}

// NoThreadClone is implemented by elements that must be referenced, not
// cloned, by the per-worker tree cloner (e.g. a shared session manager or
// result collector), per spec.md §3 and §4.3.
type NoThreadClone interface {
	NoThreadClone()
}
