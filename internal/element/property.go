// Package element implements the typed property model and the TestElement
// bag that holds it, per spec.md §3 and §4.1. It is grounded on
// pymeter/elements/property.py's per-variant running_version/recover
// discipline, translated from Python's dynamic typing into a small Go
// interface with one implementation per property variant.
package element

import (
	"fmt"

	"github.com/blackcoderx/surge/internal/errs"
)

// Property is a named, typed value held by a TestElement. Every variant
// supports the running-version snapshot/restore discipline of spec.md §4.1.
type Property interface {
	Name() string
	GetString() string
	GetInt() int
	GetFloat() float64
	GetBool() bool
	GetObject() any

	RunningVersion() bool
	// SetRunningVersion flips running-version mode. Entering running
	// version captures a snapshot of the current value; leaving it
	// discards the snapshot.
	SetRunningVersion(running bool)

	// RecoverRunningVersion restores the pre-run snapshot. owner is the
	// TestElement this property belongs to, needed by multi-valued
	// variants to recurse into temporary children.
	RecoverRunningVersion(owner *TestElement)

	Clone() Property
}

// multiProperty is implemented by variants that hold child properties
// (Collection, Map, Element) and must propagate running_version and
// recovery into them.
type multiProperty interface {
	Property
	iterator() []Property
	remove(Property)
}

// ScalarProperty stores a string/int/float/bool value encoded as a string,
// mirroring pymeter's BasicProperty.
type ScalarProperty struct {
	name       string
	value      string
	running    bool
	savedValue string
	hasSaved   bool
}

func NewScalarProperty(name, value string) *ScalarProperty {
	return &ScalarProperty{name: name, value: value}
}

func (p *ScalarProperty) Name() string  { return p.name }
func (p *ScalarProperty) GetString() string { return p.value }
func (p *ScalarProperty) GetInt() int {
	var v int
	if _, err := fmt.Sscanf(p.value, "%d", &v); err != nil {
		return 0
	}
	return v
}
func (p *ScalarProperty) GetFloat() float64 {
	var v float64
	if _, err := fmt.Sscanf(p.value, "%g", &v); err != nil {
		return 0
	}
	return v
}
func (p *ScalarProperty) GetBool() bool  { return p.value == "true" || p.value == "True" }
func (p *ScalarProperty) GetObject() any { return p.value }

func (p *ScalarProperty) RunningVersion() bool { return p.running }

func (p *ScalarProperty) SetRunningVersion(running bool) {
	p.running = running
	if running {
		p.savedValue = p.value
		p.hasSaved = true
	} else {
		p.hasSaved = false
	}
}

func (p *ScalarProperty) RecoverRunningVersion(_ *TestElement) {
	if p.hasSaved {
		p.value = p.savedValue
	}
}

// Set mutates the value in place, used by TestElement.SetProperty when
// running and an equivalent property already exists.
func (p *ScalarProperty) Set(value string) { p.value = value }

func (p *ScalarProperty) Clone() Property {
	cp := *p
	return &cp
}

// ObjectProperty wraps an opaque reference to an arbitrary value. Recovery
// restores the pointer captured when running_version was entered (the
// referenced value itself is not deep-copied, matching pymeter's
// ObjectProperty which only deepcopies on demand).
type ObjectProperty struct {
	name        string
	value       any
	running     bool
	savedValue  any
	hasSaved    bool
}

func NewObjectProperty(name string, value any) *ObjectProperty {
	return &ObjectProperty{name: name, value: value}
}

func (p *ObjectProperty) Name() string      { return p.name }
func (p *ObjectProperty) GetString() string { return fmt.Sprintf("%v", p.value) }
func (p *ObjectProperty) GetInt() int       { return 0 }
func (p *ObjectProperty) GetFloat() float64 { return 0 }
func (p *ObjectProperty) GetBool() bool     { return p.value != nil }
func (p *ObjectProperty) GetObject() any    { return p.value }

func (p *ObjectProperty) RunningVersion() bool { return p.running }

func (p *ObjectProperty) SetRunningVersion(running bool) {
	p.running = running
	if running {
		p.savedValue = p.value
		p.hasSaved = true
	} else {
		p.hasSaved = false
	}
}

func (p *ObjectProperty) RecoverRunningVersion(_ *TestElement) {
	if p.hasSaved {
		p.value = p.savedValue
	}
}

func (p *ObjectProperty) Set(value any) { p.value = value }

func (p *ObjectProperty) Clone() Property {
	cp := *p
	return &cp
}

// NoneProperty is the absent sentinel; every accessor returns the zero
// value, matching pymeter's NoneProperty.
type NoneProperty struct {
	name string
}

func NewNoneProperty(name string) *NoneProperty { return &NoneProperty{name: name} }

func (p *NoneProperty) Name() string                             { return p.name }
func (p *NoneProperty) GetString() string                        { return "" }
func (p *NoneProperty) GetInt() int                               { return 0 }
func (p *NoneProperty) GetFloat() float64                         { return 0 }
func (p *NoneProperty) GetBool() bool                             { return false }
func (p *NoneProperty) GetObject() any                            { return nil }
func (p *NoneProperty) RunningVersion() bool                      { return false }
func (p *NoneProperty) SetRunningVersion(bool)                    {}
func (p *NoneProperty) RecoverRunningVersion(*TestElement)        {}
func (p *NoneProperty) Clone() Property                           { return &NoneProperty{name: p.name} }

// IsNone reports whether prop is the absent sentinel.
func IsNone(prop Property) bool {
	_, ok := prop.(*NoneProperty)
	return ok
}

// CollectionProperty is an ordered sequence of properties.
type CollectionProperty struct {
	name       string
	value      []Property
	running    bool
	savedValue []Property
	hasSaved   bool
}

func NewCollectionProperty(name string, value []Property) *CollectionProperty {
	if value == nil {
		value = []Property{}
	}
	return &CollectionProperty{name: name, value: value}
}

func (p *CollectionProperty) Name() string      { return p.name }
func (p *CollectionProperty) GetString() string { return fmt.Sprintf("%v", p.value) }
func (p *CollectionProperty) GetInt() int       { return len(p.value) }
func (p *CollectionProperty) GetFloat() float64 { return float64(len(p.value)) }
func (p *CollectionProperty) GetBool() bool     { return len(p.value) > 0 }
func (p *CollectionProperty) GetObject() any    { return p.value }

func (p *CollectionProperty) Append(prop Property) { p.value = append(p.value, prop) }
func (p *CollectionProperty) Get(i int) Property   { return p.value[i] }
func (p *CollectionProperty) Len() int             { return len(p.value) }

func (p *CollectionProperty) iterator() []Property { return p.value }
func (p *CollectionProperty) remove(target Property) {
	for i, v := range p.value {
		if v == target {
			p.value = append(p.value[:i], p.value[i+1:]...)
			return
		}
	}
}

func (p *CollectionProperty) RunningVersion() bool { return p.running }

func (p *CollectionProperty) SetRunningVersion(running bool) {
	p.running = running
	for _, child := range p.value {
		child.SetRunningVersion(running)
	}
	if running {
		p.savedValue = append([]Property(nil), p.value...)
		p.hasSaved = true
	} else {
		p.hasSaved = false
	}
}

func (p *CollectionProperty) RecoverRunningVersion(owner *TestElement) {
	if p.hasSaved {
		p.value = append([]Property(nil), p.savedValue...)
	}
	recoverSubelements(p, owner)
}

func (p *CollectionProperty) Clone() Property {
	cloned := make([]Property, len(p.value))
	for i, v := range p.value {
		cloned[i] = v.Clone()
	}
	return &CollectionProperty{name: p.name, value: cloned}
}

// MapProperty is a keyed set of properties, preserving insertion order for
// deterministic iteration (Go maps do not, so order is tracked alongside).
type MapProperty struct {
	name       string
	keys       []string
	value      map[string]Property
	running    bool
	savedKeys  []string
	savedValue map[string]Property
	hasSaved   bool
}

func NewMapProperty(name string) *MapProperty {
	return &MapProperty{name: name, value: map[string]Property{}}
}

func (p *MapProperty) Name() string      { return p.name }
func (p *MapProperty) GetString() string { return fmt.Sprintf("%v", p.value) }
func (p *MapProperty) GetInt() int       { return len(p.value) }
func (p *MapProperty) GetFloat() float64 { return float64(len(p.value)) }
func (p *MapProperty) GetBool() bool     { return len(p.value) > 0 }
func (p *MapProperty) GetObject() any    { return p.value }

func (p *MapProperty) Put(key string, prop Property) {
	if _, exists := p.value[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.value[key] = prop
}

func (p *MapProperty) Get(key string) (Property, bool) {
	v, ok := p.value[key]
	return v, ok
}

func (p *MapProperty) iterator() []Property {
	out := make([]Property, 0, len(p.keys))
	for _, k := range p.keys {
		out = append(out, p.value[k])
	}
	return out
}

func (p *MapProperty) remove(target Property) {
	for k, v := range p.value {
		if v == target {
			delete(p.value, k)
			for i, kk := range p.keys {
				if kk == k {
					p.keys = append(p.keys[:i], p.keys[i+1:]...)
					break
				}
			}
			return
		}
	}
}

func (p *MapProperty) RunningVersion() bool { return p.running }

func (p *MapProperty) SetRunningVersion(running bool) {
	p.running = running
	for _, child := range p.value {
		child.SetRunningVersion(running)
	}
	if running {
		p.savedKeys = append([]string(nil), p.keys...)
		p.savedValue = make(map[string]Property, len(p.value))
		for k, v := range p.value {
			p.savedValue[k] = v
		}
		p.hasSaved = true
	} else {
		p.hasSaved = false
	}
}

func (p *MapProperty) RecoverRunningVersion(owner *TestElement) {
	if p.hasSaved {
		p.keys = append([]string(nil), p.savedKeys...)
		p.value = make(map[string]Property, len(p.savedValue))
		for k, v := range p.savedValue {
			p.value[k] = v
		}
	}
	recoverSubelements(p, owner)
}

func (p *MapProperty) Clone() Property {
	cloned := NewMapProperty(p.name)
	for _, k := range p.keys {
		cloned.Put(k, p.value[k].Clone())
	}
	return cloned
}

// ElementProperty wraps a nested TestElement; its properties are descended
// for recovery per spec.md §3.
type ElementProperty struct {
	name       string
	value      *TestElement
	running    bool
	savedValue *TestElement
	hasSaved   bool
}

func NewElementProperty(name string, value *TestElement) *ElementProperty {
	return &ElementProperty{name: name, value: value}
}

func (p *ElementProperty) Name() string      { return p.name }
func (p *ElementProperty) GetString() string { return p.value.Name }
func (p *ElementProperty) GetInt() int       { return 0 }
func (p *ElementProperty) GetFloat() float64 { return 0 }
func (p *ElementProperty) GetBool() bool     { return p.value != nil }
func (p *ElementProperty) GetObject() any    { return p.value }
func (p *ElementProperty) Element() *TestElement { return p.value }

func (p *ElementProperty) iterator() []Property {
	out := make([]Property, 0, len(p.value.properties))
	for _, k := range p.value.order {
		out = append(out, p.value.properties[k])
	}
	return out
}

func (p *ElementProperty) remove(target Property) {
	for k, v := range p.value.properties {
		if v == target {
			p.value.removeProperty(k)
			return
		}
	}
}

func (p *ElementProperty) RunningVersion() bool { return p.running }

func (p *ElementProperty) SetRunningVersion(running bool) {
	p.running = running
	p.value.SetRunningVersion(running)
	if running {
		p.savedValue = p.value
		p.hasSaved = true
	} else {
		p.hasSaved = false
	}
}

func (p *ElementProperty) RecoverRunningVersion(_ *TestElement) {
	if p.hasSaved {
		p.value = p.savedValue
	}
	p.value.RecoverRunningVersion()
}

func (p *ElementProperty) Clone() Property {
	return &ElementProperty{name: p.name, value: p.value.Clone()}
}

// recoverSubelements implements MultiProperty.recover_running_version_of_subelements:
// temporaries are removed outright, survivors recover in place.
func recoverSubelements(mp multiProperty, owner *TestElement) {
	for _, child := range append([]Property(nil), mp.iterator()...) {
		if owner != nil && owner.isTemporary(child) {
			mp.remove(child)
			continue
		}
		child.RecoverRunningVersion(owner)
	}
}

// NewInvalidPropertyError builds the §4.1 failure for an empty property key.
func NewInvalidPropertyError(key string) error {
	return fmt.Errorf("%w: empty property key (value %q)", errs.ErrInvalidProperty, key)
}
