// SPDX-License-Identifier: MIT

// Package coin models tests ("coins") and their variants as immutable value
// objects.
//
// Four shapes are supported, discriminated by Type:
//
//	normal                 name, probability, metadata
//	dependent              normal + dependsOn rules
//	multivariant           name, metadata, variants
//	dependentMultivariant  multivariant whose variants may carry dependsOn
//
// Fields are unexported; accessors return copies, so a constructed Coin
// cannot be changed by its callers. Metadata copies are shallow.
package coin

import (
	"maps"
	"slices"

	"github.com/katalvlaran/bandit/sampler"
)

// Coin is one constructed test.
type Coin struct {
	name        string
	typ         Type
	probability int
	metadata    map[string]any
	dependsOn   []DependencyRule
	variants    []*Variant
}

// Variant is one option of a multivariant coin.
type Variant struct {
	name        string
	typ         Type
	probability int
	metadata    map[string]any
	dependsOn   []DependencyRule
	coin        string
}

var (
	_ Entity = (*Coin)(nil)
	_ Entity = (*Variant)(nil)
)

// New validates def and builds the coin shape named by its type tag.
//
// Complexity: O(V + R) for V variants and R rules.
func New(def Definition) (*Coin, error) {
	t, err := ParseType(def.Type)
	if err != nil {
		return nil, definitionError(methodNew, def, ErrInvalidType, "type %q is invalid", def.Type)
	}

	switch t {
	case TypeNormal:
		return NewNormal(def)
	case TypeDependent:
		return NewDependent(def)
	case TypeMultivariant:
		return NewMultivariant(def)
	default:
		return NewDependentMultivariant(def)
	}
}

// NewNormal builds a normal coin. DependsOn and Variants are ignored.
func NewNormal(def Definition) (*Coin, error) {
	p, err := validateSimple(methodNewNormal, def)
	if err != nil {
		return nil, err
	}

	return &Coin{
		name:        def.Name,
		typ:         TypeNormal,
		probability: p,
		metadata:    cloneMetadata(def.Metadata),
	}, nil
}

// NewDependent builds a dependent coin. A missing dependsOn list is empty.
func NewDependent(def Definition) (*Coin, error) {
	p, err := validateSimple(methodNewDependent, def)
	if err != nil {
		return nil, err
	}

	return &Coin{
		name:        def.Name,
		typ:         TypeDependent,
		probability: p,
		metadata:    cloneMetadata(def.Metadata),
		dependsOn:   cloneRules(def.DependsOn),
	}, nil
}

// NewMultivariant builds a multivariant coin. Variant dependsOn lists are
// ignored; every variant is a plain Variant.
func NewMultivariant(def Definition) (*Coin, error) {
	return newMulti(methodNewMultivariant, TypeMultivariant, def)
}

// NewDependentMultivariant builds a multivariant coin where each variant
// with a dependsOn list becomes a dependent variant.
func NewDependentMultivariant(def Definition) (*Coin, error) {
	return newMulti(methodNewDependentMultivari, TypeDependentMultivariant, def)
}

// validateSimple checks the fields shared by normal and dependent coins and
// returns the probability.
func validateSimple(method string, def Definition) (int, error) {
	if err := validateStruct(method, def, def); err != nil {
		return 0, err
	}

	return checkProbability(method, def.Probability, def)
}

// newMulti validates def and every nested variant independently.
func newMulti(method string, t Type, def Definition) (*Coin, error) {
	if err := validateStruct(method, def, def); err != nil {
		return nil, err
	}

	c := &Coin{
		name:     def.Name,
		typ:      t,
		metadata: cloneMetadata(def.Metadata),
		variants: make([]*Variant, 0, len(def.Variants)),
	}
	for _, vd := range def.Variants {
		if err := validateStruct(method, vd, def); err != nil {
			return nil, err
		}
		meta := vd.Metadata
		if meta == nil {
			meta = def.Metadata // a variant without metadata inherits the coin's
		}
		v := &Variant{
			name:        vd.Name,
			typ:         TypeVariant,
			probability: *vd.Probability,
			metadata:    cloneMetadata(meta),
			coin:        def.Name,
		}
		if t == TypeDependentMultivariant && vd.DependsOn != nil {
			v.typ = TypeDependentVariant
			v.dependsOn = cloneRules(vd.DependsOn)
		}
		c.variants = append(c.variants, v)
	}

	return c, nil
}

// Name returns the coin name.
func (c *Coin) Name() string { return c.name }

// Type returns the coin shape.
func (c *Coin) Type() Type { return c.typ }

// Probability returns the activation weight in [0,100]. Multivariant coins
// report 0; their weights live on the variants.
func (c *Coin) Probability() int { return c.probability }

// Metadata returns a shallow copy of the coin metadata.
func (c *Coin) Metadata() map[string]any { return cloneMetadata(c.metadata) }

// DependsOn returns a copy of the coin's own rules. Dependent-multivariant
// coins keep their rules on the variants.
func (c *Coin) DependsOn() []DependencyRule { return cloneRules(c.dependsOn) }

// Variants returns the coin's variants in definition order.
func (c *Coin) Variants() []*Variant { return slices.Clone(c.variants) }

// IsMultivariant reports whether c carries variants.
func (c *Coin) IsMultivariant() bool { return c.typ.IsMultivariant() }

// IsDependent reports whether c is dependent or dependent-multivariant.
func (c *Coin) IsDependent() bool {
	return c.typ == TypeDependent || c.typ == TypeDependentMultivariant
}

// Variant returns the variant called name. Non-multivariant coins have none.
//
// Complexity: O(V).
func (c *Coin) Variant(name string) (*Variant, bool) {
	for _, v := range c.variants {
		if v.name == name {
			return v, true
		}
	}

	return nil, false
}

// Dependent returns the first rule that references name. For a
// dependent-multivariant coin every variant's rules are searched in order.
func (c *Coin) Dependent(name string) (DependencyRule, bool) {
	if c.IsMultivariant() {
		for _, v := range c.variants {
			if r, ok := findRule(v.dependsOn, name); ok {
				return r, true
			}
		}

		return DependencyRule{}, false
	}

	return findRule(c.dependsOn, name)
}

// SamplingMapping returns the weighted buckets the coin is flipped with:
// one per variant for multivariant coins, a single one otherwise.
func (c *Coin) SamplingMapping() []sampler.Bucket {
	if !c.IsMultivariant() {
		return []sampler.Bucket{{Count: c.probability, Value: c.name}}
	}
	buckets := make([]sampler.Bucket, len(c.variants))
	for i, v := range c.variants {
		buckets[i] = sampler.Bucket{Count: v.probability, Value: v.name}
	}

	return buckets
}

// Names returns the coin name followed by its variant names.
func (c *Coin) Names() []string {
	names := make([]string, 0, 1+len(c.variants))
	names = append(names, c.name)
	for _, v := range c.variants {
		names = append(names, v.name)
	}

	return names
}

func (c *Coin) entity() {}

// Name returns the variant name.
func (v *Variant) Name() string { return v.name }

// Type returns TypeVariant or TypeDependentVariant.
func (v *Variant) Type() Type { return v.typ }

// Probability returns the variant weight in [0,100].
func (v *Variant) Probability() int { return v.probability }

// Metadata returns a shallow copy of the variant metadata. A variant defined
// without metadata reports its coin's.
func (v *Variant) Metadata() map[string]any { return cloneMetadata(v.metadata) }

// DependsOn returns a copy of the variant rules; nil for plain variants.
func (v *Variant) DependsOn() []DependencyRule { return cloneRules(v.dependsOn) }

// Coin returns the name of the owning coin.
func (v *Variant) Coin() string { return v.coin }

// IsDependent reports whether v is a dependent variant.
func (v *Variant) IsDependent() bool { return v.typ == TypeDependentVariant }

// Dependent returns the first rule of v that references name.
func (v *Variant) Dependent(name string) (DependencyRule, bool) {
	return findRule(v.dependsOn, name)
}

func (v *Variant) entity() {}

// IsMultivariant reports whether e is a coin carrying variants.
func IsMultivariant(e Entity) bool {
	return e != nil && e.Type().IsMultivariant()
}

// IsDependent reports whether e can have its activation overridden.
func IsDependent(e Entity) bool {
	return e != nil && e.IsDependent()
}

func findRule(rules []DependencyRule, name string) (DependencyRule, bool) {
	for _, r := range rules {
		if r.Name == name {
			return r, true
		}
	}

	return DependencyRule{}, false
}

// cloneMetadata returns a shallow copy, never nil.
func cloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}

	return maps.Clone(m)
}

func cloneRules(rules []DependencyRule) []DependencyRule {
	if rules == nil {
		return nil
	}

	return slices.Clone(rules)
}
