// SPDX-License-Identifier: MIT

package coin

import (
	"fmt"
	"strings"
)

// Type discriminates the coin and variant shapes.
type Type string

// Coin shapes accepted in definitions.
const (
	TypeNormal                Type = "normal"
	TypeDependent             Type = "dependent"
	TypeMultivariant          Type = "multivariant"
	TypeDependentMultivariant Type = "dependentMultivariant"
)

// Variant shapes; assigned during construction, never accepted as input.
const (
	TypeVariant          Type = "variant"
	TypeDependentVariant Type = "dependentVariant"
)

// definitionTypes lists the tags ParseType accepts, in canonical form.
var definitionTypes = []Type{TypeNormal, TypeDependent, TypeMultivariant, TypeDependentMultivariant}

// ParseType matches s case-insensitively against the definition tags and
// returns the canonical camelCase form.
func ParseType(s string) (Type, error) {
	for _, t := range definitionTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}

	return "", fmt.Errorf("%s: %q: %w", methodParseType, s, ErrInvalidType)
}

// IsMultivariant reports whether t carries variants.
func (t Type) IsMultivariant() bool {
	return t == TypeMultivariant || t == TypeDependentMultivariant
}

// IsDependent reports whether t may carry dependency rules.
func (t Type) IsDependent() bool {
	return t == TypeDependent || t == TypeDependentMultivariant || t == TypeDependentVariant
}

// String implements fmt.Stringer.
func (t Type) String() string { return string(t) }

// DependencyRule forces a dependent entity's outcome when the watched
// entity's presence matches Active.
//
// Name references another coin or variant. When the rule wins, the
// dependent's activation becomes Behavior. Lower Priority wins; 0 is the
// highest.
type DependencyRule struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Active   bool   `json:"active" yaml:"active"`
	Behavior bool   `json:"behavior" yaml:"behavior"`
	Priority int    `json:"priority" yaml:"priority"`
}

// Entity is implemented by *Coin and *Variant only.
type Entity interface {
	Name() string
	Type() Type
	Metadata() map[string]any
	IsDependent() bool

	entity()
}
