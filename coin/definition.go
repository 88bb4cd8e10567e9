// SPDX-License-Identifier: MIT

package coin

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Definition is the input shape of one test.
//
// Probability is a pointer so that a missing value can be told apart from 0.
// Normal and dependent tests require it; multivariant tests ignore it.
type Definition struct {
	Name        string              `json:"name" yaml:"name" validate:"required"`
	Type        string              `json:"type" yaml:"type" validate:"required"`
	Probability *int                `json:"probability,omitempty" yaml:"probability,omitempty" validate:"omitempty,min=0,max=100"`
	Metadata    map[string]any      `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	DependsOn   []DependencyRule    `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty" validate:"dive"`
	Variants    []VariantDefinition `json:"variants,omitempty" yaml:"variants,omitempty" validate:"-"`
}

// VariantDefinition is one option of a multivariant test.
//
// A non-nil DependsOn, even an empty one, turns the variant of a
// dependentMultivariant test into a dependent variant.
type VariantDefinition struct {
	Name        string           `json:"name" yaml:"name" validate:"required"`
	Probability *int             `json:"probability,omitempty" yaml:"probability,omitempty" validate:"required,min=0,max=100"`
	Metadata    map[string]any   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	DependsOn   []DependencyRule `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty" validate:"dive"`
}

// Prob returns a pointer to p, for building definitions in code.
func Prob(p int) *int { return &p }

// definitionValidate is shared; validator.Validate caches struct metadata and
// is safe for concurrent use.
var definitionValidate = newValidate()

// newValidate reports field names by their json tag so messages match the
// configuration file keys.
func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validateStruct runs the struct tags of v and maps the first failure onto a
// sentinel. def is what the error message echoes.
func validateStruct(method string, v any, def any) error {
	err := definitionValidate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return definitionError(method, def, ErrInvalidDefinition, "%v", err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return definitionError(method, def, ErrMissingField, "%s is required", fieldPath(fe))
	case "min", "max":
		return definitionError(method, def, ErrProbabilityOutOfRange,
			"%s not in [%d,%d]", fieldPath(fe), MinProbability, MaxProbability)
	default:
		return definitionError(method, def, ErrInvalidDefinition, "%s failed %q", fieldPath(fe), fe.Tag())
	}
}

// fieldPath renders the namespace of fe without the struct name, e.g.
// "dependsOn[1].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		parts[i] = lowerFirst(p)
	}

	return strings.Join(parts, ".")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToLower(s[:1]) + s[1:]
}

// Probability bounds, inclusive.
const (
	MinProbability = 0
	MaxProbability = 100
)

// checkProbability validates a required probability outside of struct tags,
// for the shapes where the requirement depends on the type.
func checkProbability(method string, p *int, def any) (int, error) {
	if p == nil {
		return 0, definitionError(method, def, ErrMissingField, "probability is required")
	}
	if *p < MinProbability || *p > MaxProbability {
		return 0, definitionError(method, def, ErrProbabilityOutOfRange,
			"probability %d not in [%d,%d]", *p, MinProbability, MaxProbability)
	}

	return *p, nil
}

// String implements fmt.Stringer with the JSON form of the definition.
func (d Definition) String() string { return Describe(d) }

// String implements fmt.Stringer with the JSON form of the definition.
func (d VariantDefinition) String() string { return Describe(d) }

var _ fmt.Stringer = Definition{}
