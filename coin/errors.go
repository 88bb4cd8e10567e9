// SPDX-License-Identifier: MIT
// Package: bandit/coin
//
// errors.go - sentinel errors for the coin package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Every returned error wraps exactly one sentinel with %w and echoes the
//     offending definition as JSON so a bad configuration entry can be found
//     verbatim.

package coin

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidType indicates a definition whose type tag is not one of
// normal, dependent, multivariant or dependentMultivariant.
var ErrInvalidType = errors.New("coin: invalid type")

// ErrMissingField indicates a required field (name, probability, rule name)
// is absent or empty.
var ErrMissingField = errors.New("coin: missing required field")

// ErrProbabilityOutOfRange indicates a probability outside [0,100].
var ErrProbabilityOutOfRange = errors.New("coin: probability out of range")

// ErrInvalidDefinition indicates any other structural problem in a
// definition.
var ErrInvalidDefinition = errors.New("coin: invalid definition")

// Method tags used as error prefixes.
const (
	methodNew                   = "New"
	methodNewNormal             = "NewNormal"
	methodNewDependent          = "NewDependent"
	methodNewMultivariant       = "NewMultivariant"
	methodNewDependentMultivari = "NewDependentMultivariant"
	methodParseType             = "ParseType"
)

// definitionError wraps sentinel with method context, a detail message and
// the serialized definition.
func definitionError(method string, def any, sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %s on the test with definition %s: %w",
		method, fmt.Sprintf(format, args...), Describe(def), sentinel)
}

// Describe serializes a definition for error messages. Values that cannot be
// marshalled fall back to Go syntax.
func Describe(def any) string {
	raw, err := json.Marshal(def)
	if err != nil {
		return fmt.Sprintf("%#v", def)
	}

	return string(raw)
}
