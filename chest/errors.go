// SPDX-License-Identifier: MIT

package chest

import "errors"

// Sentinel errors for chest construction. Coin-level validation errors are
// the coin package sentinels, wrapped.
var (
	// ErrDuplicateName indicates a coin or variant name already in use.
	ErrDuplicateName = errors.New("chest: duplicate name")

	// ErrCircularDependency indicates that dependency rules form a cycle.
	ErrCircularDependency = errors.New("chest: circular dependency")
)

const methodNew = "New"
