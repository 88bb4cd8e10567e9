// SPDX-License-Identifier: MIT

// Package sampler implements the weighted random selection primitives used
// to flip coins.
//
// What:
//
//   - CreateSample expands weighted buckets into a flat population of a fixed
//     size. Each bucket occupies Count contiguous slots; unfilled slots hold
//     NoValue and weight beyond the population size is truncated.
//   - Shuffle permutes a copy of a population with Fisher–Yates.
//   - PickSample draws one element uniformly at random.
//   - PickLegacy draws one element but never the last index. It reproduces
//     the historical draw for callers that need parity with older results.
//   - Draw runs the three steps in sequence.
//
// Randomness:
//
//	Every function that needs randomness takes a *rand.Rand. A nil source
//	falls back to the package-level math/rand functions, which are safe for
//	concurrent use. A non-nil *rand.Rand is not; callers sharing one across
//	goroutines must serialize access.
//
// Complexity:
//
//   - CreateSample: Time O(size + len(buckets)), Memory O(size)
//   - Shuffle:      Time O(n),                   Memory O(n)
//   - PickSample:   Time O(1)
package sampler
