// SPDX-License-Identifier: MIT
// Package: bandit/sampler
//
// sampler.go - population building, shuffling and drawing.

package sampler

import (
	"math/rand"
)

// NoValue marks a population slot that carries no bucket value.
// Bucket values are coin or variant names, which are never empty.
const NoValue = ""

// Bucket is one weighted entry of a population: Value fills Count slots.
type Bucket struct {
	// Count is the number of slots Value occupies (0..size).
	Count int

	// Value is the identifier written into the slots.
	Value string
}

// PickFunc draws one element from a population.
type PickFunc func(rng *rand.Rand, values []string) string

// CreateSample allocates exactly size slots and fills them bucket by bucket
// in input order. Remaining slots are NoValue; weight past size is dropped,
// so later buckets may receive fewer or zero slots.
// Negative counts are treated as zero. A negative size yields an empty slice.
func CreateSample(buckets []Bucket, size int) []string {
	if size < 0 {
		size = 0
	}
	out := make([]string, size) // zero value is NoValue

	counter := 0
	for _, b := range buckets {
		if b.Count <= 0 {
			continue
		}
		end := counter + b.Count
		if end > size {
			end = size
		}
		for i := counter; i < end; i++ {
			out[i] = b.Value
		}
		counter += b.Count
		if counter >= size {
			break
		}
	}

	return out
}

// Shuffle returns a permuted copy of values using Fisher–Yates.
// An empty input is returned unchanged.
func Shuffle(rng *rand.Rand, values []string) []string {
	if len(values) == 0 {
		return values
	}
	shuffled := make([]string, len(values))
	copy(shuffled, values)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := intn(rng, i+1) // j in [0, i]
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// PickSample returns one element chosen uniformly at random.
// An empty population yields NoValue.
func PickSample(rng *rand.Rand, values []string) string {
	if len(values) == 0 {
		return NoValue
	}

	return values[intn(rng, len(values))]
}

// PickLegacy returns one element chosen uniformly from every index except
// the last one. Populations of length one or less yield their first element
// or NoValue.
func PickLegacy(rng *rand.Rand, values []string) string {
	switch len(values) {
	case 0:
		return NoValue
	case 1:
		return values[0]
	}

	return values[intn(rng, len(values)-1)]
}

// Draw builds a population of size slots from buckets, shuffles it and picks
// one element with pick. A nil pick uses PickSample.
func Draw(rng *rand.Rand, buckets []Bucket, size int, pick PickFunc) string {
	if pick == nil {
		pick = PickSample
	}

	return pick(rng, Shuffle(rng, CreateSample(buckets, size)))
}

// intn draws from rng, or from the global source when rng is nil.
func intn(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.Intn(n)
	}

	return rng.Intn(n)
}
