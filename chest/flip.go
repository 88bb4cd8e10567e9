// SPDX-License-Identifier: MIT

package chest

import (
	"slices"

	"github.com/katalvlaran/bandit/coin"
	"github.com/katalvlaran/bandit/sampler"
)

// Sample is one draw per coin in picking order. Each entry is the picked
// coin or variant name, or sampler.NoValue. Resolution may append names of
// dependents forced active.
type Sample []string

// Index returns the position of name, or -1.
func (s Sample) Index(name string) int {
	if name == sampler.NoValue {
		return -1
	}

	return slices.Index(s, name)
}

// Contains reports whether name is present.
func (s Sample) Contains(name string) bool {
	return s.Index(name) >= 0
}

// Picked returns the present names in sample order.
func (s Sample) Picked() []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if v != sampler.NoValue {
			out = append(out, v)
		}
	}

	return out
}

// FlipCoins draws a raw sample: one pick per coin in picking order.
//
// Complexity: O(T·S) for T coins and population size S.
func (c *Chest) FlipCoins() Sample {
	c.mu.Lock()
	defer c.mu.Unlock()

	sample := make(Sample, len(c.order))
	for i, cn := range c.order {
		sample[i] = sampler.Draw(c.rng, cn.SamplingMapping(), c.sampleSize, c.pick)
	}

	return sample
}

// Resolve decides whether the dependent entity name is active in sample and
// returns the sample updated to reflect that decision.
//
// Base activation is presence of name in sample. Rules whose target is
// present with Active=true, and rules whose target is absent with
// Active=false, are candidates; the lowest Priority wins. Inside a partition
// the first rule wins ties; across partitions the absent-target winner does.
// A winner's Behavior replaces the base activation.
//
// Complexity: O(R·n) for R rules over a sample of length n.
//
// The returned sample gains name when it turns active and loses it (slot set
// to NoValue) when it turns inactive. sample itself is never modified.
func Resolve(sample Sample, name string, rules []coin.DependencyRule) (Sample, bool) {
	index := sample.Index(name)
	active := index >= 0

	// 1) Winner of each partition.
	presentWinner, hasPresent := lowestPriority(rules, func(r coin.DependencyRule) bool {
		return r.Active && sample.Contains(r.Name)
	})
	absentWinner, hasAbsent := lowestPriority(rules, func(r coin.DependencyRule) bool {
		return !r.Active && !sample.Contains(r.Name)
	})

	// 2) Overall winner; the absent partition takes equal priorities.
	switch {
	case hasPresent && hasAbsent:
		if absentWinner.Priority <= presentWinner.Priority {
			active = absentWinner.Behavior
		} else {
			active = presentWinner.Behavior
		}
	case hasPresent:
		active = presentWinner.Behavior
	case hasAbsent:
		active = absentWinner.Behavior
	}

	// 3) Thread the outcome into the next sample.
	next := sample
	switch {
	case active && index < 0:
		next = append(slices.Clone(sample), name)
	case !active && index >= 0:
		next = slices.Clone(sample)
		next[index] = sampler.NoValue
	}

	return next, active
}

// lowestPriority returns the first rule with the smallest Priority among
// those accepted by keep.
func lowestPriority(rules []coin.DependencyRule, keep func(coin.DependencyRule) bool) (coin.DependencyRule, bool) {
	var (
		best  coin.DependencyRule
		found bool
	)
	for _, r := range rules {
		if !keep(r) {
			continue
		}
		if !found || r.Priority < best.Priority {
			best, found = r, true
		}
	}

	return best, found
}

// resolve folds Resolve over the picking order and returns the activation of
// every coin and variant name together with the final sample.
func (c *Chest) resolve(sample Sample) (map[string]bool, Sample) {
	active := make(map[string]bool, len(c.byName))
	for _, cn := range c.order {
		if cn.IsMultivariant() {
			for _, v := range cn.Variants() {
				if v.IsDependent() {
					sample, active[v.Name()] = Resolve(sample, v.Name(), v.DependsOn())
					continue
				}
				active[v.Name()] = sample.Contains(v.Name())
			}
			continue
		}
		if cn.IsDependent() {
			sample, active[cn.Name()] = Resolve(sample, cn.Name(), cn.DependsOn())
			continue
		}
		active[cn.Name()] = sample.Contains(cn.Name())
	}

	return active, sample
}
