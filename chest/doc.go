// SPDX-License-Identifier: MIT

// Package chest is the assignment engine: it turns a list of test
// definitions into a Chest and flips every test into an activation outcome.
//
// What:
//
//   - New builds one coin per definition, rejects duplicate names across
//     coins and variants, builds the dependency graph (dependent →
//     dependency) and rejects cycles. No partially valid Chest is returned.
//   - FlipCoins draws one raw Sample: for every coin in picking order a
//     population of 100 slots is built from its weighted buckets, shuffled,
//     and one slot is picked.
//   - Resolve applies a dependent entity's rules to a Sample. It is a pure
//     fold step: it returns the updated Sample, so entities resolved later
//     in picking order observe resolved, not raw, outcomes.
//   - MixCoins flips, resolves, and runs the converter pipeline over one
//     Record per simple coin and per variant. The built-in activation tagger
//     is always the innermost converter.
//
// Override resolution:
//
//	Among a dependent's rules, candidates are the rules whose target is in
//	the sample with Active=true, and those whose target is absent with
//	Active=false. The candidate with the lowest Priority wins and its
//	Behavior becomes the activation. Inside a partition the first rule wins
//	a tie; between the two partition winners the absent-target one does.
//	Without a candidate the raw presence in the sample stands.
//
// Picking order:
//
//	Non-dependent coins come first in definition order. Dependent coins
//	follow, ordered dependencies-first by a topological traversal of the
//	coin-level dependency graph.
//
// Concurrency:
//
//	A Chest is safe for concurrent use. Coins are immutable and the random
//	source is guarded by a mutex.
//
// Errors:
//
//   - coin.ErrInvalidType, coin.ErrMissingField, coin.ErrProbabilityOutOfRange
//     from coin construction
//   - ErrDuplicateName       name used by more than one coin or variant
//   - ErrCircularDependency  dependency rules form a cycle
package chest
