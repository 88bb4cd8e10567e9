// Package bandit assigns A/B tests and feature flags by weighted random
// sampling, with dependency rules that let one test force another's outcome.
//
// What is a coin?
//
//	Every test is a coin. Flipping a coin fills a population of 100 slots
//	with its name (probability slots) or with variant names, shuffles it and
//	picks one slot. Four kinds exist:
//		• normal                - active with its probability
//		• dependent             - like normal, plus dependency rules
//		• multivariant          - exactly one variant (or none) is picked
//		• dependentMultivariant - multivariant whose variants may carry rules
//
// What is a dependency rule?
//
//	{name: B, active: true, behavior: false, priority: 0} on test D reads
//	"when B is present, force D inactive". Rules whose condition holds
//	compete by priority (lowest wins) and the winner's behavior replaces the
//	raw draw. Dependents are resolved after what they depend on, so a forced
//	outcome propagates down a chain.
//
// Packages:
//
//	sampler/   - buckets → population → shuffle → pick
//	digraph/   - generic directed graph, cycle detection, topological order, DOT
//	coin/      - definitions, validation and immutable Coin/Variant values
//	converter/ - right-to-left composition of record transforms
//	chest/     - the assignment engine: New, FlipCoins, MixCoins
//	config/    - YAML/JSON definition files and hot reload
//	telemetry/ - Prometheus activation counters as a converter
//
// Quick example:
//
//	c, err := chest.New([]coin.Definition{
//		{Name: "banner", Type: "normal", Probability: coin.Prob(30)},
//		{Name: "checkout", Type: "dependent", Probability: coin.Prob(60),
//			DependsOn: []coin.DependencyRule{{Name: "banner", Active: true, Behavior: false}}},
//	})
//	mix := c.MixCoins(chest.SetField("assignmentId", id))
//	if mix["checkout"].Active { ... }
//
// The bandit command (cmd/bandit) exposes the same engine over a
// definitions file: validate, flip, mix, simulate, graph and watch.
package bandit
