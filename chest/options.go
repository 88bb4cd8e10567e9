// SPDX-License-Identifier: MIT

package chest

import (
	"io"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/bandit/sampler"
)

// DefaultSampleSize is the population size every coin is flipped with.
const DefaultSampleSize = 100

// Option configures a Chest at construction time.
// Option constructors panic on meaningless values; New never panics.
type Option func(*options)

type options struct {
	rng        *rand.Rand       // nil → global concurrency-safe source
	logger     *slog.Logger     // never nil after defaultOptions
	pick       sampler.PickFunc // draw strategy
	sampleSize int              // population size
}

func defaultOptions() options {
	return options{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		pick:       sampler.PickSample,
		sampleSize: DefaultSampleSize,
	}
}

// WithSeed makes flips reproducible with a seeded source.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides an explicit random source. The Chest serializes access
// to it. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("chest: WithRand(nil)")
	}
	return func(o *options) {
		o.rng = r
	}
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("chest: WithLogger(nil)")
	}
	return func(o *options) {
		o.logger = l
	}
}

// WithLegacyPick replaces the uniform pick with one that never selects the
// last population slot. Only the pick step changes; the shuffle stays an
// unbiased Fisher–Yates, so activation odds after it are close to p/99 for a
// coin of probability p but are not an exact replay of historical draws.
func WithLegacyPick() Option {
	return func(o *options) {
		o.pick = sampler.PickLegacy
	}
}

// WithSampleSize overrides the population size. Probabilities stay on the
// 0..100 scale, so sizes other than 100 change their meaning. Panics if
// n < 1.
func WithSampleSize(n int) Option {
	if n < 1 {
		panic("chest: WithSampleSize(n<1)")
	}
	return func(o *options) {
		o.sampleSize = n
	}
}
