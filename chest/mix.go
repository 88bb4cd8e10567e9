// SPDX-License-Identifier: MIT

package chest

import (
	"encoding/json"
	"log/slog"
	"maps"
	"slices"

	"github.com/katalvlaran/bandit/coin"
	"github.com/katalvlaran/bandit/converter"
)

// Record is the per-name result of a mix: a simple coin or one variant of a
// multivariant coin, tagged with its activation.
//
// Fields holds values added by converters. In JSON they are inlined next to
// the fixed keys; a field never overrides a fixed key.
type Record struct {
	Name        string
	Coin        string // owning coin; equals Name for simple coins
	Type        coin.Type
	Probability int
	Metadata    map[string]any
	DependsOn   []coin.DependencyRule
	Active      bool
	Fields      map[string]any
}

// Converter transforms a Record after activation is computed.
type Converter = converter.Func[Record]

// With returns a copy of r with Fields[key] set to value.
func (r Record) With(key string, value any) Record {
	fields := make(map[string]any, len(r.Fields)+1)
	maps.Copy(fields, r.Fields)
	fields[key] = value
	r.Fields = fields

	return r
}

// Field returns Fields[key].
func (r Record) Field(key string) (any, bool) {
	v, ok := r.Fields[key]

	return v, ok
}

// MarshalJSON inlines Fields next to the fixed keys.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+7)
	maps.Copy(out, r.Fields)
	out["name"] = r.Name
	out["coin"] = r.Coin
	out["type"] = r.Type
	out["probability"] = r.Probability
	out["metadata"] = r.Metadata
	out["active"] = r.Active
	if len(r.DependsOn) > 0 {
		out["dependsOn"] = r.DependsOn
	} else {
		delete(out, "dependsOn")
	}

	return json.Marshal(out)
}

// SetField returns a converter that sets Fields[key] to value on every record.
func SetField(key string, value any) Converter {
	return func(r Record) Record {
		return r.With(key, value)
	}
}

// When returns a converter that applies fn only to records accepted by pred.
func When(pred func(Record) bool, fn Converter) Converter {
	return func(r Record) Record {
		if pred(r) {
			return fn(r)
		}
		return r
	}
}

// MixCoins flips every coin, resolves dependencies and returns one Record
// per simple coin and per variant, keyed by name.
//
// converters run after activation tagging, right to left: the first
// converter given runs last and wins conflicting fields.
//
// Complexity: O(T·S) for the flip plus the MixSample cost.
func (c *Chest) MixCoins(converters ...Converter) map[string]Record {
	return c.MixSample(c.FlipCoins(), converters...)
}

// MixSample is MixCoins over a caller-supplied raw sample, typically one
// returned by FlipCoins. sample is not modified.
//
// Complexity: O(R·n) to resolve R rules over a sample of length n, plus
// O(N·C) to convert N records through C converters.
func (c *Chest) MixSample(sample Sample, converters ...Converter) map[string]Record {
	active, resolved := c.resolve(slices.Clone(sample))

	c.logger.Debug("coins mixed",
		slog.Any("sample", sample.Picked()),
		slog.Any("resolved", resolved.Picked()),
	)

	tagger := func(r Record) Record {
		r.Active = active[r.Name]
		return r
	}
	chain := append(slices.Clone(converters), tagger)
	records := converter.Apply(c.records(), chain...)

	mix := make(map[string]Record, len(records))
	for _, r := range records {
		mix[r.Name] = r
	}

	return mix
}

// records returns one untagged Record per simple coin and per variant, in
// picking order.
func (c *Chest) records() []Record {
	out := make([]Record, 0, len(c.byName))
	for _, cn := range c.order {
		if !cn.IsMultivariant() {
			out = append(out, Record{
				Name:        cn.Name(),
				Coin:        cn.Name(),
				Type:        cn.Type(),
				Probability: cn.Probability(),
				Metadata:    cn.Metadata(),
				DependsOn:   cn.DependsOn(),
			})
			continue
		}
		for _, v := range cn.Variants() {
			out = append(out, Record{
				Name:        v.Name(),
				Coin:        cn.Name(),
				Type:        v.Type(),
				Probability: v.Probability(),
				Metadata:    v.Metadata(),
				DependsOn:   v.DependsOn(),
			})
		}
	}

	return out
}

// ActiveNames returns the active names of mix, sorted.
func ActiveNames(mix map[string]Record) []string {
	out := make([]string, 0, len(mix))
	for name, r := range mix {
		if r.Active {
			out = append(out, name)
		}
	}
	slices.Sort(out)

	return out
}
