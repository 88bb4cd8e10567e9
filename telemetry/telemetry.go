// SPDX-License-Identifier: MIT

// Package telemetry counts assignment outcomes with Prometheus.
//
// A Recorder is attached to a mix as a converter, so every record that
// leaves MixCoins is counted under its name and activation:
//
//	reg := prometheus.NewRegistry()
//	rec := telemetry.NewRecorder(reg)
//	mix := c.MixCoins(rec.Converter())
//
// Rates turns the gathered counters back into observed activation rates,
// which is how the simulate command checks configured probabilities.
package telemetry

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/bandit/chest"
)

// MetricActivations is the counter family written by a Recorder.
const MetricActivations = "bandit_activations_total"

// Recorder counts activations per name.
type Recorder struct {
	activations *prometheus.CounterVec
}

// NewRecorder registers the activation counter on reg. Registering twice on
// the same registry panics, as with any promauto collector.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	return &Recorder{
		activations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: MetricActivations,
			Help: "Mixed records by test name and activation.",
		}, []string{"name", "coin", "active"}),
	}
}

// Observe counts one record.
func (r *Recorder) Observe(rec chest.Record) {
	if r == nil || r.activations == nil {
		return
	}
	r.activations.WithLabelValues(rec.Name, rec.Coin, strconv.FormatBool(rec.Active)).Inc()
}

// Converter returns a pass-through converter that observes each record.
// Give it first to MixCoins so it sees the output of every other converter.
func (r *Recorder) Converter() chest.Converter {
	return func(rec chest.Record) chest.Record {
		r.Observe(rec)
		return rec
	}
}

// Rate is the observed activation of one name.
type Rate struct {
	Name   string  `json:"name"`
	Coin   string  `json:"coin"`
	Active float64 `json:"active"`
	Total  float64 `json:"total"`
}

// Ratio is Active/Total, or 0 before any observation.
func (r Rate) Ratio() float64 {
	if r.Total == 0 {
		return 0
	}
	return r.Active / r.Total
}

// Rates gathers MetricActivations from g and folds the active label away.
func Rates(g prometheus.Gatherer) (map[string]Rate, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("telemetry: gather: %w", err)
	}

	out := make(map[string]Rate)
	for _, mf := range families {
		if mf.GetName() != MetricActivations {
			continue
		}
		for _, m := range mf.GetMetric() {
			var name, coinName, active string
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "name":
					name = lp.GetValue()
				case "coin":
					coinName = lp.GetValue()
				case "active":
					active = lp.GetValue()
				}
			}

			v := m.GetCounter().GetValue()
			rate := out[name]
			rate.Name, rate.Coin = name, coinName
			rate.Total += v
			if active == "true" {
				rate.Active += v
			}
			out[name] = rate
		}
	}

	return out, nil
}
