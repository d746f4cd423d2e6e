/*
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package glue

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "sis_scheduler"
	subsystem = "core"

	classLabel = "class"
)

// promMetrics is the set of Prometheus collectors the glue updates
// inside its own critical section, so a scrape never observes a torn
// read of related counters. They are registered against a private
// registry owned by the Glue instance, not the default global one, so
// more than one Glue can coexist in a test binary without a
// "duplicate metrics collector" panic.
type promMetrics struct {
	admitted          *prometheus.CounterVec
	rejected          *prometheus.CounterVec
	active            prometheus.Gauge
	contextSwitches   prometheus.Counter
	utilizationPPM    prometheus.Gauge
	invariantViolated prometheus.Counter
}

func newPromMetrics(reg prometheus.Registerer) *promMetrics {
	m := &promMetrics{
		admitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "admitted_total",
			Help:      "Number of reservations admitted in total, labeled by entity class.",
		}, []string{classLabel}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rejected_total",
			Help:      "Number of admission requests rejected in total, labeled by the reason (error kind).",
		}, []string{"reason"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_reservations",
			Help:      "Number of reservations currently admitted and live.",
		}),
		contextSwitches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "context_switches_total",
			Help:      "Number of times schedule() returned an entity id different from the previous call.",
		}),
		utilizationPPM: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "utilization_ppm",
			Help:      "Currently admitted aggregate utilization, in parts-per-million.",
		}),
		invariantViolated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "invariant_violations_total",
			Help:      "Number of admit or complete calls that failed with an internal bookkeeping inconsistency, including calls refused after the scheduler latched.",
		}),
	}
	reg.MustRegister(m.admitted, m.rejected, m.active, m.contextSwitches, m.utilizationPPM, m.invariantViolated)
	return m
}
