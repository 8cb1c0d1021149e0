/*
   Copyright 2025 The DIRPX Authors

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

package faultx

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors an Interceptor reports into.
type Metrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates unregistered collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "faultx",
				Name:      "invocations_total",
				Help:      "Intercepted invocations by outcome",
			},
			[]string{"invocation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "faultx",
				Name:      "invocation_duration_seconds",
				Help:      "Wall time of intercepted work",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"invocation"},
		),
	}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns the underlying collectors.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.invocations, m.duration}
}

func (m *Metrics) observe(name string, o Outcome, d time.Duration) {
	if name == "" {
		name = "unnamed"
	}
	m.invocations.WithLabelValues(name, string(o)).Inc()
	m.duration.WithLabelValues(name).Observe(d.Seconds())
}
