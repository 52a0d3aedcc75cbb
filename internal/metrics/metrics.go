/*
Copyright 2025 firestoned.

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

// Package metrics registers the operator's Prometheus metrics against controller-runtime's
// shared registry, served on the manager's existing metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// ReconcileDuration records how long one reconcile invocation took, labeled by controller
// kind and outcome, so slow or failing reconcilers are visible per-kind rather than
// aggregated away.
var ReconcileDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "bindy_reconcile_duration_seconds",
		Help:    "Duration of Reconcile calls by controller kind and outcome.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"kind", "outcome"},
)

func init() {
	metrics.Registry.MustRegister(ReconcileDuration)
}

// Outcome labels for ReconcileDuration.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// ObserveReconcile records the elapsed time since start for one reconcile of the given
// kind, labeling the observation by whether the reconcile returned an error.
func ObserveReconcile(kind string, start time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	ReconcileDuration.WithLabelValues(kind, outcome).Observe(time.Since(start).Seconds())
}
