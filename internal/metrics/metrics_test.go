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

package metrics

import (
	"errors"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveReconcileRecordsSuccessAndError(t *testing.T) {
	ReconcileDuration.Reset()

	ObserveReconcile("Bind9Instance", time.Now().Add(-10*time.Millisecond), nil)
	ObserveReconcile("Bind9Instance", time.Now().Add(-10*time.Millisecond), errors.New("boom"))

	if got := testutil.CollectAndCount(ReconcileDuration); got != 2 {
		t.Errorf("CollectAndCount() = %d, want 2 (one series per outcome)", got)
	}

	var m dto.Metric
	if err := ReconcileDuration.WithLabelValues("Bind9Instance", OutcomeSuccess).Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := m.GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("success series sample count = %d, want 1", got)
	}
}
