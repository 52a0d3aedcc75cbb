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

package record

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// findOwningZone looks for the DNSZone in obj's namespace whose status.records[] names this
// CR (spec.md §4.14 apply-path step 1), returning the zone and the index of the matching
// entry in its status.records[] so the caller can patch lastReconciledAt in place.
func findOwningZone(ctx context.Context, c client.Client, kind string, obj object) (*bindyv1beta1.DNSZone, int, error) {
	list := &bindyv1beta1.DNSZoneList{}
	if err := c.List(ctx, list, client.InNamespace(obj.GetNamespace())); err != nil {
		return nil, -1, fmt.Errorf("list zones in namespace %s: %w", obj.GetNamespace(), err)
	}

	for i := range list.Items {
		zone := &list.Items[i]
		for j, ref := range zone.Status.Records {
			if ref.Kind == kind && ref.Name == obj.GetName() && ref.Namespace == obj.GetNamespace() {
				return zone, j, nil
			}
		}
	}
	return nil, -1, nil
}

// markZoneRecordReconciled patches zone.status.records[idx] with the current time and the
// record's generation, then persists the status (spec.md §4.14 apply-path step 5).
func markZoneRecordReconciled(ctx context.Context, c client.Client, zone *bindyv1beta1.DNSZone, idx int, generation int64) error {
	now := metav1.Now()
	zone.Status.Records[idx].LastReconciledAt = &now
	zone.Status.Records[idx].ObservedGeneration = generation
	return c.Status().Update(ctx, zone)
}
