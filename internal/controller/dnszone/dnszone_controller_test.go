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

package dnszone

import (
	"context"
	"testing"

	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

func TestReconcileReturnsEmptyResultWhenZoneGone(t *testing.T) {
	s := testScheme(t)
	c := fake.NewClientBuilder().WithScheme(s).Build()
	r := &DNSZoneReconciler{Client: c, Scheme: s, Recorder: newTestRecorder()}

	result, err := r.Reconcile(context.Background(), ctrl.Request{})
	if err != nil {
		t.Fatalf("Reconcile() error = %v, want nil for a deleted zone", err)
	}
	if result.Requeue || result.RequeueAfter != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestReconcileAddsFinalizerOnFirstPass(t *testing.T) {
	s := testScheme(t)
	zone := newTestZone("example-com", "example.com.", "dns-system")
	c := fake.NewClientBuilder().
		WithScheme(s).
		WithObjects(zone).
		WithStatusSubresource(&bindyv1beta1.DNSZone{}).
		Build()
	r := &DNSZoneReconciler{Client: c, Scheme: s, Recorder: newTestRecorder()}

	req := ctrl.Request{NamespacedName: client.ObjectKeyFromObject(zone)}
	if _, err := r.Reconcile(context.Background(), req); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	refetched := &bindyv1beta1.DNSZone{}
	if err := c.Get(context.Background(), req.NamespacedName, refetched); err != nil {
		t.Fatalf("get zone: %v", err)
	}
	if len(refetched.Finalizers) == 0 {
		t.Error("expected the finalizer to be added on the first reconcile")
	}
}

func TestMapInstanceToZonesEnqueuesOnlyServingZones(t *testing.T) {
	s := testScheme(t)
	inst := newTestZoneInstance("prod-primary-0", "dns-system", bindyv1beta1.RolePrimary)

	serving := newTestZone("serving-zone", "example.com.", "dns-system")
	serving.Status.Bind9Instances = []bindyv1beta1.ZoneReference{{Name: inst.Name, Namespace: inst.Namespace}}
	unrelated := newTestZone("unrelated-zone", "other.com.", "dns-system")

	c := fake.NewClientBuilder().WithScheme(s).WithObjects(serving, unrelated).Build()

	requests := mapInstanceToZones(c, ctrl.Log)(context.Background(), inst)
	if len(requests) != 1 {
		t.Fatalf("len(requests) = %d, want 1", len(requests))
	}
	if requests[0].Name != "serving-zone" {
		t.Errorf("requests[0].Name = %q, want serving-zone", requests[0].Name)
	}
}
