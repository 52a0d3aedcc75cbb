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
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	corev1 "k8s.io/api/core/v1"
	apimeta "k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/condition"
	"github.com/firestoned/bindy/internal/constant"
)

func newTestRecorder() *record.FakeRecorder {
	return record.NewFakeRecorder(32)
}

func fakeFactory(calls *[]string) bindcarClientFactory {
	return func(server, token string, log logr.Logger) bindcarClient {
		return &fakeBindcarClient{server: server, calls: calls, added: true}
	}
}

func TestReconcileZoneAddsFinalizerOnFirstPass(t *testing.T) {
	s := testScheme(t)
	zone := newTestZone("example-com", "example.com.", "dns-system")
	c := fake.NewClientBuilder().WithScheme(s).WithObjects(zone).WithStatusSubresource(&bindyv1beta1.DNSZone{}).Build()

	var calls []string
	result, err := reconcileZone(context.Background(), c, newTestRecorder(), testr.New(t), fakeFactory(&calls), "token", zone)
	if err != nil {
		t.Fatalf("reconcileZone() [finalizer add] error = %v", err)
	}
	// The zone selects no instances, so the pass ends in NotReady with the periodic requeue.
	if result.Requeue || result.RequeueAfter != 30*time.Second {
		t.Errorf("result = %+v, want RequeueAfter 30s after finalizer add", result)
	}

	refetched := &bindyv1beta1.DNSZone{}
	if err := c.Get(context.Background(), types.NamespacedName{Name: zone.Name, Namespace: zone.Namespace}, refetched); err != nil {
		t.Fatalf("get zone after first reconcile: %v", err)
	}
	if len(refetched.Finalizers) == 0 {
		t.Fatal("expected finalizer to be set after first reconcile")
	}
}

func TestReconcileZoneFullFlowAppliesToPrimaryAndSecondary(t *testing.T) {
	s := testScheme(t)
	zone := newTestZone("example-com", "example.com.", "dns-system")
	zone.Finalizers = []string{constant.FinalizerDNSZone}

	primary := newTestZoneInstance("prod-primary-0", "dns-system", bindyv1beta1.RolePrimary)
	primary.Labels = map[string]string{constant.LabelCluster: "prod"}
	secondary := newTestZoneInstance("prod-secondary-0", "dns-system", bindyv1beta1.RoleSecondary)
	secondary.Labels = map[string]string{constant.LabelCluster: "prod"}
	zone.Spec.ClusterRef = "prod"

	primaryPod := newTestPod("prod-primary-0-aaa", "dns-system", primary.Name, corev1.PodRunning, "10.0.0.5")
	secondaryPod := newTestPod("prod-secondary-0-aaa", "dns-system", secondary.Name, corev1.PodRunning, "10.0.0.6")
	primarySecret := newTestRndcSecret(primary.Name, "dns-system")

	c := fake.NewClientBuilder().
		WithScheme(s).
		WithObjects(zone, primary, secondary, primaryPod, secondaryPod, primarySecret).
		WithStatusSubresource(&bindyv1beta1.DNSZone{}).
		Build()

	var calls []string
	result, err := reconcileZone(context.Background(), c, newTestRecorder(), testr.New(t), fakeFactory(&calls), "token", zone)
	if err != nil {
		t.Fatalf("reconcileZone() error = %v", err)
	}
	if result.RequeueAfter == 0 {
		t.Errorf("result = %+v, want non-zero requeue", result)
	}
	if len(calls) != 2 {
		t.Fatalf("calls = %v, want primary then secondary zone push", calls)
	}

	refetched := &bindyv1beta1.DNSZone{}
	if err := c.Get(context.Background(), types.NamespacedName{Name: zone.Name, Namespace: zone.Namespace}, refetched); err != nil {
		t.Fatalf("get zone after reconcile: %v", err)
	}
	if len(refetched.Status.Bind9Instances) != 2 {
		t.Fatalf("Status.Bind9Instances = %+v, want 2 entries", refetched.Status.Bind9Instances)
	}
	if len(refetched.Status.SecondaryIPs) != 1 || refetched.Status.SecondaryIPs[0] != "10.0.0.6" {
		t.Errorf("Status.SecondaryIPs = %v, want [10.0.0.6]", refetched.Status.SecondaryIPs)
	}
	readyCond := apimeta.FindStatusCondition(refetched.Status.Conditions, condition.TypeReady)
	if readyCond == nil || readyCond.Status != metav1.ConditionTrue {
		t.Errorf("Ready condition = %+v, want True", readyCond)
	}
}

func TestReconcileZoneNoPrimarySetsNotReady(t *testing.T) {
	s := testScheme(t)
	zone := newTestZone("example-com", "example.com.", "dns-system")
	zone.Finalizers = []string{constant.FinalizerDNSZone}
	zone.Spec.ClusterRef = "prod"

	secondary := newTestZoneInstance("prod-secondary-0", "dns-system", bindyv1beta1.RoleSecondary)
	secondary.Labels = map[string]string{constant.LabelCluster: "prod"}

	c := fake.NewClientBuilder().
		WithScheme(s).
		WithObjects(zone, secondary).
		WithStatusSubresource(&bindyv1beta1.DNSZone{}).
		Build()

	var calls []string
	if _, err := reconcileZone(context.Background(), c, newTestRecorder(), testr.New(t), fakeFactory(&calls), "token", zone); err != nil {
		t.Fatalf("reconcileZone() error = %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("calls = %v, want none since no primary is selected", calls)
	}

	refetched := &bindyv1beta1.DNSZone{}
	if err := c.Get(context.Background(), types.NamespacedName{Name: zone.Name, Namespace: zone.Namespace}, refetched); err != nil {
		t.Fatalf("get zone after reconcile: %v", err)
	}
	readyCond := apimeta.FindStatusCondition(refetched.Status.Conditions, condition.TypeReady)
	if readyCond == nil || readyCond.Status != metav1.ConditionFalse {
		t.Errorf("Ready condition = %+v, want False", readyCond)
	}
}

func TestReconcileZoneConflictSkipsApply(t *testing.T) {
	s := testScheme(t)
	inst := newTestZoneInstance("prod-primary-0", "dns-system", bindyv1beta1.RolePrimary)
	inst.Labels = map[string]string{constant.LabelCluster: "prod"}

	existing := newTestZone("existing-zone", "example.com.", "dns-system")
	existing.Status.Bind9Instances = []bindyv1beta1.ZoneReference{{Name: inst.Name, Namespace: inst.Namespace}}

	zone := newTestZone("new-zone", "example.com.", "dns-system")
	zone.Finalizers = []string{constant.FinalizerDNSZone}
	zone.Spec.ClusterRef = "prod"

	c := fake.NewClientBuilder().
		WithScheme(s).
		WithObjects(zone, existing, inst).
		WithStatusSubresource(&bindyv1beta1.DNSZone{}).
		Build()

	var calls []string
	if _, err := reconcileZone(context.Background(), c, newTestRecorder(), testr.New(t), fakeFactory(&calls), "token", zone); err != nil {
		t.Fatalf("reconcileZone() error = %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("calls = %v, want none since the zone name conflicts", calls)
	}

	refetched := &bindyv1beta1.DNSZone{}
	if err := c.Get(context.Background(), types.NamespacedName{Name: zone.Name, Namespace: zone.Namespace}, refetched); err != nil {
		t.Fatalf("get zone after reconcile: %v", err)
	}
	readyCond := apimeta.FindStatusCondition(refetched.Status.Conditions, condition.TypeReady)
	if readyCond == nil || readyCond.Reason != condition.ReasonZoneConflict {
		t.Errorf("Ready condition = %+v, want reason %q", readyCond, condition.ReasonZoneConflict)
	}
}

func TestReconcileZoneDeletionCleansUpInstancesAndRemovesFinalizer(t *testing.T) {
	s := testScheme(t)
	inst := newTestZoneInstance("prod-primary-0", "dns-system", bindyv1beta1.RolePrimary)
	pod := newTestPod("prod-primary-0-aaa", "dns-system", inst.Name, corev1.PodRunning, "10.0.0.5")

	zone := newTestZone("example-com", "example.com.", "dns-system")
	zone.Finalizers = []string{constant.FinalizerDNSZone}
	zone.Status.Bind9Instances = []bindyv1beta1.ZoneReference{{Name: inst.Name, Namespace: inst.Namespace}}
	now := metav1.Now()
	zone.DeletionTimestamp = &now

	c := fake.NewClientBuilder().
		WithScheme(s).
		WithObjects(zone, inst, pod).
		WithStatusSubresource(&bindyv1beta1.DNSZone{}).
		Build()

	var calls []string
	if _, err := reconcileZone(context.Background(), c, newTestRecorder(), testr.New(t), fakeFactory(&calls), "token", zone); err != nil {
		t.Fatalf("reconcileZone() error = %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("calls = %v, want one DeleteZone call", calls)
	}

	refetched := &bindyv1beta1.DNSZone{}
	err := c.Get(context.Background(), types.NamespacedName{Name: zone.Name, Namespace: zone.Namespace}, refetched)
	if err == nil {
		t.Error("expected zone to be gone once the finalizer is removed on an already-deleted object")
	}
}
