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
	"testing"

	"github.com/go-logr/logr/testr"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/constant"
)

func newInstance(name, namespace string, role bindyv1beta1.Bind9Role) *bindyv1beta1.Bind9Instance {
	return &bindyv1beta1.Bind9Instance{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec:       bindyv1beta1.Bind9InstanceSpec{Role: role},
	}
}

func newRunningPod(name, namespace, instance, ip string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels: map[string]string{
				constant.LabelInstance:    instance,
				constant.LabelAppInstance: instance,
			},
		},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{{
				Name: "bind9",
				Ports: []corev1.ContainerPort{
					{Name: "dns-tcp", ContainerPort: 53},
					{Name: "http", ContainerPort: 8080},
				},
			}},
		},
		Status: corev1.PodStatus{Phase: corev1.PodRunning, PodIP: ip},
	}
}

func TestResolvePrimaryInstanceFindsPrimaryAmongServingSet(t *testing.T) {
	s := testScheme(t)
	primary := newInstance("prod-0", "dns-system", bindyv1beta1.RolePrimary)
	secondary := newInstance("prod-1", "dns-system", bindyv1beta1.RoleSecondary)
	c := fake.NewClientBuilder().WithScheme(s).WithObjects(primary, secondary).Build()

	zone := &bindyv1beta1.DNSZone{
		Status: bindyv1beta1.DNSZoneStatus{
			Bind9Instances: []bindyv1beta1.PodInfo{
				{Name: "prod-1", Namespace: "dns-system"},
				{Name: "prod-0", Namespace: "dns-system"},
			},
		},
	}

	got, err := resolvePrimaryInstance(context.Background(), c, zone)
	if err != nil {
		t.Fatalf("resolvePrimaryInstance() error = %v", err)
	}
	if got.Name != "prod-0" {
		t.Errorf("got instance %q, want prod-0", got.Name)
	}
}

func TestResolvePrimaryInstanceErrorsWhenNoPrimaryPresent(t *testing.T) {
	s := testScheme(t)
	secondary := newInstance("prod-1", "dns-system", bindyv1beta1.RoleSecondary)
	c := fake.NewClientBuilder().WithScheme(s).WithObjects(secondary).Build()

	zone := &bindyv1beta1.DNSZone{
		Status: bindyv1beta1.DNSZoneStatus{
			Bind9Instances: []bindyv1beta1.PodInfo{{Name: "prod-1", Namespace: "dns-system"}},
		},
	}

	if _, err := resolvePrimaryInstance(context.Background(), c, zone); err == nil {
		t.Fatal("resolvePrimaryInstance() error = nil, want error")
	}
}

func TestResolveDNSEndpointPicksLowestNamedReachablePod(t *testing.T) {
	s := testScheme(t)
	inst := newInstance("prod-0", "dns-system", bindyv1beta1.RolePrimary)
	podB := newRunningPod("prod-0-b", "dns-system", "prod-0", "10.0.0.2")
	podA := newRunningPod("prod-0-a", "dns-system", "prod-0", "10.0.0.1")
	pending := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "prod-0-pending", Namespace: "dns-system", Labels: podA.Labels},
		Status:     corev1.PodStatus{Phase: corev1.PodPending},
	}
	c := fake.NewClientBuilder().WithScheme(s).WithObjects(inst, podB, podA, pending).Build()

	ip, port, err := resolveDNSEndpoint(context.Background(), testr.New(t), c, inst)
	if err != nil {
		t.Fatalf("resolveDNSEndpoint() error = %v", err)
	}
	if ip != "10.0.0.1" {
		t.Errorf("ip = %q, want 10.0.0.1", ip)
	}
	if port != 53 {
		t.Errorf("port = %d, want 53", port)
	}
}

func TestResolveDNSEndpointErrorsWhenNoPodReachable(t *testing.T) {
	s := testScheme(t)
	inst := newInstance("prod-0", "dns-system", bindyv1beta1.RolePrimary)
	c := fake.NewClientBuilder().WithScheme(s).WithObjects(inst).Build()

	if _, _, err := resolveDNSEndpoint(context.Background(), testr.New(t), c, inst); err == nil {
		t.Fatal("resolveDNSEndpoint() error = nil, want error")
	}
}
