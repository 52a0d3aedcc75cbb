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

package bind9instance

import (
	"context"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/constant"
)

// testScheme registers both the built-in Kubernetes kinds (ConfigMap, Secret, Deployment,
// Service, ServiceAccount) and the bindy CRDs, so fake-client tests can exercise the full
// resource pipeline.
func testScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	s := runtime.NewScheme()
	if err := clientgoscheme.AddToScheme(s); err != nil {
		t.Fatalf("clientgoscheme.AddToScheme() error = %v", err)
	}
	if err := bindyv1beta1.AddToScheme(s); err != nil {
		t.Fatalf("bindyv1beta1.AddToScheme() error = %v", err)
	}
	return s
}

func TestResolveClusterContextStandalone(t *testing.T) {
	s := testScheme(t)
	c := fake.NewClientBuilder().WithScheme(s).Build()
	inst := &bindyv1beta1.Bind9Instance{
		ObjectMeta: metav1.ObjectMeta{Name: "standalone", Namespace: "dns-system"},
	}

	cc, err := resolveClusterContext(context.Background(), c, inst)
	if err != nil {
		t.Fatalf("resolveClusterContext() error = %v", err)
	}
	if cc.managed {
		t.Error("managed = true, want false for a standalone instance")
	}
}

func TestResolveClusterContextViaOwnerReference(t *testing.T) {
	s := testScheme(t)
	cluster := &bindyv1beta1.Bind9Cluster{
		ObjectMeta: metav1.ObjectMeta{Name: "prod", Namespace: "dns-system", UID: "cluster-uid"},
		Spec: bindyv1beta1.Bind9ClusterSpec{
			Common: bindyv1beta1.CommonSpec{Global: bindyv1beta1.GlobalConfig{Recursion: true}},
		},
	}
	c := fake.NewClientBuilder().WithScheme(s).WithObjects(cluster).Build()

	inst := &bindyv1beta1.Bind9Instance{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "prod-primary-0",
			Namespace: "dns-system",
			OwnerReferences: []metav1.OwnerReference{
				{Kind: "Bind9Cluster", Name: "prod", UID: "cluster-uid"},
			},
		},
	}

	cc, err := resolveClusterContext(context.Background(), c, inst)
	if err != nil {
		t.Fatalf("resolveClusterContext() error = %v", err)
	}
	if !cc.managed {
		t.Fatal("managed = false, want true via ownerReference")
	}
	if cc.cluster != "prod" {
		t.Errorf("cluster = %q, want %q", cc.cluster, "prod")
	}
	if !cc.common.Global.Recursion {
		t.Error("expected common spec propagated from the owning cluster")
	}
}

func TestResolveClusterContextViaClusterRefFallback(t *testing.T) {
	s := testScheme(t)
	cluster := &bindyv1beta1.Bind9Cluster{
		ObjectMeta: metav1.ObjectMeta{Name: "prod", Namespace: "dns-system"},
	}
	c := fake.NewClientBuilder().WithScheme(s).WithObjects(cluster).Build()

	inst := &bindyv1beta1.Bind9Instance{
		ObjectMeta: metav1.ObjectMeta{Name: "standalone", Namespace: "dns-system"},
		Spec:       bindyv1beta1.Bind9InstanceSpec{ClusterRef: bindyv1beta1.ClusterReference{Name: "prod"}},
	}

	cc, err := resolveClusterContext(context.Background(), c, inst)
	if err != nil {
		t.Fatalf("resolveClusterContext() error = %v", err)
	}
	if !cc.managed || cc.cluster != "prod" {
		t.Errorf("cc = %+v, want managed via spec.clusterRef.name", cc)
	}
}

func TestIsClusterManaged(t *testing.T) {
	managed := &bindyv1beta1.Bind9Instance{
		ObjectMeta: metav1.ObjectMeta{Labels: map[string]string{constant.LabelManagedBy: "bind9cluster"}},
	}
	standalone := &bindyv1beta1.Bind9Instance{}

	if !isClusterManaged(managed) {
		t.Error("isClusterManaged() = false, want true")
	}
	if isClusterManaged(standalone) {
		t.Error("isClusterManaged() = true, want false")
	}
}
