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

package ownership

import (
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/scheme"

	"github.com/firestoned/bindy/internal/constant"
)

func TestSetOwnershipStampsLabelsAndOwnerReference(t *testing.T) {
	s := runtime.NewScheme()
	if err := scheme.AddToScheme(s); err != nil {
		t.Fatalf("AddToScheme() error = %v", err)
	}

	owner := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "bind9-instance-0", Namespace: "dns-system", UID: "abc-123"},
		TypeMeta:   metav1.TypeMeta{Kind: "ConfigMap", APIVersion: "v1"},
	}
	child := &corev1.Secret{ObjectMeta: metav1.ObjectMeta{Name: "bind9-instance-0-rndc", Namespace: "dns-system"}}

	if err := SetOwnership(child, owner, s, Options{
		InstanceName: "bind9-instance-0",
		ManagedBy:    "bind9cluster",
		Cluster:      "prod",
		Role:         constant.RoleValuePrimary,
	}); err != nil {
		t.Fatalf("SetOwnership() error = %v", err)
	}

	labels := child.GetLabels()
	want := map[string]string{
		constant.LabelApp:          constant.AppNameBind9,
		constant.LabelAppName:      constant.AppNameBind9,
		constant.LabelAppComponent: constant.AppComponentServer,
		constant.LabelAppManagedBy: constant.AppManagedByBindy,
		constant.LabelAppPartOf:    constant.AppPartOfBindy,
		constant.LabelInstance:     "bind9-instance-0",
		constant.LabelAppInstance:  "bind9-instance-0",
		constant.LabelManagedBy:    "bind9cluster",
		constant.LabelCluster:      "prod",
		constant.LabelRole:         constant.RoleValuePrimary,
	}
	for k, v := range want {
		if labels[k] != v {
			t.Errorf("label %s = %q, want %q", k, labels[k], v)
		}
	}

	ownerRefs := child.GetOwnerReferences()
	if len(ownerRefs) != 1 {
		t.Fatalf("OwnerReferences = %d, want 1", len(ownerRefs))
	}
	if ownerRefs[0].Name != "bind9-instance-0" {
		t.Errorf("owner reference name = %q, want bind9-instance-0", ownerRefs[0].Name)
	}
	if ownerRefs[0].Controller == nil || !*ownerRefs[0].Controller {
		t.Error("expected Controller=true on the owner reference")
	}
}

func TestGetKind(t *testing.T) {
	obj := &corev1.ConfigMap{TypeMeta: metav1.TypeMeta{Kind: "ConfigMap"}}
	if got := GetKind(obj); got != "ConfigMap" {
		t.Errorf("GetKind() = %q, want ConfigMap", got)
	}
}
