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
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/constant"
)

func newTestInstance(name string) *bindyv1beta1.Bind9Instance {
	return &bindyv1beta1.Bind9Instance{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "dns-system", UID: types.UID(name + "-uid")},
		Spec:       bindyv1beta1.Bind9InstanceSpec{Role: bindyv1beta1.RolePrimary, Replicas: 1},
	}
}

func TestResolveRndcKeyConfigPrecedence(t *testing.T) {
	secondaryRef := &corev1.LocalObjectReference{Name: "external"}

	t.Run("instance-level secretRef wins outright", func(t *testing.T) {
		inst := newTestInstance("inst")
		inst.Spec.RndcSecretRef = secondaryRef
		cc := clusterContext{managed: true, common: bindyv1beta1.CommonSpec{
			RndcKeyConfig: &bindyv1beta1.RndcKeyConfig{AutoRotate: true},
		}}
		cfg := resolveRndcKeyConfig(inst, cc)
		if cfg.SecretRef == nil || cfg.SecretRef.Name != "external" {
			t.Fatalf("cfg.SecretRef = %+v, want external", cfg.SecretRef)
		}
	})

	t.Run("cluster-role level beats cluster-global", func(t *testing.T) {
		inst := newTestInstance("inst")
		cc := clusterContext{managed: true, common: bindyv1beta1.CommonSpec{
			Primary:       bindyv1beta1.RoleSpec{RndcKeyConfig: &bindyv1beta1.RndcKeyConfig{RotateAfter: "48h"}},
			RndcKeyConfig: &bindyv1beta1.RndcKeyConfig{RotateAfter: "720h"},
		}}
		cfg := resolveRndcKeyConfig(inst, cc)
		if cfg.RotateAfter != "48h" {
			t.Errorf("RotateAfter = %q, want 48h (role-level)", cfg.RotateAfter)
		}
	})

	t.Run("falls back to built-in default when standalone", func(t *testing.T) {
		inst := newTestInstance("inst")
		cfg := resolveRndcKeyConfig(inst, clusterContext{managed: false})
		if cfg.Algorithm != bindyv1beta1.DefaultRndcAlgorithm || cfg.RotateAfter != bindyv1beta1.DefaultRndcRotateAfter {
			t.Errorf("cfg = %+v, want built-in defaults", cfg)
		}
	})
}

func TestEnsureRndcSecretGeneratesWhenAbsent(t *testing.T) {
	s := testScheme(t)
	c := fake.NewClientBuilder().WithScheme(s).Build()
	inst := newTestInstance("inst")

	name, rotated, err := ensureRndcSecret(context.Background(), c, s, inst, clusterContext{})
	if err != nil {
		t.Fatalf("ensureRndcSecret() error = %v", err)
	}
	if rotated {
		t.Error("rotated = true on first creation, want false")
	}
	if name != rndcSecretName(inst.Name) {
		t.Errorf("name = %q, want %q", name, rndcSecretName(inst.Name))
	}

	secret := &corev1.Secret{}
	if err := c.Get(context.Background(), types.NamespacedName{Name: name, Namespace: inst.Namespace}, secret); err != nil {
		t.Fatalf("get created secret: %v", err)
	}
	if secret.Data["key-name"] == nil {
		t.Error("expected generated secret to carry key-name data")
	}
}

func TestEnsureRndcSecretRespectsSecretRef(t *testing.T) {
	s := testScheme(t)
	c := fake.NewClientBuilder().WithScheme(s).Build()
	inst := newTestInstance("inst")
	inst.Spec.RndcSecretRef = &corev1.LocalObjectReference{Name: "user-managed"}

	name, rotated, err := ensureRndcSecret(context.Background(), c, s, inst, clusterContext{})
	if err != nil {
		t.Fatalf("ensureRndcSecret() error = %v", err)
	}
	if rotated {
		t.Error("rotated = true for an externally managed secret, want false")
	}
	if name != "user-managed" {
		t.Errorf("name = %q, want user-managed", name)
	}
}

func TestRotationDueRateLimitsWithinOneHour(t *testing.T) {
	now := time.Now().UTC()
	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Annotations: map[string]string{
				constant.AnnotationRndcCreatedAt: now.Add(-30 * time.Minute).Format(time.RFC3339Nano),
				constant.AnnotationRndcRotateAt:  now.Add(-10 * 24 * time.Hour).Format(time.RFC3339Nano),
			},
		},
	}
	if rotationDue(secret) {
		t.Error("rotationDue() = true within the 1h rate limit of a recent createdAt, want false")
	}

	secret.Annotations[constant.AnnotationRndcCreatedAt] = now.Add(-2 * time.Hour).Format(time.RFC3339Nano)
	if !rotationDue(secret) {
		t.Error("rotationDue() = false past both rotateAt and the 1h rate limit, want true")
	}
}

func TestEnsureRndcSecretRecreatesWhenMalformed(t *testing.T) {
	s := testScheme(t)
	inst := newTestInstance("inst")
	malformed := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: rndcSecretName(inst.Name), Namespace: inst.Namespace},
		Data:       map[string][]byte{"algorithm": []byte("hmac-sha256")},
	}
	c := fake.NewClientBuilder().WithScheme(s).WithObjects(malformed).Build()

	name, _, err := ensureRndcSecret(context.Background(), c, s, inst, clusterContext{})
	if err != nil {
		t.Fatalf("ensureRndcSecret() error = %v", err)
	}

	secret := &corev1.Secret{}
	if err := c.Get(context.Background(), types.NamespacedName{Name: name, Namespace: inst.Namespace}, secret); err != nil {
		t.Fatalf("get recreated secret: %v", err)
	}
	if secret.Data["key-name"] == nil {
		t.Error("expected recreated secret to carry complete key data")
	}
}
