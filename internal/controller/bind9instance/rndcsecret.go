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
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/constant"
	"github.com/firestoned/bindy/internal/durationutil"
	"github.com/firestoned/bindy/internal/ownership"
	"github.com/firestoned/bindy/internal/rndc"
)

// rndcSecretName is deterministic per instance so the Deployment and the rotation logic can
// both reference it without a lookup.
func rndcSecretName(instanceName string) string {
	return fmt.Sprintf("%s-rndc-key", instanceName)
}

// resolveRndcKeyConfig implements spec.md §4.12.1's precedence: instance > cluster-role >
// cluster-global > built-in default.
func resolveRndcKeyConfig(inst *bindyv1beta1.Bind9Instance, cc clusterContext) bindyv1beta1.RndcKeyConfig {
	if inst.Spec.RndcSecretRef != nil {
		return bindyv1beta1.RndcKeyConfig{SecretRef: inst.Spec.RndcSecretRef}
	}
	if inst.Spec.RndcKeyConfig != nil {
		return *inst.Spec.RndcKeyConfig
	}
	if cc.managed {
		roleSpec := cc.common.Primary
		if inst.Spec.Role == bindyv1beta1.RoleSecondary {
			roleSpec = cc.common.Secondary
		}
		if roleSpec.RndcKeyConfig != nil {
			return *roleSpec.RndcKeyConfig
		}
		if cc.common.RndcKeyConfig != nil {
			return *cc.common.RndcKeyConfig
		}
	}
	return bindyv1beta1.RndcKeyConfig{
		Algorithm:   bindyv1beta1.DefaultRndcAlgorithm,
		RotateAfter: bindyv1beta1.DefaultRndcRotateAfter,
	}
}

// ensureRndcSecret implements spec.md §4.12.1 in full: resolve an externally managed secret if
// referenced, else generate-if-absent, recreate-if-malformed, and rotate-if-due a Secret this
// operator owns. Returns the Secret's name for the Deployment's volume reference, and whether a
// rotation just happened (the caller must then bump the Deployment's rollout annotation).
func ensureRndcSecret(ctx context.Context, c client.Client, scheme *runtime.Scheme, inst *bindyv1beta1.Bind9Instance, cc clusterContext) (name string, rotated bool, err error) {
	cfg := resolveRndcKeyConfig(inst, cc)

	if cfg.SecretRef != nil {
		return cfg.SecretRef.Name, false, nil
	}

	name = rndcSecretName(inst.Name)
	secret := &corev1.Secret{}
	getErr := c.Get(ctx, types.NamespacedName{Name: name, Namespace: inst.Namespace}, secret)
	switch {
	case apierrors.IsNotFound(getErr):
		return name, false, createRndcSecret(ctx, c, scheme, inst, name, cfg)
	case getErr != nil:
		return "", false, fmt.Errorf("get RNDC secret %s: %w", name, getErr)
	}

	if _, parseErr := rndc.ParseSecret(secret.Data); parseErr != nil {
		if delErr := c.Delete(ctx, secret); delErr != nil && !apierrors.IsNotFound(delErr) {
			return "", false, fmt.Errorf("delete malformed RNDC secret %s: %w", name, delErr)
		}
		return name, false, createRndcSecret(ctx, c, scheme, inst, name, cfg)
	}

	if !cfg.AutoRotate || !rotationDue(secret) {
		return name, false, nil
	}
	if err := rotateRndcSecret(ctx, c, secret, cfg); err != nil {
		return "", false, fmt.Errorf("rotate RNDC secret %s: %w", name, err)
	}
	return name, true, nil
}

func createRndcSecret(ctx context.Context, c client.Client, scheme *runtime.Scheme, inst *bindyv1beta1.Bind9Instance, name string, cfg bindyv1beta1.RndcKeyConfig) error {
	key, err := rndc.Generate()
	if err != nil {
		return fmt.Errorf("generate RNDC key: %w", err)
	}
	key.Name = name

	rotateAfterStr := cfg.RotateAfter
	if rotateAfterStr == "" {
		rotateAfterStr = bindyv1beta1.DefaultRndcRotateAfter
	}
	now := time.Now().UTC()
	rotateAfter, parseErr := durationutil.Parse(rotateAfterStr)
	if parseErr != nil {
		rotateAfter = 720 * time.Hour
	}

	encoded := rndc.EncodeSecret(key)
	data := make(map[string][]byte, len(encoded))
	for k, v := range encoded {
		data[k] = []byte(v)
	}

	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: inst.Namespace,
			Annotations: map[string]string{
				constant.AnnotationRndcCreatedAt:     now.Format(time.RFC3339Nano),
				constant.AnnotationRndcRotateAt:      now.Add(rotateAfter).Format(time.RFC3339Nano),
				constant.AnnotationRndcRotationCount: "0",
			},
		},
		Data: data,
	}
	if err := ownership.SetOwnership(secret, inst, scheme, ownership.Options{InstanceName: inst.Name}); err != nil {
		return fmt.Errorf("set ownership on RNDC secret %s: %w", name, err)
	}
	return c.Create(ctx, secret)
}

// rotationDue implements the rate-limited rotation decision: now >= rotate-at AND
// now - created-at >= 1h, so a generous rotate-at in the past never fires more than once an
// hour.
func rotationDue(secret *corev1.Secret) bool {
	rotateAt, err := time.Parse(time.RFC3339Nano, secret.Annotations[constant.AnnotationRndcRotateAt])
	if err != nil {
		return false
	}
	createdAt, err := time.Parse(time.RFC3339Nano, secret.Annotations[constant.AnnotationRndcCreatedAt])
	if err != nil {
		return false
	}
	now := time.Now().UTC()
	return !now.Before(rotateAt) && now.Sub(createdAt) >= time.Hour
}

func rotateRndcSecret(ctx context.Context, c client.Client, secret *corev1.Secret, cfg bindyv1beta1.RndcKeyConfig) error {
	key, err := rndc.Generate()
	if err != nil {
		return fmt.Errorf("generate rotated RNDC key: %w", err)
	}
	key.Name = secret.Name

	rotateAfterStr := cfg.RotateAfter
	if rotateAfterStr == "" {
		rotateAfterStr = bindyv1beta1.DefaultRndcRotateAfter
	}
	rotateAfter, parseErr := durationutil.Parse(rotateAfterStr)
	if parseErr != nil {
		rotateAfter = 720 * time.Hour
	}

	count := parseRotationCount(secret.Annotations[constant.AnnotationRndcRotationCount])
	now := time.Now().UTC()

	encoded := rndc.EncodeSecret(key)
	data := make(map[string][]byte, len(encoded))
	for k, v := range encoded {
		data[k] = []byte(v)
	}
	secret.Data = data
	secret.StringData = nil
	if secret.Annotations == nil {
		secret.Annotations = make(map[string]string)
	}
	secret.Annotations[constant.AnnotationRndcRotateAt] = now.Add(rotateAfter).Format(time.RFC3339Nano)
	secret.Annotations[constant.AnnotationRndcRotationCount] = fmt.Sprintf("%d", count+1)

	return c.Update(ctx, secret)
}

func parseRotationCount(s string) int {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0
	}
	return n
}
