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

// Package resources provides the three generic apply primitives reconcilers use to converge a
// Kubernetes child resource onto its desired spec (spec.md §4.3), generalized over any
// client.Object via Go generics.
package resources

import (
	"context"
	"encoding/json"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// CreateOrApply GETs obj's key; if found, PATCHes with server-side-apply semantics under
// fieldManager; otherwise CREATEs it. obj must already carry the desired spec and an
// ObjectMeta with Name (and Namespace, for namespaced kinds).
func CreateOrApply[T client.Object](ctx context.Context, c client.Client, obj T, fieldManager string) error {
	existing := obj.DeepCopyObject().(T)
	key := client.ObjectKeyFromObject(obj)
	err := c.Get(ctx, key, existing)
	if apierrors.IsNotFound(err) {
		return c.Create(ctx, obj)
	}
	if err != nil {
		return err
	}
	return c.Patch(ctx, obj, client.Apply, client.FieldOwner(fieldManager), client.ForceOwnership)
}

// CreateOrReplace GETs obj's key; if found, PUTs the whole object (carrying over
// resourceVersion so the update is accepted); otherwise CREATEs it. Used where a full replace
// is desired, e.g. Deployment (spec.md §4.3).
func CreateOrReplace[T client.Object](ctx context.Context, c client.Client, obj T) error {
	existing := obj.DeepCopyObject().(T)
	key := client.ObjectKeyFromObject(obj)
	err := c.Get(ctx, key, existing)
	if apierrors.IsNotFound(err) {
		return c.Create(ctx, obj)
	}
	if err != nil {
		return err
	}
	obj.SetResourceVersion(existing.GetResourceVersion())
	return c.Update(ctx, obj)
}

// CreateOrPatchJSON attempts CREATE; on AlreadyExists, PATCHes using server-side-apply with a
// caller-supplied JSON document (used when labels/annotations/owner-refs must be merged without
// clobbering the rest of the object, spec.md §4.3).
func CreateOrPatchJSON[T client.Object](ctx context.Context, c client.Client, obj T, patchDoc map[string]any, fieldManager string) error {
	err := c.Create(ctx, obj)
	if err == nil {
		return nil
	}
	if !apierrors.IsAlreadyExists(err) {
		return err
	}
	raw, marshalErr := json.Marshal(patchDoc)
	if marshalErr != nil {
		return marshalErr
	}
	return c.Patch(ctx, obj, client.RawPatch(types.ApplyPatchType, raw), client.FieldOwner(fieldManager), client.ForceOwnership)
}
