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

// Package finalizer implements the generic cleanup-on-delete runtime shared by every
// reconciler (spec.md §4.4): ensure a finalizer string is present, and on deletion invoke a
// resource-specific cleanup callback before removing it.
package finalizer

import (
	"context"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
)

// CleanupFunc performs the resource-type-specific teardown (deleting owned children, removing
// zones from BIND9, etc.). It must be idempotent: NotFound-style results are treated as success
// by the caller, not by CleanupFunc itself.
type CleanupFunc func(ctx context.Context) error

// EnsureFinalizer adds finalizerName to obj and persists it with Update if it was not already
// present. No-op (and no API call) if the finalizer is already there.
func EnsureFinalizer(ctx context.Context, c client.Client, obj client.Object, finalizerName string) error {
	if controllerutil.ContainsFinalizer(obj, finalizerName) {
		return nil
	}
	controllerutil.AddFinalizer(obj, finalizerName)
	return c.Update(ctx, obj)
}

// HandleDeletion implements spec.md §4.4's handleDeletion: if obj carries a deletionTimestamp
// and finalizerName, it invokes cleanup; on success the finalizer is removed and persisted, on
// failure the finalizer is left in place (deletion blocks until the next successful reconcile).
// Returns (handled=true, err) when obj is being deleted, so callers know to stop reconciling
// further resource state; handled=false means obj is not being deleted at all.
func HandleDeletion(ctx context.Context, c client.Client, obj client.Object, finalizerName string, cleanup CleanupFunc) (handled bool, err error) {
	if obj.GetDeletionTimestamp().IsZero() {
		return false, nil
	}
	if !controllerutil.ContainsFinalizer(obj, finalizerName) {
		return true, nil
	}
	if err := cleanup(ctx); err != nil {
		return true, err
	}
	controllerutil.RemoveFinalizer(obj, finalizerName)
	return true, c.Update(ctx, obj)
}
