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

	"github.com/go-logr/logr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/predicate"
)

// Reconciler drives one record kind, chosen by Desc. Every one of the eight registrations in
// cmd/main.go constructs one of these against its own Descriptor (spec.md §9's "one generic
// controller" design).
type Reconciler struct {
	client.Client
	Scheme *runtime.Scheme

	Recorder record.EventRecorder
	Desc     Descriptor
}

func (r *Reconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)

	obj := r.Desc.NewObject()
	if err := r.Get(ctx, req.NamespacedName, obj); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	return reconcileRecord(ctx, r.Client, r.Recorder, log, r.Desc, obj)
}

// SetupWithManager watches this kind's own CR plus DNSZone, so a zone reconcile that resets a
// record's lastReconciledAt (C13 step 7) wakes the owning record immediately instead of
// waiting for its own periodic requeue.
func (r *Reconciler) SetupWithManager(mgr ctrl.Manager, name string) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(r.Desc.NewObject(), ctrl.WithPredicates(predicate.GenerationChangedPredicate)).
		Watches(&bindyv1beta1.DNSZone{}, handler.EnqueueRequestsFromMapFunc(mapZoneToRecords(r.Desc, mgr.GetLogger()))).
		Named(name).
		Complete(r)
}

// mapZoneToRecords enqueues every record of this descriptor's kind that the zone's
// status.records[] lists with lastReconciledAt still nil (spec.md §4.14's watch contract).
func mapZoneToRecords(desc Descriptor, log logr.Logger) handler.MapFunc {
	return func(ctx context.Context, obj client.Object) []reconcile.Request {
		zone, ok := obj.(*bindyv1beta1.DNSZone)
		if !ok {
			return nil
		}

		var requests []reconcile.Request
		for _, ref := range zone.Status.Records {
			if ref.Kind != desc.Kind || ref.LastReconciledAt != nil {
				continue
			}
			requests = append(requests, reconcile.Request{
				NamespacedName: types.NamespacedName{Name: ref.Name, Namespace: ref.Namespace},
			})
		}
		return requests
	}
}
