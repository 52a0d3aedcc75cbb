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

// DNSZoneReconciler reconciles a DNSZone.
type DNSZoneReconciler struct {
	client.Client
	Scheme *runtime.Scheme

	Recorder record.EventRecorder

	// BindcarToken authenticates to every sidecar this reconciler calls; it's the operator's own
	// in-pod ServiceAccount token, read once at process startup (spec.md §4.9/§6).
	BindcarToken string
}

func (r *DNSZoneReconciler) clientFactory() bindcarClientFactory {
	return defaultBindcarClientFactory
}

// Reconcile implements spec.md §4.13.
func (r *DNSZoneReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)

	zone := &bindyv1beta1.DNSZone{}
	if err := r.Get(ctx, req.NamespacedName, zone); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	return reconcileZone(ctx, r.Client, r.Recorder, log, r.clientFactory(), r.BindcarToken, zone)
}

// SetupWithManager registers this reconciler with mgr, watching DNSZone plus every Bind9Instance
// so a pod-readiness change on a serving instance (spec.md §4.13 step 5's endpoint resolution)
// triggers a reconcile of every zone that instance currently serves, instead of waiting on the
// periodic requeue alone.
func (r *DNSZoneReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&bindyv1beta1.DNSZone{}, ctrl.WithPredicates(predicate.GenerationChangedPredicate)).
		Watches(&bindyv1beta1.Bind9Instance{}, handler.EnqueueRequestsFromMapFunc(mapInstanceToZones(mgr.GetClient(), mgr.GetLogger()))).
		Named("dnszone").
		Complete(r)
}

// mapInstanceToZones enqueues a reconcile for every DNSZone whose status.bind9Instances[]
// references the instance that just changed.
func mapInstanceToZones(c client.Client, log logr.Logger) handler.MapFunc {
	return func(ctx context.Context, obj client.Object) []reconcile.Request {
		list := &bindyv1beta1.DNSZoneList{}
		if err := c.List(ctx, list, client.InNamespace(obj.GetNamespace())); err != nil {
			log.Error(err, "failed to list zones for instance watch mapping", "instance", obj.GetName())
			return nil
		}

		var requests []reconcile.Request
		for i := range list.Items {
			zone := &list.Items[i]
			for _, ref := range zone.Status.Bind9Instances {
				if ref.Name == obj.GetName() && ref.Namespace == obj.GetNamespace() {
					requests = append(requests, reconcile.Request{
						NamespacedName: types.NamespacedName{Name: zone.Name, Namespace: zone.Namespace},
					})
					break
				}
			}
		}
		return requests
	}
}
