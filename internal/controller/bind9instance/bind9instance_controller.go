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

// Package bind9instance reconciles a single Bind9Instance: the ServiceAccount, RNDC Secret,
// ConfigMap, Deployment, and Service that together run one BIND9 server (spec.md §4.12).
package bind9instance

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
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

// Bind9InstanceReconciler reconciles a Bind9Instance.
type Bind9InstanceReconciler struct {
	client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder
}

// Reconcile implements spec.md §4.12.
func (r *Bind9InstanceReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)

	inst := &bindyv1beta1.Bind9Instance{}
	if err := r.Get(ctx, req.NamespacedName, inst); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	return reconcileInstance(ctx, r.Client, r.Scheme, r.Recorder, log, inst)
}

// SetupWithManager registers this reconciler with mgr, watching Bind9Instance and the
// resources it owns. The Deployment watch uses DeploymentReadinessPredicate so a pod
// scheduling/crash event is what actually triggers the Pod-i status refresh of step 5, rather
// than every Deployment field churn. The DNSZone watch keeps step 6's back-reference sweep
// event-driven: without it, a zone selection change would never wake an instance whose own
// generation and Deployment are otherwise unchanged.
func (r *Bind9InstanceReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&bindyv1beta1.Bind9Instance{}, ctrl.WithPredicates(predicate.GenerationChangedPredicate)).
		Owns(&appsv1.Deployment{}, ctrl.WithPredicates(predicate.DeploymentReadinessPredicate)).
		Owns(&corev1.Service{}).
		Owns(&corev1.ConfigMap{}, ctrl.WithPredicates(predicate.LabelsOrAnnotationsChangedPredicate)).
		Owns(&corev1.ServiceAccount{}).
		Owns(&corev1.Secret{}, ctrl.WithPredicates(predicate.LabelsOrAnnotationsChangedPredicate)).
		Watches(&bindyv1beta1.DNSZone{}, handler.EnqueueRequestsFromMapFunc(mapZoneToInstances)).
		Named("bind9instance").
		Complete(r)
}

// mapZoneToInstances enqueues every instance a DNSZone's status.bind9Instances[] names, so a
// zone create/update/reassignment wakes the instances it now (or no longer) points at instead
// of waiting for their own next generation bump.
func mapZoneToInstances(_ context.Context, obj client.Object) []reconcile.Request {
	zone, ok := obj.(*bindyv1beta1.DNSZone)
	if !ok {
		return nil
	}

	requests := make([]reconcile.Request, 0, len(zone.Status.Bind9Instances))
	for _, ref := range zone.Status.Bind9Instances {
		requests = append(requests, reconcile.Request{
			NamespacedName: types.NamespacedName{Name: ref.Name, Namespace: ref.Namespace},
		})
	}
	return requests
}
