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

package bind9cluster

import (
	"context"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/constant"
	"github.com/firestoned/bindy/internal/predicate"
)

// ClusterBind9ProviderReconciler reconciles a ClusterBind9Provider, the cluster-scoped twin of
// Bind9Cluster (spec.md §9's cluster-vs-global polymorphism). It delegates to the exact same
// reconcileCluster core as Bind9ClusterReconciler, through the providerAdapter.
type ClusterBind9ProviderReconciler struct {
	client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder
}

// Reconcile implements spec.md §4.11 for the cluster-scoped ClusterBind9Provider kind.
func (r *ClusterBind9ProviderReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)

	provider := &bindyv1beta1.ClusterBind9Provider{}
	if err := r.Get(ctx, req.NamespacedName, provider); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	return reconcileCluster(ctx, r.Client, r.Scheme, r.Recorder, log, newProviderAdapter(provider), constant.FinalizerBind9Cluster, "ClusterBind9Provider")
}

// SetupWithManager registers this reconciler with mgr.
func (r *ClusterBind9ProviderReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&bindyv1beta1.ClusterBind9Provider{}, ctrl.WithPredicates(predicate.GenerationChangedPredicate)).
		Owns(&bindyv1beta1.Bind9Instance{}).
		Named("clusterbind9provider").
		Complete(r)
}
