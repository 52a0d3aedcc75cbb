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

// Bind9ClusterReconciler reconciles a Bind9Cluster, the namespaced fleet-of-instances kind.
type Bind9ClusterReconciler struct {
	client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder
}

// Reconcile implements spec.md §4.11 for the namespaced Bind9Cluster kind.
func (r *Bind9ClusterReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)

	cluster := &bindyv1beta1.Bind9Cluster{}
	if err := r.Get(ctx, req.NamespacedName, cluster); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	return reconcileCluster(ctx, r.Client, r.Scheme, r.Recorder, log, newClusterAdapter(cluster), constant.FinalizerBind9Cluster, "Bind9Cluster")
}

// SetupWithManager registers this reconciler with mgr, watching Bind9Cluster and the
// Bind9Instance objects it owns so pod-readiness changes trigger a status refresh.
func (r *Bind9ClusterReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&bindyv1beta1.Bind9Cluster{}, ctrl.WithPredicates(predicate.GenerationChangedPredicate)).
		Owns(&bindyv1beta1.Bind9Instance{}).
		Named("bind9cluster").
		Complete(r)
}
