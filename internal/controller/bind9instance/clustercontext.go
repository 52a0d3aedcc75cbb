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

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/constant"
)

// clusterContext is what the instance reconciler needs from whichever Cluster or
// ClusterProvider owns this instance, resolved once per reconcile (spec.md §4.12 step 2).
// managed is false for a standalone instance with neither an ownerReference nor a clusterRef.
type clusterContext struct {
	managed bool
	common  bindyv1beta1.CommonSpec
	// cluster is the owning Cluster/ClusterProvider's own name, used to look up its
	// cluster-level ConfigMap (internal/controller/bind9cluster's "<name>-bind9-config").
	cluster string
}

// resolveClusterContext implements spec.md §4.12 step 2: prefer an ownerReference pointing at
// a Bind9Cluster or ClusterBind9Provider; otherwise fall back to spec.clusterRef, namespaced
// Bind9Cluster first, then the cluster-scoped ClusterBind9Provider.
func resolveClusterContext(ctx context.Context, c client.Client, inst *bindyv1beta1.Bind9Instance) (clusterContext, error) {
	for _, ref := range inst.GetOwnerReferences() {
		switch ref.Kind {
		case "Bind9Cluster":
			cluster := &bindyv1beta1.Bind9Cluster{}
			if err := c.Get(ctx, types.NamespacedName{Name: ref.Name, Namespace: inst.Namespace}, cluster); err != nil {
				if apierrors.IsNotFound(err) {
					continue
				}
				return clusterContext{}, fmt.Errorf("get owning Bind9Cluster %s: %w", ref.Name, err)
			}
			return clusterContext{managed: true, common: cluster.Spec.Common, cluster: cluster.Name}, nil
		case "ClusterBind9Provider":
			provider := &bindyv1beta1.ClusterBind9Provider{}
			if err := c.Get(ctx, types.NamespacedName{Name: ref.Name}, provider); err != nil {
				if apierrors.IsNotFound(err) {
					continue
				}
				return clusterContext{}, fmt.Errorf("get owning ClusterBind9Provider %s: %w", ref.Name, err)
			}
			return clusterContext{managed: true, common: provider.Spec.Common, cluster: provider.Name}, nil
		}
	}

	ref := inst.Spec.ClusterRef
	if ref.Name != "" {
		cluster := &bindyv1beta1.Bind9Cluster{}
		if err := c.Get(ctx, types.NamespacedName{Name: ref.Name, Namespace: inst.Namespace}, cluster); err == nil {
			return clusterContext{managed: true, common: cluster.Spec.Common, cluster: cluster.Name}, nil
		} else if !apierrors.IsNotFound(err) {
			return clusterContext{}, fmt.Errorf("get spec.clusterRef.name Bind9Cluster %s: %w", ref.Name, err)
		}
	}
	if ref.ClusterProviderName != "" {
		provider := &bindyv1beta1.ClusterBind9Provider{}
		if err := c.Get(ctx, types.NamespacedName{Name: ref.ClusterProviderName}, provider); err == nil {
			return clusterContext{managed: true, common: provider.Spec.Common, cluster: provider.Name}, nil
		} else if !apierrors.IsNotFound(err) {
			return clusterContext{}, fmt.Errorf("get spec.clusterRef.clusterProviderName ClusterBind9Provider %s: %w", ref.ClusterProviderName, err)
		}
	}

	return clusterContext{managed: false}, nil
}

// isClusterManaged reports whether this instance was created by the Bind9Cluster reconciler
// (constant.LabelManagedBy set), per spec.md §4.12 step 1: cluster-managed instances skip their
// own finalizer cleanup because the owning Cluster deletes them directly.
func isClusterManaged(inst *bindyv1beta1.Bind9Instance) bool {
	return inst.Labels[constant.LabelManagedBy] != ""
}
