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

// Package bind9cluster reconciles the fleet-level kinds: the namespaced Bind9Cluster and its
// cluster-scoped twin ClusterBind9Provider (spec.md §4.11). Both kinds share every step of the
// reconcile; only object identity, scope, and a couple of label values differ, so both
// reconcilers delegate to a single core driven by the adapter interface below.
package bind9cluster

import (
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// adapter abstracts over Bind9Cluster and ClusterBind9Provider so core.go's reconcile logic
// does not need to know which kind it is driving.
type adapter interface {
	bindyv1beta1.ConditionAccessor

	// Object returns the underlying CR so it can be passed to client.Client calls and
	// controllerutil.SetControllerReference.
	Object() client.Object
	// Name is the cluster/provider's own object name.
	Name() string
	// InstanceNamespace is the namespace managed Bind9Instances live in. For Bind9Cluster this
	// is the cluster's own namespace; for ClusterBind9Provider it is spec.instanceNamespace.
	InstanceNamespace() string
	// Common returns the shared version/image/role/global configuration block.
	Common() bindyv1beta1.CommonSpec
	// ManagedByValue is stamped into bindy.firestoned.io/managed-by on every managed instance,
	// identifying which fleet kind owns it.
	ManagedByValue() string
	// SetInstanceStatus records the latest instance/ready counts.
	SetInstanceStatus(total, ready int32)
	// ObservedGeneration/SetObservedGeneration back the generation+drift gate of spec.md §4.11
	// step 2.
	ObservedGeneration() int64
	SetObservedGeneration(gen int64)
}

// clusterAdapter wraps a Bind9Cluster. Embedding promotes GetConditions/SetConditions/
// GetGeneration from *bindyv1beta1.Bind9Cluster directly, satisfying bindyv1beta1.ConditionAccessor.
type clusterAdapter struct {
	*bindyv1beta1.Bind9Cluster
}

func newClusterAdapter(obj *bindyv1beta1.Bind9Cluster) *clusterAdapter {
	return &clusterAdapter{Bind9Cluster: obj}
}

func (a *clusterAdapter) Object() client.Object           { return a.Bind9Cluster }
func (a *clusterAdapter) Name() string                    { return a.Bind9Cluster.Name }
func (a *clusterAdapter) InstanceNamespace() string       { return a.Bind9Cluster.Namespace }
func (a *clusterAdapter) Common() bindyv1beta1.CommonSpec { return a.Spec.Common }
func (a *clusterAdapter) ManagedByValue() string          { return "bind9cluster" }
func (a *clusterAdapter) SetInstanceStatus(total, ready int32) {
	a.Status.InstanceCount = total
	a.Status.ReadyInstances = ready
}
func (a *clusterAdapter) ObservedGeneration() int64 { return a.Status.ObservedGeneration }
func (a *clusterAdapter) SetObservedGeneration(gen int64) { a.Status.ObservedGeneration = gen }

// providerAdapter wraps a ClusterBind9Provider the same way.
type providerAdapter struct {
	*bindyv1beta1.ClusterBind9Provider
}

func newProviderAdapter(obj *bindyv1beta1.ClusterBind9Provider) *providerAdapter {
	return &providerAdapter{ClusterBind9Provider: obj}
}

func (a *providerAdapter) Object() client.Object     { return a.ClusterBind9Provider }
func (a *providerAdapter) Name() string              { return a.ClusterBind9Provider.Name }
func (a *providerAdapter) InstanceNamespace() string { return a.Spec.InstanceNamespace }
func (a *providerAdapter) Common() bindyv1beta1.CommonSpec {
	return a.Spec.Common
}
func (a *providerAdapter) ManagedByValue() string { return "clusterbind9provider" }
func (a *providerAdapter) SetInstanceStatus(total, ready int32) {
	a.Status.InstanceCount = total
	a.Status.ReadyInstances = ready
}
func (a *providerAdapter) ObservedGeneration() int64       { return a.Status.ObservedGeneration }
func (a *providerAdapter) SetObservedGeneration(gen int64) { a.Status.ObservedGeneration = gen }
