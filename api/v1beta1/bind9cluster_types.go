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

package v1beta1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// Bind9ClusterSpec declares a namespaced fleet of BIND9 servers.
type Bind9ClusterSpec struct {
	// Common holds the version/image/role/global configuration shared with ClusterBind9Provider.
	Common CommonSpec `json:"common"`
}

// Bind9ClusterStatus reports the reconciled state of a Bind9Cluster's managed instances.
type Bind9ClusterStatus struct {
	// ObservedGeneration is the generation last acted on by the cluster reconciler.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// InstanceCount is the number of managed Bind9Instance objects currently labelled for this cluster.
	// +optional
	InstanceCount int32 `json:"instanceCount,omitempty"`

	// ReadyInstances is the subset of InstanceCount whose own Ready condition is true.
	// +optional
	ReadyInstances int32 `json:"readyInstances,omitempty"`

	// Conditions holds the encompassing Ready condition plus one indexed Bind9Instance-<n> per
	// managed instance (internal/condition's hierarchical rollup).
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Namespaced
// +kubebuilder:printcolumn:name="Instances",type=integer,JSONPath=`.status.instanceCount`
// +kubebuilder:printcolumn:name="Ready",type=integer,JSONPath=`.status.readyInstances`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// Bind9Cluster declares a namespaced fleet of managed Bind9Instance replicas.
type Bind9Cluster struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   Bind9ClusterSpec   `json:"spec,omitempty"`
	Status Bind9ClusterStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// Bind9ClusterList contains a list of Bind9Cluster.
type Bind9ClusterList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Bind9Cluster `json:"items"`
}

// GetConditions implements ConditionAccessor.
func (c *Bind9Cluster) GetConditions() []metav1.Condition { return c.Status.Conditions }

// SetConditions implements ConditionAccessor.
func (c *Bind9Cluster) SetConditions(conditions []metav1.Condition) { c.Status.Conditions = conditions }

// GetGeneration implements ConditionAccessor.
func (c *Bind9Cluster) GetGeneration() int64 { return c.ObjectMeta.Generation }

func init() {
	SchemeBuilder.Register(&Bind9Cluster{}, &Bind9ClusterList{})
}

// DeepCopyInto copies the receiver into out.
func (in *Bind9ClusterSpec) DeepCopyInto(out *Bind9ClusterSpec) {
	*out = *in
	in.Common.DeepCopyInto(&out.Common)
}

// DeepCopy returns a deep copy of the receiver.
func (in *Bind9ClusterSpec) DeepCopy() *Bind9ClusterSpec {
	if in == nil {
		return nil
	}
	out := new(Bind9ClusterSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *Bind9ClusterStatus) DeepCopyInto(out *Bind9ClusterStatus) {
	*out = *in
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *Bind9ClusterStatus) DeepCopy() *Bind9ClusterStatus {
	if in == nil {
		return nil
	}
	out := new(Bind9ClusterStatus)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *Bind9Cluster) DeepCopyInto(out *Bind9Cluster) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy returns a deep copy of the receiver.
func (in *Bind9Cluster) DeepCopy() *Bind9Cluster {
	if in == nil {
		return nil
	}
	out := new(Bind9Cluster)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *Bind9Cluster) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver into out.
func (in *Bind9ClusterList) DeepCopyInto(out *Bind9ClusterList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]Bind9Cluster, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *Bind9ClusterList) DeepCopy() *Bind9ClusterList {
	if in == nil {
		return nil
	}
	out := new(Bind9ClusterList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *Bind9ClusterList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
