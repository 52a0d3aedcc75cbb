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

// ClusterBind9ProviderSpec declares a cluster-scoped fleet of BIND9 servers, the cluster-scoped
// analogue of Bind9ClusterSpec (spec.md §9's cluster-vs-global polymorphism).
type ClusterBind9ProviderSpec struct {
	// Common holds the version/image/role/global configuration shared with Bind9Cluster.
	Common CommonSpec `json:"common"`

	// InstanceNamespace is the namespace in which managed Bind9Instance objects are created,
	// since this resource itself is cluster-scoped and has none of its own.
	InstanceNamespace string `json:"instanceNamespace"`
}

// ClusterBind9ProviderStatus reports the reconciled state of a ClusterBind9Provider's managed instances.
type ClusterBind9ProviderStatus struct {
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
	// +optional
	InstanceCount int32 `json:"instanceCount,omitempty"`
	// +optional
	ReadyInstances int32 `json:"readyInstances,omitempty"`
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Cluster
// +kubebuilder:printcolumn:name="Instances",type=integer,JSONPath=`.status.instanceCount`
// +kubebuilder:printcolumn:name="Ready",type=integer,JSONPath=`.status.readyInstances`

// ClusterBind9Provider is the cluster-scoped equivalent of Bind9Cluster, used when the fleet of
// managed instances must live outside any single tenant namespace.
type ClusterBind9Provider struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ClusterBind9ProviderSpec   `json:"spec,omitempty"`
	Status ClusterBind9ProviderStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ClusterBind9ProviderList contains a list of ClusterBind9Provider.
type ClusterBind9ProviderList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ClusterBind9Provider `json:"items"`
}

// GetConditions implements ConditionAccessor.
func (c *ClusterBind9Provider) GetConditions() []metav1.Condition { return c.Status.Conditions }

// SetConditions implements ConditionAccessor.
func (c *ClusterBind9Provider) SetConditions(conditions []metav1.Condition) {
	c.Status.Conditions = conditions
}

// GetGeneration implements ConditionAccessor.
func (c *ClusterBind9Provider) GetGeneration() int64 { return c.ObjectMeta.Generation }

func init() {
	SchemeBuilder.Register(&ClusterBind9Provider{}, &ClusterBind9ProviderList{})
}

// DeepCopyInto copies the receiver into out.
func (in *ClusterBind9ProviderSpec) DeepCopyInto(out *ClusterBind9ProviderSpec) {
	*out = *in
	in.Common.DeepCopyInto(&out.Common)
}

// DeepCopy returns a deep copy of the receiver.
func (in *ClusterBind9ProviderSpec) DeepCopy() *ClusterBind9ProviderSpec {
	if in == nil {
		return nil
	}
	out := new(ClusterBind9ProviderSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *ClusterBind9ProviderStatus) DeepCopyInto(out *ClusterBind9ProviderStatus) {
	*out = *in
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *ClusterBind9ProviderStatus) DeepCopy() *ClusterBind9ProviderStatus {
	if in == nil {
		return nil
	}
	out := new(ClusterBind9ProviderStatus)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *ClusterBind9Provider) DeepCopyInto(out *ClusterBind9Provider) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy returns a deep copy of the receiver.
func (in *ClusterBind9Provider) DeepCopy() *ClusterBind9Provider {
	if in == nil {
		return nil
	}
	out := new(ClusterBind9Provider)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *ClusterBind9Provider) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver into out.
func (in *ClusterBind9ProviderList) DeepCopyInto(out *ClusterBind9ProviderList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]ClusterBind9Provider, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *ClusterBind9ProviderList) DeepCopy() *ClusterBind9ProviderList {
	if in == nil {
		return nil
	}
	out := new(ClusterBind9ProviderList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *ClusterBind9ProviderList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
