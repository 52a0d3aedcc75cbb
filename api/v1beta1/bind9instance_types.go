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
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// ClusterReference names either a namespaced Bind9Cluster or a cluster-scoped
// ClusterBind9Provider; exactly one of the two fields is set.
type ClusterReference struct {
	// Name references a Bind9Cluster in the same namespace.
	// +optional
	Name string `json:"name,omitempty"`

	// ClusterProviderName references a cluster-scoped ClusterBind9Provider.
	// +optional
	ClusterProviderName string `json:"clusterProviderName,omitempty"`
}

// PrimaryServer identifies an upstream primary a secondary Bind9Instance transfers zones from.
type PrimaryServer struct {
	// IP is the primary's reachable pod or service address.
	IP string `json:"ip"`

	// Port is the DNS port on the primary (defaults to BindcarConfig.DNSPort's value, typically 5353).
	// +optional
	Port int32 `json:"port,omitempty"`
}

// Bind9InstanceSpec describes a single replica-set's worth of BIND9 (spec.md §3 "Instance").
type Bind9InstanceSpec struct {
	// ClusterRef names the owning Bind9Cluster or ClusterBind9Provider. Used only as a fallback
	// when no ownerReferences points at a cluster kind (spec.md §4.12 step 2).
	// +optional
	ClusterRef ClusterReference `json:"clusterRef,omitempty"`

	// Role is primary or secondary.
	Role Bind9Role `json:"role"`

	// Replicas is the desired pod count, typically 1 for managed instances.
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:default=1
	Replicas int32 `json:"replicas"`

	// Version selects the default BIND9 image when Image is empty.
	// +optional
	Version string `json:"version,omitempty"`

	// Image overrides the default BIND9 container image entirely.
	// +optional
	Image string `json:"image,omitempty"`

	// ConfigMapRefs optionally names user-authored named.conf fragments. The instance reconciler
	// does not read it: a standalone instance mounts its generated ConfigMap and a cluster-managed
	// one the cluster-level ConfigMap.
	// +optional
	ConfigMapRefs *ConfigMapRefs `json:"configMapRefs,omitempty"`

	// PrimaryServers lists the upstream primaries this instance transfers zones from. Required
	// (non-empty) when Role is RoleSecondary.
	// +optional
	PrimaryServers []PrimaryServer `json:"primaryServers,omitempty"`

	// RndcSecretRef optionally references an externally managed RNDC key Secret, overriding the
	// resolution precedence of spec.md §4.12.1.
	// +optional
	RndcSecretRef *corev1.LocalObjectReference `json:"rndcSecretRef,omitempty"`

	// RndcKeyConfig configures generated-key rotation when RndcSecretRef is unset.
	// +optional
	RndcKeyConfig *RndcKeyConfig `json:"rndcKeyConfig,omitempty"`

	// Volumes are attached to this instance's pod template.
	// +optional
	Volumes []corev1.Volume `json:"volumes,omitempty"`

	// VolumeMounts are attached to this instance's bind9 container.
	// +optional
	VolumeMounts []corev1.VolumeMount `json:"volumeMounts,omitempty"`

	// BindcarConfig configures the in-pod HTTP sidecar.
	// +optional
	BindcarConfig *BindcarConfig `json:"bindcarConfig,omitempty"`

	// Service overrides the generated Service for this instance.
	// +optional
	Service *ServiceOverride `json:"service,omitempty"`

	// AllowTransfer is this instance's zone-transfer ACL (match-list syntax), used when a zone
	// does not specify its own.
	// +optional
	AllowTransfer []string `json:"allowTransfer,omitempty"`
}

// ZoneReference is a back-reference recorded by the instance reconciler (spec.md §4.12 step 6).
type ZoneReference struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

// Bind9InstanceStatus reports pod readiness and the set of zones currently served.
type Bind9InstanceStatus struct {
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// Conditions holds the encompassing Ready condition plus one indexed Pod-<n> per pod.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// Zones lists the DNSZone objects this instance currently serves. The instance reconciler
	// recomputes it from every DNSZone's status.bind9Instances in the namespace; the zone
	// reconciler does not write this field.
	// +optional
	Zones []ZoneReference `json:"zones,omitempty"`

	// ZonesCount mirrors len(Zones) for quick inspection (kubectl printcolumn).
	// +optional
	ZonesCount int32 `json:"zonesCount,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Role",type=string,JSONPath=`.spec.role`
// +kubebuilder:printcolumn:name="Zones",type=integer,JSONPath=`.status.zonesCount`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// Bind9Instance is a single replica-set's worth of managed BIND9.
type Bind9Instance struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   Bind9InstanceSpec   `json:"spec,omitempty"`
	Status Bind9InstanceStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// Bind9InstanceList contains a list of Bind9Instance.
type Bind9InstanceList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Bind9Instance `json:"items"`
}

// GetConditions implements ConditionAccessor.
func (i *Bind9Instance) GetConditions() []metav1.Condition { return i.Status.Conditions }

// SetConditions implements ConditionAccessor.
func (i *Bind9Instance) SetConditions(conditions []metav1.Condition) { i.Status.Conditions = conditions }

// GetGeneration implements ConditionAccessor.
func (i *Bind9Instance) GetGeneration() int64 { return i.ObjectMeta.Generation }

func init() {
	SchemeBuilder.Register(&Bind9Instance{}, &Bind9InstanceList{})
}

// DeepCopyInto copies the receiver into out.
func (in *ClusterReference) DeepCopyInto(out *ClusterReference) { *out = *in }

// DeepCopy returns a deep copy of the receiver.
func (in *ClusterReference) DeepCopy() *ClusterReference {
	if in == nil {
		return nil
	}
	out := new(ClusterReference)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *PrimaryServer) DeepCopyInto(out *PrimaryServer) { *out = *in }

// DeepCopy returns a deep copy of the receiver.
func (in *PrimaryServer) DeepCopy() *PrimaryServer {
	if in == nil {
		return nil
	}
	out := new(PrimaryServer)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *ZoneReference) DeepCopyInto(out *ZoneReference) { *out = *in }

// DeepCopy returns a deep copy of the receiver.
func (in *ZoneReference) DeepCopy() *ZoneReference {
	if in == nil {
		return nil
	}
	out := new(ZoneReference)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *Bind9InstanceSpec) DeepCopyInto(out *Bind9InstanceSpec) {
	*out = *in
	out.ClusterRef = in.ClusterRef
	if in.ConfigMapRefs != nil {
		out.ConfigMapRefs = in.ConfigMapRefs.DeepCopy()
	}
	if in.PrimaryServers != nil {
		out.PrimaryServers = make([]PrimaryServer, len(in.PrimaryServers))
		copy(out.PrimaryServers, in.PrimaryServers)
	}
	if in.RndcSecretRef != nil {
		out.RndcSecretRef = &corev1.LocalObjectReference{Name: in.RndcSecretRef.Name}
	}
	if in.RndcKeyConfig != nil {
		out.RndcKeyConfig = in.RndcKeyConfig.DeepCopy()
	}
	if in.Volumes != nil {
		out.Volumes = make([]corev1.Volume, len(in.Volumes))
		for i := range in.Volumes {
			in.Volumes[i].DeepCopyInto(&out.Volumes[i])
		}
	}
	if in.VolumeMounts != nil {
		out.VolumeMounts = make([]corev1.VolumeMount, len(in.VolumeMounts))
		copy(out.VolumeMounts, in.VolumeMounts)
	}
	if in.BindcarConfig != nil {
		out.BindcarConfig = in.BindcarConfig.DeepCopy()
	}
	if in.Service != nil {
		out.Service = in.Service.DeepCopy()
	}
	out.AllowTransfer = append([]string(nil), in.AllowTransfer...)
}

// DeepCopy returns a deep copy of the receiver.
func (in *Bind9InstanceSpec) DeepCopy() *Bind9InstanceSpec {
	if in == nil {
		return nil
	}
	out := new(Bind9InstanceSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *Bind9InstanceStatus) DeepCopyInto(out *Bind9InstanceStatus) {
	*out = *in
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
	if in.Zones != nil {
		out.Zones = make([]ZoneReference, len(in.Zones))
		copy(out.Zones, in.Zones)
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *Bind9InstanceStatus) DeepCopy() *Bind9InstanceStatus {
	if in == nil {
		return nil
	}
	out := new(Bind9InstanceStatus)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *Bind9Instance) DeepCopyInto(out *Bind9Instance) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy returns a deep copy of the receiver.
func (in *Bind9Instance) DeepCopy() *Bind9Instance {
	if in == nil {
		return nil
	}
	out := new(Bind9Instance)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *Bind9Instance) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver into out.
func (in *Bind9InstanceList) DeepCopyInto(out *Bind9InstanceList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]Bind9Instance, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *Bind9InstanceList) DeepCopy() *Bind9InstanceList {
	if in == nil {
		return nil
	}
	out := new(Bind9InstanceList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *Bind9InstanceList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
