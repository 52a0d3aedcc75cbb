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

// SelectionMethod records how a DNSZone picked its serving instances.
// +kubebuilder:validation:Enum=LabelSelector;ClusterRef
type SelectionMethod string

const (
	// SelectionLabelSelector means spec.bind9InstancesFrom was evaluated.
	SelectionLabelSelector SelectionMethod = "LabelSelector"
	// SelectionClusterRef means all instances of spec.clusterRef/clusterProviderRef were selected.
	SelectionClusterRef SelectionMethod = "ClusterRef"
)

// SOARecord carries the zone's start-of-authority fields (spec.md §3).
type SOARecord struct {
	PrimaryNS   string `json:"primaryNs"`
	AdminEmail  string `json:"adminEmail"`
	Serial      uint32 `json:"serial"`
	Refresh     int32  `json:"refresh"`
	Retry       int32  `json:"retry"`
	Expire      int32  `json:"expire"`
	NegativeTTL int32  `json:"negativeTtl"`
}

// DNSZoneSpec declares a DNS zone and how its serving instances and member records are selected.
type DNSZoneSpec struct {
	// ZoneName is the fully-qualified zone name (e.g. "example.com").
	ZoneName string `json:"zoneName"`

	// ClusterRef names the owning Bind9Cluster. Exactly one of ClusterRef/ClusterProviderRef is set.
	// +optional
	ClusterRef string `json:"clusterRef,omitempty"`

	// ClusterProviderRef names the owning ClusterBind9Provider.
	// +optional
	ClusterProviderRef string `json:"clusterProviderRef,omitempty"`

	// SOA is the zone's start-of-authority record.
	SOA SOARecord `json:"soaRecord"`

	// TTL is the zone-wide default TTL applied to records that omit their own.
	TTL int32 `json:"ttl"`

	// NameServerIPs supplies glue addresses for the zone's NS records, keyed by nameserver FQDN.
	// +optional
	NameServerIPs map[string]string `json:"nameServerIps,omitempty"`

	// RecordsFrom selects the record CRs (across all eight kinds) that belong to this zone.
	RecordsFrom metav1.LabelSelector `json:"recordsFrom"`

	// Bind9InstancesFrom optionally overrides instance selection with an explicit label selector;
	// when unset, all instances of ClusterRef/ClusterProviderRef are selected (spec.md §4.13 step 2).
	// +optional
	Bind9InstancesFrom *metav1.LabelSelector `json:"bind9InstancesFrom,omitempty"`

	// DNSSECPolicy is an opaque policy name forwarded verbatim to the sidecar's zoneConfig.
	// +optional
	DNSSECPolicy string `json:"dnssecPolicy,omitempty"`

	// InlineSigning forwards verbatim to the sidecar's zoneConfig.
	// +optional
	InlineSigning bool `json:"inlineSigning,omitempty"`
}

// RecordReference is one entry of status.records[] (spec.md §4.13 step 7).
type RecordReference struct {
	APIVersion string `json:"apiVersion"`
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	Namespace  string `json:"namespace"`
	ZoneName   string `json:"zoneName"`

	// ObservedGeneration is the owning record CR's generation as of the last reconcile that
	// reset LastReconciledAt; used to decide whether to preserve it on the next pass.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// LastReconciledAt is nil until the record controller has pushed it to BIND9 at least once.
	// +optional
	LastReconciledAt *metav1.Time `json:"lastReconciledAt,omitempty"`
}

// PodInfo identifies a reachable sidecar endpoint for one serving instance (spec.md §4.13 step 5).
type PodInfo struct {
	Name         string `json:"name"`
	IP           string `json:"ip"`
	InstanceName string `json:"instanceName"`
	Namespace    string `json:"namespace"`
	// Role mirrors the owning instance's spec.role, needed to pick the primary among PodInfo entries.
	Role Bind9Role `json:"role"`
}

// DNSZoneStatus reports zone selection, record discovery, and reconciliation state.
type DNSZoneStatus struct {
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// Records mirrors the member record CRs discovered via spec.recordsFrom.
	// +optional
	Records []RecordReference `json:"records,omitempty"`

	// Bind9Instances lists the instances currently selected to serve this zone.
	// +optional
	Bind9Instances []ZoneReference `json:"bind9Instances,omitempty"`

	// SecondaryIPs is the resolved pod-IP list of the selected secondaries.
	// +optional
	SecondaryIPs []string `json:"secondaryIps,omitempty"`

	// SelectionMethod records how Bind9Instances was computed.
	// +optional
	SelectionMethod SelectionMethod `json:"selectionMethod,omitempty"`

	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Zone",type=string,JSONPath=`.spec.zoneName`
// +kubebuilder:printcolumn:name="Selection",type=string,JSONPath=`.status.selectionMethod`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// DNSZone declares a DNS zone, its SOA, and the selectors that bind it to serving instances and
// member record CRs.
type DNSZone struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   DNSZoneSpec   `json:"spec,omitempty"`
	Status DNSZoneStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// DNSZoneList contains a list of DNSZone.
type DNSZoneList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []DNSZone `json:"items"`
}

// GetConditions implements ConditionAccessor.
func (z *DNSZone) GetConditions() []metav1.Condition { return z.Status.Conditions }

// SetConditions implements ConditionAccessor.
func (z *DNSZone) SetConditions(conditions []metav1.Condition) { z.Status.Conditions = conditions }

// GetGeneration implements ConditionAccessor.
func (z *DNSZone) GetGeneration() int64 { return z.ObjectMeta.Generation }

func init() {
	SchemeBuilder.Register(&DNSZone{}, &DNSZoneList{})
}

// DeepCopyInto copies the receiver into out.
func (in *SOARecord) DeepCopyInto(out *SOARecord) { *out = *in }

// DeepCopy returns a deep copy of the receiver.
func (in *SOARecord) DeepCopy() *SOARecord {
	if in == nil {
		return nil
	}
	out := new(SOARecord)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *RecordReference) DeepCopyInto(out *RecordReference) {
	*out = *in
	if in.LastReconciledAt != nil {
		t := in.LastReconciledAt.DeepCopy()
		out.LastReconciledAt = &t
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *RecordReference) DeepCopy() *RecordReference {
	if in == nil {
		return nil
	}
	out := new(RecordReference)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *PodInfo) DeepCopyInto(out *PodInfo) { *out = *in }

// DeepCopy returns a deep copy of the receiver.
func (in *PodInfo) DeepCopy() *PodInfo {
	if in == nil {
		return nil
	}
	out := new(PodInfo)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *DNSZoneSpec) DeepCopyInto(out *DNSZoneSpec) {
	*out = *in
	out.SOA = in.SOA
	if in.NameServerIPs != nil {
		out.NameServerIPs = make(map[string]string, len(in.NameServerIPs))
		for k, v := range in.NameServerIPs {
			out.NameServerIPs[k] = v
		}
	}
	in.RecordsFrom.DeepCopyInto(&out.RecordsFrom)
	if in.Bind9InstancesFrom != nil {
		out.Bind9InstancesFrom = in.Bind9InstancesFrom.DeepCopy()
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *DNSZoneSpec) DeepCopy() *DNSZoneSpec {
	if in == nil {
		return nil
	}
	out := new(DNSZoneSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *DNSZoneStatus) DeepCopyInto(out *DNSZoneStatus) {
	*out = *in
	if in.Records != nil {
		out.Records = make([]RecordReference, len(in.Records))
		for i := range in.Records {
			in.Records[i].DeepCopyInto(&out.Records[i])
		}
	}
	if in.Bind9Instances != nil {
		out.Bind9Instances = make([]ZoneReference, len(in.Bind9Instances))
		copy(out.Bind9Instances, in.Bind9Instances)
	}
	out.SecondaryIPs = append([]string(nil), in.SecondaryIPs...)
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *DNSZoneStatus) DeepCopy() *DNSZoneStatus {
	if in == nil {
		return nil
	}
	out := new(DNSZoneStatus)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *DNSZone) DeepCopyInto(out *DNSZone) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy returns a deep copy of the receiver.
func (in *DNSZone) DeepCopy() *DNSZone {
	if in == nil {
		return nil
	}
	out := new(DNSZone)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *DNSZone) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver into out.
func (in *DNSZoneList) DeepCopyInto(out *DNSZoneList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]DNSZone, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *DNSZoneList) DeepCopy() *DNSZoneList {
	if in == nil {
		return nil
	}
	out := new(DNSZoneList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *DNSZoneList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
