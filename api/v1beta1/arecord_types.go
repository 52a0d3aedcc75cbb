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

// ARecordSpec is a single IPv4 resource record.
type ARecordSpec struct {
	// Name is the leftmost label, or "@" for the zone apex.
	Name string `json:"name"`

	// IPv4 is the address this record resolves to.
	IPv4 string `json:"ipv4"`

	// TTL overrides the zone default when non-zero.
	// +optional
	TTL int32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Name",type=string,JSONPath=`.spec.name`
// +kubebuilder:printcolumn:name="IPv4",type=string,JSONPath=`.spec.ipv4`

// ARecord is a single A resource record, discoverable by some DNSZone's recordsFrom selector.
type ARecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ARecordSpec  `json:"spec,omitempty"`
	Status RecordStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ARecordList contains a list of ARecord.
type ARecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ARecord `json:"items"`
}

// GetConditions implements ConditionAccessor.
func (r *ARecord) GetConditions() []metav1.Condition { return r.Status.Conditions }

// SetConditions implements ConditionAccessor.
func (r *ARecord) SetConditions(conditions []metav1.Condition) { r.Status.Conditions = conditions }

// GetGeneration implements ConditionAccessor.
func (r *ARecord) GetGeneration() int64 { return r.ObjectMeta.Generation }

func init() {
	SchemeBuilder.Register(&ARecord{}, &ARecordList{})
}

// DeepCopyInto copies the receiver into out.
func (in *ARecordSpec) DeepCopyInto(out *ARecordSpec) { *out = *in }

// DeepCopy returns a deep copy of the receiver.
func (in *ARecordSpec) DeepCopy() *ARecordSpec {
	if in == nil {
		return nil
	}
	out := new(ARecordSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *ARecord) DeepCopyInto(out *ARecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy returns a deep copy of the receiver.
func (in *ARecord) DeepCopy() *ARecord {
	if in == nil {
		return nil
	}
	out := new(ARecord)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *ARecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver into out.
func (in *ARecordList) DeepCopyInto(out *ARecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]ARecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *ARecordList) DeepCopy() *ARecordList {
	if in == nil {
		return nil
	}
	out := new(ARecordList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *ARecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
