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

// AAAARecordSpec is a single IPv6 resource record.
type AAAARecordSpec struct {
	// Name is the leftmost label, or "@" for the zone apex.
	Name string `json:"name"`

	// IPv6 is the address this record resolves to.
	IPv6 string `json:"ipv6"`

	// +optional
	TTL int32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Name",type=string,JSONPath=`.spec.name`
// +kubebuilder:printcolumn:name="IPv6",type=string,JSONPath=`.spec.ipv6`

// AAAARecord is a single AAAA resource record.
type AAAARecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   AAAARecordSpec `json:"spec,omitempty"`
	Status RecordStatus   `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// AAAARecordList contains a list of AAAARecord.
type AAAARecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []AAAARecord `json:"items"`
}

// GetConditions implements ConditionAccessor.
func (r *AAAARecord) GetConditions() []metav1.Condition { return r.Status.Conditions }

// SetConditions implements ConditionAccessor.
func (r *AAAARecord) SetConditions(conditions []metav1.Condition) { r.Status.Conditions = conditions }

// GetGeneration implements ConditionAccessor.
func (r *AAAARecord) GetGeneration() int64 { return r.ObjectMeta.Generation }

func init() {
	SchemeBuilder.Register(&AAAARecord{}, &AAAARecordList{})
}

// DeepCopyInto copies the receiver into out.
func (in *AAAARecordSpec) DeepCopyInto(out *AAAARecordSpec) { *out = *in }

// DeepCopy returns a deep copy of the receiver.
func (in *AAAARecordSpec) DeepCopy() *AAAARecordSpec {
	if in == nil {
		return nil
	}
	out := new(AAAARecordSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *AAAARecord) DeepCopyInto(out *AAAARecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy returns a deep copy of the receiver.
func (in *AAAARecord) DeepCopy() *AAAARecord {
	if in == nil {
		return nil
	}
	out := new(AAAARecord)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *AAAARecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver into out.
func (in *AAAARecordList) DeepCopyInto(out *AAAARecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]AAAARecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *AAAARecordList) DeepCopy() *AAAARecordList {
	if in == nil {
		return nil
	}
	out := new(AAAARecordList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *AAAARecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
