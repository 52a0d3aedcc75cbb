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

// CAARecordSpec is a single certification-authority-authorization record.
type CAARecordSpec struct {
	// Name is the leftmost label, or "@" for the zone apex.
	Name string `json:"name"`

	// Flag is the CAA critical-bit flag octet (0 or 128).
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:validation:Maximum=255
	Flag int32 `json:"flag"`

	// Tag is the property tag: issue, issuewild, or iodef.
	// +kubebuilder:validation:Enum=issue;issuewild;iodef
	Tag string `json:"tag"`

	// Value is the tag's property value.
	Value string `json:"value"`

	// +optional
	TTL int32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Name",type=string,JSONPath=`.spec.name`
// +kubebuilder:printcolumn:name="Tag",type=string,JSONPath=`.spec.tag`

// CAARecord is a single CAA resource record.
type CAARecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   CAARecordSpec `json:"spec,omitempty"`
	Status RecordStatus  `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// CAARecordList contains a list of CAARecord.
type CAARecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []CAARecord `json:"items"`
}

// GetConditions implements ConditionAccessor.
func (r *CAARecord) GetConditions() []metav1.Condition { return r.Status.Conditions }

// SetConditions implements ConditionAccessor.
func (r *CAARecord) SetConditions(conditions []metav1.Condition) { r.Status.Conditions = conditions }

// GetGeneration implements ConditionAccessor.
func (r *CAARecord) GetGeneration() int64 { return r.ObjectMeta.Generation }

func init() {
	SchemeBuilder.Register(&CAARecord{}, &CAARecordList{})
}

// DeepCopyInto copies the receiver into out.
func (in *CAARecordSpec) DeepCopyInto(out *CAARecordSpec) { *out = *in }

// DeepCopy returns a deep copy of the receiver.
func (in *CAARecordSpec) DeepCopy() *CAARecordSpec {
	if in == nil {
		return nil
	}
	out := new(CAARecordSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *CAARecord) DeepCopyInto(out *CAARecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy returns a deep copy of the receiver.
func (in *CAARecord) DeepCopy() *CAARecord {
	if in == nil {
		return nil
	}
	out := new(CAARecord)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *CAARecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver into out.
func (in *CAARecordList) DeepCopyInto(out *CAARecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]CAARecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *CAARecordList) DeepCopy() *CAARecordList {
	if in == nil {
		return nil
	}
	out := new(CAARecordList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *CAARecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
