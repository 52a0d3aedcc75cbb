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

// CNAMERecordSpec is a single canonical-name alias record.
type CNAMERecordSpec struct {
	// Name is the leftmost label, or "@" for the zone apex.
	Name string `json:"name"`

	// Target is the canonical name this alias resolves to (FQDN, trailing dot optional).
	Target string `json:"target"`

	// +optional
	TTL int32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Name",type=string,JSONPath=`.spec.name`
// +kubebuilder:printcolumn:name="Target",type=string,JSONPath=`.spec.target`

// CNAMERecord is a single CNAME resource record.
type CNAMERecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   CNAMERecordSpec `json:"spec,omitempty"`
	Status RecordStatus    `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// CNAMERecordList contains a list of CNAMERecord.
type CNAMERecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []CNAMERecord `json:"items"`
}

// GetConditions implements ConditionAccessor.
func (r *CNAMERecord) GetConditions() []metav1.Condition { return r.Status.Conditions }

// SetConditions implements ConditionAccessor.
func (r *CNAMERecord) SetConditions(conditions []metav1.Condition) { r.Status.Conditions = conditions }

// GetGeneration implements ConditionAccessor.
func (r *CNAMERecord) GetGeneration() int64 { return r.ObjectMeta.Generation }

func init() {
	SchemeBuilder.Register(&CNAMERecord{}, &CNAMERecordList{})
}

// DeepCopyInto copies the receiver into out.
func (in *CNAMERecordSpec) DeepCopyInto(out *CNAMERecordSpec) { *out = *in }

// DeepCopy returns a deep copy of the receiver.
func (in *CNAMERecordSpec) DeepCopy() *CNAMERecordSpec {
	if in == nil {
		return nil
	}
	out := new(CNAMERecordSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *CNAMERecord) DeepCopyInto(out *CNAMERecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy returns a deep copy of the receiver.
func (in *CNAMERecord) DeepCopy() *CNAMERecord {
	if in == nil {
		return nil
	}
	out := new(CNAMERecord)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *CNAMERecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver into out.
func (in *CNAMERecordList) DeepCopyInto(out *CNAMERecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]CNAMERecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *CNAMERecordList) DeepCopy() *CNAMERecordList {
	if in == nil {
		return nil
	}
	out := new(CNAMERecordList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *CNAMERecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
