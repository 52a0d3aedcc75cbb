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

// MXRecordSpec is a single mail-exchanger record.
type MXRecordSpec struct {
	// Name is the leftmost label, or "@" for the zone apex.
	Name string `json:"name"`

	// Priority is the MX preference value; lower is preferred.
	Priority int32 `json:"priority"`

	// Server is the mail server's FQDN.
	Server string `json:"server"`

	// +optional
	TTL int32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Name",type=string,JSONPath=`.spec.name`
// +kubebuilder:printcolumn:name="Priority",type=integer,JSONPath=`.spec.priority`
// +kubebuilder:printcolumn:name="Server",type=string,JSONPath=`.spec.server`

// MXRecord is a single MX resource record.
type MXRecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   MXRecordSpec `json:"spec,omitempty"`
	Status RecordStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// MXRecordList contains a list of MXRecord.
type MXRecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []MXRecord `json:"items"`
}

// GetConditions implements ConditionAccessor.
func (r *MXRecord) GetConditions() []metav1.Condition { return r.Status.Conditions }

// SetConditions implements ConditionAccessor.
func (r *MXRecord) SetConditions(conditions []metav1.Condition) { r.Status.Conditions = conditions }

// GetGeneration implements ConditionAccessor.
func (r *MXRecord) GetGeneration() int64 { return r.ObjectMeta.Generation }

func init() {
	SchemeBuilder.Register(&MXRecord{}, &MXRecordList{})
}

// DeepCopyInto copies the receiver into out.
func (in *MXRecordSpec) DeepCopyInto(out *MXRecordSpec) { *out = *in }

// DeepCopy returns a deep copy of the receiver.
func (in *MXRecordSpec) DeepCopy() *MXRecordSpec {
	if in == nil {
		return nil
	}
	out := new(MXRecordSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *MXRecord) DeepCopyInto(out *MXRecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy returns a deep copy of the receiver.
func (in *MXRecord) DeepCopy() *MXRecord {
	if in == nil {
		return nil
	}
	out := new(MXRecord)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *MXRecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver into out.
func (in *MXRecordList) DeepCopyInto(out *MXRecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]MXRecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *MXRecordList) DeepCopy() *MXRecordList {
	if in == nil {
		return nil
	}
	out := new(MXRecordList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *MXRecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
