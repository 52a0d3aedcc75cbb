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

// NSRecordSpec is a single delegation nameserver record.
type NSRecordSpec struct {
	// Name is the leftmost label, or "@" for the zone apex.
	Name string `json:"name"`

	// Server is the delegated nameserver's FQDN.
	Server string `json:"server"`

	// +optional
	TTL int32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Name",type=string,JSONPath=`.spec.name`
// +kubebuilder:printcolumn:name="Server",type=string,JSONPath=`.spec.server`

// NSRecord is a single NS resource record.
type NSRecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   NSRecordSpec `json:"spec,omitempty"`
	Status RecordStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// NSRecordList contains a list of NSRecord.
type NSRecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []NSRecord `json:"items"`
}

// GetConditions implements ConditionAccessor.
func (r *NSRecord) GetConditions() []metav1.Condition { return r.Status.Conditions }

// SetConditions implements ConditionAccessor.
func (r *NSRecord) SetConditions(conditions []metav1.Condition) { r.Status.Conditions = conditions }

// GetGeneration implements ConditionAccessor.
func (r *NSRecord) GetGeneration() int64 { return r.ObjectMeta.Generation }

func init() {
	SchemeBuilder.Register(&NSRecord{}, &NSRecordList{})
}

// DeepCopyInto copies the receiver into out.
func (in *NSRecordSpec) DeepCopyInto(out *NSRecordSpec) { *out = *in }

// DeepCopy returns a deep copy of the receiver.
func (in *NSRecordSpec) DeepCopy() *NSRecordSpec {
	if in == nil {
		return nil
	}
	out := new(NSRecordSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *NSRecord) DeepCopyInto(out *NSRecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy returns a deep copy of the receiver.
func (in *NSRecord) DeepCopy() *NSRecord {
	if in == nil {
		return nil
	}
	out := new(NSRecord)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *NSRecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver into out.
func (in *NSRecordList) DeepCopyInto(out *NSRecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]NSRecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *NSRecordList) DeepCopy() *NSRecordList {
	if in == nil {
		return nil
	}
	out := new(NSRecordList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *NSRecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
