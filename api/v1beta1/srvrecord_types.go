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

// SRVRecordSpec is a single service-location record. Name carries the full
// "_service._proto.name" owner label per RFC 2782.
type SRVRecordSpec struct {
	// Name is the leftmost owner label(s), e.g. "_sip._tcp", or "@" for the zone apex.
	Name string `json:"name"`

	Priority int32 `json:"priority"`
	Weight   int32 `json:"weight"`
	Port     int32 `json:"port"`

	// Target is the FQDN of the host providing the service.
	Target string `json:"target"`

	// +optional
	TTL int32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Name",type=string,JSONPath=`.spec.name`
// +kubebuilder:printcolumn:name="Target",type=string,JSONPath=`.spec.target`
// +kubebuilder:printcolumn:name="Port",type=integer,JSONPath=`.spec.port`

// SRVRecord is a single SRV resource record.
type SRVRecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   SRVRecordSpec `json:"spec,omitempty"`
	Status RecordStatus  `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// SRVRecordList contains a list of SRVRecord.
type SRVRecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []SRVRecord `json:"items"`
}

// GetConditions implements ConditionAccessor.
func (r *SRVRecord) GetConditions() []metav1.Condition { return r.Status.Conditions }

// SetConditions implements ConditionAccessor.
func (r *SRVRecord) SetConditions(conditions []metav1.Condition) { r.Status.Conditions = conditions }

// GetGeneration implements ConditionAccessor.
func (r *SRVRecord) GetGeneration() int64 { return r.ObjectMeta.Generation }

func init() {
	SchemeBuilder.Register(&SRVRecord{}, &SRVRecordList{})
}

// DeepCopyInto copies the receiver into out.
func (in *SRVRecordSpec) DeepCopyInto(out *SRVRecordSpec) { *out = *in }

// DeepCopy returns a deep copy of the receiver.
func (in *SRVRecordSpec) DeepCopy() *SRVRecordSpec {
	if in == nil {
		return nil
	}
	out := new(SRVRecordSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *SRVRecord) DeepCopyInto(out *SRVRecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy returns a deep copy of the receiver.
func (in *SRVRecord) DeepCopy() *SRVRecord {
	if in == nil {
		return nil
	}
	out := new(SRVRecord)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *SRVRecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver into out.
func (in *SRVRecordList) DeepCopyInto(out *SRVRecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]SRVRecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *SRVRecordList) DeepCopy() *SRVRecordList {
	if in == nil {
		return nil
	}
	out := new(SRVRecordList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *SRVRecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
