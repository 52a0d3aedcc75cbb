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

import corev1 "k8s.io/api/core/v1"

// DeepCopyInto copies the receiver into out.
func (in *RndcKeyConfig) DeepCopyInto(out *RndcKeyConfig) {
	*out = *in
	if in.SecretRef != nil {
		out.SecretRef = &corev1.LocalObjectReference{Name: in.SecretRef.Name}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *RndcKeyConfig) DeepCopy() *RndcKeyConfig {
	if in == nil {
		return nil
	}
	out := new(RndcKeyConfig)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *BindcarConfig) DeepCopyInto(out *BindcarConfig) { *out = *in }

// DeepCopy returns a deep copy of the receiver.
func (in *BindcarConfig) DeepCopy() *BindcarConfig {
	if in == nil {
		return nil
	}
	out := new(BindcarConfig)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *ServiceOverride) DeepCopyInto(out *ServiceOverride) {
	*out = *in
	if in.Annotations != nil {
		out.Annotations = make(map[string]string, len(in.Annotations))
		for k, v := range in.Annotations {
			out.Annotations[k] = v
		}
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *ServiceOverride) DeepCopy() *ServiceOverride {
	if in == nil {
		return nil
	}
	out := new(ServiceOverride)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *GlobalConfig) DeepCopyInto(out *GlobalConfig) {
	*out = *in
	out.Forwarders = append([]string(nil), in.Forwarders...)
	out.AllowQuery = append([]string(nil), in.AllowQuery...)
}

// DeepCopy returns a deep copy of the receiver.
func (in *GlobalConfig) DeepCopy() *GlobalConfig {
	if in == nil {
		return nil
	}
	out := new(GlobalConfig)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *RoleSpec) DeepCopyInto(out *RoleSpec) {
	*out = *in
	if in.Labels != nil {
		out.Labels = make(map[string]string, len(in.Labels))
		for k, v := range in.Labels {
			out.Labels[k] = v
		}
	}
	if in.Service != nil {
		out.Service = in.Service.DeepCopy()
	}
	out.AllowTransfer = append([]string(nil), in.AllowTransfer...)
	if in.RndcKeyConfig != nil {
		out.RndcKeyConfig = in.RndcKeyConfig.DeepCopy()
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *RoleSpec) DeepCopy() *RoleSpec {
	if in == nil {
		return nil
	}
	out := new(RoleSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *ConfigMapRefs) DeepCopyInto(out *ConfigMapRefs) {
	*out = *in
	if in.NamedConf != nil {
		out.NamedConf = in.NamedConf.DeepCopy()
	}
	if in.NamedConfOptions != nil {
		out.NamedConfOptions = in.NamedConfOptions.DeepCopy()
	}
	if in.NamedConfZones != nil {
		out.NamedConfZones = in.NamedConfZones.DeepCopy()
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *ConfigMapRefs) DeepCopy() *ConfigMapRefs {
	if in == nil {
		return nil
	}
	out := new(ConfigMapRefs)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *CommonSpec) DeepCopyInto(out *CommonSpec) {
	*out = *in
	if in.ConfigMapRefs != nil {
		out.ConfigMapRefs = in.ConfigMapRefs.DeepCopy()
	}
	in.Primary.DeepCopyInto(&out.Primary)
	in.Secondary.DeepCopyInto(&out.Secondary)
	in.Global.DeepCopyInto(&out.Global)
	if in.RndcSecretRefs != nil {
		out.RndcSecretRefs = make(map[string]corev1.LocalObjectReference, len(in.RndcSecretRefs))
		for k, v := range in.RndcSecretRefs {
			out.RndcSecretRefs[k] = v
		}
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
	if in.RndcKeyConfig != nil {
		out.RndcKeyConfig = in.RndcKeyConfig.DeepCopy()
	}
}

// DeepCopy returns a deep copy of the receiver.
func (in *CommonSpec) DeepCopy() *CommonSpec {
	if in == nil {
		return nil
	}
	out := new(CommonSpec)
	in.DeepCopyInto(out)
	return out
}
