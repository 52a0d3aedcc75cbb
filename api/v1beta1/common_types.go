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
)

// ConditionAccessor is implemented by every kind in this API group so that
// internal/condition can read and write the status condition list generically.
// +kubebuilder:object:generate=false
type ConditionAccessor interface {
	GetConditions() []metav1.Condition
	SetConditions(conditions []metav1.Condition)
	GetGeneration() int64
}

// Bind9Role identifies whether a Bind9Instance serves as primary or secondary for its zones.
// +kubebuilder:validation:Enum=primary;secondary
type Bind9Role string

const (
	// RolePrimary is the authoritative source of truth for a zone.
	RolePrimary Bind9Role = "primary"
	// RoleSecondary transfers zone content from a primary via AXFR/IXFR.
	RoleSecondary Bind9Role = "secondary"
)

// RndcAlgorithm enumerates the HMAC algorithms supported for RNDC/TSIG keys.
// +kubebuilder:validation:Enum=hmac-md5;hmac-sha1;hmac-sha224;hmac-sha256;hmac-sha384;hmac-sha512
type RndcAlgorithm string

const (
	HmacMd5    RndcAlgorithm = "hmac-md5"
	HmacSha1   RndcAlgorithm = "hmac-sha1"
	HmacSha224 RndcAlgorithm = "hmac-sha224"
	HmacSha256 RndcAlgorithm = "hmac-sha256"
	HmacSha384 RndcAlgorithm = "hmac-sha384"
	HmacSha512 RndcAlgorithm = "hmac-sha512"
)

// DefaultRndcAlgorithm is used whenever an RndcKeyConfig does not specify one.
const DefaultRndcAlgorithm = HmacSha256

// DefaultRndcRotateAfter is the rotation interval used when RndcKeyConfig.RotateAfter is empty.
const DefaultRndcRotateAfter = "720h"

// RndcKeyConfig configures how the operator provisions or references the RNDC/TSIG key
// used both for `rndc`-style sidecar authentication and for signing RFC 2136 dynamic updates.
// Resolution precedence (instance > cluster-role > cluster-global > default) is implemented
// by internal/controller/bind9instance, not by this type.
type RndcKeyConfig struct {
	// SecretRef points at an externally managed Secret containing the RNDC key.
	// When set, the operator never generates or rotates this key.
	// +optional
	SecretRef *corev1.LocalObjectReference `json:"secretRef,omitempty"`

	// Algorithm selects the HMAC algorithm for a generated key. Ignored when SecretRef is set.
	// +optional
	Algorithm RndcAlgorithm `json:"algorithm,omitempty"`

	// RotateAfter is a Go-style duration string (see internal/durationutil) bounding how long a
	// generated key remains valid before the operator rotates it. Ignored when SecretRef is set.
	// +optional
	RotateAfter string `json:"rotateAfter,omitempty"`

	// AutoRotate enables automatic rotation of a generated key. Ignored when SecretRef is set.
	// +optional
	AutoRotate bool `json:"autoRotate,omitempty"`
}

// BindcarConfig configures the in-pod HTTP sidecar that the operator drives over HTTP.
type BindcarConfig struct {
	// Image is the bindcar sidecar container image. Defaults to a built-in reference.
	// +optional
	Image string `json:"image,omitempty"`

	// Port is the bindcar HTTP API port. Defaults to 8080.
	// +optional
	Port int32 `json:"port,omitempty"`

	// DNSPort is the BIND9 DNS port inside the container. Defaults to 5353 (non-privileged,
	// see spec's DNS_CONTAINER_PORT) so the daemon need not run as root.
	// +optional
	DNSPort int32 `json:"dnsPort,omitempty"`
}

// DefaultBindcarPort is used when BindcarConfig.Port is zero.
const DefaultBindcarPort int32 = 8080

// DefaultDNSContainerPort is used when BindcarConfig.DNSPort is zero. BIND9 listens on this
// port inside the container; Services remap it to the standard DNS port 53.
const DefaultDNSContainerPort int32 = 5353

// ServiceOverride carries the subset of corev1.ServiceSpec callers are allowed to override
// for role-level Services (common.primary.service / common.secondary.service).
type ServiceOverride struct {
	// Type overrides the Service type (e.g. LoadBalancer for primaries).
	// +optional
	Type corev1.ServiceType `json:"type,omitempty"`

	// Annotations are merged onto the generated Service's metadata.
	// +optional
	Annotations map[string]string `json:"annotations,omitempty"`

	// LoadBalancerIP requests a specific address from the cloud load balancer controller.
	// +optional
	LoadBalancerIP string `json:"loadBalancerIP,omitempty"`

	// ExternalTrafficPolicy overrides the Service's external traffic policy.
	// +optional
	ExternalTrafficPolicy corev1.ServiceExternalTrafficPolicy `json:"externalTrafficPolicy,omitempty"`
}

// GlobalConfig holds BIND9 options shared by every instance in a cluster (named.conf.options).
type GlobalConfig struct {
	// Recursion enables recursive resolution on managed servers. Defaults to false (authoritative only).
	// +optional
	Recursion bool `json:"recursion,omitempty"`

	// Forwarders lists upstream resolvers used when Recursion is true.
	// +optional
	Forwarders []string `json:"forwarders,omitempty"`

	// AllowQuery restricts which clients may query managed zones (ACL match-list syntax).
	// +optional
	AllowQuery []string `json:"allowQuery,omitempty"`

	// DNSSECValidation selects BIND9's dnssec-validation mode (auto, yes, no).
	// +optional
	DNSSECValidation string `json:"dnssecValidation,omitempty"`
}

// RoleSpec configures one role (primary or secondary) of a Bind9Cluster's managed instances.
type RoleSpec struct {
	// Replicas is the desired number of managed instances for this role.
	// +kubebuilder:validation:Minimum=0
	Replicas int32 `json:"replicas"`

	// Labels are merged onto every managed instance of this role, in addition to the
	// operator's own ownership labels.
	// +optional
	Labels map[string]string `json:"labels,omitempty"`

	// Service overrides the generated Service for instances of this role.
	// +optional
	Service *ServiceOverride `json:"service,omitempty"`

	// AllowTransfer is the role-level zone-transfer ACL (match-list syntax), used as the
	// default for zones served by instances of this role unless the zone overrides it.
	// +optional
	AllowTransfer []string `json:"allowTransfer,omitempty"`

	// RndcKeyConfig overrides CommonSpec.RndcKeyConfig for instances of this role, one level
	// above instance-level in the precedence chain of spec.md §4.12.1.
	// +optional
	RndcKeyConfig *RndcKeyConfig `json:"rndcKeyConfig,omitempty"`
}

// ConfigMapRefs lets users supply hand-written named.conf fragments instead of the
// operator's rendered defaults.
type ConfigMapRefs struct {
	// NamedConf references a ConfigMap key holding a full named.conf.
	// +optional
	NamedConf *corev1.ConfigMapKeySelector `json:"namedConf,omitempty"`

	// NamedConfOptions references a ConfigMap key holding named.conf.options.
	// +optional
	NamedConfOptions *corev1.ConfigMapKeySelector `json:"namedConfOptions,omitempty"`

	// NamedConfZones references a ConfigMap key holding named.conf.zones.
	// +optional
	NamedConfZones *corev1.ConfigMapKeySelector `json:"namedConfZones,omitempty"`
}

// CommonSpec is the shared schema between Bind9Cluster and ClusterBind9Provider (spec.md §9's
// cluster-vs-global polymorphism: both kinds embed this struct and differ only in scope).
type CommonSpec struct {
	// Version is the BIND9 version tag used to select the default image.
	// +optional
	Version string `json:"version,omitempty"`

	// Image overrides the default BIND9 container image entirely.
	// +optional
	Image string `json:"image,omitempty"`

	// ConfigMapRefs optionally supplies user-authored named.conf fragments.
	// +optional
	ConfigMapRefs *ConfigMapRefs `json:"configMapRefs,omitempty"`

	// Primary configures the primary role's replica count and overrides.
	Primary RoleSpec `json:"primary"`

	// Secondary configures the secondary role's replica count and overrides.
	// +optional
	Secondary RoleSpec `json:"secondary,omitempty"`

	// Global holds BIND9 options shared by every managed instance.
	// +optional
	Global GlobalConfig `json:"global,omitempty"`

	// RndcSecretRefs optionally supplies externally managed RNDC keys, keyed by instance role.
	// +optional
	RndcSecretRefs map[string]corev1.LocalObjectReference `json:"rndcSecretRefs,omitempty"`

	// Volumes are attached to every managed instance's pod template.
	// +optional
	Volumes []corev1.Volume `json:"volumes,omitempty"`

	// VolumeMounts are attached to every managed instance's bind9 container.
	// +optional
	VolumeMounts []corev1.VolumeMount `json:"volumeMounts,omitempty"`

	// BindcarConfig configures the sidecar on every managed instance.
	// +optional
	BindcarConfig *BindcarConfig `json:"bindcarConfig,omitempty"`

	// RndcKeyConfig is the cluster-global default, below cluster-role and above the built-in
	// default in the precedence chain of spec.md §4.12.1.
	// +optional
	RndcKeyConfig *RndcKeyConfig `json:"rndcKeyConfig,omitempty"`
}
