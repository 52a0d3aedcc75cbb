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

// Package constant holds the label, annotation, and finalizer strings shared across every
// controller (spec.md §6).
package constant

// Standard Kubernetes recommended labels (spec.md §6), applied to every child resource the
// operator creates, plus the short-form "app"/"instance" labels the spec carries alongside
// them for tooling that predates the app.kubernetes.io/* convention.
const (
	LabelApp      = "app"
	LabelInstance = "instance"

	LabelAppName      = "app.kubernetes.io/name"
	LabelAppInstance  = "app.kubernetes.io/instance"
	LabelAppComponent = "app.kubernetes.io/component"
	LabelAppManagedBy = "app.kubernetes.io/managed-by"
	LabelAppPartOf    = "app.kubernetes.io/part-of"

	AppNameBind9       = "bind9"
	AppComponentServer = "dns-server"
	AppManagedByBindy  = "bindy"
	AppPartOfBindy     = "bindy"
)

// bindy-specific labels and annotations (spec.md §6).
const (
	// LabelManagedBy names the controller kind that owns a generated child (e.g.
	// "bind9cluster"), distinct from the app.kubernetes.io/managed-by convention above
	// which always reads "bindy".
	LabelManagedBy = "bindy.firestoned.io/managed-by"
	LabelCluster   = "bindy.firestoned.io/cluster"
	LabelRole      = "bindy.firestoned.io/role"

	RoleValuePrimary   = "primary"
	RoleValueSecondary = "secondary"

	AnnotationInstanceIndex     = "bindy.firestoned.io/instance-index"
	AnnotationReconcileTrigger  = "bindy.firestoned.io/reconcile-trigger"
	AnnotationRndcCreatedAt     = "bindy.firestoned.io/rndc-created-at"
	AnnotationRndcRotateAt      = "bindy.firestoned.io/rndc-rotate-at"
	AnnotationRndcRotationCount = "bindy.firestoned.io/rndc-rotation-count"
	AnnotationRndcRotatedAt     = "bindy.firestoned.io/rndc-rotated-at"
)

// Finalizer strings, one per CR kind (spec.md §6 "exact" list). ClusterBind9Provider is the
// cluster-scoped twin of Bind9Cluster and shares its finalizer and cleanup logic — see
// DESIGN.md's Open Question decision on finalizer runtime reuse.
const (
	FinalizerBind9Cluster  = "bind9cluster.dns.firestoned.io/finalizer"
	FinalizerBind9Instance = "bind9instance.dns.firestoned.io/finalizer"
	FinalizerDNSZone       = "dnszone.dns.firestoned.io/finalizer"
	FinalizerARecord       = "arecord.dns.firestoned.io/finalizer"
	FinalizerAAAARecord    = "aaaarecord.dns.firestoned.io/finalizer"
	FinalizerCNAMERecord   = "cnamerecord.dns.firestoned.io/finalizer"
	FinalizerTXTRecord     = "txtrecord.dns.firestoned.io/finalizer"
	FinalizerMXRecord      = "mxrecord.dns.firestoned.io/finalizer"
	FinalizerNSRecord      = "nsrecord.dns.firestoned.io/finalizer"
	FinalizerSRVRecord     = "srvrecord.dns.firestoned.io/finalizer"
	FinalizerCAARecord     = "caarecord.dns.firestoned.io/finalizer"
)
