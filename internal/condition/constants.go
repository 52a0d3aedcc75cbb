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

package condition

// TypeReady is the encompassing condition type every resource carries (spec.md §4.5).
const TypeReady = "Ready"

// Reason constants: the stable, CamelCase reason taxonomy of spec.md §4.5, plus the
// zone/record/bindcar-specific reasons named across §4.7, §4.9, §4.10, §4.12-4.14.
const (
	// Rollup reasons, used identically at every level (cluster, instance, zone, record).
	ReasonAllReady       = "AllReady"
	ReasonReady          = "Ready"
	ReasonPartiallyReady = "PartiallyReady"
	ReasonNotReady       = "NotReady"
	ReasonNoChildren     = "NoChildren"
	ReasonProgressing    = "Progressing"

	// Zone / transfer reasons (dnszone, C13).
	ReasonZoneNotFound           = "ZoneNotFound"
	ReasonZoneTransferComplete   = "ZoneTransferComplete"
	ReasonZoneTransferFailed     = "ZoneTransferFailed"
	ReasonZoneCreationFailed     = "ZoneCreationFailed"
	ReasonInvalidZoneConfig      = "InvalidZoneConfiguration"
	ReasonZoneTransferRefused    = "ZoneTransferRefused"
	ReasonZoneTransferTimeout    = "ZoneTransferTimeout"
	ReasonZoneConflict           = "ZoneConflict"
	ReasonSelectionConflict      = "SelectionConflict"

	// Pod / instance reasons (bind9instance, C12).
	ReasonPodsPending           = "PodsPending"
	ReasonPodsCrashing          = "PodsCrashing"
	ReasonRNDCAuthFailed        = "RNDCAuthenticationFailed"
	ReasonInstancesCreated      = "InstancesCreated"
	ReasonInstancesScaling      = "InstancesScaling"
	ReasonInstancesPending      = "InstancesPending"

	// Cluster reasons (bind9cluster/clusterbind9provider, C11).
	ReasonClustersReady       = "ClustersReady"
	ReasonClustersProgressing = "ClustersProgressing"

	// Bindcar HTTP reasons (C6/C9), classified by internal/httperrors.
	ReasonBindcarUnreachable    = "BindcarUnreachable"
	ReasonBindcarBadRequest     = "BindcarBadRequest"
	ReasonBindcarAuthFailed     = "BindcarAuthFailed"
	ReasonBindcarInternalError  = "BindcarInternalError"
	ReasonBindcarNotImplemented = "BindcarNotImplemented"
	ReasonGatewayError          = "GatewayError"

	// Record reasons (C14).
	ReasonRecordUpdateFailed = "RecordUpdateFailed"
	ReasonInvalidRecordData  = "InvalidRecordData"
	ReasonTsigKeyNotFound    = "TsigKeyNotFound"
	ReasonOrphanedRecord     = "OrphanedRecord"

	// Generic fallback for unclassified permanent failures.
	ReasonInternalError = "InternalError"
)
