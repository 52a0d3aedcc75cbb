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

package bindcar

// Zone type strings the sidecar's create-zone endpoint accepts.
const (
	ZoneTypePrimary   = "primary"
	ZoneTypeSecondary = "secondary"
)

// SOARecord is the wire shape of a zone's start-of-authority record (spec.md §4.9).
type SOARecord struct {
	PrimaryNS   string `json:"primaryNs"`
	AdminEmail  string `json:"adminEmail"`
	Serial      uint32 `json:"serial"`
	Refresh     int32  `json:"refresh"`
	Retry       int32  `json:"retry"`
	Expire      int32  `json:"expire"`
	NegativeTTL int32  `json:"negativeTtl"`
}

// ZoneConfig is the body of a create-zone request (spec.md §4.9).
type ZoneConfig struct {
	TTL           int32             `json:"ttl"`
	SOA           SOARecord         `json:"soa"`
	NameServers   []string          `json:"nameServers"`
	NameServerIPs map[string]string `json:"nameServerIps,omitempty"`
	Records       []any             `json:"records,omitempty"`
	AlsoNotify    []string          `json:"alsoNotify,omitempty"`
	AllowTransfer []string          `json:"allowTransfer,omitempty"`
	Primaries     []string          `json:"primaries,omitempty"`
	DNSSECPolicy  string            `json:"dnssecPolicy,omitempty"`
	InlineSigning bool              `json:"inlineSigning,omitempty"`
}

// CreateZoneRequest is the POST /api/v1/zones request body.
type CreateZoneRequest struct {
	ZoneName      string     `json:"zoneName"`
	ZoneType      string     `json:"zoneType"`
	ZoneConfig    ZoneConfig `json:"zoneConfig"`
	UpdateKeyName string     `json:"updateKeyName,omitempty"`
}

// ModifyZoneRequest is the PATCH /api/v1/zones/{zone} request body.
type ModifyZoneRequest struct {
	AlsoNotify    []string `json:"alsoNotify,omitempty"`
	AllowTransfer []string `json:"allowTransfer,omitempty"`
}

// ZoneResponse is the generic JSON envelope the sidecar returns for zone mutations.
type ZoneResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Added   bool   `json:"added,omitempty"`
}
