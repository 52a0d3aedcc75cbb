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

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/firestoned/bindy/internal/httperrors"
)

// ReloadZone reloads a single zone. A "not found" response is rewritten into a clearer
// message naming the zone and server.
func (c *Client) ReloadZone(ctx context.Context, zone string) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/zones/%s/reload", zone), nil)
	return c.clarifyNotFound(err, zone)
}

// ReloadAllZones reloads the server's entire zone set.
func (c *Client) ReloadAllZones(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/server/reload", nil)
	return err
}

// Retransfer forces a secondary zone to re-transfer from its primaries.
func (c *Client) Retransfer(ctx context.Context, zone string) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/zones/%s/retransfer", zone), nil)
	return c.clarifyNotFound(err, zone)
}

// Freeze suspends dynamic updates and transfers for a zone.
func (c *Client) Freeze(ctx context.Context, zone string) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/zones/%s/freeze", zone), nil)
	return c.clarifyNotFound(err, zone)
}

// Thaw resumes dynamic updates and transfers for a zone previously frozen.
func (c *Client) Thaw(ctx context.Context, zone string) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/zones/%s/thaw", zone), nil)
	return c.clarifyNotFound(err, zone)
}

// Notify sends a DNS NOTIFY for a zone to its configured also-notify targets.
func (c *Client) Notify(ctx context.Context, zone string) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/zones/%s/notify", zone), nil)
	return c.clarifyNotFound(err, zone)
}

// ZoneStatus fetches the sidecar's reported status for one zone.
func (c *Client) ZoneStatus(ctx context.Context, zone string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/zones/%s/status", zone), nil)
}

// ServerStatus fetches the sidecar's overall server status.
func (c *Client) ServerStatus(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/v1/server/status", nil)
}

// ZoneExists probes whether a zone is currently served. A 404 (or a "not found" status
// body) is treated as a clean "does not exist"; any other failure (including rate-limit
// responses) is propagated rather than silently assumed to mean absence, since a failed
// probe and a confirmed absence require different caller behavior.
func (c *Client) ZoneExists(ctx context.Context, zone string) (bool, error) {
	_, err := c.ZoneStatus(ctx, zone)
	if err == nil {
		return true, nil
	}
	var httpErr *HTTPError
	if isHTTPError(err, &httpErr) {
		if httpErr.StatusCode == http.StatusNotFound || containsAny(strings.ToLower(httpErr.Message), "not found") {
			return false, nil
		}
	}
	return false, err
}

// AddZone dispatches to AddPrimaryZone or AddSecondaryZone based on zoneType, validating
// that the config carries the fields each zone type requires.
func (c *Client) AddZone(ctx context.Context, zoneType, zoneName string, cfg ZoneConfig, updateKeyName string, secondaryIPs, primaryIPs []string, dnsPort int32) (bool, error) {
	switch zoneType {
	case ZoneTypePrimary:
		if cfg.SOA == (SOARecord{}) {
			return false, fmt.Errorf("primary zone %s requires an SOA record", zoneName)
		}
		return c.AddPrimaryZone(ctx, zoneName, cfg, updateKeyName, secondaryIPs)
	case ZoneTypeSecondary:
		if len(primaryIPs) == 0 {
			return false, fmt.Errorf("secondary zone %s requires at least one primary IP", zoneName)
		}
		return c.AddSecondaryZone(ctx, zoneName, cfg, primaryIPs, dnsPort)
	default:
		return false, fmt.Errorf("unknown zone type %q", zoneType)
	}
}

// AddPrimaryZone creates a primary zone. It returns added=true only when the zone was
// newly created; an "already exists" response is treated as success (added=false), and
// when secondaryIPs is non-empty it also refreshes also-notify/allow-transfer on the
// existing zone via ModifyZone so a stale peer list doesn't linger silently.
func (c *Client) AddPrimaryZone(ctx context.Context, zoneName string, cfg ZoneConfig, updateKeyName string, secondaryIPs []string) (bool, error) {
	cfg.AlsoNotify = secondaryIPs
	cfg.AllowTransfer = secondaryIPs
	cfg.Primaries = nil
	if cfg.Records == nil {
		cfg.Records = []any{}
	}

	req := CreateZoneRequest{ZoneName: zoneName, ZoneType: ZoneTypePrimary, ZoneConfig: cfg, UpdateKeyName: updateKeyName}
	body, err := c.do(ctx, http.MethodPost, "/api/v1/zones", req)
	if err == nil {
		zr, _ := decodeZoneResponse(body)
		if !zr.Success {
			return false, fmt.Errorf("create zone %s: %s", zoneName, zr.Message)
		}
		return true, nil
	}

	var httpErr *HTTPError
	if isHTTPError(err, &httpErr) && httperrors.IsConflictOrDuplicate(httpErr.StatusCode, strings.ToLower(httpErr.Message)) {
		if len(secondaryIPs) > 0 {
			if modErr := c.ModifyZone(ctx, zoneName, secondaryIPs, secondaryIPs); modErr != nil {
				return false, fmt.Errorf("refresh peers on existing zone %s: %w", zoneName, modErr)
			}
		}
		return false, nil
	}
	return false, err
}

// ModifyZone updates a zone's also-notify/allow-transfer peer lists. A 404 is a no-op
// success — the zone may have been deleted out from under the caller.
func (c *Client) ModifyZone(ctx context.Context, zoneName string, alsoNotify, allowTransfer []string) error {
	req := ModifyZoneRequest{AlsoNotify: alsoNotify, AllowTransfer: allowTransfer}
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/zones/%s", zoneName), req)
	var httpErr *HTTPError
	if isHTTPError(err, &httpErr) && (httpErr.StatusCode == http.StatusNotFound || containsAny(strings.ToLower(httpErr.Message), "not found")) {
		return nil
	}
	return err
}

// AddSecondaryZone creates a secondary zone whose content is transferred from its
// primaries rather than authored locally, so SOA/name-server fields are placeholders.
func (c *Client) AddSecondaryZone(ctx context.Context, zoneName string, cfg ZoneConfig, primaryIPs []string, dnsPort int32) (bool, error) {
	primaries := make([]string, len(primaryIPs))
	for i, ip := range primaryIPs {
		primaries[i] = fmt.Sprintf("%s port %d", ip, dnsPort)
	}
	cfg.Primaries = primaries
	cfg.AlsoNotify = nil
	cfg.AllowTransfer = nil

	req := CreateZoneRequest{ZoneName: zoneName, ZoneType: ZoneTypeSecondary, ZoneConfig: cfg}
	body, err := c.do(ctx, http.MethodPost, "/api/v1/zones", req)
	if err == nil {
		zr, _ := decodeZoneResponse(body)
		if !zr.Success {
			return false, fmt.Errorf("create zone %s: %s", zoneName, zr.Message)
		}
		return true, nil
	}

	var httpErr *HTTPError
	if isHTTPError(err, &httpErr) && httperrors.IsConflictOrDuplicate(httpErr.StatusCode, strings.ToLower(httpErr.Message)) {
		return false, nil
	}
	return false, err
}

// CreateZoneHTTP probes for an existing zone before attempting creation, so a transient
// probe failure aborts the call instead of risking a duplicate-create race. If the create
// call itself comes back as a conflict, it re-probes to confirm the zone genuinely exists
// before treating the conflict as idempotent success.
func (c *Client) CreateZoneHTTP(ctx context.Context, zoneType, zoneName string, cfg ZoneConfig, updateKeyName string, secondaryIPs, primaryIPs []string, dnsPort int32) (bool, error) {
	exists, err := c.ZoneExists(ctx, zoneName)
	if err != nil {
		return false, fmt.Errorf("probe zone %s before create: %w", zoneName, err)
	}
	if exists {
		return false, nil
	}

	added, err := c.AddZone(ctx, zoneType, zoneName, cfg, updateKeyName, secondaryIPs, primaryIPs, dnsPort)
	if err == nil {
		return added, nil
	}

	var httpErr *HTTPError
	if isHTTPError(err, &httpErr) && httperrors.IsConflictOrDuplicate(httpErr.StatusCode, strings.ToLower(httpErr.Message)) {
		confirmed, confirmErr := c.ZoneExists(ctx, zoneName)
		if confirmErr == nil && confirmed {
			return false, nil
		}
	}
	return false, err
}

// DeleteZone removes a zone. For primary zones it freezes first (best-effort — a freeze
// failure is ignored, since the zone may already be gone); a 404 on delete is treated as
// already-deleted success.
func (c *Client) DeleteZone(ctx context.Context, zoneType, zoneName string) error {
	if zoneType == ZoneTypePrimary {
		_ = c.Freeze(ctx, zoneName)
	}

	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/zones/%s", zoneName), nil)
	var httpErr *HTTPError
	if isHTTPError(err, &httpErr) && (httpErr.StatusCode == http.StatusNotFound || containsAny(strings.ToLower(httpErr.Message), "not found")) {
		return nil
	}
	return err
}

func (c *Client) clarifyNotFound(err error, zone string) error {
	var httpErr *HTTPError
	if isHTTPError(err, &httpErr) && containsAny(strings.ToLower(httpErr.Message), "not found", "does not exist") {
		return fmt.Errorf("zone %s not found on %s", zone, c.baseURL)
	}
	return err
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
