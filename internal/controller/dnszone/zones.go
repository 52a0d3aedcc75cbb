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

package dnszone

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/bindcar"
	"github.com/firestoned/bindy/internal/rndc"
)

// bindcarClientFactory builds a bindcar client for one sidecar endpoint; a seam so tests can
// inject a fake without dialing real HTTP.
type bindcarClientFactory func(server, token string, log logr.Logger) bindcarClient

// bindcarClient is the subset of *bindcar.Client this package calls, narrowed to keep the
// controller's dependency on bindcar easy to fake in tests.
type bindcarClient interface {
	AddPrimaryZone(ctx context.Context, zoneName string, cfg bindcar.ZoneConfig, updateKeyName string, secondaryIPs []string) (bool, error)
	AddSecondaryZone(ctx context.Context, zoneName string, cfg bindcar.ZoneConfig, primaryIPs []string, dnsPort int32) (bool, error)
	DeleteZone(ctx context.Context, zoneType, zoneName string) error
}

func defaultBindcarClientFactory(server, token string, log logr.Logger) bindcarClient {
	return bindcar.New(server, token, log)
}

// rndcSecretName matches the deterministic name internal/controller/bind9instance's
// ensureRndcSecret assigns (spec.md §4.12.1): "<instance>-rndc-key".
func rndcSecretName(instanceName string) string {
	return fmt.Sprintf("%s-rndc-key", instanceName)
}

// resolveUpdateKeyName reads the primary instance's RNDC secret and returns the TSIG key name
// bindcar expects as updateKeyName, so dynamic updates on this zone are authenticated the same
// way rndc itself is.
func resolveUpdateKeyName(ctx context.Context, c client.Client, namespace, instanceName string) (string, error) {
	secret := &corev1.Secret{}
	name := rndcSecretName(instanceName)
	if err := c.Get(ctx, types.NamespacedName{Name: name, Namespace: namespace}, secret); err != nil {
		if apierrors.IsNotFound(err) {
			return "", fmt.Errorf("rndc secret %s not found for instance %s", name, instanceName)
		}
		return "", fmt.Errorf("get rndc secret %s: %w", name, err)
	}
	key, err := rndc.ParseSecret(secret.Data)
	if err != nil {
		return "", fmt.Errorf("parse rndc secret %s: %w", name, err)
	}
	return key.Name, nil
}

// buildZoneConfig converts a DNSZone's spec into the bindcar wire shape (spec.md §4.9); the two
// SOARecord types are structurally identical but are distinct Go types, so every field is copied
// explicitly rather than relying on a shared definition.
func buildZoneConfig(zone *bindyv1beta1.DNSZone) bindcar.ZoneConfig {
	nameServers := make([]string, 0, len(zone.Spec.NameServerIPs))
	for ns := range zone.Spec.NameServerIPs {
		nameServers = append(nameServers, ns)
	}

	return bindcar.ZoneConfig{
		TTL: zone.Spec.TTL,
		SOA: bindcar.SOARecord{
			PrimaryNS:   zone.Spec.SOA.PrimaryNS,
			AdminEmail:  zone.Spec.SOA.AdminEmail,
			Serial:      zone.Spec.SOA.Serial,
			Refresh:     zone.Spec.SOA.Refresh,
			Retry:       zone.Spec.SOA.Retry,
			Expire:      zone.Spec.SOA.Expire,
			NegativeTTL: zone.Spec.SOA.NegativeTTL,
		},
		NameServers:   nameServers,
		NameServerIPs: zone.Spec.NameServerIPs,
		DNSSECPolicy:  zone.Spec.DNSSECPolicy,
		InlineSigning: zone.Spec.InlineSigning,
	}
}

// applyZone implements spec.md §4.13 step 6: the primary is created/refreshed first, then each
// secondary, so a secondary's AddSecondaryZone call always targets a primary that's already
// authoritative for the zone. Returns whether any instance reported a brand-new zone.
func applyZone(ctx context.Context, log logr.Logger, c client.Client, factory bindcarClientFactory, token string, zone *bindyv1beta1.DNSZone, primary *endpoint, secondaries []*endpoint) (created bool, err error) {
	if factory == nil {
		factory = defaultBindcarClientFactory
	}

	updateKeyName, err := resolveUpdateKeyName(ctx, c, zone.Namespace, primary.InstanceName)
	if err != nil {
		return false, fmt.Errorf("resolve update key for primary %s: %w", primary.InstanceName, err)
	}

	secondaryIPs := make([]string, 0, len(secondaries))
	for _, s := range secondaries {
		secondaryIPs = append(secondaryIPs, s.IP)
	}

	primaryServer := fmt.Sprintf("%s:%d", primary.IP, primary.HTTPPort)
	primaryClient := factory(primaryServer, token, log)

	cfg := buildZoneConfig(zone)
	added, err := primaryClient.AddPrimaryZone(ctx, zone.Spec.ZoneName, cfg, updateKeyName, secondaryIPs)
	if err != nil {
		return false, fmt.Errorf("add primary zone %s on %s: %w", zone.Spec.ZoneName, primary.InstanceName, err)
	}
	created = added

	primaryIPs := []string{primary.IP}
	for _, s := range secondaries {
		server := fmt.Sprintf("%s:%d", s.IP, s.HTTPPort)
		secondaryClient := factory(server, token, log)
		if _, err := secondaryClient.AddSecondaryZone(ctx, zone.Spec.ZoneName, cfg, primaryIPs, primary.DNSPort); err != nil {
			return created, fmt.Errorf("add secondary zone %s on %s: %w", zone.Spec.ZoneName, s.InstanceName, err)
		}
	}

	return created, nil
}

// deleteZoneEverywhere implements the finalizer cleanup half of spec.md §4.13: remove the zone
// from every instance that was last known to be serving it, treating "not found" as success so a
// partially-applied zone (or an instance already gone) never blocks removal.
func deleteZoneEverywhere(ctx context.Context, log logr.Logger, c client.Client, factory bindcarClientFactory, token string, zone *bindyv1beta1.DNSZone) error {
	if factory == nil {
		factory = defaultBindcarClientFactory
	}

	for _, ref := range zone.Status.Bind9Instances {
		inst := &bindyv1beta1.Bind9Instance{}
		if err := c.Get(ctx, types.NamespacedName{Name: ref.Name, Namespace: ref.Namespace}, inst); err != nil {
			if apierrors.IsNotFound(err) {
				continue
			}
			return fmt.Errorf("get instance %s for zone deletion: %w", ref.Name, err)
		}

		ep, err := resolveEndpoint(ctx, log, c, inst)
		if err != nil {
			log.V(1).Info("skipping zone deletion on unreachable instance", "instance", ref.Name, "error", err)
			continue
		}

		server := fmt.Sprintf("%s:%d", ep.IP, ep.HTTPPort)
		zoneType := bindcar.ZoneTypeSecondary
		if inst.Spec.Role == bindyv1beta1.RolePrimary {
			zoneType = bindcar.ZoneTypePrimary
		}
		if err := factory(server, token, log).DeleteZone(ctx, zoneType, zone.Spec.ZoneName); err != nil {
			return fmt.Errorf("delete zone %s on %s: %w", zone.Spec.ZoneName, ref.Name, err)
		}
	}
	return nil
}
