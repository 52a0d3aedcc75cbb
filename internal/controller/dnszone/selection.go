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
	"sort"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/constant"
)

// selectInstances implements spec.md §4.13 step 2: spec.bind9InstancesFrom, when present,
// overrides the default of "every instance belonging to clusterRef/clusterProviderRef".
func selectInstances(ctx context.Context, c client.Client, zone *bindyv1beta1.DNSZone) ([]bindyv1beta1.Bind9Instance, bindyv1beta1.SelectionMethod, error) {
	list := &bindyv1beta1.Bind9InstanceList{}

	if zone.Spec.Bind9InstancesFrom != nil {
		selector, err := metav1.LabelSelectorAsSelector(zone.Spec.Bind9InstancesFrom)
		if err != nil {
			return nil, "", fmt.Errorf("parse bind9InstancesFrom selector: %w", err)
		}
		if err := c.List(ctx, list, client.InNamespace(zone.Namespace), client.MatchingLabelsSelector{Selector: selector}); err != nil {
			return nil, "", fmt.Errorf("list instances via bind9InstancesFrom: %w", err)
		}
		return sortedInstances(list.Items), bindyv1beta1.SelectionLabelSelector, nil
	}

	clusterName := zone.Spec.ClusterRef
	if clusterName == "" {
		clusterName = zone.Spec.ClusterProviderRef
	}
	if clusterName == "" {
		return nil, bindyv1beta1.SelectionClusterRef, nil
	}
	if err := c.List(ctx, list, client.InNamespace(zone.Namespace), client.MatchingLabels{constant.LabelCluster: clusterName}); err != nil {
		return nil, "", fmt.Errorf("list instances via clusterRef %s: %w", clusterName, err)
	}
	return sortedInstances(list.Items), bindyv1beta1.SelectionClusterRef, nil
}

func sortedInstances(items []bindyv1beta1.Bind9Instance) []bindyv1beta1.Bind9Instance {
	sorted := append([]bindyv1beta1.Bind9Instance(nil), items...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}

// splitRoles implements spec.md §4.13 step 4: exactly one primary is required (the first
// selected instance with spec.role=primary); every other selected instance is a secondary.
func splitRoles(instances []bindyv1beta1.Bind9Instance) (primary *bindyv1beta1.Bind9Instance, secondaries []bindyv1beta1.Bind9Instance, ok bool) {
	for i := range instances {
		if instances[i].Spec.Role == bindyv1beta1.RolePrimary {
			primary = &instances[i]
			break
		}
	}
	if primary == nil {
		return nil, nil, false
	}
	for i := range instances {
		if instances[i].Name != primary.Name {
			secondaries = append(secondaries, instances[i])
		}
	}
	return primary, secondaries, true
}

// detectConflict implements spec.md §4.13 step 3: among every other zone in the namespace,
// find ones whose status.bind9Instances[] overlaps this zone's selection and whose
// spec.zoneName is identical. Returns the names of any conflicting zones.
func detectConflict(ctx context.Context, c client.Client, zone *bindyv1beta1.DNSZone, selected []bindyv1beta1.Bind9Instance) ([]string, error) {
	list := &bindyv1beta1.DNSZoneList{}
	if err := c.List(ctx, list, client.InNamespace(zone.Namespace)); err != nil {
		return nil, fmt.Errorf("list zones for conflict check: %w", err)
	}

	selectedNames := make(map[string]bool, len(selected))
	for _, inst := range selected {
		selectedNames[inst.Name] = true
	}

	var conflicts []string
	for i := range list.Items {
		other := &list.Items[i]
		if other.Name == zone.Name || other.Spec.ZoneName != zone.Spec.ZoneName {
			continue
		}
		for _, ref := range other.Status.Bind9Instances {
			if ref.Namespace == zone.Namespace && selectedNames[ref.Name] {
				conflicts = append(conflicts, other.Name)
				break
			}
		}
	}
	sort.Strings(conflicts)
	return conflicts, nil
}
