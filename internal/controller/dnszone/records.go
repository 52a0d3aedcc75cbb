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
)

// recordKind names one of the eight record CRDs discoverable via spec.recordsFrom, paired with a
// thunk that lists that kind so discoverRecords can stay kind-agnostic.
type recordKind struct {
	kind string
	list func(ctx context.Context, c client.Client, namespace string, selector client.MatchingLabelsSelector) ([]metav1.Object, error)
}

func recordKinds() []recordKind {
	return []recordKind{
		{kind: "ARecord", list: listARecords},
		{kind: "AAAARecord", list: listAAAARecords},
		{kind: "CNAMERecord", list: listCNAMERecords},
		{kind: "TXTRecord", list: listTXTRecords},
		{kind: "MXRecord", list: listMXRecords},
		{kind: "NSRecord", list: listNSRecords},
		{kind: "SRVRecord", list: listSRVRecords},
		{kind: "CAARecord", list: listCAARecords},
	}
}

func listARecords(ctx context.Context, c client.Client, namespace string, selector client.MatchingLabelsSelector) ([]metav1.Object, error) {
	list := &bindyv1beta1.ARecordList{}
	if err := c.List(ctx, list, client.InNamespace(namespace), selector); err != nil {
		return nil, err
	}
	out := make([]metav1.Object, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listAAAARecords(ctx context.Context, c client.Client, namespace string, selector client.MatchingLabelsSelector) ([]metav1.Object, error) {
	list := &bindyv1beta1.AAAARecordList{}
	if err := c.List(ctx, list, client.InNamespace(namespace), selector); err != nil {
		return nil, err
	}
	out := make([]metav1.Object, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listCNAMERecords(ctx context.Context, c client.Client, namespace string, selector client.MatchingLabelsSelector) ([]metav1.Object, error) {
	list := &bindyv1beta1.CNAMERecordList{}
	if err := c.List(ctx, list, client.InNamespace(namespace), selector); err != nil {
		return nil, err
	}
	out := make([]metav1.Object, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listTXTRecords(ctx context.Context, c client.Client, namespace string, selector client.MatchingLabelsSelector) ([]metav1.Object, error) {
	list := &bindyv1beta1.TXTRecordList{}
	if err := c.List(ctx, list, client.InNamespace(namespace), selector); err != nil {
		return nil, err
	}
	out := make([]metav1.Object, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listMXRecords(ctx context.Context, c client.Client, namespace string, selector client.MatchingLabelsSelector) ([]metav1.Object, error) {
	list := &bindyv1beta1.MXRecordList{}
	if err := c.List(ctx, list, client.InNamespace(namespace), selector); err != nil {
		return nil, err
	}
	out := make([]metav1.Object, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listNSRecords(ctx context.Context, c client.Client, namespace string, selector client.MatchingLabelsSelector) ([]metav1.Object, error) {
	list := &bindyv1beta1.NSRecordList{}
	if err := c.List(ctx, list, client.InNamespace(namespace), selector); err != nil {
		return nil, err
	}
	out := make([]metav1.Object, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listSRVRecords(ctx context.Context, c client.Client, namespace string, selector client.MatchingLabelsSelector) ([]metav1.Object, error) {
	list := &bindyv1beta1.SRVRecordList{}
	if err := c.List(ctx, list, client.InNamespace(namespace), selector); err != nil {
		return nil, err
	}
	out := make([]metav1.Object, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listCAARecords(ctx context.Context, c client.Client, namespace string, selector client.MatchingLabelsSelector) ([]metav1.Object, error) {
	list := &bindyv1beta1.CAARecordList{}
	if err := c.List(ctx, list, client.InNamespace(namespace), selector); err != nil {
		return nil, err
	}
	out := make([]metav1.Object, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

// discoverRecords implements spec.md §4.13 step 7: evaluate spec.recordsFrom across all eight
// record kinds and merge the result into status.records[], preserving LastReconciledAt for an
// entry that already existed at the same generation, and resetting it to nil for anything new or
// changed so the record controller knows to push it again.
func discoverRecords(ctx context.Context, c client.Client, zone *bindyv1beta1.DNSZone) ([]bindyv1beta1.RecordReference, error) {
	selector, err := metav1.LabelSelectorAsSelector(&zone.Spec.RecordsFrom)
	if err != nil {
		return nil, fmt.Errorf("parse recordsFrom selector: %w", err)
	}
	matching := client.MatchingLabelsSelector{Selector: selector}

	existing := make(map[string]bindyv1beta1.RecordReference, len(zone.Status.Records))
	for _, ref := range zone.Status.Records {
		existing[ref.Kind+"/"+ref.Namespace+"/"+ref.Name] = ref
	}

	var merged []bindyv1beta1.RecordReference
	for _, rk := range recordKinds() {
		objs, err := rk.list(ctx, c, zone.Namespace, matching)
		if err != nil {
			return nil, fmt.Errorf("list %s for recordsFrom: %w", rk.kind, err)
		}
		for _, obj := range objs {
			key := rk.kind + "/" + obj.GetNamespace() + "/" + obj.GetName()
			ref := bindyv1beta1.RecordReference{
				APIVersion:         bindyv1beta1.GroupVersion.String(),
				Kind:               rk.kind,
				Name:               obj.GetName(),
				Namespace:          obj.GetNamespace(),
				ZoneName:           zone.Spec.ZoneName,
				ObservedGeneration: obj.GetGeneration(),
			}
			if prev, ok := existing[key]; ok && prev.ObservedGeneration == obj.GetGeneration() {
				ref.LastReconciledAt = prev.LastReconciledAt
			}
			merged = append(merged, ref)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Kind != merged[j].Kind {
			return merged[i].Kind < merged[j].Kind
		}
		return merged[i].Name < merged[j].Name
	})
	return merged, nil
}
