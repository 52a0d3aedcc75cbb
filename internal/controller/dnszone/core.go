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

// Package dnszone reconciles DNSZone objects: it selects the Bind9Instances that should serve a
// zone, pushes the zone's config to each selected instance's bindcar sidecar, discovers the
// record CRs that belong to the zone, and rolls up readiness (spec.md §4.13).
package dnszone

import (
	"context"
	"sort"
	"time"

	"github.com/go-logr/logr"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/condition"
	"github.com/firestoned/bindy/internal/constant"
	"github.com/firestoned/bindy/internal/finalizer"
	"github.com/firestoned/bindy/internal/metrics"
)

const kind = "DNSZone"

// reconcileZone implements spec.md §4.13's nine steps in order.
func reconcileZone(ctx context.Context, c client.Client, recorder record.EventRecorder, log logr.Logger, factory bindcarClientFactory, bindcarToken string, zone *bindyv1beta1.DNSZone) (result ctrl.Result, err error) {
	start := time.Now()
	defer func() { metrics.ObserveReconcile(kind, start, err) }()

	errHandler := condition.NewReconcileErrorHandler(log, c.Status(), recorder, zone, kind)

	// Step 1: on deletion, remove the zone from every instance that was last known to be
	// serving it before letting the finalizer go.
	handled, delErr := finalizer.HandleDeletion(ctx, c, zone, constant.FinalizerDNSZone, func(ctx context.Context) error {
		return deleteZoneEverywhere(ctx, log, c, factory, bindcarToken, zone)
	})
	if handled {
		if delErr != nil {
			return errHandler.HandleTransient(ctx, delErr, condition.TypeReady, condition.ReasonInternalError, "delete zone from instances")
		}
		return ctrl.Result{}, nil
	}

	if err := finalizer.EnsureFinalizer(ctx, c, zone, constant.FinalizerDNSZone); err != nil {
		return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonInternalError, "ensure finalizer")
	}

	// Step 2: resolve the serving instance set.
	instances, method, err := selectInstances(ctx, c, zone)
	if err != nil {
		return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonInternalError, "select instances")
	}

	// Step 3: a zone name already claimed by another zone on an overlapping instance set is a
	// permanent misconfiguration; sidecar calls are skipped entirely.
	conflicts, err := detectConflict(ctx, c, zone, instances)
	if err != nil {
		return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonInternalError, "detect zone conflicts")
	}
	if len(conflicts) > 0 {
		zone.Status.SelectionMethod = method
		msg := "zone name conflicts with " + conflicts[0]
		for _, other := range conflicts[1:] {
			msg += ", " + other
		}
		condition.SetCondition(zone, metav1.Condition{Type: condition.TypeReady, Status: metav1.ConditionFalse, Reason: condition.ReasonZoneConflict, Message: msg})
		recorder.Event(zone, "Warning", condition.ReasonZoneConflict, msg)
		return finishStatus(ctx, c, log, zone)
	}

	// Step 4: exactly one primary is required.
	primaryInst, secondaryInsts, ok := splitRoles(instances)
	if !ok {
		zone.Status.SelectionMethod = method
		msg := "no selected instance has spec.role=primary"
		condition.SetCondition(zone, metav1.Condition{Type: condition.TypeReady, Status: metav1.ConditionFalse, Reason: condition.ReasonNotReady, Message: msg})
		return finishStatus(ctx, c, log, zone)
	}

	// Step 5: resolve a reachable sidecar endpoint per selected instance.
	primaryEP, epErr := resolveEndpoint(ctx, log, c, primaryInst)
	if epErr != nil {
		return errHandler.HandleTransient(ctx, epErr, condition.TypeReady, condition.ReasonPodsPending, "resolve primary endpoint")
	}

	secondaryEPs := make([]*endpoint, 0, len(secondaryInsts))
	children := make([]condition.Child, 0, len(instances))
	for i := range secondaryInsts {
		inst := &secondaryInsts[i]
		ep, epErr := resolveEndpoint(ctx, log, c, inst)
		childType := condition.ChildConditionName("Bind9Instance", indexOf(instances, inst.Name))
		if epErr != nil {
			children = append(children, condition.Child{Type: childType, Ready: false, Reason: condition.ReasonPodsPending, Message: epErr.Error()})
			continue
		}
		secondaryEPs = append(secondaryEPs, ep)
		children = append(children, condition.Child{Type: childType, Ready: true})
	}

	// Step 6: push the zone config, primary first, then every reachable secondary.
	created, applyErr := applyZone(ctx, log, c, factory, bindcarToken, zone, primaryEP, secondaryEPs)
	primaryChildType := condition.ChildConditionName("Bind9Instance", indexOf(instances, primaryInst.Name))
	if applyErr != nil {
		children = append(children, condition.Child{Type: primaryChildType, Ready: false, Reason: condition.ReasonZoneCreationFailed, Message: applyErr.Error()})
	} else {
		children = append(children, condition.Child{Type: primaryChildType, Ready: true})
		if created {
			recorder.Event(zone, "Normal", condition.ReasonInstancesCreated, "zone created on "+primaryInst.Name)
		}
	}

	// Step 7: refresh the member-record set.
	records, recErr := discoverRecords(ctx, c, zone)
	if recErr != nil {
		return errHandler.HandleTransient(ctx, recErr, condition.TypeReady, condition.ReasonInternalError, "discover records")
	}
	zone.Status.Records = records

	// Step 8: record the selected instance set. The instances' own status.zones[] is a read-side
	// sweep (internal/controller/bind9instance's refreshZoneBackReferences), so nothing more is
	// written here than this object's own status.
	zone.Status.SelectionMethod = method
	zone.Status.Bind9Instances = bind9InstanceRefs(instances)
	secondaryIPs := make([]string, 0, len(secondaryEPs))
	for _, ep := range secondaryEPs {
		secondaryIPs = append(secondaryIPs, ep.IP)
	}
	sort.Strings(secondaryIPs)
	zone.Status.SecondaryIPs = secondaryIPs

	// Step 9: roll the per-instance outcomes up into Ready.
	sort.Slice(children, func(i, j int) bool { return children[i].Type < children[j].Type })
	condition.SetReadyRollup(zone, children)

	if applyErr != nil {
		recorder.Event(zone, "Warning", condition.ReasonZoneCreationFailed, applyErr.Error())
	}

	return finishStatus(ctx, c, log, zone)
}

func indexOf(instances []bindyv1beta1.Bind9Instance, name string) int {
	for i := range instances {
		if instances[i].Name == name {
			return i
		}
	}
	return -1
}

func bind9InstanceRefs(instances []bindyv1beta1.Bind9Instance) []bindyv1beta1.ZoneReference {
	refs := make([]bindyv1beta1.ZoneReference, 0, len(instances))
	for _, inst := range instances {
		refs = append(refs, bindyv1beta1.ZoneReference{Name: inst.Name, Namespace: inst.Namespace})
	}
	return refs
}

func finishStatus(ctx context.Context, c client.Client, log logr.Logger, zone *bindyv1beta1.DNSZone) (ctrl.Result, error) {
	if err := c.Status().Update(ctx, zone); err != nil {
		log.Error(err, "failed to update status", "kind", kind, "name", zone.Name)
		return ctrl.Result{RequeueAfter: 10 * time.Second}, err
	}
	return ctrl.Result{RequeueAfter: 30 * time.Second}, nil
}
