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

package record

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/condition"
	"github.com/firestoned/bindy/internal/dnsupdate"
	"github.com/firestoned/bindy/internal/finalizer"
	"github.com/firestoned/bindy/internal/metrics"
	"github.com/firestoned/bindy/internal/rndc"
)

// tsigFudgeSeconds bounds the clock-skew window BuildTsigSigner accepts; 300s matches the
// miekg/dns and BIND9 defaults.
const tsigFudgeSeconds = 300

func rndcSecretName(instanceName string) string {
	return fmt.Sprintf("%s-rndc-key", instanceName)
}

// resolvePrimarySigner resolves the primary instance's RNDC key and builds the TSIG signer
// dynamic updates are sent with (spec.md §4.14 apply-path step 3, reusing §4.12.1's secret).
func resolvePrimarySigner(ctx context.Context, c client.Client, inst *bindyv1beta1.Bind9Instance) (*rndc.TsigSigner, error) {
	secret := &corev1.Secret{}
	name := rndcSecretName(inst.Name)
	if err := c.Get(ctx, types.NamespacedName{Name: name, Namespace: inst.Namespace}, secret); err != nil {
		return nil, fmt.Errorf("get rndc secret %s: %w", name, err)
	}
	key, err := rndc.ParseSecret(secret.Data)
	if err != nil {
		return nil, fmt.Errorf("parse rndc secret %s: %w", name, err)
	}
	return rndc.BuildTsigSigner(key, tsigFudgeSeconds)
}

func effectiveTTL(recordTTL, zoneTTL int32) int32 {
	if recordTTL > 0 {
		return recordTTL
	}
	return zoneTTL
}

// reconcileRecord implements spec.md §4.14's generic apply/cleanup flow for whichever record
// kind desc describes.
func reconcileRecord(ctx context.Context, c client.Client, recorder record.EventRecorder, log logr.Logger, desc Descriptor, obj object) (result ctrl.Result, err error) {
	start := time.Now()
	defer func() { metrics.ObserveReconcile(desc.Kind, start, err) }()

	errHandler := condition.NewReconcileErrorHandler(log, c.Status(), recorder, obj, desc.Kind)

	handled, delErr := finalizer.HandleDeletion(ctx, c, obj, desc.Finalizer, func(ctx context.Context) error {
		return cleanupRecord(ctx, log, c, desc, obj)
	})
	if handled {
		if delErr != nil {
			return errHandler.HandleTransient(ctx, delErr, condition.TypeReady, condition.ReasonInternalError, "delete record from instances")
		}
		return ctrl.Result{}, nil
	}

	if err := finalizer.EnsureFinalizer(ctx, c, obj, desc.Finalizer); err != nil {
		return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonInternalError, "ensure finalizer")
	}

	zone, idx, findErr := findOwningZone(ctx, c, desc.Kind, obj)
	if findErr != nil {
		return errHandler.HandleTransient(ctx, findErr, condition.TypeReady, condition.ReasonInternalError, "find owning zone")
	}
	if zone == nil {
		condition.SetCondition(obj, metav1.Condition{
			Type: condition.TypeReady, Status: metav1.ConditionFalse,
			Reason: condition.ReasonOrphanedRecord, Message: "no DNSZone currently lists this record in status.records",
		})
		if err := c.Status().Update(ctx, obj); err != nil {
			return ctrl.Result{RequeueAfter: 10 * time.Second}, err
		}
		return ctrl.Result{RequeueAfter: 15 * time.Second}, nil
	}

	primary, primaryErr := resolvePrimaryInstance(ctx, c, zone)
	if primaryErr != nil {
		return errHandler.HandleTransient(ctx, primaryErr, condition.TypeReady, condition.ReasonPodsPending, "resolve primary instance")
	}
	ip, port, epErr := resolveDNSEndpoint(ctx, log, c, primary)
	if epErr != nil {
		return errHandler.HandleTransient(ctx, epErr, condition.TypeReady, condition.ReasonPodsPending, "resolve primary dns endpoint")
	}
	signer, signerErr := resolvePrimarySigner(ctx, c, primary)
	if signerErr != nil {
		return errHandler.HandleTransient(ctx, signerErr, condition.TypeReady, condition.ReasonTsigKeyNotFound, "resolve rndc key")
	}

	name := desc.RecordName(obj)
	ttl := effectiveTTL(desc.TTL(obj), zone.Spec.TTL)
	expected, buildErr := desc.BuildRR(obj, zone.Spec.ZoneName, ttl)
	if buildErr != nil {
		return errHandler.HandlePermanent(ctx, buildErr, condition.TypeReady, condition.ReasonInvalidRecordData, "build record data")
	}

	updateClient := dnsupdate.New(signer)
	server := fmt.Sprintf("%s:%d", ip, port)
	if updateClient.ShouldUpdateRecord(ctx, server, zone.Spec.ZoneName, name, desc.DNSType, expected) {
		if err := updateClient.AddRecord(ctx, server, zone.Spec.ZoneName, name, expected); err != nil {
			return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonRecordUpdateFailed, "push record to primary")
		}
	}

	if err := markZoneRecordReconciled(ctx, c, zone, idx, obj.GetGeneration()); err != nil {
		log.Error(err, "failed to patch zone record status", "zone", zone.Name, "record", obj.GetName())
	}

	condition.SetCondition(obj, metav1.Condition{Type: condition.TypeReady, Status: metav1.ConditionTrue, Reason: condition.ReasonReady, Message: "pushed to primary"})
	if err := c.Status().Update(ctx, obj); err != nil {
		log.Error(err, "failed to update status", "kind", desc.Kind, "name", obj.GetName())
		return ctrl.Result{RequeueAfter: 10 * time.Second}, err
	}
	return ctrl.Result{RequeueAfter: 5 * time.Minute}, nil
}

// cleanupRecord deletes the record's RRset from every instance currently serving its zone.
// If the zone itself is already gone there is nothing left to delete.
func cleanupRecord(ctx context.Context, log logr.Logger, c client.Client, desc Descriptor, obj object) error {
	zone, _, err := findOwningZone(ctx, c, desc.Kind, obj)
	if err != nil {
		return fmt.Errorf("find owning zone for cleanup: %w", err)
	}
	if zone == nil {
		return nil
	}

	name := desc.RecordName(obj)
	for _, ref := range zone.Status.Bind9Instances {
		inst := &bindyv1beta1.Bind9Instance{}
		if err := c.Get(ctx, types.NamespacedName{Name: ref.Name, Namespace: ref.Namespace}, inst); err != nil {
			if apierrors.IsNotFound(err) {
				continue
			}
			return fmt.Errorf("get instance %s for record cleanup: %w", ref.Name, err)
		}

		ip, port, epErr := resolveDNSEndpoint(ctx, log, c, inst)
		if epErr != nil {
			log.V(1).Info("skipping record deletion on unreachable instance", "instance", ref.Name, "error", epErr)
			continue
		}
		signer, signerErr := resolvePrimarySigner(ctx, c, inst)
		if signerErr != nil {
			log.V(1).Info("skipping record deletion, rndc key unavailable", "instance", ref.Name, "error", signerErr)
			continue
		}

		server := fmt.Sprintf("%s:%d", ip, port)
		if err := dnsupdate.New(signer).DeleteRecord(ctx, server, zone.Spec.ZoneName, name, desc.DNSType); err != nil {
			return fmt.Errorf("delete record %s on %s: %w", name, ref.Name, err)
		}
	}
	return nil
}
