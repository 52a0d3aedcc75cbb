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

package bind9cluster

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/backoffutil"
	"github.com/firestoned/bindy/internal/condition"
	"github.com/firestoned/bindy/internal/constant"
	"github.com/firestoned/bindy/internal/finalizer"
	"github.com/firestoned/bindy/internal/metrics"
	"github.com/firestoned/bindy/internal/ownership"
	"github.com/firestoned/bindy/internal/resources"
)

// reconcileCluster implements spec.md §4.11's seven steps identically for Bind9Cluster and
// ClusterBind9Provider, driven through the adapter so neither concrete type needs its own
// copy of this logic (DESIGN.md's Open Question decision on shared generic implementations).
func reconcileCluster(ctx context.Context, c client.Client, scheme *runtime.Scheme, recorder record.EventRecorder, log logr.Logger, a adapter, finalizerName, kind string) (result ctrl.Result, err error) {
	start := time.Now()
	defer func() { metrics.ObserveReconcile(kind, start, err) }()

	errHandler := condition.NewReconcileErrorHandler(log, c.Status(), recorder, a, kind)

	// Step 1: on deletion, tear down every owned instance before letting the finalizer go.
	handled, delErr := finalizer.HandleDeletion(ctx, c, a.Object(), finalizerName, func(ctx context.Context) error {
		return deleteAllManagedInstances(ctx, c, log, a)
	})
	if handled {
		if delErr != nil {
			return errHandler.HandleTransient(ctx, delErr, condition.TypeReady, condition.ReasonInternalError, "delete owned instances")
		}
		return ctrl.Result{}, nil
	}

	if err := finalizer.EnsureFinalizer(ctx, c, a.Object(), finalizerName); err != nil {
		return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonInternalError, "ensure finalizer")
	}

	// Step 2/3: skip mutating child resources when nothing changed and no drift is detected;
	// status is still refreshed below regardless (a status-only reconcile is cheap and keeps
	// the Ready rollup current as instance pods come and go).
	driftDetected, driftErr := detectDrift(ctx, log, c, a)
	if driftErr != nil {
		return errHandler.HandleTransient(ctx, driftErr, condition.TypeReady, condition.ReasonInternalError, "detect instance drift")
	}

	if a.GetGeneration() != a.ObservedGeneration() || driftDetected {
		mutateErr := backoffutil.Retry(ctx, log, "reconcile cluster children", backoffutil.K8sAPIProfile, backoffutil.IsRetryableKubernetesError, func() error {
			return reconcileChildren(ctx, c, scheme, log, a)
		})
		if mutateErr != nil {
			if backoffutil.IsRetryableKubernetesError(mutateErr) {
				return errHandler.HandleTransient(ctx, mutateErr, condition.TypeReady, condition.ReasonInternalError, "reconcile cluster children")
			}
			return errHandler.HandlePermanent(ctx, mutateErr, condition.TypeReady, condition.ReasonInvalidZoneConfig, "reconcile cluster children")
		}
		a.SetObservedGeneration(a.GetGeneration())
	}

	// Step 6/7: roll the owned instances' own Ready conditions up into this object's Ready.
	if err := refreshStatus(ctx, log, c, a); err != nil {
		return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonInternalError, "refresh status")
	}

	if err := c.Status().Update(ctx, a.Object()); err != nil {
		log.Error(err, "failed to update status", "kind", kind, "name", a.Name())
		return ctrl.Result{RequeueAfter: 10 * time.Second}, err
	}

	return ctrl.Result{}, nil
}

// detectDrift compares the labelled instance count against the desired count (spec.md §4.11
// step 2's "drift detection via label count comparison"): any mismatch means someone deleted,
// duplicated, or mislabeled a managed instance out-of-band and a reconcile must run even
// though the generation hasn't changed.
func detectDrift(ctx context.Context, log logr.Logger, c client.Client, a adapter) (bool, error) {
	existing, err := listManagedInstances(ctx, log, c, a)
	if err != nil {
		return false, err
	}
	return len(existing) != len(desiredInstances(a)), nil
}

// reconcileChildren performs spec.md §4.11 steps 3-6: render the cluster ConfigMap when the
// user hasn't supplied their own, converge the managed instance set, bump the cluster's own
// reconcile-trigger annotation if the post-create instance count still doesn't match, and check
// every managed instance's own child resources for step 6's presence sweep.
func reconcileChildren(ctx context.Context, c client.Client, scheme *runtime.Scheme, log logr.Logger, a adapter) error {
	if a.Common().ConfigMapRefs == nil {
		cm, err := desiredConfigMap(a)
		if err != nil {
			return err
		}
		if err := ownership.SetOwnership(cm, a.Object(), scheme, ownership.Options{
			ManagedBy: a.ManagedByValue(),
			Cluster:   a.Name(),
		}); err != nil {
			return err
		}
		if err := resources.CreateOrApply(ctx, c, cm, ownership.FieldOwner); err != nil {
			return err
		}
	}

	if _, _, err := reconcileInstanceSet(ctx, c, scheme, log, a); err != nil {
		return err
	}

	existing, err := listManagedInstances(ctx, log, c, a)
	if err != nil {
		return err
	}
	if len(existing) != len(desiredInstances(a)) {
		if err := bumpReconcileTrigger(ctx, c, a); err != nil {
			return err
		}
	}

	// Step 6: an instance CR existing is not proof its own children survived an out-of-band
	// deletion, so check each managed instance's ConfigMap/Secret/Service/Deployment directly.
	return ensureManagedInstanceResources(ctx, c, a, existing)
}

// bumpReconcileTrigger patches an annotation with the current time so the next watch event
// forces another reconcile attempt, used when a just-created child doesn't show up in a
// subsequent list (spec.md §4.11 step 5).
func bumpReconcileTrigger(ctx context.Context, c client.Client, a adapter) error {
	obj := a.Object()
	annotations := obj.GetAnnotations()
	if annotations == nil {
		annotations = make(map[string]string)
	}
	annotations[constant.AnnotationReconcileTrigger] = time.Now().UTC().Format(time.RFC3339Nano)
	obj.SetAnnotations(annotations)
	return c.Update(ctx, obj)
}

// refreshStatus lists the managed instances and rolls their own Ready conditions up into a's
// Ready condition (spec.md §4.11 step 7), recording the total/ready instance counts.
func refreshStatus(ctx context.Context, log logr.Logger, c client.Client, a adapter) error {
	existing, err := listManagedInstances(ctx, log, c, a)
	if err != nil {
		return err
	}

	children := make([]condition.Child, 0, len(existing))
	ready := int32(0)
	for i := range existing {
		inst := &existing[i]
		isReady := condition.IsConditionTrue(inst, condition.TypeReady)
		if isReady {
			ready++
		}
		child := condition.Child{
			Type:  condition.ChildConditionName("Bind9Instance", instanceIndex(inst)),
			Ready: isReady,
		}
		if !isReady {
			child.Reason, child.Message = instanceFailureDetail(inst)
		}
		children = append(children, child)
	}

	a.SetInstanceStatus(int32(len(existing)), ready)
	condition.SetReadyRollup(a, children)
	return nil
}

func instanceFailureDetail(inst *bindyv1beta1.Bind9Instance) (string, string) {
	for _, cond := range inst.GetConditions() {
		if cond.Type == condition.TypeReady {
			return cond.Reason, cond.Message
		}
	}
	return condition.ReasonProgressing, "instance has not reported readiness yet"
}
