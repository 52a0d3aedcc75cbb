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

package bind9instance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-logr/logr"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/condition"
	"github.com/firestoned/bindy/internal/constant"
	"github.com/firestoned/bindy/internal/finalizer"
	"github.com/firestoned/bindy/internal/metrics"
	"github.com/firestoned/bindy/internal/ownership"
	"github.com/firestoned/bindy/internal/pagination"
	"github.com/firestoned/bindy/internal/resources"
)

// reconcileInstance implements spec.md §4.12's six steps.
func reconcileInstance(ctx context.Context, c client.Client, scheme *runtime.Scheme, recorder record.EventRecorder, log logr.Logger, inst *bindyv1beta1.Bind9Instance) (result ctrl.Result, err error) {
	start := time.Now()
	defer func() { metrics.ObserveReconcile("Bind9Instance", start, err) }()

	errHandler := condition.NewReconcileErrorHandler(log, c.Status(), recorder, inst, "Bind9Instance")

	// Step 1: a cluster-managed instance is torn down by its owning Cluster/Provider; only a
	// standalone instance cleans up its own children.
	handled, delErr := finalizer.HandleDeletion(ctx, c, inst, constant.FinalizerBind9Instance, func(ctx context.Context) error {
		if isClusterManaged(inst) {
			return nil
		}
		return deleteOwnChildren(ctx, c, inst)
	})
	if handled {
		if delErr != nil {
			return errHandler.HandleTransient(ctx, delErr, condition.TypeReady, condition.ReasonInternalError, "delete owned children")
		}
		return ctrl.Result{}, nil
	}

	if err := finalizer.EnsureFinalizer(ctx, c, inst, constant.FinalizerBind9Instance); err != nil {
		return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonInternalError, "ensure finalizer")
	}

	// Step 2: resolve the owning cluster context up front so both the resource pipeline and
	// the RNDC/Service precedence chains can use it.
	cc, ccErr := resolveClusterContext(ctx, c, inst)
	if ccErr != nil {
		return errHandler.HandleTransient(ctx, ccErr, condition.TypeReady, condition.ReasonInternalError, "resolve cluster context")
	}

	// Step 3: generation + drift gate.
	deployment := &appsv1.Deployment{}
	deploymentErr := c.Get(ctx, types.NamespacedName{Name: deploymentName(inst.Name), Namespace: inst.Namespace}, deployment)
	liveDeployment := deploymentErr == nil

	if inst.Generation == inst.Status.ObservedGeneration && liveDeployment {
		if err := refreshStatus(ctx, log, c, inst, deployment); err != nil {
			return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonInternalError, "refresh status")
		}
		if err := refreshZoneBackReferences(ctx, c, inst); err != nil {
			return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonInternalError, "refresh zone back-references")
		}
		if err := c.Status().Update(ctx, inst); err != nil {
			return ctrl.Result{RequeueAfter: 10 * time.Second}, err
		}
		return ctrl.Result{}, nil
	}

	if err := reconcileResources(ctx, c, scheme, inst, cc); err != nil {
		return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonInternalError, "reconcile resources")
	}
	inst.Status.ObservedGeneration = inst.Generation

	if err := c.Get(ctx, types.NamespacedName{Name: deploymentName(inst.Name), Namespace: inst.Namespace}, deployment); err != nil {
		return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonInternalError, "re-fetch deployment")
	}

	// Step 5/6.
	if err := refreshStatus(ctx, log, c, inst, deployment); err != nil {
		return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonInternalError, "refresh status")
	}
	if err := refreshZoneBackReferences(ctx, c, inst); err != nil {
		return errHandler.HandleTransient(ctx, err, condition.TypeReady, condition.ReasonInternalError, "refresh zone back-references")
	}

	if err := c.Status().Update(ctx, inst); err != nil {
		log.Error(err, "failed to update status", "kind", "Bind9Instance", "name", inst.Name)
		return ctrl.Result{RequeueAfter: 10 * time.Second}, err
	}

	return ctrl.Result{}, nil
}

// reconcileResources performs spec.md §4.12 step 4's strictly-ordered pipeline.
func reconcileResources(ctx context.Context, c client.Client, scheme *runtime.Scheme, inst *bindyv1beta1.Bind9Instance, cc clusterContext) error {
	sa := desiredServiceAccount(inst)
	if err := ownership.SetOwnership(sa, inst, scheme, ownership.Options{InstanceName: inst.Name}); err != nil {
		return fmt.Errorf("set ownership on service account: %w", err)
	}
	if err := resources.CreateOrApply(ctx, c, sa, ownership.FieldOwner); err != nil {
		return fmt.Errorf("reconcile service account: %w", err)
	}

	rndcName, rotated, err := ensureRndcSecret(ctx, c, scheme, inst, cc)
	if err != nil {
		return fmt.Errorf("reconcile rndc secret: %w", err)
	}

	configMapRef := configMapName(inst.Name)
	if cc.managed {
		configMapRef = clusterConfigMapName(cc.cluster)
	} else {
		cm := desiredStandaloneConfigMap(inst)
		if err := ownership.SetOwnership(cm, inst, scheme, ownership.Options{InstanceName: inst.Name}); err != nil {
			return fmt.Errorf("set ownership on config map: %w", err)
		}
		if err := resources.CreateOrApply(ctx, c, cm, ownership.FieldOwner); err != nil {
			return fmt.Errorf("reconcile config map: %w", err)
		}
	}

	deployment := desiredDeployment(inst, configMapRef, rndcName)
	if rotated {
		if deployment.Spec.Template.Annotations == nil {
			deployment.Spec.Template.Annotations = make(map[string]string)
		}
		deployment.Spec.Template.Annotations[constant.AnnotationRndcRotatedAt] = time.Now().UTC().Format(time.RFC3339Nano)
	}
	if err := ownership.SetOwnership(deployment, inst, scheme, ownership.Options{InstanceName: inst.Name}); err != nil {
		return fmt.Errorf("set ownership on deployment: %w", err)
	}
	if err := resources.CreateOrReplace(ctx, c, deployment); err != nil {
		return fmt.Errorf("reconcile deployment: %w", err)
	}

	existingSvc := &corev1.Service{}
	svcErr := c.Get(ctx, types.NamespacedName{Name: serviceName(inst.Name), Namespace: inst.Namespace}, existingSvc)
	var svcPtr *corev1.Service
	if svcErr == nil {
		svcPtr = existingSvc
	} else if !apierrors.IsNotFound(svcErr) {
		return fmt.Errorf("get existing service: %w", svcErr)
	}
	svc := desiredService(inst, cc, svcPtr)
	if err := ownership.SetOwnership(svc, inst, scheme, ownership.Options{InstanceName: inst.Name}); err != nil {
		return fmt.Errorf("set ownership on service: %w", err)
	}
	if err := resources.CreateOrApply(ctx, c, svc, ownership.FieldOwner); err != nil {
		return fmt.Errorf("reconcile service: %w", err)
	}

	return nil
}

// deleteOwnChildren implements spec.md §4.12 step 1's standalone cleanup path. The
// ServiceAccount is only deleted when its ownerReference actually points at this instance —
// a pre-existing ServiceAccount of the same name that this operator never created is left
// alone.
func deleteOwnChildren(ctx context.Context, c client.Client, inst *bindyv1beta1.Bind9Instance) error {
	toDelete := []client.Object{
		&corev1.Service{ObjectMeta: objMeta(serviceName(inst.Name), inst.Namespace)},
		&appsv1.Deployment{ObjectMeta: objMeta(deploymentName(inst.Name), inst.Namespace)},
		&corev1.ConfigMap{ObjectMeta: objMeta(configMapName(inst.Name), inst.Namespace)},
		&corev1.Secret{ObjectMeta: objMeta(rndcSecretName(inst.Name), inst.Namespace)},
	}
	for _, obj := range toDelete {
		if err := c.Delete(ctx, obj); err != nil && !apierrors.IsNotFound(err) {
			return fmt.Errorf("delete %T %s: %w", obj, obj.GetName(), err)
		}
	}

	sa := &corev1.ServiceAccount{}
	saErr := c.Get(ctx, types.NamespacedName{Name: serviceAccountName(inst.Name), Namespace: inst.Namespace}, sa)
	if saErr != nil {
		if apierrors.IsNotFound(saErr) {
			return nil
		}
		return fmt.Errorf("get service account: %w", saErr)
	}
	for _, ref := range sa.OwnerReferences {
		if ref.Kind == "Bind9Instance" && ref.UID == inst.UID {
			if err := c.Delete(ctx, sa); err != nil && !apierrors.IsNotFound(err) {
				return fmt.Errorf("delete service account: %w", err)
			}
			break
		}
	}
	return nil
}

// refreshStatus implements spec.md §4.12 step 5: list the Deployment's live Pods, filter out
// terminating ones, and build the encompassing Ready + indexed Pod-i conditions.
func refreshStatus(ctx context.Context, log logr.Logger, c client.Client, inst *bindyv1beta1.Bind9Instance, deployment *appsv1.Deployment) error {
	list := &corev1.PodList{}
	objs, err := pagination.ListAll(ctx, log, c, list,
		client.InNamespace(inst.Namespace),
		client.MatchingLabels(selectorLabels(inst)),
	)
	if err != nil {
		return fmt.Errorf("list pods: %w", err)
	}

	pods := make([]corev1.Pod, 0, len(objs))
	for _, obj := range objs {
		pod, ok := obj.(*corev1.Pod)
		if !ok || pod.DeletionTimestamp != nil {
			continue
		}
		pods = append(pods, *pod)
	}
	sort.Slice(pods, func(i, j int) bool { return pods[i].Name < pods[j].Name })

	children := make([]condition.Child, 0, len(pods))
	for i := range pods {
		pod := &pods[i]
		ready := podReady(pod)
		child := condition.Child{Type: condition.ChildConditionName("Pod", i), Ready: ready}
		if !ready {
			child.Reason, child.Message = podFailureDetail(pod)
		}
		children = append(children, child)
	}

	condition.SetReadyRollup(inst, children)
	return nil
}

func podReady(pod *corev1.Pod) bool {
	if pod.Status.Phase != corev1.PodRunning {
		return false
	}
	for _, cond := range pod.Status.Conditions {
		if cond.Type == corev1.PodReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}

func podFailureDetail(pod *corev1.Pod) (string, string) {
	for _, cs := range pod.Status.ContainerStatuses {
		if cs.State.Waiting != nil && cs.State.Waiting.Reason == "CrashLoopBackOff" {
			return condition.ReasonPodsCrashing, fmt.Sprintf("container %s is crash-looping: %s", cs.Name, cs.State.Waiting.Message)
		}
	}
	switch pod.Status.Phase {
	case corev1.PodPending:
		return condition.ReasonPodsPending, "pod is pending scheduling or image pull"
	default:
		return condition.ReasonProgressing, fmt.Sprintf("pod is in phase %s", pod.Status.Phase)
	}
}

// refreshZoneBackReferences implements spec.md §4.12 step 6: scan every DNSZone in the
// namespace and keep status.zones/zonesCount equal to the set of zones whose
// status.bind9Instances[] names this instance.
func refreshZoneBackReferences(ctx context.Context, c client.Client, inst *bindyv1beta1.Bind9Instance) error {
	list := &bindyv1beta1.DNSZoneList{}
	if err := c.List(ctx, list, client.InNamespace(inst.Namespace)); err != nil {
		return fmt.Errorf("list zones: %w", err)
	}

	var refs []bindyv1beta1.ZoneReference
	for i := range list.Items {
		zone := &list.Items[i]
		for _, ref := range zone.Status.Bind9Instances {
			if ref.Name == inst.Name && ref.Namespace == inst.Namespace {
				refs = append(refs, bindyv1beta1.ZoneReference{Name: zone.Name, Namespace: zone.Namespace})
				break
			}
		}
	}

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Namespace != refs[j].Namespace {
			return refs[i].Namespace < refs[j].Namespace
		}
		return refs[i].Name < refs[j].Name
	})

	if zoneRefsEqual(inst.Status.Zones, refs) {
		return nil
	}
	inst.Status.Zones = refs
	inst.Status.ZonesCount = int32(len(refs))
	return nil
}

func objMeta(name, namespace string) metav1.ObjectMeta {
	return metav1.ObjectMeta{Name: name, Namespace: namespace}
}

func zoneRefsEqual(a, b []bindyv1beta1.ZoneReference) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
