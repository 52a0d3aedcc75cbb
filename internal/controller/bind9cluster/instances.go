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
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/constant"
	"github.com/firestoned/bindy/internal/ownership"
	"github.com/firestoned/bindy/internal/pagination"
)

// rndcSecretName mirrors bind9instance's own naming (duplicated here rather than exported,
// matching the precedent in internal/controller/record/core.go).
func rndcSecretName(instanceName string) string {
	return fmt.Sprintf("%s-rndc-key", instanceName)
}

// instanceName deterministically names the i'th managed instance of a role, e.g.
// "prod-primary-0". The same index is also stored in the instance-index annotation, which is
// what highest-index-first deletion reads back when a role's replica count shrinks.
func instanceName(clusterName string, role bindyv1beta1.Bind9Role, index int) string {
	return fmt.Sprintf("%s-%s-%d", clusterName, role, index)
}

// desiredInstances builds the full set of Bind9Instance objects a cluster's current spec calls
// for, across both roles.
func desiredInstances(a adapter) []*bindyv1beta1.Bind9Instance {
	common := a.Common()
	var out []*bindyv1beta1.Bind9Instance
	out = append(out, roleInstances(a, bindyv1beta1.RolePrimary, common.Primary)...)
	out = append(out, roleInstances(a, bindyv1beta1.RoleSecondary, common.Secondary)...)
	return out
}

func roleInstances(a adapter, role bindyv1beta1.Bind9Role, roleSpec bindyv1beta1.RoleSpec) []*bindyv1beta1.Bind9Instance {
	common := a.Common()
	instances := make([]*bindyv1beta1.Bind9Instance, 0, roleSpec.Replicas)
	for i := int32(0); i < roleSpec.Replicas; i++ {
		instances = append(instances, &bindyv1beta1.Bind9Instance{
			ObjectMeta: metav1.ObjectMeta{
				Name:      instanceName(a.Name(), role, int(i)),
				Namespace: a.InstanceNamespace(),
				Annotations: map[string]string{
					constant.AnnotationInstanceIndex: strconv.Itoa(int(i)),
				},
			},
			Spec: bindyv1beta1.Bind9InstanceSpec{
				Role:          role,
				Replicas:      1,
				Version:       common.Version,
				Image:         common.Image,
				Volumes:       common.Volumes,
				VolumeMounts:  common.VolumeMounts,
				BindcarConfig: common.BindcarConfig,
				Service:       roleSpec.Service,
				AllowTransfer: roleSpec.AllowTransfer,
			},
		})
	}
	return instances
}

// listManagedInstances returns every Bind9Instance currently labelled as owned by this
// cluster, across pagination, sorted by (role, index) ascending.
func listManagedInstances(ctx context.Context, log logr.Logger, c client.Client, a adapter) ([]bindyv1beta1.Bind9Instance, error) {
	list := &bindyv1beta1.Bind9InstanceList{}
	objs, err := pagination.ListAll(ctx, log, c, list,
		client.InNamespace(a.InstanceNamespace()),
		client.MatchingLabels{
			constant.LabelCluster:   a.Name(),
			constant.LabelManagedBy: a.ManagedByValue(),
		},
	)
	if err != nil {
		return nil, err
	}

	instances := make([]bindyv1beta1.Bind9Instance, 0, len(objs))
	for _, obj := range objs {
		inst, ok := obj.(*bindyv1beta1.Bind9Instance)
		if !ok {
			continue
		}
		instances = append(instances, *inst)
	}
	sort.Slice(instances, func(i, j int) bool {
		if instances[i].Spec.Role != instances[j].Spec.Role {
			return instances[i].Spec.Role < instances[j].Spec.Role
		}
		return instanceIndex(&instances[i]) < instanceIndex(&instances[j])
	})
	return instances, nil
}

func instanceIndex(inst *bindyv1beta1.Bind9Instance) int {
	v, err := strconv.Atoi(inst.Annotations[constant.AnnotationInstanceIndex])
	if err != nil {
		return 0
	}
	return v
}

// reconcileInstanceSet applies the desired-vs-existing set difference of spec.md §4.11 step 5:
// missing instances are created/applied with ownership stamped, excess instances (those whose
// name isn't in the desired set) are deleted highest-index-first within their role.
func reconcileInstanceSet(ctx context.Context, c client.Client, scheme *runtime.Scheme, log logr.Logger, a adapter) (created, deleted int, err error) {
	desired := desiredInstances(a)
	desiredByName := make(map[string]*bindyv1beta1.Bind9Instance, len(desired))
	for _, inst := range desired {
		desiredByName[inst.Name] = inst
	}

	existing, err := listManagedInstances(ctx, log, c, a)
	if err != nil {
		return 0, 0, fmt.Errorf("list managed instances: %w", err)
	}
	existingByName := make(map[string]bindyv1beta1.Bind9Instance, len(existing))
	for _, inst := range existing {
		existingByName[inst.Name] = inst
	}

	for _, inst := range desired {
		if err := ownership.SetOwnership(inst, a.Object(), scheme, ownership.Options{
			InstanceName: inst.Name,
			ManagedBy:    a.ManagedByValue(),
			Cluster:      a.Name(),
			Role:         string(inst.Spec.Role),
		}); err != nil {
			return created, deleted, fmt.Errorf("set ownership on instance %s: %w", inst.Name, err)
		}
		if existingInst, ok := existingByName[inst.Name]; ok {
			inst.ResourceVersion = existingInst.ResourceVersion
			inst.Finalizers = existingInst.Finalizers
			if err := c.Update(ctx, inst); err != nil {
				return created, deleted, fmt.Errorf("update instance %s: %w", inst.Name, err)
			}
			continue
		}
		if err := c.Create(ctx, inst); err != nil {
			return created, deleted, fmt.Errorf("create instance %s: %w", inst.Name, err)
		}
		created++
	}

	// Excess instances are deleted highest-index-first within each role so that a shrinking
	// replica count always removes the newest replicas of that role, not an arbitrary one.
	var excess []bindyv1beta1.Bind9Instance
	for _, inst := range existing {
		if _, wanted := desiredByName[inst.Name]; !wanted {
			excess = append(excess, inst)
		}
	}
	sort.Slice(excess, func(i, j int) bool {
		if excess[i].Spec.Role != excess[j].Spec.Role {
			return excess[i].Spec.Role < excess[j].Spec.Role
		}
		return instanceIndex(&excess[i]) > instanceIndex(&excess[j])
	})
	for i := range excess {
		if err := c.Delete(ctx, &excess[i]); err != nil && !isNotFound(err) {
			return created, deleted, fmt.Errorf("delete excess instance %s: %w", excess[i].Name, err)
		}
		deleted++
	}

	return created, deleted, nil
}

// deleteAllManagedInstances removes every instance this cluster owns, used by the finalizer
// cleanup path (spec.md §4.11 step 1).
func deleteAllManagedInstances(ctx context.Context, c client.Client, log logr.Logger, a adapter) error {
	existing, err := listManagedInstances(ctx, log, c, a)
	if err != nil {
		return fmt.Errorf("list managed instances for cleanup: %w", err)
	}
	for i := range existing {
		if err := c.Delete(ctx, &existing[i]); err != nil && !isNotFound(err) {
			return fmt.Errorf("delete instance %s: %w", existing[i].Name, err)
		}
	}
	return nil
}

func isNotFound(err error) bool {
	return apierrors.IsNotFound(err)
}

// ensureManagedInstanceResources implements the original's ensure_managed_instance_resources:
// every managed instance's own child resources (the shared cluster ConfigMap, its RNDC Secret,
// Service, and Deployment) must exist. A CR existing is not proof its children survived an
// out-of-band deletion, so this checks each kind directly rather than trusting the instance
// count alone; any instance missing one or more has its own reconcile-trigger annotation
// bumped so the Bind9Instance controller recreates what's missing.
func ensureManagedInstanceResources(ctx context.Context, c client.Client, a adapter, existing []bindyv1beta1.Bind9Instance) error {
	if len(existing) == 0 {
		return nil
	}
	clusterConfigMap := ConfigMapName(a.Name())

	for i := range existing {
		inst := &existing[i]
		var missing []string

		if ok, err := childExists(ctx, c, &corev1.ConfigMap{}, clusterConfigMap, inst.Namespace); err != nil {
			return fmt.Errorf("get config map %s: %w", clusterConfigMap, err)
		} else if !ok {
			missing = append(missing, "ConfigMap")
		}
		if ok, err := childExists(ctx, c, &corev1.Secret{}, rndcSecretName(inst.Name), inst.Namespace); err != nil {
			return fmt.Errorf("get secret for instance %s: %w", inst.Name, err)
		} else if !ok {
			missing = append(missing, "Secret")
		}
		if ok, err := childExists(ctx, c, &corev1.Service{}, inst.Name, inst.Namespace); err != nil {
			return fmt.Errorf("get service for instance %s: %w", inst.Name, err)
		} else if !ok {
			missing = append(missing, "Service")
		}
		if ok, err := childExists(ctx, c, &appsv1.Deployment{}, inst.Name, inst.Namespace); err != nil {
			return fmt.Errorf("get deployment for instance %s: %w", inst.Name, err)
		} else if !ok {
			missing = append(missing, "Deployment")
		}

		if len(missing) == 0 {
			continue
		}
		if err := bumpInstanceReconcileTrigger(ctx, c, inst); err != nil {
			return fmt.Errorf("bump reconcile trigger for instance %s (missing %s): %w", inst.Name, strings.Join(missing, ", "), err)
		}
	}
	return nil
}

// childExists reports whether name/namespace resolves to an object of obj's kind, treating
// NotFound as a false rather than an error.
func childExists(ctx context.Context, c client.Client, obj client.Object, name, namespace string) (bool, error) {
	err := c.Get(ctx, types.NamespacedName{Name: name, Namespace: namespace}, obj)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

// bumpInstanceReconcileTrigger patches the annotation on the instance itself (not the cluster),
// mirroring the original's per-instance patch so the Bind9Instance controller's own reconcile
// picks this specific instance back up.
func bumpInstanceReconcileTrigger(ctx context.Context, c client.Client, inst *bindyv1beta1.Bind9Instance) error {
	annotations := inst.GetAnnotations()
	if annotations == nil {
		annotations = make(map[string]string)
	}
	annotations[constant.AnnotationReconcileTrigger] = time.Now().UTC().Format(time.RFC3339Nano)
	inst.SetAnnotations(annotations)
	return c.Update(ctx, inst)
}
