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
	"sort"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/constant"
	"github.com/firestoned/bindy/internal/pagination"
)

// resolvePrimaryInstance returns the Bind9Instance among zone's serving set whose spec.role
// is primary, the authority dynamic updates must target (spec.md §4.14 step 3).
func resolvePrimaryInstance(ctx context.Context, c client.Client, zone *bindyv1beta1.DNSZone) (*bindyv1beta1.Bind9Instance, error) {
	for _, ref := range zone.Status.Bind9Instances {
		inst := &bindyv1beta1.Bind9Instance{}
		if err := c.Get(ctx, types.NamespacedName{Name: ref.Name, Namespace: ref.Namespace}, inst); err != nil {
			if apierrors.IsNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("get instance %s: %w", ref.Name, err)
		}
		if inst.Spec.Role == bindyv1beta1.RolePrimary {
			return inst, nil
		}
	}
	return nil, fmt.Errorf("no primary instance found among zone %s's serving instances", zone.Name)
}

// resolveDNSEndpoint finds a reachable pod for inst and returns its IP and the DNS port of
// its bind9 container, the same "dns-tcp" port name C12's deployment.go assigns.
func resolveDNSEndpoint(ctx context.Context, log logr.Logger, c client.Client, inst *bindyv1beta1.Bind9Instance) (ip string, port int32, err error) {
	list := &corev1.PodList{}
	objs, err := pagination.ListAll(ctx, log, c, list,
		client.InNamespace(inst.Namespace),
		client.MatchingLabels(map[string]string{
			constant.LabelInstance:    inst.Name,
			constant.LabelAppInstance: inst.Name,
		}),
	)
	if err != nil {
		return "", 0, fmt.Errorf("list pods for instance %s: %w", inst.Name, err)
	}

	var candidates []*corev1.Pod
	for _, obj := range objs {
		pod, ok := obj.(*corev1.Pod)
		if !ok || pod.DeletionTimestamp != nil || pod.Status.Phase != corev1.PodRunning || pod.Status.PodIP == "" {
			continue
		}
		candidates = append(candidates, pod)
	}
	if len(candidates) == 0 {
		return "", 0, fmt.Errorf("no reachable pod for instance %s", inst.Name)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	pod := candidates[0]

	for _, container := range pod.Spec.Containers {
		for _, p := range container.Ports {
			if p.Name == "dns-tcp" {
				return pod.Status.PodIP, p.ContainerPort, nil
			}
		}
	}
	return "", 0, fmt.Errorf("pod %s has no container port named dns-tcp", pod.Name)
}
