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

	corev1 "k8s.io/api/core/v1"
	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/constant"
	"github.com/firestoned/bindy/internal/pagination"
)

// endpoint is a reachable sidecar HTTP address for one pod of a serving instance.
type endpoint struct {
	bindyv1beta1.PodInfo
	HTTPPort int32
	DNSPort  int32
}

// instanceSelectorLabels mirrors internal/controller/bind9instance's selectorLabels: the
// label pair ownership.SetOwnership stamps via Options.InstanceName on every pod the
// instance's Deployment creates.
func instanceSelectorLabels(instanceName string) map[string]string {
	return map[string]string{
		constant.LabelInstance:    instanceName,
		constant.LabelAppInstance: instanceName,
	}
}

// resolveEndpoint implements spec.md §4.13 step 5 for one instance: list its Pods, filter
// out non-Running and terminating ones, and pick the first remaining by name so repeated
// reconciles favor the same pod when more than one is ready. Returns an error if no reachable
// pod is found.
func resolveEndpoint(ctx context.Context, log logr.Logger, c client.Client, inst *bindyv1beta1.Bind9Instance) (*endpoint, error) {
	list := &corev1.PodList{}
	objs, err := pagination.ListAll(ctx, log, c, list,
		client.InNamespace(inst.Namespace),
		client.MatchingLabels(instanceSelectorLabels(inst.Name)),
	)
	if err != nil {
		return nil, fmt.Errorf("list pods for instance %s: %w", inst.Name, err)
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
		return nil, fmt.Errorf("no reachable pod for instance %s", inst.Name)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	pod := candidates[0]

	httpPort, dnsPort, err := sidecarPorts(pod)
	if err != nil {
		return nil, fmt.Errorf("resolve sidecar ports for pod %s: %w", pod.Name, err)
	}

	return &endpoint{
		PodInfo: bindyv1beta1.PodInfo{
			Name:         pod.Name,
			IP:           pod.Status.PodIP,
			InstanceName: inst.Name,
			Namespace:    inst.Namespace,
			Role:         inst.Spec.Role,
		},
		HTTPPort: httpPort,
		DNSPort:  dnsPort,
	}, nil
}

// sidecarPorts reads the "http" (bindcar API) and "dns-tcp" container ports off the pod spec,
// the same port names internal/controller/bind9instance's desiredDeployment assigns.
func sidecarPorts(pod *corev1.Pod) (httpPort, dnsPort int32, err error) {
	for _, container := range pod.Spec.Containers {
		for _, port := range container.Ports {
			switch port.Name {
			case "http":
				httpPort = port.ContainerPort
			case "dns-tcp":
				dnsPort = port.ContainerPort
			}
		}
	}
	if httpPort == 0 {
		return 0, 0, fmt.Errorf("pod %s has no container port named http", pod.Name)
	}
	if dnsPort == 0 {
		return 0, 0, fmt.Errorf("pod %s has no container port named dns-tcp", pod.Name)
	}
	return httpPort, dnsPort, nil
}
