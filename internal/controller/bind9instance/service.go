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
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

func serviceName(instanceName string) string { return instanceName }

func intstrFromDNSPort(port int32) intstr.IntOrString { return intstr.FromInt(int(port)) }

// resolveServiceOverride returns the instance-level override if set, else the cluster-role-level
// override for this instance's role, else nil (plain ClusterIP).
func resolveServiceOverride(inst *bindyv1beta1.Bind9Instance, cc clusterContext) *bindyv1beta1.ServiceOverride {
	if inst.Spec.Service != nil {
		return inst.Spec.Service
	}
	if !cc.managed {
		return nil
	}
	roleSpec := cc.common.Primary
	if inst.Spec.Role == bindyv1beta1.RoleSecondary {
		roleSpec = cc.common.Secondary
	}
	return roleSpec.Service
}

// desiredService builds the Service of spec.md §4.12 step 4.5: ClusterIP by default, with
// primaries typically overridden to LoadBalancer via ServiceOverride; ports are fixed regardless
// of override. existing, if non-nil, supplies the clusterIP/clusterIPs to preserve across
// updates.
func desiredService(inst *bindyv1beta1.Bind9Instance, cc clusterContext, existing *corev1.Service) *corev1.Service {
	dnsPort := bindyv1beta1.DefaultDNSContainerPort
	if inst.Spec.BindcarConfig != nil && inst.Spec.BindcarConfig.DNSPort != 0 {
		dnsPort = inst.Spec.BindcarConfig.DNSPort
	}

	svc := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      serviceName(inst.Name),
			Namespace: inst.Namespace,
			Labels:    selectorLabels(inst),
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeClusterIP,
			Selector: selectorLabels(inst),
			Ports: []corev1.ServicePort{
				{Name: "dns-tcp", Port: 53, TargetPort: intstrFromDNSPort(dnsPort), Protocol: corev1.ProtocolTCP},
				{Name: "dns-udp", Port: 53, TargetPort: intstrFromDNSPort(dnsPort), Protocol: corev1.ProtocolUDP},
			},
		},
	}

	if override := resolveServiceOverride(inst, cc); override != nil {
		if override.Type != "" {
			svc.Spec.Type = override.Type
		}
		if override.LoadBalancerIP != "" {
			svc.Spec.LoadBalancerIP = override.LoadBalancerIP
		}
		if override.ExternalTrafficPolicy != "" {
			svc.Spec.ExternalTrafficPolicy = override.ExternalTrafficPolicy
		}
		if len(override.Annotations) > 0 {
			svc.Annotations = make(map[string]string, len(override.Annotations))
			for k, v := range override.Annotations {
				svc.Annotations[k] = v
			}
		}
	}

	if existing != nil {
		svc.Spec.ClusterIP = existing.Spec.ClusterIP
		svc.Spec.ClusterIPs = append([]string(nil), existing.Spec.ClusterIPs...)
	}

	return svc
}
