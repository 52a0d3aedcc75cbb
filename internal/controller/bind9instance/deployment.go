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
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/constant"
)

const defaultBind9Image = "internal.local/bindy/bind9:latest"
const defaultBindcarImage = "internal.local/bindy/bindcar:latest"

// clusterConfigMapName mirrors internal/controller/bind9cluster.ConfigMapName's format — the
// deterministic name a cluster-managed instance looks up instead of rendering its own.
func clusterConfigMapName(clusterName string) string {
	return fmt.Sprintf("%s-bind9-config", clusterName)
}

func deploymentName(instanceName string) string { return instanceName }

// selectorLabels matches what ownership.SetOwnership stamps on every child via
// ownership.Options.InstanceName, so the Deployment's pod selector and the Pod-listing in
// refreshStatus agree without inventing a separate label.
func selectorLabels(inst *bindyv1beta1.Bind9Instance) map[string]string {
	return map[string]string{
		constant.LabelInstance:    inst.Name,
		constant.LabelAppInstance: inst.Name,
	}
}

// desiredDeployment builds the full-replace Deployment of spec.md §4.12 step 4.4: two DNS
// container ports, the sidecar HTTP port, TCP readiness/liveness probes against the DNS port,
// a projected service-account-token volume, and a zone cache volume.
func desiredDeployment(inst *bindyv1beta1.Bind9Instance, configMapRef string, rndcSecretName string) *appsv1.Deployment {
	bindcar := inst.Spec.BindcarConfig
	bindcarPort := bindyv1beta1.DefaultBindcarPort
	dnsPort := bindyv1beta1.DefaultDNSContainerPort
	bindcarImage := defaultBindcarImage
	if bindcar != nil {
		if bindcar.Port != 0 {
			bindcarPort = bindcar.Port
		}
		if bindcar.DNSPort != 0 {
			dnsPort = bindcar.DNSPort
		}
		if bindcar.Image != "" {
			bindcarImage = bindcar.Image
		}
	}

	bind9Image := inst.Spec.Image
	if bind9Image == "" {
		bind9Image = defaultBind9Image
	}

	labels := selectorLabels(inst)
	replicas := inst.Spec.Replicas

	volumes := append([]corev1.Volume{}, inst.Spec.Volumes...)
	volumes = append(volumes,
		corev1.Volume{
			Name: "bind9-config",
			VolumeSource: corev1.VolumeSource{
				ConfigMap: &corev1.ConfigMapVolumeSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: configMapRef},
				},
			},
		},
		corev1.Volume{
			Name: "rndc-key",
			VolumeSource: corev1.VolumeSource{
				Secret: &corev1.SecretVolumeSource{SecretName: rndcSecretName},
			},
		},
		corev1.Volume{
			Name:         "zone-cache",
			VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}},
		},
		corev1.Volume{
			Name: "sidecar-token",
			VolumeSource: corev1.VolumeSource{
				Projected: &corev1.ProjectedVolumeSource{
					Sources: []corev1.VolumeProjection{{
						ServiceAccountToken: &corev1.ServiceAccountTokenProjection{
							Path: "token",
						},
					}},
				},
			},
		},
	)

	volumeMounts := append([]corev1.VolumeMount{}, inst.Spec.VolumeMounts...)
	volumeMounts = append(volumeMounts,
		corev1.VolumeMount{Name: "bind9-config", MountPath: "/etc/bind", ReadOnly: true},
		corev1.VolumeMount{Name: "rndc-key", MountPath: "/etc/bind/rndc", ReadOnly: true},
		corev1.VolumeMount{Name: "zone-cache", MountPath: "/var/cache/bind"},
	)

	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      deploymentName(inst.Name),
			Namespace: inst.Namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					ServiceAccountName: serviceAccountName(inst.Name),
					Containers: []corev1.Container{
						{
							Name:  "bind9",
							Image: bind9Image,
							Ports: []corev1.ContainerPort{
								{Name: "dns-tcp", ContainerPort: dnsPort, Protocol: corev1.ProtocolTCP},
								{Name: "dns-udp", ContainerPort: dnsPort, Protocol: corev1.ProtocolUDP},
							},
							VolumeMounts: volumeMounts,
							LivenessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									TCPSocket: &corev1.TCPSocketAction{Port: intstr.FromInt(int(dnsPort))},
								},
								InitialDelaySeconds: 10,
								PeriodSeconds:       10,
							},
							ReadinessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									TCPSocket: &corev1.TCPSocketAction{Port: intstr.FromInt(int(dnsPort))},
								},
								InitialDelaySeconds: 5,
								PeriodSeconds:       5,
							},
						},
						{
							Name:  "bindcar",
							Image: bindcarImage,
							Ports: []corev1.ContainerPort{
								{Name: "http", ContainerPort: bindcarPort, Protocol: corev1.ProtocolTCP},
							},
							VolumeMounts: []corev1.VolumeMount{
								{Name: "rndc-key", MountPath: "/etc/bind/rndc", ReadOnly: true},
								{Name: "zone-cache", MountPath: "/var/cache/bind"},
								{Name: "sidecar-token", MountPath: "/var/run/secrets/bindy", ReadOnly: true},
							},
						},
					},
					Volumes: volumes,
				},
			},
		},
	}
}
