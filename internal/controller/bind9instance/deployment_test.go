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
	"testing"

	corev1 "k8s.io/api/core/v1"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

func TestDesiredDeploymentHasTwoDNSPortsAndProbes(t *testing.T) {
	inst := newTestInstance("inst")
	deployment := desiredDeployment(inst, "inst-bind9-config", "inst-rndc-key")

	bind9 := deployment.Spec.Template.Spec.Containers[0]
	if len(bind9.Ports) != 2 {
		t.Fatalf("len(Ports) = %d, want 2 (tcp+udp)", len(bind9.Ports))
	}
	protocols := map[corev1.Protocol]bool{}
	for _, p := range bind9.Ports {
		protocols[p.Protocol] = true
		if p.ContainerPort != bindyv1beta1.DefaultDNSContainerPort {
			t.Errorf("ContainerPort = %d, want %d", p.ContainerPort, bindyv1beta1.DefaultDNSContainerPort)
		}
	}
	if !protocols[corev1.ProtocolTCP] || !protocols[corev1.ProtocolUDP] {
		t.Errorf("protocols = %v, want both TCP and UDP", protocols)
	}
	if bind9.ReadinessProbe == nil || bind9.ReadinessProbe.TCPSocket == nil {
		t.Error("expected a TCP readiness probe on the dns port")
	}
	if bind9.LivenessProbe == nil || bind9.LivenessProbe.TCPSocket == nil {
		t.Error("expected a TCP liveness probe on the dns port")
	}

	if len(deployment.Spec.Template.Spec.Containers) != 2 {
		t.Fatalf("len(Containers) = %d, want 2 (bind9 + bindcar)", len(deployment.Spec.Template.Spec.Containers))
	}
	sidecar := deployment.Spec.Template.Spec.Containers[1]
	if sidecar.Name != "bindcar" {
		t.Errorf("Containers[1].Name = %q, want bindcar", sidecar.Name)
	}

	var hasSAToken, hasZoneCache bool
	for _, v := range deployment.Spec.Template.Spec.Volumes {
		if v.Projected != nil {
			hasSAToken = true
		}
		if v.Name == "zone-cache" {
			hasZoneCache = true
		}
	}
	if !hasSAToken {
		t.Error("expected a projected service-account-token volume")
	}
	if !hasZoneCache {
		t.Error("expected a zone-cache volume")
	}
	if deployment.Spec.Template.Spec.ServiceAccountName != serviceAccountName(inst.Name) {
		t.Errorf("ServiceAccountName = %q, want %q", deployment.Spec.Template.Spec.ServiceAccountName, serviceAccountName(inst.Name))
	}
}

func TestDesiredDeploymentHonorsBindcarOverrides(t *testing.T) {
	inst := newTestInstance("inst")
	inst.Spec.BindcarConfig = &bindyv1beta1.BindcarConfig{Port: 9090, DNSPort: 53, Image: "example.com/bindcar:v2"}

	deployment := desiredDeployment(inst, "cfg", "key")
	sidecar := deployment.Spec.Template.Spec.Containers[1]
	if sidecar.Image != "example.com/bindcar:v2" {
		t.Errorf("Image = %q, want override", sidecar.Image)
	}
	if sidecar.Ports[0].ContainerPort != 9090 {
		t.Errorf("bindcar port = %d, want 9090", sidecar.Ports[0].ContainerPort)
	}
	if deployment.Spec.Template.Spec.Containers[0].Ports[0].ContainerPort != 53 {
		t.Errorf("dns port = %d, want override 53", deployment.Spec.Template.Spec.Containers[0].Ports[0].ContainerPort)
	}
}
