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
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/bindcar"
	"github.com/firestoned/bindy/internal/rndc"
)

type fakeBindcarClient struct {
	server string
	calls  *[]string

	addPrimaryErr   error
	addSecondaryErr error
	deleteErr       error
	added           bool
}

func (f *fakeBindcarClient) AddPrimaryZone(ctx context.Context, zoneName string, cfg bindcar.ZoneConfig, updateKeyName string, secondaryIPs []string) (bool, error) {
	*f.calls = append(*f.calls, "AddPrimaryZone:"+f.server+":"+zoneName)
	return f.added, f.addPrimaryErr
}

func (f *fakeBindcarClient) AddSecondaryZone(ctx context.Context, zoneName string, cfg bindcar.ZoneConfig, primaryIPs []string, dnsPort int32) (bool, error) {
	*f.calls = append(*f.calls, fmt.Sprintf("AddSecondaryZone:%s:%s:%v:%d", f.server, zoneName, primaryIPs, dnsPort))
	return f.added, f.addSecondaryErr
}

func (f *fakeBindcarClient) DeleteZone(ctx context.Context, zoneType, zoneName string) error {
	*f.calls = append(*f.calls, "DeleteZone:"+f.server+":"+zoneType+":"+zoneName)
	return f.deleteErr
}

func newTestRndcSecret(instanceName, namespace string) *corev1.Secret {
	key, _ := rndc.Generate()
	key.Name = rndcSecretName(instanceName)
	encoded := rndc.EncodeSecret(key)
	data := make(map[string][]byte, len(encoded))
	for k, v := range encoded {
		data[k] = []byte(v)
	}
	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: rndcSecretName(instanceName), Namespace: namespace},
		Data:       data,
	}
}

func TestResolveUpdateKeyNameReadsRndcSecret(t *testing.T) {
	s := testScheme(t)
	secret := newTestRndcSecret("prod-primary-0", "dns-system")
	c := fake.NewClientBuilder().WithScheme(s).WithObjects(secret).Build()

	name, err := resolveUpdateKeyName(context.Background(), c, "dns-system", "prod-primary-0")
	if err != nil {
		t.Fatalf("resolveUpdateKeyName() error = %v", err)
	}
	if name != rndcSecretName("prod-primary-0") {
		t.Errorf("name = %q, want %q", name, rndcSecretName("prod-primary-0"))
	}
}

func TestResolveUpdateKeyNameErrorsWhenSecretMissing(t *testing.T) {
	s := testScheme(t)
	c := fake.NewClientBuilder().WithScheme(s).Build()

	if _, err := resolveUpdateKeyName(context.Background(), c, "dns-system", "prod-primary-0"); err == nil {
		t.Error("resolveUpdateKeyName() error = nil, want error when secret is absent")
	}
}

func TestBuildZoneConfigCopiesSOAFields(t *testing.T) {
	zone := newTestZone("example-com", "example.com.", "dns-system")
	zone.Spec.SOA = bindyv1beta1.SOARecord{PrimaryNS: "ns1.example.com.", AdminEmail: "admin.example.com.", Serial: 42, Refresh: 3600, Retry: 900, Expire: 604800, NegativeTTL: 300}
	zone.Spec.NameServerIPs = map[string]string{"ns1.example.com.": "10.0.0.1"}

	cfg := buildZoneConfig(zone)
	if cfg.SOA.Serial != 42 || cfg.SOA.PrimaryNS != "ns1.example.com." {
		t.Errorf("SOA = %+v, want copied from zone spec", cfg.SOA)
	}
	if len(cfg.NameServers) != 1 || cfg.NameServers[0] != "ns1.example.com." {
		t.Errorf("NameServers = %v, want [ns1.example.com.]", cfg.NameServers)
	}
	if cfg.NameServerIPs["ns1.example.com."] != "10.0.0.1" {
		t.Errorf("NameServerIPs = %v, want glue IP preserved", cfg.NameServerIPs)
	}
}

func TestApplyZoneCreatesPrimaryThenSecondaries(t *testing.T) {
	s := testScheme(t)
	zone := newTestZone("example-com", "example.com.", "dns-system")
	primarySecret := newTestRndcSecret("prod-primary-0", "dns-system")
	c := fake.NewClientBuilder().WithScheme(s).WithObjects(primarySecret).Build()

	var calls []string
	factory := func(server, token string, log logr.Logger) bindcarClient {
		return &fakeBindcarClient{server: server, calls: &calls, added: true}
	}

	primary := &endpoint{PodInfo: bindyv1beta1.PodInfo{Name: "pod-a", IP: "10.0.0.5", InstanceName: "prod-primary-0", Namespace: "dns-system"}, HTTPPort: 8053, DNSPort: 53}
	secondary := &endpoint{PodInfo: bindyv1beta1.PodInfo{Name: "pod-b", IP: "10.0.0.6", InstanceName: "prod-secondary-0", Namespace: "dns-system"}, HTTPPort: 8053, DNSPort: 53}

	created, err := applyZone(context.Background(), testr.New(t), c, factory, "token", zone, primary, []*endpoint{secondary})
	if err != nil {
		t.Fatalf("applyZone() error = %v", err)
	}
	if !created {
		t.Error("created = false, want true")
	}
	if len(calls) != 2 {
		t.Fatalf("calls = %v, want 2 (primary then secondary)", calls)
	}
	if calls[0] != "AddPrimaryZone:10.0.0.5:8053:example.com." {
		t.Errorf("calls[0] = %q, want primary call first", calls[0])
	}
}

func TestApplyZoneFailsWhenUpdateKeyMissing(t *testing.T) {
	s := testScheme(t)
	zone := newTestZone("example-com", "example.com.", "dns-system")
	c := fake.NewClientBuilder().WithScheme(s).Build()

	var calls []string
	factory := func(server, token string, log logr.Logger) bindcarClient {
		return &fakeBindcarClient{server: server, calls: &calls}
	}

	primary := &endpoint{PodInfo: bindyv1beta1.PodInfo{Name: "pod-a", IP: "10.0.0.5", InstanceName: "prod-primary-0", Namespace: "dns-system"}, HTTPPort: 8053, DNSPort: 53}
	if _, err := applyZone(context.Background(), testr.New(t), c, factory, "token", zone, primary, nil); err == nil {
		t.Error("applyZone() error = nil, want error when the rndc secret is missing")
	}
}

func TestDeleteZoneEverywhereTreatsMissingInstanceAsSuccess(t *testing.T) {
	s := testScheme(t)
	zone := newTestZone("example-com", "example.com.", "dns-system")
	zone.Status.Bind9Instances = []bindyv1beta1.ZoneReference{{Name: "gone-instance", Namespace: "dns-system"}}
	c := fake.NewClientBuilder().WithScheme(s).Build()

	var calls []string
	factory := func(server, token string, log logr.Logger) bindcarClient {
		return &fakeBindcarClient{server: server, calls: &calls}
	}

	if err := deleteZoneEverywhere(context.Background(), testr.New(t), c, factory, "token", zone); err != nil {
		t.Fatalf("deleteZoneEverywhere() error = %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("calls = %v, want none since the instance no longer exists", calls)
	}
}

func TestDeleteZoneEverywhereCallsDeleteOnReachableInstance(t *testing.T) {
	s := testScheme(t)
	inst := newTestZoneInstance("prod-primary-0", "dns-system", bindyv1beta1.RolePrimary)
	pod := newTestPod("prod-primary-0-aaa", "dns-system", inst.Name, corev1.PodRunning, "10.0.0.5")

	zone := newTestZone("example-com", "example.com.", "dns-system")
	zone.Status.Bind9Instances = []bindyv1beta1.ZoneReference{{Name: inst.Name, Namespace: inst.Namespace}}

	c := fake.NewClientBuilder().WithScheme(s).WithObjects(inst, pod).Build()

	var calls []string
	factory := func(server, token string, log logr.Logger) bindcarClient {
		return &fakeBindcarClient{server: server, calls: &calls}
	}

	if err := deleteZoneEverywhere(context.Background(), testr.New(t), c, factory, "token", zone); err != nil {
		t.Fatalf("deleteZoneEverywhere() error = %v", err)
	}
	if len(calls) != 1 || calls[0] != "DeleteZone:10.0.0.5:8053:primary:example.com." {
		t.Errorf("calls = %v, want one primary DeleteZone", calls)
	}
}
