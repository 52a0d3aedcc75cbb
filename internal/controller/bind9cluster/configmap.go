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
	"bytes"
	"fmt"
	"text/template"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// Key names used inside the generated ConfigMap. bind9instance looks these up by the same
// names when ConfigMapName's ConfigMap is the one in effect for an instance.
const (
	KeyNamedConf        = "named.conf"
	KeyNamedConfOptions = "named.conf.options"
	KeyNamedConfZones   = "named.conf.zones"
)

// ConfigMapName is the deterministic name of the cluster-rendered named.conf ConfigMap.
// Instances managed by a cluster inherit this ConfigMap instead of one of their own
// (bind9instance_types.go's ConfigMapRefs doc comment).
func ConfigMapName(clusterName string) string {
	return fmt.Sprintf("%s-bind9-config", clusterName)
}

var namedConfTemplate = template.Must(template.New("named.conf").Parse(
	`# generated by bindy, do not edit
include "/etc/bind/named.conf.options";
include "/etc/bind/named.conf.zones";
`))

var namedConfOptionsTemplate = template.Must(template.New("named.conf.options").Parse(
	`options {
	recursion {{if .Recursion}}yes{{else}}no{{end}};
{{- if .Forwarders}}
	forwarders {
{{- range .Forwarders}}
		{{.}};
{{- end}}
	};
{{- end}}
{{- if .AllowQuery}}
	allow-query {
{{- range .AllowQuery}}
		{{.}};
{{- end}}
	};
{{- end}}
{{- if .DNSSECValidation}}
	dnssec-validation {{.DNSSECValidation}};
{{- end}}
};
`))

// renderConfigMap renders the named.conf/named.conf.options/named.conf.zones keys from the
// cluster's GlobalConfig. named.conf.zones holds only a placeholder comment: the zone
// reconciler creates zones on the pods through the bindcar sidecar and never writes this
// ConfigMap.
func renderConfigMap(global bindyv1beta1.GlobalConfig) (map[string]string, error) {
	var namedConf bytes.Buffer
	if err := namedConfTemplate.Execute(&namedConf, nil); err != nil {
		return nil, fmt.Errorf("render named.conf: %w", err)
	}

	var options bytes.Buffer
	if err := namedConfOptionsTemplate.Execute(&options, global); err != nil {
		return nil, fmt.Errorf("render named.conf.options: %w", err)
	}

	return map[string]string{
		KeyNamedConf:        namedConf.String(),
		KeyNamedConfOptions: options.String(),
		KeyNamedConfZones:   "# zones are added through the bindcar sidecar, not listed here\n",
	}, nil
}

// desiredConfigMap builds the cluster-rendered ConfigMap object, owned by adapter's CR.
func desiredConfigMap(a adapter) (*corev1.ConfigMap, error) {
	data, err := renderConfigMap(a.Common().Global)
	if err != nil {
		return nil, err
	}
	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      ConfigMapName(a.Name()),
			Namespace: a.InstanceNamespace(),
		},
		Data: data,
	}, nil
}
