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

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

const (
	keyNamedConf        = "named.conf"
	keyNamedConfOptions = "named.conf.options"
	keyNamedConfZones   = "named.conf.zones"
)

// configMapName is deterministic per instance, used only for standalone instances — managed
// ones inherit the cluster-level ConfigMap rendered by internal/controller/bind9cluster
// (spec.md §4.12 step 4.3).
func configMapName(instanceName string) string {
	return fmt.Sprintf("%s-bind9-config", instanceName)
}

// desiredStandaloneConfigMap renders a minimal named.conf/.options/.zones set for an instance
// with no owning cluster. It is used for every standalone instance; spec.configMapRefs is not
// consulted, so user-supplied fragments are not mounted in its place.
func desiredStandaloneConfigMap(inst *bindyv1beta1.Bind9Instance) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      configMapName(inst.Name),
			Namespace: inst.Namespace,
		},
		Data: map[string]string{
			keyNamedConf: "# generated by bindy, do not edit\n" +
				"include \"/etc/bind/named.conf.options\";\n" +
				"include \"/etc/bind/named.conf.zones\";\n",
			keyNamedConfOptions: "options {\n    recursion no;\n};\n",
			keyNamedConfZones:   "# zones are added through the bindcar sidecar, not listed here\n",
		},
	}
}
