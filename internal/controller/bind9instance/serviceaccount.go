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

// serviceAccountName is the bearer of the bindcar sidecar's projected token (spec.md §4.12
// step 4.1).
func serviceAccountName(instanceName string) string {
	return fmt.Sprintf("%s-bind9", instanceName)
}

func desiredServiceAccount(inst *bindyv1beta1.Bind9Instance) *corev1.ServiceAccount {
	return &corev1.ServiceAccount{
		ObjectMeta: metav1.ObjectMeta{
			Name:      serviceAccountName(inst.Name),
			Namespace: inst.Namespace,
		},
	}
}
