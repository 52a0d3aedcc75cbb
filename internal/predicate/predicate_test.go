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

package predicate

import (
	"testing"

	"github.com/onsi/gomega"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/event"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

func TestGenerationChangedPredicateUpdateFunc(t *testing.T) {
	g := gomega.NewWithT(t)

	old := &bindyv1beta1.DNSZone{ObjectMeta: metav1.ObjectMeta{Generation: 1}}
	same := &bindyv1beta1.DNSZone{ObjectMeta: metav1.ObjectMeta{Generation: 1}}
	bumped := &bindyv1beta1.DNSZone{ObjectMeta: metav1.ObjectMeta{Generation: 2}}

	g.Expect(GenerationChangedPredicate.UpdateFunc(event.UpdateEvent{ObjectOld: old, ObjectNew: same})).To(gomega.BeFalse())
	g.Expect(GenerationChangedPredicate.UpdateFunc(event.UpdateEvent{ObjectOld: old, ObjectNew: bumped})).To(gomega.BeTrue())
	g.Expect(GenerationChangedPredicate.UpdateFunc(event.UpdateEvent{})).To(gomega.BeTrue())
}

func TestDeploymentReadinessPredicateUpdateFunc(t *testing.T) {
	g := gomega.NewWithT(t)

	old := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Generation: 1},
		Status:     appsv1.DeploymentStatus{ReadyReplicas: 0},
	}
	sameReadiness := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Generation: 1},
		Status:     appsv1.DeploymentStatus{ReadyReplicas: 0},
	}
	becameReady := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Generation: 1},
		Status:     appsv1.DeploymentStatus{ReadyReplicas: 1},
	}
	specChanged := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Generation: 2},
		Status:     appsv1.DeploymentStatus{ReadyReplicas: 0},
	}

	g.Expect(DeploymentReadinessPredicate.UpdateFunc(event.UpdateEvent{ObjectOld: old, ObjectNew: sameReadiness})).To(gomega.BeFalse())
	g.Expect(DeploymentReadinessPredicate.UpdateFunc(event.UpdateEvent{ObjectOld: old, ObjectNew: becameReady})).To(gomega.BeTrue())
	g.Expect(DeploymentReadinessPredicate.UpdateFunc(event.UpdateEvent{ObjectOld: old, ObjectNew: specChanged})).To(gomega.BeTrue())
}

func TestLabelsOrAnnotationsChangedPredicateUpdateFunc(t *testing.T) {
	g := gomega.NewWithT(t)

	old := &corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Generation: 1, Labels: map[string]string{"a": "1"}}}
	sameLabels := &corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Generation: 1, Labels: map[string]string{"a": "1"}}}
	changedLabels := &corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Generation: 1, Labels: map[string]string{"a": "2"}}}

	g.Expect(LabelsOrAnnotationsChangedPredicate.UpdateFunc(event.UpdateEvent{ObjectOld: old, ObjectNew: sameLabels})).To(gomega.BeFalse())
	g.Expect(LabelsOrAnnotationsChangedPredicate.UpdateFunc(event.UpdateEvent{ObjectOld: old, ObjectNew: changedLabels})).To(gomega.BeTrue())
}
