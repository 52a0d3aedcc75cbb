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

package condition

import (
	"fmt"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	apimeta "k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// TestCondition runs the Ginkgo specs in this package.
func TestCondition(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Condition Suite")
}

var _ = Describe("Conditions Helper Functions", func() {
	var testObject *bindyv1beta1.Bind9Instance

	BeforeEach(func() {
		testObject = &bindyv1beta1.Bind9Instance{
			ObjectMeta: metav1.ObjectMeta{
				Name:       "test-instance",
				Namespace:  "default",
				Generation: 1,
			},
		}
	})

	Describe("SetCondition", func() {
		It("should add a new condition", func() {
			SetCondition(testObject, metav1.Condition{
				Type:    TypeReady,
				Status:  metav1.ConditionTrue,
				Reason:  "TestReason",
				Message: "Test message",
			})

			conditions := testObject.GetConditions()
			Expect(conditions).To(HaveLen(1))
			Expect(conditions[0].Type).To(Equal(TypeReady))
			Expect(conditions[0].Status).To(Equal(metav1.ConditionTrue))
			Expect(conditions[0].ObservedGeneration).To(Equal(int64(1)))
		})

		It("should update an existing condition", func() {
			SetCondition(testObject, metav1.Condition{
				Type: TypeReady, Status: metav1.ConditionFalse, Reason: "InitialReason",
			})
			SetCondition(testObject, metav1.Condition{
				Type: TypeReady, Status: metav1.ConditionTrue, Reason: "UpdatedReason",
			})

			conditions := testObject.GetConditions()
			Expect(conditions).To(HaveLen(1))
			Expect(conditions[0].Reason).To(Equal("UpdatedReason"))
		})

		It("should preserve LastTransitionTime when status is unchanged", func() {
			SetCondition(testObject, metav1.Condition{
				Type: TypeReady, Status: metav1.ConditionTrue, Reason: "AllReady", Message: "first",
			})
			firstTime := apimeta.FindStatusCondition(testObject.GetConditions(), TypeReady).LastTransitionTime

			SetCondition(testObject, metav1.Condition{
				Type: TypeReady, Status: metav1.ConditionTrue, Reason: "AllReady", Message: "second",
			})
			secondTime := apimeta.FindStatusCondition(testObject.GetConditions(), TypeReady).LastTransitionTime

			Expect(secondTime).To(Equal(firstTime))
		})
	})

	Describe("SetFailedCondition", func() {
		It("should set a failed condition with the error's message", func() {
			SetFailedCondition(testObject, TypeReady, ReasonInternalError, fmt.Errorf("something went wrong"))

			condition := apimeta.FindStatusCondition(testObject.GetConditions(), TypeReady)
			Expect(condition).NotTo(BeNil())
			Expect(condition.Status).To(Equal(metav1.ConditionFalse))
			Expect(condition.Reason).To(Equal(ReasonInternalError))
			Expect(condition.Message).To(Equal("something went wrong"))
		})
	})

	Describe("IsConditionTrue", func() {
		It("should return true when the condition is True", func() {
			SetCondition(testObject, metav1.Condition{Type: TypeReady, Status: metav1.ConditionTrue, Reason: ReasonAllReady})
			Expect(IsConditionTrue(testObject, TypeReady)).To(BeTrue())
		})

		It("should return false when the condition is False", func() {
			SetCondition(testObject, metav1.Condition{Type: TypeReady, Status: metav1.ConditionFalse, Reason: ReasonNotReady})
			Expect(IsConditionTrue(testObject, TypeReady)).To(BeFalse())
		})

		It("should return false when the condition does not exist", func() {
			Expect(IsConditionTrue(testObject, "NonExistent")).To(BeFalse())
		})
	})

	Describe("Rollup", func() {
		It("reports NoChildren for an empty set", func() {
			status, summary := Rollup(nil)
			Expect(status).To(Equal(metav1.ConditionFalse))
			Expect(summary.Reason).To(Equal(ReasonNoChildren))
		})

		It("reports AllReady when every child is ready", func() {
			status, summary := Rollup([]Child{{Type: "Pod-0", Ready: true}, {Type: "Pod-1", Ready: true}})
			Expect(status).To(Equal(metav1.ConditionTrue))
			Expect(summary.Reason).To(Equal(ReasonAllReady))
			Expect(summary.Message).To(Equal("all 2 children are ready"))
		})

		It("reports PartiallyReady when some children are ready", func() {
			status, summary := Rollup([]Child{{Type: "Pod-0", Ready: true}, {Type: "Pod-1", Ready: false}})
			Expect(status).To(Equal(metav1.ConditionFalse))
			Expect(summary.Reason).To(Equal(ReasonPartiallyReady))
			Expect(summary.Message).To(Equal("1/2 children are ready"))
		})

		It("reports NotReady when no children are ready", func() {
			status, summary := Rollup([]Child{{Type: "Pod-0", Ready: false}, {Type: "Pod-1", Ready: false}})
			Expect(status).To(Equal(metav1.ConditionFalse))
			Expect(summary.Reason).To(Equal(ReasonNotReady))
		})
	})

	Describe("SetReadyRollup", func() {
		It("writes one condition per child plus the encompassing Ready condition", func() {
			ready, changed := SetReadyRollup(testObject, []Child{
				{Type: ChildConditionName("Pod", 0), Ready: true},
				{Type: ChildConditionName("Pod", 1), Ready: false, Reason: ReasonPodsPending, Message: "pending"},
			})

			Expect(ready).To(BeFalse())
			Expect(changed).To(BeTrue())

			conditions := testObject.GetConditions()
			Expect(conditions).To(HaveLen(3)) // Pod-0, Pod-1, Ready

			readyCond := apimeta.FindStatusCondition(conditions, TypeReady)
			Expect(readyCond.Status).To(Equal(metav1.ConditionFalse))
			Expect(readyCond.Reason).To(Equal(ReasonPartiallyReady))

			pod0 := apimeta.FindStatusCondition(conditions, "Pod-0")
			Expect(pod0.Status).To(Equal(metav1.ConditionTrue))

			pod1 := apimeta.FindStatusCondition(conditions, "Pod-1")
			Expect(pod1.Status).To(Equal(metav1.ConditionFalse))
			Expect(pod1.Reason).To(Equal(ReasonPodsPending))
		})

		It("retires a child condition once the child disappears", func() {
			SetReadyRollup(testObject, []Child{
				{Type: ChildConditionName("Pod", 0), Ready: true},
				{Type: ChildConditionName("Pod", 1), Ready: true},
			})
			Expect(apimeta.FindStatusCondition(testObject.GetConditions(), "Pod-1")).NotTo(BeNil())

			SetReadyRollup(testObject, []Child{
				{Type: ChildConditionName("Pod", 0), Ready: true},
			})
			Expect(apimeta.FindStatusCondition(testObject.GetConditions(), "Pod-1")).To(BeNil())
		})

		It("reports changed=false when nothing about the status actually changed", func() {
			children := []Child{{Type: ChildConditionName("Pod", 0), Ready: true}}
			_, changed := SetReadyRollup(testObject, children)
			Expect(changed).To(BeTrue())

			_, changed = SetReadyRollup(testObject, children)
			Expect(changed).To(BeFalse())
		})
	})
})
