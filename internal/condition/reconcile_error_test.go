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
	"context"
	"errors"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	apimeta "k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/tools/record"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

type mockStatusWriter struct {
	updateCalled bool
	updateErr    error
	lastObject   client.Object
}

func (m *mockStatusWriter) Update(ctx context.Context, obj client.Object, opts ...client.SubResourceUpdateOption) error {
	m.updateCalled = true
	m.lastObject = obj
	return m.updateErr
}

func (m *mockStatusWriter) Patch(ctx context.Context, obj client.Object, patch client.Patch, opts ...client.SubResourcePatchOption) error {
	return nil
}

func (m *mockStatusWriter) Create(ctx context.Context, obj client.Object, subResource client.Object, opts ...client.SubResourceCreateOption) error {
	return nil
}

var _ = Describe("ReconcileErrorHandler", func() {
	var (
		ctx        context.Context
		testObject *bindyv1beta1.Bind9Instance
		mockStatus *mockStatusWriter
		recorder   *record.FakeRecorder
		handler    *ReconcileErrorHandler
		testErr    error
	)

	BeforeEach(func() {
		ctx = context.Background()
		testErr = errors.New("test error")

		testObject = &bindyv1beta1.Bind9Instance{
			ObjectMeta: metav1.ObjectMeta{
				Name:       "test-instance",
				Namespace:  "default",
				Generation: 1,
			},
		}

		mockStatus = &mockStatusWriter{}
		recorder = record.NewFakeRecorder(10)
		handler = NewReconcileErrorHandler(logr.Discard(), mockStatus, recorder, testObject, "Bind9Instance")
	})

	Describe("HandlePermanent", func() {
		It("sets the condition False with the given reason and does not request a requeue", func() {
			result, returnedErr := handler.HandlePermanent(ctx, testErr, TypeReady, ReasonInvalidRecordData, "validate spec")

			Expect(returnedErr).To(BeNil())
			Expect(result.RequeueAfter).To(BeZero())

			condition := apimeta.FindStatusCondition(testObject.GetConditions(), TypeReady)
			Expect(condition).NotTo(BeNil())
			Expect(condition.Status).To(Equal(metav1.ConditionFalse))
			Expect(condition.Reason).To(Equal(ReasonInvalidRecordData))
			Expect(condition.Message).To(Equal("validate spec: test error"))
		})

		It("persists the status and emits a Warning event", func() {
			_, _ = handler.HandlePermanent(ctx, testErr, TypeReady, ReasonInvalidZoneConfig, "validate zone")

			Expect(mockStatus.updateCalled).To(BeTrue())
			Expect(mockStatus.lastObject).To(Equal(testObject))
			Expect(<-recorder.Events).To(ContainSubstring(ReasonInvalidZoneConfig))
		})

		It("does not fail the call if the status update itself fails", func() {
			mockStatus.updateErr = errors.New("update failed")
			_, returnedErr := handler.HandlePermanent(ctx, testErr, TypeReady, ReasonInternalError, "reconcile")
			Expect(returnedErr).To(BeNil())
		})
	})

	Describe("HandleTransient", func() {
		It("sets the condition False and returns the error with a fixed requeue delay", func() {
			result, returnedErr := handler.HandleTransient(ctx, testErr, TypeReady, ReasonBindcarUnreachable, "reload zone")

			Expect(returnedErr).To(Equal(testErr))
			Expect(result.RequeueAfter).To(Equal(requeueDelay))

			condition := apimeta.FindStatusCondition(testObject.GetConditions(), TypeReady)
			Expect(condition).NotTo(BeNil())
			Expect(condition.Reason).To(Equal(ReasonBindcarUnreachable))
		})
	})

	Describe("HandlePanic", func() {
		It("surfaces the recovered value as Ready=False/InternalError", func() {
			result, returnedErr := handler.HandlePanic(ctx, "boom")

			Expect(returnedErr).To(BeNil())
			Expect(result.RequeueAfter).To(BeZero())

			condition := apimeta.FindStatusCondition(testObject.GetConditions(), TypeReady)
			Expect(condition).NotTo(BeNil())
			Expect(condition.Reason).To(Equal(ReasonInternalError))
			Expect(condition.Message).To(ContainSubstring("boom"))
		})
	})

	Describe("observed generation", func() {
		It("stamps ObservedGeneration from the CR", func() {
			testObject.Generation = 5
			_, _ = handler.HandlePermanent(ctx, testErr, TypeReady, ReasonInternalError, "test operation")

			condition := apimeta.FindStatusCondition(testObject.GetConditions(), TypeReady)
			Expect(condition).NotTo(BeNil())
			Expect(condition.ObservedGeneration).To(Equal(int64(5)))
		})
	})
})
