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
	"fmt"
	"time"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// requeueDelay is the fixed re-queue delay for exhausted-retry transient errors (spec.md §7).
const requeueDelay = 30 * time.Second

// ReconcileErrorHandler implements spec.md §7's propagation policy: transient errors are
// retried by the caller (C1) before ever reaching here, so by the time Handle is invoked an
// error is either the result of an exhausted retry budget (transient) or a permanent failure
// that should flip a condition and stop retrying until the next generation.
type ReconcileErrorHandler struct {
	log          logr.Logger
	statusClient client.StatusWriter
	recorder     record.EventRecorder
	cr           bindyv1beta1.ConditionAccessor
	crKind       string
}

// NewReconcileErrorHandler builds a handler for one reconcile invocation. recorder may be nil,
// in which case no Event is emitted (used by unit tests that don't wire a fake recorder).
func NewReconcileErrorHandler(
	log logr.Logger,
	statusClient client.StatusWriter,
	recorder record.EventRecorder,
	cr bindyv1beta1.ConditionAccessor,
	crKind string,
) *ReconcileErrorHandler {
	return &ReconcileErrorHandler{
		log:          log,
		statusClient: statusClient,
		recorder:     recorder,
		cr:           cr,
		crKind:       crKind,
	}
}

// HandlePermanent sets conditionType to False/reason, emits a Warning Event, persists status,
// and returns a result with no requeue — permanent errors wait for the user's next spec change.
func (h *ReconcileErrorHandler) HandlePermanent(
	ctx context.Context,
	err error,
	conditionType string,
	reason string,
	operation string,
) (ctrl.Result, error) {
	h.log.Error(err, fmt.Sprintf("permanent failure during %s", operation))

	SetFailedCondition(h.cr, conditionType, reason, fmt.Errorf("%s: %w", operation, err))
	h.emitEvent(corev1.EventTypeWarning, reason, err.Error())

	if updateErr := h.statusClient.Update(ctx, h.cr.(client.Object)); updateErr != nil {
		h.log.Error(updateErr, fmt.Sprintf("failed to update %s status after permanent %s failure", h.crKind, operation))
	}

	return ctrl.Result{}, nil
}

// HandleTransient sets conditionType to False/reason to explain the outage, persists status,
// and returns the error so the controller's re-queue picks it up at a fixed delay. Used once a
// C1 retry budget has been exhausted.
func (h *ReconcileErrorHandler) HandleTransient(
	ctx context.Context,
	err error,
	conditionType string,
	reason string,
	operation string,
) (ctrl.Result, error) {
	h.log.Error(err, fmt.Sprintf("transient failure during %s, requeuing", operation))

	SetFailedCondition(h.cr, conditionType, reason, fmt.Errorf("%s: %w", operation, err))
	h.emitEvent(corev1.EventTypeWarning, reason, err.Error())

	if updateErr := h.statusClient.Update(ctx, h.cr.(client.Object)); updateErr != nil {
		h.log.Error(updateErr, fmt.Sprintf("failed to update %s status after transient %s failure", h.crKind, operation))
	}

	return ctrl.Result{RequeueAfter: requeueDelay}, err
}

// HandlePanic surfaces a recovered panic as Ready=False/InternalError per spec.md §7, without
// letting it escape the reconcile loop.
func (h *ReconcileErrorHandler) HandlePanic(ctx context.Context, recovered any) (ctrl.Result, error) {
	err := fmt.Errorf("panic: %v", recovered)
	return h.HandlePermanent(ctx, err, TypeReady, ReasonInternalError, "reconcile")
}

func (h *ReconcileErrorHandler) emitEvent(eventType, reason, message string) {
	if h.recorder == nil {
		return
	}
	if obj, ok := h.cr.(client.Object); ok {
		h.recorder.Event(obj, eventType, reason, message)
	}
}
