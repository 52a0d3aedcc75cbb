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

package backoffutil

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

func TestNewProfiles(t *testing.T) {
	k8s := New(K8sAPIProfile)
	if k8s.MaxElapsedTime.Seconds() != 300 {
		t.Errorf("K8sAPIProfile MaxElapsedTime = %v, want 300s", k8s.MaxElapsedTime)
	}
	http := New(HTTPProfile)
	if http.MaxElapsedTime.Seconds() != 120 {
		t.Errorf("HTTPProfile MaxElapsedTime = %v, want 120s", http.MaxElapsedTime)
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), logr.Discard(), "test-op", HTTPProfile,
		func(error) bool { return true },
		func() error {
			attempts++
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		})
	if err != nil {
		t.Fatalf("Retry returned error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), logr.Discard(), "test-op", HTTPProfile,
		func(error) bool { return false },
		func() error {
			attempts++
			return errors.New("permanent")
		})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry on permanent error)", attempts)
	}
}

func TestIsRetryableKubernetesError(t *testing.T) {
	conflictErr := apierrors.NewConflict(schema.GroupResource{}, "name", errors.New("conflict"))
	if IsRetryableKubernetesError(conflictErr) {
		t.Errorf("409 conflict should not be retryable per spec")
	}

	tooMany := apierrors.NewTooManyRequests("slow down", 1)
	if !IsRetryableKubernetesError(tooMany) {
		t.Errorf("429 should be retryable")
	}

	serverErr := &apierrors.StatusError{ErrStatus: metav1.Status{Code: 503}}
	if !IsRetryableKubernetesError(serverErr) {
		t.Errorf("503 should be retryable")
	}

	notFound := apierrors.NewNotFound(schema.GroupResource{}, "name")
	if IsRetryableKubernetesError(notFound) {
		t.Errorf("404 should not be retryable")
	}
}

func TestIsRetryableHTTPStatus(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503, 504} {
		if !IsRetryableHTTPStatus(code) {
			t.Errorf("status %d should be retryable", code)
		}
	}
	for _, code := range []int{400, 401, 403, 404, 501} {
		if IsRetryableHTTPStatus(code) {
			t.Errorf("status %d should not be retryable", code)
		}
	}
}
