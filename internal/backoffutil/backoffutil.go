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

// Package backoffutil wraps cenkalti/backoff/v4 with the two retry profiles used across the
// operator (Kubernetes-API calls and bindcar HTTP calls) plus the retryable-error classifiers
// that decide whether a given failure is worth retrying at all.
package backoffutil

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-logr/logr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// Profile names the two backoff shapes the spec defines.
type Profile int

const (
	// K8sAPIProfile: 100ms initial, 2.0 multiplier, 30s max interval, 300s max elapsed.
	K8sAPIProfile Profile = iota
	// HTTPProfile: 50ms initial, 2.0 multiplier, 10s max interval, 120s max elapsed.
	HTTPProfile
)

// New constructs a fresh *backoff.ExponentialBackOff for the given profile. A fresh instance
// must be built per retried operation — cenkalti/backoff's ExponentialBackOff is stateful.
func New(profile Profile) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.RandomizationFactor = 0.1
	b.Multiplier = 2.0
	switch profile {
	case HTTPProfile:
		b.InitialInterval = 50 * time.Millisecond
		b.MaxInterval = 10 * time.Second
		b.MaxElapsedTime = 120 * time.Second
	default:
		b.InitialInterval = 100 * time.Millisecond
		b.MaxInterval = 30 * time.Second
		b.MaxElapsedTime = 300 * time.Second
	}
	b.Reset()
	return b
}

// Retry runs op under the given profile, logging attempt number and elapsed time, and stops
// retrying once isRetryable(err) is false or the profile's max-elapsed budget is exhausted.
// It logs a debug summary on recovery after more than one attempt.
func Retry(ctx context.Context, log logr.Logger, op string, profile Profile, isRetryable func(error) bool, f func() error) error {
	b := backoff.WithContext(New(profile), ctx)
	attempt := 0
	start := time.Now()

	wrapped := func() error {
		attempt++
		err := f()
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return backoff.Permanent(err)
		}
		log.V(1).Info("operation failed, retrying", "operation", op, "attempt", attempt, "elapsed", time.Since(start), "error", err.Error())
		return err
	}

	err := backoff.Retry(wrapped, b)
	if err == nil && attempt > 1 {
		log.V(1).Info("operation recovered after retry", "operation", op, "attempts", attempt, "elapsed", time.Since(start))
	}
	return err
}

// IsRetryableKubernetesError reports whether err is worth retrying per spec: HTTP 429 or
// 500-599, or a connection/service-level error the apimachinery error helpers recognise.
func IsRetryableKubernetesError(err error) bool {
	if err == nil {
		return false
	}
	if apierrors.IsTooManyRequests(err) || apierrors.IsServerTimeout(err) ||
		apierrors.IsTimeout(err) || apierrors.IsServiceUnavailable(err) ||
		apierrors.IsInternalError(err) {
		return true
	}
	var statusErr apierrors.APIStatus
	if errors.As(err, &statusErr) {
		code := int(statusErr.Status().Code)
		if code == 429 || (code >= 500 && code <= 599) {
			return true
		}
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsRetryableHTTPStatus reports whether an HTTP response status is worth retrying: one of
// 429, 500, 502, 503, 504.
func IsRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
