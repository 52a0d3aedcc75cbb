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

// Package httperrors maps bindcar sidecar HTTP status codes onto the condition-reason
// taxonomy of internal/condition, and classifies which statuses are worth retrying.
package httperrors

import (
	"net/http"
	"strings"
)

// Reason returns the condition reason constant (internal/condition) for a bindcar HTTP
// response status code.
func Reason(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "BindcarBadRequest"
	case http.StatusUnauthorized, http.StatusForbidden:
		return "BindcarAuthFailed"
	case http.StatusNotFound:
		return "ZoneNotFound"
	case http.StatusInternalServerError:
		return "BindcarInternalError"
	case http.StatusNotImplemented:
		return "BindcarNotImplemented"
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return "GatewayError"
	default:
		return "BindcarUnreachable"
	}
}

// ConnectionFailureReason is the reason used when the request never produced a response
// at all (dial/timeout/DNS failure below the HTTP layer).
const ConnectionFailureReason = "BindcarUnreachable"

// Retryable reports whether a bindcar HTTP response status is worth retrying under the
// C1 HTTP backoff profile.
func Retryable(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// IsConflictOrDuplicate reports whether a response indicates the zone already exists:
// HTTP 409, or a 2xx/4xx body that otherwise signals a pre-existing zone. Callers pass the
// lower-cased body text; matching is done here so the set of phrases lives in one place.
func IsConflictOrDuplicate(statusCode int, lowerBody string) bool {
	if statusCode == http.StatusConflict {
		return true
	}
	for _, phrase := range []string{"already exists", "already serves", "duplicate zone"} {
		if strings.Contains(lowerBody, phrase) {
			return true
		}
	}
	return false
}
