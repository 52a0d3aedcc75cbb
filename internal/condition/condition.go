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

// Package condition implements the hierarchical status/condition rollup of spec.md §4.5:
// every resource carries an encompassing Ready condition plus one indexed child condition per
// owned subordinate (Bind9Instance-0, Pod-1, ...), and Ready is derived from the children by
// the same four-way rule at every level of the hierarchy.
package condition

import (
	"fmt"
	"sort"

	apimeta "k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// SetCondition updates or adds a condition on obj, stamping ObservedGeneration from obj itself.
// LastTransitionTime is preserved by apimeta.SetStatusCondition when status does not change.
func SetCondition(obj bindyv1beta1.ConditionAccessor, condition metav1.Condition) bool {
	condition.ObservedGeneration = obj.GetGeneration()

	conditions := obj.GetConditions()
	changed := apimeta.SetStatusCondition(&conditions, condition)
	obj.SetConditions(conditions)
	return changed
}

// SetFailedCondition sets conditionType to False with reason and err's message, a convenience
// wrapper for reconciler error paths.
func SetFailedCondition(obj bindyv1beta1.ConditionAccessor, conditionType string, reason string, err error) bool {
	return SetCondition(obj, metav1.Condition{
		Type:    conditionType,
		Status:  metav1.ConditionFalse,
		Reason:  reason,
		Message: err.Error(),
	})
}

// IsConditionTrue returns true if conditionType is present and status True.
func IsConditionTrue(obj bindyv1beta1.ConditionAccessor, conditionType string) bool {
	cond := apimeta.FindStatusCondition(obj.GetConditions(), conditionType)
	return cond != nil && cond.Status == metav1.ConditionTrue
}

// CleanupStaleConditions drops every condition for which shouldKeep returns false, used to
// retire indexed child conditions (e.g. Pod-3) once the child no longer exists.
func CleanupStaleConditions(obj bindyv1beta1.ConditionAccessor, shouldKeep func(cond metav1.Condition) bool) {
	var kept []metav1.Condition
	for _, cond := range obj.GetConditions() {
		if shouldKeep(cond) {
			kept = append(kept, cond)
		}
	}
	obj.SetConditions(kept)
}

// Child is one owned subordinate whose own readiness feeds the parent's Ready rollup.
type Child struct {
	// Type is the indexed condition type, e.g. "Bind9Instance-0" or "Pod-2".
	Type string
	// Ready is this child's current readiness.
	Ready bool
	// Reason/Message describe the child's own condition when it is not ready.
	Reason  string
	Message string
}

// ChildConditionName formats the indexed child condition type spec.md §4.5 describes:
// "<Kind>-<index>", e.g. ChildConditionName("Bind9Instance", 0) == "Bind9Instance-0".
func ChildConditionName(kind string, index int) string {
	return fmt.Sprintf("%s-%d", kind, index)
}

// RollupSummary is the outcome of applying spec.md §4.5's rollup rule to a set of children.
type RollupSummary struct {
	Total   int
	Ready   int
	Reason  string
	Message string
}

// Rollup derives the parent's Ready status from children per spec.md §4.5:
//
//	0 children  -> False / NoChildren
//	all ready   -> True  / AllReady
//	some ready  -> False / PartiallyReady ("k/n children are ready")
//	none ready  -> False / NotReady
func Rollup(children []Child) (status metav1.ConditionStatus, summary RollupSummary) {
	summary.Total = len(children)
	for _, c := range children {
		if c.Ready {
			summary.Ready++
		}
	}

	switch {
	case summary.Total == 0:
		summary.Reason = ReasonNoChildren
		summary.Message = "no children to track"
		return metav1.ConditionFalse, summary
	case summary.Ready == summary.Total:
		summary.Reason = ReasonAllReady
		summary.Message = fmt.Sprintf("all %d children are ready", summary.Total)
		return metav1.ConditionTrue, summary
	case summary.Ready == 0:
		summary.Reason = ReasonNotReady
		summary.Message = fmt.Sprintf("0/%d children are ready", summary.Total)
		return metav1.ConditionFalse, summary
	default:
		summary.Reason = ReasonPartiallyReady
		summary.Message = fmt.Sprintf("%d/%d children are ready", summary.Ready, summary.Total)
		return metav1.ConditionFalse, summary
	}
}

// SetChildConditions writes one condition per child onto obj and returns the set of child
// condition types just written, for use with CleanupStaleConditions to retire anything stale.
func SetChildConditions(obj bindyv1beta1.ConditionAccessor, children []Child) map[string]bool {
	seen := make(map[string]bool, len(children))
	sorted := make([]Child, len(children))
	copy(sorted, children)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Type < sorted[j].Type })

	for _, c := range sorted {
		seen[c.Type] = true
		status := metav1.ConditionFalse
		reason := c.Reason
		message := c.Message
		if c.Ready {
			status = metav1.ConditionTrue
			reason = ReasonReady
			if message == "" {
				message = "ready"
			}
		}
		SetCondition(obj, metav1.Condition{
			Type:    c.Type,
			Status:  status,
			Reason:  reason,
			Message: message,
		})
	}
	return seen
}

// SetReadyRollup writes the children's conditions, retires stale child conditions, and sets the
// encompassing Ready condition from the rollup — the full spec.md §4.5 sequence for one level
// of the hierarchy. It reports whether anything about the status actually changed, so callers
// can honor the "patch status only when something changed" discipline.
func SetReadyRollup(obj bindyv1beta1.ConditionAccessor, children []Child) (ready bool, changed bool) {
	before := len(obj.GetConditions())
	beforeConditions := append([]metav1.Condition(nil), obj.GetConditions()...)

	seen := SetChildConditions(obj, children)
	CleanupStaleConditions(obj, func(cond metav1.Condition) bool {
		return cond.Type == TypeReady || seen[cond.Type]
	})

	status, summary := Rollup(children)
	readyChanged := SetCondition(obj, metav1.Condition{
		Type:    TypeReady,
		Status:  status,
		Reason:  summary.Reason,
		Message: summary.Message,
	})

	changed = readyChanged || before != len(obj.GetConditions()) || !conditionsEqual(beforeConditions, obj.GetConditions())
	return status == metav1.ConditionTrue, changed
}

func conditionsEqual(a, b []metav1.Condition) bool {
	if len(a) != len(b) {
		return false
	}
	byType := make(map[string]metav1.Condition, len(a))
	for _, c := range a {
		byType[c.Type] = c
	}
	for _, c := range b {
		prev, ok := byType[c.Type]
		if !ok || prev.Status != c.Status || prev.Reason != c.Reason || prev.Message != c.Message {
			return false
		}
	}
	return true
}
