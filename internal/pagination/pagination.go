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

// Package pagination wraps a Kubernetes LIST call with fixed-size paging and the defensive
// checks spec.md §4.2 requires against a misbehaving API server continue-token loop.
package pagination

import (
	"context"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/api/meta"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// PageSize is the fixed page size every paginated list uses.
const PageSize = 100

// maxPages is a hard safety cap against an unbounded continue-token loop.
const maxPages = 10000

// ListAll pages through newList's matching items with client.ListOptions opts (merged with a
// fixed Limit), returning every item collected before any abort condition. It never returns an
// error for the abort conditions themselves — it logs and returns whatever was collected so
// far, per spec.md §4.2.
func ListAll(ctx context.Context, log logr.Logger, c client.Client, list client.ObjectList, opts ...client.ListOption) ([]client.Object, error) {
	var collected []client.Object
	var continueToken string

	for page := 0; page < maxPages; page++ {
		requestToken := continueToken
		pageOpts := append(append([]client.ListOption{}, opts...), client.Limit(PageSize))
		if requestToken != "" {
			pageOpts = append(pageOpts, client.Continue(requestToken))
		}

		if err := c.List(ctx, list, pageOpts...); err != nil {
			return collected, err
		}

		items, err := meta.ExtractList(list)
		if err != nil {
			return collected, err
		}
		for _, item := range items {
			if obj, ok := item.(client.Object); ok {
				collected = append(collected, obj)
			}
		}

		listAccessor, err := meta.ListAccessor(list)
		if err != nil {
			return collected, err
		}
		nextToken := listAccessor.GetContinue()

		if nextToken == "" {
			return collected, nil
		}
		if nextToken == requestToken {
			log.Error(nil, "paginated list returned the same continue token again, aborting", "page", page)
			return collected, nil
		}
		if len(items) == 0 {
			log.Error(nil, "paginated list returned zero items with a non-empty continue token, aborting", "page", page)
			return collected, nil
		}

		continueToken = nextToken
	}

	log.Error(nil, "paginated list exceeded the safety cap on page count", "maxPages", maxPages)
	return collected, nil
}
