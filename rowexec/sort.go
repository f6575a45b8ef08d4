// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rowexec

import (
	"sort"

	"github.com/Anexen/sqc/plan"
	"github.com/Anexen/sqc/sql"
)

// NewSort materializes input fully, then emits it ordered by fields
// (spec §4.E Sort). The comparator applies the explicit NULL-ordering rule
// resolved in spec §9: NULL placement is controlled by NullsFirst alone,
// independent of the sort direction's reversal of non-null comparisons.
func NewSort(ctx *sql.Context, fields []plan.SortField, input RowIter) (RowIter, error) {
	rows, err := Collect(ctx, input)
	if err != nil {
		return nil, err
	}

	keys := make([][]sql.Value, len(rows))
	for i, row := range rows {
		key := make([]sql.Value, len(fields))
		for j, f := range fields {
			v, err := f.Expr.Eval(ctx, row)
			if err != nil {
				return nil, err
			}
			key[j] = v
		}
		keys[i] = key
	}

	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return less(keys[order[a]], keys[order[b]], fields)
	})

	sorted := make([]*sql.Row, len(rows))
	for i, idx := range order {
		sorted[i] = rows[idx]
	}

	return newSliceIter(sorted), nil
}

// less reports whether key a sorts strictly before key b, comparing field
// by field and stopping at the first non-equal component.
func less(a, b []sql.Value, fields []plan.SortField) bool {
	for i, f := range fields {
		c, ok := compareKey(a[i], b[i], f)
		if !ok {
			continue
		}
		return c < 0
	}
	return false
}

// compareKey compares two sort-key scalars for one field, returning ok=false
// when they are equal at this position (caller falls through to the next
// field). NULL is ordered as larger than any non-null value; NullsFirst
// flips that placement regardless of Descending, then Descending reverses
// the remaining non-null/non-null comparison only.
func compareKey(a, b sql.Value, f plan.SortField) (int, bool) {
	aNull, bNull := sql.IsNull(a), sql.IsNull(b)

	switch {
	case aNull && bNull:
		return 0, false
	case aNull && !bNull:
		if f.NullsFirst {
			return -1, true
		}
		return 1, true
	case !aNull && bNull:
		if f.NullsFirst {
			return 1, true
		}
		return -1, true
	}

	c, err := a.Compare(b)
	if err != nil {
		// A comparison error leaves relative order unresolved at this
		// field; treat as equal so ties fall through rather than abort
		// the whole sort (errors are surfaced earlier, at Eval time).
		return 0, false
	}
	if c == 0 {
		return 0, false
	}
	if f.Descending {
		c = -c
	}
	return c, true
}
