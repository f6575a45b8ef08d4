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
	"strings"

	"github.com/Anexen/sqc/expression"
	"github.com/Anexen/sqc/plan"
	"github.com/Anexen/sqc/sql"
)

// joinBucket holds every right-side row that hashed to one key, along with
// its key tuple, so a probe can verify true equality rather than trusting
// the hash alone (spec §9 Open Question, resolved: a proper hash join
// chains collisions instead of keying by a single hash value).
type joinBucket struct {
	key  []sql.Value
	rows []*sql.Row
}

// hashJoinIter implements the inner hash join (spec §4.E Join): the right
// side is materialized into a bucketed hash table; the left side streams
// through, probing the table and, on a verified key match, merging parts
// and (if present) re-checking the residual Filter before emitting.
type hashJoinIter struct {
	on     []plan.EquiPair
	filter expression.Expr
	left   RowIter
	table  map[string][]*joinBucket

	pending   []*sql.Row
	pendingAt int
}

// NewInnerJoin materializes right, builds the hash table keyed by the
// right-side equijoin expressions, and returns an iterator that streams
// left, probing the table for each row.
func NewInnerJoin(ctx *sql.Context, on []plan.EquiPair, filter expression.Expr, left, right RowIter) (RowIter, error) {
	rightRows, err := Collect(ctx, right)
	if err != nil {
		return nil, err
	}

	table := make(map[string][]*joinBucket)
	for _, row := range rightRows {
		key, err := evalKey(ctx, on, row, false)
		if err != nil {
			return nil, err
		}
		hash := hashKey(key)
		buckets := table[hash]
		found := false
		for _, b := range buckets {
			if keysEqual(b.key, key) {
				b.rows = append(b.rows, row)
				found = true
				break
			}
		}
		if !found {
			table[hash] = append(buckets, &joinBucket{key: key, rows: []*sql.Row{row}})
		}
	}

	return &hashJoinIter{on: on, filter: filter, left: left, table: table}, nil
}

func (j *hashJoinIter) Next(ctx *sql.Context) (*sql.Row, error) {
	for {
		if j.pendingAt < len(j.pending) {
			candidate := j.pending[j.pendingAt]
			j.pendingAt++

			if j.filter == nil {
				return candidate, nil
			}
			v, err := j.filter.Eval(ctx, candidate)
			if err != nil {
				return nil, err
			}
			if v.Truthy() {
				return candidate, nil
			}
			continue
		}

		leftRow, err := j.left.Next(ctx)
		if err != nil {
			return nil, err
		}

		key, err := evalKey(ctx, j.on, leftRow, true)
		if err != nil {
			return nil, err
		}
		hash := hashKey(key)

		j.pending = nil
		j.pendingAt = 0
		for _, b := range j.table[hash] {
			if !keysEqual(b.key, key) {
				continue
			}
			for _, rightRow := range b.rows {
				merged := leftRow.Clone()
				merged.Extend(rightRow)
				j.pending = append(j.pending, merged)
			}
			break
		}
	}
}

func (j *hashJoinIter) Close(ctx *sql.Context) error { return j.left.Close(ctx) }

// evalKey evaluates the equijoin key tuple for one side of on against row.
// useLeft selects the left or right expression of each pair.
func evalKey(ctx *sql.Context, on []plan.EquiPair, row *sql.Row, useLeft bool) ([]sql.Value, error) {
	key := make([]sql.Value, len(on))
	for i, pair := range on {
		e := pair.Right
		if useLeft {
			e = pair.Left
		}
		v, err := e.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		key[i] = v
	}
	return key, nil
}

// hashKey derives a bucketing string from a key tuple's string forms. It
// is only ever used to select a bucket to scan; keysEqual is what decides
// an actual match, so collisions in this hash are harmless.
func hashKey(key []sql.Value) string {
	var b strings.Builder
	for _, v := range key {
		if sql.IsNull(v) {
			b.WriteString("\x00NULL\x00")
			continue
		}
		b.WriteString(v.String())
		b.WriteByte(0)
	}
	return b.String()
}

// keysEqual verifies a candidate bucket's key tuple truly matches probe,
// component by component, via the host's own Equals rather than trusting
// string/hash equality. A NULL component never matches (SQL NULL = NULL is
// not true), mirroring equi-join semantics generally.
func keysEqual(bucketKey, probe []sql.Value) bool {
	if len(bucketKey) != len(probe) {
		return false
	}
	for i := range bucketKey {
		if sql.IsNull(bucketKey[i]) || sql.IsNull(probe[i]) {
			return false
		}
		ok, err := bucketKey[i].Equals(probe[i])
		if err != nil || !ok {
			return false
		}
	}
	return true
}
